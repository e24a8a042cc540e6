package shared

import (
	"fmt"
	"strings"
)

// BloodGroup es el grupo sanguíneo ABO + Rh de una unidad o de un donante.
type BloodGroup string

const (
	GroupAPos  BloodGroup = "A+"
	GroupANeg  BloodGroup = "A-"
	GroupBPos  BloodGroup = "B+"
	GroupBNeg  BloodGroup = "B-"
	GroupABPos BloodGroup = "AB+"
	GroupABNeg BloodGroup = "AB-"
	GroupOPos  BloodGroup = "O+"
	GroupONeg  BloodGroup = "O-"
)

// BloodGroups en el orden en que se listan los inventarios.
var BloodGroups = []BloodGroup{
	GroupAPos, GroupANeg,
	GroupBPos, GroupBNeg,
	GroupABPos, GroupABNeg,
	GroupOPos, GroupONeg,
}

// ParseBloodGroup normaliza ("o+", " AB- ") y rechaza grupos desconocidos.
func ParseBloodGroup(raw string) (BloodGroup, error) {
	g := BloodGroup(strings.ToUpper(strings.TrimSpace(raw)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: unknown blood group %q", ErrInvalidInput, raw)
	}
	return g, nil
}

func (g BloodGroup) Valid() bool {
	for _, known := range BloodGroups {
		if g == known {
			return true
		}
	}
	return false
}

// Rank ordena grupos según BloodGroups; desconocidos al final.
func (g BloodGroup) Rank() int {
	for i, known := range BloodGroups {
		if g == known {
			return i
		}
	}
	return len(BloodGroups)
}
