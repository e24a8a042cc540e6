package auth

import (
	"strings"

	"blood-ledger/internal/domain/shared"
)

type Role string

const (
	RoleLab      Role = "lab"
	RoleHospital Role = "hospital"
	RoleDonor    Role = "donor"
	RoleAdmin    Role = "admin"
)

func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case RoleLab, RoleHospital, RoleDonor, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// Claims es la identidad del caller. El ledger no autentica: confía en esto.
type Claims struct {
	UserID     string
	Role       Role
	FacilityID string // labs y hospitales
	DonorID    string // donantes
}

// Facility devuelve la instalación del caller con su tipo según el rol.
func (c Claims) Facility() (shared.OwnerRef, bool) {
	id := strings.TrimSpace(c.FacilityID)
	if id == "" {
		return shared.OwnerRef{}, false
	}
	switch c.Role {
	case RoleLab:
		return shared.Lab(id), true
	case RoleHospital:
		return shared.Hospital(id), true
	default:
		return shared.OwnerRef{}, false
	}
}

func (c Claims) IsAdmin() bool { return c.Role == RoleAdmin }
