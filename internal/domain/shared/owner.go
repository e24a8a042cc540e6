package shared

import (
	"fmt"
	"strings"
)

// OwnerKind distingue los dos tipos de instalación que pueden tener stock.
type OwnerKind string

const (
	OwnerLab      OwnerKind = "lab"
	OwnerHospital OwnerKind = "hospital"
)

func ParseOwnerKind(raw string) (OwnerKind, error) {
	switch OwnerKind(strings.ToLower(strings.TrimSpace(raw))) {
	case OwnerLab:
		return OwnerLab, nil
	case OwnerHospital:
		return OwnerHospital, nil
	default:
		return "", fmt.Errorf("%w: unknown facility kind %q", ErrInvalidInput, raw)
	}
}

// OwnerRef identifica a la instalación dueña de una entrada de stock.
// Siempre hay exactamente un tipo: lab (proveedor) u hospital (tenedor).
type OwnerRef struct {
	Kind OwnerKind
	ID   string
}

func Lab(id string) OwnerRef      { return OwnerRef{Kind: OwnerLab, ID: id} }
func Hospital(id string) OwnerRef { return OwnerRef{Kind: OwnerHospital, ID: id} }

// Validate normaliza el ID y verifica el tipo.
func (o OwnerRef) Validate() (OwnerRef, error) {
	kind, err := ParseOwnerKind(string(o.Kind))
	if err != nil {
		return OwnerRef{}, err
	}
	id := strings.TrimSpace(o.ID)
	if id == "" {
		return OwnerRef{}, fmt.Errorf("%w: facility id required", ErrInvalidInput)
	}
	return OwnerRef{Kind: kind, ID: id}, nil
}

func (o OwnerRef) String() string {
	return string(o.Kind) + ":" + o.ID
}

// ParseOwnerRef acepta el formato "kind:id" usado en config.
func ParseOwnerRef(raw string) (OwnerRef, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return OwnerRef{}, fmt.Errorf("%w: facility ref must be kind:id, got %q", ErrInvalidInput, raw)
	}
	return OwnerRef{Kind: OwnerKind(parts[0]), ID: parts[1]}.Validate()
}
