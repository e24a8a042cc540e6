package requests

import (
	"strings"
	"time"

	"blood-ledger/internal/domain/shared"
)

type State string

const (
	StatePending  State = "pending"
	StateAccepted State = "accepted"
	StateRejected State = "rejected"
)

func (s State) Valid() bool {
	return s == StatePending || s == StateAccepted || s == StateRejected
}

func ParseState(raw string) (State, error) {
	s := State(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", shared.Invalid("unknown request state %q", raw)
	}
	return s, nil
}

type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

// BloodRequest: el requester pide unidades al supplier. Pasa de pending a
// accepted o rejected una sola vez; después no se modifica más.
type BloodRequest struct {
	ID string

	Requester shared.OwnerRef
	Supplier  shared.OwnerRef

	BloodGroup shared.BloodGroup
	Units      int
	Remarks    string

	State       State
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// Role filtra listados según el papel de la instalación en el request.
type Role string

const (
	RoleAny       Role = ""
	RoleRequester Role = "requester"
	RoleSupplier  Role = "supplier"
)

func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleAny, RoleRequester, RoleSupplier:
		return r, nil
	default:
		return "", shared.Invalid("unknown role %q", raw)
	}
}

type ListFilter struct {
	FacilityID string
	Role       Role
	State      State // vacío = todos
}
