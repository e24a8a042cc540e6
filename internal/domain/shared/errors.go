package shared

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrStateConflict       = errors.New("state conflict")
	ErrCooldownViolation   = errors.New("cooldown violation")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrInternal            = errors.New("internal error")
)

// Kind clasifica cualquier error del ledger para metrics y para la capa HTTP.
type Kind string

const (
	KindNone                Kind = "ok"
	KindValidation          Kind = "validation"
	KindNotFound            Kind = "not_found"
	KindInsufficientStock   Kind = "insufficient_stock"
	KindStateConflict       Kind = "state_conflict"
	KindCooldownViolation   Kind = "cooldown_violation"
	KindConcurrencyConflict Kind = "concurrency_conflict"
	KindInternal            Kind = "internal"
)

func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrStateConflict):
		return KindStateConflict
	case errors.Is(err, ErrCooldownViolation):
		return KindCooldownViolation
	case errors.Is(err, ErrConcurrencyConflict):
		return KindConcurrencyConflict
	default:
		return KindInternal
	}
}

// InsufficientStockError lleva la cantidad disponible al momento del débito.
type InsufficientStockError struct {
	FacilityID string
	BloodGroup BloodGroup
	Available  int
	Requested  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %s %s available=%d requested=%d",
		e.FacilityID, e.BloodGroup, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// CooldownError indica desde cuándo se puede volver a registrar una donación.
type CooldownError struct {
	DonorID     string
	LastDonated time.Time
	NextAllowed time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown violation: donor %s may donate again on %s",
		e.DonorID, e.NextAllowed.Format("2006-01-02"))
}

func (e *CooldownError) Is(target error) bool { return target == ErrCooldownViolation }

// Internal envuelve fallas inesperadas del store.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindInternal || errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func NotFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, what, id)
}
