package stock

import (
	"context"
	"errors"
	"time"

	"blood-ledger/internal/domain/shared"
)

// ApplyCredit suma m.Quantity a la entrada (o la crea) y resetea el
// vencimiento a now + ShelfLife. No escribe auditoría: eso lo decide quien
// llama (el ledger directo, una aceptación de request o una donación).
// m debe venir validado.
func ApplyCredit(ctx context.Context, repo Repository, m Movement, now time.Time) (Entry, error) {
	now = now.UTC()

	current, err := repo.GetForUpdate(ctx, m.Owner.ID, m.BloodGroup)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		e := Entry{
			Owner:      m.Owner,
			BloodGroup: m.BloodGroup,
			Quantity:   m.Quantity,
			ExpiryDate: now.Add(ShelfLife),
			UpdatedAt:  now,
		}
		if err := repo.Insert(ctx, e); err != nil {
			return Entry{}, err
		}
		return e, nil
	case err != nil:
		return Entry{}, err
	}

	if current.Owner.Kind != m.Owner.Kind {
		return Entry{}, shared.Invalid("facility %s holds stock as %s, not %s",
			m.Owner.ID, current.Owner.Kind, m.Owner.Kind)
	}

	if current.Quantity > MaxQuantity-m.Quantity {
		return Entry{}, shared.Invalid("facility %s would hold more than %d unit(s) of %s",
			m.Owner.ID, MaxQuantity, m.BloodGroup)
	}

	current.Quantity += m.Quantity
	current.ExpiryDate = now.Add(ShelfLife)
	current.UpdatedAt = now
	if err := repo.Update(ctx, current); err != nil {
		return Entry{}, err
	}
	return current, nil
}

// ApplyDebit resta m.Quantity. Sin entrada o con menos unidades que las
// pedidas devuelve *shared.InsufficientStockError y no toca nada.
// Si la cantidad llega a cero la entrada se borra; el Entry devuelto
// queda con Quantity 0.
func ApplyDebit(ctx context.Context, repo Repository, m Movement, now time.Time) (Entry, error) {
	now = now.UTC()

	current, err := repo.GetForUpdate(ctx, m.Owner.ID, m.BloodGroup)
	if errors.Is(err, shared.ErrNotFound) {
		return Entry{}, &shared.InsufficientStockError{
			FacilityID: m.Owner.ID,
			BloodGroup: m.BloodGroup,
			Available:  0,
			Requested:  m.Quantity,
		}
	}
	if err != nil {
		return Entry{}, err
	}

	if current.Owner.Kind != m.Owner.Kind {
		return Entry{}, shared.Invalid("facility %s holds stock as %s, not %s",
			m.Owner.ID, current.Owner.Kind, m.Owner.Kind)
	}
	if current.Quantity < m.Quantity {
		return Entry{}, &shared.InsufficientStockError{
			FacilityID: m.Owner.ID,
			BloodGroup: m.BloodGroup,
			Available:  current.Quantity,
			Requested:  m.Quantity,
		}
	}

	current.Quantity -= m.Quantity
	current.UpdatedAt = now
	if current.Quantity == 0 {
		if err := repo.Delete(ctx, m.Owner.ID, m.BloodGroup); err != nil {
			return Entry{}, err
		}
		return current, nil
	}
	if err := repo.Update(ctx, current); err != nil {
		return Entry{}, err
	}
	return current, nil
}
