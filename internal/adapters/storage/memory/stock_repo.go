package memory

import (
	"context"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"
)

type stockRepo struct{ t *tx }

func (r stockRepo) Get(ctx context.Context, facilityID string, group shared.BloodGroup) (stock.Entry, error) {
	e, ok := r.t.s.stock[stockKey{facilityID, group}]
	if !ok {
		return stock.Entry{}, shared.NotFound("stock entry", facilityID+"/"+string(group))
	}
	return e, nil
}

// GetForUpdate es igual a Get: la transacción ya tiene el lock del store.
func (r stockRepo) GetForUpdate(ctx context.Context, facilityID string, group shared.BloodGroup) (stock.Entry, error) {
	return r.Get(ctx, facilityID, group)
}

func (r stockRepo) Insert(ctx context.Context, e stock.Entry) error {
	k := stockKey{e.Owner.ID, e.BloodGroup}
	if _, exists := r.t.s.stock[k]; exists {
		return shared.ErrConcurrencyConflict
	}
	r.put(k, e)
	return nil
}

func (r stockRepo) Update(ctx context.Context, e stock.Entry) error {
	k := stockKey{e.Owner.ID, e.BloodGroup}
	if _, exists := r.t.s.stock[k]; !exists {
		return shared.NotFound("stock entry", e.Owner.ID+"/"+string(e.BloodGroup))
	}
	r.put(k, e)
	return nil
}

func (r stockRepo) Delete(ctx context.Context, facilityID string, group shared.BloodGroup) error {
	k := stockKey{facilityID, group}
	prev, exists := r.t.s.stock[k]
	if !exists {
		return shared.NotFound("stock entry", facilityID+"/"+string(group))
	}
	delete(r.t.s.stock, k)
	r.t.onRollback(func() { r.t.s.stock[k] = prev })
	return nil
}

func (r stockRepo) ListByFacility(ctx context.Context, facilityID string) ([]stock.Entry, error) {
	out := make([]stock.Entry, 0)
	for k, e := range r.t.s.stock {
		if k.facilityID == facilityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r stockRepo) put(k stockKey, e stock.Entry) {
	prev, existed := r.t.s.stock[k]
	r.t.s.stock[k] = e
	r.t.onRollback(func() {
		if existed {
			r.t.s.stock[k] = prev
			return
		}
		delete(r.t.s.stock, k)
	})
}
