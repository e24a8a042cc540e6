package stock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"blood-ledger/internal/domain/audit"
	"blood-ledger/internal/domain/shared"
)

type Service struct {
	runner TxRunner
	obs    shared.Observer
	notify *audit.Notifier
	now    func() time.Time
}

func NewService(runner TxRunner, obs shared.Observer, notify *audit.Notifier) *Service {
	if obs == nil {
		obs = shared.NopObserver()
	}
	return &Service{
		runner: runner,
		obs:    obs,
		notify: notify,
		now:    time.Now,
	}
}

// Credit suma unidades a la instalación y deja una entrada "Stock Update".
func (s *Service) Credit(ctx context.Context, m Movement) (out Entry, err error) {
	defer shared.Track(ctx, s.obs, "stock.credit", time.Now(), &err)

	m, err = m.Validate()
	if err != nil {
		return Entry{}, err
	}

	var logged audit.Entry
	err = shared.RetryOnConflict(ctx, func() error {
		return s.runner.RunStockTx(ctx, func(ctx context.Context, tx Tx) error {
			now := s.now()
			e, err := ApplyCredit(ctx, tx.Stock(), m, now)
			if err != nil {
				return err
			}
			logged, err = appendStockUpdate(ctx, tx, m, now,
				fmt.Sprintf("Credited %d unit(s) of %s; now %d", m.Quantity, m.BloodGroup, e.Quantity))
			if err != nil {
				return err
			}
			out = e
			return nil
		})
	})
	if err != nil {
		return Entry{}, shared.Internal(err)
	}

	s.notify.Notify(ctx, logged)
	return out, nil
}

// Debit resta unidades; falla con InsufficientStock sin tocar el estado.
func (s *Service) Debit(ctx context.Context, m Movement) (out Entry, err error) {
	defer shared.Track(ctx, s.obs, "stock.debit", time.Now(), &err)

	m, err = m.Validate()
	if err != nil {
		return Entry{}, err
	}

	var logged audit.Entry
	err = shared.RetryOnConflict(ctx, func() error {
		return s.runner.RunStockTx(ctx, func(ctx context.Context, tx Tx) error {
			now := s.now()
			e, err := ApplyDebit(ctx, tx.Stock(), m, now)
			if err != nil {
				return err
			}
			logged, err = appendStockUpdate(ctx, tx, m, now,
				fmt.Sprintf("Debited %d unit(s) of %s; now %d", m.Quantity, m.BloodGroup, e.Quantity))
			if err != nil {
				return err
			}
			out = e
			return nil
		})
	})
	if err != nil {
		return Entry{}, shared.Internal(err)
	}

	s.notify.Notify(ctx, logged)
	return out, nil
}

// Available devuelve 0 si no hay entrada.
func (s *Service) Available(ctx context.Context, facilityID string, group shared.BloodGroup) (qty int, err error) {
	defer shared.Track(ctx, s.obs, "stock.available", time.Now(), &err)

	facilityID = strings.TrimSpace(facilityID)
	if facilityID == "" {
		return 0, shared.Invalid("facility id required")
	}
	if !group.Valid() {
		return 0, shared.Invalid("unknown blood group %q", group)
	}

	err = s.runner.RunStockTx(ctx, func(ctx context.Context, tx Tx) error {
		e, err := tx.Stock().Get(ctx, facilityID, group)
		if errors.Is(err, shared.ErrNotFound) {
			qty = 0
			return nil
		}
		if err != nil {
			return err
		}
		qty = e.Quantity
		return nil
	})
	if err != nil {
		return 0, shared.Internal(err)
	}
	return qty, nil
}

// Inventory lista las entradas de una instalación ordenadas por grupo.
func (s *Service) Inventory(ctx context.Context, facilityID string) (out []Entry, err error) {
	defer shared.Track(ctx, s.obs, "stock.inventory", time.Now(), &err)

	facilityID = strings.TrimSpace(facilityID)
	if facilityID == "" {
		return nil, shared.Invalid("facility id required")
	}

	err = s.runner.RunStockTx(ctx, func(ctx context.Context, tx Tx) error {
		items, err := tx.Stock().ListByFacility(ctx, facilityID)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, shared.Internal(err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].BloodGroup.Rank() < out[j].BloodGroup.Rank() })
	return out, nil
}

// Now expone el reloj del servicio (handlers calculan Expired con él).
func (s *Service) Now() time.Time { return s.now() }

func appendStockUpdate(ctx context.Context, tx Tx, m Movement, now time.Time, desc string) (audit.Entry, error) {
	e, err := audit.NewEntry(audit.AppendInput{
		FacilityID:  m.Owner.ID,
		EventType:   audit.EventStockUpdate,
		Description: desc,
		ReferenceID: m.Owner.ID + "/" + string(m.BloodGroup),
	}, now)
	if err != nil {
		return audit.Entry{}, err
	}
	return tx.Audit().Append(ctx, e)
}
