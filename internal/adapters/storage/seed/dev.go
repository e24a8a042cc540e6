// Package seed carga datos de desarrollo en cualquier store del ledger.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blood-ledger/internal/domain/donors"
	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"

	"github.com/shopspring/decimal"
)

type DevOptions struct {
	// Suppliers reciben stock inicial de cada grupo (normalmente los labs aprobados).
	Suppliers   []shared.OwnerRef
	UnitsPerLab int
	Now         time.Time
	SkipDonors  bool
}

// DevDonors son los donantes fijos del entorno dev.
func DevDonors(now time.Time) []donors.Donor {
	recent := now.AddDate(0, 0, -10)
	old := now.AddDate(0, -6, 0)
	return []donors.Donor{
		{ID: "donor-ana", Name: "Ana", Age: 29, Weight: decimal.NewFromInt(62), BloodGroup: shared.GroupOPos, LastDonationDate: &old},
		{ID: "donor-bruno", Name: "Bruno", Age: 41, Weight: decimal.RequireFromString("78.5"), BloodGroup: shared.GroupANeg, LastDonationDate: &recent},
		{ID: "donor-carla", Name: "Carla", Age: 17, Weight: decimal.NewFromInt(55), BloodGroup: shared.GroupBPos},
		{ID: "donor-dario", Name: "Dario", Age: 35, Weight: decimal.NewFromInt(44)},
	}
}

// Dev es idempotente: no pisa donantes existentes y solo acredita stock
// donde la instalación todavía no tiene entrada.
func Dev(ctx context.Context, runner donors.TxRunner, opt DevOptions) error {
	if opt.Now.IsZero() {
		opt.Now = time.Now().UTC()
	}
	if opt.UnitsPerLab <= 0 {
		opt.UnitsPerLab = 20
	}

	return runner.RunDonorTx(ctx, func(ctx context.Context, tx donors.Tx) error {
		if !opt.SkipDonors {
			for _, d := range DevDonors(opt.Now) {
				_, err := tx.Donors().Get(ctx, d.ID)
				if err == nil {
					continue
				}
				if !errors.Is(err, shared.ErrNotFound) {
					return fmt.Errorf("seed donor %s: %w", d.ID, err)
				}
				if err := tx.Donors().Create(ctx, d); err != nil {
					return fmt.Errorf("seed donor %s: %w", d.ID, err)
				}
			}
		}

		for _, owner := range opt.Suppliers {
			for _, g := range shared.BloodGroups {
				_, err := tx.Stock().Get(ctx, owner.ID, g)
				if err == nil {
					continue
				}
				if !errors.Is(err, shared.ErrNotFound) {
					return fmt.Errorf("seed stock %s/%s: %w", owner.ID, g, err)
				}
				m := stock.Movement{Owner: owner, BloodGroup: g, Quantity: opt.UnitsPerLab}
				if _, err := stock.ApplyCredit(ctx, tx.Stock(), m, opt.Now); err != nil {
					return fmt.Errorf("seed stock %s/%s: %w", owner.ID, g, err)
				}
			}
		}
		return nil
	})
}
