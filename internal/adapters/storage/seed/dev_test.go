package seed_test

import (
	"context"
	"testing"
	"time"

	"blood-ledger/internal/adapters/storage/memory"
	"blood-ledger/internal/adapters/storage/seed"
	"blood-ledger/internal/domain/donors"
	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDev_Idempotent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	opt := seed.DevOptions{
		Suppliers:   []shared.OwnerRef{shared.Lab("lab-central")},
		UnitsPerLab: 5,
		Now:         time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, seed.Dev(ctx, store, opt))
	require.NoError(t, seed.Dev(ctx, store, opt))

	inv, err := stock.NewService(store, nil, nil).Inventory(ctx, "lab-central")
	require.NoError(t, err)
	require.Len(t, inv, len(shared.BloodGroups))
	for _, e := range inv {
		assert.Equal(t, 5, e.Quantity)
	}

	svc := donors.NewService(store, nil, nil)
	for _, d := range seed.DevDonors(opt.Now) {
		got, err := svc.Get(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, d.Name, got.Name)
	}
}
