package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"blood-ledger/internal/domain/audit"
	"blood-ledger/internal/domain/requests"
	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

func TestRunTx_RollbackRestoresEverything(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.RunStockTx(ctx, func(ctx context.Context, tx stock.Tx) error {
		_, err := stock.ApplyCredit(ctx, tx.Stock(), stock.Movement{Owner: shared.Lab("l1"), BloodGroup: shared.GroupAPos, Quantity: 3}, now)
		if err != nil {
			return err
		}
		_, err = tx.Audit().Append(ctx, audit.Entry{FacilityID: "l1", EventType: audit.EventStockUpdate, Date: now})
		return err
	}))

	boom := errors.New("boom")
	err := s.RunRequestTx(ctx, func(ctx context.Context, tx requests.Tx) error {
		if _, err := stock.ApplyDebit(ctx, tx.Stock(), stock.Movement{Owner: shared.Lab("l1"), BloodGroup: shared.GroupAPos, Quantity: 3}, now); err != nil {
			return err
		}
		if _, err := stock.ApplyCredit(ctx, tx.Stock(), stock.Movement{Owner: shared.Hospital("h1"), BloodGroup: shared.GroupAPos, Quantity: 3}, now); err != nil {
			return err
		}
		if err := tx.Requests().Create(ctx, requests.BloodRequest{ID: "r1", State: requests.StatePending}); err != nil {
			return err
		}
		for i := 0; i < audit.Capacity+5; i++ {
			if _, err := tx.Audit().Append(ctx, audit.Entry{FacilityID: "l1", EventType: audit.EventRequestAccepted, Date: now}); err != nil {
				return err
			}
		}
		_, err := tx.Audit().Append(ctx, audit.Entry{FacilityID: "h1", EventType: audit.EventRequestFulfilled, Date: now})
		if err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.RunRequestTx(ctx, func(ctx context.Context, tx requests.Tx) error {
		e, err := tx.Stock().Get(ctx, "l1", shared.GroupAPos)
		require.NoError(t, err)
		assert.Equal(t, 3, e.Quantity)

		_, err = tx.Stock().Get(ctx, "h1", shared.GroupAPos)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = tx.Requests().Get(ctx, "r1")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		l1, err := tx.Audit().ListByFacility(ctx, "l1")
		require.NoError(t, err)
		require.Len(t, l1, 1)
		assert.Equal(t, int64(1), l1[0].Seq)

		h1, err := tx.Audit().ListByFacility(ctx, "h1")
		require.NoError(t, err)
		assert.Empty(t, h1)
		return nil
	}))

	// La secuencia sigue desde donde quedó el último commit.
	require.NoError(t, s.RunAuditTx(ctx, func(ctx context.Context, repo audit.Repository) error {
		e, err := repo.Append(ctx, audit.Entry{FacilityID: "l1", EventType: audit.EventStockUpdate, Date: now})
		require.NoError(t, err)
		assert.Equal(t, int64(2), e.Seq)
		return nil
	}))
}

func TestRunTx_PanicRollsBack(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.RunStockTx(ctx, func(ctx context.Context, tx stock.Tx) error {
			_, _ = stock.ApplyCredit(ctx, tx.Stock(), stock.Movement{Owner: shared.Lab("l1"), BloodGroup: shared.GroupOPos, Quantity: 1}, now)
			panic("kaboom")
		})
	})

	require.NoError(t, s.RunStockTx(ctx, func(ctx context.Context, tx stock.Tx) error {
		items, err := tx.Stock().ListByFacility(ctx, "l1")
		require.NoError(t, err)
		assert.Empty(t, items)
		return nil
	}))
}

func TestRunTx_CancelledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.RunStockTx(ctx, func(context.Context, stock.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStockRepo_InsertDuplicateIsConflict(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.RunStockTx(ctx, func(ctx context.Context, tx stock.Tx) error {
		e := stock.Entry{Owner: shared.Lab("l1"), BloodGroup: shared.GroupOPos, Quantity: 1}
		require.NoError(t, tx.Stock().Insert(ctx, e))
		return tx.Stock().Insert(ctx, e)
	})
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}
