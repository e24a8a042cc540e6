package memory

import (
	"context"
	"sync"

	"blood-ledger/internal/domain/audit"
	"blood-ledger/internal/domain/donors"
	"blood-ledger/internal/domain/requests"
	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"
)

type stockKey struct {
	facilityID string
	group      shared.BloodGroup
}

// Store guarda todo en memoria. Cada unidad de trabajo toma el lock del
// store completo y registra un undo por cada escritura; si fn falla (o
// entra en pánico) se deshace en orden inverso.
type Store struct {
	mu sync.Mutex

	stock     map[stockKey]stock.Entry
	requests  map[string]requests.BloodRequest
	trails    map[string]*audit.Ring
	seqs      map[string]int64
	donors    map[string]donors.Donor
	donations map[string][]donors.Donation // por donante, orden de inserción
}

func NewStore() *Store {
	return &Store{
		stock:     make(map[stockKey]stock.Entry),
		requests:  make(map[string]requests.BloodRequest),
		trails:    make(map[string]*audit.Ring),
		seqs:      make(map[string]int64),
		donors:    make(map[string]donors.Donor),
		donations: make(map[string][]donors.Donation),
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) RunStockTx(ctx context.Context, fn func(ctx context.Context, tx stock.Tx) error) error {
	return s.run(ctx, func(ctx context.Context, t *tx) error { return fn(ctx, t) })
}

func (s *Store) RunAuditTx(ctx context.Context, fn func(ctx context.Context, repo audit.Repository) error) error {
	return s.run(ctx, func(ctx context.Context, t *tx) error { return fn(ctx, t.Audit()) })
}

func (s *Store) RunRequestTx(ctx context.Context, fn func(ctx context.Context, tx requests.Tx) error) error {
	return s.run(ctx, func(ctx context.Context, t *tx) error { return fn(ctx, t) })
}

func (s *Store) RunDonorTx(ctx context.Context, fn func(ctx context.Context, tx donors.Tx) error) error {
	return s.run(ctx, func(ctx context.Context, t *tx) error { return fn(ctx, t) })
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context, t *tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{s: s, touchedTrails: map[string]bool{}}
	committed := false
	defer func() {
		if !committed {
			t.rollback()
		}
	}()

	if err := fn(ctx, t); err != nil {
		return err
	}
	committed = true
	return nil
}

type tx struct {
	s             *Store
	undo          []func()
	touchedTrails map[string]bool
}

func (t *tx) Stock() stock.Repository { return stockRepo{t: t} }
func (t *tx) Audit() audit.Repository { return auditRepo{t: t} }
func (t *tx) Requests() requests.Repository { return requestRepo{t: t} }
func (t *tx) Donors() donors.Repository { return donorRepo{t: t} }

func (t *tx) onRollback(fn func()) { t.undo = append(t.undo, fn) }

func (t *tx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}
