package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blood-ledger/internal/domain/audit"
	"blood-ledger/internal/domain/donors"
	"blood-ledger/internal/domain/requests"
	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store implementa todos los TxRunner del ledger sobre SQLite. Cada unidad
// de trabajo es una transacción del Worker, así que FOR UPDATE no hace falta.
type Store struct {
	db     *sql.DB
	writer *Worker
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, writer: NewWorker(db)}
}

func (s *Store) Close() error {
	s.writer.Close()
	return s.db.Close()
}

func (s *Store) RunStockTx(ctx context.Context, fn func(ctx context.Context, tx stock.Tx) error) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error { return fn(ctx, txn{tx: tx}) })
}

func (s *Store) RunAuditTx(ctx context.Context, fn func(ctx context.Context, repo audit.Repository) error) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error { return fn(ctx, auditRepo{tx: tx}) })
}

func (s *Store) RunRequestTx(ctx context.Context, fn func(ctx context.Context, tx requests.Tx) error) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error { return fn(ctx, txn{tx: tx}) })
}

func (s *Store) RunDonorTx(ctx context.Context, fn func(ctx context.Context, tx donors.Tx) error) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error { return fn(ctx, txn{tx: tx}) })
}

type txn struct{ tx *sql.Tx }

func (t txn) Stock() stock.Repository       { return stockRepo{tx: t.tx} }
func (t txn) Audit() audit.Repository       { return auditRepo{tx: t.tx} }
func (t txn) Requests() requests.Repository { return requestRepo{tx: t.tx} }
func (t txn) Donors() donors.Repository     { return donorRepo{tx: t.tx} }

// mapErr traduce choques de clave y locks a ConcurrencyConflict.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *sqlitedrv.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE,
			sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %s: %v", shared.ErrConcurrencyConflict, op, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toMs(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMs(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func nullMs(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMs(*t), Valid: true}
}

func fromNullMs(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := fromMs(v.Int64)
	return &t
}

type rowScanner interface {
	Scan(dest ...any) error
}
