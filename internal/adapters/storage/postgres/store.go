package postgres

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

	"github.com/jackc/pgx/v5/pgconn"
)

// Store implementa los TxRunner del ledger sobre Postgres. Las filas
// disputadas (stock, requests, donantes) se bloquean con FOR UPDATE y los
// appends de auditoría se serializan por la fila de audit_sequences.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) RunStockTx(ctx context.Context, fn func(ctx context.Context, tx stock.Tx) error) error {
	return s.run(ctx, func(ctx context.Context, tx *sql.Tx) error { return fn(ctx, txn{tx: tx}) })
}

func (s *Store) RunAuditTx(ctx context.Context, fn func(ctx context.Context, repo audit.Repository) error) error {
	return s.run(ctx, func(ctx context.Context, tx *sql.Tx) error { return fn(ctx, auditRepo{tx: tx}) })
}

func (s *Store) RunRequestTx(ctx context.Context, fn func(ctx context.Context, tx requests.Tx) error) error {
	return s.run(ctx, func(ctx context.Context, tx *sql.Tx) error { return fn(ctx, txn{tx: tx}) })
}

func (s *Store) RunDonorTx(ctx context.Context, fn func(ctx context.Context, tx donors.Tx) error) error {
	return s.run(ctx, func(ctx context.Context, tx *sql.Tx) error { return fn(ctx, txn{tx: tx}) })
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return mapErr("begin", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return mapErr("commit", tx.Commit())
}

type txn struct{ tx *sql.Tx }

func (t txn) Stock() stock.Repository       { return stockRepo{tx: t.tx} }
func (t txn) Audit() audit.Repository       { return auditRepo{tx: t.tx} }
func (t txn) Requests() requests.Repository { return requestRepo{tx: t.tx} }
func (t txn) Donors() donors.Repository     { return donorRepo{tx: t.tx} }

// Códigos que indican que otra transacción ganó la carrera.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeUniqueViolation      = "23505"
	codeLockNotAvailable     = "55P03"
)

func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeUniqueViolation, codeLockNotAvailable:
			return fmt.Errorf("%w: %s: %s", shared.ErrConcurrencyConflict, op, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireRow(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return shared.NotFound(what, id)
	}
	return nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func fromNullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

type rowScanner interface {
	Scan(dest ...any) error
}
