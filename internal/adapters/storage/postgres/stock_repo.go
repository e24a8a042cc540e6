package postgres

import (
	"context"
	"database/sql"
	"errors"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"
)

type stockRepo struct{ tx *sql.Tx }

const selectStock = `
		SELECT facility_id, blood_group, owner_kind, quantity, expiry_date, updated_at
		FROM stock_entries
		WHERE facility_id = $1 AND blood_group = $2`

func (r stockRepo) Get(ctx context.Context, facilityID string, group shared.BloodGroup) (stock.Entry, error) {
	return r.get(ctx, selectStock, facilityID, group)
}

func (r stockRepo) GetForUpdate(ctx context.Context, facilityID string, group shared.BloodGroup) (stock.Entry, error) {
	return r.get(ctx, selectStock+` FOR UPDATE`, facilityID, group)
}

func (r stockRepo) get(ctx context.Context, query, facilityID string, group shared.BloodGroup) (stock.Entry, error) {
	e, err := scanStock(r.tx.QueryRowContext(ctx, query, facilityID, string(group)))
	if errors.Is(err, sql.ErrNoRows) {
		return stock.Entry{}, shared.NotFound("stock entry", facilityID+"/"+string(group))
	}
	if err != nil {
		return stock.Entry{}, mapErr("stock get", err)
	}
	return e, nil
}

// Insert no espera a nadie: si otra transacción creó la misma entrada,
// ON CONFLICT no inserta y se reporta ConcurrencyConflict para reintentar.
func (r stockRepo) Insert(ctx context.Context, e stock.Entry) error {
	res, err := r.tx.ExecContext(ctx, `
		INSERT INTO stock_entries (
			facility_id, blood_group, owner_kind,
			quantity, expiry_date, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (facility_id, blood_group) DO NOTHING
	`,
		e.Owner.ID,
		string(e.BloodGroup),
		string(e.Owner.Kind),
		e.Quantity,
		e.ExpiryDate.UTC(),
		e.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapErr("stock insert", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapErr("stock insert", err)
	}
	if n == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r stockRepo) Update(ctx context.Context, e stock.Entry) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE stock_entries
		SET
			quantity = $3,
			expiry_date = $4,
			updated_at = $5
		WHERE facility_id = $1 AND blood_group = $2
	`,
		e.Owner.ID,
		string(e.BloodGroup),
		e.Quantity,
		e.ExpiryDate.UTC(),
		e.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapErr("stock update", err)
	}
	return requireRow(res, "stock entry", e.Owner.ID+"/"+string(e.BloodGroup))
}

func (r stockRepo) Delete(ctx context.Context, facilityID string, group shared.BloodGroup) error {
	res, err := r.tx.ExecContext(ctx, `
		DELETE FROM stock_entries WHERE facility_id = $1 AND blood_group = $2
	`, facilityID, string(group))
	if err != nil {
		return mapErr("stock delete", err)
	}
	return requireRow(res, "stock entry", facilityID+"/"+string(group))
}

func (r stockRepo) ListByFacility(ctx context.Context, facilityID string) ([]stock.Entry, error) {
	rows, err := r.tx.QueryContext(ctx, `
		SELECT facility_id, blood_group, owner_kind, quantity, expiry_date, updated_at
		FROM stock_entries
		WHERE facility_id = $1
	`, facilityID)
	if err != nil {
		return nil, mapErr("stock list", err)
	}
	defer rows.Close()

	out := make([]stock.Entry, 0)
	for rows.Next() {
		e, err := scanStock(rows)
		if err != nil {
			return nil, mapErr("stock scan", err)
		}
		out = append(out, e)
	}
	return out, mapErr("stock rows", rows.Err())
}

func scanStock(row rowScanner) (stock.Entry, error) {
	var (
		e                 stock.Entry
		facilityID, group string
		kind              string
	)
	if err := row.Scan(&facilityID, &group, &kind, &e.Quantity, &e.ExpiryDate, &e.UpdatedAt); err != nil {
		return stock.Entry{}, err
	}
	e.Owner = shared.OwnerRef{Kind: shared.OwnerKind(kind), ID: facilityID}
	e.BloodGroup = shared.BloodGroup(group)
	e.ExpiryDate = e.ExpiryDate.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}
