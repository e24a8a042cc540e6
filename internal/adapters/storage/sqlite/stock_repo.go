package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"
)

type stockRepo struct{ tx *sql.Tx }

const stockColumns = `facility_id, blood_group, owner_kind, quantity, expiry_ms, updated_at_ms`

func (r stockRepo) Get(ctx context.Context, facilityID string, group shared.BloodGroup) (stock.Entry, error) {
	row := r.tx.QueryRowContext(ctx, `
SELECT `+stockColumns+`
FROM stock_entries
WHERE facility_id = ? AND blood_group = ?;`, facilityID, string(group))

	e, err := scanStock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return stock.Entry{}, shared.NotFound("stock entry", facilityID+"/"+string(group))
	}
	if err != nil {
		return stock.Entry{}, mapErr("stock get", err)
	}
	return e, nil
}

func (r stockRepo) GetForUpdate(ctx context.Context, facilityID string, group shared.BloodGroup) (stock.Entry, error) {
	return r.Get(ctx, facilityID, group)
}

func (r stockRepo) Insert(ctx context.Context, e stock.Entry) error {
	_, err := r.tx.ExecContext(ctx, `
INSERT INTO stock_entries(`+stockColumns+`)
VALUES (?, ?, ?, ?, ?, ?);`,
		e.Owner.ID, string(e.BloodGroup), string(e.Owner.Kind), e.Quantity, toMs(e.ExpiryDate), toMs(e.UpdatedAt))
	return mapErr("stock insert", err)
}

func (r stockRepo) Update(ctx context.Context, e stock.Entry) error {
	res, err := r.tx.ExecContext(ctx, `
UPDATE stock_entries
SET quantity = ?, expiry_ms = ?, updated_at_ms = ?
WHERE facility_id = ? AND blood_group = ?;`,
		e.Quantity, toMs(e.ExpiryDate), toMs(e.UpdatedAt), e.Owner.ID, string(e.BloodGroup))
	if err != nil {
		return mapErr("stock update", err)
	}
	return requireRow(res, "stock entry", e.Owner.ID+"/"+string(e.BloodGroup))
}

func (r stockRepo) Delete(ctx context.Context, facilityID string, group shared.BloodGroup) error {
	res, err := r.tx.ExecContext(ctx, `
DELETE FROM stock_entries WHERE facility_id = ? AND blood_group = ?;`, facilityID, string(group))
	if err != nil {
		return mapErr("stock delete", err)
	}
	return requireRow(res, "stock entry", facilityID+"/"+string(group))
}

func (r stockRepo) ListByFacility(ctx context.Context, facilityID string) ([]stock.Entry, error) {
	rows, err := r.tx.QueryContext(ctx, `
SELECT `+stockColumns+`
FROM stock_entries
WHERE facility_id = ?;`, facilityID)
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
		e                   stock.Entry
		facilityID, group   string
		kind                string
		expiryMs, updatedMs int64
	)
	if err := row.Scan(&facilityID, &group, &kind, &e.Quantity, &expiryMs, &updatedMs); err != nil {
		return stock.Entry{}, err
	}
	e.Owner = shared.OwnerRef{Kind: shared.OwnerKind(kind), ID: facilityID}
	e.BloodGroup = shared.BloodGroup(group)
	e.ExpiryDate = fromMs(expiryMs)
	e.UpdatedAt = fromMs(updatedMs)
	return e, nil
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
