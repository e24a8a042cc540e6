package postgres

import (
	"context"
	"database/sql"

	"blood-ledger/internal/domain/audit"
)

type auditRepo struct{ tx *sql.Tx }

// Append: el upsert sobre audit_sequences toma el lock de la fila de la
// instalación, así que dos appends concurrentes se ordenan y la poda deja
// exactamente audit.Capacity entradas.
func (r auditRepo) Append(ctx context.Context, e audit.Entry) (audit.Entry, error) {
	err := r.tx.QueryRowContext(ctx, `
		INSERT INTO audit_sequences (facility_id, last_seq) VALUES ($1, 1)
		ON CONFLICT (facility_id) DO UPDATE SET last_seq = audit_sequences.last_seq + 1
		RETURNING last_seq
	`, e.FacilityID).Scan(&e.Seq)
	if err != nil {
		return audit.Entry{}, mapErr("audit next seq", err)
	}

	if _, err := r.tx.ExecContext(ctx, `
		INSERT INTO audit_entries (
			facility_id, seq, event_type, description, date, reference_id
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		e.FacilityID,
		e.Seq,
		string(e.EventType),
		e.Description,
		e.Date.UTC(),
		e.ReferenceID,
	); err != nil {
		return audit.Entry{}, mapErr("audit insert", err)
	}

	if _, err := r.tx.ExecContext(ctx, `
		DELETE FROM audit_entries WHERE facility_id = $1 AND seq <= $2
	`, e.FacilityID, e.Seq-audit.Capacity); err != nil {
		return audit.Entry{}, mapErr("audit evict", err)
	}

	return e, nil
}

func (r auditRepo) ListByFacility(ctx context.Context, facilityID string) ([]audit.Entry, error) {
	rows, err := r.tx.QueryContext(ctx, `
		SELECT facility_id, seq, event_type, description, date, reference_id
		FROM audit_entries
		WHERE facility_id = $1
		ORDER BY seq ASC
	`, facilityID)
	if err != nil {
		return nil, mapErr("audit list", err)
	}
	defer rows.Close()

	out := make([]audit.Entry, 0)
	for rows.Next() {
		var (
			e  audit.Entry
			ev string
		)
		if err := rows.Scan(&e.FacilityID, &e.Seq, &ev, &e.Description, &e.Date, &e.ReferenceID); err != nil {
			return nil, mapErr("audit scan", err)
		}
		e.EventType = audit.EventType(ev)
		e.Date = e.Date.UTC()
		out = append(out, e)
	}
	return out, mapErr("audit rows", rows.Err())
}
