package sqlite

import (
	"context"
	"database/sql"

	"blood-ledger/internal/domain/audit"
)

type auditRepo struct{ tx *sql.Tx }

// Append toma el próximo Seq de audit_sequences y poda lo que quede fuera
// de las últimas audit.Capacity entradas. Seq es contiguo por instalación.
func (r auditRepo) Append(ctx context.Context, e audit.Entry) (audit.Entry, error) {
	var seq int64
	err := r.tx.QueryRowContext(ctx, `
INSERT INTO audit_sequences(facility_id, last_seq) VALUES (?, 1)
ON CONFLICT(facility_id) DO UPDATE SET last_seq = last_seq + 1
RETURNING last_seq;`, e.FacilityID).Scan(&seq)
	if err != nil {
		return audit.Entry{}, mapErr("audit next seq", err)
	}
	e.Seq = seq

	if _, err := r.tx.ExecContext(ctx, `
INSERT INTO audit_entries(facility_id, seq, event_type, description, date_ms, reference_id)
VALUES (?, ?, ?, ?, ?, ?);`,
		e.FacilityID, e.Seq, string(e.EventType), e.Description, toMs(e.Date), e.ReferenceID); err != nil {
		return audit.Entry{}, mapErr("audit insert", err)
	}

	if _, err := r.tx.ExecContext(ctx, `
DELETE FROM audit_entries WHERE facility_id = ? AND seq <= ?;`,
		e.FacilityID, e.Seq-audit.Capacity); err != nil {
		return audit.Entry{}, mapErr("audit evict", err)
	}

	return e, nil
}

func (r auditRepo) ListByFacility(ctx context.Context, facilityID string) ([]audit.Entry, error) {
	rows, err := r.tx.QueryContext(ctx, `
SELECT facility_id, seq, event_type, description, date_ms, reference_id
FROM audit_entries
WHERE facility_id = ?
ORDER BY seq ASC;`, facilityID)
	if err != nil {
		return nil, mapErr("audit list", err)
	}
	defer rows.Close()

	out := make([]audit.Entry, 0)
	for rows.Next() {
		var (
			e      audit.Entry
			ev     string
			dateMs int64
		)
		if err := rows.Scan(&e.FacilityID, &e.Seq, &ev, &e.Description, &dateMs, &e.ReferenceID); err != nil {
			return nil, mapErr("audit scan", err)
		}
		e.EventType = audit.EventType(ev)
		e.Date = fromMs(dateMs)
		out = append(out, e)
	}
	return out, mapErr("audit rows", rows.Err())
}
