package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"blood-ledger/internal/domain/requests"
	"blood-ledger/internal/domain/shared"
)

type requestRepo struct{ tx *sql.Tx }

const requestColumns = `id, requester_kind, requester_id, supplier_kind, supplier_id,
  blood_group, units, remarks, state, created_at_ms, processed_at_ms`

func (r requestRepo) Create(ctx context.Context, br requests.BloodRequest) error {
	_, err := r.tx.ExecContext(ctx, `
INSERT INTO blood_requests(`+requestColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		br.ID,
		string(br.Requester.Kind), br.Requester.ID,
		string(br.Supplier.Kind), br.Supplier.ID,
		string(br.BloodGroup), br.Units, br.Remarks, string(br.State),
		toMs(br.CreatedAt), nullMs(br.ProcessedAt),
	)
	return mapErr("request insert", err)
}

func (r requestRepo) Get(ctx context.Context, id string) (requests.BloodRequest, error) {
	row := r.tx.QueryRowContext(ctx, `
SELECT `+requestColumns+`
FROM blood_requests
WHERE id = ?;`, id)

	br, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return requests.BloodRequest{}, shared.NotFound("request", id)
	}
	if err != nil {
		return requests.BloodRequest{}, mapErr("request get", err)
	}
	return br, nil
}

func (r requestRepo) GetForUpdate(ctx context.Context, id string) (requests.BloodRequest, error) {
	return r.Get(ctx, id)
}

// Update solo toca estado y processed_at: el resto del request es inmutable.
func (r requestRepo) Update(ctx context.Context, br requests.BloodRequest) error {
	res, err := r.tx.ExecContext(ctx, `
UPDATE blood_requests
SET state = ?, processed_at_ms = ?
WHERE id = ?;`, string(br.State), nullMs(br.ProcessedAt), br.ID)
	if err != nil {
		return mapErr("request update", err)
	}
	return requireRow(res, "request", br.ID)
}

func (r requestRepo) List(ctx context.Context, f requests.ListFilter) ([]requests.BloodRequest, error) {
	var (
		where []string
		args  []any
	)
	switch f.Role {
	case requests.RoleRequester:
		where = append(where, "requester_id = ?")
		args = append(args, f.FacilityID)
	case requests.RoleSupplier:
		where = append(where, "supplier_id = ?")
		args = append(args, f.FacilityID)
	default:
		where = append(where, "(requester_id = ? OR supplier_id = ?)")
		args = append(args, f.FacilityID, f.FacilityID)
	}
	if f.State != "" {
		where = append(where, "state = ?")
		args = append(args, string(f.State))
	}

	rows, err := r.tx.QueryContext(ctx, `
SELECT `+requestColumns+`
FROM blood_requests
WHERE `+strings.Join(where, " AND ")+`
ORDER BY created_at_ms DESC, id DESC;`, args...)
	if err != nil {
		return nil, mapErr("request list", err)
	}
	defer rows.Close()

	out := make([]requests.BloodRequest, 0)
	for rows.Next() {
		br, err := scanRequest(rows)
		if err != nil {
			return nil, mapErr("request scan", err)
		}
		out = append(out, br)
	}
	return out, mapErr("request rows", rows.Err())
}

func scanRequest(row rowScanner) (requests.BloodRequest, error) {
	var (
		br               requests.BloodRequest
		reqKind, supKind string
		group, state     string
		createdMs        int64
		processedMs      sql.NullInt64
	)
	if err := row.Scan(
		&br.ID,
		&reqKind, &br.Requester.ID,
		&supKind, &br.Supplier.ID,
		&group, &br.Units, &br.Remarks, &state,
		&createdMs, &processedMs,
	); err != nil {
		return requests.BloodRequest{}, err
	}
	br.Requester.Kind = shared.OwnerKind(reqKind)
	br.Supplier.Kind = shared.OwnerKind(supKind)
	br.BloodGroup = shared.BloodGroup(group)
	br.State = requests.State(state)
	br.CreatedAt = fromMs(createdMs)
	br.ProcessedAt = fromNullMs(processedMs)
	return br, nil
}
