package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"blood-ledger/internal/domain/requests"
	"blood-ledger/internal/domain/shared"
)

type requestRepo struct{ tx *sql.Tx }

const requestColumns = `
			id,
			requester_kind, requester_id,
			supplier_kind, supplier_id,
			blood_group, units, remarks,
			state, created_at, processed_at`

func (r requestRepo) Create(ctx context.Context, br requests.BloodRequest) error {
	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO blood_requests (`+requestColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		br.ID,
		string(br.Requester.Kind),
		br.Requester.ID,
		string(br.Supplier.Kind),
		br.Supplier.ID,
		string(br.BloodGroup),
		br.Units,
		br.Remarks,
		string(br.State),
		br.CreatedAt.UTC(),
		toNullTime(br.ProcessedAt),
	)
	return mapErr("request insert", err)
}

func (r requestRepo) Get(ctx context.Context, id string) (requests.BloodRequest, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea el request: un segundo Accept espera al primero y
// después ve el estado ya procesado.
func (r requestRepo) GetForUpdate(ctx context.Context, id string) (requests.BloodRequest, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r requestRepo) get(ctx context.Context, id, lock string) (requests.BloodRequest, error) {
	row := r.tx.QueryRowContext(ctx, `
		SELECT`+requestColumns+`
		FROM blood_requests
		WHERE id = $1`+lock, id)

	br, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return requests.BloodRequest{}, shared.NotFound("request", id)
	}
	if err != nil {
		return requests.BloodRequest{}, mapErr("request get", err)
	}
	return br, nil
}

func (r requestRepo) Update(ctx context.Context, br requests.BloodRequest) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE blood_requests
		SET
			state = $2,
			processed_at = $3
		WHERE id = $1
	`,
		br.ID,
		string(br.State),
		toNullTime(br.ProcessedAt),
	)
	if err != nil {
		return mapErr("request update", err)
	}
	return requireRow(res, "request", br.ID)
}

func (r requestRepo) List(ctx context.Context, f requests.ListFilter) ([]requests.BloodRequest, error) {
	args := []any{f.FacilityID}
	var where string
	switch f.Role {
	case requests.RoleRequester:
		where = "requester_id = $1"
	case requests.RoleSupplier:
		where = "supplier_id = $1"
	default:
		where = "(requester_id = $1 OR supplier_id = $1)"
	}
	conds := []string{where}
	if f.State != "" {
		args = append(args, string(f.State))
		conds = append(conds, fmt.Sprintf("state = $%d", len(args)))
	}

	rows, err := r.tx.QueryContext(ctx, `
		SELECT`+requestColumns+`
		FROM blood_requests
		WHERE `+strings.Join(conds, " AND ")+`
		ORDER BY created_at DESC, id DESC
	`, args...)
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
		processed        sql.NullTime
	)
	if err := row.Scan(
		&br.ID,
		&reqKind, &br.Requester.ID,
		&supKind, &br.Supplier.ID,
		&group, &br.Units, &br.Remarks,
		&state, &br.CreatedAt, &processed,
	); err != nil {
		return requests.BloodRequest{}, err
	}
	br.Requester.Kind = shared.OwnerKind(reqKind)
	br.Supplier.Kind = shared.OwnerKind(supKind)
	br.BloodGroup = shared.BloodGroup(group)
	br.State = requests.State(state)
	br.CreatedAt = br.CreatedAt.UTC()
	br.ProcessedAt = fromNullTime(processed)
	return br, nil
}
