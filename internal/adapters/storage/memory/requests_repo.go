package memory

import (
	"context"
	"sort"

	"blood-ledger/internal/domain/requests"
	"blood-ledger/internal/domain/shared"
)

type requestRepo struct{ t *tx }

func (r requestRepo) Create(ctx context.Context, br requests.BloodRequest) error {
	if br.ID == "" {
		return shared.Invalid("request id required")
	}
	if _, exists := r.t.s.requests[br.ID]; exists {
		return shared.ErrConcurrencyConflict
	}
	r.t.s.requests[br.ID] = br
	r.t.onRollback(func() { delete(r.t.s.requests, br.ID) })
	return nil
}

func (r requestRepo) Get(ctx context.Context, id string) (requests.BloodRequest, error) {
	br, ok := r.t.s.requests[id]
	if !ok {
		return requests.BloodRequest{}, shared.NotFound("request", id)
	}
	return br, nil
}

func (r requestRepo) GetForUpdate(ctx context.Context, id string) (requests.BloodRequest, error) {
	return r.Get(ctx, id)
}

func (r requestRepo) Update(ctx context.Context, br requests.BloodRequest) error {
	prev, exists := r.t.s.requests[br.ID]
	if !exists {
		return shared.NotFound("request", br.ID)
	}
	r.t.s.requests[br.ID] = br
	r.t.onRollback(func() { r.t.s.requests[br.ID] = prev })
	return nil
}

func (r requestRepo) List(ctx context.Context, f requests.ListFilter) ([]requests.BloodRequest, error) {
	out := make([]requests.BloodRequest, 0)
	for _, br := range r.t.s.requests {
		if !matches(br, f) {
			continue
		}
		out = append(out, br)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func matches(br requests.BloodRequest, f requests.ListFilter) bool {
	if f.State != "" && br.State != f.State {
		return false
	}
	switch f.Role {
	case requests.RoleRequester:
		return br.Requester.ID == f.FacilityID
	case requests.RoleSupplier:
		return br.Supplier.ID == f.FacilityID
	default:
		return br.Involves(f.FacilityID)
	}
}
