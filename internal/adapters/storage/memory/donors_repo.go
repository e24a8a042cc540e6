package memory

import (
	"context"

	"blood-ledger/internal/domain/donors"
	"blood-ledger/internal/domain/shared"
)

type donorRepo struct{ t *tx }

func (r donorRepo) Create(ctx context.Context, d donors.Donor) error {
	if d.ID == "" {
		return shared.Invalid("donor id required")
	}
	if _, exists := r.t.s.donors[d.ID]; exists {
		return shared.ErrConcurrencyConflict
	}
	r.t.s.donors[d.ID] = cloneDonor(d)
	r.t.onRollback(func() { delete(r.t.s.donors, d.ID) })
	return nil
}

func (r donorRepo) Get(ctx context.Context, id string) (donors.Donor, error) {
	d, ok := r.t.s.donors[id]
	if !ok {
		return donors.Donor{}, shared.NotFound("donor", id)
	}
	return cloneDonor(d), nil
}

func (r donorRepo) GetForUpdate(ctx context.Context, id string) (donors.Donor, error) {
	return r.Get(ctx, id)
}

func (r donorRepo) Update(ctx context.Context, d donors.Donor) error {
	prev, exists := r.t.s.donors[d.ID]
	if !exists {
		return shared.NotFound("donor", d.ID)
	}
	r.t.s.donors[d.ID] = cloneDonor(d)
	r.t.onRollback(func() { r.t.s.donors[d.ID] = prev })
	return nil
}

func (r donorRepo) AppendDonation(ctx context.Context, d donors.Donation) error {
	if _, exists := r.t.s.donors[d.DonorID]; !exists {
		return shared.NotFound("donor", d.DonorID)
	}
	prev := r.t.s.donations[d.DonorID]
	next := make([]donors.Donation, len(prev), len(prev)+1)
	copy(next, prev)
	r.t.s.donations[d.DonorID] = append(next, d)
	r.t.onRollback(func() { r.t.s.donations[d.DonorID] = prev })
	return nil
}

func (r donorRepo) ListDonations(ctx context.Context, donorID string) ([]donors.Donation, error) {
	items := r.t.s.donations[donorID]
	out := make([]donors.Donation, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
	}
	return out, nil
}

func (r donorRepo) SetDonationVerified(ctx context.Context, donorID, donationID string, verified bool) (donors.Donation, error) {
	prev := r.t.s.donations[donorID]
	for i, d := range prev {
		if d.ID != donationID {
			continue
		}
		next := make([]donors.Donation, len(prev))
		copy(next, prev)
		next[i].Verified = verified
		r.t.s.donations[donorID] = next
		r.t.onRollback(func() { r.t.s.donations[donorID] = prev })
		return next[i], nil
	}
	return donors.Donation{}, shared.NotFound("donation", donationID)
}

func cloneDonor(d donors.Donor) donors.Donor {
	if d.LastDonationDate != nil {
		t := *d.LastDonationDate
		d.LastDonationDate = &t
	}
	return d
}
