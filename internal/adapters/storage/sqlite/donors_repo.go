package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blood-ledger/internal/domain/donors"
	"blood-ledger/internal/domain/shared"

	"github.com/shopspring/decimal"
)

type donorRepo struct{ tx *sql.Tx }

func (r donorRepo) Create(ctx context.Context, d donors.Donor) error {
	_, err := r.tx.ExecContext(ctx, `
INSERT INTO donors(id, name, age, weight_kg, blood_group, last_donation_ms)
VALUES (?, ?, ?, ?, ?, ?);`,
		d.ID, d.Name, d.Age, d.Weight.String(), string(d.BloodGroup), nullMs(d.LastDonationDate))
	return mapErr("donor insert", err)
}

func (r donorRepo) Get(ctx context.Context, id string) (donors.Donor, error) {
	var (
		d      donors.Donor
		weight string
		group  string
		lastMs sql.NullInt64
	)
	err := r.tx.QueryRowContext(ctx, `
SELECT id, name, age, weight_kg, blood_group, last_donation_ms
FROM donors
WHERE id = ?;`, id).Scan(&d.ID, &d.Name, &d.Age, &weight, &group, &lastMs)
	if errors.Is(err, sql.ErrNoRows) {
		return donors.Donor{}, shared.NotFound("donor", id)
	}
	if err != nil {
		return donors.Donor{}, mapErr("donor get", err)
	}

	d.Weight, err = decimal.NewFromString(weight)
	if err != nil {
		return donors.Donor{}, fmt.Errorf("donor %s weight %q: %w", id, weight, err)
	}
	d.BloodGroup = shared.BloodGroup(group)
	d.LastDonationDate = fromNullMs(lastMs)
	return d, nil
}

func (r donorRepo) GetForUpdate(ctx context.Context, id string) (donors.Donor, error) {
	return r.Get(ctx, id)
}

func (r donorRepo) Update(ctx context.Context, d donors.Donor) error {
	res, err := r.tx.ExecContext(ctx, `
UPDATE donors
SET name = ?, age = ?, weight_kg = ?, blood_group = ?, last_donation_ms = ?
WHERE id = ?;`,
		d.Name, d.Age, d.Weight.String(), string(d.BloodGroup), nullMs(d.LastDonationDate), d.ID)
	if err != nil {
		return mapErr("donor update", err)
	}
	return requireRow(res, "donor", d.ID)
}

func (r donorRepo) AppendDonation(ctx context.Context, d donors.Donation) error {
	_, err := r.tx.ExecContext(ctx, `
INSERT INTO donations(id, donor_id, donation_ms, facility_kind, facility_id, blood_group, quantity, verified, remarks)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		d.ID, d.DonorID, toMs(d.DonationDate),
		string(d.RecordingFacility.Kind), d.RecordingFacility.ID,
		string(d.BloodGroup), d.Quantity, boolInt(d.Verified), d.Remarks)
	return mapErr("donation insert", err)
}

const donationColumns = `id, donor_id, donation_ms, facility_kind, facility_id, blood_group, quantity, verified, remarks`

func (r donorRepo) ListDonations(ctx context.Context, donorID string) ([]donors.Donation, error) {
	rows, err := r.tx.QueryContext(ctx, `
SELECT `+donationColumns+`
FROM donations
WHERE donor_id = ?
ORDER BY donation_ms DESC, rowid DESC;`, donorID)
	if err != nil {
		return nil, mapErr("donation list", err)
	}
	defer rows.Close()

	out := make([]donors.Donation, 0)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, mapErr("donation scan", err)
		}
		out = append(out, d)
	}
	return out, mapErr("donation rows", rows.Err())
}

func (r donorRepo) SetDonationVerified(ctx context.Context, donorID, donationID string, verified bool) (donors.Donation, error) {
	res, err := r.tx.ExecContext(ctx, `
UPDATE donations SET verified = ? WHERE id = ? AND donor_id = ?;`,
		boolInt(verified), donationID, donorID)
	if err != nil {
		return donors.Donation{}, mapErr("donation verify", err)
	}
	if err := requireRow(res, "donation", donationID); err != nil {
		return donors.Donation{}, err
	}

	row := r.tx.QueryRowContext(ctx, `
SELECT `+donationColumns+`
FROM donations
WHERE id = ?;`, donationID)
	d, err := scanDonation(row)
	if err != nil {
		return donors.Donation{}, mapErr("donation get", err)
	}
	return d, nil
}

func scanDonation(row rowScanner) (donors.Donation, error) {
	var (
		d           donors.Donation
		donationMs  int64
		kind, group string
		verified    int
	)
	if err := row.Scan(&d.ID, &d.DonorID, &donationMs, &kind, &d.RecordingFacility.ID,
		&group, &d.Quantity, &verified, &d.Remarks); err != nil {
		return donors.Donation{}, err
	}
	d.DonationDate = fromMs(donationMs)
	d.RecordingFacility.Kind = shared.OwnerKind(kind)
	d.BloodGroup = shared.BloodGroup(group)
	d.Verified = verified == 1
	return d, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
