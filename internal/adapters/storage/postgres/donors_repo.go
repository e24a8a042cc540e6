package postgres

import (
	"context"
	"database/sql"
	"errors"

	"blood-ledger/internal/domain/donors"
	"blood-ledger/internal/domain/shared"
)

type donorRepo struct{ tx *sql.Tx }

const selectDonor = `
		SELECT id, name, age, weight_kg, blood_group, last_donation_date
		FROM donors
		WHERE id = $1`

func (r donorRepo) Create(ctx context.Context, d donors.Donor) error {
	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO donors (
			id, name, age, weight_kg, blood_group, last_donation_date
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		d.ID,
		d.Name,
		d.Age,
		d.Weight,
		string(d.BloodGroup),
		toNullTime(d.LastDonationDate),
	)
	return mapErr("donor insert", err)
}

func (r donorRepo) Get(ctx context.Context, id string) (donors.Donor, error) {
	return r.get(ctx, selectDonor, id)
}

func (r donorRepo) GetForUpdate(ctx context.Context, id string) (donors.Donor, error) {
	return r.get(ctx, selectDonor+` FOR UPDATE`, id)
}

func (r donorRepo) get(ctx context.Context, query, id string) (donors.Donor, error) {
	var (
		d     donors.Donor
		group string
		last  sql.NullTime
	)
	// decimal.Decimal implementa sql.Scanner sobre NUMERIC.
	err := r.tx.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Age, &d.Weight, &group, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return donors.Donor{}, shared.NotFound("donor", id)
	}
	if err != nil {
		return donors.Donor{}, mapErr("donor get", err)
	}
	d.BloodGroup = shared.BloodGroup(group)
	d.LastDonationDate = fromNullTime(last)
	return d, nil
}

func (r donorRepo) Update(ctx context.Context, d donors.Donor) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE donors
		SET
			name = $2,
			age = $3,
			weight_kg = $4,
			blood_group = $5,
			last_donation_date = $6
		WHERE id = $1
	`,
		d.ID,
		d.Name,
		d.Age,
		d.Weight,
		string(d.BloodGroup),
		toNullTime(d.LastDonationDate),
	)
	if err != nil {
		return mapErr("donor update", err)
	}
	return requireRow(res, "donor", d.ID)
}

func (r donorRepo) AppendDonation(ctx context.Context, d donors.Donation) error {
	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO donations (
			id, donor_id, donation_date,
			facility_kind, facility_id,
			blood_group, quantity, verified, remarks
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		d.ID,
		d.DonorID,
		d.DonationDate.UTC(),
		string(d.RecordingFacility.Kind),
		d.RecordingFacility.ID,
		string(d.BloodGroup),
		d.Quantity,
		d.Verified,
		d.Remarks,
	)
	return mapErr("donation insert", err)
}

const donationColumns = `
			id, donor_id, donation_date,
			facility_kind, facility_id,
			blood_group, quantity, verified, remarks`

func (r donorRepo) ListDonations(ctx context.Context, donorID string) ([]donors.Donation, error) {
	rows, err := r.tx.QueryContext(ctx, `
		SELECT`+donationColumns+`
		FROM donations
		WHERE donor_id = $1
		ORDER BY donation_date DESC, seq DESC
	`, donorID)
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
	row := r.tx.QueryRowContext(ctx, `
		UPDATE donations
		SET verified = $3
		WHERE id = $1 AND donor_id = $2
		RETURNING`+donationColumns,
		donationID, donorID, verified)

	d, err := scanDonation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return donors.Donation{}, shared.NotFound("donation", donationID)
	}
	if err != nil {
		return donors.Donation{}, mapErr("donation verify", err)
	}
	return d, nil
}

func scanDonation(row rowScanner) (donors.Donation, error) {
	var (
		d           donors.Donation
		kind, group string
	)
	if err := row.Scan(
		&d.ID, &d.DonorID, &d.DonationDate,
		&kind, &d.RecordingFacility.ID,
		&group, &d.Quantity, &d.Verified, &d.Remarks,
	); err != nil {
		return donors.Donation{}, err
	}
	d.DonationDate = d.DonationDate.UTC()
	d.RecordingFacility.Kind = shared.OwnerKind(kind)
	d.BloodGroup = shared.BloodGroup(group)
	return d, nil
}
