package donors

import (
	"context"

	"blood-ledger/internal/domain/stock"
)

// Repository es el DonorProfileStore visto desde el ledger. Get y
// GetForUpdate devuelven shared.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, d Donor) error
	Get(ctx context.Context, id string) (Donor, error)
	GetForUpdate(ctx context.Context, id string) (Donor, error)
	Update(ctx context.Context, d Donor) error

	AppendDonation(ctx context.Context, d Donation) error
	ListDonations(ctx context.Context, donorID string) ([]Donation, error) // más nueva primero
	SetDonationVerified(ctx context.Context, donorID, donationID string, verified bool) (Donation, error)
}

// Tx: la donación, el crédito de stock y la auditoría commitean juntos.
type Tx interface {
	stock.Tx
	Donors() Repository
}

type TxRunner interface {
	RunDonorTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
