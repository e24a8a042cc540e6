package donors

import (
	"time"

	"blood-ledger/internal/domain/shared"

	"github.com/shopspring/decimal"
)

// Donor es la parte del perfil que le importa al ledger. El resto del
// perfil (contacto, dirección) vive en otro servicio.
type Donor struct {
	ID     string
	Name   string
	Age    int
	Weight decimal.Decimal // kg

	// BloodGroup puede estar vacío hasta la primera donación tipada.
	BloodGroup       shared.BloodGroup
	LastDonationDate *time.Time
}

// Donation es inmutable salvo Verified.
type Donation struct {
	ID      string
	DonorID string

	DonationDate      time.Time
	RecordingFacility shared.OwnerRef

	BloodGroup shared.BloodGroup
	Quantity   int
	Verified   bool
	Remarks    string
}
