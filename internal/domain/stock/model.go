package stock

import (
	"time"

	"blood-ledger/internal/domain/shared"
)

// ShelfLife es la vida útil de una unidad desde el último crédito.
const ShelfLife = 42 * 24 * time.Hour

// MaxQuantity acota unidades por movimiento y por entrada. Entra en
// INTEGER de Postgres y SQLite.
const MaxQuantity = 1_000_000

// Entry es el agregado de un grupo sanguíneo en una instalación.
// Identidad: (Owner.ID, BloodGroup). Quantity nunca es 0 en el store:
// al llegar a cero la entrada se borra.
type Entry struct {
	Owner      shared.OwnerRef
	BloodGroup shared.BloodGroup
	Quantity   int

	// ExpiryDate corresponde al crédito más reciente, no al lote más viejo.
	ExpiryDate time.Time
	UpdatedAt  time.Time
}

func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiryDate)
}

// Movement es un crédito o débito pedido sobre una entrada.
type Movement struct {
	Owner      shared.OwnerRef
	BloodGroup shared.BloodGroup
	Quantity   int
}

// Validate normaliza owner y grupo y exige cantidad en [1, MaxQuantity].
func (m Movement) Validate() (Movement, error) {
	owner, err := m.Owner.Validate()
	if err != nil {
		return Movement{}, err
	}
	if !m.BloodGroup.Valid() {
		return Movement{}, shared.Invalid("unknown blood group %q", m.BloodGroup)
	}
	if m.Quantity <= 0 {
		return Movement{}, shared.Invalid("quantity must be positive, got %d", m.Quantity)
	}
	if m.Quantity > MaxQuantity {
		return Movement{}, shared.Invalid("quantity must be at most %d, got %d", MaxQuantity, m.Quantity)
	}
	return Movement{Owner: owner, BloodGroup: m.BloodGroup, Quantity: m.Quantity}, nil
}
