package stock

import (
	"context"

	"blood-ledger/internal/domain/audit"
	"blood-ledger/internal/domain/shared"
)

// Repository opera siempre dentro de una transacción del store.
//
//   - Get / GetForUpdate devuelven shared.ErrNotFound si no hay entrada.
//     GetForUpdate además bloquea la fila hasta el fin de la transacción
//     (en stores serializados es lo mismo que Get).
//   - Insert devuelve shared.ErrConcurrencyConflict si otra transacción
//     creó la misma entrada en paralelo.
type Repository interface {
	Get(ctx context.Context, facilityID string, group shared.BloodGroup) (Entry, error)
	GetForUpdate(ctx context.Context, facilityID string, group shared.BloodGroup) (Entry, error)
	Insert(ctx context.Context, e Entry) error
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, facilityID string, group shared.BloodGroup) error
	ListByFacility(ctx context.Context, facilityID string) ([]Entry, error)
}

// Tx es lo mínimo que necesita el ledger dentro de una unidad de trabajo.
type Tx interface {
	Stock() Repository
	Audit() audit.Repository
}

type TxRunner interface {
	RunStockTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
