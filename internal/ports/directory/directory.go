package directory

import (
	"context"

	"blood-ledger/internal/domain/shared"
)

// FacilityDirectory sabe qué instalaciones pueden abastecer sangre.
// Vive fuera del ledger; la consulta se hace antes de abrir la transacción.
type FacilityDirectory interface {
	IsApprovedSupplier(ctx context.Context, supplier shared.OwnerRef) (bool, error)
}
