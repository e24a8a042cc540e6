package requests

import (
	"context"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"
)

// Repository opera dentro de una transacción. Get/GetForUpdate devuelven
// shared.ErrNotFound; GetForUpdate bloquea la fila hasta el commit.
type Repository interface {
	Create(ctx context.Context, r BloodRequest) error
	Get(ctx context.Context, id string) (BloodRequest, error)
	GetForUpdate(ctx context.Context, id string) (BloodRequest, error)
	Update(ctx context.Context, r BloodRequest) error
	List(ctx context.Context, filter ListFilter) ([]BloodRequest, error) // más nuevo primero
}

// Tx: la aceptación mueve stock, cambia el request y audita en una sola unidad.
type Tx interface {
	stock.Tx
	Requests() Repository
}

type TxRunner interface {
	RunRequestTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// SupplierDirectory es el único pedazo del FacilityDirectory que usa el orquestador.
type SupplierDirectory interface {
	IsApprovedSupplier(ctx context.Context, supplier shared.OwnerRef) (bool, error)
}
