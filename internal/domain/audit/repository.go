package audit

import "context"

// Repository vive dentro de una transacción del store.
//
// Append asigna Seq (creciente por instalación) y deja como máximo Capacity
// entradas vivas, desalojando las más viejas. Las implementaciones deben
// serializar Append por instalación para que el límite sea exacto.
type Repository interface {
	Append(ctx context.Context, e Entry) (Entry, error)
	ListByFacility(ctx context.Context, facilityID string) ([]Entry, error) // orden de inserción
}

// TxRunner abre una unidad de trabajo con acceso al historial.
type TxRunner interface {
	RunAuditTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
