package static

import (
	"context"
	"sync"

	"blood-ledger/internal/domain/shared"
)

// Directory es una lista fija de proveedores aprobados (config o dev).
type Directory struct {
	mu       sync.RWMutex
	approved map[shared.OwnerRef]bool
}

func New(approved ...shared.OwnerRef) *Directory {
	d := &Directory{approved: make(map[shared.OwnerRef]bool, len(approved))}
	for _, o := range approved {
		d.approved[o] = true
	}
	return d
}

func (d *Directory) IsApprovedSupplier(_ context.Context, supplier shared.OwnerRef) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.approved[supplier], nil
}

func (d *Directory) Approve(o shared.OwnerRef) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.approved[o] = true
}

func (d *Directory) Revoke(o shared.OwnerRef) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.approved, o)
}

// Suppliers devuelve una copia de la lista, sin orden.
func (d *Directory) Suppliers() []shared.OwnerRef {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]shared.OwnerRef, 0, len(d.approved))
	for o := range d.approved {
		out = append(out, o)
	}
	return out
}
