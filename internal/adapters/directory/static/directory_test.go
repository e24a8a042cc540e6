package static

import (
	"context"
	"testing"

	"blood-ledger/internal/domain/shared"

	"github.com/stretchr/testify/assert"
)

func TestDirectory(t *testing.T) {
	d := New(shared.Lab("labX"))
	ctx := context.Background()

	ok, _ := d.IsApprovedSupplier(ctx, shared.Lab("labX"))
	assert.True(t, ok)

	// Mismo ID con otro tipo no es el mismo proveedor.
	ok, _ = d.IsApprovedSupplier(ctx, shared.Hospital("labX"))
	assert.False(t, ok)

	d.Approve(shared.Hospital("h1"))
	ok, _ = d.IsApprovedSupplier(ctx, shared.Hospital("h1"))
	assert.True(t, ok)
	assert.Len(t, d.Suppliers(), 2)

	d.Revoke(shared.Lab("labX"))
	ok, _ = d.IsApprovedSupplier(ctx, shared.Lab("labX"))
	assert.False(t, ok)
}
