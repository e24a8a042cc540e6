package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blood-ledger/internal/domain/shared"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsByOperationAndKind(t *testing.T) {
	r := New("ledger")

	r.Observe(context.Background(), "stock.debit", shared.KindNone, time.Millisecond)
	r.Observe(context.Background(), "stock.debit", shared.KindInsufficientStock, time.Millisecond)
	r.Observe(context.Background(), "stock.debit", shared.KindInsufficientStock, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.total.WithLabelValues("stock.debit", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.total.WithLabelValues("stock.debit", "insufficient_stock")))

	n, err := testutil.GatherAndCount(r.Registry(), "ledger_operations_total", "ledger_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, n) // ok e insufficient_stock en el contador, una serie de duración
}

func TestRecorder_RegistryIncludesRuntimeCollectors(t *testing.T) {
	r := New("ledger")

	families, err := r.Registry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
	// sin observaciones los vectores no exponen series
	assert.False(t, names["ledger_operations_total"])
}

func TestRecorder_Handler(t *testing.T) {
	r := New("ledger")
	r.Observe(context.Background(), "requests.create", shared.KindNone, 2*time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `ledger_operations_total{kind="ok",operation="requests.create"} 1`)
	assert.Contains(t, string(body), "ledger_operation_duration_seconds_bucket")
}
