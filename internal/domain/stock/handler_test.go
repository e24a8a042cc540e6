package stock_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"
	"blood-ledger/internal/middleware"
	"blood-ledger/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, svc *stock.Service, claims *auth.Claims, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	stock.RegisterRoutes(r, svc)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), *claims))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreditDebitAndInventory(t *testing.T) {
	svc, _, now := newSvc(t)
	lab := &auth.Claims{UserID: "u1", Role: auth.RoleLab, FacilityID: "labX"}

	rec := serve(t, svc, lab, http.MethodPost, "/stock/credit", `{"blood_group":"o+","quantity":6}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(t, svc, lab, http.MethodPost, "/stock/debit", `{"blood_group":"O+","quantity":9}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	var errBody struct {
		Error     string `json:"error"`
		Available *int   `json:"available"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, "insufficient_stock", errBody.Error)
	require.NotNil(t, errBody.Available)
	assert.Equal(t, 6, *errBody.Available)

	// pasado el vencimiento el inventario lo marca
	*now = now.Add(stock.ShelfLife + time.Hour)
	rec = serve(t, svc, lab, http.MethodGet, "/stock/labX", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []struct {
		BloodGroup string `json:"blood_group"`
		Quantity   int    `json:"quantity"`
		Expired    bool   `json:"expired"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "O+", items[0].BloodGroup)
	assert.True(t, items[0].Expired)

	rec = serve(t, svc, lab, http.MethodGet, "/stock/labX/O%2B", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available":6`)
}

func TestHandler_AdminOverrideAndAccess(t *testing.T) {
	svc, _, _ := newSvc(t)

	admin := &auth.Claims{UserID: "root", Role: auth.RoleAdmin}
	rec := serve(t, svc, admin, http.MethodPost, "/stock/credit",
		`{"blood_group":"B-","quantity":2,"facility_kind":"hospital","facility_id":"h-9"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	n, err := svc.Available(context.Background(), "h-9", shared.GroupBNeg)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	donor := &auth.Claims{UserID: "d1", Role: auth.RoleDonor, DonorID: "donor-1"}
	rec = serve(t, svc, donor, http.MethodPost, "/stock/credit", `{"blood_group":"B-","quantity":2}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(t, svc, nil, http.MethodGet, "/stock/h-9", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	lab := &auth.Claims{UserID: "u1", Role: auth.RoleLab, FacilityID: "labX"}
	rec = serve(t, svc, lab, http.MethodPost, "/stock/credit", `{"blood_group":"B-","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, svc, lab, http.MethodGet, "/stock/labX/Z9", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
