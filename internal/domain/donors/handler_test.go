package donors_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blood-ledger/internal/domain/donors"
	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/middleware"
	"blood-ledger/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, svc *donors.Service, claims *auth.Claims, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	donors.RegisterRoutes(r, svc)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), *claims))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_SetVerifiedOnlyRecordingFacilityOrAdmin(t *testing.T) {
	svc, _, _ := newSvc(t, donor("d1", 30, 70, nil))
	got, err := svc.RecordDonation(context.Background(), donors.RecordInput{DonorID: "d1", RecordingFacility: shared.Hospital("h1")})
	require.NoError(t, err)
	path := "/donors/d1/donations/" + got.ID

	other := &auth.Claims{UserID: "u2", Role: auth.RoleLab, FacilityID: "labX"}
	rec := serve(t, svc, other, http.MethodPatch, path, `{"verified":false}`)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	stored, err := svc.GetDonation(context.Background(), "d1", got.ID)
	require.NoError(t, err)
	assert.True(t, stored.Verified)

	recorder := &auth.Claims{UserID: "u1", Role: auth.RoleHospital, FacilityID: "h1"}
	rec = serve(t, svc, recorder, http.MethodPatch, path, `{"verified":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Verified bool `json:"verified"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Verified)

	admin := &auth.Claims{UserID: "root", Role: auth.RoleAdmin}
	rec = serve(t, svc, admin, http.MethodPatch, path, `{"verified":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Verified)
}

func TestHandler_SetVerifiedErrors(t *testing.T) {
	svc, _, _ := newSvc(t, donor("d1", 30, 70, nil))
	hospital := &auth.Claims{UserID: "u1", Role: auth.RoleHospital, FacilityID: "h1"}
	donorCaller := &auth.Claims{UserID: "u3", Role: auth.RoleDonor, DonorID: "d1"}

	rec := serve(t, svc, hospital, http.MethodPatch, "/donors/d1/donations/ghost", `{"verified":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, svc, hospital, http.MethodPatch, "/donors/d1/donations/ghost", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, svc, donorCaller, http.MethodPatch, "/donors/d1/donations/ghost", `{"verified":true}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(t, svc, nil, http.MethodPatch, "/donors/d1/donations/ghost", `{"verified":true}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
