package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blood-ledger/internal/platform/logger"
	"blood-ledger/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier map[string]auth.Claims

func (f fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	c, ok := f[token]
	if !ok {
		return auth.Claims{}, errors.New("bad token")
	}
	return c, nil
}

func claimsHandler(got *auth.Claims, present *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *present = GetClaims(r.Context())
	})
}

func TestAuthContext_DebugHeaders(t *testing.T) {
	var (
		got     auth.Claims
		present bool
	)
	h := AuthContext(nil)(claimsHandler(&got, &present))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUserID, "u1")
	req.Header.Set(HeaderDebugRole, "Hospital")
	req.Header.Set(HeaderDebugFacilityID, "h1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, present)
	assert.Equal(t, auth.RoleHospital, got.Role)
	f, ok := got.Facility()
	require.True(t, ok)
	assert.Equal(t, "hospital:h1", f.String())

	// Rol desconocido: sin claims.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUserID, "u1")
	req.Header.Set(HeaderDebugRole, "janitor")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, present)
}

func TestAuthContext_Bearer(t *testing.T) {
	var (
		got     auth.Claims
		present bool
	)
	v := fakeVerifier{"good": {UserID: "u2", Role: auth.RoleLab, FacilityID: "labX"}}
	h := AuthContext(v)(claimsHandler(&got, &present))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, present)
	assert.Equal(t, "labX", got.FacilityID)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, present)

	// Con verifier los headers de debug se ignoran.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUserID, "u1")
	req.Header.Set(HeaderDebugRole, "admin")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, present)
}

func TestRecover_LogsAndReturns500(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Info, Format: logger.FormatText, App: "test", Out: &buf})

	h := Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"internal"`)
	assert.True(t, strings.Contains(buf.String(), "kaboom"))
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Info, Format: logger.FormatJSON, App: "test", Out: &buf})

	h := AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/requests", nil))

	assert.Contains(t, buf.String(), `"status":201`)
	assert.Contains(t, buf.String(), `"path":"/requests"`)
}
