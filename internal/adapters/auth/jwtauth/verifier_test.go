package jwtauth

import (
	"context"
	"testing"
	"time"

	"blood-ledger/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing-purposes"

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier(testSecret)

	token, err := v.Issue(auth.Claims{UserID: "u-1", Role: auth.RoleLab, FacilityID: "labX"}, time.Minute)
	require.NoError(t, err)

	c, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, auth.RoleLab, c.Role)
	assert.Equal(t, "labX", c.FacilityID)
}

func TestVerifier_Expired(t *testing.T) {
	v := NewVerifier(testSecret)

	token, err := v.Issue(auth.Claims{UserID: "u-1", Role: auth.RoleDonor, DonorID: "d1"}, -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier(testSecret)

	other, err := NewVerifier("another-secret").Issue(auth.Claims{UserID: "u", Role: auth.RoleLab}, time.Minute)
	require.NoError(t, err)

	badRole, err := v.Issue(auth.Claims{UserID: "u", Role: "pharmacist"}, time.Minute)
	require.NoError(t, err)

	noSubject, err := v.Issue(auth.Claims{Role: auth.RoleAdmin}, time.Minute)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u", "role": "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": other,
		"bad role":     badRole,
		"no subject":   noSubject,
		"alg none":     none,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err = v.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = NewVerifier("").Verify(context.Background(), other)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
