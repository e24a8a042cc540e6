package shared

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBloodGroup(t *testing.T) {
	tests := []struct {
		raw     string
		want    BloodGroup
		wantErr bool
	}{
		{"A+", GroupAPos, false},
		{" ab- ", GroupABNeg, false},
		{"o+", GroupOPos, false},
		{"C+", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseBloodGroup(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOwnerRef_Validate(t *testing.T) {
	o, err := OwnerRef{Kind: "LAB", ID: "  lab-1 "}.Validate()
	require.NoError(t, err)
	assert.Equal(t, Lab("lab-1"), o)

	_, err = OwnerRef{Kind: "clinic", ID: "x"}.Validate()
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = OwnerRef{Kind: OwnerHospital, ID: " "}.Validate()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseOwnerRef(t *testing.T) {
	o, err := ParseOwnerRef("hospital:h-9")
	require.NoError(t, err)
	assert.Equal(t, Hospital("h-9"), o)

	_, err = ParseOwnerRef("h-9")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindValidation, KindOf(Invalid("quantity %d", 0)))
	assert.Equal(t, KindNotFound, KindOf(NotFound("request", "r-1")))
	assert.Equal(t, KindInsufficientStock, KindOf(&InsufficientStockError{Available: 4, Requested: 10}))
	assert.Equal(t, KindCooldownViolation, KindOf(fmt.Errorf("wrapped: %w", &CooldownError{})))
	assert.Equal(t, KindStateConflict, KindOf(ErrStateConflict))
	assert.Equal(t, KindConcurrencyConflict, KindOf(ErrConcurrencyConflict))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestInternal_KeepsKnownKinds(t *testing.T) {
	assert.Nil(t, Internal(nil))
	assert.ErrorIs(t, Internal(ErrNotFound), ErrNotFound)

	wrapped := Internal(errors.New("disk full"))
	assert.ErrorIs(t, wrapped, ErrInternal)
	assert.Equal(t, wrapped, Internal(wrapped))
}

func TestInsufficientStockError_As(t *testing.T) {
	err := fmt.Errorf("accept: %w", &InsufficientStockError{FacilityID: "lab-x", BloodGroup: GroupAPos, Available: 4, Requested: 10})

	var ise *InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 4, ise.Available)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestRetryOnConflict(t *testing.T) {
	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := RetryOnConflict(context.Background(), func() error {
			calls++
			if calls < 3 {
				return ErrConcurrencyConflict
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := RetryOnConflict(context.Background(), func() error {
			calls++
			return fmt.Errorf("insert: %w", ErrConcurrencyConflict)
		})
		assert.ErrorIs(t, err, ErrConcurrencyConflict)
		assert.Equal(t, MaxConflictAttempts, calls)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		calls := 0
		err := RetryOnConflict(context.Background(), func() error {
			calls++
			return ErrStateConflict
		})
		assert.ErrorIs(t, err, ErrStateConflict)
		assert.Equal(t, 1, calls)
	})
}
