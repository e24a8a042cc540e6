package eligibility

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := now.Add(-time.Duration(n) * 24 * time.Hour)
	return &t
}

func kg(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		age       int
		weight    decimal.Decimal
		last      *time.Time
		verdict   Verdict
		remaining int
	}{
		{"never donated", 30, kg("60"), nil, Eligible, 0},
		{"cooldown 10 days ago", 30, kg("60"), daysAgo(10), IneligibleCooldown, 80},
		{"age overrides cooldown", 17, kg("60"), daysAgo(10), IneligibleAge, 0},
		{"weight overrides cooldown", 30, kg("44.9"), daysAgo(10), IneligibleWeight, 0},
		{"age wins over weight", 70, kg("40"), nil, IneligibleAge, 0},
		{"exactly 90 days", 40, kg("45"), daysAgo(90), Eligible, 0},
		{"89 days", 40, kg("45"), daysAgo(89), IneligibleCooldown, 1},
		{"age bounds inclusive low", 18, kg("50"), nil, Eligible, 0},
		{"age bounds inclusive high", 65, kg("50"), nil, Eligible, 0},
		{"age 66", 66, kg("50"), nil, IneligibleAge, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Evaluate(tt.age, tt.weight, tt.last, now)
			assert.Equal(t, tt.verdict, st.Verdict)
			assert.Equal(t, tt.remaining, st.RemainingDays)
		})
	}
}

func TestEvaluate_RemainingDaysRoundsUp(t *testing.T) {
	last := now.Add(-(10*24*time.Hour + 6*time.Hour))

	st := Evaluate(30, kg("60"), &last, now)

	require.Equal(t, IneligibleCooldown, st.Verdict)
	// quedan 79.75 días
	assert.Equal(t, 80, st.RemainingDays)
	require.NotNil(t, st.NextEligibleDate)
	assert.Equal(t, last.Add(90*24*time.Hour), *st.NextEligibleDate)
}

func TestEvaluate_Deterministic(t *testing.T) {
	last := daysAgo(33)
	first := Evaluate(25, kg("70.5"), last, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(25, kg("70.5"), last, now))
	}
}

func TestMinimumGapSatisfied(t *testing.T) {
	assert.True(t, MinimumGapSatisfied(nil, now))

	last := time.Date(2025, 12, 15, 9, 0, 0, 0, time.UTC)
	assert.True(t, MinimumGapSatisfied(&last, now))
	assert.False(t, MinimumGapSatisfied(&last, now.Add(-time.Minute)))
}

func TestCalendarGap_DiffersFromDayCooldown(t *testing.T) {
	// Nov 30 + 3 meses = Mar 2 (92 días). A los 90 días la elegibilidad
	// ya da Eligible pero el gate de registro todavía no abre.
	last := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	at := last.Add(90 * 24 * time.Hour)

	assert.True(t, Evaluate(30, kg("60"), &last, at).Eligible())
	assert.False(t, MinimumGapSatisfied(&last, at))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), NextRecordableDate(last))
}
