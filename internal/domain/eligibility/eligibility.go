// Package eligibility calcula si un donante puede donar. Todo es puro:
// mismo input, mismo resultado, sin acceso a store ni reloj.
package eligibility

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinAge = 18
	MaxAge = 65

	// CooldownDays es la espera entre donaciones para la elegibilidad "virtual".
	CooldownDays = 90

	// MinimumGapMonths es el gate de calendario para registrar una donación.
	// No es lo mismo que CooldownDays: 3 meses calendario van de 89 a 92 días.
	MinimumGapMonths = 3
)

// MinWeightKg es el peso mínimo aceptado.
var MinWeightKg = decimal.NewFromInt(45)

type Verdict string

const (
	Eligible           Verdict = "eligible"
	IneligibleAge      Verdict = "ineligible_age"
	IneligibleWeight   Verdict = "ineligible_weight"
	IneligibleCooldown Verdict = "ineligible_cooldown"
)

// Status es el resultado de Evaluate.
type Status struct {
	Verdict Verdict

	// RemainingDays solo se completa para IneligibleCooldown.
	RemainingDays int

	// NextEligibleDate es last + 90 días cuando hay cooldown pendiente,
	// aunque el verdict final sea de edad o peso.
	NextEligibleDate *time.Time
}

func (s Status) Eligible() bool { return s.Verdict == Eligible }

// Evaluate primero calcula el cooldown y después pisa el resultado con
// peso y edad, en ese orden. Edad es lo último que se mira, así que gana.
func Evaluate(age int, weight decimal.Decimal, lastDonation *time.Time, now time.Time) Status {
	st := Status{Verdict: Eligible}

	if lastDonation != nil {
		cooldown := time.Duration(CooldownDays) * 24 * time.Hour
		remaining := cooldown - now.Sub(*lastDonation)
		if remaining > 0 {
			next := lastDonation.Add(cooldown)
			st = Status{
				Verdict:          IneligibleCooldown,
				RemainingDays:    int(math.Ceil(remaining.Hours() / 24)),
				NextEligibleDate: &next,
			}
		}
	}

	if weight.LessThan(MinWeightKg) {
		st.Verdict = IneligibleWeight
		st.RemainingDays = 0
	}
	if age < MinAge || age > MaxAge {
		st.Verdict = IneligibleAge
		st.RemainingDays = 0
	}

	return st
}

// MinimumGapSatisfied es el gate de registro: now >= last + 3 meses calendario.
func MinimumGapSatisfied(lastDonation *time.Time, now time.Time) bool {
	if lastDonation == nil {
		return true
	}
	return !now.Before(NextRecordableDate(*lastDonation))
}

func NextRecordableDate(lastDonation time.Time) time.Time {
	return lastDonation.AddDate(0, MinimumGapMonths, 0)
}
