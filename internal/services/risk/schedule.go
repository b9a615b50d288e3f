package risk

import (
	"math"

	"github.com/shopspring/decimal"
)

// ScheduleEntry is one period of a fixed-payment repayment schedule.
type ScheduleEntry struct {
	Period           int             `json:"period"`
	Payment          decimal.Decimal `json:"payment"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// RepaymentSchedule expands a principal into a standard fixed-payment
// schedule at the given annual percentage rate. A zero rate splits the
// principal evenly across the term.
func (s *service) RepaymentSchedule(principal, annualRate float64, termMonths int) []ScheduleEntry {
	if termMonths <= 0 || principal <= 0 {
		return nil
	}

	monthlyRate := annualRate / 100 / 12
	p := decimal.NewFromFloat(principal)

	var payment decimal.Decimal
	if monthlyRate == 0 {
		payment = p.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	} else {
		factor := math.Pow(1+monthlyRate, float64(termMonths))
		payment = decimal.NewFromFloat(principal * monthlyRate * factor / (factor - 1)).Round(2)
	}

	rate := decimal.NewFromFloat(monthlyRate)
	remaining := p
	schedule := make([]ScheduleEntry, 0, termMonths)

	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(rate).Round(2)
		principalPart := payment.Sub(interest)

		// Absorb rounding drift into the final payment so the balance
		// closes at exactly zero.
		if period == termMonths {
			principalPart = remaining
			payment = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		schedule = append(schedule, ScheduleEntry{
			Period:           period,
			Payment:          payment,
			Principal:        principalPart,
			Interest:         interest,
			RemainingBalance: remaining,
		})
	}
	return schedule
}
