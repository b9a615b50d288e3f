package risk

import (
	"fmt"
	"math"

	"apexscore/internal/models"
)

// RecommendBorrowing runs the straight-line recommendation pipeline: base
// amount from the apex score, then risk-tier, debt and repayment-history
// adjustments, each contributing a human-readable reason.
func (s *service) RecommendBorrowing(a *models.Applicant, settings models.RiskSettings) (*models.SafeBorrowingRecommendation, error) {
	if a == nil {
		return nil, &InvalidInputError{Field: "applicant"}
	}
	if a.TFD == nil {
		return nil, &InvalidInputError{Field: "tfd"}
	}

	score := a.ApexScore
	var reasoning []string

	baseAmount := settings.MaxLoanAmount * (score / 100)

	switch a.RiskLevel {
	case models.RiskLevelHigh:
		baseAmount *= 0.3
		reasoning = append(reasoning, "High risk profile limits maximum borrowing capacity to 30%")
	case models.RiskLevelMedium:
		baseAmount *= 0.6
		reasoning = append(reasoning, "Medium risk profile limits borrowing capacity to 60%")
	default:
		reasoning = append(reasoning, "Low risk profile qualifies for full borrowing capacity")
	}

	debtAdjustment := math.Max(0, 1-a.TFD.OutstandingDebt/settings.MaxOutstandingDebt)
	baseAmount *= debtAdjustment
	if debtAdjustment < 1 {
		reasoning = append(reasoning, fmt.Sprintf(
			"Existing debt of %s%s reduces capacity by %.0f%%",
			a.TFD.CurrencySymbol, formatAmount(a.TFD.OutstandingDebt), (1-debtAdjustment)*100))
	}

	totalLoans, paidOnTime, _ := loanCounts(a.TFD.LoanHistory)
	if totalLoans > 0 {
		repaymentRate := float64(paidOnTime) / float64(totalLoans)
		if repaymentRate >= 0.8 {
			baseAmount *= 1.2
			reasoning = append(reasoning, "Excellent repayment history adds 20% bonus to limit")
		} else if repaymentRate < 0.5 {
			baseAmount *= 0.7
			reasoning = append(reasoning, "Poor repayment history reduces limit by 30%")
		}
	} else {
		baseAmount *= 0.8
		reasoning = append(reasoning, "No credit history - starting with 80% of calculated limit")
	}

	interestRate := settings.BaseInterestRate
	switch a.RiskLevel {
	case models.RiskLevelHigh:
		interestRate += 8
		reasoning = append(reasoning, "Higher interest rate (+8%) due to elevated risk")
	case models.RiskLevelMedium:
		interestRate += 4
		reasoning = append(reasoning, "Moderate interest rate (+4%) due to medium risk")
	}

	recommendedAmount := math.Round(baseAmount/1000) * 1000
	maxAmount := math.Round(recommendedAmount*1.5/1000) * 1000

	confidence := models.ConfidenceMedium
	if score >= 70 && totalLoans >= 2 && float64(paidOnTime) >= float64(totalLoans)*0.8 {
		confidence = models.ConfidenceHigh
	} else if score < 50 || (totalLoans > 0 && float64(paidOnTime) < float64(totalLoans)*0.5) {
		confidence = models.ConfidenceLow
	}

	return &models.SafeBorrowingRecommendation{
		RecommendedAmount: math.Max(0, recommendedAmount),
		MaxAmount:         math.Max(0, maxAmount),
		InterestRate:      interestRate,
		MonthlyPayment:    monthlyPayment(recommendedAmount, interestRate),
		RiskAdjustedLimit: math.Round(baseAmount),
		Confidence:        confidence,
		Reasoning:         reasoning,
	}, nil
}

// monthlyPayment amortizes the amount over 12 months at the given annual
// rate. The original model divided by zero at a 0% rate; the linear split is
// a deliberate fix for that, not a behavior change at any positive rate.
func monthlyPayment(amount, annualRate float64) float64 {
	if amount <= 0 {
		return 0
	}
	monthlyRate := annualRate / 100 / 12
	if monthlyRate == 0 {
		return math.Round(amount / 12)
	}
	factor := math.Pow(1+monthlyRate, 12)
	return math.Round(amount * monthlyRate * factor / (factor - 1))
}
