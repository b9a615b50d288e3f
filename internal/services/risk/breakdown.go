package risk

import (
	"fmt"
	"math"

	"apexscore/internal/models"
)

// Category names as rendered on the dashboard, in calculation order.
const (
	CategoryLocation   = "Location & Identity"
	CategoryDevice     = "Device Security"
	CategoryFinancial  = "Financial History"
	CategoryBehavioral = "Behavioral Stability"
)

const simVerified = "VERIFIED"

// CalculateScoreBreakdown computes the four category breakdowns.
//
// A quirk inherited from the original scoring model is preserved on purpose:
// some factors' displayed points feed the running category score (penalties,
// the debt tier) while others are informational only (the +5 for a verified
// SIM, the BSI-derived consistency lines). Likewise Location and Device are
// only floored at zero while Financial is clamped to [0, weight]. Do not
// "fix" these asymmetries; downstream displays depend on them.
func (s *service) CalculateScoreBreakdown(a *models.Applicant, settings models.RiskSettings) ([]models.ScoreBreakdown, error) {
	if err := validateForBreakdown(a); err != nil {
		return nil, err
	}

	return []models.ScoreBreakdown{
		locationBreakdown(a, settings),
		deviceBreakdown(a, settings),
		financialBreakdown(a, settings),
		behavioralBreakdown(a, settings),
	}, nil
}

func validateForBreakdown(a *models.Applicant) error {
	switch {
	case a == nil:
		return &InvalidInputError{Field: "applicant"}
	case a.DeviceFingerprint == nil:
		return &InvalidInputError{Field: "device_fingerprint"}
	case a.TFD == nil:
		return &InvalidInputError{Field: "tfd"}
	case a.BSI == nil:
		return &InvalidInputError{Field: "bsi"}
	}
	return nil
}

func locationBreakdown(a *models.Applicant, settings models.RiskSettings) models.ScoreBreakdown {
	var factors []models.ScoreFactor
	score := settings.LocationWeight

	if a.SIMRegistration == simVerified {
		// Informational credit: shown to the operator, not added to the score.
		factors = append(factors, models.ScoreFactor{
			Name:   "SIM Registration",
			Impact: models.ImpactPositive,
			Value:  "Verified",
			Points: 5,
		})
	} else {
		score -= settings.UnverifiedSIMPenalty
		factors = append(factors, models.ScoreFactor{
			Name:   "SIM Registration",
			Impact: models.ImpactNegative,
			Value:  "Unverified",
			Points: -roundInt(settings.UnverifiedSIMPenalty),
		})
	}

	if a.DeviceFingerprint.VPNDetected {
		score -= settings.VPNPenalty
		factors = append(factors, models.ScoreFactor{
			Name:   "VPN Usage",
			Impact: models.ImpactNegative,
			Value:  "Detected",
			Points: -roundInt(settings.VPNPenalty),
		})
	} else {
		factors = append(factors, models.ScoreFactor{
			Name:   "VPN Usage",
			Impact: models.ImpactPositive,
			Value:  "Not Detected",
			Points: 3,
		})
	}

	factors = append(factors, models.ScoreFactor{
		Name:   "Location Consistency",
		Impact: impactByThreshold(a.BSI.LocationConsistency),
		Value:  percentValue(a.BSI.LocationConsistency),
		Points: roundInt(a.BSI.LocationConsistency / 100 * 5),
	})

	return models.ScoreBreakdown{
		Category: CategoryLocation,
		Score:    math.Max(0, score), // floored only; may exceed MaxScore
		MaxScore: settings.LocationWeight,
		Factors:  factors,
	}
}

func deviceBreakdown(a *models.Applicant, settings models.RiskSettings) models.ScoreBreakdown {
	var factors []models.ScoreFactor
	score := settings.DeviceWeight

	if a.DeviceFingerprint.IsRooted {
		score -= settings.RootedDevicePenalty
		factors = append(factors, models.ScoreFactor{
			Name:   "Device Security",
			Impact: models.ImpactNegative,
			Value:  "Rooted/Jailbroken",
			Points: -roundInt(settings.RootedDevicePenalty),
		})
	} else {
		factors = append(factors, models.ScoreFactor{
			Name:   "Device Security",
			Impact: models.ImpactPositive,
			Value:  "Secure",
			Points: 5,
		})
	}

	factors = append(factors, models.ScoreFactor{
		Name:   "Device Stability",
		Impact: impactByThreshold(a.BSI.DeviceStability),
		Value:  percentValue(a.BSI.DeviceStability),
		Points: roundInt(a.BSI.DeviceStability / 100 * 5),
	})

	factors = append(factors, models.ScoreFactor{
		Name:   "SIM Stability",
		Impact: impactByThreshold(a.BSI.SIMChanges),
		Value:  percentValue(a.BSI.SIMChanges),
		Points: roundInt(a.BSI.SIMChanges / 100 * 3),
	})

	return models.ScoreBreakdown{
		Category: CategoryDevice,
		Score:    math.Max(0, score),
		MaxScore: settings.DeviceWeight,
		Factors:  factors,
	}
}

func financialBreakdown(a *models.Applicant, settings models.RiskSettings) models.ScoreBreakdown {
	var factors []models.ScoreFactor
	score := settings.FinancialWeight

	totalLoans, paidOnTime, defaulted := loanCounts(a.TFD.LoanHistory)
	repaymentRate := 0.0
	if totalLoans > 0 {
		repaymentRate = float64(paidOnTime) / float64(totalLoans) * 100
	}

	if totalLoans > 0 {
		factors = append(factors, models.ScoreFactor{
			Name:   "Repayment History",
			Impact: repaymentImpact(repaymentRate),
			Value:  fmt.Sprintf("%d/%d on time (%.0f%%)", paidOnTime, totalLoans, repaymentRate),
			Points: roundInt(repaymentRate / 100 * 20),
		})

		if defaulted > 0 {
			penalty := float64(defaulted * 10)
			score -= penalty
			factors = append(factors, models.ScoreFactor{
				Name:   "Defaults",
				Impact: models.ImpactNegative,
				Value:  fmt.Sprintf("%d loan(s) defaulted", defaulted),
				Points: -defaulted * 10,
			})
		}
	} else {
		factors = append(factors, models.ScoreFactor{
			Name:   "Credit History",
			Impact: models.ImpactNeutral,
			Value:  "No previous loans",
			Points: 0,
		})
	}

	// Outstanding-debt tier. Unlike most display factors, these point deltas
	// do feed the running score.
	debt := a.TFD.OutstandingDebt
	switch {
	case debt > settings.MaxOutstandingDebt:
		score -= 15
		factors = append(factors, models.ScoreFactor{
			Name:   "Outstanding Debt",
			Impact: models.ImpactNegative,
			Value:  fmt.Sprintf("%s%s (High)", a.TFD.CurrencySymbol, formatAmount(debt)),
			Points: -15,
		})
	case debt > settings.MaxOutstandingDebt*0.5:
		score -= 5
		factors = append(factors, models.ScoreFactor{
			Name:   "Outstanding Debt",
			Impact: models.ImpactNeutral,
			Value:  fmt.Sprintf("%s%s (Moderate)", a.TFD.CurrencySymbol, formatAmount(debt)),
			Points: -5,
		})
	default:
		score += 10
		factors = append(factors, models.ScoreFactor{
			Name:   "Outstanding Debt",
			Impact: models.ImpactPositive,
			Value:  fmt.Sprintf("%s%s (Low)", a.TFD.CurrencySymbol, formatAmount(debt)),
			Points: 10,
		})
	}

	active := activeAccounts(a.BankAccounts)
	bankFactor := models.ScoreFactor{
		Name:  "Bank Accounts",
		Value: fmt.Sprintf("%d active account(s)", active),
	}
	switch {
	case active >= 2:
		bankFactor.Impact = models.ImpactPositive
		bankFactor.Points = 5
	case active == 1:
		bankFactor.Impact = models.ImpactNeutral
		bankFactor.Points = 2
	default:
		bankFactor.Impact = models.ImpactNegative
		bankFactor.Points = -3
	}
	factors = append(factors, bankFactor)

	return models.ScoreBreakdown{
		Category: CategoryFinancial,
		Score:    math.Max(0, math.Min(score, settings.FinancialWeight)),
		MaxScore: settings.FinancialWeight,
		Factors:  factors,
	}
}

func behavioralBreakdown(a *models.Applicant, settings models.RiskSettings) models.ScoreBreakdown {
	avgBSI := (a.BSI.LocationConsistency + a.BSI.DeviceStability + a.BSI.SIMChanges) / 3
	score := math.Round(avgBSI / 100 * settings.BehavioralWeight)

	return models.ScoreBreakdown{
		Category: CategoryBehavioral,
		Score:    score,
		MaxScore: settings.BehavioralWeight,
		Factors: []models.ScoreFactor{{
			Name:   "Overall Stability",
			Impact: impactByThreshold(avgBSI),
			Value:  fmt.Sprintf("%.0f%% average BSI", avgBSI),
			Points: int(score),
		}},
	}
}

// impactByThreshold maps a 0-100 percentage onto the 70/50 display bands.
func impactByThreshold(pct float64) models.Impact {
	switch {
	case pct >= 70:
		return models.ImpactPositive
	case pct >= 50:
		return models.ImpactNeutral
	default:
		return models.ImpactNegative
	}
}

// repaymentImpact uses the stricter 80/50 bands.
func repaymentImpact(rate float64) models.Impact {
	switch {
	case rate >= 80:
		return models.ImpactPositive
	case rate >= 50:
		return models.ImpactNeutral
	default:
		return models.ImpactNegative
	}
}

func loanCounts(history []models.LoanHistory) (total, paidOnTime, defaulted int) {
	total = len(history)
	for _, l := range history {
		switch l.Status {
		case models.LoanStatusPaidOnTime, models.LoanStatusPaidEarly:
			paidOnTime++
		case models.LoanStatusDefaulted:
			defaulted++
		}
	}
	return total, paidOnTime, defaulted
}

func activeAccounts(accounts []models.BankAccount) int {
	n := 0
	for _, acc := range accounts {
		if acc.Status == "Active" {
			n++
		}
	}
	return n
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
