// Package risk implements the score-explanation and borrowing-recommendation
// engine. Both entry points are pure functions over an applicant record and a
// policy settings snapshot: no I/O, no shared state, safe for concurrent use.
package risk

import "apexscore/internal/models"

// Service exposes the decision logic of the dashboard.
type Service interface {
	// CalculateScoreBreakdown explains the applicant's score as four weighted
	// categories in fixed order: Location & Identity, Device Security,
	// Financial History, Behavioral Stability.
	CalculateScoreBreakdown(applicant *models.Applicant, settings models.RiskSettings) ([]models.ScoreBreakdown, error)

	// RecommendBorrowing derives a safe borrowing amount, rate, projected
	// monthly payment and confidence tier for the applicant.
	RecommendBorrowing(applicant *models.Applicant, settings models.RiskSettings) (*models.SafeBorrowingRecommendation, error)

	// RepaymentSchedule expands a recommended amount into a fixed-payment
	// monthly schedule over the given term.
	RepaymentSchedule(principal, annualRate float64, termMonths int) []ScheduleEntry
}

type service struct{}

func NewService() Service {
	return &service{}
}

// SummarizeBreakdown returns the achieved and maximum totals across all
// categories. Used for the dashboard progress ratio only; it is not
// reconciled against the upstream apex score.
func SummarizeBreakdown(breakdowns []models.ScoreBreakdown) (total, max float64) {
	for _, b := range breakdowns {
		total += b.Score
		max += b.MaxScore
	}
	return total, max
}
