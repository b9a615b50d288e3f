package risk

import (
	"testing"

	"apexscore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendBorrowing_LowRiskNoHistory(t *testing.T) {
	svc := NewService()

	a := testApplicant()
	a.ApexScore = 80
	a.RiskLevel = models.RiskLevelLow
	a.TFD.OutstandingDebt = 0
	a.TFD.LoanHistory = nil

	rec, err := svc.RecommendBorrowing(a, models.DefaultRiskSettings())
	require.NoError(t, err)

	// 5,000,000 * 0.8 = 4,000,000; full capacity; no debt; no credit
	// history applies the 0.8 haircut -> 3,200,000.
	assert.Equal(t, float64(3200000), rec.RecommendedAmount)
	assert.Equal(t, float64(4800000), rec.MaxAmount)
	assert.Equal(t, float64(12), rec.InterestRate)
	assert.Equal(t, float64(284316), rec.MonthlyPayment)
	assert.Equal(t, float64(3200000), rec.RiskAdjustedLimit)
	// Score is >= 70 but with no loans the high predicate fails on loan
	// volume, and neither low predicate clause holds.
	assert.Equal(t, models.ConfidenceMedium, rec.Confidence)
	assert.Equal(t, []string{
		"Low risk profile qualifies for full borrowing capacity",
		"No credit history - starting with 80% of calculated limit",
	}, rec.Reasoning)
}

func TestRecommendBorrowing_DebtAtLimitZeroesAmount(t *testing.T) {
	svc := NewService()
	settings := models.DefaultRiskSettings()

	a := testApplicant()
	a.ApexScore = 90
	a.RiskLevel = models.RiskLevelHigh
	a.TFD.OutstandingDebt = settings.MaxOutstandingDebt

	rec, err := svc.RecommendBorrowing(a, settings)
	require.NoError(t, err)

	assert.Equal(t, float64(0), rec.RecommendedAmount)
	assert.Equal(t, float64(0), rec.MaxAmount)
	assert.Equal(t, float64(0), rec.MonthlyPayment)
	assert.Equal(t, float64(20), rec.InterestRate) // 12 base + 8 high risk
	assert.Contains(t, rec.Reasoning, "High risk profile limits maximum borrowing capacity to 30%")
	assert.Contains(t, rec.Reasoning, "Existing debt of ₦500,000 reduces capacity by 100%")
	assert.Contains(t, rec.Reasoning, "Higher interest rate (+8%) due to elevated risk")
}

func TestRecommendBorrowing_RiskTiers(t *testing.T) {
	tests := []struct {
		level     string
		wantRate  float64
		wantLimit float64 // risk-adjusted limit before rounding
	}{
		// base 5,000,000 * 0.8 = 4,000,000, then tier multiplier and the
		// excellent-repayment 1.2 bonus from the fixture history.
		{models.RiskLevelLow, 12, 4800000},
		{models.RiskLevelMedium, 16, 2880000},
		{models.RiskLevelHigh, 20, 1440000},
	}

	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			a := testApplicant()
			a.ApexScore = 80
			a.RiskLevel = tt.level
			a.TFD.OutstandingDebt = 0

			rec, err := svc.RecommendBorrowing(a, models.DefaultRiskSettings())
			require.NoError(t, err)
			assert.Equal(t, tt.wantRate, rec.InterestRate)
			assert.Equal(t, tt.wantLimit, rec.RiskAdjustedLimit)
		})
	}
}

func TestRecommendBorrowing_RepaymentAdjustments(t *testing.T) {
	mk := func(statuses ...string) []models.LoanHistory {
		loans := make([]models.LoanHistory, len(statuses))
		for i, st := range statuses {
			loans[i] = models.LoanHistory{Status: st}
		}
		return loans
	}

	tests := []struct {
		name       string
		loans      []models.LoanHistory
		wantAmount float64
		wantReason string
	}{
		{
			name:       "excellent history bonus",
			loans:      mk(models.LoanStatusPaidOnTime, models.LoanStatusPaidEarly, models.LoanStatusPaidOnTime),
			wantAmount: 4800000, // 4,000,000 * 1.2
			wantReason: "Excellent repayment history adds 20% bonus to limit",
		},
		{
			name:       "poor history penalty",
			loans:      mk(models.LoanStatusDefaulted, models.LoanStatusDefaulted, models.LoanStatusPaidOnTime),
			wantAmount: 2800000, // 4,000,000 * 0.7
			wantReason: "Poor repayment history reduces limit by 30%",
		},
		{
			name:       "middling history unchanged",
			loans:      mk(models.LoanStatusPaidOnTime, models.LoanStatusPaidOnTime, models.LoanStatusDefaulted),
			wantAmount: 4000000, // 2/3 on time: no bonus, no penalty
		},
	}

	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testApplicant()
			a.ApexScore = 80
			a.RiskLevel = models.RiskLevelLow
			a.TFD.OutstandingDebt = 0
			a.TFD.LoanHistory = tt.loans

			rec, err := svc.RecommendBorrowing(a, models.DefaultRiskSettings())
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, rec.RecommendedAmount)
			if tt.wantReason != "" {
				assert.Contains(t, rec.Reasoning, tt.wantReason)
			} else {
				for _, r := range rec.Reasoning {
					assert.NotContains(t, r, "repayment history")
				}
			}
		})
	}
}

func TestRecommendBorrowing_Confidence(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Applicant)
		want   models.Confidence
	}{
		{
			name:   "high requires volume and history",
			mutate: func(a *models.Applicant) { a.ApexScore = 85 },
			want:   models.ConfidenceHigh,
		},
		{
			name: "high score without loans falls to medium",
			mutate: func(a *models.Applicant) {
				a.ApexScore = 85
				a.TFD.LoanHistory = nil
			},
			want: models.ConfidenceMedium,
		},
		{
			name:   "low score",
			mutate: func(a *models.Applicant) { a.ApexScore = 40 },
			want:   models.ConfidenceLow,
		},
		{
			name: "poor repayment",
			mutate: func(a *models.Applicant) {
				a.ApexScore = 85
				a.TFD.LoanHistory = []models.LoanHistory{
					{Status: models.LoanStatusDefaulted},
					{Status: models.LoanStatusDefaulted},
					{Status: models.LoanStatusPaidOnTime},
				}
			},
			want: models.ConfidenceLow,
		},
	}

	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testApplicant()
			tt.mutate(a)

			rec, err := svc.RecommendBorrowing(a, models.DefaultRiskSettings())
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Confidence)
		})
	}
}

func TestRecommendBorrowing_ZeroInterestRate(t *testing.T) {
	svc := NewService()
	settings := models.DefaultRiskSettings()
	settings.BaseInterestRate = 0

	a := testApplicant()
	a.ApexScore = 80
	a.RiskLevel = models.RiskLevelLow
	a.TFD.OutstandingDebt = 0
	a.TFD.LoanHistory = nil

	rec, err := svc.RecommendBorrowing(a, settings)
	require.NoError(t, err)
	assert.Equal(t, float64(0), rec.InterestRate)
	// Linear split instead of the undefined compounding formula.
	assert.Equal(t, float64(266667), rec.MonthlyPayment) // round(3,200,000 / 12)
}

func TestRecommendBorrowing_NeverNegative(t *testing.T) {
	svc := NewService()
	settings := models.DefaultRiskSettings()

	for _, level := range []string{models.RiskLevelLow, models.RiskLevelMedium, models.RiskLevelHigh} {
		for _, debt := range []float64{0, 250000, 500000, 2000000} {
			a := testApplicant()
			a.ApexScore = 10
			a.RiskLevel = level
			a.TFD.OutstandingDebt = debt

			rec, err := svc.RecommendBorrowing(a, settings)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, rec.RecommendedAmount, float64(0))
			assert.GreaterOrEqual(t, rec.MaxAmount, float64(0))
		}
	}
}

func TestRecommendBorrowing_MaxAmountRatio(t *testing.T) {
	svc := NewService()

	for _, score := range []float64{15, 33, 47, 61, 88, 100} {
		a := testApplicant()
		a.ApexScore = score
		a.TFD.OutstandingDebt = 120000

		rec, err := svc.RecommendBorrowing(a, models.DefaultRiskSettings())
		require.NoError(t, err)

		want := roundToThousand(rec.RecommendedAmount * 1.5)
		assert.Equal(t, want, rec.MaxAmount)
	}
}

func TestRecommendBorrowing_MissingTFD(t *testing.T) {
	svc := NewService()
	a := testApplicant()
	a.TFD = nil

	_, err := svc.RecommendBorrowing(a, models.DefaultRiskSettings())
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "tfd", invalid.Field)
}

func roundToThousand(v float64) float64 {
	return float64(int64(v/1000+0.5)) * 1000
}
