package models

// RiskSettings holds the tunable policy parameters for score explanation and
// borrowing recommendations. It is resolved once per request by the settings
// service and passed into the risk engine by value; the engine never reaches
// into a store itself.
type RiskSettings struct {
	// Thresholds
	MinAcceptableScore   float64 `json:"minAcceptableScore"`
	MaxDebtToIncomeRatio float64 `json:"maxDebtToIncomeRatio"`
	MaxOutstandingDebt   float64 `json:"maxOutstandingDebt"`

	// Score weights. Nominally sum to 100 but this is not enforced.
	LocationWeight   float64 `json:"locationWeight"`
	DeviceWeight     float64 `json:"deviceWeight"`
	FinancialWeight  float64 `json:"financialWeight"`
	BehavioralWeight float64 `json:"behavioralWeight"`

	// Penalty magnitudes
	VPNPenalty              float64 `json:"vpnPenalty"`
	RootedDevicePenalty     float64 `json:"rootedDevicePenalty"`
	UnverifiedSIMPenalty    float64 `json:"unverifiedSimPenalty"`
	LocationMismatchPenalty float64 `json:"locationMismatchPenalty"`

	// Lending limits
	MaxLoanAmount    float64 `json:"maxLoanAmount"`
	BaseInterestRate float64 `json:"baseInterestRate"`
}

// DefaultRiskSettings returns the hardcoded policy defaults used whenever the
// settings store cannot produce a stored value.
func DefaultRiskSettings() RiskSettings {
	return RiskSettings{
		MinAcceptableScore:   50,
		MaxDebtToIncomeRatio: 0.4,
		MaxOutstandingDebt:   500000,

		LocationWeight:   20,
		DeviceWeight:     15,
		FinancialWeight:  45,
		BehavioralWeight: 20,

		VPNPenalty:              10,
		RootedDevicePenalty:     15,
		UnverifiedSIMPenalty:    8,
		LocationMismatchPenalty: 12,

		MaxLoanAmount:    5000000,
		BaseInterestRate: 12,
	}
}

// RiskSettingsRecord is the persisted form of RiskSettings: a single keyed
// row whose payload is merged over the hardcoded defaults on read, so adding
// a new knob never invalidates stored configuration.
type RiskSettingsRecord struct {
	Key       string `gorm:"primaryKey"`
	Payload   JSON   `gorm:"type:jsonb"`
	UpdatedBy uint
	UpdatedAt int64 `gorm:"autoUpdateTime"`
}

// RiskSettingsKey is the row key for the single active settings record.
const RiskSettingsKey = "default"

// Impact qualifies how a score factor reads to an operator.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// ScoreFactor is one itemized line in a category breakdown. Points is the
// signed contribution shown to the operator; for some factors it is purely
// informational and does not feed the category score (see services/risk).
type ScoreFactor struct {
	Name   string `json:"name"`
	Impact Impact `json:"impact"`
	Value  string `json:"value"`
	Points int    `json:"points"`
}

// ScoreBreakdown is one scored category with its itemized factors.
type ScoreBreakdown struct {
	Category string        `json:"category"`
	Score    float64       `json:"score"`
	MaxScore float64       `json:"maxScore"`
	Factors  []ScoreFactor `json:"factors"`
}

// Confidence qualifies how much trust a borrowing recommendation carries.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// SafeBorrowingRecommendation is the derived lending recommendation for an
// applicant: how much they can safely borrow, at what rate, and why.
type SafeBorrowingRecommendation struct {
	RecommendedAmount float64    `json:"recommendedAmount"`
	MaxAmount         float64    `json:"maxAmount"`
	InterestRate      float64    `json:"interestRate"`
	MonthlyPayment    float64    `json:"monthlyPayment"`
	RiskAdjustedLimit float64    `json:"riskAdjustedLimit"`
	Confidence        Confidence `json:"confidence"`
	Reasoning         []string   `json:"reasoning"`
}
