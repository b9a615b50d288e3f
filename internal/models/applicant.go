package models

// Applicant is the pre-scored record returned by the upstream scoring API.
// It is treated as immutable input: the dashboard never re-derives the apex
// score or risk level, it only explains them.
type Applicant struct {
	ID                   string               `json:"id"`
	Email                string               `json:"email"`
	Name                 ApplicantName        `json:"name"`
	Phone                string               `json:"phone"`
	Occupation           string               `json:"occupation"`
	Location             Location             `json:"location"`
	Network              Network              `json:"network"`
	SIMRegistration      string               `json:"sim_registration"`
	ActivityLog          ActivityLog          `json:"activity_log"`
	DeviceFingerprint    *DeviceFingerprint   `json:"device_fingerprint"`
	BankAccounts         []BankAccount        `json:"bank_accounts"`
	TFD                  *TFD                 `json:"tfd"`
	BSI                  *BSI                 `json:"bsi"`
	ApexScore            float64              `json:"apex_score"`
	RiskLevel            string               `json:"risk_level"`
	ActionRecommendation ActionRecommendation `json:"action_recommendation"`
	CreatedAt            string               `json:"created_at"`
}

type ApplicantName struct {
	First  string `json:"first"`
	Middle string `json:"middle"`
	Last   string `json:"last"`
	Full   string `json:"full"`
}

type Location struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Network struct {
	ISP                      string `json:"isp"`
	IPAddress                string `json:"ip_address"`
	IPLocation               string `json:"ip_location"`
	IPMatchesDeclaredAddress bool   `json:"ip_matches_declared_address"`
}

type ActivityLog struct {
	LastEmailLogin  string `json:"last_email_login"`
	LastSIMActivity string `json:"last_sim_activity"`
	EmailSIMSync    bool   `json:"email_sim_sync"`
}

type DeviceFingerprint struct {
	DeviceID    string `json:"device_id"`
	DeviceType  string `json:"device_type"`
	Model       string `json:"model"`
	OSVersion   string `json:"os_version"`
	IsRooted    bool   `json:"is_rooted"`
	VPNDetected bool   `json:"vpn_detected"`
}

type BankAccount struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
	Status        string `json:"status"`
}

// Loan status values as the upstream API reports them.
const (
	LoanStatusPaidOnTime = "Paid On Time"
	LoanStatusPaidEarly  = "Paid Early"
	LoanStatusDefaulted  = "Defaulted"
)

type LoanHistory struct {
	LoanID           string   `json:"loan_id"`
	Institution      string   `json:"institution"`
	Amount           float64  `json:"amount"`
	Currency         string   `json:"currency"`
	CurrencySymbol   string   `json:"currency_symbol"`
	Purpose          string   `json:"purpose"`
	DisbursementDate string   `json:"disbursement_date"`
	DueDate          string   `json:"due_date"`
	Status           string   `json:"status"`
	DaysOverdue      *int     `json:"days_overdue"`
	RepaymentAmount  *float64 `json:"repayment_amount"`
}

// TFD is the applicant's total financial disclosure.
type TFD struct {
	Currency        string        `json:"currency"`
	CurrencySymbol  string        `json:"currency_symbol"`
	OutstandingDebt float64       `json:"outstanding_debt"`
	LoanHistory     []LoanHistory `json:"loan_history"`
}

// BSI is the behavioral stability index: five independent 0-100 percentages.
type BSI struct {
	LocationConsistency float64 `json:"location_consistency"`
	DeviceStability     float64 `json:"device_stability"`
	SIMChanges          float64 `json:"sim_changes"`
	IPRegionMatch       float64 `json:"ip_region_match"`
	TravelFrequency     float64 `json:"travel_frequency"`
}

// ActionRecommendation is the upstream AI decision attached to the applicant.
type ActionRecommendation struct {
	Decision              string   `json:"decision"`
	RecommendedLoanAmount float64  `json:"recommended_loan_amount"`
	MaxLoanAmount         float64  `json:"max_loan_amount"`
	InterestRateRange     string   `json:"interest_rate_range"`
	RepaymentPeriod       string   `json:"repayment_period"`
	Reasoning             []string `json:"reasoning"`
	Conditions            []string `json:"conditions"`
}

// Risk levels derived upstream from the apex score.
const (
	RiskLevelLow    = "Low"
	RiskLevelMedium = "Medium"
	RiskLevelHigh   = "High"
)
