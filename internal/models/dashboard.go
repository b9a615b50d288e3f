package models

// PortfolioStats is the upstream scoring API's aggregate view of the
// applicant pool.
type PortfolioStats struct {
	TotalApplicants    int    `json:"total_applicants"`
	ActiveDefaults     int    `json:"active_defaults"`
	HighRiskPercentage string `json:"high_risk_percentage"`
}

// DashboardOverview combines upstream portfolio stats with the operator's
// local search activity.
type DashboardOverview struct {
	Portfolio      PortfolioStats `json:"portfolio"`
	TotalSearches  int64          `json:"total_searches"`
	RecentSearches int64          `json:"recent_searches"`
}
