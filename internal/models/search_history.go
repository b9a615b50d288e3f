package models

import "time"

// SearchHistory is one applicant lookup performed by an operator. The full
// applicant payload is stored so past reports render without re-hitting the
// upstream API. Retention is capped per user (see services/history).
type SearchHistory struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index:idx_history_user_email;index" json:"user_id"`
	ApplicantEmail string    `gorm:"index:idx_history_user_email" json:"applicant_email"`
	ApplicantName  string    `json:"applicant_name"`
	ApexScore      float64   `json:"apex_score"`
	RiskLevel      string    `json:"risk_level"`
	ApplicantData  JSON      `gorm:"type:jsonb" json:"applicant_data"`
	SearchedAt     time.Time `gorm:"index" json:"searched_at"`
	CreatedAt      time.Time `json:"created_at"`
}
