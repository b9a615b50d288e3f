package models

import "time"

// InstitutionPolicy is a lending/KYC/data-sharing/compliance policy published
// by the institution.
type InstitutionPolicy struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`   // lending | kyc | data_sharing | compliance
	Status      string    `json:"status"` // active | draft | archived
	Terms       string    `json:"terms"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Document request lifecycle.
const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusCompleted = "completed"
)

// DocumentRequest asks a partner institution for supporting documents about
// an applicant.
type DocumentRequest struct {
	ID                   string    `gorm:"primaryKey" json:"id"`
	RequestType          string    `json:"request_type"` // bank_statement | income_proof | identity_verification | credit_report | employment_letter
	RecipientInstitution string    `json:"recipient_institution"`
	ApplicantEmail       string    `gorm:"index" json:"applicant_email"`
	Status               string    `gorm:"default:'pending'" json:"status"`
	Priority             string    `json:"priority"` // low | medium | high | urgent
	DueDate              time.Time `json:"due_date"`
	Notes                string    `json:"notes"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
