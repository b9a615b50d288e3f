package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a dashboard operator account. Roles: "analyst" (search and review
// applicants) and "admin" (additionally edits risk settings).
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Institution  string
	Department   string
	Position     string
	Role         string `gorm:"default:'analyst'"`
	Status       string `gorm:"default:'active'"`
	LastLoginAt  time.Time
	LastLoginIP  string
	TokenVersion int `gorm:"default:1"`
}

// CreateUserInput is the registration payload for a new operator account.
type CreateUserInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Institution string `json:"institution"`
	Department  string `json:"department"`
	Position    string `json:"position"`
	Role        string `json:"role"`
}
