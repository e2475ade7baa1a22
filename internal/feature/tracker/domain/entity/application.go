// Package entity defines the domain entities for the tracker feature.
package entity

import "time"

// Well-known status labels. Status is an open string: the store accepts any
// non-empty value, and only the statistics reads attach meaning to these.
const (
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusAccepted  = "Accepted"
	StatusRejected  = "Rejected"
)

// Application represents one job application owned by a user.
type Application struct {
	// ID is the unique identifier for the application.
	ID uint `gorm:"primaryKey"`

	// UserID references the owning user. Every read and write is scoped to it.
	UserID uint `gorm:"index;not null"`

	// Company is the name of the company applied to.
	Company string `gorm:"size:255;not null"`

	// Role is the position applied for.
	Role string `gorm:"size:255;not null"`

	// DateApplied is the application date as a YYYY-MM-DD string.
	// ISO dates sort lexicographically, so ordering on this column is date order.
	DateApplied string `gorm:"size:10;not null"`

	// Status is the current stage of the application (open string).
	Status string `gorm:"size:64;not null"`

	// Notes is optional free text.
	Notes string

	// CreatedAt is the timestamp when the application was created.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (Application) TableName() string {
	return "job_applications"
}

// Stats aggregates per-user application counters for the profile page.
type Stats struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Successful int64 `json:"successful"`
}
