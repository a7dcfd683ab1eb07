// Package model defines database models
package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	Verified     bool   `gorm:"default:false"`

	// At most one live token of each kind per user. Issuing a new one
	// overwrites the previous token instead of appending a row, so a
	// resend always invalidates whatever was mailed out before.
	VerificationToken       *string `gorm:"index"`
	VerificationTokenExpiry *time.Time
	ResetToken              *string `gorm:"index"`
	ResetTokenExpiry        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Expenses []Expense `gorm:"foreignKey:UserID"`
}
