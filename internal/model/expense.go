package model

import "time"

type Expense struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"index;not null" json:"-"`

	Title    string    `gorm:"not null" json:"title"`
	Amount   float64   `gorm:"not null" json:"amount"`
	Category string    `gorm:"not null" json:"category"`
	Date     time.Time `gorm:"not null" json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
