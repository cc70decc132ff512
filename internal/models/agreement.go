package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agreement is a daily-rate arrangement with one person. StartDate is a
// YYYY-MM-DD string like every other calendar date we store.
type Agreement struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"index" json:"userId"`
	PersonName string          `gorm:"index" json:"personName"`
	DailyRate  decimal.Decimal `gorm:"type:decimal(12,2)" json:"dailyRate"`
	StartDate  string          `json:"startDate"`
	IsActive   bool            `json:"isActive"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
