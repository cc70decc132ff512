package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a recurring monthly obligation. Payment plans always start from the
// full Amount; nothing here records what has already been paid.
type Bill struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"index" json:"userId"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	DueDay    int             `json:"dueDayOfMonth"`
	Category  string          `json:"category"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
