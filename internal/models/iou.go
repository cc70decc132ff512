package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IOU amounts are never reduced in place. Balances come from subtracting
// payments, and settling an IOU only clears IsActive.
type IOU struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index" json:"userId"`
	PersonName  string          `gorm:"index" json:"personName"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (IOU) TableName() string {
	return "ious"
}
