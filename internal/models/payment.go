package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	UserID             uint            `gorm:"index" json:"userId"`
	PersonName         string          `gorm:"index" json:"personName"`
	Amount             decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	PaymentDate        string          `json:"paymentDate"`
	IsAgreementPayment bool            `json:"isAgreementPayment"` // agreement payments never settle IOUs
	Notes              string          `json:"notes"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}
