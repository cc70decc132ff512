package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UUID      string    `gorm:"uniqueIndex" json:"uuid"`               // Public ID carried in tokens
	Email     *string   `gorm:"uniqueIndex" json:"email,omitempty"`    // Nullable unique email
	DeviceID  *string   `gorm:"uniqueIndex" json:"deviceId,omitempty"` // Device that created a guest account
	PinHash   string    `json:"-"`                                     // Bcrypt hash, hidden from JSON
	IsGuest   bool      `gorm:"default:false" json:"isGuest"`
	Username  string    `gorm:"uniqueIndex" json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	HasPin    bool      `gorm:"-" json:"hasPin"`
}
