package entities

import (
	"time"
)

const (
	PostStatusActive    = "active"
	PostStatusClaimed   = "claimed"
	PostStatusExpired   = "expired"
	PostStatusCompleted = "completed"
)

type Post struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"index;not null" json:"user_id"`
	Title             string     `gorm:"not null" json:"title"`
	Description       string     `gorm:"not null" json:"description"`
	Category          string     `json:"category"` // Meals, Snacks, Beverages, Baked Goods, Fruits, Other
	Quantity          string     `json:"quantity"` // free text, leading numeric magnitude with optional unit
	EstimatedWeightKg float64    `json:"estimated_weight_kg"`
	DietaryJSON       string     `json:"dietary_json,omitempty"`
	Location          string     `gorm:"not null" json:"location"`
	PickupWindowStart *time.Time `json:"pickup_window_start,omitempty"`
	PickupWindowEnd   *time.Time `json:"pickup_window_end,omitempty"`
	ExpiresAt         time.Time  `gorm:"index;not null" json:"expires_at"`
	Status            string     `gorm:"index;default:active" json:"status"` // active, claimed, expired, completed
	ImageURL          string     `json:"image_url,omitempty"`

	User   *User    `gorm:"foreignKey:UserID"`
	Claims []*Claim `gorm:"foreignKey:PostID"`
	Timestamp
}

// Expired reports the derived read-time expiry. The stored status is not
// rewritten when the deadline passes; consumers must check both.
func (p *Post) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && !p.ExpiresAt.After(now)
}
