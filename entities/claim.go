package entities

import (
	"time"
)

const (
	ClaimStatusPending   = "pending"
	ClaimStatusApproved  = "approved"
	ClaimStatusRejected  = "rejected"
	ClaimStatusCancelled = "cancelled"
)

type Claim struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	PostID            uint       `gorm:"index;not null" json:"post_id"`
	ClaimerID         uint       `gorm:"index;not null" json:"claimer_id"`
	Message           string     `json:"message,omitempty"`
	RequestedQuantity string     `gorm:"default:1" json:"requested_quantity"`
	Status            string     `gorm:"index;default:pending" json:"status"` // pending, approved, rejected, cancelled
	DecidedAt         *time.Time `json:"decided_at,omitempty"`

	Post    *Post `gorm:"foreignKey:PostID"`
	Claimer *User `gorm:"foreignKey:ClaimerID"`
	Timestamp
}

// Decided reports whether the claim has reached a terminal state.
func (c *Claim) Decided() bool {
	return c.Status != ClaimStatusPending
}
