package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateClaim = "request sent to owner"
	MessageSuccessGetClaims   = "claims retrieved successfully"
	MessageSuccessDecideClaim = "claim decided successfully"
	MessageSuccessCancelClaim = "claim cancelled successfully"

	MessageFailedCreateClaim = "could not process claim"
	MessageFailedGetClaims   = "failed to retrieve claims"
	MessageFailedDecideClaim = "failed to decide claim"
	MessageFailedCancelClaim = "failed to cancel claim"

	ErrClaimNotFound           = errors.New("claim not found")
	ErrUnauthorizedClaimAccess = errors.New("unauthorized access to claim")
	ErrSelfClaim               = errors.New("cannot claim own post")
	ErrPostUnavailable         = errors.New("post is not available")
	ErrClaimAlreadyDecided     = errors.New("claim already decided")
	ErrDuplicateClaim          = errors.New("item already requested")
	ErrInvalidClaimDecision    = errors.New("invalid claim decision")
)

const (
	ClaimDecisionAccepted = "accepted"
	ClaimDecisionRejected = "rejected"
)

type (
	CreateClaimRequest struct {
		PostID            uint   `json:"-"`
		Message           string `json:"message" validate:"omitempty"`
		RequestedQuantity string `json:"requested_quantity" validate:"omitempty"`
	}

	DecideClaimRequest struct {
		ClaimID uint   `json:"-"`
		Status  string `json:"status" validate:"required,oneof=accepted rejected"`
	}

	Claim struct {
		ID                uint       `json:"id"`
		PostID            uint       `json:"post_id"`
		ClaimerID         uint       `json:"claimer_id"`
		Message           string     `json:"message,omitempty"`
		RequestedQuantity string     `json:"requested_quantity"`
		Status            string     `json:"status"`
		DecidedAt         *time.Time `json:"decided_at,omitempty"`
		CreatedAt         time.Time  `json:"created_at"`

		// Denormalized read fields for presentation.
		PostTitle     string     `json:"post_title,omitempty"`
		PostLocation  string     `json:"location,omitempty"`
		PostExpiresAt *time.Time `json:"expires_at,omitempty"`
		OwnerEmail    string     `json:"owner_email,omitempty"`
		ClaimerEmail  string     `json:"claimer_email,omitempty"`
	}
)
