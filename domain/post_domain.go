package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreatePost       = "post shared successfully"
	MessageSuccessGetPosts         = "posts retrieved successfully"
	MessageSuccessGetPost          = "post retrieved successfully"
	MessageSuccessUpdatePostStatus = "post status updated successfully"

	MessageFailedCreatePost       = "failed to create post"
	MessageFailedGetPosts         = "failed to retrieve posts"
	MessageFailedGetPost          = "failed to retrieve post"
	MessageFailedUpdatePostStatus = "failed to update post status"

	ErrPostNotFound           = errors.New("post not found")
	ErrUnauthorizedPostAccess = errors.New("unauthorized access to post")
	ErrInvalidPostStatus      = errors.New("invalid post status")
	ErrInvalidExpiry          = errors.New("invalid expiry timestamp")
	ErrInvalidPickupWindow    = errors.New("invalid pickup window timestamp")
)

const (
	PostSortNewest     = "newest"
	PostSortEndingSoon = "endingSoon"

	PostFilterAvailable = "available"
	PostFilterClaimed   = "claimed"
	PostFilterExpired   = "expired"
)

type (
	CreatePostRequest struct {
		Title             string                `json:"title" form:"title" validate:"required"`
		Description       string                `json:"description" form:"description" validate:"required"`
		Category          string                `json:"category" form:"category" validate:"omitempty,oneof=Meals Snacks Beverages 'Baked Goods' Fruits Other"`
		Quantity          string                `json:"quantity" form:"quantity" validate:"omitempty"`
		EstimatedWeightKg float64               `json:"estimated_weight_kg" form:"estimated_weight_kg" validate:"omitempty,gte=0"`
		DietaryTags       []string              `json:"dietary_tags" form:"dietary_tags" validate:"omitempty"`
		Location          string                `json:"location" form:"location" validate:"required"`
		PickupWindowStart string                `json:"pickup_window_start" form:"pickup_window_start" validate:"omitempty"`
		PickupWindowEnd   string                `json:"pickup_window_end" form:"pickup_window_end" validate:"omitempty"`
		ExpiresAt         string                `json:"expires_at" form:"expires_at" validate:"required"`
		Image             *multipart.FileHeader `json:"-" form:"image"`
	}

	UpdatePostStatusRequest struct {
		PostID uint   `json:"-"`
		Status string `json:"status" validate:"required,oneof=active claimed completed expired"`
	}

	// ListPostsQuery composes the read filters conjunctively; zero values
	// mean "no filter", never "match nothing".
	ListPostsQuery struct {
		Status   string // available, claimed, expired, "" = all
		Search   string // substring over title/description
		Category string // "All Types"/"All"/"" = all
		Dietary  string // substring over serialized tag list
		Sort     string // newest (default), endingSoon
	}

	ClaimSummary struct {
		Pending  int64 `json:"pending"`
		Accepted int64 `json:"accepted"`
		Rejected int64 `json:"rejected"`
	}

	Post struct {
		ID                uint          `json:"id"`
		UserID            uint          `json:"user_id"`
		OwnerEmail        string        `json:"owner_email,omitempty"`
		Title             string        `json:"title"`
		Description       string        `json:"description"`
		Category          string        `json:"category"`
		Quantity          string        `json:"quantity"`
		EstimatedWeightKg float64       `json:"estimated_weight_kg"`
		DietaryTags       []string      `json:"dietary_tags"`
		Location          string        `json:"location"`
		PickupWindowStart *time.Time    `json:"pickup_window_start,omitempty"`
		PickupWindowEnd   *time.Time    `json:"pickup_window_end,omitempty"`
		ExpiresAt         time.Time     `json:"expires_at"`
		Status            string        `json:"status"`
		ImageURL          string        `json:"image_url,omitempty"`
		CreatedAt         time.Time     `json:"created_at"`
		UpdatedAt         time.Time     `json:"updated_at"`
		Claims            []*Claim      `json:"claims,omitempty"`
		ClaimsSummary     *ClaimSummary `json:"claims_summary,omitempty"`
	}
)
