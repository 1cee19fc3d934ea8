package post

import (
	"EcoBite-Backend/domain"
	"EcoBite-Backend/entities"
	"EcoBite-Backend/internal/utils/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Per-category weight density (kg per quantity unit), used when the owner
// does not supply an estimate. Other doubles as the fallback for unknown
// categories.
var categoryWeightKg = map[string]float64{
	"Meals":       0.5,
	"Snacks":      0.2,
	"Beverages":   0.3,
	"Baked Goods": 0.1,
	"Fruits":      0.2,
	"Other":       0.5,
}

const defaultCategoryWeightKg = 0.5

type (
	PostService interface {
		CreatePost(ctx context.Context, req domain.CreatePostRequest, userID uint) (*domain.Post, error)
		GetPosts(ctx context.Context, q domain.ListPostsQuery) ([]*domain.Post, error)
		GetPostByID(ctx context.Context, id uint, viewerID uint) (*domain.Post, error)
		GetUserPosts(ctx context.Context, userID uint) ([]*domain.Post, error)
		UpdatePostStatus(ctx context.Context, req domain.UpdatePostStatusRequest, userID uint) error
	}

	postService struct {
		postRepository PostRepository
		s3             storage.AwsS3
	}
)

func NewPostService(postRepository PostRepository, s3 storage.AwsS3) PostService {
	return &postService{
		postRepository: postRepository,
		s3:             s3,
	}
}

func (s *postService) CreatePost(ctx context.Context, req domain.CreatePostRequest, userID uint) (*domain.Post, error) {
	expiresAt, err := parseExpiry(req.ExpiresAt, time.Now())
	if err != nil {
		return nil, domain.ErrInvalidExpiry
	}

	pickupStart, err := parseOptionalTime(req.PickupWindowStart)
	if err != nil {
		return nil, domain.ErrInvalidPickupWindow
	}
	pickupEnd, err := parseOptionalTime(req.PickupWindowEnd)
	if err != nil {
		return nil, domain.ErrInvalidPickupWindow
	}

	category := req.Category
	if category == "" {
		category = "Other"
	}

	weight := req.EstimatedWeightKg
	if weight <= 0 {
		weight = estimateWeightKg(req.Quantity, category)
	}

	var dietaryJSON string
	if len(req.DietaryTags) > 0 {
		raw, err := json.Marshal(req.DietaryTags)
		if err != nil {
			return nil, err
		}
		dietaryJSON = string(raw)
	}

	var imageURL string
	if req.Image != nil {
		objectKey, uploadErr := s.s3.UploadFile(
			fmt.Sprintf("post-%s", uuid.New().String()),
			req.Image,
			"posts",
			storage.AllowImage...,
		)
		if uploadErr != nil {
			// The image is decoration; the post still goes out without it.
			log.Printf("post image upload failed: %v", uploadErr)
		} else {
			imageURL = s.s3.GetPublicLinkKey(objectKey)
		}
	}

	post := &entities.Post{
		UserID:            userID,
		Title:             req.Title,
		Description:       req.Description,
		Category:          category,
		Quantity:          req.Quantity,
		EstimatedWeightKg: weight,
		DietaryJSON:       dietaryJSON,
		Location:          req.Location,
		PickupWindowStart: pickupStart,
		PickupWindowEnd:   pickupEnd,
		ExpiresAt:         expiresAt,
		Status:            entities.PostStatusActive,
		ImageURL:          imageURL,
	}

	if err := s.postRepository.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.postRepository.GetPostByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return convertPost(created), nil
}

func (s *postService) GetPosts(ctx context.Context, q domain.ListPostsQuery) ([]*domain.Post, error) {
	posts, err := s.postRepository.ListPosts(ctx, q, time.Now())
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Post, 0, len(posts))
	for _, post := range posts {
		result = append(result, convertPost(post))
	}
	return result, nil
}

func (s *postService) GetPostByID(ctx context.Context, id uint, viewerID uint) (*domain.Post, error) {
	post, err := s.postRepository.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	// Claims are only visible to the post owner.
	if viewerID != 0 && viewerID == post.UserID {
		post, err = s.postRepository.GetPostWithClaims(ctx, id)
		if err != nil {
			return nil, err
		}
		result := convertPost(post)
		result.Claims = make([]*domain.Claim, 0, len(post.Claims))
		for _, c := range post.Claims {
			claim := convertClaim(c)
			if c.Claimer != nil {
				claim.ClaimerEmail = c.Claimer.Email
			}
			result.Claims = append(result.Claims, claim)
		}
		return result, nil
	}

	return convertPost(post), nil
}

func (s *postService) GetUserPosts(ctx context.Context, userID uint) ([]*domain.Post, error) {
	posts, err := s.postRepository.GetUserPosts(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Post, 0, len(posts))
	for _, post := range posts {
		converted := convertPost(post)

		summary := &domain.ClaimSummary{}
		if summary.Pending, err = s.postRepository.CountClaimsByStatus(ctx, post.ID, entities.ClaimStatusPending); err != nil {
			return nil, err
		}
		if summary.Accepted, err = s.postRepository.CountClaimsByStatus(ctx, post.ID, entities.ClaimStatusApproved); err != nil {
			return nil, err
		}
		if summary.Rejected, err = s.postRepository.CountClaimsByStatus(ctx, post.ID, entities.ClaimStatusRejected); err != nil {
			return nil, err
		}
		converted.ClaimsSummary = summary

		result = append(result, converted)
	}
	return result, nil
}

// UpdatePostStatus is the owner escape hatch for marking a post completed
// or expired manually. It writes the requested status verbatim and never
// touches quantity reconciliation.
func (s *postService) UpdatePostStatus(ctx context.Context, req domain.UpdatePostStatusRequest, userID uint) error {
	post, err := s.postRepository.GetPostByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPostNotFound
		}
		return err
	}

	if post.UserID != userID {
		return domain.ErrUnauthorizedPostAccess
	}

	return s.postRepository.UpdatePostStatus(ctx, req.PostID, req.Status)
}

func estimateWeightKg(quantity, category string) float64 {
	density, ok := categoryWeightKg[category]
	if !ok {
		density = defaultCategoryWeightKg
	}
	if magnitude, ok := domain.QuantityMagnitude(quantity); ok {
		return magnitude * density
	}
	return density
}

// parseExpiry accepts an absolute timestamp (RFC 3339 or the HTML
// datetime-local format) or a bare number of minutes from now.
func parseExpiry(raw string, now time.Time) (time.Time, error) {
	if t, err := parseTimestamp(raw); err == nil {
		return t, nil
	}
	if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
		return now.Add(time.Duration(minutes) * time.Minute), nil
	}
	return time.Time{}, domain.ErrInvalidExpiry
}

func parseOptionalTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseTimestamp(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", raw, time.Local)
}

func convertPost(post *entities.Post) *domain.Post {
	var ownerEmail string
	if post.User != nil {
		ownerEmail = post.User.Email
	}

	var tags []string
	if post.DietaryJSON != "" {
		// Tags predating the JSON encoding may not parse; show none.
		_ = json.Unmarshal([]byte(post.DietaryJSON), &tags)
	}

	return &domain.Post{
		ID:                post.ID,
		UserID:            post.UserID,
		OwnerEmail:        ownerEmail,
		Title:             post.Title,
		Description:       post.Description,
		Category:          post.Category,
		Quantity:          post.Quantity,
		EstimatedWeightKg: post.EstimatedWeightKg,
		DietaryTags:       tags,
		Location:          post.Location,
		PickupWindowStart: post.PickupWindowStart,
		PickupWindowEnd:   post.PickupWindowEnd,
		ExpiresAt:         post.ExpiresAt,
		Status:            post.Status,
		ImageURL:          post.ImageURL,
		CreatedAt:         post.CreatedAt,
		UpdatedAt:         post.UpdatedAt,
	}
}

func convertClaim(claim *entities.Claim) *domain.Claim {
	return &domain.Claim{
		ID:                claim.ID,
		PostID:            claim.PostID,
		ClaimerID:         claim.ClaimerID,
		Message:           claim.Message,
		RequestedQuantity: claim.RequestedQuantity,
		Status:            claim.Status,
		DecidedAt:         claim.DecidedAt,
		CreatedAt:         claim.CreatedAt,
	}
}
