package claim

import (
	"EcoBite-Backend/domain"
	"EcoBite-Backend/entities"
	"EcoBite-Backend/pkg/post"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

type (
	ClaimService interface {
		CreateClaim(ctx context.Context, req domain.CreateClaimRequest, claimerID uint) (*domain.Claim, error)
		DecideClaim(ctx context.Context, req domain.DecideClaimRequest, userID uint) (*domain.Claim, error)
		CancelClaim(ctx context.Context, claimID uint, userID uint) error
		GetUserClaims(ctx context.Context, claimerID uint) ([]*domain.Claim, error)
		GetIncomingClaims(ctx context.Context, ownerID uint) ([]*domain.Claim, error)
	}

	// NotifyFunc delivers a best-effort notification to a claimer. A nil
	// func disables notifications.
	NotifyFunc func(toEmail, subject, body string) error

	claimService struct {
		claimRepository ClaimRepository
		postRepository  post.PostRepository
		notify          NotifyFunc
		// When set, a claimer may hold at most one pending claim per
		// post. Storage-level unique violations map to the same error
		// either way.
		singleClaimPerPost bool
	}
)

func NewClaimService(claimRepository ClaimRepository, postRepository post.PostRepository, notify NotifyFunc, singleClaimPerPost bool) ClaimService {
	return &claimService{
		claimRepository:    claimRepository,
		postRepository:     postRepository,
		notify:             notify,
		singleClaimPerPost: singleClaimPerPost,
	}
}

func (s *claimService) CreateClaim(ctx context.Context, req domain.CreateClaimRequest, claimerID uint) (*domain.Claim, error) {
	targetPost, err := s.postRepository.GetPostByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	if targetPost.UserID == claimerID {
		return nil, domain.ErrSelfClaim
	}
	if targetPost.Status != entities.PostStatusActive || targetPost.Expired(time.Now()) {
		return nil, domain.ErrPostUnavailable
	}

	if s.singleClaimPerPost {
		pending, err := s.claimRepository.CountPendingClaims(ctx, req.PostID, claimerID)
		if err != nil {
			return nil, err
		}
		if pending > 0 {
			return nil, domain.ErrDuplicateClaim
		}
	}

	requested := req.RequestedQuantity
	if requested == "" {
		requested = "1"
	}

	claim := &entities.Claim{
		PostID:            req.PostID,
		ClaimerID:         claimerID,
		Message:           req.Message,
		RequestedQuantity: requested,
		Status:            entities.ClaimStatusPending,
	}

	if err := s.claimRepository.CreateClaim(ctx, claim); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateClaim
		}
		return nil, err
	}

	created, err := s.claimRepository.GetClaimByID(ctx, claim.ID)
	if err != nil {
		return nil, err
	}
	return convertClaim(created), nil
}

func (s *claimService) DecideClaim(ctx context.Context, req domain.DecideClaimRequest, userID uint) (*domain.Claim, error) {
	claim, err := s.claimRepository.GetClaimByID(ctx, req.ClaimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, err
	}

	if claim.Post == nil || claim.Post.UserID != userID {
		return nil, domain.ErrUnauthorizedClaimAccess
	}
	if claim.Decided() {
		return nil, domain.ErrClaimAlreadyDecided
	}

	var status string
	switch req.Status {
	case domain.ClaimDecisionAccepted:
		status = entities.ClaimStatusApproved
	case domain.ClaimDecisionRejected:
		status = entities.ClaimStatusRejected
	default:
		return nil, domain.ErrInvalidClaimDecision
	}

	decided, err := s.claimRepository.DecideClaim(ctx, req.ClaimID, status, time.Now())
	if err != nil {
		return nil, err
	}

	if s.notify != nil && claim.Claimer != nil {
		subject := fmt.Sprintf("Your request for %q was %s", claim.Post.Title, status)
		body := fmt.Sprintf("The owner has %s your request for %q (%s).", status, claim.Post.Title, claim.Post.Location)
		if err := s.notify(claim.Claimer.Email, subject, body); err != nil {
			log.Printf("claim decision mail to %s failed: %v", claim.Claimer.Email, err)
		}
	}

	result := convertClaim(claim)
	result.Status = decided.Status
	result.DecidedAt = decided.DecidedAt
	return result, nil
}

func (s *claimService) CancelClaim(ctx context.Context, claimID uint, userID uint) error {
	claim, err := s.claimRepository.GetClaimByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrClaimNotFound
		}
		return err
	}

	if claim.ClaimerID != userID {
		return domain.ErrUnauthorizedClaimAccess
	}

	return s.claimRepository.CancelClaim(ctx, claimID)
}

func (s *claimService) GetUserClaims(ctx context.Context, claimerID uint) ([]*domain.Claim, error) {
	claims, err := s.claimRepository.GetUserClaims(ctx, claimerID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Claim, 0, len(claims))
	for _, claim := range claims {
		result = append(result, convertClaim(claim))
	}
	return result, nil
}

func (s *claimService) GetIncomingClaims(ctx context.Context, ownerID uint) ([]*domain.Claim, error) {
	claims, err := s.claimRepository.GetIncomingClaims(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Claim, 0, len(claims))
	for _, claim := range claims {
		result = append(result, convertClaim(claim))
	}
	return result, nil
}

func convertClaim(claim *entities.Claim) *domain.Claim {
	result := &domain.Claim{
		ID:                claim.ID,
		PostID:            claim.PostID,
		ClaimerID:         claim.ClaimerID,
		Message:           claim.Message,
		RequestedQuantity: claim.RequestedQuantity,
		Status:            claim.Status,
		DecidedAt:         claim.DecidedAt,
		CreatedAt:         claim.CreatedAt,
	}

	if claim.Post != nil {
		result.PostTitle = claim.Post.Title
		result.PostLocation = claim.Post.Location
		expiresAt := claim.Post.ExpiresAt
		result.PostExpiresAt = &expiresAt
		if claim.Post.User != nil {
			result.OwnerEmail = claim.Post.User.Email
		}
	}
	if claim.Claimer != nil {
		result.ClaimerEmail = claim.Claimer.Email
	}

	return result
}
