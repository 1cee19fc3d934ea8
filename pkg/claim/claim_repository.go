package claim

import (
	"EcoBite-Backend/domain"
	"EcoBite-Backend/entities"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Approvals racing on the same post invalidate each other's quantity read;
// the losing transaction is retried from scratch.
const decideAttempts = 5

var errQuantityConflict = errors.New("post quantity changed concurrently")

type (
	ClaimRepository interface {
		CreateClaim(ctx context.Context, claim *entities.Claim) error
		GetClaimByID(ctx context.Context, id uint) (*entities.Claim, error)
		GetUserClaims(ctx context.Context, claimerID uint) ([]*entities.Claim, error)
		GetIncomingClaims(ctx context.Context, ownerID uint) ([]*entities.Claim, error)
		CountPendingClaims(ctx context.Context, postID, claimerID uint) (int64, error)
		DecideClaim(ctx context.Context, claimID uint, status string, decidedAt time.Time) (*entities.Claim, error)
		CancelClaim(ctx context.Context, claimID uint) error
	}

	claimRepository struct {
		db *gorm.DB
	}
)

func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) CreateClaim(ctx context.Context, claim *entities.Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *claimRepository) GetClaimByID(ctx context.Context, id uint) (*entities.Claim, error) {
	var claim entities.Claim
	if err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.User").
		Preload("Claimer").
		Where("id = ?", id).
		First(&claim).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) GetUserClaims(ctx context.Context, claimerID uint) ([]*entities.Claim, error) {
	var claims []*entities.Claim
	if err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.User").
		Where("claimer_id = ?", claimerID).
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *claimRepository) GetIncomingClaims(ctx context.Context, ownerID uint) ([]*entities.Claim, error) {
	var claims []*entities.Claim
	if err := r.db.WithContext(ctx).
		Joins("JOIN posts ON posts.id = claims.post_id").
		Where("posts.user_id = ?", ownerID).
		Preload("Post").
		Preload("Claimer").
		Order("claims.created_at DESC").
		Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *claimRepository) CountPendingClaims(ctx context.Context, postID, claimerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Claim{}).
		Where("post_id = ? AND claimer_id = ? AND status = ?", postID, claimerID, entities.ClaimStatusPending).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecideClaim moves a pending claim to approved or rejected and, on
// approval, reconciles the post's quantity in the same transaction. The
// claim transition is conditional on the pending status and the post write
// is a compare-and-swap on the quantity read inside the transaction, so a
// claim can never end up approved against a stale quantity: the losing
// side of a race rolls back and retries.
func (r *claimRepository) DecideClaim(ctx context.Context, claimID uint, status string, decidedAt time.Time) (*entities.Claim, error) {
	var decided *entities.Claim

	for attempt := 0; attempt < decideAttempts; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var claim entities.Claim
			if err := tx.Preload("Post").Where("id = ?", claimID).First(&claim).Error; err != nil {
				return err
			}
			if claim.Status != entities.ClaimStatusPending {
				return domain.ErrClaimAlreadyDecided
			}

			res := tx.Model(&entities.Claim{}).
				Where("id = ? AND status = ?", claimID, entities.ClaimStatusPending).
				Updates(map[string]interface{}{
					"status":     status,
					"decided_at": decidedAt,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrClaimAlreadyDecided
			}

			if status == entities.ClaimStatusApproved && claim.Post != nil {
				rec := ReconcileQuantity(claim.Post.Quantity, claim.RequestedQuantity)
				if rec.Applied {
					fields := map[string]interface{}{"quantity": rec.NewQuantity}
					if rec.Exhausted {
						fields["status"] = entities.PostStatusClaimed
					}
					res := tx.Model(&entities.Post{}).
						Where("id = ? AND quantity = ?", claim.PostID, claim.Post.Quantity).
						Updates(fields)
					if res.Error != nil {
						return res.Error
					}
					if res.RowsAffected == 0 {
						return errQuantityConflict
					}
				}
			}

			claim.Status = status
			claim.DecidedAt = &decidedAt
			decided = &claim
			return nil
		})
		if errors.Is(err, errQuantityConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return decided, nil
	}

	return nil, errQuantityConflict
}

func (r *claimRepository) CancelClaim(ctx context.Context, claimID uint) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Claim{}).
		Where("id = ? AND status = ?", claimID, entities.ClaimStatusPending).
		Update("status", entities.ClaimStatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrClaimAlreadyDecided
	}
	return nil
}
