package stats

import (
	"EcoBite-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

var sharedStatuses = []string{entities.PostStatusClaimed, entities.PostStatusCompleted}

type (
	StatsRepository interface {
		CountAvailablePosts(ctx context.Context, userID uint, now time.Time) (int64, error)
		CountSharedPosts(ctx context.Context, userID uint) (int64, error)
		CountClaimedPosts(ctx context.Context, userID uint) (int64, error)
		CountPosts(ctx context.Context, userID uint) (int64, error)
		SumSharedWeightKg(ctx context.Context, userID uint) (float64, error)
		CountClaims(ctx context.Context, claimerID uint, status string) (int64, error)
		GetUserJoinDate(ctx context.Context, userID uint) (*time.Time, error)
	}

	statsRepository struct {
		db *gorm.DB
	}
)

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// userID 0 means "global" for every post counter below.
func (r *statsRepository) postScope(ctx context.Context, userID uint) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Post{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	return query
}

func (r *statsRepository) CountAvailablePosts(ctx context.Context, userID uint, now time.Time) (int64, error) {
	var count int64
	err := r.postScope(ctx, userID).
		Where("status = ? AND expires_at > ?", entities.PostStatusActive, now).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) CountSharedPosts(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.postScope(ctx, userID).
		Where("status IN ?", sharedStatuses).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) CountClaimedPosts(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.postScope(ctx, userID).
		Where("status = ?", entities.PostStatusClaimed).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) CountPosts(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.postScope(ctx, userID).Count(&count).Error
	return count, err
}

func (r *statsRepository) SumSharedWeightKg(ctx context.Context, userID uint) (float64, error) {
	var weight float64
	err := r.postScope(ctx, userID).
		Select("COALESCE(SUM(estimated_weight_kg), 0)").
		Where("status IN ?", sharedStatuses).
		Scan(&weight).Error
	return weight, err
}

func (r *statsRepository) CountClaims(ctx context.Context, claimerID uint, status string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entities.Claim{}).
		Where("claimer_id = ?", claimerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *statsRepository) GetUserJoinDate(ctx context.Context, userID uint) (*time.Time, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Select("created_at").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		return nil, err
	}
	joined := user.CreatedAt
	return &joined, nil
}
