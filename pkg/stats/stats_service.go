package stats

import (
	"EcoBite-Backend/domain"
	"EcoBite-Backend/entities"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Fixed linear proxy for CO2 savings per shared post, kept for output
// compatibility with historical reports.
const co2PerSharedPost = 1.5

type (
	StatsService interface {
		GetGlobalStats(ctx context.Context) (*domain.GlobalStats, error)
		GetUserStats(ctx context.Context, userID uint) (*domain.UserStats, error)
		GetImpactSummary(ctx context.Context, userID uint) (*domain.ImpactSummary, error)
	}

	statsService struct {
		statsRepository StatsRepository
	}
)

func NewStatsService(statsRepository StatsRepository) StatsService {
	return &statsService{statsRepository: statsRepository}
}

func (s *statsService) GetGlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	now := time.Now()
	stats := &domain.GlobalStats{}
	var err error

	if stats.AvailableNow, err = s.statsRepository.CountAvailablePosts(ctx, 0, now); err != nil {
		return nil, err
	}
	if stats.SuccessfullyShared, err = s.statsRepository.CountSharedPosts(ctx, 0); err != nil {
		return nil, err
	}
	if stats.TotalPosts, err = s.statsRepository.CountPosts(ctx, 0); err != nil {
		return nil, err
	}
	if stats.FoodWastePreventedKg, err = s.statsRepository.SumSharedWeightKg(ctx, 0); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *statsService) GetUserStats(ctx context.Context, userID uint) (*domain.UserStats, error) {
	stats := &domain.UserStats{}
	var err error

	if stats.PostsCreated, err = s.statsRepository.CountPosts(ctx, userID); err != nil {
		return nil, err
	}
	if stats.PostsShared, err = s.statsRepository.CountSharedPosts(ctx, userID); err != nil {
		return nil, err
	}
	if stats.WeightSharedKg, err = s.statsRepository.SumSharedWeightKg(ctx, userID); err != nil {
		return nil, err
	}
	if stats.ClaimsMade, err = s.statsRepository.CountClaims(ctx, userID, ""); err != nil {
		return nil, err
	}
	if stats.ClaimsAccepted, err = s.statsRepository.CountClaims(ctx, userID, entities.ClaimStatusApproved); err != nil {
		return nil, err
	}
	if stats.ClaimsRejected, err = s.statsRepository.CountClaims(ctx, userID, entities.ClaimStatusRejected); err != nil {
		return nil, err
	}

	joined, err := s.statsRepository.GetUserJoinDate(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		stats.JoinDate = joined
	}

	return stats, nil
}

// GetImpactSummary backs the home and profile views. userID 0 computes the
// global summary.
func (s *statsService) GetImpactSummary(ctx context.Context, userID uint) (*domain.ImpactSummary, error) {
	now := time.Now()
	summary := &domain.ImpactSummary{}
	var err error

	if summary.Available, err = s.statsRepository.CountAvailablePosts(ctx, userID, now); err != nil {
		return nil, err
	}
	if summary.Shared, err = s.statsRepository.CountClaimedPosts(ctx, userID); err != nil {
		return nil, err
	}
	if summary.Total, err = s.statsRepository.CountPosts(ctx, userID); err != nil {
		return nil, err
	}
	summary.CO2Saved = int(float64(summary.Shared) * co2PerSharedPost)

	return summary, nil
}
