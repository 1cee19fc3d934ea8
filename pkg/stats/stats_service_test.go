package stats

import (
	"EcoBite-Backend/entities"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Post{}, &entities.Claim{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	t.Helper()
	user := &entities.User{Email: email, PasswordHash: "x", Role: "user"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, ownerID uint, status string, weightKg float64, expiresAt time.Time) *entities.Post {
	t.Helper()
	p := &entities.Post{
		UserID: ownerID, Title: "t", Description: "d", Location: "l",
		EstimatedWeightKg: weightKg, ExpiresAt: expiresAt, Status: status,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestGetGlobalStatsEmpty(t *testing.T) {
	db := newTestDB(t)
	service := NewStatsService(NewStatsRepository(db))

	stats, err := service.GetGlobalStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.AvailableNow)
	assert.Equal(t, int64(0), stats.SuccessfullyShared)
	assert.Equal(t, int64(0), stats.TotalPosts)
	assert.Equal(t, 0.0, stats.FoodWastePreventedKg)
}

func TestGetGlobalStats(t *testing.T) {
	db := newTestDB(t)
	service := NewStatsService(NewStatsRepository(db))
	owner := seedUser(t, db, "owner@example.com")

	future := time.Now().Add(time.Hour)
	seedPost(t, db, owner.ID, entities.PostStatusActive, 1.0, future)
	seedPost(t, db, owner.ID, entities.PostStatusActive, 1.0, future)
	// Stored active past deadline does not count as available.
	seedPost(t, db, owner.ID, entities.PostStatusActive, 1.0, time.Now().Add(-time.Hour))
	seedPost(t, db, owner.ID, entities.PostStatusClaimed, 2.5, future)
	seedPost(t, db, owner.ID, entities.PostStatusCompleted, 1.5, future)
	seedPost(t, db, owner.ID, entities.PostStatusExpired, 9.0, future)

	stats, err := service.GetGlobalStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.AvailableNow)
	assert.Equal(t, int64(2), stats.SuccessfullyShared)
	assert.Equal(t, int64(6), stats.TotalPosts)
	// Only claimed and completed posts count toward prevented waste.
	assert.InDelta(t, 4.0, stats.FoodWastePreventedKg, 1e-9)
}

func TestGetUserStats(t *testing.T) {
	db := newTestDB(t)
	service := NewStatsService(NewStatsRepository(db))
	owner := seedUser(t, db, "owner@example.com")
	claimer := seedUser(t, db, "claimer@example.com")

	future := time.Now().Add(time.Hour)
	p1 := seedPost(t, db, owner.ID, entities.PostStatusClaimed, 2.0, future)
	seedPost(t, db, owner.ID, entities.PostStatusActive, 1.0, future)

	for _, status := range []string{
		entities.ClaimStatusApproved,
		entities.ClaimStatusRejected,
		entities.ClaimStatusPending,
	} {
		require.NoError(t, db.Create(&entities.Claim{
			PostID: p1.ID, ClaimerID: claimer.ID, RequestedQuantity: "1", Status: status,
		}).Error)
	}

	ownerStats, err := service.GetUserStats(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ownerStats.PostsCreated)
	assert.Equal(t, int64(1), ownerStats.PostsShared)
	assert.InDelta(t, 2.0, ownerStats.WeightSharedKg, 1e-9)
	assert.Equal(t, int64(0), ownerStats.ClaimsMade)
	require.NotNil(t, ownerStats.JoinDate)

	claimerStats, err := service.GetUserStats(context.Background(), claimer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), claimerStats.PostsCreated)
	assert.Equal(t, int64(3), claimerStats.ClaimsMade)
	assert.Equal(t, int64(1), claimerStats.ClaimsAccepted)
	assert.Equal(t, int64(1), claimerStats.ClaimsRejected)
}

func TestGetImpactSummary(t *testing.T) {
	db := newTestDB(t)
	service := NewStatsService(NewStatsRepository(db))
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	future := time.Now().Add(time.Hour)
	seedPost(t, db, owner.ID, entities.PostStatusActive, 1.0, future)
	seedPost(t, db, owner.ID, entities.PostStatusClaimed, 1.0, future)
	seedPost(t, db, owner.ID, entities.PostStatusClaimed, 1.0, future)
	seedPost(t, db, other.ID, entities.PostStatusClaimed, 1.0, future)

	global, err := service.GetImpactSummary(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), global.Available)
	assert.Equal(t, int64(3), global.Shared)
	assert.Equal(t, int64(4), global.Total)
	assert.Equal(t, 4, global.CO2Saved)

	mine, err := service.GetImpactSummary(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Available)
	assert.Equal(t, int64(2), mine.Shared)
	assert.Equal(t, int64(3), mine.Total)
	assert.Equal(t, 3, mine.CO2Saved)
}
