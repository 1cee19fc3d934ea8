package post

import (
	"EcoBite-Backend/domain"
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

func newTestService(t *testing.T, db *gorm.DB) PostService {
	t.Helper()
	return NewPostService(NewPostRepository(db), nil)
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	t.Helper()
	user := &entities.User{Email: email, PasswordHash: "x", Role: "user"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestEstimateWeightKg(t *testing.T) {
	cases := []struct {
		name     string
		quantity string
		category string
		want     float64
	}{
		{"meals per unit", "3 trays", "Meals", 1.5},
		{"fruits per unit", "10 units", "Fruits", 2.0},
		{"baked goods per unit", "12", "Baked Goods", 1.2},
		{"unparseable quantity falls back to one unit", "a few", "Snacks", 0.2},
		{"unknown category uses default density", "2", "Casseroles", 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, estimateWeightKg(tc.quantity, tc.category), 1e-9)
		})
	}
}

func TestParseExpiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("rfc3339", func(t *testing.T) {
		got, err := parseExpiry("2025-03-02T10:00:00Z", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC), got.UTC())
	})

	t.Run("datetime-local", func(t *testing.T) {
		got, err := parseExpiry("2025-03-02T10:00", now)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Hour())
	})

	t.Run("minutes from now", func(t *testing.T) {
		got, err := parseExpiry("90", now)
		require.NoError(t, err)
		assert.Equal(t, now.Add(90*time.Minute), got)
	})

	t.Run("rejects garbage and non-positive minutes", func(t *testing.T) {
		_, err := parseExpiry("tomorrow-ish", now)
		assert.ErrorIs(t, err, domain.ErrInvalidExpiry)
		_, err = parseExpiry("0", now)
		assert.ErrorIs(t, err, domain.ErrInvalidExpiry)
	})
}

func TestCreatePostDefaults(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db)
	owner := seedUser(t, db, "owner@example.com")

	created, err := service.CreatePost(context.Background(), domain.CreatePostRequest{
		Title:       "Sourdough loaves",
		Description: "Day-old loaves from the bakery",
		Quantity:    "8 loaves",
		DietaryTags: []string{"vegan", "nut-free"},
		Location:    "Bakery on Main",
		ExpiresAt:   "120",
	}, owner.ID)
	require.NoError(t, err)

	assert.Equal(t, entities.PostStatusActive, created.Status)
	assert.Equal(t, "Other", created.Category)
	assert.InDelta(t, 4.0, created.EstimatedWeightKg, 1e-9)
	assert.Equal(t, []string{"vegan", "nut-free"}, created.DietaryTags)
	assert.Equal(t, "owner@example.com", created.OwnerEmail)
	assert.True(t, created.ExpiresAt.After(time.Now()))
}

func TestCreatePostKeepsExplicitWeight(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db)
	owner := seedUser(t, db, "owner@example.com")

	created, err := service.CreatePost(context.Background(), domain.CreatePostRequest{
		Title:             "Fruit crates",
		Description:       "Oranges and apples",
		Category:          "Fruits",
		Quantity:          "10 units",
		EstimatedWeightKg: 7.5,
		Location:          "Market stall 4",
		ExpiresAt:         "60",
	}, owner.ID)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, created.EstimatedWeightKg, 1e-9)

	_, err = service.CreatePost(context.Background(), domain.CreatePostRequest{
		Title:       "Broken expiry",
		Description: "x",
		Location:    "x",
		ExpiresAt:   "whenever",
	}, owner.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidExpiry)
}

func seedListingFixtures(t *testing.T, db *gorm.DB, ownerID uint) {
	t.Helper()
	now := time.Now()
	posts := []*entities.Post{
		{UserID: ownerID, Title: "Veggie curry", Description: "Mild curry with rice", Category: "Meals",
			DietaryJSON: `["vegetarian"]`, Location: "A", ExpiresAt: now.Add(2 * time.Hour), Status: entities.PostStatusActive},
		{UserID: ownerID, Title: "Granola bars", Description: "Sealed packs", Category: "Snacks",
			Location: "B", ExpiresAt: now.Add(30 * time.Minute), Status: entities.PostStatusActive},
		{UserID: ownerID, Title: "Lapsed soup", Description: "Past pickup time", Category: "Meals",
			Location: "C", ExpiresAt: now.Add(-time.Hour), Status: entities.PostStatusActive},
		{UserID: ownerID, Title: "Fruit basket", Description: "Already promised", Category: "Fruits",
			Location: "D", ExpiresAt: now.Add(time.Hour), Status: entities.PostStatusClaimed},
		{UserID: ownerID, Title: "Old bread", Description: "Marked expired by owner", Category: "Baked Goods",
			Location: "E", ExpiresAt: now.Add(time.Hour), Status: entities.PostStatusExpired},
	}
	for _, p := range posts {
		require.NoError(t, db.Create(p).Error)
	}
}

func titles(posts []*domain.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestGetPostsStatusFilters(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db)
	owner := seedUser(t, db, "owner@example.com")
	seedListingFixtures(t, db, owner.ID)

	available, err := service.GetPosts(context.Background(), domain.ListPostsQuery{Status: domain.PostFilterAvailable})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Veggie curry", "Granola bars"}, titles(available))

	claimed, err := service.GetPosts(context.Background(), domain.ListPostsQuery{Status: domain.PostFilterClaimed})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Fruit basket"}, titles(claimed))

	// Expired includes both the stored status and the derived deadline.
	expired, err := service.GetPosts(context.Background(), domain.ListPostsQuery{Status: domain.PostFilterExpired})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Lapsed soup", "Old bread"}, titles(expired))

	all, err := service.GetPosts(context.Background(), domain.ListPostsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestGetPostsSearchCategoryDietary(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db)
	owner := seedUser(t, db, "owner@example.com")
	seedListingFixtures(t, db, owner.ID)

	bySearch, err := service.GetPosts(context.Background(), domain.ListPostsQuery{
		Status: domain.PostFilterAvailable,
		Search: "CURRY",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Veggie curry"}, titles(bySearch))

	byCategory, err := service.GetPosts(context.Background(), domain.ListPostsQuery{
		Status:   domain.PostFilterAvailable,
		Category: "Snacks",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Granola bars"}, titles(byCategory))

	// "All Types" is the UI's no-filter sentinel.
	allTypes, err := service.GetPosts(context.Background(), domain.ListPostsQuery{
		Status:   domain.PostFilterAvailable,
		Category: "All Types",
	})
	require.NoError(t, err)
	assert.Len(t, allTypes, 2)

	byDietary, err := service.GetPosts(context.Background(), domain.ListPostsQuery{
		Status:  domain.PostFilterAvailable,
		Dietary: "vegetarian",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Veggie curry"}, titles(byDietary))
}

func TestGetPostsSortEndingSoon(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db)
	owner := seedUser(t, db, "owner@example.com")
	seedListingFixtures(t, db, owner.ID)

	posts, err := service.GetPosts(context.Background(), domain.ListPostsQuery{
		Status: domain.PostFilterAvailable,
		Sort:   domain.PostSortEndingSoon,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Granola bars", "Veggie curry"}, titles(posts))
}

func TestGetPostByIDClaimVisibility(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db)
	owner := seedUser(t, db, "owner@example.com")
	claimer := seedUser(t, db, "claimer@example.com")

	p := &entities.Post{
		UserID: owner.ID, Title: "Trays", Description: "x", Location: "x",
		ExpiresAt: time.Now().Add(time.Hour), Status: entities.PostStatusActive,
	}
	require.NoError(t, db.Create(p).Error)
	require.NoError(t, db.Create(&entities.Claim{
		PostID: p.ID, ClaimerID: claimer.ID, RequestedQuantity: "1", Status: entities.ClaimStatusPending,
	}).Error)

	asOwner, err := service.GetPostByID(context.Background(), p.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, asOwner.Claims, 1)
	assert.Equal(t, "claimer@example.com", asOwner.Claims[0].ClaimerEmail)

	asGuest, err := service.GetPostByID(context.Background(), p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, asGuest.Claims)

	asClaimer, err := service.GetPostByID(context.Background(), p.ID, claimer.ID)
	require.NoError(t, err)
	assert.Empty(t, asClaimer.Claims)

	_, err = service.GetPostByID(context.Background(), 9999, 0)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestGetUserPostsClaimSummary(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db)
	owner := seedUser(t, db, "owner@example.com")
	claimer := seedUser(t, db, "claimer@example.com")

	p := &entities.Post{
		UserID: owner.ID, Title: "Trays", Description: "x", Location: "x",
		ExpiresAt: time.Now().Add(time.Hour), Status: entities.PostStatusActive,
	}
	require.NoError(t, db.Create(p).Error)
	for _, status := range []string{
		entities.ClaimStatusPending,
		entities.ClaimStatusPending,
		entities.ClaimStatusApproved,
		entities.ClaimStatusRejected,
		entities.ClaimStatusCancelled,
	} {
		require.NoError(t, db.Create(&entities.Claim{
			PostID: p.ID, ClaimerID: claimer.ID, RequestedQuantity: "1", Status: status,
		}).Error)
	}

	posts, err := service.GetUserPosts(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].ClaimsSummary)
	assert.Equal(t, int64(2), posts[0].ClaimsSummary.Pending)
	assert.Equal(t, int64(1), posts[0].ClaimsSummary.Accepted)
	assert.Equal(t, int64(1), posts[0].ClaimsSummary.Rejected)
}

func TestUpdatePostStatus(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db)
	owner := seedUser(t, db, "owner@example.com")
	stranger := seedUser(t, db, "stranger@example.com")

	p := &entities.Post{
		UserID: owner.ID, Title: "Trays", Description: "x", Location: "x",
		ExpiresAt: time.Now().Add(time.Hour), Status: entities.PostStatusActive,
	}
	require.NoError(t, db.Create(p).Error)

	err := service.UpdatePostStatus(context.Background(), domain.UpdatePostStatusRequest{
		PostID: p.ID, Status: entities.PostStatusCompleted,
	}, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedPostAccess)

	err = service.UpdatePostStatus(context.Background(), domain.UpdatePostStatusRequest{
		PostID: p.ID, Status: entities.PostStatusCompleted,
	}, owner.ID)
	require.NoError(t, err)

	var stored entities.Post
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, entities.PostStatusCompleted, stored.Status)

	err = service.UpdatePostStatus(context.Background(), domain.UpdatePostStatusRequest{
		PostID: 9999, Status: entities.PostStatusCompleted,
	}, owner.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}
