package post

import (
	"EcoBite-Backend/domain"
	"EcoBite-Backend/entities"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type (
	PostRepository interface {
		CreatePost(ctx context.Context, post *entities.Post) error
		GetPostByID(ctx context.Context, id uint) (*entities.Post, error)
		GetPostWithClaims(ctx context.Context, id uint) (*entities.Post, error)
		GetUserPosts(ctx context.Context, userID uint) ([]*entities.Post, error)
		ListPosts(ctx context.Context, q domain.ListPostsQuery, now time.Time) ([]*entities.Post, error)
		CountClaimsByStatus(ctx context.Context, postID uint, status string) (int64, error)
		UpdatePostStatus(ctx context.Context, id uint, status string) error
	}

	postRepository struct {
		db *gorm.DB
	}
)

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) CreatePost(ctx context.Context, post *entities.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetPostByID(ctx context.Context, id uint) (*entities.Post, error) {
	var post entities.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetPostWithClaims(ctx context.Context, id uint) (*entities.Post, error) {
	var post entities.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Claims").
		Preload("Claims.Claimer").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetUserPosts(ctx context.Context, userID uint) ([]*entities.Post, error) {
	var posts []*entities.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPosts composes the listing filters conjunctively. Absent filters are
// omitted from the query entirely. Availability is derived: an active post
// past its expiry is excluded from "available" and included in "expired"
// without its stored status ever changing.
func (r *postRepository) ListPosts(ctx context.Context, q domain.ListPostsQuery, now time.Time) ([]*entities.Post, error) {
	query := r.db.WithContext(ctx).Preload("User")

	switch q.Status {
	case domain.PostFilterAvailable:
		query = query.Where("status = ? AND expires_at > ?", entities.PostStatusActive, now)
	case domain.PostFilterClaimed:
		query = query.Where("status = ?", entities.PostStatusClaimed)
	case domain.PostFilterExpired:
		query = query.Where("status = ? OR expires_at <= ?", entities.PostStatusExpired, now)
	}

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	if q.Category != "" && !strings.EqualFold(q.Category, "All Types") && !strings.EqualFold(q.Category, "All") {
		query = query.Where("category = ?", q.Category)
	}

	if q.Dietary != "" {
		query = query.Where("dietary_json LIKE ?", "%"+q.Dietary+"%")
	}

	if q.Sort == domain.PostSortEndingSoon {
		query = query.Order("expires_at ASC")
	} else {
		query = query.Order("created_at DESC")
	}

	var posts []*entities.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) CountClaimsByStatus(ctx context.Context, postID uint, status string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Claim{}).
		Where("post_id = ? AND status = ?", postID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postRepository) UpdatePostStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
