package repository

import (
	"context"
	"errors"

	"github.com/bbois1999/gun-event/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) domain.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) CreatePost(ctx context.Context, post *domain.Post, images []domain.NewPostImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for i, img := range images {
			pi := domain.PostImage{
				ID:       uuid.NewString(),
				URL:      img.URL,
				Key:      img.Key,
				PostID:   post.ID,
				Position: i,
			}
			if err := tx.Create(&pi).Error; err != nil {
				return err
			}
			post.Images = append(post.Images, pi)
		}
		return nil
	})
}

func (r *postRepository) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Event").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	if err := r.fillLikeCounts(ctx, []*domain.Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPosts(ctx context.Context, q domain.PostQuery) ([]domain.Post, error) {
	tx := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Event").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC")

	if q.EventID != "" {
		tx = tx.Where("event_id = ?", q.EventID)
	}
	if q.AuthorID != "" {
		tx = tx.Where("author_id = ?", q.AuthorID)
	}
	if len(q.AuthorIDs) > 0 {
		tx = tx.Where("author_id IN ?", q.AuthorIDs)
	}
	if q.PublishedOnly {
		tx = tx.Where("published = ?", true)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var posts []domain.Post
	if err := tx.Find(&posts).Error; err != nil {
		return nil, err
	}

	refs := make([]*domain.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	if err := r.fillLikeCounts(ctx, refs); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) UpdatePost(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":   post.Title,
			"content": post.Content,
		}).Error
}

func (r *postRepository) DeletePost(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.PostImage{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Like{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Post{}, "id = ?", id).Error
	})
}

// fillLikeCounts populates the LikeCount field with one grouped query.
func (r *postRepository) fillLikeCounts(ctx context.Context, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	type likeCount struct {
		PostID string
		Count  int64
	}
	var counts []likeCount
	err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return err
	}

	byID := make(map[string]int64, len(counts))
	for _, c := range counts {
		byID[c.PostID] = c.Count
	}
	for _, p := range posts {
		p.LikeCount = byID[p.ID]
	}
	return nil
}
