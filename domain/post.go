package domain

import (
	"context"
	"time"
)

type Post struct {
	ID        string      `gorm:"primaryKey;type:uuid" json:"id"`
	Title     string      `gorm:"not null" json:"title"`
	Content   string      `gorm:"not null" json:"content"`
	Published bool        `gorm:"not null;default:true" json:"published"`
	AuthorID  string      `gorm:"type:uuid;not null;index" json:"authorId"`
	EventID   *string     `gorm:"type:uuid;index" json:"eventId,omitempty"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
	Author    *User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Event     *Event      `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Images    []PostImage `gorm:"foreignKey:PostID" json:"images"`
	Likes     []Like      `gorm:"foreignKey:PostID" json:"likes,omitempty"`
	LikeCount int64       `gorm:"-" json:"likeCount"`
}

// PostImage is one image attached to a post, ordered by Position.
type PostImage struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	URL       string    `gorm:"not null" json:"url"`
	Key       string    `gorm:"not null" json:"key"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"postId"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// PostQuery filters post listings.
type PostQuery struct {
	EventID  string
	AuthorID string
	Limit    int
	// AuthorIDs limits results to the given authors (the following feed).
	AuthorIDs []string
	// PublishedOnly excludes drafts (public profile listings).
	PublishedOnly bool
}

type NewPostImage struct {
	URL string
	Key string
}

type PostRepository interface {
	CreatePost(ctx context.Context, post *Post, images []NewPostImage) error
	GetPostByID(ctx context.Context, id string) (*Post, error)
	ListPosts(ctx context.Context, q PostQuery) ([]Post, error)
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id string) error
}

type PostUseCase interface {
	CreatePost(ctx context.Context, authorID, title, content string, eventID *string, images []NewPostImage) (*Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	ListPosts(ctx context.Context, q PostQuery) ([]Post, error)
	Feed(ctx context.Context, limit int) ([]Post, error)
	FollowingFeed(ctx context.Context, userID string, limit int) ([]Post, error)
	UpdatePost(ctx context.Context, userID, postID, title, content string) (*Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
}
