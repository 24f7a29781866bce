package domain

import (
	"context"
	"time"
)

type Like struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_post" json:"userId"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_post" json:"postId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Follow struct {
	FollowerID string    `gorm:"type:uuid;primaryKey" json:"followerId"`
	FollowedID string    `gorm:"type:uuid;primaryKey" json:"followedId"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Notification struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Type      string    `gorm:"not null" json:"type"` // like | follow
	Message   string    `gorm:"not null" json:"message"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	SenderID  string    `gorm:"type:uuid;not null" json:"senderId"`
	PostID    *string   `gorm:"type:uuid" json:"postId,omitempty"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	Sender    *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Post      *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

// FollowerStats is the follower summary for a profile page.
type FollowerStats struct {
	Count       int64 `json:"count"`
	IsFollowing bool  `json:"isFollowing"`
}

// NotificationPage is one cursor page of a user's notifications.
type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
	NextCursor    *string        `json:"nextCursor"`
}

type SocialRepository interface {
	CreateLike(ctx context.Context, like *Like) error
	FindLike(ctx context.Context, userID, postID string) (*Like, error)
	DeleteLike(ctx context.Context, userID, postID string) (int64, error)

	CreateFollow(ctx context.Context, follow *Follow) error
	DeleteFollow(ctx context.Context, followerID, followedID string) (int64, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	ListFollowedIDs(ctx context.Context, followerID string) ([]string, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *Notification) error
	ListNotifications(ctx context.Context, userID string, limit int, cursor string) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID string, ids []string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type SocialUseCase interface {
	LikePost(ctx context.Context, userID, postID string) error
	UnlikePost(ctx context.Context, userID, postID string) error
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
	FollowerStats(ctx context.Context, userID, viewerID string) (*FollowerStats, error)
	Notifications(ctx context.Context, userID string, limit int, cursor string) (*NotificationPage, error)
	MarkNotificationsRead(ctx context.Context, userID string, ids []string) error
}
