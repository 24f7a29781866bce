package repository

import (
	"context"
	"errors"

	"github.com/bbois1999/gun-event/domain"

	"gorm.io/gorm"
)

type socialRepository struct {
	db *gorm.DB
}

func NewSocialRepository(db *gorm.DB) domain.SocialRepository {
	return &socialRepository{db: db}
}

func (r *socialRepository) CreateLike(ctx context.Context, like *domain.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *socialRepository) FindLike(ctx context.Context, userID, postID string) (*domain.Like, error) {
	var like domain.Like
	err := r.db.WithContext(ctx).First(&like, "user_id = ? AND post_id = ?", userID, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLikeNotFound
		}
		return nil, err
	}
	return &like, nil
}

func (r *socialRepository) DeleteLike(ctx context.Context, userID, postID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Like{}, "user_id = ? AND post_id = ?", userID, postID)
	return res.RowsAffected, res.Error
}

func (r *socialRepository) CreateFollow(ctx context.Context, follow *domain.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *socialRepository) DeleteFollow(ctx context.Context, followerID, followedID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Follow{}, "follower_id = ? AND followed_id = ?", followerID, followedID)
	return res.RowsAffected, res.Error
}

func (r *socialRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *socialRepository) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

func (r *socialRepository) ListFollowedIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error
	return ids, err
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListNotifications(ctx context.Context, userID string, limit int, cursor string) ([]domain.Notification, error) {
	tx := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Post").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit)

	if cursor != "" {
		// Cursor is the id of the last notification on the previous page.
		var anchor domain.Notification
		if err := r.db.WithContext(ctx).First(&anchor, "id = ?", cursor).Error; err == nil {
			tx = tx.Where("created_at < ?", anchor.CreatedAt)
		}
	}

	var notifications []domain.Notification
	if err := tx.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID string, ids []string) error {
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Update("read", true).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
