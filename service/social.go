package service

import (
	"context"
	"fmt"

	"github.com/bbois1999/gun-event/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type socialService struct {
	socialRepo       domain.SocialRepository
	notificationRepo domain.NotificationRepository
	postRepo         domain.PostRepository
	userRepo         domain.UserRepository
}

func NewSocialService(
	socialRepo domain.SocialRepository,
	notificationRepo domain.NotificationRepository,
	postRepo domain.PostRepository,
	userRepo domain.UserRepository,
) domain.SocialUseCase {
	return &socialService{
		socialRepo:       socialRepo,
		notificationRepo: notificationRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
	}
}

func (s *socialService) LikePost(ctx context.Context, userID, postID string) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	if _, err := s.socialRepo.FindLike(ctx, userID, postID); err == nil {
		return domain.ErrAlreadyLiked
	} else if err != domain.ErrLikeNotFound {
		return err
	}

	like := &domain.Like{ID: uuid.NewString(), UserID: userID, PostID: postID}
	if err := s.socialRepo.CreateLike(ctx, like); err != nil {
		return err
	}

	// Notify the author, unless they liked their own post. A notification
	// failure never fails the like.
	if post.AuthorID != userID {
		s.notify(ctx, &domain.Notification{
			ID:       uuid.NewString(),
			Type:     "like",
			UserID:   post.AuthorID,
			SenderID: userID,
			PostID:   &postID,
		}, fmt.Sprintf("liked your post %q", post.Title))
	}
	return nil
}

func (s *socialService) UnlikePost(ctx context.Context, userID, postID string) error {
	deleted, err := s.socialRepo.DeleteLike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}

func (s *socialService) Follow(ctx context.Context, followerID, followedID string) error {
	if _, err := s.userRepo.GetUserByID(ctx, followedID); err != nil {
		return err
	}
	if following, err := s.socialRepo.IsFollowing(ctx, followerID, followedID); err != nil {
		return err
	} else if following {
		return nil // already following, idempotent
	}

	follow := &domain.Follow{FollowerID: followerID, FollowedID: followedID}
	if err := s.socialRepo.CreateFollow(ctx, follow); err != nil {
		return err
	}

	s.notify(ctx, &domain.Notification{
		ID:       uuid.NewString(),
		Type:     "follow",
		UserID:   followedID,
		SenderID: followerID,
	}, "started following you")
	return nil
}

func (s *socialService) Unfollow(ctx context.Context, followerID, followedID string) error {
	_, err := s.socialRepo.DeleteFollow(ctx, followerID, followedID)
	return err
}

func (s *socialService) FollowerStats(ctx context.Context, userID, viewerID string) (*domain.FollowerStats, error) {
	count, err := s.socialRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.socialRepo.IsFollowing(ctx, viewerID, userID)
	if err != nil {
		return nil, err
	}
	return &domain.FollowerStats{Count: count, IsFollowing: following}, nil
}

func (s *socialService) Notifications(ctx context.Context, userID string, limit int, cursor string) (*domain.NotificationPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	notifications, err := s.notificationRepo.ListNotifications(ctx, userID, limit, cursor)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	var nextCursor *string
	if len(notifications) == limit {
		nextCursor = &notifications[len(notifications)-1].ID
	}
	return &domain.NotificationPage{
		Notifications: notifications,
		UnreadCount:   unread,
		NextCursor:    nextCursor,
	}, nil
}

func (s *socialService) MarkNotificationsRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return s.notificationRepo.MarkAllRead(ctx, userID)
	}
	return s.notificationRepo.MarkRead(ctx, userID, ids)
}

func (s *socialService) notify(ctx context.Context, n *domain.Notification, action string) {
	sender, err := s.userRepo.GetUserByID(ctx, n.SenderID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load notification sender")
		return
	}
	n.Message = fmt.Sprintf("%s %s", sender.Username, action)
	if err := s.notificationRepo.CreateNotification(ctx, n); err != nil {
		log.Warn().Err(err).Str("type", n.Type).Msg("failed to create notification")
	}
}
