package service

import (
	"context"

	"github.com/bbois1999/gun-event/domain"

	"github.com/google/uuid"
)

type postService struct {
	postRepo   domain.PostRepository
	socialRepo domain.SocialRepository
}

func NewPostService(postRepo domain.PostRepository, socialRepo domain.SocialRepository) domain.PostUseCase {
	return &postService{postRepo: postRepo, socialRepo: socialRepo}
}

func (s *postService) CreatePost(ctx context.Context, authorID, title, content string, eventID *string, images []domain.NewPostImage) (*domain.Post, error) {
	post := &domain.Post{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Published: true,
		AuthorID:  authorID,
		EventID:   eventID,
	}
	if err := s.postRepo.CreatePost(ctx, post, images); err != nil {
		return nil, err
	}
	return s.postRepo.GetPostByID(ctx, post.ID)
}

func (s *postService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.postRepo.GetPostByID(ctx, id)
}

func (s *postService) ListPosts(ctx context.Context, q domain.PostQuery) ([]domain.Post, error) {
	return s.postRepo.ListPosts(ctx, q)
}

func (s *postService) Feed(ctx context.Context, limit int) ([]domain.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.postRepo.ListPosts(ctx, domain.PostQuery{Limit: limit, PublishedOnly: true})
}

func (s *postService) FollowingFeed(ctx context.Context, userID string, limit int) ([]domain.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	followed, err := s.socialRepo.ListFollowedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(followed) == 0 {
		return []domain.Post{}, nil
	}
	return s.postRepo.ListPosts(ctx, domain.PostQuery{AuthorIDs: followed, Limit: limit, PublishedOnly: true})
}

func (s *postService) UpdatePost(ctx context.Context, userID, postID, title, content string) (*domain.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, domain.ErrForbidden
	}
	post.Title = title
	post.Content = content
	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetPostByID(ctx, postID)
}

func (s *postService) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return domain.ErrForbidden
	}
	return s.postRepo.DeletePost(ctx, postID)
}
