package service

import (
	"context"

	"github.com/bbois1999/gun-event/domain"
)

type userService struct {
	userRepo domain.UserRepository
}

func NewUserService(userRepo domain.UserRepository) domain.UserUseCase {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, id string) (*domain.PublicUser, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *userService) UpdateProfileImage(ctx context.Context, userID, url, key string) (*domain.PublicUser, error) {
	user, err := s.userRepo.UpdateProfileImage(ctx, userID, url, key)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}
