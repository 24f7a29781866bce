package repository

import (
	"context"
	"time"

	"github.com/bbois1999/gun-event/domain"

	"github.com/redis/go-redis/v9"
)

type pendingRedisRepository struct {
	client *redis.Client
}

// NewPendingRedisRepository stores pending registrations in redis with a
// TTL, so they survive process restarts and multi-instance deployments.
func NewPendingRedisRepository(client *redis.Client) domain.PendingRegistrationRepository {
	return &pendingRedisRepository{client: client}
}

func pendingKey(identifier string) string {
	return "pending:" + identifier
}

func (r *pendingRedisRepository) Save(ctx context.Context, identifier string, reg *domain.PendingRegistration, ttl time.Duration) error {
	key := pendingKey(identifier)

	data := map[string]string{
		"email":    reg.Email,
		"username": reg.Username,
		"phone":    reg.PhoneNumber,
		"method":   string(reg.VerificationMethod),
	}

	if err := r.client.HSet(ctx, key, data).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, ttl).Err()
}

func (r *pendingRedisRepository) Get(ctx context.Context, identifier string) (*domain.PendingRegistration, error) {
	data, err := r.client.HGetAll(ctx, pendingKey(identifier)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil // not found or expired
	}
	return &domain.PendingRegistration{
		Email:              data["email"],
		Username:           data["username"],
		PhoneNumber:        data["phone"],
		VerificationMethod: domain.VerificationMethod(data["method"]),
	}, nil
}

func (r *pendingRedisRepository) Delete(ctx context.Context, identifier string) error {
	return r.client.Del(ctx, pendingKey(identifier)).Err()
}
