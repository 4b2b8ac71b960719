package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// RedisConfig holds the connection settings for the redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to redis and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("repo.NewRedisClient: %w", err)
	}
	return client, nil
}

// redisStateRepo stores the payload as a plain string value under the
// namespace key, with no expiry.
type redisStateRepo struct {
	rdb       redis.Cmdable
	namespace string
}

// NewRedisStateRepo constructs a StateRepo backed by redis.
func NewRedisStateRepo(rdb redis.Cmdable, namespace string) StateRepo {
	return &redisStateRepo{rdb: rdb, namespace: namespace}
}

func (r *redisStateRepo) Load(ctx context.Context) (domain.State, error) {
	payload, err := r.rdb.Get(ctx, r.namespace).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.EmptyState(), nil
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("repo.RedisStateRepo.Load: %w", err)
	}

	s, err := decodeState(payload)
	if err != nil {
		return domain.State{}, fmt.Errorf("repo.RedisStateRepo.Load: %w", err)
	}
	return s, nil
}

func (r *redisStateRepo) Save(ctx context.Context, state domain.State) error {
	payload, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("repo.RedisStateRepo.Save: %w", err)
	}
	if err := r.rdb.Set(ctx, r.namespace, payload, 0).Err(); err != nil {
		return fmt.Errorf("repo.RedisStateRepo.Save: %w", err)
	}
	return nil
}
