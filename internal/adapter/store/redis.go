package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seu-repo/sahayata-voice/internal/domain"
	"github.com/seu-repo/sahayata-voice/internal/ports"
)

const sessionKeyPrefix = "assistant:session:"

// RedisStore persists sessions as JSON in Redis, letting multiple demo
// instances share dialogue state. ttl 0 stores sessions without expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisStore(url string, ttl time.Duration, log *zap.Logger) (ports.SessionStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis session store initialized", zap.Duration("ttl", ttl))
	return &RedisStore{
		client: client,
		ttl:    ttl,
		log:    log,
	}, nil
}

// NewRedisStoreWithClient wraps an existing client; used by tests.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration, log *zap.Logger) ports.SessionStore {
	return &RedisStore{client: client, ttl: ttl, log: log}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) GetOrCreate(ctx context.Context, userID string) (*domain.Session, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session = domain.NewSession()
	if err := s.Save(ctx, userID, session); err != nil {
		return nil, err
	}
	s.log.Debug("Session created", zap.String("user_id", userID))
	return session, nil
}

func (s *RedisStore) Save(ctx context.Context, userID string, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+userID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Reset(ctx context.Context, userID string) error {
	return s.Save(ctx, userID, domain.NewSession())
}

func (s *RedisStore) Ping() error {
	return s.client.Ping(context.Background()).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
