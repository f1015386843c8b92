package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"holidaze/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	statsKeyPrefix   = "profile:stats:"
	statsTTL         = 10 * time.Minute
)

type Config struct {
	Addr       string
	Password   string
	SessionTTL time.Duration
}

// ValkeyClient is the gateway's only mutable shared state: it holds
// session credentials and the session-scoped profile counters. Domain
// entities are never cached here; the upstream API owns them.
type ValkeyClient struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client:     rdb,
		sessionTTL: cfg.SessionTTL,
	}, nil
}

func (v *ValkeyClient) SaveSession(ctx context.Context, sessionID string, sess models.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := v.client.Set(ctx, sessionKeyPrefix+sessionID, payload, v.sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (v *ValkeyClient) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	payload, err := v.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("session lookup error: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("invalid session in cache: %w", err)
	}
	return &sess, nil
}

func (v *ValkeyClient) DeleteSession(ctx context.Context, sessionID string) error {
	if err := v.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (v *ValkeyClient) GetProfileStats(ctx context.Context, name string) (*models.ProfileStats, error) {
	payload, err := v.client.Get(ctx, statsKeyPrefix+name).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("stats not cached")
		}
		return nil, fmt.Errorf("stats lookup error: %w", err)
	}

	var stats models.ProfileStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, fmt.Errorf("invalid stats in cache: %w", err)
	}
	return &stats, nil
}

func (v *ValkeyClient) SetProfileStats(ctx context.Context, name string, stats models.ProfileStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := v.client.Set(ctx, statsKeyPrefix+name, payload, statsTTL).Err(); err != nil {
		return fmt.Errorf("failed to store stats: %w", err)
	}
	return nil
}

func (v *ValkeyClient) InvalidateProfileStats(ctx context.Context, name string) error {
	if err := v.client.Del(ctx, statsKeyPrefix+name).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stats: %w", err)
	}
	return nil
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
