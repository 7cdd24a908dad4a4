package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fixture-analyst-service/internal/metrics"
	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// RedisCache caches normalized fixture lists and match statistics in Redis
type RedisCache struct {
	client      *redis.Client
	fixturesTTL time.Duration
	liveTTL     time.Duration
	statsTTL    time.Duration
	logger      zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr        string // e.g., "localhost:6379"
	Password    string
	DB          int
	FixturesTTL time.Duration // day lists, e.g. 10 * time.Minute
	LiveTTL     time.Duration // live list, e.g. 30 * time.Second
	StatsTTL    time.Duration
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client:      client,
		fixturesTTL: config.FixturesTTL,
		liveTTL:     config.LiveTTL,
		statsTTL:    config.StatsTTL,
		logger:      logger.With().Str("component", "redis_cache").Logger(),
	}
}

// FixturesKey returns the key of the live list or of the list for day
func FixturesKey(live bool, day time.Time) string {
	if live {
		return "fixtures:live"
	}
	return "fixtures:date:" + day.UTC().Format("2006-01-02")
}

func statisticsKey(fixtureID string) string {
	return "stats:" + fixtureID
}

// SetFixtures caches a normalized fixture list
func (c *RedisCache) SetFixtures(ctx context.Context, live bool, day time.Time, fixtures []models.Fixture) error {
	ttl := c.fixturesTTL
	if live {
		ttl = c.liveTTL
	}
	return c.set(ctx, FixturesKey(live, day), fixtures, ttl)
}

// GetFixtures retrieves a cached fixture list
func (c *RedisCache) GetFixtures(ctx context.Context, live bool, day time.Time) ([]models.Fixture, error) {
	var fixtures []models.Fixture
	if err := c.get(ctx, "fixtures", FixturesKey(live, day), &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// SetStatistics caches the statistics of one fixture
func (c *RedisCache) SetStatistics(ctx context.Context, fixtureID string, stats *models.MatchStatistics) error {
	if stats == nil {
		return nil
	}
	return c.set(ctx, statisticsKey(fixtureID), stats, c.statsTTL)
}

// GetStatistics retrieves cached statistics of one fixture
func (c *RedisCache) GetStatistics(ctx context.Context, fixtureID string) (*models.MatchStatistics, error) {
	var stats models.MatchStatistics
	if err := c.get(ctx, "statistics", statisticsKey(fixtureID), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", ttl).
		Msg("cached value")

	return nil
}

func (c *RedisCache) get(ctx context.Context, kind, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookups.WithLabelValues(kind, "miss").Inc()
		return ErrCacheMiss
	} else if err != nil {
		metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("failed to get from Redis: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	metrics.CacheLookups.WithLabelValues(kind, "hit").Inc()
	return nil
}

// InvalidateFixtures drops a cached fixture list so the next read refetches it
func (c *RedisCache) InvalidateFixtures(ctx context.Context, live bool, day time.Time) error {
	key := FixturesKey(live, day)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	c.logger.Info().
		Str("key", key).
		Msg("invalidated fixture list")

	return nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
