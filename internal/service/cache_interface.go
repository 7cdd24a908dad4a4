package service

import (
	"context"
	"time"

	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
)

//go:generate mockgen -destination=../mocks/mock_cache.go -package=mocks . Cache

// Cache is an interface that abstracts cache operations
// This allows for easier testing and mocking
type Cache interface {
	GetFixtures(ctx context.Context, live bool, day time.Time) ([]models.Fixture, error)
	SetFixtures(ctx context.Context, live bool, day time.Time, fixtures []models.Fixture) error
	InvalidateFixtures(ctx context.Context, live bool, day time.Time) error
	GetStatistics(ctx context.Context, fixtureID string) (*models.MatchStatistics, error)
	SetStatistics(ctx context.Context, fixtureID string, stats *models.MatchStatistics) error
	Ping(ctx context.Context) error
	Close() error
}
