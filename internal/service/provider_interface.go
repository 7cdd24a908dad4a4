package service

import (
	"context"
	"time"

	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
	"github.com/cypherlabdev/fixture-analyst-service/internal/provider/gemini"
)

//go:generate mockgen -destination=../mocks/mock_providers.go -package=mocks . FixtureProvider,AnalysisProvider,EventPublisher

// FixtureProvider fetches normalized fixtures and statistics from the data API
type FixtureProvider interface {
	Fixtures(ctx context.Context, live bool, date time.Time) ([]models.Fixture, error)
	Statistics(ctx context.Context, fixtureID string) (*models.MatchStatistics, error)
}

// AnalysisProvider turns a prompt into generated text
type AnalysisProvider interface {
	Generate(ctx context.Context, prompt string) (*gemini.Reply, error)
}

// EventPublisher publishes ledger changes
type EventPublisher interface {
	PublishBetEvent(ctx context.Context, event models.KafkaBetEvent) error
	Close() error
}
