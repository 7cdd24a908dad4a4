package service

import (
	"context"

	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
)

//go:generate mockgen -destination=../mocks/mock_settler.go -package=mocks . BetSettler

// BetSettler applies outcomes to recorded bets
type BetSettler interface {
	SettleBet(ctx context.Context, fixtureID string, outcome models.Outcome) (models.BetRecord, error)
}

var _ BetSettler = (*DashboardService)(nil)
