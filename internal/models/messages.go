package models

import (
	"time"

	"github.com/google/uuid"
)

// KafkaSettlementMessage settles one or more ledger records by fixture
type KafkaSettlementMessage struct {
	Settlements []Settlement `json:"settlements"`
	Timestamp   time.Time    `json:"timestamp"`
	BatchID     string       `json:"batch_id"`
}

// Settlement assigns an outcome to the bet on a fixture
type Settlement struct {
	FixtureID string  `json:"fixture_id"`
	Outcome   Outcome `json:"outcome"`
}

// BetEventType names a ledger change
type BetEventType string

const (
	BetEventSaved   BetEventType = "bet_saved"
	BetEventSettled BetEventType = "bet_settled"
	BetEventDeleted BetEventType = "bet_deleted"
)

// KafkaBetEvent is published whenever the ledger changes
type KafkaBetEvent struct {
	ID         uuid.UUID    `json:"id"`
	Type       BetEventType `json:"type"`
	Record     BetRecord    `json:"record"`
	OccurredAt time.Time    `json:"occurred_at"`
}
