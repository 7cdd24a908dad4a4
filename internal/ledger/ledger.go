// Package ledger keeps the session's bet records in memory.
package ledger

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
)

// ErrNotFound is returned when no record exists for a fixture
var ErrNotFound = errors.New("bet record not found")

// Status filters accepted by History
const (
	FilterAll     = "all"
	FilterWon     = "won"
	FilterLost    = "lost"
	FilterPending = "pending"
)

// HistoryFilter narrows the history listing
type HistoryFilter struct {
	Status string // all, won, lost, pending
	Search string // matched against team names and selection
}

// Ledger maps fixture IDs to bet records. A save replaces any record under
// the same fixture ID; records live only as long as the process.
type Ledger struct {
	mu      sync.RWMutex
	records map[string]models.BetRecord
	order   []string // fixture IDs in first-save order
	now     func() time.Time
	logger  zerolog.Logger
}

// New creates an empty ledger
func New(logger zerolog.Logger) *Ledger {
	return &Ledger{
		records: make(map[string]models.BetRecord),
		now:     time.Now,
		logger:  logger.With().Str("component", "ledger").Logger(),
	}
}

// Save stores rec, overwriting any previous record for the same fixture
func (l *Ledger) Save(rec models.BetRecord) models.BetRecord {
	if rec.Outcome == "" {
		rec.Outcome = models.OutcomePending
	}
	rec.UpdatedAt = l.now().UTC()

	l.mu.Lock()
	if _, exists := l.records[rec.FixtureID]; !exists {
		l.order = append(l.order, rec.FixtureID)
	}
	l.records[rec.FixtureID] = rec
	l.mu.Unlock()

	l.logger.Debug().
		Str("fixture_id", rec.FixtureID).
		Str("outcome", string(rec.Outcome)).
		Msg("saved bet record")

	return rec
}

// Settle sets the outcome of an existing record
func (l *Ledger) Settle(fixtureID string, outcome models.Outcome) (models.BetRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[fixtureID]
	if !ok {
		return models.BetRecord{}, ErrNotFound
	}
	rec.Outcome = outcome
	rec.UpdatedAt = l.now().UTC()
	l.records[fixtureID] = rec

	return rec, nil
}

// Get returns the record for a fixture
func (l *Ledger) Get(fixtureID string) (models.BetRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, ok := l.records[fixtureID]
	return rec, ok
}

// All returns every record in first-save order
func (l *Ledger) All() []models.BetRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.BetRecord, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.records[id])
	}
	return out
}

// Len returns the number of records
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Delete removes the record for a fixture and reports whether it existed
func (l *Ledger) Delete(fixtureID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.records[fixtureID]; !ok {
		return false
	}
	delete(l.records, fixtureID)
	for i, id := range l.order {
		if id == fixtureID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every record
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.records = make(map[string]models.BetRecord)
	l.order = nil
	l.mu.Unlock()

	l.logger.Info().Msg("cleared ledger")
}

// History returns the records matching filter, most recent first
func (l *Ledger) History(filter HistoryFilter) []models.BetRecord {
	all := l.All()
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.BetRecord, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		rec := all[i]
		if !matchesStatus(rec, filter.Status) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.HomeTeam), search) &&
			!strings.Contains(strings.ToLower(rec.AwayTeam), search) &&
			!strings.Contains(strings.ToLower(rec.Selection), search) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Stats aggregates every record in the ledger
func (l *Ledger) Stats() models.LedgerStats {
	return ComputeStats(l.All())
}

func matchesStatus(rec models.BetRecord, status string) bool {
	switch strings.ToLower(status) {
	case "", FilterAll:
		return true
	case FilterWon:
		return rec.Outcome == models.OutcomeWon
	case FilterLost:
		return rec.Outcome == models.OutcomeLost
	case FilterPending:
		return rec.Outcome == models.OutcomePending
	}
	return false
}
