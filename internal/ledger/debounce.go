package ledger

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
)

// DefaultSaveDelay is the idle time after the last edit before a draft is saved
const DefaultSaveDelay = 800 * time.Millisecond

// Debouncer runs the most recently scheduled task once no new task has been
// scheduled for delay. Scheduling replaces the pending task and restarts the
// timer; tasks never stack.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
	gen     uint64
}

// NewDebouncer creates a debouncer with the given idle delay
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule cancels any pending task and schedules fn
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush runs the pending task immediately, if any, and reports whether it ran
func (d *Debouncer) Flush() bool {
	fn := d.take(0, true)
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Cancel drops the pending task without running it
func (d *Debouncer) Cancel() {
	d.take(0, true)
}

// Pending reports whether a task is waiting to run
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) fire(gen uint64) {
	if fn := d.take(gen, false); fn != nil {
		fn()
	}
}

// take detaches the pending task. Timer callbacks pass their generation so a
// callback racing a newer Schedule or a Flush does nothing.
func (d *Debouncer) take(gen uint64, force bool) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !force && gen != d.gen {
		return nil
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	return fn
}

// SaveFunc persists a bet record
type SaveFunc func(rec models.BetRecord)

type draft struct {
	debouncer *Debouncer
	seq       uint64
}

// DraftSaver coalesces rapid edits to a bet form into one save per fixture.
// Pending drafts must be flushed before their form goes away; FlushAll is the
// teardown hook for the whole process. A fixture has an entry only while a
// draft is pending.
type DraftSaver struct {
	mu     sync.Mutex
	delay  time.Duration
	save   SaveFunc
	seq    uint64
	drafts map[string]*draft
	logger zerolog.Logger

	// writeMu orders draft saves against Supersede writes
	writeMu sync.Mutex
}

// NewDraftSaver creates a draft saver that calls save after delay of inactivity
func NewDraftSaver(delay time.Duration, save SaveFunc, logger zerolog.Logger) *DraftSaver {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &DraftSaver{
		delay:  delay,
		save:   save,
		drafts: make(map[string]*draft),
		logger: logger.With().Str("component", "draft_saver").Logger(),
	}
}

// Edit records the latest state of a fixture's bet form
func (s *DraftSaver) Edit(rec models.BetRecord) {
	s.mu.Lock()
	d, ok := s.drafts[rec.FixtureID]
	if !ok {
		d = &draft{debouncer: NewDebouncer(s.delay)}
		s.drafts[rec.FixtureID] = d
	}
	s.seq++
	seq := s.seq
	d.seq = seq
	// Scheduling under mu keeps the debouncer's task in step with d.seq
	d.debouncer.Schedule(func() { s.commit(rec, seq) })
	s.mu.Unlock()
}

// commit saves rec if it is still the fixture's latest draft
func (s *DraftSaver) commit(rec models.BetRecord, seq uint64) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	d, ok := s.drafts[rec.FixtureID]
	current := ok && d.seq == seq
	if current {
		delete(s.drafts, rec.FixtureID)
	}
	s.mu.Unlock()

	if !current {
		return
	}
	s.save(rec)
}

// Flush saves the pending draft for a fixture now
func (s *DraftSaver) Flush(fixtureID string) bool {
	s.mu.Lock()
	d, ok := s.drafts[fixtureID]
	s.mu.Unlock()
	if !ok {
		return false
	}

	flushed := d.debouncer.Flush()
	if flushed {
		s.logger.Debug().Str("fixture_id", fixtureID).Msg("flushed pending draft")
	}
	return flushed
}

// FlushAll saves every pending draft and returns how many were written
func (s *DraftSaver) FlushAll() int {
	s.mu.Lock()
	ds := make([]*Debouncer, 0, len(s.drafts))
	for _, d := range s.drafts {
		ds = append(ds, d.debouncer)
	}
	s.mu.Unlock()

	n := 0
	for _, d := range ds {
		if d.Flush() {
			n++
		}
	}
	if n > 0 {
		s.logger.Info().Int("count", n).Msg("flushed pending drafts")
	}
	return n
}

// Discard drops a fixture's pending draft without saving it
func (s *DraftSaver) Discard(fixtureID string) {
	s.Supersede(fixtureID, nil)
}

// Supersede drops a fixture's pending draft and runs write, if not nil.
// A draft save already under way finishes before write starts, and a draft
// taken by its timer before the call is never saved after it.
func (s *DraftSaver) Supersede(fixtureID string, write func()) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	d, ok := s.drafts[fixtureID]
	delete(s.drafts, fixtureID)
	s.mu.Unlock()

	if ok {
		d.debouncer.Cancel()
	}
	if write != nil {
		write()
	}
}

// SupersedeAll drops every pending draft and runs write, if not nil
func (s *DraftSaver) SupersedeAll(write func()) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	drafts := s.drafts
	s.drafts = make(map[string]*draft)
	s.mu.Unlock()

	for _, d := range drafts {
		d.debouncer.Cancel()
	}
	if write != nil {
		write()
	}
}

// Pending reports whether a fixture has an unsaved draft
func (s *DraftSaver) Pending(fixtureID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.drafts[fixtureID]
	return ok
}

// Len returns how many fixtures have a pending draft
func (s *DraftSaver) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}
