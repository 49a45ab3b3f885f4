package editor

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultAutosaveDelay is the quiet period after the last edit before
// a debounced save fires.
const DefaultAutosaveDelay = 5 * time.Second

// Scheduler debounces edit notifications into reconciliation rounds.
// Bursts of edits coalesce into a single save; a forced flush cancels
// any pending timer; teardown runs one unconditional best-effort pass.
type Scheduler struct {
	rec    *Reconciler
	delay  time.Duration
	logger *slog.Logger

	// saveMu serializes reconciliation rounds. A timer firing while a
	// round is in flight re-arms instead of overlapping, so diffs are
	// never applied out of order.
	saveMu sync.Mutex

	mu        sync.Mutex
	timer     *time.Timer
	latest    *Document // side-channel cell; the timer callback reads this, never a captured value
	lastSaved string
}

// NewScheduler creates a scheduler over the given reconciler. A zero
// delay falls back to DefaultAutosaveDelay; a nil logger falls back to
// slog.Default().
func NewScheduler(rec *Reconciler, delay time.Duration, logger *slog.Logger) *Scheduler {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{rec: rec, delay: delay, logger: logger}
}

// NotifyContentChanged records the latest document state and, when the
// content truly changed and at least one block is dirty, (re)arms the
// debounce timer. Edits arriving before the timer fires re-arm it.
func (s *Scheduler) NotifyContentChanged(doc *Document) {
	snap := doc.Snapshot()
	dirty := doc.HasDirty()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = doc
	if snap == s.lastSaved || !dirty {
		return
	}
	s.stopTimerLocked()
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// FlushNow cancels any pending timer and runs a reconciliation round
// synchronously. User-initiated saves come through here so failures
// can surface to the caller.
func (s *Scheduler) FlushNow(ctx context.Context, doc *Document) error {
	s.mu.Lock()
	s.stopTimerLocked()
	s.latest = doc
	s.mu.Unlock()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := s.rec.Reconcile(ctx, doc); err != nil {
		return err
	}
	s.markSaved(doc)
	return nil
}

// FlushOnTeardown cancels any pending timer and runs one unconditional
// reconciliation pass over the side-channel cell's current value,
// whether or not a change was detected. The outcome is logged only:
// by teardown time there is no observer left to report failure to, and
// no further scheduling is possible.
func (s *Scheduler) FlushOnTeardown(doc *Document) {
	s.mu.Lock()
	s.stopTimerLocked()
	if s.latest != nil {
		doc = s.latest
	}
	s.mu.Unlock()
	if doc == nil {
		return
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := s.rec.Reconcile(context.Background(), doc); err != nil {
		s.logger.Error("teardown flush failed", "idea_id", doc.IdeaID, "error", err)
		return
	}
	s.markSaved(doc)
	s.logger.Info("teardown flush complete", "idea_id", doc.IdeaID)
}

// Pending reports whether a debounced save is currently armed.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// fire is the debounce timer callback. It reads the document through
// the side-channel cell rather than any value captured when the timer
// was armed, so a late-firing timer never acts on stale state.
func (s *Scheduler) fire() {
	s.mu.Lock()
	doc := s.latest
	s.timer = nil
	s.mu.Unlock()
	if doc == nil {
		return
	}

	if !s.saveMu.TryLock() {
		// A round is in flight; re-arm rather than overlap.
		s.mu.Lock()
		if s.timer == nil {
			s.timer = time.AfterFunc(s.delay, s.fire)
		}
		s.mu.Unlock()
		return
	}
	defer s.saveMu.Unlock()

	if err := s.rec.Reconcile(context.Background(), doc); err != nil {
		// Autosave has no interactive surface to report to; the dirty
		// markers survive and the next round retries the same diff.
		s.logger.Error("autosave failed", "idea_id", doc.IdeaID, "error", err)
		return
	}
	s.markSaved(doc)
}

func (s *Scheduler) markSaved(doc *Document) {
	snap := doc.Snapshot()
	s.mu.Lock()
	s.lastSaved = snap
	s.mu.Unlock()
}

func (s *Scheduler) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
