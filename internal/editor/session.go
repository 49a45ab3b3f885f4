package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ideapad/internal/storage"
)

// Session is one open editing session: a document plus its autosave
// scheduler.
type Session struct {
	IdeaID int64
	Doc    *Document

	sched *Scheduler
}

// NotifyContentChanged tells the scheduler the document mutated.
func (s *Session) NotifyContentChanged() {
	s.sched.NotifyContentChanged(s.Doc)
}

// Flush forces an immediate save, cancelling any pending timer.
func (s *Session) Flush(ctx context.Context) error {
	return s.sched.FlushNow(ctx, s.Doc)
}

// Sessions tracks the open editing sessions, one per idea.
type Sessions struct {
	blocks storage.BlockStore
	delay  time.Duration
	logger *slog.Logger

	mu   sync.Mutex
	open map[int64]*Session
}

// NewSessions creates a session manager over the given block store.
func NewSessions(blocks storage.BlockStore, delay time.Duration, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{
		blocks: blocks,
		delay:  delay,
		logger: logger,
		open:   make(map[int64]*Session),
	}
}

// Open returns the idea's session, loading its blocks and starting a
// scheduler on first open.
func (m *Sessions) Open(ctx context.Context, ideaID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.open[ideaID]; ok {
		return s, nil
	}

	records, err := m.blocks.GetByIdeaID(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks for idea %d: %w", ideaID, err)
	}

	s := &Session{
		IdeaID: ideaID,
		Doc:    NewDocument(ideaID, records),
		sched:  NewScheduler(NewReconciler(m.blocks), m.delay, m.logger),
	}
	m.open[ideaID] = s
	return s, nil
}

// Get returns an already-open session, or nil.
func (m *Sessions) Get(ideaID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open[ideaID]
}

// Close tears down one session with a final best-effort flush.
func (m *Sessions) Close(ideaID int64) {
	m.mu.Lock()
	s, ok := m.open[ideaID]
	delete(m.open, ideaID)
	m.mu.Unlock()
	if ok {
		s.sched.FlushOnTeardown(s.Doc)
	}
}

// CloseAll tears down every open session. Called on process shutdown
// so unsaved work gets its guaranteed final flush.
func (m *Sessions) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.open))
	for _, s := range m.open {
		sessions = append(sessions, s)
	}
	m.open = make(map[int64]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.sched.FlushOnTeardown(s.Doc)
	}
}
