package editor

import (
	"context"
	"testing"
	"time"
)

const testDelay = 30 * time.Millisecond

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

// Typing into a fresh idea arms the timer; typing again before it
// fires re-arms instead of saving twice; the flush persists exactly
// one block with the final content.
func TestScheduler_DebouncedTyping(t *testing.T) {
	_, repo, ideaID := newTestStore(t)
	sched := NewScheduler(NewReconciler(repo), testDelay, nil)

	doc := NewDocument(ideaID, nil)
	blockID := doc.Blocks()[0].ID

	if sched.Pending() {
		t.Fatal("timer armed before any edit")
	}

	doc.SetContent(blockID, "Hello")
	sched.NotifyContentChanged(doc)
	if !sched.Pending() {
		t.Fatal("timer not armed after first edit")
	}

	// Second keystroke before the timer fires: coalesce, don't stack.
	doc.SetContent(blockID, "Hello World")
	sched.NotifyContentChanged(doc)
	if !sched.Pending() {
		t.Fatal("timer not re-armed after second edit")
	}

	if !waitFor(t, time.Second, func() bool {
		ids := persistedIDs(t, repo, ideaID)
		return len(ids) == 1
	}) {
		t.Fatal("debounced save never landed")
	}

	blocks, err := repo.GetByIdeaID(context.Background(), ideaID)
	if err != nil {
		t.Fatalf("GetByIdeaID() error = %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("persisted count = %d, want exactly 1", len(blocks))
	}
	if blocks[0].Content != "Hello World" {
		t.Errorf("content = %q, want final keystroke state", blocks[0].Content)
	}
	if doc.HasDirty() {
		t.Error("dirty marker survived the save")
	}
}

func TestScheduler_NoChangeNoTimer(t *testing.T) {
	_, repo, ideaID := newTestStore(t)
	sched := NewScheduler(NewReconciler(repo), testDelay, nil)

	doc := NewDocument(ideaID, nil)

	// A notification without any dirty block must not arm the timer.
	sched.NotifyContentChanged(doc)
	if sched.Pending() {
		t.Error("timer armed without a dirty block")
	}
}

func TestScheduler_UnchangedSnapshotNoRearm(t *testing.T) {
	_, repo, ideaID := newTestStore(t)
	sched := NewScheduler(NewReconciler(repo), testDelay, nil)

	doc := NewDocument(ideaID, nil)
	blockID := doc.Blocks()[0].ID
	doc.SetContent(blockID, "Hello")
	sched.NotifyContentChanged(doc)

	if !waitFor(t, time.Second, func() bool { return !sched.Pending() && !doc.HasDirty() }) {
		t.Fatal("save never completed")
	}

	// Same state notified again: the snapshot matches, nothing re-arms.
	sched.NotifyContentChanged(doc)
	if sched.Pending() {
		t.Error("timer armed although content is unchanged since last save")
	}
}

func TestScheduler_FlushNow(t *testing.T) {
	_, repo, ideaID := newTestStore(t)
	sched := NewScheduler(NewReconciler(repo), time.Hour, nil) // timer would never fire on its own

	doc := NewDocument(ideaID, nil)
	blockID := doc.Blocks()[0].ID
	doc.SetContent(blockID, "explicit save")
	sched.NotifyContentChanged(doc)
	if !sched.Pending() {
		t.Fatal("timer not armed")
	}

	if err := sched.FlushNow(context.Background(), doc); err != nil {
		t.Fatalf("FlushNow() error = %v", err)
	}
	if sched.Pending() {
		t.Error("pending timer survived FlushNow")
	}

	blocks, err := repo.GetByIdeaID(context.Background(), ideaID)
	if err != nil {
		t.Fatalf("GetByIdeaID() error = %v", err)
	}
	if len(blocks) != 1 || blocks[0].Content != "explicit save" {
		t.Errorf("blocks = %+v, want one block with flushed content", blocks)
	}
}

// Teardown runs one unconditional pass even when no change was
// detected, and cancels whatever was pending.
func TestScheduler_FlushOnTeardown(t *testing.T) {
	_, repo, ideaID := newTestStore(t)
	sched := NewScheduler(NewReconciler(repo), time.Hour, nil)

	doc := NewDocument(ideaID, nil)
	blockID := doc.Blocks()[0].ID
	doc.SetContent(blockID, "unsaved work")
	sched.NotifyContentChanged(doc)

	sched.FlushOnTeardown(doc)
	if sched.Pending() {
		t.Error("pending timer survived teardown")
	}

	blocks, err := repo.GetByIdeaID(context.Background(), ideaID)
	if err != nil {
		t.Fatalf("GetByIdeaID() error = %v", err)
	}
	if len(blocks) != 1 || blocks[0].Content != "unsaved work" {
		t.Errorf("blocks = %+v, want teardown-flushed content", blocks)
	}
}

// The timer callback reads the side-channel cell, so content edited
// after arming but before firing is what gets saved.
func TestScheduler_TimerReadsLatestState(t *testing.T) {
	_, repo, ideaID := newTestStore(t)
	sched := NewScheduler(NewReconciler(repo), testDelay, nil)

	doc := NewDocument(ideaID, nil)
	blockID := doc.Blocks()[0].ID

	doc.SetContent(blockID, "stale")
	sched.NotifyContentChanged(doc)

	// Mutate without notifying: the armed callback must still see it.
	doc.SetContent(blockID, "fresh")

	if !waitFor(t, time.Second, func() bool {
		return len(persistedIDs(t, repo, ideaID)) == 1 && !doc.HasDirty()
	}) {
		t.Fatal("save never landed")
	}

	blocks, _ := repo.GetByIdeaID(context.Background(), ideaID)
	if blocks[0].Content != "fresh" {
		t.Errorf("content = %q, want the freshest state, not the armed-time value", blocks[0].Content)
	}
}
