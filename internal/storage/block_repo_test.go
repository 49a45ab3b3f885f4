package storage

import (
	"context"
	"errors"
	"testing"
)

func intPtr(n int) *int { return &n }

func countBlocks(t *testing.T, repo *BlockRepo, ideaID int64) int {
	t.Helper()
	var count int
	if err := repo.db.QueryRow("SELECT COUNT(*) FROM blocks WHERE idea_id = ?", ideaID).Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	return count
}

func TestBlockRepo_AddAndGetByIdeaID(t *testing.T) {
	db := newTestDB(t)
	ideas := NewIdeaRepo(db)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	ideaID := mustAddIdea(t, ideas, NewIdea{Hint: "idea", Date: "2024-01-05"})

	// Insert out of order position; reads must come back ordered.
	for _, b := range []NewBlock{
		{BlockID: "b2", IdeaID: ideaID, Type: "text", Content: "second", OrderIndex: 1},
		{BlockID: "b1", IdeaID: ideaID, Type: "text", Content: "first", OrderIndex: 0},
		{BlockID: "b3", IdeaID: ideaID, Type: "image", Content: "pic.png", OrderIndex: 2, Color: "#ff0000"},
	} {
		if _, err := repo.Add(ctx, b); err != nil {
			t.Fatalf("Add(%s) error = %v", b.BlockID, err)
		}
	}

	got, err := repo.GetByIdeaID(ctx, ideaID)
	if err != nil {
		t.Fatalf("GetByIdeaID() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("GetByIdeaID() returned %d blocks, want 3", len(got))
	}
	for i, want := range []string{"b1", "b2", "b3"} {
		if got[i].BlockID != want {
			t.Errorf("block[%d].BlockID = %s, want %s", i, got[i].BlockID, want)
		}
	}
	if got[2].Color != "#ff0000" || got[2].Type != "image" {
		t.Errorf("block[2] = %+v, want image with color", got[2])
	}
}

func TestBlockRepo_Add_DuplicateIDRejected(t *testing.T) {
	db := newTestDB(t)
	ideas := NewIdeaRepo(db)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	ideaID := mustAddIdea(t, ideas, NewIdea{Hint: "idea", Date: "2024-01-05"})
	if _, err := repo.Add(ctx, NewBlock{BlockID: "dup", IdeaID: ideaID, Type: "text"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// (idea_id, block_id) is unique
	_, err := repo.Add(ctx, NewBlock{BlockID: "dup", IdeaID: ideaID, Type: "text"})
	if !errors.Is(err, ErrWrite) {
		t.Errorf("Add() duplicate error = %v, want ErrWrite", err)
	}
}

func TestBlockRepo_Update(t *testing.T) {
	db := newTestDB(t)
	ideas := NewIdeaRepo(db)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	ideaID := mustAddIdea(t, ideas, NewIdea{Hint: "idea", Date: "2024-01-05"})
	if _, err := repo.Add(ctx, NewBlock{BlockID: "b1", IdeaID: ideaID, Type: "text", Content: "old"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := repo.Update(ctx, ideaID, "b1", BlockPatch{Content: strPtr("new"), OrderIndex: intPtr(5)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByIdeaID(ctx, ideaID)
	if err != nil {
		t.Fatalf("GetByIdeaID() error = %v", err)
	}
	if got[0].Content != "new" || got[0].OrderIndex != 5 {
		t.Errorf("block = %+v, want updated content and order", got[0])
	}
	if got[0].Type != "text" {
		t.Errorf("Type = %q, want untouched field preserved", got[0].Type)
	}

	if err := repo.Update(ctx, ideaID, "ghost", BlockPatch{Content: strPtr("x")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() for missing block error = %v, want ErrNotFound", err)
	}
}

func TestBlockRepo_Delete(t *testing.T) {
	db := newTestDB(t)
	ideas := NewIdeaRepo(db)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	ideaID := mustAddIdea(t, ideas, NewIdea{Hint: "idea", Date: "2024-01-05"})
	if _, err := repo.Add(ctx, NewBlock{BlockID: "b1", IdeaID: ideaID, Type: "text"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := repo.Delete(ctx, ideaID, "b1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if countBlocks(t, repo, ideaID) != 0 {
		t.Error("block still present after delete")
	}
	if err := repo.Delete(ctx, ideaID, "b1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() repeated error = %v, want ErrNotFound", err)
	}
}

func TestBlockRepo_SaveDirtyBlocks_Upsert(t *testing.T) {
	db := newTestDB(t)
	ideas := NewIdeaRepo(db)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	ideaID := mustAddIdea(t, ideas, NewIdea{Hint: "idea", Date: "2024-01-05"})

	// A previously-unseen id inserts exactly one row.
	err := repo.SaveDirtyBlocks(ctx, ideaID, []DirtyBlockEntry{
		{BlockID: "b1", Type: "text", Content: "hello", OrderIndex: 0},
	})
	if err != nil {
		t.Fatalf("SaveDirtyBlocks() error = %v", err)
	}
	if got := countBlocks(t, repo, ideaID); got != 1 {
		t.Fatalf("block count = %d, want 1 after insert", got)
	}

	// The same id with different content updates that row: no growth.
	err = repo.SaveDirtyBlocks(ctx, ideaID, []DirtyBlockEntry{
		{BlockID: "b1", Type: "text", Content: "hello world", OrderIndex: 0},
	})
	if err != nil {
		t.Fatalf("SaveDirtyBlocks() second call error = %v", err)
	}
	if got := countBlocks(t, repo, ideaID); got != 1 {
		t.Fatalf("block count = %d, want 1 after upsert", got)
	}

	blocks, err := repo.GetByIdeaID(ctx, ideaID)
	if err != nil {
		t.Fatalf("GetByIdeaID() error = %v", err)
	}
	if blocks[0].Content != "hello world" {
		t.Errorf("content = %q, want %q", blocks[0].Content, "hello world")
	}
}

func TestBlockRepo_SaveDirtyBlocks_RollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	ideas := NewIdeaRepo(db)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	ideaID := mustAddIdea(t, ideas, NewIdea{Hint: "idea", Date: "2024-01-05"})

	// A trigger that rejects one specific block id simulates a
	// mid-transaction statement failure.
	_, err := db.Exec(`CREATE TRIGGER reject_poison BEFORE INSERT ON blocks
		WHEN NEW.block_id = 'poison'
		BEGIN SELECT RAISE(ABORT, 'poison block'); END;`)
	if err != nil {
		t.Fatalf("failed to create trigger: %v", err)
	}

	err = repo.SaveDirtyBlocks(ctx, ideaID, []DirtyBlockEntry{
		{BlockID: "good", Type: "text", Content: "fine", OrderIndex: 0},
		{BlockID: "poison", Type: "text", Content: "boom", OrderIndex: 1},
	})
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("SaveDirtyBlocks() error = %v, want ErrWrite", err)
	}

	// Every change in the call must be rolled back, including the one
	// that succeeded before the failure.
	if got := countBlocks(t, repo, ideaID); got != 0 {
		t.Errorf("block count = %d, want 0 after rollback", got)
	}
}

func TestBlockRepo_ApplyDiff(t *testing.T) {
	db := newTestDB(t)
	ideas := NewIdeaRepo(db)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	ideaID := mustAddIdea(t, ideas, NewIdea{Hint: "idea", Date: "2024-01-05"})
	err := repo.SaveDirtyBlocks(ctx, ideaID, []DirtyBlockEntry{
		{BlockID: "a", Type: "text", Content: "x", OrderIndex: 0},
		{BlockID: "b", Type: "text", Content: "y", OrderIndex: 1},
	})
	if err != nil {
		t.Fatalf("SaveDirtyBlocks() error = %v", err)
	}

	// Delete a, keep b, add c, in one round.
	err = repo.ApplyDiff(ctx, ideaID, []string{"a"}, []DirtyBlockEntry{
		{BlockID: "c", Type: "text", Content: "z", OrderIndex: 1},
	})
	if err != nil {
		t.Fatalf("ApplyDiff() error = %v", err)
	}

	blocks, err := repo.GetByIdeaID(ctx, ideaID)
	if err != nil {
		t.Fatalf("GetByIdeaID() error = %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("block count = %d, want 2", len(blocks))
	}
	if blocks[0].BlockID != "b" || blocks[1].BlockID != "c" {
		t.Errorf("blocks = [%s %s], want [b c]", blocks[0].BlockID, blocks[1].BlockID)
	}
}

func TestBlockRepo_ApplyDiff_EmptyIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlockRepo(db)

	if err := repo.ApplyDiff(context.Background(), 1, nil, nil); err != nil {
		t.Errorf("ApplyDiff() with empty diff error = %v, want nil", err)
	}
}
