package editor

import (
	"testing"

	"ideapad/internal/storage"
)

func TestNewDocument_Empty(t *testing.T) {
	doc := NewDocument(1, nil)

	blocks := doc.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("new document has %d blocks, want exactly one default block", len(blocks))
	}
	b := blocks[0]
	if b.Content != "" || b.Type != BlockTypeText {
		t.Errorf("default block = %+v, want empty text block", b)
	}
	if b.Dirty {
		t.Error("default block must not be dirty")
	}
	if b.ID == "" {
		t.Error("default block needs an id")
	}
	if doc.HasDirty() {
		t.Error("fresh document must not be dirty")
	}
}

func TestNewDocument_FromRecords(t *testing.T) {
	records := []storage.BlockRecord{
		{BlockID: "a", Type: "text", Content: "x", OrderIndex: 0},
		{BlockID: "b", Type: "image", Content: "pic.png", OrderIndex: 1, Color: "#00ff00"},
	}
	doc := NewDocument(7, records)

	blocks := doc.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("document has %d blocks, want 2", len(blocks))
	}
	if blocks[0].ID != "a" || blocks[1].ID != "b" {
		t.Errorf("block order = [%s %s], want [a b]", blocks[0].ID, blocks[1].ID)
	}
	if blocks[1].Type != BlockTypeImage || blocks[1].Color != "#00ff00" {
		t.Errorf("block b = %+v, want image with color", blocks[1])
	}
	if doc.HasDirty() {
		t.Error("loaded document must start clean")
	}
	// Every loaded block counts as persisted.
	if len(doc.persisted) != 2 {
		t.Errorf("persisted set size = %d, want 2", len(doc.persisted))
	}
}

func TestDocument_SetContent(t *testing.T) {
	doc := NewDocument(1, []storage.BlockRecord{{BlockID: "a", Type: "text", Content: "x"}})

	if !doc.SetContent("a", "hello") {
		t.Fatal("SetContent() returned false for existing block")
	}
	blocks := doc.Blocks()
	if blocks[0].Content != "hello" || !blocks[0].Dirty {
		t.Errorf("block = %+v, want updated and dirty", blocks[0])
	}
	if doc.SetContent("ghost", "x") {
		t.Error("SetContent() returned true for missing block")
	}
}

func TestDocument_InsertAndRemove(t *testing.T) {
	doc := NewDocument(1, []storage.BlockRecord{
		{BlockID: "a", Type: "text", Content: "x"},
		{BlockID: "c", Type: "text", Content: "z"},
	})

	doc.Insert(1, Block{ID: "b", Type: BlockTypeText, Content: "y"})
	blocks := doc.Blocks()
	if len(blocks) != 3 || blocks[1].ID != "b" {
		t.Fatalf("after insert blocks = %v, want b at index 1", ids(blocks))
	}
	if !blocks[1].Dirty {
		t.Error("inserted block must be dirty")
	}

	if !doc.Remove("a") {
		t.Fatal("Remove() returned false for existing block")
	}
	blocks = doc.Blocks()
	if len(blocks) != 2 || blocks[0].ID != "b" {
		t.Errorf("after remove blocks = %v, want [b c]", ids(blocks))
	}
	if doc.Remove("a") {
		t.Error("Remove() returned true for already-removed block")
	}
}

func TestDocument_Replace(t *testing.T) {
	doc := NewDocument(1, []storage.BlockRecord{
		{BlockID: "a", Type: "text", Content: "same"},
		{BlockID: "b", Type: "text", Content: "old"},
	})

	doc.Replace([]BlockState{
		{ID: "a", Type: "text", Content: "same"},    // unchanged: stays clean
		{ID: "b", Type: "text", Content: "changed"}, // edited: dirty
		{ID: "c", Type: "text", Content: "new"},     // new: dirty
	})

	blocks := doc.Blocks()
	if blocks[0].Dirty {
		t.Error("unchanged block became dirty")
	}
	if !blocks[1].Dirty || !blocks[2].Dirty {
		t.Error("changed and new blocks must be dirty")
	}
}

func TestDocument_Snapshot(t *testing.T) {
	doc := NewDocument(1, []storage.BlockRecord{{BlockID: "a", Type: "text", Content: "x"}})

	before := doc.Snapshot()
	if doc.Snapshot() != before {
		t.Error("snapshot not stable without edits")
	}

	doc.SetContent("a", "y")
	if doc.Snapshot() == before {
		t.Error("snapshot unchanged after edit")
	}
}

func ids(blocks []Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.ID
	}
	return out
}
