// Package editor holds the in-memory editing model for an idea and the
// machinery that keeps it reconciled with storage: a document of ordered
// blocks with dirty markers, a reconciliation engine that computes and
// applies minimal diffs, and a debounced autosave scheduler.
package editor

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"ideapad/internal/storage"
)

// BlockType tags the kind of content a block holds.
type BlockType string

const (
	BlockTypeText  BlockType = "text"
	BlockTypeImage BlockType = "image"
)

// Block is one in-memory content block. Dirty marks unsaved changes.
type Block struct {
	ID      string
	Type    BlockType
	Content string
	Color   string
	Dirty   bool
}

// BlockState is the wire-level form of a block used when a collaborator
// replaces the document's block list wholesale.
type BlockState struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
	Color   string `json:"color,omitempty"`
}

// Document is the editing session's view of one idea: the current
// ordered block list, per-block dirty markers, and the set of block ids
// known to be persisted as of the last successful save. It is handed to
// the reconciler by reference at save time.
type Document struct {
	IdeaID int64

	mu        sync.Mutex
	blocks    []*Block
	persisted map[string]struct{}
}

// NewDocument builds a document from the idea's persisted blocks. An
// idea with no blocks yet gets exactly one default empty text block,
// not dirty, so the editor always has something to type into.
func NewDocument(ideaID int64, records []storage.BlockRecord) *Document {
	doc := &Document{
		IdeaID:    ideaID,
		persisted: make(map[string]struct{}, len(records)),
	}
	for _, rec := range records {
		doc.blocks = append(doc.blocks, &Block{
			ID:      rec.BlockID,
			Type:    BlockType(rec.Type),
			Content: rec.Content,
			Color:   rec.Color,
		})
		doc.persisted[rec.BlockID] = struct{}{}
	}
	if len(doc.blocks) == 0 {
		doc.blocks = append(doc.blocks, &Block{
			ID:   uuid.New().String(),
			Type: BlockTypeText,
		})
	}
	return doc
}

// Blocks returns a copy of the current block list in order.
func (d *Document) Blocks() []Block {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Block, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = *b
	}
	return out
}

// SetContent updates a block's content and marks it dirty. Returns
// false if no block with the id exists.
func (d *Document) SetContent(blockID, content string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, b := range d.blocks {
		if b.ID == blockID {
			b.Content = content
			b.Dirty = true
			return true
		}
	}
	return false
}

// Insert places a new dirty block at the given position. Positions
// beyond the end append.
func (d *Document) Insert(index int, block Block) {
	d.mu.Lock()
	defer d.mu.Unlock()
	block.Dirty = true
	if index < 0 {
		index = 0
	}
	if index >= len(d.blocks) {
		d.blocks = append(d.blocks, &block)
		return
	}
	d.blocks = append(d.blocks, nil)
	copy(d.blocks[index+1:], d.blocks[index:])
	d.blocks[index] = &block
}

// Remove drops a block from the document. The block disappears from
// storage on the next reconciliation. Returns false if absent.
func (d *Document) Remove(blockID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, b := range d.blocks {
		if b.ID == blockID {
			d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps in a whole new block list, as sent by an editing
// collaborator. Blocks that kept their content keep their dirty
// marker; changed or new blocks become dirty.
func (d *Document) Replace(states []BlockState) {
	d.mu.Lock()
	defer d.mu.Unlock()

	old := make(map[string]*Block, len(d.blocks))
	for _, b := range d.blocks {
		old[b.ID] = b
	}

	blocks := make([]*Block, 0, len(states))
	for _, s := range states {
		next := &Block{
			ID:      s.ID,
			Type:    BlockType(s.Type),
			Content: s.Content,
			Color:   s.Color,
			Dirty:   true,
		}
		if prev, ok := old[s.ID]; ok && prev.Content == s.Content &&
			prev.Type == next.Type && prev.Color == s.Color {
			next.Dirty = prev.Dirty
		}
		blocks = append(blocks, next)
	}
	d.blocks = blocks
}

// HasDirty reports whether any block carries unsaved changes.
func (d *Document) HasDirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, b := range d.blocks {
		if b.Dirty {
			return true
		}
	}
	return false
}

// Snapshot serializes (id, content, dirty) for every block. The
// scheduler compares snapshots to detect true content change without
// holding on to a deep copy of the document.
func (d *Document) Snapshot() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var sb strings.Builder
	for _, b := range d.blocks {
		sb.WriteString(b.ID)
		sb.WriteByte('|')
		sb.WriteString(b.Content)
		sb.WriteByte('|')
		sb.WriteString(strconv.FormatBool(b.Dirty))
		sb.WriteByte('\n')
	}
	return sb.String()
}
