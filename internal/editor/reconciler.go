package editor

import (
	"context"
	"sort"

	"ideapad/internal/storage"
)

// Reconciler diffs a document's current blocks against its
// last-persisted id set and applies the minimal insert/update/delete
// set through the block store.
type Reconciler struct {
	blocks storage.BlockStore
}

// NewReconciler creates a new Reconciler over the given block store.
func NewReconciler(blocks storage.BlockStore) *Reconciler {
	return &Reconciler{blocks: blocks}
}

// Reconcile runs one save round for the document:
//
//   - blocks persisted before but gone from the document are deleted;
//   - blocks that are new or dirty are upserted, with their order
//     position recomputed from their current slice index;
//   - an empty diff opens no transaction at all.
//
// Deletes and upserts apply inside one transaction, so the round is
// all-or-nothing. On success the dirty markers are cleared and the
// persisted-id set replaced with the current ids. On failure nothing
// in the document changes, so a retry recomputes the identical diff.
//
// The document stays locked for the whole round; two rounds for the
// same document can never interleave.
func (r *Reconciler) Reconcile(ctx context.Context, doc *Document) error {
	doc.mu.Lock()
	defer doc.mu.Unlock()

	currentIDs := make(map[string]struct{}, len(doc.blocks))
	for _, b := range doc.blocks {
		currentIDs[b.ID] = struct{}{}
	}

	var toDelete []string
	for id := range doc.persisted {
		if _, ok := currentIDs[id]; !ok {
			toDelete = append(toDelete, id)
		}
	}
	sort.Strings(toDelete)

	var toSave []storage.DirtyBlockEntry
	for i, b := range doc.blocks {
		_, known := doc.persisted[b.ID]
		if known && !b.Dirty {
			continue
		}
		toSave = append(toSave, storage.DirtyBlockEntry{
			BlockID:    b.ID,
			Type:       string(b.Type),
			Content:    b.Content,
			OrderIndex: i,
			Color:      b.Color,
		})
	}

	if len(toDelete) == 0 && len(toSave) == 0 {
		return nil
	}

	if err := r.blocks.ApplyDiff(ctx, doc.IdeaID, toDelete, toSave); err != nil {
		return err
	}

	for _, b := range doc.blocks {
		b.Dirty = false
	}
	doc.persisted = currentIDs
	return nil
}
