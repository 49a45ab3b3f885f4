package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_block_store.go -package=mocks ideapad/internal/storage BlockStore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// BlockStore defines the interface for block storage operations.
type BlockStore interface {
	// GetByIdeaID returns an idea's blocks ordered by order position
	// then creation time.
	GetByIdeaID(ctx context.Context, ideaID int64) ([]BlockRecord, error)
	// Add inserts a single block and returns its surrogate row id.
	Add(ctx context.Context, block NewBlock) (int64, error)
	// Update applies the supplied fields to one block. Returns
	// ErrNotFound if the block does not exist.
	Update(ctx context.Context, ideaID int64, blockID string, patch BlockPatch) error
	// Delete removes one block. Returns ErrNotFound if absent.
	Delete(ctx context.Context, ideaID int64, blockID string) error
	// SaveDirtyBlocks upserts the entries inside a single transaction:
	// each entry is updated, or inserted when the update affects no
	// row. Any failure rolls back every change in the call.
	SaveDirtyBlocks(ctx context.Context, ideaID int64, entries []DirtyBlockEntry) error
	// ApplyDiff deletes the given block ids and upserts the entries in
	// one transaction, so a reconciliation round is all-or-nothing.
	ApplyDiff(ctx context.Context, ideaID int64, deleteIDs []string, entries []DirtyBlockEntry) error
}

// BlockRepo provides methods for block operations.
// It implements the BlockStore interface.
type BlockRepo struct {
	db *sql.DB
}

// NewBlockRepo creates a new BlockRepo.
func NewBlockRepo(db *sql.DB) *BlockRepo {
	return &BlockRepo{db: db}
}

const blockColumns = "id, block_id, idea_id, type, content, order_index, color, created_at, updated_at"

// GetByIdeaID returns an idea's blocks ordered by order position then
// creation time. Returns an empty slice when the idea has no blocks.
func (r *BlockRepo) GetByIdeaID(ctx context.Context, ideaID int64) ([]BlockRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+blockColumns+" FROM blocks WHERE idea_id = ? ORDER BY order_index ASC, created_at ASC, id ASC",
		ideaID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var blocks []BlockRecord
	for rows.Next() {
		var (
			block                  BlockRecord
			createdStr, updatedStr string
		)
		err := rows.Scan(&block.ID, &block.BlockID, &block.IdeaID, &block.Type,
			&block.Content, &block.OrderIndex, &block.Color, &createdStr, &updatedStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		if block.CreatedAt, err = parseTimestamp(createdStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}
		if block.UpdatedAt, err = parseTimestamp(updatedStr); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return blocks, nil
}

// Add inserts a single block and returns its surrogate row id.
func (r *BlockRepo) Add(ctx context.Context, block NewBlock) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO blocks (block_id, idea_id, type, content, order_index, color)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		block.BlockID, block.IdeaID, block.Type, block.Content, block.OrderIndex, block.Color,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert block: %v", ErrWrite, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read inserted id: %v", ErrWrite, err)
	}
	return id, nil
}

// Update applies only the supplied fields to one block. An empty patch
// performs no write. updated_at refreshes whenever any field changes.
func (r *BlockRepo) Update(ctx context.Context, ideaID int64, blockID string, patch BlockPatch) error {
	var (
		sets []string
		args []interface{}
	)

	if patch.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *patch.Type)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.OrderIndex != nil {
		sets = append(sets, "order_index = ?")
		args = append(args, *patch.OrderIndex)
	}
	if patch.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *patch.Color)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, ideaID, blockID)

	res, err := r.db.ExecContext(ctx,
		"UPDATE blocks SET "+strings.Join(sets, ", ")+" WHERE idea_id = ? AND block_id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update block: %v", ErrWrite, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to read affected rows: %v", ErrWrite, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one block. Returns ErrNotFound if absent.
func (r *BlockRepo) Delete(ctx context.Context, ideaID int64, blockID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM blocks WHERE idea_id = ? AND block_id = ?", ideaID, blockID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete block: %v", ErrWrite, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to read affected rows: %v", ErrWrite, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveDirtyBlocks upserts the entries inside a single transaction.
func (r *BlockRepo) SaveDirtyBlocks(ctx context.Context, ideaID int64, entries []DirtyBlockEntry) error {
	return r.ApplyDiff(ctx, ideaID, nil, entries)
}

// ApplyDiff deletes the given block ids, then upserts the entries, all
// in one transaction. Each entry is tried as an update first; when the
// update affects zero rows the block is inserted instead. Any failure
// rolls back the whole call and re-raises; a rollback failure itself is
// logged but never replaces the original error.
func (r *BlockRepo) ApplyDiff(ctx context.Context, ideaID int64, deleteIDs []string, entries []DirtyBlockEntry) error {
	if len(deleteIDs) == 0 && len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrWrite, err)
	}

	if err := applyDiffTx(ctx, tx, ideaID, deleteIDs, entries); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("failed to roll back block save", "idea_id", ideaID, "error", rbErr)
		}
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit block save: %v", ErrWrite, err)
	}
	return nil
}

func applyDiffTx(ctx context.Context, tx *sql.Tx, ideaID int64, deleteIDs []string, entries []DirtyBlockEntry) error {
	for _, blockID := range deleteIDs {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM blocks WHERE idea_id = ? AND block_id = ?", ideaID, blockID,
		); err != nil {
			return fmt.Errorf("failed to delete block %s: %w", blockID, err)
		}
	}

	for _, e := range entries {
		res, err := tx.ExecContext(ctx,
			`UPDATE blocks SET type = ?, content = ?, order_index = ?, color = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE idea_id = ? AND block_id = ?`,
			e.Type, e.Content, e.OrderIndex, e.Color, ideaID, e.BlockID,
		)
		if err != nil {
			return fmt.Errorf("failed to update block %s: %w", e.BlockID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO blocks (block_id, idea_id, type, content, order_index, color)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.BlockID, ideaID, e.Type, e.Content, e.OrderIndex, e.Color,
		); err != nil {
			return fmt.Errorf("failed to insert block %s: %w", e.BlockID, err)
		}
	}
	return nil
}
