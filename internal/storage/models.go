package storage

import "time"

// IdeaRecord represents a top-level idea (note document) in the database.
type IdeaRecord struct {
	ID        int64
	Hint      string // Short title text
	Detail    string // Free-form detail text
	Date      string // Calendar date, "2006-01-02"
	DateIndex string // Date with separators stripped, "20060102"; derived, never set directly
	Category  string // Optional category tag ("" = none)
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlockRecord represents an ordered content block owned by an idea.
// (IdeaID, BlockID) is unique; OrderIndex is recomputed from in-memory
// array position on every save round.
type BlockRecord struct {
	ID         int64  // Surrogate row id
	BlockID    string // Caller-assigned id, unique within the idea
	IdeaID     int64
	Type       string // "text" or "image"
	Content    string // Text or a resource reference
	OrderIndex int
	Color      string // Optional display color ("" = default)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewIdea carries the fields for an idea insert. The date index is
// computed from Date by the repository.
type NewIdea struct {
	Hint     string
	Detail   string
	Date     string
	Category string
}

// IdeaPatch is a partial update for an idea. Nil fields are left
// untouched. Supplying Date also recomputes the derived date index.
type IdeaPatch struct {
	Hint      *string
	Detail    *string
	Date      *string
	Category  *string
	Completed *bool
}

// NewBlock carries the fields for a single block insert.
type NewBlock struct {
	BlockID    string
	IdeaID     int64
	Type       string
	Content    string
	OrderIndex int
	Color      string
}

// BlockPatch is a partial update for a block. Nil fields are left untouched.
type BlockPatch struct {
	Type       *string
	Content    *string
	OrderIndex *int
	Color      *string
}

// DirtyBlockEntry is one upsert unit of a reconciliation round.
type DirtyBlockEntry struct {
	BlockID    string
	Type       string
	Content    string
	OrderIndex int
	Color      string
}
