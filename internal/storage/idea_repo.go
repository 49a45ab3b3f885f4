package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_idea_store.go -package=mocks ideapad/internal/storage IdeaStore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// dateLayout is the canonical calendar date format for ideas.
const dateLayout = "2006-01-02"

// IdeaStore defines the interface for idea storage operations.
type IdeaStore interface {
	// Add inserts a new idea and returns its assigned id.
	Add(ctx context.Context, idea NewIdea) (int64, error)
	// Update applies the supplied fields to an idea. An empty patch is
	// a no-op. Returns ErrNotFound if the idea does not exist.
	Update(ctx context.Context, id int64, patch IdeaPatch) error
	// Delete removes an idea and, by cascade, all its blocks.
	Delete(ctx context.Context, id int64) error
	// GetByID gets an idea by id. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id int64) (*IdeaRecord, error)
	// GetByDate returns ideas on an exact date, oldest first.
	GetByDate(ctx context.Context, date string) ([]IdeaRecord, error)
	// GetByMonth returns ideas within a calendar month.
	GetByMonth(ctx context.Context, year, month int) ([]IdeaRecord, error)
	// GetAll returns every idea, newest date first.
	GetAll(ctx context.Context) ([]IdeaRecord, error)
	// Search returns ideas whose hint or detail contains the keyword,
	// case-insensitively.
	Search(ctx context.Context, keyword string) ([]IdeaRecord, error)
	// DatesWithIdeas returns the distinct dates that have ideas.
	DatesWithIdeas(ctx context.Context) ([]string, error)
	// DatesWithIdeasByMonth returns the distinct dates with ideas
	// inside a calendar month, ascending.
	DatesWithIdeasByMonth(ctx context.Context, year, month int) ([]string, error)
	// CleanupEmptyIdeas deletes ideas with an empty hint and returns
	// the number of rows removed.
	CleanupEmptyIdeas(ctx context.Context) (int64, error)
}

// IdeaRepo provides methods for idea operations.
// It implements the IdeaStore interface.
type IdeaRepo struct {
	db *sql.DB
}

// NewIdeaRepo creates a new IdeaRepo.
func NewIdeaRepo(db *sql.DB) *IdeaRepo {
	return &IdeaRepo{db: db}
}

// deriveDateIndex validates a calendar date and returns it with the
// separators stripped ("2024-01-05" -> "20240105"). The index is
// always derived from the date, never settable on its own.
func deriveDateIndex(date string) (string, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return strings.ReplaceAll(date, "-", ""), nil
}

// Add inserts a new idea and returns its assigned id.
func (r *IdeaRepo) Add(ctx context.Context, idea NewIdea) (int64, error) {
	dateIndex, err := deriveDateIndex(idea.Date)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO ideas (hint, detail, date, date_index, category)
		 VALUES (?, ?, ?, ?, ?)`,
		idea.Hint, idea.Detail, idea.Date, dateIndex, idea.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert idea: %v", ErrWrite, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read inserted id: %v", ErrWrite, err)
	}
	return id, nil
}

// Update applies only the supplied fields. An empty patch performs no
// write at all. A supplied date recomputes the derived date index in
// the same statement; updated_at refreshes whenever any field changes.
func (r *IdeaRepo) Update(ctx context.Context, id int64, patch IdeaPatch) error {
	var (
		sets []string
		args []interface{}
	)

	if patch.Hint != nil {
		sets = append(sets, "hint = ?")
		args = append(args, *patch.Hint)
	}
	if patch.Detail != nil {
		sets = append(sets, "detail = ?")
		args = append(args, *patch.Detail)
	}
	if patch.Date != nil {
		dateIndex, err := deriveDateIndex(*patch.Date)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		sets = append(sets, "date = ?", "date_index = ?")
		args = append(args, *patch.Date, dateIndex)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *patch.Completed)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE ideas SET "+strings.Join(sets, ", ")+" WHERE id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update idea: %v", ErrWrite, err)
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

// Delete removes an idea; the foreign key cascades to its blocks.
func (r *IdeaRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ideas WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete idea: %v", ErrWrite, err)
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

const ideaColumns = "id, hint, detail, date, date_index, category, completed, created_at, updated_at"

// GetByID gets an idea by id. Returns ErrNotFound if not found.
func (r *IdeaRepo) GetByID(ctx context.Context, id int64) (*IdeaRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+ideaColumns+" FROM ideas WHERE id = ?", id)
	idea, err := scanIdeaRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query idea: %w", err)
	}
	return idea, nil
}

// GetByDate returns all ideas with an exact date match, ordered by
// creation time ascending.
func (r *IdeaRepo) GetByDate(ctx context.Context, date string) ([]IdeaRecord, error) {
	return r.queryIdeas(ctx,
		"SELECT "+ideaColumns+" FROM ideas WHERE date = ? ORDER BY created_at ASC, id ASC",
		date)
}

// GetByMonth returns all ideas within a calendar month. The primary
// path matches the derived date index by year+month prefix; if that
// errors, a date-range scan takes over. Index queries are an
// optimization, not the source of truth, so fast-path failures are
// contained rather than propagated.
func (r *IdeaRepo) GetByMonth(ctx context.Context, year, month int) ([]IdeaRecord, error) {
	lo, hi := dateIndexBounds(year, month)
	ideas, err := r.queryIdeas(ctx,
		"SELECT "+ideaColumns+" FROM ideas WHERE date_index BETWEEN ? AND ? ORDER BY date ASC, created_at ASC, id ASC",
		lo, hi)
	if err == nil {
		return ideas, nil
	}
	slog.Warn("date-index month query failed, falling back to range scan", "error", err)

	// The fallback touches nothing derived: it scans the canonical
	// date column only and recomputes the index in memory.
	first, last := monthRange(year, month)
	ideas, err = r.queryIdeasNoIndex(ctx,
		"SELECT "+ideaColumnsNoIndex+" FROM ideas WHERE date BETWEEN ? AND ? ORDER BY date ASC, created_at ASC, id ASC",
		first, last)
	if err != nil {
		slog.Warn("month range scan failed", "error", err)
		return []IdeaRecord{}, nil
	}
	return ideas, nil
}

// GetAll returns every idea, ordered by date descending then creation
// time descending.
func (r *IdeaRepo) GetAll(ctx context.Context) ([]IdeaRecord, error) {
	return r.queryIdeas(ctx,
		"SELECT "+ideaColumns+" FROM ideas ORDER BY date DESC, created_at DESC, id DESC")
}

// Search returns ideas whose hint or detail contains the keyword,
// case-insensitively.
func (r *IdeaRepo) Search(ctx context.Context, keyword string) ([]IdeaRecord, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	return r.queryIdeas(ctx,
		`SELECT `+ideaColumns+` FROM ideas
		 WHERE LOWER(hint) LIKE ? OR LOWER(detail) LIKE ?
		 ORDER BY date DESC, created_at DESC, id DESC`,
		pattern, pattern)
}

// DatesWithIdeas returns the distinct dates that have ideas, ascending.
func (r *IdeaRepo) DatesWithIdeas(ctx context.Context) ([]string, error) {
	return r.queryDates(ctx, "SELECT DISTINCT date FROM ideas ORDER BY date ASC")
}

// DatesWithIdeasByMonth returns the distinct dates with ideas inside a
// calendar month, ascending. Same fast-path/fallback contract as
// GetByMonth.
func (r *IdeaRepo) DatesWithIdeasByMonth(ctx context.Context, year, month int) ([]string, error) {
	lo, hi := dateIndexBounds(year, month)
	dates, err := r.queryDates(ctx,
		"SELECT DISTINCT date FROM ideas WHERE date_index BETWEEN ? AND ? ORDER BY date ASC",
		lo, hi)
	if err == nil {
		return dates, nil
	}
	slog.Warn("date-index dates query failed, falling back to range scan", "error", err)

	first, last := monthRange(year, month)
	dates, err = r.queryDates(ctx,
		"SELECT DISTINCT date FROM ideas WHERE date BETWEEN ? AND ? ORDER BY date ASC",
		first, last)
	if err != nil {
		slog.Warn("dates range scan failed", "error", err)
		return []string{}, nil
	}
	return dates, nil
}

// CleanupEmptyIdeas bulk-deletes ideas whose hint is empty and returns
// the number of rows removed.
func (r *IdeaRepo) CleanupEmptyIdeas(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ideas WHERE hint = ''")
	if err != nil {
		return 0, fmt.Errorf("%w: failed to cleanup empty ideas: %v", ErrWrite, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read affected rows: %v", ErrWrite, err)
	}
	return affected, nil
}

func (r *IdeaRepo) queryIdeas(ctx context.Context, query string, args ...interface{}) ([]IdeaRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ideas: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ideas []IdeaRecord
	for rows.Next() {
		idea, err := scanIdeaRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		ideas = append(ideas, *idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ideas, nil
}

const ideaColumnsNoIndex = "id, hint, detail, date, category, completed, created_at, updated_at"

// queryIdeasNoIndex scans rows that omit the derived date_index column
// and recomputes the index from the date.
func (r *IdeaRepo) queryIdeasNoIndex(ctx context.Context, query string, args ...interface{}) ([]IdeaRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ideas: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ideas []IdeaRecord
	for rows.Next() {
		var (
			idea                   IdeaRecord
			createdStr, updatedStr string
		)
		err := rows.Scan(&idea.ID, &idea.Hint, &idea.Detail, &idea.Date,
			&idea.Category, &idea.Completed, &createdStr, &updatedStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		idea.DateIndex = strings.ReplaceAll(idea.Date, "-", "")
		if idea.CreatedAt, err = parseTimestamp(createdStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}
		if idea.UpdatedAt, err = parseTimestamp(updatedStr); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ideas, nil
}

func (r *IdeaRepo) queryDates(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dates: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return dates, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanIdeaRow(row rowScanner) (*IdeaRecord, error) {
	var (
		idea                   IdeaRecord
		createdStr, updatedStr string
	)
	err := row.Scan(&idea.ID, &idea.Hint, &idea.Detail, &idea.Date, &idea.DateIndex,
		&idea.Category, &idea.Completed, &createdStr, &updatedStr)
	if err != nil {
		return nil, err
	}
	if idea.CreatedAt, err = parseTimestamp(createdStr); err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	if idea.UpdatedAt, err = parseTimestamp(updatedStr); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}
	return &idea, nil
}

// parseTimestamp parses a SQLite DATETIME value, which depending on
// how the row was written is either "2006-01-02 15:04:05" or RFC3339.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// dateIndexBounds returns the inclusive date-index range covering one
// calendar month (days 01..31; the index never holds invalid days).
func dateIndexBounds(year, month int) (string, string) {
	prefix := fmt.Sprintf("%04d%02d", year, month)
	return prefix + "01", prefix + "31"
}

// monthRange returns the first and last calendar date of a month.
func monthRange(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout)
}
