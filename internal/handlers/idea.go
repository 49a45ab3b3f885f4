package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ideapad/internal/contextutil"
	"ideapad/internal/storage"
)

// IdeaHandler handles HTTP requests for idea CRUD and queries.
type IdeaHandler struct {
	ideas storage.IdeaStore
}

// NewIdeaHandler creates a new IdeaHandler.
func NewIdeaHandler(ideas storage.IdeaStore) *IdeaHandler {
	return &IdeaHandler{ideas: ideas}
}

// CreateIdeaRequest is the payload for creating an idea.
type CreateIdeaRequest struct {
	Hint     string `json:"hint"`
	Detail   string `json:"detail"`
	Date     string `json:"date"`
	Category string `json:"category,omitempty"`
}

// UpdateIdeaRequest is the payload for a partial idea update. Absent
// fields are left untouched.
type UpdateIdeaRequest struct {
	Hint      *string `json:"hint,omitempty"`
	Detail    *string `json:"detail,omitempty"`
	Date      *string `json:"date,omitempty"`
	Category  *string `json:"category,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// IdeaResponse is the JSON form of an idea.
type IdeaResponse struct {
	ID        int64  `json:"id"`
	Hint      string `json:"hint"`
	Detail    string `json:"detail"`
	Date      string `json:"date"`
	Category  string `json:"category,omitempty"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func ideaResponse(rec storage.IdeaRecord) IdeaResponse {
	return IdeaResponse{
		ID:        rec.ID,
		Hint:      rec.Hint,
		Detail:    rec.Detail,
		Date:      rec.Date,
		Category:  rec.Category,
		Completed: rec.Completed,
		CreatedAt: rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: rec.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func ideaResponses(recs []storage.IdeaRecord) []IdeaResponse {
	out := make([]IdeaResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, ideaResponse(rec))
	}
	return out
}

// Create handles POST /api/ideas.
func (h *IdeaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Date == "" {
		writeError(w, r, http.StatusBadRequest, "date is required")
		return
	}

	id, err := h.ideas.Add(r.Context(), storage.NewIdea{
		Hint:     req.Hint,
		Detail:   req.Detail,
		Date:     req.Date,
		Category: req.Category,
	})
	if err != nil {
		logger := contextutil.LoggerFromContext(r.Context())
		logger.Error("failed to create idea", "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to create idea")
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]int64{"id": id})
}

// Get handles GET /api/ideas/{id}.
func (h *IdeaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}

	idea, err := h.ideas.GetByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "idea not found")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to load idea")
		return
	}
	writeJSON(w, r, http.StatusOK, ideaResponse(*idea))
}

// List handles GET /api/ideas. Query parameters select the path:
// ?date=YYYY-MM-DD for an exact date, ?year=&month= for a month,
// ?q= for a keyword search, none for everything.
func (h *IdeaHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		recs []storage.IdeaRecord
		err  error
	)
	switch {
	case q.Get("date") != "":
		recs, err = h.ideas.GetByDate(ctx, q.Get("date"))
	case q.Get("q") != "":
		recs, err = h.ideas.Search(ctx, q.Get("q"))
	case q.Get("year") != "" || q.Get("month") != "":
		year, month, ok := yearMonth(w, r)
		if !ok {
			return
		}
		recs, err = h.ideas.GetByMonth(ctx, year, month)
	default:
		recs, err = h.ideas.GetAll(ctx)
	}
	if err != nil {
		logger := contextutil.LoggerFromContext(ctx)
		logger.Error("failed to list ideas", "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to list ideas")
		return
	}

	writeJSON(w, r, http.StatusOK, ideaResponses(recs))
}

// Update handles PATCH /api/ideas/{id}.
func (h *IdeaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}

	var req UpdateIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.ideas.Update(r.Context(), id, storage.IdeaPatch{
		Hint:      req.Hint,
		Detail:    req.Detail,
		Date:      req.Date,
		Category:  req.Category,
		Completed: req.Completed,
	})
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "idea not found")
		return
	}
	if err != nil {
		logger := contextutil.LoggerFromContext(r.Context())
		logger.Error("failed to update idea", "idea_id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to update idea")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/ideas/{id}. Deletion cascades to the
// idea's blocks.
func (h *IdeaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}

	err := h.ideas.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "idea not found")
		return
	}
	if err != nil {
		logger := contextutil.LoggerFromContext(r.Context())
		logger.Error("failed to delete idea", "idea_id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to delete idea")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Dates handles GET /api/ideas/dates. With ?year=&month= it returns
// only that month's dates.
func (h *IdeaHandler) Dates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		dates []string
		err   error
	)
	if q.Get("year") != "" || q.Get("month") != "" {
		year, month, ok := yearMonth(w, r)
		if !ok {
			return
		}
		dates, err = h.ideas.DatesWithIdeasByMonth(ctx, year, month)
	} else {
		dates, err = h.ideas.DatesWithIdeas(ctx)
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to list dates")
		return
	}
	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, r, http.StatusOK, dates)
}

// Cleanup handles POST /api/ideas/cleanup: bulk-deletes ideas whose
// hint is empty and reports how many were removed.
func (h *IdeaHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	removed, err := h.ideas.CleanupEmptyIdeas(r.Context())
	if err != nil {
		logger := contextutil.LoggerFromContext(r.Context())
		logger.Error("failed to cleanup empty ideas", "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to cleanup ideas")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int64{"removed": removed})
}

// ideaID parses the {id} route parameter, writing a 400 on failure.
func ideaID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid idea id")
		return 0, false
	}
	return id, true
}

// yearMonth parses the year and month query parameters, writing a 400
// on failure.
func yearMonth(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid year")
		return 0, 0, false
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, r, http.StatusBadRequest, "invalid month")
		return 0, 0, false
	}
	return year, month, true
}
