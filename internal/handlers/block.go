package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"ideapad/internal/contextutil"
	"ideapad/internal/editor"
	"ideapad/internal/storage"
)

// BlockHandler handles HTTP requests for an idea's blocks and editing
// sessions.
type BlockHandler struct {
	blocks   storage.BlockStore
	sessions *editor.Sessions
}

// NewBlockHandler creates a new BlockHandler.
func NewBlockHandler(blocks storage.BlockStore, sessions *editor.Sessions) *BlockHandler {
	return &BlockHandler{blocks: blocks, sessions: sessions}
}

// BlockResponse is the JSON form of a persisted block.
type BlockResponse struct {
	BlockID    string `json:"block_id"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	OrderIndex int    `json:"order_index"`
	Color      string `json:"color,omitempty"`
}

// SaveBlocksRequest is the payload for a direct batch save. Entries
// are upserted in list order inside one transaction.
type SaveBlocksRequest struct {
	Blocks []editor.BlockState `json:"blocks"`
}

// List handles GET /api/ideas/{id}/blocks.
func (h *BlockHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}

	records, err := h.blocks.GetByIdeaID(r.Context(), id)
	if err != nil {
		logger := contextutil.LoggerFromContext(r.Context())
		logger.Error("failed to list blocks", "idea_id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to list blocks")
		return
	}

	out := make([]BlockResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, BlockResponse{
			BlockID:    rec.BlockID,
			Type:       rec.Type,
			Content:    rec.Content,
			OrderIndex: rec.OrderIndex,
			Color:      rec.Color,
		})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// Save handles PUT /api/ideas/{id}/blocks: a user-initiated batch
// upsert, so failures surface to the caller.
func (h *BlockHandler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}

	var req SaveBlocksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entries := make([]storage.DirtyBlockEntry, 0, len(req.Blocks))
	for i, b := range req.Blocks {
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		if b.Type == "" {
			b.Type = string(editor.BlockTypeText)
		}
		entries = append(entries, storage.DirtyBlockEntry{
			BlockID:    b.ID,
			Type:       b.Type,
			Content:    b.Content,
			OrderIndex: i,
			Color:      b.Color,
		})
	}

	if err := h.blocks.SaveDirtyBlocks(r.Context(), id, entries); err != nil {
		logger := contextutil.LoggerFromContext(r.Context())
		logger.Error("failed to save blocks", "idea_id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to save blocks")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenSession handles POST /api/ideas/{id}/session: opens (or returns)
// the idea's editing session and reports its current block list. A
// fresh idea yields one default empty text block.
func (h *BlockHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}

	session, err := h.sessions.Open(r.Context(), id)
	if err != nil {
		logger := contextutil.LoggerFromContext(r.Context())
		logger.Error("failed to open session", "idea_id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to open session")
		return
	}

	writeJSON(w, r, http.StatusOK, sessionBlocks(session))
}

// EditSession handles PUT /api/ideas/{id}/session/blocks: replaces the
// session document's block list with the client's current state and
// notifies the autosave scheduler. The save itself happens on the
// debounce timer, not in this request.
func (h *BlockHandler) EditSession(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}

	session := h.sessions.Get(id)
	if session == nil {
		writeError(w, r, http.StatusNotFound, "no open session for idea")
		return
	}

	var req SaveBlocksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	for i := range req.Blocks {
		if req.Blocks[i].ID == "" {
			req.Blocks[i].ID = uuid.New().String()
		}
		if req.Blocks[i].Type == "" {
			req.Blocks[i].Type = string(editor.BlockTypeText)
		}
	}

	session.Doc.Replace(req.Blocks)
	session.NotifyContentChanged()
	w.WriteHeader(http.StatusAccepted)
}

// FlushSession handles POST /api/ideas/{id}/session/flush: an explicit
// user save. Cancels any pending timer and reconciles immediately.
func (h *BlockHandler) FlushSession(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}

	session := h.sessions.Get(id)
	if session == nil {
		writeError(w, r, http.StatusNotFound, "no open session for idea")
		return
	}

	if err := session.Flush(r.Context()); err != nil {
		if errors.Is(err, storage.ErrWrite) {
			logger := contextutil.LoggerFromContext(r.Context())
			logger.Error("flush failed", "idea_id", id, "error", err)
		}
		writeError(w, r, http.StatusInternalServerError, "failed to save")
		return
	}
	writeJSON(w, r, http.StatusOK, sessionBlocks(session))
}

// CloseSession handles DELETE /api/ideas/{id}/session: tears the
// session down with a final best-effort flush.
func (h *BlockHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}
	h.sessions.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

func sessionBlocks(session *editor.Session) []editor.BlockState {
	blocks := session.Doc.Blocks()
	out := make([]editor.BlockState, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, editor.BlockState{
			ID:      b.ID,
			Type:    string(b.Type),
			Content: b.Content,
			Color:   b.Color,
		})
	}
	return out
}
