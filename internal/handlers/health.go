package handlers

import (
	"database/sql"
	"net/http"
	"time"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Database reachability
	Database string `json:"database"`
}

// Check reports whether the storage engine is reachable.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  "ok",
	}
	status := http.StatusOK

	if err := h.db.PingContext(r.Context()); err != nil {
		resp.Status = "unhealthy"
		resp.Database = err.Error()
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, r, status, resp)
}
