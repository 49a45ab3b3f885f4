package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ideapad/internal/editor"
	"ideapad/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	blockRepo := storage.NewBlockRepo(db)
	router := NewRouter(&Deps{
		DB:       db,
		Ideas:    storage.NewIdeaRepo(db),
		Blocks:   blockRepo,
		Sessions: editor.NewSessions(blockRepo, time.Hour, nil),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal error = %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("request error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body error = %v", err)
	}
	return resp, buf.Bytes()
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"status":"healthy"`) {
		t.Errorf("health body = %s", body)
	}
}

func TestRouter_IdeaLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Create
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/ideas", map[string]string{
		"hint":   "shopping",
		"detail": "weekly run",
		"date":   "2024-01-05",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", resp.StatusCode, body)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	ideaURL := fmt.Sprintf("%s/api/ideas/%d", srv.URL, created.ID)

	// Read back
	resp, body = doJSON(t, http.MethodGet, ideaURL, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"hint":"shopping"`) {
		t.Errorf("get body = %s", body)
	}

	// Partial update
	resp, _ = doJSON(t, http.MethodPatch, ideaURL, map[string]interface{}{"completed": true})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("patch status = %d", resp.StatusCode)
	}
	_, body = doJSON(t, http.MethodGet, ideaURL, nil)
	if !strings.Contains(string(body), `"completed":true`) {
		t.Errorf("patched body = %s", body)
	}
	if !strings.Contains(string(body), `"detail":"weekly run"`) {
		t.Errorf("patch touched unrelated field: %s", body)
	}

	// Query by date
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/ideas?date=2024-01-05", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"hint":"shopping"`) {
		t.Errorf("by-date status = %d, body = %s", resp.StatusCode, body)
	}

	// Delete
	resp, _ = doJSON(t, http.MethodDelete, ideaURL, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, ideaURL, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestRouter_SessionFlow(t *testing.T) {
	srv := newTestServer(t)

	_, body := doJSON(t, http.MethodPost, srv.URL+"/api/ideas", map[string]string{
		"hint": "draft", "date": "2024-01-05",
	})
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	base := fmt.Sprintf("%s/api/ideas/%d", srv.URL, created.ID)

	// Open: a fresh idea gets one default empty block.
	resp, body := doJSON(t, http.MethodPost, base+"/session", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("open status = %d, body = %s", resp.StatusCode, body)
	}
	var blocks []editor.BlockState
	if err := json.Unmarshal(body, &blocks); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if len(blocks) != 1 || blocks[0].Content != "" {
		t.Fatalf("opened blocks = %+v, want one empty default", blocks)
	}

	// Edit: replaces the document, saves on debounce (not now).
	blocks[0].Content = "Hello World"
	resp, _ = doJSON(t, http.MethodPut, base+"/session/blocks", map[string]interface{}{"blocks": blocks})
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("edit status = %d", resp.StatusCode)
	}

	// Explicit flush persists immediately.
	resp, _ = doJSON(t, http.MethodPost, base+"/session/flush", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("flush status = %d", resp.StatusCode)
	}
	resp, body = doJSON(t, http.MethodGet, base+"/blocks", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("blocks status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"content":"Hello World"`) {
		t.Errorf("persisted blocks = %s", body)
	}

	// Close tears the session down.
	resp, _ = doJSON(t, http.MethodDelete, base+"/session", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("close status = %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodPut, base+"/session/blocks", map[string]interface{}{"blocks": blocks})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("edit after close status = %d, want 404", resp.StatusCode)
	}
}

func TestRouter_Page(t *testing.T) {
	srv := newTestServer(t)

	_, body := doJSON(t, http.MethodPost, srv.URL+"/api/ideas", map[string]string{
		"hint": "notes", "detail": "# Heading", "date": "2024-01-05",
	})
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	resp, body := doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/ideas/%d/page", srv.URL, created.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("page status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("content type = %q, want html", ct)
	}
	if !strings.Contains(string(body), "<h1>notes</h1>") {
		t.Errorf("page missing title: %s", body)
	}
	if !strings.Contains(string(body), "<h1>Heading</h1>") {
		t.Errorf("page missing rendered markdown: %s", body)
	}
}
