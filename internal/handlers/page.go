package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"ideapad/internal/contextutil"
	"ideapad/internal/editor"
	"ideapad/internal/storage"
)

// PageHandler serves an idea and its text blocks as a rendered HTML page.
type PageHandler struct {
	ideas    storage.IdeaStore
	blocks   storage.BlockStore
	parser   goldmark.Markdown
	template *template.Template
}

// pageData holds template data for a rendered idea page.
type pageData struct {
	Title   string
	Date    string
	Content template.HTML
}

// NewPageHandler creates a new handler for serving idea pages.
func NewPageHandler(ideas storage.IdeaStore, blocks storage.BlockStore) *PageHandler {
	tmpl := template.Must(template.New("idea").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 720px;
      line-height: 1.7;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #ddd;
      padding-bottom: 1rem;
    }
    h1 { margin-top: 0; }
    .date { color: #666; }
    pre {
      background: #f5f5f5;
      padding: 1rem;
      overflow-x: auto;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="date">{{.Date}}</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &PageHandler{
		ideas:  ideas,
		blocks: blocks,
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		template: tmpl,
	}
}

// Serve handles GET /api/ideas/{id}/page: renders the idea's detail
// and text blocks as markdown, in block order.
func (h *PageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}
	logger := contextutil.LoggerFromContext(r.Context())

	idea, err := h.ideas.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "idea not found")
		return
	}
	records, err := h.blocks.GetByIdeaID(r.Context(), id)
	if err != nil {
		logger.Error("failed to load blocks for page", "idea_id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to load blocks")
		return
	}

	var md strings.Builder
	if idea.Detail != "" {
		md.WriteString(idea.Detail)
		md.WriteString("\n\n")
	}
	for _, rec := range records {
		if rec.Type != string(editor.BlockTypeText) {
			continue
		}
		md.WriteString(rec.Content)
		md.WriteString("\n\n")
	}

	var rendered bytes.Buffer
	if err := h.parser.Convert([]byte(md.String()), &rendered); err != nil {
		logger.Error("failed to render markdown", "idea_id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to render page")
		return
	}

	title := idea.Hint
	if title == "" {
		title = "Untitled idea"
	}

	var page bytes.Buffer
	err = h.template.Execute(&page, pageData{
		Title:   title,
		Date:    idea.Date,
		Content: template.HTML(rendered.String()),
	})
	if err != nil {
		logger.Error("failed to execute page template", "idea_id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page.Bytes())
}
