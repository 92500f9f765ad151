package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"journal-ai/internal/contextutil"
	"journal-ai/internal/service"
)

// JournalPageHandler serves a journal's processed markdown as a rendered
// HTML page.
type JournalPageHandler struct {
	journals service.JournalService
	parser   goldmark.Markdown
	template *template.Template
}

// journalPageData holds template data for rendered journal pages.
type journalPageData struct {
	Title   string
	Date    string
	Content template.HTML
}

// NewJournalPageHandler creates a new handler for serving journal pages.
func NewJournalPageHandler(journals service.JournalService) *JournalPageHandler {
	tmpl := template.Must(template.New("journal").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    :root {
      color-scheme: dark;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
      background: #050b18;
      color: #e4ecff;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid rgba(148, 163, 184, 0.2);
      padding-bottom: 1.5rem;
    }
    h1 {
      margin-top: 0;
      color: #fff;
      font-size: 2rem;
    }
    article {
      background: rgba(12, 19, 35, 0.85);
      border: 1px solid rgba(99, 102, 241, 0.2);
      border-radius: 16px;
      padding: 2rem;
    }
    article h2, article h3, article h4 {
      color: #c7d2fe;
      margin-top: 1.5rem;
    }
    article p {
      color: #cbd5f5;
    }
    pre {
      background: #0f172a;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 10px;
      border: 1px solid rgba(99, 102, 241, 0.2);
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
      background: rgba(99, 102, 241, 0.18);
      padding: 2px 5px;
      border-radius: 6px;
      color: #cbd5ff;
    }
    pre code {
      background: transparent;
      padding: 0;
    }
    blockquote {
      border-left: 4px solid rgba(96, 165, 250, 0.6);
      padding-left: 1rem;
      margin-left: 0;
      color: #93c5fd;
      background: rgba(59, 130, 246, 0.08);
      border-radius: 6px;
    }
    .meta {
      color: #94a3b8;
      font-size: 0.95rem;
      margin-top: 0.5rem;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">Date: {{.Date}}</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &JournalPageHandler{
		journals: journals,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.TaskList,
				extension.Strikethrough,
				extension.Linkify,
				extension.Typographer,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the journal's processed markdown as HTML. Journals that
// have not been processed yet render an empty page body.
func (h *JournalPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.getLogger(ctx)

	id := chi.URLParam(r, "journalID")
	journal, err := h.journals.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "journal not found", http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "failed to load journal", "journal_id", id, "error", err)
		http.Error(w, "failed to load journal", http.StatusInternalServerError)
		return
	}

	var markdown string
	if journal.ProcessedMarkdown != nil {
		markdown = *journal.ProcessedMarkdown
	}

	htmlContent, err := h.renderMarkdown([]byte(markdown))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "journal_id", id, "error", err)
		http.Error(w, "failed to render journal", http.StatusInternalServerError)
		return
	}

	pageData := journalPageData{
		Title:   fmt.Sprintf("Journal %s", journal.Date),
		Date:    journal.Date,
		Content: template.HTML(htmlContent),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute journal template", "journal_id", id, "error", err)
	}
}

func (h *JournalPageHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

func (h *JournalPageHandler) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}
