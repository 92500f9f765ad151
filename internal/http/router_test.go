package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"journal-ai/internal/service"
	"journal-ai/internal/storage"
)

// newTestRouter wires the full stack onto a fresh database.
func newTestRouter(t *testing.T) nethttp.Handler {
	t.Helper()

	db, err := storage.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	projectRepo := storage.NewProjectRepo(db)
	journalRepo := storage.NewJournalRepo(db)
	noteRepo := storage.NewNoteRepo(db)
	tagRepo := storage.NewTagRepo(db)
	noteTagRepo := storage.NewNoteTagRepo(db)
	aiJobRepo := storage.NewAIJobRepo(db)

	return NewRouter(&Deps{
		Projects: service.NewProjectService(projectRepo, journalRepo),
		Journals: service.NewJournalService(journalRepo, noteRepo, aiJobRepo),
		Notes:    service.NewNoteService(noteRepo, tagRepo, noteTagRepo),
		Tags:     service.NewTagService(tagRepo, noteTagRepo),
		AIJobs:   service.NewAIJobService(aiJobRepo),
	})
}

// envelope covers every response shape the API produces.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Count      int             `json:"count"`
	Pagination *struct {
		Page       int  `json:"page"`
		PerPage    int  `json:"per_page"`
		Total      int  `json:"total"`
		TotalPages int  `json:"total_pages"`
		HasNext    bool `json:"has_next"`
		HasPrev    bool `json:"has_prev"`
	} `json:"pagination"`
}

func doJSON(t *testing.T, router nethttp.Handler, method, path string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func idOf(t *testing.T, env envelope) string {
	t.Helper()
	var record struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &record); err != nil {
		t.Fatalf("decode data %q: %v", env.Data, err)
	}
	return record.ID
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Errorf("GET /health status = %d, want %d", w.Code, nethttp.StatusOK)
	}
}

func TestRouter_ProjectLifecycle(t *testing.T) {
	router := newTestRouter(t)

	status, env := doJSON(t, router, nethttp.MethodPost, "/api/v1/projects",
		map[string]any{"name": "work", "description": "daily work log"})
	if status != nethttp.StatusCreated {
		t.Fatalf("create status = %d, want %d", status, nethttp.StatusCreated)
	}
	if !env.Success {
		t.Error("create should report success")
	}
	projectID := idOf(t, env)

	// Duplicate names are a conflict.
	status, env = doJSON(t, router, nethttp.MethodPost, "/api/v1/projects",
		map[string]any{"name": "work"})
	if status != nethttp.StatusConflict {
		t.Errorf("duplicate create status = %d, want %d", status, nethttp.StatusConflict)
	}
	if env.Success {
		t.Error("duplicate create should not report success")
	}

	status, _ = doJSON(t, router, nethttp.MethodGet, "/api/v1/projects/"+projectID, nil)
	if status != nethttp.StatusOK {
		t.Errorf("get status = %d, want %d", status, nethttp.StatusOK)
	}

	status, env = doJSON(t, router, nethttp.MethodPut, "/api/v1/projects/"+projectID,
		map[string]any{"name": "renamed"})
	if status != nethttp.StatusOK {
		t.Errorf("update status = %d, want %d", status, nethttp.StatusOK)
	}
	var updated struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if updated.Name != "renamed" {
		t.Errorf("update name = %q, want %q", updated.Name, "renamed")
	}

	status, _ = doJSON(t, router, nethttp.MethodDelete, "/api/v1/projects/"+projectID, nil)
	if status != nethttp.StatusOK {
		t.Errorf("delete status = %d, want %d", status, nethttp.StatusOK)
	}
	status, _ = doJSON(t, router, nethttp.MethodGet, "/api/v1/projects/"+projectID, nil)
	if status != nethttp.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", status, nethttp.StatusNotFound)
	}
}

func TestRouter_Validation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		path string
		body map[string]any
	}{
		{name: "empty project name", path: "/api/v1/projects", body: map[string]any{"name": ""}},
		{name: "unknown field", path: "/api/v1/projects", body: map[string]any{"name": "x", "bogus": 1}},
		{name: "malformed journal date", path: "/api/v1/journals", body: map[string]any{"date": "someday"}},
		{name: "empty note text", path: "/api/v1/notes", body: map[string]any{"text": ""}},
		{name: "empty tag name", path: "/api/v1/tags", body: map[string]any{"name": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doJSON(t, router, nethttp.MethodPost, tt.path, tt.body)
			if status != nethttp.StatusBadRequest {
				t.Errorf("status = %d, want %d", status, nethttp.StatusBadRequest)
			}
			if env.Success {
				t.Error("validation failure should not report success")
			}
		})
	}
}

func TestRouter_NoteTagFlow(t *testing.T) {
	router := newTestRouter(t)

	_, env := doJSON(t, router, nethttp.MethodPost, "/api/v1/notes",
		map[string]any{"text": "standup notes"})
	noteID := idOf(t, env)

	_, env = doJSON(t, router, nethttp.MethodPost, "/api/v1/tags",
		map[string]any{"name": "meeting"})
	tagID := idOf(t, env)

	linkPath := fmt.Sprintf("/api/v1/notes/%s/tags/%s", noteID, tagID)

	status, _ := doJSON(t, router, nethttp.MethodPost, linkPath, nil)
	if status != nethttp.StatusOK {
		t.Fatalf("add tag status = %d, want %d", status, nethttp.StatusOK)
	}

	status, _ = doJSON(t, router, nethttp.MethodPost, linkPath, nil)
	if status != nethttp.StatusConflict {
		t.Errorf("duplicate add tag status = %d, want %d", status, nethttp.StatusConflict)
	}

	status, env = doJSON(t, router, nethttp.MethodGet, "/api/v1/notes/"+noteID+"/tags", nil)
	if status != nethttp.StatusOK {
		t.Fatalf("list tags status = %d, want %d", status, nethttp.StatusOK)
	}
	if env.Count != 1 {
		t.Errorf("list tags count = %d, want 1", env.Count)
	}

	status, _ = doJSON(t, router, nethttp.MethodDelete, linkPath, nil)
	if status != nethttp.StatusOK {
		t.Errorf("remove tag status = %d, want %d", status, nethttp.StatusOK)
	}
	status, _ = doJSON(t, router, nethttp.MethodDelete, linkPath, nil)
	if status != nethttp.StatusNotFound {
		t.Errorf("remove unassociated tag status = %d, want %d", status, nethttp.StatusNotFound)
	}

	// Linking against a missing note resolves to 404, not 500.
	status, _ = doJSON(t, router, nethttp.MethodPost,
		fmt.Sprintf("/api/v1/notes/%s/tags/%s", "no-such-note", tagID), nil)
	if status != nethttp.StatusNotFound {
		t.Errorf("add tag to missing note status = %d, want %d", status, nethttp.StatusNotFound)
	}
}

func TestRouter_AIJobFlow(t *testing.T) {
	router := newTestRouter(t)

	_, env := doJSON(t, router, nethttp.MethodPost, "/api/v1/journals",
		map[string]any{"date": "2026-01-15"})
	journalID := idOf(t, env)

	status, env := doJSON(t, router, nethttp.MethodPost, "/api/v1/ai-jobs", map[string]any{
		"journal_id": journalID,
		"model_name": "gpt-4o",
		"prompt":     "summarize the day",
	})
	if status != nethttp.StatusCreated {
		t.Fatalf("create job status = %d, want %d", status, nethttp.StatusCreated)
	}
	jobID := idOf(t, env)

	var job struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &job); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if job.Status != "queued" {
		t.Errorf("new job status = %q, want %q", job.Status, "queued")
	}

	// Skipping processing is an illegal transition.
	status, _ = doJSON(t, router, nethttp.MethodPut, "/api/v1/ai-jobs/"+jobID,
		map[string]any{"status": "success"})
	if status != nethttp.StatusConflict {
		t.Errorf("queued to success status = %d, want %d", status, nethttp.StatusConflict)
	}

	status, _ = doJSON(t, router, nethttp.MethodPut, "/api/v1/ai-jobs/"+jobID,
		map[string]any{"status": "processing"})
	if status != nethttp.StatusOK {
		t.Errorf("queued to processing status = %d, want %d", status, nethttp.StatusOK)
	}

	status, env = doJSON(t, router, nethttp.MethodPut, "/api/v1/ai-jobs/"+jobID, map[string]any{
		"status":   "success",
		"response": map[string]any{"summary": "a fine day"},
	})
	if status != nethttp.StatusOK {
		t.Errorf("processing to success status = %d, want %d", status, nethttp.StatusOK)
	}

	// Filtered listing carries the pagination envelope.
	status, env = doJSON(t, router, nethttp.MethodGet,
		"/api/v1/ai-jobs?status=success&journal_id="+journalID, nil)
	if status != nethttp.StatusOK {
		t.Fatalf("list jobs status = %d, want %d", status, nethttp.StatusOK)
	}
	if env.Pagination == nil {
		t.Fatal("list jobs should include pagination")
	}
	if env.Pagination.Total != 1 {
		t.Errorf("list jobs total = %d, want 1", env.Pagination.Total)
	}
	if env.Pagination.PerPage != 20 {
		t.Errorf("list jobs per_page = %d, want 20", env.Pagination.PerPage)
	}

	status, _ = doJSON(t, router, nethttp.MethodGet, "/api/v1/ai-jobs?status=banana", nil)
	if status != nethttp.StatusBadRequest {
		t.Errorf("invalid status filter = %d, want %d", status, nethttp.StatusBadRequest)
	}
}

func TestRouter_CascadeDeleteScenario(t *testing.T) {
	router := newTestRouter(t)

	_, env := doJSON(t, router, nethttp.MethodPost, "/api/v1/projects",
		map[string]any{"name": "work"})
	projectID := idOf(t, env)

	_, env = doJSON(t, router, nethttp.MethodPost, "/api/v1/journals",
		map[string]any{"date": "2026-01-15", "project_id": projectID})
	journalID := idOf(t, env)

	_, env = doJSON(t, router, nethttp.MethodPost, "/api/v1/notes",
		map[string]any{"text": "standup notes", "journal_id": journalID})
	noteID := idOf(t, env)

	_, env = doJSON(t, router, nethttp.MethodPost, "/api/v1/tags",
		map[string]any{"name": "meeting"})
	tagID := idOf(t, env)

	if status, _ := doJSON(t, router, nethttp.MethodPost,
		fmt.Sprintf("/api/v1/notes/%s/tags/%s", noteID, tagID), nil); status != nethttp.StatusOK {
		t.Fatalf("add tag status = %d", status)
	}

	if status, _ := doJSON(t, router, nethttp.MethodDelete, "/api/v1/projects/"+projectID, nil); status != nethttp.StatusOK {
		t.Fatalf("delete project status = %d", status)
	}

	// The journal and its note are gone, the tag survives.
	if status, _ := doJSON(t, router, nethttp.MethodGet, "/api/v1/journals/"+journalID, nil); status != nethttp.StatusNotFound {
		t.Errorf("journal after cascade = %d, want %d", status, nethttp.StatusNotFound)
	}
	if status, _ := doJSON(t, router, nethttp.MethodGet, "/api/v1/notes/"+noteID, nil); status != nethttp.StatusNotFound {
		t.Errorf("note after cascade = %d, want %d", status, nethttp.StatusNotFound)
	}
	if status, _ := doJSON(t, router, nethttp.MethodGet, "/api/v1/tags/"+tagID, nil); status != nethttp.StatusOK {
		t.Errorf("tag after cascade = %d, want %d", status, nethttp.StatusOK)
	}
}

func TestRouter_JournalHTML(t *testing.T) {
	router := newTestRouter(t)

	_, env := doJSON(t, router, nethttp.MethodPost, "/api/v1/journals",
		map[string]any{"date": "2026-01-15"})
	journalID := idOf(t, env)

	if status, _ := doJSON(t, router, nethttp.MethodPut, "/api/v1/journals/"+journalID,
		map[string]any{"processed_markdown": "# Summary\n\nA **productive** day."}); status != nethttp.StatusOK {
		t.Fatalf("update journal status = %d", status)
	}

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/journals/"+journalID+"/html", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("GET html status = %d, want %d", w.Code, nethttp.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := w.Body.String()
	if !bytes.Contains([]byte(body), []byte("<strong>productive</strong>")) {
		t.Errorf("rendered page should contain converted markdown, got %q", body)
	}

	req = httptest.NewRequest(nethttp.MethodGet, "/api/v1/journals/no-such-id/html", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != nethttp.StatusNotFound {
		t.Errorf("GET html for missing journal = %d, want %d", w.Code, nethttp.StatusNotFound)
	}
}

func TestRouter_CORSHeaders(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("router should apply CORS middleware")
	}

	req = httptest.NewRequest(nethttp.MethodOptions, "/api/v1/projects", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != nethttp.StatusOK && w.Code != nethttp.StatusNoContent {
		t.Errorf("OPTIONS preflight status = %d", w.Code)
	}
}
