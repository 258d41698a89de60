package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apexai-labs/apex-assistant-svc/internal/llm"
)

type failingCompleter struct{}

func (failingCompleter) Complete(context.Context, []llm.Message, float64) (*llm.Completion, error) {
	return nil, errors.New("provider unavailable")
}

type fixedCompleter struct {
	text string
}

func (f fixedCompleter) Complete(context.Context, []llm.Message, float64) (*llm.Completion, error) {
	return &llm.Completion{Text: f.text, Model: "m"}, nil
}

func newTestMux(completer Completer) (*http.ServeMux, *MemoryStore) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewMemoryStore()
	mux := http.NewServeMux()
	NewHandler(store, NewProcessor(completer, logger), logger).RegisterRoutes(mux)
	return mux, store
}

func TestListReturnsSeededDocuments(t *testing.T) {
	mux, _ := newTestMux(failingCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/api/knowledge-base", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listDocumentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.Success {
		t.Errorf("expected success")
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 seeded documents, got %d", resp.Total)
	}
	if resp.Stats.TotalDocuments != 2 || resp.Stats.ProcessedDocuments != 2 {
		t.Errorf("unexpected stats: %+v", resp.Stats)
	}
	if resp.Stats.ProcessingRate != 100 {
		t.Errorf("expected 100%% processing rate, got %d", resp.Stats.ProcessingRate)
	}
	if resp.Stats.AverageImportance != 8.0 {
		t.Errorf("expected average importance 8.0, got %v", resp.Stats.AverageImportance)
	}
}

func TestListTypeFilter(t *testing.T) {
	mux, _ := newTestMux(failingCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/api/knowledge-base?type=pdf", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp listDocumentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 pdf document, got %d", resp.Total)
	}
	if resp.Documents[0].Type != "pdf" {
		t.Errorf("expected pdf document, got %q", resp.Documents[0].Type)
	}
}

func TestListSearchOrdersByImportance(t *testing.T) {
	mux, store := newTestMux(failingCompleter{})

	low := Document{
		ID:        "low",
		Filename:  "strategy-scratchpad.txt",
		Type:      "txt",
		Content:   "Rough strategy notes.",
		Processed: true,
		Insights:  &Insights{Summary: "scratch", Sentiment: "neutral", ImportanceScore: 2},
	}
	if err := store.Store(context.Background(), low); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/knowledge-base?query=strategy", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp listDocumentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", resp.Total)
	}
	if resp.Documents[0].Filename != "sales-strategy-2024.pdf" {
		t.Errorf("high-importance document should come first, got %q", resp.Documents[0].Filename)
	}
	if resp.Documents[1].ID != "low" {
		t.Errorf("low-importance document should come last, got %q", resp.Documents[1].ID)
	}
}

func TestListSearchByTag(t *testing.T) {
	mux, _ := newTestMux(failingCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/api/knowledge-base?query=strategy", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp listDocumentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 match on tag, got %d", resp.Total)
	}
	if resp.Documents[0].Filename != "sales-strategy-2024.pdf" {
		t.Errorf("unexpected match: %q", resp.Documents[0].Filename)
	}
}

func TestUploadTextContent(t *testing.T) {
	mux, store := newTestMux(fixedCompleter{text: "A concise summary of the notes."})

	body := `{"content":"Quarterly planning notes. The team achieved great results this quarter.","filename":"q-notes.txt","tags":["planning"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/knowledge-base", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success  bool     `json:"success"`
		Document Document `json:"document"`
		Message  string   `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.Success {
		t.Errorf("expected success")
	}
	if resp.Document.Filename != "q-notes.txt" {
		t.Errorf("expected submitted filename, got %q", resp.Document.Filename)
	}
	if !resp.Document.Processed {
		t.Errorf("document should be marked processed")
	}
	if resp.Document.Insights == nil {
		t.Fatalf("document should carry insights")
	}
	if !strings.Contains(resp.Document.Insights.Summary, "concise summary") {
		t.Errorf("AI summary not applied: %q", resp.Document.Insights.Summary)
	}
	if resp.Message != "Content processed and added to knowledge base" {
		t.Errorf("unexpected message: %q", resp.Message)
	}

	docs, err := store.List(req.Context())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("expected document persisted alongside the 2 seeds, got %d", len(docs))
	}
}

func TestUploadRequiresContent(t *testing.T) {
	mux, _ := newTestMux(failingCompleter{})

	req := httptest.NewRequest(http.MethodPost, "/api/knowledge-base", strings.NewReader(`{"filename":"empty.txt"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] != "Content is required" {
		t.Errorf("unexpected error: %q", body["error"])
	}
}

func TestUploadFallsBackToHeuristics(t *testing.T) {
	mux, _ := newTestMux(failingCompleter{})

	body := `{"content":"Urgent: the deadline for the client meeting is tomorrow. This is an important action item."}`
	req := httptest.NewRequest(http.MethodPost, "/api/knowledge-base", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite provider failure, got %d", rec.Code)
	}

	var resp struct {
		Document Document `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Document.Insights == nil {
		t.Fatalf("heuristic insights missing")
	}
	// urgent/important +2, deadline +1, meeting/action +1 on the base 5.
	if resp.Document.Insights.ImportanceScore != 9 {
		t.Errorf("expected heuristic importance 9, got %d", resp.Document.Insights.ImportanceScore)
	}
}

func TestDeleteDocuments(t *testing.T) {
	mux, store := newTestMux(failingCompleter{})

	req := httptest.NewRequest(http.MethodDelete, "/api/knowledge-base", strings.NewReader(`{"document_ids":["1","missing"]}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success      bool   `json:"success"`
		DeletedCount int    `json:"deleted_count"`
		Message      string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.DeletedCount != 1 {
		t.Errorf("expected 1 deletion, got %d", resp.DeletedCount)
	}
	if resp.Message != "Successfully deleted 1 documents" {
		t.Errorf("unexpected message: %q", resp.Message)
	}

	docs, _ := store.List(req.Context())
	if len(docs) != 1 {
		t.Errorf("expected 1 remaining document, got %d", len(docs))
	}
}

func TestDeleteRequiresDocumentIDs(t *testing.T) {
	mux, _ := newTestMux(failingCompleter{})

	req := httptest.NewRequest(http.MethodDelete, "/api/knowledge-base", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
