package knowledge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Handler serves the /api/knowledge-base routes.
type Handler struct {
	store     DocumentStore
	processor *Processor
	logger    *slog.Logger
}

func NewHandler(store DocumentStore, processor *Processor, logger *slog.Logger) *Handler {
	return &Handler{
		store:     store,
		processor: processor,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/knowledge-base", h.handleList)
	mux.HandleFunc("POST /api/knowledge-base", h.handleUpload)
	mux.HandleFunc("DELETE /api/knowledge-base", h.handleDelete)
}

type statsResponse struct {
	TotalDocuments     int            `json:"total_documents"`
	ProcessedDocuments int            `json:"processed_documents"`
	ProcessingRate     int            `json:"processing_rate"`
	TotalSizeBytes     int64          `json:"total_size_bytes"`
	TotalSizeMB        float64        `json:"total_size_mb"`
	TypeBreakdown      map[string]int `json:"type_breakdown"`
	AverageImportance  float64        `json:"average_importance"`
	LastUpdated        string         `json:"last_updated"`
}

type listDocumentsResponse struct {
	Success   bool          `json:"success"`
	Documents []Document    `json:"documents"`
	Stats     statsResponse `json:"stats"`
	Total     int           `json:"total"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	documents, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list knowledge documents", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve knowledge base"})
		return
	}

	if typeFilter := query.Get("type"); typeFilter != "" {
		documents = filterDocuments(documents, func(d Document) bool { return d.Type == typeFilter })
	}

	if query.Has("processed") {
		wantProcessed := query.Get("processed") == "true"
		documents = filterDocuments(documents, func(d Document) bool { return d.Processed == wantProcessed })
	}

	if search := query.Get("query"); search != "" {
		documents = searchDocuments(documents, search)
	}

	limit := 50
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if len(documents) > limit {
		documents = documents[:limit]
	}

	for i := range documents {
		if len(documents[i].Content) > 500 {
			documents[i].Content = documents[i].Content[:500] + "..."
		}
	}

	writeJSON(w, http.StatusOK, listDocumentsResponse{
		Success:   true,
		Documents: documents,
		Stats:     calculateStats(documents),
		Total:     len(documents),
	})
}

type textUploadRequest struct {
	Content  string   `json:"content"`
	Type     string   `json:"type"`
	Filename string   `json:"filename"`
	Source   string   `json:"source"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	var doc Document

	if strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		// Demo mode: multipart uploads synthesize a fixed document; real
		// byte handling lives on /api/upload.
		doc = Document{
			ID:       uuid.New().String(),
			Filename: "uploaded-document.pdf",
			Type:     "pdf",
			Size:     1024000,
			Content:  "This is simulated document content extracted from the uploaded file. In production, this would contain the actual extracted text from PDFs, Word documents, or other file types.",
			Metadata: DocumentMetadata{
				UploadDate: time.Now().UTC().Format(time.RFC3339),
				Source:     "file_upload",
				Tags:       []string{"business", "strategy"},
				Category:   "general",
			},
		}
	} else {
		var req textUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
			return
		}
		if req.Content == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Content is required"})
			return
		}

		docType := req.Type
		if docType == "" {
			docType = "txt"
		}
		filename := req.Filename
		if filename == "" {
			filename = fmt.Sprintf("text-content-%d.txt", time.Now().UnixMilli())
		}
		source := req.Source
		if source == "" {
			source = "text_input"
		}
		category := req.Category
		if category == "" {
			category = "general"
		}
		tags := req.Tags
		if tags == nil {
			tags = []string{}
		}

		doc = Document{
			ID:       uuid.New().String(),
			Filename: filename,
			Type:     docType,
			Size:     int64(len(req.Content)),
			Content:  req.Content,
			Metadata: DocumentMetadata{
				UploadDate: time.Now().UTC().Format(time.RFC3339),
				Source:     source,
				Tags:       tags,
				Category:   category,
			},
		}
	}

	processed := h.processor.Process(r.Context(), doc)

	if err := h.store.Store(r.Context(), processed); err != nil {
		h.logger.Error("Failed to store knowledge document", "id", processed.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to process upload"})
		return
	}

	h.logger.Info("Stored knowledge document", "id", processed.ID, "filename", processed.Filename)

	if len(processed.Content) > 200 {
		processed.Content = processed.Content[:200] + "..."
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"document": processed,
		"message":  "Content processed and added to knowledge base",
	})
}

type deleteRequest struct {
	DocumentIDs []string `json:"document_ids"`
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DocumentIDs == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document_ids array is required"})
		return
	}

	deleted, err := h.store.Delete(r.Context(), req.DocumentIDs)
	if err != nil {
		h.logger.Error("Failed to delete knowledge documents", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete documents"})
		return
	}

	h.logger.Info("Deleted knowledge documents", "count", deleted)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"deleted_count": deleted,
		"message":       fmt.Sprintf("Successfully deleted %d documents", deleted),
	})
}

func filterDocuments(docs []Document, keep func(Document) bool) []Document {
	filtered := docs[:0:0]
	for _, doc := range docs {
		if keep(doc) {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

// searchDocuments matches content, filename, and tags case-insensitively
// and orders results by descending importance score.
func searchDocuments(docs []Document, query string) []Document {
	queryLower := strings.ToLower(query)

	matched := filterDocuments(docs, func(d Document) bool {
		if strings.Contains(strings.ToLower(d.Content), queryLower) {
			return true
		}
		if strings.Contains(strings.ToLower(d.Filename), queryLower) {
			return true
		}
		for _, tag := range d.Metadata.Tags {
			if strings.Contains(strings.ToLower(tag), queryLower) {
				return true
			}
		}
		return false
	})

	sort.SliceStable(matched, func(i, j int) bool {
		return importanceOf(matched[i]) > importanceOf(matched[j])
	})
	return matched
}

func importanceOf(d Document) int {
	if d.Insights == nil {
		return 0
	}
	return d.Insights.ImportanceScore
}

func calculateStats(documents []Document) statsResponse {
	stats := statsResponse{
		TotalDocuments: len(documents),
		TypeBreakdown:  make(map[string]int),
		LastUpdated:    time.Now().UTC().Format(time.RFC3339),
	}

	importanceSum := 0
	importanceCount := 0
	for _, doc := range documents {
		if doc.Processed {
			stats.ProcessedDocuments++
		}
		stats.TotalSizeBytes += doc.Size
		stats.TypeBreakdown[doc.Type]++
		if doc.Insights != nil {
			importanceSum += doc.Insights.ImportanceScore
			importanceCount++
		}
	}

	if stats.TotalDocuments > 0 {
		stats.ProcessingRate = int(math.Round(float64(stats.ProcessedDocuments) / float64(stats.TotalDocuments) * 100))
	}
	stats.TotalSizeMB = math.Round(float64(stats.TotalSizeBytes)/1024/1024*100) / 100
	if importanceCount > 0 {
		stats.AverageImportance = math.Round(float64(importanceSum)/float64(importanceCount)*10) / 10
	}

	return stats
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
