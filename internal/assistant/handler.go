package assistant

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/apexai-labs/apex-assistant-svc/internal/llm"
)

const systemPrompt = "You are APEX AI, an advanced personal executive assistant. You help with email drafting, meeting preparation, report generation, task management, and workspace platform integrations. Provide clear, concise, and professional responses."

const llmTimeout = 30 * time.Second

// Completer is the chat-completion dependency. Tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, temperature float64) (*llm.Completion, error)
}

// RequestContext carries the optional structured context of a chat
// request. Unknown fields are ignored on decode.
type RequestContext struct {
	UserID string `json:"user_id,omitempty"`
	Source string `json:"source,omitempty"`
}

// MultimodalPart is an inline attachment on a chat request.
type MultimodalPart struct {
	Type     string `json:"type"`
	Data     string `json:"data"`
	Filename string `json:"filename,omitempty"`
}

type ChatRequest struct {
	Message    string           `json:"message"`
	Context    *RequestContext  `json:"context,omitempty"`
	Action     string           `json:"action,omitempty"`
	Multimodal []MultimodalPart `json:"multimodal,omitempty"`
}

type ResponseContext struct {
	Processed             bool     `json:"processed"`
	Confidence            float64  `json:"confidence"`
	PatternsUsed          int      `json:"patterns_used"`
	AutonomousActions     []string `json:"autonomous_actions"`
	IntegrationsSuggested []string `json:"integrations_suggested"`
}

type ChatResponse struct {
	Success   bool            `json:"success"`
	Response  string          `json:"response"`
	Timestamp string          `json:"timestamp"`
	Model     string          `json:"model"`
	Context   ResponseContext `json:"context"`
}

type capabilityResponse struct {
	Message      string   `json:"message"`
	Capabilities []string `json:"capabilities"`
	Status       string   `json:"status"`
}

// Handler serves the /api/ai routes.
type Handler struct {
	completer Completer
	logger    *slog.Logger
}

func NewHandler(completer Completer, logger *slog.Logger) *Handler {
	return &Handler{
		completer: completer,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/ai", h.handleCapabilities)
	mux.HandleFunc("POST /api/ai", h.handleChat)
}

func (h *Handler) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, capabilityResponse{
		Message: "APEX AI processing API is ready",
		Capabilities: []string{
			"Natural Language Processing",
			"Email Generation",
			"Meeting Preparation",
			"Report Creation",
			"Task Management",
			"Document Analysis",
			"Workflow Automation",
		},
		Status: "active",
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode chat request", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message is required"})
		return
	}

	action := normalizeAction(req.Action)
	selection := SelectTemplate(req.Message, action)

	response := selection.Response
	model := "fallback"
	confidence := 0.85

	ctx, cancel := context.WithTimeout(r.Context(), llmTimeout)
	defer cancel()

	completion, err := h.completer.Complete(ctx, buildMessages(req, action), 0.7)
	if err != nil {
		h.logger.Warn("Chat completion failed, using fallback template", "error", err, "action", action)
	} else {
		response = completion.Text
		model = completion.Model
		confidence = 0.95
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Success:   true,
		Response:  response,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Model:     model,
		Context: ResponseContext{
			Processed:             true,
			Confidence:            confidence,
			PatternsUsed:          rand.Intn(10) + 5,
			AutonomousActions:     emptyIfNil(selection.Actions),
			IntegrationsSuggested: emptyIfNil(selection.Integrations),
		},
	})
}

// normalizeAction maps unknown action labels to general conversation.
func normalizeAction(action string) string {
	switch action {
	case ActionEmailDraft, ActionMeetingPrep, ActionReportGeneration, ActionTaskManagement, ActionIntegrationSetup:
		return action
	}
	return ActionGeneral
}

func buildMessages(req ChatRequest, action string) []llm.Message {
	content := req.Message
	if action != ActionGeneral {
		content = "[requested action: " + action + "]\n" + content
	}
	for _, part := range req.Multimodal {
		if part.Filename != "" {
			content += "\n[attachment: " + part.Filename + "]"
		}
	}
	return []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: content},
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
