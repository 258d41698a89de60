package integrations

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apexai-labs/apex-assistant-svc/internal/idgen"
)

// Handler serves the /api/integrations routes.
type Handler struct {
	catalog     []Integration
	connections ConnectionStore
	states      StateStore
	oauth       *OAuthClient
	baseURL     string
	logger      *slog.Logger
}

func NewHandler(catalog []Integration, connections ConnectionStore, states StateStore, oauth *OAuthClient, baseURL string, logger *slog.Logger) *Handler {
	return &Handler{
		catalog:     catalog,
		connections: connections,
		states:      states,
		oauth:       oauth,
		baseURL:     baseURL,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/integrations", h.handleList)
	mux.HandleFunc("POST /api/integrations", h.handleInitiate)
	mux.HandleFunc("PUT /api/integrations", h.handleUpdate)
	mux.HandleFunc("GET /api/integrations/callback/{platform}", h.handleCallback)
}

// integrationStatus is a descriptor merged with live connection state.
type integrationStatus struct {
	Integration
	ConnectedAt string `json:"connected_at,omitempty"`
	LastSync    string `json:"last_sync,omitempty"`
	SyncStatus  string `json:"sync_status"`
}

type listResponse struct {
	Success      bool                `json:"success"`
	Integrations []integrationStatus `json:"integrations"`
	Total        int                 `json:"total"`
	Connected    int                 `json:"connected"`
	Available    int                 `json:"available"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	typeFilter := r.URL.Query().Get("type")

	merged := make([]integrationStatus, 0, len(h.catalog))
	for _, integration := range h.catalog {
		if statusFilter != "" && integration.Status != statusFilter {
			continue
		}
		if typeFilter != "" && integration.Type != typeFilter {
			continue
		}

		entry := integrationStatus{Integration: integration, SyncStatus: "idle"}
		conn, ok, err := h.connections.Connection(r.Context(), integration.ID)
		if err != nil {
			h.logger.Error("Failed to read connection state", "integration_id", integration.ID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch integrations"})
			return
		}
		if ok {
			if conn.Status != "" {
				entry.Status = conn.Status
			}
			entry.ConnectedAt = conn.ConnectedAt
			entry.LastSync = conn.LastSync
			if conn.SyncStatus != "" {
				entry.SyncStatus = conn.SyncStatus
			}
		}
		merged = append(merged, entry)
	}

	resp := listResponse{
		Success:      true,
		Integrations: merged,
		Total:        len(merged),
	}
	for _, entry := range merged {
		switch entry.Status {
		case "connected":
			resp.Connected++
		case "available":
			resp.Available++
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type initiateRequest struct {
	IntegrationID string `json:"integration_id"`
	Action        string `json:"action"`
}

func (h *Handler) handleInitiate(w http.ResponseWriter, r *http.Request) {
	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if req.IntegrationID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "integration_id is required"})
		return
	}

	integration := findIntegration(h.catalog, req.IntegrationID)
	if integration == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Integration not found"})
		return
	}

	if req.Action == "disconnect" {
		conn, _, err := h.connections.Connection(r.Context(), integration.ID)
		if err == nil {
			conn.Status = "available"
			conn.ConnectedAt = ""
			conn.LastSync = ""
			conn.SyncStatus = ""
			err = h.connections.SetConnection(r.Context(), integration.ID, conn)
		}
		if err != nil {
			h.logger.Error("Failed to disconnect integration", "integration_id", integration.ID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to initiate integration"})
			return
		}
		h.logger.Info("Integration disconnected", "integration_id", integration.ID)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":        true,
			"message":        fmt.Sprintf("%s has been disconnected", integration.Name),
			"integration_id": integration.ID,
		})
		return
	}

	if integration.Type != "oauth2" || integration.OAuthConfig == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Integration type not supported for this action"})
		return
	}

	state, err := h.newStateToken(integration.ID)
	if err != nil {
		h.logger.Error("Failed to generate state token", "integration_id", integration.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to initiate integration"})
		return
	}

	if err := h.states.Put(r.Context(), state, integration.ID, stateTTL); err != nil {
		h.logger.Error("Failed to store OAuth state", "integration_id", integration.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to initiate integration"})
		return
	}

	h.logger.Info("Initiating OAuth flow", "integration_id", integration.ID, "state", state)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"auth_url":       buildAuthURL(integration.OAuthConfig, state),
		"integration_id": integration.ID,
		"state":          state,
		"message":        fmt.Sprintf("Initiating OAuth flow for %s", integration.Name),
	})
}

type updateRequest struct {
	IntegrationID string         `json:"integration_id"`
	Config        map[string]any `json:"config"`
	Settings      map[string]any `json:"settings"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if req.IntegrationID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "integration_id is required"})
		return
	}

	integration := findIntegration(h.catalog, req.IntegrationID)
	if integration == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Integration not found"})
		return
	}

	conn, _, err := h.connections.Connection(r.Context(), integration.ID)
	if err == nil {
		if conn.Settings == nil {
			conn.Settings = make(map[string]any)
		}
		for k, v := range req.Config {
			conn.Settings[k] = v
		}
		for k, v := range req.Settings {
			conn.Settings[k] = v
		}
		err = h.connections.SetConnection(r.Context(), integration.ID, conn)
	}
	if err != nil {
		h.logger.Error("Failed to update integration config", "integration_id", integration.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update integration"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"message":        fmt.Sprintf("%s configuration updated successfully", integration.Name),
		"integration_id": integration.ID,
	})
}

// newStateToken builds a {integration_id}_{timestamp}_{random} token.
// The random suffix is URL-safe base64, so underscores only separate the
// three components.
func (h *Handler) newStateToken(integrationID string) (string, error) {
	suffix, err := idgen.RandomSuffix(11)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%d_%s", integrationID, time.Now().UnixMilli(), suffix), nil
}

func buildAuthURL(cfg *OAuthConfig, state string) string {
	params := url.Values{
		"client_id":     {cfg.ClientID},
		"redirect_uri":  {cfg.RedirectURI},
		"scope":         {strings.Join(cfg.Scopes, " ")},
		"state":         {state},
		"response_type": {"code"},
		"access_type":   {"offline"},
	}
	return cfg.AuthURL + "?" + params.Encode()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
