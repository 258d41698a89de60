package integrations

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// handleCallback is the OAuth redirect target. Every outcome ends in a
// redirect back to the integrations UI; errors ride along as query
// parameters and are never surfaced as raw HTTP errors.
func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	platform := r.PathValue("platform")

	redirected := false
	redirect := func(params url.Values) {
		redirected = true
		http.Redirect(w, r, h.baseURL+"/integrations?"+params.Encode(), http.StatusFound)
	}
	redirectError := func(errCode string) {
		redirect(url.Values{"error": {errCode}, "platform": {platform}})
	}

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("OAuth callback panicked", "platform", platform, "panic", rec)
			if !redirected {
				redirectError("unexpected_error")
			}
		}
	}()

	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")

	if providerErr := query.Get("error"); providerErr != "" {
		h.logger.Error("OAuth provider returned error", "platform", platform, "error", providerErr)
		redirectError(providerErr)
		return
	}

	if code == "" || state == "" {
		redirectError("missing_parameters")
		return
	}

	if !validStateToken(state, platform) {
		redirectError("invalid_state")
		return
	}

	// Consume the stored token if we issued it. A miss is not fatal; the
	// format check above is the gate.
	if _, found, err := h.states.Take(r.Context(), state); err != nil {
		h.logger.Warn("Failed to look up OAuth state", "platform", platform, "error", err)
	} else if !found {
		h.logger.Warn("OAuth state not found in store", "platform", platform, "state", state)
	}

	integration := findByCallbackID(h.catalog, platform)
	if integration == nil {
		h.logger.Error("OAuth callback for unknown platform", "platform", platform)
		redirectError("unexpected_error")
		return
	}

	tokens, err := h.oauth.ExchangeCode(r.Context(), platform, code)
	if err != nil {
		h.logger.Error("Token exchange failed", "platform", platform, "error", err)
		redirectError("token_exchange_failed")
		return
	}

	// Log token metadata only, never the secret material.
	h.logger.Info("Received tokens",
		"platform", platform,
		"has_access_token", tokens.AccessToken != "",
		"has_refresh_token", tokens.RefreshToken != "",
		"expires_in", tokens.ExpiresIn)

	probe := h.oauth.Probe(r.Context(), platform, tokens.AccessToken)
	h.logger.Info("Integration probe completed", "platform", platform, "success", probe.Success, "error", probe.Error)

	now := time.Now().UTC().Format(time.RFC3339)
	conn := Connection{
		Status:      "connected",
		ConnectedAt: now,
		LastSync:    now,
		SyncStatus:  "idle",
	}
	if err := h.connections.SetConnection(r.Context(), integration.ID, conn); err != nil {
		h.logger.Error("Failed to record connection", "platform", platform, "error", err)
		redirectError("unexpected_error")
		return
	}

	redirect(url.Values{
		"success":   {"true"},
		"platform":  {platform},
		"connected": {"true"},
	})
}

// validStateToken applies the loose format check: the token must mention
// the platform and have at least three underscore-separated parts.
func validStateToken(state, platform string) bool {
	return strings.Contains(state, platform) && len(strings.Split(state, "_")) >= 3
}
