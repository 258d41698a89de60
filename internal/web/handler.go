package web

import (
	"encoding/json"
	"net/http"
)

// Handler serves the demo page, the embeddable widget script, and the
// health probe.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /widget.js", h.handleWidgetScript)
	mux.HandleFunc("GET /health", h.handleHealth)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexHTML))
}

func (h *Handler) handleWidgetScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(widgetScript))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>APEX AI Assistant</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            margin: 0;
            min-height: 100vh;
            background: #0f0f0f;
            color: #eee;
            display: flex;
            align-items: center;
            justify-content: center;
        }
        .card {
            max-width: 560px;
            padding: 40px;
            background: #1a1a1a;
            border: 1px solid rgba(255, 255, 255, 0.1);
            border-radius: 16px;
        }
        h1 { margin-top: 0; }
        code {
            display: block;
            padding: 12px;
            background: #2a2a2a;
            border-radius: 8px;
            font-size: 13px;
            overflow-x: auto;
        }
        ul { line-height: 1.8; }
    </style>
</head>
<body>
    <div class="card">
        <h1>APEX AI Assistant</h1>
        <p>Your AI executive assistant backend is running. Try the chat widget in the corner, or call the API directly:</p>
        <ul>
            <li><strong>POST /api/ai</strong> &mdash; chat with the assistant</li>
            <li><strong>GET /api/integrations</strong> &mdash; integration catalog</li>
            <li><strong>GET /api/knowledge-base</strong> &mdash; knowledge base</li>
            <li><strong>POST /api/upload</strong> &mdash; file upload and analysis</li>
        </ul>
        <p>Embed the widget on any page:</p>
        <code>&lt;script src="/widget.js"&gt;&lt;/script&gt;</code>
    </div>
    <script src="/widget.js"></script>
</body>
</html>
`
