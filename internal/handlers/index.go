package handlers

import "net/http"

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Dental Practice AI Assistant</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background: #f5f5f5; }
        .container { max-width: 800px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .endpoint { background: #f8f9fa; padding: 15px; margin: 10px 0; border-radius: 5px; border-left: 4px solid #007bff; }
        .status { color: #28a745; font-weight: bold; }
        h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
        .badge { background: #17a2b8; color: white; padding: 4px 8px; border-radius: 3px; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Dental Practice AI Assistant</h1>
        <p class="status">Service online</p>

        <h2>Endpoints</h2>

        <div class="endpoint">
            <h3>POST /ask <span class="badge">Text</span></h3>
            <p>Plain text requests with configurable actions</p>
        </div>

        <div class="endpoint">
            <h3>POST /ask-with-file <span class="badge">File</span></h3>
            <p>Upload and analysis of files (PDF, images, documents)</p>
        </div>

        <div class="endpoint">
            <h3>GET /actions <span class="badge">Info</span></h3>
            <p>Available actions and their descriptions</p>
        </div>

        <div class="endpoint">
            <h3>GET /actions/categories <span class="badge">Info</span></h3>
            <p>Actions grouped by category</p>
        </div>

        <div class="endpoint">
            <h3>GET /health <span class="badge">Status</span></h3>
            <p>Service health and configuration</p>
        </div>

        <h2>Usage</h2>
        <p>This API exposes an AI assistant specialized for dental practices.
        It supports document analysis, radiographs, appointment management and
        diagnosis assistance.</p>

        <p><strong>Note:</strong> diagnosis suggestions never replace the
        expertise of a qualified dentist.</p>
    </div>
</body>
</html>
`

// Index handles GET /: a small HTML landing page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexHTML))
}
