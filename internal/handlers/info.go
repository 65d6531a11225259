package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"dentalgate/internal/actions"
	"dentalgate/internal/files"
	"dentalgate/pkg/logging/logging"
)

type actionInfo struct {
	Description  string            `json:"description"`
	Metadata     *actions.Metadata `json:"metadata,omitempty"`
	PromptLength int               `json:"prompt_length"`
}

// Actions handles GET /actions: every known action with its metadata.
func (h *Handler) Actions(w http.ResponseWriter, r *http.Request) {
	all := h.Registry.All()

	infos := make(map[string]actionInfo, len(all))
	for id, instruction := range all {
		info := actionInfo{
			Description:  h.Registry.Description(id),
			PromptLength: len(instruction),
		}
		if meta, ok := h.Registry.Metadata(id); ok {
			info.Metadata = &meta
		}
		infos[id] = info
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"actions":    infos,
		"stats":      h.Registry.Stats(),
		"categories": h.Registry.Categories(),
	})
}

// ActionCategories handles GET /actions/categories.
func (h *Handler) ActionCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Registry.Categories())
}

// SupportedFiles handles GET /supported-files.
func (h *Handler) SupportedFiles(w http.ResponseWriter, r *http.Request) {
	types := make(map[string]interface{}, len(files.SupportedExtensions))
	for ext, mime := range files.SupportedExtensions {
		types[ext] = map[string]string{
			"mime_type": mime,
			"category":  files.Category(ext),
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"supported_extensions": types,
		"max_file_size_mb":     files.MaxFileSize / (1024 * 1024),
		"total_supported":      len(files.SupportedExtensions),
	})
}

// CacheStats handles GET /cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Cache.Stats(r.Context())
	if err != nil {
		logging.L(r.Context()).Error("cache stats failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "cache stats unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_entries":          st.TotalEntries,
		"valid_entries":          st.ValidEntries,
		"cache_duration_minutes": h.CacheTTL.Minutes(),
	})
}

// CacheClear handles DELETE /cache/clear. The route is wrapped by the bearer
// auth middleware.
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	if err := h.Cache.Clear(r.Context()); err != nil {
		logging.L(r.Context()).Error("cache clear failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "cache clear failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "cache cleared",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	st, err := h.Cache.Stats(r.Context())
	if err != nil {
		logging.L(r.Context()).Warn("cache stats failed during health check", zap.Error(err))
	}

	status := "healthy"
	if !h.UpstreamConfigured {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"configuration": map[string]interface{}{
			"upstream_configured":       h.UpstreamConfigured,
			"model":                     h.Model,
			"max_file_size_mb":          files.MaxFileSize / (1024 * 1024),
			"supported_extensions":      len(files.SupportedExtensions),
			"cache_entries":             st.TotalEntries,
			"rate_limit_active_clients": h.Limiter.ActiveClients(),
		},
	})
}
