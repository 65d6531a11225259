package middleware

import (
	"encoding/json"
	"net/http"
	"time"
)

// errorEnvelope is the uniform JSON failure shape used across the gateway.
type errorEnvelope struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Error:      msg,
		StatusCode: status,
		Timestamp:  time.Now().Format(time.RFC3339),
		Path:       r.URL.Path,
	})
}
