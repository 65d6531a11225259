package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"dentalgate/internal/cache"
	"dentalgate/internal/files"
	"dentalgate/pkg/logging/logging"
)

// multipartMemory is the in-memory threshold for multipart parsing; larger
// parts spill to disk.
const multipartMemory = 8 * 1024 * 1024

// AskWithFile handles POST /ask-with-file: multipart upload plus prompt.
func (h *Handler) AskWithFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge, files.ErrTooLarge.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	prompt := strings.TrimSpace(r.FormValue("prompt"))
	if prompt == "" || len(prompt) > maxPromptLength {
		writeError(w, r, http.StatusBadRequest, "prompt must be 1-5000 characters")
		return
	}

	action := r.FormValue("action")
	if action == "" {
		action = "pdf_analysis"
	}
	extractText := r.FormValue("extract_text") != "false"

	logger.Info("file received",
		zap.String("filename", header.Filename),
		zap.String("action", action),
		zap.Bool("extract_text", extractText),
	)

	info, err := files.Validate(header.Filename)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		logger.Error("read upload failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not read uploaded file")
		return
	}

	contentDesc, fileHash, err := files.Describe(content, &info)
	if err != nil {
		if errors.Is(err, files.ErrTooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	key := cache.Fingerprint(prompt, action, fileHash)

	if resp, ok := h.lookup(ctx, key); ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	systemPrompt := h.Registry.SystemPrompt(action)

	fullPrompt := fmt.Sprintf(`Uploaded file: %s
Type: %s
Size: %d bytes
Content: %s

User question: %s

Special instructions:
- Thorough analysis of the content
- Answer adapted to the dental medical context
- Professional precision and clarity`,
		info.Name, strings.ToUpper(info.Extension), info.SizeBytes, contentDesc, prompt)

	answer, ok := h.complete(w, r, systemPrompt, fullPrompt, fileTokenBudget)
	if !ok {
		return
	}

	resp := AskResponse{
		Success:        true,
		Action:         action,
		Answer:         answer,
		ProcessingTime: time.Since(start).Seconds(),
		FileInfo:       &info,
		Cached:         false,
	}

	// file analyses are expensive, persist before responding
	h.store(ctx, key, resp)

	writeJSON(w, http.StatusOK, resp)
}
