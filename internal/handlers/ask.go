package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"dentalgate/internal/actions"
	"dentalgate/internal/cache"
	"dentalgate/internal/llm"
	"dentalgate/internal/ratelimit"
	"dentalgate/internal/sanitize"
	"dentalgate/pkg/logging/logging"
)

// Handler holds the dependencies of the gateway endpoints.
type Handler struct {
	Registry *actions.Registry
	Cache    cache.Store
	CacheTTL time.Duration
	Limiter  *ratelimit.Limiter
	LLM      llm.Client
	Model    string

	// health reporting
	UpstreamConfigured bool
}

func New(
	registry *actions.Registry,
	store cache.Store,
	cacheTTL time.Duration,
	limiter *ratelimit.Limiter,
	llmClient llm.Client,
	model string,
	upstreamConfigured bool,
) *Handler {
	return &Handler{
		Registry:           registry,
		Cache:              store,
		CacheTTL:           cacheTTL,
		Limiter:            limiter,
		LLM:                llmClient,
		Model:              model,
		UpstreamConfigured: upstreamConfigured,
	}
}

// Ask handles POST /ask: text requests against the assistant.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	key := cache.Fingerprint(req.Prompt, req.Action, "")

	if resp, ok := h.lookup(ctx, key); ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	systemPrompt := h.Registry.SystemPrompt(req.Action)

	userPrompt := req.Prompt
	if req.Context != "" {
		userPrompt = fmt.Sprintf("Context: %s\n\nQuestion: %s", req.Context, req.Prompt)
	}

	answer, ok := h.complete(w, r, systemPrompt, userPrompt, tokenBudgets[req.Priority])
	if !ok {
		return
	}

	resp := AskResponse{
		Success:        true,
		Action:         req.Action,
		Answer:         answer,
		ProcessingTime: time.Since(start).Seconds(),
		Cached:         false,
	}

	// persist off the request goroutine; the response does not wait for it
	go h.store(context.WithoutCancel(ctx), key, resp)

	writeJSON(w, http.StatusOK, resp)
}

// lookup consults the response cache. Cache errors are best-effort: logged
// and treated as a miss.
func (h *Handler) lookup(ctx context.Context, key string) (AskResponse, bool) {
	logger := logging.L(ctx)

	raw, hit, err := h.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache get error", zap.Error(err))
		return AskResponse{}, false
	}
	if !hit {
		return AskResponse{}, false
	}

	var resp AskResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		logger.Warn("cache unmarshal error", zap.Error(err))
		return AskResponse{}, false
	}

	resp.Cached = true
	return resp, true
}

// store writes a response payload into the cache.
func (h *Handler) store(ctx context.Context, key string, resp AskResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		logging.L(ctx).Warn("cache marshal error", zap.Error(err))
		return
	}
	if err := h.Cache.Set(ctx, key, raw, h.CacheTTL); err != nil {
		logging.L(ctx).Warn("cache set error", zap.Error(err))
	}
}

// complete calls the upstream model and sanitizes the answer, rendering the
// failure taxonomy itself: 504 on timeout, 502 on any other upstream failure.
// The second return value reports whether the caller should proceed.
func (h *Handler) complete(w http.ResponseWriter, r *http.Request, systemPrompt, userPrompt string, maxTokens int) (string, bool) {
	logger := logging.L(r.Context())

	resp, err := h.LLM.ChatCompletion(r.Context(), &llm.ChatRequest{
		Model: h.Model,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		var uerr *llm.UpstreamError
		switch {
		case errors.Is(err, llm.ErrUpstreamTimeout):
			writeError(w, r, http.StatusGatewayTimeout, "upstream request timed out")
		case errors.As(err, &uerr):
			writeError(w, r, http.StatusBadGateway,
				fmt.Sprintf("upstream error %d: %s", uerr.StatusCode, uerr.Message))
		default:
			logger.Error("upstream call failed", zap.Error(err))
			writeError(w, r, http.StatusBadGateway, "upstream request failed")
		}
		return "", false
	}

	return sanitize.Text(resp.Answer()), true
}
