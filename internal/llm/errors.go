package llm

import (
	"errors"
	"fmt"
)

// ErrUpstreamTimeout marks a call that exceeded the upstream timeout. It is
// kept distinct from other transport errors so handlers can answer 504
// instead of 502.
var ErrUpstreamTimeout = errors.New("llmclient: upstream timeout")

// UpstreamError is a non-2xx or malformed response from the model API.
type UpstreamError struct {
	StatusCode int
	Message    string
	Type       string
}

func (e *UpstreamError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("llmclient: upstream %d: %s (%s)", e.StatusCode, e.Message, e.Type)
	}
	return fmt.Sprintf("llmclient: upstream %d: %s", e.StatusCode, e.Message)
}
