package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ProviderError es una respuesta no-2xx del provider.
type ProviderError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider: HTTP %d: %s", e.Status, e.Message)
}

// NetworkError es una falla de transporte: conexión rechazada, DNS,
// timeout o contexto cancelado. Nunca hubo respuesta HTTP.
type NetworkError struct {
	Op      string // "POST /auth/v1/token"
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	kind := "connection"
	if e.Timeout {
		kind = "timeout"
	}
	return fmt.Sprintf("provider: %s %s: %v", kind, e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsStatus reporta si err es un ProviderError con ese status.
func IsStatus(err error, status int) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Status == status
}

// IsNetwork reporta si err es una falla de transporte.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// messageKeys en orden de preferencia; GoTrue y PostgREST no coinciden.
var messageKeys = []string{"msg", "message", "error_description", "error"}

func newProviderError(status int, body []byte) *ProviderError {
	return &ProviderError{Status: status, Message: extractMessage(status, body), Body: body}
}

func extractMessage(status int, body []byte) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err == nil {
		for _, k := range messageKeys {
			if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	text := http.StatusText(status)
	if text == "" {
		text = fmt.Sprintf("status %d", status)
	}
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return text
	}
	return text + ": " + raw
}

func newNetworkError(op string, err error) *NetworkError {
	ne := &NetworkError{Op: op, Err: err}
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		ne.Timeout = true
	}
	return ne
}
