// Package health contiene DTOs para health checks.
package health

import "time"

// LivenessResponse es la respuesta de {prefix}/health.
type LivenessResponse struct {
	Status string `json:"status"` // healthy
}

// HealthResponse es la respuesta de /readyz.
type HealthResponse struct {
	Status     string                  `json:"status"` // ready | degraded | unavailable
	Version    string                  `json:"version,omitempty"`
	TokenMode  string                  `json:"token_mode,omitempty"`
	Components map[string]HealthStatus `json:"components"`
	Timestamp  time.Time               `json:"timestamp"`
}

// HealthStatus es el estado de un componente.
type HealthStatus struct {
	Status  string `json:"status"` // ok | error | disabled
	Message string `json:"message,omitempty"`
}

// RootResponse es la bienvenida de GET /.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
