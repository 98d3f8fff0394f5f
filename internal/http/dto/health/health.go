// Package health contiene DTOs para endpoints de health check.
package health

// HealthResponse es el body de GET /api/v1/auth/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse es el body de GET /readyz.
type ReadyResponse struct {
	Status     string            `json:"status"` // "ready" | "unavailable"
	Components map[string]string `json:"components,omitempty"`
	Version    string            `json:"version,omitempty"`
}
