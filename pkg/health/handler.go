package health

import (
	"net/http"

	"github.com/grcledger/grcledger/pkg/server/router"
)

// Handler serves the liveness and readiness endpoints from a registry.
type Handler struct {
	registry *Registry
}

// NewHandler creates the health HTTP handler.
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// Register mounts /healthz and /readyz on the given router.
func (h *Handler) Register(r router.Router) {
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
}

// Liveness reports that the process is up. It runs no component checks, so
// a struggling dependency never makes the orchestrator restart the service.
func (h *Handler) Liveness(c router.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": string(StatusHealthy)})
}

// Readiness runs every registered check and reports 503 until all pass.
func (h *Handler) Readiness(c router.Context) error {
	result := h.registry.Check(c.Request().Context())
	status := http.StatusOK
	if !result.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, result)
}
