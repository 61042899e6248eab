package report

import (
	"fmt"
	"net/http"

	"github.com/grcledger/grcledger/pkg/controller"
	"github.com/grcledger/grcledger/pkg/grc"
	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/record"
	"github.com/grcledger/grcledger/pkg/server/router"
)

// exportPageSize bounds the export fetch. The export is a single page, so
// this is the effective cap on exported records.
const exportPageSize = 10000

// Handler serves the assessment export endpoint.
type Handler struct {
	svc      *record.Service[grc.AssessmentOfAdequacy]
	renderer Renderer
	log      logger.Logger
}

// NewHandler creates the export handler over the shared executor.
func NewHandler(exec record.Executor, renderer Renderer, log logger.Logger) (*Handler, error) {
	store, err := record.NewStore(exec, grc.AdequacyDescriptor(), log)
	if err != nil {
		return nil, fmt.Errorf("report: building assessment store: %w", err)
	}
	return &Handler{
		svc:      record.NewService(store, log),
		renderer: renderer,
		log:      log,
	}, nil
}

// Register mounts the export routes on the given router group.
func (h *Handler) Register(api router.Router) {
	api.GET("/export/assessment/pdf", h.ExportAssessment)
}

// ExportAssessment handles GET /api/export/assessment/pdf?search=. It fetches
// the assessment records under the same search filter the list endpoint uses
// and streams the rendered report.
func (h *Handler) ExportAssessment(c router.Context) error {
	result, err := h.svc.List(c.Request().Context(), record.ListParams{
		Page:     1,
		PageSize: exportPageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		return controller.Error(c, err)
	}

	doc, err := h.renderer.Render(result.Items)
	if err != nil {
		h.log.Error("assessment export failed", "error", err)
		return controller.Error(c, controller.NewInternalError("rendering export", err))
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Data)
}
