package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/packhouse/internal/service/insights"
	"github.com/mamadbah2/packhouse/internal/store"
)

// InsightsHandler returns the generated production analysis.
type InsightsHandler struct {
	store *store.Store
	svc   *insights.Service
}

// NewInsightsHandler constructs the HTTP handler adapter.
func NewInsightsHandler(s *store.Store, svc *insights.Service) *InsightsHandler {
	return &InsightsHandler{store: s, svc: svc}
}

// Analyze runs the analysis over the recent production records.
func (h *InsightsHandler) Analyze(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"analysis": h.svc.Analyze(c.Request.Context(), h.store.Production())})
}
