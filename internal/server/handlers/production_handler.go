package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/service/aggregation"
	"github.com/mamadbah2/packhouse/internal/service/traceability"
	"github.com/mamadbah2/packhouse/internal/store"
)

const (
	dateLayout        = "2006-01-02"
	defaultSeriesDays = 7
)

// ProductionHandler serves the production ledger and its derived views.
type ProductionHandler struct {
	store  *store.Store
	trace  traceability.Options
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewProductionHandler constructs the HTTP handler adapter. loc decides what
// "today" means for the dashboard.
func NewProductionHandler(s *store.Store, trace traceability.Options, loc *time.Location, logger *zap.Logger) *ProductionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ProductionHandler{store: s, trace: trace, loc: loc, logger: logger, now: time.Now}
}

// List returns every production record, newest first.
func (h *ProductionHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Production())
}

// Create records a new lot authored by the caller.
func (h *ProductionHandler) Create(c *gin.Context) {
	var rec models.ProductionRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	var author *models.User
	if user, ok := CurrentUser(c); ok {
		author = &user
	}

	created, err := h.store.CreateProduction(c.Request.Context(), rec, author)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("production recorded", zap.String("lot", created.LotNumber), zap.String("date", created.Date))
	c.JSON(http.StatusCreated, created)
}

// Update replaces a lot.
func (h *ProductionHandler) Update(c *gin.Context) {
	updateRecord(h.logger, h.store.UpdateProduction)(c)
}

// Delete removes a lot.
func (h *ProductionHandler) Delete(c *gin.Context) {
	deleteRecord(h.logger, h.store.DeleteProduction)(c)
}

// Dashboard returns the hero metrics of ?date=, today by default.
func (h *ProductionHandler) Dashboard(c *gin.Context) {
	date := c.DefaultQuery("date", h.now().In(h.loc).Format(dateLayout))
	c.JSON(http.StatusOK, aggregation.Dashboard(h.store.Production(), date))
}

// Series returns the chart of the last ?days= recorded days.
func (h *ProductionHandler) Series(c *gin.Context) {
	days := defaultSeriesDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = n
	}
	c.JSON(http.StatusOK, aggregation.TimeSeries(h.store.Production(), days))
}

// Trace resolves the upstream and downstream links of one lot.
func (h *ProductionHandler) Trace(c *gin.Context) {
	lot, err := h.store.FindProduction(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	snapshot := h.store.Snapshot()
	c.JSON(http.StatusOK, traceability.Resolve(lot, snapshot.Purchases, snapshot.Production, snapshot.StockOuts, h.trace))
}

// Lots searches lots by number.
func (h *ProductionHandler) Lots(c *gin.Context) {
	c.JSON(http.StatusOK, traceability.FindLots(h.store.Production(), c.Query("q")))
}
