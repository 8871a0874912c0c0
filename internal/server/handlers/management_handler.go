package handlers

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/service/aggregation"
	"github.com/mamadbah2/packhouse/internal/service/backup"
	"github.com/mamadbah2/packhouse/internal/service/notifier"
	"github.com/mamadbah2/packhouse/internal/service/reporting"
	"github.com/mamadbah2/packhouse/internal/store"
)

// ManagementDeps lists the collaborators of the management view. Backup and
// Notifier are optional.
type ManagementDeps struct {
	Store     *store.Store
	Backup    *backup.Service
	Reporting *reporting.Service
	Notifier  notifier.Notifier
	Location  *time.Location
}

// ManagementHandler serves master data, users, backups and reports.
type ManagementHandler struct {
	deps   ManagementDeps
	logger *zap.Logger
	now    func() time.Time
}

// NewManagementHandler constructs the HTTP handler adapter.
func NewManagementHandler(deps ManagementDeps, logger *zap.Logger) *ManagementHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &ManagementHandler{deps: deps, logger: logger, now: time.Now}
}

type masterValueRequest struct {
	Value string `json:"value" binding:"required"`
}

type permissionsRequest struct {
	AllowedTabs []models.ViewID `json:"allowedTabs"`
}

// MasterData returns every vocabulary.
func (h *ManagementHandler) MasterData(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Store.MasterData())
}

// AddMasterValue appends a value to :category.
func (h *ManagementHandler) AddMasterValue(c *gin.Context) {
	category, err := models.ParseMasterCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req masterValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	data, err := h.deps.Store.AddMasterValue(c.Request.Context(), category, req.Value)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// RemoveMasterValue removes ?value= from :category.
func (h *ManagementHandler) RemoveMasterValue(c *gin.Context) {
	category, err := models.ParseMasterCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := h.deps.Store.RemoveMasterValue(c.Request.Context(), category, c.Query("value"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// Users lists every account without credentials.
func (h *ManagementHandler) Users(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Store.Users())
}

// AddOperator creates an operator account.
func (h *ManagementHandler) AddOperator(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	user, err := h.deps.Store.AddOperator(c.Request.Context(), req.Name, req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("operator created", zap.String("username", user.Username))
	c.JSON(http.StatusCreated, user)
}

// DeleteUser removes an operator account.
func (h *ManagementHandler) DeleteUser(c *gin.Context) {
	if err := h.deps.Store.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdatePermissions replaces the allow-list of an account.
func (h *ManagementHandler) UpdatePermissions(c *gin.Context) {
	var req permissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	user, err := h.deps.Store.UpdatePermissions(c.Request.Context(), c.Param("id"), req.AllowedTabs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ExportBackup uploads the full dataset to Drive.
func (h *ManagementHandler) ExportBackup(c *gin.Context) {
	if h.deps.Backup == nil {
		respondError(c, h.logger, errUnavailable)
		return
	}
	info, err := h.deps.Backup.Export(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

// RestoreBackup replaces the dataset with the newest Drive backup.
func (h *ManagementHandler) RestoreBackup(c *gin.Context) {
	if h.deps.Backup == nil {
		respondError(c, h.logger, errUnavailable)
		return
	}
	info, err := h.deps.Backup.Restore(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// ExportJournal appends new production rows to the spreadsheet.
func (h *ManagementHandler) ExportJournal(c *gin.Context) {
	n, err := h.deps.Reporting.ExportJournal(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": n})
}

// SeedDemoData generates a week of sample lots.
func (h *ManagementHandler) SeedDemoData(c *gin.Context) {
	now := h.now().In(h.deps.Location)
	n, err := h.deps.Store.SeedDemoData(c.Request.Context(), now, rand.New(rand.NewSource(now.UnixNano())))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"generated": n})
}

// LedgerTotals summarises the non-production ledgers between ?from= and ?to=.
func (h *ManagementHandler) LedgerTotals(c *gin.Context) {
	period := aggregation.Period{From: c.Query("from"), To: c.Query("to")}
	c.JSON(http.StatusOK, aggregation.Ledgers(h.deps.Store.Snapshot(), period))
}

// DailyReport returns the figures and digest of ?date=, today by default.
func (h *ManagementHandler) DailyReport(c *gin.Context) {
	date := h.dateParam(c)
	c.JSON(http.StatusOK, gin.H{
		"report":  h.deps.Reporting.DailyReport(date),
		"summary": h.deps.Reporting.DailySummary(date),
	})
}

// WeeklyReport returns the digest of the last seven days.
func (h *ManagementHandler) WeeklyReport(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"summary": h.deps.Reporting.WeeklySummary(h.now().In(h.deps.Location))})
}

// ArchiveDailyReport stores the figures of ?date= in MongoDB.
func (h *ManagementHandler) ArchiveDailyReport(c *gin.Context) {
	report, err := h.deps.Reporting.ArchiveDaily(c.Request.Context(), h.dateParam(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// SendMessage pushes a WhatsApp message, to the manager unless "to" is set.
func (h *ManagementHandler) SendMessage(c *gin.Context) {
	if h.deps.Notifier == nil {
		respondError(c, h.logger, errUnavailable)
		return
	}
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	if err := h.deps.Notifier.SendOutbound(c.Request.Context(), req); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.logger.Error("failed sending outbound", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
			return
		}
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *ManagementHandler) dateParam(c *gin.Context) string {
	return c.DefaultQuery("date", h.now().In(h.deps.Location).Format(dateLayout))
}
