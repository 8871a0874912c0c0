package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/server/handlers"
	"github.com/mamadbah2/packhouse/internal/service/permission"
	"github.com/mamadbah2/packhouse/internal/store"
)

// Handlers bundles the route adapters.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Production *handlers.ProductionHandler
	Ledgers    *handlers.LedgerHandler
	Insights   *handlers.InsightsHandler
	Management *handlers.ManagementHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(s *store.Store, h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/auth/status", h.Auth.Status)
	api.POST("/login", h.Auth.Login)
	api.POST("/register-admin", h.Auth.RegisterAdmin)
	api.POST("/logout", h.Auth.Logout)

	authed := api.Group("", handlers.Authenticate(s))
	authed.GET("/views", h.Auth.Views)

	production := authed.Group("/production", handlers.RequireView(permission.ForKind(models.KindProduction)))
	production.GET("", h.Production.List)
	production.POST("", h.Production.Create)
	production.PUT("/:id", handlers.RequireAdmin(), h.Production.Update)
	production.DELETE("/:id", handlers.RequireAdmin(), h.Production.Delete)
	production.GET("/dashboard", h.Production.Dashboard)
	production.GET("/series", h.Production.Series)
	production.GET("/trace/:id", h.Production.Trace)
	production.GET("/lots", h.Production.Lots)

	registerCRUD(authed.Group("/stock/purchases", handlers.RequireView(permission.ForKind(models.KindPurchase))), h.Ledgers.Purchases())
	registerCRUD(authed.Group("/stock/outs", handlers.RequireView(permission.ForKind(models.KindStockOut))), h.Ledgers.StockOuts())
	registerCRUD(authed.Group("/prestations/prod", handlers.RequireView(permission.ForKind(models.KindPrestationProd))), h.Ledgers.PrestationsProd())
	registerCRUD(authed.Group("/prestations/etuvage", handlers.RequireView(permission.ForKind(models.KindPrestationEtuvage))), h.Ledgers.PrestationsEtuvage())

	authed.GET("/insights", handlers.RequireView(models.ViewInsights), h.Insights.Analyze)

	mgmt := authed.Group("/management", handlers.RequireView(models.ViewManagement))
	mgmt.GET("/master-data", h.Management.MasterData)
	mgmt.POST("/master-data/:category", h.Management.AddMasterValue)
	mgmt.DELETE("/master-data/:category", h.Management.RemoveMasterValue)
	mgmt.GET("/users", h.Management.Users)
	mgmt.POST("/users", handlers.RequireAdmin(), h.Management.AddOperator)
	mgmt.DELETE("/users/:id", handlers.RequireAdmin(), h.Management.DeleteUser)
	mgmt.PUT("/users/:id/permissions", handlers.RequireAdmin(), h.Management.UpdatePermissions)
	mgmt.POST("/backup/export", h.Management.ExportBackup)
	mgmt.POST("/backup/restore", handlers.RequireAdmin(), h.Management.RestoreBackup)
	mgmt.POST("/journal/export", h.Management.ExportJournal)
	mgmt.POST("/demo-data", handlers.RequireAdmin(), h.Management.SeedDemoData)
	mgmt.GET("/ledgers", h.Management.LedgerTotals)
	mgmt.GET("/reports/daily", h.Management.DailyReport)
	mgmt.POST("/reports/daily/archive", h.Management.ArchiveDailyReport)
	mgmt.GET("/reports/weekly", h.Management.WeeklyReport)
	mgmt.POST("/send-message", h.Management.SendMessage)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// registerCRUD mounts a ledger. Edits and deletions are reserved to administrators.
func registerCRUD(g *gin.RouterGroup, crud handlers.CRUD) {
	g.GET("", crud.List)
	g.POST("", crud.Create)
	g.PUT("/:id", handlers.RequireAdmin(), crud.Update)
	g.DELETE("/:id", handlers.RequireAdmin(), crud.Delete)
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_id", c.GetHeader(handlers.UserHeader)))
	}
}
