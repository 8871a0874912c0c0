package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/config"
	"github.com/mamadbah2/packhouse/internal/repository/drive"
	"github.com/mamadbah2/packhouse/internal/repository/kv"
	"github.com/mamadbah2/packhouse/internal/repository/mongodb"
	"github.com/mamadbah2/packhouse/internal/repository/sheets"
	"github.com/mamadbah2/packhouse/internal/scheduler"
	"github.com/mamadbah2/packhouse/internal/server/handlers"
	"github.com/mamadbah2/packhouse/internal/server/router"
	backupsvc "github.com/mamadbah2/packhouse/internal/service/backup"
	insightssvc "github.com/mamadbah2/packhouse/internal/service/insights"
	notifiersvc "github.com/mamadbah2/packhouse/internal/service/notifier"
	reportingsvc "github.com/mamadbah2/packhouse/internal/service/reporting"
	"github.com/mamadbah2/packhouse/internal/service/traceability"
	"github.com/mamadbah2/packhouse/internal/store"
	"github.com/mamadbah2/packhouse/pkg/clients/anthropic"
	whatsappclient "github.com/mamadbah2/packhouse/pkg/clients/whatsapp"
	"github.com/mamadbah2/packhouse/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	var (
		backend kv.Store
		archive mongodb.Repository
	)
	switch cfg.Store.Backend {
	case config.BackendMongoDB:
		mongoRepo, err := mongodb.NewMongoDBRepository(startCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		backend = mongoRepo.KV()
		archive = mongoRepo
	default:
		baseLogger.Warn("memory store backend selected, data is lost on restart and reports are not archived")
		backend = kv.NewMemory()
	}

	recordStore := store.New(backend, baseLogger.Named("store"))
	if err := recordStore.Load(startCtx); err != nil {
		baseLogger.Fatal("failed to load records", zap.Error(err))
	}

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		var opts []anthropic.Option
		if cfg.AI.Model != "" {
			opts = append(opts, anthropic.WithModel(cfg.AI.Model))
		}
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey, opts...)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, insights disabled")
	}
	insightsSvc := insightssvc.NewService(aiClient, cfg.AI.RecordLimit, baseLogger.Named("svc.insights"))

	var journal sheets.Repository
	if cfg.Google.SpreadsheetID != "" {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(startCtx, cfg.Google, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		journal = sheetsRepo
	} else {
		baseLogger.Warn("spreadsheet id missing, journal export disabled")
	}

	var backupSvc *backupsvc.Service
	if cfg.Google.DriveFolderID != "" {
		driveRepo, err := drive.NewGoogleDriveRepository(startCtx, cfg.Google.CredentialsPath, cfg.Google.DriveFolderID, baseLogger.Named("repo.drive"))
		if err != nil {
			baseLogger.Fatal("failed to init drive repository", zap.Error(err))
		}
		backupSvc = backupsvc.NewService(driveRepo, recordStore, baseLogger.Named("svc.backup"))
	} else {
		baseLogger.Warn("drive folder id missing, cloud backup disabled")
	}

	var notifier notifiersvc.Notifier
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		notifier = notifiersvc.NewWhatsAppNotifier(cfg.WhatsApp, whatsClient, baseLogger.Named("svc.notifier"))
	} else {
		baseLogger.Warn("whatsapp credentials missing, daily digest disabled")
	}

	reportingSvc := reportingsvc.NewService(recordStore, archive, journal, baseLogger.Named("svc.reporting"))

	engine := router.New(recordStore, router.Handlers{
		Auth:       handlers.NewAuthHandler(recordStore, baseLogger.Named("handlers.auth")),
		Production: handlers.NewProductionHandler(recordStore, traceability.Options{LookbackDays: cfg.Trace.LookbackDays}, loc, baseLogger.Named("handlers.production")),
		Ledgers:    handlers.NewLedgerHandler(recordStore, baseLogger.Named("handlers.ledgers")),
		Insights:   handlers.NewInsightsHandler(recordStore, insightsSvc),
		Management: handlers.NewManagementHandler(handlers.ManagementDeps{
			Store:     recordStore,
			Backup:    backupSvc,
			Reporting: reportingSvc,
			Notifier:  notifier,
			Location:  loc,
		}, baseLogger.Named("handlers.management")),
	}, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("backend", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
