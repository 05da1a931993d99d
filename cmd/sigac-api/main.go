package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/ucm-dct/sigac-api/api/swagger"
	"github.com/ucm-dct/sigac-api/internal/handler"
	"github.com/ucm-dct/sigac-api/internal/middleware"
	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/internal/service"
	"github.com/ucm-dct/sigac-api/internal/store"
	"github.com/ucm-dct/sigac-api/pkg/cache"
	"github.com/ucm-dct/sigac-api/pkg/config"
	"github.com/ucm-dct/sigac-api/pkg/database"
	"github.com/ucm-dct/sigac-api/pkg/docstore"
	"github.com/ucm-dct/sigac-api/pkg/jobs"
	"github.com/ucm-dct/sigac-api/pkg/logger"
	corsmiddleware "github.com/ucm-dct/sigac-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ucm-dct/sigac-api/pkg/middleware/requestid"
	"github.com/ucm-dct/sigac-api/pkg/storage"
)

// @title SIGAC API
// @version 1.0.0
// @description Sistema de Gestão de Actividades Científicas
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	backend, cleanup, err := newBackend(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init document backend", "driver", cfg.Store.Driver, "error", err)
	}
	defer cleanup()

	metrics := service.NewMetricsService()

	docStore := store.New(backend, store.Config{
		Edition:         models.WorkflowEdition(cfg.Workflow.Edition),
		ReseedOnCorrupt: cfg.Store.ReseedOnCorrupt,
		Logger:          logr,
		Observer:        metrics.ObserveStoreOperation,
	})

	files, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init report storage", "dir", cfg.Reports.StorageDir, "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)

	activities := service.NewActivityService(docStore, nil, logr)
	dashboard := service.NewDashboardService(docStore, logr)
	documents := service.NewDocumentService(docStore, logr)
	reports := service.NewReportService(docStore, files, signer, logr, cfg.Reports.InstitutionName)
	reports.SetMetrics(metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue := jobs.NewQueue("reports", reports.ProcessJob, jobs.QueueConfig{
		Workers: cfg.Reports.WorkerConcurrency,
		Logger:  logr,
	})
	queue.Start(ctx)
	defer queue.Stop()
	reports.SetQueue(queue)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Actor())
	{
		facultyHandler := handler.NewFacultyHandler(activities)
		api.GET("/faculties", facultyHandler.List)

		activityHandler := handler.NewActivityHandler(activities)
		api.GET("/activities", activityHandler.List)
		api.POST("/activities", activityHandler.Create)
		api.GET("/activities/:id", activityHandler.Get)
		api.PUT("/activities/:id/status", activityHandler.UpdateStatus)
		api.PUT("/activities/:id/execution-date", activityHandler.UpdateExecutionDate)
		api.PUT("/activities/:id/evidence", activityHandler.SetEvidence)
		api.DELETE("/activities/:id", activityHandler.Delete)

		dashboardHandler := handler.NewDashboardHandler(dashboard)
		api.GET("/dashboard", dashboardHandler.Summary)

		documentHandler := handler.NewDocumentHandler(documents)
		api.GET("/document/export", documentHandler.Export)
		api.POST("/document/import", documentHandler.Import)
		api.POST("/document/reset", documentHandler.Reset)

		reportHandler := handler.NewReportHandler(reports)
		api.GET("/reports", reportHandler.Download)
		api.POST("/reports/jobs", reportHandler.CreateJob)
		api.GET("/reports/jobs/:id", reportHandler.GetJob)
		api.GET("/reports/download/:token", reportHandler.DownloadResult)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting",
			"addr", addr,
			"env", cfg.Env,
			"edition", cfg.Workflow.Edition,
			"store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	if err := server.Shutdown(context.Background()); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newBackend builds the document backend selected by STORE_DRIVER. The
// cleanup closes whatever connection the driver holds.
func newBackend(cfg *config.Config) (docstore.Backend, func(), error) {
	noop := func() {}
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return docstore.NewMemory(), noop, nil
	case config.DriverFile:
		backend, err := docstore.NewFile(cfg.Store.DataDir)
		return backend, noop, err
	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		backend, err := docstore.NewPostgres(db, cfg.Store.DocumentKey)
		if err != nil {
			db.Close()
			return nil, noop, err
		}
		return backend, func() { db.Close() }, nil
	case config.DriverRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return docstore.NewRedis(client, cfg.Store.DocumentKey), func() { client.Close() }, nil
	case config.DriverSQLite:
		backend, err := docstore.NewSQLite(cfg.Store.DataDir, cfg.Store.DocumentKey)
		if err != nil {
			return nil, noop, err
		}
		return backend, func() { backend.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
