package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/billfold/backend/internal/application/billing"
	partnerapp "github.com/billfold/backend/internal/application/partner"
	schedulingapp "github.com/billfold/backend/internal/application/scheduling"
	"github.com/billfold/backend/internal/domain/scheduling"
	"github.com/billfold/backend/internal/infrastructure/cache"
	"github.com/billfold/backend/internal/infrastructure/config"
	"github.com/billfold/backend/internal/infrastructure/event"
	"github.com/billfold/backend/internal/infrastructure/logger"
	"github.com/billfold/backend/internal/infrastructure/notification"
	"github.com/billfold/backend/internal/infrastructure/persistence"
	"github.com/billfold/backend/internal/infrastructure/printing"
	"github.com/billfold/backend/internal/infrastructure/telemetry"
	"github.com/billfold/backend/internal/interfaces/http/handler"
	"github.com/billfold/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting billfold backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithOptions(&cfg.Database, persistence.Options{
		Logger:       gormLog,
		TraceQueries: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("failed to migrate schema", zap.Error(err))
	}
	log.Info("database ready")

	clientRepo := persistence.NewGormClientRepository(db.DB)
	estimateRepo := persistence.NewGormEstimateRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	appointmentRepo := persistence.NewGormAppointmentRepository(db.DB)
	numberGenerator := persistence.NewGormNumberGenerator(db.DB)
	conversionStore := persistence.NewGormConversionStore(db.DB)
	referenceChecker := persistence.NewGormReferenceChecker(db.DB)

	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = eventBus.Stop(context.Background())
	}()

	var notifier scheduling.Notifier = notification.NewLogNotifier(log)
	if cfg.Notification.WebhookURL != "" {
		notifier = notification.NewWebhookNotifier(notification.Config{
			URL:        cfg.Notification.WebhookURL,
			Timeout:    cfg.Notification.Timeout,
			MaxRetries: cfg.Notification.MaxRetries,
		}, log)
	}

	clientService := partnerapp.NewClientService(clientRepo, referenceChecker)
	clientService.SetEventPublisher(eventBus)

	estimateService := billingapp.NewEstimateService(estimateRepo, invoiceRepo, clientRepo, conversionStore, numberGenerator)
	estimateService.SetEventPublisher(eventBus)

	invoiceService := billingapp.NewInvoiceService(invoiceRepo, receiptRepo, clientRepo, numberGenerator)
	invoiceService.SetEventPublisher(eventBus)
	invoiceService.SetSummaryCache(cache.NewSummaryCache(cfg.Redis, log))

	receiptService := billingapp.NewReceiptService(receiptRepo)

	appointmentService := schedulingapp.NewAppointmentService(appointmentRepo, clientRepo, notifier, log)
	appointmentService.SetEventPublisher(eventBus)

	renderer := printing.NewChromedpRenderer(printing.ChromedpConfig{Logger: log})
	defer func() {
		_ = renderer.Close()
	}()
	printer := printing.NewDocumentPrinter(renderer)

	engine := router.New(cfg, log, router.Handlers{
		System:      handler.NewSystemHandler(db, version),
		Client:      handler.NewClientHandler(clientService),
		Estimate:    handler.NewEstimateHandler(estimateService),
		Invoice:     handler.NewInvoiceHandler(invoiceService),
		Receipt:     handler.NewReceiptHandler(receiptService),
		Appointment: handler.NewAppointmentHandler(appointmentService),
		Print:       handler.NewPrintHandler(printer, estimateService, invoiceService, receiptService, clientService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("error shutting down tracer", zap.Error(err))
	}

	log.Info("stopped")
}
