// Package router wires the HTTP middleware chain and routes.
package router

import (
	"github.com/billfold/backend/internal/infrastructure/config"
	"github.com/billfold/backend/internal/infrastructure/logger"
	"github.com/billfold/backend/internal/interfaces/http/handler"
	"github.com/billfold/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles the endpoint handlers the router needs
type Handlers struct {
	System      *handler.SystemHandler
	Client      *handler.ClientHandler
	Estimate    *handler.EstimateHandler
	Invoice     *handler.InvoiceHandler
	Receipt     *handler.ReceiptHandler
	Appointment *handler.AppointmentHandler
	Print       *handler.PrintHandler
}

// New builds the gin engine with the full middleware chain and all
// API routes mounted under /api/v1.
func New(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.ContextLogger(log),
		logger.GinMiddleware(log),
		middleware.CORSWithConfig(corsCfg),
		middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled),
	)

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.Account())

	clients := api.Group("/clients")
	{
		clients.POST("", h.Client.Create)
		clients.GET("", h.Client.List)
		clients.GET("/:id", h.Client.GetByID)
		clients.PUT("/:id", h.Client.Update)
		clients.POST("/:id/activate", h.Client.Activate)
		clients.POST("/:id/deactivate", h.Client.Deactivate)
		clients.DELETE("/:id", h.Client.Delete)
	}

	estimates := api.Group("/estimates")
	{
		estimates.POST("", h.Estimate.Create)
		estimates.GET("", h.Estimate.List)
		estimates.GET("/:id", h.Estimate.GetByID)
		estimates.PUT("/:id", h.Estimate.Update)
		estimates.PATCH("/:id/status", h.Estimate.UpdateStatus)
		estimates.POST("/:id/convert", h.Estimate.Convert)
		estimates.POST("/:id/undo-conversion", h.Estimate.UndoConversion)
		estimates.GET("/:id/pdf", h.Print.PrintEstimate)
		estimates.DELETE("/:id", h.Estimate.Delete)
	}

	invoices := api.Group("/invoices")
	{
		invoices.POST("", h.Invoice.Create)
		invoices.GET("", h.Invoice.List)
		invoices.GET("/summary", h.Invoice.StatusSummary)
		invoices.GET("/:id", h.Invoice.GetByID)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.PATCH("/:id/status", h.Invoice.UpdateStatus)
		invoices.POST("/:id/receipts", h.Invoice.GenerateReceipt)
		invoices.GET("/:id/receipts", h.Receipt.ListByInvoice)
		invoices.GET("/:id/pdf", h.Print.PrintInvoice)
		invoices.DELETE("/:id", h.Invoice.Delete)
	}

	receipts := api.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.GET("/:id", h.Receipt.GetByID)
		receipts.GET("/:id/pdf", h.Print.PrintReceipt)
	}

	appointments := api.Group("/appointments")
	{
		appointments.POST("", h.Appointment.Create)
		appointments.GET("", h.Appointment.List)
		appointments.GET("/:id", h.Appointment.GetByID)
		appointments.PUT("/:id", h.Appointment.Update)
		appointments.PATCH("/:id/status", h.Appointment.UpdateStatus)
		appointments.DELETE("/:id", h.Appointment.Delete)
	}

	return engine
}
