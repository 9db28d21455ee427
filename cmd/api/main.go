package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/mobiquip/backoffice-api/internal/application/auth"
	"github.com/mobiquip/backoffice-api/internal/application/billing"
	"github.com/mobiquip/backoffice-api/internal/application/catalog"
	"github.com/mobiquip/backoffice-api/internal/application/jobs"
	"github.com/mobiquip/backoffice-api/internal/application/tickets"
	infraexport "github.com/mobiquip/backoffice-api/internal/infrastructure/export"
	infrapdf "github.com/mobiquip/backoffice-api/internal/infrastructure/pdf"
	"github.com/mobiquip/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/mobiquip/backoffice-api/internal/interfaces/http"
	"github.com/mobiquip/backoffice-api/pkg/config"
	"github.com/mobiquip/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	partRepo := postgres.NewPartRepository(pool)
	serviceTypeRepo := postgres.NewServiceTypeRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	taxRepo := postgres.NewTaxRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, cfg.JWT)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	catalogUC := catalog.NewUseCase(partRepo, serviceTypeRepo)
	jobUC := jobs.NewUseCase(jobRepo, customerRepo, partRepo, serviceTypeRepo)
	ticketUC := tickets.NewUseCase(ticketRepo, customerRepo, jobUC)

	labourRate := decimal.NewFromFloat(cfg.Billing.DefaultLabourRate)
	taxUC := billing.NewDefaultTaxUseCase(taxRepo, log, decimal.NewFromFloat(cfg.Billing.DefaultVATPercent))
	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, invoiceRepo, customerRepo, jobRepo, partRepo,
		taxUC, cfg.Billing.InvoiceNumPrefix, labourRate,
	)
	draftUC := billing.NewDraftUseCase(
		invoiceRepo, customerRepo, taxUC, labourRate,
		time.Duration(cfg.Billing.DraftDebounceMs)*time.Millisecond,
	)

	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator(infrapdf.Retailer{
		Name:      cfg.Retailer.Name,
		Address:   cfg.Retailer.Address,
		Phone:     cfg.Retailer.Phone,
		Email:     cfg.Retailer.Email,
		VATNumber: cfg.Retailer.VATNumber,
	})
	pdfUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, pdfGenerator)
	exportUC := billing.NewExportUseCase(invoiceRepo, customerRepo, infraexport.NewXMLExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MobiQuip Back Office API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CustomerUC: customerUC,
		CatalogUC:  catalogUC,
		JobUC:      jobUC,
		TicketUC:   ticketUC,
		InvoiceUC:  invoiceUC,
		DraftUC:    draftUC,
		PDFUC:      pdfUC,
		ExportUC:   exportUC,
		TaxUC:      taxUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	draftUC.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
