package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mobiquip/backoffice-api/internal/application/auth"
	"github.com/mobiquip/backoffice-api/internal/application/billing"
	"github.com/mobiquip/backoffice-api/internal/application/catalog"
	"github.com/mobiquip/backoffice-api/internal/application/jobs"
	"github.com/mobiquip/backoffice-api/internal/application/tickets"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CustomerUC *billing.CustomerUseCase
	CatalogUC  *catalog.UseCase
	JobUC      *jobs.UseCase
	TicketUC   *tickets.UseCase
	InvoiceUC  *billing.InvoiceUseCase
	DraftUC    *billing.DraftUseCase
	PDFUC      *billing.PDFUseCase
	ExportUC   *billing.ExportUseCase
	TaxUC      *billing.DefaultTaxUseCase
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	office := RequireRole(entity.RoleAdmin, entity.RoleOffice)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", office, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", office, customerHandler.Update)

	// Catalogue: mobility parts and service types
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	parts := protected.Group("/mobility-parts")
	parts.Post("/", office, catalogHandler.CreatePart)
	parts.Get("/", catalogHandler.ListParts)
	parts.Get("/:id", catalogHandler.GetPart)
	parts.Put("/:id", office, catalogHandler.UpdatePart)

	serviceTypes := protected.Group("/technician-service-types")
	serviceTypes.Post("/", office, catalogHandler.CreateServiceType)
	serviceTypes.Get("/", catalogHandler.ListServiceTypes)

	// Technician jobs
	jobsGroup := protected.Group("/technician-jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	jobsGroup.Post("/", office, jobHandler.Create)
	jobsGroup.Get("/", jobHandler.List)
	jobsGroup.Get("/:id", jobHandler.GetByID)
	jobsGroup.Post("/:id/activities", jobHandler.RecordActivity)
	jobsGroup.Patch("/:id/status", jobHandler.UpdateStatus)

	// Intake tickets
	ticketsGroup := protected.Group("/tickets")
	ticketHandler := NewTicketHandler(deps.TicketUC)
	ticketsGroup.Post("/", ticketHandler.Create)
	ticketsGroup.Get("/", ticketHandler.List)
	ticketsGroup.Get("/:id", ticketHandler.GetByID)
	ticketsGroup.Patch("/:id", office, ticketHandler.Update)
	ticketsGroup.Post("/:id/convert", office, ticketHandler.Convert)

	// Customer invoices
	invoices := protected.Group("/customer-invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DraftUC, deps.PDFUC, deps.ExportUC)
	invoices.Post("/", office, invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", office, invoiceHandler.Update)
	invoices.Patch("/:id/status", office, invoiceHandler.UpdateStatus)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/xml", invoiceHandler.ExportXML)
	invoices.Post("/:id/draft", office, invoiceHandler.OpenDraft)
	invoices.Put("/:id/draft", office, invoiceHandler.ApplyDraftChange)
	invoices.Get("/:id/draft/totals", office, invoiceHandler.DraftTotals)
	invoices.Delete("/:id/draft", office, invoiceHandler.CloseDraft)

	// Default VAT rate
	taxHandler := NewTaxHandler(deps.TaxUC)
	protected.Get("/default-tax", taxHandler.Get)
}
