package router

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ledgerdesk/internal/config"
	"ledgerdesk/internal/handler"
	"ledgerdesk/internal/infra"
	"ledgerdesk/internal/middleware"
	"ledgerdesk/internal/repository"
	"ledgerdesk/internal/service"
	"ledgerdesk/internal/worker"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns the configured Gin engine plus the
// worker dispatcher and its job handler, which the caller hooks into the
// worker pool. Dependency graph: Handler ← Service ← Repository ← DB.
func New(cfg *config.Config, db *gorm.DB) (*gin.Engine, *worker.Dispatcher, worker.Handler, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	money, err := infra.NewCurrencyFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("currency formatter: %w", err)
	}
	dispatcher := worker.NewDispatcher(64)

	// ── Repositories ─────────────────────────────────────────────────────────
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	ledgerSvc := service.NewLedgerService(saleRepo, productRepo, customerRepo, expenseRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	productSvc := service.NewProductService(productRepo, expenseRepo)
	expenseSvc := service.NewExpenseService(expenseRepo)
	reportSvc := service.NewReportService(reportRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, saleRepo, dispatcher, money,
		service.CompanyInfo{Name: cfg.CompanyName, Address: cfg.CompanyAddress}, cfg.ExportDir)

	// ── Handlers ─────────────────────────────────────────────────────────────
	customersH := handler.NewCustomersHandler(customerSvc)
	productsH := handler.NewProductsHandler(productSvc, ledgerSvc)
	salesH := handler.NewSalesHandler(ledgerSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db))

	v1 := r.Group("/v1")
	{
		customers := v1.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.Get)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.PATCH("/:id/stock", productsH.Restock)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.Get)
			sales.PUT("/:id", salesH.Update)
			sales.DELETE("/:id", salesH.Delete)
			sales.GET("/:id/invoice.pdf", invoicesH.RenderPDF)
			sales.POST("/:id/invoice/export", invoicesH.Export)
		}

		expenses := v1.Group("/expenses")
		{
			expenses.POST("", expensesH.Create)
			expenses.GET("", expensesH.List)
			expenses.GET("/:id", expensesH.Get)
			expenses.PUT("/:id", expensesH.Update)
			expenses.DELETE("/:id", expensesH.Delete)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/sales", reportsH.Sales)
			reports.GET("/expenses", reportsH.Expenses)
			reports.GET("/profit", reportsH.Profit)
			reports.GET("/products", reportsH.Products)
			reports.GET("/customers", reportsH.Customers)
			reports.GET("/cheques", reportsH.Cheques)
			reports.GET("/cheques/upcoming", reportsH.UpcomingCheques)
		}

		templates := v1.Group("/invoice-templates")
		{
			templates.POST("", invoicesH.CreateTemplate)
			templates.GET("", invoicesH.ListTemplates)
			templates.GET("/:id", invoicesH.GetTemplate)
			templates.PUT("/:id", invoicesH.UpdateTemplate)
			templates.DELETE("/:id", invoicesH.DeleteTemplate)
		}

		invoices := v1.Group("/invoices")
		{
			invoices.POST("", invoicesH.Save)
			invoices.GET("", invoicesH.List)
			invoices.GET("/:id", invoicesH.Get)
			invoices.DELETE("/:id", invoicesH.Delete)
		}
	}

	// Static UI assets, when bundled
	if cfg.WebDir != "" {
		r.Static("/app", cfg.WebDir)
	}

	jobHandler := func(ctx context.Context, job worker.Job) error {
		switch job.Type {
		case worker.JobInvoiceExport:
			var payload worker.InvoiceExportPayload
			if err := json.Unmarshal(job.Payload, &payload); err != nil {
				return err
			}
			return invoiceSvc.ExportToFile(ctx, payload)
		}
		return fmt.Errorf("unknown job type %q", job.Type)
	}

	return r, dispatcher, jobHandler, nil
}
