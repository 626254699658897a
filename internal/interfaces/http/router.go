package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/jobledger/internal/application/analytics"
	"github.com/jhoicas/jobledger/internal/application/backup"
	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/application/dto"
	"github.com/jhoicas/jobledger/internal/application/usecase"
	"github.com/jhoicas/jobledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	JobUC      *usecase.JobUseCase
	SettingsUC *usecase.SettingsUseCase
	InvoiceUC  *billing.InvoiceUseCase
	DocumentUC *billing.DocumentUseCase
	OverviewUC *analytics.OverviewUseCase
	BackupUC   *backup.UseCase
	Log        *logger.Logger
	LocalOnly  bool // rechazar peticiones que no vengan de loopback
}

// NewApp crea la aplicación Fiber con el manejo de errores común y registra las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "jobledger",
		DisableStartupMessage: true,
		BodyLimit:             32 * 1024 * 1024, // copias de seguridad grandes
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: err.Error()})
		},
	})
	app.Use(recover.New())
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	if deps.LocalOnly {
		app.Use(LocalOnly())
	}
	app.Use(RequestLogger(log.Component("http")))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.StatusResponse{Status: "ok"})
	})

	api := app.Group("/api")

	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.OverviewUC)
	api.Get("/overview", settingsHandler.Overview)
	api.Get("/settings", settingsHandler.Get)
	api.Put("/settings", settingsHandler.Update)

	// Jobs y registros
	jobHandler := NewJobHandler(deps.JobUC)
	jobs := api.Group("/jobs")
	jobs.Get("/", jobHandler.List)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/:id", jobHandler.Get)
	jobs.Put("/:id", jobHandler.Update)
	jobs.Get("/:id/entries", jobHandler.ListEntries)
	jobs.Post("/:id/entries", jobHandler.AddEntry)

	entries := api.Group("/entries")
	entries.Put("/:id", jobHandler.UpdateEntry)
	entries.Delete("/:id", jobHandler.DeleteEntry)

	// Factura del trabajo
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC)
	jobs.Get("/:id/invoice", invoiceHandler.Get)
	jobs.Post("/:id/invoice/prepare", invoiceHandler.Prepare)
	jobs.Post("/:id/invoice/cancel", invoiceHandler.Cancel)
	jobs.Post("/:id/invoice/issue", invoiceHandler.Issue)
	jobs.Post("/:id/invoice/sent", invoiceHandler.Sent)
	jobs.Get("/:id/invoice/pdf", invoiceHandler.PDF)
	jobs.Get("/:id/invoice/preview", invoiceHandler.Preview)
	jobs.Post("/:id/paid", invoiceHandler.Paid)

	// Copias de seguridad
	backupHandler := NewBackupHandler(deps.BackupUC)
	api.Get("/backup", backupHandler.Export)
	api.Post("/backup/restore", backupHandler.Restore)
}
