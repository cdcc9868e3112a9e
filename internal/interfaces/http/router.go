package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/bbh-hotel/lavanderia/internal/application/analytics"
	"github.com/bbh-hotel/lavanderia/internal/application/auth"
	"github.com/bbh-hotel/lavanderia/internal/application/catalog"
	"github.com/bbh-hotel/lavanderia/internal/application/inventory"
	"github.com/bbh-hotel/lavanderia/internal/application/usecase"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC        *catalog.CatalogUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Reports          *appanalytics.ReportUseCase
	Exports          *appanalytics.ExportUseCase
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.CatalogUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Post("/:id/deactivate", itemHandler.Deactivate)
	items.Post("/seed", RequireRole(entity.RoleAdmin), itemHandler.Seed)

	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Post("/batch", movementHandler.CreateBatch)
	movements.Delete("/:id", movementHandler.Delete)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/totals", reportHandler.Totals)
	reports.Get("/manifest", reportHandler.Manifest)
	reports.Get("/trend", reportHandler.Trend)
	reports.Get("/kpis", reportHandler.KPIs)
	reports.Get("/movements", reportHandler.Movements)

	dashboardHandler := NewDashboardHandler(deps.Reports)
	protected.Get("/dashboard", dashboardHandler.GetSummary)

	exports := protected.Group("/exports")
	exportHandler := NewExportHandler(deps.Exports)
	exports.Get("/manifest.csv", exportHandler.ManifestCSV)
	exports.Get("/manifest.pdf", exportHandler.ManifestPDF)
	exports.Get("/movements.csv", exportHandler.MovementsCSV)
	exports.Get("/stock.csv", exportHandler.StockCSV)

	// Administración de usuarios (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Post("/:id/password", userHandler.ResetPassword)
	users.Post("/:id/toggle", userHandler.Toggle)
}
