package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-admin/internal/application/auth"
	"github.com/tu-usuario/resto-admin/internal/application/expenses"
	"github.com/tu-usuario/resto-admin/internal/application/inventory"
	"github.com/tu-usuario/resto-admin/internal/application/reports"
	"github.com/tu-usuario/resto-admin/internal/application/sales"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ItemUC       *inventory.ItemUseCase
	CategoryUC   *inventory.CategoryUseCase
	AdjustmentUC *inventory.AdjustmentUseCase
	SalesUC      *sales.SalesUseCase
	ExpenseUC    *expenses.ExpenseUseCase
	ReportsUC    *reports.ReportsUseCase
	LogRepo      repository.InventoryLogRepository
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	managers := RequireRole(entity.RoleAdmin, entity.RoleGerente)

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", managers, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.LowStock)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", managers, itemHandler.Update)
	items.Delete("/:id", managers, itemHandler.Deactivate)
	items.Delete("/:id/purge", adminOnly, itemHandler.Purge)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", managers, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Delete("/:id", managers, categoryHandler.Deactivate)
	categories.Delete("/:id/purge", adminOnly, categoryHandler.Purge)

	// Inventory: ajustes, mermas y libro de movimientos (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustmentUC, deps.LogRepo)
	invGroup.Post("/adjustments", managers, inventoryHandler.RecordAdjustment)
	invGroup.Post("/waste", inventoryHandler.RecordWaste)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Post("/:id/refund", managers, salesHandler.Refund)

	// Expenses (protegido)
	expensesGroup := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expensesGroup.Post("/", expenseHandler.Create)
	expensesGroup.Get("/", expenseHandler.List)
	expensesGroup.Get("/:id", expenseHandler.GetByID)
	expensesGroup.Patch("/:id/status", managers, expenseHandler.UpdateStatus)

	// Reports (protegido, solo administración)
	reportsGroup := protected.Group("/reports", managers)
	reportsHandler := NewReportsHandler(deps.ReportsUC)
	reportsGroup.Get("/profit", reportsHandler.Profit)
	reportsGroup.Get("/profit/categories", reportsHandler.CategoryProfit)
	reportsGroup.Get("/comprehensive", reportsHandler.Comprehensive)
	reportsGroup.Get("/balance-sheet", reportsHandler.BalanceSheet)
	reportsGroup.Get("/daily-summary", reportsHandler.DailySummary)
}
