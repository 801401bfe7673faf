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
	"github.com/tu-usuario/resto-admin/internal/application/auth"
	"github.com/tu-usuario/resto-admin/internal/application/expenses"
	"github.com/tu-usuario/resto-admin/internal/application/inventory"
	"github.com/tu-usuario/resto-admin/internal/application/reports"
	"github.com/tu-usuario/resto-admin/internal/application/sales"
	"github.com/tu-usuario/resto-admin/internal/infrastructure/audit"
	"github.com/tu-usuario/resto-admin/internal/infrastructure/cache"
	"github.com/tu-usuario/resto-admin/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/resto-admin/internal/interfaces/http"
	"github.com/tu-usuario/resto-admin/pkg/config"
	"github.com/tu-usuario/resto-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	loc, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.Business.Timezone).Msg("zona horaria inválida, usando UTC")
		loc = time.UTC
	}

	itemRepo := postgres.NewItemRepository(pool)
	logRepo := postgres.NewInventoryLogRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool, loc.String())
	txRunner := postgres.NewTxRunner(pool)

	// Cache de reportes: Redis si está configurado, noop si no.
	var reportCache reports.ReportCache = cache.NewNoop()
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, reportes sin cache")
		} else {
			defer redisCache.Close()
			reportCache = redisCache
		}
	}

	stockUC := inventory.NewStockUseCase(txRunner)
	adjustmentUC := inventory.NewAdjustmentUseCase(stockUC)
	auditor := audit.NewLogAuditor(log.Zerolog())
	itemUC := inventory.NewItemUseCase(itemRepo, logRepo, stockUC, auditor, log.Zerolog())
	categoryUC := inventory.NewCategoryUseCase(categoryRepo)
	salesUC := sales.NewSalesUseCase(txRunner, stockUC, itemRepo, saleRepo, logRepo)
	expenseUC := expenses.NewExpenseUseCase(expenseRepo)
	reportsUC := reports.NewReportsUseCase(
		reportRepo, reportCache, loc,
		decimal.NewFromFloat(cfg.Business.PartnerSplit),
		log.Zerolog(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Resto Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ItemUC:       itemUC,
		CategoryUC:   categoryUC,
		AdjustmentUC: adjustmentUC,
		SalesUC:      salesUC,
		ExpenseUC:    expenseUC,
		ReportsUC:    reportsUC,
		LogRepo:      logRepo,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
