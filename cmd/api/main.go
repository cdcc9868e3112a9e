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

	appanalytics "github.com/bbh-hotel/lavanderia/internal/application/analytics"
	"github.com/bbh-hotel/lavanderia/internal/application/auth"
	"github.com/bbh-hotel/lavanderia/internal/application/catalog"
	"github.com/bbh-hotel/lavanderia/internal/application/inventory"
	"github.com/bbh-hotel/lavanderia/internal/application/usecase"
	"github.com/bbh-hotel/lavanderia/internal/domain/period"
	"github.com/bbh-hotel/lavanderia/internal/infrastructure/export"
	infrapdf "github.com/bbh-hotel/lavanderia/internal/infrastructure/pdf"
	"github.com/bbh-hotel/lavanderia/internal/infrastructure/postgres"
	httpRouter "github.com/bbh-hotel/lavanderia/internal/interfaces/http"
	"github.com/bbh-hotel/lavanderia/pkg/config"
	"github.com/bbh-hotel/lavanderia/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}
	clock := period.Clock{Now: time.Now, Location: loc}

	migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Component("migrate"))
	if err != nil {
		log.Fatal().Err(err).Msg("preparar migraciones")
	}
	if err := migrator.Up(); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	if err := migrator.Close(); err != nil {
		log.Warn().Err(err).Msg("cerrar migrador")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewCatalogUseCase(itemRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, itemRepo, movementRepo, clock)
	reportUC := appanalytics.NewReportUseCase(txRunner, clock)
	exportUC := appanalytics.NewExportUseCase(
		reportUC, export.NewCSVEncoder(), infrapdf.NewMarotoManifestGenerator(),
		appanalytics.ManifestHeader{Hotel: cfg.Hotel.Name, Responsible: cfg.Hotel.ManifestResponsible},
	)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Arranque: admin inicial y catálogo por defecto (ambos idempotentes).
	created, err := authUC.EnsureAdmin(ctx, cfg.Bootstrap.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("crear usuario admin")
	}
	if created {
		log.Warn().Str("username", auth.AdminUsername).Msg("usuario admin creado con la contraseña inicial; cámbiela")
	}
	seed, err := catalogUC.SeedDefaults(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo por defecto")
	}
	log.Info().Int("created", seed.Created).Msg("catálogo por defecto verificado")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Lavanderia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:        catalogUC,
		RegisterMovement: registerMovementUC,
		Reports:          reportUC,
		Exports:          exportUC,
		AuthUC:           authUC,
		UserUC:           userUC,
		JWTSecret:        cfg.JWT.Secret,
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
