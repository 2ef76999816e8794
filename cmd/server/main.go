package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"standup-service/internal/api"
	"standup-service/internal/config"
	"standup-service/internal/events"
	"standup-service/internal/jwt"
	"standup-service/internal/repository"
	"standup-service/internal/service"
	"standup-service/internal/tracing"
	_ "standup-service/migrations"
)

const serviceName = "standup-service"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := api.SetupGlobalHandler(serviceName, cfg.LogLevel)

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg.Database)
		return
	}

	if err := cfg.JWT.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	shutdownTracer, err := tracing.InitTracerProvider(serviceName, cfg.Telemetry)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("Error shutting down tracer provider", "error", err)
		}
	}()

	db := connectDB(cfg.Database)
	defer db.Close()

	eventPublisher, err := events.NewNatsPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer eventPublisher.Close()
	slog.Info("Successfully connected to NATS.")

	tokens := jwt.NewManager(cfg.JWT)

	userRepo := repository.NewPostgresUserRepository(db)
	tokenRepo := repository.NewPostgresTokenRepository(db)
	deviceTokenRepo := repository.NewPostgresDeviceTokenRepository(db)
	orgRepo := repository.NewPostgresOrganizationRepository(db)
	teamRepo := repository.NewPostgresTeamRepository(db)
	standupRepo := repository.NewPostgresStandupRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo, tokens, logger)
	userService := service.NewUserService(deviceTokenRepo)
	orgService := service.NewOrganizationService(orgRepo)
	teamService := service.NewTeamService(teamRepo, userRepo, eventPublisher, logger)
	standupService := service.NewStandupService(teamRepo, standupRepo, eventPublisher, logger)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: cfg.RateLimit.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many request, please try again later.",
			})
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": serviceName})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api.SetupRoutes(app, api.Handlers{
		Auth:         api.NewAuthHandler(authService),
		User:         api.NewUserHandler(authService, userService),
		Organization: api.NewOrganizationHandler(orgService),
		Team:         api.NewTeamHandler(teamService),
		Standup:      api.NewStandupHandler(standupService),
	}, tokens)

	slog.Info("Listening", "service", serviceName, "port", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		slog.Error("Server stopped", "error", err)
	}
}

func connectDB(cfg config.DatabaseConfig) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.URL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	slog.Info("Successfully connected to the database.")
	return db
}

func handleMigrations(cfg config.DatabaseConfig) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.URL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
