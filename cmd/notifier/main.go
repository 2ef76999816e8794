package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/nats-io/nats.go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"standup-service/internal/api"
	"standup-service/internal/config"
	"standup-service/internal/events"
	"standup-service/internal/notifier"
	"standup-service/internal/repository"
	"standup-service/internal/tracing"
)

const serviceName = "standup-notifier"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := api.SetupGlobalHandler(serviceName, cfg.LogLevel)

	shutdownTracer, err := tracing.InitTracerProvider(serviceName, cfg.Telemetry)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("Error shutting down tracer provider", "error", err)
		}
	}()

	apnsClient, err := notifier.NewAPNsClient(cfg.APNs)
	if err != nil {
		log.Fatalf("Failed to initialize APNs client: %v", err)
	}

	var pusher notifier.Pusher
	if apnsClient != nil {
		logger.Info("APNs credentials found, pushing to APNs")
		pusher = apnsClient
	} else {
		logger.Info("APNs credentials not found. Worker will run in MOCK mode.")
	}

	db, err := sqlx.Connect("pgx", cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	nc, err := nats.Connect(cfg.NATS.URL, nats.Name(serviceName))
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer nc.Close()

	n := notifier.New(
		repository.NewPostgresTeamRepository(db),
		repository.NewPostgresDeviceTokenRepository(db),
		pusher,
		cfg.APNs.Topic,
		logger,
	)

	subscribers := []*events.RetryingSubscriber{
		events.NewRetryingSubscriber(nc, events.SubjectStandupPosted, events.SubjectStandupPosted+".failed", n.HandleStandupPosted, logger),
		events.NewRetryingSubscriber(nc, events.SubjectMemberAdded, events.SubjectMemberAdded+".failed", n.HandleMemberAdded, logger),
	}
	for _, s := range subscribers {
		if _, err := s.Subscribe(); err != nil {
			log.Fatalf("Failed to subscribe: %v", err)
		}
	}

	logger.Info("Notification worker started, waiting for events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down notification worker...")
}
