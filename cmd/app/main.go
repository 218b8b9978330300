package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordersync/cmd"
	"ordersync/internal/adapters/out/postgres/mirrorrepo"
	"ordersync/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := logging.Setup()
	configs := getConfigs(logger)

	db, err := gorm.Open(postgresdriver.Open(dsn(configs)), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&mirrorrepo.OrderDTO{}); err != nil {
		logger.Error("Failed to migrate mirror schema", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, db, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The engine synchronizes for one credentialed actor: install its
	// identity before anything fetches, and forget it only after the push
	// channel is torn down (deferred stops run in reverse order).
	if err := app.ConfigureActor(); err != nil {
		logger.Error("Invalid actor credential", "error", err)
		os.Exit(1)
	}
	defer app.Store().ClearActor()

	// Warm start renders the last persisted snapshot before the first fetch.
	if err := app.Store().WarmStart(ctx); err != nil {
		logger.Warn("Warm start failed, starting with an empty cache", "error", err)
	}

	consumer := app.CreatePushConsumer()
	if err := consumer.Start(ctx); err != nil {
		logger.Error("Failed to start push consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Stop()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	app.CreateServer().RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:              os.Getenv("HTTP_PORT"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             os.Getenv("DB_SSLMODE"),
		GatewayBaseURL:        os.Getenv("GATEWAY_BASE_URL"),
		GatewayToken:          os.Getenv("GATEWAY_TOKEN"),
		ActorID:               os.Getenv("ACTOR_ID"),
		ActorRole:             os.Getenv("ACTOR_ROLE"),
		KafkaHost:             os.Getenv("KAFKA_HOST"),
		KafkaConsumerGroup:    os.Getenv("KAFKA_CONSUMER_GROUP"),
		KafkaOrderEventsTopic: os.Getenv("KAFKA_ORDER_EVENTS_TOPIC"),
		CacheTTL:              os.Getenv("CACHE_TTL"),
	}
}

func dsn(c cmd.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
