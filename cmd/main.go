package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"order-notification-service/internal/config"
	"order-notification-service/internal/events"
	"order-notification-service/internal/handlers"
	"order-notification-service/internal/middleware"
	"order-notification-service/internal/repository"
	"order-notification-service/internal/services"
	"order-notification-service/internal/worker"
)

func main() {
	// Load configuration (fail-fast on missing required values)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogging(cfg)

	// Shared AWS configuration for all clients
	awsCfg, err := services.NewAWSConfig(context.Background(), &cfg.AWS)
	if err != nil {
		log.Fatalf("Failed to load AWS configuration: %v", err)
	}

	sqsClient := sqs.NewFromConfig(awsCfg)
	s3Client := s3.NewFromConfig(awsCfg)
	lambdaClient := lambda.NewFromConfig(awsCfg)
	sesClient := ses.NewFromConfig(awsCfg)

	// Initialize repositories
	inventoryRepo := repository.NewInventoryRepository(lambdaClient, cfg.Functions.ListInventories)
	organizationRepo := repository.NewOrganizationRepository(lambdaClient, cfg.Functions.GetOrganization)
	templateStore := repository.NewS3TemplateStore(s3Client, cfg.Templates.Bucket)

	// Initialize the pipeline
	renderer := services.NewRenderer(templateStore, map[events.NotificationType]string{
		events.OrderCreated:   cfg.Templates.OrderCreatedKey,
		events.OrderCanceled:  cfg.Templates.OrderCanceledKey,
		events.OrderDelivered: cfg.Templates.OrderDeliveredKey,
	})
	dispatcher := services.NewDispatcher(
		services.NewSESMailer(sesClient),
		cfg.Email.FromAddress,
		cfg.Email.FromName,
		cfg.Email.CCAddress,
	)
	orderHandler := handlers.NewOrderHandler(
		inventoryRepo,
		organizationRepo,
		renderer,
		dispatcher,
		cfg.App.OrderBaseURL,
	)

	// Start the queue consumer
	consumer := worker.NewConsumer(sqsClient, orderHandler, worker.Config{
		QueueURL:     cfg.Queue.URL,
		WaitTime:     cfg.Queue.WaitTime,
		MaxMessages:  cfg.Queue.MaxMessages,
		BatchTimeout: cfg.Queue.BatchTimeout,
	})
	consumer.Start(context.Background())

	// Ops server
	router := setupRouter(handlers.NewHealthHandler(consumer))
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Starting Order Notification Service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down Order Notification Service...")

	// Stop consuming before the server goes away
	consumer.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Order Notification Service stopped")
}

// initLogging configures logrus and gin for the environment
func initLogging(cfg *config.Config) {
	if cfg.App.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
}

// setupRouter configures the Gin router for the ops endpoints
func setupRouter(healthHandler *handlers.HealthHandler) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	router.GET("/health", healthHandler.Health)
	router.GET("/livez", healthHandler.Livez)
	router.GET("/readyz", healthHandler.Readyz)

	return router
}
