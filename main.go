// File: padelwatch/main.go
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"padelwatch/config"
	"padelwatch/cron"
	"padelwatch/database"
	snapshotRepo "padelwatch/database/repository/snapshot"
	subscriptionRepo "padelwatch/database/repository/subscription"
	"padelwatch/handlers"
	"padelwatch/middleware"
	"padelwatch/models"
	"padelwatch/routes"
	"padelwatch/services/arenal"
	"padelwatch/services/monitor"
	"padelwatch/services/notification"
	"padelwatch/services/query"
	"padelwatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	once := flag.Bool("once", false, "run a single monitor cycle and exit")
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitQueryCache()

	// repositories.
	snapshots := snapshotRepo.NewMongoSnapshotRepo()
	subscriptions := subscriptionRepo.NewMongoSubscriptionRepo()

	// services.
	normalizer, err := monitor.NewNormalizer(models.DefaultCourts(), config.AppConfig.Timezone)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize normalizer: %v", err)
	}
	fetcher := arenal.NewHTTPClient()
	notifier := notification.NewMailNotificationService()

	monitorService := &monitor.DefaultMonitorService{
		Subscriptions: subscriptions,
		Snapshots:     snapshots,
		Fetcher:       fetcher,
		Normalizer:    normalizer,
		Notifier:      notifier,
		NotifyOnce:    config.AppConfig.NotifyOnce,
	}

	if *once {
		// Single-shot mode for external schedulers and debugging.
		if err := monitorService.RunCycle(context.Background()); err != nil {
			logger.Sugar().Fatalf("main: monitor cycle failed: %v", err)
		}
		return
	}

	queryService := &query.DefaultQueryService{
		Fetcher:    fetcher,
		Normalizer: normalizer,
		Cache:      &query.RedisSnapshotCache{Client: utils.GetQueryCacheClient()},
		TTL:        24 * time.Hour,
	}

	availabilityHandler := handlers.NewAvailabilityHandler(queryService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptions)
	monitorHandler := handlers.NewMonitorHandler(monitorService)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CheckAvailabilityHandler:  availabilityHandler.CheckAvailabilityHandler,
		CreateSubscriptionHandler: subscriptionHandler.CreateSubscriptionHandler,
		ListSubscriptionsHandler:  subscriptionHandler.ListSubscriptionsHandler,
		DeleteSubscriptionHandler: subscriptionHandler.DeleteSubscriptionHandler,
		RunMonitorHandler:         monitorHandler.RunMonitorHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the periodic monitor worker and health checks.
	cron.InitMonitorWorker(monitorService)
	utils.StartHealthMonitor([]*redis.Client{utils.GetQueryCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
