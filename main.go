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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/f4lcon-tech/aqari/api/config"
	"github.com/f4lcon-tech/aqari/api/controller"
	"github.com/f4lcon-tech/aqari/api/db"
	logger "github.com/f4lcon-tech/aqari/api/logging"
	"github.com/f4lcon-tech/aqari/api/middleware"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/router"
	"github.com/f4lcon-tech/aqari/api/service"
	"github.com/f4lcon-tech/aqari/api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Postgres
	if err := db.InitPostgres(); err != nil {
		logger.Fatal("Failed to initialize Postgres", zap.Error(err))
	}
	defer db.ClosePostgres()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize DAOs and services
	cacheService := util.NewCacheService()
	daos := service.InitializeDAOs(db.PostgresDB)
	services := service.InitializeServices(db.PostgresDB, daos, eventBus, cacheService)

	// Audit records flow through the bus so the primary request never
	// waits on the trail.
	eventBus.Subscribe(util.EventMutationRecorded, func(ctx context.Context, event util.Event) error {
		record, ok := event.Payload.(model.AuditRecord)
		if !ok {
			return nil
		}
		return services.Audit.Record(ctx, record)
	})
	eventBus.Subscribe(util.EventSystemEvent, services.Telemetry.HandleBusEvent)

	// Initialize controllers
	controllers := controller.InitializeControllers(services)
	auditRecorder := middleware.NewAuditRecorder(daos.Resource, eventBus)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, services, daos, auditRecorder, 100, time.Minute)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
