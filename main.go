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

	"github.com/pingwise/clinic-api/audit"
	"github.com/pingwise/clinic-api/config"
	"github.com/pingwise/clinic-api/controller"
	"github.com/pingwise/clinic-api/dao"
	"github.com/pingwise/clinic-api/db"
	"github.com/pingwise/clinic-api/gateway"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/router"
	"github.com/pingwise/clinic-api/service"
	"github.com/pingwise/clinic-api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize MongoDB. When the database is unreachable the server
	// stays up on a seeded in-memory store so the dashboard remains
	// usable in demos and local development.
	daos := initDAOs()
	defer db.CloseMongo()

	// Initialize Redis. Cache misses degrade to direct reads, so a
	// missing Redis is a warning, not a startup failure.
	if err := db.InitRedis(); err != nil {
		logger.Warn("Redis unavailable, continuing without entity cache", zap.Error(err))
	} else {
		defer db.CloseRedis()
	}

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize utilities and the activity log
	validationUtil := util.NewValidationUtil()
	cacheService := util.NewCacheService()
	notificationService := util.NewNotificationService()

	var auditService audit.Service
	if esURL := config.GetString("elasticsearch.url"); esURL != "" {
		auditRepository, err := audit.NewElasticsearchRepository(esURL)
		if err != nil {
			logger.Warn("Elasticsearch unavailable, activity logging disabled", zap.Error(err))
		} else {
			auditService = audit.NewService(auditRepository)
		}
	}

	// Initialize the CRM gateway client
	var gatewayClient *gateway.Client
	if baseURL := config.GetString("crm.baseURL"); baseURL != "" {
		gatewayClient = gateway.NewClient(gateway.Config{
			BaseURL:       baseURL,
			ProxyURL:      config.GetString("crm.proxyURL"),
			APIKey:        config.GetString("crm.apiKey"),
			LoginTimeout:  config.GetDuration("crm.loginTimeout"),
			HealthTimeout: config.GetDuration("crm.healthTimeout"),
		})
	} else {
		logger.Warn("No CRM gateway configured, gateway-backed features disabled")
	}

	// Initialize services
	services := service.InitializeServices(
		daos,
		gatewayClient,
		auditService,
		validationUtil,
		cacheService,
		notificationService,
		eventBus,
	)

	// Initialize controllers
	controllers, err := controller.InitializeControllers(services)
	if err != nil {
		logger.Fatal("Failed to initialize controllers", zap.Error(err))
	}

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(
		controllers,
		config.GetInt("ratelimit.requests"),
		config.GetDuration("ratelimit.window"),
	)

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

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

// initDAOs connects to MongoDB, or falls back to the in-memory store.
func initDAOs() service.DAOs {
	if err := db.InitMongo(); err != nil {
		logger.Warn("MongoDB unavailable, falling back to in-memory mock store", zap.Error(err))
		mock := dao.NewMockStore()
		return service.DAOs{
			Patient:     mock,
			Appointment: mock,
			Team:        mock,
			Campaign:    mock,
			User:        mock,
		}
	}

	return service.DAOs{
		Patient:     dao.NewPatientDAO(),
		Appointment: dao.NewAppointmentDAO(),
		Team:        dao.NewTeamDAO(),
		Campaign:    dao.NewCampaignDAO(),
		User:        dao.NewUserDAO(),
	}
}
