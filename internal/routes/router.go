package routes

import (
	"net/http"

	"logitrack/internal/config"
	"logitrack/internal/delivery/http/handler"
	"logitrack/internal/infrastructure/database/postgres"
	"logitrack/internal/logger"
	"logitrack/internal/middleware"
	"logitrack/internal/usecase/auth"
	"logitrack/internal/usecase/driver"
	"logitrack/internal/usecase/shipment"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires repositories, services and handlers onto the Gin
// engine. Returns the engine and the auth service so main can hand the
// latter to the cleanup job.
func SetupRoutes(cfg *config.Config, db *postgres.DB) (*gin.Engine, *auth.Service) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := postgres.NewUserRepository(db)
	refreshTokenRepository := postgres.NewRefreshTokenRepository(db)
	shipmentRepository := postgres.NewShipmentRepository(db)

	authService := auth.NewService(userRepository, refreshTokenRepository, cfg)
	authHandler := handler.NewAuthHandler(authService, cfg)

	shipmentService := shipment.NewService(shipmentRepository, userRepository)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)

	driverService := driver.NewService(userRepository)
	driverHandler := handler.NewDriverHandler(driverService)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		shipmentHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			// Role scoping inside shipments varies per operation; the
			// authorization guard in the service layer owns those rules.
			shipmentHandler.RegisterProtectedRoutes(protected)

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				driverHandler.RegisterAdminRoutes(admin)
			}

			drivers := protected.Group("")
			drivers.Use(middleware.DriverOnly())
			{
				driverHandler.RegisterDriverRoutes(drivers)
			}
		}
	}

	logger.Info("All routes initialized")
	return router, authService
}
