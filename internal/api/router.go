package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/api/handlers"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/api/middleware"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/config"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/repository"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, gateway service.PaymentsGateway, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logging(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/products", handlers.HandleListProducts(gateway, logger))
		v1.POST("/shipping/quote", handlers.HandleShippingQuote(logger))
		v1.POST("/checkout", handlers.HandleCreateCheckout(cfg, gateway, logger))
		v1.GET("/orders/session/:session_id", handlers.HandleGetOrderBySession(repos, gateway, logger))

		herbs := v1.Group("/herbs")
		{
			herbs.GET("", handlers.HandleSearchHerbs(repos, logger))
			herbs.GET("/actions", handlers.HandleListHerbActions(repos, logger))
			herbs.GET("/preparations", handlers.HandleListHerbPreparations(repos, logger))
			herbs.GET("/:id", handlers.HandleGetHerb(repos, logger))
		}

		// Admin routes (require an admin API key)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			adminRoutes.GET("/customers", handlers.HandleListCustomers(gateway, logger))
			adminRoutes.GET("/customers/stats", handlers.HandleCustomerStats(gateway, logger))
			adminRoutes.GET("/orders", handlers.HandleListOrders(repos, gateway, logger))
			adminRoutes.PATCH("/orders/:id", handlers.HandleUpdateOrderStatus(repos, gateway, logger))
			adminRoutes.GET("/refunds", handlers.HandleListRefunds(gateway, logger))
			adminRoutes.POST("/refunds", handlers.HandleCreateRefund(gateway, logger))
		}
	}

	return router
}
