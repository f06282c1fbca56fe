package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/api/handlers"
	"github.com/harshava123/powderlegacy/internal/api/middleware"
	"github.com/harshava123/powderlegacy/internal/cart"
	"github.com/harshava123/powderlegacy/internal/catalog"
	"github.com/harshava123/powderlegacy/internal/checkout"
	"github.com/harshava123/powderlegacy/internal/config"
	"github.com/harshava123/powderlegacy/internal/order"
	"github.com/harshava123/powderlegacy/internal/repository"
)

// Deps carries the wired collaborators the router hands to handlers.
type Deps struct {
	Catalog   catalog.Source
	Carts     *cart.Store
	Notifier  *cart.Notifier
	Pipeline  *checkout.Pipeline
	Finalizer *order.Finalizer
	Repos     repository.Repositories
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Deps, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.SessionMiddleware())

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Powder Legacy Storefront API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/catalog/products",
				"GET /v1/cart",
				"POST /v1/cart/items",
				"GET /v1/checkout",
				"POST /v1/checkout/address",
				"POST /v1/checkout/delivery",
				"POST /v1/checkout/payment",
				"POST /v1/checkout/payment/confirm",
				"GET /payment/callback",
				"GET /v1/orders/:id",
				"GET /v1/admin/orders",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Hosted payment link redirect target; lives outside /v1 because Razorpay
	// calls it with the URL configured at link creation time.
	router.GET("/payment/callback", handlers.HandlePaymentCallback(deps.Finalizer, logger))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/catalog/products", handlers.HandleListProducts(deps.Catalog, logger))
		v1.GET("/catalog/products/:id", handlers.HandleGetProduct(deps.Catalog, logger))

		v1.GET("/cart", handlers.HandleGetCart(deps.Carts, logger))
		v1.POST("/cart/items", handlers.HandleAddCartItem(deps.Carts, deps.Catalog, logger))
		v1.PUT("/cart/items", handlers.HandleUpdateCartItem(deps.Carts, logger))
		v1.DELETE("/cart/items", handlers.HandleRemoveCartItem(deps.Carts, logger))
		v1.DELETE("/cart", handlers.HandleClearCart(deps.Carts, logger))
		v1.GET("/cart/notification", handlers.HandleCartNotification(deps.Notifier))
		v1.DELETE("/cart/notification", handlers.HandleDismissCartNotification(deps.Notifier))

		v1.GET("/checkout", handlers.HandleGetCheckout(deps.Pipeline, logger))
		v1.POST("/checkout/address", handlers.HandleSubmitAddress(deps.Pipeline, logger))
		v1.POST("/checkout/delivery", handlers.HandleSelectDelivery(deps.Pipeline, logger))
		v1.POST("/checkout/payment", handlers.HandleInitiatePayment(deps.Pipeline, logger))
		v1.POST("/checkout/payment/confirm", handlers.HandleConfirmPayment(deps.Finalizer, logger))
		v1.POST("/checkout/payment/abandon", handlers.HandleAbandonPayment(deps.Pipeline, logger))

		v1.GET("/orders/:id", handlers.HandleGetOrder(deps.Repos, logger))
		v1.GET("/orders/:id/invoice", handlers.HandleGetOrderInvoice(deps.Repos, logger))

		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg.AdminAPIKeyHash, logger))
		{
			adminRoutes.GET("/orders", handlers.HandleListOrders(deps.Repos, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
