package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/api/handlers"
	"github.com/phonestore/storefront/internal/api/middleware"
	"github.com/phonestore/storefront/internal/config"
	"github.com/phonestore/storefront/internal/metrics"
	"github.com/phonestore/storefront/internal/session"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps handlers.Deps, sessions *session.Manager, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics(m))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Catalog routes are public and need no session
		v1.GET("/search/suggestions", handlers.HandleSearchSuggestions(deps.Catalog, logger))
		v1.GET("/products", handlers.HandleListProducts(deps.Catalog, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(deps.Catalog, logger))
		v1.GET("/products/:id/ratings", handlers.HandleListRatings(deps.Catalog, logger))
		v1.GET("/installments/plans", handlers.HandleListPlans(deps.Installments, logger))
		v1.POST("/installments/quote", handlers.HandleQuote(deps.Installments, logger))

		// Visitor routes resolve or start a session
		visitor := v1.Group("")
		visitor.Use(middleware.SessionMiddleware(sessions, cfg.Session.TTL, cfg.Environment == "production", logger))
		{
			visitor.POST("/auth/login", handlers.HandleLogin(deps.Account, logger))
			visitor.POST("/auth/register", handlers.HandleRegister(deps.Account, logger))
			visitor.POST("/auth/logout", handlers.HandleLogout(deps.Account, logger))

			visitor.GET("/profile", handlers.HandleGetProfile(deps.Account, logger))
			visitor.PUT("/profile", handlers.HandleUpdateProfile(deps.Account, logger))
			visitor.POST("/profile/password", handlers.HandleChangePassword(deps.Account, logger))

			visitor.POST("/products/:id/ratings", handlers.HandleSubmitRating(deps.Catalog, logger))

			visitor.GET("/cart", handlers.HandleGetCart(deps.Cart, logger))
			visitor.POST("/cart/items", handlers.HandleAddCartItem(deps.Cart, logger))
			visitor.PATCH("/cart/items/:id", handlers.HandleUpdateCartItem(deps.Cart, logger))
			visitor.DELETE("/cart/items/:id", handlers.HandleRemoveCartItem(deps.Cart, logger))

			visitor.GET("/addresses", handlers.HandleListAddresses(deps.Account, logger))
			visitor.POST("/addresses", handlers.HandleCreateAddress(deps.Account, logger))
			visitor.DELETE("/addresses/:id", handlers.HandleDeleteAddress(deps.Account, logger))
			visitor.POST("/addresses/:id/default", handlers.HandleSetDefaultAddress(deps.Account, logger))

			visitor.GET("/checkout", handlers.HandleCheckoutSummary(deps.Orders, logger))
			visitor.POST("/checkout", handlers.HandleCheckout(deps.Orders, logger))
			visitor.GET("/orders", handlers.HandleListOrders(deps.Orders, logger))
			visitor.GET("/orders/:code", handlers.HandleGetOrder(deps.Orders, logger))

			visitor.GET("/payments/:code/status", handlers.HandlePaymentStatus(deps.Payments, logger))
			visitor.GET("/payments/:code/await", handlers.HandleAwaitPayment(deps.Payments, logger))

			visitor.POST("/installments/applications", handlers.HandleApply(deps.Installments, logger))
			visitor.POST("/identity/cccd", handlers.HandleVerifyIdentity(deps.Identity, deps.IdentityMaxBytes, logger))
		}
	}

	return router
}
