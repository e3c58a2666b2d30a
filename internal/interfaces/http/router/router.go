// Package router wires gin routes and middleware for the storefront API.
package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// Handlers collects the handlers the router mounts
type Handlers struct {
	System          *handler.SystemHandler
	Auth            *handler.AuthHandler
	Customer        *handler.CustomerHandler
	Cart            *handler.CartHandler
	Checkout        *handler.CheckoutHandler
	PaymentCallback *handler.PaymentCallbackHandler
	Order           *handler.OrderHandler
	Shipment        *handler.ShipmentHandler
	Promo           *handler.PromoHandler
	Product         *handler.ProductHandler
	Bundle          *handler.BundleHandler
	Review          *handler.ReviewHandler
	Blog            *handler.BlogHandler
	Media           *handler.MediaHandler
}

// Config holds router dependencies
type Config struct {
	Handlers         Handlers
	JWTService       *auth.JWTService
	Logger           *zap.Logger
	CORSAllowOrigins []string
	ServiceName      string
	TracingEnabled   bool
}

// New builds the gin engine with all middleware and routes registered
func New(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.CORSAllowOrigins))
	if cfg.TracingEnabled {
		engine.Use(otelgin.Middleware(cfg.ServiceName))
	}

	h := cfg.Handlers

	engine.GET("/healthz", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	// auth endpoints, no token required
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	// gateway callbacks, authenticated by signature instead of JWT
	payments := api.Group("/payments")
	{
		payments.POST("/razorpay/callback", h.PaymentCallback.HandleRazorpayCallback)
		payments.POST("/payu/callback", h.PaymentCallback.HandlePayUCallback)
	}

	// storefront reads work anonymously; a valid admin token reveals
	// inactive products and draft posts
	public := api.Group("")
	public.Use(middleware.OptionalJWTAuthMiddleware(cfg.JWTService))
	{
		public.GET("/products", h.Product.List)
		public.GET("/products/:slug", h.Product.GetBySlug)
		public.GET("/bundles", h.Bundle.List)
		public.GET("/bundles/:slug", h.Bundle.GetBySlug)
		public.GET("/bundles/:slug/quote", h.Bundle.Quote)
		public.GET("/blog", h.Blog.List)
		public.GET("/blog/:slug", h.Blog.GetBySlug)
	}

	// review reads are keyed by product ID rather than slug
	reviewReads := api.Group("/catalog/products/:id/reviews")
	{
		reviewReads.GET("", h.Review.ListForProduct)
		reviewReads.GET("/summary", h.Review.Summary)
	}

	// customer endpoints require a valid token
	private := api.Group("")
	private.Use(middleware.JWTAuthMiddleware(cfg.JWTService, cfg.Logger))
	{
		private.GET("/me", h.Customer.GetProfile)
		private.PUT("/me", h.Customer.UpdateProfile)
		private.GET("/me/readiness", h.Customer.Readiness)
		private.POST("/me/addresses", h.Customer.AddAddress)
		private.PUT("/me/addresses/:id", h.Customer.UpdateAddress)
		private.DELETE("/me/addresses/:id", h.Customer.RemoveAddress)
		private.POST("/me/addresses/:id/default", h.Customer.SetDefaultAddress)

		private.GET("/cart", h.Cart.Get)
		private.DELETE("/cart", h.Cart.Clear)
		private.POST("/cart/items", h.Cart.AddItem)
		private.PUT("/cart/items/:id", h.Cart.UpdateItem)
		private.DELETE("/cart/items/:id", h.Cart.RemoveItem)

		private.POST("/promos/check", h.Promo.Check)
		private.GET("/promos/suggestions", h.Promo.Suggestions)

		private.GET("/checkout/quote", h.Checkout.Quote)
		private.POST("/checkout/place-order", h.Checkout.PlaceOrder)

		private.GET("/orders", h.Order.ListMine)
		private.GET("/orders/:id", h.Order.GetMine)
		private.GET("/orders/number/:number", h.Order.GetByNumber)
		private.POST("/orders/:id/cancel", h.Order.Cancel)
		private.GET("/orders/:id/shipment", h.Shipment.TrackByOrder)

		private.POST("/catalog/products/:id/reviews", h.Review.Submit)
	}

	// admin endpoints require the admin role
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTService, cfg.Logger))
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/products", h.Product.AdminCreate)
		admin.PUT("/products/:id", h.Product.AdminUpdate)
		admin.DELETE("/products/:id", h.Product.AdminDelete)
		admin.POST("/products/:id/variants", h.Product.AdminAddVariant)
		admin.DELETE("/products/:id/variants/:variant_id", h.Product.AdminRemoveVariant)
		admin.POST("/products/:id/images", h.Product.AdminAddImage)

		admin.POST("/bundles", h.Bundle.AdminCreate)
		admin.PUT("/bundles/:id/active", h.Bundle.AdminSetActive)
		admin.DELETE("/bundles/:id", h.Bundle.AdminDelete)

		admin.GET("/promos", h.Promo.AdminList)
		admin.POST("/promos", h.Promo.AdminCreate)
		admin.GET("/promos/:id", h.Promo.AdminGet)
		admin.PUT("/promos/:id", h.Promo.AdminUpdate)
		admin.DELETE("/promos/:id", h.Promo.AdminDelete)

		admin.GET("/orders", h.Order.AdminList)
		admin.GET("/orders/:id", h.Order.AdminGet)
		admin.POST("/orders/:id/delivered", h.Order.AdminMarkDelivered)

		admin.GET("/shipments", h.Shipment.AdminList)
		admin.POST("/shipments", h.Shipment.AdminCreate)
		admin.GET("/shipments/:id", h.Shipment.AdminGet)
		admin.POST("/shipments/:id/label", h.Shipment.AdminGenerateLabel)
		admin.POST("/shipments/:id/pickup", h.Shipment.AdminSchedulePickup)
		admin.POST("/shipments/:id/track", h.Shipment.AdminTrack)

		admin.GET("/reviews/pending", h.Review.AdminListPending)
		admin.POST("/reviews/:id/moderate", h.Review.AdminModerate)
		admin.DELETE("/reviews/:id", h.Review.AdminDelete)

		admin.GET("/blog", h.Blog.AdminList)
		admin.POST("/blog", h.Blog.AdminCreate)
		admin.PUT("/blog/:id", h.Blog.AdminUpdate)
		admin.PUT("/blog/:id/published", h.Blog.AdminSetPublished)
		admin.DELETE("/blog/:id", h.Blog.AdminDelete)

		if h.Media != nil {
			admin.POST("/media/upload-url", h.Media.RequestUploadURL)
			admin.DELETE("/media", h.Media.Delete)
		}
	}

	return engine
}
