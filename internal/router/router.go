package router

import (
	"github.com/belanjaku/belanjaku-backend/config"
	"github.com/belanjaku/belanjaku-backend/internal/app/controller"
	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController      *controller.AuthController
	productController   *controller.ProductController
	cartController      *controller.CartController
	orderController     *controller.OrderController
	paymentController   *controller.PaymentController
	reviewController    *controller.ReviewController
	wishlistController  *controller.WishlistController
	dashboardController *controller.DashboardController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	paymentController *controller.PaymentController,
	reviewController *controller.ReviewController,
	wishlistController *controller.WishlistController,
	dashboardController *controller.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		productController:   productController,
		cartController:      cartController,
		orderController:     orderController,
		paymentController:   paymentController,
		reviewController:    reviewController,
		wishlistController:  wishlistController,
		dashboardController: dashboardController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "BELANJAKU API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/:id", r.productController.GetProductByID)
			products.GET("/:id/reviews", r.reviewController.GetProductReviews)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.productController.DeleteProduct,
			)
			products.POST("/:id/discounts",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.productController.CreateDiscount,
			)
		}

		v1.DELETE("/discounts/:id",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(model.RoleAdmin),
			r.productController.DeleteDiscount,
		)

		categories := v1.Group("/categories")
		{
			categories.GET("", r.productController.GetCategories)
			categories.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.productController.CreateCategory,
			)
			categories.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.productController.UpdateCategory,
			)
			categories.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.productController.DeleteCategory,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.GET("/checkout", r.cartController.CheckoutPreview)
			cart.POST("/items", r.cartController.AddToCart)
			cart.PUT("/items/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/items/:id", r.cartController.RemoveCartItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.POST("", r.orderController.Checkout)
			orders.POST("/:id/cancel", r.orderController.CancelOrder)
			orders.POST("/:id/payment-proof", r.paymentController.UploadProof)
			orders.GET("/:id/payment", r.paymentController.GetPayment)

			orders.PUT("/:id/status",
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.orderController.UpdateOrderStatus,
			)
			orders.POST("/:id/payment-review",
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.paymentController.ReviewProof,
			)
		}

		v1.GET("/admin/orders",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(model.RoleAdmin),
			r.orderController.ListOrders,
		)

		reviews := v1.Group("/reviews")
		reviews.Use(r.authMiddleware.Authenticate())
		{
			reviews.POST("", r.reviewController.CreateReview)
			reviews.GET("/me", r.reviewController.GetMyReviews)
			reviews.PUT("/:id", r.reviewController.UpdateReview)
			reviews.DELETE("/:id", r.reviewController.DeleteReview)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(r.authMiddleware.Authenticate())
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("", r.wishlistController.AddToWishlist)
			wishlist.POST("/toggle", r.wishlistController.ToggleWishlist)
			wishlist.DELETE("/:productId", r.wishlistController.RemoveFromWishlist)
		}

		dashboard := v1.Group("/dashboard")
		dashboard.Use(r.authMiddleware.Authenticate())
		{
			dashboard.GET("", r.dashboardController.GetCustomerDashboard)
			dashboard.GET("/admin",
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.dashboardController.GetAdminDashboard,
			)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
