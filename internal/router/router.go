// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/config"
	"github.com/spicekart/backoffice/internal/events"
	"github.com/spicekart/backoffice/internal/handlers"
	"github.com/spicekart/backoffice/internal/middleware"
	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, publisher events.Publisher) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	notificationService := services.NewNotificationService(db, publisher)
	mailer := services.NewSMTPMailer(&cfg.Email)

	storeService := services.NewStoreService(db)
	categoryService := services.NewCategoryService(db, storageService)
	subcategoryService := services.NewSubcategoryService(db, storageService)
	productService := services.NewProductService(db, storageService)
	subproductService := services.NewSubproductService(db, storageService)
	orderService := services.NewOrderService(db, notificationService)
	analyticsService := services.NewAnalyticsService(db)
	authService := services.NewAuthService(db, mailer, cfg)
	clientService := services.NewClientService(db)
	reviewService := services.NewReviewService(db)
	userService := services.NewUserService(db, cfg)

	// Initialize handlers
	storeHandler := handlers.NewStoreHandler(storeService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	subcategoryHandler := handlers.NewSubcategoryHandler(subcategoryService)
	productHandler := handlers.NewProductHandler(productService)
	subproductHandler := handlers.NewSubproductHandler(subproductService)
	orderHandler := handlers.NewOrderHandler(orderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(clientService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	userHandler := handlers.NewUserHandler(userService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Client authentication
		auth := api.Group("")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/verify", authHandler.Verify)
		}

		// Client profile, address book and reviews
		client := api.Group("/client/:clientId")
		client.Use(middleware.ClientAuthRequired())
		{
			client.GET("", clientHandler.GetClient)
			client.PATCH("", clientHandler.UpdateClient)

			client.GET("/address", clientHandler.GetAddresses)
			client.POST("/address", clientHandler.CreateAddress)
			client.GET("/address/:id", clientHandler.GetAddress)
			client.PATCH("/address/:id", clientHandler.UpdateAddress)
			client.DELETE("/address/:id", clientHandler.DeleteAddress)

			client.GET("/review", clientHandler.GetReviews)
			client.POST("/review", clientHandler.CreateReview)
			client.DELETE("/review/:id", clientHandler.DeleteReview)
		}

		// Dashboard user management
		users := api.Group("/users")
		{
			users.POST("/login", middleware.AuthRateLimit(), userHandler.Login)

			protected := users.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.GET("", userHandler.GetUsers)
				protected.POST("", userHandler.CreateUser)
				protected.GET("/:id", userHandler.GetUser)
				protected.PATCH("/:id", userHandler.UpdateUser)
				protected.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Store directory
		api.GET("/store", storeHandler.GetStores)
		api.POST("/store", middleware.AuthRequired(), middleware.AdminRequired(), storeHandler.CreateStore)

		// Store-scoped routes; :storeId is the public slug
		store := api.Group("/:storeId")
		store.Use(middleware.StoreScope(storeService))
		{
			store.GET("", storeHandler.GetStore)

			admin := store.Group("")
			admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				admin.PATCH("", storeHandler.UpdateStore)
				admin.DELETE("", storeHandler.DeleteStore)

				admin.POST("/category", categoryHandler.CreateCategory)
				admin.PATCH("/category/:id", categoryHandler.UpdateCategory)
				admin.DELETE("/category/:id", categoryHandler.DeleteCategory)

				admin.POST("/subcategory", subcategoryHandler.CreateSubcategory)
				admin.PATCH("/subcategory/:id", subcategoryHandler.UpdateSubcategory)
				admin.DELETE("/subcategory/:id", subcategoryHandler.DeleteSubcategory)

				admin.POST("/product", productHandler.CreateProduct)
				admin.PATCH("/product/:id", productHandler.UpdateProduct)
				admin.DELETE("/product/:id", productHandler.DeleteProduct)

				admin.POST("/subproduct", subproductHandler.CreateSubproduct)
				admin.PATCH("/subproduct/:id", subproductHandler.UpdateSubproduct)
				admin.DELETE("/subproduct/:id", subproductHandler.DeleteSubproduct)

				admin.GET("/order", orderHandler.GetOrders)
				admin.GET("/order/:id", orderHandler.GetOrder)
				admin.PATCH("/order/:id", orderHandler.UpdateOrder)
				admin.DELETE("/order/:id", orderHandler.DeleteOrder)

				admin.GET("/notifications", notificationHandler.GetNotifications)
				admin.POST("/notifications", notificationHandler.CreateNotification)
				admin.PATCH("/notifications/:id/read", notificationHandler.MarkNotificationRead)
				admin.DELETE("/notifications/:id", notificationHandler.DeleteNotification)

				admin.GET("/reviews", reviewHandler.GetReviews)
				admin.DELETE("/reviews/:id", reviewHandler.DeleteReview)

				admin.GET("/analytics/dashboard", analyticsHandler.GetDashboard)
				admin.GET("/analytics/revenue", analyticsHandler.GetMonthlyRevenue)

				admin.POST("/uploads", middleware.UploadRateLimit(), uploadHandler.UploadImages)
				admin.DELETE("/uploads", uploadHandler.DeleteImages)
			}

			// Public catalog reads and order submission
			store.GET("/category", categoryHandler.GetCategories)
			store.GET("/category/:id", categoryHandler.GetCategory)
			store.GET("/subcategory", subcategoryHandler.GetSubcategories)
			store.GET("/subcategory/:id", subcategoryHandler.GetSubcategory)
			store.GET("/product", productHandler.GetProducts)
			store.GET("/product/:id", productHandler.GetProduct)
			store.GET("/subproduct", subproductHandler.GetSubproducts)
			store.GET("/subproduct/:id", subproductHandler.GetSubproduct)
			store.POST("/order", orderHandler.CreateOrder)
		}
	}

	return r
}
