package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/buynic/storefront-api/config"
	"github.com/buynic/storefront-api/controllers"
	"github.com/buynic/storefront-api/middleware"
	"github.com/buynic/storefront-api/models"
	"github.com/buynic/storefront-api/services"
)

func main() {
	log.Println("Starting Buynic storefront API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.Address{},
		&models.Review{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := config.EnsurePendingOrderIndex(db); err != nil {
		log.Fatalf("Failed to create database indexes: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize services
	services.InitEmailService(cfg)
	services.InitRealtimeBroker()
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set, image storage disabled")
	}

	router := setupRouter(cfg, middleware.EnsureValidToken(cfg))

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all API routes attached. The auth
// middleware is injected so tests can swap the Auth0 validator out.
func setupRouter(cfg *config.Config, auth gin.HandlerFunc) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Public catalog
		v1.GET("/products", controllers.ListProducts)
		v1.GET("/products/:product_id", controllers.GetProduct)
		v1.GET("/products/:product_id/reviews", controllers.ListReviews)
		v1.GET("/realtime/products", controllers.StreamProductChanges)
		v1.POST("/contact", controllers.SubmitContactForm)

		// Authenticated customer routes
		v1.POST("/users", auth, controllers.CreateUser)
		v1.GET("/users/me", auth, controllers.GetCurrentUser)
		v1.GET("/addresses", auth, controllers.ListMyAddresses)
		v1.GET("/checkout/begin", auth, controllers.BeginCheckout)
		v1.POST("/orders", auth, controllers.PlaceOrder)
		v1.GET("/orders", auth, controllers.ListMyOrders)
		v1.DELETE("/orders/:id", auth, controllers.CancelMyOrder)
		v1.POST("/products/:product_id/reviews", auth, controllers.CreateReview)

		// Operator console
		admin := v1.Group("/admin", auth)
		{
			admin.GET("/orders", controllers.ListAllOrders)
			admin.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
			admin.POST("/products", controllers.CreateProduct)
			admin.PUT("/products/:product_id", controllers.UpdateProduct)
			admin.DELETE("/products/:product_id", controllers.DeleteProduct)
			admin.POST("/uploads", controllers.UploadImage)
			admin.GET("/realtime/orders", controllers.StreamOrderChanges)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Buynic storefront API is running",
	})
}
