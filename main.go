package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Kinotsolarpower/Wash-GoPRO/config"
	"github.com/Kinotsolarpower/Wash-GoPRO/controllers"
	"github.com/Kinotsolarpower/Wash-GoPRO/middleware"
	"github.com/Kinotsolarpower/Wash-GoPRO/models"
	"github.com/Kinotsolarpower/Wash-GoPRO/services"
	"github.com/Kinotsolarpower/Wash-GoPRO/utils"
)

func main() {
	log.Println("Starting Wash&Go PRO API server...")

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
		&models.Booking{},
		&models.ServicePackage{},
		&models.Subscription{},
		&models.Setting{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Seed staff accounts, default packages and the surge multiplier
	if err := utils.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Initialize external collaborators
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitPhotoService(s3Service)
	services.InitAIService(cfg)

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all API routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	authenticated := middleware.EnsureValidToken(cfg)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		// Session
		v1.POST("/auth/register", controllers.Register)
		v1.POST("/auth/login", controllers.Login)
		v1.POST("/auth/guest", controllers.Guest)
		v1.GET("/users/me", authenticated, controllers.GetMyProfile)

		// Packages & pricing
		v1.GET("/packages", controllers.ListPackages)
		v1.POST("/packages", authenticated, middleware.RequireRole(models.RoleSuperAdmin), controllers.CreatePackage)
		v1.PUT("/packages/:key", authenticated, middleware.RequireRole(models.RoleSuperAdmin), controllers.UpdatePackage)
		v1.DELETE("/packages/:key", authenticated, middleware.RequireRole(models.RoleSuperAdmin), controllers.DeletePackage)
		v1.GET("/pricing/surge", controllers.GetSurgeMultiplier)
		v1.PUT("/pricing/surge", authenticated, middleware.RequireRole(models.RoleSuperAdmin), controllers.SetSurgeMultiplier)

		// AI analysis
		v1.POST("/analysis", authenticated, controllers.AnalyzeVehicle)

		// Bookings
		v1.POST("/bookings", authenticated, controllers.CreateBooking)
		v1.GET("/bookings", authenticated, middleware.RequireRole(models.RoleAdmin), controllers.ListBookings)
		v1.GET("/bookings/mine", authenticated, controllers.MyBookings)
		v1.GET("/bookings/assigned", authenticated, middleware.RequireRole(models.RoleTechnician), controllers.AssignedBookings)
		v1.PUT("/bookings/:id/confirm", authenticated, middleware.RequireRole(models.RoleAdmin), controllers.ConfirmBooking)
		v1.PUT("/bookings/:id/complete", authenticated, middleware.RequireRole(models.RoleAdmin), controllers.CompleteBooking)
		v1.POST("/bookings/:id/notes", authenticated, middleware.RequireRole(models.RoleTechnician), controllers.AddDamageNote)

		// Subscriptions
		v1.GET("/subscriptions", authenticated, controllers.MySubscriptions)
		v1.PUT("/subscriptions/:id/pause", authenticated, controllers.PauseSubscription)
		v1.PUT("/subscriptions/:id/resume", authenticated, controllers.ResumeSubscription)

		// Support assistant
		v1.GET("/assistant/queries", authenticated, middleware.RequireRole(models.RoleAdmin), controllers.ListQueries)
		v1.POST("/assistant/answer", authenticated, middleware.RequireRole(models.RoleAdmin), controllers.GenerateAnswer)

		// Exports
		v1.GET("/export/bookings.csv", authenticated, middleware.RequireRole(models.RoleAdmin), controllers.ExportBookings)
		v1.GET("/export/users.csv", authenticated, middleware.RequireRole(models.RoleAdmin), controllers.ExportUsers)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Wash&Go PRO API is running",
	})
}
