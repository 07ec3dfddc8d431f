package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Cooldy-Wong/Navihive/pkg/navihive/auth"
	"github.com/Cooldy-Wong/Navihive/pkg/navihive/configs"
	"github.com/Cooldy-Wong/Navihive/pkg/navihive/database"
	"github.com/Cooldy-Wong/Navihive/pkg/navihive/groups"
	"github.com/Cooldy-Wong/Navihive/pkg/navihive/importexport"
	"github.com/Cooldy-Wong/Navihive/pkg/navihive/models"
	"github.com/Cooldy-Wong/Navihive/pkg/navihive/sites"
)

// @title NaviHive API
// @version 1.0
// @description A personal bookmark dashboard: ordered groups of sites with drag reordering and JSON import/export.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	// Get database path from environment or use default
	dbPath := os.Getenv("NAVIHIVE_DB_PATH")
	if dbPath == "" {
		dbPath = "navihive.db"
	}

	// Connect to database
	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Create default admin user if no admin exists
	if err := ensureAdminExists(); err != nil {
		log.Fatalf("Failed to ensure admin user exists: %v", err)
	}

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "navihive",
			})
		})

		// Auth routes (public)
		authHandler := auth.NewHandler(database.GetDB())
		authHandler.RegisterRoutes(api.Group("/auth"))

		protected := api.Group("", auth.AuthMiddleware())

		// Groups routes
		groupsHandler := groups.NewHandler(database.GetDB())
		groupsHandler.RegisterRoutes(protected)

		// Sites routes
		sitesHandler := sites.NewHandler(database.GetDB())
		sitesHandler.RegisterRoutes(protected)

		// Config routes
		configsHandler := configs.NewHandler(database.GetDB())
		configsHandler.RegisterRoutes(protected)

		// Import/Export routes
		importExportHandler := importexport.NewHandler(database.GetDB())
		importExportHandler.RegisterRoutes(protected)
	}

	// Serve static frontend files if web/dist exists
	webDistPath := "./web/dist"
	if _, err := os.Stat(webDistPath); err == nil {
		r.Static("/assets", filepath.Join(webDistPath, "assets"))
		r.StaticFile("/favicon.ico", filepath.Join(webDistPath, "favicon.ico"))

		// SPA fallback - serve index.html for frontend routes
		indexHTML := filepath.Join(webDistPath, "index.html")
		for _, route := range []string{"/", "/login", "/settings"} {
			r.GET(route, func(c *gin.Context) {
				c.File(indexHTML)
			})
		}

		log.Println("Serving frontend from ./web/dist")
	} else {
		log.Println("No frontend build found at ./web/dist - API only mode")
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting NaviHive server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminExists creates a default admin user if no admin exists in the
// database, so a fresh install is immediately usable.
func ensureAdminExists() error {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.User{}).Where("system_role = ?", models.SystemRoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := auth.HashPassword("changeme")
	if err != nil {
		return err
	}

	adminUser := models.User{
		Username:     "admin",
		PasswordHash: hashedPassword,
		SystemRole:   models.SystemRoleAdmin,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Printf("Created default admin user: admin (password: changeme)")
	return nil
}
