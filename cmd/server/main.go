package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"tour_travels_backend/internal/cache"
	"tour_travels_backend/internal/database"
	"tour_travels_backend/internal/router"
	"tour_travels_backend/internal/services"
	"tour_travels_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize Logger
	utils.InitLogger()

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "tour_travels_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "tour_travels_password")
	dbName := utils.Getenv("DB_NAME", "tour_travels_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	// Initialize Database
	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	// Initialize Redis cache. A failed ping is logged but does not stop the
	// server; every cached read falls back to the database.
	redisAddr := utils.Getenv("REDIS_ADDR", "localhost:6379")
	redisPassword := utils.Getenv("REDIS_PASSWORD", "")
	redisDB := utils.GetenvInt("REDIS_DB", 0)
	cacheClient := cache.New(redisAddr, redisPassword, redisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		utils.LogWarn(err, "Redis unavailable, serving without cache hits")
	}
	defer cacheClient.Close()

	// JWT secret for validating admin tokens issued by the auth service.
	utils.SetJWTSecret(utils.Getenv("JWT_SECRET", "change-me-in-production"))

	// Email notifications via SES, or a log-only mailer when disabled.
	var mailer services.MailerService
	if utils.GetenvBool("EMAIL_ENABLED", false) {
		sesClient, err := services.NewSESClient(context.Background(), utils.Getenv("AWS_REGION", "us-east-1"))
		if err != nil {
			log.Fatalf("Failed to create SES client: %v", err)
		}
		mailer = services.NewMailerService(
			sesClient,
			utils.Getenv("EMAIL_FROM", "noreply@tourtravels.example"),
			utils.Getenv("EMAIL_ADMIN", "admin@tourtravels.example"),
		)
	} else {
		mailer = services.NewLogMailer()
		utils.LogInfo("Email disabled, notifications will only be logged", nil)
	}

	// Background dispatcher for notification sends.
	dispatcher := services.NewDispatcher(
		utils.GetenvInt("NOTIFY_WORKERS", 4),
		utils.GetenvInt("NOTIFY_QUEUE_SIZE", 64),
	)
	defer dispatcher.Stop()

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	dbConn := database.GetDB()
	router.Setup(engine, dbConn, cacheClient, mailer, dispatcher)

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
