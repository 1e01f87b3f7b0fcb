package router

import (
	"database/sql"

	"tour_travels_backend/internal/cache"
	"tour_travels_backend/internal/handlers"
	"tour_travels_backend/internal/repositories"
	"tour_travels_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cacheClient *cache.Client, mailer services.MailerService, dispatcher *services.Dispatcher) {
	// Initialize Repositories
	inquiryRepo := repositories.NewInquiryRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	// Initialize Services
	inquiryService := services.NewInquiryService(inquiryRepo, db, cacheClient, mailer, dispatcher)
	reviewService := services.NewReviewService(reviewRepo, db, cacheClient)

	// Initialize Handlers
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	apiV1 := engine.Group("/api/v1")

	// Public routes: inquiry submission and the visitor-facing review surface.
	SetupPublicInquiryRoutes(apiV1, inquiryHandler)
	SetupPublicReviewRoutes(apiV1, reviewHandler)

	// Admin routes require a valid token with the admin role.
	SetupAdminInquiryRoutes(apiV1, inquiryHandler)
	SetupAdminReviewRoutes(apiV1, reviewHandler)
}
