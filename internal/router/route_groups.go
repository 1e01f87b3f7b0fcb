package router

import (
	"tour_travels_backend/internal/handlers"
	"tour_travels_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPublicInquiryRoutes sets up the inquiry routes that need no authentication.
func SetupPublicInquiryRoutes(apiGroup *gin.RouterGroup, inquiryHandler *handlers.InquiryHandler) {
	inquiryRoutes := apiGroup.Group("/inquiries")
	{
		inquiryRoutes.POST("", inquiryHandler.CreateInquiry)
	}
}

// SetupPublicReviewRoutes sets up the review routes that need no authentication.
func SetupPublicReviewRoutes(apiGroup *gin.RouterGroup, reviewHandler *handlers.ReviewHandler) {
	reviewRoutes := apiGroup.Group("/reviews")
	{
		reviewRoutes.POST("", reviewHandler.CreateReview)
		reviewRoutes.GET("/approved", reviewHandler.GetApprovedReviews)
		reviewRoutes.GET("/featured", reviewHandler.GetFeaturedReviews)
		reviewRoutes.GET("/by-destination", reviewHandler.GetReviewsByDestination)
	}
}

// SetupAdminInquiryRoutes sets up the inquiry management routes.
func SetupAdminInquiryRoutes(apiGroup *gin.RouterGroup, inquiryHandler *handlers.InquiryHandler) {
	inquiryRoutes := apiGroup.Group("/inquiries")
	inquiryRoutes.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware("admin"))
	{
		inquiryRoutes.GET("", inquiryHandler.GetInquiries)
		inquiryRoutes.GET("/recent", inquiryHandler.GetRecentInquiries)
		inquiryRoutes.GET("/statistics", inquiryHandler.GetInquiryStatistics)
		inquiryRoutes.POST("/bulk-update-status", inquiryHandler.BulkUpdateStatus)
		inquiryRoutes.GET("/:id", inquiryHandler.GetInquiryByID)
		inquiryRoutes.PUT("/:id", inquiryHandler.UpdateInquiry)
		inquiryRoutes.PATCH("/:id", inquiryHandler.UpdateInquiry)
		inquiryRoutes.DELETE("/:id", inquiryHandler.DeleteInquiry)
		inquiryRoutes.PATCH("/:id/status", inquiryHandler.UpdateInquiryStatus)
	}
}

// SetupAdminReviewRoutes sets up the review management routes.
func SetupAdminReviewRoutes(apiGroup *gin.RouterGroup, reviewHandler *handlers.ReviewHandler) {
	reviewRoutes := apiGroup.Group("/reviews")
	reviewRoutes.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware("admin"))
	{
		reviewRoutes.GET("", reviewHandler.GetReviews)
		reviewRoutes.GET("/statistics", reviewHandler.GetReviewStatistics)
		reviewRoutes.POST("/bulk-approve", reviewHandler.BulkApprove)
		reviewRoutes.POST("/bulk-reject", reviewHandler.BulkReject)
		reviewRoutes.POST("/bulk-feature", reviewHandler.BulkFeature)
		reviewRoutes.GET("/:id", reviewHandler.GetReviewByID)
		reviewRoutes.PUT("/:id", reviewHandler.UpdateReview)
		reviewRoutes.PATCH("/:id", reviewHandler.UpdateReview)
		reviewRoutes.DELETE("/:id", reviewHandler.DeleteReview)
		reviewRoutes.PATCH("/:id/status", reviewHandler.UpdateReviewStatus)
	}
}
