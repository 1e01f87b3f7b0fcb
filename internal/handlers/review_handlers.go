package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"tour_travels_backend/internal/services"
	"tour_travels_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler holds the review service.
type ReviewHandler struct {
	reviewService services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(rs services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: rs}
}

// CreateReview handles the public review submission. Reviews always start
// pending until an admin moderates them.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateReview: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateReview: Error from reviewService.CreateReview")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to submit review.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Your review has been submitted successfully! It will appear on the site once approved.",
		"data":    review,
	})
}

// GetReviews handles the admin listing with optional status/rating/destination filters.
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	var filters services.ReviewListFilters
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}
	if ratingStr := c.Query("rating"); ratingStr != "" {
		rating, err := strconv.Atoi(ratingStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid rating filter.", err.Error()))
			return
		}
		filters.Rating = &rating
	}
	if destination := c.Query("destination"); destination != "" {
		filters.Destination = &destination
	}

	reviews, err := h.reviewService.GetReviews(c.Request.Context(), filters)
	if err != nil {
		utils.LogError(err, "GetReviews: Error from reviewService.GetReviews")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reviews.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(reviews),
		"data":  reviews,
	})
}

// GetReviewByID handles fetching a single review by ID.
func (h *ReviewHandler) GetReviewByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid review ID format.", err.Error()))
		return
	}

	review, err := h.reviewService.GetReviewByID(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetReviewByID: Error from reviewService.GetReviewByID for ID "+c.Param("id"))
		if errors.Is(err, services.ErrReviewNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Review not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch review.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, review)
}

// UpdateReview handles PUT/PATCH updates to a review.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid review ID format.", err.Error()))
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateReview: Failed to bind JSON for ID "+c.Param("id"))
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), id, req)
	if err != nil {
		utils.LogError(err, "UpdateReview: Error from reviewService.UpdateReview for ID "+c.Param("id"))
		if errors.Is(err, services.ErrReviewNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Review not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update review.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Review updated successfully",
		"data":    review,
	})
}

// DeleteReview soft-deletes a review, preserving it for record keeping.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid review ID format.", err.Error()))
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), id); err != nil {
		utils.LogError(err, "DeleteReview: Error from reviewService.DeleteReview for ID "+c.Param("id"))
		if errors.Is(err, services.ErrReviewNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Review not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete review.", "Internal error"))
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateReviewStatus applies a moderation status, optional admin notes and
// the featured flag to a single review.
func (h *ReviewHandler) UpdateReviewStatus(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid review ID format.", err.Error()))
		return
	}

	var req services.ReviewStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	review, err := h.reviewService.UpdateReviewStatus(c.Request.Context(), id, req)
	if err != nil {
		utils.LogError(err, "UpdateReviewStatus: Error from reviewService.UpdateReviewStatus for ID "+c.Param("id"))
		if errors.Is(err, services.ErrReviewNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Review not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update review status.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Status updated to " + review.StatusDisplay,
		"data":    review,
	})
}

// BulkApprove approves a batch of reviews.
func (h *ReviewHandler) BulkApprove(c *gin.Context) {
	h.bulkAction(c, h.reviewService.BulkApprove, "Reviews approved")
}

// BulkReject rejects a batch of reviews.
func (h *ReviewHandler) BulkReject(c *gin.Context) {
	h.bulkAction(c, h.reviewService.BulkReject, "Reviews rejected")
}

// BulkFeature marks a batch of already-approved reviews as featured.
func (h *ReviewHandler) BulkFeature(c *gin.Context) {
	h.bulkAction(c, h.reviewService.BulkFeature, "Approved reviews marked as featured")
}

func (h *ReviewHandler) bulkAction(c *gin.Context, action func(ctx context.Context, req services.BulkReviewRequest) (int64, error), message string) {
	var req services.BulkReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	affected, err := action(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "BulkAction: Error from reviewService bulk action")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process bulk action.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    gin.H{"updated": affected},
	})
}

// GetApprovedReviews returns approved reviews for public display, paginated.
func (h *ReviewHandler) GetApprovedReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	reviews, total, err := h.reviewService.GetApprovedReviews(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.LogError(err, "GetApprovedReviews: Error from reviewService.GetApprovedReviews")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch approved reviews.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      reviews,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetFeaturedReviews returns approved, featured reviews for public display.
func (h *ReviewHandler) GetFeaturedReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetFeaturedReviews(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetFeaturedReviews: Error from reviewService.GetFeaturedReviews")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch featured reviews.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(reviews),
		"data":  reviews,
	})
}

// GetReviewsByDestination returns approved reviews for one destination.
// The destination query parameter is required.
func (h *ReviewHandler) GetReviewsByDestination(c *gin.Context) {
	destination := c.Query("destination")
	if destination == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "destination query parameter is required", "missing destination"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	reviews, total, err := h.reviewService.GetReviewsByDestination(c.Request.Context(), destination, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetReviewsByDestination: Error from reviewService.GetReviewsByDestination")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reviews by destination.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      reviews,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetReviewStatistics returns review counts, averages and breakdowns.
func (h *ReviewHandler) GetReviewStatistics(c *gin.Context) {
	stats, err := h.reviewService.GetStatistics(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetReviewStatistics: Error from reviewService.GetStatistics")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch review statistics.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stats)
}
