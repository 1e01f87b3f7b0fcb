package handlers

import (
	"errors"
	"net/http"

	"tour_travels_backend/internal/services"
	"tour_travels_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InquiryHandler holds the inquiry service.
type InquiryHandler struct {
	inquiryService services.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(is services.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: is}
}

// CreateInquiry handles the public contact form submission.
func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	var req services.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateInquiry: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	inquiry, err := h.inquiryService.CreateInquiry(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateInquiry: Error from inquiryService.CreateInquiry")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to submit inquiry.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Your inquiry has been submitted successfully! You will receive a confirmation email shortly.",
		"data":    inquiry,
	})
}

// GetInquiries handles fetching all active inquiries.
func (h *InquiryHandler) GetInquiries(c *gin.Context) {
	inquiries, err := h.inquiryService.GetInquiries(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetInquiries: Error from inquiryService.GetInquiries")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch inquiries.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(inquiries),
		"data":  inquiries,
	})
}

// GetInquiryByID handles fetching a single inquiry by ID.
func (h *InquiryHandler) GetInquiryByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid inquiry ID format.", err.Error()))
		return
	}

	inquiry, err := h.inquiryService.GetInquiryByID(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetInquiryByID: Error from inquiryService.GetInquiryByID for ID "+c.Param("id"))
		if errors.Is(err, services.ErrInquiryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inquiry not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch inquiry.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

// UpdateInquiry handles PUT/PATCH updates to an inquiry.
func (h *InquiryHandler) UpdateInquiry(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid inquiry ID format.", err.Error()))
		return
	}

	var req services.UpdateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateInquiry: Failed to bind JSON for ID "+c.Param("id"))
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	inquiry, err := h.inquiryService.UpdateInquiry(c.Request.Context(), id, req)
	if err != nil {
		utils.LogError(err, "UpdateInquiry: Error from inquiryService.UpdateInquiry for ID "+c.Param("id"))
		if errors.Is(err, services.ErrInquiryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inquiry not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update inquiry.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Inquiry updated successfully",
		"data":    inquiry,
	})
}

// DeleteInquiry soft-deletes an inquiry, preserving it for record keeping.
func (h *InquiryHandler) DeleteInquiry(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid inquiry ID format.", err.Error()))
		return
	}

	if err := h.inquiryService.DeleteInquiry(c.Request.Context(), id); err != nil {
		utils.LogError(err, "DeleteInquiry: Error from inquiryService.DeleteInquiry for ID "+c.Param("id"))
		if errors.Is(err, services.ErrInquiryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inquiry not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete inquiry.", "Internal error"))
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateInquiryStatus applies a workflow status and optional admin notes.
func (h *InquiryHandler) UpdateInquiryStatus(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid inquiry ID format.", err.Error()))
		return
	}

	var req services.InquiryStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	inquiry, err := h.inquiryService.UpdateInquiryStatus(c.Request.Context(), id, req)
	if err != nil {
		utils.LogError(err, "UpdateInquiryStatus: Error from inquiryService.UpdateInquiryStatus for ID "+c.Param("id"))
		if errors.Is(err, services.ErrInquiryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inquiry not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update inquiry status.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Status updated to " + inquiry.StatusDisplay,
		"data":    inquiry,
	})
}

// BulkUpdateStatus applies one status to a batch of inquiries.
func (h *InquiryHandler) BulkUpdateStatus(c *gin.Context) {
	var req services.BulkInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	affected, err := h.inquiryService.BulkUpdateStatus(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "BulkUpdateStatus: Error from inquiryService.BulkUpdateStatus")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to bulk update inquiries.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Inquiry statuses updated",
		"data":    gin.H{"updated": affected},
	})
}

// GetRecentInquiries returns the latest active inquiries.
func (h *InquiryHandler) GetRecentInquiries(c *gin.Context) {
	inquiries, err := h.inquiryService.GetRecentInquiries(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetRecentInquiries: Error from inquiryService.GetRecentInquiries")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch recent inquiries.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"count":  len(inquiries),
		"data":   inquiries,
	})
}

// GetInquiryStatistics returns inquiry counts by status and type.
func (h *InquiryHandler) GetInquiryStatistics(c *gin.Context) {
	stats, err := h.inquiryService.GetStatistics(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetInquiryStatistics: Error from inquiryService.GetStatistics")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch inquiry statistics.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stats)
}
