package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"tour_travels_backend/internal/models"
	"tour_travels_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockInquiryService implements services.InquiryService with overridable
// behavior per test.
type mockInquiryService struct {
	createFn        func(ctx context.Context, req services.CreateInquiryRequest) (*models.Inquiry, error)
	getInquiriesFn  func(ctx context.Context) ([]models.Inquiry, error)
	getByIDFn       func(ctx context.Context, id int64) (*models.Inquiry, error)
	updateFn        func(ctx context.Context, id int64, req services.UpdateInquiryRequest) (*models.Inquiry, error)
	deleteFn        func(ctx context.Context, id int64) error
	updateStatusFn  func(ctx context.Context, id int64, req services.InquiryStatusUpdateRequest) (*models.Inquiry, error)
	bulkFn          func(ctx context.Context, req services.BulkInquiryStatusRequest) (int64, error)
	getRecentFn     func(ctx context.Context) ([]models.Inquiry, error)
	getStatisticsFn func(ctx context.Context) (*models.InquiryStats, error)
}

func (m *mockInquiryService) CreateInquiry(ctx context.Context, req services.CreateInquiryRequest) (*models.Inquiry, error) {
	return m.createFn(ctx, req)
}

func (m *mockInquiryService) GetInquiries(ctx context.Context) ([]models.Inquiry, error) {
	return m.getInquiriesFn(ctx)
}

func (m *mockInquiryService) GetInquiryByID(ctx context.Context, id int64) (*models.Inquiry, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockInquiryService) UpdateInquiry(ctx context.Context, id int64, req services.UpdateInquiryRequest) (*models.Inquiry, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockInquiryService) DeleteInquiry(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockInquiryService) UpdateInquiryStatus(ctx context.Context, id int64, req services.InquiryStatusUpdateRequest) (*models.Inquiry, error) {
	return m.updateStatusFn(ctx, id, req)
}

func (m *mockInquiryService) BulkUpdateStatus(ctx context.Context, req services.BulkInquiryStatusRequest) (int64, error) {
	return m.bulkFn(ctx, req)
}

func (m *mockInquiryService) GetRecentInquiries(ctx context.Context) ([]models.Inquiry, error) {
	return m.getRecentFn(ctx)
}

func (m *mockInquiryService) GetStatistics(ctx context.Context) (*models.InquiryStats, error) {
	return m.getStatisticsFn(ctx)
}

func newInquiryRouter(service services.InquiryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewInquiryHandler(service)

	engine.POST("/inquiries", handler.CreateInquiry)
	engine.GET("/inquiries", handler.GetInquiries)
	engine.GET("/inquiries/recent", handler.GetRecentInquiries)
	engine.GET("/inquiries/statistics", handler.GetInquiryStatistics)
	engine.POST("/inquiries/bulk-update-status", handler.BulkUpdateStatus)
	engine.GET("/inquiries/:id", handler.GetInquiryByID)
	engine.DELETE("/inquiries/:id", handler.DeleteInquiry)
	engine.PATCH("/inquiries/:id/status", handler.UpdateInquiryStatus)
	return engine
}

func TestCreateInquiryHandler(t *testing.T) {
	service := &mockInquiryService{
		createFn: func(ctx context.Context, req services.CreateInquiryRequest) (*models.Inquiry, error) {
			inquiry := &models.Inquiry{
				ID:          1,
				FullName:    req.FullName,
				Email:       req.Email,
				InquiryType: models.InquiryTypeGeneral,
				Status:      models.InquiryStatusPending,
			}
			inquiry.Decorate()
			return inquiry, nil
		},
	}
	engine := newInquiryRouter(service)

	recorder := performRequest(t, engine, http.MethodPost, "/inquiries", gin.H{
		"full_name": "Ravi Kumar",
		"email":     "ravi@example.com",
		"subject":   "Trip planning",
		"message":   "Looking for a family package.",
	})

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Contains(t, body["message"], "confirmation email")
}

func TestCreateInquiryHandlerMissingFields(t *testing.T) {
	engine := newInquiryRouter(&mockInquiryService{})

	recorder := performRequest(t, engine, http.MethodPost, "/inquiries", gin.H{
		"full_name": "Ravi Kumar",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetInquiryByIDHandlerNotFound(t *testing.T) {
	service := &mockInquiryService{
		getByIDFn: func(ctx context.Context, id int64) (*models.Inquiry, error) {
			return nil, services.ErrInquiryNotFound
		},
	}
	engine := newInquiryRouter(service)

	recorder := performRequest(t, engine, http.MethodGet, "/inquiries/77", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetInquiriesHandler(t *testing.T) {
	service := &mockInquiryService{
		getInquiriesFn: func(ctx context.Context) ([]models.Inquiry, error) {
			return []models.Inquiry{{ID: 1}, {ID: 2}}, nil
		},
	}
	engine := newInquiryRouter(service)

	recorder := performRequest(t, engine, http.MethodGet, "/inquiries", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["count"])
}

func TestDeleteInquiryHandler(t *testing.T) {
	service := &mockInquiryService{
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	}
	engine := newInquiryRouter(service)

	recorder := performRequest(t, engine, http.MethodDelete, "/inquiries/5", nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestUpdateInquiryStatusHandler(t *testing.T) {
	service := &mockInquiryService{
		updateStatusFn: func(ctx context.Context, id int64, req services.InquiryStatusUpdateRequest) (*models.Inquiry, error) {
			inquiry := &models.Inquiry{ID: id, InquiryType: models.InquiryTypeGeneral, Status: models.InquiryStatus(req.Status)}
			inquiry.Decorate()
			return inquiry, nil
		},
	}
	engine := newInquiryRouter(service)

	recorder := performRequest(t, engine, http.MethodPatch, "/inquiries/9/status", gin.H{"status": "resolved"})
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Status updated to Resolved", body["message"])
}

func TestBulkUpdateInquiryStatusHandler(t *testing.T) {
	service := &mockInquiryService{
		bulkFn: func(ctx context.Context, req services.BulkInquiryStatusRequest) (int64, error) {
			assert.Equal(t, "closed", req.Status)
			return 2, nil
		},
	}
	engine := newInquiryRouter(service)

	recorder := performRequest(t, engine, http.MethodPost, "/inquiries/bulk-update-status", gin.H{
		"ids":    []int64{4, 5},
		"status": "closed",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["updated"])
}

func TestInquiryAdminNotesNeverSerialized(t *testing.T) {
	notes := "called the customer"
	service := &mockInquiryService{
		getByIDFn: func(ctx context.Context, id int64) (*models.Inquiry, error) {
			inquiry := &models.Inquiry{ID: id, InquiryType: models.InquiryTypeGeneral, Status: models.InquiryStatusPending, AdminNotes: &notes}
			inquiry.Decorate()
			return inquiry, nil
		},
	}
	engine := newInquiryRouter(service)

	recorder := performRequest(t, engine, http.MethodGet, "/inquiries/1", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "admin_notes")
	assert.NotContains(t, recorder.Body.String(), notes)
}

func TestGetInquiryStatisticsHandler(t *testing.T) {
	service := &mockInquiryService{
		getStatisticsFn: func(ctx context.Context) (*models.InquiryStats, error) {
			return &models.InquiryStats{Total: 6, Pending: 4}, nil
		},
	}
	engine := newInquiryRouter(service)

	recorder := performRequest(t, engine, http.MethodGet, "/inquiries/statistics", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var stats models.InquiryStats
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &stats))
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 4, stats.Pending)
}
