package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tour_travels_backend/internal/models"
	"tour_travels_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockReviewService implements services.ReviewService with overridable
// behavior per test.
type mockReviewService struct {
	createFn            func(ctx context.Context, req services.CreateReviewRequest) (*models.Review, error)
	getReviewsFn        func(ctx context.Context, filters services.ReviewListFilters) ([]models.Review, error)
	getByIDFn           func(ctx context.Context, id int64) (*models.Review, error)
	updateFn            func(ctx context.Context, id int64, req services.UpdateReviewRequest) (*models.Review, error)
	deleteFn            func(ctx context.Context, id int64) error
	updateStatusFn      func(ctx context.Context, id int64, req services.ReviewStatusUpdateRequest) (*models.Review, error)
	bulkApproveFn       func(ctx context.Context, req services.BulkReviewRequest) (int64, error)
	bulkRejectFn        func(ctx context.Context, req services.BulkReviewRequest) (int64, error)
	bulkFeatureFn       func(ctx context.Context, req services.BulkReviewRequest) (int64, error)
	getApprovedFn       func(ctx context.Context, page, pageSize int) ([]models.Review, int, error)
	getFeaturedFn       func(ctx context.Context) ([]models.Review, error)
	getByDestinationFn  func(ctx context.Context, destination string, page, pageSize int) ([]models.Review, int, error)
	getStatisticsFn     func(ctx context.Context) (*models.ReviewStats, error)
}

func (m *mockReviewService) CreateReview(ctx context.Context, req services.CreateReviewRequest) (*models.Review, error) {
	return m.createFn(ctx, req)
}

func (m *mockReviewService) GetReviews(ctx context.Context, filters services.ReviewListFilters) ([]models.Review, error) {
	return m.getReviewsFn(ctx, filters)
}

func (m *mockReviewService) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockReviewService) UpdateReview(ctx context.Context, id int64, req services.UpdateReviewRequest) (*models.Review, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockReviewService) DeleteReview(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockReviewService) UpdateReviewStatus(ctx context.Context, id int64, req services.ReviewStatusUpdateRequest) (*models.Review, error) {
	return m.updateStatusFn(ctx, id, req)
}

func (m *mockReviewService) BulkApprove(ctx context.Context, req services.BulkReviewRequest) (int64, error) {
	return m.bulkApproveFn(ctx, req)
}

func (m *mockReviewService) BulkReject(ctx context.Context, req services.BulkReviewRequest) (int64, error) {
	return m.bulkRejectFn(ctx, req)
}

func (m *mockReviewService) BulkFeature(ctx context.Context, req services.BulkReviewRequest) (int64, error) {
	return m.bulkFeatureFn(ctx, req)
}

func (m *mockReviewService) GetApprovedReviews(ctx context.Context, page, pageSize int) ([]models.Review, int, error) {
	return m.getApprovedFn(ctx, page, pageSize)
}

func (m *mockReviewService) GetFeaturedReviews(ctx context.Context) ([]models.Review, error) {
	return m.getFeaturedFn(ctx)
}

func (m *mockReviewService) GetReviewsByDestination(ctx context.Context, destination string, page, pageSize int) ([]models.Review, int, error) {
	return m.getByDestinationFn(ctx, destination, page, pageSize)
}

func (m *mockReviewService) GetStatistics(ctx context.Context) (*models.ReviewStats, error) {
	return m.getStatisticsFn(ctx)
}

func newReviewRouter(service services.ReviewService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewReviewHandler(service)

	engine.POST("/reviews", handler.CreateReview)
	engine.GET("/reviews", handler.GetReviews)
	engine.GET("/reviews/approved", handler.GetApprovedReviews)
	engine.GET("/reviews/featured", handler.GetFeaturedReviews)
	engine.GET("/reviews/by-destination", handler.GetReviewsByDestination)
	engine.GET("/reviews/:id", handler.GetReviewByID)
	engine.DELETE("/reviews/:id", handler.DeleteReview)
	engine.PATCH("/reviews/:id/status", handler.UpdateReviewStatus)
	engine.POST("/reviews/bulk-approve", handler.BulkApprove)
	return engine
}

func performRequest(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateReviewHandler(t *testing.T) {
	service := &mockReviewService{
		createFn: func(ctx context.Context, req services.CreateReviewRequest) (*models.Review, error) {
			review := &models.Review{
				ID:            1,
				CustomerName:  req.CustomerName,
				CustomerEmail: req.CustomerEmail,
				Destination:   models.Destination(req.Destination),
				Rating:        req.Rating,
				Status:        models.ReviewStatusPending,
			}
			review.Decorate()
			return review, nil
		},
	}
	engine := newReviewRouter(service)

	recorder := performRequest(t, engine, http.MethodPost, "/reviews", gin.H{
		"customer_name":  "Priya Sharma",
		"customer_email": "priya@example.com",
		"destination":    "kerala",
		"rating":         5,
		"title":          "Wonderful backwaters",
		"review_text":    "The houseboat stay was unforgettable.",
		"travel_date":    "2026-05-20",
	})

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Contains(t, body["message"], "once approved")
}

func TestCreateReviewHandlerMissingFields(t *testing.T) {
	engine := newReviewRouter(&mockReviewService{})

	recorder := performRequest(t, engine, http.MethodPost, "/reviews", gin.H{
		"customer_name": "Priya Sharma",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateReviewHandlerValidationError(t *testing.T) {
	service := &mockReviewService{
		createFn: func(ctx context.Context, req services.CreateReviewRequest) (*models.Review, error) {
			return nil, services.ErrValidation
		},
	}
	engine := newReviewRouter(service)

	recorder := performRequest(t, engine, http.MethodPost, "/reviews", gin.H{
		"customer_name":  "Priya Sharma",
		"customer_email": "priya@example.com",
		"destination":    "atlantis",
		"rating":         5,
		"title":          "Wonderful backwaters",
		"review_text":    "The houseboat stay was unforgettable.",
		"travel_date":    "2026-05-20",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetReviewByIDHandlerNotFound(t *testing.T) {
	service := &mockReviewService{
		getByIDFn: func(ctx context.Context, id int64) (*models.Review, error) {
			return nil, services.ErrReviewNotFound
		},
	}
	engine := newReviewRouter(service)

	recorder := performRequest(t, engine, http.MethodGet, "/reviews/99", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetReviewByIDHandlerBadID(t *testing.T) {
	engine := newReviewRouter(&mockReviewService{})

	recorder := performRequest(t, engine, http.MethodGet, "/reviews/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetReviewsByDestinationRequiresParam(t *testing.T) {
	engine := newReviewRouter(&mockReviewService{})

	recorder := performRequest(t, engine, http.MethodGet, "/reviews/by-destination", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetReviewsByDestinationHandler(t *testing.T) {
	service := &mockReviewService{
		getByDestinationFn: func(ctx context.Context, destination string, page, pageSize int) ([]models.Review, int, error) {
			assert.Equal(t, "goa", destination)
			assert.Equal(t, 2, page)
			assert.Equal(t, 5, pageSize)
			return []models.Review{}, 0, nil
		},
	}
	engine := newReviewRouter(service)

	recorder := performRequest(t, engine, http.MethodGet, "/reviews/by-destination?destination=goa&page=2&page_size=5", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(5), body["page_size"])
}

func TestDeleteReviewHandler(t *testing.T) {
	service := &mockReviewService{
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	}
	engine := newReviewRouter(service)

	recorder := performRequest(t, engine, http.MethodDelete, "/reviews/3", nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}

func TestBulkApproveHandler(t *testing.T) {
	service := &mockReviewService{
		bulkApproveFn: func(ctx context.Context, req services.BulkReviewRequest) (int64, error) {
			assert.Equal(t, []int64{1, 2, 3}, req.IDs)
			return 3, nil
		},
	}
	engine := newReviewRouter(service)

	recorder := performRequest(t, engine, http.MethodPost, "/reviews/bulk-approve", gin.H{"ids": []int64{1, 2, 3}})
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["updated"])
}

func TestUpdateReviewStatusHandler(t *testing.T) {
	service := &mockReviewService{
		updateStatusFn: func(ctx context.Context, id int64, req services.ReviewStatusUpdateRequest) (*models.Review, error) {
			review := &models.Review{ID: id, Status: models.ReviewStatus(req.Status), Destination: models.DestinationGoa}
			review.Decorate()
			return review, nil
		},
	}
	engine := newReviewRouter(service)

	recorder := performRequest(t, engine, http.MethodPatch, "/reviews/7/status", gin.H{"status": "approved"})
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Status updated to Approved", body["message"])
}

func TestReviewAdminNotesNeverSerialized(t *testing.T) {
	notes := "internal only"
	service := &mockReviewService{
		getByIDFn: func(ctx context.Context, id int64) (*models.Review, error) {
			review := &models.Review{ID: id, Destination: models.DestinationGoa, Status: models.ReviewStatusApproved, AdminNotes: &notes}
			review.Decorate()
			return review, nil
		},
	}
	engine := newReviewRouter(service)

	recorder := performRequest(t, engine, http.MethodGet, "/reviews/1", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "internal only")
	assert.NotContains(t, recorder.Body.String(), "admin_notes")
}
