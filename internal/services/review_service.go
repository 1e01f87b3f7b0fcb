package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tour_travels_backend/internal/cache"
	"tour_travels_backend/internal/models"
	"tour_travels_backend/internal/repositories"
)

// --- Custom Service Errors for Review ---
var (
	ErrReviewNotFound = errors.New("review not found")
)

// --- Review DTOs ---
type CreateReviewRequest struct {
	CustomerName        string  `json:"customer_name" binding:"required"`
	CustomerEmail       string  `json:"customer_email" binding:"required"`
	Destination         string  `json:"destination" binding:"required"`
	PackageName         *string `json:"package_name"`
	Rating              int     `json:"rating" binding:"required"`
	Title               string  `json:"title" binding:"required"`
	ReviewText          string  `json:"review_text" binding:"required"`
	TravelDate          string  `json:"travel_date" binding:"required"`
	ServiceRating       *int    `json:"service_rating"`
	ValueRating         *int    `json:"value_rating"`
	AccommodationRating *int    `json:"accommodation_rating"`
}

type UpdateReviewRequest struct {
	CustomerName        *string `json:"customer_name"`
	CustomerEmail       *string `json:"customer_email"`
	Destination         *string `json:"destination"`
	PackageName         *string `json:"package_name"`
	Rating              *int    `json:"rating"`
	Title               *string `json:"title"`
	ReviewText          *string `json:"review_text"`
	TravelDate          *string `json:"travel_date"`
	ServiceRating       *int    `json:"service_rating"`
	ValueRating         *int    `json:"value_rating"`
	AccommodationRating *int    `json:"accommodation_rating"`
}

// ReviewStatusUpdateRequest mutates status and, when present, the featured
// flag. IsFeatured is applied regardless of the resulting status here; only
// the bulk feature action restricts to already-approved reviews.
type ReviewStatusUpdateRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
	IsFeatured *bool   `json:"is_featured"`
}

type BulkReviewRequest struct {
	IDs []int64 `json:"ids" binding:"required"`
}

// ReviewListFilters narrows the admin listing. Empty fields are ignored.
type ReviewListFilters struct {
	Status      *string
	Rating      *int
	Destination *string
}

// --- ReviewService Interface ---
type ReviewService interface {
	CreateReview(ctx context.Context, req CreateReviewRequest) (*models.Review, error)
	GetReviews(ctx context.Context, filters ReviewListFilters) ([]models.Review, error)
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	UpdateReview(ctx context.Context, id int64, req UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
	UpdateReviewStatus(ctx context.Context, id int64, req ReviewStatusUpdateRequest) (*models.Review, error)
	BulkApprove(ctx context.Context, req BulkReviewRequest) (int64, error)
	BulkReject(ctx context.Context, req BulkReviewRequest) (int64, error)
	BulkFeature(ctx context.Context, req BulkReviewRequest) (int64, error)
	GetApprovedReviews(ctx context.Context, page, pageSize int) ([]models.Review, int, error)
	GetFeaturedReviews(ctx context.Context) ([]models.Review, error)
	GetReviewsByDestination(ctx context.Context, destination string, page, pageSize int) ([]models.Review, int, error)
	GetStatistics(ctx context.Context) (*models.ReviewStats, error)
}

// --- reviewService Implementation ---
type reviewService struct {
	reviewRepo repositories.ReviewRepository
	db         *sql.DB
	cache      *cache.Client
}

// NewReviewService creates a new instance of ReviewService.
func NewReviewService(repo repositories.ReviewRepository, db *sql.DB, cacheClient *cache.Client) ReviewService {
	return &reviewService{
		reviewRepo: repo,
		db:         db,
		cache:      cacheClient,
	}
}

const defaultReviewPageSize = 10

func (s *reviewService) validateCreate(req CreateReviewRequest) (*models.Review, error) {
	customerName, err := validateMinLength("customer_name", req.CustomerName, 2)
	if err != nil {
		return nil, err
	}
	customerEmail, err := validateEmail("customer_email", req.CustomerEmail)
	if err != nil {
		return nil, err
	}

	destination := models.Destination(req.Destination)
	if !destination.Valid() {
		return nil, newFieldError("destination", "is not a valid destination")
	}

	if err := validateRating("rating", req.Rating); err != nil {
		return nil, err
	}

	title, err := validateMinLength("title", req.Title, 5)
	if err != nil {
		return nil, err
	}
	reviewText, err := validateMinLength("review_text", req.ReviewText, 10)
	if err != nil {
		return nil, err
	}
	travelDate, err := validateTravelDate("travel_date", req.TravelDate)
	if err != nil {
		return nil, err
	}

	// Sub-ratings default to 5 when omitted.
	subRatings := map[string]int{"service_rating": 5, "value_rating": 5, "accommodation_rating": 5}
	for field, value := range map[string]*int{
		"service_rating":       req.ServiceRating,
		"value_rating":         req.ValueRating,
		"accommodation_rating": req.AccommodationRating,
	} {
		if value != nil {
			if err := validateRating(field, *value); err != nil {
				return nil, err
			}
			subRatings[field] = *value
		}
	}

	return &models.Review{
		CustomerName:        customerName,
		CustomerEmail:       customerEmail,
		Destination:         destination,
		PackageName:         req.PackageName,
		Rating:              req.Rating,
		Title:               title,
		ReviewText:          reviewText,
		TravelDate:          travelDate,
		ServiceRating:       subRatings["service_rating"],
		ValueRating:         subRatings["value_rating"],
		AccommodationRating: subRatings["accommodation_rating"],
		Status:              models.ReviewStatusPending,
		IsFeatured:          false,
		IsActive:            true,
	}, nil
}

func (s *reviewService) CreateReview(ctx context.Context, req CreateReviewRequest) (*models.Review, error) {
	review, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}

	id, err := s.reviewRepo.Create(s.db, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review in repository: %w", err)
	}

	created, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load created review: %w", err)
	}
	created.Decorate()

	s.invalidate(ctx, 0)
	return created, nil
}

// GetReviews serves the admin listing. The cache key is deliberately coarse:
// filtered requests resolve through the same key as unfiltered ones, so the
// cached payload may not match the filters until it expires or a write lands.
func (s *reviewService) GetReviews(ctx context.Context, filters ReviewListFilters) ([]models.Review, error) {
	filter := repositories.ReviewFilter{}
	if filters.Status != nil {
		status := models.ReviewStatus(*filters.Status)
		if !status.Valid() {
			return nil, newFieldError("status", "is not a valid review status")
		}
		filter.Status = &status
	}
	if filters.Rating != nil {
		if err := validateRating("rating", *filters.Rating); err != nil {
			return nil, err
		}
		filter.Rating = filters.Rating
	}
	if filters.Destination != nil {
		destination := models.Destination(*filters.Destination)
		if !destination.Valid() {
			return nil, newFieldError("destination", "is not a valid destination")
		}
		filter.Destination = &destination
	}

	var cached []models.Review
	if cacheGet(ctx, s.cache, cache.ReviewListKey(), &cached) {
		return cached, nil
	}

	reviews, err := s.reviewRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	for i := range reviews {
		reviews[i].Decorate()
	}

	cacheSet(ctx, s.cache, cache.ReviewListKey(), reviews, cache.ReviewListTTL)
	return reviews, nil
}

func (s *reviewService) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	var cached models.Review
	if cacheGet(ctx, s.cache, cache.ReviewDetailKey(id), &cached) {
		return &cached, nil
	}

	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}
	review.Decorate()

	cacheSet(ctx, s.cache, cache.ReviewDetailKey(id), review, cache.ReviewDetailTTL)
	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, id int64, req UpdateReviewRequest) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review for update: %w", err)
	}

	if req.CustomerName != nil {
		customerName, err := validateMinLength("customer_name", *req.CustomerName, 2)
		if err != nil {
			return nil, err
		}
		review.CustomerName = customerName
	}
	if req.CustomerEmail != nil {
		customerEmail, err := validateEmail("customer_email", *req.CustomerEmail)
		if err != nil {
			return nil, err
		}
		review.CustomerEmail = customerEmail
	}
	if req.Destination != nil {
		destination := models.Destination(*req.Destination)
		if !destination.Valid() {
			return nil, newFieldError("destination", "is not a valid destination")
		}
		review.Destination = destination
	}
	if req.PackageName != nil {
		review.PackageName = req.PackageName
	}
	if req.Rating != nil {
		if err := validateRating("rating", *req.Rating); err != nil {
			return nil, err
		}
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		title, err := validateMinLength("title", *req.Title, 5)
		if err != nil {
			return nil, err
		}
		review.Title = title
	}
	if req.ReviewText != nil {
		reviewText, err := validateMinLength("review_text", *req.ReviewText, 10)
		if err != nil {
			return nil, err
		}
		review.ReviewText = reviewText
	}
	if req.TravelDate != nil {
		travelDate, err := validateTravelDate("travel_date", *req.TravelDate)
		if err != nil {
			return nil, err
		}
		review.TravelDate = travelDate
	}
	if req.ServiceRating != nil {
		if err := validateRating("service_rating", *req.ServiceRating); err != nil {
			return nil, err
		}
		review.ServiceRating = *req.ServiceRating
	}
	if req.ValueRating != nil {
		if err := validateRating("value_rating", *req.ValueRating); err != nil {
			return nil, err
		}
		review.ValueRating = *req.ValueRating
	}
	if req.AccommodationRating != nil {
		if err := validateRating("accommodation_rating", *req.AccommodationRating); err != nil {
			return nil, err
		}
		review.AccommodationRating = *req.AccommodationRating
	}

	if err := s.reviewRepo.Update(s.db, review); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review in repository: %w", err)
	}

	s.invalidate(ctx, id)
	review.Decorate()
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id int64) error {
	if err := s.reviewRepo.SoftDelete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *reviewService) UpdateReviewStatus(ctx context.Context, id int64, req ReviewStatusUpdateRequest) (*models.Review, error) {
	status := models.ReviewStatus(req.Status)
	if !status.Valid() {
		return nil, newFieldError("status", "is not a valid review status")
	}

	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review for status update: %w", err)
	}

	review.Status = status
	if req.AdminNotes != nil {
		review.AdminNotes = req.AdminNotes
	}
	if req.IsFeatured != nil {
		review.IsFeatured = *req.IsFeatured
	}

	if err := s.reviewRepo.Update(s.db, review); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review status: %w", err)
	}

	s.invalidate(ctx, id)
	review.Decorate()
	return review, nil
}

func (s *reviewService) BulkApprove(ctx context.Context, req BulkReviewRequest) (int64, error) {
	return s.bulkStatus(ctx, req, models.ReviewStatusApproved)
}

func (s *reviewService) BulkReject(ctx context.Context, req BulkReviewRequest) (int64, error) {
	return s.bulkStatus(ctx, req, models.ReviewStatusRejected)
}

func (s *reviewService) bulkStatus(ctx context.Context, req BulkReviewRequest, status models.ReviewStatus) (int64, error) {
	if len(req.IDs) == 0 {
		return 0, newFieldError("ids", "must contain at least one id")
	}

	affected, err := s.reviewRepo.BulkUpdateStatus(s.db, req.IDs, status)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update review status: %w", err)
	}

	s.invalidateBulk(ctx, req.IDs)
	return affected, nil
}

func (s *reviewService) BulkFeature(ctx context.Context, req BulkReviewRequest) (int64, error) {
	if len(req.IDs) == 0 {
		return 0, newFieldError("ids", "must contain at least one id")
	}

	affected, err := s.reviewRepo.BulkFeature(s.db, req.IDs)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk feature reviews: %w", err)
	}

	s.invalidateBulk(ctx, req.IDs)
	return affected, nil
}

// GetApprovedReviews caches the first default-sized page under the dedicated
// approved key; other pages always hit the store.
func (s *reviewService) GetApprovedReviews(ctx context.Context, page, pageSize int) ([]models.Review, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultReviewPageSize
	}

	cacheable := page == 1 && pageSize == defaultReviewPageSize
	if cacheable {
		var cached approvedPage
		if cacheGet(ctx, s.cache, cache.ReviewApprovedKey(), &cached) {
			return cached.Reviews, cached.Total, nil
		}
	}

	reviews, total, err := s.reviewRepo.ListApproved(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list approved reviews: %w", err)
	}
	for i := range reviews {
		reviews[i].Decorate()
	}

	if cacheable {
		cacheSet(ctx, s.cache, cache.ReviewApprovedKey(), approvedPage{Reviews: reviews, Total: total}, cache.ReviewApprovedTTL)
	}
	return reviews, total, nil
}

type approvedPage struct {
	Reviews []models.Review `json:"reviews"`
	Total   int             `json:"total"`
}

func (s *reviewService) GetFeaturedReviews(ctx context.Context) ([]models.Review, error) {
	var cached []models.Review
	if cacheGet(ctx, s.cache, cache.ReviewFeaturedKey(), &cached) {
		return cached, nil
	}

	reviews, err := s.reviewRepo.ListFeatured()
	if err != nil {
		return nil, fmt.Errorf("failed to list featured reviews: %w", err)
	}
	for i := range reviews {
		reviews[i].Decorate()
	}

	cacheSet(ctx, s.cache, cache.ReviewFeaturedKey(), reviews, cache.ReviewFeaturedTTL)
	return reviews, nil
}

func (s *reviewService) GetReviewsByDestination(ctx context.Context, destination string, page, pageSize int) ([]models.Review, int, error) {
	dest := models.Destination(destination)
	if !dest.Valid() {
		return nil, 0, newFieldError("destination", "is not a valid destination")
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultReviewPageSize
	}

	reviews, total, err := s.reviewRepo.ListByDestination(dest, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews by destination: %w", err)
	}
	for i := range reviews {
		reviews[i].Decorate()
	}
	return reviews, total, nil
}

func (s *reviewService) GetStatistics(ctx context.Context) (*models.ReviewStats, error) {
	var cached models.ReviewStats
	if cacheGet(ctx, s.cache, cache.ReviewStatsKey(), &cached) {
		return &cached, nil
	}

	statusCounts, err := s.reviewRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews by status: %w", err)
	}
	avgRating, err := s.reviewRepo.AverageApprovedRating()
	if err != nil {
		return nil, fmt.Errorf("failed to average approved ratings: %w", err)
	}
	featured, err := s.reviewRepo.CountFeatured()
	if err != nil {
		return nil, fmt.Errorf("failed to count featured reviews: %w", err)
	}
	destinationCounts, err := s.reviewRepo.CountByDestination()
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews by destination: %w", err)
	}
	ratingCounts, err := s.reviewRepo.CountByRating()
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews by rating: %w", err)
	}

	byDestination := map[string]models.DestinationStat{}
	for _, destination := range models.AllDestinations() {
		byDestination[string(destination)] = models.DestinationStat{
			Count:       destinationCounts[destination],
			DisplayName: destination.Display(),
		}
	}

	byRating := map[string]int{}
	for rating := 1; rating <= 5; rating++ {
		byRating[fmt.Sprintf("%d_star", rating)] = ratingCounts[rating]
	}

	total := 0
	for _, count := range statusCounts {
		total += count
	}

	stats := &models.ReviewStats{
		TotalReviews:    total,
		ApprovedReviews: statusCounts[models.ReviewStatusApproved],
		PendingReviews:  statusCounts[models.ReviewStatusPending],
		AverageRating:   avgRating,
		FeaturedReviews: featured,
		ByDestination:   byDestination,
		ByRating:        byRating,
	}

	cacheSet(ctx, s.cache, cache.ReviewStatsKey(), stats, cache.ReviewStatsTTL)
	return stats, nil
}

// invalidate wipes the review caches after a write. Pass id 0 when no detail
// entry exists yet.
func (s *reviewService) invalidate(ctx context.Context, id int64) {
	keys := []string{
		cache.ReviewListKey(), cache.ReviewStatsKey(),
		cache.ReviewApprovedKey(), cache.ReviewFeaturedKey(),
	}
	if id > 0 {
		keys = append(keys, cache.ReviewDetailKey(id))
	}
	cacheDel(ctx, s.cache, keys...)
}

func (s *reviewService) invalidateBulk(ctx context.Context, ids []int64) {
	keys := []string{
		cache.ReviewListKey(), cache.ReviewStatsKey(),
		cache.ReviewApprovedKey(), cache.ReviewFeaturedKey(),
	}
	for _, id := range ids {
		keys = append(keys, cache.ReviewDetailKey(id))
	}
	cacheDel(ctx, s.cache, keys...)
}
