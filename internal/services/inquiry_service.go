package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tour_travels_backend/internal/cache"
	"tour_travels_backend/internal/models"
	"tour_travels_backend/internal/repositories"
	"tour_travels_backend/pkg/utils"
)

// --- Custom Service Errors for Inquiry ---
var (
	ErrInquiryNotFound = errors.New("inquiry not found")
)

// --- Inquiry DTOs ---
type CreateInquiryRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	Phone       *string `json:"phone"`
	InquiryType string  `json:"inquiry_type"`
	Subject     string  `json:"subject" binding:"required"`
	Message     string  `json:"message" binding:"required"`
}

type UpdateInquiryRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	InquiryType *string `json:"inquiry_type"`
	Subject     *string `json:"subject"`
	Message     *string `json:"message"`
}

type InquiryStatusUpdateRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
}

type BulkInquiryStatusRequest struct {
	IDs    []int64 `json:"ids" binding:"required"`
	Status string  `json:"status" binding:"required"`
}

// --- InquiryService Interface ---
type InquiryService interface {
	CreateInquiry(ctx context.Context, req CreateInquiryRequest) (*models.Inquiry, error)
	GetInquiries(ctx context.Context) ([]models.Inquiry, error)
	GetInquiryByID(ctx context.Context, id int64) (*models.Inquiry, error)
	UpdateInquiry(ctx context.Context, id int64, req UpdateInquiryRequest) (*models.Inquiry, error)
	DeleteInquiry(ctx context.Context, id int64) error
	UpdateInquiryStatus(ctx context.Context, id int64, req InquiryStatusUpdateRequest) (*models.Inquiry, error)
	BulkUpdateStatus(ctx context.Context, req BulkInquiryStatusRequest) (int64, error)
	GetRecentInquiries(ctx context.Context) ([]models.Inquiry, error)
	GetStatistics(ctx context.Context) (*models.InquiryStats, error)
}

// --- inquiryService Implementation ---
type inquiryService struct {
	inquiryRepo repositories.InquiryRepository
	db          *sql.DB
	cache       *cache.Client
	mailer      MailerService
	dispatcher  *Dispatcher
}

// NewInquiryService creates a new instance of InquiryService.
func NewInquiryService(repo repositories.InquiryRepository, db *sql.DB, cacheClient *cache.Client, mailer MailerService, dispatcher *Dispatcher) InquiryService {
	return &inquiryService{
		inquiryRepo: repo,
		db:          db,
		cache:       cacheClient,
		mailer:      mailer,
		dispatcher:  dispatcher,
	}
}

const recentInquiryLimit = 10

func (s *inquiryService) validateCreate(req CreateInquiryRequest) (*models.Inquiry, error) {
	fullName, err := validateMinLength("full_name", req.FullName, 2)
	if err != nil {
		return nil, err
	}
	email, err := validateEmail("email", req.Email)
	if err != nil {
		return nil, err
	}
	subject, err := validateMinLength("subject", req.Subject, 5)
	if err != nil {
		return nil, err
	}
	message, err := validateMinLength("message", req.Message, 10)
	if err != nil {
		return nil, err
	}

	var phone *string
	if req.Phone != nil {
		cleaned, err := validatePhone("phone", *req.Phone)
		if err != nil {
			return nil, err
		}
		phone = utils.NewNullString(cleaned)
	}

	inquiryType := models.InquiryTypeGeneral
	if req.InquiryType != "" {
		inquiryType = models.InquiryType(req.InquiryType)
		if !inquiryType.Valid() {
			return nil, newFieldError("inquiry_type", "is not a valid inquiry type")
		}
	}

	return &models.Inquiry{
		FullName:    fullName,
		Email:       email,
		Phone:       phone,
		InquiryType: inquiryType,
		Subject:     subject,
		Message:     message,
		Status:      models.InquiryStatusPending,
		IsActive:    true,
	}, nil
}

func (s *inquiryService) CreateInquiry(ctx context.Context, req CreateInquiryRequest) (*models.Inquiry, error) {
	inquiry, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}

	id, err := s.inquiryRepo.Create(s.db, inquiry)
	if err != nil {
		return nil, fmt.Errorf("failed to create inquiry in repository: %w", err)
	}

	created, err := s.inquiryRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load created inquiry: %w", err)
	}
	created.Decorate()

	s.invalidate(ctx, 0)
	s.dispatchNotifications(created)

	return created, nil
}

// dispatchNotifications queues the customer confirmation and admin alert.
// Both are fire-and-forget: the creation response never waits on delivery
// and a failed send is logged, not raised.
func (s *inquiryService) dispatchNotifications(inquiry *models.Inquiry) {
	if s.mailer == nil || s.dispatcher == nil {
		return
	}

	notify := *inquiry
	s.dispatcher.Submit(func(ctx context.Context) {
		if err := s.mailer.SendInquiryConfirmation(ctx, &notify); err != nil {
			utils.LogError(err, fmt.Sprintf("Failed to send confirmation email for inquiry #%d", notify.ID))
		}
	})
	s.dispatcher.Submit(func(ctx context.Context) {
		if err := s.mailer.SendAdminAlert(ctx, &notify); err != nil {
			utils.LogError(err, fmt.Sprintf("Failed to send admin alert for inquiry #%d", notify.ID))
		}
	})
}

func (s *inquiryService) GetInquiries(ctx context.Context) ([]models.Inquiry, error) {
	var cached []models.Inquiry
	if cacheGet(ctx, s.cache, cache.InquiryListKey(), &cached) {
		return cached, nil
	}

	inquiries, err := s.inquiryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	for i := range inquiries {
		inquiries[i].Decorate()
	}

	cacheSet(ctx, s.cache, cache.InquiryListKey(), inquiries, cache.InquiryListTTL)
	return inquiries, nil
}

func (s *inquiryService) GetInquiryByID(ctx context.Context, id int64) (*models.Inquiry, error) {
	var cached models.Inquiry
	if cacheGet(ctx, s.cache, cache.InquiryDetailKey(id), &cached) {
		return &cached, nil
	}

	inquiry, err := s.inquiryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to get inquiry by ID: %w", err)
	}
	inquiry.Decorate()

	cacheSet(ctx, s.cache, cache.InquiryDetailKey(id), inquiry, cache.InquiryDetailTTL)
	return inquiry, nil
}

func (s *inquiryService) UpdateInquiry(ctx context.Context, id int64, req UpdateInquiryRequest) (*models.Inquiry, error) {
	inquiry, err := s.inquiryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to find inquiry for update: %w", err)
	}

	if req.FullName != nil {
		fullName, err := validateMinLength("full_name", *req.FullName, 2)
		if err != nil {
			return nil, err
		}
		inquiry.FullName = fullName
	}
	if req.Email != nil {
		email, err := validateEmail("email", *req.Email)
		if err != nil {
			return nil, err
		}
		inquiry.Email = email
	}
	if req.Phone != nil {
		cleaned, err := validatePhone("phone", *req.Phone)
		if err != nil {
			return nil, err
		}
		inquiry.Phone = utils.NewNullString(cleaned)
	}
	if req.InquiryType != nil {
		inquiryType := models.InquiryType(*req.InquiryType)
		if !inquiryType.Valid() {
			return nil, newFieldError("inquiry_type", "is not a valid inquiry type")
		}
		inquiry.InquiryType = inquiryType
	}
	if req.Subject != nil {
		subject, err := validateMinLength("subject", *req.Subject, 5)
		if err != nil {
			return nil, err
		}
		inquiry.Subject = subject
	}
	if req.Message != nil {
		message, err := validateMinLength("message", *req.Message, 10)
		if err != nil {
			return nil, err
		}
		inquiry.Message = message
	}

	if err := s.inquiryRepo.Update(s.db, inquiry); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to update inquiry in repository: %w", err)
	}

	s.invalidate(ctx, id)
	inquiry.Decorate()
	return inquiry, nil
}

func (s *inquiryService) DeleteInquiry(ctx context.Context, id int64) error {
	if err := s.inquiryRepo.SoftDelete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInquiryNotFound
		}
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *inquiryService) UpdateInquiryStatus(ctx context.Context, id int64, req InquiryStatusUpdateRequest) (*models.Inquiry, error) {
	status := models.InquiryStatus(req.Status)
	if !status.Valid() {
		return nil, newFieldError("status", "is not a valid inquiry status")
	}

	inquiry, err := s.inquiryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to find inquiry for status update: %w", err)
	}

	inquiry.Status = status
	if req.AdminNotes != nil {
		inquiry.AdminNotes = req.AdminNotes
	}

	if err := s.inquiryRepo.Update(s.db, inquiry); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to update inquiry status: %w", err)
	}

	s.invalidate(ctx, id)
	inquiry.Decorate()
	return inquiry, nil
}

func (s *inquiryService) BulkUpdateStatus(ctx context.Context, req BulkInquiryStatusRequest) (int64, error) {
	status := models.InquiryStatus(req.Status)
	if !status.Valid() {
		return 0, newFieldError("status", "is not a valid inquiry status")
	}
	if len(req.IDs) == 0 {
		return 0, newFieldError("ids", "must contain at least one id")
	}

	affected, err := s.inquiryRepo.BulkUpdateStatus(s.db, req.IDs, status)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update inquiry status: %w", err)
	}

	keys := []string{cache.InquiryListKey(), cache.InquiryStatsKey(), cache.InquiryRecentKey()}
	for _, id := range req.IDs {
		keys = append(keys, cache.InquiryDetailKey(id))
	}
	cacheDel(ctx, s.cache, keys...)

	return affected, nil
}

func (s *inquiryService) GetRecentInquiries(ctx context.Context) ([]models.Inquiry, error) {
	var cached []models.Inquiry
	if cacheGet(ctx, s.cache, cache.InquiryRecentKey(), &cached) {
		return cached, nil
	}

	inquiries, err := s.inquiryRepo.Recent(recentInquiryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent inquiries: %w", err)
	}
	for i := range inquiries {
		inquiries[i].Decorate()
	}

	cacheSet(ctx, s.cache, cache.InquiryRecentKey(), inquiries, cache.InquiryRecentTTL)
	return inquiries, nil
}

func (s *inquiryService) GetStatistics(ctx context.Context) (*models.InquiryStats, error) {
	var cached models.InquiryStats
	if cacheGet(ctx, s.cache, cache.InquiryStatsKey(), &cached) {
		return &cached, nil
	}

	statusCounts, err := s.inquiryRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count inquiries by status: %w", err)
	}
	typeCounts, err := s.inquiryRepo.CountByType()
	if err != nil {
		return nil, fmt.Errorf("failed to count inquiries by type: %w", err)
	}
	recent, err := s.inquiryRepo.CountCreatedSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent inquiries: %w", err)
	}

	byType := map[string]models.InquiryTypeStat{}
	for _, inquiryType := range models.AllInquiryTypes() {
		byType[string(inquiryType)] = models.InquiryTypeStat{
			Count:       typeCounts[inquiryType],
			DisplayName: inquiryType.Display(),
		}
	}

	total := 0
	for _, count := range statusCounts {
		total += count
	}

	stats := &models.InquiryStats{
		Total:           total,
		Pending:         statusCounts[models.InquiryStatusPending],
		InProgress:      statusCounts[models.InquiryStatusInProgress],
		Resolved:        statusCounts[models.InquiryStatusResolved],
		Closed:          statusCounts[models.InquiryStatusClosed],
		ByType:          byType,
		RecentInquiries: recent,
	}

	cacheSet(ctx, s.cache, cache.InquiryStatsKey(), stats, cache.InquiryStatsTTL)
	return stats, nil
}

// invalidate wipes the inquiry caches after a write. There is no partial
// invalidation: a single record change invalidates the whole entity, the next
// read is cold. Pass id 0 when no detail entry exists yet.
func (s *inquiryService) invalidate(ctx context.Context, id int64) {
	keys := []string{cache.InquiryListKey(), cache.InquiryStatsKey(), cache.InquiryRecentKey()}
	if id > 0 {
		keys = append(keys, cache.InquiryDetailKey(id))
	}
	cacheDel(ctx, s.cache, keys...)
}
