package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tour_travels_backend/internal/models"

	"github.com/lib/pq"
)

// InquiryRepository defines the interface for contact-inquiry database operations.
type InquiryRepository interface {
	Create(executor SQLExecutor, inquiry *models.Inquiry) (int64, error)
	GetByID(id int64) (*models.Inquiry, error)
	List() ([]models.Inquiry, error)
	Recent(limit int) ([]models.Inquiry, error)
	Update(executor SQLExecutor, inquiry *models.Inquiry) error
	SoftDelete(executor SQLExecutor, id int64) error
	BulkUpdateStatus(executor SQLExecutor, ids []int64, status models.InquiryStatus) (int64, error)
	CountByStatus() (map[models.InquiryStatus]int, error)
	CountByType() (map[models.InquiryType]int, error)
	CountCreatedSince(since time.Time) (int, error)
}

type inquiryRepository struct {
	db *sql.DB
}

// NewInquiryRepository creates a new instance of InquiryRepository.
func NewInquiryRepository(db *sql.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

const inquiryColumns = `id, full_name, email, phone, inquiry_type, subject, message, status, admin_notes, is_active, created_at, updated_at`

func scanInquiry(row interface{ Scan(dest ...interface{}) error }) (*models.Inquiry, error) {
	inquiry := &models.Inquiry{}
	err := row.Scan(
		&inquiry.ID, &inquiry.FullName, &inquiry.Email, &inquiry.Phone,
		&inquiry.InquiryType, &inquiry.Subject, &inquiry.Message, &inquiry.Status,
		&inquiry.AdminNotes, &inquiry.IsActive, &inquiry.CreatedAt, &inquiry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inquiry, nil
}

// Create inserts a new inquiry, assigning id and timestamps.
func (r *inquiryRepository) Create(executor SQLExecutor, inquiry *models.Inquiry) (int64, error) {
	query := `INSERT INTO contact_inquiries (full_name, email, phone, inquiry_type, subject, message, status, admin_notes, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	now := time.Now()
	if inquiry.CreatedAt.IsZero() {
		inquiry.CreatedAt = now
	}
	if inquiry.UpdatedAt.IsZero() {
		inquiry.UpdatedAt = now
	}

	err := executor.QueryRow(query,
		inquiry.FullName, inquiry.Email, inquiry.Phone, inquiry.InquiryType,
		inquiry.Subject, inquiry.Message, inquiry.Status, inquiry.AdminNotes,
		inquiry.IsActive, inquiry.CreatedAt, inquiry.UpdatedAt,
	).Scan(&inquiry.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating inquiry: %v", ErrDatabaseError, err)
	}
	return inquiry.ID, nil
}

// GetByID retrieves an inquiry by id regardless of its active flag, so that
// soft-deleted records remain queryable by identity.
func (r *inquiryRepository) GetByID(id int64) (*models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM contact_inquiries WHERE id = $1`

	inquiry, err := scanInquiry(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting inquiry by ID %d: %v", ErrDatabaseError, id, err)
	}
	return inquiry, nil
}

// List returns all active inquiries, newest first.
func (r *inquiryRepository) List() ([]models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM contact_inquiries WHERE is_active = TRUE ORDER BY created_at DESC`
	return r.queryInquiries(query)
}

// Recent returns the newest active inquiries up to limit.
func (r *inquiryRepository) Recent(limit int) ([]models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM contact_inquiries WHERE is_active = TRUE ORDER BY created_at DESC LIMIT $1`
	return r.queryInquiries(query, limit)
}

func (r *inquiryRepository) queryInquiries(query string, args ...interface{}) ([]models.Inquiry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inquiries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	inquiries := []models.Inquiry{}
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning inquiry: %v", ErrDatabaseError, err)
		}
		inquiries = append(inquiries, *inquiry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inquiry rows: %v", ErrDatabaseError, err)
	}
	return inquiries, nil
}

// Update persists mutable inquiry fields and refreshes updated_at.
func (r *inquiryRepository) Update(executor SQLExecutor, inquiry *models.Inquiry) error {
	query := `UPDATE contact_inquiries SET
	            full_name = $1, email = $2, phone = $3, inquiry_type = $4,
	            subject = $5, message = $6, status = $7, admin_notes = $8,
	            is_active = $9, updated_at = $10
	          WHERE id = $11`

	inquiry.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		inquiry.FullName, inquiry.Email, inquiry.Phone, inquiry.InquiryType,
		inquiry.Subject, inquiry.Message, inquiry.Status, inquiry.AdminNotes,
		inquiry.IsActive, inquiry.UpdatedAt, inquiry.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating inquiry ID %d: %v", ErrDatabaseError, inquiry.ID, err)
	}
	return checkAffected(result, inquiry.ID)
}

// SoftDelete marks an inquiry inactive. The record is never purged.
func (r *inquiryRepository) SoftDelete(executor SQLExecutor, id int64) error {
	query := `UPDATE contact_inquiries SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: soft deleting inquiry ID %d: %v", ErrDatabaseError, id, err)
	}
	return checkAffected(result, id)
}

// BulkUpdateStatus applies a status to every inquiry in ids and returns the
// number of rows changed.
func (r *inquiryRepository) BulkUpdateStatus(executor SQLExecutor, ids []int64, status models.InquiryStatus) (int64, error) {
	query := `UPDATE contact_inquiries SET status = $1, updated_at = $2 WHERE id = ANY($3) AND is_active = TRUE`
	result, err := executor.Exec(query, status, time.Now(), pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("%w: bulk updating inquiry status: %v", ErrDatabaseError, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for bulk status update: %v", ErrDatabaseError, err)
	}
	return affected, nil
}

// CountByStatus counts active inquiries grouped by status.
func (r *inquiryRepository) CountByStatus() (map[models.InquiryStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM contact_inquiries WHERE is_active = TRUE GROUP BY status`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: counting inquiries by status: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := map[models.InquiryStatus]int{}
	for rows.Next() {
		var status models.InquiryStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning status count: %v", ErrDatabaseError, err)
		}
		counts[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating status counts: %v", ErrDatabaseError, err)
	}
	return counts, nil
}

// CountByType counts active inquiries grouped by inquiry type.
func (r *inquiryRepository) CountByType() (map[models.InquiryType]int, error) {
	query := `SELECT inquiry_type, COUNT(*) FROM contact_inquiries WHERE is_active = TRUE GROUP BY inquiry_type`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: counting inquiries by type: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := map[models.InquiryType]int{}
	for rows.Next() {
		var inquiryType models.InquiryType
		var count int
		if err := rows.Scan(&inquiryType, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning type count: %v", ErrDatabaseError, err)
		}
		counts[inquiryType] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating type counts: %v", ErrDatabaseError, err)
	}
	return counts, nil
}

// CountCreatedSince counts active inquiries created at or after since.
func (r *inquiryRepository) CountCreatedSince(since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM contact_inquiries WHERE is_active = TRUE AND created_at >= $1`
	var count int
	if err := r.db.QueryRow(query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting recent inquiries: %v", ErrDatabaseError, err)
	}
	return count, nil
}

func checkAffected(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for ID %d: %v", ErrDatabaseError, id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
