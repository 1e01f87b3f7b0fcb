package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tour_travels_backend/internal/models"

	"github.com/lib/pq"
)

// ReviewFilter narrows a review listing. Nil fields are ignored.
type ReviewFilter struct {
	Status      *models.ReviewStatus
	Rating      *int
	Destination *models.Destination
}

// ReviewRepository defines the interface for review database operations.
type ReviewRepository interface {
	Create(executor SQLExecutor, review *models.Review) (int64, error)
	GetByID(id int64) (*models.Review, error)
	List(filter ReviewFilter) ([]models.Review, error)
	ListApproved(page, pageSize int) ([]models.Review, int, error)
	ListFeatured() ([]models.Review, error)
	ListByDestination(destination models.Destination, page, pageSize int) ([]models.Review, int, error)
	Update(executor SQLExecutor, review *models.Review) error
	SoftDelete(executor SQLExecutor, id int64) error
	BulkUpdateStatus(executor SQLExecutor, ids []int64, status models.ReviewStatus) (int64, error)
	BulkFeature(executor SQLExecutor, ids []int64) (int64, error)
	CountByStatus() (map[models.ReviewStatus]int, error)
	CountFeatured() (int, error)
	CountByDestination() (map[models.Destination]int, error)
	CountByRating() (map[int]int, error)
	AverageApprovedRating() (float64, error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, customer_name, customer_email, destination, package_name, rating, title, review_text, travel_date, service_rating, value_rating, accommodation_rating, status, is_featured, admin_notes, is_active, created_at, updated_at`

func scanReview(row interface{ Scan(dest ...interface{}) error }) (*models.Review, error) {
	review := &models.Review{}
	var travelDate time.Time
	err := row.Scan(
		&review.ID, &review.CustomerName, &review.CustomerEmail, &review.Destination,
		&review.PackageName, &review.Rating, &review.Title, &review.ReviewText,
		&travelDate, &review.ServiceRating, &review.ValueRating, &review.AccommodationRating,
		&review.Status, &review.IsFeatured, &review.AdminNotes, &review.IsActive,
		&review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	review.TravelDate = travelDate.Format("2006-01-02")
	return review, nil
}

// Create inserts a new review, assigning id and timestamps.
func (r *reviewRepository) Create(executor SQLExecutor, review *models.Review) (int64, error) {
	query := `INSERT INTO reviews (customer_name, customer_email, destination, package_name, rating, title, review_text, travel_date, service_rating, value_rating, accommodation_rating, status, is_featured, admin_notes, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	          RETURNING id`

	now := time.Now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	if review.UpdatedAt.IsZero() {
		review.UpdatedAt = now
	}

	err := executor.QueryRow(query,
		review.CustomerName, review.CustomerEmail, review.Destination, review.PackageName,
		review.Rating, review.Title, review.ReviewText, review.TravelDate,
		review.ServiceRating, review.ValueRating, review.AccommodationRating,
		review.Status, review.IsFeatured, review.AdminNotes, review.IsActive,
		review.CreatedAt, review.UpdatedAt,
	).Scan(&review.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating review: %v", ErrDatabaseError, err)
	}
	return review.ID, nil
}

// GetByID retrieves a review by id regardless of its active flag.
func (r *reviewRepository) GetByID(id int64) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting review by ID %d: %v", ErrDatabaseError, id, err)
	}
	return review, nil
}

// List returns active reviews matching the filter, newest first.
func (r *reviewRepository) List(filter ReviewFilter) ([]models.Review, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + reviewColumns + ` FROM reviews WHERE is_active = TRUE`)

	var args []interface{}
	argCount := 1
	if filter.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}
	if filter.Rating != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND rating = $%d", argCount))
		args = append(args, *filter.Rating)
		argCount++
	}
	if filter.Destination != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND destination = $%d", argCount))
		args = append(args, *filter.Destination)
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	reviews, _, err := r.queryReviews(queryBuilder.String(), false, args...)
	return reviews, err
}

// ListApproved returns approved, active reviews with pagination and total count.
func (r *reviewRepository) ListApproved(page, pageSize int) ([]models.Review, int, error) {
	query := `SELECT ` + reviewColumns + `, COUNT(*) OVER() AS total_count
	          FROM reviews WHERE status = 'approved' AND is_active = TRUE
	          ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	offset := (page - 1) * pageSize
	return r.queryReviews(query, true, pageSize, offset)
}

// ListFeatured returns approved, featured, active reviews, newest first.
func (r *reviewRepository) ListFeatured() ([]models.Review, error) {
	query := `SELECT ` + reviewColumns + `
	          FROM reviews WHERE status = 'approved' AND is_featured = TRUE AND is_active = TRUE
	          ORDER BY created_at DESC`
	reviews, _, err := r.queryReviews(query, false)
	return reviews, err
}

// ListByDestination returns approved, active reviews for a destination with
// pagination and total count.
func (r *reviewRepository) ListByDestination(destination models.Destination, page, pageSize int) ([]models.Review, int, error) {
	query := `SELECT ` + reviewColumns + `, COUNT(*) OVER() AS total_count
	          FROM reviews WHERE destination = $1 AND status = 'approved' AND is_active = TRUE
	          ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	offset := (page - 1) * pageSize
	return r.queryReviews(query, true, destination, pageSize, offset)
}

func (r *reviewRepository) queryReviews(query string, withTotal bool, args ...interface{}) ([]models.Review, int, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying reviews: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	totalCount := 0
	for rows.Next() {
		review := models.Review{}
		var travelDate time.Time
		dest := []interface{}{
			&review.ID, &review.CustomerName, &review.CustomerEmail, &review.Destination,
			&review.PackageName, &review.Rating, &review.Title, &review.ReviewText,
			&travelDate, &review.ServiceRating, &review.ValueRating, &review.AccommodationRating,
			&review.Status, &review.IsFeatured, &review.AdminNotes, &review.IsActive,
			&review.CreatedAt, &review.UpdatedAt,
		}
		if withTotal {
			dest = append(dest, &totalCount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning review: %v", ErrDatabaseError, err)
		}
		review.TravelDate = travelDate.Format("2006-01-02")
		reviews = append(reviews, review)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating review rows: %v", ErrDatabaseError, err)
	}
	return reviews, totalCount, nil
}

// Update persists mutable review fields and refreshes updated_at.
func (r *reviewRepository) Update(executor SQLExecutor, review *models.Review) error {
	query := `UPDATE reviews SET
	            customer_name = $1, customer_email = $2, destination = $3, package_name = $4,
	            rating = $5, title = $6, review_text = $7, travel_date = $8,
	            service_rating = $9, value_rating = $10, accommodation_rating = $11,
	            status = $12, is_featured = $13, admin_notes = $14, is_active = $15, updated_at = $16
	          WHERE id = $17`

	review.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		review.CustomerName, review.CustomerEmail, review.Destination, review.PackageName,
		review.Rating, review.Title, review.ReviewText, review.TravelDate,
		review.ServiceRating, review.ValueRating, review.AccommodationRating,
		review.Status, review.IsFeatured, review.AdminNotes, review.IsActive,
		review.UpdatedAt, review.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating review ID %d: %v", ErrDatabaseError, review.ID, err)
	}
	return checkAffected(result, review.ID)
}

// SoftDelete marks a review inactive. The record is never purged.
func (r *reviewRepository) SoftDelete(executor SQLExecutor, id int64) error {
	query := `UPDATE reviews SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: soft deleting review ID %d: %v", ErrDatabaseError, id, err)
	}
	return checkAffected(result, id)
}

// BulkUpdateStatus applies a status to every review in ids and returns the
// number of rows changed.
func (r *reviewRepository) BulkUpdateStatus(executor SQLExecutor, ids []int64, status models.ReviewStatus) (int64, error) {
	query := `UPDATE reviews SET status = $1, updated_at = $2 WHERE id = ANY($3) AND is_active = TRUE`
	result, err := executor.Exec(query, status, time.Now(), pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("%w: bulk updating review status: %v", ErrDatabaseError, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for bulk status update: %v", ErrDatabaseError, err)
	}
	return affected, nil
}

// BulkFeature marks reviews featured. Only already-approved, active reviews
// are changed; the rest of ids are silently skipped.
func (r *reviewRepository) BulkFeature(executor SQLExecutor, ids []int64) (int64, error) {
	query := `UPDATE reviews SET is_featured = TRUE, updated_at = $1
	          WHERE id = ANY($2) AND status = 'approved' AND is_active = TRUE`
	result, err := executor.Exec(query, time.Now(), pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("%w: bulk featuring reviews: %v", ErrDatabaseError, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for bulk feature: %v", ErrDatabaseError, err)
	}
	return affected, nil
}

// CountByStatus counts active reviews grouped by status.
func (r *reviewRepository) CountByStatus() (map[models.ReviewStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM reviews WHERE is_active = TRUE GROUP BY status`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: counting reviews by status: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := map[models.ReviewStatus]int{}
	for rows.Next() {
		var status models.ReviewStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning review status count: %v", ErrDatabaseError, err)
		}
		counts[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating review status counts: %v", ErrDatabaseError, err)
	}
	return counts, nil
}

// CountFeatured counts approved, featured, active reviews.
func (r *reviewRepository) CountFeatured() (int, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE status = 'approved' AND is_featured = TRUE AND is_active = TRUE`
	var count int
	if err := r.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting featured reviews: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// CountByDestination counts approved, active reviews grouped by destination.
func (r *reviewRepository) CountByDestination() (map[models.Destination]int, error) {
	query := `SELECT destination, COUNT(*) FROM reviews WHERE status = 'approved' AND is_active = TRUE GROUP BY destination`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: counting reviews by destination: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := map[models.Destination]int{}
	for rows.Next() {
		var destination models.Destination
		var count int
		if err := rows.Scan(&destination, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning destination count: %v", ErrDatabaseError, err)
		}
		counts[destination] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating destination counts: %v", ErrDatabaseError, err)
	}
	return counts, nil
}

// CountByRating counts approved, active reviews grouped by overall rating.
func (r *reviewRepository) CountByRating() (map[int]int, error) {
	query := `SELECT rating, COUNT(*) FROM reviews WHERE status = 'approved' AND is_active = TRUE GROUP BY rating`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: counting reviews by rating: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := map[int]int{}
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning rating count: %v", ErrDatabaseError, err)
		}
		counts[rating] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rating counts: %v", ErrDatabaseError, err)
	}
	return counts, nil
}

// AverageApprovedRating returns the mean overall rating of approved, active
// reviews rounded to two decimals, 0 when there are none.
func (r *reviewRepository) AverageApprovedRating() (float64, error) {
	query := `SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0) FROM reviews WHERE status = 'approved' AND is_active = TRUE`
	var avg float64
	if err := r.db.QueryRow(query).Scan(&avg); err != nil {
		return 0, fmt.Errorf("%w: averaging approved ratings: %v", ErrDatabaseError, err)
	}
	return avg, nil
}
