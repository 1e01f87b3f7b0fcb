package models

import (
	"math"
	"strings"
	"time"
)

// Destination is the closed set of tour regions a review can target.
type Destination string

const (
	DestinationKashmir   Destination = "kashmir"
	DestinationKerala    Destination = "kerala"
	DestinationGoa       Destination = "goa"
	DestinationRajasthan Destination = "rajasthan"
	DestinationHimachal  Destination = "himachal"
	DestinationAndaman   Destination = "andaman"
	DestinationDubai     Destination = "dubai"
	DestinationThailand  Destination = "thailand"
	DestinationBali      Destination = "bali"
	DestinationEurope    Destination = "europe"
	DestinationOther     Destination = "other"
)

var destinationDisplay = map[Destination]string{
	DestinationKashmir:   "Kashmir",
	DestinationKerala:    "Kerala",
	DestinationGoa:       "Goa",
	DestinationRajasthan: "Rajasthan",
	DestinationHimachal:  "Himachal Pradesh",
	DestinationAndaman:   "Andaman & Nicobar",
	DestinationDubai:     "Dubai",
	DestinationThailand:  "Thailand",
	DestinationBali:      "Bali",
	DestinationEurope:    "Europe",
	DestinationOther:     "Other",
}

// AllDestinations returns the destination enum in display order.
func AllDestinations() []Destination {
	return []Destination{
		DestinationKashmir,
		DestinationKerala,
		DestinationGoa,
		DestinationRajasthan,
		DestinationHimachal,
		DestinationAndaman,
		DestinationDubai,
		DestinationThailand,
		DestinationBali,
		DestinationEurope,
		DestinationOther,
	}
}

func (d Destination) Valid() bool {
	_, ok := destinationDisplay[d]
	return ok
}

func (d Destination) Display() string {
	return destinationDisplay[d]
}

// ReviewStatus is the moderation status of a review.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

var reviewStatusDisplay = map[ReviewStatus]string{
	ReviewStatusPending:  "Pending",
	ReviewStatusApproved: "Approved",
	ReviewStatusRejected: "Rejected",
}

func (s ReviewStatus) Valid() bool {
	_, ok := reviewStatusDisplay[s]
	return ok
}

func (s ReviewStatus) Display() string {
	return reviewStatusDisplay[s]
}

// Review represents a customer review of a destination, subject to moderation.
// AdminNotes is internal only and never serialized to clients.
type Review struct {
	ID                  int64        `json:"id" db:"id"`
	CustomerName        string       `json:"customer_name" db:"customer_name"`
	CustomerEmail       string       `json:"customer_email" db:"customer_email"`
	Destination         Destination  `json:"destination" db:"destination"`
	DestinationDisplay  string       `json:"destination_display"`
	PackageName         *string      `json:"package_name,omitempty" db:"package_name"`
	Rating              int          `json:"rating" db:"rating"`
	Title               string       `json:"title" db:"title"`
	ReviewText          string       `json:"review_text" db:"review_text"`
	TravelDate          string       `json:"travel_date" db:"travel_date"` // YYYY-MM-DD
	ServiceRating       int          `json:"service_rating" db:"service_rating"`
	ValueRating         int          `json:"value_rating" db:"value_rating"`
	AccommodationRating int          `json:"accommodation_rating" db:"accommodation_rating"`
	Status              ReviewStatus `json:"status" db:"status"`
	StatusDisplay       string       `json:"status_display"`
	IsFeatured          bool         `json:"is_featured" db:"is_featured"`
	AdminNotes          *string      `json:"-" db:"admin_notes"`
	IsActive            bool         `json:"is_active" db:"is_active"`
	CreatedAt           time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at" db:"updated_at"`
	AverageRating       float64      `json:"average_rating"`
	StarDisplay         string       `json:"star_display"`
}

// ComputeAverageRating returns the mean of the four rating fields rounded to
// one decimal place.
func (r *Review) ComputeAverageRating() float64 {
	sum := float64(r.Rating + r.ServiceRating + r.ValueRating + r.AccommodationRating)
	return math.Round(sum/4*10) / 10
}

// Stars renders the overall rating as a five-glyph star string.
func (r *Review) Stars() string {
	rating := r.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// Decorate fills the derived presentation fields before serialization.
func (r *Review) Decorate() {
	r.DestinationDisplay = r.Destination.Display()
	r.StatusDisplay = r.Status.Display()
	r.AverageRating = r.ComputeAverageRating()
	r.StarDisplay = r.Stars()
}

// DestinationStat is the per-destination slice of the review statistics.
type DestinationStat struct {
	Count       int    `json:"count"`
	DisplayName string `json:"display_name"`
}

// ReviewStats aggregates review counts and ratings. Rating and destination
// breakdowns cover approved, active reviews only.
type ReviewStats struct {
	TotalReviews    int                        `json:"total_reviews"`
	ApprovedReviews int                        `json:"approved_reviews"`
	PendingReviews  int                        `json:"pending_reviews"`
	AverageRating   float64                    `json:"average_rating"`
	FeaturedReviews int                        `json:"featured_reviews"`
	ByDestination   map[string]DestinationStat `json:"by_destination"`
	ByRating        map[string]int             `json:"by_rating"`
}
