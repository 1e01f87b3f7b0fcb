package models

import "time"

// InquiryType categorizes a contact inquiry.
type InquiryType string

const (
	InquiryTypeGeneral   InquiryType = "general"
	InquiryTypeBooking   InquiryType = "booking"
	InquiryTypePackage   InquiryType = "package"
	InquiryTypeComplaint InquiryType = "complaint"
	InquiryTypeFeedback  InquiryType = "feedback"
)

var inquiryTypeDisplay = map[InquiryType]string{
	InquiryTypeGeneral:   "General Inquiry",
	InquiryTypeBooking:   "Booking Related",
	InquiryTypePackage:   "Package Information",
	InquiryTypeComplaint: "Complaint",
	InquiryTypeFeedback:  "Feedback",
}

// AllInquiryTypes returns the closed set of inquiry types in display order.
func AllInquiryTypes() []InquiryType {
	return []InquiryType{
		InquiryTypeGeneral,
		InquiryTypeBooking,
		InquiryTypePackage,
		InquiryTypeComplaint,
		InquiryTypeFeedback,
	}
}

// Valid reports whether t is a member of the inquiry type enum.
func (t InquiryType) Valid() bool {
	_, ok := inquiryTypeDisplay[t]
	return ok
}

// Display returns the human-readable name for the inquiry type.
func (t InquiryType) Display() string {
	return inquiryTypeDisplay[t]
}

// InquiryStatus is the workflow status of a contact inquiry.
type InquiryStatus string

const (
	InquiryStatusPending    InquiryStatus = "pending"
	InquiryStatusInProgress InquiryStatus = "in_progress"
	InquiryStatusResolved   InquiryStatus = "resolved"
	InquiryStatusClosed     InquiryStatus = "closed"
)

var inquiryStatusDisplay = map[InquiryStatus]string{
	InquiryStatusPending:    "Pending",
	InquiryStatusInProgress: "In Progress",
	InquiryStatusResolved:   "Resolved",
	InquiryStatusClosed:     "Closed",
}

func (s InquiryStatus) Valid() bool {
	_, ok := inquiryStatusDisplay[s]
	return ok
}

func (s InquiryStatus) Display() string {
	return inquiryStatusDisplay[s]
}

// Inquiry represents a customer contact inquiry.
// AdminNotes is internal only and never serialized to clients.
type Inquiry struct {
	ID                 int64         `json:"id" db:"id"`
	FullName           string        `json:"full_name" db:"full_name"`
	Email              string        `json:"email" db:"email"`
	Phone              *string       `json:"phone,omitempty" db:"phone"`
	InquiryType        InquiryType   `json:"inquiry_type" db:"inquiry_type"`
	InquiryTypeDisplay string        `json:"inquiry_type_display"`
	Subject            string        `json:"subject" db:"subject"`
	Message            string        `json:"message" db:"message"`
	Status             InquiryStatus `json:"status" db:"status"`
	StatusDisplay      string        `json:"status_display"`
	AdminNotes         *string       `json:"-" db:"admin_notes"`
	IsActive           bool          `json:"is_active" db:"is_active"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`
	InquiryAgeDays     int           `json:"inquiry_age_days"`
}

// Decorate fills the derived presentation fields before serialization.
func (i *Inquiry) Decorate() {
	i.InquiryTypeDisplay = i.InquiryType.Display()
	i.StatusDisplay = i.Status.Display()
	i.InquiryAgeDays = int(time.Since(i.CreatedAt).Hours() / 24)
}

// InquiryTypeStat is the per-type slice of the inquiry statistics.
type InquiryTypeStat struct {
	Count       int    `json:"count"`
	DisplayName string `json:"display_name"`
}

// InquiryStats aggregates inquiry counts by status and type.
type InquiryStats struct {
	Total           int                        `json:"total"`
	Pending         int                        `json:"pending"`
	InProgress      int                        `json:"in_progress"`
	Resolved        int                        `json:"resolved"`
	Closed          int                        `json:"closed"`
	ByType          map[string]InquiryTypeStat `json:"by_type"`
	RecentInquiries int                        `json:"recent_inquiries"`
}
