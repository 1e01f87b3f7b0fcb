package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInquiryTypeValid(t *testing.T) {
	for _, inquiryType := range AllInquiryTypes() {
		assert.True(t, inquiryType.Valid(), string(inquiryType))
		assert.NotEmpty(t, inquiryType.Display(), string(inquiryType))
	}
	assert.False(t, InquiryType("spam").Valid())
}

func TestInquiryTypeDisplayNames(t *testing.T) {
	assert.Equal(t, "General Inquiry", InquiryTypeGeneral.Display())
	assert.Equal(t, "Booking Related", InquiryTypeBooking.Display())
	assert.Equal(t, "Package Information", InquiryTypePackage.Display())
}

func TestInquiryStatusValid(t *testing.T) {
	assert.True(t, InquiryStatusPending.Valid())
	assert.True(t, InquiryStatusInProgress.Valid())
	assert.True(t, InquiryStatusResolved.Valid())
	assert.True(t, InquiryStatusClosed.Valid())
	assert.False(t, InquiryStatus("reopened").Valid())
}

func TestInquiryDecorate(t *testing.T) {
	inquiry := Inquiry{
		InquiryType: InquiryTypeBooking,
		Status:      InquiryStatusInProgress,
		CreatedAt:   time.Now().AddDate(0, 0, -3),
	}
	inquiry.Decorate()

	assert.Equal(t, "Booking Related", inquiry.InquiryTypeDisplay)
	assert.Equal(t, "In Progress", inquiry.StatusDisplay)
	assert.Equal(t, 3, inquiry.InquiryAgeDays)
}

func TestInquiryDecorateFreshRecord(t *testing.T) {
	inquiry := Inquiry{
		InquiryType: InquiryTypeGeneral,
		Status:      InquiryStatusPending,
		CreatedAt:   time.Now(),
	}
	inquiry.Decorate()

	assert.Equal(t, 0, inquiry.InquiryAgeDays)
}
