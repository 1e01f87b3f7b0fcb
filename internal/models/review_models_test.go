package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeAverageRating(t *testing.T) {
	review := Review{Rating: 5, ServiceRating: 4, ValueRating: 3, AccommodationRating: 5}
	assert.Equal(t, 4.3, review.ComputeAverageRating())

	allFives := Review{Rating: 5, ServiceRating: 5, ValueRating: 5, AccommodationRating: 5}
	assert.Equal(t, 5.0, allFives.ComputeAverageRating())

	mixed := Review{Rating: 1, ServiceRating: 2, ValueRating: 2, AccommodationRating: 2}
	assert.Equal(t, 1.8, mixed.ComputeAverageRating())
}

func TestStars(t *testing.T) {
	review := Review{Rating: 3}
	assert.Equal(t, "★★★☆☆", review.Stars())

	review.Rating = 5
	assert.Equal(t, "★★★★★", review.Stars())

	review.Rating = 0
	assert.Equal(t, "☆☆☆☆☆", review.Stars())
}

func TestReviewDecorate(t *testing.T) {
	review := Review{
		Destination:         DestinationKashmir,
		Rating:              4,
		ServiceRating:       4,
		ValueRating:         4,
		AccommodationRating: 4,
		Status:              ReviewStatusApproved,
		CreatedAt:           time.Now(),
	}
	review.Decorate()

	assert.Equal(t, "Kashmir", review.DestinationDisplay)
	assert.Equal(t, "Approved", review.StatusDisplay)
	assert.Equal(t, 4.0, review.AverageRating)
	assert.Equal(t, "★★★★☆", review.StarDisplay)
}

func TestDestinationValid(t *testing.T) {
	for _, destination := range AllDestinations() {
		assert.True(t, destination.Valid(), string(destination))
		assert.NotEmpty(t, destination.Display(), string(destination))
	}
	assert.False(t, Destination("atlantis").Valid())
	assert.False(t, Destination("").Valid())
}

func TestDestinationDisplayNames(t *testing.T) {
	assert.Equal(t, "Himachal Pradesh", DestinationHimachal.Display())
	assert.Equal(t, "Andaman & Nicobar", DestinationAndaman.Display())
	assert.Equal(t, "Other", DestinationOther.Display())
}

func TestReviewStatusValid(t *testing.T) {
	assert.True(t, ReviewStatusPending.Valid())
	assert.True(t, ReviewStatusApproved.Valid())
	assert.True(t, ReviewStatusRejected.Valid())
	assert.False(t, ReviewStatus("archived").Valid())
}
