package models_test

import (
	"testing"

	"gotours/internal/models"
	"gotours/internal/utils"

	"github.com/stretchr/testify/assert"
)

func validTour() *models.Tour {
	return &models.Tour{
		Name:         "The Forest Hiker",
		Duration:     5,
		MaxGroupSize: 25,
		Difficulty:   models.DifficultyEasy,
		Price:        397,
		Summary:      "Breathtaking hike through the Canadian Banff National Park",
		ImageCover:   "tour-1-cover.jpg",
	}
}

func TestTourValidate(t *testing.T) {
	assert.NoError(t, validTour().Validate(utils.ValidateStruct))
}

func TestTourValidateNameLength(t *testing.T) {
	tour := validTour()
	tour.Name = "Too short"
	assert.Error(t, tour.Validate(utils.ValidateStruct))

	tour.Name = "This name is way way way too long for a tour"
	assert.Error(t, tour.Validate(utils.ValidateStruct))
}

func TestTourValidateNameCharacters(t *testing.T) {
	tour := validTour()
	tour.Name = "Tour number 1!"
	assert.Error(t, tour.Validate(utils.ValidateStruct))
}

func TestTourValidateDifficulty(t *testing.T) {
	tour := validTour()
	tour.Difficulty = "impossible"
	assert.Error(t, tour.Validate(utils.ValidateStruct))
}

func TestTourValidateDiscount(t *testing.T) {
	tour := validTour()
	tour.PriceDiscount = 100
	assert.NoError(t, tour.Validate(utils.ValidateStruct))

	tour.PriceDiscount = tour.Price
	assert.ErrorIs(t, tour.Validate(utils.ValidateStruct), models.ErrDiscountTooHigh)

	tour.PriceDiscount = tour.Price + 1
	assert.ErrorIs(t, tour.Validate(utils.ValidateStruct), models.ErrDiscountTooHigh)
}

func TestReviewValidate(t *testing.T) {
	review := &models.Review{
		Review: "An absolutely wonderful experience from start to finish",
		Rating: 5,
	}
	// Missing tour and user references fail.
	assert.Error(t, utils.ValidateStruct(review))
}
