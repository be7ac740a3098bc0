package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

const (
	DefaultRatingsAverage  = 4.5
	DefaultRatingsQuantity = 0
)

// GeoPoint is a GeoJSON point.
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
}

// TourLocation is an ordered waypoint along a tour.
type TourLocation struct {
	GeoPoint `bson:",inline"`
	Day      int `json:"day" bson:"day"`
}

// Tour is a bookable product. RatingsAverage and RatingsQuantity are derived
// from the tour's reviews and are not user-writable; guides are held as
// references and expanded on read.
type Tour struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name            string               `json:"name" bson:"name" validate:"required,min=10,max=40,tour_name"`
	Slug            string               `json:"slug,omitempty" bson:"slug,omitempty"`
	Duration        int                  `json:"duration" bson:"duration" validate:"required"`
	MaxGroupSize    int                  `json:"maxGroupSize" bson:"maxGroupSize" validate:"required"`
	Difficulty      Difficulty           `json:"difficulty" bson:"difficulty" validate:"required,difficulty"`
	RatingsAverage  float64              `json:"ratingsAverage" bson:"ratingsAverage"`
	RatingsQuantity int64                `json:"ratingsQuantity" bson:"ratingsQuantity"`
	Price           float64              `json:"price" bson:"price" validate:"required,gt=0"`
	PriceDiscount   float64              `json:"priceDiscount,omitempty" bson:"priceDiscount,omitempty"`
	Summary         string               `json:"summary" bson:"summary" validate:"required"`
	Description     string               `json:"description,omitempty" bson:"description,omitempty"`
	ImageCover      string               `json:"imageCover" bson:"imageCover" validate:"required"`
	Images          []string             `json:"images,omitempty" bson:"images,omitempty"`
	StartDates      []time.Time          `json:"startDates,omitempty" bson:"startDates,omitempty"`
	SecretTour      bool                 `json:"secretTour" bson:"secretTour"`
	StartLocation   *GeoPoint            `json:"startLocation,omitempty" bson:"startLocation,omitempty"`
	Locations       []TourLocation       `json:"locations,omitempty" bson:"locations,omitempty"`
	Guides          []primitive.ObjectID `json:"guides,omitempty" bson:"guides,omitempty"`
	CreatedAt       time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// Validate applies the struct rules plus the cross-field discount check,
// which the tag syntax cannot express for an optional field.
func (t *Tour) Validate(validateStruct func(interface{}) error) error {
	if err := validateStruct(t); err != nil {
		return err
	}
	if t.PriceDiscount != 0 && t.PriceDiscount >= t.Price {
		return ErrDiscountTooHigh
	}
	return nil
}

// TourStats is one bucket of the stats aggregation, grouped by difficulty.
type TourStats struct {
	Difficulty Difficulty `json:"difficulty" bson:"_id"`
	NumTours   int64      `json:"numTours" bson:"numTours"`
	NumRatings int64      `json:"numRatings" bson:"numRatings"`
	AvgRating  float64    `json:"avgRating" bson:"avgRating"`
	AvgPrice   float64    `json:"avgPrice" bson:"avgPrice"`
	MinPrice   float64    `json:"minPrice" bson:"minPrice"`
	MaxPrice   float64    `json:"maxPrice" bson:"maxPrice"`
}
