package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrDiscountTooHigh = errors.New("priceDiscount must be below the regular price")

// Review references exactly one tour and one user. Writing a review triggers
// recomputation of the owning tour's rating aggregates.
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Review    string             `json:"review" bson:"review" validate:"required,min=10,max=5000"`
	Rating    int                `json:"rating" bson:"rating" validate:"required,gte=1,lte=5"`
	Tour      primitive.ObjectID `json:"tour" bson:"tour" validate:"required"`
	User      primitive.ObjectID `json:"user" bson:"user" validate:"required"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// RatingStats is the result of aggregating all reviews for one tour.
type RatingStats struct {
	NumRatings int64   `bson:"nRating"`
	AvgRating  float64 `bson:"avgRating"`
}
