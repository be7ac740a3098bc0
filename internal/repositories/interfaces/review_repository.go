package interfaces

import (
	"context"

	"gotours/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewRepository interface {
	Store[models.Review]

	// CalcAverageRatings aggregates count and average rating over all reviews
	// of one tour. Returns nil stats when the tour has no reviews.
	CalcAverageRatings(ctx context.Context, tourID primitive.ObjectID) (*models.RatingStats, error)
}
