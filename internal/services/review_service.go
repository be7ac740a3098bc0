package services

import (
	"context"
	"math"

	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"
	"gotours/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService carries the cross-resource behavior around reviews: the
// parent-tour existence check on create and the rating-aggregate
// recomputation after every review write.
type ReviewService interface {
	EnsureTourExists(ctx context.Context, tourID primitive.ObjectID) error
	SyncTourRatings(ctx context.Context, tourID primitive.ObjectID)
}

type reviewService struct {
	reviewRepo interfaces.ReviewRepository
	tourRepo   interfaces.TourRepository
	logger     *logger.Logger
}

func NewReviewService(reviewRepo interfaces.ReviewRepository, tourRepo interfaces.TourRepository, log *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		tourRepo:   tourRepo,
		logger:     log,
	}
}

func (s *reviewService) EnsureTourExists(ctx context.Context, tourID primitive.ObjectID) error {
	_, err := s.tourRepo.FindByID(ctx, tourID)
	return err
}

// SyncTourRatings recomputes the owning tour's rating aggregates from all of
// its reviews. It runs after the triggering write and is best-effort: under
// concurrent review writes the last recomputation wins, and failures are
// logged rather than surfaced to the caller.
func (s *reviewService) SyncTourRatings(ctx context.Context, tourID primitive.ObjectID) {
	stats, err := s.reviewRepo.CalcAverageRatings(ctx, tourID)
	if err != nil {
		s.logger.WithField("tour_id", tourID.Hex()).WithError(err).Error("Failed to aggregate tour ratings")
		return
	}

	quantity := int64(models.DefaultRatingsQuantity)
	average := float64(models.DefaultRatingsAverage)
	if stats != nil {
		quantity = stats.NumRatings
		average = math.Round(stats.AvgRating*10) / 10
	}

	if _, err := s.tourRepo.UpdateByID(ctx, tourID, bson.M{
		"ratingsQuantity": quantity,
		"ratingsAverage":  average,
	}); err != nil {
		s.logger.WithField("tour_id", tourID.Hex()).WithError(err).Error("Failed to update tour ratings")
	}
}
