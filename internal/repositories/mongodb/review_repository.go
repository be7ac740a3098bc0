package mongodb

import (
	"context"
	"fmt"

	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"
	"gotours/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type reviewRepository struct {
	*store[models.Review]
}

func NewReviewRepository(db *mongo.Database) interfaces.ReviewRepository {
	return &reviewRepository{
		store: newStore[models.Review](
			db.Collection("reviews"),
			"review",
			nil,
			func(rv *models.Review) error { return utils.ValidateStruct(rv) },
		),
	}
}

func (r *reviewRepository) CalcAverageRatings(ctx context.Context, tourID primitive.ObjectID) (*models.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tour": tourID}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$tour",
			"nRating":   bson.M{"$sum": 1},
			"avgRating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var stats models.RatingStats
		if err := cursor.Decode(&stats); err != nil {
			return nil, fmt.Errorf("failed to decode rating stats: %w", err)
		}
		return &stats, nil
	}

	// no reviews left for this tour
	return nil, cursor.Err()
}
