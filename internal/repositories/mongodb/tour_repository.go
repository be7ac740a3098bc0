package mongodb

import (
	"context"
	"fmt"

	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"
	"gotours/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type tourRepository struct {
	*store[models.Tour]
}

func NewTourRepository(db *mongo.Database) interfaces.TourRepository {
	return &tourRepository{
		store: newStore[models.Tour](
			db.Collection("tours"),
			"tour",
			bson.M{"secretTour": bson.M{"$ne": true}},
			func(t *models.Tour) error { return t.Validate(utils.ValidateStruct) },
		),
	}
}

func (r *tourRepository) GetStats(ctx context.Context) ([]*models.TourStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"ratingsAverage": bson.M{"$gte": 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$difficulty",
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingsQuantity"},
			"avgRating":  bson.M{"$avg": "$ratingsAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		}}},
		{{Key: "$sort", Value: bson.M{"avgPrice": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tour stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []*models.TourStats
	for cursor.Next(ctx) {
		var bucket models.TourStats
		if err := cursor.Decode(&bucket); err != nil {
			return nil, fmt.Errorf("failed to decode tour stats: %w", err)
		}
		stats = append(stats, &bucket)
	}

	return stats, cursor.Err()
}
