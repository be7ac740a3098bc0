package interfaces

import (
	"context"

	"gotours/internal/models"
)

type TourRepository interface {
	Store[models.Tour]

	// GetStats aggregates tour counts, ratings and prices grouped by
	// difficulty.
	GetStats(ctx context.Context) ([]*models.TourStats, error)
}
