package interfaces

import (
	"context"

	"gotours/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the capability set the generic resource handlers are parametrized
// over: list with query features, fetch, create, partial update and delete.
// Each resource repository implements it for its own document type.
type Store[T any] interface {
	Find(ctx context.Context, features *utils.QueryFeatures) ([]*T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Create(ctx context.Context, doc *T) (*T, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, updates bson.M) (*T, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}
