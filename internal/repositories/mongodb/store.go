package mongodb

import (
	"context"
	"fmt"
	"time"

	"gotours/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// store is the shared document-store implementation behind every resource
// repository. A base filter scopes listings (inactive users, secret tours);
// id-scoped operations bypass it unless the repository opts in, so a flag
// that hides documents from browsing does not make them unreachable or
// unwritable by id. The validate hook re-runs schema rules on create and on
// the merged document before a partial update is persisted.
type store[T any] struct {
	collection *mongo.Collection
	resource   string
	baseFilter bson.M
	scopeByID  bool
	validate   func(*T) error
}

func newStore[T any](collection *mongo.Collection, resource string, baseFilter bson.M, validate func(*T) error) *store[T] {
	return &store[T]{
		collection: collection,
		resource:   resource,
		baseFilter: baseFilter,
		validate:   validate,
	}
}

// scopeIDLookups extends the base filter to id-scoped reads and writes as
// well. The user store needs this: a deactivated account must stay invisible
// even when looked up by id, which is what token resolution does.
func (s *store[T]) scopeIDLookups() *store[T] {
	s.scopeByID = true
	return s
}

func (s *store[T]) scoped(filter bson.M) bson.M {
	if len(s.baseFilter) == 0 {
		return filter
	}
	if len(filter) == 0 {
		return s.baseFilter
	}
	return bson.M{"$and": []bson.M{s.baseFilter, filter}}
}

func (s *store[T]) byID(id primitive.ObjectID) bson.M {
	filter := bson.M{"_id": id}
	if s.scopeByID {
		return s.scoped(filter)
	}
	return filter
}

func (s *store[T]) notFound() error {
	return fmt.Errorf("no %s found with that id: %w", s.resource, mongo.ErrNoDocuments)
}

func (s *store[T]) Find(ctx context.Context, features *utils.QueryFeatures) ([]*T, error) {
	cursor, err := s.collection.Find(ctx, s.scoped(features.FilterQuery()), features.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to find %ss: %w", s.resource, err)
	}
	defer cursor.Close(ctx)

	var docs []*T
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", s.resource, err)
		}
		docs = append(docs, &doc)
	}

	return docs, cursor.Err()
}

func (s *store[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, s.scoped(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count %ss: %w", s.resource, err)
	}
	return count, nil
}

func (s *store[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := s.collection.FindOne(ctx, s.byID(id)).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, s.notFound()
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.resource, err)
	}
	return &doc, nil
}

func (s *store[T]) Create(ctx context.Context, doc *T) (*T, error) {
	if s.validate != nil {
		if err := s.validate(doc); err != nil {
			return nil, err
		}
	}

	raw, err := toDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", s.resource, err)
	}

	now := time.Now()
	raw["createdAt"] = now
	raw["updatedAt"] = now
	delete(raw, "_id")

	result, err := s.collection.InsertOne(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.resource, err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id for %s", s.resource)
	}

	return s.FindByID(ctx, id)
}

// UpdateByID applies a partial update. The incoming fields are merged onto
// the current document and re-validated before anything is persisted, so a
// patch can never leave an invalid document behind.
func (s *store[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, updates bson.M) (*T, error) {
	if s.validate != nil {
		current, err := s.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		merged, err := mergeDocument(current, updates)
		if err != nil {
			return nil, fmt.Errorf("failed to merge %s update: %w", s.resource, err)
		}
		if err := s.validate(merged); err != nil {
			return nil, err
		}
	}

	updates["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := s.collection.FindOneAndUpdate(ctx, s.byID(id), bson.M{"$set": updates}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, s.notFound()
		}
		return nil, fmt.Errorf("failed to update %s: %w", s.resource, err)
	}

	return &doc, nil
}

func (s *store[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, s.byID(id))
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.resource, err)
	}
	if result.DeletedCount == 0 {
		return s.notFound()
	}
	return nil
}

// toDocument converts a typed document into a mutable bson map.
func toDocument(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// mergeDocument overlays update fields onto the current document and decodes
// the result back into the document type for validation.
func mergeDocument[T any](current *T, updates bson.M) (*T, error) {
	m, err := toDocument(current)
	if err != nil {
		return nil, err
	}
	for key, value := range updates {
		m[key] = value
	}

	raw, err := bson.Marshal(m)
	if err != nil {
		return nil, err
	}

	var merged T
	if err := bson.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}
