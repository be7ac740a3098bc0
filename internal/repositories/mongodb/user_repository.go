package mongodb

import (
	"context"
	"fmt"
	"time"

	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"
	"gotours/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const userCacheTTL = 15 * time.Minute

// CacheService is the slice of the cache layer the repositories use. Values
// are raw bytes so callers control the encoding; user documents are cached
// as bson to keep fields that json serialization hides.
type CacheService interface {
	GetRaw(ctx context.Context, key string) ([]byte, error)
	SetRaw(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

type userRepository struct {
	*store[models.User]
	cache CacheService
}

func NewUserRepository(db *mongo.Database, cache CacheService) interfaces.UserRepository {
	return &userRepository{
		store: newStore[models.User](
			db.Collection("users"),
			"user",
			bson.M{"active": bson.M{"$ne": false}},
			func(u *models.User) error { return utils.ValidateStruct(u) },
		).scopeIDLookups(),
		cache: cache,
	}
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if user := r.getCached(ctx, id); user != nil {
		return user, nil
	}

	user, err := r.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cacheUser(ctx, user)
	return user, nil
}

// GetByEmail reads straight from the store; it backs login and the
// forgot-password flow, which must see the current credential state.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, r.scoped(bson.M{"email": email})).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no user found with that email: %w", mongo.ErrNoDocuments)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, r.scoped(bson.M{
		"passwordResetToken":   hashedToken,
		"passwordResetExpires": bson.M{"$gt": now},
	})).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no user found with a valid reset token: %w", mongo.ErrNoDocuments)
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, r.scoped(bson.M{"_id": bson.M{"$in": ids}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, &user)
	}

	return users, cursor.Err()
}

func (r *userRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error) {
	user, err := r.store.UpdateByID(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, id)
	return user, nil
}

func (r *userRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"active":    false,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *userRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if err := r.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx, id)
	return nil
}

func userCacheKey(id primitive.ObjectID) string {
	return fmt.Sprintf("user:%s", id.Hex())
}

func (r *userRepository) cacheUser(ctx context.Context, user *models.User) {
	if r.cache == nil {
		return
	}
	if raw, err := bson.Marshal(user); err == nil {
		r.cache.SetRaw(ctx, userCacheKey(user.ID), raw, userCacheTTL)
	}
}

func (r *userRepository) getCached(ctx context.Context, id primitive.ObjectID) *models.User {
	if r.cache == nil {
		return nil
	}

	raw, err := r.cache.GetRaw(ctx, userCacheKey(id))
	if err != nil {
		return nil
	}

	var user models.User
	if err := bson.Unmarshal(raw, &user); err != nil {
		return nil
	}
	return &user
}

func (r *userRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, userCacheKey(id))
	}
}
