package interfaces

import (
	"context"
	"time"

	"gotours/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Store[models.User]

	// GetByEmail looks a user up by normalized email for login and the
	// forgot-password flow.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByResetToken finds the user holding the given hashed reset token
	// with an expiry after now.
	GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*models.User, error)

	// FindByIDs resolves a set of referenced users, used when expanding tour
	// guides.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error)

	// Deactivate soft-deletes a user; default reads exclude inactive users.
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}
