package handlers

import (
	"context"

	"gotours/internal/middleware"
	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"
	"gotours/internal/services"
	"gotours/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewDetail is the expanded read shape with the author resolved.
type ReviewDetail struct {
	*models.Review
	User *models.User `json:"user,omitempty"`
}

type ReviewHandler struct {
	*Resource[models.Review]
	reviewService services.ReviewService
	userRepo      interfaces.UserRepository
}

func NewReviewHandler(reviewRepo interfaces.ReviewRepository, reviewService services.ReviewService, userRepo interfaces.UserRepository) *ReviewHandler {
	h := &ReviewHandler{
		reviewService: reviewService,
		userRepo:      userRepo,
	}

	h.Resource = NewResource[models.Review](reviewRepo, "review", "reviews").
		Protected("tour", "user").
		BeforeCreate(h.prepareReview).
		AfterWrite(h.syncRatings).
		Scoped(h.tourScope).
		Expanded(h.expandAuthor)

	return h
}

// prepareReview fills the references the client is allowed to omit: the tour
// from the nested route when present, the author from the authenticated user.
// The parent tour must exist before the review is persisted.
func (h *ReviewHandler) prepareReview(c *gin.Context, review *models.Review) error {
	if tourParam := c.Param("id"); tourParam != "" {
		tourID, err := primitive.ObjectIDFromHex(tourParam)
		if err != nil {
			return utils.BadRequestError("Invalid id: " + tourParam)
		}
		review.Tour = tourID
	}

	if user := middleware.CurrentUser(c); user != nil {
		review.User = user.ID
	}

	if review.Tour.IsZero() {
		return utils.BadRequestError("Review must belong to a tour")
	}

	return h.reviewService.EnsureTourExists(c.Request.Context(), review.Tour)
}

func (h *ReviewHandler) syncRatings(ctx context.Context, review *models.Review) {
	h.reviewService.SyncTourRatings(ctx, review.Tour)
}

func (h *ReviewHandler) expandAuthor(ctx context.Context, review *models.Review) (interface{}, error) {
	author, err := h.userRepo.FindByID(ctx, review.User)
	if err != nil {
		// The author may have deactivated their account; the review stands.
		return review, nil
	}
	return &ReviewDetail{Review: review, User: author}, nil
}

// tourScope narrows nested listings to the parent tour's reviews.
func (h *ReviewHandler) tourScope(c *gin.Context) (bson.M, error) {
	tourParam := c.Param("id")
	if tourParam == "" {
		return nil, nil
	}

	tourID, err := primitive.ObjectIDFromHex(tourParam)
	if err != nil {
		return nil, utils.BadRequestError("Invalid id: " + tourParam)
	}

	return bson.M{"tour": tourID}, nil
}
