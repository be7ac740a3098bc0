package handlers

import (
	"context"
	"net/http"

	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"
	"gotours/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// TourDetail is the expanded read shape: guide references resolved to the
// users they point at. The outer Guides field shadows the reference list on
// the embedded tour.
type TourDetail struct {
	*models.Tour
	Guides []*models.User `json:"guides,omitempty"`
}

type TourHandler struct {
	*Resource[models.Tour]
	tourRepo interfaces.TourRepository
	userRepo interfaces.UserRepository
}

func NewTourHandler(tourRepo interfaces.TourRepository, userRepo interfaces.UserRepository) *TourHandler {
	h := &TourHandler{
		tourRepo: tourRepo,
		userRepo: userRepo,
	}

	h.Resource = NewResource[models.Tour](tourRepo, "tour", "tours").
		Protected("ratingsAverage", "ratingsQuantity", "slug").
		BeforeCreate(h.prepareTour).
		BeforeUpdate(h.reslugOnRename).
		Expanded(h.expandGuides)

	return h
}

// prepareTour is the before-persist pipeline stage: slugify the name, check
// the location geometry and pin the rating aggregates to their defaults,
// which only review writes may move.
func (h *TourHandler) prepareTour(c *gin.Context, tour *models.Tour) error {
	if err := validateTourLocations(tour); err != nil {
		return utils.BadRequestError(err.Error())
	}

	tour.Slug = utils.Slugify(tour.Name)
	tour.RatingsAverage = models.DefaultRatingsAverage
	tour.RatingsQuantity = models.DefaultRatingsQuantity
	return nil
}

func validateTourLocations(tour *models.Tour) error {
	if tour.StartLocation != nil {
		if err := utils.ValidateGeoPoint(tour.StartLocation.Type, tour.StartLocation.Coordinates); err != nil {
			return err
		}
	}
	for _, location := range tour.Locations {
		if err := utils.ValidateGeoPoint(location.Type, location.Coordinates); err != nil {
			return err
		}
	}
	return nil
}

func (h *TourHandler) reslugOnRename(c *gin.Context, updates bson.M) error {
	if name, ok := updates["name"].(string); ok {
		updates["slug"] = utils.Slugify(name)
	}
	return nil
}

func (h *TourHandler) expandGuides(ctx context.Context, tour *models.Tour) (interface{}, error) {
	if len(tour.Guides) == 0 {
		return tour, nil
	}

	guides, err := h.userRepo.FindByIDs(ctx, tour.Guides)
	if err != nil {
		return nil, err
	}

	return &TourDetail{Tour: tour, Guides: guides}, nil
}

// AliasTopTours presets the query string for the top-5-cheap listing before
// the generic list handler runs.
func (h *TourHandler) AliasTopTours(c *gin.Context) {
	query := c.Request.URL.Query()
	query.Set("limit", "5")
	query.Set("sort", "-ratingsAverage,price")
	query.Set("fields", "name,price,ratingsAverage,summary,difficulty")
	c.Request.URL.RawQuery = query.Encode()

	c.Next()
}

func (h *TourHandler) GetTourStats(c *gin.Context) {
	stats, err := h.tourRepo.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"stats": stats})
}
