package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gotours/internal/models"
	"gotours/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type stubTourRepo struct {
	*memStore[models.Tour]
	stats []*models.TourStats
}

func (s *stubTourRepo) GetStats(ctx context.Context) ([]*models.TourStats, error) {
	return s.stats, nil
}

type stubUsers struct {
	*memStore[models.User]
}

func (s *stubUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubUsers) GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubUsers) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	var found []*models.User
	for _, id := range ids {
		if user, err := s.FindByID(ctx, id); err == nil {
			found = append(found, user)
		}
	}
	return found, nil
}

func (s *stubUsers) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func newStubUsers(users ...*models.User) *stubUsers {
	return &stubUsers{memStore: &memStore[models.User]{
		docs: users,
		idOf: func(u *models.User) primitive.ObjectID { return u.ID },
	}}
}

func newStubTourRepo(tours ...*models.Tour) *stubTourRepo {
	return &stubTourRepo{memStore: tourStore(tours...)}
}

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestPrepareTour(t *testing.T) {
	h := NewTourHandler(newStubTourRepo(), newStubUsers())
	c, _ := testContext(t)

	tour := &models.Tour{
		Name:            "The Sea Explorer",
		RatingsAverage:  5,
		RatingsQuantity: 99,
	}
	require.NoError(t, h.prepareTour(c, tour))

	assert.Equal(t, "the-sea-explorer", tour.Slug)
	assert.Equal(t, float64(models.DefaultRatingsAverage), tour.RatingsAverage, "client-sent aggregates are discarded")
	assert.Equal(t, int64(models.DefaultRatingsQuantity), tour.RatingsQuantity)
}

func TestPrepareTourBadGeometry(t *testing.T) {
	h := NewTourHandler(newStubTourRepo(), newStubUsers())
	c, _ := testContext(t)

	tour := &models.Tour{
		Name: "The Sea Explorer",
		StartLocation: &models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{-200, 25},
		},
	}

	err := h.prepareTour(c, tour)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}

func TestReslugOnRename(t *testing.T) {
	h := NewTourHandler(newStubTourRepo(), newStubUsers())
	c, _ := testContext(t)

	updates := bson.M{"name": "The City Wanderer"}
	require.NoError(t, h.reslugOnRename(c, updates))
	assert.Equal(t, "the-city-wanderer", updates["slug"])

	noName := bson.M{"price": 497}
	require.NoError(t, h.reslugOnRename(c, noName))
	assert.NotContains(t, noName, "slug")
}

func TestExpandGuides(t *testing.T) {
	guide := &models.User{ID: primitive.NewObjectID(), Name: "Steve Miller", Role: models.RoleGuide}
	h := NewTourHandler(newStubTourRepo(), newStubUsers(guide))

	tour := &models.Tour{ID: primitive.NewObjectID(), Guides: []primitive.ObjectID{guide.ID}}
	payload, err := h.expandGuides(context.Background(), tour)
	require.NoError(t, err)

	detail, ok := payload.(*TourDetail)
	require.True(t, ok)
	require.Len(t, detail.Guides, 1)
	assert.Equal(t, "Steve Miller", detail.Guides[0].Name)
}

func TestExpandGuidesNoGuides(t *testing.T) {
	h := NewTourHandler(newStubTourRepo(), newStubUsers())

	tour := &models.Tour{ID: primitive.NewObjectID()}
	payload, err := h.expandGuides(context.Background(), tour)
	require.NoError(t, err)
	assert.Same(t, tour, payload, "no expansion without references")
}

func TestAliasTopTours(t *testing.T) {
	h := NewTourHandler(newStubTourRepo(), newStubUsers())
	c, _ := testContext(t)
	c.Request = httptest.NewRequest(http.MethodGet, "/tours/top-5-cheap", nil)

	h.AliasTopTours(c)

	query := c.Request.URL.Query()
	assert.Equal(t, "5", query.Get("limit"))
	assert.Equal(t, "-ratingsAverage,price", query.Get("sort"))
	assert.Equal(t, "name,price,ratingsAverage,summary,difficulty", query.Get("fields"))
}

func TestGetTourStats(t *testing.T) {
	repo := newStubTourRepo()
	repo.stats = []*models.TourStats{
		{Difficulty: models.DifficultyEasy, NumTours: 4, AvgPrice: 1272},
	}
	h := NewTourHandler(repo, newStubUsers())

	c, w := testContext(t)
	h.GetTourStats(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "easy")
}
