package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotours/internal/middleware"
	"gotours/internal/models"
	"gotours/internal/utils"
	"gotours/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memStore is an in-memory Store implementation driving the generic handlers
// in tests. Listing honors only skip and limit; filtering fidelity belongs to
// the repository layer.
type memStore[T any] struct {
	docs      []*T
	idOf      func(*T) primitive.ObjectID
	created   []*T
	updated   []bson.M
	deleted   []primitive.ObjectID
	updateErr error
}

func (m *memStore[T]) Find(ctx context.Context, features *utils.QueryFeatures) ([]*T, error) {
	skip := features.Skip()
	if skip >= len(m.docs) {
		return nil, nil
	}

	end := skip + features.Limit()
	if end > len(m.docs) {
		end = len(m.docs)
	}
	return m.docs[skip:end], nil
}

func (m *memStore[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(m.docs)), nil
}

func (m *memStore[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	for _, doc := range m.docs {
		if m.idOf(doc) == id {
			return doc, nil
		}
	}
	return nil, utils.TranslateError(mongo.ErrNoDocuments)
}

func (m *memStore[T]) Create(ctx context.Context, doc *T) (*T, error) {
	m.created = append(m.created, doc)
	m.docs = append(m.docs, doc)
	return doc, nil
}

func (m *memStore[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, updates bson.M) (*T, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	doc, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.updated = append(m.updated, updates)
	return doc, nil
}

func (m *memStore[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if _, err := m.FindByID(ctx, id); err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func tourStore(tours ...*models.Tour) *memStore[models.Tour] {
	return &memStore[models.Tour]{
		docs: tours,
		idOf: func(t *models.Tour) primitive.ObjectID { return t.ID },
	}
}

func handlerTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel})
	require.NoError(t, err)
	log.SetOutput(io.Discard)
	return log
}

func resourceRouter(t *testing.T, resource *Resource[models.Tour]) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.ErrorHandler(utils.EnvProduction, handlerTestLogger(t)))
	router.GET("/tours", resource.GetAll)
	router.GET("/tours/:id", resource.GetOne)
	router.POST("/tours", resource.CreateOne)
	router.PATCH("/tours/:id", resource.UpdateOne)
	router.DELETE("/tours/:id", resource.DeleteOne)
	return router
}

func jsonRequest(router *gin.Engine, method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func someTours(n int) []*models.Tour {
	tours := make([]*models.Tour, n)
	for i := range tours {
		tours[i] = &models.Tour{
			ID:   primitive.NewObjectID(),
			Name: fmt.Sprintf("The Forest Hiker %d", i),
		}
	}
	return tours
}

func TestGetAllEnvelope(t *testing.T) {
	router := resourceRouter(t, NewResource[models.Tour](tourStore(someTours(3)...), "tour", "tours"))

	w := jsonRequest(router, http.MethodGet, "/tours", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, utils.StatusSuccess, body["status"])
	assert.Equal(t, float64(3), body["results"])

	data := body["data"].(map[string]interface{})
	assert.Len(t, data["tours"], 3)
}

func TestGetAllEmptyList(t *testing.T) {
	router := resourceRouter(t, NewResource[models.Tour](tourStore(), "tour", "tours"))

	w := jsonRequest(router, http.MethodGet, "/tours", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, float64(0), body["results"])
	data := body["data"].(map[string]interface{})
	require.NotNil(t, data["tours"], "empty list serializes as [], not null")
}

func TestGetAllPagination(t *testing.T) {
	router := resourceRouter(t, NewResource[models.Tour](tourStore(someTours(25)...), "tour", "tours"))

	w := jsonRequest(router, http.MethodGet, "/tours?page=3&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), decodeEnvelope(t, w)["results"])
}

func TestGetAllPageOutOfRange(t *testing.T) {
	router := resourceRouter(t, NewResource[models.Tour](tourStore(someTours(25)...), "tour", "tours"))

	w := jsonRequest(router, http.MethodGet, "/tours?page=4&limit=10", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, utils.ErrPageNotFound, decodeEnvelope(t, w)["message"])
}

func TestGetAllUnrequestedPageNeverOutOfRange(t *testing.T) {
	// Without an explicit page the empty window is a normal empty result.
	router := resourceRouter(t, NewResource[models.Tour](tourStore(), "tour", "tours"))

	w := jsonRequest(router, http.MethodGet, "/tours?limit=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetOne(t *testing.T) {
	tours := someTours(2)
	router := resourceRouter(t, NewResource[models.Tour](tourStore(tours...), "tour", "tours"))

	w := jsonRequest(router, http.MethodGet, "/tours/"+tours[1].ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	tour := data["tour"].(map[string]interface{})
	assert.Equal(t, tours[1].Name, tour["name"])
}

func TestGetOneNotFound(t *testing.T) {
	router := resourceRouter(t, NewResource[models.Tour](tourStore(), "tour", "tours"))

	w := jsonRequest(router, http.MethodGet, "/tours/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOneInvalidID(t *testing.T) {
	router := resourceRouter(t, NewResource[models.Tour](tourStore(), "tour", "tours"))

	w := jsonRequest(router, http.MethodGet, "/tours/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOne(t *testing.T) {
	store := tourStore()
	resource := NewResource[models.Tour](store, "tour", "tours").
		BeforeCreate(func(c *gin.Context, tour *models.Tour) error {
			tour.Slug = utils.Slugify(tour.Name)
			return nil
		})
	router := resourceRouter(t, resource)

	w := jsonRequest(router, http.MethodPost, "/tours", gin.H{"name": "The Sea Explorer"})
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, store.created, 1)
	assert.Equal(t, "the-sea-explorer", store.created[0].Slug)

	body := decodeEnvelope(t, w)
	assert.Equal(t, utils.StatusSuccess, body["status"])
}

func TestCreateOneHookFailure(t *testing.T) {
	store := tourStore()
	resource := NewResource[models.Tour](store, "tour", "tours").
		BeforeCreate(func(c *gin.Context, tour *models.Tour) error {
			return utils.BadRequestError("nope")
		})
	router := resourceRouter(t, resource)

	w := jsonRequest(router, http.MethodPost, "/tours", gin.H{"name": "The Sea Explorer"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.created)
}

func TestUpdateOneStripsProtectedFields(t *testing.T) {
	tours := someTours(1)
	store := tourStore(tours...)
	resource := NewResource[models.Tour](store, "tour", "tours").
		Protected("ratingsAverage", "slug")
	router := resourceRouter(t, resource)

	w := jsonRequest(router, http.MethodPatch, "/tours/"+tours[0].ID.Hex(), gin.H{
		"price":          497,
		"ratingsAverage": 5,
		"slug":           "hijacked",
		"_id":            primitive.NewObjectID().Hex(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, store.updated, 1)
	assert.Equal(t, bson.M{"price": float64(497)}, store.updated[0])
}

func TestUpdateOneOnlyProtectedFields(t *testing.T) {
	tours := someTours(1)
	router := resourceRouter(t, NewResource[models.Tour](tourStore(tours...), "tour", "tours"))

	w := jsonRequest(router, http.MethodPatch, "/tours/"+tours[0].ID.Hex(), gin.H{
		"_id": primitive.NewObjectID().Hex(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOne(t *testing.T) {
	tours := someTours(1)
	store := tourStore(tours...)

	var synced []primitive.ObjectID
	resource := NewResource[models.Tour](store, "tour", "tours").
		AfterWrite(func(ctx context.Context, tour *models.Tour) {
			synced = append(synced, tour.ID)
		})
	router := resourceRouter(t, resource)

	w := jsonRequest(router, http.MethodDelete, "/tours/"+tours[0].ID.Hex(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, []primitive.ObjectID{tours[0].ID}, store.deleted)
	assert.Equal(t, []primitive.ObjectID{tours[0].ID}, synced, "follow-up sees the deleted document")
}

func TestDeleteOneNotFound(t *testing.T) {
	router := resourceRouter(t, NewResource[models.Tour](tourStore(), "tour", "tours"))

	w := jsonRequest(router, http.MethodDelete, "/tours/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
