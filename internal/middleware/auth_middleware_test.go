package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

const testSecret = "test-secret"

// stubUserRepo satisfies interfaces.UserRepository with a single canned user.
type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) Find(ctx context.Context, features *utils.QueryFeatures) ([]*models.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return 0, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, mongo.ErrNoDocuments
	}
	return s.user, nil
}

func (s *stubUserRepo) Create(ctx context.Context, doc *models.User) (*models.User, error) {
	return doc, nil
}

func (s *stubUserRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error) {
	return s.user, nil
}

func (s *stubUserRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, mongo.ErrNoDocuments
	}
	return s.user, nil
}

func (s *stubUserRepo) GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func discardLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel})
	require.NoError(t, err)
	log.SetOutput(io.Discard)
	return log
}

func newProtectedRouter(t *testing.T, repo *stubUserRepo, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler(utils.EnvProduction, discardLogger(t)))

	chain := append([]gin.HandlerFunc{Protect(repo, testSecret)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		user := CurrentUser(c)
		require.NotNil(t, user)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	router.GET("/protected", chain...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestProtectMissingHeader(t *testing.T) {
	router := newProtectedRouter(t, &stubUserRepo{})

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, utils.ErrUnauthorized, responseMessage(t, w))
}

func TestProtectMalformedHeader(t *testing.T) {
	router := newProtectedRouter(t, &stubUserRepo{})

	w := doRequest(router, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectInvalidToken(t *testing.T) {
	router := newProtectedRouter(t, &stubUserRepo{})

	w := doRequest(router, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectUserGone(t *testing.T) {
	router := newProtectedRouter(t, &stubUserRepo{})

	token, err := utils.SignToken(primitive.NewObjectID(), testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, utils.ErrTokenUserGone, responseMessage(t, w))
}

func TestProtectStalePassword(t *testing.T) {
	changedAt := time.Now().Add(time.Hour)
	user := &models.User{
		ID:                primitive.NewObjectID(),
		Email:             "guide@example.com",
		Role:              models.RoleGuide,
		PasswordChangedAt: &changedAt,
	}
	router := newProtectedRouter(t, &stubUserRepo{user: user})

	token, err := utils.SignToken(user.ID, testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, utils.ErrStaleToken, responseMessage(t, w))
}

func TestProtectSuccess(t *testing.T) {
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "guide@example.com",
		Role:  models.RoleGuide,
	}
	router := newProtectedRouter(t, &stubUserRepo{user: user})

	token, err := utils.SignToken(user.ID, testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "guide@example.com")
}

func TestRestrictToForbidden(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleGuide}
	router := newProtectedRouter(t, &stubUserRepo{user: user},
		RestrictTo(models.RoleAdmin, models.RoleLeadGuide))

	token, err := utils.SignToken(user.ID, testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, utils.ErrForbidden, responseMessage(t, w))
}

func TestRestrictToAllowed(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	router := newProtectedRouter(t, &stubUserRepo{user: user},
		RestrictTo(models.RoleAdmin, models.RoleLeadGuide))

	token, err := utils.SignToken(user.ID, testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
