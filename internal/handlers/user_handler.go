package handlers

import (
	"net/http"

	"gotours/internal/middleware"
	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"
	"gotours/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// allowedSelfUpdateFields is the explicit allow-list for self-service profile
// updates; everything else in the payload is rejected or dropped.
var allowedSelfUpdateFields = map[string]bool{
	"name":  true,
	"email": true,
	"photo": true,
}

type UserHandler struct {
	*Resource[models.User]
	userRepo interfaces.UserRepository
}

func NewUserHandler(userRepo interfaces.UserRepository) *UserHandler {
	resource := NewResource[models.User](userRepo, "user", "users").
		Protected("password", "passwordConfirm", "passwordChangedAt", "passwordResetToken", "passwordResetExpires", "active")

	return &UserHandler{
		Resource: resource,
		userRepo: userRepo,
	}
}

// GetMe returns the authenticated user's own record.
func (h *UserHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Error(utils.UnauthenticatedError(utils.ErrUnauthorized))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"user": user})
}

// UpdateMe applies a self-service profile update. Password changes must go
// through the dedicated endpoint so credential rotation is always stamped.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Error(utils.UnauthenticatedError(utils.ErrUnauthorized))
		return
	}

	var body bson.M
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(utils.BadRequestError("Invalid request body: " + err.Error()))
		return
	}

	if _, ok := body["password"]; ok {
		c.Error(utils.BadRequestError("This route is not for password updates. Please use /updateMyPassword"))
		return
	}
	if _, ok := body["passwordConfirm"]; ok {
		c.Error(utils.BadRequestError("This route is not for password updates. Please use /updateMyPassword"))
		return
	}

	updates := bson.M{}
	for field, value := range body {
		if allowedSelfUpdateFields[field] {
			updates[field] = value
		}
	}
	if email, ok := updates["email"].(string); ok {
		updates["email"] = utils.NormalizeEmail(email)
	}
	if len(updates) == 0 {
		c.Error(utils.BadRequestError("No updatable fields provided"))
		return
	}

	updated, err := h.userRepo.UpdateByID(c.Request.Context(), user.ID, updates)
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"user": updated})
}

// DeleteMe soft-deletes the account; default reads no longer see it.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Error(utils.UnauthenticatedError(utils.ErrUnauthorized))
		return
	}

	if err := h.userRepo.Deactivate(c.Request.Context(), user.ID); err != nil {
		c.Error(err)
		return
	}

	utils.NoContentResponse(c)
}

// CreateUser exists for route symmetry only; accounts are created via signup.
func (h *UserHandler) CreateUser(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, utils.Envelope{
		Status:  utils.StatusError,
		Message: "This route is not defined. Please use /signup instead",
	})
}
