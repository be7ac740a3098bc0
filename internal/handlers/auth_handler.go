package handlers

import (
	"net/http"

	"gotours/internal/middleware"
	"gotours/internal/services"
	"gotours/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a new user and logs them straight in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var request services.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.Error(utils.BadRequestError("Invalid request body: " + err.Error()))
		return
	}

	user, token, err := h.authService.Signup(c.Request.Context(), &request)
	if err != nil {
		c.Error(err)
		return
	}

	utils.TokenResponse(c, http.StatusCreated, token, gin.H{"user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var request services.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.Error(utils.BadRequestError("Invalid request body: " + err.Error()))
		return
	}

	_, token, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		c.Error(err)
		return
	}

	utils.TokenResponse(c, http.StatusOK, token, nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var request struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.Error(utils.BadRequestError("Invalid request body: " + err.Error()))
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), request.Email); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, utils.Envelope{
		Status:  utils.StatusSuccess,
		Message: "Token sent to email",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var request services.NewPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.Error(utils.BadRequestError("Invalid request body: " + err.Error()))
		return
	}

	_, token, err := h.authService.ResetPassword(c.Request.Context(), c.Param("token"), &request)
	if err != nil {
		c.Error(err)
		return
	}

	utils.TokenResponse(c, http.StatusOK, token, nil)
}

// UpdateMyPassword rotates the logged-in user's password and hands back a
// fresh token, since the old one is invalidated by the freshness check.
func (h *AuthHandler) UpdateMyPassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Error(utils.UnauthenticatedError(utils.ErrUnauthorized))
		return
	}

	var request services.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.Error(utils.BadRequestError("Invalid request body: " + err.Error()))
		return
	}

	token, err := h.authService.UpdatePassword(c.Request.Context(), user, &request)
	if err != nil {
		c.Error(err)
		return
	}

	utils.TokenResponse(c, http.StatusOK, token, nil)
}
