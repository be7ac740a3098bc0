package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"
	"gotours/internal/utils"
	"gotours/pkg/logger"
	"gotours/pkg/mailer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthService interface {
	Signup(ctx context.Context, request *SignupRequest) (*models.User, string, error)
	Login(ctx context.Context, request *LoginRequest) (*models.User, string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken string, request *NewPasswordRequest) (*models.User, string, error)
	UpdatePassword(ctx context.Context, user *models.User, request *UpdatePasswordRequest) (string, error)
}

type SignupRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Photo           string `json:"photo"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type NewPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type authService struct {
	userRepo  interfaces.UserRepository
	mail      mailer.Mailer
	jwtSecret string
	jwtTTL    time.Duration
	baseURL   string
	logger    *logger.Logger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	mail mailer.Mailer,
	jwtSecret string,
	jwtTTL time.Duration,
	baseURL string,
	log *logger.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		mail:      mail,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
		baseURL:   baseURL,
		logger:    log,
	}
}

func (s *authService) Signup(ctx context.Context, request *SignupRequest) (*models.User, string, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, "", utils.TranslateError(err)
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, "", err
	}

	// The confirmation field is discarded here; only the hash is persisted.
	user := &models.User{
		Name:     request.Name,
		Email:    utils.NormalizeEmail(request.Email),
		Photo:    request.Photo,
		Role:     models.RoleUser,
		Password: hashed,
		Active:   true,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, "", utils.TranslateError(err)
	}

	token, err := utils.SignToken(created.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}

	s.logger.WithUserID(created.ID).Info("User signed up")
	return created, token, nil
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*models.User, string, error) {
	if request.Email == "" || request.Password == "" {
		return nil, "", utils.BadRequestError("Please provide email and password")
	}

	user, err := s.userRepo.GetByEmail(ctx, utils.NormalizeEmail(request.Email))
	if err != nil || !utils.CheckPassword(request.Password, user.Password) {
		s.logger.WithField("email", request.Email).Warn("Login attempt with invalid credentials")
		return nil, "", utils.UnauthenticatedError(utils.ErrInvalidCreds)
	}

	token, err := utils.SignToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ForgotPassword persists a hashed reset token and mails the raw one. When
// delivery fails the token is cleared again: a stranded token would be
// unusable to the legitimate user but live for an attacker holding the hash.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return utils.NotFoundError("There is no user with that email address")
	}

	raw, hashed, expires, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	if _, err := s.userRepo.UpdateByID(ctx, user.ID, bson.M{
		"passwordResetToken":   hashed,
		"passwordResetExpires": expires,
	}); err != nil {
		return utils.TranslateError(err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/resetPassword/%s", s.baseURL, raw)
	body := fmt.Sprintf(
		"Forgot your password? Submit a PATCH request with your new password and passwordConfirm to: %s\nIf you didn't forget your password, please ignore this email.",
		resetURL,
	)

	if err := s.mail.Send(ctx, user.Email, "Your password reset token (valid for 10 min)", body); err != nil {
		if _, clearErr := s.userRepo.UpdateByID(ctx, user.ID, bson.M{
			"passwordResetToken":   "",
			"passwordResetExpires": nil,
		}); clearErr != nil {
			s.logger.WithUserID(user.ID).WithError(clearErr).Error("Failed to clear reset token after delivery failure")
		}
		return utils.DeliveryFailedError("There was an error sending the email. Try again later", err)
	}

	s.logger.WithUserID(user.ID).Info("Password reset token sent")
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, rawToken string, request *NewPasswordRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByResetToken(ctx, utils.HashResetToken(rawToken), time.Now())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", utils.BadRequestError(utils.ErrResetTokenInvalid)
		}
		return nil, "", utils.TranslateError(err)
	}

	token, err := s.rotatePassword(ctx, user, request)
	if err != nil {
		return nil, "", err
	}

	s.logger.WithUserID(user.ID).Info("Password reset completed")
	return user, token, nil
}

func (s *authService) UpdatePassword(ctx context.Context, user *models.User, request *UpdatePasswordRequest) (string, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return "", utils.TranslateError(err)
	}

	if !utils.CheckPassword(request.PasswordCurrent, user.Password) {
		return "", utils.UnauthenticatedError("Your current password is wrong")
	}

	token, err := s.rotatePassword(ctx, user, &NewPasswordRequest{
		Password:        request.Password,
		PasswordConfirm: request.PasswordConfirm,
	})
	if err != nil {
		return "", err
	}

	s.logger.WithUserID(user.ID).Info("Password updated")
	return token, nil
}

// rotatePassword hashes and persists a new password, stamps the rotation and
// issues a fresh session token. The stamp is backdated one second so a token
// issued in the same instant is not rejected by the freshness check.
func (s *authService) rotatePassword(ctx context.Context, user *models.User, request *NewPasswordRequest) (string, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return "", utils.TranslateError(err)
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return "", err
	}

	changedAt := time.Now().Add(-time.Second)
	if _, err := s.userRepo.UpdateByID(ctx, user.ID, bson.M{
		"password":             hashed,
		"passwordChangedAt":    changedAt,
		"passwordResetToken":   "",
		"passwordResetExpires": nil,
	}); err != nil {
		return "", utils.TranslateError(err)
	}

	return utils.SignToken(user.ID, s.jwtSecret, s.jwtTTL)
}
