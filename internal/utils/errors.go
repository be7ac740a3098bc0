package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppError is the error type funneled to the centralized error handler.
// Operational errors are anticipated, user-facing failures whose message is
// always safe to surface; everything else is presented generically outside
// development mode.
type AppError struct {
	Code        string
	StatusCode  int
	Message     string
	Operational bool
	Err         error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns "fail" for 4xx and "error" for everything else.
func (e *AppError) Status() string {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return StatusFail
	}
	return StatusError
}

func NewAppError(code string, statusCode int, message string) *AppError {
	return &AppError{
		Code:        code,
		StatusCode:  statusCode,
		Message:     message,
		Operational: true,
	}
}

func BadRequestError(message string) *AppError {
	return NewAppError("BAD_REQUEST", http.StatusBadRequest, message)
}

func ValidationError(message string) *AppError {
	return NewAppError("VALIDATION_ERROR", http.StatusBadRequest, message)
}

func NotFoundError(message string) *AppError {
	return NewAppError("NOT_FOUND", http.StatusNotFound, message)
}

func UnauthenticatedError(message string) *AppError {
	return NewAppError("UNAUTHENTICATED", http.StatusUnauthorized, message)
}

func ForbiddenError(message string) *AppError {
	return NewAppError("FORBIDDEN", http.StatusForbidden, message)
}

func DuplicateError(message string) *AppError {
	return NewAppError("DUPLICATE_FIELD", http.StatusConflict, message)
}

func DeliveryFailedError(message string, err error) *AppError {
	e := NewAppError("DELIVERY_FAILED", http.StatusInternalServerError, message)
	e.Err = err
	return e
}

// InternalError wraps an unanticipated failure. Not operational: the message
// is suppressed outside development mode.
func InternalError(err error) *AppError {
	return &AppError{
		Code:        "INTERNAL_ERROR",
		StatusCode:  http.StatusInternalServerError,
		Message:     ErrInternalServer,
		Operational: false,
		Err:         err,
	}
}

// TranslateError maps store and validation failures onto the error taxonomy
// with a human-readable message. Errors that are already *AppError pass
// through unchanged; anything unrecognized becomes a non-operational 500.
func TranslateError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, validationMessage(fe))
		}
		return ValidationError("Invalid input data. " + strings.Join(messages, ". "))
	}

	if mongo.IsDuplicateKeyError(err) {
		return DuplicateError("Duplicate field value. Please use another value")
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return NotFoundError("No document found with that id")
	}

	return InternalError(err)
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", field)
	case "email":
		return fmt.Sprintf("Please provide a valid %s", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s", field, fe.Param())
	case "eqfield":
		return "Passwords are not the same"
	default:
		return fmt.Sprintf("The %s field is invalid", field)
	}
}
