package utils

import "time"

// Application Constants
const (
	AppName = "GoTours"

	// Pagination
	DefaultPage  = 1
	DefaultLimit = 100

	// Authentication
	BcryptCost       = 12
	ResetTokenBytes  = 32
	ResetTokenExpiry = 10 * time.Minute

	// Response statuses
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"

	// Context keys
	ContextUserKey = "currentUser"

	// Environments
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Error Messages
const (
	ErrInternalServer    = "Something went wrong"
	ErrUnauthorized      = "You are not logged in. Please log in to get access"
	ErrForbidden         = "You do not have permission to perform this action"
	ErrInvalidCreds      = "Incorrect email or password"
	ErrStaleToken        = "User recently changed password. Please log in again"
	ErrTokenUserGone     = "The user belonging to this token no longer exists"
	ErrPageNotFound      = "This page does not exist"
	ErrResetTokenInvalid = "Token is invalid or has expired"
)
