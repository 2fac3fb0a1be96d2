// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/martin/resumeai/internal/ai"
	"github.com/martin/resumeai/internal/render"
	"github.com/martin/resumeai/internal/schemas"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrResumeNotFound indicates the resume does not exist or belongs to
// another user.
type ErrResumeNotFound struct {
	ID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ID)
}

// ErrCoverLetterNotFound indicates the cover letter does not exist or
// belongs to another user.
type ErrCoverLetterNotFound struct {
	ID uuid.UUID
}

func (e *ErrCoverLetterNotFound) Error() string {
	return fmt.Sprintf("cover letter not found: %s", e.ID)
}

// ErrPlanLimitExceeded indicates a free-plan user hit the AI generation cap.
type ErrPlanLimitExceeded struct {
	Limit int
}

func (e *ErrPlanLimitExceeded) Error() string {
	return fmt.Sprintf("free plan limit of %d AI-generated resumes reached; upgrade to Pro for unlimited generations", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound, *ErrResumeNotFound, *ErrCoverLetterNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrPlanLimitExceeded:
		return http.StatusForbidden
	}

	var unsupportedProvider *ai.UnsupportedProviderError
	var invalidFormat *render.InvalidFormatError
	if errors.As(err, &unsupportedProvider) || errors.As(err, &invalidFormat) {
		return http.StatusBadRequest
	}

	// Upstream AI failures are reported as bad gateway: the request was
	// fine, the provider was not.
	var configuration *ai.ConfigurationError
	var backendFailure *ai.BackendError
	var parseFailure *ai.ContentParseError
	var schemaFailure *schemas.ValidationError
	if errors.As(err, &configuration) || errors.As(err, &backendFailure) ||
		errors.As(err, &parseFailure) || errors.As(err, &schemaFailure) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
