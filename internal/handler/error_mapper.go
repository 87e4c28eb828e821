package handler

import (
	"errors"

	"github.com/attunehq/attune/api/internal/database"
	"github.com/attunehq/attune/api/internal/model"
	"github.com/attunehq/attune/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrAccessCodeRequired),
		errors.Is(err, service.ErrAccessCodeInvalid):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrSurveyNotFound):
		return model.NewNotFoundError("survey")

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrLabelTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "label", Message: err.Error()}})
	case errors.Is(err, service.ErrEmptySurvey):
		return model.NewUnprocessableError(err.Error())

	// ===== Infrastructure Errors → 500 =====
	case errors.Is(err, database.ErrConnection):
		return model.NewInternalError("database unavailable")
	}

	return model.NewInternalError("an unexpected error occurred")
}
