package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

var (
	// ErrEmptySurvey means normalization found no usable categories or items.
	// Callers must not invoke the comparator with the input that caused it.
	ErrEmptySurvey = errors.New("no survey responses were found")

	ErrSurveyNotFound     = errors.New("survey not found")
	ErrAccessCodeRequired = errors.New("this survey requires an access code")
	ErrAccessCodeInvalid  = errors.New("access code is incorrect")
	ErrLabelTooLong       = errors.New("label must be at most 100 characters")
)
