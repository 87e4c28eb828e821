// Package service implements the business logic layer for the Attune API.
//
// The service package contains the survey normalizer, the comparison
// pipeline, and the orchestration of repository operations. Services are
// the primary abstraction between HTTP handlers and data access.
//
// # Core Pipeline
//
// The comparison core is a set of pure, stateless package functions:
//
//   - NormalizeSurvey: raw export (any legacy shape) -> canonical Survey
//   - Compare: two Surveys -> ComparisonResult (scores, flags, breakdowns)
//   - Similarity, KinkBreakdown, CategoryIntensity, StrongMatchCount
//
// These functions hold no module-level state, never mutate their inputs,
// and degrade gracefully on malformed content: bad data points are skipped,
// never fatal. NormalizeSurvey returns nil when nothing usable remains, and
// callers must not pass a nil Survey to the comparator.
//
// # Service Pattern
//
// Stateful services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Error Handling
//
// Services return domain-specific errors defined in errors.go:
//
//	var (
//	    ErrEmptySurvey    = errors.New("no survey responses were found")
//	    ErrSurveyNotFound = errors.New("survey not found")
//	)
package service
