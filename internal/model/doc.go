// Package model defines domain entities and data structures for the Attune API.
//
// The model package contains all struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Survey: a normalized mapping from category names to rated items,
//     split across the Giving/Receiving/General role buckets
//   - SurveyRecord: a stored survey upload with its share code and
//     optional access-code protection
//   - ComparisonResult: the full output of comparing two surveys (scores,
//     flags, per-category and per-item breakdowns)
//   - KinkRow: one line of the per-item breakdown with its Indicator
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Item struct {
//	    Name   string `json:"name"`
//	    Rating *int   `json:"rating"`
//	}
//
// A nil rating means "unanswered" and is always distinct from a zero rating.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
