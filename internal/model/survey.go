package model

import (
	"encoding/json"
	"time"
)

// Rating bounds for a survey item. Ratings outside this range are clamped
// during normalization, so the comparator never sees out-of-range values.
const (
	MinRating = 0
	MaxRating = 5
)

// ImplicitCategory is where items from flat exports (no category nesting) land.
const ImplicitCategory = "Misc"

// Role bucket identifiers
const (
	RoleGiving    = "giving"
	RoleReceiving = "receiving"
	RoleGeneral   = "general"
)

// Item is a single rated activity within a role bucket.
type Item struct {
	Name   string `json:"name"`
	Rating *int   `json:"rating"` // nil = unanswered
}

// Category groups items by the three role buckets. All three slices are
// non-nil after normalization, even when empty.
type Category struct {
	Giving    []Item `json:"giving"`
	Receiving []Item `json:"receiving"`
	General   []Item `json:"general"`
}

// Empty reports whether the category holds no items in any role.
func (c *Category) Empty() bool {
	return len(c.Giving) == 0 && len(c.Receiving) == 0 && len(c.General) == 0
}

// Survey maps category names to their rated items. A nil Survey means no
// usable responses were found.
type Survey map[string]*Category

// SurveyRecord is a stored, normalized survey upload.
type SurveyRecord struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	Categories     Survey    `json:"categories"`
	ShareCode      string    `json:"share_code"`
	AccessCodeHash string    `json:"-"`
	Protected      bool      `json:"protected"` // true when an access code is set
	CreatedOn      time.Time `json:"created_on"`
}

// Survey upload constraints
const (
	MaxLabelLength = 100
	DefaultLabel   = "Untitled survey"
)

// UploadSurveyRequest represents a request to store a survey export.
// The Survey field carries the raw export body in any of the legacy shapes;
// it is normalized before storage.
type UploadSurveyRequest struct {
	Label      string          `json:"label,omitempty"`
	AccessCode string          `json:"access_code,omitempty"`
	Survey     json.RawMessage `json:"survey"`
}

// CompareRequest represents a request to compare two raw exports inline,
// without persisting either.
type CompareRequest struct {
	Self    json.RawMessage `json:"self"`
	Partner json.RawMessage `json:"partner"`
}
