package model

// Indicator classifies a single item pairing in the kink breakdown.
type Indicator string

// Indicator values, in the priority order they are evaluated.
const (
	IndicatorStrongMatch     Indicator = "strong_match"     // complementary roles, both interested
	IndicatorSharedInterest  Indicator = "shared_interest"  // both interested role-agnostically
	IndicatorIncompatible    Indicator = "incompatible"     // one side wants, the other has none
	IndicatorNeedsDiscussion Indicator = "needs_discussion" // everything else
)

// Label returns a short display label for the indicator. Glyphs and styling
// are the client's concern.
func (i Indicator) Label() string {
	switch i {
	case IndicatorStrongMatch:
		return "Strong match"
	case IndicatorSharedInterest:
		return "Shared interest"
	case IndicatorIncompatible:
		return "Incompatible"
	case IndicatorNeedsDiscussion:
		return "Needs discussion"
	default:
		return string(i)
	}
}

// RoleRatings holds one partner's ratings for a single item across the three
// role buckets. A nil entry means the partner never rated that role.
type RoleRatings struct {
	Giving    *int `json:"giving"`
	Receiving *int `json:"receiving"`
	General   *int `json:"general"`
}

// KinkRow is one line of the per-item breakdown table.
type KinkRow struct {
	Name      string      `json:"name"`
	You       RoleRatings `json:"you"`
	Partner   RoleRatings `json:"partner"`
	Indicator Indicator   `json:"indicator"`
}

// ComparisonResult is the full output of comparing two surveys.
type ComparisonResult struct {
	CompatibilityScore int                  `json:"compatibility_score"` // 0-100, complementary-role matching
	SimilarityScore    int                  `json:"similarity_score"`    // 0-100, same-role agreement
	RedFlags           []string             `json:"red_flags"`
	YellowFlags        []string             `json:"yellow_flags"`
	CategoryBreakdown  map[string]int       `json:"category_breakdown"`
	KinkBreakdown      map[string][]KinkRow `json:"kink_breakdown"`
}

// ComparisonSummary wraps a comparison result with the presenter-facing
// aggregates derived from it.
type ComparisonSummary struct {
	Result           *ComparisonResult `json:"result"`
	YourIntensity    map[string]*int   `json:"your_intensity"`    // nil entry = no rated items
	PartnerIntensity map[string]*int   `json:"partner_intensity"` // nil entry = no rated items
	StrongMatchCount int               `json:"strong_match_count"`
}
