package service

import (
	"math"
	"sort"
	"strings"

	"github.com/attunehq/attune/api/internal/model"
)

// Compare computes the full comparison between two normalized surveys.
// Inputs are read-only; the result is freshly allocated on every call, so
// repeated calls with the same inputs yield identical output.
func Compare(self, partner model.Survey) *model.ComparisonResult {
	score, red, yellow, byCategory := compatibility(self, partner)
	return &model.ComparisonResult{
		CompatibilityScore: score,
		SimilarityScore:    Similarity(self, partner),
		RedFlags:           red,
		YellowFlags:        yellow,
		CategoryBreakdown:  byCategory,
		KinkBreakdown:      KinkBreakdown(self, partner),
	}
}

// compatibility scores complementary-role matching: self's Giving against
// partner's Receiving and vice versa, over every category present in both
// surveys. A pair where both rate 4+ earns a full point, both 3+ earns half,
// anything else earns nothing. This is deliberately stricter than an
// average-distance metric.
func compatibility(self, partner model.Survey) (int, []string, []string, map[string]int) {
	var total float64
	count := 0
	byCategory := make(map[string]int)
	redFlags := flagSet{}
	yellowFlags := flagSet{}

	for name, selfCat := range self {
		partnerCat, shared := partner[name]
		if !shared {
			continue
		}

		var catTotal float64
		catCount := 0

		pairs := [2][2][]model.Item{
			{selfCat.Giving, partnerCat.Receiving},
			{selfCat.Receiving, partnerCat.Giving},
		}
		for _, pair := range pairs {
			idx := buildRoleIndex(pair[1])
			for _, item := range pair[0] {
				if item.Rating == nil {
					continue
				}
				partnerRating, ok := idx[foldName(item.Name)]
				if !ok || partnerRating == nil {
					continue
				}
				a, b := *item.Rating, *partnerRating
				count++
				catCount++

				switch {
				case a >= 4 && b >= 4:
					total++
					catTotal++
				case a >= 3 && b >= 3:
					total += 0.5
					catTotal += 0.5
				}

				// Red is checked first; a pair never lands in both lists.
				switch {
				case (a >= 5 && b <= 1) || (b >= 5 && a <= 1):
					redFlags.add(item.Name)
				case (a >= 4 && b <= 2) || (b >= 4 && a <= 2):
					yellowFlags.add(item.Name)
				}
			}
		}

		// Shared categories always appear in the breakdown, at 0 when no
		// item pair matched. Unshared categories are excluded entirely.
		byCategory[name] = percentage(catTotal, catCount)
	}

	return percentage(total, count), redFlags.names(), yellowFlags.names(), byCategory
}

// Similarity measures same-role agreement between two surveys: 100 at
// identical ratings, dropping 20 points per point of difference, averaged
// over every same-role item pair in shared categories. Unlike compatibility
// it is symmetric in its arguments.
func Similarity(self, partner model.Survey) int {
	var total float64
	count := 0

	for name, selfCat := range self {
		partnerCat, shared := partner[name]
		if !shared {
			continue
		}
		roles := [3][2][]model.Item{
			{selfCat.Giving, partnerCat.Giving},
			{selfCat.Receiving, partnerCat.Receiving},
			{selfCat.General, partnerCat.General},
		}
		for _, role := range roles {
			idx := buildRoleIndex(role[1])
			for _, item := range role[0] {
				if item.Rating == nil {
					continue
				}
				partnerRating, ok := idx[foldName(item.Name)]
				if !ok || partnerRating == nil {
					continue
				}
				diff := *item.Rating - *partnerRating
				if diff < 0 {
					diff = -diff
				}
				contribution := 100 - diff*20
				if contribution < 0 {
					contribution = 0
				}
				total += float64(contribution)
				count++
			}
		}
	}

	if count == 0 {
		return 0
	}
	return int(math.Round(total / float64(count)))
}

func percentage(total float64, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(total / float64(count) * 100))
}

// foldName is the case-insensitive identity used for item matching.
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// roleIndex maps folded item names to ratings for one role bucket. Building
// it once per role keeps matching linear in item count.
type roleIndex map[string]*int

func buildRoleIndex(items []model.Item) roleIndex {
	idx := make(roleIndex, len(items))
	for _, item := range items {
		key := foldName(item.Name)
		if _, seen := idx[key]; !seen {
			idx[key] = item.Rating
		}
	}
	return idx
}

// flagSet deduplicates flagged item names case-insensitively, keeping the
// first-seen spelling for display.
type flagSet map[string]string

func (f flagSet) add(name string) {
	key := foldName(name)
	if _, ok := f[key]; !ok {
		f[key] = name
	}
}

// names returns the flagged names sorted for deterministic output.
func (f flagSet) names() []string {
	out := make([]string, 0, len(f))
	for _, name := range f {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
