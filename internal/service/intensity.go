package service

import (
	"math"

	"github.com/attunehq/attune/api/internal/model"
)

// CategoryIntensity summarizes how strongly a single survey leans into each
// category: the mean of its present ratings as a percentage of the maximum.
// Categories with no rated items map to nil, which is distinct from a true
// 0% intensity.
func CategoryIntensity(survey model.Survey) map[string]*int {
	intensity := make(map[string]*int, len(survey))
	for name, cat := range survey {
		sum, rated := 0, 0
		for _, items := range [3][]model.Item{cat.Giving, cat.Receiving, cat.General} {
			for _, item := range items {
				if item.Rating == nil {
					continue
				}
				sum += *item.Rating
				rated++
			}
		}
		if rated == 0 {
			intensity[name] = nil
			continue
		}
		v := int(math.Round(float64(sum) / float64(model.MaxRating*rated) * 100))
		intensity[name] = &v
	}
	return intensity
}

// StrongMatchCount counts breakdown rows classified as strong matches.
func StrongMatchCount(breakdown map[string][]model.KinkRow) int {
	count := 0
	for _, rows := range breakdown {
		for _, row := range rows {
			if row.Indicator == model.IndicatorStrongMatch {
				count++
			}
		}
	}
	return count
}
