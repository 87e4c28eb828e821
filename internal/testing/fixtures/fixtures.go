// Package fixtures provides test data factories for survey tests.
//
// Each factory builds in-memory survey structures with sensible defaults,
// so tests state only the ratings they care about.
//
// Usage:
//
//	self := fixtures.Survey(map[string]*model.Category{
//	    "Rope": fixtures.Category(
//	        fixtures.Items(fixtures.Item("Shibari", 5)),
//	        nil, nil,
//	    ),
//	})
package fixtures

import (
	"github.com/attunehq/attune/api/internal/model"
)

// Rating returns a pointer to a rating value.
func Rating(n int) *int {
	return &n
}

// Item builds a rated survey item.
func Item(name string, rating int) model.Item {
	return model.Item{Name: name, Rating: Rating(rating)}
}

// Unrated builds an item without an answer.
func Unrated(name string) model.Item {
	return model.Item{Name: name}
}

// Items collects items into a slice, keeping call sites compact.
func Items(items ...model.Item) []model.Item {
	return items
}

// Category builds a category with all three role buckets non-nil, matching
// the shape the normalizer produces.
func Category(giving, receiving, general []model.Item) *model.Category {
	if giving == nil {
		giving = []model.Item{}
	}
	if receiving == nil {
		receiving = []model.Item{}
	}
	if general == nil {
		general = []model.Item{}
	}
	return &model.Category{Giving: giving, Receiving: receiving, General: general}
}

// Survey builds a survey from a category map.
func Survey(categories map[string]*model.Category) model.Survey {
	survey := model.Survey{}
	for name, cat := range categories {
		survey[name] = cat
	}
	return survey
}

// ComplementaryPair returns two surveys that match strongly: one partner
// gives what the other wants to receive across every category.
func ComplementaryPair() (self, partner model.Survey) {
	self = Survey(map[string]*model.Category{
		"Rope": Category(
			Items(Item("Shibari", 5), Item("Suspension", 4)),
			nil, nil,
		),
		"Impact": Category(
			nil,
			Items(Item("Flogging", 4)),
			nil,
		),
	})
	partner = Survey(map[string]*model.Category{
		"Rope": Category(
			nil,
			Items(Item("Shibari", 4), Item("Suspension", 5)),
			nil,
		),
		"Impact": Category(
			Items(Item("Flogging", 5)),
			nil, nil,
		),
	})
	return self, partner
}

// ConflictedPair returns two surveys with a hard mismatch: one partner's
// top-rated interest is the other's hard limit.
func ConflictedPair() (self, partner model.Survey) {
	self = Survey(map[string]*model.Category{
		"Edge": Category(
			Items(Item("Knife Play", 5)),
			nil, nil,
		),
	})
	partner = Survey(map[string]*model.Category{
		"Edge": Category(
			nil,
			Items(Item("Knife Play", 0)),
			nil,
		),
	})
	return self, partner
}
