package service

import (
	"sort"

	"github.com/attunehq/attune/api/internal/model"
)

// KinkBreakdown builds the per-item comparison table for every category
// present in both surveys. Each row covers the union of item names across
// all six partner/role slots and carries a four-way indicator.
func KinkBreakdown(self, partner model.Survey) map[string][]model.KinkRow {
	breakdown := make(map[string][]model.KinkRow)
	for name, selfCat := range self {
		partnerCat, shared := partner[name]
		if !shared {
			continue
		}
		breakdown[name] = categoryRows(selfCat, partnerCat)
	}
	return breakdown
}

// categoryIndexes holds the three role lookups for one partner's category.
type categoryIndexes struct {
	giving    roleIndex
	receiving roleIndex
	general   roleIndex
}

func indexCategory(cat *model.Category) categoryIndexes {
	return categoryIndexes{
		giving:    buildRoleIndex(cat.Giving),
		receiving: buildRoleIndex(cat.Receiving),
		general:   buildRoleIndex(cat.General),
	}
}

func categoryRows(self, partner *model.Category) []model.KinkRow {
	you := indexCategory(self)
	them := indexCategory(partner)

	// Union of item names across both partners, first-seen spelling wins.
	display := map[string]string{}
	collect := func(items []model.Item) {
		for _, item := range items {
			key := foldName(item.Name)
			if _, ok := display[key]; !ok {
				display[key] = item.Name
			}
		}
	}
	collect(self.Giving)
	collect(self.Receiving)
	collect(self.General)
	collect(partner.Giving)
	collect(partner.Receiving)
	collect(partner.General)

	rows := make([]model.KinkRow, 0, len(display))
	for key, name := range display {
		row := model.KinkRow{
			Name: name,
			You: model.RoleRatings{
				Giving:    you.giving[key],
				Receiving: you.receiving[key],
				General:   you.general[key],
			},
			Partner: model.RoleRatings{
				Giving:    them.giving[key],
				Receiving: them.receiving[key],
				General:   them.general[key],
			},
		}
		row.Indicator = classify(row.You, row.Partner)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// classify applies the indicator rules in priority order; the first rule
// that matches wins.
func classify(you, partner model.RoleRatings) model.Indicator {
	switch {
	case wants(you.Giving) && wants(partner.Receiving),
		wants(you.Receiving) && wants(partner.Giving):
		return model.IndicatorStrongMatch

	case wants(you.General) && wants(partner.General):
		return model.IndicatorSharedInterest

	case wants(you.Giving) && declined(partner.Receiving),
		wants(you.Receiving) && declined(partner.Giving),
		wants(you.General) && declined(partner.General),
		wants(partner.Giving) && declined(you.Receiving),
		wants(partner.Receiving) && declined(you.Giving),
		wants(partner.General) && declined(you.General):
		return model.IndicatorIncompatible

	default:
		return model.IndicatorNeedsDiscussion
	}
}

// wants is an expressed interest of 3 or higher.
func wants(rating *int) bool {
	return rating != nil && *rating >= 3
}

// declined is a hard zero or an unanswered slot.
func declined(rating *int) bool {
	return rating == nil || *rating == 0
}
