package service

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/attunehq/attune/api/internal/model"
)

// surveyShape identifies which legacy export layout a raw survey uses.
// Shape detection happens once, up front, instead of property sniffing
// scattered through the parser.
type surveyShape int

const (
	shapeEmpty       surveyShape = iota
	shapeFlatRoles               // {Giving: [...], Receiving: [...], General: [...]}
	shapeCategoryMap             // {"Impact Play": [...] or {Giving: [...], ...}, ...}
)

// NormalizeSurvey converts a raw, loosely-structured survey object into the
// canonical Survey form. It accepts the flat-roles layout (treated as a
// single implicit category), a category map whose values are either item
// arrays (treated as that category's General list) or role objects, and the
// already-canonical form. Categories that end up with no items are dropped.
//
// Returns nil when no usable categories remain. The function is pure: the
// input is never mutated and malformed entries are skipped, never fatal.
func NormalizeSurvey(raw any) model.Survey {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	obj = unwrapExport(obj)

	survey := model.Survey{}
	switch detectShape(obj) {
	case shapeFlatRoles:
		cat := parseRoleObject(obj)
		if !cat.Empty() {
			survey[model.ImplicitCategory] = cat
		}
	case shapeCategoryMap:
		for name, val := range obj {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			var cat *model.Category
			switch v := val.(type) {
			case []any:
				cat = &model.Category{
					Giving:    []model.Item{},
					Receiving: []model.Item{},
					General:   dedupeItems(parseItems(v)),
				}
			case map[string]any:
				cat = parseRoleObject(v)
			default:
				continue
			}
			if cat.Empty() {
				continue
			}
			survey[name] = cat
		}
	}

	if len(survey) == 0 {
		return nil
	}
	return survey
}

// normalizeRaw decodes a JSON payload and normalizes it. Undecodable input
// is treated the same as an empty survey.
func normalizeRaw(data json.RawMessage) model.Survey {
	if len(data) == 0 {
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return NormalizeSurvey(raw)
}

// unwrapExport peels the {survey: ..., exportedAt: ...} wrapper that export
// files may carry. Anything else passes through untouched.
func unwrapExport(obj map[string]any) map[string]any {
	sub, ok := obj["survey"].(map[string]any)
	if !ok {
		return obj
	}
	for key := range obj {
		switch key {
		case "survey", "exportedAt", "exported_at":
		default:
			return obj
		}
	}
	return sub
}

func detectShape(obj map[string]any) surveyShape {
	if len(obj) == 0 {
		return shapeEmpty
	}
	for key := range obj {
		if !isRoleKey(key) {
			return shapeCategoryMap
		}
	}
	return shapeFlatRoles
}

func isRoleKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case model.RoleGiving, model.RoleReceiving, model.RoleGeneral:
		return true
	}
	return false
}

// parseRoleObject reads an object holding some subset of the three role
// keys, matched case-insensitively. All three buckets are present in the
// result even when empty.
func parseRoleObject(obj map[string]any) *model.Category {
	cat := &model.Category{
		Giving:    []model.Item{},
		Receiving: []model.Item{},
		General:   []model.Item{},
	}
	for key, val := range obj {
		list, ok := val.([]any)
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case model.RoleGiving:
			cat.Giving = append(cat.Giving, parseItems(list)...)
		case model.RoleReceiving:
			cat.Receiving = append(cat.Receiving, parseItems(list)...)
		case model.RoleGeneral:
			cat.General = append(cat.General, parseItems(list)...)
		}
	}
	cat.Giving = dedupeItems(cat.Giving)
	cat.Receiving = dedupeItems(cat.Receiving)
	cat.General = dedupeItems(cat.General)
	return cat
}

// dedupeItems drops repeats of a folded name within one role bucket, keeping
// the first occurrence. An item's identity is its trimmed, case-folded name,
// so a canonical survey carries each name at most once per role.
func dedupeItems(items []model.Item) []model.Item {
	out := make([]model.Item, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := foldName(item.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func parseItems(list []any) []model.Item {
	items := make([]model.Item, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obj["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		items = append(items, model.Item{Name: name, Rating: parseRating(obj)})
	}
	return items
}

// parseRating derives a rating from the first legacy rating key that is set,
// rounded and clamped to the 0-5 scale. Non-numeric or non-finite sources
// yield nil (unanswered).
func parseRating(obj map[string]any) *int {
	for _, key := range []string{"rating", "value", "score"} {
		val, ok := obj[key]
		if !ok || val == nil {
			continue
		}
		f, ok := toFloat(val)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		r := int(math.Round(f))
		if r < model.MinRating {
			r = model.MinRating
		}
		if r > model.MaxRating {
			r = model.MaxRating
		}
		return &r
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
