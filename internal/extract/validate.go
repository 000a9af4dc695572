package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
)

func decodeGeneric(v json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func schemaErr(raw, field, format string, args ...any) error {
	return domain.SchemaError{Field: field, Msg: fmt.Sprintf(format, args...), Raw: raw}
}

// ValidateTripPlan checks the itinerary document shape: an "itinerary" array
// of day objects numbered 1..n without gaps, a "summary" object, named places
// with a known category and meals with a known type.
func ValidateTripPlan(v json.RawMessage, raw string) error {
	doc, err := decodeGeneric(v)
	if err != nil {
		return domain.SchemaError{Msg: "invalid json", Raw: raw, Err: err}
	}
	root, ok := doc.(map[string]any)
	if !ok {
		return schemaErr(raw, "", "expected an object")
	}

	itinerary, present := root["itinerary"]
	if !present {
		return schemaErr(raw, "itinerary", "missing")
	}
	days, ok := itinerary.([]any)
	if !ok {
		return schemaErr(raw, "itinerary", "must be an array")
	}
	summary, present := root["summary"]
	if !present {
		return schemaErr(raw, "summary", "missing")
	}
	if _, ok := summary.(map[string]any); !ok {
		return schemaErr(raw, "summary", "must be an object")
	}

	seen := make(map[int64]bool, len(days))
	for i, d := range days {
		field := fmt.Sprintf("itinerary[%d]", i)
		day, ok := d.(map[string]any)
		if !ok {
			return schemaErr(raw, field, "must be an object")
		}
		n, ok := integer(day["day"])
		if !ok {
			return schemaErr(raw, field+".day", "must be an integer")
		}
		if n < 1 {
			return schemaErr(raw, field+".day", "must be >= 1, got %d", n)
		}
		if seen[n] {
			return schemaErr(raw, field+".day", "duplicate day %d", n)
		}
		seen[n] = true

		if err := validatePlaces(day["places"], field, raw); err != nil {
			return err
		}
		if err := validateMeals(day["meals"], field, raw); err != nil {
			return err
		}
	}
	for n := int64(1); n <= int64(len(days)); n++ {
		if !seen[n] {
			return schemaErr(raw, "itinerary", "days must be contiguous from 1, day %d missing", n)
		}
	}
	return nil
}

func validatePlaces(v any, dayField, raw string) error {
	if v == nil {
		return nil
	}
	places, ok := v.([]any)
	if !ok {
		return schemaErr(raw, dayField+".places", "must be an array")
	}
	for j, p := range places {
		field := fmt.Sprintf("%s.places[%d]", dayField, j)
		place, ok := p.(map[string]any)
		if !ok {
			return schemaErr(raw, field, "must be an object")
		}
		if name, _ := place["name"].(string); strings.TrimSpace(name) == "" {
			return schemaErr(raw, field+".name", "required")
		}
		category, _ := place["category"].(string)
		if _, ok := models.ParsePlaceCategory(category); !ok {
			return schemaErr(raw, field+".category", "unknown category %q", category)
		}
	}
	return nil
}

func validateMeals(v any, dayField, raw string) error {
	if v == nil {
		return nil
	}
	meals, ok := v.([]any)
	if !ok {
		return schemaErr(raw, dayField+".meals", "must be an array")
	}
	for j, m := range meals {
		field := fmt.Sprintf("%s.meals[%d]", dayField, j)
		meal, ok := m.(map[string]any)
		if !ok {
			return schemaErr(raw, field, "must be an object")
		}
		t, present := meal["type"]
		if !present || t == nil {
			continue
		}
		s, ok := t.(string)
		if !ok {
			return schemaErr(raw, field+".type", "must be a string")
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		if _, ok := models.ParseMealType(s); !ok {
			return schemaErr(raw, field+".type", "unknown meal type %q", s)
		}
	}
	return nil
}

// ValidateRecommendations requires an array of objects that each carry
// "name", "totalCost" and a "topAttractions" array.
func ValidateRecommendations(v json.RawMessage, raw string) error {
	doc, err := decodeGeneric(v)
	if err != nil {
		return domain.SchemaError{Msg: "invalid json", Raw: raw, Err: err}
	}
	items, ok := doc.([]any)
	if !ok {
		return schemaErr(raw, "", "expected an array")
	}
	for i, it := range items {
		field := fmt.Sprintf("[%d]", i)
		rec, ok := it.(map[string]any)
		if !ok {
			return schemaErr(raw, field, "must be an object")
		}
		if name, _ := rec["name"].(string); strings.TrimSpace(name) == "" {
			return schemaErr(raw, field+".name", "required")
		}
		if cost, present := rec["totalCost"]; !present || cost == nil {
			return schemaErr(raw, field+".totalCost", "required")
		}
		if _, ok := rec["topAttractions"].([]any); !ok {
			return schemaErr(raw, field+".topAttractions", "must be an array")
		}
	}
	return nil
}

func ValidatePlaceDetails(v json.RawMessage, raw string) error {
	return requireStrings(v, raw, "name", "description")
}

func ValidateDestinationGuide(v json.RawMessage, raw string) error {
	return requireStrings(v, raw, "destination", "overview")
}

func requireStrings(v json.RawMessage, raw string, keys ...string) error {
	doc, err := decodeGeneric(v)
	if err != nil {
		return domain.SchemaError{Msg: "invalid json", Raw: raw, Err: err}
	}
	root, ok := doc.(map[string]any)
	if !ok {
		return schemaErr(raw, "", "expected an object")
	}
	for _, k := range keys {
		s, _ := root[k].(string)
		if strings.TrimSpace(s) == "" {
			return schemaErr(raw, k, "required")
		}
	}
	return nil
}

func integer(v any) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	return i, err == nil
}
