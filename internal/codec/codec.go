// Package codec parses raw text into typed field values. Parsing is pure:
// no side effects, no storage access, deterministic for a given field config.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"watchlist-api/internal/domain"
)

// RatingMin is the lower bound of every rating scale
const RatingMin = 1

// boolTokens is the fixed bidirectional yes/no vocabulary, matched
// case-insensitively
var boolTokens = map[string]bool{
	"yes": true, "y": true, "true": true, "t": true, "1": true,
	"no": false, "n": false, "false": false, "f": false, "0": false,
}

// ParseBoolToken matches a single token against the yes/no vocabulary.
// The second result reports whether the token belongs to the vocabulary.
func ParseBoolToken(raw string) (bool, bool) {
	v, ok := boolTokens[strings.ToLower(strings.TrimSpace(raw))]
	return v, ok
}

// Parse decodes raw text into a typed value for the given field.
//
// Blank input (empty or whitespace-only) is always valid and yields a nil
// value: fields are optional by default. A non-nil error means the input is
// invalid for the field's type; the message is user-facing and names the
// violated constraint.
func Parse(raw string, field *domain.Field) (*domain.TypedValue, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	cfg := field.TypeConfig()
	switch field.Type {
	case domain.FieldTypeRating:
		return parseRating(trimmed, cfg.Rating)
	case domain.FieldTypeSelect:
		return parseSelect(trimmed, cfg.Select)
	case domain.FieldTypeBoolean:
		return parseBoolean(trimmed)
	case domain.FieldTypeText:
		return parseText(raw, cfg.Text)
	default:
		return nil, fmt.Errorf("unknown field type %q", field.Type)
	}
}

func parseRating(raw string, cfg *domain.RatingConfig) (*domain.TypedValue, error) {
	max := 0
	if cfg != nil {
		max = cfg.Max
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a number; rating must be between %d and %d", raw, RatingMin, max)
	}
	if n < RatingMin || n > float64(max) {
		return nil, fmt.Errorf("rating %s is out of range; must be between %d and %d", raw, RatingMin, max)
	}
	v := domain.NumberValue(n)
	return &v, nil
}

func parseSelect(raw string, cfg *domain.SelectConfig) (*domain.TypedValue, error) {
	if cfg == nil || len(cfg.Options) == 0 {
		return nil, fmt.Errorf("select field has no options configured")
	}
	for _, opt := range cfg.Options {
		if strings.EqualFold(raw, opt) {
			// Return the canonical config-cased option, not the raw input
			v := domain.TextValue(opt)
			return &v, nil
		}
	}
	return nil, fmt.Errorf("'%s' is not an allowed option; must be one of: %s", raw, strings.Join(cfg.Options, ", "))
}

func parseBoolean(raw string) (*domain.TypedValue, error) {
	b, ok := ParseBoolToken(raw)
	if !ok {
		return nil, fmt.Errorf("'%s' is not a yes/no value; use yes/y/true/t/1 or no/n/false/f/0", raw)
	}
	v := domain.BoolValue(b)
	return &v, nil
}

func parseText(raw string, cfg *domain.TextConfig) (*domain.TypedValue, error) {
	if cfg != nil && cfg.MaxLength != nil && len([]rune(raw)) > *cfg.MaxLength {
		return nil, fmt.Errorf("text is %d characters long; maximum length is %d", len([]rune(raw)), *cfg.MaxLength)
	}
	v := domain.TextValue(raw)
	return &v, nil
}
