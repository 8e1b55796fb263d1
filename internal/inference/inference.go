// Package inference guesses a field type and configuration from a column of
// raw text values during bulk import.
package inference

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"watchlist-api/internal/codec"
	"watchlist-api/internal/domain"
)

const (
	// maxInferredRating is the largest integer ceiling a column may reach
	// and still be read as a rating scale
	maxInferredRating = 10
	// maxSelectOptions is the largest distinct-value count a column may
	// reach and still be read as a select field
	maxSelectOptions = 10
	// minRowsForFrequencyCheck is the sample size from which select
	// inference additionally requires every distinct value to repeat
	minRowsForFrequencyCheck = 10
)

// InferColumn classifies a column of raw values and derives the field
// configuration for the winning type. Blank entries are ignored; a column of
// only blanks defaults to text. The only error is an empty input sequence.
//
// The checks run in a fixed priority order, because the categories overlap
// by construction: boolean wins over a two-option select, and rating wins
// over a numeric select.
func InferColumn(values []string) (domain.FieldType, domain.FieldConfig, error) {
	if len(values) == 0 {
		return "", domain.FieldConfig{}, fmt.Errorf("cannot infer a type from an empty column")
	}

	nonBlank := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			nonBlank = append(nonBlank, trimmed)
		}
	}
	if len(nonBlank) == 0 {
		return domain.FieldTypeText, domain.FieldConfig{}, nil
	}

	if allBoolean(nonBlank) {
		return domain.FieldTypeBoolean, domain.FieldConfig{}, nil
	}

	if max, ok := ratingCeiling(nonBlank); ok {
		return domain.FieldTypeRating, domain.RatingFieldConfig(max), nil
	}

	if options, ok := selectOptions(nonBlank); ok {
		return domain.FieldTypeSelect, domain.SelectFieldConfig(options), nil
	}

	return domain.FieldTypeText, domain.FieldConfig{}, nil
}

// allBoolean reports whether every value belongs to the yes/no vocabulary
func allBoolean(values []string) bool {
	for _, v := range values {
		if _, ok := codec.ParseBoolToken(v); !ok {
			return false
		}
	}
	return true
}

// ratingCeiling reports whether every value is an integer in
// [codec.RatingMin, maxInferredRating], and if so returns the largest
// observed value. The observed ceiling becomes the scale, not a fixed 5
// or 10.
func ratingCeiling(values []string) (int, bool) {
	max := 0
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		if n < codec.RatingMin || n > maxInferredRating {
			return 0, false
		}
		if n > max {
			max = n
		}
	}
	return max, true
}

// selectOptions reports whether the column qualifies as a select field, and
// if so returns the sorted distinct values as the option set. Columns with
// at least minRowsForFrequencyCheck samples must also show every distinct
// value at least twice; smaller samples skip the frequency check, since a
// column where every value differs may still be select-able when there are
// simply not enough rows to judge repetition.
func selectOptions(values []string) ([]string, bool) {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	if len(counts) > maxSelectOptions {
		return nil, false
	}
	if len(values) >= minRowsForFrequencyCheck {
		for _, c := range counts {
			if c < 2 {
				return nil, false
			}
		}
	}
	options := make([]string, 0, len(counts))
	for v := range counts {
		options = append(options, v)
	}
	sort.Strings(options)
	return options, true
}
