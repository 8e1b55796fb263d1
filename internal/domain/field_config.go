package domain

import "fmt"

// RatingConfig configures a rating field. Values are valid in [1, Max].
type RatingConfig struct {
	Max int `json:"max"`
}

// SelectConfig configures a select field. Options is the ordered set of
// allowed values; option text is canonical (matching is case-insensitive but
// stored values always use the cased text listed here).
type SelectConfig struct {
	Options []string `json:"options"`
}

// TextConfig configures a text field. A nil MaxLength means unbounded.
type TextConfig struct {
	MaxLength *int `json:"max_length,omitempty"`
}

// FieldConfig is the per-type configuration payload of a field. Exactly the
// variant matching the field's type is populated; boolean fields carry no
// configuration at all. Consumers switch exhaustively on the field type and
// read only the matching variant.
type FieldConfig struct {
	Rating *RatingConfig `json:"rating,omitempty"`
	Select *SelectConfig `json:"select,omitempty"`
	Text   *TextConfig   `json:"text,omitempty"`
}

// RatingFieldConfig builds the config payload for a rating field
func RatingFieldConfig(max int) FieldConfig {
	return FieldConfig{Rating: &RatingConfig{Max: max}}
}

// SelectFieldConfig builds the config payload for a select field
func SelectFieldConfig(options []string) FieldConfig {
	return FieldConfig{Select: &SelectConfig{Options: options}}
}

// TextFieldConfig builds the config payload for a text field
func TextFieldConfig(maxLength *int) FieldConfig {
	return FieldConfig{Text: &TextConfig{MaxLength: maxLength}}
}

// ValidateForType checks that the payload populates exactly the variant the
// field type requires and that the variant's contents make sense.
func (c FieldConfig) ValidateForType(ft FieldType) error {
	switch ft {
	case FieldTypeRating:
		if c.Rating == nil || c.Select != nil || c.Text != nil {
			return fmt.Errorf("rating field requires exactly the rating config variant")
		}
		if c.Rating.Max < 1 {
			return fmt.Errorf("rating max must be at least 1, got %d", c.Rating.Max)
		}
	case FieldTypeSelect:
		if c.Select == nil || c.Rating != nil || c.Text != nil {
			return fmt.Errorf("select field requires exactly the select config variant")
		}
		if len(c.Select.Options) == 0 {
			return fmt.Errorf("select field requires at least one option")
		}
		seen := make(map[string]bool, len(c.Select.Options))
		for _, opt := range c.Select.Options {
			if opt == "" {
				return fmt.Errorf("select options must not be empty strings")
			}
			if seen[opt] {
				return fmt.Errorf("duplicate select option %q", opt)
			}
			seen[opt] = true
		}
	case FieldTypeBoolean:
		if c.Rating != nil || c.Select != nil || c.Text != nil {
			return fmt.Errorf("boolean field carries no configuration")
		}
	case FieldTypeText:
		if c.Rating != nil || c.Select != nil {
			return fmt.Errorf("text field accepts only the text config variant")
		}
		if c.Text != nil && c.Text.MaxLength != nil && *c.Text.MaxLength < 1 {
			return fmt.Errorf("text max_length must be at least 1, got %d", *c.Text.MaxLength)
		}
	default:
		return fmt.Errorf("unknown field type %q", ft)
	}
	return nil
}
