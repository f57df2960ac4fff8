package theme

import (
	"errors"
	"fmt"
	"regexp"
)

// Common validation errors
var (
	ErrInvalidColor = errors.New("invalid color format")
	ErrEmptyColor   = errors.New("color cannot be empty")
)

// hexColorRegex matches valid hex color codes (#RGB or #RRGGBB)
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateTheme validates all theme color values.
func ValidateTheme(t *Theme) error {
	if t == nil {
		return fmt.Errorf("theme is nil")
	}

	// Checked in declaration order so the first bad field is reported.
	fields := []struct{ name, value string }{
		{"header_text_color", t.HeaderTextColor},
		{"prompt_color", t.PromptColor},
		{"directory_color", t.DirectoryColor},
		{"file_color", t.FileColor},
		{"error_color", t.ErrorColor},
		{"success_color", t.SuccessColor},
		{"input_label_color", t.InputLabelColor},
		{"input_text_color", t.InputTextColor},
		{"input_background_color", t.InputBackgroundColor},
		{"border_color", t.BorderColor},
	}

	for _, f := range fields {
		if err := ValidateColor(f.value); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}

	return nil
}

// ValidateColor validates a single color value (hex format).
func ValidateColor(color string) error {
	if color == "" {
		return ErrEmptyColor
	}

	if !hexColorRegex.MatchString(color) {
		return fmt.Errorf("%w: %q (expected #RGB or #RRGGBB)", ErrInvalidColor, color)
	}
	
	return nil
}
