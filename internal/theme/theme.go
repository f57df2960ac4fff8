// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package theme

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Theme represents the color theme for the console and the TUI
type Theme struct {
	HeaderTextColor      string `json:"header_text_color"`
	PromptColor          string `json:"prompt_color"`
	DirectoryColor       string `json:"directory_color"`
	FileColor            string `json:"file_color"`
	ErrorColor           string `json:"error_color"`
	SuccessColor         string `json:"success_color"`
	InputLabelColor      string `json:"input_label_color"`
	InputTextColor       string `json:"input_text_color"`
	InputBackgroundColor string `json:"input_background_color"`
	BorderColor          string `json:"border_color"`
}

// ColorScheme provides pterm and color styles based on theme
type ColorScheme struct {
	Header    *pterm.Style
	Prompt    *color.Color
	Directory *color.Color
	File      *color.Color
	Error     *color.Color
	Success   *color.Color
}

// DefaultTheme returns a theme with default values
func DefaultTheme() *Theme {
	return &Theme{
		HeaderTextColor:      "#cba6f7",
		PromptColor:          "#89b4fa",
		DirectoryColor:       "#89b4fa",
		FileColor:            "#cdd6f4",
		ErrorColor:           "#f38ba8",
		SuccessColor:         "#a6e3a1",
		InputLabelColor:      "#cdd6f4",
		InputTextColor:       "#cdd6f4",
		InputBackgroundColor: "#1e1e2e",
		BorderColor:          "#6c7086",
	}
}

// LoadTheme loads theme configuration from a JSON file
func LoadTheme(filepath string) (*Theme, error) {
	theme := DefaultTheme()

	// If theme file doesn't exist, return default theme
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return theme, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, theme); err != nil {
		return nil, err
	}

	return theme, nil
}

// ToColorScheme converts theme to pterm/color styles. Colors must already be
// validated hex values.
func (t *Theme) ToColorScheme() *ColorScheme {
	return &ColorScheme{
		Header:    pterm.NewStyle(pterm.FgLightMagenta, pterm.Bold),
		Prompt:    rgb(t.PromptColor, color.Bold),
		Directory: rgb(t.DirectoryColor, color.Bold),
		File:      rgb(t.FileColor),
		Error:     rgb(t.ErrorColor),
		Success:   rgb(t.SuccessColor),
	}
}

// DefaultColorScheme returns a simple color scheme using the 16 basic colors
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Header:    pterm.NewStyle(pterm.FgCyan, pterm.Bold),
		Prompt:    color.New(color.FgBlue, color.Bold),
		Directory: color.New(color.FgBlue, color.Bold),
		File:      color.New(),
		Error:     color.New(color.FgRed, color.Bold),
		Success:   color.New(color.FgGreen),
	}
}

// DisabledColorScheme returns a color scheme with all colors disabled (for NO_COLOR).
func DisabledColorScheme() *ColorScheme {
	// Disable color output for fatih/color
	color.NoColor = true

	return &ColorScheme{
		Header:    pterm.NewStyle(), // No colors
		Prompt:    color.New(),
		Directory: color.New(),
		File:      color.New(),
		Error:     color.New(),
		Success:   color.New(),
	}
}

func rgb(hex string, attrs ...color.Attribute) *color.Color {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return color.New(attrs...)
	}
	return color.RGB(r, g, b).Add(attrs...)
}

// parseHex decodes #RGB and #RRGGBB.
func parseHex(hex string) (r, g, b int, ok bool) {
	if !hexColorRegex.MatchString(hex) {
		return 0, 0, 0, false
	}
	digits := hex[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
