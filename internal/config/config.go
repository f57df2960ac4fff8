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

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvRootName   = "VFSH_ROOT_NAME"
	EnvPrompt     = "VFSH_PROMPT"
	EnvThemeFile  = "VFSH_THEME_FILE"
	EnvExtensions = "VFSH_EXTENSIONS"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "vfsh.json"

// Config represents the application configuration
type Config struct {
	RootName   string   `json:"root_name" yaml:"root_name" validate:"required,excludes=/" jsonschema:"description=Name of the root directory shown by pwd,minLength=1"`
	Prompt     string   `json:"prompt,omitempty" yaml:"prompt,omitempty" validate:"max=32" jsonschema:"description=Text printed after the current path in the prompt"`
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty" validate:"omitempty,dive,required,alphanum" jsonschema:"description=File extensions touch accepts (without the leading dot)"`
	ThemeFile  string   `json:"theme_file,omitempty" yaml:"theme_file,omitempty" jsonschema:"description=Path to a JSON color theme"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		RootName:  "root",
		Prompt:    "> ",
		ThemeFile: "theme.json",
	}
}

// LoadDotEnv loads variables from an .env file into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads configuration from a JSON or YAML file, applies env
// overrides, and validates the result. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if isYAML(path) {
			if data, err = yamlToJSON(data); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		normalized, err := normalizeConfigJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := json.Unmarshal(normalized, config); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	// Env overrides (apply regardless of whether config file exists)
	if val := os.Getenv(EnvRootName); val != "" {
		config.RootName = val
	}
	if val := os.Getenv(EnvPrompt); val != "" {
		config.Prompt = val
	}
	if val := os.Getenv(EnvThemeFile); val != "" {
		config.ThemeFile = val
	}
	if val := os.Getenv(EnvExtensions); val != "" {
		config.Extensions = strings.Split(val, ",")
	}

	config.Extensions = normalizeExtensions(config.Extensions)

	if err := validate.Struct(config); err != nil {
		return nil, describeValidation(err)
	}

	return config, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe.StructNamespace())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "excludes":
			msgs = append(msgs, fmt.Sprintf("%s must not contain %q", field, fe.Param()))
		case "alphanum":
			msgs = append(msgs, fmt.Sprintf("%s value %q must be alphanumeric", field, fe.Value()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// jsonFieldName maps "Config.Extensions[2]" to "extensions[2]".
func jsonFieldName(ns string) string {
	ns = strings.TrimPrefix(ns, "Config.")
	name, index, _ := strings.Cut(ns, "[")
	if index != "" {
		index = "[" + index
	}
	switch name {
	case "RootName":
		name = "root_name"
	case "Prompt":
		name = "prompt"
	case "Extensions":
		name = "extensions"
	case "ThemeFile":
		name = "theme_file"
	}
	return name + index
}

func normalizeExtensions(exts []string) []string {
	if exts == nil {
		return nil
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		out = append(out, strings.TrimPrefix(strings.TrimSpace(e), "."))
	}
	return out
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// yamlToJSON re-encodes a YAML document as JSON so both formats go through the
// same field whitelist.
func yamlToJSON(data []byte) ([]byte, error) {
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// ValidationWarning represents a non-fatal configuration issue
type ValidationWarning struct {
	Field   string
	Message string
}

// Validate checks the configuration for common issues and returns warnings
func (c *Config) Validate() []ValidationWarning {
	var warnings []ValidationWarning

	seen := make(map[string]bool, len(c.Extensions))
	for _, ext := range c.Extensions {
		if seen[ext] {
			warnings = append(warnings, ValidationWarning{
				Field:   "extensions",
				Message: fmt.Sprintf("extension %q is listed more than once", ext),
			})
		}
		seen[ext] = true
	}

	if strings.HasPrefix(c.RootName, ".") {
		warnings = append(warnings, ValidationWarning{
			Field:   "root_name",
			Message: fmt.Sprintf("root_name %q starts with a dot", c.RootName),
		})
	}

	if strings.TrimSpace(c.Prompt) == "" {
		warnings = append(warnings, ValidationWarning{
			Field:   "prompt",
			Message: "prompt is blank, the current path will run into typed input",
		})
	}

	if c.ThemeFile != "" && c.ThemeFile != DefaultConfig().ThemeFile {
		if _, err := os.Stat(c.ThemeFile); err != nil {
			warnings = append(warnings, ValidationWarning{
				Field:   "theme_file",
				Message: fmt.Sprintf("theme file %q is not readable, using default colors", c.ThemeFile),
			})
		}
	}

	return warnings
}
