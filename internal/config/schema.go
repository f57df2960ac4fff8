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
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

// SchemaJSON returns the JSON schema for vfsh.json, reflected from Config.
func SchemaJSON() string {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := r.Reflect(&Config{})
	schema.Title = "vfsh config"
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		// Config only holds strings and string slices.
		panic(fmt.Sprintf("config: cannot marshal schema: %v", err))
	}
	return string(data)
}

// ExampleConfigJSON returns a minimal example config.
func ExampleConfigJSON() string {
	return exampleConfigJSON
}

func normalizeConfigJSON(data []byte) ([]byte, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	migrateLegacyConfig(raw)
	if err := validateConfigMap(raw, ""); err != nil {
		return nil, err
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return normalized, nil
}

// migrateLegacyConfig accepts "root" as an older spelling of "root_name".
func migrateLegacyConfig(raw map[string]interface{}) {
	legacy, ok := raw["root"]
	if !ok {
		return
	}
	if _, ok := raw["root_name"]; !ok {
		raw["root_name"] = legacy
	}
	delete(raw, "root")
}

func validateConfigMap(raw map[string]interface{}, prefix string) error {
	allowed := map[string]func(interface{}) error{
		"root_name":  func(v interface{}) error { return validateString(v, prefix+"root_name") },
		"prompt":     func(v interface{}) error { return validateString(v, prefix+"prompt") },
		"theme_file": func(v interface{}) error { return validateString(v, prefix+"theme_file") },
		"extensions": func(v interface{}) error { return validateStringArray(v, prefix+"extensions") },
	}
	return validateSection(raw, allowed, prefix)
}

func validateSection(section map[string]interface{}, allowed map[string]func(interface{}) error, prefix string) error {
	keys := make([]string, 0, len(section))
	for key := range section {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		validator, ok := allowed[key]
		if !ok {
			return fmt.Errorf("unknown configuration field %q", prefix+key)
		}
		if err := validator(section[key]); err != nil {
			return err
		}
	}
	return nil
}

func validateString(value interface{}, name string) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("%s must be a string", name)
	}
	return nil
}

func validateStringArray(value interface{}, name string) error {
	list, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("%s must be an array of strings", name)
	}
	for _, item := range list {
		if _, ok := item.(string); !ok {
			return fmt.Errorf("%s must be an array of strings", name)
		}
	}
	return nil
}

const exampleConfigJSON = `{
  "root_name": "root",
  "prompt": "> ",
  "theme_file": "theme.json",
  "extensions": ["txt", "md", "json", "go"]
}`
