package remediation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// librarySchema validates user-supplied drill library files.
var librarySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"drills": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string", "minLength": 1},
				"minItems": 1,
			},
		},
		"default": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string", "minLength": 1},
			"minItems": 1,
		},
	},
	"required":             []any{"drills", "default"},
	"additionalProperties": false,
}

// LoadLibrary reads a drill library from a JSON file, validating it
// against the library schema before decoding.
func LoadLibrary(path string) (Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Library{}, fmt.Errorf("read drill library: %w", err)
	}
	return ParseLibrary(raw)
}

// ParseLibrary validates and decodes raw JSON into a Library.
func ParseLibrary(raw []byte) (Library, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Library{}, fmt.Errorf("drill library: invalid JSON: %w", err)
	}

	compiled, err := compileLibrarySchema()
	if err != nil {
		return Library{}, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return Library{}, fmt.Errorf("drill library: schema validation failed: %w", err)
	}

	var lib Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		return Library{}, fmt.Errorf("drill library: decode: %w", err)
	}
	return lib, nil
}

func compileLibrarySchema() (*jsonschema.Schema, error) {
	defBytes, err := json.Marshal(librarySchema)
	if err != nil {
		return nil, fmt.Errorf("marshal library schema: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse library schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://drill-library.json"
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add library schema: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile library schema: %w", err)
	}
	return compiled, nil
}
