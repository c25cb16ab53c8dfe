package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the project configuration
// file, using the YAML field names.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "lazysuite configuration"
	schema.Description = "Schema for .lazysuite.yml properties."

	return json.MarshalIndent(schema, "", "  ")
}
