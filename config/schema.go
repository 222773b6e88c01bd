package config

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects the JSON Schema of the configuration file.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	schema := r.Reflect(&File{})
	schema.Title = "ristate configuration"
	schema.Description = "Defaults for the ristate river status reporter."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
