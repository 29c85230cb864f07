package catalog

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// snapshotJSONSchema constrains the document shape MarshalJSON produces,
// following the teacher's schema.json/plan.json reference-validation
// pattern but embedded as a string literal rather than a file on disk, so
// validation does not depend on a working directory layout.
const snapshotJSONSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["schemas", "tables"],
  "properties": {
    "schemas": {
      "type": "array",
      "items": {"type": "string"}
    },
    "tables": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["schema", "name", "columns"],
        "properties": {
          "schema": {"type": "string"},
          "name": {"type": "string"},
          "columns": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "sql_type", "ord_num"],
              "properties": {
                "name": {"type": "string"},
                "sql_type": {"type": "string"},
                "ord_num": {"type": "integer", "minimum": 0}
              }
            }
          }
        }
      }
    }
  }
}`

// ValidateSnapshotJSON checks that data conforms to the catalog snapshot
// document shape before attempting UnmarshalSnapshotJSON on it, producing
// a structured list of schema-validation complaints rather than a raw
// json.Unmarshal type error.
func ValidateSnapshotJSON(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(snapshotJSONSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("catalog: validating snapshot document: %w", err)
	}
	if !result.Valid() {
		msg := "catalog: snapshot JSON does not conform to schema:\n"
		for _, desc := range result.Errors() {
			msg += fmt.Sprintf("- %s\n", desc)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}
