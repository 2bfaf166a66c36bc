package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// bundleSchema guards the artifact shape before decoding, so a
// corrupt or truncated file fails with a readable message instead of
// a zero-valued struct.
const bundleSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["pipeline", "version"],
  "properties": {
    "pipeline": {
      "type": "object",
      "required": ["numeric", "model"],
      "properties": {
        "numeric": {"type": "array", "items": {"type": "string"}},
        "model": {"type": "object"}
      }
    },
    "numeric_features": {"type": "array", "items": {"type": "string"}},
    "trigger_features": {"type": "array", "items": {"type": "string"}},
    "trained_at": {"type": "string"},
    "run_id": {"type": "string"},
    "n_train": {"type": "integer", "minimum": 0},
    "n_test": {"type": "integer", "minimum": 0},
    "metrics": {
      "type": "object",
      "properties": {
        "mae": {"type": "number"},
        "rmse": {"type": "number"},
        "r2": {"type": "number"}
      }
    },
    "version": {"type": "string"}
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("bundle.json", bytes.NewReader([]byte(bundleSchema))); err != nil {
		panic(err)
	}
	return compiler.MustCompile("bundle.json")
}

func validateSchema(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("bundle is not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("bundle fails schema validation: %w", err)
	}
	return nil
}
