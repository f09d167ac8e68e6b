package rest

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const taskSchemaJSON = `{
  "type": "object",
  "required": ["id", "title", "completed", "userId"],
  "properties": {
    "id": {"type": "integer", "minimum": 1},
    "title": {"type": "string"},
    "completed": {"type": "boolean"},
    "userId": {"type": "integer"}
  }
}`

var (
	taskSchema     = jsonschema.MustCompileString("task.json", taskSchemaJSON)
	taskListSchema = jsonschema.MustCompileString("tasks.json", `{"type": "array", "items": `+taskSchemaJSON+`}`)
)

// decodeValidated checks body against schema and decodes it into v.
func decodeValidated(body []byte, schema *jsonschema.Schema, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
