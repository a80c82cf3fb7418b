package repositoryimpl

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchemaURL = "agileboard://schema/tasks.json"

// A document without "tasks" is an empty board. Records must carry every
// field the board needs, and status must be one of the three fixed values.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "description", "status", "created_at"],
        "properties": {
          "id": {"type": "integer"},
          "title": {"type": "string"},
          "description": {"type": "string"},
          "status": {"enum": ["To Do", "In Progress", "Done"]},
          "created_at": {"type": "string"},
          "assignee": {"type": "string"},
          "due_date": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func documentValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(documentSchemaURL, strings.NewReader(documentSchema)); err != nil {
			schemaErr = fmt.Errorf("failed to add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(documentSchemaURL)
	})
	return schema, schemaErr
}

// validateDocument checks a decoded JSON tree against the document schema
// and flattens schema violations into one error per offending location.
func validateDocument(tree any) error {
	sch, err := documentValidator()
	if err != nil {
		return err
	}
	err = sch.Validate(tree)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var msgs []string
	collectSchemaErrors(&msgs, ve)
	return fmt.Errorf("schema violation: %s", strings.Join(msgs, "; "))
}

func collectSchemaErrors(msgs *[]string, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", jsonPointerToPath(err.InstanceLocation), err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(msgs, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "(root)"
	}
	return strings.ReplaceAll(ptr, "/", ".")
}
