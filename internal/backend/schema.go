package backend

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

const projectSchemaURL = "mem://liendesk/project.json"

// projectSchema is the shape /save-project accepts.
const projectSchema = `{
  "type": "object",
  "required": ["details", "contract"],
  "properties": {
    "id": {"type": "string"},
    "customer_id": {"type": "string"},
    "details": {
      "type": "object",
      "required": ["project_name", "country_id", "state_id", "project_type_id", "role_id", "customer_type_id"],
      "properties": {
        "project_name":     {"type": "string", "minLength": 1, "maxLength": 200},
        "country_id":       {"type": "string", "minLength": 1},
        "state_id":         {"type": "string", "minLength": 1},
        "project_type_id":  {"type": "string", "minLength": 1},
        "role_id":          {"type": "string", "minLength": 1},
        "customer_type_id": {"type": "string", "minLength": 1}
      }
    },
    "dates": {
      "type": "object",
      "properties": {
        "start_date":            {"$ref": "#/$defs/date"},
        "end_date":              {"$ref": "#/$defs/date"},
        "first_furnishing_date": {"$ref": "#/$defs/date"},
        "last_furnishing_date":  {"$ref": "#/$defs/date"}
      }
    },
    "description": {
      "type": "object",
      "properties": {
        "zip": {"type": "string", "pattern": "^$|^[0-9]{5}(-[0-9]{4})?$"}
      }
    },
    "contract": {
      "type": "object",
      "required": ["base_amount"],
      "properties": {
        "base_amount":       {"type": "number", "exclusiveMinimum": 0},
        "additional_amount": {"type": "number"},
        "payments_received": {"type": "number", "minimum": 0}
      }
    }
  },
  "$defs": {
    "date": {"type": "string", "pattern": "^$|^[0-9]{4}-[0-9]{2}-[0-9]{2}$"}
  }
}`

// validator checks request bodies against a compiled schema and reports
// failures as a field→messages map.
type validator struct {
	schema *jsonschema.Schema
}

func newProjectValidator() (*validator, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(projectSchema))
	if err != nil {
		return nil, fmt.Errorf("parse project schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(projectSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add project schema: %w", err)
	}
	schema, err := compiler.Compile(projectSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile project schema: %w", err)
	}
	return &validator{schema: schema}, nil
}

// Validate returns nil when body conforms. A body that is not JSON is
// reported under the "body" field.
func (v *validator) Validate(body []byte) map[string][]string {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return map[string][]string{"body": {"must be a JSON object"}}
	}
	err = v.schema.Validate(inst)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return map[string][]string{"body": {err.Error()}}
	}
	out := map[string][]string{}
	collect(verr, out)
	for k := range out {
		sort.Strings(out[k])
	}
	return out
}

func collect(e *jsonschema.ValidationError, out map[string][]string) {
	if len(e.Causes) > 0 {
		for _, c := range e.Causes {
			collect(c, out)
		}
		return
	}
	if req, ok := e.ErrorKind.(*kind.Required); ok {
		for _, name := range req.Missing {
			field := fieldName(append(append([]string(nil), e.InstanceLocation...), name))
			out[field] = append(out[field], fmt.Sprintf("The %s field is required.", label(name)))
		}
		return
	}
	field := fieldName(e.InstanceLocation)
	name := "body"
	if n := len(e.InstanceLocation); n > 0 {
		name = e.InstanceLocation[n-1]
	}
	out[field] = append(out[field], describe(e.ErrorKind, label(name)))
}

func label(key string) string { return strings.ReplaceAll(key, "_", " ") }

func fieldName(loc []string) string {
	if len(loc) == 0 {
		return "body"
	}
	return strings.Join(loc, ".")
}

func describe(k jsonschema.ErrorKind, name string) string {
	switch k.(type) {
	case *kind.MinLength:
		return fmt.Sprintf("The %s field is required.", name)
	case *kind.MaxLength:
		return fmt.Sprintf("The %s is too long.", name)
	case *kind.Pattern:
		return fmt.Sprintf("The %s format is invalid.", name)
	case *kind.ExclusiveMinimum:
		return fmt.Sprintf("The %s must be greater than 0.", name)
	case *kind.Minimum:
		return fmt.Sprintf("The %s must not be negative.", name)
	case *kind.Type:
		return fmt.Sprintf("The %s has the wrong type.", name)
	default:
		return fmt.Sprintf("The %s is invalid.", name)
	}
}
