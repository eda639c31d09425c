package gateway

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const createTicketSchema = `{
  "type": "object",
  "required": ["title", "type", "priority", "reporterId"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "type": {"enum": ["BUG", "FEATURE", "SUPPORT", "MAINTENANCE"]},
    "priority": {"enum": ["HIGH", "MEDIUM", "LOW"]},
    "reporterId": {"type": "integer", "minimum": 1}
  }
}`

const userCreateSchema = `{
  "type": "object",
  "required": ["name", "email", "role", "status"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "email": {"type": "string", "minLength": 3},
    "role": {"enum": ["AGENT", "REPORTER"]},
    "status": {"enum": ["active", "inactive"]}
  }
}`

const userUpdateSchema = `{
  "type": "object",
  "required": ["id", "name", "email", "role", "status"],
  "properties": {
    "id": {"type": "integer", "minimum": 1},
    "name": {"type": "string"},
    "email": {"type": "string"},
    "role": {"enum": ["AGENT", "REPORTER"]},
    "status": {"enum": ["active", "inactive"]}
  }
}`

var (
	createTicketContract = mustSchema(createTicketSchema)
	userCreateContract   = mustSchema(userCreateSchema)
	userUpdateContract   = mustSchema(userUpdateSchema)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("gateway: bad request schema: %v", err))
	}
	return schema
}

// checkBody validates an outgoing body against its contract.
func checkBody(operation string, schema *gojsonschema.Schema, body interface{}) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(body))
	if err != nil {
		return &ValidationError{Operation: operation, Problems: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return &ValidationError{Operation: operation, Problems: problems}
}
