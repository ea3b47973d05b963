package roadmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://roadmap.json"

// schemaDefinition describes the accepted shape of a roadmap file.
// Optional item fields may be null; status may also be the empty string,
// which normalizes to not-started.
const schemaDefinition = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "description", "items"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string", "minLength": 1},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "description"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string"},
          "description": {"type": "string"},
          "externalLink": {"type": ["string", "null"]},
          "status": {"enum": [null, "", "not-started", "in-progress", "completed"]},
          "notes": {"type": ["string", "null"]},
          "dueDate": {"type": ["string", "null"]}
        }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// schema returns the compiled roadmap schema, compiling it on first use.
func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(schemaDefinition), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validate checks a parsed JSON value against the roadmap schema.
func validate(doc any) error {
	sch, err := schema()
	if err != nil {
		return fmt.Errorf("compile roadmap schema: %w", err)
	}
	err = sch.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Problems: []string{err.Error()}, Err: err}
	}
	return &ValidationError{Problems: problems(ve), Err: err}
}

// problems flattens a schema validation error into one line per failure.
func problems(ve *jsonschema.ValidationError) []string {
	var out []string
	var walk func(u jsonschema.OutputUnit)
	walk = func(u jsonschema.OutputUnit) {
		if u.Error != nil {
			if msg := u.Error.String(); msg != "" && len(u.Errors) == 0 {
				loc := u.InstanceLocation
				if loc == "" {
					loc = "/"
				}
				out = append(out, fmt.Sprintf("at %s: %s", loc, msg))
			}
		}
		for _, c := range u.Errors {
			walk(c)
		}
	}
	walk(*ve.BasicOutput())
	if len(out) == 0 {
		out = append(out, ve.Error())
	}
	return out
}
