package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	_ "embed"
)

//go:embed tasks.schema.json
var schemaJSON string

// ValidateFile checks the tasks file at path against the embedded JSON
// Schema and returns one error per violation. A missing file is valid
// (it means an empty task list).
func ValidateFile(path string) []error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return []error{fmt.Errorf("read tasks file: %w", err)}
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []error{fmt.Errorf("parse tasks file: %w", err)}
	}

	schema, err := compileSchema()
	if err != nil {
		return []error{err}
	}

	if err := schema.Validate(doc); err != nil {
		return flattenSchemaError(err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("tasks.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// flattenSchemaError walks the nested validation error tree and emits
// one flat error per leaf cause, with a dotted path to the offending
// location.
func flattenSchemaError(err error) []error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []error{err}
	}
	var out []error
	collectCauses(&out, ve)
	return out
}

func collectCauses(out *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		path := pointerToPath(err.InstanceLocation)
		if path == "" {
			*out = append(*out, fmt.Errorf("%s", err.Message))
		} else {
			*out = append(*out, fmt.Errorf("%s: %s", path, err.Message))
		}
		return
	}
	for _, cause := range err.Causes {
		collectCauses(out, cause)
	}
}

func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path string
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
