package tree

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tree.schema.json
var schemaSource string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func treeSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("tree.schema.json", schemaSource)
	})
	return compiledSchema, schemaErr
}

// ValidateJSON checks raw JSON against the tree schema without decoding it
// into a [Tree]. The returned error lists every schema violation.
func ValidateJSON(data []byte) error {
	schema, err := treeSchema()
	if err != nil {
		return fmt.Errorf("compile tree schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	return schema.Validate(v)
}

// Schema returns the embedded JSON Schema document.
func Schema() string { return schemaSource }
