package manifest

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/Deps-Tech/deps-registry/pkg/errors"
)

// SchemaURL identifies the embedded manifest schema.
const SchemaURL = "https://registry.deps.tech/schema/manifest-1.0.json"

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(SchemaURL, doc); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile(SchemaURL)
	})
	return schema, schemaErr
}

// Schema returns the embedded JSON Schema document.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

// Validate checks an encoded manifest against the schema.
func Validate(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile manifest schema")
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	if err := sch.Validate(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "manifest does not match schema")
	}
	return nil
}

// ValidateManifest encodes m and validates the result.
func ValidateManifest(m *Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	return Validate(data)
}
