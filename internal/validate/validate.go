// Package validate checks compiled documents against the JSON Schema
// draft 2020-12 meta-schema, so a generated schema is guaranteed to be a
// schema before anything downstream consumes it.
package validate

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentURL = "file:///document.schema.json"

var (
	metaOnce sync.Once
	meta     *jsonschema.Schema
	metaErr  error
)

// metaSchema compiles the draft 2020-12 meta-schema once. The draft is
// bundled with the compiler, so no network access is involved.
func metaSchema() (*jsonschema.Schema, error) {
	metaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		meta, metaErr = c.Compile("https://json-schema.org/draft/2020-12/schema")
	})
	return meta, metaErr
}

// CheckDocument asserts that data is a structurally valid JSON Schema by
// validating it against the draft 2020-12 meta-schema. References are not
// resolved; use CompileDocument for self-contained documents.
func CheckDocument(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse schema document: %w", err)
	}

	m, err := metaSchema()
	if err != nil {
		return fmt.Errorf("compile meta-schema: %w", err)
	}

	if err := m.Validate(doc); err != nil {
		return fmt.Errorf("document is not a valid schema: %w", err)
	}
	return nil
}

// CompileDocument compiles data as a schema, resolving its references.
// Only self-contained documents compile without network access, so
// callers pass embedded output here and plain output to CheckDocument.
func CompileDocument(data []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse schema document: %w", err)
	}
	stripNestedDialects(doc)

	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentURL, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	sch, err := c.Compile(documentURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema document: %w", err)
	}
	return sch, nil
}

// stripNestedDialects drops "$schema" from $defs members. Embedded
// documents keep the dialect marker each inlined object was generated
// with, but draft 2020-12 only permits it on resource roots.
func stripNestedDialects(doc any) {
	m, ok := doc.(map[string]any)
	if !ok {
		return
	}
	defs, ok := m["$defs"].(map[string]any)
	if !ok {
		return
	}
	for _, def := range defs {
		if dm, ok := def.(map[string]any); ok {
			delete(dm, "$schema")
		}
	}
}
