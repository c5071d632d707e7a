// Package jsonschema compiles OCSF catalog entries into standalone JSON
// Schema draft 2020-12 documents. A Generator is bound to one catalog
// version and compiles classes and objects on demand; Embedded wraps it
// and inlines referenced object schemas under $defs so the result
// validates payloads without fetching anything.
package jsonschema

import "encoding/json"

const (
	// Draft is the JSON Schema dialect every compiled document declares.
	Draft = "https://json-schema.org/draft/2020-12/schema"

	// BaseURI prefixes every compiled $id and object reference.
	BaseURI = "https://schema.ocsf.io"
)

// Document is one compiled schema. Properties and additionalProperties
// are always emitted, even for entries with no attributes of their own;
// the remaining optional keywords appear only when populated.
type Document struct {
	Schema               string               `json:"$schema"`
	ID                   string               `json:"$id,omitempty"`
	Title                string               `json:"title"`
	Type                 string               `json:"type"`
	Properties           map[string]*Property `json:"properties"`
	AdditionalProperties bool                 `json:"additionalProperties"`
	Required             []string             `json:"required,omitempty"`
	AnyOf                []Requirement        `json:"anyOf,omitempty"`
	OneOf                []Requirement        `json:"oneOf,omitempty"`
	Defs                 map[string]*Document `json:"$defs,omitempty"`
}

// Requirement is a single-field presence clause inside anyOf or oneOf.
type Requirement struct {
	Required []string `json:"required"`
}

// Property is one compiled property fragment. Bounds stay json.Number so
// long_t ranges round-trip without float precision loss; Const and Enum
// hold int64, float64, or string values depending on the resolved
// primitive.
type Property struct {
	Title      string      `json:"title,omitempty"`
	Type       string      `json:"type,omitempty"`
	Format     string      `json:"format,omitempty"`
	Pattern    string      `json:"pattern,omitempty"`
	Minimum    json.Number `json:"minimum,omitempty"`
	Maximum    json.Number `json:"maximum,omitempty"`
	Const      any         `json:"const,omitempty"`
	Enum       []any       `json:"enum,omitempty"`
	Ref        string      `json:"$ref,omitempty"`
	Items      *Property   `json:"items,omitempty"`
	Deprecated bool        `json:"deprecated,omitempty"`
}

// merge copies the populated keywords of frag onto p, overwriting any it
// already carries. Title, Type, Ref, Items, and Deprecated never travel
// through fragments and are left alone.
func (p *Property) merge(frag *Property) {
	if frag == nil {
		return
	}
	if frag.Format != "" {
		p.Format = frag.Format
	}
	if frag.Pattern != "" {
		p.Pattern = frag.Pattern
	}
	if frag.Minimum != "" {
		p.Minimum = frag.Minimum
	}
	if frag.Maximum != "" {
		p.Maximum = frag.Maximum
	}
	if frag.Const != nil {
		p.Const = frag.Const
	}
	if len(frag.Enum) > 0 {
		p.Enum = frag.Enum
	}
}

func (p *Property) empty() bool {
	return p.Title == "" && p.Type == "" && p.Format == "" && p.Pattern == "" &&
		p.Minimum == "" && p.Maximum == "" && p.Const == nil && len(p.Enum) == 0 &&
		p.Ref == "" && p.Items == nil && !p.Deprecated
}
