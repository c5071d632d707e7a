package jsonschema

import (
	"fmt"

	"github.com/telhawk-systems/telhawk-schema/pkg/ocsf"
)

// scalarDefaults carries the fixed keywords each base type contributes on
// its own, before catalog constraints are merged on top of them.
var scalarDefaults = map[string]Property{
	"datetime_t":  {Format: "date-time"},
	"ip_t":        {Format: "ipv4"},
	"mac_t":       {Pattern: "^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$"},
	"port_t":      {Minimum: "0", Maximum: "65535"},
	"timestamp_t": {Minimum: "0"},
	"url_t":       {Format: "uri"},
	"email_t":     {Format: "email"},
	"fqdn_t":      {Format: "hostname"},
}

// attribute compiles one attribute definition into a property fragment.
// refFormat is the printf template object references substitute their
// object name into; it already carries the caller's profile selection.
func (g *Generator) attribute(attr *ocsf.Attribute, refFormat string) (*Property, error) {
	prop := &Property{Title: attr.Caption}

	jsonType, src, err := g.resolveType(attr.Type)
	if err != nil {
		return nil, err
	}
	if jsonType != "" {
		prop.Type = jsonType
	}
	if defaults, ok := scalarDefaults[attr.Type]; ok {
		prop.merge(&defaults)
	}

	frag, err := g.typeConstraints(attr.Type, jsonType, src, attr.Enum)
	if err != nil {
		return nil, err
	}
	prop.merge(frag)

	if attr.Type == "object_t" {
		if attr.ObjectType == "" {
			return nil, newError(CodeMissingObjectType, "Object type is not defined")
		}
		prop.Ref = fmt.Sprintf(refFormat, attr.ObjectType)
	}

	if attr.IsArray {
		// The computed keywords move into items; title and type stay on
		// the wrapper. An item with nothing left keeps at least its
		// primitive, or stays {} for untyped values.
		items := *prop
		items.Title = ""
		items.Type = ""
		inner := &items
		if inner.empty() {
			inner = &Property{Type: jsonType}
		}
		prop = &Property{Title: attr.Caption, Type: "array", Items: inner}
	}

	if attr.Deprecated {
		prop.Deprecated = true
	}
	return prop, nil
}
