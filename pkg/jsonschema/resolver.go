package jsonschema

import "github.com/telhawk-systems/telhawk-schema/pkg/ocsf"

// scalarTypes is the closed set of base OCSF type names and the JSON
// Schema primitive each compiles to. json_t and object_t are listed with
// no primitive: json_t accepts any value shape, object_t compiles to a
// reference instead.
var scalarTypes = map[string]string{
	"boolean_t":   "boolean",
	"float_t":     "number",
	"integer_t":   "integer",
	"long_t":      "integer",
	"string_t":    "string",
	"json_t":      "",
	"object_t":    "",
	"datetime_t":  "string",
	"ip_t":        "string",
	"mac_t":       "string",
	"port_t":      "integer",
	"timestamp_t": "integer",
	"url_t":       "string",
	"email_t":     "string",
	"fqdn_t":      "string",
}

// maxAliasDepth caps alias chain walks. The dictionary nests at most one
// alias level, so a deeper chain is a cycle in the source data.
const maxAliasDepth = 4

// earliestRelease is the first published catalog track. A handful of
// dictionary defects ship only in it and are patched by the quirk tables.
const earliestRelease = "1.0.0-rc.2"

// quirkKey addresses a version-specific correction by type name and
// the catalog version it applies to.
type quirkKey struct {
	typeName string
	version  string
}

// selfScalarTypes patches type table entries that name themselves as
// their own base, where the alias walk would never reach a primitive.
var selfScalarTypes = map[quirkKey]string{
	{"subnet_t", earliestRelease}:    "string",
	{"file_hash_t", earliestRelease}: "string",
}

// resolveType resolves a declared attribute type to its JSON Schema
// primitive and the type table entry supplying any catalog constraints.
// Base type names resolve immediately; anything else must be an alias
// that bottoms out at a base type within maxAliasDepth steps.
func (g *Generator) resolveType(name string) (string, *ocsf.Type, error) {
	src, _ := g.catalog.Type(name)
	if prim, ok := scalarTypes[name]; ok {
		return prim, src, nil
	}
	if src == nil {
		return "", nil, newError(CodeUnknownType, "unknown type found: %s", name)
	}
	if prim, ok := selfScalarTypes[quirkKey{name, g.catalog.Version}]; ok {
		return prim, src, nil
	}

	base := src.Type
	for depth := 0; base != "" && depth < maxAliasDepth; depth++ {
		if prim, ok := scalarTypes[base]; ok {
			return prim, src, nil
		}
		next, ok := g.catalog.Type(base)
		if !ok {
			break
		}
		base = next.Type
	}
	return "", nil, newError(CodeUnknownScalarBase, "unknown scalar type: %s", name)
}
