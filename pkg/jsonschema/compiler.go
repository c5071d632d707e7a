package jsonschema

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/telhawk-systems/telhawk-schema/pkg/ocsf"
)

// uriFormat is quoted in malformed-URI failures.
const uriFormat = "https://schema.ocsf.io/schema/<version>/<classes|objects>/<name>?profiles=<profiles>"

// Generator compiles classes and objects from one catalog version. It is
// safe for concurrent use: compiled documents are fresh per call and the
// catalog is never written after construction.
type Generator struct {
	catalog *ocsf.Catalog
}

// NewGenerator binds a generator to its catalog.
func NewGenerator(catalog *ocsf.Catalog) *Generator {
	return &Generator{catalog: catalog}
}

// Version reports the catalog version the generator is bound to.
func (g *Generator) Version() string { return g.catalog.Version }

// SchemaForURI parses a schema URI and compiles the entry it addresses.
// The path carries a literal schema marker, the catalog version, the
// entry kind, and the entry name; names of extension entries keep their
// internal slashes. Profiles come from the profiles query parameter as a
// comma-separated list.
func (g *Generator) SchemaForURI(uri string) (*Document, error) {
	uri = strings.ToLower(uri)
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, newError(CodeMalformedURI, "Invalid schema URI: %s. Expected format is: %s", uri, uriFormat)
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 4 || parts[0] != "schema" {
		return nil, newError(CodeMalformedURI, "Invalid schema URI: %s. Expected format is: %s", uri, uriFormat)
	}
	version, kind := parts[1], parts[2]
	name := strings.Join(parts[3:], "/")

	if version != g.catalog.Version {
		return nil, newError(CodeVersionMismatch, "Invalid schema URI: %s. Expected schema version %s.", uri, g.catalog.Version)
	}

	profiles := splitProfiles(parsed.Query().Get("profiles"))

	switch kind {
	case "classes":
		return g.ClassSchema(name, profiles)
	case "objects":
		return g.ObjectSchema(name, profiles)
	default:
		return nil, newError(CodeUnknownKind, "Invalid schema URI: %s. Expects lookup for classes or objects.", uri)
	}
}

// ClassSchema compiles the named class with the given profile selection.
func (g *Generator) ClassSchema(name string, profiles []string) (*Document, error) {
	name = strings.ToLower(name)
	cls, ok := g.catalog.Class(name)
	if !ok {
		return nil, newError(CodeUnknownClass, "Class '%s' is not defined", name)
	}
	id := fmt.Sprintf("%s/schema/%s/classes/%s", BaseURI, g.catalog.Version, name)
	return g.generate(id, cls.Caption, cls.Attributes, cls.Constraints, profiles)
}

// ObjectSchema compiles the named object with the given profile selection.
func (g *Generator) ObjectSchema(name string, profiles []string) (*Document, error) {
	name = strings.ToLower(name)
	obj, ok := g.catalog.Object(name)
	if !ok {
		return nil, newError(CodeUnknownObject, "Object '%s' is not defined", name)
	}
	id := fmt.Sprintf("%s/schema/%s/objects/%s", BaseURI, g.catalog.Version, name)
	return g.generate(id, obj.Caption, obj.Attributes, obj.Constraints, profiles)
}

// ClassNameByUID resolves a class uid to its display name through the
// catalog's lazily built index.
func (g *Generator) ClassNameByUID(uid int) (string, error) {
	name, ok := g.catalog.ClassNameByUID(uid)
	if !ok {
		return "", newError(CodeUnknownUID, "No class found for uid %d", uid)
	}
	return name, nil
}

func (g *Generator) generate(id, caption string, attrs map[string]*ocsf.Attribute, cons *ocsf.Constraints, profiles []string) (*Document, error) {
	profiles = normalizeProfiles(profiles)
	query := ""
	if len(profiles) > 0 {
		query = "?profiles=" + strings.Join(profiles, ",")
	}
	refFormat := fmt.Sprintf("%s/schema/%s/objects/%%s%s", BaseURI, g.catalog.Version, query)

	doc := &Document{
		Schema:     Draft,
		ID:         id + query,
		Title:      caption,
		Type:       "object",
		Properties: make(map[string]*Property, len(attrs)),
	}

	var required []string
	for name, attr := range attrs {
		if attr == nil {
			continue
		}
		// A profile-gated attribute is included only when its profile was
		// requested. An explicit null profile means always included.
		if attr.Profile != nil && !slices.Contains(profiles, *attr.Profile) {
			continue
		}
		prop, err := g.attribute(attr, refFormat)
		if err != nil {
			return nil, err
		}
		doc.Properties[name] = prop
		if attr.Requirement == "required" {
			required = append(required, name)
		}
	}

	// Only entries with no properties of their own, like the generic
	// object object, accept arbitrary extra keys.
	doc.AdditionalProperties = len(doc.Properties) == 0

	if len(required) > 0 {
		sort.Strings(required)
		doc.Required = required
	}

	if cons != nil {
		if unknown := unsupportedConstraintKeys(cons); len(unknown) > 0 {
			return nil, newError(CodeUnsupportedConstraint, "Not constraints implemented yet: %s", strings.Join(unknown, ", "))
		}
		doc.AnyOf = requirements(cons.AtLeastOne)
		doc.OneOf = requirements(cons.JustOne)
	}
	return doc, nil
}

// normalizeProfiles lowercases, de-duplicates, and sorts the requested
// profile names so equivalent selections produce one canonical $id.
func normalizeProfiles(profiles []string) []string {
	if len(profiles) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(profiles))
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		p = strings.ToLower(p)
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func splitProfiles(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func unsupportedConstraintKeys(cons *ocsf.Constraints) []string {
	var unknown []string
	for _, key := range cons.Keys() {
		if key != ocsf.ConstraintAtLeastOne && key != ocsf.ConstraintJustOne {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

func requirements(fields []string) []Requirement {
	if len(fields) == 0 {
		return nil
	}
	out := make([]Requirement, len(fields))
	for i, field := range fields {
		out[i] = Requirement{Required: []string{field}}
	}
	return out
}
