package jsonschema

import (
	"net/url"
	"strings"
)

// Embedded wraps a Generator and inlines every object schema a compiled
// document references, transitively, under $defs. References are
// rewritten to local fragments, so the result validates payloads without
// fetching anything.
type Embedded struct {
	gen *Generator
}

// NewEmbedded wraps gen.
func NewEmbedded(gen *Generator) *Embedded {
	return &Embedded{gen: gen}
}

// SchemaForURI compiles the entry the URI addresses and inlines its
// object references.
func (e *Embedded) SchemaForURI(uri string) (*Document, error) {
	doc, err := e.gen.SchemaForURI(uri)
	if err != nil {
		return nil, err
	}
	return e.embed(doc)
}

// ClassSchema compiles the named class and inlines its object references.
func (e *Embedded) ClassSchema(name string, profiles []string) (*Document, error) {
	doc, err := e.gen.ClassSchema(name, profiles)
	if err != nil {
		return nil, err
	}
	return e.embed(doc)
}

// ObjectSchema compiles the named object and inlines its object
// references.
func (e *Embedded) ObjectSchema(name string, profiles []string) (*Document, error) {
	doc, err := e.gen.ObjectSchema(name, profiles)
	if err != nil {
		return nil, err
	}
	return e.embed(doc)
}

// embed rewrites doc's references to local fragments and compiles every
// referenced object into $defs, breadth-first until no new names turn
// up. Each name is embedded once, so cyclic object graphs terminate. A
// document with no references comes back untouched, with no $defs key.
func (e *Embedded) embed(doc *Document) (*Document, error) {
	pending := rewriteRefs(doc.Properties)
	if len(pending) == 0 {
		return doc, nil
	}

	// Embedded objects see exactly the root document's profile selection.
	profiles := profilesFromID(doc.ID)

	doc.Defs = make(map[string]*Document, len(pending))
	for len(pending) > 0 {
		next := make(map[string]struct{})
		for name := range pending {
			slug := objectSlug(name)
			if _, done := doc.Defs[slug]; done {
				continue
			}
			obj, err := e.gen.ObjectSchema(name, profiles)
			if err != nil {
				return nil, err
			}
			// Definitions are addressed through the root document only.
			obj.ID = ""
			for dep := range rewriteRefs(obj.Properties) {
				if _, done := doc.Defs[objectSlug(dep)]; !done {
					next[dep] = struct{}{}
				}
			}
			doc.Defs[slug] = obj
		}
		pending = next
	}
	return doc, nil
}

// rewriteRefs rewrites object references in properties, one items level
// included, to local $defs fragments and reports the referenced object
// names. Already-local references are left alone, which keeps embedding
// idempotent.
func rewriteRefs(properties map[string]*Property) map[string]struct{} {
	seen := make(map[string]struct{})
	for _, prop := range properties {
		target := prop
		if target.Ref == "" && prop.Items != nil {
			target = prop.Items
		}
		if target.Ref == "" || strings.HasPrefix(target.Ref, "#/") {
			continue
		}
		name := entityNameFromURI(target.Ref)
		if name == "" {
			continue
		}
		seen[name] = struct{}{}
		target.Ref = "#/$defs/" + objectSlug(name)
	}
	return seen
}

// entityNameFromURI extracts the entry name from a schema URI, keeping
// the internal slashes of namespaced extension names.
func entityNameFromURI(ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 4 {
		return ""
	}
	return strings.Join(parts[3:], "/")
}

// objectSlug renders an object name as a $defs key. Extension names
// carry slashes, which cannot appear in a JSON pointer token.
func objectSlug(name string) string {
	return strings.ReplaceAll(name, "/", "_")
}

// profilesFromID recovers the profile selection from a compiled $id.
func profilesFromID(id string) []string {
	parsed, err := url.Parse(id)
	if err != nil {
		return nil
	}
	return splitProfiles(parsed.Query().Get("profiles"))
}
