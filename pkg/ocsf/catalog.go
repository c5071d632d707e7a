// Package ocsf models one version of the OCSF catalog: the pre-resolved
// classes, objects, and scalar type table that schema compilation reads.
// Attribute inheritance is already flattened by the exporter; the catalog is
// immutable once constructed.
package ocsf

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

// Catalog holds one schema version. Entry maps are keyed by lowercase name.
// The uid index is built lazily on first lookup and is the only mutable
// state; everything else is read-only after construction.
type Catalog struct {
	Version string             `json:"version"`
	Classes map[string]*Class  `json:"classes"`
	Objects map[string]*Object `json:"objects"`
	Types   map[string]*Type   `json:"types"`

	uidMu    sync.Mutex
	uidIndex map[int]string
}

// Class is one event class: a named set of attributes plus optional
// presence constraints over them.
type Class struct {
	UID         int                   `json:"uid,omitempty"`
	Name        string                `json:"name,omitempty"`
	Caption     string                `json:"caption"`
	Description string                `json:"description,omitempty"`
	Category    string                `json:"category,omitempty"`
	Extends     string                `json:"extends,omitempty"`
	Profiles    []string              `json:"profiles,omitempty"`
	Attributes  map[string]*Attribute `json:"attributes"`
	Constraints *Constraints          `json:"constraints,omitempty"`
}

// Object is a reusable nested structure referenced by classes or by other
// objects.
type Object struct {
	Name        string                `json:"name,omitempty"`
	Caption     string                `json:"caption"`
	Description string                `json:"description,omitempty"`
	Extends     string                `json:"extends,omitempty"`
	Profiles    []string              `json:"profiles,omitempty"`
	Attributes  map[string]*Attribute `json:"attributes"`
	Constraints *Constraints          `json:"constraints,omitempty"`
}

// Attribute is one attribute of a class or object.
//
// Profile distinguishes absent from an explicit null: both mean the
// attribute is always included, so callers only check for a non-nil value.
type Attribute struct {
	Caption     string  `json:"caption,omitempty"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type"`
	Requirement string  `json:"requirement,omitempty"`
	Group       string  `json:"group,omitempty"`
	Sibling     string  `json:"sibling,omitempty"`
	IsArray     bool    `json:"is_array,omitempty"`
	ObjectType  string  `json:"object_type,omitempty"`
	Profile     *string `json:"profile,omitempty"`
	Enum        *Enum   `json:"enum,omitempty"`
	Deprecated  Flag    `json:"@deprecated,omitempty"`
}

// Type is a scalar type table entry: either a base type or an alias of one,
// optionally carrying length, range, or pattern constraints. Numeric bounds
// stay json.Number so long_t ranges survive without float rounding.
type Type struct {
	Type        string        `json:"type"`
	Caption     string        `json:"caption,omitempty"`
	Description string        `json:"description,omitempty"`
	TypeName    string        `json:"type_name,omitempty"`
	MaxLen      json.Number   `json:"max_len,omitempty"`
	Range       []json.Number `json:"range,omitempty"`
	Regex       string        `json:"regex,omitempty"`
}

// Flag records key presence. The exporter writes @deprecated as an object,
// older catalogs as a bare bool; any value at all, null included, sets it.
type Flag bool

// UnmarshalJSON marks the flag set without inspecting the value.
func (f *Flag) UnmarshalJSON([]byte) error {
	*f = true
	return nil
}

// NewCatalog builds a catalog from already-decoded parts, lowercasing entry
// keys and replacing nil maps so lookups never touch a nil map.
func NewCatalog(version string, classes map[string]*Class, objects map[string]*Object, types map[string]*Type) *Catalog {
	c := &Catalog{Version: version, Classes: classes, Objects: objects, Types: types}
	c.normalize()
	return c
}

func (c *Catalog) normalize() {
	c.Classes = lowerKeys(c.Classes)
	c.Objects = lowerKeys(c.Objects)
	c.Types = lowerKeys(c.Types)
}

func lowerKeys[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Class returns the class entry for name, case-insensitively.
func (c *Catalog) Class(name string) (*Class, bool) {
	cls, ok := c.Classes[strings.ToLower(name)]
	return cls, ok
}

// Object returns the object entry for name, case-insensitively.
func (c *Catalog) Object(name string) (*Object, bool) {
	obj, ok := c.Objects[strings.ToLower(name)]
	return obj, ok
}

// Type returns the scalar type table entry for name, case-insensitively.
func (c *Catalog) Type(name string) (*Type, bool) {
	t, ok := c.Types[strings.ToLower(name)]
	return t, ok
}

// ClassNames returns the catalog's class keys, sorted.
func (c *Catalog) ClassNames() []string {
	return sortedKeys(c.Classes)
}

// ObjectNames returns the catalog's object keys, sorted.
func (c *Catalog) ObjectNames() []string {
	return sortedKeys(c.Objects)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ClassNameByUID returns the display name of the class with the given uid.
// The index over all classes is built once, under the lock, on first call;
// classes without a uid are not indexed. The second return is false when no
// class carries the uid.
func (c *Catalog) ClassNameByUID(uid int) (string, bool) {
	c.uidMu.Lock()
	defer c.uidMu.Unlock()
	if c.uidIndex == nil {
		c.uidIndex = make(map[int]string, len(c.Classes))
		for key, cls := range c.Classes {
			if cls == nil || cls.UID == 0 {
				continue
			}
			name := cls.Name
			if name == "" {
				name = key
			}
			c.uidIndex[cls.UID] = name
		}
	}
	name, ok := c.uidIndex[uid]
	return name, ok
}
