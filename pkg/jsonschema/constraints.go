package jsonschema

import (
	"strconv"

	"github.com/telhawk-systems/telhawk-schema/pkg/ocsf"
)

// ipPattern replaces whatever regex the dictionary carries for ip_t. The
// published pattern lost its backslash escapes somewhere upstream (\d
// arrives as d, \. as .), so every release gets this corrected IPv4/IPv6
// form, zone index included.
const ipPattern = `((^\s*((([0-9]|[1-9][0-9]|1[0-9]{2}|2[0-4][0-9]|25[0-5])\.){3}([0-9]|[1-9][0-9]|1[0-9]{2}|2[0-4][0-9]|25[0-5]))\s*$)` +
	`|(^\s*((([0-9A-Fa-f]{1,4}:){7}([0-9A-Fa-f]{1,4}|:))` +
	`|(([0-9A-Fa-f]{1,4}:){6}(:[0-9A-Fa-f]{1,4}|((25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(\.(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3})|:))` +
	`|(([0-9A-Fa-f]{1,4}:){5}(((:[0-9A-Fa-f]{1,4}){1,2})|:((25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(\.(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3})|:))` +
	`|(([0-9A-Fa-f]{1,4}:){4}(((:[0-9A-Fa-f]{1,4}){1,3})|((:[0-9A-Fa-f]{1,4})?:((25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(\.(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}))|:))` +
	`|(([0-9A-Fa-f]{1,4}:){3}(((:[0-9A-Fa-f]{1,4}){1,4})|((:[0-9A-Fa-f]{1,4}){0,2}:((25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(\.(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}))|:))` +
	`|(([0-9A-Fa-f]{1,4}:){2}(((:[0-9A-Fa-f]{1,4}){1,5})|((:[0-9A-Fa-f]{1,4}){0,3}:((25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(\.(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}))|:))` +
	`|(([0-9A-Fa-f]{1,4}:){1}(((:[0-9A-Fa-f]{1,4}){1,6})|((:[0-9A-Fa-f]{1,4}){0,4}:((25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(\.(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}))|:))` +
	`|(:(((:[0-9A-Fa-f]{1,4}){1,7})|((:[0-9A-Fa-f]{1,4}){0,5}:((25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(\.(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}))|:)))` +
	`(%.+)?\s*$))`

// droppedPatterns marks type regexes that are invalid as published and
// cannot be repaired, so the pattern keyword is omitted for that release.
var droppedPatterns = map[quirkKey]bool{
	{"path_t", earliestRelease}: true,
}

// typeConstraints derives the catalog-driven constraint keywords for one
// attribute: enum literals cast to the resolved primitive, a numeric
// bound from max_len or range, and a pattern from the type's regex after
// version quirks are applied.
func (g *Generator) typeConstraints(typeName, jsonType string, src *ocsf.Type, enum *ocsf.Enum) (*Property, error) {
	frag := &Property{}

	if enum.Len() > 0 {
		values, err := enumValues(jsonType, enum)
		if err != nil {
			return nil, err
		}
		if len(values) == 1 {
			frag.Const = values[0]
		} else {
			frag.Enum = values
		}
	}

	if src != nil {
		hasMaxLen := src.MaxLen != ""
		hasRange := len(src.Range) > 0
		if hasMaxLen && hasRange {
			return nil, newError(CodeConflictingConstraints, "max_len or range should be set, not both")
		}
		switch {
		case hasMaxLen:
			frag.Maximum = src.MaxLen
		case hasRange && len(src.Range) == 2:
			frag.Minimum = src.Range[0]
			frag.Maximum = src.Range[1]
		}
		if src.Regex != "" {
			frag.Pattern = src.Regex
		}
	}

	if typeName == "ip_t" {
		frag.Pattern = ipPattern
	}
	if droppedPatterns[quirkKey{typeName, g.catalog.Version}] {
		frag.Pattern = ""
	}
	return frag, nil
}

// enumValues casts enum literals to the resolved primitive, in catalog
// source order.
func enumValues(jsonType string, enum *ocsf.Enum) ([]any, error) {
	if jsonType == "boolean" {
		return nil, newError(CodeUnsupportedEnum, "enum support on a boolean type is not currently supported")
	}
	keys := enum.Keys()
	values := make([]any, 0, len(keys))
	for _, key := range keys {
		switch jsonType {
		case "integer":
			n, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return nil, newError(CodeUnsupportedEnum, "enum value %q is not an integer literal", key)
			}
			values = append(values, n)
		case "number":
			f, err := strconv.ParseFloat(key, 64)
			if err != nil {
				return nil, newError(CodeUnsupportedEnum, "enum value %q is not a number literal", key)
			}
			values = append(values, f)
		default:
			values = append(values, key)
		}
	}
	return values, nil
}
