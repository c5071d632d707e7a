package ocsf

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Enum is an attribute's literal table. JSON objects lose key order under a
// plain map decode, but enum order is part of the compiled output contract,
// so decoding walks the token stream and keeps keys in source order.
type Enum struct {
	keys   []string
	values map[string]EnumValue
}

// EnumValue is the description attached to one enum literal.
type EnumValue struct {
	Caption     string `json:"caption,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewEnum builds an enum from ordered literal/value pairs, mainly for tests
// and fixtures.
func NewEnum(pairs ...[2]string) *Enum {
	e := &Enum{values: make(map[string]EnumValue, len(pairs))}
	for _, p := range pairs {
		e.add(p[0], EnumValue{Caption: p[1]})
	}
	return e
}

func (e *Enum) add(key string, v EnumValue) {
	if _, dup := e.values[key]; !dup {
		e.keys = append(e.keys, key)
	}
	e.values[key] = v
}

// Keys returns the literals in catalog source order.
func (e *Enum) Keys() []string {
	if e == nil {
		return nil
	}
	return e.keys
}

// Len returns the number of literals.
func (e *Enum) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

// Value returns the description entry for a literal.
func (e *Enum) Value(key string) (EnumValue, bool) {
	if e == nil {
		return EnumValue{}, false
	}
	v, ok := e.values[key]
	return v, ok
}

// UnmarshalJSON decodes {"literal": {"caption": …}, …} keeping key order.
// Some catalog vintages write bare strings as values; those become the
// caption. Any other value shape is skipped, only the key matters downstream.
func (e *Enum) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		if tok == nil {
			// "enum": null
			return nil
		}
		return fmt.Errorf("enum: expected object, got %v", tok)
	}

	e.keys = e.keys[:0]
	e.values = make(map[string]EnumValue)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("enum: non-string key %v", keyTok)
		}

		val, err := decodeEnumValue(dec)
		if err != nil {
			return err
		}
		e.add(key, val)
	}

	_, err = dec.Token() // closing brace
	return err
}

func decodeEnumValue(dec *json.Decoder) (EnumValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return EnumValue{}, err
	}

	switch t := tok.(type) {
	case string:
		return EnumValue{Caption: t}, nil
	case json.Delim:
		if t == '[' {
			return EnumValue{}, skipContainer(dec)
		}
		return decodeEnumObject(dec)
	default:
		// number, bool, or null; nothing useful to keep
		return EnumValue{}, nil
	}
}

func decodeEnumObject(dec *json.Decoder) (EnumValue, error) {
	var v EnumValue
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return v, err
		}
		key, _ := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return v, err
		}
		if _, ok := valTok.(json.Delim); ok {
			// nested structure under an enum value field; skip it
			if err := skipContainer(dec); err != nil {
				return v, err
			}
			continue
		}
		if s, ok := valTok.(string); ok {
			switch key {
			case "caption":
				v.Caption = s
			case "description":
				v.Description = s
			}
		}
	}
	_, err := dec.Token() // closing brace
	return v, err
}

// skipContainer consumes tokens through the matching close delimiter for a
// container whose opening delimiter has already been read.
func skipContainer(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// MarshalJSON writes the enum back out in source order, for fixtures that
// round-trip catalogs.
func (e *Enum) MarshalJSON() ([]byte, error) {
	if e == nil || len(e.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(e.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
