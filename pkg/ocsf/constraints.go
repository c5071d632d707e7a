package ocsf

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Constraint kinds the compiler understands.
const (
	ConstraintAtLeastOne = "at_least_one"
	ConstraintJustOne    = "just_one"
)

// Constraints are the presence rules a class or object declares over its
// attributes. Every key is recorded in source order so unsupported ones can
// be rejected by name; presence is tracked separately from value because a
// key with a null or empty value still counts as present.
type Constraints struct {
	AtLeastOne []string
	JustOne    []string

	keys []string
}

// NewConstraints builds a constraints set from known fields, for fixtures.
func NewConstraints(atLeastOne, justOne []string) *Constraints {
	c := &Constraints{AtLeastOne: atLeastOne, JustOne: justOne}
	if atLeastOne != nil {
		c.keys = append(c.keys, ConstraintAtLeastOne)
	}
	if justOne != nil {
		c.keys = append(c.keys, ConstraintJustOne)
	}
	return c
}

// Keys returns every declared constraint key in source order.
func (c *Constraints) Keys() []string {
	if c == nil {
		return nil
	}
	return c.keys
}

// Has reports whether the key was declared, whatever its value.
func (c *Constraints) Has(key string) bool {
	if c == nil {
		return false
	}
	for _, k := range c.keys {
		if k == key {
			return true
		}
	}
	return false
}

// UnmarshalJSON decodes the constraints object, keeping key order and the
// attribute lists of the two supported kinds.
func (c *Constraints) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		if tok == nil {
			return nil
		}
		return fmt.Errorf("constraints: expected object, got %v", tok)
	}

	c.keys = c.keys[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("constraints: non-string key %v", keyTok)
		}
		c.keys = append(c.keys, key)

		switch key {
		case ConstraintAtLeastOne:
			if err := dec.Decode(&c.AtLeastOne); err != nil {
				return fmt.Errorf("constraints: %s: %w", key, err)
			}
		case ConstraintJustOne:
			if err := dec.Decode(&c.JustOne); err != nil {
				return fmt.Errorf("constraints: %s: %w", key, err)
			}
		default:
			var discard json.RawMessage
			if err := dec.Decode(&discard); err != nil {
				return fmt.Errorf("constraints: %s: %w", key, err)
			}
		}
	}

	_, err = dec.Token() // closing brace
	return err
}

// MarshalJSON writes the supported constraint kinds back out.
func (c *Constraints) MarshalJSON() ([]byte, error) {
	out := make(map[string][]string, 2)
	if c.Has(ConstraintAtLeastOne) {
		out[ConstraintAtLeastOne] = c.AtLeastOne
	}
	if c.Has(ConstraintJustOne) {
		out[ConstraintJustOne] = c.JustOne
	}
	return json.Marshal(out)
}
