package ocsf

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumKeepsSourceOrder(t *testing.T) {
	raw := `{"99":{"caption":"Other"},"1":{"caption":"Success"},"2":{"caption":"Failure"},"0":{"caption":"Unknown"}}`

	var e Enum
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Equal(t, []string{"99", "1", "2", "0"}, e.Keys())
	assert.Equal(t, 4, e.Len())

	v, ok := e.Value("1")
	require.True(t, ok)
	assert.Equal(t, "Success", v.Caption)
}

func TestEnumDecodeWithinAttribute(t *testing.T) {
	raw := `{
		"caption": "Activity",
		"type": "integer_t",
		"enum": {"3": {"caption": "Three", "description": "third"}, "1": {"caption": "One"}, "2": {"caption": "Two"}}
	}`

	var attr Attribute
	require.NoError(t, json.Unmarshal([]byte(raw), &attr))
	require.NotNil(t, attr.Enum)
	assert.Equal(t, []string{"3", "1", "2"}, attr.Enum.Keys())

	v, _ := attr.Enum.Value("3")
	assert.Equal(t, "third", v.Description)
}

func TestEnumBareStringValues(t *testing.T) {
	// some catalog vintages write "literal": "description"
	raw := `{"val1": "desc1", "val2": "desc2"}`

	var e Enum
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, []string{"val1", "val2"}, e.Keys())

	v, _ := e.Value("val1")
	assert.Equal(t, "desc1", v.Caption)
}

func TestEnumSkipsOddValueShapes(t *testing.T) {
	raw := `{"1": {"caption": "One", "extra": {"nested": [1, 2, {"deep": true}]}}, "2": 42, "3": null, "4": ["a"]}`

	var e Enum
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, []string{"1", "2", "3", "4"}, e.Keys())

	v, ok := e.Value("1")
	require.True(t, ok)
	assert.Equal(t, "One", v.Caption)
}

func TestEnumRejectsNonObject(t *testing.T) {
	var e Enum
	err := json.Unmarshal([]byte(`[1,2,3]`), &e)
	assert.Error(t, err)
}

func TestEnumMarshalRoundTrip(t *testing.T) {
	e := NewEnum([2]string{"2", "Two"}, [2]string{"1", "One"})

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2":{"caption":"Two"},"1":{"caption":"One"}}`, string(out))

	var back Enum
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, []string{"2", "1"}, back.Keys())
}

func TestConstraintsDecode(t *testing.T) {
	raw := `{"at_least_one": ["attacks", "malware"], "just_one": ["user", "group"]}`

	var c Constraints
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, []string{"attacks", "malware"}, c.AtLeastOne)
	assert.Equal(t, []string{"user", "group"}, c.JustOne)
	assert.Equal(t, []string{"at_least_one", "just_one"}, c.Keys())
	assert.True(t, c.Has(ConstraintAtLeastOne))
	assert.True(t, c.Has(ConstraintJustOne))
}

func TestConstraintsUnknownKeysKeepOrder(t *testing.T) {
	raw := `{"exactly_two": ["a"], "at_most_one": ["b"]}`

	var c Constraints
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, []string{"exactly_two", "at_most_one"}, c.Keys())
	assert.False(t, c.Has(ConstraintAtLeastOne))
	assert.False(t, c.Has(ConstraintJustOne))
}

func TestConstraintsNullValueStillPresent(t *testing.T) {
	raw := `{"at_least_one": null}`

	var c Constraints
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.True(t, c.Has(ConstraintAtLeastOne))
	assert.Empty(t, c.AtLeastOne)
}

func TestDeprecatedFlagSetByAnyValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"object marker", `{"type":"string_t","@deprecated":{"message":"use x","since":"1.1.0"}}`, true},
		{"bool marker", `{"type":"string_t","@deprecated":true}`, true},
		{"null marker", `{"type":"string_t","@deprecated":null}`, true},
		{"absent", `{"type":"string_t"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attr Attribute
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &attr))
			assert.Equal(t, tt.want, bool(attr.Deprecated))
		})
	}
}

func TestAttributeProfileNullVsAbsent(t *testing.T) {
	var withNull Attribute
	require.NoError(t, json.Unmarshal([]byte(`{"type":"string_t","profile":null}`), &withNull))
	assert.Nil(t, withNull.Profile)

	var withValue Attribute
	require.NoError(t, json.Unmarshal([]byte(`{"type":"string_t","profile":"cloud"}`), &withValue))
	require.NotNil(t, withValue.Profile)
	assert.Equal(t, "cloud", *withValue.Profile)
}
