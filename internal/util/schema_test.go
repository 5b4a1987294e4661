package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleSchema struct {
	A string `json:"a" description:"Field A"`
	B *int   `json:"b" description:"Optional pointer field"`
	C int    `json:"c,omitempty" description:"Omit empty field"`
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleSchema{})

	props, ok := schema["properties"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")

	a := props["a"].(map[string]any)
	assert.Equal(t, "string", a["type"])
	assert.Equal(t, "Field A", a["description"])

	// Required only includes non-pointer, non-omitempty exported fields.
	req, _ := schema["required"].([]string)
	assert.ElementsMatch(t, []string{"a"}, req)
}

func TestCreateSchema_NonStruct(t *testing.T) {
	schema := CreateSchema(42)
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["properties"])
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		// []any mirrors a schema that round-tripped through JSON.
		"required": []any{"x"},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"x": 5}, schema))

	// JSON numbers arrive as float64; whole values pass as integers.
	assert.NoError(t, ValidateParameters(map[string]any{"x": float64(5)}, schema))
	assert.Error(t, ValidateParameters(map[string]any{"x": 5.5}, schema))

	// Missing required field.
	err := ValidateParameters(map[string]any{}, schema)
	assert.Error(t, err)
	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Equal(t, "x", vErr.Field)

	// Wrong type.
	err = ValidateParameters(map[string]any{"x": "not-int"}, schema)
	assert.Error(t, err)
	vErr, ok = err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Message, "expected type integer")

	// Extra fields are allowed.
	assert.NoError(t, ValidateParameters(map[string]any{"x": 1, "extra": "ok"}, schema))
}

func TestValidateParameters_RequiredAsStringSlice(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string"},
		},
		"required": []string{"query"},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"query": "hello"}, schema))
	assert.Error(t, ValidateParameters(map[string]any{}, schema))
}
