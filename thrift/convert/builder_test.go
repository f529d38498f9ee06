package convert

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftcall/thriftcall/internal/conv"
)

type innerRecord struct {
	A string `json:"a"`
	B int64  `json:"b"`
}

func TestBuilderRegisteredStruct(t *testing.T) {
	builder := NewBuilder()
	builder.RegisterType("pkg.Inner", reflect.TypeOf(innerRecord{}))
	c := testConverter(t, WithBuilder(builder))

	actual, err := c.ConvertValue("pkg.Inner", decode(t, `{"a": "x", "b": 2}`))
	require.NoError(t, err)
	record, ok := actual.(*innerRecord)
	require.True(t, ok, "expected *innerRecord, got %T", actual)
	assert.EqualValues(t, &innerRecord{A: "x", B: 2}, record)

	// unregistered structs keep the generic mapping
	actual, err = c.ConvertValue("pkg.Wrap", decode(t, `{"payload": "x"}`))
	require.NoError(t, err)
	assert.EqualValues(t, map[string]any{"payload": "x"}, actual)
}

func TestBuilderRegisteredMapKeys(t *testing.T) {
	builder := NewBuilder()
	builder.RegisterType("pkg.Inner", reflect.TypeOf(innerRecord{}))
	c := testConverter(t, WithBuilder(builder))

	args, err := c.ConvertArgs("Demo", "tally", decode(t, `{
		"scores": {"{\"a\":\"x\",\"b\":2}": [1.5]}
	}`))
	require.NoError(t, err)

	scores, ok := args["scores"].(map[any]any)
	require.True(t, ok)
	// registered struct keys are stored by value, not by pointer
	value, ok := scores[innerRecord{A: "x", B: 2}]
	require.True(t, ok, "missing typed key, have %v", scores)
	assert.EqualValues(t, []any{1.5}, value)
}

func TestBuilderMapPut(t *testing.T) {
	builder := NewBuilder()
	m := builder.Map(2)

	builder.MapPut(m, conv.Pointer(innerRecord{A: "x"}), 1)
	assert.EqualValues(t, 1, m[innerRecord{A: "x"}])

	// uncomparable keys must not panic
	builder.MapPut(m, map[string]any{"a": "y"}, 2)
	assert.EqualValues(t, 2, m[`{"a":"y"}`])

	builder.MapPut(m, nil, 3)
	assert.EqualValues(t, 3, m[nil])
}

func TestBuilderSet(t *testing.T) {
	builder := NewBuilder()

	out := builder.Set([]any{int64(2), int64(1), int64(2)})
	assert.EqualValues(t, []any{int64(2), int64(1)}, out)

	// duplicate generic structs collapse too
	out = builder.Set([]any{
		map[string]any{"a": "x"},
		map[string]any{"a": "x"},
		map[string]any{"a": "y"},
	})
	require.Len(t, out, 2)
}

func TestEncodeJSON(t *testing.T) {
	data, err := EncodeJSON(map[any]any{int64(5): "five"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"5": "five"}`, string(data))

	data, err = EncodeJSON(map[string]any{
		"nested": map[any]any{true: []any{int64(1)}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nested": {"true": [1]}}`, string(data))
}
