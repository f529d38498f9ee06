package typedesc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		typeName string
		expect   *Descriptor
	}{
		{
			name:     "primitive",
			typeName: "i32",
			expect:   &Descriptor{Kind: KindPrimitive, Primitive: "i32"},
		},
		{
			name:     "namespaced",
			typeName: "todo.Item",
			expect:   &Descriptor{Kind: KindNamed, Namespace: "todo", Name: "Item"},
		},
		{
			name:     "list",
			typeName: "list<string>",
			expect:   &Descriptor{Kind: KindList, Elem: &Descriptor{Kind: KindPrimitive, Primitive: "string"}},
		},
		{
			name:     "set of named",
			typeName: "set<todo.Item>",
			expect:   &Descriptor{Kind: KindSet, Elem: &Descriptor{Kind: KindNamed, Namespace: "todo", Name: "Item"}},
		},
		{
			name:     "map with nested comma",
			typeName: "map<Foo.Bar,list<double>>",
			expect: &Descriptor{
				Kind: KindMap,
				Key:  &Descriptor{Kind: KindNamed, Namespace: "Foo", Name: "Bar"},
				Value: &Descriptor{
					Kind: KindList,
					Elem: &Descriptor{Kind: KindPrimitive, Primitive: "double"},
				},
			},
		},
		{
			name:     "deeply nested",
			typeName: "map<string,map<i32,set<list<bool>>>>",
			expect: &Descriptor{
				Kind: KindMap,
				Key:  &Descriptor{Kind: KindPrimitive, Primitive: "string"},
				Value: &Descriptor{
					Kind: KindMap,
					Key:  &Descriptor{Kind: KindPrimitive, Primitive: "i32"},
					Value: &Descriptor{
						Kind: KindSet,
						Elem: &Descriptor{Kind: KindList, Elem: &Descriptor{Kind: KindPrimitive, Primitive: "bool"}},
					},
				},
			},
		},
		{
			name:     "spaces around map types",
			typeName: "map<string, i64>",
			expect: &Descriptor{
				Kind:  KindMap,
				Key:   &Descriptor{Kind: KindPrimitive, Primitive: "string"},
				Value: &Descriptor{Kind: KindPrimitive, Primitive: "i64"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Parse(tc.typeName)
			require.NoError(t, err)
			assert.EqualValues(t, tc.expect, actual)
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name     string
		typeName string
	}{
		{name: "bare name without separator", typeName: "BadType"},
		{name: "two separators", typeName: "a.b.C"},
		{name: "trailing separator", typeName: "todo."},
		{name: "map without top-level comma", typeName: "map<string>"},
		{name: "unbalanced generic", typeName: "list<i32"},
		{name: "empty", typeName: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.typeName)
			require.Error(t, err)
			var formatErr *FormatError
			assert.True(t, errors.As(err, &formatErr), "expected FormatError, got %T", err)
		})
	}
}

func TestParseMemoizes(t *testing.T) {
	first, err := Parse("map<Foo.Bar,list<double>>")
	require.NoError(t, err)
	second, err := Parse("map<Foo.Bar,list<double>>")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDescriptorString(t *testing.T) {
	cases := []string{
		"i64",
		"todo.Item",
		"list<string>",
		"set<todo.Item>",
		"map<Foo.Bar,list<double>>",
	}
	for _, typeName := range cases {
		parsed, err := Parse(typeName)
		if err != nil {
			t.Fatalf("Parse(%q): %v", typeName, err)
		}
		if got := parsed.String(); got != typeName {
			t.Fatalf("String() = %q, want %q", got, typeName)
		}
	}
}
