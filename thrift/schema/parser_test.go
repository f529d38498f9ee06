package schema

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const todoIDL = `
// Sample schema exercised by the parser tests.
namespace go example.todo
namespace py example_todo

const i32 DEFAULT_LIMIT = 25
const list<string> LABELS = ["home", "work"]

typedef i64 Timestamp
typedef map<string,i32> Counts

enum Priority {
  LOW = 1,
  MEDIUM,
  HIGH = 5
}

struct Item {
  1: required string title
  2: optional Priority priority
  3: Timestamp created
  4: i32 limit = 25
}

struct Batch {
  1: list<Item> items,
  2: set<string> tags;
  3: map<string,Item> byTitle
}

exception NotFound {
  1: string message
}

service Todo {
  void add(1: Item item) throws (1: NotFound err),
  list<Item> search(1: i32 limit, 2: string cursor)
  oneway void ping()
}
`

func TestParseSource(t *testing.T) {
	index, err := ParseSource("todo", todoIDL)
	require.NoError(t, err)

	// typedefs resolve to canonical names
	assert.EqualValues(t, "i64", index.UnaliasType("todo.Timestamp"))
	assert.EqualValues(t, "map<string,i32>", index.UnaliasType("todo.Counts"))
	assert.EqualValues(t, "i32", index.UnaliasType("i32"))

	// enum with implicit and explicit ordinals
	require.True(t, index.HasEnum("todo.Priority"))
	priority, _ := index.Enum("todo.Priority")
	low, _ := priority.Ordinal("LOW")
	medium, _ := priority.Ordinal("MEDIUM")
	high, _ := priority.Ordinal("HIGH")
	assert.EqualValues(t, 1, low)
	assert.EqualValues(t, 2, medium)
	assert.EqualValues(t, 5, high)
	name, ok := priority.NameOf(5)
	require.True(t, ok)
	assert.EqualValues(t, "HIGH", name)

	// struct fields keep declaration order and qualified types
	item, ok := index.Struct("todo.Item")
	require.True(t, ok)
	assert.EqualValues(t, []string{"title", "priority", "created", "limit"}, item.FieldNames())
	fields := item.Fields()
	assert.EqualValues(t, "string", fields["title"].Type)
	assert.True(t, fields["title"].Required)
	assert.EqualValues(t, "todo.Priority", fields["priority"].Type)
	assert.EqualValues(t, "todo.Timestamp", fields["created"].Type)
	assert.EqualValues(t, int64(25), fields["limit"].Default)

	// nested generics are qualified too
	batch, ok := index.Struct("todo.Batch")
	require.True(t, ok)
	assert.EqualValues(t, "list<todo.Item>", batch.Fields()["items"].Type)
	assert.EqualValues(t, "map<string,todo.Item>", batch.Fields()["byTitle"].Type)

	// exceptions index like structs
	_, ok = index.Struct("todo.NotFound")
	assert.True(t, ok)

	// service methods
	endpointFields, err := index.FieldsForEndpoint("todo.Todo", "add")
	require.NoError(t, err)
	require.Len(t, endpointFields, 1)
	assert.EqualValues(t, "todo.Item", endpointFields["item"].Type)

	svc, method, err := index.MethodFor("Todo", "ping")
	require.NoError(t, err)
	assert.EqualValues(t, "todo.Todo", svc.Qualified())
	assert.True(t, method.Oneway)

	search, _, err := index.MethodFor("Todo", "search")
	require.NoError(t, err)
	assert.EqualValues(t, "todo.Todo", search.Qualified())
}

func TestParseSourceErrors(t *testing.T) {
	testCases := []struct {
		name   string
		source string
	}{
		{name: "unterminated struct", source: "struct Foo { 1: string name"},
		{name: "missing enum brace", source: "enum Color RED"},
		{name: "stray token", source: "struct Foo {} ;;;"},
		{name: "include without loader", source: `include "other.thrift"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSource("bad", tc.source)
			assert.Error(t, err)
		})
	}
}

func TestLoadWithIncludes(t *testing.T) {
	dir := t.TempDir()
	shared := `
struct User {
  1: required string id
  2: string email
}
`
	main := `
include "shared.thrift"

typedef shared.User Account

service Accounts {
  shared.User get(1: string id)
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.thrift"), []byte(shared), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.thrift"), []byte(main), 0o644))

	index, err := Load(context.Background(), filepath.Join(dir, "main.thrift"))
	require.NoError(t, err)

	_, ok := index.Struct("shared.User")
	assert.True(t, ok)
	assert.EqualValues(t, "shared.User", index.UnaliasType("main.Account"))

	fields, err := index.FieldsForEndpoint("Accounts", "get")
	require.NoError(t, err)
	assert.EqualValues(t, "string", fields["id"].Type)
}

func TestLoadMissingInclude(t *testing.T) {
	dir := t.TempDir()
	main := `include "nowhere.thrift"`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.thrift"), []byte(main), 0o644))

	_, err := Load(context.Background(), filepath.Join(dir, "main.thrift"))
	assert.Error(t, err)
}
