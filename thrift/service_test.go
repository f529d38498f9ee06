package thrift

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftcall/thriftcall/thrift/config"
	"github.com/thriftcall/thriftcall/thrift/endpoint"
)

const calculatorIDL = `
enum Op {
  ADD = 1,
  SUB = 2
}

struct Work {
  1: required i32 left
  2: required i32 right
  3: Op op
}

service Calculator {
  i32 calculate(1: Work w)
  void ping()
  oneway void shutdown(1: i32 delay)
}
`

func testService(t *testing.T, options ...Option) *Service {
	t.Helper()
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "calculator.thrift")
	require.NoError(t, os.WriteFile(schemaPath, []byte(calculatorIDL), 0o644))

	options = append([]Option{WithConfig(&config.Config{Schema: schemaPath})}, options...)
	svc, err := New(context.Background(), options...)
	require.NoError(t, err)
	return svc
}

func TestServiceConvertArgs(t *testing.T) {
	svc := testService(t)

	args, err := svc.ConvertArgs(endpoint.Canonical("Calculator/calculate"), map[string]any{
		"w": map[string]any{"left": float64(4), "right": float64(2), "op": "SUB"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, map[string]any{
		"w": map[string]any{"left": int64(4), "right": int64(2), "op": int64(2)},
	}, args)

	// sole-parameter shorthand applies at the endpoint level too
	args, err = svc.ConvertArgs(endpoint.Name("Calculator.shutdown"), float64(5))
	require.NoError(t, err)
	assert.EqualValues(t, map[string]any{"delay": int64(5)}, args)
}

func TestServiceEndpoints(t *testing.T) {
	svc := testService(t)

	endpoints := svc.Endpoints()
	require.Len(t, endpoints, 3)
	names := make([]string, 0, len(endpoints))
	for _, ep := range endpoints {
		names = append(names, string(ep.Name))
	}
	assert.EqualValues(t, []string{
		"calculator.Calculator.calculate",
		"calculator.Calculator.ping",
		"calculator.Calculator.shutdown",
	}, names)

	ep, err := svc.LookupEndpoint(endpoint.Name("Calculator.calculate"))
	require.NoError(t, err)
	assert.EqualValues(t, "i32", ep.ReturnType)
	require.Len(t, ep.Params, 1)
	assert.EqualValues(t, Param{Name: "w", Type: "calculator.Work"}, ep.Params[0])

	ep, err = svc.LookupEndpoint(endpoint.Name("Calculator.shutdown"))
	require.NoError(t, err)
	assert.True(t, ep.Oneway)

	_, err = svc.LookupEndpoint(endpoint.Name("Calculator.divide"))
	assert.Error(t, err)
}

type workArgs struct {
	Left  int32 `json:"left"`
	Right int32 `json:"right"`
	Op    int64 `json:"op"`
}

func TestServiceWithType(t *testing.T) {
	svc := testService(t, WithType("calculator.Work", reflect.TypeOf(workArgs{})))

	args, err := svc.ConvertArgs(endpoint.Name("Calculator.calculate"), map[string]any{
		"w": map[string]any{"left": float64(4), "right": float64(2), "op": "ADD"},
	})
	require.NoError(t, err)
	work, ok := args["w"].(*workArgs)
	require.True(t, ok, "expected *workArgs, got %T", args["w"])
	assert.EqualValues(t, &workArgs{Left: 4, Right: 2, Op: 1}, work)
}

func TestServiceRequiresSchema(t *testing.T) {
	_, err := New(context.Background())
	assert.Error(t, err)

	_, err = New(context.Background(), WithConfig(&config.Config{Schema: "/no/such/file.thrift"}))
	assert.Error(t, err)
}

func TestServiceConfigOptions(t *testing.T) {
	svc := testService(t)
	_, err := svc.ConvertArgs(endpoint.Name("Calculator.calculate"), map[string]any{
		"w": map[string]any{"left": float64(1), "right": float64(2), "bogus": true},
	})
	assert.Error(t, err)

	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "calculator.thrift")
	require.NoError(t, os.WriteFile(schemaPath, []byte(calculatorIDL), 0o644))
	lenient, err := New(context.Background(), WithConfig(&config.Config{
		Schema:        schemaPath,
		LenientFields: true,
	}))
	require.NoError(t, err)

	args, err := lenient.ConvertArgs(endpoint.Name("Calculator.calculate"), map[string]any{
		"w": map[string]any{"left": float64(1), "right": float64(2), "bogus": true},
	})
	require.NoError(t, err)
	assert.EqualValues(t, map[string]any{
		"w": map[string]any{"left": int64(1), "right": int64(2)},
	}, args)
}
