package convert

import (
	"encoding/json"
	"fmt"
)

// EncodeJSON renders a converted value or argument mapping as JSON.  Typed
// maps may carry non-string keys which encoding/json refuses, so keys are
// re-encoded into their textual form first; struct-typed keys come out as
// JSON-encoded strings, mirroring the accepted input form.
func EncodeJSON(value any) ([]byte, error) {
	return json.Marshal(jsonify(value))
}

func jsonify(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = jsonify(elem)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[keyString(key)] = jsonify(elem)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = jsonify(elem)
		}
		return out
	default:
		return value
	}
}

func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	data, err := json.Marshal(jsonify(key))
	if err != nil {
		return fmt.Sprintf("%v", key)
	}
	return string(data)
}
