package value

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FromInterface builds a Value from a plain Go value of the shape
// encoding/json, gopkg.in/yaml.v3, or fxamacker/cbor would hand back from
// decoding (nil, bool, string, numeric types, []any, map[string]any). It
// is the inverse of ToInterface for every variant except Function, which
// has no interop representation, with one loss: a Go map carries no
// order, so object keys come back sorted rather than in insertion order.
func FromInterface(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case decimal.Decimal:
		return Number(v), nil
	case float64:
		return Number(decimal.NewFromFloat(v)), nil
	case float32:
		return Number(decimal.NewFromFloat32(v)), nil
	case int:
		return Number(decimal.NewFromInt(int64(v))), nil
	case int64:
		return Number(decimal.NewFromInt(v)), nil
	case uint64:
		return Number(decimal.NewFromInt(int64(v))), nil
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			val, err := FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = val
		}
		return List(items), nil
	case map[string]any:
		obj := NewObject()
		for _, k := range sortedKeys(v) {
			val, err := FromInterface(v[k])
			if err != nil {
				return Value{}, err
			}
			obj.Set(k, val)
		}
		return ObjectValue(obj), nil
	case map[any]any:
		obj := NewObject()
		for k, raw := range v {
			key, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("object key %v is not a string", k)
			}
			val, err := FromInterface(raw)
			if err != nil {
				return Value{}, err
			}
			obj.Set(key, val)
		}
		return ObjectValue(obj), nil
	default:
		return Value{}, fmt.Errorf("value: cannot convert %T to a Rimu value", raw)
	}
}

// sortedKeys orders a decoded map's keys so FromInterface's output is
// deterministic; callers that need true source insertion order should
// decode through a format that preserves it (Rimu's own evaluator never
// calls FromInterface on its own output, only on externally-loaded data
// such as `--env` files).
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
