package value

import (
	"bytes"
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
)

// ToInterface converts v into the plain interface{} shape YAML/CBOR
// encoders and schema validation consume: the same variants, with
// functions encoded as nil. JSON output goes through MarshalJSON instead,
// which preserves object insertion order.
func ToInterface(v Value) any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBoolean:
		b, _ := v.AsBool()
		return b
	case KindString:
		s, _ := v.AsString()
		return s
	case KindNumber:
		n, _ := v.AsNumber()
		return n // decimal.Decimal implements json.Marshaler and encoding.BinaryMarshaler itself
	case KindList:
		l, _ := v.AsList()
		out := make([]any, len(l))
		for i, item := range l {
			out[i] = ToInterface(item)
		}
		return out
	case KindObject:
		o, _ := v.AsObject()
		out := make(map[string]any, o.Len())
		o.Range(func(key string, val Value) bool {
			out[key] = ToInterface(val)
			return true
		})
		return out
	case KindFunction:
		return nil
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler over the interop twin. Objects are
// written by walking Object.Range directly rather than through a Go map,
// because encoding/json sorts map keys alphabetically and object key order
// is observable: serialization must preserve insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch v.Kind() {
	case KindNull, KindFunction:
		buf.WriteString("null")
		return nil
	case KindBoolean:
		b, _ := v.AsBool()
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case KindString:
		s, _ := v.AsString()
		return writeJSONString(buf, s)
	case KindNumber:
		n, _ := v.AsNumber()
		buf.WriteString(n.String())
		return nil
	case KindList:
		l, _ := v.AsList()
		buf.WriteByte('[')
		for i, item := range l {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case KindObject:
		o, _ := v.AsObject()
		buf.WriteByte('{')
		var writeErr error
		first := true
		o.Range(func(key string, val Value) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if writeErr = writeJSONString(buf, key); writeErr != nil {
				return false
			}
			buf.WriteByte(':')
			writeErr = writeJSON(buf, val)
			return writeErr == nil
		})
		if writeErr != nil {
			return writeErr
		}
		buf.WriteByte('}')
		return nil
	default:
		buf.WriteString("null")
		return nil
	}
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	quoted, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(quoted)
	return nil
}

// EncodeCBOR serializes v to CBOR via the interop twin.
func EncodeCBOR(v Value) ([]byte, error) {
	return cbor.Marshal(ToInterface(v))
}

// DecodeCBOR parses CBOR bytes into a Value, reversing EncodeCBOR's
// representation for null, bool, string, array and map. CBOR integers and
// floats decode to numbers; a number written by EncodeCBOR (decimal's
// binary encoding, a CBOR byte string) is not converted back and yields
// an error.
func DecodeCBOR(data []byte) (Value, error) {
	var raw any
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return Value{}, err
	}
	return FromInterface(raw)
}
