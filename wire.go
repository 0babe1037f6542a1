package share

import (
	"reflect"
	"time"

	j "github.com/goccy/go-json"
)

// IsWire reports whether v is already in wire form: nil, a scalar, a
// time.Time, map[string]any or []any.
func IsWire(v any) bool {
	switch v.(type) {
	case nil, string, bool, j.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, time.Time, map[string]any, []any:
		return true
	}
	return false
}

// ToWire projects a typed Go value (struct, typed slice or map, named
// scalar) onto the wire tree that Schema.Parse consumes, using its JSON
// encoding. Wire values are returned unchanged.
func ToWire(v any) (any, error) {
	if IsWire(v) {
		return v, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}
	b, err := j.Marshal(v)
	if err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeInvalidType, Message: err.Error(), Cause: err, Received: Describe(v)}}
	}
	return DecodeJSON(b)
}
