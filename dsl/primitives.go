package dsl

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	share "github.com/emlinh-ai/emlinh-ai-share"
	"github.com/emlinh-ai/emlinh-ai-share/codec"
	js "github.com/emlinh-ai/emlinh-ai-share/jsonschema"
)

// ---- bool ----

// Bool returns the boolean schema.
func Bool() BoolSchema { return BoolSchema{} }

// BoolSchema accepts JSON booleans.
type BoolSchema struct{}

func (BoolSchema) Parse(ctx context.Context, v any) (bool, error) {
	in, err := wireInput(v)
	if err != nil {
		return false, err
	}
	b, ok := in.(bool)
	if !ok {
		return false, share.Issues{share.NewIssue("/", share.CodeInvalidType, "boolean", v)}
	}
	return b, nil
}

func (s BoolSchema) ParseWithMeta(ctx context.Context, v any) (share.Decoded[bool], error) {
	b, err := s.Parse(ctx, v)
	return share.Decoded[bool]{Value: b}, err
}

func (BoolSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil }

func (s BoolSchema) adapter() AnyAdapter { return anyAdapterFromSchema[bool](s) }

// ---- time ----

// Time returns a date-time schema. It accepts time.Time values or
// RFC3339/RFC3339Nano strings and yields time.Time.
func Time() TimeSchema { return TimeSchema{} }

// TimeSchema validates dates.
type TimeSchema struct{}

var rfc3339 = codec.TimeRFC3339()

func (TimeSchema) Parse(ctx context.Context, v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, share.Issues{share.NewIssue("/", share.CodeInvalidType, "date", v)}
		}
		return t, nil
	case *time.Time:
		if t != nil && !t.IsZero() {
			return *t, nil
		}
	case string:
		return rfc3339.Decode(ctx, t)
	}
	return time.Time{}, share.Issues{share.NewIssue("/", share.CodeInvalidType, "date", v)}
}

func (s TimeSchema) ParseWithMeta(ctx context.Context, v any) (share.Decoded[time.Time], error) {
	t, err := s.Parse(ctx, v)
	return share.Decoded[time.Time]{Value: t}, err
}

func (TimeSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time"}, nil
}

func (s TimeSchema) adapter() AnyAdapter { return anyAdapterFromSchema[time.Time](s) }

// ---- enum ----

// Enum returns a schema accepting exactly the given literals.
func Enum[T ~string](values ...T) *EnumSchema[T] {
	return &EnumSchema[T]{values: append([]T(nil), values...)}
}

// EnumSchema validates membership in a fixed set of string literals.
type EnumSchema[T ~string] struct {
	values []T
}

// Values returns the allowed literals in declaration order.
func (e *EnumSchema[T]) Values() []T { return append([]T(nil), e.values...) }

func (e *EnumSchema[T]) expected() string {
	parts := make([]string, len(e.values))
	for i, v := range e.values {
		parts[i] = string(v)
	}
	return "one of " + strings.Join(parts, "|")
}

func (e *EnumSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	in, err := wireInput(v)
	if err != nil {
		return "", err
	}
	s, ok := in.(string)
	if !ok {
		return "", share.Issues{share.NewIssue("/", share.CodeInvalidType, "string", v)}
	}
	if !slices.Contains(e.values, T(s)) {
		it := share.NewIssue("/", share.CodeInvalidEnumValue, e.expected(), s)
		it.Params = map[string]any{"options": e.Values()}
		return "", share.Issues{it}
	}
	return T(s), nil
}

func (e *EnumSchema[T]) ParseWithMeta(ctx context.Context, v any) (share.Decoded[T], error) {
	t, err := e.Parse(ctx, v)
	return share.Decoded[T]{Value: t}, err
}

func (e *EnumSchema[T]) JSONSchema() (*js.Schema, error) {
	vals := make([]any, len(e.values))
	for i, v := range e.values {
		vals[i] = string(v)
	}
	return &js.Schema{Type: "string", Enum: vals}, nil
}

func (e *EnumSchema[T]) adapter() AnyAdapter { return anyAdapterFromSchema[T](e) }

// ---- literal ----

// Literal returns a schema accepting only the given string. It is used for
// the tag field of union variants.
func Literal[T ~string](value T) LiteralSchema[T] { return LiteralSchema[T]{value: value} }

// LiteralSchema validates a single string constant.
type LiteralSchema[T ~string] struct{ value T }

func (l LiteralSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	in, err := wireInput(v)
	if err != nil {
		return "", err
	}
	s, ok := in.(string)
	if !ok {
		return "", share.Issues{share.NewIssue("/", share.CodeInvalidType, "string", v)}
	}
	if T(s) != l.value {
		return "", share.Issues{share.NewIssue("/", share.CodeInvalidEnumValue, fmt.Sprintf("one of %s", l.value), s)}
	}
	return l.value, nil
}

func (l LiteralSchema[T]) ParseWithMeta(ctx context.Context, v any) (share.Decoded[T], error) {
	t, err := l.Parse(ctx, v)
	return share.Decoded[T]{Value: t}, err
}

func (l LiteralSchema[T]) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Const: string(l.value)}, nil
}

func (l LiteralSchema[T]) adapter() AnyAdapter { return anyAdapterFromSchema[T](l) }
