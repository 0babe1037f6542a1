package dsl

import (
	"context"
	"strings"

	share "github.com/emlinh-ai/emlinh-ai-share"
	js "github.com/emlinh-ai/emlinh-ai-share/jsonschema"
)

// Fielder is anything that can be placed in an object field: an AnyAdapter
// or any schema built by this package.
type Fielder interface {
	adapter() AnyAdapter
}

// AnyAdapter adapts Schema[T] to an any-typed DSL wrapper.
// It keeps the original schema for JSON Schema export and integrations.
type AnyAdapter struct {
	parse      func(context.Context, any) (any, share.PresenceMap, error)
	jsonSchema func() (*js.Schema, error)
	orig       any
}

func (ad AnyAdapter) adapter() AnyAdapter { return ad }

// anyAdapterFromSchema wraps a strongly typed Schema[T] as AnyAdapter for Field builders.
func anyAdapterFromSchema[T any](s share.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse: func(ctx context.Context, v any) (any, share.PresenceMap, error) {
			dm, err := s.ParseWithMeta(ctx, v)
			if err != nil {
				return nil, nil, err
			}
			return dm.Value, dm.Presence, nil
		},
		jsonSchema: s.JSONSchema,
		orig:       s,
	}
}

// Orig returns the original underlying Schema[T] used to create this adapter.
func (ad AnyAdapter) Orig() any { return ad.orig }

// expected renders the adapter's constraint for Issue.Expected, e.g.
// "uuid", "object" or "one of low|medium|high".
func (ad AnyAdapter) expected() string {
	if ad.jsonSchema == nil {
		return "value"
	}
	s, err := ad.jsonSchema()
	if err != nil || s == nil {
		return "value"
	}
	return describeSchema(s)
}

func describeSchema(s *js.Schema) string {
	switch {
	case len(s.Enum) > 0:
		parts := make([]string, len(s.Enum))
		for i, e := range s.Enum {
			parts[i], _ = e.(string)
		}
		return "one of " + strings.Join(parts, "|")
	case s.Format == "date-time":
		return "date"
	case s.Format != "":
		return s.Format
	case len(s.OneOf) > 0:
		return "object"
	case s.Type != "":
		return s.Type
	}
	return "value"
}

// wireInput projects typed Go values onto wire form; wire values pass through.
func wireInput(v any) (any, error) {
	if share.IsWire(v) {
		return v, nil
	}
	return share.ToWire(v)
}

func jsPtrFloat(v float64) *float64 { return &v }
func jsPtrInt(v int) *int           { return &v }
