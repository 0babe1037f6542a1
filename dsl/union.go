package dsl

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	share "github.com/emlinh-ai/emlinh-ai-share"
	js "github.com/emlinh-ai/emlinh-ai-share/jsonschema"
)

// UnionCase is one variant of a tagged union producing I.
type UnionCase[I any] struct {
	tag   string
	parse func(context.Context, any) (I, share.PresenceMap, error)
	js    func() (*js.Schema, error)
}

// Case declares the variant selected by tag. V must implement I; this is
// checked when the case is declared.
func Case[I, V any](tag string, s share.Schema[V]) UnionCase[I] {
	vt, it := reflect.TypeFor[V](), reflect.TypeFor[I]()
	if !vt.AssignableTo(it) {
		panic(fmt.Sprintf("dsl: variant %q: %s does not implement %s", tag, vt, it))
	}
	return UnionCase[I]{
		tag: tag,
		parse: func(ctx context.Context, v any) (I, share.PresenceMap, error) {
			var zero I
			dm, err := s.ParseWithMeta(ctx, v)
			if err != nil {
				return zero, nil, err
			}
			return any(dm.Value).(I), dm.Presence, nil
		},
		js: s.JSONSchema,
	}
}

// Union returns a discriminated union keyed by the string field key. The
// tag is resolved first; the body is then validated only against the
// selected variant.
func Union[I any](key string, cases ...UnionCase[I]) *UnionSchema[I] {
	u := &UnionSchema[I]{key: key, byTag: make(map[string]int, len(cases))}
	for _, c := range cases {
		if _, dup := u.byTag[c.tag]; dup {
			panic(fmt.Sprintf("dsl: duplicate variant %q", c.tag))
		}
		u.byTag[c.tag] = len(u.cases)
		u.cases = append(u.cases, c)
	}
	return u
}

// UnionSchema validates tagged unions.
type UnionSchema[I any] struct {
	key   string
	cases []UnionCase[I]
	byTag map[string]int
}

// Key returns the discriminator field name.
func (u *UnionSchema[I]) Key() string { return u.key }

// Tags returns the variant tags in declaration order.
func (u *UnionSchema[I]) Tags() []string {
	out := make([]string, len(u.cases))
	for i, c := range u.cases {
		out[i] = c.tag
	}
	return out
}

func (u *UnionSchema[I]) Parse(ctx context.Context, v any) (I, error) {
	dm, err := u.ParseWithMeta(ctx, v)
	return dm.Value, err
}

func (u *UnionSchema[I]) ParseWithMeta(ctx context.Context, v any) (share.Decoded[I], error) {
	var zero share.Decoded[I]
	in, err := wireInput(v)
	if err != nil {
		return zero, err
	}
	m, ok := in.(map[string]any)
	if !ok {
		return zero, share.Issues{share.NewIssue("/", share.CodeInvalidType, "object", v)}
	}
	raw, present := m[u.key]
	tag, _ := raw.(string)
	i, known := u.byTag[tag]
	if !known {
		if !present {
			raw = share.Missing
		}
		it := share.NewIssue("/"+share.EscapePointer(u.key), share.CodeUnrecognizedVariant, "one of "+strings.Join(u.Tags(), "|"), raw)
		it.Params = map[string]any{"options": u.Tags()}
		return zero, share.Issues{it}
	}
	val, pm, err := u.cases[i].parse(ctx, m)
	if err != nil {
		return zero, err
	}
	return share.Decoded[I]{Value: val, Presence: pm}, nil
}

func (u *UnionSchema[I]) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{OneOf: make([]*js.Schema, 0, len(u.cases))}
	for _, c := range u.cases {
		vs, err := c.js()
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, vs)
	}
	return out, nil
}

func (u *UnionSchema[I]) adapter() AnyAdapter { return anyAdapterFromSchema[I](u) }
