package dsl

import (
	"context"
	"fmt"
	"reflect"

	share "github.com/emlinh-ai/emlinh-ai-share"
	js "github.com/emlinh-ai/emlinh-ai-share/jsonschema"
)

// Bind builds the object table and binds it to struct type T. Every table
// field must resolve to an exported struct field (see share.ResolveStructKey).
func Bind[T any](b *ObjectBuilder) (share.Schema[T], error) {
	os, err := b.build()
	if err != nil {
		return nil, err
	}
	return newTypedObjectSchema[T](os)
}

// MustBind is like Bind but panics on error.
func MustBind[T any](b *ObjectBuilder) share.Schema[T] {
	s, err := Bind[T](b)
	if err != nil {
		panic(err)
	}
	return s
}

// typedObjectSchema projects a parsed object map onto struct T.
type typedObjectSchema[T any] struct {
	inner      *objectSchema
	t          reflect.Type
	fieldByKey map[string]int // table key -> struct field index
}

func newTypedObjectSchema[T any](os *objectSchema) (share.Schema[T], error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, share.Issues{share.Issue{Path: "/", Code: share.CodeParseError, Message: "Bind[T] requires struct T, got " + rt.String()}}
	}
	idxByName := make(map[string]int)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := share.ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		idxByName[name] = i
	}
	fm := make(map[string]int, len(os.fields))
	var iss share.Issues
	for _, f := range os.fields {
		i, ok := idxByName[f.name]
		if !ok {
			iss = share.AppendIssues(iss, share.Issue{
				Path:    "/" + share.EscapePointer(f.name),
				Code:    share.CodeParseError,
				Message: fmt.Sprintf("%s has no field for key %q", rt, f.name),
			})
			continue
		}
		fm[f.name] = i
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return &typedObjectSchema[T]{inner: os, t: rt, fieldByKey: fm}, nil
}

func (s *typedObjectSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	dm, err := s.ParseWithMeta(ctx, v)
	return dm.Value, err
}

func (s *typedObjectSchema[T]) ParseWithMeta(ctx context.Context, v any) (share.Decoded[T], error) {
	var zero share.Decoded[T]
	dm, err := s.inner.ParseWithMeta(ctx, v)
	if err != nil {
		return zero, err
	}
	rv := reflect.New(s.t).Elem()
	for _, f := range s.inner.fields {
		val, ok := dm.Value[f.name]
		if !ok || val == nil {
			continue
		}
		if err := assign(rv.Field(s.fieldByKey[f.name]), reflect.ValueOf(val)); err != nil {
			return zero, share.Issues{share.NewIssue("/"+share.EscapePointer(f.name), share.CodeInvalidType, rv.Field(s.fieldByKey[f.name]).Type().String(), val)}
		}
	}
	return share.Decoded[T]{Value: rv.Interface().(T), Presence: dm.Presence}, nil
}

// assign stores vv into fv, allocating pointers and converting named types.
func assign(fv, vv reflect.Value) error {
	ft := fv.Type()
	switch {
	case vv.Type().AssignableTo(ft):
		fv.Set(vv)
	case ft.Kind() == reflect.Pointer && vv.Type().AssignableTo(ft.Elem()):
		p := reflect.New(ft.Elem())
		p.Elem().Set(vv)
		fv.Set(p)
	case ft.Kind() == reflect.Pointer && vv.Type().ConvertibleTo(ft.Elem()):
		p := reflect.New(ft.Elem())
		p.Elem().Set(vv.Convert(ft.Elem()))
		fv.Set(p)
	case vv.Type().ConvertibleTo(ft):
		fv.Set(vv.Convert(ft))
	default:
		return fmt.Errorf("cannot assign %s to %s", vv.Type(), ft)
	}
	return nil
}

func (s *typedObjectSchema[T]) JSONSchema() (*js.Schema, error) { return s.inner.JSONSchema() }

func (s *typedObjectSchema[T]) adapter() AnyAdapter { return anyAdapterFromSchema[T](s) }

// SchemaOf adapts any Schema[T] so it can be used as an object field.
func SchemaOf[T any](s share.Schema[T]) AnyAdapter { return anyAdapterFromSchema[T](s) }
