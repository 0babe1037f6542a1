package dsl

import (
	"context"
	"fmt"

	share "github.com/emlinh-ai/emlinh-ai-share"
	"github.com/emlinh-ai/emlinh-ai-share/i18n"
)

// fieldDef is one row of an object's declarative field table.
type fieldDef struct {
	name       string
	ad         AnyAdapter
	required   bool
	hasDefault bool
	def        any
}

// ObjectBuilder holds an ordered field table. Field order is the order in
// which fields are validated and defaulted, and the order of reported issues.
type ObjectBuilder struct {
	fields        []fieldDef
	unknownPolicy share.UnknownPolicy
	unknownTarget string
	errs          share.Issues
}

// FieldStep configures the field most recently added with Field.
type FieldStep struct {
	b    *ObjectBuilder
	name string
}

// Object creates a new object builder. Unknown keys are stripped by default.
func Object() *ObjectBuilder {
	return &ObjectBuilder{unknownPolicy: share.UnknownStrip}
}

func (b *ObjectBuilder) index(name string) int {
	for i, f := range b.fields {
		if f.name == name {
			return i
		}
	}
	return -1
}

// Field registers an optional field. Registering an existing name replaces
// its definition in place.
func (b *ObjectBuilder) Field(name string, f Fielder) *FieldStep {
	def := fieldDef{name: name, ad: f.adapter()}
	if i := b.index(name); i >= 0 {
		b.fields[i] = def
	} else {
		b.fields = append(b.fields, def)
	}
	return &FieldStep{b: b, name: name}
}

func (f *FieldStep) def() *fieldDef { return &f.b.fields[f.b.index(f.name)] }

// Required marks the field as required and returns the builder.
func (f *FieldStep) Required() *ObjectBuilder {
	f.def().required = true
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *FieldStep) Optional() *ObjectBuilder {
	f.def().required = false
	return f.b
}

// Default sets a default substituted when the key is absent or null. The
// default is parsed through the field schema, so nested defaults apply.
func (f *FieldStep) Default(v any) *ObjectBuilder {
	d := f.def()
	d.hasDefault = true
	d.def = v
	d.required = false
	return f.b
}

func (f *FieldStep) Field(name string, ad Fielder) *FieldStep { return f.b.Field(name, ad) }
func (f *FieldStep) UnknownStrict() *ObjectBuilder          { return f.b.UnknownStrict() }
func (f *FieldStep) Build() (share.Schema[map[string]any], error) {
	return f.b.Build()
}
func (f *FieldStep) MustBuild() share.Schema[map[string]any] { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *ObjectBuilder) Require(names ...string) *ObjectBuilder {
	for _, n := range names {
		if i := b.index(n); i >= 0 {
			b.fields[i].required = true
			continue
		}
		b.fail("require", n)
	}
	return b
}

// UnknownStrict rejects unknown keys with unknown_key.
func (b *ObjectBuilder) UnknownStrict() *ObjectBuilder {
	b.unknownPolicy = share.UnknownStrict
	b.unknownTarget = ""
	return b
}

// UnknownStrip drops unknown keys.
func (b *ObjectBuilder) UnknownStrip() *ObjectBuilder {
	b.unknownPolicy = share.UnknownStrip
	b.unknownTarget = ""
	return b
}

// UnknownPassthrough collects unknown keys into the map-typed target field.
func (b *ObjectBuilder) UnknownPassthrough(target string) *ObjectBuilder {
	b.unknownPolicy = share.UnknownPassthrough
	b.unknownTarget = target
	return b
}

// Names returns the field names in declaration order.
func (b *ObjectBuilder) Names() []string {
	out := make([]string, len(b.fields))
	for i, f := range b.fields {
		out[i] = f.name
	}
	return out
}

func (b *ObjectBuilder) fail(op, name string) {
	b.errs = share.AppendIssues(b.errs, share.Issue{
		Path:    "/" + share.EscapePointer(name),
		Code:    share.CodeParseError,
		Message: i18n.T(share.CodeParseError, nil),
		Hint:    fmt.Sprintf("%s: no field %q", op, name),
	})
}

// Build validates the builder and returns a Schema over map[string]any.
func (b *ObjectBuilder) Build() (share.Schema[map[string]any], error) {
	s, err := b.build()
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (b *ObjectBuilder) build() (*objectSchema, error) {
	if len(b.errs) > 0 {
		return nil, b.errs
	}
	if b.unknownPolicy == share.UnknownPassthrough {
		i := b.index(b.unknownTarget)
		if b.unknownTarget == "" || i < 0 {
			return nil, share.Issues{share.Issue{Path: "/", Code: share.CodeParseError, Message: i18n.T(share.CodeParseError, nil), Hint: "unknown_target missing for passthrough"}}
		}
		// target must accept an object
		if _, _, err := b.fields[i].ad.parse(context.Background(), map[string]any{}); err != nil {
			return nil, share.Issues{share.Issue{Path: "/" + b.unknownTarget, Code: share.CodeInvalidType, Message: i18n.T(share.CodeInvalidType, nil), Hint: "unknown_target must accept an object"}}
		}
	}
	return &objectSchema{
		fields:        append([]fieldDef(nil), b.fields...),
		unknownPolicy: b.unknownPolicy,
		unknownTarget: b.unknownTarget,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() share.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Adapter exposes the built object as a field value. Build errors panic.
func (b *ObjectBuilder) adapter() AnyAdapter {
	s, err := b.build()
	if err != nil {
		panic(err)
	}
	return anyAdapterFromSchema[map[string]any](s)
}
