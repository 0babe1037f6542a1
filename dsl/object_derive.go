package dsl

// Derivations never mutate the receiver: each returns a fresh builder so a
// base table can be shared by several payload schemas.

// Clone returns an independent copy of the builder.
func (b *ObjectBuilder) Clone() *ObjectBuilder {
	return &ObjectBuilder{
		fields:        append([]fieldDef(nil), b.fields...),
		unknownPolicy: b.unknownPolicy,
		unknownTarget: b.unknownTarget,
		errs:          append(b.errs[:0:0], b.errs...),
	}
}

// Omit returns a builder without the named fields. Naming a field that does
// not exist is a build error.
func (b *ObjectBuilder) Omit(names ...string) *ObjectBuilder {
	out := b.Clone()
	for _, n := range names {
		i := out.index(n)
		if i < 0 {
			out.fail("omit", n)
			continue
		}
		out.fields = append(out.fields[:i:i], out.fields[i+1:]...)
	}
	return out
}

// Pick returns a builder with only the named fields, kept in the receiver's
// declaration order.
func (b *ObjectBuilder) Pick(names ...string) *ObjectBuilder {
	out := b.Clone()
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		if b.index(n) < 0 {
			out.fail("pick", n)
			continue
		}
		keep[n] = true
	}
	fields := make([]fieldDef, 0, len(keep))
	for _, f := range b.fields {
		if keep[f.name] {
			fields = append(fields, f)
		}
	}
	out.fields = fields
	return out
}

// Partial returns a builder whose fields are all optional with no top-level
// defaults. Nested objects keep their own defaults when present.
func (b *ObjectBuilder) Partial() *ObjectBuilder {
	out := b.Clone()
	for i := range out.fields {
		out.fields[i].required = false
		out.fields[i].hasDefault = false
		out.fields[i].def = nil
	}
	return out
}

// Extend returns a builder with the fields of other appended. Fields that
// already exist are replaced in place.
func (b *ObjectBuilder) Extend(other *ObjectBuilder) *ObjectBuilder {
	out := b.Clone()
	for _, f := range other.fields {
		if i := out.index(f.name); i >= 0 {
			out.fields[i] = f
			continue
		}
		out.fields = append(out.fields, f)
	}
	out.errs = append(out.errs, other.errs...)
	return out
}
