package dsl

import (
	"context"
	"sort"

	share "github.com/emlinh-ai/emlinh-ai-share"
	js "github.com/emlinh-ai/emlinh-ai-share/jsonschema"
)

type objectSchema struct {
	fields        []fieldDef
	unknownPolicy share.UnknownPolicy
	unknownTarget string
}

var _ share.Schema[map[string]any] = (*objectSchema)(nil)

func (o *objectSchema) known(k string) bool {
	for _, f := range o.fields {
		if f.name == k {
			return true
		}
	}
	return false
}

func (o *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	dm, err := o.ParseWithMeta(ctx, v)
	if err != nil {
		return nil, err
	}
	return dm.Value, nil
}

// ParseWithMeta walks the field table in declaration order. Each field is
// parsed, defaulted or reported before the next one is visited, so defaults
// are applied depth-first and issues come out in field order.
func (o *objectSchema) ParseWithMeta(ctx context.Context, v any) (share.Decoded[map[string]any], error) {
	var zero share.Decoded[map[string]any]
	in, err := wireInput(v)
	if err != nil {
		return zero, err
	}
	m, ok := in.(map[string]any)
	if !ok {
		return zero, share.Issues{share.NewIssue("/", share.CodeInvalidType, "object", v)}
	}

	out := make(map[string]any, len(o.fields))
	pm := share.PresenceMap{"/": share.PresenceSeen}
	var iss share.Issues
	stop := func() bool { return len(iss) > 0 && share.IsFailFast(ctx) }

	for _, f := range o.fields {
		base := "/" + share.EscapePointer(f.name)
		raw, present := m[f.name]
		if present {
			pm[base] |= share.PresenceSeen
			if raw == nil {
				pm[base] |= share.PresenceWasNull
				present = false
			}
		}
		switch {
		case present:
			val, cpm, err := f.ad.parse(ctx, raw)
			if err != nil {
				iss = share.AppendIssues(iss, share.RebaseIssues(base, err)...)
				break
			}
			pm.MergeUnder(base, cpm)
			out[f.name] = val
		case f.hasDefault:
			val, cpm, err := f.ad.parse(ctx, f.def)
			if err != nil {
				iss = share.AppendIssues(iss, share.RebaseIssues(base, err)...)
				break
			}
			seen := pm[base]
			pm.MergeUnder(base, cpm)
			pm[base] = seen | share.PresenceDefaultApplied
			out[f.name] = val
		case f.required:
			iss = share.AppendIssues(iss, share.NewIssue(base, share.CodeRequired, f.ad.expected(), share.Missing))
		}
		if stop() {
			return zero, iss
		}
	}

	if o.unknownPolicy != share.UnknownStrip {
		var extra map[string]any
		for _, k := range sortedKeys(m) {
			if o.known(k) {
				continue
			}
			if o.unknownPolicy == share.UnknownStrict {
				iss = share.AppendIssues(iss, share.NewIssue("/"+share.EscapePointer(k), share.CodeUnknownKey, "no additional properties", m[k]))
				if stop() {
					return zero, iss
				}
				continue
			}
			if extra == nil {
				extra = map[string]any{}
			}
			extra[k] = m[k]
			pm["/"+share.EscapePointer(o.unknownTarget)+"/"+share.EscapePointer(k)] |= share.PresenceSeen
		}
		if extra != nil {
			if dst, ok := out[o.unknownTarget].(map[string]any); ok {
				for k, v := range extra {
					dst[k] = v
				}
			} else {
				out[o.unknownTarget] = extra
			}
		}
	}

	if len(iss) > 0 {
		return zero, iss
	}
	return share.Decoded[map[string]any]{Value: out, Presence: pm}, nil
}

func (o *objectSchema) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(o.fields))}
	for _, f := range o.fields {
		fs, err := f.ad.jsonSchema()
		if err != nil {
			return nil, err
		}
		if f.hasDefault {
			cp := *fs
			cp.Default = jsonDefault(f.def)
			fs = &cp
		}
		s.Properties[f.name] = fs
		if f.required {
			s.Required = append(s.Required, f.name)
		}
	}
	if o.unknownPolicy == share.UnknownStrict {
		s.AdditionalProperties = false
	}
	return s, nil
}

// jsonDefault renders a Go default value in its JSON form.
func jsonDefault(v any) any {
	w, err := share.ToWire(v)
	if err != nil {
		return nil
	}
	return w
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
