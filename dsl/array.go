package dsl

import (
	"context"
	"strconv"

	share "github.com/emlinh-ai/emlinh-ai-share"
	js "github.com/emlinh-ai/emlinh-ai-share/jsonschema"
)

// Array returns an array schema with the given element schema. Parsed
// arrays are never nil: an empty input yields an empty slice.
func Array[E any](elem share.Schema[E]) ArraySchema[E] {
	return ArraySchema[E]{elem: elem, minLen: -1, maxLen: -1}
}

// ArraySchema validates ordered sequences.
type ArraySchema[E any] struct {
	elem   share.Schema[E]
	minLen int
	maxLen int
}

// Min sets the minimum length.
func (a ArraySchema[E]) Min(n int) ArraySchema[E] { a.minLen = n; return a }

// Max sets the maximum length.
func (a ArraySchema[E]) Max(n int) ArraySchema[E] { a.maxLen = n; return a }

func (a ArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	dm, err := a.ParseWithMeta(ctx, v)
	return dm.Value, err
}

func (a ArraySchema[E]) ParseWithMeta(ctx context.Context, v any) (share.Decoded[[]E], error) {
	var zero share.Decoded[[]E]
	in, err := wireInput(v)
	if err != nil {
		return zero, err
	}
	arr, ok := in.([]any)
	if !ok {
		return zero, share.Issues{share.NewIssue("/", share.CodeInvalidType, "array", v)}
	}
	var iss share.Issues
	if a.minLen >= 0 && len(arr) < a.minLen {
		iss = share.AppendIssues(iss, share.NewIssue("/", share.CodeTooSmall, "at least "+strconv.Itoa(a.minLen)+" item(s)", in))
	}
	if a.maxLen >= 0 && len(arr) > a.maxLen {
		iss = share.AppendIssues(iss, share.NewIssue("/", share.CodeTooBig, "at most "+strconv.Itoa(a.maxLen)+" item(s)", in))
	}
	out := make([]E, 0, len(arr))
	pm := share.PresenceMap{}
	for i, item := range arr {
		base := "/" + strconv.Itoa(i)
		pm[base] |= share.PresenceSeen
		dm, err := a.elem.ParseWithMeta(ctx, item)
		if err != nil {
			iss = share.AppendIssues(iss, share.RebaseIssues(base, err)...)
			if share.IsFailFast(ctx) {
				return zero, iss
			}
			continue
		}
		pm.MergeUnder(base, dm.Presence)
		out = append(out, dm.Value)
	}
	if len(iss) > 0 {
		return zero, iss
	}
	return share.Decoded[[]E]{Value: out, Presence: pm}, nil
}

func (a ArraySchema[E]) JSONSchema() (*js.Schema, error) {
	es, err := a.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	s := &js.Schema{Type: "array", Items: es}
	if a.minLen >= 0 {
		s.MinItems = jsPtrInt(a.minLen)
	}
	if a.maxLen >= 0 {
		s.MaxItems = jsPtrInt(a.maxLen)
	}
	return s, nil
}

func (a ArraySchema[E]) adapter() AnyAdapter { return anyAdapterFromSchema[[]E](a) }

// Record returns a schema for objects with arbitrary string keys whose
// values all satisfy elem. Keys are validated in sorted order.
func Record[V any](elem share.Schema[V]) RecordSchema[V] { return RecordSchema[V]{elem: elem} }

// RecordSchema validates string-keyed mappings.
type RecordSchema[V any] struct{ elem share.Schema[V] }

func (r RecordSchema[V]) Parse(ctx context.Context, v any) (map[string]V, error) {
	dm, err := r.ParseWithMeta(ctx, v)
	return dm.Value, err
}

func (r RecordSchema[V]) ParseWithMeta(ctx context.Context, v any) (share.Decoded[map[string]V], error) {
	var zero share.Decoded[map[string]V]
	in, err := wireInput(v)
	if err != nil {
		return zero, err
	}
	src, ok := in.(map[string]any)
	if !ok {
		return zero, share.Issues{share.NewIssue("/", share.CodeInvalidType, "object", v)}
	}
	out := make(map[string]V, len(src))
	pm := share.PresenceMap{}
	var iss share.Issues
	for _, k := range sortedKeys(src) {
		base := "/" + share.EscapePointer(k)
		pm[base] |= share.PresenceSeen
		dm, err := r.elem.ParseWithMeta(ctx, src[k])
		if err != nil {
			iss = share.AppendIssues(iss, share.RebaseIssues(base, err)...)
			if share.IsFailFast(ctx) {
				return zero, iss
			}
			continue
		}
		pm.MergeUnder(base, dm.Presence)
		out[k] = dm.Value
	}
	if len(iss) > 0 {
		return zero, iss
	}
	return share.Decoded[map[string]V]{Value: out, Presence: pm}, nil
}

func (r RecordSchema[V]) JSONSchema() (*js.Schema, error) {
	es, err := r.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "object", AdditionalProperties: es}, nil
}

func (r RecordSchema[V]) adapter() AnyAdapter { return anyAdapterFromSchema[map[string]V](r) }
