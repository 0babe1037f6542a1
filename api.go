package share

import (
	"context"

	js "github.com/emlinh-ai/emlinh-ai-share/jsonschema"
)

// VERSION is the contract version shared by the client and the backend.
const VERSION = "0.1.0"

// Schema is a runtime validator for values of type T.
type Schema[T any] interface {
	// Parse turns an untyped input into T, applying defaults depth-first.
	// On failure the error is Issues listing every violation.
	Parse(ctx context.Context, v any) (T, error)
	// ParseWithMeta returns the typed value together with presence metadata.
	ParseWithMeta(ctx context.Context, v any) (Decoded[T], error)
	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// Codec performs bidirectional transformation between the wire
// representation A and the domain representation B.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// Result is the non-throwing outcome of SafeParse.
type Result[T any] struct {
	Success bool
	Data    T
	Error   Issues
}

// SafeParse parses v into T and never returns an error: failures are
// reported through Result.Error.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) Result[T] {
	val, err := s.Parse(ctx, v)
	if err != nil {
		return Result[T]{Error: toIssues(err)}
	}
	return Result[T]{Success: true, Data: val}
}

// MustParse is like Schema.Parse but panics with the Issues on failure.
func MustParse[T any](ctx context.Context, s Schema[T], v any) T {
	val, err := s.Parse(ctx, v)
	if err != nil {
		panic(toIssues(err))
	}
	return val
}

// Is returns true if v conforms to the schema s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	_, err := s.Parse(ctx, v)
	return err == nil
}

// ---- Parse-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// This is set by ParseFrom based on ParseOpt and consumed by schema implementations.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
