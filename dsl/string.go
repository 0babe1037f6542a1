package dsl

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	share "github.com/emlinh-ai/emlinh-ai-share"
	js "github.com/emlinh-ai/emlinh-ai-share/jsonschema"
)

// Format names a syntactic string format.
type Format string

const (
	FormatNone  Format = ""
	FormatEmail Format = "email"
	FormatURL   Format = "url"
	FormatUUID  Format = "uuid"
)

var validate = validator.New()

// String returns the string schema. Rules are added with Min, NonEmpty and
// the format methods; each returns a new schema.
func String() StringSchema { return StringSchema{} }

// StringSchema validates strings.
type StringSchema struct {
	minLen int
	format Format
}

// Min requires at least n characters.
func (s StringSchema) Min(n int) StringSchema { s.minLen = n; return s }

// NonEmpty is Min(1).
func (s StringSchema) NonEmpty() StringSchema { return s.Min(1) }

// Email requires RFC 5322 address syntax.
func (s StringSchema) Email() StringSchema { s.format = FormatEmail; return s }

// URL requires an absolute URL with a scheme.
func (s StringSchema) URL() StringSchema { s.format = FormatURL; return s }

// UUID requires canonical 8-4-4-4-12 hexadecimal text.
func (s StringSchema) UUID() StringSchema { s.format = FormatUUID; return s }

func (s StringSchema) Parse(ctx context.Context, v any) (string, error) {
	in, err := wireInput(v)
	if err != nil {
		return "", err
	}
	str, ok := in.(string)
	if !ok {
		return "", share.Issues{share.NewIssue("/", share.CodeInvalidType, "string", v)}
	}
	var iss share.Issues
	if s.minLen > 0 && utf8.RuneCountInString(str) < s.minLen {
		it := share.NewIssue("/", share.CodeTooSmall, fmt.Sprintf("at least %d character(s)", s.minLen), str)
		it.Params = map[string]any{"minimum": s.minLen, "inclusive": true}
		iss = share.AppendIssues(iss, it)
	}
	if s.format != FormatNone && !checkFormat(s.format, str) {
		iss = share.AppendIssues(iss, share.NewIssue("/", share.CodeInvalidFormat, string(s.format), str))
	}
	if len(iss) > 0 {
		return "", iss
	}
	return str, nil
}

func (s StringSchema) ParseWithMeta(ctx context.Context, v any) (share.Decoded[string], error) {
	str, err := s.Parse(ctx, v)
	return share.Decoded[string]{Value: str}, err
}

func (s StringSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string"}
	switch s.format {
	case FormatEmail:
		out.Format = "email"
	case FormatURL:
		out.Format = "uri"
	case FormatUUID:
		out.Format = "uuid"
	}
	if s.minLen > 0 {
		out.MinLength = jsPtrInt(s.minLen)
	}
	return out, nil
}

func (s StringSchema) adapter() AnyAdapter { return anyAdapterFromSchema[string](s) }

// StringOf returns an AnyAdapter for a string schema projected to domain type T.
func StringOf[T ~string](s StringSchema) AnyAdapter {
	return anyAdapterFromSchema[T](stringAsSchema[T]{inner: s})
}

type stringAsSchema[T ~string] struct{ inner StringSchema }

func (s stringAsSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	str, err := s.inner.Parse(ctx, v)
	return T(str), err
}

func (s stringAsSchema[T]) ParseWithMeta(ctx context.Context, v any) (share.Decoded[T], error) {
	str, err := s.Parse(ctx, v)
	return share.Decoded[T]{Value: str}, err
}

func (s stringAsSchema[T]) JSONSchema() (*js.Schema, error) { return s.inner.JSONSchema() }

// checkFormat reports whether str matches f. Checks are purely syntactic.
func checkFormat(f Format, str string) bool {
	switch f {
	case FormatUUID:
		if len(str) != 36 {
			return false
		}
		_, err := uuid.Parse(str)
		return err == nil
	case FormatEmail:
		return validate.Var(str, "required,email") == nil
	case FormatURL:
		return validate.Var(str, "required,url") == nil
	}
	return true
}
