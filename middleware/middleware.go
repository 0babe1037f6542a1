// Package middleware holds the framework-neutral pieces shared by the echo
// and gin request validators: option handling, body decoding by content
// type, context storage for decoded payloads and the error response shape.
package middleware

import (
	"context"
	"io"
	"log/slog"
	"mime"

	share "github.com/emlinh-ai/emlinh-ai-share"
	"github.com/emlinh-ai/emlinh-ai-share/source/cborsrc"
	"github.com/emlinh-ai/emlinh-ai-share/source/yamlsrc"
)

// ctxKeyDecoded is a typed context key for storing Decoded[T].
// Using a generic struct type ensures uniqueness per T.
type ctxKeyDecoded[T any] struct{}

// ContextWithDecoded attaches a Decoded[T] to the context.
func ContextWithDecoded[T any](ctx context.Context, d share.Decoded[T]) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded[T]{}, d)
}

// DecodedFromContext retrieves a Decoded[T] from context.
func DecodedFromContext[T any](ctx context.Context) (share.Decoded[T], bool) {
	v, ok := ctx.Value(ctxKeyDecoded[T]{}).(share.Decoded[T])
	return v, ok
}

// DefaultParseOpt returns the defaults used at HTTP boundaries:
// duplicate keys are errors, presence is collected and bodies are capped
// at 1 MiB.
func DefaultParseOpt() share.ParseOpt {
	return share.ParseOpt{
		Strictness: share.Strictness{OnDuplicateKey: share.Error},
		Presence:   share.PresenceOpt{Collect: true},
		MaxBytes:   1 << 20,
	}
}

// Config is the resolved configuration of a validator.
type Config struct {
	ParseOpt share.ParseOpt
	Logger   *slog.Logger
}

// Option customizes a validator.
type Option func(*Config)

// WithParseOpt replaces DefaultParseOpt.
func WithParseOpt(opt share.ParseOpt) Option {
	return func(c *Config) { c.ParseOpt = opt }
}

// WithLogger logs rejected requests at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// NewConfig applies opts over the defaults.
func NewConfig(opts ...Option) Config {
	c := Config{ParseOpt: DefaultParseOpt()}
	for _, o := range opts {
		o(&c)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// BodySource picks a Source for body by its Content-Type. CBOR and YAML
// are recognized; everything else is read as JSON.
func BodySource(contentType string, body io.Reader) share.Source {
	mt, _, _ := mime.ParseMediaType(contentType)
	switch mt {
	case "application/cbor":
		return cborsrc.Reader(body)
	case "application/yaml", "application/x-yaml", "text/yaml":
		return yamlsrc.Reader(body)
	}
	return share.JSONReader(body)
}

// Decode parses body with s under cfg. A rejected body is logged at debug
// level and source warnings at warn level, with the request method and
// path.
func Decode[T any](ctx context.Context, cfg Config, s share.Schema[T], contentType string, body io.Reader, method, path string) (share.Decoded[T], error) {
	d, err := share.ParseFromWithMeta(ctx, s, BodySource(contentType, body), cfg.ParseOpt)
	if len(d.Warnings) > 0 {
		cfg.Logger.WarnContext(ctx, "request body has warnings",
			"method", method,
			"path", path,
			"warnings", len(d.Warnings),
			"first", d.Warnings[0].Path,
		)
	}
	if err != nil {
		iss, _ := share.AsIssues(err)
		cfg.Logger.DebugContext(ctx, "request body rejected",
			"method", method,
			"path", path,
			"issues", len(iss),
			"error", err,
		)
	}
	return d, err
}

// IssuePayload is the JSON shape of a single Issue in error responses.
type IssuePayload struct {
	Path     string         `json:"path"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Expected string         `json:"expected,omitempty"`
	Received string         `json:"received,omitempty"`
	Hint     string         `json:"hint,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
}

// ErrorResponse is the body returned with 400 responses.
type ErrorResponse struct {
	Error  string         `json:"error"`
	Issues []IssuePayload `json:"issues"`
}

// ErrorPayload shapes err for JSON responses. Non-Issues errors become a
// single parse_error at the root.
func ErrorPayload(err error) ErrorResponse {
	iss, ok := share.AsIssues(err)
	if !ok {
		iss = share.Issues{share.Issue{Path: "/", Code: share.CodeParseError, Message: err.Error()}}
	}
	out := ErrorResponse{Error: "validation failed", Issues: make([]IssuePayload, len(iss))}
	for i, it := range iss {
		out.Issues[i] = IssuePayload{
			Path:     it.Path,
			Code:     it.Code,
			Message:  it.Message,
			Expected: it.Expected,
			Received: it.Received,
			Hint:     it.Hint,
			Params:   it.Params,
		}
	}
	return out
}
