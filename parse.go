package share

import (
	"context"
	"io"
)

// ParseFrom is the primary entry point for encoded input. It decodes the
// Source into an any tree and delegates validation to the Schema.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	// propagate fail-fast intent via context for schema implementations
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := src.Decode(opt)
	if err != nil {
		return zero, toIssues(err)
	}
	return s.Parse(ctx, v)
}

// ParseFromWithMeta collects presence metadata alongside the parsed value.
// Presence is collected by default; ParseOpt.Presence filters it. Warnings
// from a WarningReporter Source are returned in Decoded.Warnings.
func ParseFromWithMeta[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (Decoded[T], error) {
	var zero Decoded[T]
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	opt := normalizeWithMetaOpt(opts)
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := src.Decode(opt)
	if err != nil {
		return zero, toIssues(err)
	}
	dm, err := s.ParseWithMeta(ctx, v)
	dm.Presence = applyPresenceOptions(dm.Presence, opt.Presence, opt.PathRender)
	if wr, ok := src.(WarningReporter); ok {
		dm.Warnings = wr.Warnings()
	}
	if err != nil {
		return dm, toIssues(err)
	}
	return dm, nil
}

// StreamParse validates JSON read from r.
func StreamParse[T any](ctx context.Context, s Schema[T], r io.Reader, opts ...ParseOpt) (T, error) {
	return ParseFrom(ctx, s, JSONReader(r), opts...)
}

// ---- helpers ----

func normalizeWithMetaOpt(opts []ParseOpt) ParseOpt {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if !opt.Presence.Collect && len(opt.Presence.Include) == 0 && len(opt.Presence.Exclude) == 0 {
		opt.Presence.Collect = true
	}
	return opt
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Path: "/", Code: code, Message: msg})
}
