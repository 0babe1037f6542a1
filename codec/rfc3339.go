package codec

import (
	"context"
	"time"

	share "github.com/emlinh-ai/emlinh-ai-share"
)

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and time.Time.
func TimeRFC3339() share.Codec[string, time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

// Decode parses RFC3339 or RFC3339Nano text. The zero instant is
// rejected as Encode does.
func (rfc3339Codec) Decode(_ context.Context, a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		it := share.NewIssue("/", share.CodeInvalidFormat, "datetime", a)
		it.Cause = err
		return time.Time{}, share.Issues{it}
	}
	if t.IsZero() {
		return time.Time{}, share.Issues{share.NewIssue("/", share.CodeInvalidType, "date", a)}
	}
	return t, nil
}

// Encode renders b in UTC with RFC3339Nano (trailing zeros trimmed).
func (rfc3339Codec) Encode(_ context.Context, b time.Time) (string, error) {
	if b.IsZero() {
		return "", share.Issues{share.NewIssue("/", share.CodeInvalidType, "date", b)}
	}
	return formatRFC3339Canonical(b), nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
