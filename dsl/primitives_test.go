package dsl_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/goccy/go-json"

	share "github.com/emlinh-ai/emlinh-ai-share"
	g "github.com/emlinh-ai/emlinh-ai-share/dsl"
)

func issuesOf(t *testing.T, err error) share.Issues {
	t.Helper()
	iss, ok := share.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %T: %v", err, err)
	}
	return iss
}

func TestString_TypeAndRules(t *testing.T) {
	ctx := context.Background()

	if v, err := g.String().Parse(ctx, "hello"); err != nil || v != "hello" {
		t.Fatalf("string parse ok expected, got v=%v err=%v", v, err)
	}
	_, err := g.String().Parse(ctx, 1)
	iss := issuesOf(t, err)
	if iss[0].Code != share.CodeInvalidType || iss[0].Expected != "string" || iss[0].Received != "number 1" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}

	// both rules are reported
	_, err = g.String().NonEmpty().Email().Parse(ctx, "")
	iss = issuesOf(t, err)
	if got := iss.Codes(); len(got) != 2 || got[0] != share.CodeTooSmall || got[1] != share.CodeInvalidFormat {
		t.Fatalf("unexpected codes: %v", got)
	}

	if _, err := g.String().Min(3).Parse(ctx, "ab"); err == nil {
		t.Fatalf("expected too_small")
	}
	if _, err := g.String().Min(2).Parse(ctx, "xin"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestString_Formats(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		s    g.StringSchema
		in   string
		ok   bool
	}{
		{"uuid ok", g.String().UUID(), "550e8400-e29b-41d4-a716-446655440000", true},
		{"uuid bad", g.String().UUID(), "550e8400", false},
		{"uuid braces", g.String().UUID(), "{550e8400-e29b-41d4-a716-446655440000}", false},
		{"email ok", g.String().Email(), "an@example.com", true},
		{"email bad", g.String().Email(), "not-an-email", false},
		{"url ok", g.String().URL(), "https://cdn.example.com/a.png", true},
		{"url bad", g.String().URL(), "a.png", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.s.Parse(ctx, tc.in)
			if tc.ok && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !tc.ok {
				iss := issuesOf(t, err)
				if iss[0].Code != share.CodeInvalidFormat {
					t.Fatalf("expected invalid_format, got %v", iss.Codes())
				}
			}
		})
	}
}

func TestNumber_Bounds(t *testing.T) {
	ctx := context.Background()

	if v, err := g.Int().Parse(ctx, json.Number("42")); err != nil || v != 42 {
		t.Fatalf("int parse: v=%v err=%v", v, err)
	}
	if _, err := g.Int().Parse(ctx, 1.5); err == nil {
		t.Fatalf("expected invalid_type for non-integral value")
	}
	if _, err := g.Int().Parse(ctx, "1"); err == nil {
		t.Fatalf("expected invalid_type for string input")
	}

	temp := g.Float().Min(0).Max(2)
	for _, ok := range []float64{0, 0.7, 2} {
		if _, err := temp.Parse(ctx, ok); err != nil {
			t.Fatalf("%v: unexpected err: %v", ok, err)
		}
	}
	_, err := temp.Parse(ctx, 2.5)
	iss := issuesOf(t, err)
	if iss[0].Code != share.CodeTooBig || iss[0].Expected != "<= 2" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
	_, err = temp.Parse(ctx, -0.1)
	if iss := issuesOf(t, err); iss[0].Code != share.CodeTooSmall {
		t.Fatalf("expected too_small, got %v", iss.Codes())
	}

	_, err = g.Int().Positive().Parse(ctx, 0)
	iss = issuesOf(t, err)
	if iss[0].Code != share.CodeTooSmall || iss[0].Expected != "> 0" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestNumber_IntegerRange(t *testing.T) {
	ctx := context.Background()

	for _, in := range []any{json.Number("9223372036854775807"), int64(math.MaxInt64), uint64(math.MaxInt64)} {
		if v, err := g.Int().Parse(ctx, in); err != nil || int64(v) != math.MaxInt64 {
			t.Fatalf("%v: v=%v err=%v", in, v, err)
		}
	}
	if v, err := g.Int().Parse(ctx, json.Number("-9223372036854775808")); err != nil || int64(v) != math.MinInt64 {
		t.Fatalf("min int64: v=%v err=%v", v, err)
	}
	if v, err := g.Int().Parse(ctx, json.Number("1e3")); err != nil || v != 1000 {
		t.Fatalf("exponent form: v=%v err=%v", v, err)
	}

	cases := []struct {
		in   any
		code string
	}{
		{1e20, share.CodeTooBig},
		{-1e20, share.CodeTooSmall},
		{json.Number("9223372036854775808"), share.CodeTooBig},
		{json.Number("-9223372036854775809"), share.CodeTooSmall},
		{json.Number("1e19"), share.CodeTooBig},
		{uint64(math.MaxUint64), share.CodeTooBig},
	}
	for _, tc := range cases {
		_, err := g.Int().Parse(ctx, tc.in)
		iss := issuesOf(t, err)
		if len(iss) != 1 || iss[0].Code != tc.code || iss[0].Path != "/" {
			t.Fatalf("%v: unexpected issues %+v", tc.in, iss)
		}
	}

	// Float fields keep the full float64 range.
	if v, err := g.Float().Parse(ctx, 1e20); err != nil || v != 1e20 {
		t.Fatalf("float: v=%v err=%v", v, err)
	}
}

func TestEnumAndLiteral(t *testing.T) {
	ctx := context.Background()
	type role string
	e := g.Enum[role]("user", "admin", "moderator")

	if v, err := e.Parse(ctx, "admin"); err != nil || v != "admin" {
		t.Fatalf("enum parse: v=%v err=%v", v, err)
	}
	_, err := e.Parse(ctx, "root")
	iss := issuesOf(t, err)
	if iss[0].Code != share.CodeInvalidEnumValue || iss[0].Expected != "one of user|admin|moderator" || iss[0].Received != `string "root"` {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}

	if _, err := g.Literal("text").Parse(ctx, "image"); err == nil {
		t.Fatalf("expected literal mismatch")
	}
}

func TestTime_AcceptsStringAndTime(t *testing.T) {
	ctx := context.Background()
	want := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	got, err := g.Time().Parse(ctx, "2024-05-01T08:30:00Z")
	if err != nil || !got.Equal(want) {
		t.Fatalf("string: got=%v err=%v", got, err)
	}
	if got, err := g.Time().Parse(ctx, want); err != nil || !got.Equal(want) {
		t.Fatalf("time: got=%v err=%v", got, err)
	}
	_, err = g.Time().Parse(ctx, "yesterday")
	if iss := issuesOf(t, err); iss[0].Code != share.CodeInvalidFormat {
		t.Fatalf("expected invalid_format, got %v", iss.Codes())
	}
	for _, zero := range []any{time.Time{}, "0001-01-01T00:00:00Z", "0001-01-01T00:00:00.000Z"} {
		_, err = g.Time().Parse(ctx, zero)
		if iss := issuesOf(t, err); iss[0].Code != share.CodeInvalidType || iss[0].Expected != "date" {
			t.Fatalf("zero time %v must be invalid_type date, got %+v", zero, iss[0])
		}
	}
	_, err = g.Time().Parse(ctx, json.Number("1714552200"))
	if iss := issuesOf(t, err); iss[0].Code != share.CodeInvalidType || iss[0].Expected != "date" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestArrayAndRecord(t *testing.T) {
	ctx := context.Background()
	ids := g.Array(g.String().UUID())

	v, err := ids.Parse(ctx, []any{})
	if err != nil || v == nil || len(v) != 0 {
		t.Fatalf("empty array: v=%#v err=%v", v, err)
	}

	_, err = ids.Parse(ctx, []any{"550e8400-e29b-41d4-a716-446655440000", "x", 3})
	iss := issuesOf(t, err)
	if len(iss) != 2 || iss[0].Path != "/1" || iss[1].Path != "/2" {
		t.Fatalf("unexpected issues: %+v", iss)
	}
	if iss[1].Code != share.CodeInvalidType {
		t.Fatalf("expected invalid_type at /2, got %s", iss[1].Code)
	}

	// typed input is projected to wire form
	if v, err := g.Array(g.String()).Parse(ctx, []string{"a", "b"}); err != nil || len(v) != 2 {
		t.Fatalf("typed slice: v=%v err=%v", v, err)
	}

	reactions := g.Record(g.Array(g.String()))
	_, err = reactions.Parse(ctx, map[string]any{"b": []any{"ok"}, "a": "nope"})
	iss = issuesOf(t, err)
	if len(iss) != 1 || iss[0].Path != "/a" {
		t.Fatalf("unexpected issues: %+v", iss)
	}
}
