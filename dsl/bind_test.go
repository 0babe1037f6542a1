package dsl_test

import (
	"context"
	"testing"
	"time"

	share "github.com/emlinh-ai/emlinh-ai-share"
	g "github.com/emlinh-ai/emlinh-ai-share/dsl"
)

type level string

type profile struct {
	Nick     *string `json:"nick,omitempty"`
	Timezone string  `json:"timezone"`
}

type member struct {
	ID      string           `json:"id"`
	Level   level            `json:"level"`
	Score   *float64         `json:"score,omitempty"`
	Count   int              `json:"count"`
	Joined  time.Time        `json:"joined"`
	Profile *profile         `json:"profile,omitempty"`
	Tags    []string         `json:"tags"`
	Votes   map[string][]int `json:"votes"`
	Secret  string           `json:"-"`
}

func memberSchema() share.Schema[member] {
	prof := g.MustBind[profile](g.Object().
		Field("nick", g.String()).
		Field("timezone", g.String()).Default("Asia/Ho_Chi_Minh"))
	return g.MustBind[member](g.Object().
		Field("id", g.String().UUID()).Required().
		Field("level", g.Enum[level]("low", "high")).Default(level("low")).
		Field("score", g.Float().Min(0).Max(1)).
		Field("count", g.Int().Min(0)).Default(0).
		Field("joined", g.Time()).Required().
		Field("profile", g.SchemaOf(prof)).
		Field("tags", g.Array(g.String())).Default([]string{}).
		Field("votes", g.Record(g.Array(g.Int()))).Default(map[string]any{}))
}

func TestBind_ProjectsOntoStruct(t *testing.T) {
	ctx := context.Background()
	v, err := memberSchema().Parse(ctx, map[string]any{
		"id":      "550e8400-e29b-41d4-a716-446655440000",
		"score":   0.5,
		"joined":  "2024-05-01T08:30:00Z",
		"profile": map[string]any{"nick": "an"},
		"votes":   map[string]any{"up": []any{1, 2}},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.Level != "low" || v.Count != 0 || v.Score == nil || *v.Score != 0.5 {
		t.Fatalf("scalars: %#v", v)
	}
	if v.Profile == nil || v.Profile.Nick == nil || *v.Profile.Nick != "an" || v.Profile.Timezone != "Asia/Ho_Chi_Minh" {
		t.Fatalf("nested: %#v", v.Profile)
	}
	if v.Tags == nil || len(v.Tags) != 0 {
		t.Fatalf("tags default: %#v", v.Tags)
	}
	if len(v.Votes["up"]) != 2 {
		t.Fatalf("votes: %#v", v.Votes)
	}
	if !v.Joined.Equal(time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)) {
		t.Fatalf("joined: %v", v.Joined)
	}
}

func TestBind_ReparseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := memberSchema()
	first, err := s.Parse(ctx, map[string]any{
		"id":     "550e8400-e29b-41d4-a716-446655440000",
		"joined": "2024-05-01T08:30:00Z",
	})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := s.Parse(ctx, first)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.ID != first.ID || second.Level != first.Level || !second.Joined.Equal(first.Joined) ||
		second.Profile != nil || len(second.Tags) != 0 || second.Score != nil {
		t.Fatalf("re-parse changed the value: %#v vs %#v", first, second)
	}
	if p, err := s.Parse(ctx, &first); err != nil || p.ID != first.ID {
		t.Fatalf("pointer input: %v", err)
	}
}

func TestBind_MissingStructField(t *testing.T) {
	_, err := g.Bind[member](g.Object().Field("nope", g.String()))
	if err == nil {
		t.Fatalf("expected bind error for unmapped key")
	}
	if _, err := g.Bind[string](g.Object()); err == nil {
		t.Fatalf("expected bind error for non-struct target")
	}
}

func TestBind_ParseWithMeta(t *testing.T) {
	ctx := context.Background()
	dm, err := memberSchema().ParseWithMeta(ctx, map[string]any{
		"id":      "550e8400-e29b-41d4-a716-446655440000",
		"joined":  "2024-05-01T08:30:00Z",
		"profile": map[string]any{},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !dm.Presence.Seen("/id") || dm.Presence.Seen("/level") || !dm.Presence.Defaulted("/level") {
		t.Fatalf("presence: %#v", dm.Presence)
	}
	if !dm.Presence.Defaulted("/profile/timezone") {
		t.Fatalf("nested presence: %#v", dm.Presence)
	}
}
