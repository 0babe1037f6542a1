package dsl_test

import (
	"context"
	"testing"

	share "github.com/emlinh-ai/emlinh-ai-share"
	g "github.com/emlinh-ai/emlinh-ai-share/dsl"
)

type payment interface{ isPayment() }

type card struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type bank struct {
	Type string `json:"type"`
	IBAN string `json:"iban"`
	Note string `json:"note"`
}

func (card) isPayment() {}
func (bank) isPayment() {}

func paymentSchema() *g.UnionSchema[payment] {
	return g.Union("type",
		g.Case[payment]("card", g.MustBind[card](g.Object().
			Field("type", g.Literal("card")).Required().
			Field("number", g.String().Min(12)).Required())),
		g.Case[payment]("bank", g.MustBind[bank](g.Object().
			Field("type", g.Literal("bank")).Required().
			Field("iban", g.String().NonEmpty()).Required().
			Field("note", g.String()).Default("n/a"))),
	)
}

func TestUnion_SelectsVariantByTag(t *testing.T) {
	ctx := context.Background()
	u := paymentSchema()

	v, err := u.Parse(ctx, map[string]any{"type": "card", "number": "4111111111111111"})
	if err != nil {
		t.Fatalf("card: %v", err)
	}
	if c, ok := v.(card); !ok || c.Number != "4111111111111111" {
		t.Fatalf("card: %#v", v)
	}

	v, err = u.Parse(ctx, map[string]any{"type": "bank", "iban": "DE89"})
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	if b, ok := v.(bank); !ok || b.Note != "n/a" {
		t.Fatalf("variant defaults: %#v", v)
	}
}

func TestUnion_UnknownOrMissingTag(t *testing.T) {
	ctx := context.Background()
	u := paymentSchema()

	_, err := u.Parse(ctx, map[string]any{"type": "cash", "iban": ""})
	iss := issuesOf(t, err)
	if len(iss) != 1 || iss[0].Code != share.CodeUnrecognizedVariant || iss[0].Path != "/type" {
		t.Fatalf("unknown tag: %+v", iss)
	}
	if iss[0].Expected != "one of card|bank" || iss[0].Received != `string "cash"` {
		t.Fatalf("unknown tag detail: %+v", iss[0])
	}

	_, err = u.Parse(ctx, map[string]any{"number": "4111111111111111"})
	iss = issuesOf(t, err)
	if len(iss) != 1 || iss[0].Code != share.CodeUnrecognizedVariant || iss[0].Received != "undefined" {
		t.Fatalf("missing tag: %+v", iss)
	}
}

func TestUnion_ValidatesOnlySelectedVariant(t *testing.T) {
	ctx := context.Background()
	_, err := paymentSchema().Parse(ctx, map[string]any{"type": "card", "number": "1"})
	iss := issuesOf(t, err)
	if len(iss) != 1 || iss[0].Path != "/number" || iss[0].Code != share.CodeTooSmall {
		t.Fatalf("unexpected issues: %+v", iss)
	}
}

func TestUnion_TypedInputAndSchema(t *testing.T) {
	ctx := context.Background()
	u := paymentSchema()

	v, err := u.Parse(ctx, bank{Type: "bank", IBAN: "DE89", Note: "rent"})
	if err != nil || v != (bank{Type: "bank", IBAN: "DE89", Note: "rent"}) {
		t.Fatalf("typed input: v=%#v err=%v", v, err)
	}

	sch, err := u.JSONSchema()
	if err != nil || len(sch.OneOf) != 2 {
		t.Fatalf("json schema: %+v err=%v", sch, err)
	}
	if sch.OneOf[0].Properties["type"].Const != "card" {
		t.Fatalf("tag const: %+v", sch.OneOf[0].Properties["type"])
	}
}

func TestCase_PanicsWhenVariantDoesNotImplement(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	g.Case[payment, string]("text", g.String())
}
