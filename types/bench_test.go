package types_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	share "github.com/emlinh-ai/emlinh-ai-share"
	"github.com/emlinh-ai/emlinh-ai-share/types"
)

func messageJSON() []byte {
	return []byte(`{
		"id": "6ba7b811-9dad-11d1-80b4-00c04fd430c8",
		"conversationId": "6ba7b812-9dad-11d1-80b4-00c04fd430c8",
		"role": "assistant",
		"content": {"type": "code", "codeBlock": {"language": "go", "code": "fmt.Println(1)"}},
		"metadata": {"tokenCount": 128, "reactions": {"heart": ["6ba7b810-9dad-11d1-80b4-00c04fd430c8"]}},
		"createdAt": "2024-05-01T08:30:00Z",
		"updatedAt": "2024-05-01T08:30:00Z"
	}`)
}

// contextPayloadJSON returns a payload with n contexts of m chunks each.
func contextPayloadJSON(n, m int) []byte {
	var b strings.Builder
	b.WriteString(`{"contexts":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"id":"6ba7b8%02x-9dad-11d1-80b4-00c04fd430c8","title":"doc %d","source":"web","dataType":"document","content":"body",`, i, i)
		b.WriteString(`"metadata":{"source":"web","web":{"url":"https://example.com","domain":"example.com","scrapedAt":"2024-05-01T08:30:00Z"}},`)
		b.WriteString(`"chunks":[`)
		for k := 0; k < m; k++ {
			if k > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, `{"id":"c%d","index":%d,"content":"chunk"}`, k, k)
		}
		b.WriteString(`],"createdAt":"2024-05-01T08:30:00Z","updatedAt":"2024-05-01T08:30:00Z"}`)
	}
	b.WriteString(`]}`)
	return []byte(b.String())
}

func BenchmarkParseFrom_Message(b *testing.B) {
	ctx := context.Background()
	data := messageJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		if _, err := share.ParseFrom(ctx, types.MessageSchema, share.JSONBytes(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseFrom_ContextPayload(b *testing.B) {
	ctx := context.Background()
	for _, size := range []struct{ contexts, chunks int }{{1, 10}, {20, 50}} {
		data := contextPayloadJSON(size.contexts, size.chunks)
		b.Run(fmt.Sprintf("contexts=%d/chunks=%d", size.contexts, size.chunks), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				if _, err := share.ParseFrom(ctx, types.ContextPayloadSchema, share.JSONBytes(data)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkReparse_Message(b *testing.B) {
	ctx := context.Background()
	m, err := share.ParseFrom(ctx, types.MessageSchema, share.JSONBytes(messageJSON()))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := types.MessageSchema.Parse(ctx, m); err != nil {
			b.Fatal(err)
		}
	}
}

func TestContextPayloadFixture(t *testing.T) {
	p, err := share.ParseFrom(context.Background(), types.ContextPayloadSchema, share.JSONBytes(contextPayloadJSON(2, 3)))
	if err != nil {
		t.Fatalf("fixture must be valid: %v", err)
	}
	if len(p.Contexts) != 2 || len(p.Contexts[1].Chunks) != 3 {
		t.Fatalf("unexpected payload shape: %+v", p)
	}
}
