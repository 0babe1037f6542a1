package types_test

import (
	"context"
	"fmt"

	share "github.com/emlinh-ai/emlinh-ai-share"
	"github.com/emlinh-ai/emlinh-ai-share/types"
)

func ExampleCreateMessageSchema() {
	body := []byte(`{
		"conversationId": "6ba7b812-9dad-11d1-80b4-00c04fd430c8",
		"role": "user",
		"content": {"type": "text", "text": "Xin chào"}
	}`)
	m, err := share.ParseFrom(context.Background(), types.CreateMessageSchema, share.JSONBytes(body))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(m.Content.ContentType(), m.Status, len(m.Metadata.Mentions))
	// Output: text sent 0
}

func ExampleUserSchema_issues() {
	_, err := types.UserSchema.Parse(context.Background(), map[string]any{
		"id":       "not-a-uuid",
		"username": "",
		"email":    "nope",
	})
	iss, _ := share.AsIssues(err)
	for _, it := range iss {
		fmt.Println(it.Dotted(), it.Code)
	}
	// Output:
	// id invalid_format
	// email invalid_format
	// username too_small
	// createdAt required
	// updatedAt required
}
