package types_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	share "github.com/emlinh-ai/emlinh-ai-share"
	"github.com/emlinh-ai/emlinh-ai-share/types"
)

func message(content map[string]any) map[string]any {
	return map[string]any{
		"id":             otherID,
		"conversationId": conversationID,
		"role":           "assistant",
		"content":        content,
		"createdAt":      now,
		"updatedAt":      now,
	}
}

func TestCreateMessageSchema_EndToEnd(t *testing.T) {
	in := []byte(`{
		"conversationId": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"role": "user",
		"content": {"type": "text", "text": "Hello"},
		"createdAt": "2024-05-01T08:30:00Z",
		"updatedAt": "2024-05-01T08:30:00Z"
	}`)
	m, err := share.ParseFrom(context.Background(), types.CreateMessageSchema, share.JSONBytes(in))
	require.NoError(t, err)

	assert.Equal(t, types.MessageStatusSent, m.Status)
	assert.False(t, m.Metadata.Edited)
	assert.Equal(t, []string{}, m.Metadata.Mentions)
	assert.Equal(t, map[string][]string{}, m.Metadata.Reactions)
	assert.Equal(t, types.TextContent{Type: types.ContentTypeText, Text: "Hello"}, m.Content)
	assert.Equal(t, types.UserRoleUser, m.Role)
}

func TestMessageContent_Variants(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		in   map[string]any
		want types.MessageContent
	}{
		{
			name: "text",
			in:   map[string]any{"type": "text", "text": "xin chào"},
			want: types.TextContent{Type: types.ContentTypeText, Text: "xin chào"},
		},
		{
			name: "system level defaults to info",
			in:   map[string]any{"type": "system", "systemMessage": "joined"},
			want: types.SystemContent{Type: types.ContentTypeSystem, SystemMessage: "joined", Level: types.SystemLevelInfo},
		},
		{
			name: "code",
			in: map[string]any{"type": "code", "codeBlock": map[string]any{
				"language": "go", "code": "package main",
			}},
			want: types.CodeContent{Type: types.ContentTypeCode, CodeBlock: types.CodeBlock{Language: "go", Code: "package main"}},
		},
		{
			name: "file",
			in: map[string]any{"type": "file", "attachment": map[string]any{
				"id": "f1", "name": "a.pdf", "type": "application/pdf", "size": 1024, "url": "https://cdn.example.com/a.pdf",
			}},
			want: types.FileContent{Type: types.ContentTypeFile, Attachment: types.FileAttachment{
				ID: "f1", Name: "a.pdf", Type: "application/pdf", Size: 1024, URL: "https://cdn.example.com/a.pdf",
			}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := types.MessageContentSchema.Parse(ctx, tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.ContentType(), got.ContentType())
		})
	}
}

func TestMessageSchema_UnrecognizedVariant(t *testing.T) {
	_, err := types.MessageSchema.Parse(context.Background(), message(map[string]any{
		"type":     "video",
		"videoUrl": "https://cdn.example.com/v.mp4",
	}))
	iss, ok := share.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, share.CodeUnrecognizedVariant, iss[0].Code)
	assert.Equal(t, "/content/type", iss[0].Path)
	assert.Equal(t, "one of text|image|file|code|system", iss[0].Expected)
}

func TestMessageSchema_VariantBodyOnly(t *testing.T) {
	ctx := context.Background()

	_, err := types.MessageSchema.Parse(ctx, message(map[string]any{"type": "image", "imageUrl": "cat.png"}))
	iss, _ := share.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/content/imageUrl", iss[0].Path)
	assert.Equal(t, share.CodeInvalidFormat, iss[0].Code)

	_, err = types.MessageSchema.Parse(ctx, message(map[string]any{"type": "text"}))
	iss, _ = share.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/content/text", iss[0].Path)
	assert.Equal(t, share.CodeRequired, iss[0].Code)
}

func TestMessageSchema_MetadataPaths(t *testing.T) {
	in := message(map[string]any{"type": "text", "text": "hi"})
	in["metadata"] = map[string]any{
		"mentions":  []any{userID, "bob"},
		"reactions": map[string]any{"👍": []any{userID}},
	}
	_, err := types.MessageSchema.Parse(context.Background(), in)
	iss, ok := share.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, "metadata.mentions[1]", iss[0].Dotted())
	assert.Equal(t, share.CodeInvalidFormat, iss[0].Code)
}

func TestUpdateMessageSchema_OwnerReferencesAreImmutable(t *testing.T) {
	u, err := types.UpdateMessageSchema.Parse(context.Background(), map[string]any{
		"conversationId": otherID,
		"userId":         otherID,
		"status":         "read",
	})
	require.NoError(t, err)
	require.NotNil(t, u.Status)
	assert.Equal(t, types.MessageStatusRead, *u.Status)
	assert.Nil(t, u.Content)
	assert.Nil(t, u.Metadata)

	w, err := share.ToWire(u)
	require.NoError(t, err)
	assert.NotContains(t, w.(map[string]any), "conversationId")
	assert.NotContains(t, w.(map[string]any), "userId")
}

func TestMessageSchema_ReparseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	in := message(map[string]any{"type": "file", "attachment": map[string]any{
		"id": "f1", "name": "a.pdf", "type": "application/pdf", "size": 10,
		"url": "https://cdn.example.com/a.pdf", "thumbnailUrl": "https://cdn.example.com/a.png",
	}})
	in["userId"] = userID
	in["metadata"] = map[string]any{
		"replyToId":      userID,
		"reactions":      map[string]any{"heart": []any{userID}},
		"processingTime": 1.25,
	}

	first, err := types.MessageSchema.Parse(ctx, in)
	require.NoError(t, err)
	second, err := types.MessageSchema.Parse(ctx, &first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
