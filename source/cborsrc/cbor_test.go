package cborsrc_test

import (
	"context"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	share "github.com/emlinh-ai/emlinh-ai-share"
	"github.com/emlinh-ai/emlinh-ai-share/source/cborsrc"
	"github.com/emlinh-ai/emlinh-ai-share/types"
)

const (
	userID         = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	conversationID = "6ba7b812-9dad-11d1-80b4-00c04fd430c8"
)

func TestDecode_CreateMessage(t *testing.T) {
	data, err := cbor.Marshal(map[string]any{
		"conversationId": conversationID,
		"userId":         userID,
		"role":           "assistant",
		"content":        map[string]any{"type": "code", "codeBlock": map[string]any{"language": "go", "code": "x := 1"}},
		"metadata":       map[string]any{"tokenCount": 42},
	})
	require.NoError(t, err)

	m, err := share.ParseFrom(context.Background(), types.CreateMessageSchema, cborsrc.Bytes(data))
	require.NoError(t, err)
	assert.Equal(t, types.CodeContent{Type: types.ContentTypeCode, CodeBlock: types.CodeBlock{Language: "go", Code: "x := 1"}}, m.Content)
	require.NotNil(t, m.Metadata.TokenCount)
	assert.Equal(t, 42, *m.Metadata.TokenCount)
}

func TestMarshal_RoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	s, err := types.SessionSchema.Parse(ctx, map[string]any{
		"id":        conversationID,
		"userId":    userID,
		"expiresAt": now,
		"createdAt": now,
		"updatedAt": now,
	})
	require.NoError(t, err)

	data, err := cborsrc.Marshal(s)
	require.NoError(t, err)
	again, err := share.ParseFrom(ctx, types.SessionSchema, cborsrc.Bytes(data))
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

// {"a": 1, "a": 2}
var duplicated = []byte{0xa2, 0x61, 0x61, 0x01, 0x61, 0x61, 0x02}

func TestDecode_DuplicateKeys(t *testing.T) {
	v, err := cborsrc.Bytes(duplicated).Decode(share.ParseOpt{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": uint64(2)}, v)

	_, err = cborsrc.Bytes(duplicated).Decode(share.ParseOpt{Strictness: share.Strictness{OnDuplicateKey: share.Error}})
	iss, ok := share.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, share.CodeDuplicateKey, iss[0].Code)
	assert.Equal(t, "a", iss[0].Params["key"])
}

func TestDecode_Errors(t *testing.T) {
	for name, in := range map[string][]byte{
		"empty":    nil,
		"trailing": {0x01, 0x02},
		"short":    {0xa1, 0x61},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := cborsrc.Bytes(in).Decode(share.ParseOpt{})
			iss, ok := share.AsIssues(err)
			require.True(t, ok)
			assert.Equal(t, share.CodeParseError, iss[0].Code)
		})
	}

	_, err := cborsrc.Bytes(duplicated).Decode(share.ParseOpt{MaxBytes: 4})
	iss, ok := share.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, share.CodeTruncated, iss[0].Code)
}

func TestDecode_DuplicateKeysWarn(t *testing.T) {
	src := cborsrc.Bytes(duplicated)
	v, err := src.Decode(share.ParseOpt{Strictness: share.Strictness{OnDuplicateKey: share.Warn}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": uint64(2)}, v)

	wr, ok := src.(share.WarningReporter)
	require.True(t, ok)
	require.Len(t, wr.Warnings(), 1)
	assert.Equal(t, share.CodeDuplicateKey, wr.Warnings()[0].Code)
	assert.Equal(t, "a", wr.Warnings()[0].Params["key"])

	_, err = src.Decode(share.ParseOpt{})
	require.NoError(t, err)
	assert.Empty(t, wr.Warnings())
}
