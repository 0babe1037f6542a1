package types

import (
	"context"
	"sort"

	share "github.com/emlinh-ai/emlinh-ai-share"
	js "github.com/emlinh-ai/emlinh-ai-share/jsonschema"
)

// Entry is a named, type-erased schema handle.
type Entry struct {
	Name        string
	Description string
	Schema      share.Schema[any]
}

type erased[T any] struct{ s share.Schema[T] }

func (e erased[T]) Parse(ctx context.Context, v any) (any, error) {
	out, err := e.s.Parse(ctx, v)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e erased[T]) ParseWithMeta(ctx context.Context, v any) (share.Decoded[any], error) {
	dm, err := e.s.ParseWithMeta(ctx, v)
	if err != nil {
		return share.Decoded[any]{}, err
	}
	return share.Decoded[any]{Value: dm.Value, Presence: dm.Presence}, nil
}

func (e erased[T]) JSONSchema() (*js.Schema, error) { return e.s.JSONSchema() }

func entry[T any](name, desc string, s share.Schema[T]) Entry {
	return Entry{Name: name, Description: desc, Schema: erased[T]{s: s}}
}

var registry = map[string]Entry{}

func register(es ...Entry) {
	for _, e := range es {
		registry[e.Name] = e
	}
}

func init() {
	register(
		entry("user", "User entity", UserSchema),
		entry("create-user", "User creation payload", CreateUserSchema),
		entry("update-user", "User update payload", UpdateUserSchema),
		entry("user-profile", "User profile", UserProfileSchema),
		entry("user-preferences", "User preferences", UserPreferencesSchema),
		entry("message", "Message entity", MessageSchema),
		entry("create-message", "Message creation payload", CreateMessageSchema),
		entry("update-message", "Message update payload", UpdateMessageSchema),
		entry("message-content", "Message content union keyed by type", MessageContentSchema),
		entry("message-metadata", "Message metadata", MessageMetadataSchema),
		entry("conversation", "Conversation entity", ConversationSchema),
		entry("create-conversation", "Conversation creation payload", CreateConversationSchema),
		entry("update-conversation", "Conversation update payload", UpdateConversationSchema),
		entry("conversation-list-item", "Conversation list row", ConversationListItemSchema),
		entry("session", "Session entity", SessionSchema),
		entry("create-session", "Session creation payload", CreateSessionSchema),
		entry("update-session", "Session update payload", UpdateSessionSchema),
		entry("context", "Context entity", ContextSchema),
		entry("create-context", "Context creation payload", CreateContextSchema),
		entry("update-context", "Context update payload", UpdateContextSchema),
		entry("context-metadata", "Context metadata union keyed by source", ContextMetadataSchema),
		entry("context-payload", "Contexts handed to a model", ContextPayloadSchema),
		entry("context-search-query", "Context search query", ContextSearchQuerySchema),
	)
}

// Lookup returns the schema registered under name.
func Lookup(name string) (Entry, bool) {
	e, ok := registry[name]
	return e, ok
}

// Entries returns every registered schema sorted by name.
func Entries() []Entry {
	out := make([]Entry, 0, len(registry))
	for _, e := range registry {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
