package types

import (
	"time"

	"github.com/emlinh-ai/emlinh-ai-share/dsl"
)

// ConversationType is the kind of conversation.
type ConversationType string

const (
	ConversationTypeChat       ConversationType = "chat"
	ConversationTypeTask       ConversationType = "task"
	ConversationTypeBrainstorm ConversationType = "brainstorm"
	ConversationTypeCodeReview ConversationType = "code_review"
)

// ConversationStatus is the lifecycle state of a conversation.
type ConversationStatus string

const (
	ConversationStatusActive   ConversationStatus = "active"
	ConversationStatusArchived ConversationStatus = "archived"
	ConversationStatusDeleted  ConversationStatus = "deleted"
)

// Priority ranks a conversation in lists.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultModel is the model used when settings omit one.
const DefaultModel = "gpt-4"

// ConversationSettings are the model parameters of a conversation.
type ConversationSettings struct {
	Model         string  `json:"model"`
	Temperature   float64 `json:"temperature"`
	MaxTokens     *int    `json:"maxTokens,omitempty"`
	SystemPrompt  *string `json:"systemPrompt,omitempty"`
	AutoSave      bool    `json:"autoSave"`
	Notifications bool    `json:"notifications"`
}

// ConversationMetadata holds tags, flags and counters.
type ConversationMetadata struct {
	Tags          []string   `json:"tags"`
	Category      *string    `json:"category,omitempty"`
	Priority      Priority   `json:"priority"`
	IsStarred     bool       `json:"isStarred"`
	IsPinned      bool       `json:"isPinned"`
	MessageCount  int        `json:"messageCount"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
	TotalTokens   int        `json:"totalTokens"`
}

// Conversation is a stored conversation.
type Conversation struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description *string              `json:"description,omitempty"`
	UserID      string               `json:"userId"`
	Type        ConversationType     `json:"type"`
	Status      ConversationStatus   `json:"status"`
	Settings    ConversationSettings `json:"settings"`
	Metadata    ConversationMetadata `json:"metadata"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	ArchivedAt  *time.Time           `json:"archivedAt,omitempty"`
}

// CreateConversation is the payload for starting a conversation.
type CreateConversation struct {
	Title       string               `json:"title"`
	Description *string              `json:"description,omitempty"`
	UserID      string               `json:"userId"`
	Type        ConversationType     `json:"type"`
	Status      ConversationStatus   `json:"status"`
	Settings    ConversationSettings `json:"settings"`
	Metadata    ConversationMetadata `json:"metadata"`
}

// UpdateConversation is a partial update. The owner cannot change.
type UpdateConversation struct {
	Title       *string               `json:"title,omitempty"`
	Description *string               `json:"description,omitempty"`
	Type        *ConversationType     `json:"type,omitempty"`
	Status      *ConversationStatus   `json:"status,omitempty"`
	Settings    *ConversationSettings `json:"settings,omitempty"`
	Metadata    *ConversationMetadata `json:"metadata,omitempty"`
	UpdatedAt   *time.Time            `json:"updatedAt,omitempty"`
	ArchivedAt  *time.Time            `json:"archivedAt,omitempty"`
}

// ConversationListItem is the summary row sent to conversation lists.
type ConversationListItem struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Type               ConversationType   `json:"type"`
	Status             ConversationStatus `json:"status"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	MessageCount       int                `json:"messageCount"`
	LastMessageAt      *time.Time         `json:"lastMessageAt,omitempty"`
	LastMessagePreview *string            `json:"lastMessagePreview,omitempty"`
}

// Schemas for the conversation enums and nested blocks.
var (
	ConversationTypeSchema   = dsl.Enum(ConversationTypeChat, ConversationTypeTask, ConversationTypeBrainstorm, ConversationTypeCodeReview)
	ConversationStatusSchema = dsl.Enum(ConversationStatusActive, ConversationStatusArchived, ConversationStatusDeleted)
	PrioritySchema           = dsl.Enum(PriorityLow, PriorityMedium, PriorityHigh)

	ConversationSettingsSchema = dsl.MustBind[ConversationSettings](conversationSettingsFields())
	ConversationMetadataSchema = dsl.MustBind[ConversationMetadata](conversationMetadataFields())
)

func conversationSettingsFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("model", dsl.String()).Default(DefaultModel).
		Field("temperature", dsl.Float().Min(0).Max(2)).Default(0.7).
		Field("maxTokens", dsl.Int().Positive()).
		Field("systemPrompt", dsl.String()).
		Field("autoSave", dsl.Bool()).Default(true).
		Field("notifications", dsl.Bool()).Default(true)
}

func conversationMetadataFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("tags", dsl.Array(dsl.String())).Default([]string{}).
		Field("category", dsl.String()).
		Field("priority", PrioritySchema).Default(PriorityMedium).
		Field("isStarred", dsl.Bool()).Default(false).
		Field("isPinned", dsl.Bool()).Default(false).
		Field("messageCount", dsl.Int()).Default(0).
		Field("lastMessageAt", dsl.Time()).
		Field("totalTokens", dsl.Int()).Default(0)
}

func conversationFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("id", dsl.String().UUID()).Required().
		Field("title", dsl.String().NonEmpty()).Required().
		Field("description", dsl.String()).
		Field("userId", dsl.String().UUID()).Required().
		Field("type", ConversationTypeSchema).Default(ConversationTypeChat).
		Field("status", ConversationStatusSchema).Default(ConversationStatusActive).
		Field("settings", dsl.SchemaOf(ConversationSettingsSchema)).Default(map[string]any{}).
		Field("metadata", dsl.SchemaOf(ConversationMetadataSchema)).Default(map[string]any{}).
		Field("createdAt", dsl.Time()).Required().
		Field("updatedAt", dsl.Time()).Required().
		Field("archivedAt", dsl.Time()).Optional()
}

func conversationListItemFields() *dsl.ObjectBuilder {
	return conversationFields().
		Pick("id", "title", "type", "status", "createdAt", "updatedAt").
		Extend(dsl.Object().
			Field("messageCount", dsl.Int()).Required().
			Field("lastMessageAt", dsl.Time()).
			Field("lastMessagePreview", dsl.String()).Optional())
}

// Schemas for Conversation, its payloads and list rows.
var (
	ConversationSchema         = dsl.MustBind[Conversation](conversationFields())
	CreateConversationSchema   = dsl.MustBind[CreateConversation](conversationFields().Omit("id", "createdAt", "updatedAt", "archivedAt"))
	UpdateConversationSchema   = dsl.MustBind[UpdateConversation](conversationFields().Omit("id", "userId", "createdAt").Partial())
	ConversationListItemSchema = dsl.MustBind[ConversationListItem](conversationListItemFields())
)
