package types

import (
	"time"

	"github.com/emlinh-ai/emlinh-ai-share/dsl"
)

// ContentType tags the variants of MessageContent.
type ContentType string

const (
	ContentTypeText   ContentType = "text"
	ContentTypeImage  ContentType = "image"
	ContentTypeFile   ContentType = "file"
	ContentTypeCode   ContentType = "code"
	ContentTypeSystem ContentType = "system"
)

// MessageStatus tracks delivery of a message.
type MessageStatus string

const (
	MessageStatusPending   MessageStatus = "pending"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
	MessageStatusFailed    MessageStatus = "failed"
)

// SystemLevel is the severity of a system message.
type SystemLevel string

const (
	SystemLevelInfo    SystemLevel = "info"
	SystemLevelWarning SystemLevel = "warning"
	SystemLevelError   SystemLevel = "error"
)

// FileAttachment describes an uploaded file.
type FileAttachment struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Size         int     `json:"size"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
}

// CodeBlock is a fenced snippet with its language.
type CodeBlock struct {
	Language string  `json:"language"`
	Code     string  `json:"code"`
	Filename *string `json:"filename,omitempty"`
}

// MessageContent is the closed set of message bodies, selected by "type".
type MessageContent interface {
	ContentType() ContentType
	isMessageContent()
}

// TextContent is plain message text.
type TextContent struct {
	Type ContentType `json:"type"`
	Text string      `json:"text"`
}

// ImageContent carries an image URL and optional caption.
type ImageContent struct {
	Type     ContentType `json:"type"`
	ImageURL string      `json:"imageUrl"`
	Alt      *string     `json:"alt,omitempty"`
	Caption  *string     `json:"caption,omitempty"`
}

// FileContent carries one attachment.
type FileContent struct {
	Type       ContentType    `json:"type"`
	Attachment FileAttachment `json:"attachment"`
}

// CodeContent carries one code block.
type CodeContent struct {
	Type      ContentType `json:"type"`
	CodeBlock CodeBlock   `json:"codeBlock"`
}

// SystemContent is a notice generated by the platform.
type SystemContent struct {
	Type          ContentType `json:"type"`
	SystemMessage string      `json:"systemMessage"`
	Level         SystemLevel `json:"level"`
}

func (TextContent) ContentType() ContentType   { return ContentTypeText }
func (ImageContent) ContentType() ContentType  { return ContentTypeImage }
func (FileContent) ContentType() ContentType   { return ContentTypeFile }
func (CodeContent) ContentType() ContentType   { return ContentTypeCode }
func (SystemContent) ContentType() ContentType { return ContentTypeSystem }

func (TextContent) isMessageContent()   {}
func (ImageContent) isMessageContent()  {}
func (FileContent) isMessageContent()   {}
func (CodeContent) isMessageContent()   {}
func (SystemContent) isMessageContent() {}

// MessageMetadata holds edit state, mentions and reactions.
type MessageMetadata struct {
	Edited         bool                `json:"edited"`
	EditedAt       *time.Time          `json:"editedAt,omitempty"`
	ReplyToID      *string             `json:"replyToId,omitempty"`
	Mentions       []string            `json:"mentions"`
	Reactions      map[string][]string `json:"reactions"`
	TokenCount     *int                `json:"tokenCount,omitempty"`
	ProcessingTime *float64            `json:"processingTime,omitempty"`
}

// Message is a stored chat message.
type Message struct {
	ID             string          `json:"id"`
	ConversationID string          `json:"conversationId"`
	UserID         *string         `json:"userId,omitempty"`
	Role           UserRole        `json:"role"`
	Content        MessageContent  `json:"content"`
	Metadata       MessageMetadata `json:"metadata"`
	Status         MessageStatus   `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CreateMessage is the payload for posting a message.
type CreateMessage struct {
	ConversationID string          `json:"conversationId"`
	UserID         *string         `json:"userId,omitempty"`
	Role           UserRole        `json:"role"`
	Content        MessageContent  `json:"content"`
	Metadata       MessageMetadata `json:"metadata"`
	Status         MessageStatus   `json:"status"`
}

// UpdateMessage cannot move a message to another conversation or author.
type UpdateMessage struct {
	Role      *UserRole        `json:"role,omitempty"`
	Content   MessageContent   `json:"content,omitempty"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
	Status    *MessageStatus   `json:"status,omitempty"`
	UpdatedAt *time.Time       `json:"updatedAt,omitempty"`
}

// Schemas for the message enums, content variants and metadata.
var (
	ContentTypeSchema   = dsl.Enum(ContentTypeText, ContentTypeImage, ContentTypeFile, ContentTypeCode, ContentTypeSystem)
	MessageStatusSchema = dsl.Enum(MessageStatusPending, MessageStatusSent, MessageStatusDelivered, MessageStatusRead, MessageStatusFailed)
	SystemLevelSchema   = dsl.Enum(SystemLevelInfo, SystemLevelWarning, SystemLevelError)

	FileAttachmentSchema  = dsl.MustBind[FileAttachment](fileAttachmentFields())
	CodeBlockSchema       = dsl.MustBind[CodeBlock](codeBlockFields())
	MessageContentSchema  = messageContent()
	MessageMetadataSchema = dsl.MustBind[MessageMetadata](messageMetadataFields())
)

func fileAttachmentFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("id", dsl.String()).Required().
		Field("name", dsl.String()).Required().
		Field("type", dsl.String()).Required().
		Field("size", dsl.Int()).Required().
		Field("url", dsl.String().URL()).Required().
		Field("thumbnailUrl", dsl.String().URL()).Optional()
}

func codeBlockFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("language", dsl.String()).Required().
		Field("code", dsl.String()).Required().
		Field("filename", dsl.String()).Optional()
}

func messageContent() *dsl.UnionSchema[MessageContent] {
	text := dsl.Object().
		Field("type", dsl.Literal(ContentTypeText)).Required().
		Field("text", dsl.String()).Required()
	image := dsl.Object().
		Field("type", dsl.Literal(ContentTypeImage)).Required().
		Field("imageUrl", dsl.String().URL()).Required().
		Field("alt", dsl.String()).
		Field("caption", dsl.String()).Optional()
	file := dsl.Object().
		Field("type", dsl.Literal(ContentTypeFile)).Required().
		Field("attachment", dsl.SchemaOf(FileAttachmentSchema)).Required()
	code := dsl.Object().
		Field("type", dsl.Literal(ContentTypeCode)).Required().
		Field("codeBlock", dsl.SchemaOf(CodeBlockSchema)).Required()
	system := dsl.Object().
		Field("type", dsl.Literal(ContentTypeSystem)).Required().
		Field("systemMessage", dsl.String()).Required().
		Field("level", SystemLevelSchema).Default(SystemLevelInfo)

	return dsl.Union("type",
		dsl.Case[MessageContent](string(ContentTypeText), dsl.MustBind[TextContent](text)),
		dsl.Case[MessageContent](string(ContentTypeImage), dsl.MustBind[ImageContent](image)),
		dsl.Case[MessageContent](string(ContentTypeFile), dsl.MustBind[FileContent](file)),
		dsl.Case[MessageContent](string(ContentTypeCode), dsl.MustBind[CodeContent](code)),
		dsl.Case[MessageContent](string(ContentTypeSystem), dsl.MustBind[SystemContent](system)),
	)
}

func messageMetadataFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("edited", dsl.Bool()).Default(false).
		Field("editedAt", dsl.Time()).
		Field("replyToId", dsl.String().UUID()).
		Field("mentions", dsl.Array(dsl.String().UUID())).Default([]string{}).
		Field("reactions", dsl.Record(dsl.Array(dsl.String().UUID()))).Default(map[string]any{}).
		Field("tokenCount", dsl.Int()).
		Field("processingTime", dsl.Float()).Optional()
}

func messageFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("id", dsl.String().UUID()).Required().
		Field("conversationId", dsl.String().UUID()).Required().
		Field("userId", dsl.String().UUID()).
		Field("role", UserRoleSchema).Required().
		Field("content", MessageContentSchema).Required().
		Field("metadata", dsl.SchemaOf(MessageMetadataSchema)).Default(map[string]any{}).
		Field("status", MessageStatusSchema).Default(MessageStatusSent).
		Field("createdAt", dsl.Time()).Required().
		Field("updatedAt", dsl.Time()).Required()
}

// Schemas for Message. UpdateMessageSchema cannot move a message to
// another conversation or author.
var (
	MessageSchema       = dsl.MustBind[Message](messageFields())
	CreateMessageSchema = dsl.MustBind[CreateMessage](messageFields().Omit("id", "createdAt", "updatedAt"))
	UpdateMessageSchema = dsl.MustBind[UpdateMessage](messageFields().Omit("id", "conversationId", "userId", "createdAt").Partial())
)
