package types

import (
	"time"

	"github.com/emlinh-ai/emlinh-ai-share/dsl"
)

// ContextSource tags where a context came from. It also selects the
// ContextMetadata variant.
type ContextSource string

const (
	ContextSourceFile      ContextSource = "file"
	ContextSourceWeb       ContextSource = "web"
	ContextSourceDatabase  ContextSource = "database"
	ContextSourceAPI       ContextSource = "api"
	ContextSourceUserInput ContextSource = "user_input"
	ContextSourceSystem    ContextSource = "system"
)

// ContextDataType is the kind of content a context holds.
type ContextDataType string

const (
	ContextDataTypeText       ContextDataType = "text"
	ContextDataTypeCode       ContextDataType = "code"
	ContextDataTypeImage      ContextDataType = "image"
	ContextDataTypeDocument   ContextDataType = "document"
	ContextDataTypeStructured ContextDataType = "structured"
)

// FileContextMetadata describes a file on disk.
type FileContextMetadata struct {
	Filename  string  `json:"filename"`
	Path      string  `json:"path"`
	Size      int     `json:"size"`
	MimeType  string  `json:"mimeType"`
	Encoding  *string `json:"encoding,omitempty"`
	Language  *string `json:"language,omitempty"`
	LineCount *int    `json:"lineCount,omitempty"`
}

// WebContextMetadata describes a scraped page.
type WebContextMetadata struct {
	URL         string    `json:"url"`
	Title       *string   `json:"title,omitempty"`
	Domain      string    `json:"domain"`
	ScrapedAt   time.Time `json:"scrapedAt"`
	ContentType *string   `json:"contentType,omitempty"`
}

// DatabaseContextMetadata locates rows in a database.
type DatabaseContextMetadata struct {
	Table    string  `json:"table"`
	Schema   *string `json:"schema,omitempty"`
	Query    *string `json:"query,omitempty"`
	RowCount *int    `json:"rowCount,omitempty"`
}

// ContextMetadata is the closed set of metadata shapes, selected by "source".
type ContextMetadata interface {
	ContextSource() ContextSource
	isContextMetadata()
}

// FileMetadata is the "file" variant of ContextMetadata.
type FileMetadata struct {
	Source ContextSource       `json:"source"`
	File   FileContextMetadata `json:"file"`
}

// WebMetadata is the "web" variant of ContextMetadata.
type WebMetadata struct {
	Source ContextSource      `json:"source"`
	Web    WebContextMetadata `json:"web"`
}

// DatabaseMetadata is the "database" variant of ContextMetadata.
type DatabaseMetadata struct {
	Source   ContextSource           `json:"source"`
	Database DatabaseContextMetadata `json:"database"`
}

// APIMetadata is the "api" variant of ContextMetadata.
type APIMetadata struct {
	Source       ContextSource `json:"source"`
	Endpoint     string        `json:"endpoint"`
	Method       string        `json:"method"`
	ResponseTime *float64      `json:"responseTime,omitempty"`
}

// UserInputMetadata is the "user_input" variant of ContextMetadata.
type UserInputMetadata struct {
	Source    ContextSource `json:"source"`
	InputType string        `json:"inputType"`
	Timestamp time.Time     `json:"timestamp"`
}

// SystemMetadata is the "system" variant of ContextMetadata.
type SystemMetadata struct {
	Source    ContextSource `json:"source"`
	Component string        `json:"component"`
	Version   *string       `json:"version,omitempty"`
}

func (FileMetadata) ContextSource() ContextSource      { return ContextSourceFile }
func (WebMetadata) ContextSource() ContextSource       { return ContextSourceWeb }
func (DatabaseMetadata) ContextSource() ContextSource  { return ContextSourceDatabase }
func (APIMetadata) ContextSource() ContextSource       { return ContextSourceAPI }
func (UserInputMetadata) ContextSource() ContextSource { return ContextSourceUserInput }
func (SystemMetadata) ContextSource() ContextSource    { return ContextSourceSystem }

func (FileMetadata) isContextMetadata()      {}
func (WebMetadata) isContextMetadata()       {}
func (DatabaseMetadata) isContextMetadata()  {}
func (APIMetadata) isContextMetadata()       {}
func (UserInputMetadata) isContextMetadata() {}
func (SystemMetadata) isContextMetadata()    {}

// ContextChunk is one slice of a large context body.
type ContextChunk struct {
	ID          string `json:"id"`
	Index       int    `json:"index"`
	Content     string `json:"content"`
	StartOffset *int   `json:"startOffset,omitempty"`
	EndOffset   *int   `json:"endOffset,omitempty"`
	Tokens      *int   `json:"tokens,omitempty"`
}

// Context is a stored piece of retrieved knowledge.
type Context struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    *string         `json:"description,omitempty"`
	Source         ContextSource   `json:"source"`
	DataType       ContextDataType `json:"dataType"`
	Content        string          `json:"content"`
	Chunks         []ContextChunk  `json:"chunks"`
	Metadata       ContextMetadata `json:"metadata"`
	Tags           []string        `json:"tags"`
	RelevanceScore *float64        `json:"relevanceScore,omitempty"`
	Tokens         *int            `json:"tokens,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty"`
}

// CreateContext is the payload for storing a context.
type CreateContext struct {
	Title          string          `json:"title"`
	Description    *string         `json:"description,omitempty"`
	Source         ContextSource   `json:"source"`
	DataType       ContextDataType `json:"dataType"`
	Content        string          `json:"content"`
	Chunks         []ContextChunk  `json:"chunks"`
	Metadata       ContextMetadata `json:"metadata"`
	Tags           []string        `json:"tags"`
	RelevanceScore *float64        `json:"relevanceScore,omitempty"`
	Tokens         *int            `json:"tokens,omitempty"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty"`
}

// UpdateContext is a partial update of a context.
type UpdateContext struct {
	Title          *string          `json:"title,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Source         *ContextSource   `json:"source,omitempty"`
	DataType       *ContextDataType `json:"dataType,omitempty"`
	Content        *string          `json:"content,omitempty"`
	Chunks         []ContextChunk   `json:"chunks"`
	Metadata       ContextMetadata  `json:"metadata,omitempty"`
	Tags           []string         `json:"tags"`
	RelevanceScore *float64         `json:"relevanceScore,omitempty"`
	Tokens         *int             `json:"tokens,omitempty"`
	UpdatedAt      *time.Time       `json:"updatedAt,omitempty"`
	ExpiresAt      *time.Time       `json:"expiresAt,omitempty"`
}

// ContextPayload is the request body that hands contexts to a model.
type ContextPayload struct {
	Contexts           []Context `json:"contexts"`
	MaxTokens          *int      `json:"maxTokens,omitempty"`
	RelevanceThreshold float64   `json:"relevanceThreshold"`
	IncludeMetadata    bool      `json:"includeMetadata"`
	ChunkSize          *int      `json:"chunkSize,omitempty"`
}

// ContextSearchQuery filters and pages a context search.
type ContextSearchQuery struct {
	Query        string            `json:"query"`
	Sources      []ContextSource   `json:"sources"`
	DataTypes    []ContextDataType `json:"dataTypes"`
	Tags         []string          `json:"tags"`
	Limit        int               `json:"limit"`
	Offset       int               `json:"offset"`
	MinRelevance float64           `json:"minRelevance"`
}

// Schemas for the context enums, metadata variants and chunks.
var (
	ContextSourceSchema   = dsl.Enum(ContextSourceFile, ContextSourceWeb, ContextSourceDatabase, ContextSourceAPI, ContextSourceUserInput, ContextSourceSystem)
	ContextDataTypeSchema = dsl.Enum(ContextDataTypeText, ContextDataTypeCode, ContextDataTypeImage, ContextDataTypeDocument, ContextDataTypeStructured)

	FileContextMetadataSchema     = dsl.MustBind[FileContextMetadata](fileContextMetadataFields())
	WebContextMetadataSchema      = dsl.MustBind[WebContextMetadata](webContextMetadataFields())
	DatabaseContextMetadataSchema = dsl.MustBind[DatabaseContextMetadata](databaseContextMetadataFields())
	ContextMetadataSchema         = contextMetadata()
	ContextChunkSchema            = dsl.MustBind[ContextChunk](contextChunkFields())
)

func fileContextMetadataFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("filename", dsl.String()).Required().
		Field("path", dsl.String()).Required().
		Field("size", dsl.Int()).Required().
		Field("mimeType", dsl.String()).Required().
		Field("encoding", dsl.String()).
		Field("language", dsl.String()).
		Field("lineCount", dsl.Int()).Optional()
}

func webContextMetadataFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("url", dsl.String().URL()).Required().
		Field("title", dsl.String()).
		Field("domain", dsl.String()).Required().
		Field("scrapedAt", dsl.Time()).Required().
		Field("contentType", dsl.String()).Optional()
}

func databaseContextMetadataFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("table", dsl.String()).Required().
		Field("schema", dsl.String()).
		Field("query", dsl.String()).
		Field("rowCount", dsl.Int()).Optional()
}

func contextMetadata() *dsl.UnionSchema[ContextMetadata] {
	tag := func(s ContextSource) *dsl.ObjectBuilder {
		return dsl.Object().Field("source", dsl.Literal(s)).Required()
	}
	file := tag(ContextSourceFile).
		Field("file", dsl.SchemaOf(FileContextMetadataSchema)).Required()
	web := tag(ContextSourceWeb).
		Field("web", dsl.SchemaOf(WebContextMetadataSchema)).Required()
	database := tag(ContextSourceDatabase).
		Field("database", dsl.SchemaOf(DatabaseContextMetadataSchema)).Required()
	api := tag(ContextSourceAPI).
		Field("endpoint", dsl.String()).Required().
		Field("method", dsl.String()).Required().
		Field("responseTime", dsl.Float()).Optional()
	userInput := tag(ContextSourceUserInput).
		Field("inputType", dsl.String()).Required().
		Field("timestamp", dsl.Time()).Required()
	system := tag(ContextSourceSystem).
		Field("component", dsl.String()).Required().
		Field("version", dsl.String()).Optional()

	return dsl.Union("source",
		dsl.Case[ContextMetadata](string(ContextSourceFile), dsl.MustBind[FileMetadata](file)),
		dsl.Case[ContextMetadata](string(ContextSourceWeb), dsl.MustBind[WebMetadata](web)),
		dsl.Case[ContextMetadata](string(ContextSourceDatabase), dsl.MustBind[DatabaseMetadata](database)),
		dsl.Case[ContextMetadata](string(ContextSourceAPI), dsl.MustBind[APIMetadata](api)),
		dsl.Case[ContextMetadata](string(ContextSourceUserInput), dsl.MustBind[UserInputMetadata](userInput)),
		dsl.Case[ContextMetadata](string(ContextSourceSystem), dsl.MustBind[SystemMetadata](system)),
	)
}

func contextChunkFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("id", dsl.String()).Required().
		Field("index", dsl.Int()).Required().
		Field("content", dsl.String()).Required().
		Field("startOffset", dsl.Int()).
		Field("endOffset", dsl.Int()).
		Field("tokens", dsl.Int()).Optional()
}

func contextFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("id", dsl.String().UUID()).Required().
		Field("title", dsl.String()).Required().
		Field("description", dsl.String()).
		Field("source", ContextSourceSchema).Required().
		Field("dataType", ContextDataTypeSchema).Required().
		Field("content", dsl.String()).Required().
		Field("chunks", dsl.Array(ContextChunkSchema)).
		Field("metadata", ContextMetadataSchema).Required().
		Field("tags", dsl.Array(dsl.String())).Default([]string{}).
		Field("relevanceScore", dsl.Float().Min(0).Max(1)).
		Field("tokens", dsl.Int()).
		Field("createdAt", dsl.Time()).Required().
		Field("updatedAt", dsl.Time()).Required().
		Field("expiresAt", dsl.Time()).Optional()
}

func contextPayloadFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("contexts", dsl.Array(ContextSchema)).Required().
		Field("maxTokens", dsl.Int().Positive()).
		Field("relevanceThreshold", dsl.Float().Min(0).Max(1)).Default(0.5).
		Field("includeMetadata", dsl.Bool()).Default(true).
		Field("chunkSize", dsl.Int().Positive()).Optional()
}

func contextSearchQueryFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("query", dsl.String()).Required().
		Field("sources", dsl.Array(ContextSourceSchema)).
		Field("dataTypes", dsl.Array(ContextDataTypeSchema)).
		Field("tags", dsl.Array(dsl.String())).
		Field("limit", dsl.Int().Positive()).Default(10).
		Field("offset", dsl.Int().Min(0)).Default(0).
		Field("minRelevance", dsl.Float().Min(0).Max(1)).Default(0.3)
}

// Schemas for Context, its payloads and search queries.
var (
	ContextSchema            = dsl.MustBind[Context](contextFields())
	CreateContextSchema      = dsl.MustBind[CreateContext](contextFields().Omit("id", "createdAt", "updatedAt"))
	UpdateContextSchema      = dsl.MustBind[UpdateContext](contextFields().Omit("id", "createdAt").Partial())
	ContextPayloadSchema     = dsl.MustBind[ContextPayload](contextPayloadFields())
	ContextSearchQuerySchema = dsl.MustBind[ContextSearchQuery](contextSearchQueryFields())
)
