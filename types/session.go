package types

import (
	"time"

	"github.com/emlinh-ai/emlinh-ai-share/dsl"
)

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	SessionStatusActive   SessionStatus = "active"
	SessionStatusInactive SessionStatus = "inactive"
	SessionStatusExpired  SessionStatus = "expired"
)

// SessionMetadata describes the client device. All fields are free-form.
type SessionMetadata struct {
	UserAgent *string `json:"userAgent,omitempty"`
	IPAddress *string `json:"ipAddress,omitempty"`
	Platform  *string `json:"platform,omitempty"`
	DeviceID  *string `json:"deviceId,omitempty"`
	Location  *string `json:"location,omitempty"`
}

// Session is a stored login session.
type Session struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	Status         SessionStatus    `json:"status"`
	Metadata       *SessionMetadata `json:"metadata,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	ExpiresAt      *time.Time       `json:"expiresAt,omitempty"`
	LastAccessedAt *time.Time       `json:"lastAccessedAt,omitempty"`
}

// CreateSession is the payload for opening a session.
type CreateSession struct {
	UserID    string           `json:"userId"`
	Status    SessionStatus    `json:"status"`
	Metadata  *SessionMetadata `json:"metadata,omitempty"`
	ExpiresAt *time.Time       `json:"expiresAt,omitempty"`
}

// UpdateSession is a partial update. The owner cannot change.
type UpdateSession struct {
	Status         *SessionStatus   `json:"status,omitempty"`
	Metadata       *SessionMetadata `json:"metadata,omitempty"`
	UpdatedAt      *time.Time       `json:"updatedAt,omitempty"`
	ExpiresAt      *time.Time       `json:"expiresAt,omitempty"`
	LastAccessedAt *time.Time       `json:"lastAccessedAt,omitempty"`
}

// Schemas for the session status and metadata.
var (
	SessionStatusSchema   = dsl.Enum(SessionStatusActive, SessionStatusInactive, SessionStatusExpired)
	SessionMetadataSchema = dsl.MustBind[SessionMetadata](sessionMetadataFields())
)

func sessionMetadataFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("userAgent", dsl.String()).
		Field("ipAddress", dsl.String()).
		Field("platform", dsl.String()).
		Field("deviceId", dsl.String()).
		Field("location", dsl.String()).Optional()
}

func sessionFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("id", dsl.String().UUID()).Required().
		Field("userId", dsl.String().UUID()).Required().
		Field("status", SessionStatusSchema).Default(SessionStatusActive).
		Field("metadata", dsl.SchemaOf(SessionMetadataSchema)).
		Field("createdAt", dsl.Time()).Required().
		Field("updatedAt", dsl.Time()).Required().
		Field("expiresAt", dsl.Time()).
		Field("lastAccessedAt", dsl.Time()).Optional()
}

// Schemas for Session and its payloads.
var (
	SessionSchema       = dsl.MustBind[Session](sessionFields())
	CreateSessionSchema = dsl.MustBind[CreateSession](sessionFields().Omit("id", "createdAt", "updatedAt", "lastAccessedAt"))
	UpdateSessionSchema = dsl.MustBind[UpdateSession](sessionFields().Omit("id", "userId", "createdAt").Partial())
)
