package types

import (
	"time"

	"github.com/emlinh-ai/emlinh-ai-share/dsl"
)

// UserRole is shared by users and message authors.
type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleAssistant UserRole = "assistant"
	UserRoleSystem    UserRole = "system"
)

// Theme is the UI theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// DefaultTimezone is applied when a profile omits its timezone.
const DefaultTimezone = "Asia/Ho_Chi_Minh"

// UserProfile is the public profile block of a User.
type UserProfile struct {
	DisplayName *string `json:"displayName,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Timezone    string  `json:"timezone"`
}

// UserPreferences holds per-user UI settings. Every field has a default.
type UserPreferences struct {
	Language      string `json:"language"`
	Theme         Theme  `json:"theme"`
	Notifications bool   `json:"notifications"`
	AutoSave      bool   `json:"autoSave"`
}

// User is a stored account.
type User struct {
	ID           string          `json:"id"`
	Email        *string         `json:"email,omitempty"`
	Username     string          `json:"username"`
	Role         UserRole        `json:"role"`
	Profile      *UserProfile    `json:"profile,omitempty"`
	Preferences  UserPreferences `json:"preferences"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	LastActiveAt *time.Time      `json:"lastActiveAt,omitempty"`
	IsActive     bool            `json:"isActive"`
}

// CreateUser is User without server-assigned fields.
type CreateUser struct {
	Email       *string         `json:"email,omitempty"`
	Username    string          `json:"username"`
	Role        UserRole        `json:"role"`
	Profile     *UserProfile    `json:"profile,omitempty"`
	Preferences UserPreferences `json:"preferences"`
	IsActive    bool            `json:"isActive"`
}

// UpdateUser carries only the fields a client sent.
type UpdateUser struct {
	Email        *string          `json:"email,omitempty"`
	Username     *string          `json:"username,omitempty"`
	Role         *UserRole        `json:"role,omitempty"`
	Profile      *UserProfile     `json:"profile,omitempty"`
	Preferences  *UserPreferences `json:"preferences,omitempty"`
	UpdatedAt    *time.Time       `json:"updatedAt,omitempty"`
	LastActiveAt *time.Time       `json:"lastActiveAt,omitempty"`
	IsActive     *bool            `json:"isActive,omitempty"`
}

// Schemas for the user enums and nested blocks.
var (
	UserRoleSchema = dsl.Enum(UserRoleUser, UserRoleAssistant, UserRoleSystem)
	ThemeSchema    = dsl.Enum(ThemeLight, ThemeDark, ThemeAuto)

	UserProfileSchema     = dsl.MustBind[UserProfile](userProfileFields())
	UserPreferencesSchema = dsl.MustBind[UserPreferences](userPreferencesFields())
)

func userProfileFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("displayName", dsl.String()).
		Field("avatar", dsl.String().URL()).
		Field("bio", dsl.String()).
		Field("timezone", dsl.String()).Default(DefaultTimezone)
}

func userPreferencesFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("language", dsl.String()).Default("vi").
		Field("theme", ThemeSchema).Default(ThemeAuto).
		Field("notifications", dsl.Bool()).Default(true).
		Field("autoSave", dsl.Bool()).Default(true)
}

func userFields() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("id", dsl.String().UUID()).Required().
		Field("email", dsl.String().Email()).
		Field("username", dsl.String().NonEmpty()).Required().
		Field("role", UserRoleSchema).Default(UserRoleUser).
		Field("profile", dsl.SchemaOf(UserProfileSchema)).
		Field("preferences", dsl.SchemaOf(UserPreferencesSchema)).Default(map[string]any{}).
		Field("createdAt", dsl.Time()).Required().
		Field("updatedAt", dsl.Time()).Required().
		Field("lastActiveAt", dsl.Time()).
		Field("isActive", dsl.Bool()).Default(true)
}

// Schemas for User. The Create variant drops the server-assigned fields;
// the Update variant makes every field optional and applies no defaults.
var (
	UserSchema       = dsl.MustBind[User](userFields())
	CreateUserSchema = dsl.MustBind[CreateUser](userFields().Omit("id", "createdAt", "updatedAt", "lastActiveAt"))
	UpdateUserSchema = dsl.MustBind[UpdateUser](userFields().Omit("id", "createdAt").Partial())
)
