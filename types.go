package share

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys.
	UnknownStrict                           // Reject unknown keys with an error.
	UnknownPassthrough                      // Preserve unknown keys under a target field.
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	// OnDuplicateKey selects how repeated object keys are handled. Ignore
	// keeps the last value, Warn keeps it and reports the duplicates in
	// Decoded.Warnings, Error fails the parse with duplicate_key.
	OnDuplicateKey Severity
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// PresenceOpt configures presence collection for WithMeta-style parsing.
type PresenceOpt struct {
	Collect bool
	Include []string
	Exclude []string
}

// PathRenderOpt controls how paths are rendered into strings.
type PathRenderOpt struct {
	Intern bool
}

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Strictness Strictness
	MaxBytes   int64
	Presence   PresenceOpt
	PathRender PathRenderOpt
	FailFast   bool
}
