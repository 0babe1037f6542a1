package share

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Issue codes
const (
	CodeInvalidType         = "invalid_type"
	CodeRequired            = "required"
	CodeInvalidEnumValue    = "invalid_enum_value"
	CodeInvalidFormat       = "invalid_format"
	CodeTooSmall            = "too_small"
	CodeTooBig              = "too_big"
	CodeUnrecognizedVariant = "unrecognized_variant"
	CodeUnknownKey          = "unknown_key"
	CodeDuplicateKey        = "duplicate_key"
	CodeParseError          = "parse_error"
	CodeTruncated           = "truncated"
)

// Issue represents a single violation.
type Issue struct {
	Path    string // JSON Pointer (for example: /metadata/mentions/0).
	Code    string // One of the codes listed above.
	Message string
	// Expected describes the constraint that was not met, e.g. "uuid" or
	// "one of user|assistant|system".
	Expected string
	// Received describes the offending input, e.g. `string "admin"`.
	Received string
	Hint     string // Optional remediation hint.
	Cause    error  // Optional underlying error.
	// Params carries structured parameters (e.g. {"min":0, "inclusive":true})
	// for i18n and observability.
	Params map[string]any
}

// Dotted renders Path in dotted/indexed form: /metadata/mentions/0 becomes
// metadata.mentions[0]. The root renders as the empty string.
func (it Issue) Dotted() string {
	if it.Path == "" || it.Path == "/" {
		return ""
	}
	b := &strings.Builder{}
	for _, seg := range strings.Split(strings.TrimPrefix(it.Path, "/"), "/") {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		if _, err := strconv.Atoi(seg); err == nil {
			fmt.Fprintf(b, "[%s]", seg)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Issues is the validation error: an ordered collection of every violation
// found in one parse.
type Issues []Issue

// ValidationError names the single error kind returned by Parse.
type ValidationError = Issues

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Codes returns the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Code
	}
	return out
}

// At returns the issues whose path equals p.
func (iss Issues) At(p string) Issues {
	var out Issues
	for _, it := range iss {
		if it.Path == p {
			out = append(out, it)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
