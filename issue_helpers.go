package share

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/emlinh-ai/emlinh-ai-share/i18n"
)

// NewIssue builds an Issue at path with a translated message. received is
// rendered with Describe.
func NewIssue(path, code, expected string, received any) Issue {
	rec := Describe(received)
	return Issue{
		Path:     path,
		Code:     code,
		Message:  i18n.T(code, map[string]string{"expected": expected, "received": rec}),
		Expected: expected,
		Received: rec,
	}
}

// RebaseIssues converts err into Issues whose paths are prefixed with base
// (a JSON Pointer such as "/metadata"). Non-Issues errors become a single
// parse_error at base.
func RebaseIssues(base string, err error) Issues {
	if err == nil {
		return nil
	}
	child, ok := AsIssues(err)
	if !ok {
		return Issues{Issue{Path: base, Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		if p == "" {
			p = "/"
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

// EscapePointer escapes a key for use as a JSON Pointer segment.
func EscapePointer(key string) string {
	return strings.ReplaceAll(strings.ReplaceAll(key, "~", "~0"), "/", "~1")
}

type missing struct{}

// Missing stands for an absent key when describing received input.
var Missing any = missing{}

// Describe renders a short description of an input value for Issue.Received.
func Describe(v any) string {
	switch t := v.(type) {
	case missing:
		return "undefined"
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", t)
	case bool:
		return fmt.Sprintf("boolean %t", t)
	case json.Number:
		return "number " + t.String()
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("number %v", t)
	case time.Time:
		return "date " + t.UTC().Format(time.RFC3339Nano)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
