package share

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	j "github.com/goccy/go-json"
)

// Source yields one input document as a tree of map[string]any, []any and
// scalars, ready for Schema.Parse.
type Source interface {
	Decode(opt ParseOpt) (any, error)
	Name() string
}

// WarningReporter is implemented by Sources that can report non-fatal
// findings, such as duplicate keys under Strictness Warn, from their last
// Decode.
type WarningReporter interface {
	Warnings() Issues
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The
// default implementation is based on goccy/go-json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source { return &jsonSource{r: r} }
func (defaultJSONDriver) NewBytes(b []byte) Source     { return &jsonSource{data: b} }
func (defaultJSONDriver) Name() string                 { return "go-json" }

type jsonSource struct {
	r        io.Reader
	data     []byte
	warnings Issues
}

func (s *jsonSource) Name() string { return "json" }

// Warnings returns the duplicate keys found by the last Decode under
// Strictness Warn.
func (s *jsonSource) Warnings() Issues { return s.warnings }

func (s *jsonSource) Decode(opt ParseOpt) (any, error) {
	s.warnings = nil
	data, err := ReadLimited(s.r, s.data, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	switch sev := opt.Strictness.OnDuplicateKey; sev {
	case Error, Warn:
		max := 0
		if opt.FailFast && sev == Error {
			max = 1
		}
		dups, err := DetectJSONDuplicateKeys(data, max)
		if err != nil {
			return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
		}
		if len(dups) > 0 {
			if sev == Error {
				return nil, dups
			}
			s.warnings = dups
		}
	}
	return DecodeJSON(data)
}

// DecodeJSON decodes a single JSON document into an any tree with numbers
// kept as json.Number. Trailing data is a parse error.
func DecodeJSON(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	if dec.More() {
		err := fmt.Errorf("unexpected data after top-level value")
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return v, nil
}

// ReadLimited returns data, or reads r fully, enforcing maxBytes when it is
// positive. Exceeding the limit yields a truncated issue.
func ReadLimited(r io.Reader, data []byte, maxBytes int64) ([]byte, error) {
	if r == nil {
		if maxBytes > 0 && int64(len(data)) > maxBytes {
			return nil, truncated(maxBytes)
		}
		return data, nil
	}
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	if maxBytes > 0 && int64(len(out)) > maxBytes {
		return nil, truncated(maxBytes)
	}
	return out, nil
}

// ValueSource wraps an already-decoded value as a Source.
func ValueSource(v any) Source { return valueSource{v: v} }

type valueSource struct{ v any }

func (s valueSource) Decode(ParseOpt) (any, error) { return s.v, nil }
func (valueSource) Name() string                   { return "value" }

func truncated(maxBytes int64) Issues {
	it := NewIssue("/", CodeTruncated, fmt.Sprintf("at most %d bytes", maxBytes), nil)
	it.Received = fmt.Sprintf("more than %d bytes", maxBytes)
	return Issues{it}
}
