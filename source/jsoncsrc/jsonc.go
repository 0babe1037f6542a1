// Package jsoncsrc reads JSON with comments and trailing commas, the format
// used for hand-written fixtures and configuration files.
package jsoncsrc

import (
	"io"

	"github.com/tidwall/jsonc"

	share "github.com/emlinh-ai/emlinh-ai-share"
)

// Reader wraps an io.Reader as a JSONC Source.
func Reader(r io.Reader) share.Source { return &source{r: r} }

// Bytes wraps a byte slice as a JSONC Source.
func Bytes(b []byte) share.Source { return &source{data: b} }

type source struct {
	r     io.Reader
	data  []byte
	inner share.Source
}

func (s *source) Name() string { return "jsonc" }

// Warnings forwards the duplicate keys reported by the JSON driver.
func (s *source) Warnings() share.Issues {
	if wr, ok := s.inner.(share.WarningReporter); ok {
		return wr.Warnings()
	}
	return nil
}

// Decode strips comments and trailing commas, then decodes the result with
// the active JSON driver. Byte offsets are preserved by the stripping, so
// duplicate-key detection and size limits see the original layout.
func (s *source) Decode(opt share.ParseOpt) (any, error) {
	s.inner = nil
	data, err := share.ReadLimited(s.r, s.data, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	opt.MaxBytes = 0
	s.inner = share.JSONBytes(jsonc.ToJSON(data))
	return s.inner.Decode(opt)
}
