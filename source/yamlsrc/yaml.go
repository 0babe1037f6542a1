// Package yamlsrc decodes YAML documents into the wire tree consumed by
// Schema.Parse. Mapping keys are rendered as strings so the result has the
// same shape as decoded JSON.
package yamlsrc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	share "github.com/emlinh-ai/emlinh-ai-share"
)

// Reader wraps an io.Reader as a YAML Source.
func Reader(r io.Reader) share.Source { return &source{r: r} }

// Bytes wraps a byte slice as a YAML Source.
func Bytes(b []byte) share.Source { return &source{data: b} }

type source struct {
	r    io.Reader
	data []byte
}

func (s *source) Name() string { return "yaml" }

// Decode reads exactly one YAML document. Duplicate mapping keys are always
// rejected by the YAML decoder and surface as parse_error.
func (s *source) Decode(opt share.ParseOpt) (any, error) {
	data, err := share.ReadLimited(s.r, s.data, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return nil, parseError(err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, parseError(errors.New("unexpected document after the first one"))
	}
	return normalize(v), nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	}
	return v
}

func parseError(err error) share.Issues {
	return share.Issues{share.Issue{Path: "/", Code: share.CodeParseError, Message: err.Error(), Cause: err}}
}
