// Package cborsrc decodes CBOR documents into the wire tree consumed by
// Schema.Parse, and encodes parsed values back to CBOR.
package cborsrc

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	share "github.com/emlinh-ai/emlinh-ai-share"
)

var (
	encMode cbor.EncMode
	// decMode keeps the last value of a duplicated map key.
	decMode cbor.DecMode
	// strictDecMode rejects duplicated map keys.
	strictDecMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("cborsrc: CBOR encoder initialization failed: " + err.Error())
	}

	decOptions := cbor.DecOptions{
		// Any-typed targets must come out as map[string]any, the same
		// shape decoded JSON has.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		DupMapKey:      cbor.DupMapKeyQuiet,
	}
	decMode, err = decOptions.DecMode()
	if err != nil {
		panic("cborsrc: CBOR decoder initialization failed: " + err.Error())
	}
	decOptions.DupMapKey = cbor.DupMapKeyEnforcedAPF
	strictDecMode, err = decOptions.DecMode()
	if err != nil {
		panic("cborsrc: CBOR decoder initialization failed: " + err.Error())
	}
}

// Reader wraps an io.Reader as a CBOR Source.
func Reader(r io.Reader) share.Source { return &source{r: r} }

// Bytes wraps a byte slice as a CBOR Source.
func Bytes(b []byte) share.Source { return &source{data: b} }

// Marshal encodes v with Core Deterministic Encoding. Typed values are
// projected to their wire form first so field names follow the json tags.
func Marshal(v any) ([]byte, error) {
	w, err := share.ToWire(v)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(w)
}

type source struct {
	r        io.Reader
	data     []byte
	warnings share.Issues
}

func (s *source) Name() string { return "cbor" }

// Warnings returns the duplicate key found by the last Decode under
// Strictness Warn. The decoder stops at the first one.
func (s *source) Warnings() share.Issues { return s.warnings }

// Decode reads exactly one CBOR data item. Trailing bytes are a parse
// error; duplicated map keys are reported when the parse options ask for
// it.
func (s *source) Decode(opt share.ParseOpt) (any, error) {
	s.warnings = nil
	data, err := share.ReadLimited(s.r, s.data, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, parseError(errors.New("empty document"))
	}
	sev := opt.Strictness.OnDuplicateKey
	dm := decMode
	if sev == share.Error || sev == share.Warn {
		dm = strictDecMode
	}
	var v any
	err = dm.Unmarshal(data, &v)
	var dup *cbor.DupMapKeyError
	if errors.As(err, &dup) && sev == share.Warn {
		s.warnings = share.Issues{duplicateKey(dup, err)}
		v = nil
		err = decMode.Unmarshal(data, &v)
	}
	if err != nil {
		if errors.As(err, &dup) {
			return nil, share.Issues{duplicateKey(dup, err)}
		}
		return nil, parseError(err)
	}
	return v, nil
}

// duplicateKey reports the key at the root: the decoder does not expose
// the enclosing map.
func duplicateKey(dup *cbor.DupMapKeyError, err error) share.Issue {
	it := share.NewIssue("/", share.CodeDuplicateKey, "unique keys", fmt.Sprint(dup.Key))
	it.Params = map[string]any{"key": fmt.Sprint(dup.Key)}
	it.Cause = err
	return it
}

func parseError(err error) share.Issues {
	return share.Issues{share.Issue{Path: "/", Code: share.CodeParseError, Message: err.Error(), Cause: err}}
}
