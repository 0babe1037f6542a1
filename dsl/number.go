package dsl

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"

	share "github.com/emlinh-ai/emlinh-ai-share"
	js "github.com/emlinh-ai/emlinh-ai-share/jsonschema"
)

// Number is the set of Go types a NumberSchema can produce.
type Number interface {
	~int | ~int64 | ~float64
}

// Int returns an integer schema. Non-integral numbers are invalid_type.
func Int() NumberSchema[int] { return NumberSchema[int]{} }

// Float returns a float64 schema.
func Float() NumberSchema[float64] { return NumberSchema[float64]{} }

// IntOf returns an integer schema projected to domain type T.
func IntOf[T ~int]() NumberSchema[T] { return NumberSchema[T]{} }

// FloatOf returns a float schema projected to domain type T.
func FloatOf[T ~float64]() NumberSchema[T] { return NumberSchema[T]{} }

// NumberSchema validates JSON numbers with inclusive Min/Max bounds and an
// optional exclusive zero bound (Positive).
type NumberSchema[T Number] struct {
	min      *float64
	max      *float64
	positive bool
}

// Min sets an inclusive lower bound.
func (n NumberSchema[T]) Min(v float64) NumberSchema[T] { n.min = &v; return n }

// Max sets an inclusive upper bound.
func (n NumberSchema[T]) Max(v float64) NumberSchema[T] { n.max = &v; return n }

// Positive requires a value strictly greater than zero.
func (n NumberSchema[T]) Positive() NumberSchema[T] { n.positive = true; return n }

func (n NumberSchema[T]) integral() bool {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Int, reflect.Int64:
		return true
	}
	return false
}

func (n NumberSchema[T]) typeName() string {
	if n.integral() {
		return "integer"
	}
	return "number"
}

func (n NumberSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	in, err := wireInput(v)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(in)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || (n.integral() && f != math.Trunc(f)) {
		return 0, share.Issues{share.NewIssue("/", share.CodeInvalidType, n.typeName(), v)}
	}
	var whole int64
	if n.integral() {
		i, it := n.toInt(in, f)
		if it != nil {
			return 0, share.Issues{*it}
		}
		whole = i
	}
	var iss share.Issues
	if n.positive && f <= 0 {
		it := share.NewIssue("/", share.CodeTooSmall, "> 0", in)
		it.Params = map[string]any{"minimum": 0, "inclusive": false}
		iss = share.AppendIssues(iss, it)
	}
	if n.min != nil && f < *n.min {
		it := share.NewIssue("/", share.CodeTooSmall, ">= "+formatFloat(*n.min), in)
		it.Params = map[string]any{"minimum": *n.min, "inclusive": true}
		iss = share.AppendIssues(iss, it)
	}
	if n.max != nil && f > *n.max {
		it := share.NewIssue("/", share.CodeTooBig, "<= "+formatFloat(*n.max), in)
		it.Params = map[string]any{"maximum": *n.max, "inclusive": true}
		iss = share.AppendIssues(iss, it)
	}
	if len(iss) > 0 {
		return 0, iss
	}
	if n.integral() {
		return T(whole), nil
	}
	return T(f), nil
}

// intRange returns the inclusive bounds of T.
func (n NumberSchema[T]) intRange() (int64, int64) {
	var zero T
	bits := reflect.TypeOf(zero).Bits()
	return -1 << (bits - 1), 1<<(bits-1) - 1
}

// toInt converts an integral input to int64, rejecting values T cannot
// hold. f is the float reading of in.
func (n NumberSchema[T]) toInt(in any, f float64) (int64, *share.Issue) {
	lo, hi := n.intRange()
	i, exact := exactInt(in)
	below := exact && i < lo || !exact && f < float64(lo)
	above := exact && i > hi || !exact && f >= -float64(lo)
	if num, ok := in.(json.Number); ok && !exact {
		// An integer literal past int64 may round onto the bound as float64.
		if _, err := strconv.ParseInt(string(num), 10, 64); errors.Is(err, strconv.ErrRange) {
			below, above = f < 0, f > 0
		}
	}
	switch {
	case below:
		it := share.NewIssue("/", share.CodeTooSmall, ">= "+strconv.FormatInt(lo, 10), in)
		it.Params = map[string]any{"minimum": lo, "inclusive": true}
		return 0, &it
	case above:
		it := share.NewIssue("/", share.CodeTooBig, "<= "+strconv.FormatInt(hi, 10), in)
		it.Params = map[string]any{"maximum": hi, "inclusive": true}
		return 0, &it
	case exact:
		return i, nil
	}
	return int64(f), nil
}

// exactInt reads integer inputs without going through float64.
func exactInt(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		i, err := t.Int64()
		return i, err == nil
	case int, int8, int16, int32, int64:
		return reflect.ValueOf(t).Int(), true
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(t).Uint()
		return int64(u), u <= math.MaxInt64
	}
	return 0, false
}

func (n NumberSchema[T]) ParseWithMeta(ctx context.Context, v any) (share.Decoded[T], error) {
	t, err := n.Parse(ctx, v)
	return share.Decoded[T]{Value: t}, err
}

func (n NumberSchema[T]) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: n.typeName()}
	if n.min != nil {
		s.Minimum = jsPtrFloat(*n.min)
	}
	if n.max != nil {
		s.Maximum = jsPtrFloat(*n.max)
	}
	if n.positive {
		s.ExclusiveMinimum = jsPtrFloat(0)
	}
	return s, nil
}

func (n NumberSchema[T]) adapter() AnyAdapter { return anyAdapterFromSchema[T](n) }

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(t).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(t).Uint()), true
	}
	return 0, false
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
