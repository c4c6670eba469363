// FILE: src/internal/payload/payload.go
package payload

import (
	"fmt"
	"sort"
	"strconv"
)

// Marker keys recognized on result mappings.
const (
	// NoLogKey suppresses logging of the whole result when set to true.
	NoLogKey = "_no_log"

	// VerboseOverrideKey replaces the rendered body with a redaction placeholder.
	VerboseOverrideKey = "_verbose_override"

	// InvocationKey holds the arguments the task was invoked with.
	InvocationKey = "invocation"
)

// VerboseFields are re-rendered in place when they appear inside the
// elements of a sequence of sub-results.
var VerboseFields = []string{
	"cmd",
	"command",
	"start",
	"end",
	"delta",
	"msg",
	"stdout",
	"stderr",
	"results",
}

// Kind discriminates the closed set of payload shapes.
type Kind uint8

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is one node of a result payload: a scalar, a mapping of string
// keys to values, or an ordered sequence of values. The zero Value is
// the null scalar.
type Value struct {
	kind     Kind
	scalar   any // string, bool, int64, float64, or nil
	mapping  map[string]Value
	sequence []Value
}

func String(s string) Value        { return Value{kind: KindScalar, scalar: s} }
func Bool(b bool) Value            { return Value{kind: KindScalar, scalar: b} }
func Int(i int64) Value            { return Value{kind: KindScalar, scalar: i} }
func Number(f float64) Value       { return Value{kind: KindScalar, scalar: f} }
func Null() Value                  { return Value{kind: KindScalar, scalar: nil} }
func Map(m map[string]Value) Value { return Value{kind: KindMapping, mapping: m} }
func List(elems ...Value) Value    { return Value{kind: KindSequence, sequence: elems} }
func Seq(elems []Value) Value      { return Value{kind: KindSequence, sequence: elems} }

// FromAny converts a value decoded from JSON (map[string]any, []any,
// string, float64, bool, nil) into a Value. Unrecognized types collapse
// to their fmt representation, so a caller never gets an invalid node.
func FromAny(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case int:
		return Int(int64(val))
	case int64:
		return Int(val)
	case map[string]any:
		m := make(map[string]Value, len(val))
		for k, elem := range val {
			m[k] = FromAny(elem)
		}
		return Map(m)
	case []any:
		s := make([]Value, 0, len(val))
		for _, elem := range val {
			s = append(s, FromAny(elem))
		}
		return Seq(s)
	case Value:
		return val
	default:
		return String(fmt.Sprint(val))
	}
}

func (v Value) Kind() Kind { return v.kind }

// MapValue returns the underlying mapping, nil for non-mappings.
func (v Value) MapValue() map[string]Value {
	if v.kind != KindMapping {
		return nil
	}
	return v.mapping
}

// SeqValue returns the underlying sequence, nil for non-sequences.
func (v Value) SeqValue() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.sequence
}

// ScalarText returns the canonical text form of a scalar node.
// Non-scalar nodes return their fmt representation of ToAny.
func (v Value) ScalarText() string {
	if v.kind != KindScalar {
		return fmt.Sprint(v.ToAny())
	}
	switch s := v.scalar.(type) {
	case nil:
		return "null"
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

// ToAny converts the Value back into plain Go values suitable for
// encoding/json, which serializes map keys in sorted order.
func (v Value) ToAny() any {
	switch v.kind {
	case KindMapping:
		m := make(map[string]any, len(v.mapping))
		for k, elem := range v.mapping {
			m[k] = elem.ToAny()
		}
		return m
	case KindSequence:
		s := make([]any, 0, len(v.sequence))
		for _, elem := range v.sequence {
			s = append(s, elem.ToAny())
		}
		return s
	default:
		return v.scalar
	}
}

// Keys returns the mapping's keys in sorted order, nil for non-mappings.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(v.mapping))
	for k := range v.mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
