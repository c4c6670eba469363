// FILE: src/internal/format/format.go
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hostlog/src/internal/payload"
)

// Joined scalar lines longer than this render as a multi-line block.
const inlineThreshold = 75

var (
	// ErrEmptySequence reports a sequence with no elements, which has
	// no first element to classify.
	ErrEmptySequence = errors.New("empty sequence")

	// ErrMixedSequence reports a scalar sequence containing a nested
	// mapping or sequence element.
	ErrMixedSequence = errors.New("mixed sequence")
)

// Render turns one result payload into display text. It is pure: the
// same value and whitelist always produce the same text.
//
// Mappings serialize as indented, key-sorted structured text, reduced
// to the whitelisted keys when whitelist is non-empty. A sequence is
// classified by its first element: sequences of mappings have their
// known verbose fields re-rendered in place before serialization,
// sequences of scalars are flattened on embedded newlines and joined
// inline or as a block depending on total length. Scalars render as
// canonical text.
func Render(v payload.Value, whitelist []string) (string, error) {
	switch v.Kind() {
	case payload.KindMapping:
		return renderMapping(v, whitelist)
	case payload.KindSequence:
		elems := v.SeqValue()
		if len(elems) == 0 {
			return "", ErrEmptySequence
		}
		// First element decides how the whole sequence is treated.
		if elems[0].Kind() == payload.KindMapping {
			return renderSubResults(elems, whitelist)
		}
		return renderScalarList(elems)
	default:
		return v.ScalarText(), nil
	}
}

func renderMapping(v payload.Value, whitelist []string) (string, error) {
	m := v.MapValue()
	if len(whitelist) > 0 {
		allowed := make(map[string]bool, len(whitelist))
		for _, k := range whitelist {
			allowed[k] = true
		}
		filtered := make(map[string]payload.Value, len(m))
		for k, elem := range m {
			if allowed[k] {
				filtered[k] = elem
			}
		}
		return marshalIndented(payload.Map(filtered))
	}
	return marshalIndented(v)
}

// renderSubResults handles sequences of nested sub-results, usually
// produced by iteration constructs. Known verbose fields of each
// mapping element are replaced with their own rendered text before the
// sequence is serialized. Non-mapping elements pass through untouched.
func renderSubResults(elems []payload.Value, whitelist []string) (string, error) {
	out := make([]payload.Value, 0, len(elems))
	for _, elem := range elems {
		if elem.Kind() != payload.KindMapping {
			out = append(out, elem)
			continue
		}
		src := elem.MapValue()
		copied := make(map[string]payload.Value, len(src))
		for k, fv := range src {
			copied[k] = fv
		}
		for _, field := range payload.VerboseFields {
			fv, ok := copied[field]
			if !ok {
				continue
			}
			text, err := Render(fv, whitelist)
			if err != nil {
				return "", fmt.Errorf("field %q: %w", field, err)
			}
			copied[field] = payload.String(text)
		}
		out = append(out, payload.Map(copied))
	}
	return marshalIndented(payload.Seq(out))
}

// renderScalarList flattens scalar elements on embedded newlines, then
// joins them inline when short and as a newline-led block when the
// joined length exceeds the threshold.
func renderScalarList(elems []payload.Value) (string, error) {
	var lines []string
	for _, elem := range elems {
		if elem.Kind() != payload.KindScalar {
			return "", fmt.Errorf("%s element in scalar sequence: %w", elem.Kind(), ErrMixedSequence)
		}
		text := elem.ScalarText()
		if strings.Contains(text, "\n") {
			lines = append(lines, strings.Split(text, "\n")...)
		} else {
			lines = append(lines, text)
		}
	}

	if len(strings.Join(lines, "")) > inlineThreshold {
		return "\n" + strings.Join(lines, "\n"), nil
	}
	return strings.Join(lines, " "), nil
}

// marshalIndented serializes through encoding/json, which emits map
// keys in sorted order.
func marshalIndented(v payload.Value) (string, error) {
	data, err := json.MarshalIndent(v.ToAny(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize payload: %w", err)
	}
	return string(data), nil
}
