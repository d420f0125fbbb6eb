package apiclient

import (
	"bytes"
	"encoding/json"

	"github.com/go-faster/errors"
)

// PayloadKind tags the shape of a list response body
type PayloadKind int

const (
	// KindOther is any valid JSON that is neither an array nor an object with an items array.
	KindOther PayloadKind = iota
	// KindArray is a bare JSON array.
	KindArray
	// KindItems is an object whose items field is an array.
	KindItems
)

func (k PayloadKind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindItems:
		return "items"
	default:
		return "other"
	}
}

// Payload is a list response body reduced to its elements
type Payload struct {
	Kind     PayloadKind
	Elements []json.RawMessage
}

// Len returns the number of normalized elements
func (p Payload) Len() int { return len(p.Elements) }

// ParsePayload normalizes a list response body. A bare array is used as is,
// an object with an items array yields the items, and anything else yields
// no elements. Only malformed JSON is an error.
func ParsePayload(body []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return Payload{}, errors.New("response body is not valid JSON")
	}

	switch trimmed[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return Payload{}, errors.Wrap(err, "decode array payload")
		}
		return Payload{Kind: KindArray, Elements: elems}, nil
	case '{':
		var envelope struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return Payload{}, errors.Wrap(err, "decode object payload")
		}
		items := bytes.TrimSpace(envelope.Items)
		if len(items) == 0 || items[0] != '[' {
			return Payload{Kind: KindOther}, nil
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(items, &elems); err != nil {
			return Payload{}, errors.Wrap(err, "decode items payload")
		}
		return Payload{Kind: KindItems, Elements: elems}, nil
	default:
		return Payload{Kind: KindOther}, nil
	}
}

// Decode unmarshals every element of p into T, preserving order
func Decode[T any](p Payload) ([]T, error) {
	out := make([]T, 0, len(p.Elements))
	for i, raw := range p.Elements {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.Wrapf(err, "decode element %d", i)
		}
		out = append(out, v)
	}
	return out, nil
}
