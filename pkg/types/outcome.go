package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Rejection reasons produced by the built-in rules.
const (
	ReasonZero        = "Can't be 0"
	ReasonDog         = "Can't be a dog"
	ReasonNotNumeric  = "Can't parse this string"
	ReasonUnsupported = "Can't parse this type"
	ReasonNoParser    = "No associated callback parser function"
)

// Outcome is the tagged result of validating a value of type T.
// An accepted Outcome holds the value and no reason; a rejected one holds a
// reason and no value. The fields are unexported so that no other shape can
// be built.
type Outcome[T any] struct {
	accepted bool
	value    T
	reason   string
}

// Accept returns an accepted Outcome that owns v.
func Accept[T any](v T) Outcome[T] {
	return Outcome[T]{accepted: true, value: v}
}

// Reject returns a rejected Outcome carrying reason.
func Reject[T any](reason string) Outcome[T] {
	return Outcome[T]{reason: reason}
}

// Unsupported is the catch-all rejection for inputs no rule knows how to parse.
func Unsupported[T any]() Outcome[T] {
	return Reject[T](ReasonUnsupported)
}

// NoParser is the rejection reported for an object field that has no parser.
func NoParser[T any]() Outcome[T] {
	return Reject[T](ReasonNoParser)
}

// Accepted reports whether validation succeeded.
func (o Outcome[T]) Accepted() bool {
	return o.accepted
}

// Value returns the accepted value. The second result is false for a
// rejected Outcome, in which case the value is the zero T.
func (o Outcome[T]) Value() (T, bool) {
	if !o.accepted {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Reason returns the rejection reason. The second result is false for an
// accepted Outcome.
func (o Outcome[T]) Reason() (string, bool) {
	if o.accepted {
		return "", false
	}
	return o.reason, true
}

// String renders the Outcome in its debug form:
//
//	ValidationOutcome { accepted: true, value: 1, reason: none }
func (o Outcome[T]) String() string {
	value, reason := "none", "none"
	if o.accepted {
		value = formatValue(o.value)
	} else {
		reason = strconv.Quote(o.reason)
	}
	return fmt.Sprintf("ValidationOutcome { accepted: %t, value: %s, reason: %s }", o.accepted, value, reason)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// outcomeJSON is the wire shape of an Outcome.
type outcomeJSON[T any] struct {
	Accepted bool    `json:"accepted"`
	Value    *T      `json:"value,omitempty"`
	Reason   *string `json:"reason,omitempty"`
}

// MarshalJSON encodes the Outcome as {"accepted":true,"value":...} or
// {"accepted":false,"reason":"..."}.
func (o Outcome[T]) MarshalJSON() ([]byte, error) {
	wire := outcomeJSON[T]{Accepted: o.accepted}
	if o.accepted {
		wire.Value = &o.value
	} else {
		wire.Reason = &o.reason
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the wire shape produced by MarshalJSON. It returns
// ErrMalformedOutcome unless exactly one of value and reason matches the
// accepted flag.
func (o *Outcome[T]) UnmarshalJSON(data []byte) error {
	var wire outcomeJSON[T]
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch {
	case wire.Accepted && wire.Value != nil && wire.Reason == nil:
		*o = Accept(*wire.Value)
	case !wire.Accepted && wire.Reason != nil && wire.Value == nil:
		*o = Reject[T](*wire.Reason)
	default:
		return ErrMalformedOutcome
	}
	return nil
}
