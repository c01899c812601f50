package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

// Value kinds. The zero Kind marks an unset Value.
const (
	KindInvalid Kind = iota
	KindInteger
	KindText
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a tagged union over an integer, a text, or an object mapping text
// keys to child Values. An object exclusively owns its children: constructors
// and accessors copy the field map, so a Value tree cannot contain cycles or
// shared mutable nodes.
type Value struct {
	kind   Kind
	num    int64
	text   string
	fields map[string]Value
}

// Int returns an integer Value.
func Int(n int64) Value {
	return Value{kind: KindInteger, num: n}
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Object returns an object Value holding a copy of fields.
func Object(fields map[string]Value) Value {
	return Value{kind: KindObject, fields: maps.Clone(orEmpty(fields))}
}

func orEmpty(m map[string]Value) map[string]Value {
	if m == nil {
		return map[string]Value{}
	}
	return m
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// AsInt returns the integer held by v. ok is false for other kinds.
func (v Value) AsInt() (n int64, ok bool) {
	return v.num, v.kind == KindInteger
}

// AsText returns the text held by v. ok is false for other kinds.
func (v Value) AsText() (s string, ok bool) {
	return v.text, v.kind == KindText
}

// Fields returns a copy of the object's fields, or nil if v is not an object.
func (v Value) Fields() map[string]Value {
	if v.kind != KindObject {
		return nil
	}
	return maps.Clone(v.fields)
}

// Keys returns the object's keys in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	var keys []string
	for k := range v.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Field returns the child stored under key.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	child, ok := v.fields[key]
	return child, ok
}

// String renders v for debugging. Object keys are sorted so the output is
// deterministic.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindText:
		return strconv.Quote(v.text)
	case KindObject:
		var b strings.Builder
		b.WriteString("{")
		for i, k := range v.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(v.fields[k].String())
		}
		b.WriteString("}")
		return b.String()
	default:
		return "none"
	}
}

// ParseJSON decodes a single JSON document into a Value.
func ParseJSON(data []byte) (Value, error) {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return Value{}, err
	}
	return v, nil
}

// MarshalJSON encodes integers as JSON numbers, text as strings and objects
// as JSON objects.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInteger:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	case KindObject:
		return json.Marshal(v.fields)
	default:
		return nil, fmt.Errorf("marshal %s value: %w", v.kind, ErrUnsupportedValue)
	}
}

// UnmarshalJSON decodes integers, strings and objects. Fractional numbers,
// booleans, arrays and null return ErrUnsupportedValue.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	decoded, err := fromJSON(raw, "")
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// fromJSON converts a decoded JSON tree into a Value. path names the
// position of raw for error messages.
func fromJSON(raw any, path string) (Value, error) {
	switch x := raw.(type) {
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return Value{}, fmt.Errorf("%s: number %s: %w", pathOrRoot(path), x, ErrUnsupportedValue)
		}
		return Int(n), nil
	case string:
		return Text(x), nil
	case map[string]any:
		fields := make(map[string]Value, len(x))
		for k, child := range x {
			cv, err := fromJSON(child, joinPath(path, k))
			if err != nil {
				return Value{}, err
			}
			fields[k] = cv
		}
		return Value{kind: KindObject, fields: fields}, nil
	default:
		return Value{}, fmt.Errorf("%s: %s: %w", pathOrRoot(path), jsonKind(raw), ErrUnsupportedValue)
	}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func pathOrRoot(path string) string {
	if path == "" {
		return "$"
	}
	return path
}

func jsonKind(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
