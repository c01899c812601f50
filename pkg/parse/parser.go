package parse

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/typeparse/pkg/types"
)

// Parser validates a dynamically typed value.
type Parser func(types.Value) Result

// Schema assigns a Parser to each object key.
type Schema map[string]Parser

// Result is either a leaf outcome or, for object parsers, one Result per
// input key.
type Result struct {
	outcome types.Outcome[types.Value]
	fields  map[string]Result
}

// Leaf wraps a single outcome.
func Leaf(o types.Outcome[types.Value]) Result {
	return Result{outcome: o}
}

// Fields builds an object Result. A nil map yields an empty object.
func Fields(fields map[string]Result) Result {
	if fields == nil {
		fields = map[string]Result{}
	}
	return Result{fields: maps.Clone(fields)}
}

// IsObject reports whether r holds per-key results rather than an outcome.
func (r Result) IsObject() bool {
	return r.fields != nil
}

// Outcome returns the leaf outcome. ok is false for object results.
func (r Result) Outcome() (o types.Outcome[types.Value], ok bool) {
	return r.outcome, r.fields == nil
}

// Field returns the result for key in an object result.
func (r Result) Field(key string) (Result, bool) {
	child, ok := r.fields[key]
	return child, ok
}

// Keys returns the keys of an object result in sorted order.
func (r Result) Keys() []string {
	var keys []string
	for k := range r.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Accepted reports whether every leaf in r was accepted. An empty object
// result is accepted.
func (r Result) Accepted() bool {
	if r.fields == nil {
		return r.outcome.Accepted()
	}
	for _, child := range r.fields {
		if !child.Accepted() {
			return false
		}
	}
	return true
}

// String renders r for debugging, one key per line with sorted keys.
func (r Result) String() string {
	var b strings.Builder
	r.write(&b, 0)
	return b.String()
}

func (r Result) write(b *strings.Builder, depth int) {
	if r.fields == nil {
		b.WriteString(r.outcome.String())
		return
	}
	if len(r.fields) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	for _, k := range r.Keys() {
		b.WriteString(strings.Repeat("  ", depth+1))
		b.WriteString(k)
		b.WriteString(": ")
		r.fields[k].write(b, depth+1)
		b.WriteString(",\n")
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("}")
}

// MarshalJSON encodes a leaf as its outcome and an object as a map of results.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return json.Marshal(r.outcome)
	}
	return json.Marshal(r.fields)
}

// Number accepts integers and base-10 integer strings, then applies the
// integer rule. Accepted strings yield the converted integer.
func Number(v types.Value) Result {
	switch v.Kind() {
	case types.KindInteger:
		n, _ := v.AsInt()
		return Leaf(intRule(v, n))
	case types.KindText:
		s, _ := v.AsText()
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return Leaf(types.Reject[types.Value](types.ReasonNotNumeric))
		}
		return Leaf(intRule(types.Int(n), n))
	default:
		return Leaf(types.Unsupported[types.Value]())
	}
}

// String accepts text values that pass the text rule.
func String(v types.Value) Result {
	s, ok := v.AsText()
	if !ok {
		return Leaf(types.Unsupported[types.Value]())
	}
	return Leaf(textRule(v, s))
}

// ObjectOf returns a Parser for objects. Every key present in the input is
// reported: with its schema parser's result, or a NoParser rejection when
// the schema has no entry. Schema keys missing from the input are omitted.
func ObjectOf(schema Schema) Parser {
	return func(v types.Value) Result {
		if v.Kind() != types.KindObject {
			return Leaf(types.Unsupported[types.Value]())
		}
		results := make(map[string]Result, len(v.Keys()))
		for _, k := range v.Keys() {
			child, _ := v.Field(k)
			p, ok := schema[k]
			if !ok || p == nil {
				results[k] = Leaf(types.NoParser[types.Value]())
				continue
			}
			results[k] = p(child)
		}
		return Result{fields: results}
	}
}

// Auto picks the rule from the value's kind: integers and text use their
// rules directly and objects are parsed field by field.
func Auto(v types.Value) Result {
	switch v.Kind() {
	case types.KindInteger:
		n, _ := v.AsInt()
		return Leaf(intRule(v, n))
	case types.KindText:
		return String(v)
	case types.KindObject:
		results := make(map[string]Result, len(v.Keys()))
		for _, k := range v.Keys() {
			child, _ := v.Field(k)
			results[k] = Auto(child)
		}
		return Result{fields: results}
	default:
		return Leaf(types.Unsupported[types.Value]())
	}
}
