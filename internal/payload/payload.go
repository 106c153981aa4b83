// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package payload implements the semi-structured argument that accompanies a
// command. A Value is a thin wrapper over a YAML node, which lets the same type
// carry JSON documents (a YAML flow subset), config presets and script entries
// while keeping "field present" and "field absent" distinguishable.
package payload

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the shape of a payload value.
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindString
	KindInt
	KindScalar // any other scalar (bool, float, timestamp)
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return "unknown"
}

// Value is a payload. The zero Value is absent.
type Value struct {
	node *yaml.Node
}

// Field is one key/value pair of a mapping payload.
type Field struct {
	Key   string
	Value Value
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// String returns a string payload.
func String(s string) Value {
	return Value{node: &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}}
}

// Int returns an integer payload.
func Int(n int) Value {
	return Value{node: &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)}}
}

// Seq returns a sequence payload. Absent items are skipped.
func Seq(items ...Value) Value {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, it := range items {
		if it.node == nil {
			continue
		}
		n.Content = append(n.Content, it.node)
	}
	return Value{node: n}
}

// Map returns a mapping payload with fields in the given order. Fields with an
// absent value are left out so that lookups report them as absent.
func Map(fields ...Field) Value {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range fields {
		if f.Value.node == nil {
			continue
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
		n.Content = append(n.Content, key, f.Value.node)
	}
	return Value{node: n}
}

// From encodes an arbitrary Go value (slices, maps, structs with yaml tags,
// scalars) into a payload.
func From(v any) (Value, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return Value{}, fmt.Errorf("failed to encode payload: %w", err)
	}
	return Value{node: &n}, nil
}

// MustFrom is like From but panics on error. Intended for literals in tests
// and defaults.
func MustFrom(v any) Value {
	p, err := From(v)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse decodes JSON or YAML text into a payload. Blank text yields an absent
// value.
func Parse(text string) (Value, error) {
	if strings.TrimSpace(text) == "" {
		return Value{}, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return Value{}, fmt.Errorf("failed to parse payload: %w", err)
	}
	return fromNode(&doc), nil
}

// FromNode wraps an already decoded YAML node.
func FromNode(n *yaml.Node) Value {
	return fromNode(n)
}

func fromNode(n *yaml.Node) Value {
	n = resolve(n)
	if n == nil || n.Kind == 0 {
		return Value{}
	}
	return Value{node: n}
}

// resolve unwraps document and alias nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// Kind reports the shape of v.
func (v Value) Kind() Kind {
	n := resolve(v.node)
	if n == nil {
		return KindAbsent
	}
	switch n.Kind {
	case yaml.SequenceNode:
		return KindSequence
	case yaml.MappingNode:
		return KindMapping
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return KindString
		case "!!int":
			return KindInt
		case "!!null":
			return KindNull
		}
		return KindScalar
	}
	return KindAbsent
}

// IsAbsent reports whether v carries no value at all.
func (v Value) IsAbsent() bool { return v.Kind() == KindAbsent }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	if v.Kind() != KindString {
		return "", false
	}
	return resolve(v.node).Value, true
}

// AsInt returns the integer held by v. Floats are not integers.
func (v Value) AsInt() (int, bool) {
	if v.Kind() != KindInt {
		return 0, false
	}
	var n int
	if err := resolve(v.node).Decode(&n); err != nil {
		return 0, false
	}
	return n, true
}

// Items returns the elements of a sequence.
func (v Value) Items() ([]Value, bool) {
	if v.Kind() != KindSequence {
		return nil, false
	}
	content := resolve(v.node).Content
	items := make([]Value, 0, len(content))
	for _, c := range content {
		items = append(items, fromNode(c))
	}
	return items, true
}

// Field looks up key in a mapping. The second result is false when v is not a
// mapping or the key is missing.
func (v Value) Field(key string) (Value, bool) {
	if v.Kind() != KindMapping {
		return Value{}, false
	}
	content := resolve(v.node).Content
	for i := 0; i+1 < len(content); i += 2 {
		if resolve(content[i]).Value == key {
			return fromNode(content[i+1]), true
		}
	}
	return Value{}, false
}

// StringField returns a string-typed field of a mapping.
func (v Value) StringField(key string) (string, bool) {
	f, ok := v.Field(key)
	if !ok {
		return "", false
	}
	return f.AsString()
}

// Decode decodes v into out using yaml struct tags.
func (v Value) Decode(out any) error {
	n := resolve(v.node)
	if n == nil {
		return fmt.Errorf("cannot decode absent payload")
	}
	return n.Decode(out)
}

// Node returns the underlying YAML node, or nil when absent.
func (v Value) Node() *yaml.Node { return resolve(v.node) }

// String renders v as single-line flow text, e.g. [{name: Peter}].
func (v Value) String() string {
	n := resolve(v.node)
	if n == nil {
		return "<absent>"
	}
	flow := flowCopy(n)
	out, err := yaml.Marshal(flow)
	if err != nil {
		return fmt.Sprintf("<unprintable: %v>", err)
	}
	return strings.TrimSpace(string(out))
}

func flowCopy(n *yaml.Node) *yaml.Node {
	n = resolve(n)
	if n == nil {
		return nil
	}
	c := *n
	c.HeadComment, c.LineComment, c.FootComment = "", "", ""
	if c.Kind == yaml.SequenceNode || c.Kind == yaml.MappingNode {
		c.Style = yaml.FlowStyle
	}
	c.Content = make([]*yaml.Node, 0, len(n.Content))
	for _, child := range n.Content {
		c.Content = append(c.Content, flowCopy(child))
	}
	return &c
}

// UnmarshalYAML keeps the raw node so presets and scripts can embed payloads
// of any shape.
func (v *Value) UnmarshalYAML(n *yaml.Node) error {
	*v = fromNode(n)
	return nil
}

// MarshalYAML emits the wrapped node unchanged.
func (v Value) MarshalYAML() (any, error) {
	n := resolve(v.node)
	if n == nil {
		return nil, nil
	}
	return n, nil
}
