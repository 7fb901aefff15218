// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package reader implements the reader-tree codec: a pre-order,
// self-describing tagged tree of ints, floats, strings, and lists.
package reader

import (
	"encoding/json"
	"fmt"

	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
)

// Tag identifies the payload kind of one Node.
type Tag uint32

const (
	TagInt    Tag = 1
	TagFloat  Tag = 2
	TagString Tag = 3
	TagList   Tag = 4
)

// Node is one element of the tree. Exactly one of Int/Float/Str is
// meaningful, chosen by Tag; Children is meaningful only for TagList.
type Node struct {
	Tag      Tag
	Int      int32
	Float    float32
	Str      string
	Children []*Node
}

// Decode parses buf as a single reader-tree document.
func Decode(buf []byte) (*Node, error) {
	c := bin.NewCursor(buf)
	n, err := decodeNode(c)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func decodeNode(c *bin.Cursor) (*Node, error) {
	tag := Tag(c.U32())
	switch tag {
	case TagInt:
		return &Node{Tag: tag, Int: c.I32()}, nil
	case TagFloat:
		return &Node{Tag: tag, Float: c.F32()}, nil
	case TagString:
		s := c.PString()
		return &Node{Tag: tag, Str: s}, nil
	case TagList:
		length := c.U32()
		if length == 0 {
			return &Node{Tag: tag}, nil
		}
		childCount := int(length) - 1
		n := &Node{Tag: tag, Children: make([]*Node, childCount)}
		for i := 0; i < childCount; i++ {
			child, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			n.Children[i] = child
		}
		return n, nil
	default:
		return nil, &passert.Error{Kind: passert.Parse, Name: "reader.node.tag", Op: "in", Expected: "{1,2,3,4}", Actual: tag, Offset: c.Prev()}
	}
}

// Encode serializes n back to its on-disk byte layout.
func Encode(n *Node) ([]byte, error) {
	w := bin.NewWriter()
	encodeNode(w, n)
	return w.Bytes(), nil
}

func encodeNode(w *bin.Cursor, n *Node) {
	w.PutU32(uint32(n.Tag))
	switch n.Tag {
	case TagInt:
		w.PutI32(n.Int)
	case TagFloat:
		w.PutF32(n.Float)
	case TagString:
		w.PutPString(n.Str)
	case TagList:
		if len(n.Children) == 0 {
			w.PutU32(0)
			return
		}
		w.PutU32(uint32(len(n.Children) + 1))
		for _, child := range n.Children {
			encodeNode(w, child)
		}
	}
}

// AsMap is a pure view over a list node whose children alternate
// string-key, value, with no duplicate key (§3): returns the resulting
// map and true if n is well-formed that way, or (nil, false) otherwise.
// This view is never materialized internally — Encode always walks
// Children in their original order regardless of whether AsMap would
// accept the node.
func (n *Node) AsMap() (map[string]*Node, bool) {
	if n.Tag != TagList || len(n.Children)%2 != 0 {
		return nil, false
	}
	m := make(map[string]*Node, len(n.Children)/2)
	for i := 0; i < len(n.Children); i += 2 {
		key := n.Children[i]
		if key.Tag != TagString {
			return nil, false
		}
		if _, dup := m[key.Str]; dup {
			return nil, false
		}
		m[key.Str] = n.Children[i+1]
	}
	return m, true
}

// decodeConfig holds this package's optional view-rendering choices,
// following the teacher's functional-options Attr pattern (config.go).
type decodeConfig struct {
	mapView bool
}

// DecodeOption configures RenderJSON's manifest view.
type DecodeOption func(*decodeConfig)

// WithMapView renders every list node that round-trips through AsMap as
// a key-ordered map (§3) instead of its plain tagged-list form. Off by
// default: RenderJSON and MarshalJSON render lists as lists unless this
// option is given.
func WithMapView() DecodeOption {
	return func(c *decodeConfig) { c.mapView = true }
}

// jsonValue mirrors Node for manifest rendering (§6); with mapView set
// it prefers the AsMap view wherever one applies, recursively.
func (n *Node) jsonValue(mapView bool) any {
	switch n.Tag {
	case TagInt:
		return n.Int
	case TagFloat:
		return n.Float
	case TagString:
		return n.Str
	case TagList:
		if mapView {
			if m, ok := n.AsMap(); ok {
				out := make(map[string]any, len(m))
				for k, v := range m {
					out[k] = v.jsonValue(mapView)
				}
				return out
			}
		}
		out := make([]any, len(n.Children))
		for i, c := range n.Children {
			out[i] = c.jsonValue(mapView)
		}
		return out
	default:
		return nil
	}
}

// RenderJSON renders the manifest view described in §6: a plain tagged
// list by default, or a key-ordered map wherever WithMapView is given
// and a list round-trips through AsMap.
func (n *Node) RenderJSON(opts ...DecodeOption) ([]byte, error) {
	cfg := &decodeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	b, err := json.Marshal(n.jsonValue(cfg.mapView))
	if err != nil {
		return nil, fmt.Errorf("reader: marshal node: %w", err)
	}
	return b, nil
}

// MarshalJSON implements json.Marshaler using RenderJSON's default,
// list-rendering behavior; call RenderJSON directly to opt into
// WithMapView.
func (n *Node) MarshalJSON() ([]byte, error) {
	return n.RenderJSON()
}
