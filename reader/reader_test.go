// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package reader

import (
	"bytes"
	"testing"
)

func sampleTree() *Node {
	return &Node{Tag: TagList, Children: []*Node{
		{Tag: TagString, Str: "hp"},
		{Tag: TagInt, Int: 100},
		{Tag: TagString, Str: "speed"},
		{Tag: TagFloat, Float: 3.5},
	}}
}

func TestReaderRoundTrip(t *testing.T) {
	n := sampleTree()
	raw, err := Encode(n)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	raw2, err := Encode(back)
	if err != nil {
		t.Fatalf("re-Encode: %v", err)
	}
	if !bytes.Equal(raw, raw2) {
		t.Errorf("round trip mismatch:\n got  %x\n want %x", raw2, raw)
	}
}

func TestAsMap(t *testing.T) {
	n := sampleTree()
	m, ok := n.AsMap()
	if !ok {
		t.Fatal("AsMap() ok = false, want true")
	}
	if m["hp"].Int != 100 {
		t.Errorf(`m["hp"].Int = %d, want 100`, m["hp"].Int)
	}
	if m["speed"].Float != 3.5 {
		t.Errorf(`m["speed"].Float = %v, want 3.5`, m["speed"].Float)
	}
}

func TestAsMapRejectsDuplicateKeys(t *testing.T) {
	n := &Node{Tag: TagList, Children: []*Node{
		{Tag: TagString, Str: "a"},
		{Tag: TagInt, Int: 1},
		{Tag: TagString, Str: "a"},
		{Tag: TagInt, Int: 2},
	}}
	if _, ok := n.AsMap(); ok {
		t.Error("AsMap() ok = true for a list with a duplicate key, want false")
	}
}

func TestMarshalJSONDefaultsToList(t *testing.T) {
	n := sampleTree()
	raw, err := n.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `["hp",100,"speed",3.5]`
	if string(raw) != want {
		t.Errorf("MarshalJSON() = %s, want %s", raw, want)
	}
}

func TestRenderJSONWithMapView(t *testing.T) {
	n := sampleTree()
	raw, err := n.RenderJSON(WithMapView())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	want := `{"hp":100,"speed":3.5}`
	if string(raw) != want {
		t.Errorf("RenderJSON(WithMapView()) = %s, want %s", raw, want)
	}
}

func TestRenderJSONMapViewFallsBackOnDuplicateKey(t *testing.T) {
	n := &Node{Tag: TagList, Children: []*Node{
		{Tag: TagString, Str: "a"},
		{Tag: TagInt, Int: 1},
		{Tag: TagString, Str: "a"},
		{Tag: TagInt, Int: 2},
	}}
	raw, err := n.RenderJSON(WithMapView())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	want := `["a",1,"a",2]`
	if string(raw) != want {
		t.Errorf("RenderJSON(WithMapView()) = %s, want %s (should fall back to list on duplicate keys)", raw, want)
	}
}

func TestEmptyListIsNone(t *testing.T) {
	n := &Node{Tag: TagList}
	raw, err := Encode(n)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(back.Children) != 0 {
		t.Errorf("got %d children, want 0", len(back.Children))
	}
}

func TestUnknownTag(t *testing.T) {
	raw := []byte{9, 0, 0, 0}
	if _, err := Decode(raw); err == nil {
		t.Error("expected error for unknown tag")
	}
}
