// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/duskforge/mech3kit/internal/bin"
)

func buildTestDef() *AnimDef {
	return &AnimDef{
		Name:                "anim_def_one",
		AnimName:            "anim_def_one",
		AnimRoot:            "anim_def_one",
		AutoResetNodeStates: true,
		Activation:          "ON_CALL",
		ProximityDamage:     true,
		Health:              0,
		Nodes: []NamePtrFlag{
			{Name: "node1", Ptr: 0x1000},
		},
		BaseNodePtr:   0x2000,
		AnimRootPtr:   0x2000,
		NodesPtr:      0x3000,
		ObjectsPtr:    0x3500,
		ResetStatePtr: 0x4000,
		ResetSequence: []Event{
			{
				Op: CallAnimation{
					Name:   "anim1",
					AtNode: &AtNodeLong{Node: "node1"},
				},
				StartOffset: StartOffsetAnimation,
				StartTime:   0,
			},
		},
	}
}

func buildTestDoc() *Document {
	return &Document{
		AnimPtr:  0x1000,
		WorldPtr: 0x2000,
		AnimNames: []AnimName{
			{Name: "anim_def_one", Unk: 1},
		},
		AnimDefs: []*AnimDef{buildTestDef()},
	}
}

func TestAnimRoundTrip(t *testing.T) {
	doc := buildTestDoc()
	raw, err := Encode(doc)
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

// TestCallAnimationEventBytes pins the exact wire layout of a single
// CALL_ANIMATION event: opcode id 24, start offset 1 (relative to the
// animation), node index 1, and zeroed translation/rotation.
func TestCallAnimationEventBytes(t *testing.T) {
	def := &AnimDef{Nodes: []NamePtrFlag{{Name: "node1"}}}
	events := []Event{
		{
			Op:          CallAnimation{Name: "anim1", AtNode: &AtNodeLong{Node: "node1"}},
			StartOffset: StartOffsetAnimation,
			StartTime:   0,
		},
	}

	w := bin.NewWriter()
	n := encodeScript(w, def, events)
	raw := w.Bytes()

	if n != 80 {
		t.Fatalf("encoded length = %d, want 80", n)
	}
	if raw[0] != opCallAnimation {
		t.Errorf("opcode id = %d, want %d", raw[0], opCallAnimation)
	}
	if raw[1] != uint8(StartOffsetAnimation) {
		t.Errorf("start offset = %d, want %d", raw[1], StartOffsetAnimation)
	}
	size := binary.LittleEndian.Uint32(raw[4:8])
	if size != 80 {
		t.Errorf("size field = %d, want 80", size)
	}
	startTime := math.Float32frombits(binary.LittleEndian.Uint32(raw[8:12]))
	if startTime != 0 {
		t.Errorf("start time = %v, want 0", startTime)
	}
	name := string(bytes.TrimRight(raw[12:44], "\x00"))
	if name != "anim1" {
		t.Errorf("name = %q, want %q", name, "anim1")
	}
	atIndex := int32(binary.LittleEndian.Uint32(raw[52:56]))
	if atIndex != 1 {
		t.Errorf("at index = %d, want 1", atIndex)
	}
	for i := 56; i < 80; i += 4 {
		if binary.LittleEndian.Uint32(raw[i:i+4]) != 0 {
			t.Errorf("translation/rotation byte %d not zero", i)
		}
	}

	decoded, err := decodeScript(bin.NewCursor(raw), def, len(raw))
	if err != nil {
		t.Fatalf("decodeScript: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d events, want 1", len(decoded))
	}
	got, ok := decoded[0].Op.(CallAnimation)
	if !ok {
		t.Fatalf("decoded op is %T, want CallAnimation", decoded[0].Op)
	}
	if got.Name != "anim1" || got.AtNode == nil || got.AtNode.Node != "node1" {
		t.Errorf("decoded CallAnimation = %+v, want Name=anim1 AtNode.Node=node1", got)
	}
}

func TestAnimBadSignature(t *testing.T) {
	doc := buildTestDoc()
	raw, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	binary.LittleEndian.PutUint32(raw[0:4], 0)
	if _, err := Decode(raw); err == nil {
		t.Error("expected error for bad signature")
	}
}

func TestAnimBadVersion(t *testing.T) {
	doc := buildTestDoc()
	raw, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	binary.LittleEndian.PutUint32(raw[4:8], version+1)
	if _, err := Decode(raw); err == nil {
		t.Error("expected error for bad version")
	}
}
