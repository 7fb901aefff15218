// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	"bytes"
	"testing"

	"github.com/duskforge/mech3kit/internal/bin"
)

// buildInterleavedPrereq writes an anim record, then an obj record, then
// a second anim record: a type-1/type-2/type-1 sequence, the kind of
// interleaving the teacher's reader never rules out since
// activation_prereq.py has no writer to confirm real files always group
// by type.
func buildInterleavedPrereq() []byte {
	w := bin.NewWriter()
	encodeAnimPrereq(w, "anim1")
	encodeObjPrereq(w, PrereqObject{Required: true, Active: true, Name: "obj1", Ptr: 0x1000})
	encodeAnimPrereq(w, "anim2")
	return w.Bytes()
}

func TestActivationPrereqPreservesInterleavedOrder(t *testing.T) {
	raw := buildInterleavedPrereq()
	p, err := decodeActivationPrereq(bin.NewCursor(raw), 3, 2)
	if err != nil {
		t.Fatalf("decodeActivationPrereq: %v", err)
	}
	if len(p.AnimList) != 2 || len(p.ObjList) != 1 {
		t.Fatalf("AnimList=%v ObjList=%v, want 2 anim + 1 obj", p.AnimList, p.ObjList)
	}

	w := bin.NewWriter()
	encodeActivationPrereq(w, p)
	out := w.Bytes()
	if !bytes.Equal(raw, out) {
		t.Errorf("interleaved round trip mismatch:\n got  %x\n want %x", out, raw)
	}
}

func TestActivationPrereqHandBuiltFallsBackToGroupedOrder(t *testing.T) {
	p := &ActivationPrereq{
		MinToSatisfy: 1,
		AnimList:     []string{"anim1"},
		ObjList:      []PrereqObject{{Required: true, Active: true, Name: "obj1", Ptr: 0x1000}},
	}
	w := bin.NewWriter()
	encodeActivationPrereq(w, p)

	want := bin.NewWriter()
	encodeAnimPrereq(want, "anim1")
	encodeObjPrereq(want, p.ObjList[0])

	if !bytes.Equal(w.Bytes(), want.Bytes()) {
		t.Errorf("hand-built fallback order mismatch:\n got  %x\n want %x", w.Bytes(), want.Bytes())
	}
}
