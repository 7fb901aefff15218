// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package motion

import (
	"bytes"
	"testing"

	"github.com/duskforge/mech3kit/math/lin"
)

func buildTestDoc() *Document {
	return &Document{
		LoopTime: 2.0,
		Parts: []*Part{
			{
				Name: "torso",
				Frames: []Keyframe{
					{Translation: lin.V3{X: 0, Y: 0, Z: 0}, Rotation: *lin.NewQI()},
					{Translation: lin.V3{X: 1, Y: 2, Z: 3}, Rotation: *lin.NewQ().SetAa(0, 1, 0, 0.5)},
				},
			},
		},
	}
}

func TestMotionRoundTrip(t *testing.T) {
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

func TestEaseSampleBounds(t *testing.T) {
	doc := buildTestDoc()
	p := doc.Parts[0]
	pos, _ := p.EaseSample(0)
	if pos != p.Frames[0].Translation {
		t.Errorf("EaseSample(0) = %+v, want %+v", pos, p.Frames[0].Translation)
	}
	pos, _ = p.EaseSample(10)
	if pos != p.Frames[len(p.Frames)-1].Translation {
		t.Errorf("EaseSample(overflow) = %+v, want last frame", pos)
	}
}

func TestBadLoopTime(t *testing.T) {
	doc := buildTestDoc()
	doc.LoopTime = 0
	raw, _ := Encode(doc)
	if _, err := Decode(raw); err == nil {
		t.Error("expected error for non-positive loop_time")
	}
}
