// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package motion implements the per-bone keyframe animation codec.
package motion

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
	"github.com/duskforge/mech3kit/math/lin"
)

const (
	version  = 4
	partFlag = 12
)

// Keyframe is one frame's translation and rotation for a part.
type Keyframe struct {
	Translation lin.V3
	Rotation    lin.Q
}

// Part is one animated bone's full keyframe track.
type Part struct {
	Name   string
	Frames []Keyframe
}

// Document is a decoded motion.
type Document struct {
	LoopTime float32
	Parts    []*Part
}

// Decode parses buf as a motion container.
func Decode(buf []byte) (*Document, error) {
	c := bin.NewCursor(buf)
	ver := c.U32()
	if err := passert.Eq(passert.Parse, "motion.header.version", uint32(version), ver, 0); err != nil {
		return nil, err
	}
	loopTime := c.F32()
	if err := passert.Gt(passert.Parse, "motion.header.loop_time", float32(0), loopTime, c.Prev()); err != nil {
		return nil, err
	}
	frameCountMinus1 := c.U32()
	frameCount := frameCountMinus1 + 1
	partCount := c.U32()
	negOne := c.F32()
	posOne := c.F32()
	if err := passert.Eq(passert.Parse, "motion.header.neg_one", float32(-1.0), negOne, c.Prev()-4); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "motion.header.pos_one", float32(1.0), posOne, c.Prev()); err != nil {
		return nil, err
	}

	doc := &Document{LoopTime: loopTime, Parts: make([]*Part, partCount)}
	for i := uint32(0); i < partCount; i++ {
		name := c.PString()
		flag := c.U32()
		if err := passert.Eq(passert.Parse, "motion.part.flag", uint32(partFlag), flag, c.Prev()); err != nil {
			return nil, err
		}
		translations := make([]lin.V3, frameCount)
		for j := range translations {
			translations[j] = lin.V3{X: float64(c.F32()), Y: float64(c.F32()), Z: float64(c.F32())}
		}
		rotations := make([]lin.Q, frameCount)
		for j := range rotations {
			rotations[j] = lin.Q{X: float64(c.F32()), Y: float64(c.F32()), Z: float64(c.F32()), W: float64(c.F32())}
		}
		p := &Part{Name: name, Frames: make([]Keyframe, frameCount)}
		for j := range p.Frames {
			p.Frames[j] = Keyframe{Translation: translations[j], Rotation: rotations[j]}
		}
		doc.Parts[i] = p
	}
	return doc, nil
}

// Encode serializes the document back to its on-disk byte layout,
// de-interleaving each part's frames back into separate translation and
// rotation runs.
func Encode(doc *Document) ([]byte, error) {
	var frameCount uint32
	if len(doc.Parts) > 0 {
		frameCount = uint32(len(doc.Parts[0].Frames))
	}
	w := bin.NewWriter()
	w.PutU32(version)
	w.PutF32(doc.LoopTime)
	w.PutU32(frameCount - 1)
	w.PutU32(uint32(len(doc.Parts)))
	w.PutF32(-1.0)
	w.PutF32(1.0)
	for _, p := range doc.Parts {
		w.PutPString(p.Name)
		w.PutU32(partFlag)
		for _, f := range p.Frames {
			w.PutF32(float32(f.Translation.X))
			w.PutF32(float32(f.Translation.Y))
			w.PutF32(float32(f.Translation.Z))
		}
		for _, f := range p.Frames {
			w.PutF32(float32(f.Rotation.X))
			w.PutF32(float32(f.Rotation.Y))
			w.PutF32(float32(f.Rotation.Z))
			w.PutF32(float32(f.Rotation.W))
		}
	}
	return w.Bytes(), nil
}

// EaseSample tweens a part's translation and rotation between the two
// keyframes bracketing t (0..frameCount-1), for preview/inspection
// tooling only: it never participates in Decode/Encode and has no
// bearing on wire bytes.
func (p *Part) EaseSample(t float64) (lin.V3, lin.Q) {
	if len(p.Frames) == 0 {
		return lin.V3{}, lin.NewQI()
	}
	if t <= 0 {
		return p.Frames[0].Translation, p.Frames[0].Rotation
	}
	last := len(p.Frames) - 1
	if t >= float64(last) {
		return p.Frames[last].Translation, p.Frames[last].Rotation
	}
	i0 := int(t)
	i1 := i0 + 1
	frac := t - float64(i0)

	a, b := p.Frames[i0], p.Frames[i1]
	var pos lin.V3
	tween := gween.New(0, 1, 1, ease.Linear)
	alpha, _ := tween.Update(float32(frac))
	pos.X = a.Translation.X + (b.Translation.X-a.Translation.X)*float64(alpha)
	pos.Y = a.Translation.Y + (b.Translation.Y-a.Translation.Y)*float64(alpha)
	pos.Z = a.Translation.Z + (b.Translation.Z-a.Translation.Z)*float64(alpha)

	rot := lin.NewQ().Nlerp(&a.Rotation, &b.Rotation, float64(alpha))
	return pos, *rot
}
