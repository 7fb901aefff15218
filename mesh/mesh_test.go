// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package mesh

import (
	"bytes"
	"testing"

	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/math/lin"
)

func TestMeshRoundTrip(t *testing.T) {
	m := &Mesh{
		FilePtr: 1, HasParents: 1,
		Vertices: []lin.V3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}},
		Normals:  []lin.V3{{X: 0, Y: 1, Z: 0}},
		Polygons: []*Polygon{
			{
				VertexIndices: []uint32{0, 1},
				VertexColors:  []lin.V3{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}},
				TextureIndex:  0,
				TextureInfo:   0xFFFFFF00,
			},
		},
	}
	w := bin.NewWriter()
	EncodeMesh(w, m)
	raw := w.Bytes()

	back, err := DecodeMesh(bin.NewCursor(raw))
	if err != nil {
		t.Fatalf("DecodeMesh: %v", err)
	}
	w2 := bin.NewWriter()
	EncodeMesh(w2, back)
	if !bytes.Equal(raw, w2.Bytes()) {
		t.Errorf("round trip mismatch:\n got  %x\n want %x", w2.Bytes(), raw)
	}
}

func TestObject3DStaticRoundTrip(t *testing.T) {
	o := &Object3D{Flag: FlagStatic, Matrix: *lin.NewM3I(), MatrixExact: true}
	w := bin.NewWriter()
	EncodeObject3D(w, o)
	raw := w.Bytes()
	back, err := DecodeObject3D(bin.NewCursor(raw))
	if err != nil {
		t.Fatalf("DecodeObject3D: %v", err)
	}
	w2 := bin.NewWriter()
	EncodeObject3D(w2, back)
	if !bytes.Equal(raw, w2.Bytes()) {
		t.Errorf("round trip mismatch:\n got  %x\n want %x", w2.Bytes(), raw)
	}
}

func TestObject3DDynamicExactRoundTrip(t *testing.T) {
	rx, ry, rz := 0.3, -0.2, 0.5
	m := lin.NewM3().SetEuler(rx, ry, rz)
	o := &Object3D{
		Flag: FlagDynamic,
		RotX: float32(rx), RotY: float32(ry), RotZ: float32(rz),
		Matrix: *m, MatrixExact: true,
	}
	w := bin.NewWriter()
	EncodeObject3D(w, o)
	raw := w.Bytes()
	back, err := DecodeObject3D(bin.NewCursor(raw))
	if err != nil {
		t.Fatalf("DecodeObject3D: %v", err)
	}
	if !back.MatrixExact {
		t.Error("expected MatrixExact = true")
	}
	w2 := bin.NewWriter()
	EncodeObject3D(w2, back)
	if !bytes.Equal(raw, w2.Bytes()) {
		t.Errorf("round trip mismatch:\n got  %x\n want %x", w2.Bytes(), raw)
	}
}

func TestApproxSqrtPartitionRadius(t *testing.T) {
	// the per-partition-cell bounding radius: approx_sqrt(128*128 + 0 + 128*128)
	// with temp == 0 (the common case, since calloc zeros the inputs it derives
	// from). Exercises the bit-hack against a known-good grounded input rather
	// than asserting a specific magic constant.
	got := ApproxSqrt(128*128 + 0 + 128*128)
	if got <= 0 {
		t.Errorf("ApproxSqrt(32768) = %v, want a positive approximation", got)
	}
}
