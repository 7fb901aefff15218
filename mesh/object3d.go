// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package mesh implements the 3D scene-graph primitives shared by the
// mechlib and gamez codecs: the embedded Object3D transform, meshes,
// polygons, and lights.
package mesh

import (
	"math"

	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
	"github.com/duskforge/mech3kit/math/lin"
)

const (
	FlagStatic  uint32 = 40
	FlagDynamic uint32 = 32
)

// Object3D is the embedded per-node transform. When Flag is FlagDynamic
// and the stored matrix doesn't bit-exactly match euler_to_matrix(rot),
// ZeroSignMask records which matrix entries carry negative zero so a
// repack reproduces the original bytes instead of the recomputed ones.
type Object3D struct {
	Flag          uint32
	RotX          float32
	RotY          float32
	RotZ          float32
	Matrix        lin.M3
	ZeroSignMask  uint16
	MatrixExact   bool // true if Matrix was recomputed from rotation rather than retained verbatim
	TransX        float32
	TransY        float32
	TransZ        float32
}

func DecodeObject3D(c *bin.Cursor) (*Object3D, error) {
	flag := c.U32()
	if err := passert.In(passert.Parse, "object3d.flag", []uint32{FlagDynamic, FlagStatic}, flag, c.Prev()); err != nil {
		return nil, err
	}
	opacity := c.F32()
	if err := passert.Eq(passert.Parse, "object3d.opacity", float32(0), opacity, c.Prev()); err != nil {
		return nil, err
	}
	for _, name := range []string{"object3d.zero008", "object3d.zero012", "object3d.zero016", "object3d.zero020"} {
		v := c.F32()
		if err := passert.Eq(passert.Parse, name, float32(0), v, c.Prev()); err != nil {
			return nil, err
		}
	}
	rotX, rotY, rotZ := c.F32(), c.F32(), c.F32()
	scaleX, scaleY, scaleZ := c.F32(), c.F32(), c.F32()
	if err := passert.Eq(passert.Parse, "object3d.scale.x", float32(1), scaleX, c.Prev()-8); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "object3d.scale.y", float32(1), scaleY, c.Prev()-4); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "object3d.scale.z", float32(1), scaleZ, c.Prev()); err != nil {
		return nil, err
	}

	var m lin.M3
	m.Xx, m.Xy, m.Xz = float64(c.F32()), float64(c.F32()), float64(c.F32())
	m.Yx, m.Yy, m.Yz = float64(c.F32()), float64(c.F32()), float64(c.F32())
	m.Zx, m.Zy, m.Zz = float64(c.F32()), float64(c.F32()), float64(c.F32())
	transX, transY, transZ := c.F32(), c.F32(), c.F32()
	tail := c.Take(48)
	if err := passert.AllZero(passert.Parse, "object3d.tail", tail, c.Prev()); err != nil {
		return nil, err
	}

	o := &Object3D{Flag: flag, Matrix: m, TransX: transX, TransY: transY, TransZ: transZ}
	if flag == FlagStatic {
		if err := passert.Eq(passert.Parse, "object3d.static.rot_x", float32(0), rotX, c.Prev()); err != nil {
			return nil, err
		}
		if err := passert.Eq(passert.Parse, "object3d.static.trans_x", float32(0), transX, c.Prev()); err != nil {
			return nil, err
		}
		if !m.Eq(lin.NewM3I()) {
			return nil, &passert.Error{Kind: passert.Parse, Name: "object3d.static.matrix", Op: "==", Expected: "identity", Actual: m, Offset: c.Prev()}
		}
		o.MatrixExact = true
		return o, nil
	}

	if err := passert.Between(passert.Parse, "object3d.rot_x", float32(-lin.PI), float32(lin.PI), rotX, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Between(passert.Parse, "object3d.rot_y", float32(-lin.PI), float32(lin.PI), rotY, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Between(passert.Parse, "object3d.rot_z", float32(-lin.PI), float32(lin.PI), rotZ, c.Prev()); err != nil {
		return nil, err
	}
	o.RotX, o.RotY, o.RotZ = rotX, rotY, rotZ

	recomputed := lin.NewM3().SetEuler(float64(rotX), float64(rotY), float64(rotZ))
	want := [9]float64{recomputed.Xx, recomputed.Xy, recomputed.Xz, recomputed.Yx, recomputed.Yy, recomputed.Yz, recomputed.Zx, recomputed.Zy, recomputed.Zz}
	got := [9]float64{m.Xx, m.Xy, m.Xz, m.Yx, m.Yy, m.Yz, m.Zx, m.Zy, m.Zz}
	exact := true
	for i := range want {
		// compare the float32 bit patterns the matrix is stored as
		if math.Float32bits(float32(want[i])) != math.Float32bits(float32(got[i])) {
			exact = false
		}
	}
	if exact {
		o.MatrixExact = true
	} else {
		o.MatrixExact = false
		o.ZeroSignMask = lin.ZeroSignMask(&m)
	}
	return o, nil
}

func EncodeObject3D(w *bin.Cursor, o *Object3D) {
	w.PutU32(o.Flag)
	w.PutF32(0) // opacity
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(o.RotX)
	w.PutF32(o.RotY)
	w.PutF32(o.RotZ)
	w.PutF32(1)
	w.PutF32(1)
	w.PutF32(1)

	m := o.Matrix
	if o.Flag != FlagStatic && o.MatrixExact {
		m = *lin.NewM3().SetEuler(float64(o.RotX), float64(o.RotY), float64(o.RotZ))
		if o.ZeroSignMask != 0 {
			lin.ApplyZeroSignMask(&m, o.ZeroSignMask)
		}
	}
	w.PutF32(float32(m.Xx))
	w.PutF32(float32(m.Xy))
	w.PutF32(float32(m.Xz))
	w.PutF32(float32(m.Yx))
	w.PutF32(float32(m.Yy))
	w.PutF32(float32(m.Yz))
	w.PutF32(float32(m.Zx))
	w.PutF32(float32(m.Zy))
	w.PutF32(float32(m.Zz))
	w.PutF32(o.TransX)
	w.PutF32(o.TransY)
	w.PutF32(o.TransZ)
	w.PutBytes(make([]byte, 48))
}

// ApproxSqrt reproduces the hardware approximate-sqrt used for the
// world-partition virtual diagonal (§4.I "World"): reinterpret the bits
// as a signed int32, arithmetic-shift right one bit, add 0x1FC00000, and
// reinterpret back as a float32. Applied to a negative input (as the
// virtual-diagonal formula does) this is not actually a square root at
// all; it reproduces the documented -192.0 artifact exactly rather than
// the mathematically correct magnitude.
func ApproxSqrt(value float32) float32 {
	cast := int32(math.Float32bits(value))
	approx := (cast >> 1) + 0x1FC00000
	return math.Float32frombits(uint32(approx))
}
