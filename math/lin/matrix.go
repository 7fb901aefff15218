// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Matrix functions deal with 3x3 matrices used to track Object3D node
// rotations. This implementation only keeps what the scene-graph codec
// needs: unlike the engine this is adapted from, nothing here ever feeds
// a GPU, so the 4x4/projection half of the original matrix package has no
// role and was dropped (see DESIGN.md).
//
// This matrix implementation uses explicitly indexed, Row-Major, matrix
// members as follows:
//          3x3 M3
//	     [Xx, Xy, Xz]  X-Axis
//	     [Yx, Yy, Yz]  Y-Axis
//	     [Zx, Zy, Zz]  Z-Axis

import "math"

// M3 is a 3x3 matrix where the matrix elements are individually addressable.
type M3 struct {
	Xx, Xy, Xz float64
	Yx, Yy, Yz float64
	Zx, Zy, Zz float64
}

// Eq (==) returns true if all the elements in matrix m have the same value
// as the corresponding elements in matrix a.
func (m *M3) Eq(a *M3) bool {
	return m.Xx == a.Xx && m.Xy == a.Xy && m.Xz == a.Xz &&
		m.Yx == a.Yx && m.Yy == a.Yy && m.Yz == a.Yz &&
		m.Zx == a.Zx && m.Zy == a.Zy && m.Zz == a.Zz
}

// Aeq (~=) almost equals returns true if all the elements in matrix m have
// essentially the same value as the corresponding elements in matrix a.
func (m *M3) Aeq(a *M3) bool {
	return Aeq(m.Xx, a.Xx) && Aeq(m.Xy, a.Xy) && Aeq(m.Xz, a.Xz) &&
		Aeq(m.Yx, a.Yx) && Aeq(m.Yy, a.Yy) && Aeq(m.Yz, a.Yz) &&
		Aeq(m.Zx, a.Zx) && Aeq(m.Zy, a.Zy) && Aeq(m.Zz, a.Zz)
}

// SetS (=) explicitly sets the matrix scaler values using the given scalers.
func (m *M3) SetS(Xx, Xy, Xz, Yx, Yy, Yz, Zx, Zy, Zz float64) *M3 {
	m.Xx, m.Xy, m.Xz = Xx, Xy, Xz
	m.Yx, m.Yy, m.Yz = Yx, Yy, Yz
	m.Zx, m.Zy, m.Zz = Zx, Zy, Zz
	return m
}

// Set (=) assigns all the scaler values from matrix a to matrix m.
func (m *M3) Set(a *M3) *M3 {
	m.Xx, m.Xy, m.Xz = a.Xx, a.Xy, a.Xz
	m.Yx, m.Yy, m.Yz = a.Yx, a.Yy, a.Yz
	m.Zx, m.Zy, m.Zz = a.Zx, a.Zy, a.Zz
	return m
}

// SetQ converts a quaternion rotation representation to a matrix rotation
// representation. The parameter q is unchanged. The updated matrix m is
// returned.
func (m *M3) SetQ(q *Q) *M3 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z
	m.Xx, m.Xy, m.Xz = 1-2*(yy+zz), 2*(xy-wz), 2*(xz+wy)
	m.Yx, m.Yy, m.Yz = 2*(xy+wz), 1-2*(xx+zz), 2*(yz-wx)
	m.Zx, m.Zy, m.Zz = 2*(xz-wy), 2*(yz+wx), 1-2*(xx+yy)
	return m
}

// SetAa, set axis-angle, updates m to be a rotation matrix from the
// given axis (ax, ay, az) and angle (in radians).
func (m *M3) SetAa(ax, ay, az, ang float64) *M3 {
	alenSqr := ax*ax + ay*ay + az*az
	if alenSqr == 0 {
		return m
	}
	ilen := 1 / math.Sqrt(alenSqr)
	ax, ay, az = ax*ilen, ay*ilen, az*ilen
	rcos, rsin := math.Cos(ang), math.Sin(ang)
	m.Xx = rcos + ax*ax*(1-rcos)
	m.Xy = -az*rsin + ay*ax*(1-rcos)
	m.Xz = ay*rsin + az*ax*(1-rcos)
	m.Yx = az*rsin + ax*ay*(1-rcos)
	m.Yy = rcos + ay*ay*(1-rcos)
	m.Yz = -ax*rsin + az*ay*(1-rcos)
	m.Zx = -ay*rsin + ax*az*(1-rcos)
	m.Zy = ax*rsin + ay*az*(1-rcos)
	m.Zz = rcos + az*az*(1-rcos)
	return m
}

// SetEuler updates m to be the rotation matrix for Euler angles (rx, ry,
// rz), each in radians, matching the node_data_read.euler_to_matrix
// fallback: a Z-Y-X composition built from sin(-a)/cos(-a) per axis
// (cos is even and sin is odd, so this is algebraically equivalent to the
// expansion below).
func (m *M3) SetEuler(rx, ry, rz float64) *M3 {
	sx, cx := math.Sincos(rx)
	sy, cy := math.Sincos(ry)
	sz, cz := math.Sincos(rz)

	m.Xx = cz * cy
	m.Xy = cz*sy*sx + sz*cx
	m.Xz = -cz*sy*cx + sz*sx
	m.Yx = -sz * cy
	m.Yy = -sz*sy*sx + cz*cx
	m.Yz = sz*sy*cx + cz*sx
	m.Zx = sy
	m.Zy = -cy * sx
	m.Zz = cy * cx
	return m
}

// Euler recovers the (rx, ry, rz) radians that SetEuler would need to
// reproduce an equivalent rotation, inverting the composition above. The
// Object3D codec does not call it (it builds its candidate matrix with
// SetEuler from the stored rotation); it is not itself part of the wire
// format.
func (m *M3) Euler() (rx, ry, rz float64) {
	ry = math.Asin(Clamp(m.Zx, -1, 1))
	if math.Abs(m.Zx) < 1-Epsilon {
		rx = math.Atan2(-m.Zy, m.Zz)
		rz = math.Atan2(-m.Yx, m.Xx)
		return rx, ry, rz
	}
	// gimbal lock (ry == +-pi/2): rx and rz are not independently
	// recoverable, so fix rz == 0 and fold the combined rotation into rx.
	if m.Zx > 0 {
		rx = math.Atan2(m.Xy, -m.Xz)
	} else {
		rx = math.Atan2(-m.Xy, m.Xz)
	}
	return rx, ry, 0
}

// Clamp returns s bounded to [lb, ub].
func Clamp(s, lb, ub float64) float64 {
	switch {
	case s < lb:
		return lb
	case s > ub:
		return ub
	}
	return s
}

// ZeroSignMask returns a 9-bit mask (bit i set for matrix entry i in
// row-major Xx,Xy,Xz,Yx,Yy,Yz,Zx,Zy,Zz order) recording which entries of
// m are a negative zero. Required because Go's float64 equality (and
// Aeq/Eq above) cannot distinguish 0.0 from -0.0, but the on-disk bytes
// do (§9 "Negative-zero preservation").
func ZeroSignMask(m *M3) uint16 {
	entries := [9]float64{m.Xx, m.Xy, m.Xz, m.Yx, m.Yy, m.Yz, m.Zx, m.Zy, m.Zz}
	var mask uint16
	for i, v := range entries {
		if v == 0 && math.Signbit(v) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// ApplyZeroSignMask rewrites every zero-valued entry of m to carry the
// sign recorded in mask, restoring the exact bit pattern a decoded raw
// matrix had before repack.
func ApplyZeroSignMask(m *M3, mask uint16) *M3 {
	entries := [9]*float64{&m.Xx, &m.Xy, &m.Xz, &m.Yx, &m.Yy, &m.Yz, &m.Zx, &m.Zy, &m.Zz}
	for i, p := range entries {
		if *p == 0 {
			if mask&(1<<uint(i)) != 0 {
				*p = math.Copysign(0, -1)
			} else {
				*p = math.Copysign(0, 1)
			}
		}
	}
	return m
}

// NewM3 creates a new, all zero, 3x3 matrix.
func NewM3() *M3 { return &M3{} }

// NewM3I creates a new 3x3 identity matrix.
func NewM3I() *M3 { return &M3{Xx: 1, Yy: 1, Zz: 1} }
