// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package lin provides the linear algebra this module's scene-graph and
// motion codecs need: 3-vectors, unit quaternions, and 3x3 rotation
// matrices, plus the Euler-triple conversions and negative-zero handling
// the Object3D node invariants require.
package lin

import "math"

// Various linear math constants.
const (
	PI   float64 = math.Pi
	PIx2 float64 = PI * 2

	// Epsilon is used to distinguish when a float is close enough to a number.
	Epsilon float64 = 0.000001
)

// AeqZ (~=) almost-equals returns true if the difference between x and zero
// is so small that it doesn't matter.
func AeqZ(x float64) bool { return math.Abs(x) < Epsilon }

// Aeq (~=) almost-equals returns true if the difference between a and b is
// so small that it doesn't matter.
func Aeq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// Nang (normalize angle) ensures a rotation angle in radians is within the
// range [-PI, PI].
func Nang(radians float64) float64 {
	radians = math.Mod(radians, PIx2)
	switch {
	case radians < -PI:
		return radians + PIx2
	case radians > PI:
		return radians - PIx2
	}
	return radians
}
