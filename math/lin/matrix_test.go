// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import (
	"math"
	"testing"
)

func TestM3Identity(t *testing.T) {
	i := NewM3I()
	if !i.Eq(&M3{1, 0, 0, 0, 1, 0, 0, 0, 1}) {
		t.Errorf("NewM3I() = %+v", i)
	}
}

func TestEulerRoundTrip(t *testing.T) {
	cases := [][3]float64{
		{0, 0, 0},
		{0.3, -0.2, 0.5},
		{1.0, 0.7, -1.2},
	}
	for _, c := range cases {
		m := NewM3().SetEuler(c[0], c[1], c[2])
		rx, ry, rz := m.Euler()
		back := NewM3().SetEuler(rx, ry, rz)
		if !m.Aeq(back) {
			t.Errorf("euler round trip mismatch for %v: got matrix %+v, roundtrip %+v", c, m, back)
		}
	}
}

func TestZeroSignMask(t *testing.T) {
	neg := math.Copysign(0, -1)
	m := &M3{neg, 0, neg, 0, 1, 0, 0, 0, 1}
	mask := ZeroSignMask(m)
	cleared := &M3{0, 0, 0, 0, 1, 0, 0, 0, 1}
	ApplyZeroSignMask(cleared, mask)
	if math.Signbit(cleared.Xx) != math.Signbit(neg) {
		t.Error("Xx sign not restored")
	}
	if math.Signbit(cleared.Xz) != math.Signbit(neg) {
		t.Error("Xz sign not restored")
	}
	if math.Signbit(cleared.Xy) {
		t.Error("Xy should have stayed positive zero")
	}
}

func TestSetQRoundTrip(t *testing.T) {
	q := NewQ().SetAa(0, 1, 0, PI/3)
	m := NewM3().SetQ(q)
	back := NewQ().SetM(m)
	// SetM always returns a non-negated quaternion; compare via the
	// resulting matrices rather than component-wise since q and -q
	// represent the same rotation.
	m2 := NewM3().SetQ(back)
	if !m.Aeq(m2) {
		t.Errorf("matrix/quaternion round trip mismatch: %+v vs %+v", m, m2)
	}
}
