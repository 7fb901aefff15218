// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestQIdentity(t *testing.T) {
	i := NewQI()
	if !i.Eq(&Q{0, 0, 0, 1}) {
		t.Errorf("NewQI() = %+v", i)
	}
}

func TestQMultIdentity(t *testing.T) {
	q := NewQ().SetAa(0, 0, 1, PI/4)
	r := NewQ().Mult(q, QI)
	if !r.Aeq(q) {
		t.Errorf("q*identity = %+v, want %+v", r, q)
	}
}

func TestQUnit(t *testing.T) {
	q := (&Q{1, 2, 3, 4}).Unit()
	if got := q.Len(); !Aeq(got, 1) {
		t.Errorf("Unit().Len() = %v, want 1", got)
	}
}

func TestQAaRoundTrip(t *testing.T) {
	q := NewQ().SetAa(0, 1, 0, PI/6)
	ax, ay, az, ang := q.Aa()
	back := NewQ().SetAa(ax, ay, az, ang)
	if !q.Aeq(back) {
		t.Errorf("axis-angle round trip mismatch: %+v vs %+v", q, back)
	}
}
