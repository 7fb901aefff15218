// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestV3AddSub(t *testing.T) {
	a, b := &V3{1, 2, 3}, &V3{4, 5, 6}
	sum := NewV3().Add(a, b)
	if !sum.Eq(&V3{5, 7, 9}) {
		t.Errorf("Add = %+v, want {5 7 9}", sum)
	}
	diff := NewV3().Sub(b, a)
	if !diff.Eq(&V3{3, 3, 3}) {
		t.Errorf("Sub = %+v, want {3 3 3}", diff)
	}
}

func TestV3Scale(t *testing.T) {
	v := NewV3().Scale(&V3{1, 2, 3}, 2)
	if !v.Eq(&V3{2, 4, 6}) {
		t.Errorf("Scale = %+v, want {2 4 6}", v)
	}
}

func TestV3Len(t *testing.T) {
	v := &V3{3, 4, 0}
	if got := v.Len(); !Aeq(got, 5) {
		t.Errorf("Len() = %v, want 5", got)
	}
}
