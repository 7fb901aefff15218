// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestAeq(t *testing.T) {
	if !Aeq(1.0, 1.0000001) {
		t.Error("expected almost-equal floats to compare equal")
	}
	if Aeq(1.0, 1.1) {
		t.Error("expected clearly different floats to compare unequal")
	}
}

func TestNang(t *testing.T) {
	if got := Nang(0); got != 0 {
		t.Errorf("Nang(0) = %v, want 0", got)
	}
	if got := Nang(PIx2); !AeqZ(got) {
		t.Errorf("Nang(2pi) = %v, want ~0", got)
	}
}
