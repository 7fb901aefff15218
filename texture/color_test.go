// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package texture

import "testing"

// TestColorTableFixedPoint verifies table888[to565(table888[c])] ==
// table888[c] for every 565 color: the property the decoded-image view
// relies on, since Encode never re-derives pixels from it.
func TestColorTableFixedPoint(t *testing.T) {
	for c := 0; c < 65536; c++ {
		rgb := rgb565To888[c]
		back := rgb565To888[to565(rgb)]
		if back != rgb {
			t.Fatalf("c=%d: table888[to565(table888[c])] = %+v, want %+v", c, back, rgb)
			return
		}
	}
}
