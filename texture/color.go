// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package texture

import "image/color"

// rgb565To888 is the process-wide RGB-565 -> RGB-888 lookup table, built
// once at package init from per-channel bit-scaling with +0.5 rounding.
// Together with the inverse tables inv5/inv6 it is the only shared state
// this package maintains (§5).
var rgb565To888 [65536]color.RGBA

var inv5, inv6 [256]uint8

func init() {
	for c := 0; c < 65536; c++ {
		r5 := uint8((c >> 11) & 0x1f)
		g6 := uint8((c >> 5) & 0x3f)
		b5 := uint8(c & 0x1f)
		rgb565To888[c] = color.RGBA{
			R: scale(r5, 31),
			G: scale(g6, 63),
			B: scale(b5, 31),
			A: 255,
		}
	}
	for v := 0; v < 256; v++ {
		inv5[v] = uint8((uint32(v)*31 + 127) / 255)
		inv6[v] = uint8((uint32(v)*63 + 127) / 255)
	}
}

func scale(v, max uint8) uint8 {
	return uint8((uint32(v)*255 + uint32(max)/2) / uint32(max))
}

// to565 converts an 8-bit-per-channel color back to RGB-565 using the
// inverse per-channel tables. Composed with rgb565To888 it is a fixed
// point on any value the table itself produced, which is the property
// round-tripping a previously-decoded image relies on.
func to565(c color.RGBA) uint16 {
	r5 := inv5[c.R]
	g6 := inv6[c.G]
	b5 := inv5[c.B]
	return uint16(r5)<<11 | uint16(g6)<<5 | uint16(b5)
}
