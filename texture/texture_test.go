// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package texture

import (
	"bytes"
	"testing"

	"github.com/duskforge/mech3kit/internal/bin"
)

// buildTestTexture hand-assembles the S2 scenario: a single 2x2 RGB-565
// texture, no palette, no alpha.
func buildTestTexture(t *testing.T) []byte {
	t.Helper()
	w := bin.NewWriter()
	w.PutU32(0)
	w.PutU32(1)
	w.PutU32(0)
	w.PutU32(1)
	w.PutU32(0)
	w.PutU32(0)
	w.PutZString("tex", tocNameSize, 0)
	w.PutU32(uint32(headerSize + tocEntry))
	w.PutI32(-1)
	w.PutU32(BytesPerPixels2)
	w.PutU16(2)
	w.PutU16(2)
	w.PutU32(0)
	w.PutU16(0)
	w.PutU16(0)
	pixels := []uint16{0xF800, 0x07E0, 0x001F, 0xFFFF}
	for _, p := range pixels {
		w.PutU16(p)
	}
	return w.Bytes()
}

func TestDecodeSimple(t *testing.T) {
	raw := buildTestTexture(t)
	doc, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Textures) != 1 {
		t.Fatalf("got %d textures, want 1", len(doc.Textures))
	}
	tex := doc.Textures[0]
	if tex.Name != "tex" || tex.Width != 2 || tex.Height != 2 {
		t.Errorf("tex = %+v", tex)
	}
	if len(tex.RawPixels) != 8 {
		t.Fatalf("RawPixels len = %d, want 8", len(tex.RawPixels))
	}
}

func TestTextureRoundTrip(t *testing.T) {
	raw := buildTestTexture(t)
	doc, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(raw, out) {
		t.Errorf("round trip mismatch:\n got  %x\n want %x", out, raw)
	}
}

func TestTextureImage(t *testing.T) {
	raw := buildTestTexture(t)
	doc, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	img, err := doc.Textures[0].Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("image bounds = %v, want 2x2", b)
	}
	r, g, b2, a := img.At(0, 0).RGBA()
	if r>>8 < 200 || g>>8 > 30 || b2>>8 > 30 || a>>8 != 255 {
		t.Errorf("pixel(0,0) = %d,%d,%d,%d, want ~red opaque", r>>8, g>>8, b2>>8, a>>8)
	}
}

func TestImageStretchOption(t *testing.T) {
	raw := buildTestTexture(t)
	// stretch code 3: 2x2 (both axes doubled).
	raw[headerSize+tocEntry+14] = 3
	doc, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tex := doc.Textures[0]

	img, err := tex.Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("default Image() bounds = %v, want unstretched 2x2", b)
	}

	stretched, err := tex.Image(WithStretch())
	if err != nil {
		t.Fatalf("Image(WithStretch()): %v", err)
	}
	if b := stretched.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("Image(WithStretch()) bounds = %v, want 4x4", b)
	}
}

func TestBadFlagCombination(t *testing.T) {
	raw := buildTestTexture(t)
	// clear BytesPerPixels2 to trigger the required-bit check.
	raw[headerSize+tocEntry] = 0
	if _, err := Decode(raw); err == nil {
		t.Error("expected error when BytesPerPixels2 is unset")
	}
}
