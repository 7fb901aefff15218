// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package texture implements the multi-format 2D image archive: a TOC of
// named records, each an RGB-565 or palette-indexed bitmap with optional
// alpha. Decode keeps every pixel/palette/alpha byte verbatim so Encode
// can reproduce the source file exactly regardless of how lossy the
// RGB-565<->RGB-888 conversion used for the inspectable image view is.
package texture

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/dustin/go-humanize"

	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
)

// Flag bits for Texture.Flag (§3 "Texture record").
const (
	BytesPerPixels2  uint32 = 1 << 0
	HasAlpha         uint32 = 1 << 1
	NoAlpha          uint32 = 1 << 2
	FullAlpha        uint32 = 1 << 3
	UseGlobalPalette uint32 = 1 << 4
	loadedBit0       uint32 = 1 << 5
	loadedBit1       uint32 = 1 << 6
	loadedBit2       uint32 = 1 << 7

	validFlags = BytesPerPixels2 | HasAlpha | NoAlpha | FullAlpha | UseGlobalPalette |
		loadedBit0 | loadedBit1 | loadedBit2
)

const (
	headerSize  = 24
	tocNameSize = 32
	tocEntry    = tocNameSize + 4 + 4 // name[32] + start + palette_index
	infoSize    = 16
)

// Texture is one decoded texture record. RawPixels/RawAlpha/RawPalette are
// the verbatim wire bytes; Image() derives a view from them but is never
// consulted by Encode.
type Texture struct {
	Name         string
	Width        uint16
	Height       uint16
	Flag         uint32
	PaletteCount uint16
	Stretch      uint16

	RawPixels  []byte // w*h*2 RGB-565 colors, or w*h*1 palette indices
	RawAlpha   []byte // present iff Flag&FullAlpha != 0
	RawPalette []byte // paletteCount*2 RGB-565 colors, present iff PaletteCount > 0
}

// Document is a decoded texture archive.
type Document struct {
	Textures []*Texture
}

func (t *Texture) indexed() bool { return t.PaletteCount > 0 }

// Decode parses buf as a texture archive.
func Decode(buf []byte) (*Document, error) {
	c := bin.NewCursor(buf)
	reserved0 := c.U32()
	hasEntries := c.U32()
	globalPalette := c.U32()
	count := c.U32()
	reserved4 := c.U32()
	reserved5 := c.U32()
	if err := passert.Eq(passert.Texture, "texture.header.reserved0", uint32(0), reserved0, 0); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Texture, "texture.header.has_entries", uint32(1), hasEntries, 4); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Texture, "texture.header.global_palette", uint32(0), globalPalette, 8); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Texture, "texture.header.reserved4", uint32(0), reserved4, 16); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Texture, "texture.header.reserved5", uint32(0), reserved5, 20); err != nil {
		return nil, err
	}

	type tocRow struct {
		name         string
		start        uint32
		paletteIndex int32
	}
	rows := make([]tocRow, count)
	for i := uint32(0); i < count; i++ {
		name, _ := c.ZString(tocNameSize)
		start := c.U32()
		idx := c.I32()
		if err := passert.Eq(passert.Texture, "texture.toc.palette_index", int32(-1), idx, c.Prev()); err != nil {
			return nil, err
		}
		rows[i] = tocRow{name, start, idx}
	}

	doc := &Document{Textures: make([]*Texture, count)}
	for i, row := range rows {
		rc := bin.NewCursor(buf)
		rc.SeekAbs(int64(row.start))
		flag := rc.U32()
		width := rc.U16()
		height := rc.U16()
		zero := rc.U32()
		paletteCount := rc.U16()
		stretch := rc.U16()

		if err := passert.Flags(passert.Texture, "texture.flag", validFlags, flag, rc.Prev()); err != nil {
			return nil, err
		}
		if flag&BytesPerPixels2 == 0 {
			return nil, &passert.Error{Kind: passert.Texture, Name: "texture.flag.bpp2", Op: "set", Expected: BytesPerPixels2, Actual: flag, Offset: rc.Prev()}
		}
		if flag&UseGlobalPalette != 0 {
			return nil, &passert.Error{Kind: passert.Texture, Name: "texture.flag.global_palette", Op: "==", Expected: 0, Actual: flag & UseGlobalPalette, Offset: rc.Prev()}
		}
		if err := passert.Eq(passert.Texture, "texture.info.reserved", uint32(0), zero, rc.Prev()); err != nil {
			return nil, err
		}
		if err := passert.Between(passert.Texture, "texture.stretch", uint16(0), uint16(3), stretch, rc.Prev()); err != nil {
			return nil, err
		}

		t := &Texture{Name: row.name, Width: width, Height: height, Flag: flag, PaletteCount: paletteCount, Stretch: stretch}
		px := int(width) * int(height)
		if paletteCount == 0 {
			t.RawPixels = rc.Take(px * 2)
		} else {
			t.RawPixels = rc.Take(px)
			for _, idx := range t.RawPixels {
				if uint16(idx) >= paletteCount {
					return nil, &passert.Error{Kind: passert.Texture, Name: "texture.pixel.index", Op: "<", Expected: paletteCount, Actual: idx, Offset: rc.Prev()}
				}
			}
		}
		if flag&FullAlpha != 0 {
			t.RawAlpha = rc.Take(px)
		}
		if paletteCount > 0 {
			t.RawPalette = rc.Take(int(paletteCount) * 2)
		}
		doc.Textures[i] = t
	}
	return doc, nil
}

// Encode serializes the document back to its on-disk byte layout.
func Encode(doc *Document) ([]byte, error) {
	base := int64(headerSize) + int64(len(doc.Textures))*tocEntry
	starts := make([]uint32, len(doc.Textures))
	pos := base
	for i, t := range doc.Textures {
		starts[i] = uint32(pos)
		pos += infoSize + int64(len(t.RawPixels)) + int64(len(t.RawAlpha)) + int64(len(t.RawPalette))
	}

	w := bin.NewWriter()
	w.PutU32(0)
	w.PutU32(1)
	w.PutU32(0)
	w.PutU32(uint32(len(doc.Textures)))
	w.PutU32(0)
	w.PutU32(0)
	for i, t := range doc.Textures {
		w.PutZString(t.Name, tocNameSize, 0)
		w.PutU32(starts[i])
		w.PutI32(-1)
	}
	for _, t := range doc.Textures {
		w.PutU32(t.Flag)
		w.PutU16(t.Width)
		w.PutU16(t.Height)
		w.PutU32(0)
		w.PutU16(t.PaletteCount)
		w.PutU16(t.Stretch)
		w.PutBytes(t.RawPixels)
		if t.Flag&FullAlpha != 0 {
			w.PutBytes(t.RawAlpha)
		}
		if t.PaletteCount > 0 {
			w.PutBytes(t.RawPalette)
		}
	}
	return w.Bytes(), nil
}

// decodeConfig holds this package's optional view-rendering choices,
// following the teacher's functional-options Attr pattern (config.go).
type decodeConfig struct {
	stretch bool
}

// DecodeOption configures Image's optional rendering behavior.
type DecodeOption func(*decodeConfig)

// WithStretch applies the texture's declared stretch code (§4.D) via
// bicubic scaling when rendering Image. Off by default: Image renders
// the raw, unstretched pixel grid unless this option is given.
func WithStretch() DecodeOption {
	return func(c *decodeConfig) { c.stretch = true }
}

// Image renders t as a standalone image.Image for inspection (the PNG
// side of the manifest, §6). The result is never consulted by Encode.
func (t *Texture) Image(opts ...DecodeOption) (image.Image, error) {
	cfg := &decodeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	img := image.NewNRGBA(image.Rect(0, 0, int(t.Width), int(t.Height)))
	px := int(t.Width) * int(t.Height)
	switch {
	case t.PaletteCount > 0:
		palette := make([]color.NRGBA, t.PaletteCount)
		for i := range palette {
			c16 := uint16(t.RawPalette[i*2]) | uint16(t.RawPalette[i*2+1])<<8
			rgb := rgb565To888[c16]
			palette[i] = color.NRGBA{rgb.R, rgb.G, rgb.B, 255}
		}
		for i := 0; i < px; i++ {
			c := palette[t.RawPixels[i]]
			img.Set(i%int(t.Width), i/int(t.Width), c)
		}
	default:
		for i := 0; i < px; i++ {
			c16 := uint16(t.RawPixels[i*2]) | uint16(t.RawPixels[i*2+1])<<8
			rgb := rgb565To888[c16]
			a := alphaFor(t, i, c16)
			img.Set(i%int(t.Width), i/int(t.Width), color.NRGBA{rgb.R, rgb.G, rgb.B, a})
		}
	}
	if cfg.stretch && t.Stretch != 0 {
		return stretchImage(img, t.Stretch), nil
	}
	return img, nil
}

func alphaFor(t *Texture, pixelIndex int, c16 uint16) byte {
	switch {
	case t.Flag&FullAlpha != 0:
		return t.RawAlpha[pixelIndex]
	case t.Flag&HasAlpha != 0:
		// simple alpha: synthesized on decode, never stored back (§4.D).
		if c16 == 0 {
			return 0
		}
		return 255
	default:
		return 255
	}
}

// stretchScale returns the (x, y) multiplier for a stretch code.
func stretchScale(code uint16) (x, y int) {
	switch code {
	case 1:
		return 2, 1
	case 2:
		return 1, 2
	case 3:
		return 2, 2
	default:
		return 1, 1
	}
}

// stretchImage bicubic-scales img per the declared stretch code using
// golang.org/x/image/draw's Catmull-Rom kernel.
func stretchImage(img image.Image, code uint16) image.Image {
	sx, sy := stretchScale(code)
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*sx, b.Dy()*sy))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// String renders a short human-readable summary.
func (d *Document) String() string {
	var total uint64
	for _, t := range d.Textures {
		total += uint64(len(t.RawPixels) + len(t.RawAlpha) + len(t.RawPalette))
	}
	return fmt.Sprintf("texture: %d entries, %s", len(d.Textures), humanize.Bytes(total))
}
