// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
)

const (
	signature = 0x08170616
	version   = 39
	gravity   = -9.800000190734863
)

// AnimName is one entry in the file's flat animation-name table — the
// index into this table is how an AnimDef's own name field is usually
// cross-referenced elsewhere in the format.
type AnimName struct {
	Name string
	Pad  []byte
	Unk  uint32
}

// Document is a fully decoded animation-definition container: the
// flat name table, the pointers the engine resolved at load time, and
// every non-empty animation definition.
type Document struct {
	AnimPtr   uint32
	WorldPtr  uint32
	AnimNames []AnimName
	AnimDefs  []*AnimDef
}

// Decode parses a complete animation-definition file.
func Decode(buf []byte) (*Document, error) {
	c := bin.NewCursor(buf)

	sig := c.U32()
	if err := passert.Eq(passert.Parse, "anim.signature", uint32(signature), sig, c.Prev()); err != nil {
		return nil, err
	}
	ver := c.U32()
	if err := passert.Eq(passert.Parse, "anim.version", uint32(version), ver, c.Prev()); err != nil {
		return nil, err
	}
	count := c.U32()

	names := make([]AnimName, count)
	for i := range names {
		raw := c.Take(80)
		if err := passert.Ascii(passert.Parse, "anim.name.name", raw, c.Prev()); err != nil {
			return nil, err
		}
		name, pad := splitZString(raw)
		unk := c.U32()
		names[i] = AnimName{Name: name, Pad: pad, Unk: unk}
	}

	zero00 := c.U32()
	if err := passert.Eq(passert.Parse, "anim.info.zero00", uint32(0), zero00, c.Prev()); err != nil {
		return nil, err
	}
	ptr04 := c.U32()
	if err := passert.Eq(passert.Parse, "anim.info.ptr04", uint32(0), ptr04, c.Prev()); err != nil {
		return nil, err
	}
	zero08 := c.U16()
	if err := passert.Eq(passert.Parse, "anim.info.zero08", uint16(0), zero08, c.Prev()); err != nil {
		return nil, err
	}
	animCount := c.U16()
	if err := passert.Gt(passert.Parse, "anim.info.count", uint16(0), animCount, c.Prev()); err != nil {
		return nil, err
	}
	animPtr := c.U32()
	if err := passert.Ne(passert.Parse, "anim.info.anim_ptr", uint32(0), animPtr, c.Prev()); err != nil {
		return nil, err
	}
	locCount := c.U32()
	if err := passert.Eq(passert.Parse, "anim.info.loc_count", uint32(0), locCount, c.Prev()); err != nil {
		return nil, err
	}
	locPtr := c.U32()
	if err := passert.Eq(passert.Parse, "anim.info.loc_ptr", uint32(0), locPtr, c.Prev()); err != nil {
		return nil, err
	}
	worldPtr := c.U32()
	if err := passert.Ne(passert.Parse, "anim.info.world_ptr", uint32(0), worldPtr, c.Prev()); err != nil {
		return nil, err
	}
	grav := c.F32()
	if err := passert.Eq(passert.Parse, "anim.info.gravity", float32(gravity), grav, c.Prev()); err != nil {
		return nil, err
	}
	for _, n := range []string{"zero32", "zero36", "zero40", "zero44", "zero48", "zero52", "zero56"} {
		v := c.U32()
		if err := passert.Eq(passert.Parse, "anim.info."+n, uint32(0), v, c.Prev()); err != nil {
			return nil, err
		}
	}
	one60 := c.U32()
	if err := passert.Eq(passert.Parse, "anim.info.one60", uint32(1), one60, c.Prev()); err != nil {
		return nil, err
	}
	zero64 := c.U32()
	if err := passert.Eq(passert.Parse, "anim.info.zero64", uint32(0), zero64, c.Prev()); err != nil {
		return nil, err
	}

	if err := decodeAnimDefZero(c); err != nil {
		return nil, err
	}
	defs := make([]*AnimDef, int(animCount)-1)
	for i := range defs {
		def, err := decodeAnimDef(c)
		if err != nil {
			return nil, err
		}
		defs[i] = def
	}

	if err := passert.Eq(passert.Parse, "anim.end", len(buf), int(c.Pos()), c.Pos()); err != nil {
		return nil, err
	}

	return &Document{AnimPtr: animPtr, WorldPtr: worldPtr, AnimNames: names, AnimDefs: defs}, nil
}

// Encode is the exact inverse of Decode.
func Encode(doc *Document) ([]byte, error) {
	w := bin.NewWriter()

	w.PutU32(signature)
	w.PutU32(version)
	w.PutU32(uint32(len(doc.AnimNames)))
	for _, n := range doc.AnimNames {
		w.PutBytes(joinZString(n.Name, n.Pad, 80))
		w.PutU32(n.Unk)
	}

	w.PutU32(0)
	w.PutU32(0)
	w.PutU16(0)
	w.PutU16(uint16(len(doc.AnimDefs) + 1))
	w.PutU32(doc.AnimPtr)
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(doc.WorldPtr)
	w.PutF32(gravity)
	for i := 0; i < 7; i++ {
		w.PutU32(0)
	}
	w.PutU32(1)
	w.PutU32(0)

	encodeAnimDefZero(w)
	for _, def := range doc.AnimDefs {
		encodeAnimDef(w, def)
	}

	return w.Bytes(), nil
}
