// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package mechlib implements the 3D model container (§4.H): a materials
// array plus one recursive node tree per model, itself wrapped in an
// archive.Document whose entries are "version", "format", "materials",
// and one entry per model.
package mechlib

import (
	"github.com/duskforge/mech3kit/archive"
	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
	"github.com/duskforge/mech3kit/mesh"
)

const (
	version      uint32 = 27
	format       uint32 = 1
	materialSize        = 40
	nodeNameSize        = 36
)

// Material is one 40-byte material record ("<2BH 3f I 3f 2I>" in the
// original struct notation), optionally followed by a length-prefixed
// texture name when Textured is set.
type Material struct {
	Unk      uint8 // field 00: always 0x00 or 0xFF
	Flag     uint8
	Textured bool // bit 0 of Flag

	RGB16   uint16
	R, G, B float32
	Pointer uint32

	// TextureName is only meaningful (and only present on the wire) when
	// Textured is true.
	TextureName string
}

const texturedBit uint8 = 0x01

func decodeMaterial(c *bin.Cursor) (*Material, error) {
	unk := c.U8()
	flag := c.U8()
	rgb16 := c.U16()
	r, g, b := c.F32(), c.F32(), c.F32()
	pointer := c.U32()
	zero20 := c.F32()
	half24 := c.F32()
	half28 := c.F32()
	zero32 := c.U32()
	cyclePtr := c.U32()

	if err := passert.In(passert.Parse, "mechlib.material.unk00", []uint8{0x00, 0xFF}, unk, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.material.field20", float32(0), zero20, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.material.field24", float32(0.5), half24, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.material.field28", float32(0.5), half28, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.material.field32", uint32(0), zero32, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.material.cycle_ptr", uint32(0), cyclePtr, c.Prev()); err != nil {
		return nil, err
	}

	m := &Material{
		Unk: unk, Flag: flag, Textured: flag&texturedBit != 0,
		RGB16: rgb16, R: r, G: g, B: b, Pointer: pointer,
	}

	if m.Textured {
		if err := passert.Ne(passert.Parse, "mechlib.material.textured.pointer", uint32(0), pointer, c.Prev()); err != nil {
			return nil, err
		}
		if err := passert.Eq(passert.Parse, "mechlib.material.textured.rgb16", uint16(0x7FFF), rgb16, c.Prev()); err != nil {
			return nil, err
		}
		if err := passert.Eq(passert.Parse, "mechlib.material.textured.r", float32(255), r, c.Prev()); err != nil {
			return nil, err
		}
		if err := passert.Eq(passert.Parse, "mechlib.material.textured.g", float32(255), g, c.Prev()); err != nil {
			return nil, err
		}
		if err := passert.Eq(passert.Parse, "mechlib.material.textured.b", float32(255), b, c.Prev()); err != nil {
			return nil, err
		}
		m.TextureName = c.PString()
	} else {
		if err := passert.Eq(passert.Parse, "mechlib.material.untextured.pointer", uint32(0), pointer, c.Prev()); err != nil {
			return nil, err
		}
		if err := passert.Eq(passert.Parse, "mechlib.material.untextured.rgb16", uint16(0), rgb16, c.Prev()); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func encodeMaterial(w *bin.Cursor, m *Material) {
	w.PutU8(m.Unk)
	w.PutU8(m.Flag)
	w.PutU16(m.RGB16)
	w.PutF32(m.R)
	w.PutF32(m.G)
	w.PutF32(m.B)
	w.PutU32(m.Pointer)
	w.PutF32(0)
	w.PutF32(0.5)
	w.PutF32(0.5)
	w.PutU32(0)
	w.PutU32(0) // cycle_ptr is always written zero in mechlib (unlike gamez)
	if m.Textured {
		w.PutPString(m.TextureName)
	}
}

// Node is one entry of the recursive scene graph: a fixed 208-byte header
// (mostly opaque/constant fields, preserved verbatim), an embedded
// Object3D transform, an optional Mesh body, and recursive children.
type Node struct {
	Name string

	Bitfield032 uint32
	Unk044      int32 // always 1 on disk; kept explicit for encode symmetry

	NodePtr  uint32
	ModelPtr uint32

	ParentCount uint32 // 0 or 1
	ParentPtr   uint32
	ChildPtr    uint32

	// Unknown1/2/3 are the three 6-float blocks the format carries with
	// no known meaning; preserved verbatim for byte-exact repack.
	Unknown1, Unknown2, Unknown3 [6]float32

	Unk196 uint32 // always 160 on disk

	Transform *mesh.Object3D
	Model     *mesh.Mesh // nil unless ModelPtr != 0
	Children  []*Node
}

func decodeNode(c *bin.Cursor) (*Node, error) {
	name, nameRaw := c.ZString(nodeNameSize)
	if err := passert.Ascii(passert.Parse, "mechlib.node.name", nameRaw, c.Prev()); err != nil {
		return nil, err
	}
	bitfield032 := c.U32()
	pad040 := c.U32()
	one044 := c.I32()
	flag048 := c.U32()
	pad3 := c.Take(3)
	nodeType := c.U8()
	nodePtr := c.U32()
	modelPtr := c.U32()
	zero1 := c.U32()
	one1 := c.U32()
	zero2 := c.U32()
	negOne1 := c.I32()
	negOne2 := c.I32()
	parentCount := c.U32()
	parentPtr := c.U32()
	childCount := c.U32()
	childPtr := c.U32()
	zeros4 := c.Take(16)

	if err := passert.Eq(passert.Parse, "mechlib.node.pad040", uint32(0), pad040, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.one044", int32(1), one044, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.flag048", uint32(0xFF), flag048, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.AllZero(passert.Parse, "mechlib.node.pad3", pad3, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.node_type", uint8(5), nodeType, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.zero1", uint32(0), zero1, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.one1", uint32(1), one1, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.zero2", uint32(0), zero2, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.neg_one1", int32(-1), negOne1, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.neg_one2", int32(-1), negOne2, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.In(passert.Parse, "mechlib.node.parent_count", []uint32{0, 1}, parentCount, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.AllZero(passert.Parse, "mechlib.node.zeros4", zeros4, c.Prev()); err != nil {
		return nil, err
	}

	n := &Node{
		Name: name, Bitfield032: bitfield032, Unk044: one044,
		NodePtr: nodePtr, ModelPtr: modelPtr,
		ParentCount: parentCount, ParentPtr: parentPtr, ChildPtr: childPtr,
	}

	for i := range n.Unknown1 {
		n.Unknown1[i] = c.F32()
	}
	for i := range n.Unknown2 {
		n.Unknown2[i] = c.F32()
	}
	for i := range n.Unknown3 {
		n.Unknown3[i] = c.F32()
	}
	pad188 := c.U32()
	pad192 := c.U32()
	unk196 := c.U32()
	pad200 := c.U32()
	pad204 := c.U32()
	if err := passert.Eq(passert.Parse, "mechlib.node.pad188", uint32(0), pad188, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.pad192", uint32(0), pad192, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.unk196", uint32(160), unk196, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.pad200", uint32(0), pad200, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "mechlib.node.pad204", uint32(0), pad204, c.Prev()); err != nil {
		return nil, err
	}
	n.Unk196 = unk196

	transform, err := mesh.DecodeObject3D(c)
	if err != nil {
		return nil, err
	}
	n.Transform = transform

	if modelPtr != 0 {
		model, err := mesh.DecodeMesh(c)
		if err != nil {
			return nil, err
		}
		n.Model = model
	}

	n.Children = make([]*Node, childCount)
	for i := range n.Children {
		child, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		n.Children[i] = child
	}
	return n, nil
}

func encodeNode(w *bin.Cursor, n *Node) {
	w.PutZString(n.Name, nodeNameSize, 0)
	w.PutU32(n.Bitfield032)
	w.PutU32(0) // pad040
	w.PutI32(n.Unk044)
	w.PutU32(0xFF) // flag048
	w.PutBytes(make([]byte, 3))
	w.PutU8(5) // node_type
	w.PutU32(n.NodePtr)
	w.PutU32(n.ModelPtr)
	w.PutU32(0)
	w.PutU32(1)
	w.PutU32(0)
	w.PutI32(-1)
	w.PutI32(-1)
	w.PutU32(n.ParentCount)
	w.PutU32(n.ParentPtr)
	w.PutU32(uint32(len(n.Children)))
	w.PutU32(n.ChildPtr)
	w.PutBytes(make([]byte, 16))

	for _, v := range n.Unknown1 {
		w.PutF32(v)
	}
	for _, v := range n.Unknown2 {
		w.PutF32(v)
	}
	for _, v := range n.Unknown3 {
		w.PutF32(v)
	}
	w.PutU32(0) // pad188
	w.PutU32(0) // pad192
	w.PutU32(n.Unk196)
	w.PutU32(0) // pad200
	w.PutU32(0) // pad204

	mesh.EncodeObject3D(w, n.Transform)
	if n.ModelPtr != 0 {
		mesh.EncodeMesh(w, n.Model)
	}
	for _, child := range n.Children {
		encodeNode(w, child)
	}
}

// Model is one top-level model entry: its root node tree.
type Model struct {
	Name string
	Root *Node
}

// Document is a fully decoded mechlib container.
type Document struct {
	Materials []*Material
	Models    []*Model
}

// Decode reads a mechlib container from an already-decoded archive. The
// entry order is fixed: "version", "format", "materials", then one entry
// per model, each entry's name becoming the Model's Name.
func Decode(arc *archive.Document) (*Document, error) {
	if err := passert.Ge(passert.Parse, "mechlib.entry_count", 3, len(arc.Entries), -1); err != nil {
		return nil, err
	}
	verEntry, formatEntry, matEntry := arc.Entries[0], arc.Entries[1], arc.Entries[2]

	verCursor := bin.NewCursor(verEntry.Data)
	ver := verCursor.U32()
	if err := passert.Eq(passert.Parse, "mechlib.version", version, ver, verCursor.Prev()); err != nil {
		return nil, err
	}
	fmtCursor := bin.NewCursor(formatEntry.Data)
	fm := fmtCursor.U32()
	if err := passert.Eq(passert.Parse, "mechlib.format", format, fm, fmtCursor.Prev()); err != nil {
		return nil, err
	}

	c := bin.NewCursor(matEntry.Data)
	count := c.U32()
	doc := &Document{Materials: make([]*Material, count)}
	for i := range doc.Materials {
		mat, err := decodeMaterial(c)
		if err != nil {
			return nil, err
		}
		doc.Materials[i] = mat
	}

	doc.Models = make([]*Model, 0, len(arc.Entries)-3)
	for _, e := range arc.Entries[3:] {
		root, err := decodeNode(bin.NewCursor(e.Data))
		if err != nil {
			return nil, err
		}
		doc.Models = append(doc.Models, &Model{Name: e.Name, Root: root})
	}
	return doc, nil
}

// Encode serializes doc back into an archive.Document laid out exactly
// as Decode expects: version, format, materials, one entry per model.
func Encode(doc *Document) *archive.Document {
	verW := bin.NewWriter()
	verW.PutU32(version)
	fmtW := bin.NewWriter()
	fmtW.PutU32(format)
	matW := bin.NewWriter()
	matW.PutU32(uint32(len(doc.Materials)))
	for _, m := range doc.Materials {
		encodeMaterial(matW, m)
	}

	entries := make([]*archive.Entry, 0, 3+len(doc.Models))
	entries = append(entries,
		&archive.Entry{Name: "version", Data: verW.Bytes()},
		&archive.Entry{Name: "format", Data: fmtW.Bytes()},
		&archive.Entry{Name: "materials", Data: matW.Bytes()},
	)
	for _, model := range doc.Models {
		w := bin.NewWriter()
		encodeNode(w, model.Root)
		entries = append(entries, &archive.Entry{Name: model.Name, Data: w.Bytes()})
	}
	return &archive.Document{Entries: entries}
}
