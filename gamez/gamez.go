// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package gamez implements the full-level "GameZ" container: a 36-byte
// header chaining four sub-tables by absolute offset (textures, materials,
// meshes, nodes), following the same multi-table-of-offsets shape the
// archive footer/TOC and the mechlib node tree use, scaled up to four
// tables instead of one.
package gamez

import (
	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
	"github.com/duskforge/mech3kit/mesh"
)

const (
	signature       uint32 = 0x02971222
	version         uint32 = 27
	textureInfoSize        = 40
)

// Texture is one entry in the level's texture table. The on-disk name
// field packs Name and Suffix into 20 bytes as "name\x00suffix\x00...",
// a null-terminator trick: Suffix is always "tif", "TIF", or empty.
type Texture struct {
	Name   string
	Suffix string
}

func decodeTexture(c *bin.Cursor) (*Texture, error) {
	zero00 := c.U32()
	zero04 := c.U32()
	raw := c.Take(20)
	used := c.U32()
	index := c.U32()
	nextPtr := c.I32()

	if err := passert.Eq(passert.Parse, "texture.zero00", uint32(0), zero00, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "texture.zero04", uint32(0), zero04, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Ascii(passert.Parse, "texture.name", raw, c.Prev()); err != nil {
		return nil, err
	}
	name, suffix, err := splitTextureName(raw)
	if err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "texture.used", uint32(2), used, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "texture.index", uint32(0), index, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "texture.next_ptr", int32(-1), nextPtr, c.Prev()); err != nil {
		return nil, err
	}
	return &Texture{Name: name, Suffix: suffix}, nil
}

var textureSuffixes = []string{"tif", "TIF", ""}

// splitTextureName recovers (name, suffix) from a 20-byte field built as
// name + NUL + suffix, padded with further NUL bytes. The suffix must be
// one of the fixed set; anything else is not a texture name this codec
// understands.
func splitTextureName(raw []byte) (name, suffix string, err error) {
	null := -1
	for i, b := range raw {
		if b == 0 {
			null = i
			break
		}
	}
	if null < 0 {
		return "", "", &passert.Error{Kind: passert.Parse, Name: "texture.name", Op: "has", Expected: "NUL terminator", Actual: raw, Offset: -1, Location: "texture name"}
	}
	name = string(raw[:null])
	for _, s := range textureSuffixes {
		if null+1+len(s) > len(raw) {
			continue
		}
		rest := raw[null+1 : null+1+len(s)]
		if string(rest) != s {
			continue
		}
		tail := raw[null+1+len(s):]
		ok := true
		for _, b := range tail {
			if b != 0 {
				ok = false
				break
			}
		}
		if ok {
			return name, s, nil
		}
	}
	return "", "", &passert.Error{Kind: passert.Parse, Name: "texture.name", Op: "suffix in", Expected: textureSuffixes, Actual: raw, Offset: -1, Location: "texture name"}
}

func encodeTexture(w *bin.Cursor, t *Texture) {
	w.PutU32(0)
	w.PutU32(0)
	raw := make([]byte, 20)
	copy(raw, t.Name)
	raw[len(t.Name)] = 0
	copy(raw[len(t.Name)+1:], t.Suffix)
	w.PutBytes(raw)
	w.PutU32(2)
	w.PutU32(0)
	w.PutI32(-1)
}

// MaterialFlag bits; see Material.Flag. Always and Free are computed on
// encode from whether the material is dead padding, never stored.
type MaterialFlag uint32

const (
	FlagTextured MaterialFlag = 1 << 0
	FlagUnknown  MaterialFlag = 1 << 1
	FlagCycled   MaterialFlag = 1 << 2
	FlagAlways   MaterialFlag = 1 << 4
	FlagFree     MaterialFlag = 1 << 5
)

// untexturedUnk00Values is the fixed set of observed unk00 byte values for
// non-textured materials (grounded on materials.py's documented value
// distribution comment).
var untexturedUnk00Values = []uint8{0, 51, 76, 89, 102, 127, 153, 255}

// Cycle is the texture-animation header following a cycled material.
type Cycle struct {
	Unk00    bool
	Unk04    uint32
	Unk12    float32
	InfoPtr  uint32
	DataPtr  uint32
	Textures []uint32
}

// Material is one live entry in the GameZ material table. Exactly one of
// Texture/Color is set, matching the Textured flag bit.
type Material struct {
	Unk00   uint8
	Unk32   uint8
	Unknown bool
	Texture *uint32
	Color   *[3]float32
	Cycle   *Cycle
}

func decodeMaterialRecord(c *bin.Cursor) (unk00 uint8, flag MaterialFlag, rgb uint16, r, g, b float32, texPtr uint32, unk32 uint8, cyclePtr uint32, index1, index2 int16, err error) {
	unk00 = c.U8()
	flagRaw := c.U8()
	rgb = c.U16()
	r, g, b = c.F32(), c.F32(), c.F32()
	texPtr = c.U32()
	unk20 := c.F32()
	unk24 := c.F32()
	unk28 := c.F32()
	unk32 = uint8(c.U32())
	cyclePtr = c.U32()
	index1 = c.I16()
	index2 = c.I16()

	if err = passert.Eq(passert.Parse, "material.unk20", float32(0), unk20, c.Prev()); err != nil {
		return
	}
	if err = passert.Eq(passert.Parse, "material.unk24", float32(0.5), unk24, c.Prev()); err != nil {
		return
	}
	if err = passert.Eq(passert.Parse, "material.unk28", float32(0.5), unk28, c.Prev()); err != nil {
		return
	}
	flag = MaterialFlag(flagRaw)
	return
}

// decodeLiveMaterial reads material i of mat_count (0-indexed), validating
// the Always/non-Free flag bits and the doubly-linked live index pair.
func decodeLiveMaterial(c *bin.Cursor, i, matCount int, textureCount uint32) (*Material, uint32, error) {
	unk00, flag, rgb, r, g, b, texPtr, unk32, cyclePtr, index1, index2, err := decodeMaterialRecord(c)
	if err != nil {
		return nil, 0, err
	}
	if flag&FlagAlways == 0 {
		return nil, 0, &passert.Error{Kind: passert.Parse, Name: "material.flag_always", Op: "set", Expected: true, Actual: flag, Offset: c.Prev()}
	}
	if flag&FlagFree != 0 {
		return nil, 0, &passert.Error{Kind: passert.Parse, Name: "material.flag_free", Op: "unset", Expected: false, Actual: flag, Offset: c.Prev()}
	}
	cycled := flag&FlagCycled != 0
	m := &Material{Unk00: unk00, Unk32: unk32, Unknown: flag&FlagUnknown != 0}

	if flag&FlagTextured != 0 {
		if err := passert.Eq(passert.Parse, "material.unk00", uint8(255), unk00, c.Prev()); err != nil {
			return nil, 0, err
		}
		if err := passert.Eq(passert.Parse, "material.rgb", uint16(0x7FFF), rgb, c.Prev()); err != nil {
			return nil, 0, err
		}
		if err := passert.Eq(passert.Parse, "material.red", float32(255), r, c.Prev()); err != nil {
			return nil, 0, err
		}
		if err := passert.Eq(passert.Parse, "material.green", float32(255), g, c.Prev()); err != nil {
			return nil, 0, err
		}
		if err := passert.Eq(passert.Parse, "material.blue", float32(255), b, c.Prev()); err != nil {
			return nil, 0, err
		}
		if err := passert.Lt(passert.Parse, "material.texture", textureCount, texPtr, c.Prev()); err != nil {
			return nil, 0, err
		}
		tex := texPtr
		m.Texture = &tex
	} else {
		if err := passert.In(passert.Parse, "material.unk00", untexturedUnk00Values, unk00, c.Prev()); err != nil {
			return nil, 0, err
		}
		if m.Unknown {
			return nil, 0, &passert.Error{Kind: passert.Parse, Name: "material.flag_unknown", Op: "==", Expected: false, Actual: true, Offset: c.Prev()}
		}
		if cycled {
			return nil, 0, &passert.Error{Kind: passert.Parse, Name: "material.texture_cycled", Op: "==", Expected: false, Actual: true, Offset: c.Prev()}
		}
		if err := passert.Eq(passert.Parse, "material.rgb", uint16(0), rgb, c.Prev()); err != nil {
			return nil, 0, err
		}
		if err := passert.Eq(passert.Parse, "material.texture", uint32(0), texPtr, c.Prev()); err != nil {
			return nil, 0, err
		}
		color := [3]float32{r, g, b}
		m.Color = &color
	}

	validUnk32 := []uint8{0, 1, 4, 6, 7, 8, 9, 10, 12, 13}
	if err := passert.In(passert.Parse, "material.unk32", validUnk32, unk32, c.Prev()); err != nil {
		return nil, 0, err
	}

	if cycled {
		if err := passert.Ne(passert.Parse, "material.cycle_ptr", uint32(0), cyclePtr, c.Prev()); err != nil {
			return nil, 0, err
		}
	} else if err := passert.Eq(passert.Parse, "material.cycle_ptr", uint32(0), cyclePtr, c.Prev()); err != nil {
		return nil, 0, err
	}

	expect1 := int16(i + 1)
	if int(expect1) >= matCount {
		expect1 = -1
	}
	if err := passert.Eq(passert.Parse, "material.index1", expect1, index1, c.Prev()); err != nil {
		return nil, 0, err
	}
	expect2 := int16(i - 1)
	if expect2 < 0 {
		expect2 = -1
	}
	if err := passert.Eq(passert.Parse, "material.index2", expect2, index2, c.Prev()); err != nil {
		return nil, 0, err
	}
	return m, cyclePtr, nil
}

// decodeDeadMaterial reads one zeroed padding record i of arraySize, only
// validating shape (these carry no data a document needs to keep).
func decodeDeadMaterial(c *bin.Cursor, i, matCount, arraySize int) error {
	unk00, flag, rgb, r, g, b, texPtr, unk32, cyclePtr, index1, index2, err := decodeMaterialRecord(c)
	if err != nil {
		return err
	}
	if err := passert.Eq(passert.Parse, "material.zero.unk00", uint8(0), unk00, c.Prev()); err != nil {
		return err
	}
	if err := passert.Eq(passert.Parse, "material.zero.flag", FlagFree, flag, c.Prev()); err != nil {
		return err
	}
	if err := passert.Eq(passert.Parse, "material.zero.rgb", uint16(0), rgb, c.Prev()); err != nil {
		return err
	}
	if err := passert.Eq(passert.Parse, "material.zero.red", float32(0), r, c.Prev()); err != nil {
		return err
	}
	if err := passert.Eq(passert.Parse, "material.zero.green", float32(0), g, c.Prev()); err != nil {
		return err
	}
	if err := passert.Eq(passert.Parse, "material.zero.blue", float32(0), b, c.Prev()); err != nil {
		return err
	}
	if err := passert.Eq(passert.Parse, "material.zero.texture", uint32(0), texPtr, c.Prev()); err != nil {
		return err
	}
	if err := passert.Eq(passert.Parse, "material.zero.unk32", uint8(0), unk32, c.Prev()); err != nil {
		return err
	}
	if err := passert.Eq(passert.Parse, "material.zero.cycle_ptr", uint32(0), cyclePtr, c.Prev()); err != nil {
		return err
	}
	expect1 := int16(i - 1)
	if int(expect1) < matCount {
		expect1 = -1
	}
	if err := passert.Eq(passert.Parse, "material.zero.index1", expect1, index1, c.Prev()); err != nil {
		return err
	}
	expect2 := int16(i + 1)
	if int(expect2) >= arraySize {
		expect2 = -1
	}
	if err := passert.Eq(passert.Parse, "material.zero.index2", expect2, index2, c.Prev()); err != nil {
		return err
	}
	return nil
}

func decodeCycle(c *bin.Cursor, textureCount, infoPtr uint32) (*Cycle, error) {
	unk00 := c.U32()
	unk04 := c.U32()
	zero08 := c.U32()
	unk12 := c.F32()
	count1 := c.U32()
	count2 := c.U32()
	dataPtr := c.U32()

	if err := passert.In(passert.Parse, "cycle.unk00", []uint32{0, 1}, unk00, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "cycle.zero08", uint32(0), zero08, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Between(passert.Parse, "cycle.unk12", float32(2), float32(16), unk12, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "cycle.count", count1, count2, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Ne(passert.Parse, "cycle.data_ptr", uint32(0), dataPtr, c.Prev()); err != nil {
		return nil, err
	}
	textures := make([]uint32, count1)
	for i := range textures {
		textures[i] = c.U32()
		if err := passert.Lt(passert.Parse, "cycle.texture", textureCount, textures[i], c.Prev()); err != nil {
			return nil, err
		}
	}
	return &Cycle{Unk00: unk00 == 1, Unk04: unk04, Unk12: unk12, InfoPtr: infoPtr, DataPtr: dataPtr, Textures: textures}, nil
}

func encodeMaterials(w *bin.Cursor, arraySize int, materials []*Material) {
	matCount := len(materials)
	w.PutU32(uint32(arraySize))
	w.PutU32(uint32(matCount))
	w.PutU32(uint32(matCount))
	w.PutU32(uint32(matCount - 1))

	for i, m := range materials {
		index1 := i + 1
		if index1 >= matCount {
			index1 = -1
		}
		index2 := i - 1
		if index2 < 0 {
			index2 = -1
		}
		flag := FlagAlways
		if m.Unknown {
			flag |= FlagUnknown
		}
		var rgb uint16
		var r, g, b float32
		var texPtr uint32
		if m.Texture != nil {
			flag |= FlagTextured
			rgb = 0x7FFF
			r, g, b = 255, 255, 255
			texPtr = *m.Texture
		} else {
			r, g, b = m.Color[0], m.Color[1], m.Color[2]
		}
		cyclePtr := uint32(0)
		if m.Cycle != nil {
			flag |= FlagCycled
			cyclePtr = m.Cycle.InfoPtr
		}
		w.PutU8(m.Unk00)
		w.PutU8(uint8(flag))
		w.PutU16(rgb)
		w.PutF32(r)
		w.PutF32(g)
		w.PutF32(b)
		w.PutU32(texPtr)
		w.PutF32(0)
		w.PutF32(0.5)
		w.PutF32(0.5)
		w.PutU32(uint32(m.Unk32))
		w.PutU32(cyclePtr)
		w.PutI16(int16(index1))
		w.PutI16(int16(index2))
	}

	for i := matCount; i < arraySize; i++ {
		index1 := i - 1
		if index1 < matCount {
			index1 = -1
		}
		index2 := i + 1
		if index2 >= arraySize {
			index2 = -1
		}
		w.PutU8(0)
		w.PutU8(uint8(FlagFree))
		w.PutU16(0)
		w.PutF32(0)
		w.PutF32(0)
		w.PutF32(0)
		w.PutU32(0)
		w.PutF32(0)
		w.PutF32(0)
		w.PutF32(0)
		w.PutU32(0)
		w.PutU32(0)
		w.PutI16(int16(index1))
		w.PutI16(int16(index2))
	}

	for _, m := range materials {
		if m.Cycle == nil {
			continue
		}
		unk00 := uint32(0)
		if m.Cycle.Unk00 {
			unk00 = 1
		}
		count := uint32(len(m.Cycle.Textures))
		w.PutU32(unk00)
		w.PutU32(m.Cycle.Unk04)
		w.PutU32(0)
		w.PutF32(m.Cycle.Unk12)
		w.PutU32(count)
		w.PutU32(count)
		w.PutU32(m.Cycle.DataPtr)
		for _, t := range m.Cycle.Textures {
			w.PutU32(t)
		}
	}
}

// Document is a fully decoded GameZ level container.
type Document struct {
	Textures     []*Texture
	Materials    []*Material
	MatArraySize int

	Meshes        []*mesh.Mesh
	MeshArraySize int

	Nodes         []*Node
	NodeArraySize int
}

// Decode reads a complete GameZ container from buf.
func Decode(buf []byte) (*Document, error) {
	c := bin.NewCursor(buf)

	sig := c.U32()
	ver := c.U32()
	textureCount := c.U32()
	textureOffset := c.U32()
	materialOffset := c.U32()
	meshOffset := c.U32()
	nodeArraySize := c.U32()
	nodeCount := c.U32()
	nodeOffset := c.U32()

	if err := passert.Eq(passert.Parse, "gamez.signature", signature, sig, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.version", version, ver, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Lt(passert.Parse, "gamez.texture_count", uint32(4096), textureCount, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Lt(passert.Parse, "gamez.node_count", nodeArraySize, nodeCount, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.texture_offset", uint32(c.Pos()), textureOffset, c.Pos()); err != nil {
		return nil, err
	}

	textures := make([]*Texture, textureCount)
	for i := range textures {
		t, err := decodeTexture(c)
		if err != nil {
			return nil, err
		}
		textures[i] = t
	}

	if err := passert.Eq(passert.Parse, "gamez.material_offset", uint32(c.Pos()), materialOffset, c.Pos()); err != nil {
		return nil, err
	}
	matArraySize, materials, err := decodeMaterials(c, textureCount)
	if err != nil {
		return nil, err
	}

	if err := passert.Eq(passert.Parse, "gamez.mesh_offset", uint32(c.Pos()), meshOffset, c.Pos()); err != nil {
		return nil, err
	}
	meshArraySize, meshes, err := decodeMeshes(c, uint32(c.Pos()), nodeOffset-1)
	if err != nil {
		return nil, err
	}

	if err := passert.Eq(passert.Parse, "gamez.node_offset", uint32(c.Pos()), nodeOffset, c.Pos()); err != nil {
		return nil, err
	}
	nodes, err := decodeNodes(c, int(nodeArraySize), len(meshes))
	if err != nil {
		return nil, err
	}

	return &Document{
		Textures: textures,
		Materials: materials, MatArraySize: matArraySize,
		Meshes: meshes, MeshArraySize: meshArraySize,
		Nodes: nodes, NodeArraySize: int(nodeArraySize),
	}, nil
}

func decodeMaterials(c *bin.Cursor, textureCount uint32) (int, []*Material, error) {
	arraySize := c.U32()
	matCount := c.U32()
	indexMax := c.U32()
	matUnknown := c.U32()
	if err := passert.Eq(passert.Parse, "materials.index_max", matCount, indexMax, c.Prev()); err != nil {
		return 0, nil, err
	}
	if err := passert.Eq(passert.Parse, "materials.field12", matCount-1, matUnknown, c.Prev()); err != nil {
		return 0, nil, err
	}

	materials := make([]*Material, matCount)
	cyclePtrs := make([]uint32, matCount)
	for i := range materials {
		m, cyclePtr, err := decodeLiveMaterial(c, i, int(matCount), textureCount)
		if err != nil {
			return 0, nil, err
		}
		materials[i] = m
		cyclePtrs[i] = cyclePtr
	}
	for i := int(matCount); i < int(arraySize); i++ {
		if err := decodeDeadMaterial(c, i, int(matCount), int(arraySize)); err != nil {
			return 0, nil, err
		}
	}
	for i, m := range materials {
		if cyclePtrs[i] == 0 {
			continue
		}
		cyc, err := decodeCycle(c, textureCount, cyclePtrs[i])
		if err != nil {
			return 0, nil, err
		}
		m.Cycle = cyc
	}
	return int(arraySize), materials, nil
}

func decodeMeshes(c *bin.Cursor, startOffset, endOffset uint32) (int, []*mesh.Mesh, error) {
	arraySize := c.U32()
	meshCount := c.U32()
	indexMax := c.U32()
	if err := passert.Le(passert.Parse, "meshes.array_size", arraySize, meshCount, c.Prev()); err != nil {
		return 0, nil, err
	}
	if err := passert.Le(passert.Parse, "meshes.index_max", meshCount, indexMax, c.Prev()); err != nil {
		return 0, nil, err
	}

	type pending struct {
		m      *mesh.Mesh
		counts mesh.MeshCounts
		offset uint32
	}
	wrapped := make([]pending, meshCount)
	prevOffset := startOffset
	for i := range wrapped {
		m, counts, err := mesh.DecodeMeshInfo(c)
		if err != nil {
			return 0, nil, err
		}
		offset := c.U32()
		if err := passert.Between(passert.Parse, "meshes.offset", prevOffset, endOffset, offset, c.Prev()); err != nil {
			return 0, nil, err
		}
		wrapped[i] = pending{m: m, counts: counts, offset: offset}
		prevOffset = offset
	}

	for i := int(meshCount); i < int(arraySize); i++ {
		zero := c.Take(92)
		if err := passert.AllZero(passert.Parse, "meshes.zero", zero, c.Prev()); err != nil {
			return 0, nil, err
		}
		expect := int32(i + 1)
		if int(expect) == int(arraySize) {
			expect = -1
		}
		idx := c.I32()
		if err := passert.Eq(passert.Parse, "meshes.zero.index", expect, idx, c.Prev()); err != nil {
			return 0, nil, err
		}
	}

	meshes := make([]*mesh.Mesh, meshCount)
	for i, p := range wrapped {
		if err := passert.Eq(passert.Parse, "meshes.body_offset", p.offset, uint32(c.Pos()), c.Pos()); err != nil {
			return 0, nil, err
		}
		if err := mesh.DecodeMeshBody(c, p.m, p.counts); err != nil {
			return 0, nil, err
		}
		meshes[i] = p.m
	}
	return int(arraySize), meshes, nil
}

// Encode writes doc as a complete GameZ container, recomputing every
// offset field from actual content sizes the same two-pass way the
// archive and texture codecs do.
func Encode(doc *Document) []byte {
	w := bin.NewWriter()

	textureOffset := uint32(36)
	matOffset := textureOffset + uint32(len(doc.Textures))*textureInfoSize

	matsBuf := bin.NewWriter()
	encodeMaterials(matsBuf, doc.MatArraySize, doc.Materials)
	meshOffset := matOffset + uint32(len(matsBuf.Bytes()))

	meshesBuf := bin.NewWriter()
	encodeMeshes(meshesBuf, doc.MeshArraySize, doc.Meshes, meshOffset)
	nodeOffset := meshOffset + uint32(len(meshesBuf.Bytes()))

	w.PutU32(signature)
	w.PutU32(version)
	w.PutU32(uint32(len(doc.Textures)))
	w.PutU32(textureOffset)
	w.PutU32(matOffset)
	w.PutU32(meshOffset)
	w.PutU32(uint32(doc.NodeArraySize))
	w.PutU32(uint32(len(doc.Nodes)))
	w.PutU32(nodeOffset)

	for _, t := range doc.Textures {
		encodeTexture(w, t)
	}
	w.PutBytes(matsBuf.Bytes())
	w.PutBytes(meshesBuf.Bytes())
	encodeNodes(w, doc.NodeArraySize, doc.Nodes, nodeOffset)

	return w.Bytes()
}

func encodeMeshes(w *bin.Cursor, arraySize int, meshes []*mesh.Mesh, startOffset uint32) {
	meshCount := len(meshes)
	w.PutU32(uint32(arraySize))
	w.PutU32(uint32(meshCount))
	w.PutU32(uint32(meshCount))

	headerSize := uint32(12 + 96*arraySize)
	offset := startOffset + headerSize
	offsets := make([]uint32, meshCount)
	for i, m := range meshes {
		offsets[i] = offset
		offset += meshBodySize(m)
	}

	for i, m := range meshes {
		mesh.EncodeMeshInfo(w, m)
		w.PutU32(offsets[i])
	}
	for i := meshCount; i < arraySize; i++ {
		w.PutBytes(make([]byte, 92))
		idx := int32(i + 1)
		if int(idx) == arraySize {
			idx = -1
		}
		w.PutI32(idx)
	}
	for _, m := range meshes {
		mesh.EncodeMeshBody(w, m)
	}
}

func meshBodySize(m *mesh.Mesh) uint32 {
	size := uint32(len(m.Vertices)+len(m.Normals)+len(m.Morphs)) * 12
	for _, l := range m.Lights {
		size += 76 + uint32(len(l.Extra))*12
	}
	for _, p := range m.Polygons {
		size += 36 + uint32(len(p.VertexIndices))*4 + uint32(len(p.NormalIndices))*4 +
			uint32(len(p.UVCoords))*8 + uint32(len(p.VertexColors))*12
	}
	return size
}
