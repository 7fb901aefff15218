// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package mesh

import (
	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
	"github.com/duskforge/mech3kit/math/lin"
)

// Light is one point light attached to a mesh with no polygons of its
// own. Every field beyond the Extra count is opaque/unknown and
// preserved verbatim.
type Light struct {
	Unk00, Unk04, Unk08                         uint32
	Extra                                        []lin.V3
	Unk16, Unk20, Unk24                         uint32
	Unk28, Unk32, Unk36, Unk40                  float32
	Ptr                                          uint32
	Unk48, Unk52, Unk56, Unk60, Unk64, Unk68, Unk72 float32
}

func decodeLight(c *bin.Cursor) *Light {
	l := &Light{}
	l.Unk00, l.Unk04, l.Unk08 = c.U32(), c.U32(), c.U32()
	extraCount := c.U32()
	l.Unk16, l.Unk20, l.Unk24 = c.U32(), c.U32(), c.U32()
	l.Unk28, l.Unk32, l.Unk36, l.Unk40 = c.F32(), c.F32(), c.F32(), c.F32()
	l.Ptr = c.U32()
	l.Unk48, l.Unk52, l.Unk56 = c.F32(), c.F32(), c.F32()
	l.Unk60, l.Unk64, l.Unk68, l.Unk72 = c.F32(), c.F32(), c.F32(), c.F32()
	l.Extra = make([]lin.V3, extraCount)
	for i := range l.Extra {
		l.Extra[i] = lin.V3{X: float64(c.F32()), Y: float64(c.F32()), Z: float64(c.F32())}
	}
	return l
}

func encodeLight(w *bin.Cursor, l *Light) {
	w.PutU32(l.Unk00)
	w.PutU32(l.Unk04)
	w.PutU32(l.Unk08)
	w.PutU32(uint32(len(l.Extra)))
	w.PutU32(l.Unk16)
	w.PutU32(l.Unk20)
	w.PutU32(l.Unk24)
	w.PutF32(l.Unk28)
	w.PutF32(l.Unk32)
	w.PutF32(l.Unk36)
	w.PutF32(l.Unk40)
	w.PutU32(l.Ptr)
	w.PutF32(l.Unk48)
	w.PutF32(l.Unk52)
	w.PutF32(l.Unk56)
	w.PutF32(l.Unk60)
	w.PutF32(l.Unk64)
	w.PutF32(l.Unk68)
	w.PutF32(l.Unk72)
	for _, v := range l.Extra {
		w.PutF32(float32(v.X))
		w.PutF32(float32(v.Y))
		w.PutF32(float32(v.Z))
	}
}

// UV is a wire-raw (unflipped) texture coordinate pair. Display() applies
// the 1-v flip the spec describes (§4.H "Polygon") as a pure view — it is
// never applied to the stored value, since re-flipping on Encode would
// not be guaranteed bit-exact under IEEE-754 subtraction.
type UV struct{ U, V float32 }

// Display returns the flipped (u, 1-v) pair used for inspection/export.
func (uv UV) Display() (u, v float32) { return uv.U, 1 - uv.V }

// Polygon is one mesh face.
type Polygon struct {
	VertexIndices []uint32
	NormalIndices []uint32 // present iff VtxBit && NormalPtr != 0
	UVCoords      []UV     // present iff UvPtr != 0, wire-raw (unflipped)
	VertexColors  []lin.V3

	Unk04        uint32
	UnkBit       bool
	VtxBit       bool
	VertexPtr    uint32
	NormalPtr    uint32
	UvPtr        uint32
	ColorPtr     uint32
	UnkPtr       uint32
	TextureIndex uint32
	TextureInfo  uint32
}

func decodePolygon(c *bin.Cursor) (*Polygon, error) {
	vertexInfo := c.U32()
	if err := passert.Lt(passert.Parse, "polygon.vertex_info", uint32(0x400), vertexInfo, c.Prev()); err != nil {
		return nil, err
	}
	unk04 := c.U32()
	vertexPtr := c.U32()
	normalPtr := c.U32()
	uvPtr := c.U32()
	colorPtr := c.U32()
	unkPtr := c.U32()
	textureIndex := c.U32()
	textureInfo := c.U32()

	unkBit := vertexInfo&0x100 != 0
	vtxBit := vertexInfo&0x200 != 0
	vertsInPoly := int(vertexInfo & 0xff)

	p := &Polygon{
		Unk04: unk04, UnkBit: unkBit, VtxBit: vtxBit,
		VertexPtr: vertexPtr, NormalPtr: normalPtr, UvPtr: uvPtr,
		ColorPtr: colorPtr, UnkPtr: unkPtr,
		TextureIndex: textureIndex, TextureInfo: textureInfo,
	}
	p.VertexIndices = make([]uint32, vertsInPoly)
	for i := range p.VertexIndices {
		p.VertexIndices[i] = c.U32()
	}
	if vtxBit && normalPtr != 0 {
		p.NormalIndices = make([]uint32, vertsInPoly)
		for i := range p.NormalIndices {
			p.NormalIndices[i] = c.U32()
		}
	}
	if uvPtr != 0 {
		p.UVCoords = make([]UV, vertsInPoly)
		for i := range p.UVCoords {
			p.UVCoords[i] = UV{U: c.F32(), V: c.F32()}
		}
	}
	p.VertexColors = make([]lin.V3, vertsInPoly)
	for i := range p.VertexColors {
		p.VertexColors[i] = lin.V3{X: float64(c.F32()), Y: float64(c.F32()), Z: float64(c.F32())}
	}
	return p, nil
}

func encodePolygon(w *bin.Cursor, p *Polygon) {
	vertexInfo := uint32(len(p.VertexIndices)) & 0xff
	if p.UnkBit {
		vertexInfo |= 0x100
	}
	if p.VtxBit {
		vertexInfo |= 0x200
	}
	w.PutU32(vertexInfo)
	w.PutU32(p.Unk04)
	w.PutU32(p.VertexPtr)
	w.PutU32(p.NormalPtr)
	w.PutU32(p.UvPtr)
	w.PutU32(p.ColorPtr)
	w.PutU32(p.UnkPtr)
	w.PutU32(p.TextureIndex)
	w.PutU32(p.TextureInfo)
	for _, idx := range p.VertexIndices {
		w.PutU32(idx)
	}
	for _, idx := range p.NormalIndices {
		w.PutU32(idx)
	}
	for _, uv := range p.UVCoords {
		w.PutF32(uv.U)
		w.PutF32(uv.V)
	}
	for _, c := range p.VertexColors {
		w.PutF32(float32(c.X))
		w.PutF32(float32(c.Y))
		w.PutF32(float32(c.Z))
	}
}

// Mesh is a 3D model body shared by mechlib (no Lights/Morphs) and gamez
// (may carry both).
type Mesh struct {
	FilePtr    uint32
	Zero04     uint32
	Unk08      uint32
	HasParents uint32
	Unk40      float32
	Unk44      float32
	Unk72      float32
	Unk76      float32
	Unk80      float32
	Unk84      float32

	PolygonPtr uint32
	VertexPtr  uint32
	NormalPtr  uint32
	LightPtr   uint32
	MorphPtr   uint32

	Vertices []lin.V3
	Normals  []lin.V3
	Morphs   []lin.V3
	Lights   []*Light
	Polygons []*Polygon
}

// MeshCounts holds the array lengths read from a mesh's 92-byte header,
// needed to read the body when the header and body are not contiguous on
// the wire (gamez's mesh table interleaves a mesh-offset field and a run
// of zero-mesh placeholders between every header and its body; mechlib's
// Mesh is read contiguously and has no use for this type, see DecodeMesh).
type MeshCounts struct {
	Polygon, Vertex, Normal, Morph, Light uint32
}

// DecodeMeshInfo reads just a mesh's 92-byte header, returning the array
// counts needed to later read the body with DecodeMeshBody once the
// container's own indirection has pointed the cursor at it.
func DecodeMeshInfo(c *bin.Cursor) (*Mesh, MeshCounts, error) {
	filePtr := c.U32()
	zero04 := c.U32()
	unk08 := c.U32()
	hasParents := c.U32()
	polygonCount := c.U32()
	vertexCount := c.U32()
	normalCount := c.U32()
	morphCount := c.U32()
	lightCount := c.U32()
	zero36 := c.U32()
	unk40 := c.F32()
	unk44 := c.F32()
	zero48 := c.U32()
	polygonPtr := c.U32()
	vertexPtr := c.U32()
	normalPtr := c.U32()
	lightPtr := c.U32()
	morphPtr := c.U32()
	unk72 := c.F32()
	unk76 := c.F32()
	unk80 := c.F32()
	unk84 := c.F32()
	zero88 := c.U32()

	if err := passert.In(passert.Parse, "mesh.file_ptr", []uint32{0, 1}, filePtr, c.Prev()); err != nil {
		return nil, MeshCounts{}, err
	}
	if err := passert.In(passert.Parse, "mesh.zero04", []uint32{0, 1}, zero04, c.Prev()); err != nil {
		return nil, MeshCounts{}, err
	}
	if err := passert.Gt(passert.Parse, "mesh.has_parents", uint32(0), hasParents, c.Prev()); err != nil {
		return nil, MeshCounts{}, err
	}
	if err := passert.Eq(passert.Parse, "mesh.zero36", uint32(0), zero36, c.Prev()); err != nil {
		return nil, MeshCounts{}, err
	}
	if err := passert.Eq(passert.Parse, "mesh.zero48", uint32(0), zero48, c.Prev()); err != nil {
		return nil, MeshCounts{}, err
	}
	if err := passert.Eq(passert.Parse, "mesh.zero88", uint32(0), zero88, c.Prev()); err != nil {
		return nil, MeshCounts{}, err
	}

	m := &Mesh{
		FilePtr: filePtr, Zero04: zero04, Unk08: unk08, HasParents: hasParents,
		Unk40: unk40, Unk44: unk44, Unk72: unk72, Unk76: unk76, Unk80: unk80, Unk84: unk84,
		PolygonPtr: polygonPtr, VertexPtr: vertexPtr, NormalPtr: normalPtr,
		LightPtr: lightPtr, MorphPtr: morphPtr,
	}
	counts := MeshCounts{Polygon: polygonCount, Vertex: vertexCount, Normal: normalCount, Morph: morphCount, Light: lightCount}
	return m, counts, nil
}

// DecodeMeshBody reads the vertex/normal/morph/light/polygon arrays a
// prior DecodeMeshInfo call announced the counts for, attaching them to m.
func DecodeMeshBody(c *bin.Cursor, m *Mesh, counts MeshCounts) error {
	m.Vertices = make([]lin.V3, counts.Vertex)
	for i := range m.Vertices {
		m.Vertices[i] = lin.V3{X: float64(c.F32()), Y: float64(c.F32()), Z: float64(c.F32())}
	}
	m.Normals = make([]lin.V3, counts.Normal)
	for i := range m.Normals {
		m.Normals[i] = lin.V3{X: float64(c.F32()), Y: float64(c.F32()), Z: float64(c.F32())}
	}
	m.Morphs = make([]lin.V3, counts.Morph)
	for i := range m.Morphs {
		m.Morphs[i] = lin.V3{X: float64(c.F32()), Y: float64(c.F32()), Z: float64(c.F32())}
	}
	if counts.Light > 0 {
		m.Lights = make([]*Light, counts.Light)
		for i := range m.Lights {
			m.Lights[i] = decodeLight(c)
		}
	}
	if counts.Polygon > 0 {
		m.Polygons = make([]*Polygon, counts.Polygon)
		for i := range m.Polygons {
			p, err := decodePolygon(c)
			if err != nil {
				return err
			}
			m.Polygons[i] = p
		}
	}
	return nil
}

// EncodeMeshInfo writes just m's 92-byte header, mirroring DecodeMeshInfo.
func EncodeMeshInfo(w *bin.Cursor, m *Mesh) {
	w.PutU32(m.FilePtr)
	w.PutU32(m.Zero04)
	w.PutU32(m.Unk08)
	w.PutU32(m.HasParents)
	w.PutU32(uint32(len(m.Polygons)))
	w.PutU32(uint32(len(m.Vertices)))
	w.PutU32(uint32(len(m.Normals)))
	w.PutU32(uint32(len(m.Morphs)))
	w.PutU32(uint32(len(m.Lights)))
	w.PutU32(0)
	w.PutF32(m.Unk40)
	w.PutF32(m.Unk44)
	w.PutU32(0)
	w.PutU32(m.PolygonPtr)
	w.PutU32(m.VertexPtr)
	w.PutU32(m.NormalPtr)
	w.PutU32(m.LightPtr)
	w.PutU32(m.MorphPtr)
	w.PutF32(m.Unk72)
	w.PutF32(m.Unk76)
	w.PutF32(m.Unk80)
	w.PutF32(m.Unk84)
	w.PutU32(0)
}

// EncodeMeshBody writes m's vertex/normal/morph/light/polygon arrays,
// mirroring DecodeMeshBody.
func EncodeMeshBody(w *bin.Cursor, m *Mesh) {
	for _, v := range m.Vertices {
		w.PutF32(float32(v.X))
		w.PutF32(float32(v.Y))
		w.PutF32(float32(v.Z))
	}
	for _, v := range m.Normals {
		w.PutF32(float32(v.X))
		w.PutF32(float32(v.Y))
		w.PutF32(float32(v.Z))
	}
	for _, v := range m.Morphs {
		w.PutF32(float32(v.X))
		w.PutF32(float32(v.Y))
		w.PutF32(float32(v.Z))
	}
	for _, l := range m.Lights {
		encodeLight(w, l)
	}
	for _, p := range m.Polygons {
		encodePolygon(w, p)
	}
}

// DecodeMesh reads one Mesh's header and body contiguously, the layout
// mechlib uses (§4.H): unlike gamez, nothing is interleaved between a
// mesh's header and its own body.
func DecodeMesh(c *bin.Cursor) (*Mesh, error) {
	m, counts, err := DecodeMeshInfo(c)
	if err != nil {
		return nil, err
	}
	if err := DecodeMeshBody(c, m, counts); err != nil {
		return nil, err
	}
	return m, nil
}

// EncodeMesh writes m's header and body contiguously to w (mechlib layout).
func EncodeMesh(w *bin.Cursor, m *Mesh) {
	EncodeMeshInfo(w, m)
	EncodeMeshBody(w, m)
}
