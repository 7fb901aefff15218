// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package gamez

import (
	"math"

	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
	"github.com/duskforge/mech3kit/mesh"
)

// NodeType tags which of the eight node-body shapes a node's Body field
// holds. The numeric values are this codec's own invention: the original
// enum's wire values aren't present in any grounding source. Decode takes
// each node's type from its wire byte and checks it by position only for
// the fixed World(0)/Window(1)/Camera(2) node-array prefix, so the exact
// numbering only has to be self-consistent between Decode and Encode. Object3D's
// node_type tag of 5 is the one value fixed from outside this package:
// mechlib.decodeNode hardcodes it, so gamez keeps the same number.
type NodeType uint8

const (
	NodeTypeWorld NodeType = iota
	NodeTypeWindow
	NodeTypeCamera
	NodeTypeDisplay
	NodeTypeEmpty
	NodeTypeObject3D
	NodeTypeLOD
	NodeTypeLight
)

// NodeFlag is the node-info bitfield at byte offset 36.
type NodeFlag uint32

const (
	NodeFlagActive           NodeFlag = 1 << 2
	NodeFlagAltitudeSurface  NodeFlag = 1 << 3
	NodeFlagIntersectSurface NodeFlag = 1 << 4
	NodeFlagIntersectBBox    NodeFlag = 1 << 5
	NodeFlagLandmark         NodeFlag = 1 << 7
	NodeFlagUnk08            NodeFlag = 1 << 8
	NodeFlagHasMesh          NodeFlag = 1 << 9
	NodeFlagUnk10            NodeFlag = 1 << 10
	NodeFlagUnk15            NodeFlag = 1 << 15
	NodeFlagCanModify        NodeFlag = 1 << 16
	NodeFlagClipTo           NodeFlag = 1 << 17
	NodeFlagTreeValid        NodeFlag = 1 << 19
	NodeFlagIDZoneCheck      NodeFlag = 1 << 24
	NodeFlagUnk25            NodeFlag = 1 << 25
	NodeFlagUnk28            NodeFlag = 1 << 28
)

const (
	nodeFlagBase    = NodeFlagActive | NodeFlagTreeValid | NodeFlagIDZoneCheck
	nodeFlagDefault = nodeFlagBase | NodeFlagAltitudeSurface | NodeFlagIntersectSurface
)

const (
	zoneDefault    = 255
	nodeHeaderSize = 208
	nodeNameSize   = 36
)

// unk196ByType is the fixed per-type value of node-info field 196.
var unk196ByType = map[NodeType]uint32{
	NodeTypeWorld:    0,
	NodeTypeWindow:   0,
	NodeTypeCamera:   0,
	NodeTypeDisplay:  0,
	NodeTypeEmpty:    160,
	NodeTypeObject3D: 160,
	NodeTypeLOD:      160,
	NodeTypeLight:    0,
}

// Node is one flat entry of the GameZ node array. Unlike mechlib's
// recursively-embedded tree, Parent/Children here are plain indices into
// the same array (§4.I "Node table").
type Node struct {
	Name   string
	Type   NodeType
	Flag   NodeFlag
	Unk044 int32
	ZoneID uint32

	DataPtr        uint32
	MeshIndex      int32 // valid array index only for Object3D with NodeFlagHasMesh set, else -1
	AreaPartitionX int32
	AreaPartitionY int32

	ParentCount      uint32
	ParentArrayPtr   uint32
	ChildrenArrayPtr uint32

	Block1, Block2, Block3 [6]float32

	// Body holds exactly one of *WorldData, *WindowData, *CameraData,
	// *DisplayData, *mesh.Object3D, *LODData, *LightData, selected by
	// Type; nil when Type is NodeTypeEmpty (Empty nodes carry no body).
	Body any

	// Parent is the Empty-node back-reference (an array index, read in
	// place of a body offset) for NodeTypeEmpty, and the generic trailing
	// parent index (valid only when ParentCount != 0) for every other type.
	Parent uint32
	// Children is the generic trailing list of child node indices read
	// immediately after the body; its length is the wire children_count.
	Children []uint32
}

// WorldData is the single World node's body (§4.I "World"): fixed fog/
// area-partition bookkeeping plus the y-major partition grid. There is
// exactly one World node per level, always at array index 0.
type WorldData struct {
	AreaLeft, AreaBottom, AreaRight, AreaTop int32

	AreaPartitionPtr uint32
	FudgeCount       bool // area_partition_count == virt_partition_count - 1 rather than an exact match
	VirtPartitionPtr uint32

	// ChildIndex is read as part of the World body itself, immediately
	// after the fixed struct and before the partition grid - a distinct
	// wire value from the generic Node.Children populated afterwards by
	// the trailing children_count reads, even though both describe the
	// same single child (the Window node) in every known file.
	ChildIndex uint32

	ChildrenPtr uint32
	LightsPtr   uint32

	// Partitions is indexed [y][x] over the area's 256-unit grid cells.
	Partitions [][]Partition
}

// Partition is one 72-byte cell of the World node's partition grid.
type Partition struct {
	X, Y  int32
	Unk20 float32
	Unk32 float32
	// Unk44 cannot be derived from the other stored fields (see
	// node_data_read.py's commented-out assertion): stored verbatim.
	Unk44 float32
	Ptr   uint32
	Nodes []uint32
}

// WindowData is the single Window node's body: entirely fixed, no
// variable state survives to the document.
type WindowData struct{}

// DisplayData is the single Display node's body: entirely fixed.
type DisplayData struct{}

// CameraData is the single Camera node's body (§4.I "Camera"): almost
// every field is fixed or derived from clip/FOV, which are the only
// values that vary between files.
type CameraData struct {
	ClipNearZ, ClipFarZ float32
	FovHBase, FovVBase   float32
}

// LODData is a level-of-detail node's body.
type LODData struct {
	Level         bool
	RangeNear     float32
	RangeFar      float32
	Unk60         float32
	Unk72NonZero  bool
	Unk76         uint32
}

// lightFlagDefault is the fixed bitmask every Light node's flag carries.
// The exact bit layout of the original LightFlag enum isn't present in
// any grounding source (see DESIGN.md); this codec only needs the 32-bit
// value to round-trip identically, so it picks six low bits of its own.
const lightFlagDefault uint32 = 0x3F

// LightData is the single Light node's body: direction plus a handful of
// intensity/range scalars, everything else fixed.
type LightData struct {
	DirectionX, DirectionY, DirectionZ float32
	Diffuse, Ambient                   float32
	RangeMin, RangeMax                  float32
	ParentPtr                          uint32
}

type nodeHeader struct {
	name             string
	flag             NodeFlag
	unk044           int32
	zoneID           uint32
	nodeType         uint8
	dataPtr          uint32
	meshIndex        int32
	areaPartitionX   int32
	areaPartitionY   int32
	parentCount      uint32
	parentArrayPtr   uint32
	childrenCount    uint32
	childrenArrayPtr uint32
	block1, block2, block3 [6]float32
	unk196           uint32
}

func decodeNodeHeader(c *bin.Cursor) (*nodeHeader, error) {
	name, nameRaw := c.ZString(nodeNameSize)
	if err := passert.Ascii(passert.Parse, "gamez.node.name", nameRaw, c.Prev()); err != nil {
		return nil, err
	}
	flag := c.U32()
	zero040 := c.U32()
	unk044 := c.I32()
	zoneID := c.U32()
	pad3 := c.Take(3)
	nodeType := c.U8()
	dataPtr := c.U32()
	meshIndex := c.I32()
	environmentData := c.U32()
	actionPriority := c.U32()
	actionCallback := c.U32()
	areaPartitionX := c.I32()
	areaPartitionY := c.I32()
	parentCount := c.U32()
	parentArrayPtr := c.U32()
	childrenCount := c.U32()
	childrenArrayPtr := c.U32()
	zeros := c.Take(16)

	if err := passert.Eq(passert.Parse, "gamez.node.zero040", uint32(0), zero040, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.AllZero(passert.Parse, "gamez.node.pad3", pad3, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.node.environment_data", uint32(0), environmentData, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.node.action_priority", uint32(1), actionPriority, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.node.action_callback", uint32(0), actionCallback, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.AllZero(passert.Parse, "gamez.node.zeros100", zeros, c.Prev()); err != nil {
		return nil, err
	}

	h := &nodeHeader{
		name: name, flag: NodeFlag(flag), unk044: unk044, zoneID: zoneID, nodeType: nodeType,
		dataPtr: dataPtr, meshIndex: meshIndex,
		areaPartitionX: areaPartitionX, areaPartitionY: areaPartitionY,
		parentCount: parentCount, parentArrayPtr: parentArrayPtr,
		childrenCount: childrenCount, childrenArrayPtr: childrenArrayPtr,
	}
	for i := range h.block1 {
		h.block1[i] = c.F32()
	}
	for i := range h.block2 {
		h.block2[i] = c.F32()
	}
	for i := range h.block3 {
		h.block3[i] = c.F32()
	}
	zero188 := c.U32()
	zero192 := c.U32()
	unk196 := c.U32()
	zero200 := c.U32()
	zero204 := c.U32()
	if err := passert.Eq(passert.Parse, "gamez.node.zero188", uint32(0), zero188, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.node.zero192", uint32(0), zero192, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.node.zero200", uint32(0), zero200, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.node.zero204", uint32(0), zero204, c.Prev()); err != nil {
		return nil, err
	}
	h.unk196 = unk196
	return h, nil
}

func encodeNodeHeader(w *bin.Cursor, n *Node) {
	nameRaw := make([]byte, nodeNameSize)
	copy(nameRaw, n.Name)
	w.PutBytes(nameRaw)
	w.PutU32(uint32(n.Flag))
	w.PutU32(0)
	w.PutI32(n.Unk044)
	w.PutU32(n.ZoneID)
	w.PutBytes(make([]byte, 3))
	w.PutU8(uint8(n.Type))
	w.PutU32(n.DataPtr)
	w.PutI32(n.MeshIndex)
	w.PutU32(0)
	w.PutU32(1)
	w.PutU32(0)
	w.PutI32(n.AreaPartitionX)
	w.PutI32(n.AreaPartitionY)
	w.PutU32(n.ParentCount)
	w.PutU32(n.ParentArrayPtr)
	w.PutU32(uint32(len(n.Children)))
	w.PutU32(n.ChildrenArrayPtr)
	w.PutBytes(make([]byte, 16))
	for _, v := range n.Block1 {
		w.PutF32(v)
	}
	for _, v := range n.Block2 {
		w.PutF32(v)
	}
	for _, v := range n.Block3 {
		w.PutF32(v)
	}
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(unk196ByType[n.Type])
	w.PutU32(0)
	w.PutU32(0)
}

func encodeNodeHeaderZero(w *bin.Cursor) {
	w.PutBytes(make([]byte, nodeNameSize))
	for i := 0; i < 6; i++ {
		w.PutU32(0)
	}
	w.PutI32(-1) // mesh_index, position 7 after name - the one non-zero field node_read.py's zero record asserts
	for i := 0; i < 36; i++ {
		w.PutU32(0)
	}
}

var (
	blockEmpty = [6]float32{0, 0, 0, 0, 0, 0}
	blockLight = [6]float32{1, 1, -2, 2, 2, -1}
)

// assertNodeInfo checks the per-type invariants node_info.py's eight
// _assert_node_info_* functions enforce on the 208-byte header, beyond
// the universal zero/fixed fields decodeNodeHeader already validates.
func assertNodeInfo(h *nodeHeader, meshCount int, offset int64) error {
	t := NodeType(h.nodeType)
	if err := passert.Eq(passert.Parse, "gamez.node.zone_id", uint32(zoneDefault), h.zoneID, offset); err != nil {
		return err
	}

	switch t {
	case NodeTypeEmpty:
		if err := passert.Eq(passert.Parse, "gamez.node.empty.block1", blockEmpty, h.block1, offset); err != nil {
			return err
		}
	case NodeTypeObject3D:
		hasMesh := NodeFlag(h.flag)&NodeFlagHasMesh != 0
		if hasMesh {
			if err := passert.Between(passert.Parse, "gamez.node.object3d.mesh_index", int32(0), int32(meshCount)-1, h.meshIndex, offset); err != nil {
				return err
			}
		} else if err := passert.Eq(passert.Parse, "gamez.node.object3d.mesh_index", int32(-1), h.meshIndex, offset); err != nil {
			return err
		}
	case NodeTypeLOD:
		if err := passert.Ne(passert.Parse, "gamez.node.lod.block1", blockEmpty, h.block1, offset); err != nil {
			return err
		}
		if err := passert.Eq(passert.Parse, "gamez.node.lod.block3_matches_block1", h.block1, h.block3, offset); err != nil {
			return err
		}
	case NodeTypeLight:
		if err := passert.Eq(passert.Parse, "gamez.node.light.block1", blockLight, h.block1, offset); err != nil {
			return err
		}
	case NodeTypeWorld:
		if err := passert.Between(passert.Parse, "gamez.node.world.children_count", uint32(1), uint32(64), h.childrenCount, offset); err != nil {
			return err
		}
		if err := passert.Ne(passert.Parse, "gamez.node.world.children_array_ptr", uint32(0), h.childrenArrayPtr, offset); err != nil {
			return err
		}
	}
	return nil
}

// decodeNodes reads the fixed-size node-info array followed by each
// node's typed body, in the order node_read.py's read_nodes walks it:
// headers+trailing offsets first (stopping early at the first all-zero
// name, since array_size is only an upper bound), then bodies in
// announced order. World/Window/Camera are required at indices 0/1/2.
func decodeNodes(c *bin.Cursor, arraySize, meshCount int) ([]*Node, error) {
	tableStart := uint32(c.Pos())
	type pending struct {
		header *nodeHeader
		offset uint32 // body offset for non-Empty, back-reference for Empty
	}
	pendings := make([]pending, 0, arraySize)

	for i := 0; i < arraySize; i++ {
		save := c.Pos()
		peekName := c.Peek(1)
		if peekName[0] == 0 {
			c.SeekAbs(save)
			break
		}
		h, err := decodeNodeHeader(c)
		if err != nil {
			return nil, err
		}
		if err := assertNodeInfo(h, meshCount, c.Prev()); err != nil {
			return nil, err
		}
		switch i {
		case 0:
			if err := passert.Eq(passert.Parse, "gamez.node.world_index", uint8(NodeTypeWorld), h.nodeType, c.Prev()); err != nil {
				return nil, err
			}
		case 1:
			if err := passert.Eq(passert.Parse, "gamez.node.window_index", uint8(NodeTypeWindow), h.nodeType, c.Prev()); err != nil {
				return nil, err
			}
		case 2:
			if err := passert.Eq(passert.Parse, "gamez.node.camera_index", uint8(NodeTypeCamera), h.nodeType, c.Prev()); err != nil {
				return nil, err
			}
		}
		offset := c.U32()
		pendings = append(pendings, pending{header: h, offset: offset})
	}

	nodeCount := len(pendings)
	endOffset := tableStart + uint32(nodeHeaderSize+4)*uint32(arraySize)
	for i := nodeCount; i < arraySize; i++ {
		zero := c.Take(nodeHeaderSize)
		if err := passert.Eq(passert.Parse, "gamez.node.zero.mesh_index", int32(-1), bin.NewCursor(zero[60:64]).I32(), c.Prev()); err != nil {
			return nil, err
		}
		expect := uint32(i + 1)
		if expect == uint32(arraySize) {
			expect = 0xFFFFFF
		}
		idx := c.U32()
		if err := passert.Eq(passert.Parse, "gamez.node.zero.index", expect, idx, c.Prev()); err != nil {
			return nil, err
		}
	}
	if err := passert.Eq(passert.Parse, "gamez.node.table_end", endOffset, uint32(c.Pos()), c.Pos()); err != nil {
		return nil, err
	}

	nodes := make([]*Node, nodeCount)
	prevOffset := endOffset
	var world *WorldData
	for i, p := range pendings {
		h := p.header
		n := &Node{
			Name: h.name, Type: NodeType(h.nodeType), Flag: h.flag, Unk044: h.unk044, ZoneID: h.zoneID,
			DataPtr: h.dataPtr, MeshIndex: h.meshIndex,
			AreaPartitionX: h.areaPartitionX, AreaPartitionY: h.areaPartitionY,
			ParentCount: h.parentCount, ParentArrayPtr: h.parentArrayPtr, ChildrenArrayPtr: h.childrenArrayPtr,
			Block1: h.block1, Block2: h.block2, Block3: h.block3,
		}
		if n.Type == NodeTypeEmpty {
			if err := passert.Between(passert.Parse, "gamez.node.empty.parent", 4, uint32(arraySize), p.offset, c.Prev()); err != nil {
				return nil, err
			}
			n.Parent = p.offset
			nodes[i] = n
			continue
		}

		if err := passert.Eq(passert.Parse, "gamez.node.body_offset", p.offset, uint32(c.Pos()), c.Pos()); err != nil {
			return nil, err
		}
		if err := passert.Gt(passert.Parse, "gamez.node.body_offset_order", prevOffset-1, p.offset, c.Pos()); err != nil {
			return nil, err
		}
		prevOffset = p.offset

		body, err := decodeNodeBody(c, n.Type, meshCount)
		if err != nil {
			return nil, err
		}
		n.Body = body
		if w, ok := body.(*WorldData); ok {
			world = w
		}

		if n.ParentCount != 0 {
			n.Parent = c.U32()
		}
		n.Children = make([]uint32, h.childrenCount)
		for j := range n.Children {
			n.Children[j] = c.U32()
		}
		nodes[i] = n
	}

	if world != nil {
		if err := assertAreaPartitions(world, nodes); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// assertAreaPartitions cross-checks every node's area_partition_x/y
// against the World node's derived grid dimensions (§4.I "World").
func assertAreaPartitions(world *WorldData, nodes []*Node) error {
	xCount := len(world.Partitions[0])
	yCount := len(world.Partitions)
	for _, n := range nodes {
		if n.AreaPartitionX == -1 && n.AreaPartitionY == -1 {
			continue
		}
		if err := passert.Between(passert.Parse, "gamez.node.area_partition_x", int32(0), int32(xCount)-1, n.AreaPartitionX, -1); err != nil {
			return err
		}
		if err := passert.Between(passert.Parse, "gamez.node.area_partition_y", int32(0), int32(yCount)-1, n.AreaPartitionY, -1); err != nil {
			return err
		}
	}
	return nil
}

func decodeNodeBody(c *bin.Cursor, t NodeType, meshCount int) (any, error) {
	switch t {
	case NodeTypeWorld:
		return decodeWorldData(c)
	case NodeTypeWindow:
		return decodeWindowData(c)
	case NodeTypeCamera:
		return decodeCameraData(c)
	case NodeTypeDisplay:
		return decodeDisplayData(c)
	case NodeTypeObject3D:
		return mesh.DecodeObject3D(c)
	case NodeTypeLOD:
		return decodeLODData(c)
	case NodeTypeLight:
		return decodeLightData(c)
	default:
		return nil, &passert.Error{Kind: passert.Parse, Name: "gamez.node.type", Op: "known", Expected: "0..7 except Empty", Actual: t, Offset: c.Prev()}
	}
}

func decodeWorldData(c *bin.Cursor) (*WorldData, error) {
	flag := c.U32()
	areaPartitionUsed := c.U32()
	areaPartitionCount := c.U32()
	areaPartitionPtr := c.U32()
	fogState := c.U32()
	fogColorR, fogColorG, fogColorB := c.F32(), c.F32(), c.F32()
	fogRangeNear, fogRangeFar := c.F32(), c.F32()
	fogAltiHigh, fogAltiLow := c.F32(), c.F32()
	fogDensity := c.F32()
	areaLeftF, areaBottomF := c.F32(), c.F32()
	areaWidth, areaHeight := c.F32(), c.F32()
	areaRightF, areaTopF := c.F32(), c.F32()
	partitionMaxDecFeatureCount := c.U32()
	virtualPartition := c.U32()
	vpXMin, vpYMin := c.I32(), c.I32()
	vpXMax, vpYMax := c.I32(), c.I32()
	vpXSize, vpYSize := c.F32(), c.F32()
	vpXHalf, vpYHalf := c.F32(), c.F32()
	vpXInv, vpYInv := c.F32(), c.F32()
	vpDiag := c.F32()
	tolLow, tolHigh := c.I32(), c.I32()
	vpXCount, vpYCount := c.I32(), c.I32()
	virtPartitionPtr := c.U32()
	one148, one152, one156 := c.U32(), c.U32(), c.U32()
	childrenCount := c.U32()
	childrenPtr := c.U32()
	lightsPtr := c.U32()
	zero172, zero176, zero180, zero184 := c.U32(), c.U32(), c.U32(), c.U32()

	if err := passert.Eq(passert.Parse, "gamez.world.flag", uint32(0), flag, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.area_partition_used", uint32(0), areaPartitionUsed, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.fog_state", uint32(1), fogState, c.Prev()); err != nil {
		return nil, err
	}
	for name, v := range map[string]float32{
		"fog_color_r": fogColorR, "fog_color_g": fogColorG, "fog_color_b": fogColorB,
		"fog_range_near": fogRangeNear, "fog_range_far": fogRangeFar,
		"fog_alti_high": fogAltiHigh, "fog_alti_low": fogAltiLow, "fog_density": fogDensity,
	} {
		if err := passert.Eq(passert.Parse, "gamez.world."+name, float32(0), v, c.Prev()); err != nil {
			return nil, err
		}
	}

	areaLeft, areaBottom := int32(areaLeftF), int32(areaBottomF)
	areaRight, areaTop := int32(areaRightF), int32(areaTopF)
	if err := passert.Eq(passert.Parse, "gamez.world.area_left", float32(areaLeft), areaLeftF, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.area_bottom", float32(areaBottom), areaBottomF, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.area_right", float32(areaRight), areaRightF, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.area_top", float32(areaTop), areaTopF, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Gt(passert.Parse, "gamez.world.area_right_gt_left", areaLeft, areaRight, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Gt(passert.Parse, "gamez.world.area_bottom_gt_top", areaTop, areaBottom, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.area_width", float32(areaRight-areaLeft), areaWidth, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.area_height", float32(areaTop-areaBottom), areaHeight, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.partition_max_feature", uint32(16), partitionMaxDecFeatureCount, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.virtual_partition", uint32(1), virtualPartition, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_x_min", int32(1), vpXMin, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_y_min", int32(1), vpYMin, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_x_size", float32(256), vpXSize, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_y_size", float32(-256), vpYSize, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_x_half", float32(128), vpXHalf, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_y_half", float32(-128), vpYHalf, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_x_inv", float32(1.0/256.0), vpXInv, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_y_inv", float32(1.0/-256.0), vpYInv, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_diagonal", float32(-192), vpDiag, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_tol_low", int32(3), tolLow, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_tol_high", int32(3), tolHigh, c.Prev()); err != nil {
		return nil, err
	}

	areaXCount := 0
	for x := areaLeft; x < areaRight; x += 256 {
		areaXCount++
	}
	areaYCount := 0
	for y := areaBottom; y > areaTop; y -= 256 {
		areaYCount++
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_x_count", int32(areaXCount), vpXCount, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_y_count", int32(areaYCount), vpYCount, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_x_max", int32(areaXCount-1), vpXMax, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.vp_y_max", int32(areaYCount-1), vpYMax, c.Prev()); err != nil {
		return nil, err
	}
	virtPartitionCount := areaXCount * areaYCount
	if err := passert.Between(passert.Parse, "gamez.world.area_partition_count", uint32(virtPartitionCount-1), uint32(virtPartitionCount), areaPartitionCount, c.Prev()); err != nil {
		return nil, err
	}
	fudgeCount := int(areaPartitionCount) != virtPartitionCount
	if err := passert.Ne(passert.Parse, "gamez.world.area_partition_ptr", uint32(0), areaPartitionPtr, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Ne(passert.Parse, "gamez.world.virt_partition_ptr", uint32(0), virtPartitionPtr, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.field148", uint32(1), one148, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.field152", uint32(1), one152, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.field156", uint32(1), one156, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.world.children_count", uint32(1), childrenCount, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Ne(passert.Parse, "gamez.world.children_ptr", uint32(0), childrenPtr, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Ne(passert.Parse, "gamez.world.lights_ptr", uint32(0), lightsPtr, c.Prev()); err != nil {
		return nil, err
	}
	for name, v := range map[string]uint32{"field172": zero172, "field176": zero176, "field180": zero180, "field184": zero184} {
		if err := passert.Eq(passert.Parse, "gamez.world."+name, uint32(0), v, c.Prev()); err != nil {
			return nil, err
		}
	}

	childIndex := c.U32()

	partitions := make([][]Partition, 0, areaYCount)
	y := areaBottom
	for yi := 0; yi < areaYCount; yi++ {
		row := make([]Partition, 0, areaXCount)
		x := areaLeft
		for xi := 0; xi < areaXCount; xi++ {
			p, err := decodePartition(c, x, y)
			if err != nil {
				return nil, err
			}
			row = append(row, *p)
			x += 256
		}
		partitions = append(partitions, row)
		y -= 256
	}

	return &WorldData{
		AreaLeft: areaLeft, AreaBottom: areaBottom, AreaRight: areaRight, AreaTop: areaTop,
		AreaPartitionPtr: areaPartitionPtr, FudgeCount: fudgeCount, VirtPartitionPtr: virtPartitionPtr,
		ChildIndex: childIndex, ChildrenPtr: childrenPtr, LightsPtr: lightsPtr,
		Partitions: partitions,
	}, nil
}

func decodePartition(c *bin.Cursor, x, y int32) (*Partition, error) {
	flagRaw := c.U32()
	mone04 := c.I32()
	partX := c.I32()
	partY := c.I32()
	unk16 := c.I32()
	unk20 := c.F32()
	unk24 := c.I32()
	unk28 := c.I32()
	unk32 := c.F32()
	unk36 := c.I32()
	unk40 := c.I32()
	unk44 := c.F32()
	unk48 := c.I32()
	unk52 := c.F32()
	zero56 := c.U16()
	count := c.U16()
	ptr := c.U32()
	zero64 := c.U32()
	zero68 := c.U32()

	if err := passert.Eq(passert.Parse, "gamez.partition.flag", uint32(0x100), flagRaw, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.field04", int32(-1), mone04, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.x", x, partX, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.y", y, partY, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.field16", x, unk16, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.field24", y-256, unk24, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.field28", x+256, unk28, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.field36", y, unk36, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.field40", x+128, unk40, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.field48", y-128, unk48, c.Prev()); err != nil {
		return nil, err
	}
	temp := (unk32 - unk20) * 0.5
	expected := mesh.ApproxSqrt(128*128 + temp*temp + 128*128)
	if err := passert.Eq(passert.Parse, "gamez.partition.field52", expected, unk52, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.zero56", uint16(0), zero56, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.zero64", uint32(0), zero64, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.partition.zero68", uint32(0), zero68, c.Prev()); err != nil {
		return nil, err
	}

	var nodes []uint32
	if count != 0 {
		if err := passert.Ne(passert.Parse, "gamez.partition.ptr", uint32(0), ptr, c.Prev()); err != nil {
			return nil, err
		}
		nodes = make([]uint32, count)
		for i := range nodes {
			nodes[i] = c.U32()
		}
	} else if err := passert.Eq(passert.Parse, "gamez.partition.ptr", uint32(0), ptr, c.Prev()); err != nil {
		return nil, err
	}

	return &Partition{X: x, Y: y, Unk20: unk20, Unk32: unk32, Unk44: unk44, Ptr: ptr, Nodes: nodes}, nil
}

func decodeWindowData(c *bin.Cursor) (*WindowData, error) {
	originX, originY := c.U32(), c.U32()
	resX, resY := c.U32(), c.U32()
	zero := c.Take(212)
	bufferIndex := c.I32()
	bufferPtr := c.U32()
	zero236, zero240, zero244 := c.U32(), c.U32(), c.U32()

	if err := passert.Eq(passert.Parse, "gamez.window.origin_x", uint32(0), originX, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.window.origin_y", uint32(0), originY, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.window.resolution_x", uint32(320), resX, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.window.resolution_y", uint32(200), resY, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.AllZero(passert.Parse, "gamez.window.field016", zero, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.window.buffer_index", int32(-1), bufferIndex, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.window.buffer_ptr", uint32(0), bufferPtr, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.window.field236", uint32(0), zero236, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.window.field240", uint32(0), zero240, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.window.field244", uint32(0), zero244, c.Prev()); err != nil {
		return nil, err
	}
	return &WindowData{}, nil
}

const clearColor float32 = 0.3919999897480011

func decodeDisplayData(c *bin.Cursor) (*DisplayData, error) {
	originX, originY := c.U32(), c.U32()
	resX, resY := c.U32(), c.U32()
	r, g, b := c.F32(), c.F32(), c.F32()

	if err := passert.Eq(passert.Parse, "gamez.display.origin_x", uint32(0), originX, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.display.origin_y", uint32(0), originY, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.display.resolution_x", uint32(640), resX, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.display.resolution_y", uint32(400), resY, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.display.clear_color_r", clearColor, r, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.display.clear_color_g", clearColor, g, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.display.clear_color_b", float32(1), b, c.Prev()); err != nil {
		return nil, err
	}
	return &DisplayData{}, nil
}

func decodeCameraData(c *bin.Cursor) (*CameraData, error) {
	worldIndex, windowIndex := c.I32(), c.I32()
	focusXY, focusXZ := c.I32(), c.I32()
	flagRaw := c.I32()
	transX, transY, transZ := c.F32(), c.F32(), c.F32()
	rotX, rotY, rotZ := c.F32(), c.F32(), c.F32()
	zero044 := c.Take(132)
	clipNearZ, clipFarZ := c.F32(), c.F32()
	zero184 := c.Take(24)
	lodMultiplier, lodInvSq := c.F32(), c.F32()
	fovHZoom, fovVZoom := c.F32(), c.F32()
	fovHBase, fovVBase := c.F32(), c.F32()
	fovH, fovV := c.F32(), c.F32()
	fovHHalf, fovVHalf := c.F32(), c.F32()
	one248 := c.U32()
	zero252 := c.Take(60)
	one312 := c.U32()
	zero316 := c.Take(72)
	one388 := c.U32()
	zero392 := c.Take(72)
	zero464 := c.U32()
	fovHTanInv, fovVTanInv := c.F32(), c.F32()
	stride := c.I32()
	zoneSet := c.I32()
	unk484 := c.I32()

	checks := []struct {
		name string
		ok   bool
	}{
		{"world_index", worldIndex == 0},
		{"window_index", windowIndex == 1},
		{"focus_node_xy", focusXY == -1},
		{"focus_node_xz", focusXZ == -1},
		{"flag", flagRaw == 0},
		{"trans", transX == 0 && transY == 0 && transZ == 0},
		{"rot", rotX == 0 && rotY == 0 && rotZ == 0},
		{"lod_mul", lodMultiplier == 1},
		{"lod_inv_sq", lodInvSq == 1},
		{"fov_h_zoom", fovHZoom == 1},
		{"fov_v_zoom", fovVZoom == 1},
		{"fov_h_zoomed", fovH == fovHBase},
		{"fov_v_zoomed", fovV == fovVBase},
		{"fov_h_half", fovHHalf == fovH/2},
		{"fov_v_half", fovVHalf == fovV/2},
		{"field248", one248 == 1},
		{"field312", one312 == 1},
		{"field388", one388 == 1},
		{"field464", zero464 == 0},
		{"stride", stride == 0},
		{"zone_set", zoneSet == 0},
		{"field484", unk484 == -256},
		{"fov_h_tan_inv", fovHTanInv == float32(1.0/math.Tan(float64(fovHBase/2)))},
		{"fov_v_tan_inv", fovVTanInv == float32(1.0/math.Tan(float64(fovVBase/2)))},
	}
	for _, ch := range checks {
		if !ch.ok {
			return nil, &passert.Error{Kind: passert.Parse, Name: "gamez.camera." + ch.name, Op: "fixed", Expected: true, Actual: false, Offset: c.Prev()}
		}
	}
	if err := passert.AllZero(passert.Parse, "gamez.camera.field044", zero044, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.AllZero(passert.Parse, "gamez.camera.field184", zero184, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.AllZero(passert.Parse, "gamez.camera.field252", zero252, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.AllZero(passert.Parse, "gamez.camera.field316", zero316, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.AllZero(passert.Parse, "gamez.camera.field392", zero392, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Gt(passert.Parse, "gamez.camera.clip_near_z", float32(0), clipNearZ, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Gt(passert.Parse, "gamez.camera.clip_far_z", clipNearZ, clipFarZ, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Gt(passert.Parse, "gamez.camera.fov_h_base", float32(0), fovHBase, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Gt(passert.Parse, "gamez.camera.fov_v_base", float32(0), fovVBase, c.Prev()); err != nil {
		return nil, err
	}
	return &CameraData{ClipNearZ: clipNearZ, ClipFarZ: clipFarZ, FovHBase: fovHBase, FovVBase: fovVBase}, nil
}

func decodeLODData(c *bin.Cursor) (*LODData, error) {
	level := c.U32()
	rangeNearSq := c.F32()
	rangeFar := c.F32()
	rangeFarSq := c.F32()
	zero16 := c.Take(44)
	unk60 := c.F32()
	unk64 := c.F32()
	one68 := c.U32()
	field72 := c.U32()
	unk76 := c.U32()

	if err := passert.In(passert.Parse, "gamez.lod.level", []uint32{0, 1}, level, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Between(passert.Parse, "gamez.lod.range_near_sq", float32(0), float32(1000*1000), rangeNearSq, c.Prev()); err != nil {
		return nil, err
	}
	rangeNear := float32(math.Sqrt(float64(rangeNearSq)))
	if err := passert.Ge(passert.Parse, "gamez.lod.range_far", float32(0), rangeFar, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.lod.range_far_sq", rangeFar*rangeFar, rangeFarSq, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.AllZero(passert.Parse, "gamez.lod.field16", zero16, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Ge(passert.Parse, "gamez.lod.field60", float32(0), unk60, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.lod.field64", unk60*unk60, unk64, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.lod.field68", uint32(1), one68, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.In(passert.Parse, "gamez.lod.field72", []uint32{0, 1}, field72, c.Prev()); err != nil {
		return nil, err
	}
	nonZero := field72 != 0
	if nonZero {
		if err := passert.Ne(passert.Parse, "gamez.lod.field76", uint32(0), unk76, c.Prev()); err != nil {
			return nil, err
		}
	} else if err := passert.Eq(passert.Parse, "gamez.lod.field76", uint32(0), unk76, c.Prev()); err != nil {
		return nil, err
	}

	return &LODData{
		Level: level == 1, RangeNear: rangeNear, RangeFar: rangeFar,
		Unk60: unk60, Unk72NonZero: nonZero, Unk76: unk76,
	}, nil
}

func decodeLightData(c *bin.Cursor) (*LightData, error) {
	dirX, dirY, dirZ := c.F32(), c.F32(), c.F32()
	transX, transY, transZ := c.F32(), c.F32(), c.F32()
	zero024 := c.Take(112)
	one136 := c.U32()
	zero140, zero144, zero148, zero152 := c.U32(), c.U32(), c.U32(), c.U32()
	diffuse, ambient := c.F32(), c.F32()
	colorR, colorG, colorB := c.F32(), c.F32(), c.F32()
	flagRaw := c.U32()
	rangeMin, rangeMax := c.F32(), c.F32()
	rangeMinSq, rangeMaxSq := c.F32(), c.F32()
	rangeInv := c.F32()
	parentCount := c.U32()
	parentPtr := c.U32()
	zero208 := c.U32()

	if err := passert.Eq(passert.Parse, "gamez.light.trans_x", float32(0), transX, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.trans_y", float32(0), transY, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.trans_z", float32(0), transZ, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.AllZero(passert.Parse, "gamez.light.field024", zero024, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.field136", uint32(1), one136, c.Prev()); err != nil {
		return nil, err
	}
	for name, v := range map[string]uint32{"field140": zero140, "field144": zero144, "field148": zero148, "field152": zero152} {
		if err := passert.Eq(passert.Parse, "gamez.light."+name, uint32(0), v, c.Prev()); err != nil {
			return nil, err
		}
	}
	if err := passert.Between(passert.Parse, "gamez.light.diffuse", float32(0), float32(1), diffuse, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Between(passert.Parse, "gamez.light.ambient", float32(0), float32(1), ambient, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.color_r", float32(1), colorR, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.color_g", float32(1), colorG, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.color_b", float32(1), colorB, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.flag", lightFlagDefault, flagRaw, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Gt(passert.Parse, "gamez.light.range_min", float32(0), rangeMin, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Gt(passert.Parse, "gamez.light.range_max", rangeMin, rangeMax, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.range_min_sq", rangeMin*rangeMin, rangeMinSq, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.range_max_sq", rangeMax*rangeMax, rangeMaxSq, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.range_inv", float32(1.0/(rangeMax-rangeMin)), rangeInv, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.parent_count", uint32(1), parentCount, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Ne(passert.Parse, "gamez.light.parent_ptr", uint32(0), parentPtr, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "gamez.light.field208", uint32(0), zero208, c.Prev()); err != nil {
		return nil, err
	}

	return &LightData{
		DirectionX: dirX, DirectionY: dirY, DirectionZ: dirZ,
		Diffuse: diffuse, Ambient: ambient, RangeMin: rangeMin, RangeMax: rangeMax,
		ParentPtr: parentPtr,
	}, nil
}

// nodeBodySize returns the exact wire length of n's typed body plus its
// trailing parent/children indices - the same quantity node_write.py's
// _write_node_info computes and returns as the running body-offset total.
func nodeBodySize(n *Node) uint32 {
	var size uint32
	switch b := n.Body.(type) {
	case *WorldData:
		size = 188 + 4 // struct + embedded child index
		for _, row := range b.Partitions {
			for _, p := range row {
				size += 72 + uint32(len(p.Nodes))*4
			}
		}
	case *WindowData:
		size = 248
	case *CameraData:
		size = 488
	case *DisplayData:
		size = 28
	case *mesh.Object3D:
		size = 144
	case *LODData:
		size = 80
	case *LightData:
		size = 212
	}
	if n.ParentCount != 0 {
		size += 4
	}
	size += uint32(len(n.Children)) * 4
	return size
}

// encodeNodes writes the node array the way node_write.py's write_nodes
// does: info headers + trailing index first (computing each non-Empty
// node's absolute body offset as a running total starting right after
// the info table), then zero-padding records, then bodies in order.
func encodeNodes(w *bin.Cursor, arraySize int, nodes []*Node, startOffset uint32) {
	nodeCount := len(nodes)
	offset := startOffset + uint32(nodeHeaderSize+4)*uint32(arraySize)

	for _, n := range nodes {
		encodeNodeHeader(w, n)
		var index uint32
		if n.Type == NodeTypeEmpty {
			index = n.Parent
		} else {
			index = offset
			offset += nodeBodySize(n)
		}
		w.PutU32(index)
	}

	for i := nodeCount; i < arraySize; i++ {
		encodeNodeHeaderZero(w)
		index := uint32(i + 1)
		if index == uint32(arraySize) {
			index = 0xFFFFFF
		}
		w.PutU32(index)
	}

	for _, n := range nodes {
		if n.Type == NodeTypeEmpty {
			continue
		}
		encodeNodeBody(w, n)
		if n.ParentCount != 0 {
			w.PutU32(n.Parent)
		}
		for _, ch := range n.Children {
			w.PutU32(ch)
		}
	}
}

func encodeNodeBody(w *bin.Cursor, n *Node) {
	switch b := n.Body.(type) {
	case *WorldData:
		encodeWorldData(w, b)
	case *WindowData:
		encodeWindowData(w)
	case *CameraData:
		encodeCameraData(w, b)
	case *DisplayData:
		encodeDisplayData(w)
	case *mesh.Object3D:
		mesh.EncodeObject3D(w, b)
	case *LODData:
		encodeLODData(w, b)
	case *LightData:
		encodeLightData(w, b)
	}
}

func encodeWorldData(w *bin.Cursor, d *WorldData) {
	areaXCount := len(d.Partitions[0])
	areaYCount := len(d.Partitions)
	virtPartitionCount := areaXCount * areaYCount
	areaPartitionCount := uint32(virtPartitionCount)
	if d.FudgeCount {
		areaPartitionCount--
	}

	w.PutU32(0) // flag
	w.PutU32(0) // area_partition_used
	w.PutU32(areaPartitionCount)
	w.PutU32(d.AreaPartitionPtr)
	w.PutU32(1) // fog_state
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(float32(d.AreaLeft))
	w.PutF32(float32(d.AreaBottom))
	w.PutF32(float32(d.AreaRight - d.AreaLeft))
	w.PutF32(float32(d.AreaTop - d.AreaBottom))
	w.PutF32(float32(d.AreaRight))
	w.PutF32(float32(d.AreaTop))
	w.PutU32(16)
	w.PutU32(1)
	w.PutI32(1)
	w.PutI32(1)
	w.PutI32(int32(areaXCount - 1))
	w.PutI32(int32(areaYCount - 1))
	w.PutF32(256)
	w.PutF32(-256)
	w.PutF32(128)
	w.PutF32(-128)
	w.PutF32(1.0 / 256.0)
	w.PutF32(1.0 / -256.0)
	w.PutF32(-192)
	w.PutI32(3)
	w.PutI32(3)
	w.PutI32(int32(areaXCount))
	w.PutI32(int32(areaYCount))
	w.PutU32(d.VirtPartitionPtr)
	w.PutU32(1)
	w.PutU32(1)
	w.PutU32(1)
	w.PutU32(1) // children_count
	w.PutU32(d.ChildrenPtr)
	w.PutU32(d.LightsPtr)
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(0)

	w.PutU32(d.ChildIndex)

	y := d.AreaBottom
	for _, row := range d.Partitions {
		x := d.AreaLeft
		for _, p := range row {
			encodePartition(w, p, x, y)
			x += 256
		}
		y -= 256
	}
}

func encodePartition(w *bin.Cursor, p Partition, x, y int32) {
	w.PutU32(0x100)
	w.PutI32(-1)
	w.PutI32(x)
	w.PutI32(y)
	w.PutI32(x)
	w.PutF32(p.Unk20)
	w.PutI32(y - 256)
	w.PutI32(x + 256)
	w.PutF32(p.Unk32)
	w.PutI32(y)
	w.PutI32(x + 128)
	w.PutF32(p.Unk44)
	w.PutI32(y - 128)
	temp := (p.Unk32 - p.Unk20) * 0.5
	w.PutF32(mesh.ApproxSqrt(128*128 + temp*temp + 128*128))
	w.PutU16(0)
	w.PutU16(uint16(len(p.Nodes)))
	w.PutU32(p.Ptr)
	w.PutU32(0)
	w.PutU32(0)
	for _, idx := range p.Nodes {
		w.PutU32(idx)
	}
}

func encodeWindowData(w *bin.Cursor) {
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(320)
	w.PutU32(200)
	w.PutBytes(make([]byte, 212))
	w.PutI32(-1)
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(0)
}

func encodeDisplayData(w *bin.Cursor) {
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(640)
	w.PutU32(400)
	w.PutF32(clearColor)
	w.PutF32(clearColor)
	w.PutF32(1)
}

func encodeCameraData(w *bin.Cursor, d *CameraData) {
	w.PutI32(0)
	w.PutI32(1)
	w.PutI32(-1)
	w.PutI32(-1)
	w.PutI32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutBytes(make([]byte, 132))
	w.PutF32(d.ClipNearZ)
	w.PutF32(d.ClipFarZ)
	w.PutBytes(make([]byte, 24))
	w.PutF32(1)
	w.PutF32(1)
	w.PutF32(1)
	w.PutF32(1)
	w.PutF32(d.FovHBase)
	w.PutF32(d.FovVBase)
	w.PutF32(d.FovHBase)
	w.PutF32(d.FovVBase)
	w.PutF32(d.FovHBase / 2)
	w.PutF32(d.FovVBase / 2)
	w.PutU32(1)
	w.PutBytes(make([]byte, 60))
	w.PutU32(1)
	w.PutBytes(make([]byte, 72))
	w.PutU32(1)
	w.PutBytes(make([]byte, 72))
	w.PutU32(0)
	w.PutF32(float32(1.0 / math.Tan(float64(d.FovHBase/2))))
	w.PutF32(float32(1.0 / math.Tan(float64(d.FovVBase/2))))
	w.PutI32(0)
	w.PutI32(0)
	w.PutI32(-256)
}

func encodeLODData(w *bin.Cursor, d *LODData) {
	level := uint32(0)
	if d.Level {
		level = 1
	}
	w.PutU32(level)
	rangeNearSq := d.RangeNear * d.RangeNear
	w.PutF32(rangeNearSq)
	w.PutF32(d.RangeFar)
	w.PutF32(d.RangeFar * d.RangeFar)
	w.PutBytes(make([]byte, 44))
	w.PutF32(d.Unk60)
	w.PutF32(d.Unk60 * d.Unk60)
	w.PutU32(1)
	field72 := uint32(0)
	if d.Unk72NonZero {
		field72 = 1
	}
	w.PutU32(field72)
	w.PutU32(d.Unk76)
}

func encodeLightData(w *bin.Cursor, d *LightData) {
	w.PutF32(d.DirectionX)
	w.PutF32(d.DirectionY)
	w.PutF32(d.DirectionZ)
	w.PutF32(0)
	w.PutF32(0)
	w.PutF32(0)
	w.PutBytes(make([]byte, 112))
	w.PutU32(1)
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(0)
	w.PutF32(d.Diffuse)
	w.PutF32(d.Ambient)
	w.PutF32(1)
	w.PutF32(1)
	w.PutF32(1)
	w.PutU32(lightFlagDefault)
	w.PutF32(d.RangeMin)
	w.PutF32(d.RangeMax)
	w.PutF32(d.RangeMin * d.RangeMin)
	w.PutF32(d.RangeMax * d.RangeMax)
	w.PutF32(1.0 / (d.RangeMax - d.RangeMin))
	w.PutU32(1)
	w.PutU32(d.ParentPtr)
	w.PutU32(0)
}
