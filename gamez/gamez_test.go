// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package gamez

import (
	"bytes"
	"testing"

	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/math/lin"
	"github.com/duskforge/mech3kit/mesh"
)

func buildTestDoc() *Document {
	tex0 := uint32(0)

	world := &Node{
		Name:             "world1",
		Type:             NodeTypeWorld,
		Flag:             nodeFlagBase,
		ZoneID:           zoneDefault,
		MeshIndex:        -1,
		AreaPartitionX:   -1,
		AreaPartitionY:   -1,
		ChildrenArrayPtr: 0x9000,
		Children:         []uint32{1},
		Body: &WorldData{
			AreaLeft: 0, AreaBottom: 256, AreaRight: 256, AreaTop: 0,
			AreaPartitionPtr: 0x2000,
			VirtPartitionPtr: 0x3000,
			ChildIndex:       1,
			ChildrenPtr:      0x4000,
			LightsPtr:        0x5000,
			Partitions: [][]Partition{
				{{X: 0, Y: 256, Unk20: 0, Unk32: 0, Unk44: 0, Ptr: 0}},
			},
		},
	}
	window := &Node{
		Name:           "window1",
		Type:           NodeTypeWindow,
		ZoneID:         zoneDefault,
		MeshIndex:      -1,
		AreaPartitionX: -1,
		AreaPartitionY: -1,
		Body:           &WindowData{},
	}
	camera := &Node{
		Name:           "camera1",
		Type:           NodeTypeCamera,
		ZoneID:         zoneDefault,
		MeshIndex:      -1,
		AreaPartitionX: -1,
		AreaPartitionY: -1,
		Body:           &CameraData{ClipNearZ: 1, ClipFarZ: 1000, FovHBase: 1.0, FovVBase: 0.75},
	}

	return &Document{
		Textures: []*Texture{{Name: "floor1", Suffix: "tif"}},
		Materials: []*Material{
			{
				Unk00: 255, Unk32: 0, Texture: &tex0,
				Cycle: &Cycle{Unk00: true, Unk04: 7, Unk12: 5, InfoPtr: 0x6000, DataPtr: 0x7000, Textures: []uint32{0}},
			},
			{Unk00: 0, Unk32: 0, Color: &[3]float32{0.5, 0.5, 0.5}},
		},
		MatArraySize:  2,
		Nodes:         []*Node{world, window, camera},
		NodeArraySize: 4,
	}
}

func TestGameZRoundTrip(t *testing.T) {
	doc := buildTestDoc()
	raw := Encode(doc)

	back, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	raw2 := Encode(back)
	if !bytes.Equal(raw, raw2) {
		t.Errorf("round trip mismatch:\n got  %x\n want %x", raw2, raw)
	}

	if len(back.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(back.Nodes))
	}
	if back.Nodes[0].Type != NodeTypeWorld || back.Nodes[1].Type != NodeTypeWindow || back.Nodes[2].Type != NodeTypeCamera {
		t.Errorf("node types = %v, %v, %v; want World, Window, Camera", back.Nodes[0].Type, back.Nodes[1].Type, back.Nodes[2].Type)
	}
	world, ok := back.Nodes[0].Body.(*WorldData)
	if !ok {
		t.Fatalf("node 0 body is %T, want *WorldData", back.Nodes[0].Body)
	}
	if len(world.Partitions) != 1 || len(world.Partitions[0]) != 1 {
		t.Errorf("world partitions = %v, want a 1x1 grid", world.Partitions)
	}
	if len(back.Materials) != 2 || back.Materials[0].Cycle == nil {
		t.Fatalf("expected 2 materials with the first cycled")
	}
	if back.Materials[1].Color == nil || back.Materials[1].Texture != nil {
		t.Errorf("expected the second material to be a plain color, got %+v", back.Materials[1])
	}
	if got := back.Materials[0].Cycle.Textures; len(got) != 1 || got[0] != 0 {
		t.Errorf("cycle textures = %v, want [0]", got)
	}
}

func TestSplitTextureName(t *testing.T) {
	cases := []struct {
		name, suffix string
	}{
		{"floor1", "tif"},
		{"floor2", "TIF"},
		{"floor3", ""},
	}
	for _, c := range cases {
		raw := make([]byte, 20)
		copy(raw, c.name)
		raw[len(c.name)] = 0
		copy(raw[len(c.name)+1:], c.suffix)

		name, suffix, err := splitTextureName(raw)
		if err != nil {
			t.Fatalf("splitTextureName(%q/%q): %v", c.name, c.suffix, err)
		}
		if name != c.name || suffix != c.suffix {
			t.Errorf("splitTextureName(%q/%q) = (%q, %q)", c.name, c.suffix, name, suffix)
		}
	}
}

func TestSplitTextureNameBadSuffix(t *testing.T) {
	raw := make([]byte, 20)
	copy(raw, "floor1")
	raw[6] = 0
	copy(raw[7:], "bmp")
	if _, _, err := splitTextureName(raw); err == nil {
		t.Error("expected error for an unrecognized suffix")
	}
}

func TestMeshBodySizeMatchesMeshPackage(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []lin.V3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}},
	}
	w := bin.NewWriter()
	mesh.EncodeMeshBody(w, m)
	if got, want := meshBodySize(m), uint32(len(w.Bytes())); got != want {
		t.Errorf("meshBodySize = %d, want %d", got, want)
	}
}
