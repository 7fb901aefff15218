// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package mechlib

import (
	"bytes"
	"testing"

	"github.com/duskforge/mech3kit/math/lin"
	"github.com/duskforge/mech3kit/mesh"
)

func buildTestDoc() *Document {
	root := &Node{
		Name:        "root",
		Unk044:      1,
		Unk196:      160,
		ParentCount: 0,
		Transform:   &mesh.Object3D{Flag: mesh.FlagStatic, Matrix: *lin.NewM3I(), MatrixExact: true},
		Children: []*Node{
			{
				Name:        "child",
				Unk044:      1,
				Unk196:      160,
				ParentCount: 1,
				Transform:   &mesh.Object3D{Flag: mesh.FlagStatic, Matrix: *lin.NewM3I(), MatrixExact: true},
			},
		},
	}
	return &Document{
		Materials: []*Material{
			{Unk: 0xFF, Flag: 0, RGB16: 0, R: 0, G: 0, B: 0, Pointer: 0},
			{Unk: 0xFF, Flag: 1, RGB16: 0x7FFF, R: 255, G: 255, B: 255, Pointer: 1, TextureName: "hull.tif"},
		},
		Models: []*Model{
			{Name: "mech01", Root: root},
		},
	}
}

func TestMechlibRoundTrip(t *testing.T) {
	doc := buildTestDoc()
	arc := Encode(doc)
	if len(arc.Entries) != 4 {
		t.Fatalf("expected 4 archive entries (version, format, materials, mech01), got %d", len(arc.Entries))
	}
	if arc.Entries[0].Name != "version" || arc.Entries[1].Name != "format" || arc.Entries[2].Name != "materials" {
		t.Fatalf("unexpected archive entry order: %v", []string{arc.Entries[0].Name, arc.Entries[1].Name, arc.Entries[2].Name})
	}

	back, err := Decode(arc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(back.Materials) != 2 || back.Materials[1].TextureName != "hull.tif" {
		t.Fatalf("materials round trip mismatch: %+v", back.Materials)
	}
	if len(back.Models) != 1 || len(back.Models[0].Root.Children) != 1 {
		t.Fatalf("node tree round trip mismatch: %+v", back.Models)
	}

	arc2 := Encode(back)
	for i := range arc.Entries {
		if !bytes.Equal(arc.Entries[i].Data, arc2.Entries[i].Data) {
			t.Errorf("entry %q round trip mismatch:\n got  %x\n want %x", arc.Entries[i].Name, arc2.Entries[i].Data, arc.Entries[i].Data)
		}
	}
}

func TestMechlibUntexturedMustHaveZeroRGB(t *testing.T) {
	doc := buildTestDoc()
	doc.Materials[0].RGB16 = 0x1234 // violates untextured invariant
	arc := Encode(doc)
	if _, err := Decode(arc); err == nil {
		t.Error("expected error for untextured material with non-zero rgb16")
	}
}
