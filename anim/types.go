// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package anim implements the animation-definition container: a file of
// named animation definitions, each carrying its own object/node/light/
// puffer/sound tables and one or more opcode-tagged event scripts.
package anim

import (
	"github.com/duskforge/mech3kit/internal/passert"
)

// inputNode is the sentinel name substituted for an at-node reference
// whose wire index is the documented INPUT_NODE marker: -200 in the
// signed 32-bit at-node fields, and its unsigned 16-bit form 65336 in
// the connector opcode's from/to fields, which are read as uint16.
const inputNode = "INPUT_NODE"

const inputNodeSentinel = -200

// NamePtrFlag is one entry in the node/light/puffer/dynamic-sound
// tables: a name, the pointer the engine resolved it to at load time
// (preserved verbatim, never recomputed), and an optional flag word.
type NamePtrFlag struct {
	Name string
	Ptr  uint32
	Flag uint32
}

// NameRaw is a name plus the raw trailing bytes of its fixed-width field
// that follow the NUL terminator — preserved verbatim since the field
// isn't reliably zeroed by the original encoder.
type NameRaw struct {
	Name string
	Pad  []byte
}

// AtNodeShort is a translation-only at-node reference.
type AtNodeShort struct {
	Node       string
	Tx, Ty, Tz float32
}

// AtNodeLong is a translation-and-rotation at-node reference.
type AtNodeLong struct {
	Node       string
	Tx, Ty, Tz float32
	Rx, Ry, Rz float32
}

// StartOffset records which part of the surrounding animation an
// event's start_time is relative to.
type StartOffset uint8

const (
	StartOffsetUnset     StartOffset = 0
	StartOffsetAnimation StartOffset = 1
	StartOffsetSequence  StartOffset = 2
	StartOffsetEvent     StartOffset = 3
)

// animActivation enumerates the five activation triggers an AnimDef's
// header can declare, in wire order.
var animActivation = [5]string{
	"WEAPON_HIT",
	"COLLIDE_HIT",
	"WEAPON_OR_COLLIDE_HIT",
	"ON_CALL",
	"ON_STARTUP",
}

func nodeName(def *AnimDef, index1 int32, offset int64) (string, error) {
	idx := index1 - 1
	if idx < 0 || int(idx) >= len(def.Nodes) {
		return "", &passert.Error{Kind: passert.Parse, Name: "anim.node_index", Op: "between", Expected: [2]int{0, len(def.Nodes) - 1}, Actual: idx, Offset: offset}
	}
	return def.Nodes[idx].Name, nil
}

func nodeNameOrInput(def *AnimDef, index1 int32, offset int64) (string, error) {
	if index1 == inputNodeSentinel || index1 == inputNodeSentinel&0xFFFF {
		return inputNode, nil
	}
	return nodeName(def, index1, offset)
}

func lightName(def *AnimDef, index1 int32, offset int64) (string, error) {
	idx := index1 - 1
	if idx < 0 || int(idx) >= len(def.Lights) {
		return "", &passert.Error{Kind: passert.Parse, Name: "anim.light_index", Op: "between", Expected: [2]int{0, len(def.Lights) - 1}, Actual: idx, Offset: offset}
	}
	return def.Lights[idx].Name, nil
}

func pufferName(def *AnimDef, index1 int32, offset int64) (string, error) {
	idx := index1 - 1
	if idx < 0 || int(idx) >= len(def.Puffers) {
		return "", &passert.Error{Kind: passert.Parse, Name: "anim.puffer_index", Op: "between", Expected: [2]int{0, len(def.Puffers) - 1}, Actual: idx, Offset: offset}
	}
	return def.Puffers[idx].Name, nil
}

func soundName(def *AnimDef, index1 int32, offset int64) (string, error) {
	idx := index1 - 1
	if idx < 0 || int(idx) >= len(def.StaticSounds) {
		return "", &passert.Error{Kind: passert.Parse, Name: "anim.sound_index", Op: "between", Expected: [2]int{0, len(def.StaticSounds) - 1}, Actual: idx, Offset: offset}
	}
	return def.StaticSounds[idx].Name, nil
}

// nodeIndex is the inverse of nodeName: it returns the 1-based index an
// encoder should write for name, or 0 if name is the INPUT_NODE
// sentinel name (the caller then writes the raw sentinel value instead).
func nodeIndex(def *AnimDef, name string) uint32 {
	for i, n := range def.Nodes {
		if n.Name == name {
			return uint32(i + 1)
		}
	}
	return 0
}

func lightIndex(def *AnimDef, name string) uint32 {
	for i, n := range def.Lights {
		if n.Name == name {
			return uint32(i + 1)
		}
	}
	return 0
}

func pufferIndex(def *AnimDef, name string) uint32 {
	for i, n := range def.Puffers {
		if n.Name == name {
			return uint32(i + 1)
		}
	}
	return 0
}

func soundIndex(def *AnimDef, name string) uint32 {
	for i, n := range def.StaticSounds {
		if n.Name == name {
			return uint32(i + 1)
		}
	}
	return 0
}

func atShortIndex(def *AnimDef, at *AtNodeShort) int32 {
	if at == nil || at.Node == inputNode {
		return inputNodeSentinel
	}
	return int32(nodeIndex(def, at.Node))
}

func atLongIndex(def *AnimDef, at *AtNodeLong) int32 {
	if at == nil || at.Node == inputNode {
		return inputNodeSentinel
	}
	return int32(nodeIndex(def, at.Node))
}

func decodeAtNodeShort(def *AnimDef, atIndex int32, tx, ty, tz float32, offset int64) (*AtNodeShort, error) {
	name, err := nodeNameOrInputRaw(def, atIndex, offset)
	if err != nil {
		return nil, err
	}
	return &AtNodeShort{Node: name, Tx: tx, Ty: ty, Tz: tz}, nil
}

func decodeAtNodeLong(def *AnimDef, atIndex int32, tx, ty, tz, rx, ry, rz float32, offset int64) (*AtNodeLong, error) {
	name, err := nodeNameOrInputRaw(def, atIndex, offset)
	if err != nil {
		return nil, err
	}
	return &AtNodeLong{Node: name, Tx: tx, Ty: ty, Tz: tz, Rx: rx, Ry: ry, Rz: rz}, nil
}

// nodeNameOrInputRaw resolves a signed 1-based at-node index. Unlike
// nodeNameOrInput (used by the object state and connector opcodes), it
// accepts only the signed -200 form of the INPUT_NODE sentinel, not the
// unsigned 16-bit 65336 form.
func nodeNameOrInputRaw(def *AnimDef, atIndex int32, offset int64) (string, error) {
	if atIndex == inputNodeSentinel {
		return inputNode, nil
	}
	return nodeName(def, atIndex, offset)
}
