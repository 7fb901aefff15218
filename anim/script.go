// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
)

const scriptHeaderSize = 12

// Op is implemented by every opcode payload type. It carries no
// behavior of its own — dispatch to the right decode/encode pair goes
// through the opcodeDef registry below, never through a type switch or
// an interface method that varies per opcode.
type Op interface {
	opcodeID() uint8
}

// Event is one event-script entry: an opcode payload plus its
// scheduling metadata.
type Event struct {
	Op          Op
	StartOffset StartOffset
	StartTime   float32
}

// opcodeDef is one entry in the compile-time opcode registry, keyed by
// wire id: the opcode's name and its decode/encode pair, and nothing
// else. Registration is data, not control flow — there is no base class;
// the whole table is a single map literal assigned in ops.go's init.
type opcodeDef struct {
	name   string
	decode func(c *bin.Cursor, def *AnimDef, payloadLen int) (Op, error)
	encode func(w *bin.Cursor, def *AnimDef, op Op) int
}

var opcodeRegistry map[uint8]opcodeDef

// scriptByteLen measures a script's encoded length by encoding it into a
// scratch buffer — the anim-def header must declare the reset
// sequence's byte length before the sequence itself is written, so
// there's no way to avoid computing it up front.
func scriptByteLen(def *AnimDef, events []Event) int {
	if len(events) == 0 {
		return 0
	}
	scratch := bin.NewWriter()
	return encodeScript(scratch, def, events)
}

// decodeScript reads a script occupying exactly length bytes starting
// at the cursor's current position.
func decodeScript(c *bin.Cursor, def *AnimDef, length int) ([]Event, error) {
	end := int(c.Pos()) + length
	var events []Event
	for int(c.Pos()) < end {
		opType := c.U8()
		def_, ok := opcodeRegistry[opType]
		if !ok {
			return nil, &passert.Error{Kind: passert.Parse, Name: "anim.script.type", Op: "in", Expected: "known opcode", Actual: opType, Offset: c.Prev()}
		}
		startOffsetRaw := c.U8()
		if err := passert.In(passert.Parse, "anim.script.start_offset", []uint8{1, 2, 3}, startOffsetRaw, c.Prev()); err != nil {
			return nil, err
		}
		pad := c.U16()
		if err := passert.Eq(passert.Parse, "anim.script.pad", uint16(0), pad, c.Prev()); err != nil {
			return nil, err
		}
		size := c.U32()
		startTime := c.F32()

		startOffset := StartOffset(startOffsetRaw)
		if startTime == 0 {
			if err := passert.Eq(passert.Parse, "anim.script.start_offset_zero_time", StartOffsetAnimation, startOffset, c.Prev()); err != nil {
				return nil, err
			}
			startOffset = StartOffsetUnset
		}

		payloadLen := int(size) - scriptHeaderSize
		op, err := def_.decode(c, def, payloadLen)
		if err != nil {
			return nil, err
		}
		events = append(events, Event{Op: op, StartOffset: startOffset, StartTime: startTime})
	}
	if int(c.Pos()) != end {
		return nil, &passert.Error{Kind: passert.Parse, Name: "anim.script.end", Op: "==", Expected: end, Actual: c.Pos(), Offset: c.Pos()}
	}
	return events, nil
}

// encodeScript writes a script and returns its total byte length
// (script header sizes included).
func encodeScript(w *bin.Cursor, def *AnimDef, events []Event) int {
	start := w.Pos()
	for _, e := range events {
		opDef := opcodeRegistry[e.Op.opcodeID()]
		startOffset := e.StartOffset
		startTime := e.StartTime
		if startOffset == StartOffsetUnset {
			startOffset = StartOffsetAnimation
			startTime = 0
		}
		w.PutU8(e.Op.opcodeID())
		w.PutU8(uint8(startOffset))
		w.PutU16(0)
		sizePos := w.Pos()
		w.PutU32(0) // patched below
		w.PutF32(startTime)
		payloadLen := opDef.encode(w, def, e.Op)
		size := uint32(scriptHeaderSize + payloadLen)
		patchU32(w, sizePos, size)
	}
	return int(w.Pos() - start)
}

// patchU32 overwrites a previously written 32-bit little-endian field.
// Used only to back-patch an event's total size once its payload length
// is known, mirroring the archive footer-then-TOC backward reference.
func patchU32(w *bin.Cursor, pos int64, v uint32) {
	buf := w.Bytes()
	buf[pos] = byte(v)
	buf[pos+1] = byte(v >> 8)
	buf[pos+2] = byte(v >> 16)
	buf[pos+3] = byte(v >> 24)
}

func decodeResetState(c *bin.Cursor, def *AnimDef, length int, ptr uint32) ([]Event, error) {
	nameRaw, nameBytes := c.ZString(56)
	if err := passert.Ascii(passert.Parse, "anim.reset.name", nameBytes, c.Prev()); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "anim.reset.name", "RESET_SEQUENCE", nameRaw, c.Prev()); err != nil {
		return nil, err
	}
	resetPtr := c.U32()
	if err := passert.Eq(passert.Parse, "anim.reset.ptr", ptr, resetPtr, c.Prev()); err != nil {
		return nil, err
	}
	resetLen := c.U32()
	if err := passert.Eq(passert.Parse, "anim.reset.len", uint32(length), resetLen, c.Prev()); err != nil {
		return nil, err
	}
	if length == 0 {
		if err := passert.Eq(passert.Parse, "anim.reset.ptr_zero", uint32(0), ptr, c.Prev()); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := passert.Ne(passert.Parse, "anim.reset.ptr_nonzero", uint32(0), ptr, c.Prev()); err != nil {
		return nil, err
	}
	return decodeScript(c, def, length)
}

func encodeResetState(w *bin.Cursor, def *AnimDef) {
	w.PutZString("RESET_SEQUENCE", 56, 0)
	w.PutU32(def.ResetStatePtr)
	if len(def.ResetSequence) == 0 {
		w.PutU32(0)
		return
	}
	sizePos := w.Pos()
	w.PutU32(0)
	n := encodeScript(w, def, def.ResetSequence)
	patchU32(w, sizePos, uint32(n))
}

const seqDefInfoSize = 64

func decodeSequenceDefinitions(c *bin.Cursor, def *AnimDef, count int) ([]SeqDef, error) {
	out := make([]SeqDef, count)
	for i := range out {
		nameRaw, nameBytes := c.ZString(32)
		if err := passert.Ascii(passert.Parse, "anim.seqdef.name", nameBytes, c.Prev()); err != nil {
			return nil, err
		}
		flag := c.U32()
		if err := passert.In(passert.Parse, "anim.seqdef.flag", []uint32{0x0, 0x303}, flag, c.Prev()); err != nil {
			return nil, err
		}
		zero := c.Take(20)
		if err := passert.AllZero(passert.Parse, "anim.seqdef.zero", zero, c.Prev()); err != nil {
			return nil, err
		}
		ptr := c.U32()
		length := c.U32()
		if err := passert.Gt(passert.Parse, "anim.seqdef.length", uint32(0), length, c.Prev()); err != nil {
			return nil, err
		}
		if err := passert.Ne(passert.Parse, "anim.seqdef.ptr", uint32(0), ptr, c.Prev()); err != nil {
			return nil, err
		}
		script, err := decodeScript(c, def, int(length))
		if err != nil {
			return nil, err
		}
		out[i] = SeqDef{Name: nameRaw, OnCall: flag == 0x303, Ptr: ptr, Script: script}
	}
	return out, nil
}

func encodeSequenceDefinitions(w *bin.Cursor, def *AnimDef, seqs []SeqDef) {
	for _, s := range seqs {
		w.PutZString(s.Name, 32, 0)
		if s.OnCall {
			w.PutU32(0x303)
		} else {
			w.PutU32(0)
		}
		w.PutBytes(make([]byte, 20))
		w.PutU32(s.Ptr)
		sizePos := w.Pos()
		w.PutU32(0)
		n := encodeScript(w, def, s.Script)
		patchU32(w, sizePos, uint32(n))
	}
}

// --- IF/ELSEIF condition comparisons ---

type comparisonLHS struct {
	name          string
	discriminator string
}

var ifConditions = map[uint32]comparisonLHS{
	1:  {"RANDOM_WEIGHT", "float"},
	2:  {"PLAYER_RANGE", "float"},
	4:  {"ANIMATION_LOD", "int"},
	32: {"HW_RENDER", "bool"},
	64: {"PLAYER_1ST_PERSON", "bool"},
}

var ifConditionIDs = map[string]uint32{
	"RANDOM_WEIGHT":     1,
	"PLAYER_RANGE":      2,
	"ANIMATION_LOD":     4,
	"HW_RENDER":         32,
	"PLAYER_1ST_PERSON": 64,
}

// Comparison is the payload of IF/ELSEIF: a named left-hand condition
// compared against a right-hand value whose type the condition fixes.
type Comparison struct {
	LHS           string
	Discriminator string
	BoolValue     bool
	IntValue      uint32
	FloatValue    float32
}

func decodeComparison(condition uint32, raw []byte, offset int64) (Comparison, error) {
	lhs, ok := ifConditions[condition]
	if !ok {
		return Comparison{}, &passert.Error{Kind: passert.Parse, Name: "anim.if.condition", Op: "in", Expected: "known condition", Actual: condition, Offset: offset}
	}
	c := bin.NewCursor(raw)
	out := Comparison{LHS: lhs.name, Discriminator: lhs.discriminator}
	switch lhs.discriminator {
	case "bool":
		out.BoolValue = c.U32() == 0
	case "int":
		out.IntValue = c.U32()
	case "float":
		out.FloatValue = c.F32()
	}
	return out, nil
}

func encodeComparison(w *bin.Cursor, cmp Comparison) {
	w.PutU32(ifConditionIDs[cmp.LHS])
	w.PutU32(0)
	switch cmp.Discriminator {
	case "bool":
		if cmp.BoolValue {
			w.PutU32(0)
		} else {
			w.PutU32(1)
		}
	case "int":
		w.PutU32(cmp.IntValue)
	case "float":
		w.PutF32(cmp.FloatValue)
	}
}
