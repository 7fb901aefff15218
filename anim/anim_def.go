// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
)

const animDefSize = 316

// animDefFlag bits, OR'd into the header's 32-bit flag word.
const (
	flagExecutionByRange     uint32 = 1 << 1
	flagExecutionByZone      uint32 = 1 << 3
	flagHasCallback          uint32 = 1 << 4
	flagResetUnk             uint32 = 1 << 5
	flagNetworkLogSet        uint32 = 1 << 10
	flagNetworkLogOn         uint32 = 1 << 11
	flagSaveLogSet           uint32 = 1 << 12
	flagSaveLogOn            uint32 = 1 << 13
	flagAutoResetNodeStates  uint32 = 1 << 16
	flagProximityDamage      uint32 = 1 << 20
	flagValidMask                   = flagExecutionByRange | flagExecutionByZone |
		flagHasCallback | flagResetUnk | flagNetworkLogSet | flagNetworkLogOn |
		flagSaveLogSet | flagSaveLogOn | flagAutoResetNodeStates | flagProximityDamage
)

// The header embeds four 32-bit words that spell out "RESET_SEQUENCE" in
// ASCII — apparently a left-over compile-time constant from the engine's
// own reset-state bookkeeping rather than anything this codec interprets.
const (
	resetMagic1 uint32 = 0x45534552
	resetMagic2 uint32 = 0x45535F54
	resetMagic3 uint32 = 0x4E455551
	resetMagic4 uint32 = 0x00004543
)

// AnimDef is one fully decoded animation definition: its identity,
// activation rules, object/node/light/puffer/sound tables, and its
// reset-state and named sequences.
type AnimDef struct {
	Name     string
	AnimName string
	AnimRoot string

	AutoResetNodeStates bool
	Activation          string
	ExecutionByRange    *[2]float32
	ExecutionByZone     bool
	NetworkLog          *bool
	SaveLog             *bool
	HasCallback         bool
	ResetTime           *float32
	Health              float32
	ProximityDamage     bool

	Objects          []NameRaw
	Nodes            []NamePtrFlag
	Lights           []NamePtrFlag
	Puffers          []NamePtrFlag
	DynamicSounds    []NamePtrFlag
	StaticSounds     []NameRaw
	ActivationPrereq *ActivationPrereq
	AnimRefs         []NameRaw
	ResetSequence    []Event
	Sequences        []SeqDef

	BaseNodePtr      uint32
	AnimRootPtr      uint32
	ObjectsPtr       uint32
	NodesPtr         uint32
	LightsPtr        uint32
	PuffersPtr       uint32
	DynamicSoundsPtr uint32
	StaticSoundsPtr  uint32
	ActivPrereqsPtr  uint32
	AnimRefsPtr      uint32
	ResetStatePtr    uint32
	SeqDefsPtr       uint32
}

// SeqDef is a named, independently callable event script.
type SeqDef struct {
	Name       string
	OnCall     bool
	Ptr        uint32
	Script     []Event
}

func decodeAnimDefZero(c *bin.Cursor) error {
	raw := c.Take(animDefSize)
	if raw[153] != 3 {
		return passert.Eq(passert.Parse, "anim.def_zero.byte153", byte(3), raw[153], c.Prev()+153)
	}
	raw[153] = 0
	if err := passert.AllZero(passert.Parse, "anim.def_zero.header", raw, c.Prev()); err != nil {
		return err
	}
	reset := c.Take(64)
	return passert.AllZero(passert.Parse, "anim.def_zero.reset", reset, c.Prev())
}

func encodeAnimDefZero(w *bin.Cursor) {
	raw := make([]byte, animDefSize)
	raw[153] = 3
	w.PutBytes(raw)
	w.PutBytes(make([]byte, 64))
}

// decodeAnimDef reads one 316-byte anim-def header plus every table it
// points to, in the same order the original engine wrote them.
func decodeAnimDef(c *bin.Cursor) (*AnimDef, error) {
	animNameRaw, animNameBytes := c.ZString(32)
	if err := passert.Ascii(passert.Parse, "anim.def.anim_name", animNameBytes, c.Prev()); err != nil {
		return nil, err
	}
	nameRaw, nameBytes := c.ZString(32)
	if err := passert.Ascii(passert.Parse, "anim.def.name", nameBytes, c.Prev()); err != nil {
		return nil, err
	}
	baseNodePtr := c.U32()
	if err := passert.Ne(passert.Parse, "anim.def.base_node_ptr", uint32(0), baseNodePtr, c.Prev()); err != nil {
		return nil, err
	}
	animRootRaw, animRootBytes := c.ZString(32)
	if err := passert.Ascii(passert.Parse, "anim.def.anim_root", animRootBytes, c.Prev()); err != nil {
		return nil, err
	}
	animRootPtr := c.U32()
	if nameRaw != animRootRaw {
		if err := passert.Ne(passert.Parse, "anim.def.anim_root_ptr", baseNodePtr, animRootPtr, c.Prev()); err != nil {
			return nil, err
		}
	} else if err := passert.Eq(passert.Parse, "anim.def.anim_root_ptr", baseNodePtr, animRootPtr, c.Prev()); err != nil {
		return nil, err
	}

	zero104 := c.Take(44)
	if err := passert.AllZero(passert.Parse, "anim.def.zero104", zero104, c.Prev()); err != nil {
		return nil, err
	}

	flagRaw := c.U32()
	if err := passert.Flags(passert.Parse, "anim.def.flag", flagValidMask, flagRaw, c.Prev()); err != nil {
		return nil, err
	}

	zero152 := c.U8()
	if err := passert.Eq(passert.Parse, "anim.def.zero152", uint8(0), zero152, c.Prev()); err != nil {
		return nil, err
	}
	activationValue := c.U8()
	if err := passert.In(passert.Parse, "anim.def.activation", []uint8{0, 1, 2, 3, 4}, activationValue, c.Prev()); err != nil {
		return nil, err
	}
	actionPrio := c.U8()
	if err := passert.Eq(passert.Parse, "anim.def.action_prio", uint8(4), actionPrio, c.Prev()); err != nil {
		return nil, err
	}
	byte155 := c.U8()
	if err := passert.Eq(passert.Parse, "anim.def.byte155", uint8(2), byte155, c.Prev()); err != nil {
		return nil, err
	}

	execRangeMin := c.F32()
	execRangeMax := c.F32()
	resetTime := c.F32()
	zero168 := c.F32()
	if err := passert.Eq(passert.Parse, "anim.def.zero168", float32(0), zero168, c.Prev()); err != nil {
		return nil, err
	}
	maxHealth := c.F32()
	if err := passert.Ge(passert.Parse, "anim.def.health", float32(0), maxHealth, c.Prev()); err != nil {
		return nil, err
	}
	curHealth := c.F32()
	if err := passert.Eq(passert.Parse, "anim.def.cur_health", maxHealth, curHealth, c.Prev()); err != nil {
		return nil, err
	}
	for _, name := range []string{"anim.def.zero180", "anim.def.zero184", "anim.def.zero188", "anim.def.zero192"} {
		v := c.U32()
		if err := passert.Eq(passert.Parse, name, uint32(0), v, c.Prev()); err != nil {
			return nil, err
		}
	}
	seqDefsPtr := c.U32()

	int200, int204, int208, int212 := c.U32(), c.U32(), c.U32(), c.U32()
	if err := passert.Eq(passert.Parse, "anim.def.reset_magic1", resetMagic1, int200, c.Prev()-12); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "anim.def.reset_magic2", resetMagic2, int204, c.Prev()-8); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "anim.def.reset_magic3", resetMagic3, int208, c.Prev()-4); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "anim.def.reset_magic4", resetMagic4, int212, c.Prev()); err != nil {
		return nil, err
	}

	zero216 := c.Take(40)
	if err := passert.AllZero(passert.Parse, "anim.def.zero216", zero216, c.Prev()); err != nil {
		return nil, err
	}

	resetStatePtr := c.U32()
	resetStateLength := c.U32()

	seqDefCount := c.U8()
	objectCount := c.U8()
	nodeCount := c.U8()
	lightCount := c.U8()
	pufferCount := c.U8()
	dynamicSoundCount := c.U8()
	staticSoundCount := c.U8()
	unknownCount := c.U8()
	if err := passert.Eq(passert.Parse, "anim.def.unknown_count", uint8(0), unknownCount, c.Prev()); err != nil {
		return nil, err
	}
	activPrereqCount := c.U8()
	activPrereqMinToSatisfy := c.U8()
	animRefCount := c.U8()
	zero275 := c.U8()
	if err := passert.Eq(passert.Parse, "anim.def.zero275", uint8(0), zero275, c.Prev()); err != nil {
		return nil, err
	}

	objectsPtr := c.U32()
	nodesPtr := c.U32()
	lightsPtr := c.U32()
	puffersPtr := c.U32()
	dynamicSoundsPtr := c.U32()
	staticSoundsPtr := c.U32()
	unknownPtr := c.U32()
	if err := passert.Eq(passert.Parse, "anim.def.unknown_ptr", uint32(0), unknownPtr, c.Prev()); err != nil {
		return nil, err
	}
	activPrereqsPtr := c.U32()
	animRefsPtr := c.U32()
	zero312 := c.U32()
	if err := passert.Eq(passert.Parse, "anim.def.zero312", uint32(0), zero312, c.Prev()); err != nil {
		return nil, err
	}

	def := &AnimDef{
		Name:                ascii(nameRaw),
		AnimName:            ascii(animNameRaw),
		AnimRoot:            ascii(animRootRaw),
		AutoResetNodeStates: flagRaw&flagAutoResetNodeStates != 0,
		Activation:          animActivation[activationValue],
		ExecutionByZone:     flagRaw&flagExecutionByZone != 0,
		HasCallback:         flagRaw&flagHasCallback != 0,
		Health:              maxHealth,
		ProximityDamage:     flagRaw&flagProximityDamage != 0,
		BaseNodePtr:         baseNodePtr,
		AnimRootPtr:         animRootPtr,
		SeqDefsPtr:          seqDefsPtr,
		ResetStatePtr:       resetStatePtr,
	}

	if flagRaw&flagExecutionByRange != 0 {
		def.ExecutionByRange = &[2]float32{execRangeMin, execRangeMax}
	} else if err := passert.Eq(passert.Parse, "anim.def.exec_range_min", float32(0), execRangeMin, 0); err != nil {
		return nil, err
	} else if err := passert.Eq(passert.Parse, "anim.def.exec_range_max", float32(0), execRangeMax, 0); err != nil {
		return nil, err
	}
	if flagRaw&flagResetUnk != 0 {
		def.ResetTime = &resetTime
	} else if err := passert.Eq(passert.Parse, "anim.def.reset_time", float32(-1), resetTime, 0); err != nil {
		return nil, err
	}
	if flagRaw&flagNetworkLogSet != 0 {
		v := flagRaw&flagNetworkLogOn != 0
		def.NetworkLog = &v
	}
	if flagRaw&flagSaveLogSet != 0 {
		v := flagRaw&flagSaveLogOn != 0
		def.SaveLog = &v
	}

	if objectCount > 0 {
		if err := passert.Ne(passert.Parse, "anim.def.objects_ptr", uint32(0), objectsPtr, 0); err != nil {
			return nil, err
		}
		objects, err := decodeObjects(c, int(objectCount))
		if err != nil {
			return nil, err
		}
		def.Objects = objects
	} else if err := passert.Eq(passert.Parse, "anim.def.objects_ptr", uint32(0), objectsPtr, 0); err != nil {
		return nil, err
	}
	def.ObjectsPtr = objectsPtr

	if nodeCount > 0 {
		if err := passert.Ne(passert.Parse, "anim.def.nodes_ptr", uint32(0), nodesPtr, 0); err != nil {
			return nil, err
		}
		nodes, err := decodeNodeTable(c, int(nodeCount))
		if err != nil {
			return nil, err
		}
		def.Nodes = nodes
	} else if err := passert.Eq(passert.Parse, "anim.def.nodes_ptr", uint32(0), nodesPtr, 0); err != nil {
		return nil, err
	}
	def.NodesPtr = nodesPtr

	if lightCount > 0 {
		lights, err := decodeLookupTable(c, int(lightCount), false)
		if err != nil {
			return nil, err
		}
		def.Lights = lights
	}
	def.LightsPtr = lightsPtr

	if pufferCount > 0 {
		puffers, err := decodeLookupTable(c, int(pufferCount), true)
		if err != nil {
			return nil, err
		}
		def.Puffers = puffers
	}
	def.PuffersPtr = puffersPtr

	if dynamicSoundCount > 0 {
		snd, err := decodeLookupTable(c, int(dynamicSoundCount), false)
		if err != nil {
			return nil, err
		}
		def.DynamicSounds = snd
	}
	def.DynamicSoundsPtr = dynamicSoundsPtr

	if staticSoundCount > 0 {
		snd, err := decodeStaticSounds(c, int(staticSoundCount))
		if err != nil {
			return nil, err
		}
		def.StaticSounds = snd
	}
	def.StaticSoundsPtr = staticSoundsPtr

	if activPrereqCount > 0 {
		prereq, err := decodeActivationPrereq(c, int(activPrereqCount), uint32(activPrereqMinToSatisfy))
		if err != nil {
			return nil, err
		}
		def.ActivationPrereq = prereq
	}
	def.ActivPrereqsPtr = activPrereqsPtr

	if animRefCount > 0 {
		refs, err := decodeAnimRefs(c, int(animRefCount))
		if err != nil {
			return nil, err
		}
		def.AnimRefs = refs
	}
	def.AnimRefsPtr = animRefsPtr

	reset, err := decodeResetState(c, def, int(resetStateLength), resetStatePtr)
	if err != nil {
		return nil, err
	}
	def.ResetSequence = reset

	if seqDefCount > 0 {
		seqs, err := decodeSequenceDefinitions(c, def, int(seqDefCount))
		if err != nil {
			return nil, err
		}
		def.Sequences = seqs
	}

	return def, nil
}

func ascii(s string) string { return s }

// encodeAnimDef is the exact inverse of decodeAnimDef.
func encodeAnimDef(w *bin.Cursor, def *AnimDef) {
	w.PutZString(def.AnimName, 32, 0)
	w.PutZString(def.Name, 32, 0)
	w.PutU32(def.BaseNodePtr)
	w.PutZString(def.AnimRoot, 32, 0)
	w.PutU32(def.AnimRootPtr)
	w.PutBytes(make([]byte, 44))

	var flag uint32
	if def.AutoResetNodeStates {
		flag |= flagAutoResetNodeStates
	}
	if def.ExecutionByRange != nil {
		flag |= flagExecutionByRange
	}
	if def.ExecutionByZone {
		flag |= flagExecutionByZone
	}
	if def.HasCallback {
		flag |= flagHasCallback
	}
	if def.ResetTime != nil {
		flag |= flagResetUnk
	}
	if def.NetworkLog != nil {
		flag |= flagNetworkLogSet
		if *def.NetworkLog {
			flag |= flagNetworkLogOn
		}
	}
	if def.SaveLog != nil {
		flag |= flagSaveLogSet
		if *def.SaveLog {
			flag |= flagSaveLogOn
		}
	}
	if def.ProximityDamage {
		flag |= flagProximityDamage
	}
	w.PutU32(flag)

	w.PutU8(0)
	activationValue := uint8(0)
	for i, a := range animActivation {
		if a == def.Activation {
			activationValue = uint8(i)
		}
	}
	w.PutU8(activationValue)
	w.PutU8(4)
	w.PutU8(2)

	if def.ExecutionByRange != nil {
		w.PutF32(def.ExecutionByRange[0])
		w.PutF32(def.ExecutionByRange[1])
	} else {
		w.PutF32(0)
		w.PutF32(0)
	}
	if def.ResetTime != nil {
		w.PutF32(*def.ResetTime)
	} else {
		w.PutF32(-1)
	}
	w.PutF32(0)
	w.PutF32(def.Health)
	w.PutF32(def.Health)
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(def.SeqDefsPtr)
	w.PutU32(resetMagic1)
	w.PutU32(resetMagic2)
	w.PutU32(resetMagic3)
	w.PutU32(resetMagic4)
	w.PutBytes(make([]byte, 40))

	w.PutU32(def.ResetStatePtr)
	w.PutU32(uint32(scriptByteLen(def, def.ResetSequence)))

	w.PutU8(uint8(len(def.Sequences)))
	w.PutU8(countU8(len(def.Objects) + 1))
	w.PutU8(countU8(len(def.Nodes) + 1))
	w.PutU8(countU8(len(def.Lights) + boolToInt(len(def.Lights) > 0)))
	w.PutU8(countU8(len(def.Puffers) + boolToInt(len(def.Puffers) > 0)))
	w.PutU8(countU8(len(def.DynamicSounds) + boolToInt(len(def.DynamicSounds) > 0)))
	w.PutU8(countU8(len(def.StaticSounds) + boolToInt(len(def.StaticSounds) > 0)))
	w.PutU8(0)
	activPrereqCount := 0
	minToSatisfy := uint32(0)
	if def.ActivationPrereq != nil {
		activPrereqCount = len(def.ActivationPrereq.AnimList) + activationPrereqObjRecordCount(def.ActivationPrereq)
		minToSatisfy = def.ActivationPrereq.MinToSatisfy
	}
	w.PutU8(countU8(activPrereqCount))
	w.PutU8(uint8(minToSatisfy))
	w.PutU8(countU8(len(def.AnimRefs)))
	w.PutU8(0)

	w.PutU32(def.ObjectsPtr)
	w.PutU32(def.NodesPtr)
	w.PutU32(def.LightsPtr)
	w.PutU32(def.PuffersPtr)
	w.PutU32(def.DynamicSoundsPtr)
	w.PutU32(def.StaticSoundsPtr)
	w.PutU32(0)
	w.PutU32(def.ActivPrereqsPtr)
	w.PutU32(def.AnimRefsPtr)
	w.PutU32(0)

	encodeObjects(w, def.Objects)
	encodeNodeTable(w, def.Nodes)
	if len(def.Lights) > 0 {
		encodeLookupTable(w, def.Lights, false)
	}
	if len(def.Puffers) > 0 {
		encodeLookupTable(w, def.Puffers, true)
	}
	if len(def.DynamicSounds) > 0 {
		encodeLookupTable(w, def.DynamicSounds, false)
	}
	if len(def.StaticSounds) > 0 {
		encodeStaticSounds(w, def.StaticSounds)
	}
	if def.ActivationPrereq != nil {
		encodeActivationPrereq(w, def.ActivationPrereq)
	}
	if len(def.AnimRefs) > 0 {
		encodeAnimRefs(w, def.AnimRefs)
	}
	encodeResetState(w, def)
	if len(def.Sequences) > 0 {
		encodeSequenceDefinitions(w, def, def.Sequences)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func countU8(n int) uint8 { return uint8(n) }

// --- node/light/puffer/sound tables ---

func decodeNodeTable(c *bin.Cursor, count int) ([]NamePtrFlag, error) {
	zeroName := c.Take(32)
	if err := passert.AllZero(passert.Parse, "anim.nodes.zero_name", zeroName, c.Prev()); err != nil {
		return nil, err
	}
	zero := c.U32()
	if err := passert.Eq(passert.Parse, "anim.nodes.zero_flag", uint32(0), zero, c.Prev()); err != nil {
		return nil, err
	}
	zeroPtr := c.U32()
	if err := passert.Eq(passert.Parse, "anim.nodes.zero_ptr", uint32(0), zeroPtr, c.Prev()); err != nil {
		return nil, err
	}

	out := make([]NamePtrFlag, count-1)
	for i := range out {
		name, raw := c.ZString(32)
		if err := passert.Ascii(passert.Parse, "anim.nodes.name", raw, c.Prev()); err != nil {
			return nil, err
		}
		z := c.U32()
		if err := passert.Eq(passert.Parse, "anim.nodes.field32", uint32(0), z, c.Prev()); err != nil {
			return nil, err
		}
		ptr := c.U32()
		if err := passert.Ne(passert.Parse, "anim.nodes.ptr", uint32(0), ptr, c.Prev()); err != nil {
			return nil, err
		}
		out[i] = NamePtrFlag{Name: name, Ptr: ptr}
	}
	return out, nil
}

func encodeNodeTable(w *bin.Cursor, nodes []NamePtrFlag) {
	w.PutBytes(make([]byte, 32))
	w.PutU32(0)
	w.PutU32(0)
	for _, n := range nodes {
		w.PutZString(n.Name, 32, 0)
		w.PutU32(0)
		w.PutU32(n.Ptr)
	}
}

// decodeLookupTable reads the lights/puffers/dynamic-sounds table shape
// (a 44-byte record: name, flag, ptr, zero). Puffers stash a one-byte
// flag in the top 8 bits of the otherwise-zero flag word.
func decodeLookupTable(c *bin.Cursor, count int, isPuffer bool) ([]NamePtrFlag, error) {
	zeroName := c.Take(32)
	if err := passert.AllZero(passert.Parse, "anim.lookup.zero_name", zeroName, c.Prev()); err != nil {
		return nil, err
	}
	for _, n := range []string{"anim.lookup.zero_flag", "anim.lookup.zero_ptr", "anim.lookup.zero_tail"} {
		v := c.U32()
		if err := passert.Eq(passert.Parse, n, uint32(0), v, c.Prev()); err != nil {
			return nil, err
		}
	}

	out := make([]NamePtrFlag, count-1)
	for i := range out {
		var name string
		var err error
		var raw []byte
		if isPuffer {
			name, raw = c.ZString(32)
		} else {
			name, raw = c.ZString(32)
		}
		if err = passert.Ascii(passert.Parse, "anim.lookup.name", raw, c.Prev()); err != nil {
			return nil, err
		}
		flagRaw := c.U32()
		var flag uint32
		if isPuffer {
			if err = passert.Eq(passert.Parse, "anim.lookup.puffer_flag_low", uint32(0), flagRaw&0x00FFFFFF, c.Prev()); err != nil {
				return nil, err
			}
			flag = flagRaw >> 24
		} else if err = passert.Eq(passert.Parse, "anim.lookup.flag", uint32(0), flagRaw, c.Prev()); err != nil {
			return nil, err
		}
		ptr := c.U32()
		if err = passert.Ne(passert.Parse, "anim.lookup.ptr", uint32(0), ptr, c.Prev()); err != nil {
			return nil, err
		}
		zero := c.U32()
		if err = passert.Eq(passert.Parse, "anim.lookup.zero", uint32(0), zero, c.Prev()); err != nil {
			return nil, err
		}
		out[i] = NamePtrFlag{Name: name, Ptr: ptr, Flag: flag}
	}
	return out, nil
}

func encodeLookupTable(w *bin.Cursor, entries []NamePtrFlag, isPuffer bool) {
	w.PutBytes(make([]byte, 32))
	w.PutU32(0)
	w.PutU32(0)
	w.PutU32(0)
	for _, e := range entries {
		w.PutZString(e.Name, 32, 0)
		if isPuffer {
			w.PutU32(e.Flag << 24)
		} else {
			w.PutU32(0)
		}
		w.PutU32(e.Ptr)
		w.PutU32(0)
	}
}

func decodeStaticSounds(c *bin.Cursor, count int) ([]NameRaw, error) {
	zeroName := c.Take(32)
	if err := passert.AllZero(passert.Parse, "anim.sounds.zero_name", zeroName, c.Prev()); err != nil {
		return nil, err
	}
	zeroPtr := c.U32()
	if err := passert.Eq(passert.Parse, "anim.sounds.zero_ptr", uint32(0), zeroPtr, c.Prev()); err != nil {
		return nil, err
	}

	out := make([]NameRaw, count-1)
	for i := range out {
		raw := c.Take(32)
		if err := passert.Ascii(passert.Parse, "anim.sounds.name", raw, c.Prev()); err != nil {
			return nil, err
		}
		name, pad := splitZString(raw)
		ptr := c.U32()
		if err := passert.Eq(passert.Parse, "anim.sounds.ptr", uint32(0), ptr, c.Prev()); err != nil {
			return nil, err
		}
		out[i] = NameRaw{Name: name, Pad: pad}
	}
	return out, nil
}

func encodeStaticSounds(w *bin.Cursor, sounds []NameRaw) {
	w.PutBytes(make([]byte, 32))
	w.PutU32(0)
	for _, s := range sounds {
		w.PutBytes(joinZString(s.Name, s.Pad, 32))
		w.PutU32(0)
	}
}

func decodeObjects(c *bin.Cursor, count int) ([]NameRaw, error) {
	zero := c.Take(96)
	if err := passert.AllZero(passert.Parse, "anim.objects.zero", zero, c.Prev()); err != nil {
		return nil, err
	}

	out := make([]NameRaw, count-1)
	for i := range out {
		nameRaw, nameBytes := c.ZString(32)
		if err := passert.Ascii(passert.Parse, "anim.objects.name", nameBytes, c.Prev()); err != nil {
			return nil, err
		}
		z := c.U32()
		if err := passert.Eq(passert.Parse, "anim.objects.field32", uint32(0), z, c.Prev()); err != nil {
			return nil, err
		}
		dump := c.Take(60)
		out[i] = NameRaw{Name: nameRaw, Pad: trimTrailingZero(dump)}
	}
	return out, nil
}

func encodeObjects(w *bin.Cursor, objects []NameRaw) {
	w.PutBytes(make([]byte, 96))
	for _, o := range objects {
		w.PutZString(o.Name, 32, 0)
		w.PutU32(0)
		dump := make([]byte, 60)
		copy(dump, o.Pad)
		w.PutBytes(dump)
	}
}

func decodeAnimRefs(c *bin.Cursor, count int) ([]NameRaw, error) {
	out := make([]NameRaw, count)
	for i := range out {
		raw := c.Take(64)
		if err := passert.Ascii(passert.Parse, "anim.refs.name", raw, c.Prev()); err != nil {
			return nil, err
		}
		name, pad := splitZString(raw)
		z1 := c.U32()
		if err := passert.Eq(passert.Parse, "anim.refs.zero64", uint32(0), z1, c.Prev()); err != nil {
			return nil, err
		}
		z2 := c.U32()
		if err := passert.Eq(passert.Parse, "anim.refs.zero68", uint32(0), z2, c.Prev()); err != nil {
			return nil, err
		}
		out[i] = NameRaw{Name: name, Pad: trimTrailingZero(pad)}
	}
	return out, nil
}

func encodeAnimRefs(w *bin.Cursor, refs []NameRaw) {
	for _, r := range refs {
		w.PutBytes(joinZString(r.Name, r.Pad, 64))
		w.PutU32(0)
		w.PutU32(0)
	}
}

// splitZString separates a fixed-width field's ASCII prefix (up to the
// first NUL) from whatever follows it, without assuming the remainder
// is itself zeroed.
func splitZString(raw []byte) (name string, pad []byte) {
	i := 0
	for i < len(raw) && raw[i] != 0 {
		i++
	}
	name = string(raw[:i])
	if i+1 < len(raw) {
		pad = append([]byte(nil), raw[i+1:]...)
	}
	return name, pad
}

func joinZString(name string, pad []byte, width int) []byte {
	field := make([]byte, width)
	copy(field, name)
	if len(name)+1+len(pad) <= width {
		copy(field[len(name)+1:], pad)
	}
	return field
}

func trimTrailingZero(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	out := make([]byte, i)
	copy(out, b[:i])
	return out
}
