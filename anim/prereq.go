// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
)

// PrereqObject is one object-activation prerequisite. ParentName is set
// when this object was preceded by a "previous node" record (wire
// prereq type 3) latching it as this object's parent; ParentName is
// empty otherwise.
type PrereqObject struct {
	Required   bool
	Active     bool
	Name       string
	Ptr        uint32
	ParentName string
	ParentPtr  uint32
}

// ActivationPrereq is the small mini-language gating when an animation
// is allowed to activate: a minimum number of its listed conditions
// must hold.
type ActivationPrereq struct {
	MinToSatisfy uint32
	AnimList     []string
	ObjList      []PrereqObject

	// recordOrder is the exact decode-order interleaving of AnimList and
	// ObjList entries (true = next AnimList entry, false = next ObjList
	// entry), so encodeActivationPrereq can reproduce a decoded file's
	// original record order exactly. It is populated by
	// decodeActivationPrereq and left nil on a hand-built value, in
	// which case encode falls back to writing every AnimList record
	// before every ObjList record — see the "activation prerequisite
	// record order" Open Question in DESIGN.md: activation_prereq.py
	// only has a reader, so whether real files ever interleave the two
	// types is unverified, and this field exists so a decode/encode
	// round trip never depends on that assumption.
	recordOrder []bool
}

func activationPrereqObjRecordCount(p *ActivationPrereq) int {
	n := 0
	for _, o := range p.ObjList {
		n++
		if o.ParentName != "" {
			n++
		}
	}
	return n
}

func decodeActivationPrereq(c *bin.Cursor, count int, minToSatisfy uint32) (*ActivationPrereq, error) {
	p := &ActivationPrereq{MinToSatisfy: minToSatisfy}
	var prev *PrereqObject
	for i := 0; i < count; i++ {
		optional := c.U32()
		prereqType := c.U32()
		if err := passert.In(passert.Parse, "anim.prereq.type", []uint32{1, 2, 3}, prereqType, c.Prev()); err != nil {
			return nil, err
		}
		switch prereqType {
		case 1:
			if err := passert.Eq(passert.Parse, "anim.prereq.anim_optional", uint32(0), optional, c.Prev()-4); err != nil {
				return nil, err
			}
			nameRaw, nameBytes := c.ZString(32)
			if err := passert.Ascii(passert.Parse, "anim.prereq.anim_name", nameBytes, c.Prev()); err != nil {
				return nil, err
			}
			z1 := c.U32()
			if err := passert.Eq(passert.Parse, "anim.prereq.anim_zero1", uint32(0), z1, c.Prev()); err != nil {
				return nil, err
			}
			z2 := c.U32()
			if err := passert.Eq(passert.Parse, "anim.prereq.anim_zero2", uint32(0), z2, c.Prev()); err != nil {
				return nil, err
			}
			p.AnimList = append(p.AnimList, nameRaw)
			p.recordOrder = append(p.recordOrder, true)
		default:
			if err := passert.In(passert.Parse, "anim.prereq.obj_optional", []uint32{0, 1}, optional, c.Prev()-4); err != nil {
				return nil, err
			}
			active := c.U32()
			nameRaw, nameBytes := c.ZString(32)
			if err := passert.Ascii(passert.Parse, "anim.prereq.obj_name", nameBytes, c.Prev()); err != nil {
				return nil, err
			}
			ptr := c.U32()
			if err := passert.Ne(passert.Parse, "anim.prereq.obj_ptr", uint32(0), ptr, c.Prev()); err != nil {
				return nil, err
			}
			required := optional == 0
			if prereqType == 3 {
				if err := passert.Eq(passert.Parse, "anim.prereq.parent_active", uint32(0), active, c.Prev()-36); err != nil {
					return nil, err
				}
				prev = &PrereqObject{Required: required, Name: nameRaw, Ptr: ptr}
				continue
			}
			if err := passert.In(passert.Parse, "anim.prereq.obj_active", []uint32{0, 1}, active, c.Prev()-36); err != nil {
				return nil, err
			}
			obj := PrereqObject{Required: required, Active: active == 1, Name: nameRaw, Ptr: ptr}
			if prev != nil {
				if err := passert.Eq(passert.Parse, "anim.prereq.parent_required", prev.Required, required, c.Prev()); err != nil {
					return nil, err
				}
				obj.ParentName = prev.Name
				obj.ParentPtr = prev.Ptr
				prev = nil
			}
			p.ObjList = append(p.ObjList, obj)
			p.recordOrder = append(p.recordOrder, false)
		}
	}
	return p, nil
}

func encodeActivationPrereq(w *bin.Cursor, p *ActivationPrereq) {
	if len(p.recordOrder) == len(p.AnimList)+len(p.ObjList) {
		animIdx, objIdx := 0, 0
		for _, isAnim := range p.recordOrder {
			if isAnim {
				encodeAnimPrereq(w, p.AnimList[animIdx])
				animIdx++
			} else {
				encodeObjPrereq(w, p.ObjList[objIdx])
				objIdx++
			}
		}
		return
	}
	for _, name := range p.AnimList {
		encodeAnimPrereq(w, name)
	}
	for _, o := range p.ObjList {
		encodeObjPrereq(w, o)
	}
}

func encodeAnimPrereq(w *bin.Cursor, name string) {
	w.PutU32(0)
	w.PutU32(1)
	w.PutZString(name, 32, 0)
	w.PutU32(0)
	w.PutU32(0)
}

func encodeObjPrereq(w *bin.Cursor, o PrereqObject) {
	optional := uint32(1)
	if o.Required {
		optional = 0
	}
	if o.ParentName != "" {
		w.PutU32(optional)
		w.PutU32(3)
		w.PutU32(0)
		w.PutZString(o.ParentName, 32, 0)
		w.PutU32(o.ParentPtr)
	}
	w.PutU32(optional)
	w.PutU32(2)
	if o.Active {
		w.PutU32(1)
	} else {
		w.PutU32(0)
	}
	w.PutZString(o.Name, 32, 0)
	w.PutU32(o.Ptr)
}
