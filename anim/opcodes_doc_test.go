// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	_ "embed"
	"testing"

	"gopkg.in/yaml.v3"
)

//go:embed testdata/opcodes.yaml
var opcodesDoc []byte

type opcodeDocEntry struct {
	ID   uint8  `yaml:"id"`
	Name string `yaml:"name"`
}

type opcodeDocFile struct {
	Opcodes []opcodeDocEntry `yaml:"opcodes"`
}

// TestOpcodeDocMatchesRegistry keeps testdata/opcodes.yaml's id->name
// table in sync with the compile-time opcodeRegistry. The yaml never
// drives decodeScript/encodeScript; it only documents the registry for
// error messages and an opcode listing.
func TestOpcodeDocMatchesRegistry(t *testing.T) {
	var doc opcodeDocFile
	if err := yaml.Unmarshal(opcodesDoc, &doc); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}

	if len(doc.Opcodes) != len(opcodeRegistry) {
		t.Fatalf("opcodes.yaml lists %d opcodes, registry has %d", len(doc.Opcodes), len(opcodeRegistry))
	}
	for _, e := range doc.Opcodes {
		def, ok := opcodeRegistry[e.ID]
		if !ok {
			t.Errorf("opcodes.yaml id %d (%s) not in opcodeRegistry", e.ID, e.Name)
			continue
		}
		if def.name != e.Name {
			t.Errorf("id %d: registry name %q, opcodes.yaml name %q", e.ID, def.name, e.Name)
		}
	}
}
