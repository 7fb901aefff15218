// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package interp

import (
	"bytes"
	"testing"
	"time"
)

func buildTestDoc() *Document {
	return &Document{Scripts: []*Script{
		{
			Name:         "boot",
			LastModified: time.Unix(1000000, 0).UTC(),
			Commands: []Command{
				{Args: []string{"load", "mech1"}},
				{Args: []string{"start"}},
			},
		},
	}}
}

func TestInterpRoundTrip(t *testing.T) {
	doc := buildTestDoc()
	raw, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	raw2, err := Encode(back)
	if err != nil {
		t.Fatalf("re-Encode: %v", err)
	}
	if !bytes.Equal(raw, raw2) {
		t.Errorf("round trip mismatch:\n got  %x\n want %x", raw2, raw)
	}
	if len(back.Scripts) != 1 || len(back.Scripts[0].Commands) != 2 {
		t.Fatalf("got %+v", back)
	}
	if got := back.Scripts[0].Commands[0].Extracted(); got != "load mech1" {
		t.Errorf("Extracted() = %q, want %q", got, "load mech1")
	}
}

func TestInterpBadSignature(t *testing.T) {
	raw, _ := Encode(buildTestDoc())
	raw[0] = 0
	if _, err := Decode(raw); err == nil {
		t.Error("expected error for bad signature")
	}
}

func TestInterpArgCountMismatch(t *testing.T) {
	doc := buildTestDoc()
	raw, _ := Encode(doc)
	// corrupt arg_count of the first command record (offset 12 + tocEntry
	// is the script body start; first u32 is size, second is arg_count).
	bodyStart := headerSize + tocEntry
	raw[bodyStart+4] = 99
	if _, err := Decode(raw); err == nil {
		t.Error("expected error for arg_count mismatch")
	}
}
