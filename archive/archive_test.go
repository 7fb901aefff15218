// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package archive

import (
	"bytes"
	"testing"
	"time"
)

// buildTestArchive hand-assembles the S1 scenario: two entries both named
// "X", write-times epoch and epoch+1us, flags 0 and 1, comments all-zero.
func buildTestArchive(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	payload1 := []byte{0xAA, 0xBB}
	payload2 := []byte{0xCC, 0xDD, 0xEE}
	buf.Write(payload1)
	buf.Write(payload2)

	writeEntry := func(start, length uint32, name string, flag uint32, filetime uint64) {
		var b [tocEntrySize]byte
		putU32 := func(off int, v uint32) {
			b[off] = byte(v)
			b[off+1] = byte(v >> 8)
			b[off+2] = byte(v >> 16)
			b[off+3] = byte(v >> 24)
		}
		putU32(0, start)
		putU32(4, length)
		copy(b[8:8+nameFieldSize], name)
		putU32(8+nameFieldSize, flag)
		// comment stays zero.
		off := 8 + nameFieldSize + 4 + commentSize
		for i := 0; i < 8; i++ {
			b[off+i] = byte(filetime >> (8 * i))
		}
		buf.Write(b[:])
	}
	writeEntry(0, uint32(len(payload1)), "X", 0, 0)
	writeEntry(uint32(len(payload1)), uint32(len(payload2)), "X", 1, 10)

	var footer [8]byte
	footer[0] = 1 // version
	footer[4] = 2 // count
	buf.Write(footer[:])
	return buf.Bytes()
}

func TestDecodeDuplicateNames(t *testing.T) {
	raw := buildTestArchive(t)
	doc, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(doc.Entries))
	}
	if doc.Entries[0].ExtractName != "X" {
		t.Errorf("entry 0 ExtractName = %q, want X", doc.Entries[0].ExtractName)
	}
	if doc.Entries[1].ExtractName != "X_1" {
		t.Errorf("entry 1 ExtractName = %q, want X_1", doc.Entries[1].ExtractName)
	}
	if !doc.Entries[0].FiletimeOK || !doc.Entries[0].Filetime.Equal(filetimeEpoch) {
		t.Errorf("entry 0 filetime = %v, ok=%v", doc.Entries[0].Filetime, doc.Entries[0].FiletimeOK)
	}
	want := filetimeEpoch.Add(time.Microsecond)
	if !doc.Entries[1].FiletimeOK || !doc.Entries[1].Filetime.Equal(want) {
		t.Errorf("entry 1 filetime = %v, want %v", doc.Entries[1].Filetime, want)
	}
}

func TestRoundTrip(t *testing.T) {
	raw := buildTestArchive(t)
	doc, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(raw, out) {
		t.Errorf("round trip mismatch:\n got  %x\n want %x", out, raw)
	}
	if len(raw) != 8+2*tocEntrySize+2+3 {
		t.Fatalf("test fixture size sanity check failed: %d", len(raw))
	}
}

func TestDecodeFiletimeFallback(t *testing.T) {
	if _, ok := DecodeFiletime(7); ok {
		t.Error("expected ok=false for a tick count not divisible by 10")
	}
	tm, ok := DecodeFiletime(10)
	if !ok {
		t.Fatal("expected ok=true for 10 ticks")
	}
	if got := EncodeFiletime(tm); got != 10 {
		t.Errorf("EncodeFiletime round trip = %d, want 10", got)
	}
}

func TestBadFooterVersion(t *testing.T) {
	raw := buildTestArchive(t)
	raw[len(raw)-8] = 2 // corrupt version
	if _, err := Decode(raw); err == nil {
		t.Error("expected error for bad footer version")
	}
}
