// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package sounds

import (
	"bytes"
	"testing"
	"time"

	"github.com/duskforge/mech3kit/archive"
	"github.com/duskforge/mech3kit/internal/bin"
)

func buildWave(samples []byte) []byte {
	w := bin.NewWriter()
	w.PutBytes([]byte("RIFF"))
	w.PutU32(uint32(36 + len(samples)))
	w.PutBytes([]byte("WAVE"))
	w.PutBytes([]byte("fmt "))
	w.PutU32(16)
	w.PutU16(1) // PCM
	w.PutU16(1) // mono
	w.PutU32(22050)
	w.PutU32(22050 * 2)
	w.PutU16(2)
	w.PutU16(16)
	w.PutBytes([]byte("data"))
	w.PutU32(uint32(len(samples)))
	w.PutBytes(samples)
	return w.Bytes()
}

func buildTestArchive() []byte {
	payload := buildWave([]byte{1, 2, 3, 4})
	doc := &archive.Document{Entries: []*archive.Entry{
		{Name: "thud.wav", Data: payload, FiletimeRaw: archive.EncodeFiletime(time.Now().UTC().Truncate(time.Microsecond))},
	}}
	raw, err := archive.Encode(doc)
	if err != nil {
		panic(err)
	}
	return raw
}

func TestSoundsRoundTrip(t *testing.T) {
	raw := buildTestArchive()
	doc, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Sounds) != 1 {
		t.Fatalf("expected 1 sound, got %d", len(doc.Sounds))
	}
	s := doc.Sounds[0]
	if s.Format.Channels != 1 || s.Format.SampleRate != 22050 || s.Format.BitsPerSample != 16 {
		t.Errorf("unexpected format: %+v", s.Format)
	}
	back, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(raw, back) {
		t.Errorf("round trip mismatch:\n got  %x\n want %x", back, raw)
	}
}

// TestSoundsBadMagicStillRoundTrips pins SPEC_FULL.md §3's "a
// corrupt/non-canonical WAVE header still round-trips byte-exactly"
// requirement: a single entry's header failing validation must not
// abort the container, and its payload must survive Encode unchanged.
func TestSoundsBadMagicStillRoundTrips(t *testing.T) {
	payload := buildWave([]byte{1, 2})
	payload[0] = 'X'
	doc := &archive.Document{Entries: []*archive.Entry{{Name: "bad.wav", Data: payload}}}
	raw, err := archive.Encode(doc)
	if err != nil {
		t.Fatalf("archive.Encode: %v", err)
	}

	decoded, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Sounds) != 1 {
		t.Fatalf("expected 1 sound, got %d", len(decoded.Sounds))
	}
	s := decoded.Sounds[0]
	if s.Format != nil {
		t.Errorf("expected nil Format for a bad header, got %+v", s.Format)
	}
	if s.FormatError == nil {
		t.Error("expected a non-nil FormatError for a bad header")
	}

	back, err := Encode(decoded)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(raw, back) {
		t.Errorf("round trip mismatch:\n got  %x\n want %x", back, raw)
	}
}
