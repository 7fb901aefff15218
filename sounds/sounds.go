// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package sounds implements the thin archive specialization used for
// "sounds*.zbd" containers: every entry's payload is a WAVE file, and
// Decode validates (but never re-derives) the RIFF/WAVE/fmt/data chunk
// headers so a round trip through Decode/Encode reproduces the source
// bytes exactly, garbage bytes included.
package sounds

import (
	"log/slog"

	"github.com/duskforge/mech3kit/archive"
	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
)

const riffHeaderSize = 44

// Sound is one archived sound entry: the archive bookkeeping plus the
// parsed WAVE format fields, kept alongside (not instead of) the raw
// payload so Encode never needs to re-synthesize the header. Format is
// nil when the payload's WAVE header fails validation — the manifest's
// descriptive fields are simply absent for that entry, but Data still
// carries its exact source bytes and still round-trips through Encode.
type Sound struct {
	*archive.Entry
	Format      *WaveFormat
	FormatError error
}

// WaveFormat is the canonical 44-byte WAVE header's format fields, the
// only part of the payload this package interprets.
type WaveFormat struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// Document is a decoded sounds container.
type Document struct {
	Sounds []*Sound
}

// Decode parses buf as an archive container and validates every entry's
// payload as a WAVE file. A single entry's header failing validation
// does not abort the container: that entry's Format is left nil and its
// FormatError records why, but Data still carries its exact bytes and
// the container as a whole still decodes.
func Decode(buf []byte) (*Document, error) {
	doc, err := archive.Decode(buf)
	if err != nil {
		return nil, err
	}
	out := &Document{Sounds: make([]*Sound, len(doc.Entries))}
	for i, e := range doc.Entries {
		fmtFields, err := validateWave(e.Name, e.Data)
		if err != nil {
			out.Sounds[i] = &Sound{Entry: e, FormatError: err}
			slog.Debug("sounds: WAVE header failed validation, keeping raw payload", "entry", e.Name, "error", err)
			continue
		}
		out.Sounds[i] = &Sound{Entry: e, Format: &fmtFields}
	}
	return out, nil
}

// validateWave asserts the canonical PCM WAVE header shape documented by
// the Microsoft WAVE format (RIFF/WAVE, "fmt " chunk of 16 bytes, "data"
// chunk immediately following) and returns its format fields. The
// payload is otherwise left untouched: this is validation, not decoding.
func validateWave(entryName string, data []byte) (WaveFormat, error) {
	if len(data) < riffHeaderSize {
		return WaveFormat{}, &passert.Error{
			Kind: passert.Parse, Name: "sounds.entry.size", Op: ">=",
			Expected: riffHeaderSize, Actual: len(data), Location: entryName,
		}
	}
	c := bin.NewCursor(data)
	riff := c.Take(4)
	if err := passert.Eq(passert.Parse, "sounds.riff_id", "RIFF", string(riff), c.Prev()); err != nil {
		err.(*passert.Error).Location = entryName
		return WaveFormat{}, err
	}
	fileSize := c.U32()
	if err := passert.Eq(passert.Parse, "sounds.file_size", uint32(len(data)-8), fileSize, c.Prev()); err != nil {
		err.(*passert.Error).Location = entryName
		return WaveFormat{}, err
	}
	wave := c.Take(4)
	if err := passert.Eq(passert.Parse, "sounds.wave_id", "WAVE", string(wave), c.Prev()); err != nil {
		err.(*passert.Error).Location = entryName
		return WaveFormat{}, err
	}
	fmtID := c.Take(4)
	if err := passert.Eq(passert.Parse, "sounds.fmt_id", "fmt ", string(fmtID), c.Prev()); err != nil {
		err.(*passert.Error).Location = entryName
		return WaveFormat{}, err
	}
	fmtSize := c.U32()
	if err := passert.Eq(passert.Parse, "sounds.fmt_size", uint32(16), fmtSize, c.Prev()); err != nil {
		err.(*passert.Error).Location = entryName
		return WaveFormat{}, err
	}
	var wf WaveFormat
	wf.AudioFormat = c.U16()
	if err := passert.Eq(passert.Parse, "sounds.audio_format", uint16(1), wf.AudioFormat, c.Prev()); err != nil {
		err.(*passert.Error).Location = entryName
		return WaveFormat{}, err
	}
	wf.Channels = c.U16()
	wf.SampleRate = c.U32()
	wf.ByteRate = c.U32()
	wf.BlockAlign = c.U16()
	wf.BitsPerSample = c.U16()
	if err := passert.Eq(passert.Parse, "sounds.byte_rate", wf.SampleRate*uint32(wf.Channels)*uint32(wf.BitsPerSample)/8, wf.ByteRate, c.Prev()); err != nil {
		err.(*passert.Error).Location = entryName
		return WaveFormat{}, err
	}
	dataID := c.Take(4)
	if err := passert.Eq(passert.Parse, "sounds.data_id", "data", string(dataID), c.Prev()); err != nil {
		err.(*passert.Error).Location = entryName
		return WaveFormat{}, err
	}
	dataSize := c.U32()
	if err := passert.Eq(passert.Parse, "sounds.data_size", uint32(len(data)-riffHeaderSize), dataSize, c.Prev()); err != nil {
		err.(*passert.Error).Location = entryName
		return WaveFormat{}, err
	}
	return wf, nil
}

// Encode serializes the document back to its on-disk byte layout by
// delegating to archive.Encode: payload bytes (WAVE header included)
// were never altered by Decode.
func Encode(doc *Document) ([]byte, error) {
	entries := make([]*archive.Entry, len(doc.Sounds))
	for i, s := range doc.Sounds {
		entries[i] = s.Entry
	}
	return archive.Encode(&archive.Document{Entries: entries})
}
