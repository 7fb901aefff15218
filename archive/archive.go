// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package archive implements the table-of-contents container format:
// payloads packed front-to-back, a fixed-width TOC entry per item, and an
// 8-byte footer. The parser reads the footer first, then the TOC, then
// slices payloads by (start, length) — the only backward seek in this
// module outside the anim-def script-length read.
package archive

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"

	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
)

const (
	footerVersion = 1
	tocEntrySize  = 148
	nameFieldSize = 64
	commentSize   = 64
)

// Entry is one archived payload plus its table-of-contents metadata.
type Entry struct {
	// Name is the on-disk name, as read from the TOC.
	Name string
	// ExtractName is Name, or a disambiguated "<name>_<n>" when another
	// entry earlier in the archive shares the same Name. Repack always
	// writes Name, never ExtractName.
	ExtractName string
	Data        []byte
	Flag        uint32
	Comment     [commentSize]byte

	// FiletimeRaw is the on-disk 100ns-tick count, always preserved.
	FiletimeRaw uint64
	// Filetime and FiletimeOK hold the UTC instant when FiletimeRaw is an
	// exact multiple of 10 ticks (whole microseconds); otherwise FiletimeOK
	// is false and only FiletimeRaw carries the value.
	Filetime   time.Time
	FiletimeOK bool
}

// Document is a fully decoded archive: an ordered list of entries plus
// enough bookkeeping to reproduce the original byte layout on Encode.
type Document struct {
	Entries []*Entry
}

// filetimeEpoch is 1601-01-01 00:00:00 UTC, the Windows FILETIME epoch.
var filetimeEpoch = time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)

// DecodeFiletime converts a raw 100ns-tick FILETIME count to a UTC
// instant. ok is false when ticks is not a whole multiple of 10 (i.e. a
// sub-microsecond remainder would be lost by materializing a time.Time),
// in which case the caller must retain ticks verbatim (§3 "Archive entry").
func DecodeFiletime(ticks uint64) (t time.Time, ok bool) {
	if ticks%10 != 0 {
		return time.Time{}, false
	}
	return filetimeEpoch.Add(time.Duration(ticks/10) * time.Microsecond), true
}

// EncodeFiletime converts a UTC instant back to a 100ns-tick FILETIME count.
func EncodeFiletime(t time.Time) uint64 {
	return uint64(t.Sub(filetimeEpoch) / (100 * time.Nanosecond))
}

// Decode parses buf as an archive container.
func Decode(buf []byte) (*Document, error) {
	if len(buf) < 8 {
		return nil, passert.AsInternal("archive.footer.size", ">=", 8, len(buf), "archive.Decode")
	}

	// read the footer first: the one documented backward seek.
	c := bin.NewCursor(buf)
	c.SeekAbs(int64(len(buf) - 8))
	version := c.U32()
	count := c.U32()
	if err := passert.Eq(passert.Archive, "archive.footer.version", uint32(footerVersion), version, c.Prev()); err != nil {
		return nil, err
	}

	tocStart := int64(len(buf)) - 8 - int64(count)*tocEntrySize
	if tocStart < 0 {
		return nil, passert.AsInternal("archive.toc.start", ">=", 0, tocStart, "archive.Decode")
	}
	c.SeekAbs(tocStart)

	type rawEntry struct {
		start, length uint32
		name          string
		nameRaw       []byte
		flag          uint32
		comment       [commentSize]byte
		filetime      uint64
	}
	raws := make([]rawEntry, count)
	for i := uint32(0); i < count; i++ {
		var re rawEntry
		re.start = c.U32()
		re.length = c.U32()
		name, nameRaw := c.ZString(nameFieldSize)
		re.name, re.nameRaw = name, nameRaw
		if err := passert.Ascii(passert.Archive, "archive.entry.name", nameRaw, c.Prev()); err != nil {
			return nil, err
		}
		re.flag = c.U32()
		copy(re.comment[:], c.Take(commentSize))
		re.filetime = c.U64()
		raws[i] = re
	}

	doc := &Document{Entries: make([]*Entry, count)}
	seen := map[string]int{}
	for i, re := range raws {
		if int64(re.start)+int64(re.length) > tocStart {
			return nil, &passert.Error{
				Kind: passert.Archive, Name: "archive.entry.payload", Op: "<=",
				Expected: tocStart, Actual: int64(re.start) + int64(re.length), Offset: int64(re.start),
			}
		}
		e := &Entry{
			Name:        re.name,
			Data:        buf[re.start : re.start+re.length],
			Flag:        re.flag,
			Comment:     re.comment,
			FiletimeRaw: re.filetime,
		}
		e.Filetime, e.FiletimeOK = DecodeFiletime(re.filetime)
		if !e.FiletimeOK {
			slog.Debug("archive: filetime not an exact multiple of 100ns*10, keeping raw ticks", "entry", re.name, "filetime_raw", re.filetime)
		}

		n := seen[re.name]
		seen[re.name] = n + 1
		if n == 0 {
			e.ExtractName = re.name
		} else {
			e.ExtractName = fmt.Sprintf("%s_%d", re.name, n)
			slog.Debug("archive: duplicate entry name, renaming for extraction", "name", re.name, "extract_name", e.ExtractName)
		}
		doc.Entries[i] = e
	}
	return doc, nil
}

// Encode serializes the document back to its on-disk byte layout.
// Payloads are written in entry order; the TOC start offsets are
// recomputed from the actual write positions, which matches the original
// file only when Entries is unmodified from a prior Decode.
func Encode(doc *Document) ([]byte, error) {
	w := bin.NewWriter()
	starts := make([]uint32, len(doc.Entries))
	for i, e := range doc.Entries {
		starts[i] = uint32(w.Pos())
		w.PutBytes(e.Data)
	}
	for i, e := range doc.Entries {
		w.PutU32(starts[i])
		w.PutU32(uint32(len(e.Data)))
		w.PutZString(e.Name, nameFieldSize, 0)
		w.PutU32(e.Flag)
		w.PutBytes(e.Comment[:])
		w.PutU64(e.FiletimeRaw)
	}
	w.PutU32(footerVersion)
	w.PutU32(uint32(len(doc.Entries)))
	return w.Bytes(), nil
}

// String renders a short human-readable summary, e.g. for CLI debug
// output: "archive: 2 entries, 320 B".
func (d *Document) String() string {
	var total uint64
	for _, e := range d.Entries {
		total += uint64(len(e.Data))
	}
	return fmt.Sprintf("archive: %d entries, %s", len(d.Entries), humanize.Bytes(total))
}

// filetimeDebugLayout is the ncruces/go-strftime conversion of "%Y-%m-%d
// %H:%M:%S" to a Go time.Format layout, computed once at package init.
var filetimeDebugLayout = strftime.Layout("%Y-%m-%d %H:%M:%S")

// String renders a debug line for one entry including its decoded or
// raw write time.
func (e *Entry) String() string {
	if e.FiletimeOK {
		return fmt.Sprintf("%s (%s, %d B, written %s)", e.ExtractName, e.Name, len(e.Data), e.Filetime.Format(filetimeDebugLayout))
	}
	return fmt.Sprintf("%s (%s, %d B, raw filetime %d)", e.ExtractName, e.Name, len(e.Data), e.FiletimeRaw)
}
