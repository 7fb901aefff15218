// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package peres

import (
	"encoding/binary"
	"testing"

	"github.com/duskforge/mech3kit/internal/bin"
)

// buildSyntheticPE assembles a minimal but structurally valid PE32 image
// carrying one RT_MESSAGETABLE entry (English locale, message id 100,
// text "HELLO\r\n") and a .data backwards name table mapping the name
// "GREETING" to that same id, mirroring the shape read_messages() in
// the original reimplementation expects.
func buildSyntheticPE() []byte {
	w := bin.NewWriter()

	w.PutBytes([]byte("MZ"))
	w.PutBytes(make([]byte, 0x3C-2))
	w.PutU32(0x80)
	w.PutBytes(make([]byte, 0x80-int(w.Pos())))

	w.PutBytes([]byte("PE\x00\x00"))
	w.PutU16(0x014c) // Machine
	w.PutU16(2)       // NumberOfSections
	w.PutU32(0)       // TimeDateStamp
	w.PutU32(0)       // PointerToSymbolTable
	w.PutU32(0)       // NumberOfSymbols
	optionalHeaderSizePos := w.Pos()
	w.PutU16(0) // SizeOfOptionalHeader, patched below
	w.PutU16(0) // Characteristics

	optionalHeaderStart := w.Pos()
	w.PutU16(0x10b) // Magic: PE32
	w.PutBytes(make([]byte, 94))
	w.PutU32(0) // Export RVA
	w.PutU32(0) // Export Size
	w.PutU32(0) // Import RVA
	w.PutU32(0) // Import Size
	resourceDirPos := w.Pos()
	w.PutU32(0) // Resource RVA, patched below
	w.PutU32(0) // Resource Size, patched below
	optionalHeaderSize := uint16(w.Pos() - optionalHeaderStart)

	const rsrcVA = 0x2000
	const dataVA = 0x4000

	rsrcSectionHeaderPos := w.Pos()
	w.PutZString(".rsrc", 8, 0)
	w.PutU32(0) // VirtualSize, patched below
	w.PutU32(rsrcVA)
	w.PutU32(0) // SizeOfRawData, patched below
	w.PutU32(0) // PointerToRawData, patched below
	w.PutBytes(make([]byte, 16))

	dataSectionHeaderPos := w.Pos()
	w.PutZString(".data", 8, 0)
	w.PutU32(17)
	w.PutU32(dataVA)
	w.PutU32(17)
	w.PutU32(0) // PointerToRawData, patched below
	w.PutBytes(make([]byte, 16))

	rsrcFileOffset := w.Pos()

	// --- root resource directory: one id-entry (RT_MESSAGETABLE=11) ---
	w.PutBytes(make([]byte, 12))
	w.PutU16(0)
	w.PutU16(1)
	w.PutU32(rtMessageTable)
	typeSubdirEntryPos := w.Pos()
	w.PutU32(0) // offset to RT_MESSAGETABLE subdir, patched below

	// --- RT_MESSAGETABLE directory: one id-entry (resource id 1) ---
	typeSubdirPos := w.Pos()
	w.PutBytes(make([]byte, 12))
	w.PutU16(0)
	w.PutU16(1)
	w.PutU32(1)
	nameSubdirEntryPos := w.Pos()
	w.PutU32(0) // offset to name-level subdir, patched below

	// --- name-level directory: one id-entry (locale English) ---
	nameSubdirPos := w.Pos()
	w.PutBytes(make([]byte, 12))
	w.PutU16(0)
	w.PutU16(1)
	w.PutU32(uint32(English))
	dataEntryOffsetPos := w.Pos()
	w.PutU32(0) // offset to the data entry leaf, patched below

	// --- IMAGE_RESOURCE_DATA_ENTRY ---
	dataEntryPos := w.Pos()
	dataEntryRVAPos := w.Pos()
	w.PutU32(0) // OffsetToData (RVA), patched below
	w.PutU32(27) // Size
	w.PutU32(0)  // CodePage
	w.PutU32(0)  // Reserved

	// --- the RT_MESSAGETABLE resource payload itself ---
	msgTablePos := w.Pos()
	w.PutU32(1)   // block count
	w.PutU32(100) // low id
	w.PutU32(101) // high id
	w.PutU32(16)  // offset to entries, relative to this blob
	w.PutU16(11)  // length (header + text)
	w.PutU16(0)   // flags
	w.PutBytes([]byte("HELLO\r\n"))

	rsrcBlobLen := w.Pos() - rsrcFileOffset
	dataFileOffset := w.Pos()

	// --- .data section: one backwards-table record + its name string ---
	w.PutU16(uint16(dataVA + 8)) // virt_offset of the name string
	w.PutU16(0x1000)             // hi_offset (base-address high word)
	w.PutU32(100)                // entry_id
	w.PutZString("GREETING", 9, 0)

	raw := w.Bytes()

	patchU16 := func(pos int64, v uint16) { binary.LittleEndian.PutUint16(raw[pos:], v) }
	patchU32 := func(pos int64, v uint32) { binary.LittleEndian.PutUint32(raw[pos:], v) }

	patchU16(optionalHeaderSizePos, optionalHeaderSize)
	patchU32(resourceDirPos, rsrcVA)
	patchU32(resourceDirPos+4, uint32(rsrcBlobLen))
	patchU32(rsrcSectionHeaderPos+8, uint32(rsrcBlobLen))  // VirtualSize
	patchU32(rsrcSectionHeaderPos+16, uint32(rsrcBlobLen)) // SizeOfRawData
	patchU32(rsrcSectionHeaderPos+20, uint32(rsrcFileOffset)) // PointerToRawData
	patchU32(dataSectionHeaderPos+20, uint32(dataFileOffset)) // PointerToRawData
	patchU32(typeSubdirEntryPos, uint32(typeSubdirPos-rsrcFileOffset)|0x80000000)
	patchU32(nameSubdirEntryPos, uint32(nameSubdirPos-rsrcFileOffset)|0x80000000)
	patchU32(dataEntryOffsetPos, uint32(dataEntryPos-rsrcFileOffset))
	patchU32(dataEntryRVAPos, rsrcVA+uint32(msgTablePos-rsrcFileOffset))

	return raw
}

func TestPEResourceMessages(t *testing.T) {
	raw := buildSyntheticPE()

	doc, err := Decode(raw, WithLocale(English))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Locale != English {
		t.Errorf("locale = %v, want %v", doc.Locale, English)
	}
	if len(doc.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(doc.Messages))
	}
	m := doc.Messages[0]
	if m.Name != "GREETING" {
		t.Errorf("name = %q, want GREETING", m.Name)
	}
	if m.ID != 100 {
		t.Errorf("id = %d, want 100", m.ID)
	}
	if !m.Found {
		t.Error("expected Found == true")
	}
	if m.Text != "HELLO" {
		t.Errorf("text = %q, want %q", m.Text, "HELLO")
	}
}

func TestPEResourceUnknownLocale(t *testing.T) {
	raw := buildSyntheticPE()
	if _, err := Decode(raw, WithLocale(German)); err == nil {
		t.Error("expected error for a locale the image doesn't carry")
	}
}

func TestPEResourceDefaultLocale(t *testing.T) {
	raw := buildSyntheticPE()
	doc, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode with no options: %v", err)
	}
	if doc.Locale != English {
		t.Errorf("default locale = %v, want %v", doc.Locale, English)
	}
}

func TestLocaleIDString(t *testing.T) {
	if English.String() != "English" {
		t.Errorf("English.String() = %q", English.String())
	}
	if LocaleID(9999).String() != "LocaleID(9999)" {
		t.Errorf("unexpected LocaleID(9999).String() = %q", LocaleID(9999).String())
	}
}
