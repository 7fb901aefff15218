// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package peres reads localized message strings out of a Windows PE
// executable's resource section: the standard RT_MESSAGETABLE resource
// supplies id->string, and a backwards-written lookup table the game
// itself left in its .data section supplies name->id. This package is
// read-only — there is no corresponding writer, since nothing in this
// module's scope ever repacks a PE file.
package peres

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
)

// LocaleID selects which RT_MESSAGETABLE language subdirectory to read.
// All three map to the same code page (1252), only the resource
// language id differs.
type LocaleID uint32

const (
	English LocaleID = 1033
	German  LocaleID = 1031
	French  LocaleID = 1036
)

func (l LocaleID) String() string {
	switch l {
	case English:
		return "English"
	case German:
		return "German"
	case French:
		return "French"
	default:
		return fmt.Sprintf("LocaleID(%d)", uint32(l))
	}
}

const rtMessageTable = 11

// Message is one name->string pair recovered by joining the .data
// section's name table against the RT_MESSAGETABLE id table. Text is
// empty and Found is false when the backwards table names an entry id
// the message table resource doesn't actually carry.
type Message struct {
	Name  string
	ID    uint32
	Text  string
	Found bool
}

// Document is every message recovered for one locale, in the order the
// .data section's backwards table yields them.
type Document struct {
	Locale   LocaleID
	Messages []Message
}

type section struct {
	name            string
	virtualSize     uint32
	virtualAddress  uint32
	sizeOfRawData   uint32
	pointerToRawData uint32
}

func (s section) containsRVA(rva uint32) bool {
	size := s.virtualSize
	if size < s.sizeOfRawData {
		size = s.sizeOfRawData
	}
	return rva >= s.virtualAddress && rva < s.virtualAddress+size
}

func (s section) rvaToOffset(rva uint32) int64 {
	return int64(s.pointerToRawData) + int64(rva-s.virtualAddress)
}

type peImage struct {
	sections []section
}

func (p *peImage) sectionContaining(rva uint32) (section, error) {
	for _, s := range p.sections {
		if s.containsRVA(rva) {
			return s, nil
		}
	}
	return section{}, &passert.Error{Kind: passert.Internal, Name: "pe.resource_rva", Op: "in", Expected: "an image section", Actual: rva, Offset: -1}
}

func (p *peImage) rvaToOffset(rva uint32, name string, offset int64) (int64, error) {
	s, err := p.sectionContaining(rva)
	if err != nil {
		return 0, &passert.Error{Kind: passert.Internal, Name: name, Op: "in", Expected: "an image section", Actual: rva, Offset: offset}
	}
	return s.rvaToOffset(rva), nil
}

func (p *peImage) findSection(prefix string) (section, error) {
	for _, s := range p.sections {
		if s.name == prefix {
			return s, nil
		}
	}
	return section{}, &passert.Error{Kind: passert.Internal, Name: "pe.section", Op: "in", Expected: prefix, Actual: "not found", Offset: -1}
}

// parsePE reads the DOS stub, NT headers, and section table of a PE
// image far enough to locate the resource directory and the .data
// section — nothing else in the PE format is relevant to this package.
func parsePE(raw []byte) (*peImage, uint32, error) {
	c := bin.NewCursor(raw)

	dosMagic := c.Take(2)
	if err := passert.Eq(passert.Parse, "pe.dos_magic", "MZ", string(dosMagic), c.Prev()); err != nil {
		return nil, 0, err
	}
	c.SeekAbs(0x3C)
	lfanew := c.U32()

	c.SeekAbs(int64(lfanew))
	ntSig := c.Take(4)
	if err := passert.Eq(passert.Parse, "pe.nt_signature", "PE\x00\x00", string(ntSig), c.Prev()); err != nil {
		return nil, 0, err
	}

	c.Skip(2) // Machine
	numberOfSections := c.U16()
	c.Skip(12) // TimeDateStamp, PointerToSymbolTable, NumberOfSymbols
	sizeOfOptionalHeader := c.U16()
	c.Skip(2) // Characteristics

	optionalHeaderStart := c.Pos()
	magic := c.U16()

	var dataDirectoryOffset int64
	switch magic {
	case 0x10b: // PE32
		dataDirectoryOffset = 96
	case 0x20b: // PE32+
		dataDirectoryOffset = 112
	default:
		return nil, 0, &passert.Error{Kind: passert.Parse, Name: "pe.optional_magic", Op: "in", Expected: []uint16{0x10b, 0x20b}, Actual: magic, Offset: c.Prev()}
	}

	c.SeekAbs(optionalHeaderStart + dataDirectoryOffset + 2*4*2) // skip Export and Import directory entries
	resourceRVA := c.U32()
	c.U32() // resourceSize, unused: the directory tree is walked structurally

	sectionTableStart := optionalHeaderStart + int64(sizeOfOptionalHeader)
	c.SeekAbs(sectionTableStart)

	sections := make([]section, numberOfSections)
	for i := range sections {
		nameRaw := c.Take(8)
		name := string(nameRaw)
		for i, b := range nameRaw {
			if b == 0 {
				name = string(nameRaw[:i])
				break
			}
		}
		virtualSize := c.U32()
		virtualAddress := c.U32()
		sizeOfRawData := c.U32()
		pointerToRawData := c.U32()
		c.Skip(16) // relocations, linenumbers, characteristics
		sections[i] = section{
			name:             name,
			virtualSize:      virtualSize,
			virtualAddress:   virtualAddress,
			sizeOfRawData:    sizeOfRawData,
			pointerToRawData: pointerToRawData,
		}
	}

	return &peImage{sections: sections}, resourceRVA, nil
}

// resourceDirEntry is one IMAGE_RESOURCE_DIRECTORY_ENTRY: either a
// subdirectory (another level of the id/name/language hierarchy) or a
// leaf pointing at an IMAGE_RESOURCE_DATA_ENTRY.
type resourceDirEntry struct {
	id           uint32
	isDirectory  bool
	offset       uint32 // relative to the start of the resource section
}

func readResourceDir(c *bin.Cursor, sectionStart int64, entryOffset int64) ([]resourceDirEntry, error) {
	c.SeekAbs(sectionStart + entryOffset)
	c.Skip(12) // Characteristics, TimeDateStamp, MajorVersion/MinorVersion
	namedCount := c.U16()
	idCount := c.U16()

	total := int(namedCount) + int(idCount)
	out := make([]resourceDirEntry, total)
	for i := range out {
		nameOrID := c.U32()
		offsetToData := c.U32()
		out[i] = resourceDirEntry{
			id:          nameOrID &^ 0x80000000,
			isDirectory: offsetToData&0x80000000 != 0,
			offset:      offsetToData &^ 0x80000000,
		}
	}
	return out, nil
}

func findEntry(entries []resourceDirEntry, id uint32) (resourceDirEntry, error) {
	for _, e := range entries {
		if e.id == id {
			return e, nil
		}
	}
	return resourceDirEntry{}, &passert.Error{Kind: passert.Parse, Name: "pe.resource_entry", Op: "in", Expected: id, Actual: "not found", Offset: -1}
}

// messageTableResource decodes the standard RT_MESSAGETABLE layout: a
// count of contiguous id-range blocks, each naming the entries' shared
// flags-and-length-prefixed ASCII/cp1252 text.
func messageTableResource(data []byte, offset int64) (map[uint32]string, error) {
	c := bin.NewCursor(data)
	blockCount := c.U32()

	out := make(map[uint32]string)
	dec := charmap.Windows1252.NewDecoder()
	for i := uint32(0); i < blockCount; i++ {
		lowID := c.U32()
		highID := c.U32()
		entryOffset := c.U32()
		for id := lowID; id < highID; id++ {
			if int(entryOffset)+4 > len(data) {
				return nil, &passert.Error{Kind: passert.Parse, Name: "pe.message_table.entry_offset", Op: "<=", Expected: len(data) - 4, Actual: entryOffset, Offset: offset}
			}
			length := le16(data, entryOffset)
			flags := le16(data, entryOffset+2)
			if err := passert.Eq(passert.Parse, "pe.message_table.flags", uint16(0), flags, offset+int64(entryOffset)+2); err != nil {
				return nil, err
			}
			textStart := entryOffset + 4
			textEnd := entryOffset + uint32(length)
			raw := data[textStart:textEnd]
			text, err := dec.String(string(raw))
			if err != nil {
				return nil, &passert.Error{Kind: passert.Parse, Name: "pe.message_table.cp1252", Op: "decode", Expected: "valid cp1252", Actual: err.Error(), Offset: offset + int64(textStart)}
			}
			out[id] = trimLineEnding(text)
			entryOffset = textEnd
		}
	}
	return out, nil
}

func le16(data []byte, offset uint32) uint16 {
	return uint16(data[offset]) | uint16(data[offset+1])<<8
}

func trimLineEnding(s string) string {
	i := len(s)
	for i > 0 && (s[i-1] == 0 || s[i-1] == '\r' || s[i-1] == '\n') {
		i--
	}
	return s[:i]
}

// backwardsNameTable scans a .data section for the game's own
// name->entry_id index: a table written highest-address-first of
// {virt_offset u16, hi_offset u16, entry_id u32} triples, terminated
// the moment hi_offset exceeds the base-address high word (0x1000).
// Zero-flagged records are padding and are skipped, not treated as the
// end of the table.
func backwardsNameTable(data []byte, dataSection section) []struct {
	name string
	id   uint32
} {
	var out []struct {
		name string
		id   uint32
	}
	offset := 0
	for offset+8 <= len(data) {
		virtOffset := le16(data, uint32(offset))
		hiOffset := le16(data, uint32(offset+2))
		entryID := uint32(data[offset+4]) | uint32(data[offset+5])<<8 | uint32(data[offset+6])<<16 | uint32(data[offset+7])<<24
		offset += 8

		if hiOffset == 0 {
			continue
		}
		if hiOffset > 0x1000 {
			break
		}

		relOffset := uint32(virtOffset) - dataSection.virtualAddress
		if int(relOffset) >= len(data) {
			continue
		}
		name := readCString(data, relOffset)
		out = append(out, struct {
			name string
			id   uint32
		}{name: name, id: entryID})
	}
	return out
}

func readCString(data []byte, offset uint32) string {
	start := offset
	for offset < uint32(len(data)) && data[offset] != 0 {
		offset++
	}
	return string(data[start:offset])
}

// decodeConfig holds this package's optional decode-time choices,
// following the teacher's functional-options Attr pattern (config.go).
type decodeConfig struct {
	locale LocaleID
}

// DecodeOption configures Decode's locale selection.
type DecodeOption func(*decodeConfig)

// WithLocale selects which RT_MESSAGETABLE language subdirectory Decode
// reads. English is used when no option is given.
func WithLocale(locale LocaleID) DecodeOption {
	return func(c *decodeConfig) { c.locale = locale }
}

// Decode reads every message name->string mapping a PE executable
// carries for the selected locale (English by default; see WithLocale).
func Decode(peData []byte, opts ...DecodeOption) (*Document, error) {
	cfg := &decodeConfig{locale: English}
	for _, opt := range opts {
		opt(cfg)
	}
	locale := cfg.locale

	img, resourceRVA, err := parsePE(peData)
	if err != nil {
		return nil, err
	}

	resourceSection, err := img.sectionContaining(resourceRVA)
	if err != nil {
		return nil, err
	}
	sectionStart := resourceSection.rvaToOffset(resourceSection.virtualAddress)

	c := bin.NewCursor(peData)
	rootEntries, err := readResourceDir(c, sectionStart, int64(resourceRVA-resourceSection.virtualAddress))
	if err != nil {
		return nil, err
	}
	typeEntry, err := findEntry(rootEntries, rtMessageTable)
	if err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "pe.resource.message_table_is_dir", true, typeEntry.isDirectory, -1); err != nil {
		return nil, err
	}
	nameEntries, err := readResourceDir(c, sectionStart, int64(typeEntry.offset))
	if err != nil {
		return nil, err
	}
	nameEntry, err := findEntry(nameEntries, 1)
	if err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "pe.resource.message_table_name_is_dir", true, nameEntry.isDirectory, -1); err != nil {
		return nil, err
	}
	langEntries, err := readResourceDir(c, sectionStart, int64(nameEntry.offset))
	if err != nil {
		return nil, err
	}
	langEntry, err := findEntry(langEntries, uint32(locale))
	if err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "pe.resource.message_table_lang_is_leaf", false, langEntry.isDirectory, -1); err != nil {
		return nil, err
	}

	c.SeekAbs(sectionStart + int64(langEntry.offset))
	dataRVA := c.U32()
	dataSize := c.U32()

	dataOffset, err := img.rvaToOffset(dataRVA, "pe.resource.data_entry_rva", c.Prev())
	if err != nil {
		return nil, err
	}
	table, err := messageTableResource(peData[dataOffset:dataOffset+int64(dataSize)], dataOffset)
	if err != nil {
		return nil, err
	}

	dataSection, err := img.findSection(".data")
	if err != nil {
		return nil, err
	}
	rawData := peData[dataSection.pointerToRawData : dataSection.pointerToRawData+dataSection.sizeOfRawData]
	names := backwardsNameTable(rawData, dataSection)

	doc := &Document{Locale: locale, Messages: make([]Message, len(names))}
	for i, n := range names {
		text, found := table[n.id]
		doc.Messages[i] = Message{Name: n.name, ID: n.id, Text: text, Found: found}
	}
	return doc, nil
}
