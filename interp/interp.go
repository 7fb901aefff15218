// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package interp implements the interpreter-script container: a TOC of
// named, timestamped scripts, each a stream of NUL-terminated commands.
package interp

import (
	"strings"
	"time"

	"github.com/duskforge/mech3kit/internal/bin"
	"github.com/duskforge/mech3kit/internal/passert"
)

const (
	signature  = 0x08971119
	version    = 7
	nameSize   = 120
	tocEntry   = nameSize + 4 + 4
	headerSize = 12
)

// Command is one NUL-separated argument list read from a script body.
type Command struct {
	Args []string
}

// Script is one named, timestamped sequence of commands.
type Script struct {
	Name         string
	LastModified time.Time
	Commands     []Command
}

// Document is a decoded interpreter-script archive.
type Document struct {
	Scripts []*Script
}

// Decode parses buf as an interpreter-script container.
func Decode(buf []byte) (*Document, error) {
	c := bin.NewCursor(buf)
	sig := c.U32()
	ver := c.U32()
	count := c.U32()
	if err := passert.Eq(passert.Parse, "interp.header.signature", uint32(signature), sig, 0); err != nil {
		return nil, err
	}
	if err := passert.Eq(passert.Parse, "interp.header.version", uint32(version), ver, 4); err != nil {
		return nil, err
	}

	type row struct {
		name  string
		mtime uint32
		start uint32
	}
	rows := make([]row, count)
	for i := uint32(0); i < count; i++ {
		name, _ := c.ZString(nameSize)
		mtime := c.U32()
		start := c.U32()
		rows[i] = row{name, mtime, start}
	}

	doc := &Document{Scripts: make([]*Script, count)}
	for i, r := range rows {
		sc := bin.NewCursor(buf)
		sc.SeekAbs(int64(r.start))
		s := &Script{Name: r.name, LastModified: time.Unix(int64(r.mtime), 0).UTC()}
		for {
			size := sc.U32()
			if size == 0 {
				break
			}
			argCount := sc.U32()
			body := sc.Take(int(size))
			if err := passert.Ascii(passert.Parse, "interp.command.body", body, sc.Prev()); err != nil {
				return nil, err
			}
			nulCount := 0
			for _, b := range body {
				if b == 0 {
					nulCount++
				}
			}
			if err := passert.Eq(passert.Parse, "interp.command.arg_count", argCount, uint32(nulCount), sc.Prev()); err != nil {
				return nil, err
			}
			parts := strings.Split(string(body), "\x00")
			if len(parts) > 0 && parts[len(parts)-1] == "" {
				parts = parts[:len(parts)-1]
			}
			s.Commands = append(s.Commands, Command{Args: parts})
		}
		doc.Scripts[i] = s
	}
	return doc, nil
}

// Encode serializes the document back to its on-disk byte layout.
func Encode(doc *Document) ([]byte, error) {
	bodies := make([][]byte, len(doc.Scripts))
	for i, s := range doc.Scripts {
		bw := bin.NewWriter()
		for _, cmd := range s.Commands {
			body := strings.Join(cmd.Args, "\x00") + "\x00"
			bw.PutU32(uint32(len(body)))
			bw.PutU32(uint32(strings.Count(body, "\x00")))
			bw.PutBytes([]byte(body))
		}
		bw.PutU32(0)
		bodies[i] = bw.Bytes()
	}

	base := int64(headerSize) + int64(len(doc.Scripts))*tocEntry
	starts := make([]uint32, len(doc.Scripts))
	pos := base
	for i, b := range bodies {
		starts[i] = uint32(pos)
		pos += int64(len(b))
	}

	w := bin.NewWriter()
	w.PutU32(signature)
	w.PutU32(version)
	w.PutU32(uint32(len(doc.Scripts)))
	for i, s := range doc.Scripts {
		w.PutZString(s.Name, nameSize, 0)
		w.PutU32(uint32(s.LastModified.Unix()))
		w.PutU32(starts[i])
	}
	for _, b := range bodies {
		w.PutBytes(b)
	}
	return w.Bytes(), nil
}

// Extracted renders a command as the extracted-form string, replacing
// NULs with spaces (§4.E): the wire form never contains spaces.
func (c Command) Extracted() string {
	return strings.Join(c.Args, " ")
}
