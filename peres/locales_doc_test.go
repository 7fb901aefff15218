// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

package peres

import (
	_ "embed"
	"testing"

	"gopkg.in/yaml.v3"
)

//go:embed testdata/locales.yaml
var localesDoc []byte

type localeDocEntry struct {
	ID   uint32 `yaml:"id"`
	Name string `yaml:"name"`
}

type localeDocFile struct {
	Locales []localeDocEntry `yaml:"locales"`
}

// TestLocaleDocMatchesConsts keeps testdata/locales.yaml's id->name
// table in sync with the LocaleID consts. The yaml documents the
// supported --locale-id values for callers; LocaleID.String() stays
// the source of truth decode relies on.
func TestLocaleDocMatchesConsts(t *testing.T) {
	var doc localeDocFile
	if err := yaml.Unmarshal(localesDoc, &doc); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if len(doc.Locales) != 3 {
		t.Fatalf("locales.yaml lists %d locales, want 3", len(doc.Locales))
	}
	for _, e := range doc.Locales {
		if got := LocaleID(e.ID).String(); got != e.Name {
			t.Errorf("LocaleID(%d).String() = %q, want %q", e.ID, got, e.Name)
		}
	}
}
