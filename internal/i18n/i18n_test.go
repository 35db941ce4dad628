// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"slices"
	"testing"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}
	av := Available()
	for _, k := range []string{"en", "de"} {
		if !slices.Contains(av, k) {
			t.Fatalf("expected available locale %q, got %v", k, av)
		}
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	if got := T("history.empty"); got != "No recorded changes" {
		t.Fatalf("unexpected translation: %q", got)
	}
	if got := T("update.changed", "start", 2); got != "start: 2 property(ies) updated" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	SetLang("de")
	defer SetLang("en")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("history.empty"); got != "Keine Änderungen aufgezeichnet" {
		t.Fatalf("unexpected German translation: %q", got)
	}
}

func TestT_UnknownIDFallsBack(t *testing.T) {
	Init("en")
	if got := T("does.not.exist"); got != "does.not.exist" {
		t.Fatalf("expected id fallback, got %q", got)
	}
}
