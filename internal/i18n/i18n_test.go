// ABOUTME: Tests for the bilingual message catalog
// ABOUTME: Validates lookup, fallback, and language normalization

package i18n

import "testing"

func TestLookupSwahili(t *testing.T) {
	got := T("chat.error", Swahili)
	want := "Samahani, nimekutana na tatizo. Tafadhali jaribu tena."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestUnknownLangFallsBackToEnglish(t *testing.T) {
	got := T("chat.error", Lang("fr"))
	if got != T("chat.error", English) {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestUnknownKeyReturnsKey(t *testing.T) {
	if got := T("nope.missing", English); got != "nope.missing" {
		t.Errorf("expected key echo, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	if Normalize("sw") != Swahili {
		t.Error("expected sw to normalize to Swahili")
	}
	if Normalize("de") != English {
		t.Error("expected unsupported language to normalize to English")
	}
	if Normalize("") != English {
		t.Error("expected empty language to normalize to English")
	}
}

func TestToggle(t *testing.T) {
	if Toggle(English) != Swahili || Toggle(Swahili) != English {
		t.Error("expected toggle to flip between en and sw")
	}
}
