package utils

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNormalizeComposesRunes(t *testing.T) {
	t.Parallel()

	tp := NewTextProcessor(zap.NewNop())

	// "é" as e + combining acute accent versus the precomposed form.
	decomposed := "José"
	composed := "José"

	if got := tp.Normalize(decomposed); got != composed {
		t.Errorf("Normalize: got %q, want %q", got, composed)
	}
	if got := tp.Normalize(composed); got != composed {
		t.Errorf("Normalize on composed input: got %q, want %q", got, composed)
	}
}

func TestTruncateText(t *testing.T) {
	t.Parallel()

	tp := NewTextProcessor(zap.NewNop())

	short := "hello"
	if got := tp.TruncateText(short, 100); got != short {
		t.Errorf("TruncateText under limit: got %q, want %q", got, short)
	}
	if got := tp.TruncateText(short, 0); got != short {
		t.Errorf("TruncateText with no limit: got %q, want %q", got, short)
	}

	long := strings.Repeat("a", 50)
	got := tp.TruncateText(long, 10)
	if !strings.HasPrefix(got, strings.Repeat("a", 10)) {
		t.Errorf("TruncateText: got %q, want 10-byte prefix kept", got)
	}
	if !strings.Contains(got, "truncated") {
		t.Errorf("TruncateText: got %q, want truncation marker", got)
	}

	// Multi-byte rune straddling the cut must not be split.
	multi := "aaaaé"
	got = tp.TruncateText(multi, 5)
	cut := strings.SplitN(got, "\n", 2)[0]
	if cut != "aaaa" {
		t.Errorf("TruncateText on rune boundary: got %q, want %q", cut, "aaaa")
	}
}

func TestSanitizeUTF8(t *testing.T) {
	t.Parallel()

	tp := NewTextProcessor(zap.NewNop())

	clean := "all good"
	if got := tp.SanitizeUTF8(clean); got != clean {
		t.Errorf("SanitizeUTF8 on valid input: got %q, want %q", got, clean)
	}

	dirty := "bad\xffbyte"
	if got := tp.SanitizeUTF8(dirty); got != "badbyte" {
		t.Errorf("SanitizeUTF8: got %q, want %q", got, "badbyte")
	}
}
