package common

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPlainText_StripsTagsAndEscapes(t *testing.T) {
	in := "<p>Hello &lt;world&gt; &amp; crew</p><p>line2\x1b[31m red\x01</p>"
	got := PlainText(in)
	if strings.Contains(got, "<p>") || strings.Contains(got, "\x1b") || strings.ContainsRune(got, '\x01') {
		t.Fatalf("expected markup and escapes removed: %q", got)
	}
	if got != "Hello <world> & crew\nline2 red" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTruncate_RespectsCellWidth(t *testing.T) {
	got := Truncate("日本語のテキストです", 7)
	if ansi.StringWidth(got) > 7 {
		t.Fatalf("truncated text too wide: %q", got)
	}
	if Truncate("short", 10) != "short" {
		t.Fatalf("short text must be untouched")
	}
}

func TestIsSafeExternalURL(t *testing.T) {
	if !IsSafeExternalURL("https://go.dev/") || IsSafeExternalURL("javascript:alert(1)") || IsSafeExternalURL("/relative") {
		t.Fatalf("unexpected url safety decisions")
	}
}
