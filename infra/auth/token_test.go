package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

func TestFileTokenProvider_AccessToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("  abc123 \n"), 0o600); err != nil {
		t.Fatalf("write token failed: %v", err)
	}

	p := NewFileTokenProvider(path)
	got, err := p.AccessToken()
	if err != nil {
		t.Fatalf("access token failed: %v", err)
	}
	if got != "abc123" {
		t.Fatalf("unexpected token: %q", got)
	}
}

func TestFileTokenProvider_AccessTokenErrors(t *testing.T) {
	p := NewFileTokenProvider(filepath.Join(t.TempDir(), "missing"))
	if _, err := p.AccessToken(); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for missing file, got: %v", err)
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte(" \n\t"), 0o600); err != nil {
		t.Fatalf("write empty token failed: %v", err)
	}
	p = NewFileTokenProvider(empty)
	_, err := p.AccessToken()
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty-token error, got: %v", err)
	}
}

func TestResolve_PrefersDirectToken(t *testing.T) {
	got, err := Resolve(" direct ", "/nonexistent").AccessToken()
	if err != nil || got != "direct" {
		t.Fatalf("expected direct token, got %q (%v)", got, err)
	}

	if _, err := Resolve("", "/nonexistent/token").AccessToken(); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected file fallback to fail unauthorized, got: %v", err)
	}
}
