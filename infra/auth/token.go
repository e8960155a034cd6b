package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// StaticToken is a token known up front, e.g. from the environment.
type StaticToken string

// AccessToken returns the token or domain.ErrUnauthorized when it is blank.
func (s StaticToken) AccessToken() (string, error) {
	token := strings.TrimSpace(string(s))
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	return token, nil
}

// FileTokenProvider reads a bearer token from a file on disk.
// The file is read on every call so a refreshed token is picked up.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider that reads from the given file path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// AccessToken reads and returns the token, trimming whitespace.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: no token at %s", domain.ErrUnauthorized, f.path)
		}
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: token file %s is empty", domain.ErrUnauthorized, f.path)
	}

	return token, nil
}

// Resolve prefers a token given directly over the token file.
func Resolve(token, path string) TokenProvider {
	if strings.TrimSpace(token) != "" {
		return StaticToken(token)
	}
	return NewFileTokenProvider(path)
}
