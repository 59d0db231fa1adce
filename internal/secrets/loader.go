// Package secrets reads API keys and service-account credentials for the
// enrichment providers.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured means neither a file nor an inline value was given.
var ErrNotConfigured = errors.New("not configured")

// Source names a secret and where it may come from. File wins over Value.
type Source struct {
	Name  string
	Value string
	File  string
}

func (s Source) label() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return "secret"
}

// Load returns the secret from src with surrounding whitespace removed.
func Load(src Source) (string, error) {
	if file := strings.TrimSpace(src.File); file != "" {
		return readFile(src.label(), file)
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("%s: %w", src.label(), ErrNotConfigured)
}

func readFile(label, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s from %q: %w", label, path, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file %q is empty", label, path)
	}
	return secret, nil
}
