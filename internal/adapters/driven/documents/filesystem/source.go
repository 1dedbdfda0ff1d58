package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source reads documents by file name from a base directory.
type Source struct {
	baseDir string
}

// NewSource creates a source rooted at baseDir.
func NewSource(baseDir string) *Source {
	return &Source{baseDir: baseDir}
}

// ReadDocument reads baseDir/name. Names must be plain file names.
func (s *Source) ReadDocument(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Location returns the base directory.
func (s *Source) Location() string {
	return s.baseDir
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("invalid document name %q: %w", name, fs.ErrInvalid)
	}
	return nil
}
