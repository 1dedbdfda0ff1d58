package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

const promptExt = ".txt"

// promptPurpose is written to the README next to each file name.
var promptPurpose = map[string]string{
	driven.PromptSystem: "always sent; who the assistant is and how to use the reference documents",
	driven.PromptTools:  "added in research modes; how to use the search tools",
	driven.PromptVoice:  "added in voice modes; how to phrase answers for speech",
}

// PromptStore reads prompts from operator-editable files, one <name>.txt per
// prompt. Missing files are seeded from the defaults on first use; a file
// that is later deleted or left blank falls back to its default.
type PromptStore struct {
	dir      string
	defaults map[string]string

	seedOnce sync.Once
	seedErr  error
}

// NewPromptStore creates a prompt store rooted at dir. No I/O happens until
// the first Load.
func NewPromptStore(dir string, defaults map[string]string) (*PromptStore, error) {
	if dir == "" {
		return nil, errors.New("prompt directory is required")
	}
	copied := make(map[string]string, len(defaults))
	for name, text := range defaults {
		copied[name] = text
	}
	return &PromptStore{dir: dir, defaults: copied}, nil
}

// Load returns the trimmed prompt for name.
func (s *PromptStore) Load(name string) (string, error) {
	s.seedOnce.Do(s.seed)

	data, err := os.ReadFile(s.path(name))
	if err == nil {
		if text := strings.TrimSpace(string(data)); text != "" {
			return text, nil
		}
	}
	if def, ok := s.defaults[name]; ok {
		return def, nil
	}

	switch {
	case s.seedErr != nil:
		return "", fmt.Errorf("prompt %q: seeding %s failed: %w", name, s.dir, s.seedErr)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("reading prompt %q: %w", name, err)
	default:
		return "", fmt.Errorf("prompt %q: no file in %s and no default", name, s.dir)
	}
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+promptExt)
}

// seed creates the directory, writes defaults for missing files and a README.
// Existing files are never touched.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		s.seedErr = err
		return
	}
	for name, text := range s.defaults {
		if err := writeIfAbsent(s.path(name), text+"\n"); err != nil {
			s.seedErr = err
			return
		}
	}
	s.seedErr = writeIfAbsent(filepath.Join(s.dir, "README.md"), s.readme())
}

func (s *PromptStore) readme() string {
	names := make([]string, 0, len(s.defaults))
	for name := range s.defaults {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("# Prompts\n\nEach file is one block of the system preamble sent to the model.\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- `%s%s`", name, promptExt)
		if purpose, ok := promptPurpose[name]; ok {
			fmt.Fprintf(&b, ": %s", purpose)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nPrompts are read at startup; restart after editing. An empty or deleted file uses the built-in text.\n")
	return b.String()
}

func writeIfAbsent(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
