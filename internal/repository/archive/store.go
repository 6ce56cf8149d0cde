package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fairTune/domain"

	"github.com/goccy/go-json"
)

// Store persists evaluation archives as indented JSON, one document per
// session name.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return "", fmt.Errorf("invalid archive name: %q", name)
	}

	return filepath.Join(s.dir, name+".json"), nil
}

// Save writes via a temp file and rename so a crash mid-write never
// leaves a torn document behind.
func (s *Store) Save(name string, a domain.EvaluationArchive) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation archive: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write evaluation archive: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace evaluation archive: %w", err)
	}

	return nil
}

// Load reads a stored archive. The second return is false when none
// exists yet.
func (s *Store) Load(name string) (domain.EvaluationArchive, bool, error) {
	path, err := s.path(name)
	if err != nil {
		return domain.EvaluationArchive{}, false, err
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.EvaluationArchive{}, false, nil
	}
	if err != nil {
		return domain.EvaluationArchive{}, false, fmt.Errorf("failed to read evaluation archive: %w", err)
	}

	var a domain.EvaluationArchive
	if err := json.Unmarshal(raw, &a); err != nil {
		return domain.EvaluationArchive{}, false, fmt.Errorf("failed to parse evaluation archive: %w", err)
	}

	return a, true, nil
}
