package resource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
)

// ErrUnreadable indicates a resource file that does not exist or cannot be
// opened. Callers treat it as non-fatal where a missing asset is tolerated.
var ErrUnreadable = errors.New("resource unreadable")

// Store deduplicates binary resource files by content digest. Each unique
// content is copied into a private scratch directory exactly once; repeated
// interns of equal content return the recorded path without copying. The
// scratch directory doubles as the export staging area.
type Store struct {
	fs      afs.Service
	dir     string
	entries map[string]string // digest -> stored path
}

// New creates a store with a fresh scratch directory.
func New(fs afs.Service) (*Store, error) {
	if fs == nil {
		fs = afs.New()
	}
	dir, err := os.MkdirTemp("", "scenemerge-resources-")
	if err != nil {
		return nil, fmt.Errorf("failed to create resource scratch dir: %w", err)
	}
	return &Store{
		fs:      fs,
		dir:     dir,
		entries: make(map[string]string),
	}, nil
}

// Dir returns the scratch directory holding the deduplicated resources.
func (s *Store) Dir() string {
	return s.dir
}

// Intern records the file's content in the store and returns its stored
// path. Equal content always resolves to the same stored path regardless of
// the source name; name collisions between distinct contents are resolved
// with an incrementing _<n> suffix before the extension.
func (s *Store) Intern(ctx context.Context, filePath string) (string, error) {
	reader, err := s.fs.OpenURL(ctx, filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, filePath, err)
	}
	sum, err := digest(reader)
	_ = reader.Close()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, filePath, err)
	}
	if stored, ok := s.entries[sum]; ok {
		return stored, nil
	}

	name := filepath.Base(filePath)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	target := filepath.Join(s.dir, name)
	for count := 1; ; count++ {
		exists, err := s.fs.Exists(ctx, target)
		if err != nil {
			return "", fmt.Errorf("failed to probe %s: %w", target, err)
		}
		if !exists {
			break
		}
		target = filepath.Join(s.dir, fmt.Sprintf("%s_%d%s", base, count, ext))
	}

	if err := s.fs.Copy(ctx, filePath, target); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, filePath, err)
	}
	s.entries[sum] = target
	return target, nil
}

// Close removes the scratch directory and everything staged in it.
func (s *Store) Close() error {
	return os.RemoveAll(s.dir)
}
