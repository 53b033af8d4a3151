package packer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

// Packer reads and writes the single-file container form: a zip archive
// bundling one default document plus auxiliary resource files. The container
// convention treats the first entry as the default document.
type Packer struct {
	fs          afs.Service
	documentExt string
}

// New creates a packer; documentExt is the extension identifying the
// single-document form inside a container (e.g. ".scn").
func New(fs afs.Service, documentExt string) *Packer {
	if fs == nil {
		fs = afs.New()
	}
	return &Packer{fs: fs, documentExt: documentExt}
}

// Pack writes every file under dir into a container at outputPath. When
// preferredFirstEntry names a present file, that entry is ordered first. A
// directory with zero files produces no output. Entries are stored without
// recompression: the payload is already compressed media.
func (p *Packer) Pack(ctx context.Context, dir, outputPath, preferredFirstEntry string) error {
	var entries []string
	visitor := func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		entries = append(entries, path.Join(parent, info.Name()))
		return true, nil
	}
	if err := p.fs.Walk(ctx, dir, storage.OnVisit(visitor)); err != nil {
		return fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	if len(entries) == 0 {
		return nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return isPreferred(entries[i], preferredFirstEntry) && !isPreferred(entries[j], preferredFirstEntry)
	})

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create container %s: %w", outputPath, err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	for _, entry := range entries {
		if err := p.addEntry(writer, dir, entry); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize container %s: %w", outputPath, err)
	}
	return nil
}

func (p *Packer) addEntry(writer *zip.Writer, dir, entry string) error {
	file, err := os.Open(filepath.Join(dir, filepath.FromSlash(entry)))
	if err != nil {
		return fmt.Errorf("failed to open container entry %s: %w", entry, err)
	}
	defer file.Close()
	dest, err := writer.CreateHeader(&zip.FileHeader{Name: entry, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("failed to add container entry %s: %w", entry, err)
	}
	if _, err := io.Copy(dest, file); err != nil {
		return fmt.Errorf("failed to write container entry %s: %w", entry, err)
	}
	return nil
}

func isPreferred(entry, preferred string) bool {
	return preferred != "" && path.Base(entry) == path.Base(preferred)
}

// Unpack extracts all container entries into a fresh scratch directory and
// reports the entry holding the conventional default document: the first
// entry whose extension indicates the single-document form. The caller owns
// the returned directory and must remove it.
func (p *Packer) Unpack(ctx context.Context, containerPath string) (string, string, error) {
	reader, err := zip.OpenReader(containerPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to open container %s: %w", containerPath, err)
	}
	defer reader.Close()

	dir, err := os.MkdirTemp("", "scenemerge-container-")
	if err != nil {
		return "", "", fmt.Errorf("failed to create extraction dir: %w", err)
	}

	firstEntry := ""
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if err := extractEntry(dir, entry); err != nil {
			_ = os.RemoveAll(dir)
			return "", "", err
		}
		if firstEntry == "" && path.Ext(entry.Name) == p.documentExt {
			firstEntry = entry.Name
		}
	}
	if firstEntry == "" {
		_ = os.RemoveAll(dir)
		return "", "", fmt.Errorf("container %s has no %s entry", containerPath, p.documentExt)
	}
	return dir, firstEntry, nil
}

func extractEntry(dir string, entry *zip.File) error {
	target := filepath.Join(dir, filepath.FromSlash(entry.Name))
	if !strings.HasPrefix(target, dir+string(os.PathSeparator)) {
		return fmt.Errorf("container entry %s escapes extraction dir", entry.Name)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", entry.Name, err)
	}
	source, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to read container entry %s: %w", entry.Name, err)
	}
	defer source.Close()
	dest, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
	}
	defer dest.Close()
	if _, err := io.Copy(dest, source); err != nil {
		return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
	}
	return nil
}
