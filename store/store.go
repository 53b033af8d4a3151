package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scenekit/scenemerge/packer"
	"github.com/scenekit/scenemerge/scene"
	"github.com/viant/afs"
)

const (
	// ExtDocument is the canonical single-document extension.
	ExtDocument = ".scn"
	// ExtContainer is the single-file container extension.
	ExtContainer = ".scnz"
)

var (
	// ErrUnreadableDocument indicates a document that is absent or cannot
	// be parsed. Fatal: there is no partial result without a graph.
	ErrUnreadableDocument = errors.New("unreadable document")
	// ErrUnsupportedExtension indicates a document request with a
	// disallowed extension.
	ErrUnsupportedExtension = errors.New("unsupported document extension")
)

// Service opens, flattens and exports scene documents. Containers are
// expanded into scratch directories tracked by the service and released by
// Cleanup.
type Service struct {
	fs      afs.Service
	packer  *packer.Packer
	scratch []string
}

// New creates a document service.
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, packer: packer.New(fs, ExtDocument)}
}

// Open loads the document at location. The load strategy is resolved once
// from the extension: plain documents are parsed directly, containers are
// expanded first and their default entry parsed.
func (s *Service) Open(ctx context.Context, location string) (*scene.Document, error) {
	switch strings.ToLower(filepath.Ext(location)) {
	case ExtDocument:
		return s.openDocument(ctx, location)
	case ExtContainer:
		dir, firstEntry, err := s.packer.Unpack(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
		}
		s.scratch = append(s.scratch, dir)
		return s.openDocument(ctx, filepath.Join(dir, filepath.FromSlash(firstEntry)))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, location)
	}
}

func (s *Service) openDocument(ctx context.Context, location string) (*scene.Document, error) {
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, location, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, location, err)
	}
	if abs, err := filepath.Abs(location); err == nil {
		location = abs
	}
	doc.Location = location
	return doc, nil
}

// Flatten resolves all sublayer references into one self-contained graph.
// The document's own opinions are strongest; sublayers contribute only what
// the layers above them left unauthored. Asset references contributed by a
// sublayer are resolved against that sublayer's own directory so they stay
// addressable from the flattened document.
func (s *Service) Flatten(ctx context.Context, doc *scene.Document) (*scene.Document, error) {
	for _, layer := range doc.SubLayers {
		location := layer
		if !filepath.IsAbs(location) {
			location = filepath.Join(filepath.Dir(doc.Location), location)
		}
		sub, err := s.Open(ctx, location)
		if err != nil {
			return nil, err
		}
		if sub, err = s.Flatten(ctx, sub); err != nil {
			return nil, err
		}
		resolveAssets(sub)
		mergeDocument(doc, sub)
	}
	doc.SubLayers = nil
	return doc, nil
}

// resolveAssets rewrites relative asset property values to absolute paths
// anchored at the document's directory.
func resolveAssets(doc *scene.Document) {
	dir := filepath.Dir(doc.Location)
	doc.Walk(func(node *scene.Node) bool {
		for _, property := range node.Properties {
			if property.Type != scene.AssetType || property.Value == "" {
				continue
			}
			if !filepath.IsAbs(property.Value) {
				property.Value = filepath.Join(dir, property.Value)
			}
		}
		return true
	})
}

func mergeDocument(strong, weak *scene.Document) {
	if strong.DefaultPrim == "" {
		strong.DefaultPrim = weak.DefaultPrim
	}
	if strong.StartTime == 0 && strong.EndTime == 0 {
		strong.StartTime = weak.StartTime
		strong.EndTime = weak.EndTime
	}
	mergeNode(strong.Root, weak.Root)
}

func mergeNode(strong, weak *scene.Node) {
	if strong.Type == "" {
		strong.Type = weak.Type
	}
	for _, property := range weak.Properties {
		if strong.Property(property.Name) == nil {
			strong.AddProperty(property.Clone())
		}
	}
	for _, rel := range weak.Relationships {
		if strong.Relationship(rel.Name) == nil {
			strong.AddRelationship(rel.Clone())
		}
	}
	for _, child := range weak.Children() {
		existing := strong.Child(child.Name)
		if existing == nil {
			strong.AddChild(child.Clone())
			continue
		}
		mergeNode(existing, child)
	}
}

// Export writes the document in the textual single-document form.
func (s *Service) Export(ctx context.Context, doc *scene.Document, location string) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.fs.Upload(ctx, location, 0644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to export document to %s: %w", location, err)
	}
	return nil
}

// Cleanup removes every container extraction directory created by Open.
func (s *Service) Cleanup() error {
	var failed error
	for _, dir := range s.scratch {
		if err := os.RemoveAll(dir); err != nil && failed == nil {
			failed = err
		}
	}
	s.scratch = nil
	return failed
}
