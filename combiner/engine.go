package combiner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scenekit/scenemerge/packer"
	"github.com/scenekit/scenemerge/resource"
	"github.com/scenekit/scenemerge/scene"
	"github.com/scenekit/scenemerge/store"
	"github.com/viant/afs"
)

// Relationship names tracked per axis.
const (
	MaterialBinding = "material:binding"
	AnimationSource = "skel:animationSource"
)

// ShaderType is the node type whose asset inputs are baked through the
// resource store.
const ShaderType = "Shader"

var (
	// ErrMissingDefaultRoot indicates a loaded document with no designated
	// default-prim root. Fatal: nothing can anchor variant sets.
	ErrMissingDefaultRoot = errors.New("document has no default prim")
	// ErrNoVariants indicates a combine request with no variant mappings
	// for either axis.
	ErrNoVariants = errors.New("no variant mappings supplied")
)

// Engine drives one merge: it loads the base and variant documents, builds
// the material and animation axes, reconciles the combined time range and
// exports the result as a container. One engine instance owns one combined
// graph; processing is single-threaded and mutates it in place.
type Engine struct {
	fs        afs.Service
	documents *store.Service
	resources *resource.Store
	packer    *packer.Packer
	reporter  Reporter

	materialSetName  string
	animationSetName string

	combined *scene.Document
	basePath string
}

// Option customizes an engine.
type Option func(*Engine)

// WithMaterialSetName overrides the material variant-set name.
func WithMaterialSetName(name string) Option {
	return func(e *Engine) {
		e.materialSetName = name
	}
}

// WithAnimationSetName overrides the animation variant-set name.
func WithAnimationSetName(name string) Option {
	return func(e *Engine) {
		e.animationSetName = name
	}
}

// WithReporter sets the diagnostic reporter.
func WithReporter(reporter Reporter) Option {
	return func(e *Engine) {
		e.reporter = reporter
	}
}

// New creates an engine. The caller must Close it to release the scratch
// directories, on every exit path.
func New(fs afs.Service, options ...Option) (*Engine, error) {
	if fs == nil {
		fs = afs.New()
	}
	resources, err := resource.New(fs)
	if err != nil {
		return nil, err
	}
	engine := &Engine{
		fs:               fs,
		documents:        store.New(fs),
		resources:        resources,
		packer:           packer.New(fs, store.ExtDocument),
		reporter:         NewWriterReporter(os.Stderr),
		materialSetName:  "Material",
		animationSetName: "Animation",
	}
	for _, option := range options {
		option(engine)
	}
	return engine, nil
}

// Combine merges the variant documents into the base document and writes the
// result to outputPath. At least one of the two mappings must be non-empty;
// this is checked before any graph is loaded or mutated. The material axis
// completes fully before the animation axis starts. Returns the output path.
func (e *Engine) Combine(ctx context.Context, basePath string, materialVariants, animationVariants VariantMapping, policy TimeRangePolicy, outputPath string) (string, error) {
	if len(materialVariants) == 0 && len(animationVariants) == 0 {
		return "", ErrNoVariants
	}
	materialVariants = normalize(materialVariants)
	animationVariants = normalize(animationVariants)
	if abs, err := filepath.Abs(basePath); err == nil {
		basePath = abs
	}

	base, err := e.load(ctx, basePath)
	if err != nil {
		return "", err
	}
	if base.DefaultPrimNode() == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingDefaultRoot, basePath)
	}
	e.combined = base
	// Variant entries naming the base document are matched by the request
	// path, not the document's resolved location: a container base resolves
	// to its extracted default entry.
	e.basePath = basePath

	material := &variantSetBuilder{
		combined:     e.combined,
		basePath:     e.basePath,
		setName:      e.materialSetName,
		relationship: MaterialBinding,
		reporter:     e.reporter,
		load:         e.load,
	}
	if _, err := material.build(ctx, materialVariants); err != nil {
		return "", err
	}

	window := TimeRange{Start: base.StartTime, End: base.EndTime}
	animation := &variantSetBuilder{
		combined:     e.combined,
		basePath:     e.basePath,
		setName:      e.animationSetName,
		relationship: AnimationSource,
		reporter:     e.reporter,
		load:         e.load,
		loaded: func(doc *scene.Document) {
			window = policy.Reconcile(window, TimeRange{Start: doc.StartTime, End: doc.EndTime})
		},
	}
	set, err := animation.build(ctx, animationVariants)
	if err != nil {
		return "", err
	}
	if set != nil {
		e.combined.StartTime = window.Start
		e.combined.EndTime = window.End
	}

	return e.export(ctx, outputPath)
}

// Combined exposes the merged graph, nil before a successful Combine.
func (e *Engine) Combined() *scene.Document {
	return e.combined
}

// load opens a document, flattens it and bakes its resource references, in
// that order, so later path rewrites only ever deal with local, already
// deduplicated names.
func (e *Engine) load(ctx context.Context, location string) (*scene.Document, error) {
	doc, err := e.documents.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	if doc, err = e.documents.Flatten(ctx, doc); err != nil {
		return nil, err
	}
	e.bake(ctx, doc)
	return doc, nil
}

// bake rewrites every asset-valued shader input to the base name of its
// interned, deduplicated copy. Unreadable resources are reported and
// skipped: a missing asset never aborts the merge.
func (e *Engine) bake(ctx context.Context, doc *scene.Document) {
	dir := filepath.Dir(doc.Location)
	doc.Walk(func(node *scene.Node) bool {
		if node.Type != ShaderType {
			return true
		}
		for _, property := range node.Properties {
			if property.Type != scene.AssetType || property.Value == "" {
				continue
			}
			resolved := property.Value
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(dir, resolved)
			}
			stored, err := e.resources.Intern(ctx, resolved)
			if err != nil {
				e.reporter.Report(Diagnostic{
					Kind:     ResourceSkipped,
					Document: doc.Location,
					Path:     node.Path(),
					Detail:   err.Error(),
				})
				continue
			}
			property.Value = filepath.Base(stored)
		}
		return true
	})
}

// export writes the combined document into the resource staging directory
// under the output's base name with the canonical document extension, then
// packs the staging directory into the final container with the document as
// first entry.
func (e *Engine) export(ctx context.Context, outputPath string) (string, error) {
	name := filepath.Base(outputPath)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + store.ExtDocument
	staged := filepath.Join(e.resources.Dir(), name)
	if err := e.documents.Export(ctx, e.combined, staged); err != nil {
		return "", err
	}
	if err := e.packer.Pack(ctx, e.resources.Dir(), outputPath, name); err != nil {
		return "", err
	}
	return outputPath, nil
}

// Close removes every scratch directory the engine or its loaded documents
// created: the resource staging area and each container extraction. Safe to
// call after a failed Combine.
func (e *Engine) Close() error {
	err := e.resources.Close()
	if cleanupErr := e.documents.Cleanup(); cleanupErr != nil && err == nil {
		err = cleanupErr
	}
	return err
}

// normalize resolves mapping document paths to absolute form so base-path
// comparison is reliable regardless of how the caller spelled them.
func normalize(mapping VariantMapping) VariantMapping {
	result := make(VariantMapping, 0, len(mapping))
	for _, entry := range mapping {
		if abs, err := filepath.Abs(entry.Document); err == nil {
			entry.Document = abs
		}
		result = append(result, entry)
	}
	return result
}
