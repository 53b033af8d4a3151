package combiner

import (
	"context"

	"github.com/scenekit/scenemerge/scene"
)

// VariantEntry associates one source document with the variant name it
// becomes in the combined graph.
type VariantEntry struct {
	Document string
	Variant  string
}

// VariantMapping is an ordered {document path -> variant name} mapping.
// Order is significant by design: the first entry becomes the default
// selection, and earlier documents win clone names on collision.
type VariantMapping []VariantEntry

// Documents lists the mapped document paths in order.
func (m VariantMapping) Documents() []string {
	result := make([]string, 0, len(m))
	for _, entry := range m {
		result = append(result, entry.Document)
	}
	return result
}

// variantSetBuilder builds one axis of variation on the combined graph. Each
// axis owns its own identity map; axes never interleave.
type variantSetBuilder struct {
	combined     *scene.Document
	basePath     string
	setName      string
	relationship string
	reporter     Reporter
	resolver     *resolver

	// load opens, bakes and flattens a variant document.
	load func(ctx context.Context, location string) (*scene.Document, error)
	// loaded is invoked for every distinct variant document after loading,
	// before its edits are applied (time-range reconciliation hook).
	loaded func(doc *scene.Document)
}

// build registers one variant per mapping entry, in caller order, and leaves
// the first entry's variant selected. An empty mapping skips the axis
// entirely: no variant set is created.
func (b *variantSetBuilder) build(ctx context.Context, variants VariantMapping) (*scene.VariantSet, error) {
	if len(variants) == 0 {
		return nil, nil
	}
	b.resolver = newResolver(b.combined, b.reporter)
	set := b.combined.AddVariantSet(b.setName)

	for _, entry := range variants {
		variant := set.AddVariant(entry.Variant)
		if entry.Document == b.basePath {
			b.captureBase(variant)
			continue
		}
		doc, err := b.load(ctx, entry.Document)
		if err != nil {
			return nil, err
		}
		if b.loaded != nil {
			b.loaded(doc)
		}
		b.apply(doc, variant)
	}

	set.SetSelection(variants[0].Variant)
	return set, nil
}

// captureBase converts the combined graph's own unconditional bindings into
// variant-scoped ones: targets and edge metadata are captured, the base
// targets cleared, and the same targets re-authored inside the variant's
// edit-block. The active document's state becomes just another selectable
// variant instead of a silent default.
func (b *variantSetBuilder) captureBase(variant *scene.Variant) {
	b.combined.Walk(func(node *scene.Node) bool {
		rel := node.Relationship(b.relationship)
		if rel == nil || len(rel.Targets) == 0 {
			return true
		}
		captured := rel.Clone()
		rel.Targets = nil
		variant.AddOverride(&scene.Override{Path: node.Path(), Relationship: captured})
		return true
	})
}

// apply authors the variant document's bindings into the variant's
// edit-block on the structurally corresponding combined-graph nodes,
// bringing divergent targets into the combined graph through the resolver.
func (b *variantSetBuilder) apply(doc *scene.Document, variant *scene.Variant) {
	doc.Walk(func(node *scene.Node) bool {
		rel := node.Relationship(b.relationship)
		if rel == nil {
			return true
		}
		path := node.Path()
		if b.combined.NodeAt(path) == nil {
			b.reporter.Report(Diagnostic{
				Kind:     HierarchyMismatch,
				Document: doc.Location,
				Path:     path,
				Detail:   "node has no counterpart in the base document",
			})
			return true
		}

		override := rel.Clone()
		override.Targets = nil
		for _, target := range rel.Targets {
			resolved, ok := b.resolver.resolveOrClone(target, doc)
			if !ok {
				// Dangling target: keep the original reference unresolved.
				override.Targets = append(override.Targets, target)
				continue
			}
			override.Targets = append(override.Targets, resolved)
		}
		variant.AddOverride(&scene.Override{Path: path, Relationship: override})
		return true
	})
}
