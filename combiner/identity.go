package combiner

import (
	"github.com/scenekit/scenemerge/scene"
)

// identityKey identifies a relationship target within the document that
// authored it. Identity is path-based: live node references never span
// graphs, since source documents are discarded while the combined graph
// persists.
type identityKey struct {
	document string
	target   scene.Path
}

// resolver maps source relationship targets to their copies in the combined
// graph. Each (document, target) pair is cloned at most once per axis: a
// target referenced from several relationships of the same document resolves
// to the same combined path.
type resolver struct {
	combined *scene.Document
	reporter Reporter
	seen     map[identityKey]scene.Path
}

func newResolver(combined *scene.Document, reporter Reporter) *resolver {
	return &resolver{
		combined: combined,
		reporter: reporter,
		seen:     make(map[identityKey]scene.Path),
	}
}

// resolveOrClone returns the combined-graph path for the target, cloning its
// subtree on first sight. A target absent from its own document is reported
// as dangling and left unresolved; the merge continues.
func (r *resolver) resolveOrClone(target scene.Path, source *scene.Document) (scene.Path, bool) {
	key := identityKey{document: source.Location, target: target}
	if resolved, ok := r.seen[key]; ok {
		return resolved, true
	}
	node := source.NodeAt(target)
	if node == nil {
		r.reporter.Report(Diagnostic{
			Kind:     DanglingTarget,
			Document: source.Location,
			Path:     target,
			Detail:   "relationship target not found in its document",
		})
		return "", false
	}
	resolved := cloneSubtree(node, r.combined)
	r.seen[key] = resolved
	return resolved, true
}
