package combiner

import (
	"fmt"
	"io"

	"github.com/scenekit/scenemerge/scene"
)

// DiagnosticKind classifies a per-item problem recovered during a merge.
type DiagnosticKind string

const (
	// DanglingTarget: a relationship target has no node in its own document.
	DanglingTarget DiagnosticKind = "DanglingTarget"
	// HierarchyMismatch: a variant node has no corresponding node in the
	// combined graph at the same path.
	HierarchyMismatch DiagnosticKind = "HierarchyMismatch"
	// ResourceSkipped: an asset reference could not be read and was left
	// unbaked.
	ResourceSkipped DiagnosticKind = "ResourceSkipped"
)

// Diagnostic records one recovered problem. Diagnostics never abort a merge;
// callers that require a fully bound result must inspect them.
type Diagnostic struct {
	Kind     DiagnosticKind
	Document string
	Path     scene.Path
	Detail   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s in %s: %s", d.Kind, d.Path, d.Document, d.Detail)
}

// Reporter receives diagnostics as they occur.
type Reporter interface {
	Report(diagnostic Diagnostic)
}

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter creates a reporter that prints each diagnostic to the
// given writer as it occurs.
func NewWriterReporter(writer io.Writer) Reporter {
	return &writerReporter{writer: writer}
}

func (r *writerReporter) Report(diagnostic Diagnostic) {
	fmt.Fprintln(r.writer, diagnostic.String())
}

// Recorder is a Reporter that retains every diagnostic for inspection.
type Recorder struct {
	Diagnostics []Diagnostic
}

func (r *Recorder) Report(diagnostic Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, diagnostic)
}
