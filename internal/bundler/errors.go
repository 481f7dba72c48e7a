package bundler

import (
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// FailureKind classifies a bundling failure.
type FailureKind string

const (
	// ResolutionFailure is an import specifier no resolver could satisfy.
	ResolutionFailure FailureKind = "resolution"
	// CompileFailure is an MDX document the delegated compiler rejected.
	CompileFailure FailureKind = "compile"
	// TransformFailure is any other syntax or build error.
	TransformFailure FailureKind = "transform"
	// EmptyOutputFailure means the build reported success but produced no
	// usable JavaScript artifact.
	EmptyOutputFailure FailureKind = "empty-output"
	// OutputSizeFailure means the bundled artifact exceeded the size cap.
	OutputSizeFailure FailureKind = "output-size"
)

// Location points at the offending source position when one is known.
type Location struct {
	File   string
	Line   int
	Column int
}

// Failure is one diagnostic from a bundling pass. Bundling problems are
// reported in the outcome, never as a Go error.
type Failure struct {
	Kind     FailureKind
	Text     string
	Location *Location
}

func (f Failure) String() string {
	if f.Location == nil {
		return string(f.Kind) + ": " + f.Text
	}
	return string(f.Kind) + ": " + f.Location.File + ": " + f.Text
}

// classify maps an esbuild diagnostic to a Failure.
func classify(msg api.Message) Failure {
	f := Failure{Kind: TransformFailure, Text: msg.Text}
	switch {
	case strings.Contains(msg.Text, "Could not resolve"):
		f.Kind = ResolutionFailure
	case strings.Contains(msg.Text, "mdx compile"):
		f.Kind = CompileFailure
	}
	if msg.Location != nil {
		f.Location = &Location{
			File:   msg.Location.File,
			Line:   msg.Location.Line,
			Column: msg.Location.Column,
		}
	}
	return f
}

func classifyAll(msgs []api.Message) []Failure {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]Failure, len(msgs))
	for i, m := range msgs {
		out[i] = classify(m)
	}
	return out
}
