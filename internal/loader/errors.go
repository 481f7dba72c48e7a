package loader

import "fmt"

// EvaluationError wraps a failure thrown while compiling or running the
// bundled code in the JavaScript engine.
type EvaluationError struct {
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate bundled code: %v", e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// MissingDefaultExportError reports evaluated code whose default export is
// absent or not callable. CodePrefix carries the start of the offending code
// for diagnostics.
type MissingDefaultExportError struct {
	// Type is the JavaScript type actually found under the default export.
	Type       string
	CodePrefix string
}

func (e *MissingDefaultExportError) Error() string {
	return fmt.Sprintf("default export is %s, not a component function (code starts with %q)",
		e.Type, e.CodePrefix)
}

// MissingExportError reports a named export the evaluated module does not
// have.
type MissingExportError struct {
	Name string
}

func (e *MissingExportError) Error() string {
	return fmt.Sprintf("module has no export named %q", e.Name)
}
