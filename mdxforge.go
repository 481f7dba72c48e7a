// Package mdxforge bundles MDX and markdown documents, with their imported
// modules, into a single piece of evaluable JavaScript, and loads the result
// as a callable component inside an embedded engine.
//
// Bundling never touches the filesystem: the document and every file it may
// import are supplied in memory. Imports of framework packages are left
// external and rewritten against a global binding table, so the produced
// code runs anywhere the framework runtime can be put in scope.
package mdxforge

import (
	"github.com/mdxforge/mdxforge/internal/bundler"
	"github.com/mdxforge/mdxforge/internal/compiler"
	"github.com/mdxforge/mdxforge/internal/loader"
	"github.com/mdxforge/mdxforge/internal/preset"
)

// Bundling request and outcome.
type (
	Request = bundler.Request
	Source  = bundler.Source
	Outcome = bundler.Outcome
	Failure = bundler.Failure
)

// Failure classification.
type FailureKind = bundler.FailureKind

const (
	ResolutionFailure  = bundler.ResolutionFailure
	CompileFailure     = bundler.CompileFailure
	TransformFailure   = bundler.TransformFailure
	EmptyOutputFailure = bundler.EmptyOutputFailure
	OutputSizeFailure  = bundler.OutputSizeFailure
)

// Framework presets.
type (
	Framework = preset.Framework
	Binding   = preset.Binding
	JSXConfig = preset.JSXConfig
)

const (
	React  = preset.React
	Preact = preset.Preact
	Solid  = preset.Solid
	Vue    = preset.Vue
	Qwik   = preset.Qwik
	Hono   = preset.Hono
	Svelte = preset.Svelte
)

// Compiler is the seam for plugging in a real MDX compiler in place of the
// built-in markdown one.
type (
	Compiler        = compiler.Compiler
	CompilerOptions = compiler.Options
)

// Loading.
type (
	Scope            = loader.Scope
	Result           = loader.Result
	Component        = loader.Component
	ComponentOptions = loader.ComponentOptions
)

// Frameworks lists the supported framework identifiers.
func Frameworks() []Framework {
	return preset.All()
}

// Bundle runs one bundling pass. Problems inside the build are reported in
// the outcome's Errors; the returned error covers orchestration failures
// such as malformed front matter.
func Bundle(req Request) (Outcome, error) {
	return bundler.Bundle(req)
}

// Evaluate runs rewritten bundle code with the given scope and returns the
// module's exports.
func Evaluate(code string, scope Scope) (*Result, error) {
	return loader.Evaluate(code, scope)
}

// GetComponent pulls the callable default export off an evaluated module.
func GetComponent(r *Result) (*Component, error) {
	return loader.GetComponent(r)
}

// GetNamedExport returns one named export of an evaluated module as plain
// Go values.
func GetNamedExport(r *Result, name string) (any, error) {
	return loader.GetNamedExport(r, name)
}

// CreateComponent evaluates a successful outcome and returns its document
// component, front matter attached.
func CreateComponent(out Outcome, opts ComponentOptions) (*Component, error) {
	return loader.ComponentFromOutcome(out, opts)
}

// CreateComponentFromCode evaluates rewritten code directly, deriving the
// binding table from the framework preset when none is supplied.
func CreateComponentFromCode(code string, bindings map[string]string, opts ComponentOptions) (*Component, error) {
	return loader.ComponentFromCode(code, bindings, opts)
}
