// Package bundler orchestrates one document-to-code pass: front matter
// split, MDX compilation, esbuild bundling over the virtual module table,
// and the import/export rewrite of the bundled output.
package bundler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"

	"github.com/mdxforge/mdxforge/internal/compiler"
	"github.com/mdxforge/mdxforge/internal/document"
	"github.com/mdxforge/mdxforge/internal/preset"
	"github.com/mdxforge/mdxforge/internal/rewrite"
	"github.com/mdxforge/mdxforge/internal/vfs"
)

// DefaultMaxOutputBytes caps the bundled artifact size unless the request
// overrides it.
const DefaultMaxOutputBytes = 50 << 20

// Source is the entry document.
type Source struct {
	// Text is the raw document, front matter included.
	Text string
	// Path is the advisory path used for relative resolution and
	// diagnostics. Optional.
	Path string
}

// Request configures one bundling pass.
type Request struct {
	Source Source
	// Files maps caller-relative paths to source text for every module the
	// document may import. Nothing is read from disk.
	Files map[string]string
	// CWD anchors relative paths in Files and Source.Path. Defaults to the
	// process working directory.
	CWD string
	// Framework selects the JSX preset. Defaults to react.
	Framework preset.Framework
	// JSX overrides individual fields of the preset's JSX configuration.
	JSX preset.JSXConfig
	// Globals adds or overrides specifier-to-identifier bindings on top of
	// the ones the JSX configuration implies.
	Globals map[string]string
	// ResolveExtensions replaces the default extension candidate order.
	ResolveExtensions []string
	// StrictImports fails the pass when a bundled import has no global
	// binding instead of dropping it.
	StrictImports bool
	// Compiler replaces the built-in markdown compiler.
	Compiler compiler.Compiler
	// CompilerOptions is passed through to the compiler's Extra field.
	CompilerOptions map[string]any
	// Plugins are additional esbuild plugins, run after the virtual module
	// plugin.
	Plugins []api.Plugin
	// BuildOptions, when set, may adjust the assembled esbuild options
	// before the build runs. Entry points and plugins are fixed.
	BuildOptions func(*api.BuildOptions)
	// MaxOutputBytes caps the bundle size. Zero means DefaultMaxOutputBytes.
	MaxOutputBytes int
}

// Outcome is the result of one bundling pass. Exactly one of Code and Errors
// is populated: Code non-empty on success, Errors non-empty on failure.
type Outcome struct {
	// Code is the evaluable function-body JavaScript.
	Code string
	// Frontmatter is the metadata split from the document.
	Frontmatter map[string]any
	Errors      []Failure
	Warnings    []Failure
	// Framework and JSX echo the effective configuration of the pass.
	Framework preset.Framework
	JSX       preset.JSXConfig
	// Bindings is the effective specifier-to-identifier table.
	Bindings map[string]string
}

// Bundle runs one pass. Build, transform and output problems surface in
// Outcome.Errors; the returned error is reserved for malformed input
// documents (front matter syntax).
func Bundle(req Request) (Outcome, error) {
	fw := req.Framework
	if fw == "" {
		fw = preset.React
	}
	ps, ok := preset.Lookup(fw)
	if !ok {
		ps, _ = preset.Lookup(preset.React)
		ps.Framework = fw
	}
	jsx := preset.Merge(ps.JSX, req.JSX)
	bindings := preset.GlobalBindings(jsx, req.Globals)

	outcome := Outcome{
		Framework: fw,
		JSX:       jsx,
		Bindings:  bindings,
	}

	doc, err := document.Split(req.Source.Text)
	if err != nil {
		return outcome, err
	}
	outcome.Frontmatter = doc.Frontmatter

	cwd := req.CWD
	if cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			cwd = filepath.ToSlash(wd)
		} else {
			cwd = "/"
		}
	}

	table := vfs.New(cwd, req.Source.Path, doc.Body, req.Files, req.ResolveExtensions)

	comp := req.Compiler
	if comp == nil {
		comp = compiler.Markdown{}
	}
	copts := compiler.Options{
		JSXRuntimePackage: jsx.Runtime.Package,
		Frontmatter:       doc.Frontmatter,
		Extra:             req.CompilerOptions,
	}

	externals := make([]string, 0, len(bindings))
	for specifier := range bindings {
		externals = append(externals, specifier)
	}

	plugins := append([]api.Plugin{vfs.Plugin(table, comp, copts)}, req.Plugins...)

	log.Debug().
		Str("framework", string(fw)).
		Int("files", len(req.Files)).
		Int("bindings", len(bindings)).
		Msg("bundling document")

	options := api.BuildOptions{
		Bundle:          true,
		Write:           false,
		Outdir:          "dist",
		Format:          api.FormatESModule,
		Platform:        api.PlatformNeutral,
		Target:          api.ES2017,
		JSX:             api.JSXAutomatic,
		JSXImportSource: jsxImportSource(jsx),
		External:        externals,
		LogLevel:        api.LogLevelSilent,
		MainFields:      []string{"browser", "module", "main"},
		Sourcemap:       api.SourceMapNone,
	}
	if req.BuildOptions != nil {
		req.BuildOptions(&options)
	}
	options.EntryPoints = []string{vfs.EntryID}
	options.Plugins = plugins

	result := api.Build(options)

	outcome.Warnings = classifyAll(result.Warnings)
	if len(result.Errors) > 0 {
		outcome.Errors = classifyAll(result.Errors)
		return outcome, nil
	}

	bundled, ok := firstJSArtifact(result.OutputFiles)
	if !ok {
		outcome.Errors = []Failure{{
			Kind: EmptyOutputFailure,
			Text: "build produced no JavaScript artifact",
		}}
		return outcome, nil
	}

	max := req.MaxOutputBytes
	if max == 0 {
		max = DefaultMaxOutputBytes
	}
	if len(bundled) > max {
		outcome.Errors = []Failure{{
			Kind: OutputSizeFailure,
			Text: "bundled output exceeds size cap",
		}}
		return outcome, nil
	}

	code, err := rewrite.Rewrite(bundled, rewrite.Config{
		Bindings: bindings,
		Strict:   req.StrictImports,
	})
	if err != nil {
		outcome.Errors = []Failure{{Kind: TransformFailure, Text: err.Error()}}
		return outcome, nil
	}

	outcome.Code = code
	return outcome, nil
}

// jsxImportSource derives the esbuild import source from the runtime
// package, which conventionally ends in /jsx-runtime.
func jsxImportSource(jsx preset.JSXConfig) string {
	pkg := jsx.Runtime.Package
	if pkg == "" {
		pkg = jsx.Library.Package
	}
	return strings.TrimSuffix(pkg, "/jsx-runtime")
}

// firstJSArtifact returns the bundled chunk. A build whose first artifact is
// not JavaScript counts as empty output.
func firstJSArtifact(files []api.OutputFile) (string, bool) {
	if len(files) == 0 || !strings.HasSuffix(files[0].Path, ".js") {
		return "", false
	}
	return string(files[0].Contents), true
}
