// Package compiler is the seam to the delegated MDX-to-JS compiler. The
// bundler never inspects MDX syntax itself; it hands the document body to a
// Compiler and bundles whatever module text comes back.
package compiler

// Options are forwarded to the compiler for one compilation.
type Options struct {
	// JSXRuntimePackage is the module the compiled output should import
	// jsx/jsxs/Fragment from, e.g. "react/jsx-runtime".
	JSXRuntimePackage string
	// Frontmatter is the metadata split from the document, exported by the
	// compiled module as a `frontmatter` const.
	Frontmatter map[string]any
	// Extra carries implementation-specific knobs verbatim; the built-in
	// compiler ignores it.
	Extra map[string]any
}

// Compiler turns MDX source text into module-style JavaScript. The produced
// module must export the document component as its default export and may
// export a `frontmatter` object. A compile or parse error fails the whole
// bundling call.
type Compiler interface {
	Compile(source string, opts Options) (string, error)
}
