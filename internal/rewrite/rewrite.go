// Package rewrite turns bundled ES-module JavaScript into directly evaluable
// statement code: import declarations become reads off globally bound
// namespace objects and export declarations become a trailing return of the
// exported values.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// Config controls one rewrite pass.
type Config struct {
	// Bindings maps external import specifiers to the identifier the
	// corresponding namespace object is bound to in the evaluation scope.
	Bindings map[string]string
	// Strict fails the pass on an import whose specifier has no binding.
	// When false such imports are dropped with a warning.
	Strict bool
}

type export struct {
	name  string
	value string
}

// Rewrite parses code as a module, replaces every import statement with
// variable declarations against the binding table, strips export statements
// while recording what they exported, and appends a return statement handing
// back the exports. The result is a function body; callers wrap it in a
// function whose parameters carry the bound namespace objects.
func Rewrite(code string, cfg Config) (string, error) {
	ast, err := js.Parse(parse.NewInputString(code), js.Options{})
	if err != nil {
		return "", fmt.Errorf("parse bundled module: %w", err)
	}

	var body strings.Builder
	var exports []export

	for _, stmt := range ast.BlockStmt.List {
		switch st := stmt.(type) {
		case *js.ImportStmt:
			if err := bindImport(&body, st, cfg); err != nil {
				return "", err
			}
		case *js.ExportStmt:
			exports = append(exports, bindExport(&body, st, cfg)...)
		default:
			stmt.JS(&body)
			body.WriteString(";\n")
		}
	}

	writeReturn(&body, exports)
	return body.String(), nil
}

// bindImport rewrites one import statement into var declarations reading
// from the specifier's bound namespace object.
func bindImport(body *strings.Builder, st *js.ImportStmt, cfg Config) error {
	specifier := unquote(st.Module)
	ns, ok := cfg.Bindings[specifier]
	if !ok {
		if cfg.Strict {
			return fmt.Errorf("import %q has no global binding", specifier)
		}
		log.Warn().
			Str("specifier", specifier).
			Msg("dropping import with no global binding")
		return nil
	}

	if len(st.Default) > 0 {
		writeDefault(body, string(st.Default), ns)
	}
	for _, alias := range st.List {
		local := string(alias.Binding)
		if local == "" {
			continue
		}
		exported := local
		if alias.Name != nil {
			exported = string(alias.Name)
		}
		switch exported {
		case "*":
			fmt.Fprintf(body, "var %s = %s;\n", local, ns)
		case "default":
			writeDefault(body, local, ns)
		default:
			fmt.Fprintf(body, "var %s = %s[%q];\n", local, ns, exported)
		}
	}
	return nil
}

// writeDefault binds a default import. Interop follows the usual CJS rule:
// prefer a .default member, fall back to the namespace object itself.
func writeDefault(body *strings.Builder, local, ns string) {
	fmt.Fprintf(body, "var %s = %s.default != null ? %s.default : %s;\n", local, ns, ns, ns)
}

// bindExport strips one export statement, keeping any inline declaration and
// recording the exported name/value pairs for the trailing return.
func bindExport(body *strings.Builder, st *js.ExportStmt, cfg Config) []export {
	if st.Decl != nil {
		if st.Default {
			body.WriteString("var __mdxforge_default__ = ")
			st.Decl.JS(body)
			body.WriteString(";\n")
			return []export{{name: "default", value: "__mdxforge_default__"}}
		}
		st.Decl.JS(body)
		body.WriteString(";\n")
		return nil
	}

	if st.Module != nil {
		// Re-export from an external module: read values off its binding.
		specifier := unquote(st.Module)
		ns, ok := cfg.Bindings[specifier]
		if !ok {
			log.Warn().
				Str("specifier", specifier).
				Msg("dropping re-export with no global binding")
			return nil
		}
		var out []export
		for _, alias := range st.List {
			local := string(alias.Name)
			if local == "" || local == "*" {
				continue
			}
			exported := local
			if alias.Binding != nil {
				exported = string(alias.Binding)
			}
			out = append(out, export{name: exported, value: fmt.Sprintf("%s[%q]", ns, local)})
		}
		return out
	}

	var out []export
	for _, alias := range st.List {
		local := string(alias.Name)
		if local == "" {
			local = string(alias.Binding)
		}
		exported := local
		if alias.Binding != nil {
			exported = string(alias.Binding)
		}
		if local == "" {
			continue
		}
		out = append(out, export{name: exported, value: local})
	}
	return out
}

// writeReturn appends the return statement handing back the module exports.
// When the module declared no export list the usual names are probed with
// typeof guards so evaluation still yields an object.
func writeReturn(body *strings.Builder, exports []export) {
	if len(exports) == 0 {
		body.WriteString("return { default: typeof MDXContent !== \"undefined\" ? MDXContent : null, " +
			"frontmatter: typeof frontmatter !== \"undefined\" ? frontmatter : {} };\n")
		return
	}
	body.WriteString("return { ")
	for i, e := range exports {
		if i > 0 {
			body.WriteString(", ")
		}
		fmt.Fprintf(body, "%q: %s", e.name, e.value)
	}
	body.WriteString(" };\n")
}

func unquote(module []byte) string {
	s := string(module)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
