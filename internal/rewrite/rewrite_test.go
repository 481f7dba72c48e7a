package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reactBindings = map[string]string{
	"react":             "React",
	"react/jsx-runtime": "ReactJSXRuntime",
}

func TestRewrite_NamedImport(t *testing.T) {
	code := `import { jsx as _jsx, Fragment } from "react/jsx-runtime";
var x = _jsx("p", {});
export { x as default };
`
	out, err := Rewrite(code, Config{Bindings: reactBindings})
	require.NoError(t, err)

	assert.Contains(t, out, `var _jsx = ReactJSXRuntime["jsx"];`)
	assert.Contains(t, out, `var Fragment = ReactJSXRuntime["Fragment"];`)
	assert.Contains(t, out, `return { "default": x };`)
	assertNoModuleSyntax(t, out)
}

func TestRewrite_DefaultImport(t *testing.T) {
	code := `import R from "react";
export { R as default };
`
	out, err := Rewrite(code, Config{Bindings: reactBindings})
	require.NoError(t, err)

	assert.Contains(t, out, "var R = React.default != null ? React.default : React;")
	assertNoModuleSyntax(t, out)
}

func TestRewrite_NamespaceImport(t *testing.T) {
	code := `import * as runtime from "react/jsx-runtime";
export { runtime };
`
	out, err := Rewrite(code, Config{Bindings: reactBindings})
	require.NoError(t, err)

	assert.Contains(t, out, "var runtime = ReactJSXRuntime;")
	assert.Contains(t, out, `return { "runtime": runtime };`)
}

func TestRewrite_ExportList(t *testing.T) {
	code := `var MDXContent = 1;
var frontmatter = { title: "x" };
export { MDXContent as default, frontmatter };
`
	out, err := Rewrite(code, Config{Bindings: reactBindings})
	require.NoError(t, err)

	assert.Contains(t, out, `"default": MDXContent`)
	assert.Contains(t, out, `"frontmatter": frontmatter`)
	assertNoModuleSyntax(t, out)
}

func TestRewrite_NoExportsFallback(t *testing.T) {
	out, err := Rewrite("var a = 1;\n", Config{Bindings: reactBindings})
	require.NoError(t, err)

	assert.Contains(t, out, `typeof MDXContent !== "undefined"`)
	assert.Contains(t, out, `typeof frontmatter !== "undefined"`)
}

func TestRewrite_UnboundImport(t *testing.T) {
	code := `import leftPad from "left-pad";
var a = 1;
export { a as default };
`

	t.Run("lenient drops the import", func(t *testing.T) {
		out, err := Rewrite(code, Config{Bindings: reactBindings})
		require.NoError(t, err)
		assert.NotContains(t, out, "left-pad")
		assert.NotContains(t, out, "leftPad")
		assert.Contains(t, out, `return { "default": a };`)
	})

	t.Run("strict fails naming the specifier", func(t *testing.T) {
		_, err := Rewrite(code, Config{Bindings: reactBindings, Strict: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"left-pad"`)
	})
}

func TestRewrite_SideEffectImport(t *testing.T) {
	code := `import "react";
var a = 1;
export { a as default };
`
	out, err := Rewrite(code, Config{Bindings: reactBindings})
	require.NoError(t, err)

	assert.Contains(t, out, `return { "default": a };`)
	assertNoModuleSyntax(t, out)
}

func TestRewrite_ParseError(t *testing.T) {
	_, err := Rewrite("import {", Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse bundled module")
}

// assertNoModuleSyntax checks that no top-level import or export statement
// survived the rewrite.
func assertNoModuleSyntax(t *testing.T, out string) {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		assert.False(t, strings.HasPrefix(trimmed, "import "), "line %q", line)
		assert.False(t, strings.HasPrefix(trimmed, "import\""), "line %q", line)
		assert.False(t, strings.HasPrefix(trimmed, "export "), "line %q", line)
	}
}
