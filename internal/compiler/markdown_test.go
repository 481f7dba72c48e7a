package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownCompile(t *testing.T) {
	out, err := Markdown{}.Compile("# Hello\n\nSome *emphasis*.\n", Options{})
	require.NoError(t, err)

	assert.Contains(t, out, `import { jsx as _jsx } from "react/jsx-runtime";`)
	assert.Contains(t, out, "export default function MDXContent(props)")
	assert.Contains(t, out, "export const frontmatter = {};")
	assert.Contains(t, out, `Hello`)
	assert.Contains(t, out, `<em>emphasis</em>`)
}

func TestMarkdownCompile_RuntimePackage(t *testing.T) {
	out, err := Markdown{}.Compile("hi", Options{JSXRuntimePackage: "preact/jsx-runtime"})
	require.NoError(t, err)

	assert.Contains(t, out, `from "preact/jsx-runtime";`)
	assert.NotContains(t, out, `"react/jsx-runtime"`)
}

func TestMarkdownCompile_Frontmatter(t *testing.T) {
	out, err := Markdown{}.Compile("body", Options{
		Frontmatter: map[string]any{"title": "Post"},
	})
	require.NoError(t, err)

	assert.Contains(t, out, `export const frontmatter = {"title":"Post"};`)
}

func TestMarkdownCompile_EscapesBody(t *testing.T) {
	out, err := Markdown{}.Compile("a \"quoted\" line\n", Options{})
	require.NoError(t, err)

	// Quotes are HTML-escaped by the renderer, so the JSON-embedded body
	// cannot break the produced module.
	assert.Contains(t, out, "&quot;quoted&quot;")
	assert.NotContains(t, out, "\n\"quoted\"")
}
