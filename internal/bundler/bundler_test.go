package bundler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxforge/mdxforge/internal/compiler"
	"github.com/mdxforge/mdxforge/internal/preset"
)

// passthrough treats the document body as ready-made module JavaScript,
// which keeps the bundling pipeline observable without a markdown layer in
// between.
type passthrough struct{}

func (passthrough) Compile(source string, _ compiler.Options) (string, error) {
	return source, nil
}

// requireSuccess asserts the success half of the outcome invariant: code,
// no errors.
func requireSuccess(t *testing.T, out Outcome) {
	t.Helper()
	require.Empty(t, out.Errors)
	require.NotEmpty(t, out.Code)
}

// requireFailure asserts the failure half: errors, no code.
func requireFailure(t *testing.T, out Outcome) {
	t.Helper()
	require.NotEmpty(t, out.Errors)
	require.Empty(t, out.Code)
}

func TestBundle_Markdown(t *testing.T) {
	out, err := Bundle(Request{
		Source: Source{Text: "# Hello\n\nSome **bold** text.\n"},
	})
	require.NoError(t, err)
	requireSuccess(t, out)

	assert.Equal(t, preset.React, out.Framework)
	assert.Equal(t, "ReactJSXRuntime", out.Bindings["react/jsx-runtime"])
	assert.Contains(t, out.Code, "MDXContent")
	assert.Contains(t, out.Code, "Hello")
	assert.NotContains(t, out.Code, "import ")
	assert.Empty(t, out.Frontmatter)
}

func TestBundle_Frontmatter(t *testing.T) {
	out, err := Bundle(Request{
		Source: Source{Text: "---\ntitle: Example Post\n---\n# Hi\n"},
	})
	require.NoError(t, err)
	requireSuccess(t, out)

	assert.Equal(t, map[string]any{"title": "Example Post"}, out.Frontmatter)
	assert.Contains(t, out.Code, "frontmatter")
	assert.Contains(t, out.Code, "Example Post")
}

func TestBundle_FrontmatterError(t *testing.T) {
	_, err := Bundle(Request{
		Source: Source{Text: "---\ntitle: Post\n# never closed\n"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "front matter")
}

func TestBundle_VirtualFiles(t *testing.T) {
	out, err := Bundle(Request{
		Source: Source{
			Text: `import demo from "./demo";
export default demo;
`,
			Path: "post.mdx",
		},
		Files: map[string]string{
			"./demo.tsx": `export default function Demo(): string { return "demo"; }`,
		},
		CWD:      "/project",
		Compiler: passthrough{},
	})
	require.NoError(t, err)
	requireSuccess(t, out)

	assert.Contains(t, out.Code, "Demo")
	// TypeScript annotations must not survive bundling.
	assert.NotContains(t, out.Code, ": string")
}

func TestBundle_UnresolvedImport(t *testing.T) {
	out, err := Bundle(Request{
		Source: Source{Text: `import missing from "./missing";
export default missing;
`},
		Compiler: passthrough{},
	})
	require.NoError(t, err)
	requireFailure(t, out)

	assert.Equal(t, ResolutionFailure, out.Errors[0].Kind)
	assert.Contains(t, out.Errors[0].Text, "./missing")
}

func TestBundle_UnresolvedNestedImport(t *testing.T) {
	out, err := Bundle(Request{
		Source: Source{Text: `import a from "./a";
export default a;
`},
		Files: map[string]string{
			"./a.tsx": `import b from "./b";
export default b;
`,
		},
		CWD:      "/project",
		Compiler: passthrough{},
	})
	require.NoError(t, err)
	requireFailure(t, out)

	require.Equal(t, ResolutionFailure, out.Errors[0].Kind)
	assert.Contains(t, out.Errors[0].Text, "./b")
	require.NotNil(t, out.Errors[0].Location)
	assert.Contains(t, out.Errors[0].Location.File, "a.tsx")
}

func TestBundle_CompileFailure(t *testing.T) {
	out, err := Bundle(Request{
		Source:   Source{Text: "# Hi"},
		Compiler: failing{},
	})
	require.NoError(t, err)
	requireFailure(t, out)

	assert.Equal(t, CompileFailure, out.Errors[0].Kind)
	assert.Contains(t, out.Errors[0].Text, "boom")
}

type failing struct{}

func (failing) Compile(string, compiler.Options) (string, error) {
	return "", errors.New("boom")
}

func TestBundle_FrameworkPreset(t *testing.T) {
	out, err := Bundle(Request{
		Source:    Source{Text: "# Hi"},
		Framework: preset.Preact,
	})
	require.NoError(t, err)
	requireSuccess(t, out)

	assert.Equal(t, preset.Preact, out.Framework)
	assert.Equal(t, "PreactJSXRuntime", out.Bindings["preact/jsx-runtime"])
	assert.NotContains(t, out.Bindings, "react/jsx-runtime")
}

func TestBundle_JSXOverride(t *testing.T) {
	out, err := Bundle(Request{
		Source: Source{Text: "# Hi"},
		JSX: preset.JSXConfig{
			Runtime: preset.Binding{Package: "emotion-jsx/jsx-runtime", Variable: "EmotionJSX"},
		},
	})
	require.NoError(t, err)
	requireSuccess(t, out)

	assert.Equal(t, "EmotionJSX", out.Bindings["emotion-jsx/jsx-runtime"])
	// Library and dom slots still come from the react preset.
	assert.Equal(t, "React", out.Bindings["react"])
}

func TestBundle_ExplicitGlobals(t *testing.T) {
	out, err := Bundle(Request{
		Source: Source{Text: `import leftPad from "left-pad";
export default leftPad;
`},
		Globals:  map[string]string{"left-pad": "LeftPad"},
		Compiler: passthrough{},
	})
	require.NoError(t, err)
	requireSuccess(t, out)

	assert.Contains(t, out.Code, "LeftPad")
	assert.NotContains(t, out.Code, `from "left-pad"`)
}

func TestBundle_OutputSizeCap(t *testing.T) {
	out, err := Bundle(Request{
		Source:         Source{Text: "# Hello, a heading long enough to overflow a tiny cap\n"},
		MaxOutputBytes: 16,
	})
	require.NoError(t, err)
	requireFailure(t, out)

	assert.Equal(t, OutputSizeFailure, out.Errors[0].Kind)
}
