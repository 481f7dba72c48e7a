package compiler

import (
	"encoding/json"
	"fmt"

	"github.com/russross/blackfriday/v2"
)

// Markdown is the built-in Compiler. It renders the document body as
// CommonMark-style markdown and wraps the result in a module whose default
// export is a component built on the automatic JSX runtime.
//
// Embedded component syntax passes through as raw markup; callers who need
// full MDX semantics plug their own Compiler into the bundling request.
type Markdown struct{}

func (Markdown) Compile(source string, opts Options) (string, error) {
	// Smartypants stays off so quotes and dashes survive verbatim into the
	// JSON-embedded HTML.
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.UseXHTML,
	})
	rendered := blackfriday.Run([]byte(source),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.AutoHeadingIDs))

	html, err := json.Marshal(string(rendered))
	if err != nil {
		return "", fmt.Errorf("encode document body: %w", err)
	}

	meta := opts.Frontmatter
	if meta == nil {
		meta = map[string]any{}
	}
	frontmatter, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}

	runtime := opts.JSXRuntimePackage
	if runtime == "" {
		runtime = "react/jsx-runtime"
	}

	module := fmt.Sprintf(`import { jsx as _jsx } from %q;
export const frontmatter = %s;
export default function MDXContent(props) {
  return _jsx("div", Object.assign({}, props, { dangerouslySetInnerHTML: { __html: %s } }));
}
`, runtime, frontmatter, html)
	return module, nil
}
