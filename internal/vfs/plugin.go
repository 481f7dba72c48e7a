package vfs

import (
	"fmt"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"

	"github.com/mdxforge/mdxforge/internal/compiler"
)

// Namespace scopes every module served from the table so esbuild never
// touches the real filesystem for them.
const Namespace = "mdxforge-vfs"

// Plugin adapts a Table to esbuild's two-phase resolve/load plugin
// contract. MDX sources, including the entry document, are compiled to
// module JavaScript through comp at load time. Specifiers the table does
// not handle are left to esbuild's own resolution, which reports them as
// build errors naming the specifier and the importing module.
func Plugin(t *Table, comp compiler.Compiler, opts compiler.Options) api.Plugin {
	return api.Plugin{
		Name: "mdxforge-vfs",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `.*`},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					id := t.Resolve(args.Path, args.Importer)
					if id == "" {
						return api.OnResolveResult{}, nil
					}
					log.Debug().
						Str("specifier", args.Path).
						Str("importer", args.Importer).
						Str("module", id).
						Msg("resolved virtual module")
					return api.OnResolveResult{Path: id, Namespace: Namespace}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: Namespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					src, ok := t.Load(args.Path)
					if !ok {
						return api.OnLoadResult{}, nil
					}
					if strings.HasSuffix(args.Path, ".mdx") {
						compiled, err := comp.Compile(src, opts)
						if err != nil {
							return api.OnLoadResult{}, fmt.Errorf("mdx compile %s: %w", args.Path, err)
						}
						return api.OnLoadResult{Contents: &compiled, Loader: api.LoaderJS}, nil
					}
					return api.OnLoadResult{Contents: &src, Loader: loaderFor(args.Path)}, nil
				})
		},
	}
}

func loaderFor(p string) api.Loader {
	switch path.Ext(p) {
	case ".ts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	case ".jsx":
		return api.LoaderJSX
	case ".json":
		return api.LoaderJSON
	default:
		return api.LoaderJS
	}
}
