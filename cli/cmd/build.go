package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mdxforge/mdxforge"
)

var (
	buildFilesDir    string
	buildFramework   string
	buildOut         string
	buildGlobals     []string
	buildStrict      bool
	buildFrontmatter bool
)

var buildCmd = &cobra.Command{
	Use:   "build <document>",
	Short: "Bundle a document into evaluable JavaScript",
	Long: `Build reads a document, bundles it together with the local modules it
imports, and writes the rewritten JavaScript to stdout or a file.

Importable modules are taken from the directory given with --files; the
document itself may live anywhere.

Examples:
  mdxforge build post.mdx
  mdxforge build post.mdx --files ./components --framework preact
  mdxforge build post.mdx --global left-pad=LeftPad -o out.js`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	docPath := args[0]
	source, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	files := map[string]string{}
	if buildFilesDir != "" {
		files, err = collectFiles(buildFilesDir)
		if err != nil {
			return err
		}
	}

	globals := map[string]string{}
	for _, g := range buildGlobals {
		specifier, variable, ok := splitGlobal(g)
		if !ok {
			return fmt.Errorf("malformed --global %q, want specifier=Identifier", g)
		}
		globals[specifier] = variable
	}

	if buildFramework != "" && !knownFramework(buildFramework) {
		return fmt.Errorf("unknown framework %q, see 'mdxforge frameworks'", buildFramework)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	out, err := mdxforge.Bundle(mdxforge.Request{
		Source: mdxforge.Source{
			Text: string(source),
			Path: filepath.ToSlash(docPath),
		},
		Files:         files,
		CWD:           filepath.ToSlash(cwd),
		Framework:     mdxforge.Framework(buildFramework),
		Globals:       globals,
		StrictImports: buildStrict,
	})
	if err != nil {
		return err
	}

	for _, w := range out.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w.String())
	}
	if len(out.Errors) > 0 {
		for _, e := range out.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", e.String())
		}
		return fmt.Errorf("bundling failed with %d error(s)", len(out.Errors))
	}

	if buildFrontmatter && len(out.Frontmatter) > 0 {
		meta, err := yaml.Marshal(out.Frontmatter)
		if err != nil {
			return fmt.Errorf("encode front matter: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "---\n%s---\n", meta)
	}

	if buildOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), out.Code)
		return nil
	}
	if err := os.WriteFile(buildOut, []byte(out.Code), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", buildOut, len(out.Code))
	return nil
}

// collectFiles walks dir and maps every regular file to its content, keyed
// by the dir-relative slash path.
func collectFiles(dir string) (map[string]string, error) {
	files := map[string]string{}
	err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files["./"+filepath.ToSlash(rel)] = string(content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect files: %w", err)
	}
	return files, nil
}

func knownFramework(name string) bool {
	for _, fw := range mdxforge.Frameworks() {
		if string(fw) == name {
			return true
		}
	}
	return false
}

func splitGlobal(g string) (specifier, variable string, ok bool) {
	for i := len(g) - 1; i >= 0; i-- {
		if g[i] == '=' {
			return g[:i], g[i+1:], g[:i] != "" && g[i+1:] != ""
		}
	}
	return "", "", false
}

func init() {
	buildCmd.Flags().StringVar(&buildFilesDir, "files", "",
		"directory of modules the document may import")
	buildCmd.Flags().StringVar(&buildFramework, "framework", "",
		"framework preset (default react)")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "",
		"write bundled code to a file instead of stdout")
	buildCmd.Flags().StringArrayVar(&buildGlobals, "global", nil,
		"extra specifier=Identifier binding, repeatable")
	buildCmd.Flags().BoolVar(&buildStrict, "strict-imports", false,
		"fail on imports with no global binding")
	buildCmd.Flags().BoolVar(&buildFrontmatter, "frontmatter", false,
		"print extracted front matter as YAML to stderr")

	rootCmd.AddCommand(buildCmd)
}
