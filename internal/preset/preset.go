// Package preset holds the static JSX configuration tables for the
// supported UI frameworks and the merge rules for user overrides.
package preset

import "strings"

// Framework identifies one supported UI framework.
type Framework string

const (
	React  Framework = "react"
	Preact Framework = "preact"
	Solid  Framework = "solid"
	Vue    Framework = "vue"
	Qwik   Framework = "qwik"
	Hono   Framework = "hono"
	Svelte Framework = "svelte"
)

// Binding names one package and the identifier it is bound to in the
// evaluation scope.
type Binding struct {
	Package  string
	Variable string
}

// JSXConfig describes where jsx calls come from for a framework. Library,
// Runtime and DOM are each independently overridable; a zero Binding means
// the framework has no package for that slot.
type JSXConfig struct {
	Library Binding
	Runtime Binding
	DOM     Binding
}

// Preset couples a framework's JSXConfig with the ordered key lists used to
// pull jsx/jsxs/Fragment off an arbitrary runtime namespace object at
// component-construction time.
type Preset struct {
	Framework    Framework
	JSX          JSXConfig
	JSXKeys      []string
	JSXSKeys     []string
	FragmentKeys []string
}

var presets = map[Framework]Preset{
	React: {
		Framework: React,
		JSX: JSXConfig{
			Library: Binding{Package: "react", Variable: "React"},
			Runtime: Binding{Package: "react/jsx-runtime", Variable: "ReactJSXRuntime"},
			DOM:     Binding{Package: "react-dom", Variable: "ReactDOM"},
		},
		JSXKeys:      []string{"jsx", "createElement"},
		JSXSKeys:     []string{"jsxs", "jsx", "createElement"},
		FragmentKeys: []string{"Fragment"},
	},
	Preact: {
		Framework: Preact,
		JSX: JSXConfig{
			Library: Binding{Package: "preact", Variable: "Preact"},
			Runtime: Binding{Package: "preact/jsx-runtime", Variable: "PreactJSXRuntime"},
		},
		JSXKeys:      []string{"jsx", "h"},
		JSXSKeys:     []string{"jsxs", "jsx", "h"},
		FragmentKeys: []string{"Fragment"},
	},
	Solid: {
		Framework: Solid,
		JSX: JSXConfig{
			Library: Binding{Package: "solid-js", Variable: "Solid"},
			Runtime: Binding{Package: "solid-js/h/jsx-runtime", Variable: "SolidJSXRuntime"},
			DOM:     Binding{Package: "solid-js/web", Variable: "SolidWeb"},
		},
		JSXKeys:      []string{"jsx", "h"},
		JSXSKeys:     []string{"jsxs", "jsx", "h"},
		FragmentKeys: []string{"Fragment"},
	},
	Vue: {
		Framework: Vue,
		JSX: JSXConfig{
			Library: Binding{Package: "vue", Variable: "Vue"},
			Runtime: Binding{Package: "vue/jsx-runtime", Variable: "VueJSXRuntime"},
		},
		JSXKeys:      []string{"jsx", "h"},
		JSXSKeys:     []string{"jsxs", "jsx", "h"},
		FragmentKeys: []string{"Fragment"},
	},
	Qwik: {
		Framework: Qwik,
		JSX: JSXConfig{
			Library: Binding{Package: "@builder.io/qwik", Variable: "Qwik"},
			Runtime: Binding{Package: "@builder.io/qwik/jsx-runtime", Variable: "QwikJSXRuntime"},
		},
		JSXKeys:      []string{"jsx", "h"},
		JSXSKeys:     []string{"jsxs", "jsx", "h"},
		FragmentKeys: []string{"Fragment"},
	},
	Hono: {
		Framework: Hono,
		JSX: JSXConfig{
			Library: Binding{Package: "hono/jsx", Variable: "HonoJSX"},
			Runtime: Binding{Package: "hono/jsx/jsx-runtime", Variable: "HonoJSXRuntime"},
		},
		JSXKeys:      []string{"jsx"},
		JSXSKeys:     []string{"jsxs", "jsx"},
		FragmentKeys: []string{"Fragment"},
	},
	Svelte: {
		Framework: Svelte,
		JSX: JSXConfig{
			Library: Binding{Package: "svelte", Variable: "Svelte"},
			Runtime: Binding{Package: "svelte/internal/client", Variable: "SvelteRuntime"},
		},
		JSXKeys:      []string{"jsx"},
		JSXSKeys:     []string{"jsxs", "jsx"},
		FragmentKeys: []string{"Fragment"},
	},
}

// order fixes a deterministic iteration order for detection and listings.
var order = []Framework{React, Preact, Solid, Vue, Qwik, Hono, Svelte}

// Lookup returns the preset for a framework identifier.
func Lookup(f Framework) (Preset, bool) {
	p, ok := presets[f]
	return p, ok
}

// All returns the supported framework identifiers in deterministic order.
func All() []Framework {
	out := make([]Framework, len(order))
	copy(out, order)
	return out
}

// Merge overlays explicit configuration over base, field by field: each of
// library, runtime and dom is replaced only when the override sets it.
func Merge(base, override JSXConfig) JSXConfig {
	merged := base
	if override.Library != (Binding{}) {
		merged.Library = override.Library
	}
	if override.Runtime != (Binding{}) {
		merged.Runtime = override.Runtime
	}
	if override.DOM != (Binding{}) {
		merged.DOM = override.DOM
	}
	return merged
}

// GlobalBindings derives the specifier-to-identifier table for cfg, with
// explicit entries winning on conflict.
func GlobalBindings(cfg JSXConfig, explicit map[string]string) map[string]string {
	bindings := make(map[string]string, len(explicit)+3)
	for _, b := range []Binding{cfg.Library, cfg.Runtime, cfg.DOM} {
		if b.Package != "" && b.Variable != "" {
			bindings[b.Package] = b.Variable
		}
	}
	for specifier, variable := range explicit {
		bindings[specifier] = variable
	}
	return bindings
}

// markers are namespace member names that identify a framework during
// best-effort detection. Checked in the order of the order slice.
var markers = map[Framework][]string{
	React:  {"createElement", "useState", "react"},
	Preact: {"preact", "options"},
	Solid:  {"createSignal", "solid"},
	Vue:    {"createApp", "vue"},
	Qwik:   {"componentQrl", "qwik"},
	Hono:   {"hono"},
	Svelte: {"svelte", "mount"},
}

// Sniff guesses a framework from the member names of a runtime namespace
// object. It is a last-resort heuristic; callers fall back to the react
// preset when it reports no match.
func Sniff(keys []string) (Framework, bool) {
	lowered := make([]string, len(keys))
	for i, k := range keys {
		lowered[i] = strings.ToLower(k)
	}
	for _, f := range order {
		for _, marker := range markers[f] {
			marker = strings.ToLower(marker)
			for _, k := range lowered {
				if strings.Contains(k, marker) {
					return f, true
				}
			}
		}
	}
	return "", false
}
