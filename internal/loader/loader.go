// Package loader evaluates rewritten bundle code inside an embedded
// JavaScript engine and hands back the document component and its exports.
// Every evaluation gets a fresh engine; nothing is installed on the global
// object.
package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"

	"github.com/mdxforge/mdxforge/internal/bundler"
	"github.com/mdxforge/mdxforge/internal/preset"
)

// codePrefixLen bounds how much bundled code a diagnostic quotes.
const codePrefixLen = 120

// Scope maps identifiers to the values they are bound to during evaluation.
// Values are converted with the engine's native Go conversion, so maps,
// slices and funcs all work.
type Scope map[string]any

// Result is one evaluated module: the engine it ran in and its exports.
type Result struct {
	vm      *goja.Runtime
	exports *goja.Object
	code    string
}

// Evaluate runs function-body code in a fresh engine with the scope bound as
// function parameters, in sorted key order. The code's trailing return value
// becomes the module's exports object.
func Evaluate(code string, scope Scope) (*Result, error) {
	keys := make([]string, 0, len(scope))
	for k := range scope {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var src strings.Builder
	src.WriteString("(function(")
	src.WriteString(strings.Join(keys, ", "))
	src.WriteString(") {\n")
	src.WriteString(code)
	src.WriteString("\n})")

	vm := goja.New()
	wrapper, err := vm.RunString(src.String())
	if err != nil {
		return nil, &EvaluationError{Err: err}
	}
	fn, ok := goja.AssertFunction(wrapper)
	if !ok {
		return nil, &EvaluationError{Err: fmt.Errorf("wrapper did not evaluate to a function")}
	}

	args := make([]goja.Value, len(keys))
	for i, k := range keys {
		args[i] = vm.ToValue(scope[k])
	}
	ret, err := fn(goja.Undefined(), args...)
	if err != nil {
		return nil, &EvaluationError{Err: err}
	}
	if ret == nil || goja.IsUndefined(ret) || goja.IsNull(ret) {
		return nil, &EvaluationError{Err: fmt.Errorf("evaluated code returned no exports object")}
	}

	return &Result{vm: vm, exports: ret.ToObject(vm), code: code}, nil
}

// Export returns a raw exported value.
func (r *Result) Export(name string) (goja.Value, bool) {
	for _, k := range r.exports.Keys() {
		if k == name {
			return r.exports.Get(name), true
		}
	}
	return nil, false
}

// Exports lists the module's export names.
func (r *Result) Exports() []string {
	return r.exports.Keys()
}

// Component is a callable document component bound to its engine.
type Component struct {
	vm          *goja.Runtime
	fn          goja.Callable
	result      *Result
	Frontmatter map[string]any
}

// Render invokes the component with props and exports the produced element
// tree as plain Go values.
func (c *Component) Render(props map[string]any) (any, error) {
	v, err := c.fn(goja.Undefined(), c.vm.ToValue(props))
	if err != nil {
		return nil, &EvaluationError{Err: err}
	}
	if v == nil || goja.IsUndefined(v) {
		return nil, nil
	}
	return v.Export(), nil
}

// GetComponent pulls the default export off an evaluated module and checks
// it is callable.
func GetComponent(r *Result) (*Component, error) {
	v, _ := r.Export("default")
	fn, ok := goja.AssertFunction(v)
	if !ok {
		typ := "undefined"
		if v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) {
			typ = fmt.Sprintf("%v", v.ExportType())
		}
		prefix := r.code
		if len(prefix) > codePrefixLen {
			prefix = prefix[:codePrefixLen]
		}
		return nil, &MissingDefaultExportError{Type: typ, CodePrefix: prefix}
	}
	return &Component{vm: r.vm, fn: fn, result: r}, nil
}

// GetNamedExport returns one named export as plain Go values.
func GetNamedExport(r *Result, name string) (any, error) {
	v, ok := r.Export(name)
	if !ok {
		return nil, &MissingExportError{Name: name}
	}
	return v.Export(), nil
}

// ComponentOptions configures component construction.
type ComponentOptions struct {
	// Framework overrides framework selection. When empty the outcome's
	// framework, then a namespace-based guess, then react is used.
	Framework preset.Framework
	// Namespace is the framework's runtime namespace object. It backs the
	// preset's library binding directly; the runtime binding gets a
	// jsx/jsxs/Fragment object synthesized from it.
	Namespace map[string]any
	// Scope supplies values for individual bindings, keyed by import
	// specifier or by bound identifier, and wins over Namespace. Bindings
	// with no supplied value fall back to the built-in shim runtime.
	Scope Scope
}

// ComponentFromOutcome evaluates a successful bundling outcome and returns
// its document component with the front matter attached.
func ComponentFromOutcome(out bundler.Outcome, opts ComponentOptions) (*Component, error) {
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("outcome carries %d bundling errors", len(out.Errors))
	}
	if opts.Framework == "" {
		opts.Framework = out.Framework
	}
	fw := resolveFramework(opts)
	ps := lookupOrReact(fw)
	jsx := out.JSX
	if jsx == (preset.JSXConfig{}) {
		jsx = ps.JSX
	}
	comp, err := evaluateComponent(out.Code, out.Bindings, jsx, ps, opts)
	if err != nil {
		return nil, err
	}
	comp.Frontmatter = out.Frontmatter
	return comp, nil
}

// ComponentFromCode evaluates rewritten code directly. The binding table is
// derived from the framework preset when not supplied.
func ComponentFromCode(code string, bindings map[string]string, opts ComponentOptions) (*Component, error) {
	fw := resolveFramework(opts)
	ps := lookupOrReact(fw)
	if bindings == nil {
		bindings = preset.GlobalBindings(ps.JSX, nil)
	}
	comp, err := evaluateComponent(code, bindings, ps.JSX, ps, opts)
	if err != nil {
		return nil, err
	}
	if fm, err := frontmatterOf(comp); err == nil {
		comp.Frontmatter = fm
	}
	return comp, nil
}

func evaluateComponent(code string, bindings map[string]string, jsx preset.JSXConfig, ps preset.Preset, opts ComponentOptions) (*Component, error) {
	scope := buildScope(bindings, jsx, ps, opts)
	res, err := Evaluate(code, scope)
	if err != nil {
		return nil, err
	}
	return GetComponent(res)
}

// buildScope turns the binding table into an evaluation scope. A Scope value
// under the specifier or the identifier wins; the framework namespace backs
// the library and runtime slots; everything else is backed by the shim
// runtime. Extra identifier-keyed scope entries pass through untouched.
func buildScope(bindings map[string]string, jsx preset.JSXConfig, ps preset.Preset, opts ComponentOptions) Scope {
	provided := opts.Scope
	scope := make(Scope, len(bindings)+len(provided))
	shim := RuntimeShim()
	for specifier, variable := range bindings {
		switch {
		case provided[specifier] != nil:
			scope[variable] = provided[specifier]
		case provided[variable] != nil:
			scope[variable] = provided[variable]
		case opts.Namespace != nil && variable == jsx.Library.Variable:
			scope[variable] = opts.Namespace
		case opts.Namespace != nil && variable == jsx.Runtime.Variable:
			scope[variable] = SynthesizeRuntime(opts.Namespace, ps)
		default:
			log.Debug().
				Str("specifier", specifier).
				Str("identifier", variable).
				Msg("binding backed by shim runtime")
			scope[variable] = shim
		}
	}
	for k, v := range provided {
		if _, taken := scope[k]; !taken && isIdentifier(k) {
			scope[k] = v
		}
	}
	return scope
}

// SynthesizeRuntime builds a jsx/jsxs/Fragment object off a framework
// namespace by probing the preset's ordered key lists. Keys with no match
// fall back to a no-op so a JSX-free document still evaluates.
func SynthesizeRuntime(ns map[string]any, ps preset.Preset) map[string]any {
	pick := func(keys []string, fallback any) any {
		for _, k := range keys {
			if v, ok := ns[k]; ok && v != nil {
				return v
			}
		}
		log.Warn().
			Strs("keys", keys).
			Str("framework", string(ps.Framework)).
			Msg("framework namespace has no jsx implementation, using no-op")
		return fallback
	}
	noop := func(args ...any) any { return nil }
	return map[string]any{
		"jsx":      pick(ps.JSXKeys, noop),
		"jsxs":     pick(ps.JSXSKeys, noop),
		"Fragment": pick(ps.FragmentKeys, "Fragment"),
	}
}

func resolveFramework(opts ComponentOptions) preset.Framework {
	if opts.Framework != "" {
		return opts.Framework
	}
	if len(opts.Namespace) > 0 {
		keys := make([]string, 0, len(opts.Namespace))
		for k := range opts.Namespace {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if fw, ok := preset.Sniff(keys); ok {
			return fw
		}
	}
	return preset.React
}

func lookupOrReact(fw preset.Framework) preset.Preset {
	if ps, ok := preset.Lookup(fw); ok {
		return ps
	}
	ps, _ := preset.Lookup(preset.React)
	return ps
}

// RuntimeShim is a stand-in JSX runtime. Its jsx functions build plain
// element records, so a document renders to an inspectable tree even when no
// real framework runtime is in scope.
func RuntimeShim() map[string]any {
	element := func(args ...any) map[string]any {
		el := map[string]any{"type": nil, "props": map[string]any{}}
		if len(args) > 0 {
			el["type"] = args[0]
		}
		if len(args) > 1 && args[1] != nil {
			el["props"] = args[1]
		}
		if len(args) > 2 {
			el["key"] = args[2]
		}
		return el
	}
	return map[string]any{
		"jsx":           element,
		"jsxs":          element,
		"jsxDEV":        element,
		"createElement": element,
		"h":             element,
		"Fragment":      "Fragment",
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		alpha := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !alpha && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func frontmatterOf(c *Component) (map[string]any, error) {
	v, err := GetNamedExport(c.result, "frontmatter")
	if err != nil {
		return nil, err
	}
	fm, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("frontmatter export is not an object")
	}
	return fm, nil
}
