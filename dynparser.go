package gpeg

import "fmt"

// DynParser is the untyped flavor of Parser: it produces an interface{}
// value rather than a statically-known T. The grammar interpreter and the
// Registry (rule-name resolution) need this because, unlike hand-written Go
// code, they cannot know a referenced rule's output type until it runs -
// exactly the position the teacher's own Stream.Value() interface{} puts
// every parser in (parser.go lines 70-78).
type DynParser func(Source) (interface{}, error)

// Dyn adapts a typed Parser[T] into a DynParser, boxing its result.
func Dyn[T any](p Parser[T]) DynParser {
	return func(src Source) (interface{}, error) {
		return p(src)
	}
}

// Typed adapts a DynParser back into a Parser[T], type-asserting its result.
// Panics if the dynamic value isn't a T - a programming error (a rule
// registered under the wrong type), not a parse failure, matching the
// teacher's own treatment of an unknown-symbol reference as a panic
// (parser.go pSymbol.Parse, lines 600-607).
func Typed[T any](p DynParser) Parser[T] {
	return func(src Source) (T, error) {
		v, err := p(src)
		if err != nil {
			var zero T
			return zero, err
		}
		t, ok := v.(T)
		if !ok {
			panic(fmt.Sprintf("gpeg: rule produced %T, expected %T", v, t))
		}
		return t, nil
	}
}

// Registry maps grammar rule names to their parsers - the direct
// generalization of the teacher's symbolTable/Grammar (parser.go lines
// 67-68, 609-647). Rule references inside a grammar DSL expression (bare
// identifiers, optionally followed by `<args>` text) resolve against a
// Registry by the identifier alone; the `<args>` text is not part of the
// lookup name.
type Registry struct {
	symbols map[string]DynParser
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{symbols: make(map[string]DynParser)}
}

// AddSymbol registers (or overwrites) a named rule.
func (r *Registry) AddSymbol(name string, p DynParser) {
	r.symbols[name] = p
}

// AddTypedSymbol registers a typed Parser[T] under name.
func AddTypedSymbol[T any](r *Registry, name string, p Parser[T]) {
	r.AddSymbol(name, Dyn(p))
}

// Symbol looks up name, returning a DynParser that resolves it lazily at
// call time - so forward references (a rule defined after another rule that
// mentions it) work, mirroring the teacher's pSymbol (parser.go lines
// 591-607), which likewise resolves through the symbolTable at Parse time
// rather than at registration time.
func (r *Registry) Symbol(name string) DynParser {
	return func(src Source) (interface{}, error) {
		p, ok := r.symbols[name]
		if !ok {
			panic(fmt.Sprintf("gpeg: no symbol named %q", name))
		}
		return p(src)
	}
}

// Has reports whether name is currently registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.symbols[name]
	return ok
}

// Default is a process-wide registry, available for grammars that don't
// need an isolated namespace. It starts empty; the grammar DSL's built-in
// primitive names (ANY, DIGIT, ...) are resolved by package grammar without
// consulting any Registry.
var Default = NewRegistry()
