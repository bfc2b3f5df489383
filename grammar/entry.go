package grammar

import (
	"context"
	"io"
	"reflect"

	"github.com/parsekit/gpeg"
)

// Grammar is the attachment mechanism spec §6 describes: a user type
// declares its grammar by implementing Grammar() on a pointer receiver,
// returning the DSL expression of §4.3. This is the Go stand-in for the
// teacher's Rust original's derive-macro attribute
// (`#[derive(Parse)] #[parse(grammar = "...")]`), since Go has no
// annotation mechanism of its own - a method is the idiomatic substitute.
type Grammar interface {
	Grammar() string
}

// grammarPtr constrains the generic entry points below to a pointer type
// that both addresses a T and implements Grammar, mirroring the teacher's
// own split between "the value being parsed" and "the thing that knows how
// to parse it".
type grammarPtr[T any] interface {
	*T
	Grammar
}

// DefaultRegistry is the process-wide rule registry every generic entry
// point below registers derived types into, so one derived type's grammar
// may refer to another by name (or to itself, for self-referential
// grammars routed through Recursive) without callers wiring up a Registry
// by hand. Grounded on the teacher's package-level symbolTable convenience
// (parser.go's Grammar type bundles exactly one symbolTable per program).
var DefaultRegistry = gpeg.NewRegistry()

// Parse drives T's generated parser to completion against src, the way
// spec §6's `parse<T>(input)` does: wrap input as a Source, run T's body,
// construct T on success or return a located Error on failure. T must be a
// struct or tagged-union leaf whose pointer implements Grammar.
func Parse[T any, PT grammarPtr[T]](src gpeg.Source) (T, error) {
	var zero T
	dsl := PT(&zero).Grammar()
	name := typeName[T]()
	parser := DeriveStruct[T](name, dsl, DefaultRegistry)
	return parser(src)
}

// ParseString is Parse over an in-memory string, the common case: input
// converted into a Source via gpeg.NewBufferSource.
func ParseString[T any, PT grammarPtr[T]](s string) (T, error) {
	return Parse[T, PT](gpeg.NewBufferSource(s))
}

// ParseReader is Parse over an asynchronous byte producer: input converted
// into a Source via gpeg.NewStreamSource, suspending (blocking) on reads as
// needed per §5. ctx governs cancellation.
func ParseReader[T any, PT grammarPtr[T]](ctx context.Context, r io.Reader) (T, error) {
	return Parse[T, PT](gpeg.NewStreamSource(ctx, r))
}

// ParseBlocking is spec §6's `parse_blocking<T>`: the synchronous entry
// point. Go has no separate async code path to offer (see SPEC_FULL §5) -
// ParseString already runs on the caller's own goroutine to completion, so
// ParseBlocking is a thin alias kept for callers migrating from an
// async-flavored API who expect to find a "blocking" name.
func ParseBlocking[T any, PT grammarPtr[T]](s string) (T, error) {
	return ParseString[T, PT](s)
}

func typeName[T any]() string {
	var zero T
	return reflect.TypeOf(zero).String()
}
