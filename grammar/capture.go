package grammar

import "github.com/parsekit/gpeg"

// Capture wraps p, running it for its side effect (matching and advancing
// the Source) but yielding the exact source text it consumed instead of p's
// own value. Useful inside a grammar binding when the field should hold the
// raw matched text rather than p's structured result - e.g. binding a
// number's literal spelling alongside (or instead of) its parsed value.
// Ports pegy-derive's StringCapture<T> (ast.rs), generalized here as a
// standalone combinator usable outside the derive machinery too.
func Capture[T any](p gpeg.Parser[T]) gpeg.Parser[string] {
	return func(src gpeg.Source) (string, error) {
		start := src.Position()
		_, err := p(src)
		if err != nil {
			return "", err
		}
		end := src.Position()
		return sliceByPositions(src, start, end), nil
	}
}

// sliceByPositions rewinds src to start and walks forward to end, collecting
// the codepoints traversed. Source exposes no direct substring accessor (a
// streaming Source may not retain bytes behind position cheaply in general),
// so this walks the interface rather than assuming a concrete buffer.
func sliceByPositions(src gpeg.Source, start, end int) string {
	save := src.Position()
	src.SetPosition(start)
	var out []rune
	for src.Position() < end {
		ch, ok := src.Peek()
		if !ok {
			break
		}
		out = append(out, ch.Ch)
		src.SetPosition(src.Position() + ch.Length)
	}
	src.SetPosition(save)
	return string(out)
}
