package gpeg

// Not is a negative lookahead: it runs p, always restores position, and
// succeeds (yielding nothing) iff p fails. Not never consumes input on
// either success or failure - this purity is one of the properties spec §8
// calls out for explicit testing. Grounded on the grammar DSL's `!term`
// codegen in pegy-derive/src/grammar.rs (lines 278-296), generalized here
// into a standalone combinator usable outside the DSL too.
func Not[T any](p Parser[T]) Parser[struct{}] {
	return func(src Source) (struct{}, error) {
		start := src.Position()
		_, err := p(src)
		src.SetPosition(start)
		if err == nil {
			return struct{}{}, NewError(NewSpan(start, start), "negative lookahead failed")
		}
		return struct{}{}, nil
	}
}

// Quiet runs p and discards its value, propagating only success/failure.
// Used to avoid constructing a value that will never be read - the typed
// counterpart of RepeatQuiet for a single (non-repeated) term.
func Quiet[T any](p Parser[T]) Parser[struct{}] {
	return func(src Source) (struct{}, error) {
		_, err := p(src)
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	}
}
