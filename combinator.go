package gpeg

// Optional attempts p once. If p succeeds, Optional yields a pointer to its
// value; if p fails, Optional succeeds with a nil pointer, restoring
// position. Optional itself never fails. Grounded on the teacher's
// pOptional (parser.go lines 280-297) and pegy::util's blanket
// impl<T: Parse> Parse for Option<T> (parse.rs lines 49-59).
func Optional[T any](p Parser[T]) Parser[*T] {
	return func(src Source) (*T, error) {
		start := src.Position()
		v, err := p(src)
		if err != nil {
			src.SetPosition(start)
			return nil, nil
		}
		return &v, nil
	}
}

// Repeat iterates p, collecting its outputs, optionally separated by sep.
// It stops when p fails, when max items have been collected, or (if sep is
// non-nil) when sep fails to match between items - never consuming a
// trailing separator (see DESIGN.md's Open Question decision). It fails
// overall, restoring position, if fewer than min items were collected.
// max < 0 means unbounded. Grounded on pegy::util::Repeat (util.rs lines
// 57-104) and the teacher's pMany (parser.go lines 404-446).
func Repeat[T any](p Parser[T], min, max int, sep Parser[rune]) Parser[[]T] {
	return func(src Source) ([]T, error) {
		start := src.Position()
		if max == 0 {
			return []T{}, nil
		}
		out := make([]T, 0, 4)
		last := start
		for max < 0 || len(out) < max {
			itemStart := src.Position()
			v, err := p(src)
			if err != nil {
				src.SetPosition(itemStart)
				break
			}
			out = append(out, v)
			last = src.Position()
			if sep != nil {
				sepStart := src.Position()
				if _, err := sep(src); err != nil {
					src.SetPosition(sepStart)
					break
				}
			}
		}
		src.SetPosition(last)
		if len(out) < min {
			end := src.Position()
			src.SetPosition(start)
			return nil, NewError(NewSpan(start, end), "expected minimal number of repeats")
		}
		return out, nil
	}
}

// RepeatQuiet has the exact protocol of Repeat but discards the collected
// values, returning only the count - used inside grammars where only the
// side effect of advancing position matters (e.g. consuming whitespace
// runs) without paying for a slice allocation. Grounded on
// pegy::util::RepeatQuiet (util.rs lines 106-152).
func RepeatQuiet[T any](p Parser[T], min, max int, sep Parser[rune]) Parser[int] {
	return func(src Source) (int, error) {
		start := src.Position()
		if max == 0 {
			return 0, nil
		}
		count := 0
		last := start
		for max < 0 || count < max {
			itemStart := src.Position()
			_, err := p(src)
			if err != nil {
				src.SetPosition(itemStart)
				break
			}
			count++
			last = src.Position()
			if sep != nil {
				sepStart := src.Position()
				if _, err := sep(src); err != nil {
					src.SetPosition(sepStart)
					break
				}
			}
		}
		src.SetPosition(last)
		if count < min {
			end := src.Position()
			src.SetPosition(start)
			return 0, NewError(NewSpan(start, end), "expected minimal number of repeats")
		}
		return count, nil
	}
}

// Pair is the output of AND: both sub-parsers' values, in sequence.
type Pair[A, B any] struct {
	First  A
	Second B
}

// AND runs a then b in strict sequence, failing (and restoring position) if
// either does. Grounded on pegy::util::AND (util.rs lines 154-170).
func AND[A, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return func(src Source) (Pair[A, B], error) {
		start := src.Position()
		av, err := a(src)
		if err != nil {
			return Pair[A, B]{}, err
		}
		bv, err := b(src)
		if err != nil {
			src.SetPosition(start)
			return Pair[A, B]{}, err
		}
		return Pair[A, B]{First: av, Second: bv}, nil
	}
}

// Either is the output of OR: exactly one of A or B matched.
type Either[A, B any] struct {
	IsA bool
	A   A
	B   B
}

// OR tries a; if it fails, restores position and tries b. PEG ordered
// choice: if a succeeds, b is never attempted. Grounded on pegy::util::OR
// (util.rs lines 172-194) and the teacher's pAlt (parser.go lines 187-214).
func OR[A, B any](a Parser[A], b Parser[B]) Parser[Either[A, B]] {
	return func(src Source) (Either[A, B], error) {
		start := src.Position()
		if av, err := a(src); err == nil {
			return Either[A, B]{IsA: true, A: av}, nil
		}
		src.SetPosition(start)
		bv, err := b(src)
		if err != nil {
			return Either[A, B]{}, err
		}
		return Either[A, B]{B: bv}, nil
	}
}

// Recursive defers to p, which is supplied lazily: this breaks the
// unbounded type-level recursion a self-referential grammar would otherwise
// require (spec §4.2/§9), the Go analogue of pegy::util::Recursive boxing
// the *future* (util.rs lines 36-44) rather than the output value. p is
// called once per Recursive invocation, not once at construction, so the
// closure may itself reference the very Parser being built (the usual
// pattern is a package-level var initialized by a function literal that
// calls itself indirectly through this wrapper).
func Recursive[T any](p func() Parser[T]) Parser[T] {
	return func(src Source) (T, error) {
		return p()(src)
	}
}

// Boxed wraps p's output behind a pointer indirection, useful for giving a
// self-referential record type's field a fixed size. The Go analogue of
// pegy::util::Boxed (util.rs lines 46-55) - in Go every non-scalar value
// already lives behind a pointer-sized header, so Boxed exists purely to
// express "this field holds a pointer to the next node" in the type, not to
// change allocation behavior.
func Boxed[T any](p Parser[T]) Parser[*T] {
	return func(src Source) (*T, error) {
		v, err := p(src)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}
