package gpeg

import "golang.org/x/exp/constraints"

// ParseUint builds a parser for an unsigned fixed-width integer literal in
// the given radix: one or more digits, left-to-right accumulation, reporting
// an Overflow error (spec §7 item 3, exercised by spec §8's uint16 overflow
// scenario) the moment the running total would exceed T's range rather than
// wrapping. Grounded on pegy::util's primitive-integer Parse impls, which
// the original generates per width via a macro (parse.rs lines 61-140); Go
// has no integer-literal macros, so this is written once, generically, using
// golang.org/x/exp/constraints.Unsigned to stay generic over width and still
// know each T's maximum via bit manipulation.
func ParseUint[T constraints.Unsigned](radix int) Parser[T] {
	digit := Digit(radix)
	return func(src Source) (T, error) {
		start := src.Position()
		var max T
		max--
		var acc T
		count := 0
		for {
			pos := src.Position()
			r, err := digit(src)
			if err != nil {
				src.SetPosition(pos)
				break
			}
			d := T(digitValue(r))
			if acc > (max-d)/T(radix) {
				end := src.Position()
				src.SetPosition(start)
				return 0, NewError(NewSpan(start, end), "integer literal overflows target type")
			}
			acc = acc*T(radix) + d
			count++
		}
		if count == 0 {
			return 0, NewError(NewSpan(start, start), "expected digit")
		}
		return acc, nil
	}
}

// ParseInt builds a parser for a signed fixed-width integer literal: an
// optional leading '-' or '+' followed by ParseUint's digit run, negated on
// overflow-checked assignment into the signed type. Grounded the same way as
// ParseUint, generalizing per-width Rust macro output into one generic
// function over golang.org/x/exp/constraints.Signed.
func ParseInt[T constraints.Signed](radix int) Parser[T] {
	digit := Digit(radix)
	return func(src Source) (T, error) {
		start := src.Position()
		neg := false
		if src.MatchChar('-') {
			neg = true
		} else {
			src.MatchChar('+')
		}

		var acc int64
		count := 0
		for {
			pos := src.Position()
			r, err := digit(src)
			if err != nil {
				src.SetPosition(pos)
				break
			}
			d := int64(digitValue(r))
			acc = acc*int64(radix) + d
			count++
			if acc < 0 {
				end := src.Position()
				src.SetPosition(start)
				return 0, NewError(NewSpan(start, end), "integer literal overflows target type")
			}
		}
		if count == 0 {
			src.SetPosition(start)
			return 0, NewError(NewSpan(start, start), "expected digit")
		}
		if neg {
			acc = -acc
		}
		result := T(acc)
		if int64(result) != acc {
			end := src.Position()
			src.SetPosition(start)
			return 0, NewError(NewSpan(start, end), "integer literal overflows target type")
		}
		return result, nil
	}
}
