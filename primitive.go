package gpeg

import "unicode"

// Parser is the typed parser function every primitive and combinator
// produces: it consumes a Source and yields a T or an Error, never
// consuming input on failure. This generalizes the teacher's Parser
// interface (parser.go: Parse(Stream, symbolTable) (Stream, *parseError))
// into a typed generic function, since Go generics let the value flow
// through the type system instead of through an untyped Stream.Value().
type Parser[T any] func(Source) (T, error)

func singleRune(pred func(rune) bool, expected string) Parser[rune] {
	return func(src Source) (rune, error) {
		pos := src.Position()
		ch, ok := src.Peek()
		if !ok || !pred(ch.Ch) {
			return 0, NewError(NewSpan(pos, pos), expected)
		}
		src.SetPosition(pos + ch.Length)
		return ch.Ch, nil
	}
}

// ANY consumes and yields one codepoint; fails at EOF.
func ANY(src Source) (rune, error) {
	return singleRune(func(rune) bool { return true }, "expected character")(src)
}

// WHITESPACE matches one Unicode whitespace codepoint.
func WHITESPACE(src Source) (rune, error) {
	return singleRune(unicode.IsSpace, "expected whitespace")(src)
}

// ALPHABETIC matches one Unicode alphabetic codepoint.
func ALPHABETIC(src Source) (rune, error) {
	return singleRune(unicode.IsLetter, "expected alphabetic character")(src)
}

// ALPHANUMERIC matches one Unicode alphabetic-or-numeric codepoint.
func ALPHANUMERIC(src Source) (rune, error) {
	return singleRune(func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	}, "expected alphanumeric character")(src)
}

// CONTROL matches one Unicode control codepoint.
func CONTROL(src Source) (rune, error) {
	return singleRune(unicode.IsControl, "expected control character")(src)
}

// Digit builds a parser matching one digit in the given radix (2-36). The
// default radix in the grammar DSL (an unannotated "DIGIT" rule reference)
// is 16, matching spec §4.2.
func Digit(radix int) Parser[rune] {
	return singleRune(func(r rune) bool {
		return digitValue(r) >= 0 && digitValue(r) < radix
	}, "expected digit")
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 10
	default:
		return -1
	}
}

// isXIDStart and isXIDContinue are a deliberately small approximation of the
// Unicode XID_Start/XID_Continue properties (spec §1 calls full XID
// classification an "assumed present" external collaborator - the original
// Rust crate only has it behind an optional unicode_ident dependency; no
// library in the retrieved pack provides it, so this is built directly
// against stdlib unicode range tables; see DESIGN.md).
func isXIDStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isXIDContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)
}

// UnicodeIDStart matches one codepoint valid as the first character of an
// identifier.
func UnicodeIDStart(src Source) (rune, error) {
	return singleRune(isXIDStart, "expected identifier-start character")(src)
}

// UnicodeIDContinue matches one codepoint valid as a non-initial character
// of an identifier.
func UnicodeIDContinue(src Source) (rune, error) {
	return singleRune(isXIDContinue, "expected identifier-continue character")(src)
}

// EOF succeeds only at the end of input, consuming nothing.
func EOF(src Source) (struct{}, error) {
	pos := src.Position()
	if _, ok := src.Peek(); ok {
		return struct{}{}, NewError(NewSpan(pos, pos), "expected EOF")
	}
	return struct{}{}, nil
}

// SOF succeeds only at the start of input, consuming nothing.
func SOF(src Source) (struct{}, error) {
	pos := src.Position()
	if pos != 0 {
		return struct{}{}, NewError(NewSpan(pos, pos), "expected SOF")
	}
	return struct{}{}, nil
}
