package gpeg

import "strconv"

// floatLiteral matches the textual span of a decimal float literal -
// [+-]?digits(.digits?)?([eE][+-]?digits)?, where the digits after '.' may
// be absent ("12." is matched whole) - without interpreting it,
// leaving interpretation to strconv.ParseFloat. Spec §1 names a "bundled
// fast float parser" as an assumed-present external collaborator; no such
// library appears anywhere in the retrieved pack, so this falls back to the
// standard library's own (already fast, already correct) decimal parser
// rather than hand-rolling one - see DESIGN.md.
func floatLiteral(src Source) (string, error) {
	start := src.Position()
	if !src.MatchChar('-') {
		src.MatchChar('+')
	}

	digits := func() int {
		n := 0
		for {
			pos := src.Position()
			if _, ok := src.MatchCharRange('0', '9'); !ok {
				src.SetPosition(pos)
				break
			}
			n++
		}
		return n
	}

	intDigits := digits()
	if intDigits == 0 {
		src.SetPosition(start)
		return "", NewError(NewSpan(start, start), "expected float literal")
	}

	if src.MatchChar('.') {
		digits()
	}

	expStart := src.Position()
	if src.MatchChar('e') || src.MatchChar('E') {
		if !src.MatchChar('-') {
			src.MatchChar('+')
		}
		if digits() == 0 {
			src.SetPosition(expStart)
		}
	}

	end := src.Position()
	return sliceSource(src, start, end), nil
}

// sliceSource re-reads the codepoints between [start, end) by rewinding and
// walking forward one Peek at a time, since Source exposes no direct
// substring accessor (by design - a streaming Source may not be able to
// provide one cheaply once bytes have scrolled out of its buffer; both
// concrete implementations here happen to retain everything, but floatLiteral
// is written against the interface, not the implementation).
func sliceSource(src Source, start, end int) string {
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

// Float64 parses a 64-bit floating point literal via strconv.ParseFloat.
func Float64(src Source) (float64, error) {
	start := src.Position()
	lit, err := floatLiteral(src)
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseFloat(lit, 64)
	if perr != nil {
		src.SetPosition(start)
		return 0, NewErrorf(NewSpan(start, src.Position()), "invalid float literal %q", lit)
	}
	return v, nil
}

// Float32 parses a 32-bit floating point literal via strconv.ParseFloat.
func Float32(src Source) (float32, error) {
	start := src.Position()
	lit, err := floatLiteral(src)
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseFloat(lit, 32)
	if perr != nil {
		src.SetPosition(start)
		return 0, NewErrorf(NewSpan(start, src.Position()), "invalid float literal %q", lit)
	}
	return float32(v), nil
}
