package gpeg

import "unicode/utf8"

// Character is a decoded Unicode scalar together with its UTF-8 byte length
// at the position it was read from, so Position()+Length is the next valid
// position.
type Character struct {
	Ch     rune
	Length int
}

// Source is the abstract input stream every parser runs against: a
// position-addressable UTF-8 byte stream supporting peek, atomic range/string
// match, and checkpoint/rewind. Every method may need to pull more bytes from
// an upstream producer (StreamSource); in Go that's simply a blocking call,
// so unlike the Rust original there is no separate async flavor of the
// interface.
//
// Implementations must never discard bytes before the current position:
// SetPosition to any earlier value previously returned by Position must
// remain valid for the lifetime of the Source.
type Source interface {
	// Position returns the current logical byte offset. Opaque to callers
	// except as an argument to SetPosition.
	Position() int

	// SetPosition rewinds or re-seeks to a position previously returned by
	// Position.
	SetPosition(pos int)

	// Peek decodes the next codepoint without advancing. ok is false at EOF
	// or on malformed UTF-8 (which is treated as EOF to keep byte positions
	// exact).
	Peek() (ch Character, ok bool)

	// MatchChar advances past the next codepoint if it equals c, and
	// reports whether it did. Position is unchanged on failure.
	MatchChar(c rune) bool

	// MatchCharRange advances past the next codepoint if it falls in
	// [lo, hi], returning it. Position is unchanged on failure.
	MatchCharRange(lo, hi rune) (rune, bool)

	// MatchStr atomically matches the full byte sequence of s starting at
	// the current position, advancing past it on success. Position is
	// unchanged on failure. The empty string always matches.
	MatchStr(s string) bool
}

// decodeRune decodes one UTF-8 codepoint from b at the given offset.
// Malformed sequences are reported as "not ok" rather than producing
// utf8.RuneError, so callers can treat them as EOF per the Source contract.
func decodeRune(b []byte, at int) (Character, bool) {
	if at >= len(b) {
		return Character{}, false
	}
	r, size := utf8.DecodeRune(b[at:])
	if r == utf8.RuneError && size <= 1 {
		return Character{}, false
	}
	return Character{Ch: r, Length: size}, true
}
