package gpeg

import (
	"context"
	"io"
)

// StreamSource is a Source over an asynchronous byte producer (an
// io.Reader). It grows a local append-only buffer from upstream reads,
// pulling lazily only when a peek/match needs bytes the buffer doesn't have
// yet - generalizing the teacher's single synchronous Stream to the
// streaming case spec §4.1 requires, the way pegy::AsyncStrSource does in
// the original (source.rs lines 232-351).
//
// Go has no separate async/await surface: a StreamSource's methods block the
// calling goroutine when more bytes are needed, which is the native
// suspension point spec §5 asks for. ctx is checked before every growth read
// so a canceled context aborts the parse instead of blocking forever.
type StreamSource struct {
	ctx    context.Context
	reader io.Reader
	buf    []byte
	pos    int
	eof    bool
	readErr error
}

// NewStreamSource wraps r for parsing. ctx governs cancellation of blocking
// reads; pass context.Background() if the caller has no deadline.
func NewStreamSource(ctx context.Context, r io.Reader) *StreamSource {
	if ctx == nil {
		ctx = context.Background()
	}
	return &StreamSource{ctx: ctx, reader: r}
}

// canceled reports whether the context was canceled; ensure treats that as
// if the upstream had closed (EOF) - the Source contract has no channel
// for propagating arbitrary I/O errors, so a closed/errored/canceled stream
// is uniformly treated as EOF from here on (mirrors AsyncStrSource, which
// latches is_eof permanently once the reader errors).
func (s *StreamSource) canceled() bool {
	select {
	case <-s.ctx.Done():
		return true
	default:
		return false
	}
}

// ensure grows the buffer until it holds at least upto bytes, or the
// upstream is exhausted/errored/canceled.
func (s *StreamSource) ensure(upto int) {
	const chunk = 4096
	for len(s.buf) < upto && !s.eof {
		if s.canceled() {
			s.eof = true
			break
		}
		tmp := make([]byte, chunk)
		n, err := s.reader.Read(tmp)
		if n > 0 {
			s.buf = append(s.buf, tmp[:n]...)
		}
		if err != nil {
			s.eof = true
			if err != io.EOF {
				s.readErr = err
			}
		}
	}
}

func (s *StreamSource) Position() int { return s.pos }

func (s *StreamSource) SetPosition(pos int) { s.pos = pos }

func (s *StreamSource) Peek() (Character, bool) {
	s.ensure(s.pos + 4)
	return decodeRune(s.buf, s.pos)
}

func (s *StreamSource) MatchChar(c rune) bool {
	ch, ok := s.Peek()
	if !ok || ch.Ch != c {
		return false
	}
	s.pos += ch.Length
	return true
}

func (s *StreamSource) MatchCharRange(lo, hi rune) (rune, bool) {
	ch, ok := s.Peek()
	if !ok || ch.Ch < lo || ch.Ch > hi {
		return 0, false
	}
	s.pos += ch.Length
	return ch.Ch, true
}

func (s *StreamSource) MatchStr(str string) bool {
	if len(str) == 0 {
		return true
	}
	s.ensure(s.pos + len(str))
	if s.pos+len(str) > len(s.buf) {
		return false
	}
	if string(s.buf[s.pos:s.pos+len(str)]) != str {
		return false
	}
	s.pos += len(str)
	return true
}

// Err returns the first non-EOF error reported by the upstream reader, if
// any. It does not affect parsing (an erroring stream still behaves as EOF
// to the Source contract) but lets a caller distinguish "ran out of well
// formed input" from "the transport broke" after the fact.
func (s *StreamSource) Err() error { return s.readErr }
