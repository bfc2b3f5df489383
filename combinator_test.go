package gpeg

import "testing"

func TestOptionalYieldsValueOnSuccess(t *testing.T) {
	p := Optional(Parser[rune](ANY))
	src := NewBufferSource("x")
	v, err := p(src)
	if err != nil {
		t.Fatalf("Optional must never fail: %v", err)
	}
	if v == nil || *v != 'x' {
		t.Errorf("expected *'x', got %v", v)
	}
}

func TestOptionalYieldsNilOnFailureAndNeverFails(t *testing.T) {
	p := Optional(Parser[rune](ANY))
	src := NewBufferSource("")
	v, err := p(src)
	if err != nil {
		t.Fatalf("Optional must never fail: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil, got %v", *v)
	}
}

func TestOptionalRestoresPositionOnInnerFailure(t *testing.T) {
	digit := Digit(10)
	src := NewBufferSource("x")
	before := src.Position()
	Optional(digit)(src)
	if src.Position() != before {
		t.Error("Optional did not restore position after inner failure")
	}
}

func TestRepeatCollectsWithinBounds(t *testing.T) {
	p := Repeat(Digit(10), 1, 3, nil)
	src := NewBufferSource("12345")
	v, err := p(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if len(v) != 3 {
		t.Errorf("expected exactly 3 (the max), got %d: %v", len(v), v)
	}
	if src.Position() != 3 {
		t.Errorf("expected position 3, got %d", src.Position())
	}
}

func TestRepeatFailsBelowMinAndRestoresPosition(t *testing.T) {
	p := Repeat(Digit(10), 3, -1, nil)
	src := NewBufferSource("12x")
	before := src.Position()
	if _, err := p(src); err == nil {
		t.Fatal("expected failure: fewer than min items")
	}
	if src.Position() != before {
		t.Error("position not restored after min-count failure")
	}
}

func TestRepeatStarAlwaysSucceedsOnZeroMatches(t *testing.T) {
	p := Repeat(Digit(10), 0, -1, nil)
	src := NewBufferSource("abc")
	v, err := p(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if len(v) != 0 {
		t.Errorf("expected zero items, got %d", len(v))
	}
}

func TestRepeatSeparatorRejectsTrailingSeparator(t *testing.T) {
	// Open Question decision (DESIGN.md): a trailing separator with no item
	// after it is not consumed - Repeat stops cleanly rather than failing,
	// leaving the trailing comma unconsumed for the caller.
	comma := func(src Source) (rune, error) {
		if src.MatchChar(',') {
			return ',', nil
		}
		return 0, NewError(NewSpan(src.Position(), src.Position()), "expected ','")
	}
	p := Repeat(Digit(10), 1, -1, comma)
	src := NewBufferSource("1,2,")
	v, err := p(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if len(v) != 2 {
		t.Errorf("expected 2 items, got %d: %v", len(v), v)
	}
	if src.Position() != 3 {
		t.Errorf("expected position 3 (trailing comma unconsumed), got %d", src.Position())
	}
}

func TestRepeatQuietDiscardsValuesButCounts(t *testing.T) {
	p := RepeatQuiet(Parser[rune](WHITESPACE), 0, -1, nil)
	src := NewBufferSource("   x")
	n, err := p(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if n != 3 {
		t.Errorf("expected count 3, got %d", n)
	}
	if src.Position() != 3 {
		t.Errorf("expected position 3, got %d", src.Position())
	}
}

func TestANDSequencesAndFailsAtomically(t *testing.T) {
	p := AND(Digit(10), Digit(10))
	src := NewBufferSource("1x")
	before := src.Position()
	if _, err := p(src); err == nil {
		t.Fatal("expected failure: second digit missing")
	}
	if src.Position() != before {
		t.Error("AND did not restore position on second-parser failure")
	}
}

func TestANDSucceedsBoth(t *testing.T) {
	p := AND(Digit(10), Digit(10))
	src := NewBufferSource("12")
	v, err := p(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v.First != '1' || v.Second != '2' {
		t.Errorf("unexpected pair: %+v", v)
	}
}

func TestORTriesSecondOnlyAfterFirstFails(t *testing.T) {
	p := OR(matchLit("foo"), matchLit("bar"))
	src := NewBufferSource("bar")
	v, err := p(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v.IsA {
		t.Error("expected the second alternative to win")
	}
	if v.B != "bar" {
		t.Errorf("unexpected value: %+v", v)
	}
}

func TestORDoesNotTrySecondWhenFirstSucceeds(t *testing.T) {
	tried := false
	second := Parser[string](func(src Source) (string, error) {
		tried = true
		return "", NewError(NewSpan(0, 0), "should never run")
	})
	p := OR(matchLit("foo"), second)
	src := NewBufferSource("foo")
	if _, err := p(src); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if tried {
		t.Error("PEG ordered choice must not try the second branch once the first succeeds")
	}
}

func matchLit(s string) Parser[string] {
	return func(src Source) (string, error) {
		pos := src.Position()
		if !src.MatchStr(s) {
			return "", NewErrorf(NewSpan(pos, pos), "expected %q", s)
		}
		return s, nil
	}
}

func TestRecursiveForwardsToCurrentValue(t *testing.T) {
	var p Parser[rune]
	rec := Recursive(func() Parser[rune] { return p })
	p = Parser[rune](ANY)
	src := NewBufferSource("q")
	r, err := rec(src)
	if err != nil || r != 'q' {
		t.Errorf("got %q, %v", r, err)
	}
}

func TestBoxedWrapsOutputBehindPointer(t *testing.T) {
	p := Boxed(Parser[rune](ANY))
	src := NewBufferSource("z")
	v, err := p(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v == nil || *v != 'z' {
		t.Errorf("expected *'z', got %v", v)
	}
}

func TestBoxedPropagatesFailure(t *testing.T) {
	p := Boxed(Digit(10))
	src := NewBufferSource("x")
	before := src.Position()
	if _, err := p(src); err == nil {
		t.Fatal("expected failure")
	}
	if src.Position() != before {
		t.Error("position moved on failure")
	}
}
