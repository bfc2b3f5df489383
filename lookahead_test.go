package gpeg

import "testing"

func TestNotSucceedsWhenInnerFails(t *testing.T) {
	p := Not(Digit(10))
	src := NewBufferSource("x")
	if _, err := p(src); err != nil {
		t.Errorf("expected Not to succeed when inner parser fails: %v", err)
	}
	if src.Position() != 0 {
		t.Error("Not must never consume input")
	}
}

func TestNotFailsWhenInnerSucceedsAndConsumesNothing(t *testing.T) {
	p := Not(Digit(10))
	src := NewBufferSource("1")
	if _, err := p(src); err == nil {
		t.Error("expected Not to fail when inner parser succeeds")
	}
	if src.Position() != 0 {
		t.Error("Not must never consume input, even on failure")
	}
}

func TestNotIsPureOnRepeatedInvocation(t *testing.T) {
	// Not's purity: calling it twice in a row must behave identically,
	// since it never mutates position on either branch.
	p := Not(Digit(10))
	src := NewBufferSource("x")
	_, err1 := p(src)
	_, err2 := p(src)
	if (err1 == nil) != (err2 == nil) {
		t.Error("Not gave different results on repeated invocation at the same position")
	}
	if src.Position() != 0 {
		t.Error("Not must never consume input")
	}
}

func TestQuietDiscardsValueOnSuccess(t *testing.T) {
	p := Quiet(Parser[rune](ANY))
	src := NewBufferSource("x")
	if _, err := p(src); err != nil {
		t.Errorf("unexpected failure: %v", err)
	}
	if src.Position() != 1 {
		t.Error("Quiet must still advance position on success")
	}
}

func TestQuietPropagatesFailure(t *testing.T) {
	p := Quiet(Digit(10))
	src := NewBufferSource("x")
	if _, err := p(src); err == nil {
		t.Error("expected Quiet to propagate inner failure")
	}
}
