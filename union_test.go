package gpeg

import "testing"

func TestParseTaggedTriesVariantsInOrder(t *testing.T) {
	first := func(src Source) (string, error) {
		if src.MatchStr("foo") {
			return "foo", nil
		}
		return "", NewError(NewSpan(src.Position(), src.Position()), "expected foo")
	}
	second := func(src Source) (string, error) {
		if src.MatchStr("bar") {
			return "bar", nil
		}
		return "", NewError(NewSpan(src.Position(), src.Position()), "expected bar")
	}
	src := NewBufferSource("bar")
	v, err := ParseTagged("Thing", src, first, second)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != "bar" {
		t.Errorf("expected 'bar', got %q", v)
	}
}

func TestParseTaggedDoesNotTrySecondWhenFirstSucceeds(t *testing.T) {
	tried := false
	first := func(src Source) (string, error) {
		if src.MatchStr("foo") {
			return "foo", nil
		}
		return "", NewError(NewSpan(0, 0), "expected foo")
	}
	second := func(src Source) (string, error) {
		tried = true
		return "", NewError(NewSpan(0, 0), "should never run")
	}
	src := NewBufferSource("foo")
	if _, err := ParseTagged("Thing", src, first, second); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if tried {
		t.Error("ParseTagged must not try later variants once an earlier one succeeds")
	}
}

func TestParseTaggedRestoresPositionBetweenAttempts(t *testing.T) {
	first := func(src Source) (string, error) {
		src.MatchChar('b')
		return "", NewError(NewSpan(src.Position(), src.Position()), "expected something else")
	}
	second := func(src Source) (string, error) {
		if src.MatchStr("bar") {
			return "bar", nil
		}
		return "", NewError(NewSpan(src.Position(), src.Position()), "expected bar")
	}
	src := NewBufferSource("bar")
	v, err := ParseTagged("Thing", src, first, second)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != "bar" {
		t.Errorf("expected 'bar' (position must be reset before the second attempt), got %q", v)
	}
}

func TestParseTaggedReportsUnionErrorOnExhaustion(t *testing.T) {
	shallow := func(src Source) (string, error) {
		return "", NewError(NewSpan(0, 0), "shallow failure")
	}
	deep := func(src Source) (string, error) {
		src.MatchChar('x')
		return "", NewError(NewSpan(0, 1), "deep failure")
	}
	src := NewBufferSource("xyz")
	_, err := ParseTagged("Thing", src, shallow, deep)
	if err == nil {
		t.Fatal("expected failure: no variant matches")
	}
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if perr.Msg != "no variant of Thing matched" {
		t.Errorf("expected the exhausted-alternatives error naming the union, got %q", perr.Msg)
	}
}

func TestParseTaggedExhaustedMessageWhenNoVariants(t *testing.T) {
	src := NewBufferSource("x")
	_, err := ParseTagged[string]("Thing", src)
	if err == nil {
		t.Fatal("expected failure with zero variants")
	}
	if got, want := err.Error(), "at byte 0: no variant of Thing matched"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseTaggedRestoresPositionOnExhaustion(t *testing.T) {
	a := func(src Source) (int, error) {
		src.MatchChar('x')
		return 0, NewError(NewSpan(0, 1), "a")
	}
	b := func(src Source) (int, error) {
		src.MatchChar('x')
		src.MatchChar('y')
		return 0, NewError(NewSpan(0, 2), "b")
	}
	src := NewBufferSource("xyz")
	if _, err := ParseTagged("Thing", src, a, b); err == nil {
		t.Fatal("expected failure")
	}
	if src.Position() != 0 {
		t.Error("position must be restored once every variant has failed")
	}
}
