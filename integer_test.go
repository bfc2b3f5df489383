package gpeg

import "testing"

func TestParseUintLeadingZerosAreFine(t *testing.T) {
	p := ParseUint[uint32](10)
	src := NewBufferSource("00042")
	v, err := p(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
	if src.Position() != 5 {
		t.Errorf("expected position 5, got %d", src.Position())
	}
}

func TestParseUintOverflowRestoresPosition(t *testing.T) {
	p := ParseUint[uint16](10)
	src := NewBufferSource("99999999999")
	_, err := p(src)
	if err == nil {
		t.Fatal("expected overflow error")
	}
	if src.Position() != 0 {
		t.Errorf("expected position restored to 0 on overflow, got %d", src.Position())
	}
}

func TestParseUintFailsOnNoDigits(t *testing.T) {
	p := ParseUint[uint32](10)
	src := NewBufferSource("xyz")
	if _, err := p(src); err == nil {
		t.Error("expected failure: no digits present")
	}
}

func TestParseUintHexRadix(t *testing.T) {
	p := ParseUint[uint32](16)
	src := NewBufferSource("ff")
	v, err := p(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != 255 {
		t.Errorf("expected 255, got %d", v)
	}
}

func TestParseIntNegative(t *testing.T) {
	p := ParseInt[int32](10)
	src := NewBufferSource("-42")
	v, err := p(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != -42 {
		t.Errorf("expected -42, got %d", v)
	}
}

func TestParseIntExplicitPlus(t *testing.T) {
	p := ParseInt[int32](10)
	src := NewBufferSource("+7")
	v, err := p(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != 7 {
		t.Errorf("expected 7, got %d", v)
	}
}

func TestParseIntOverflowNarrowType(t *testing.T) {
	p := ParseInt[int8](10)
	src := NewBufferSource("200")
	if _, err := p(src); err == nil {
		t.Error("expected overflow error for int8")
	}
}

func TestParseIntFailsOnBareSign(t *testing.T) {
	p := ParseInt[int32](10)
	src := NewBufferSource("-")
	before := src.Position()
	if _, err := p(src); err == nil {
		t.Error("expected failure: sign with no digits")
	}
	if src.Position() != before {
		t.Error("position not restored after bare-sign failure")
	}
}
