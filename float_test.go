package gpeg

import "testing"

func TestFloat64Basic(t *testing.T) {
	src := NewBufferSource("3.14")
	v, err := Float64(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != 3.14 {
		t.Errorf("expected 3.14, got %v", v)
	}
}

func TestFloat64SingleFractionalDigit(t *testing.T) {
	src := NewBufferSource("9.6")
	v, err := Float64(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != 9.6 {
		t.Errorf("expected 9.6, got %v", v)
	}
}

func TestFloat64NoFractionalPart(t *testing.T) {
	src := NewBufferSource("0")
	v, err := Float64(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != 0 {
		t.Errorf("expected 0, got %v", v)
	}
}

func TestFloat64Exponent(t *testing.T) {
	src := NewBufferSource("6.022e23")
	v, err := Float64(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != 6.022e23 {
		t.Errorf("expected 6.022e23, got %v", v)
	}
}

func TestFloat64Negative(t *testing.T) {
	src := NewBufferSource("-1.5")
	v, err := Float64(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != -1.5 {
		t.Errorf("expected -1.5, got %v", v)
	}
}

func TestFloat64FailsWithNoLeadingDigits(t *testing.T) {
	src := NewBufferSource(".5")
	before := src.Position()
	if _, err := Float64(src); err == nil {
		t.Error("expected failure: no leading digit before '.'")
	}
	if src.Position() != before {
		t.Error("position not restored on failure")
	}
}

func TestFloat64StopsBeforeTrailingGarbage(t *testing.T) {
	src := NewBufferSource("12,34")
	v, err := Float64(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != 12 {
		t.Errorf("expected 12, got %v", v)
	}
	if src.Position() != 2 {
		t.Errorf("expected position 2 (stopping before the comma), got %d", src.Position())
	}
}

func TestFloat32Basic(t *testing.T) {
	src := NewBufferSource("2.5")
	v, err := Float32(src)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if v != 2.5 {
		t.Errorf("expected 2.5, got %v", v)
	}
}
