package storage

import "testing"

func TestIntValueRoundTrip(t *testing.T) {
	v := IntValue(-42)
	if v.Type() != Int {
		t.Fatalf("expected Int, got %s", v.Type())
	}
	if got := v.Int(); got != -42 {
		t.Fatalf("expected -42, got %d", got)
	}
}

func TestTextValueRoundTrip(t *testing.T) {
	v := TextValue([]byte("hello"))
	if v.Type() != Text {
		t.Fatalf("expected Text, got %s", v.Type())
	}
	if got := string(v.Text()); got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
}

func TestTextValueCopiesInput(t *testing.T) {
	src := []byte("hello")
	v := TextValue(src)
	src[0] = 'H'
	if got := string(v.Text()); got != "hello" {
		t.Fatalf("TextValue aliased its input: got %q", got)
	}
}

func TestValueEqual(t *testing.T) {
	if !IntValue(7).Equal(IntValue(7)) {
		t.Fatalf("expected equal ints")
	}
	if IntValue(7).Equal(IntValue(8)) {
		t.Fatalf("expected unequal ints")
	}
	if !TextValue([]byte("a")).Equal(TextValue([]byte("a"))) {
		t.Fatalf("expected equal text")
	}
	if IntValue(0).Equal(TextValue(nil)) {
		t.Fatalf("expected values of different types to be unequal")
	}
}

func TestUint16RoundTrip(t *testing.T) {
	buf := make([]byte, 2)
	PutUint16(buf, 4095)
	if got := Uint16(buf); got != 4095 {
		t.Fatalf("expected 4095, got %d", got)
	}
}

func TestInt32RoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	PutInt32(buf, -123456)
	if got := Int32(buf); got != -123456 {
		t.Fatalf("expected -123456, got %d", got)
	}
}
