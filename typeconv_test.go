package bencode

import "testing"

func TestAsInt64(t *testing.T) {
	i, err := AsInt64(IntValue(42))
	if err != nil || i != 42 {
		t.Fatalf("got (%d, %v), want (42, nil)", i, err)
	}
	if _, err := AsInt64(BytesValue(Bytes("x"))); err == nil {
		t.Error("expected error for non-int Value")
	}
}

func TestAsBytes(t *testing.T) {
	b, err := AsBytes(BytesValue(Bytes("spam")))
	if err != nil || string(b) != "spam" {
		t.Fatalf("got (%q, %v)", b, err)
	}
	if _, err := AsBytes(IntValue(1)); err == nil {
		t.Error("expected error for non-bytes Value")
	}
}

func TestAsString(t *testing.T) {
	s, err := AsString(BytesValue(Bytes("hello")))
	if err != nil || s != "hello" {
		t.Fatalf("got (%q, %v)", s, err)
	}
}
