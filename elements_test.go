package bencode

import "testing"

func TestIntoElementsThenIntoValueRoundTrips(t *testing.T) {
	m := NewMap[Value]()
	m.Insert(Bytes("values"), ListValue([]Value{BytesValue(Bytes("spam")), IntValue(127)}))
	m.Insert(Bytes("key"), BytesValue(Bytes("value")))
	v := DictValue(m)

	es := v.IntoElements()
	got, err := es.IntoValue()
	if err != nil {
		t.Fatalf("IntoValue: %v", err)
	}
	if !got.Equal(v) {
		t.Errorf("round trip mismatch: got %#v, want %#v", got, v)
	}
}

func TestIntoValueDropsNonBytesDictKeys(t *testing.T) {
	// A hand-built stream with a dict key that isn't a byte string; the
	// parser itself never produces this, but Elements can be constructed
	// directly (e.g. a transform pipeline), so IntoValue must tolerate it
	// per the reference implementation's `if let Value::Bytes(b) = key`.
	es := ElementsFromRaw([]Element{
		{Kind: ElemDictBegin, N: 1},
		{Kind: ElemInt, Int: 1}, // not a valid key
		{Kind: ElemBytes, Bytes: Bytes("ignored")},
	})

	v, err := es.IntoValue()
	if err != nil {
		t.Fatalf("IntoValue: %v", err)
	}
	d, ok := v.AsDict()
	if !ok {
		t.Fatalf("expected dict, got %v", v.Kind())
	}
	if d.Len() != 0 {
		t.Errorf("expected the malformed entry to be dropped, got %d entries", d.Len())
	}
}
