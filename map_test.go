package bencode

import "testing"

func TestMapInsertPreservesOrder(t *testing.T) {
	m := NewMap[int]()
	m.Insert(Bytes("b"), 1)
	m.Insert(Bytes("a"), 2)

	entries := m.Entries()
	if len(entries) != 2 || string(entries[0].Key) != "b" || string(entries[1].Key) != "a" {
		t.Fatalf("insertion order not preserved: %#v", entries)
	}
}

func TestMapCanonicalize(t *testing.T) {
	m := NewMap[int]()
	m.Insert(Bytes("zebra"), 1)
	m.Insert(Bytes("alpha"), 2)
	m.Insert(Bytes("mango"), 3)

	m.Canonicalize()

	want := []string{"alpha", "mango", "zebra"}
	for i, e := range m.Entries() {
		if string(e.Key) != want[i] {
			t.Errorf("entry %d: got key %q, want %q", i, e.Key, want[i])
		}
	}
}

func TestMapGet(t *testing.T) {
	m := NewMap[string]()
	m.Insert(Bytes("name"), "tracker")

	v, ok := m.Get(Bytes("name"))
	if !ok || v != "tracker" {
		t.Fatalf("got (%q, %v), want (\"tracker\", true)", v, ok)
	}

	if _, ok := m.Get(Bytes("missing")); ok {
		t.Error("expected missing key to not be found")
	}
}
