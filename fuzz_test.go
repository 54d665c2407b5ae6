package bencode

import (
	"bytes"
	"testing"
)

// FuzzParse checks that Parse never panics and that whatever it accepts
// can be turned back into a Value and re-encoded without error. Native
// go test -fuzz replaces a legacy +build gofuzz harness, since this
// module targets Go 1.21.
func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"4:spam",
		"i3e",
		"i0e",
		"i-3e",
		"i03e",
		"i-0e",
		"l4:spam4:eggse",
		"d3:cow3:moo4:spam4:eggse",
		"d4:spaml1:a1:bee",
		"",
		"le",
		"de",
	} {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		es, err := Parse(data)
		if err != nil {
			return
		}
		v, err := es.IntoValue()
		if err != nil {
			t.Fatalf("IntoValue failed on parser output: %v", err)
		}
		if _, err := MarshalValue(v); err != nil {
			t.Fatalf("MarshalValue failed on parsed Value: %v", err)
		}
	})
}

// FuzzRoundTrip checks the round-trip law for values reachable purely by
// parsing: encode(parse(x)) reproduces x byte for byte, apart from the
// single trailing newline Parse discards.
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("d3:cow3:moo4:spam4:eggse"))
	f.Add([]byte("l4:spam4:eggse"))
	f.Add([]byte("i42e"))

	f.Fuzz(func(t *testing.T, data []byte) {
		es, err := Parse(data)
		if err != nil {
			return
		}
		v, err := es.IntoValue()
		if err != nil {
			return
		}
		encoded, err := MarshalValue(v)
		if err != nil {
			t.Fatalf("MarshalValue: %v", err)
		}
		if !bytes.Equal(encoded, bytes.TrimSuffix(data, []byte("\n"))) {
			t.Fatalf("round trip mismatch: parsed %q, re-encoded %q", data, encoded)
		}
	})
}
