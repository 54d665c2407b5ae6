package bencode

// Conversion helpers between decoded Values and common Go shapes.

import "fmt"

// AsInt64 tries to represent v as int64.
//
// Bencode integers are always signed 64-bit (no bignum concept, unlike
// the pickle format this package's structure is descended from), so
// there is no big.Int fallback branch here.
func AsInt64(v Value) (int64, error) {
	i, ok := v.AsInt()
	if !ok {
		return 0, fmt.Errorf("bencode: expect int; got %s", v.Kind())
	}
	return i, nil
}

// AsBytes tries to represent v as Bytes.
func AsBytes(v Value) (Bytes, error) {
	b, ok := v.AsBytes()
	if !ok {
		return nil, fmt.Errorf("bencode: expect bytes; got %s", v.Kind())
	}
	return b, nil
}

// AsString tries to represent v as a string, decoding its byte string as
// UTF-8 best-effort (bencode byte strings carry no declared encoding).
func AsString(v Value) (string, error) {
	b, err := AsBytes(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
