package bencode

import "bytes"

// Kind discriminates the four bencoded value shapes.
type Kind int

const (
	KindBytes Kind = iota
	KindInt
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "bytes"
	case KindInt:
		return "int"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	default:
		return "invalid"
	}
}

// Bytes is a bencoded byte string. Values produced by [Parse] alias the
// original input rather than copying it.
type Bytes []byte

// Value is a bencoded value: a byte string, an integer, a list, or a
// dictionary.
//
// Go slices already distinguish a borrowed view from an owned buffer at the
// value level (a sub-slice of someone else's backing array vs. a freshly
// appended one) without needing a distinct static type, so unlike the
// reference implementation's Value<B>, Value here is not generic over its
// byte-holder type.
type Value struct {
	kind Kind
	b    Bytes
	i    int64
	list []Value
	dict Map[Value]
}

// BytesValue constructs a byte-string Value.
func BytesValue(b Bytes) Value { return Value{kind: KindBytes, b: b} }

// IntValue constructs an integer Value.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// ListValue constructs a list Value.
func ListValue(vs []Value) Value { return Value{kind: KindList, list: vs} }

// DictValue constructs a dictionary Value.
func DictValue(d Map[Value]) Value { return Value{kind: KindDict, dict: d} }

// Kind reports which of the four bencode shapes v holds.
func (v Value) Kind() Kind { return v.kind }

// AsBytes returns v's byte string and true, or false if v is not a byte string.
func (v Value) AsBytes() (Bytes, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.b, true
}

// AsInt returns v's integer and true, or false if v is not an integer.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsList returns v's list and true, or false if v is not a list.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsDict returns v's dictionary and true, or false if v is not a dictionary.
func (v Value) AsDict() (Map[Value], bool) {
	if v.kind != KindDict {
		return Map[Value]{}, false
	}
	return v.dict, true
}

// Equal reports whether v and other are structurally equal. Dict comparison
// is by key/value content, independent of entry order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBytes:
		return bytes.Equal(v.b, other.b)
	case KindInt:
		return v.i == other.i
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if v.dict.Len() != other.dict.Len() {
			return false
		}
		for _, e := range v.dict.entries {
			ov, ok := other.dict.Get(e.Key)
			if !ok || !e.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
