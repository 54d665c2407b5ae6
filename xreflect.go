package bencode

// Utilities that complement std reflect package.

import "reflect"

// deepEqual is like reflect.DeepEqual but dispatches to Value.Equal for
// Value operands, so that two Values built from dicts in different
// insertion order but with the same entries still compare equal.
//
// Mirrors reflect.DeepEqual plus a special-cased container type: a
// dict's entries are compared in slice order by reflect.DeepEqual, so it
// reports two dicts holding the same entries in different insertion order
// as different, while Value.Equal is structural and
// order-independent, since dict entry order is incidental to bencode
// value equality.
func deepEqual(a, b any) bool {
	va, ok := a.(Value)
	if !ok {
		return reflect.DeepEqual(a, b)
	}
	vb, ok := b.(Value)
	if !ok {
		return false
	}
	return va.Equal(vb)
}
