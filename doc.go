// Package bencode implements encoding and decoding of the bencoding format
// used by BitTorrent metainfo files and tracker wire protocols.
//
// Bencoding has four value types: byte strings, integers, lists, and
// dictionaries. This package exposes them at three levels:
//
//	bytes   ↔  Bytes / []byte
//	int     ↔  int64
//	list    ↔  []Value
//	dict    ↔  Map[Value]
//
// working at three levels of abstraction:
//
//   - [Value], a tagged-union tree, for working with bencoded data whose
//     shape isn't known ahead of time.
//   - [Elements], a flat pre-order token stream, for transforming or
//     forwarding bencoded data without materializing a tree.
//   - [Marshal] and [Unmarshal], a reflect-based adapter that binds
//     bencoded data directly to and from typed Go structs, slices, and
//     maps, analogous to encoding/json.
//
// Parsing is zero-copy: [Parse] returns [Bytes] values that alias the
// input slice rather than copying it. Encoding never sorts dictionary
// keys; callers that need canonical output call [Map.Canonicalize]
// themselves before encoding.
//
// A minimal round trip:
//
//	elems, err := bencode.Parse(data)
//	v, err := elems.IntoValue()
//	out, err := bencode.Marshal(v)
//
// Binding to a typed struct:
//
//	type Info struct {
//		Name        string `bencode:"name"`
//		PieceLength int64  `bencode:"piece length"`
//		Pieces      []byte `bencode:"pieces"`
//	}
//
//	var info Info
//	err := bencode.Unmarshal(data, &info)
//
//
// Struct tags
//
// The adapter reads a `bencode:"name,omitempty"` tag on exported struct
// fields, falling back to the field's Go name when no tag is present. A
// tag of "-" excludes the field entirely. omitempty skips the field on
// encode when it holds its zero value.
//
//
// Canonicalization
//
// This package never sorts dictionary keys on your behalf. A [Map] built
// by hand via [Map.Insert] keeps insertion order until [Map.Canonicalize]
// is called; a [Map] produced by [Parse] is already in wire order, which
// for well-formed bencode is already sorted. Encoding a non-canonical
// [Map] produces non-canonical (but still valid) output.
package bencode
