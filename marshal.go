package bencode

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
)

// TypeError is returned when a Go value has no bencode representation.
type TypeError struct {
	typ string
}

func (te *TypeError) Error() string {
	return fmt.Sprintf("bencode: no support for type %q", te.typ)
}

// Marshal encodes v to its bencode representation.
//
// v may be a [Value] or an [Elements] stream, in which case it is
// re-emitted directly (the streaming path, grounded on the reference
// impl Serialize for Elements<B> / IterWrap). Otherwise v is walked with
// reflection via an Encoder.encode switch on reflect.Kind, generalized to
// bencode's capability table (grounded on hanekawa-bencode/src/encode/ser.rs):
//
//   - bool, uint64, float32/64, complex, func, chan: unsupported
//   - intX and uintX (except uint64, too wide to fit the int64 wire type
//     without loss): mapped to a bencode int
//   - string, []byte, [N]byte, [Bytes]: mapped to a bencode byte string
//   - slice, array (non-byte element type): mapped to a bencode list
//   - map, struct: mapped to a bencode dict, in iteration/field order -
//     never sorted; call [Map.Canonicalize] yourself if you need that
//   - pointer, interface: transparently dereferenced
//
// A struct field's wire name comes from its `bencode:"name,omitempty"`
// tag, falling back to the Go field name; a tag of "-" skips the field.
func Marshal(v any) ([]byte, error) {
	switch vv := v.(type) {
	case Value:
		return MarshalValue(vv)
	case Elements:
		return MarshalElements(vv)
	case *Value:
		return MarshalValue(*vv)
	case *Elements:
		return MarshalElements(*vv)
	}

	var buf bytes.Buffer
	m := &marshaler{enc: NewEncoder(&buf)}
	if err := m.encode(reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type marshaler struct {
	enc *Encoder

	// writingMapKey is true while the adapter is serializing a map/struct
	// key; a key must always be a byte string. It is saved and restored
	// around nested calls rather than left as a naively global flag, so
	// that serializing a key that happens to itself be a container (which
	// bencode forbids) still restores the flag correctly on the way back
	// out. Grounded on Serializer::writing_map_key /
	// MapSerializer::serialize_key's save-then-restore in ser.rs.
	writingMapKey bool
}

func (m *marshaler) rejectIfWritingMapKey() error {
	if m.writingMapKey {
		return &TypeError{typ: "non-bytes map key"}
	}
	return nil
}

func (m *marshaler) encode(rv reflect.Value) error {
	if !rv.IsValid() {
		return &TypeError{typ: "nil"}
	}
	if rv.Type() == valueType {
		if err := m.rejectIfWritingMapKey(); err != nil {
			return err
		}
		return m.enc.encodeValue(rv.Interface().(Value))
	}

	switch rv.Kind() {
	case reflect.Bool:
		return &TypeError{typ: "bool"}
	case reflect.Float32, reflect.Float64:
		return &TypeError{typ: "float"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if err := m.rejectIfWritingMapKey(); err != nil {
			return err
		}
		return m.enc.writeInt(rv.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint:
		if err := m.rejectIfWritingMapKey(); err != nil {
			return err
		}
		return m.enc.writeInt(int64(rv.Uint()))
	case reflect.Uint64:
		return &TypeError{typ: "uint64"}
	case reflect.String:
		return m.encodeBytes([]byte(rv.String()))
	case reflect.Array, reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return m.encodeByteSlice(rv)
		}
		return m.encodeList(rv)
	case reflect.Map:
		return m.encodeMap(rv)
	case reflect.Struct:
		return m.encodeStruct(rv)
	case reflect.Interface, reflect.Ptr:
		if rv.IsNil() {
			return &TypeError{typ: "nil"}
		}
		return m.encode(rv.Elem())
	default:
		return &TypeError{typ: rv.Kind().String()}
	}
}

func (m *marshaler) encodeBytes(b []byte) error {
	if err := m.rejectIfWritingMapKey(); err != nil {
		return err
	}
	return m.enc.writeString(b)
}

func (m *marshaler) encodeByteSlice(rv reflect.Value) error {
	return m.encodeBytes(bytesOf(rv))
}

// bytesOf returns rv's contents as a []byte, copying out of an array since
// reflect.Value has no direct array-to-slice view.
func bytesOf(rv reflect.Value) []byte {
	if rv.Kind() == reflect.Array {
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return b
	}
	return rv.Bytes()
}

func (m *marshaler) encodeList(rv reflect.Value) error {
	if err := m.rejectIfWritingMapKey(); err != nil {
		return err
	}
	if err := m.enc.writeByte('l'); err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := m.encode(rv.Index(i)); err != nil {
			return err
		}
	}
	return m.enc.writeByte('e')
}

func (m *marshaler) encodeMap(rv reflect.Value) error {
	if err := m.rejectIfWritingMapKey(); err != nil {
		return err
	}
	if err := m.enc.writeByte('d'); err != nil {
		return err
	}

	for _, k := range rv.MapKeys() {
		if err := m.encodeKey(k); err != nil {
			return err
		}
		if err := m.encode(rv.MapIndex(k)); err != nil {
			return err
		}
	}
	return m.enc.writeByte('e')
}

// encodeKey serializes a map/struct key, saving and restoring
// writingMapKey around the call.
func (m *marshaler) encodeKey(rv reflect.Value) error {
	prev := m.writingMapKey
	m.writingMapKey = true
	err := m.encodeKeyValue(rv)
	m.writingMapKey = prev
	return err
}

// encodeKeyValue writes the key itself, bypassing rejectIfWritingMapKey
// for the shapes bencode permits as keys (strings and byte slices/arrays);
// rejectIfWritingMapKey in the other encode* methods is what actually
// enforces the restriction for every other shape.
func (m *marshaler) encodeKeyValue(rv reflect.Value) error {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return m.enc.writeString([]byte(rv.String()))
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return m.enc.writeString(bytesOf(rv))
		}
	}
	return &TypeError{typ: "non-bytes map key"}
}

func (m *marshaler) encodeStruct(rv reflect.Value) error {
	if err := m.rejectIfWritingMapKey(); err != nil {
		return err
	}

	info := structInfoFor(rv.Type())

	if err := m.enc.writeByte('d'); err != nil {
		return err
	}
	for _, f := range info.fields {
		fv := rv.Field(f.index)
		if f.omitempty && fv.IsZero() {
			continue
		}
		if err := m.enc.writeString([]byte(f.name)); err != nil {
			return err
		}
		if err := m.encode(fv); err != nil {
			return err
		}
	}
	return m.enc.writeByte('e')
}

// parseTag reads a field's `bencode:"name,omitempty"` tag, falling back to
// the field's Go name. A tag of "-" skips the field.
func parseTag(sf reflect.StructField) (name string, omitempty bool, skip bool) {
	tag := sf.Tag.Get("bencode")
	if tag == "-" {
		return "", false, true
	}
	if tag == "" {
		return sf.Name, false, false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = sf.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty, false
}
