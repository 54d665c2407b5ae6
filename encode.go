package bencode

import (
	"bytes"
	"io"
	"strconv"
)

// Encoder writes bencoded values to an output stream. It never sorts
// dictionary keys or validates them for canonical order - callers that
// need canonical output call [Map.Canonicalize] before encoding. A thin
// wrapper emitting directly to an io.Writer, grounded on the reference
// encode module's encode_string/encode_integer/encode_list_begin/
// encode_dict_begin free functions.
type Encoder struct {
	w   io.Writer
	buf []byte // scratch buffer reused across emits
}

// NewEncoder returns an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the bencoding of v to the underlying writer.
func (e *Encoder) Encode(v Value) error {
	return e.encodeValue(v)
}

// EncodeElements writes the bencoding of an already-linearized token
// stream directly, without reconstructing a Value tree first. Grounded on
// the reference IterWrap/Elements::serialize streaming path.
func (e *Encoder) EncodeElements(es Elements) error {
	d := elementsDrain{elements: es.Raw()}
	return e.encodeFromDrain(&d)
}

func (e *Encoder) encodeValue(v Value) error {
	switch v.kind {
	case KindBytes:
		return e.writeString(v.b)
	case KindInt:
		return e.writeInt(v.i)
	case KindList:
		if err := e.writeByte('l'); err != nil {
			return err
		}
		for _, child := range v.list {
			if err := e.encodeValue(child); err != nil {
				return err
			}
		}
		return e.writeByte('e')
	case KindDict:
		if err := e.writeByte('d'); err != nil {
			return err
		}
		for _, ent := range v.dict.entries {
			if err := e.writeString(ent.Key); err != nil {
				return err
			}
			if err := e.encodeValue(ent.Value); err != nil {
				return err
			}
		}
		return e.writeByte('e')
	default:
		return &TypeError{typ: "invalid Value kind"}
	}
}

func (e *Encoder) encodeFromDrain(d *elementsDrain) error {
	if d.pos >= len(d.elements) {
		return nil
	}
	el := d.elements[d.pos]
	d.pos++

	switch el.Kind {
	case ElemBytes:
		return e.writeString(el.Bytes)
	case ElemInt:
		return e.writeInt(el.Int)
	case ElemListBegin:
		if err := e.writeByte('l'); err != nil {
			return err
		}
		for i := 0; i < el.N; i++ {
			if err := e.encodeFromDrain(d); err != nil {
				return err
			}
		}
		return e.writeByte('e')
	case ElemDictBegin:
		if err := e.writeByte('d'); err != nil {
			return err
		}
		for i := 0; i < el.N; i++ {
			if err := e.encodeFromDrain(d); err != nil { // key
				return err
			}
			if err := e.encodeFromDrain(d); err != nil { // value
				return err
			}
		}
		return e.writeByte('e')
	default:
		return &TypeError{typ: "invalid element kind"}
	}
}

func (e *Encoder) writeByte(b byte) error {
	_, err := e.w.Write([]byte{b})
	return err
}

func (e *Encoder) writeString(b []byte) error {
	e.buf = strconv.AppendInt(e.buf[:0], int64(len(b)), 10)
	e.buf = append(e.buf, ':')
	if _, err := e.w.Write(e.buf); err != nil {
		return err
	}
	_, err := e.w.Write(b)
	return err
}

func (e *Encoder) writeInt(i int64) error {
	e.buf = append(e.buf[:0], 'i')
	e.buf = strconv.AppendInt(e.buf, i, 10)
	e.buf = append(e.buf, 'e')
	_, err := e.w.Write(e.buf)
	return err
}

// MarshalValue encodes a [Value] tree to a new byte slice.
func MarshalValue(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalElements encodes an already-linearized token stream to a new byte
// slice.
func MarshalElements(es Elements) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).EncodeElements(es); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
