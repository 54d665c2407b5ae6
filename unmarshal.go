package bencode

import (
	"fmt"
	"reflect"
)

// Unmarshal parses bencoded data and stores the result in v, which must be
// a non-nil pointer.
//
// v may be *[Value] or *[Elements], in which case the decoded tree/stream
// is stored directly. Otherwise the parsed [Value] tree is walked and
// bound into v by reflection: *int64 and smaller signed-int kinds
// (range-checked), *[Bytes]/*[]byte, *string (best-effort UTF-8), slices,
// maps whose key kind is string, and structs matched by `bencode` tag or
// field name.
func Unmarshal(data []byte, v any) error {
	switch vv := v.(type) {
	case *Elements:
		es, err := Parse(data)
		if err != nil {
			return err
		}
		*vv = es
		return nil
	case *Value:
		es, err := Parse(data)
		if err != nil {
			return err
		}
		val, err := es.IntoValue()
		if err != nil {
			return err
		}
		*vv = val
		return nil
	}

	es, err := Parse(data)
	if err != nil {
		return err
	}
	val, err := es.IntoValue()
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("bencode: Unmarshal needs a non-nil pointer, got %T", v)
	}
	return bindValue(val, rv.Elem())
}

var valueType = reflect.TypeOf(Value{})

func bindValue(val Value, rv reflect.Value) error {
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return bindValue(val, rv.Elem())
	}
	if rv.Type() == valueType {
		rv.Set(reflect.ValueOf(val))
		return nil
	}
	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		return bindToEmptyInterface(val, rv)
	}

	switch val.kind {
	case KindInt:
		return bindInt(val.i, rv)
	case KindBytes:
		return bindBytes(val.b, rv)
	case KindList:
		return bindList(val.list, rv)
	case KindDict:
		return bindDict(val.dict, rv)
	default:
		return fmt.Errorf("bencode: invalid Value kind")
	}
}

func bindInt(i int64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(i) {
			return fmt.Errorf("bencode: int %d overflows %s", i, rv.Type())
		}
		rv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return fmt.Errorf("bencode: int %d overflows %s", i, rv.Type())
		}
		rv.SetUint(uint64(i))
		return nil
	default:
		return fmt.Errorf("bencode: cannot bind int into %s", rv.Type())
	}
}

func bindBytes(b Bytes, rv reflect.Value) error {
	switch {
	case rv.Kind() == reflect.String:
		rv.SetString(string(b))
		return nil
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
		cp := make([]byte, len(b))
		copy(cp, b)
		rv.SetBytes(cp)
		return nil
	case rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8:
		if rv.Len() != len(b) {
			return fmt.Errorf("bencode: byte string length %d does not match array length %d", len(b), rv.Len())
		}
		reflect.Copy(rv, reflect.ValueOf([]byte(b)))
		return nil
	default:
		return fmt.Errorf("bencode: cannot bind byte string into %s", rv.Type())
	}
}

func bindList(list []Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), len(list), len(list))
		for i, child := range list {
			if err := bindValue(child, out.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		if rv.Len() != len(list) {
			return fmt.Errorf("bencode: list length %d does not match array length %d", len(list), rv.Len())
		}
		for i, child := range list {
			if err := bindValue(child, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("bencode: cannot bind list into %s", rv.Type())
	}
}

func bindDict(d Map[Value], rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Struct:
		info := structInfoFor(rv.Type())
		for _, e := range d.entries {
			idx, ok := info.byName[string(e.Key)]
			if !ok {
				continue // unknown field: ignore, as encoding/json does
			}
			f := info.fields[idx]
			if err := bindValue(e.Value, rv.Field(f.index)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return fmt.Errorf("bencode: cannot bind dict into map with %s keys", kt)
		}
		out := reflect.MakeMapWithSize(rv.Type(), d.Len())
		vt := rv.Type().Elem()
		for _, e := range d.entries {
			ev := reflect.New(vt).Elem()
			if err := bindValue(e.Value, ev); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(string(e.Key)).Convert(kt), ev)
		}
		rv.Set(out)
		return nil
	default:
		return fmt.Errorf("bencode: cannot bind dict into %s", rv.Type())
	}
}

// bindToEmptyInterface is used when the destination is `any`: it produces
// the natural Go type for each bencode shape (int64, Bytes, []any,
// map[string]any) rather than requiring the caller to pre-declare a shape.
func bindToEmptyInterface(val Value, rv reflect.Value) error {
	switch val.kind {
	case KindInt:
		rv.Set(reflect.ValueOf(val.i))
	case KindBytes:
		rv.Set(reflect.ValueOf(val.b))
	case KindList:
		out := make([]any, len(val.list))
		for i, child := range val.list {
			cv := reflect.New(reflect.TypeOf((*any)(nil)).Elem()).Elem()
			if err := bindValue(child, cv); err != nil {
				return err
			}
			out[i] = cv.Interface()
		}
		rv.Set(reflect.ValueOf(out))
	case KindDict:
		out := make(map[string]any, val.dict.Len())
		for _, e := range val.dict.entries {
			cv := reflect.New(reflect.TypeOf((*any)(nil)).Elem()).Elem()
			if err := bindValue(e.Value, cv); err != nil {
				return err
			}
			out[string(e.Key)] = cv.Interface()
		}
		rv.Set(reflect.ValueOf(out))
	default:
		return fmt.Errorf("bencode: invalid Value kind")
	}
	return nil
}
