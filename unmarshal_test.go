package bencode

import (
	"reflect"
	"testing"
)

func TestUnmarshalStruct(t *testing.T) {
	data := []byte("d4:name10:ubuntu.iso12:piece lengthi262144e6:pieces4:abcde")
	var info torrentInfo
	if err := Unmarshal(data, &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := torrentInfo{Name: "ubuntu.iso", PieceLength: 262144, Pieces: []byte("abcd")}
	if info.Name != want.Name || info.PieceLength != want.PieceLength || string(info.Pieces) != string(want.Pieces) {
		t.Errorf("got %+v, want %+v", info, want)
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	data := []byte("d4:name1:x7:unknowni1ee")
	var info torrentInfo
	if err := Unmarshal(data, &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.Name != "x" {
		t.Errorf("got name %q, want %q", info.Name, "x")
	}
}

func TestUnmarshalList(t *testing.T) {
	var out []string
	if err := Unmarshal([]byte("l4:spam4:eggse"), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if want := []string{"spam", "eggs"}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestUnmarshalMap(t *testing.T) {
	var out map[string]int64
	if err := Unmarshal([]byte("d3:onei1e3:twoi2ee"), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]int64{"one": 1, "two": 2}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestUnmarshalIntOverflow(t *testing.T) {
	var out int8
	if err := Unmarshal([]byte("i1000e"), &out); err == nil {
		t.Error("expected overflow error")
	}
}

func TestUnmarshalIntoEmptyInterface(t *testing.T) {
	var out any
	if err := Unmarshal([]byte("d3:cow3:mooe"), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want map[string]any", out)
	}
	b, ok := m["cow"].(Bytes)
	if !ok || string(b) != "moo" {
		t.Errorf("got %#v, want Bytes(\"moo\")", m["cow"])
	}
}

func TestUnmarshalValue(t *testing.T) {
	var v Value
	if err := Unmarshal([]byte("i7e"), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if i, ok := v.AsInt(); !ok || i != 7 {
		t.Errorf("got %#v, want IntValue(7)", v)
	}
}

func TestUnmarshalElements(t *testing.T) {
	var es Elements
	if err := Unmarshal([]byte("l1:a1:be"), &es); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if es.Len() != 3 {
		t.Errorf("got %d elements, want 3", es.Len())
	}
}
