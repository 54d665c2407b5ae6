package bencode

import "testing"

type torrentInfo struct {
	Name        string `bencode:"name"`
	PieceLength int64  `bencode:"piece length"`
	Pieces      []byte `bencode:"pieces"`
	Private     int    `bencode:"private,omitempty"`
}

func TestMarshalStruct(t *testing.T) {
	info := torrentInfo{Name: "ubuntu.iso", PieceLength: 262144, Pieces: []byte("abcd")}
	data, err := Marshal(info)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "d4:name10:ubuntu.iso12:piece lengthi262144e6:pieces4:abcde"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestMarshalOmitsEmptyField(t *testing.T) {
	info := torrentInfo{Name: "x", PieceLength: 1, Pieces: []byte("a")}
	data, err := Marshal(info)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := "d4:name1:x12:piece lengthi1e6:pieces1:ae"; string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestMarshalRejectsBool(t *testing.T) {
	if _, err := Marshal(true); err == nil {
		t.Error("expected bool to be rejected")
	}
}

func TestMarshalRejectsFloat(t *testing.T) {
	if _, err := Marshal(3.14); err == nil {
		t.Error("expected float to be rejected")
	}
}

func TestMarshalRejectsNonBytesMapKey(t *testing.T) {
	if _, err := Marshal(map[int]string{1: "a"}); err == nil {
		t.Error("expected non-string map key to be rejected")
	}
}

func TestMarshalAcceptsByteArrayMapKey(t *testing.T) {
	m := map[[4]byte]string{{'s', 'p', 'a', 'm'}: "eggs"}
	data, err := Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := "d4:spam4:eggse"; string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestMarshalList(t *testing.T) {
	data, err := Marshal([]string{"spam", "eggs"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := "l4:spam4:eggse"; string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestMarshalValueStreamsDirectly(t *testing.T) {
	v := IntValue(5)
	data, err := Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "i5e" {
		t.Errorf("got %q, want %q", data, "i5e")
	}
}
