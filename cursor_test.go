package bencode

import "testing"

func TestCursorTakeUntil(t *testing.T) {
	c := newCursor([]byte("4:spam"))
	head, err := c.takeUntil(':')
	if err != nil {
		t.Fatalf("takeUntil: %v", err)
	}
	if string(head) != "4" {
		t.Errorf("got %q, want %q", head, "4")
	}
	b, _ := c.peek()
	if b != ':' {
		t.Errorf("cursor did not stop before delimiter, got %q", b)
	}
}

func TestCursorTakeUntilMissing(t *testing.T) {
	c := newCursor([]byte("nodelimiter"))
	if _, err := c.takeUntil(':'); err == nil {
		t.Error("expected error when delimiter is absent")
	}
}

func TestCursorTakeN(t *testing.T) {
	c := newCursor([]byte("spam eggs"))
	got, err := c.takeN(4)
	if err != nil {
		t.Fatalf("takeN: %v", err)
	}
	if string(got) != "spam" {
		t.Errorf("got %q, want %q", got, "spam")
	}
}

func TestCursorTakeNPastEnd(t *testing.T) {
	c := newCursor([]byte("ab"))
	if _, err := c.takeN(5); err == nil {
		t.Error("expected error when taking past end of input")
	}
}

func TestCursorIsDone(t *testing.T) {
	c := newCursor(nil)
	if !c.isDone() {
		t.Error("expected empty cursor to be done")
	}
}
