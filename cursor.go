package bencode

import "bytes"

// cursor walks over a byte slice without copying it, handing out sub-slices
// that alias the original backing array.
//
// Grounded on the take_until/take_n/bump/peek primitives of the reference
// parser; takeUntil uses bytes.IndexByte for the vectorized search the
// design calls for.
type cursor struct {
	data []byte
	pos  int // offset of data[0] in the original input, for error reporting
}

func newCursor(data []byte) cursor {
	return cursor{data: data}
}

func (c *cursor) isDone() bool {
	return len(c.data) == 0
}

func (c *cursor) peek() (byte, bool) {
	if len(c.data) == 0 {
		return 0, false
	}
	return c.data[0], true
}

// takeUntil returns the bytes before the next occurrence of b, and advances
// past (but not including) b.
func (c *cursor) takeUntil(b byte) ([]byte, error) {
	i := bytes.IndexByte(c.data, b)
	if i < 0 {
		return nil, &ParseError{Kind: ErrExpectedByte, Pos: c.pos, Want: b}
	}
	head := c.data[:i]
	c.advance(i)
	return head, nil
}

func (c *cursor) takeN(n int) ([]byte, error) {
	if n < 0 || n > len(c.data) {
		return nil, &ParseError{Kind: ErrUnexpectedEnd, Pos: c.pos}
	}
	head := c.data[:n]
	c.advance(n)
	return head, nil
}

func (c *cursor) bump() (byte, error) {
	if len(c.data) == 0 {
		return 0, &ParseError{Kind: ErrUnexpectedEnd, Pos: c.pos}
	}
	b := c.data[0]
	c.advance(1)
	return b, nil
}

// bumpAssert advances one byte, asserting the caller already checked it's
// there via peek. Mirrors the reference parser's bump_assert.
func (c *cursor) bumpAssert() {
	_, err := c.bump()
	if err != nil {
		panic("bencode: bumpAssert on empty cursor")
	}
}

func (c *cursor) advance(n int) {
	c.data = c.data[n:]
	c.pos += n
}
