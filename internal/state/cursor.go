package state

import "fmt"

// Cursor selects the active star by index and wraps at both ends.
type Cursor struct {
	index int
}

// Next advances to the following star, wrapping to the first.
// It is a no-op when there are no stars.
func (c *Cursor) Next(n int) bool {
	if n <= 0 {
		return false
	}
	c.index = (c.index + 1) % n
	return true
}

// Previous moves to the preceding star, wrapping to the last.
// It is a no-op when there are no stars.
func (c *Cursor) Previous(n int) bool {
	if n <= 0 {
		return false
	}
	c.index = (c.index - 1 + n) % n
	return true
}

// Index returns the active index.
func (c *Cursor) Index() int {
	return c.index
}

// Reset returns the cursor to the first star.
func (c *Cursor) Reset() {
	c.index = 0
}

// Label renders the cursor as "index/total", one-based.
func (c *Cursor) Label(n int) string {
	if n <= 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", c.index+1, n)
}
