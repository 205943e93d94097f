package dirview

// Cursor tracks the focused row of a list of total rows and the first row
// shown by the last draw. All moves are no-ops on an empty list.
type Cursor struct {
	focus       int
	windowStart int
	total       int
}

func NewCursor(total int) *Cursor {
	if total < 0 {
		total = 0
	}
	return &Cursor{total: total}
}

func (c *Cursor) Total() int       { return c.total }
func (c *Cursor) Focus() int       { return c.focus }
func (c *Cursor) WindowStart() int { return c.windowStart }

// MoveBy moves focus by delta rows, clamped to [0, total-1]. It never wraps.
func (c *Cursor) MoveBy(delta int) {
	c.SetFocus(c.focus + delta)
}

func (c *Cursor) MoveToStart() {
	c.SetFocus(0)
}

func (c *Cursor) MoveToEnd() {
	c.SetFocus(c.total - 1)
}

// SetFocus focuses row i, clamped to [0, total-1].
func (c *Cursor) SetFocus(i int) {
	if c.total == 0 {
		c.focus = 0
		return
	}
	c.focus = max(0, min(i, c.total-1))
}

// Window returns the first row to show in a viewport of height rows,
// scrolling as little as possible from the last committed window. The
// window never starts so low that rows above it stay hidden while the
// viewport has blank rows below the last entry.
func (c *Cursor) Window(height int) int {
	start := c.windowStart
	if height < 1 {
		return start
	}
	switch {
	case c.focus < start:
		start = c.focus
	case c.focus > start+height-1:
		start = c.focus - height + 1
	}
	return max(min(start, c.total-height), 0)
}

// CommitWindow records the window a draw actually used.
func (c *Cursor) CommitWindow(start int) {
	c.windowStart = max(start, 0)
}
