package utils

// Cycle is a wrap-around cursor over a sequence of Len items.
// A zero-length Cycle has no selection and Next/Prev leave it untouched.
type Cycle struct {
	len     int
	current int
}

func NewCycle(length int) Cycle {
	if length < 0 {
		length = 0
	}
	return Cycle{len: length}
}

func (c *Cycle) Len() int {
	return c.len
}

// Current returns the selected index and false when the cycle is empty.
func (c *Cycle) Current() (int, bool) {
	if c.len == 0 {
		return 0, false
	}
	return c.current, true
}

func (c *Cycle) Next() (int, bool) {
	if c.len == 0 {
		return 0, false
	}
	c.current = (c.current + 1) % c.len
	return c.current, true
}

func (c *Cycle) Prev() (int, bool) {
	if c.len == 0 {
		return 0, false
	}
	c.current = (c.current - 1 + c.len) % c.len
	return c.current, true
}

// Set selects idx, clamping it into range. It is a no-op on an empty cycle.
func (c *Cycle) Set(idx int) {
	if c.len == 0 {
		return
	}
	switch {
	case idx < 0:
		idx = 0
	case idx >= c.len:
		idx = c.len - 1
	}
	c.current = idx
}
