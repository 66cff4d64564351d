// Package textarea holds the multi-line text buffer behind the entry editor.
//
// A Buffer always has at least one line and its cursor always sits on an
// existing row at a column between 0 and the row length inclusive. Every
// operation preserves that invariant; operations that cannot apply at the
// cursor's position are no-ops.
package textarea

import (
	"strings"
	"unicode"
)

type Buffer struct {
	lines [][]rune
	row   int
	col   int
}

func New() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// SetValue replaces the content and puts the cursor at the end of it.
func (b *Buffer) SetValue(s string) {
	parts := strings.Split(s, "\n")
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.BottomEnd()
}

func (b *Buffer) Value() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Lines returns a copy of the buffer's rows.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// Cursor returns the cursor's row and column.
func (b *Buffer) Cursor() (int, int) {
	return b.row, b.col
}

func (b *Buffer) Reset() {
	b.lines = [][]rune{{}}
	b.row, b.col = 0, 0
}

func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

func (b *Buffer) line() []rune {
	return b.lines[b.row]
}

func (b *Buffer) Insert(r rune) {
	if r == '\n' {
		b.NewLine()
		return
	}

	l := b.line()
	l = append(l[:b.col], append([]rune{r}, l[b.col:]...)...)
	b.lines[b.row] = l
	b.col++
}

// InsertString inserts s at the cursor, splitting rows on newlines.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		if r == '\r' {
			continue
		}
		b.Insert(r)
	}
}

// Backspace removes the rune before the cursor. At the start of a row the row
// is joined onto the previous one.
func (b *Buffer) Backspace() {
	switch {
	case b.col > 0:
		l := b.line()
		b.lines[b.row] = append(l[:b.col-1], l[b.col:]...)
		b.col--
	case b.row > 0:
		prev := b.lines[b.row-1]
		joinAt := len(prev)
		b.lines[b.row-1] = append(prev, b.line()...)
		b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
		b.row--
		b.col = joinAt
	}
}

// Delete removes the rune under the cursor. Unlike Backspace it never joins
// rows: at the end of a row it does nothing.
func (b *Buffer) Delete() {
	l := b.line()
	if b.col < len(l) {
		b.lines[b.row] = append(l[:b.col], l[b.col+1:]...)
	}
}

func (b *Buffer) MoveLeft() {
	switch {
	case b.col > 0:
		b.col--
	case b.row > 0:
		b.row--
		b.col = len(b.line())
	}
}

func (b *Buffer) MoveRight() {
	switch {
	case b.col < len(b.line()):
		b.col++
	case b.row < len(b.lines)-1:
		b.row++
		b.col = 0
	}
}

func (b *Buffer) MoveUp() {
	if b.row == 0 {
		return
	}
	b.row--
	b.clampCol()
}

func (b *Buffer) MoveDown() {
	if b.row >= len(b.lines)-1 {
		return
	}
	b.row++
	b.clampCol()
}

func (b *Buffer) clampCol() {
	if n := len(b.line()); b.col > n {
		b.col = n
	}
}

// NewLine splits the current row at the cursor and moves to the start of the
// new row.
func (b *Buffer) NewLine() {
	l := b.line()
	head := append([]rune(nil), l[:b.col]...)
	tail := append([]rune(nil), l[b.col:]...)

	b.lines[b.row] = head
	b.lines = append(b.lines[:b.row+1], append([][]rune{tail}, b.lines[b.row+1:]...)...)
	b.row++
	b.col = 0
}

func (b *Buffer) Home() {
	b.col = 0
}

func (b *Buffer) End() {
	b.col = len(b.line())
}

func (b *Buffer) TopHome() {
	b.row, b.col = 0, 0
}

func (b *Buffer) BottomEnd() {
	b.row = len(b.lines) - 1
	b.col = len(b.line())
}

// Word operations treat a word as a maximal run of runes that are all
// whitespace or all non-whitespace. None of them crosses a row boundary.

func (b *Buffer) wordStart() int {
	l := b.line()
	if b.col == 0 {
		return 0
	}
	space := unicode.IsSpace(l[b.col-1])
	i := b.col - 1
	for i > 0 && unicode.IsSpace(l[i-1]) == space {
		i--
	}
	return i
}

func (b *Buffer) wordEnd() int {
	l := b.line()
	if b.col >= len(l) {
		return len(l)
	}
	space := unicode.IsSpace(l[b.col])
	i := b.col + 1
	for i < len(l) && unicode.IsSpace(l[i]) == space {
		i++
	}
	return i
}

func (b *Buffer) BackspaceWord() {
	start := b.wordStart()
	l := b.line()
	b.lines[b.row] = append(l[:start], l[b.col:]...)
	b.col = start
}

func (b *Buffer) DeleteWord() {
	end := b.wordEnd()
	l := b.line()
	b.lines[b.row] = append(l[:b.col], l[end:]...)
}

func (b *Buffer) MoveLeftWord() {
	b.col = b.wordStart()
}

func (b *Buffer) MoveRightWord() {
	b.col = b.wordEnd()
}
