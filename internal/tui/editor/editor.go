// Package editor composes the title, tags and body buffers used to write a
// knowledge entry and maps key presses onto them.
package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kb/internal/knowledge"
	"github.com/Paintersrp/kb/internal/tui/textarea"
	"github.com/Paintersrp/kb/utils"
)

type Field int

const (
	FieldTitle Field = iota
	FieldTags
	FieldBody
	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldTags:
		return "Tags"
	case FieldBody:
		return "Body"
	default:
		return ""
	}
}

// Intent is what a key press asks of the frame owning the editor.
type Intent int

const (
	IntentNone Intent = iota
	IntentCommit
	IntentCancel
)

type Editor struct {
	buffers     [fieldCount]*textarea.Buffer
	focus       utils.Cycle
	description string
	keys        KeyMap
}

func New() *Editor {
	e := &Editor{
		focus: utils.NewCycle(int(fieldCount)),
		keys:  DefaultKeyMap(),
	}
	for i := range e.buffers {
		e.buffers[i] = textarea.New()
	}
	return e
}

// Load prefills the buffers from entry and focuses the title.
func (e *Editor) Load(entry knowledge.Entry) {
	e.buffers[FieldTitle].SetValue(entry.Title)
	e.buffers[FieldTags].SetValue(strings.Join(entry.Tags, ", "))
	e.buffers[FieldBody].SetValue(entry.Text)
	e.description = entry.Description
	e.focus.Set(int(FieldTitle))
}

func (e *Editor) Reset() {
	for _, b := range e.buffers {
		b.Reset()
	}
	e.description = ""
	e.focus.Set(int(FieldTitle))
}

// Entry builds the entry described by the buffers. The description of a
// loaded entry is carried over unchanged.
func (e *Editor) Entry() knowledge.Entry {
	return knowledge.Entry{
		Title:       strings.TrimSpace(e.buffers[FieldTitle].Value()),
		Description: e.description,
		Tags:        knowledge.ParseTags(e.buffers[FieldTags].Value()),
		Text:        e.buffers[FieldBody].Value(),
	}
}

func (e *Editor) Focus() Field {
	idx, _ := e.focus.Current()
	return Field(idx)
}

func (e *Editor) SetFocus(f Field) {
	e.focus.Set(int(f))
}

func (e *Editor) Buffer(f Field) *textarea.Buffer {
	return e.buffers[f]
}

func (e *Editor) Keys() KeyMap {
	return e.keys
}

func (e *Editor) focused() *textarea.Buffer {
	return e.buffers[e.Focus()]
}

// HandleKey applies msg to the focused buffer. Commit and cancel chords are
// not applied; they are returned for the owning frame to act on.
func (e *Editor) HandleKey(msg tea.KeyMsg) Intent {
	b := e.focused()

	switch {
	case key.Matches(msg, e.keys.Commit):
		return IntentCommit
	case key.Matches(msg, e.keys.Cancel):
		return IntentCancel
	case key.Matches(msg, e.keys.NextField):
		e.focus.Next()
	case key.Matches(msg, e.keys.PrevField):
		e.focus.Prev()
	case key.Matches(msg, e.keys.NewLine):
		if e.Focus() == FieldBody {
			b.NewLine()
		} else {
			e.focus.Next()
		}
	case key.Matches(msg, e.keys.TopHome):
		b.TopHome()
	case key.Matches(msg, e.keys.BottomEnd):
		b.BottomEnd()
	case key.Matches(msg, e.keys.LeftWord):
		b.MoveLeftWord()
	case key.Matches(msg, e.keys.RightWord):
		b.MoveRightWord()
	case key.Matches(msg, e.keys.BackspaceWord):
		b.BackspaceWord()
	case key.Matches(msg, e.keys.DeleteWord):
		b.DeleteWord()
	case key.Matches(msg, e.keys.Left):
		b.MoveLeft()
	case key.Matches(msg, e.keys.Right):
		b.MoveRight()
	case key.Matches(msg, e.keys.Up):
		b.MoveUp()
	case key.Matches(msg, e.keys.Down):
		b.MoveDown()
	case key.Matches(msg, e.keys.Home):
		b.Home()
	case key.Matches(msg, e.keys.End):
		b.End()
	case key.Matches(msg, e.keys.Backspace):
		b.Backspace()
	case key.Matches(msg, e.keys.Delete):
		b.Delete()
	case msg.Type == tea.KeySpace:
		b.Insert(' ')
	case msg.Type == tea.KeyRunes && !msg.Alt:
		e.insertRunes(b, msg.Runes)
	}

	return IntentNone
}

// insertRunes types runes into b. Title and tags stay on a single row.
func (e *Editor) insertRunes(b *textarea.Buffer, runes []rune) {
	text := string(runes)
	if e.Focus() != FieldBody {
		text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	}
	b.InsertString(text)
}
