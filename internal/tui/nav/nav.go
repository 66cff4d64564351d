// Package nav holds the stack of views the interface is composed of.
//
// The bottom frame is always the browser. Editors are pushed on top of it and
// confirmation dialogs on top of either. Only the top frame receives input.
package nav

import (
	"errors"

	"github.com/Paintersrp/kb/internal/tui/browser"
	"github.com/Paintersrp/kb/internal/tui/editor"
)

var ErrLastFrame = errors.New("cannot pop the last frame")

// Frame is one of *BrowserFrame, *EditorFrame or *DialogFrame.
type Frame interface {
	frame()
}

type BrowserFrame struct {
	Browser *browser.State
}

// EditorFrame edits a new entry, or the one stored at Source.
type EditorFrame struct {
	Editor *editor.Editor
	Source string
}

type DialogFrame struct {
	Prompt  string
	Choice  Choice
	Pending Command
}

func (*BrowserFrame) frame() {}
func (*EditorFrame) frame()  {}
func (*DialogFrame) frame()  {}

// NewDialog returns a dialog asking to confirm cmd, preselecting the choice
// that suits it.
func NewDialog(cmd Command) *DialogFrame {
	return &DialogFrame{
		Prompt:  cmd.Describe(),
		Choice:  DefaultChoice(cmd),
		Pending: cmd,
	}
}

type Stack struct {
	frames []Frame
}

func New(root Frame) *Stack {
	return &Stack{frames: []Frame{root}}
}

func (s *Stack) Push(f Frame) {
	s.frames = append(s.frames, f)
}

// Pop removes the top frame. The last frame is never removed; ErrLastFrame
// is returned instead and the stack is left as it was.
func (s *Stack) Pop() (Frame, error) {
	if len(s.frames) <= 1 {
		return nil, ErrLastFrame
	}

	top := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return top, nil
}

func (s *Stack) Top() Frame {
	return s.frames[len(s.frames)-1]
}

// Beneath returns the frame under the top one, used to draw behind dialogs.
func (s *Stack) Beneath() (Frame, bool) {
	if len(s.frames) < 2 {
		return nil, false
	}
	return s.frames[len(s.frames)-2], true
}

func (s *Stack) Len() int {
	return len(s.frames)
}

// Browser returns the browser frame at the bottom of the stack.
func (s *Stack) Browser() (*BrowserFrame, bool) {
	f, ok := s.frames[0].(*BrowserFrame)
	return f, ok
}

// TopEditor returns the highest editor frame on the stack.
func (s *Stack) TopEditor() (*EditorFrame, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if f, ok := s.frames[i].(*EditorFrame); ok {
			return f, true
		}
	}
	return nil, false
}
