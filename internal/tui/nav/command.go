package nav

import (
	"fmt"
	"path/filepath"

	"github.com/Paintersrp/kb/internal/knowledge"
)

// Command is the action a dialog performs once confirmed. The set of
// commands is closed; the controller interprets them.
type Command interface {
	Describe() string
	command()
}

// SaveEntry writes Entry, replacing the file at Source when set.
type SaveEntry struct {
	Entry  knowledge.Entry
	Source string
}

// DiscardEdit closes the editor without writing.
type DiscardEdit struct{}

type DeleteFile struct {
	Path string
}

type DeleteDirectory struct {
	Path string
}

func (c SaveEntry) Describe() string {
	if c.Source != "" {
		return fmt.Sprintf("Save changes to %q?", c.Entry.Title)
	}
	return fmt.Sprintf("Save new entry %q?", c.Entry.Title)
}

func (DiscardEdit) Describe() string {
	return "Discard unsaved changes?"
}

func (c DeleteFile) Describe() string {
	return fmt.Sprintf("Delete file %s?", filepath.Base(c.Path))
}

func (c DeleteDirectory) Describe() string {
	return fmt.Sprintf("Delete directory %s and everything in it?", filepath.Base(c.Path))
}

func (SaveEntry) command()       {}
func (DiscardEdit) command()     {}
func (DeleteFile) command()      {}
func (DeleteDirectory) command() {}

type Choice int

const (
	Yes Choice = iota
	No
)

func (c Choice) String() string {
	if c == Yes {
		return "Yes"
	}
	return "No"
}

func (c Choice) Toggle() Choice {
	if c == Yes {
		return No
	}
	return Yes
}

// DefaultChoice preselects Yes for saving and No for anything destructive.
func DefaultChoice(cmd Command) Choice {
	if _, ok := cmd.(SaveEntry); ok {
		return Yes
	}
	return No
}
