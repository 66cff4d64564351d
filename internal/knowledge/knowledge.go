// Package knowledge parses and serializes knowledge entries to and from their
// flat-text on-disk representation.
package knowledge

import (
	"errors"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Paintersrp/kb/utils"
)

const (
	TitleHeader       = "# Title:"
	DescriptionHeader = "# Descriptions:"
	TagsHeader        = "# Tags:"
)

var ErrNoTitle = errors.New("entry has no title")

// Entry is a single knowledge entry backed by one file.
type Entry struct {
	Title       string
	Description string
	Tags        []string
	Text        string

	// Path is the file the entry was read from. Empty for unsaved entries.
	Path string
}

// Validate reports whether the entry can be written to disk under its title.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrNoTitle
	}

	return validation.ValidateStruct(&e,
		validation.Field(&e.Title,
			validation.By(noPathSeparators),
			validation.By(notDotName),
			validation.By(singleLine),
		),
		validation.Field(&e.Description, validation.By(singleLine)),
	)
}

// Filename returns the on-disk name of the entry for the given extension.
func (e Entry) Filename(ext string) string {
	return e.Title + "." + strings.TrimPrefix(ext, ".")
}

func noPathSeparators(value interface{}) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) {
		return errors.New("must not contain path separators")
	}
	return nil
}

// singleLine rejects values that would split a header line.
func singleLine(value interface{}) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, "\r\n") {
		return errors.New("must be a single line")
	}
	return nil
}

func notDotName(value interface{}) error {
	s, _ := value.(string)
	if s == "." || s == ".." || strings.HasPrefix(s, ".") {
		return errors.New("must not start with a dot")
	}
	return nil
}

// Parse reads an entry from its raw text. Header lines may appear anywhere;
// the first occurrence of each header wins and later occurrences are kept as
// body text. Everything else forms the body, minus the blank line separating
// the header block from the text.
func Parse(raw string) Entry {
	var (
		e                             Entry
		seenTitle, seenDesc, seenTags bool
		sawBody                       bool
		body                          []string
	)

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case !seenTitle && strings.HasPrefix(line, TitleHeader):
			e.Title = strings.TrimSpace(strings.TrimPrefix(line, TitleHeader))
			seenTitle = true
		case !seenDesc && strings.HasPrefix(line, DescriptionHeader):
			e.Description = strings.TrimSpace(strings.TrimPrefix(line, DescriptionHeader))
			seenDesc = true
		case !seenTags && strings.HasPrefix(line, TagsHeader):
			e.Tags = ParseTags(strings.TrimPrefix(line, TagsHeader))
			seenTags = true
		default:
			headed := seenTitle || seenDesc || seenTags
			if !sawBody && headed && line == "" {
				sawBody = true
				continue
			}
			sawBody = true
			body = append(body, line)
		}
	}

	e.Text = strings.Join(body, "\n")
	return e
}

// ParseTags splits a comma separated tag list, trimming each element and
// dropping empty and repeated tags.
func ParseTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		tags = utils.AppendIfNotExists(tags, t)
	}
	return tags
}

// Serialize renders the entry in its on-disk form.
func Serialize(e Entry) string {
	var b strings.Builder
	b.WriteString(headerLine(TitleHeader, e.Title))
	b.WriteString(headerLine(DescriptionHeader, e.Description))
	b.WriteString(headerLine(TagsHeader, strings.Join(e.Tags, ", ")))
	b.WriteString("\n")
	b.WriteString(e.Text)
	return b.String()
}

func headerLine(header, value string) string {
	if value == "" {
		return header + "\n"
	}
	return header + " " + value + "\n"
}

// ReadFile parses the entry stored at path.
func ReadFile(path string) (Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("read entry %s: %w", path, err)
	}

	e := Parse(string(content))
	e.Path = path
	return e, nil
}
