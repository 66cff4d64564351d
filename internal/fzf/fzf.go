package fzf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/kb/internal/knowledge"
	"github.com/Paintersrp/kb/utils"
)

// ErrNoSelection is returned when the finder was closed without a choice.
var ErrNoSelection = errors.New("no entry selected")

// FuzzyFinder selects one entry by fuzzy matching its title and tags.
type FuzzyFinder struct {
	Header  string
	entries []*knowledge.Entry
	labels  []string
}

func NewFuzzyFinder(entries []*knowledge.Entry, header string) *FuzzyFinder {
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = Label(e)
	}
	return &FuzzyFinder{Header: header, entries: entries, labels: labels}
}

// Label is the line matched against the query for e.
func Label(e *knowledge.Entry) string {
	if len(e.Tags) == 0 {
		return fmt.Sprintf("%s [No tags]", e.Title)
	}
	return fmt.Sprintf("%s [Tags: %s]", e.Title, strings.Join(e.Tags, ", "))
}

// Find runs the finder, starting from query when it is not empty.
func (f *FuzzyFinder) Find(query string) (*knowledge.Entry, error) {
	if len(f.entries) == 0 {
		return nil, ErrNoSelection
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := fuzzyfinder.Find(f.entries, func(i int) string {
		return f.labels[i]
	}, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return nil, ErrNoSelection
	}
	if err != nil {
		return nil, fmt.Errorf("error selecting entry: %w", err)
	}

	return f.entries[idx], nil
}

func (f *FuzzyFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	e := f.entries[i]
	return utils.RenderMarkdown("# "+e.Title+"\n\n"+e.Text, w)
}
