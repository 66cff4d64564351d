package repository

import (
	"sort"

	"github.com/Paintersrp/kb/internal/knowledge"
)

// TagIndex maps a tag to the entries carrying it, in load order.
// It is rebuilt on every Load and never patched.
type TagIndex map[string][]*knowledge.Entry

func BuildTagIndex(entries []*knowledge.Entry) TagIndex {
	index := make(TagIndex)
	for _, e := range entries {
		for _, tag := range e.Tags {
			index[tag] = append(index[tag], e)
		}
	}
	return index
}

// Tags returns every tag in the index, sorted.
func (t TagIndex) Tags() []string {
	tags := make([]string, 0, len(t))
	for tag := range t {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func (t TagIndex) Entries(tag string) []*knowledge.Entry {
	return t[tag]
}

// Count returns the number of entries under tag.
func (t TagIndex) Count(tag string) int {
	return len(t[tag])
}
