package arg

import (
	"strings"

	"github.com/Paintersrp/kb/internal/knowledge"
)

// HandleTags reads the comma separated tag list from the second positional
// argument.
func HandleTags(args []string) []string {
	if len(args) > 1 {
		return knowledge.ParseTags(args[1])
	}
	return nil
}

// HandleContent joins every argument after the title and tags into the entry
// body.
func HandleContent(args []string) string {
	if len(args) > 2 {
		return strings.Join(args[2:], " ")
	}
	return ""
}
