package knowledge

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const maxSummaryLength = 80

// Summary returns a one-line synopsis of a markdown body: the first heading
// when present, otherwise the first paragraph, truncated for list display.
func Summary(body string) string {
	source := []byte(body)
	document := goldmark.DefaultParser().Parse(text.NewReader(source))

	var heading, paragraph string
	_ = ast.Walk(
		document,
		func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			switch n := n.(type) {
			case *ast.Heading:
				if heading == "" {
					heading = strings.TrimSpace(string(n.Text(source)))
				}
				return ast.WalkSkipChildren, nil
			case *ast.Paragraph:
				if paragraph == "" {
					lines := n.Lines()
					parts := make([]string, 0, lines.Len())
					for i := 0; i < lines.Len(); i++ {
						segment := lines.At(i)
						parts = append(parts, string(segment.Value(source)))
					}
					paragraph = strings.Join(parts, " ")
				}
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		},
	)

	summary := heading
	if summary == "" {
		summary = paragraph
	}
	summary = strings.Join(strings.Fields(summary), " ")

	if runes := []rune(summary); len(runes) > maxSummaryLength {
		summary = string(runes[:maxSummaryLength-1]) + "…"
	}
	return summary
}
