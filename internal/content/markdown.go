package content

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FirstHeading returns the text of the first heading in a markdown body,
// regardless of its level, or "" when the body has no headings.
func FirstHeading(body []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(body))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			return string(h.Text(body))
		}
	}
	return ""
}
