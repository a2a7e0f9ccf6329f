package render

import (
	"html"
	"html/template"
	"strings"

	"notesite/internal/manifest"
)

// Sidebar builds the navigation sidebar HTML for one page. The nested list
// mirrors the manifest tree verbatim: declaration order, declared depth, no
// deduplication. The leaf whose route matches activeRoute is marked active.
// labelFor supplies display labels for unlabeled leaves (document titles).
func Sidebar(nav *manifest.Nav, activeRoute, baseURL string, labelFor func(path string) string) template.HTML {
	var b strings.Builder
	writeList(&b, nav.Entries, activeRoute, baseURL, labelFor)
	return template.HTML(b.String())
}

func writeList(b *strings.Builder, nodes []*manifest.Node, activeRoute, baseURL string, labelFor func(string) string) {
	b.WriteString("<ul>")
	for _, n := range nodes {
		if n.Path != "" {
			label := n.Label
			if label == "" {
				label = labelFor(n.Path)
			}
			route := RouteFor(n.Path)
			b.WriteString(`<li><a href="`)
			b.WriteString(html.EscapeString(baseURL + route))
			b.WriteString(`"`)
			if route == activeRoute {
				b.WriteString(` class="active"`)
			}
			b.WriteString(">")
			b.WriteString(html.EscapeString(label))
			b.WriteString("</a></li>")
			continue
		}
		b.WriteString(`<li class="group"><span>`)
		b.WriteString(html.EscapeString(n.Label))
		b.WriteString("</span>")
		writeList(b, n.Children, activeRoute, baseURL, labelFor)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
}
