package site

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// verifyOutput scans every rendered page for relative links and image
// references that do not resolve within the generated site. It returns one
// warning per broken reference; external URLs and fragment-only links are
// ignored. Missing targets never abort a default build — the spec treats
// them as a rendering concern — but strict mode promotes them to errors.
func verifyOutput(pages map[string][]byte, assets []string, baseURL string) []string {
	targets := make(map[string]bool, len(pages)+len(assets))
	for p := range pages {
		targets["/"+p] = true
	}
	for _, a := range assets {
		targets["/"+a] = true
	}

	var warnings []string
	for pagePath, data := range pages {
		doc, err := html.Parse(bytes.NewReader(data))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page /%s: unparsable output: %v", pagePath, err))
			continue
		}
		for _, ref := range collectRefs(doc) {
			if target, broken := checkRef(ref, pagePath, baseURL, targets); broken {
				warnings = append(warnings, fmt.Sprintf("page /%s: %s %q does not resolve (%s)", pagePath, ref.kind, ref.value, target))
			}
		}
	}

	sort.Strings(warnings)
	return warnings
}

type ref struct {
	kind  string // "link" or "image"
	value string
}

func collectRefs(doc *html.Node) []ref {
	var refs []ref
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if v := attr(n, "href"); v != "" {
					refs = append(refs, ref{kind: "link", value: v})
				}
			case "img":
				if v := attr(n, "src"); v != "" {
					refs = append(refs, ref{kind: "image", value: v})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return refs
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// checkRef resolves a reference against the output set. It returns the
// normalized target and whether the reference is broken.
func checkRef(r ref, pagePath, baseURL string, targets map[string]bool) (string, bool) {
	u, err := url.Parse(r.value)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}

	p := u.Path
	if baseURL != "" && strings.HasPrefix(p, baseURL+"/") {
		p = strings.TrimPrefix(p, baseURL)
	}
	if !strings.HasPrefix(p, "/") {
		p = path.Join("/"+path.Dir(pagePath), p)
	}
	p = path.Clean(p)

	if targets[p] || targets[strings.TrimSuffix(p, "/")+"/index.html"] || targets[path.Join(p, "index.html")] {
		return p, false
	}
	return p, true
}
