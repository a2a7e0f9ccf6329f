package render

import (
	"net/url"
	"path"
	"strings"

	"notesite/internal/content"
)

// RouteFor maps a document source path to its pretty URL route.
// "git/useful-commands/stash.md" -> "/git/useful-commands/stash/",
// "index.md" -> "/", "git/index.md" -> "/git/".
func RouteFor(sourcePath string) string {
	p := strings.TrimSuffix(sourcePath, path.Ext(sourcePath))
	if path.Base(p) == "index" {
		p = path.Dir(p)
	}
	if p == "." || p == "" {
		return "/"
	}
	return "/" + p + "/"
}

// OutputPathFor maps a document source path to the file written for it,
// relative to the output root.
func OutputPathFor(sourcePath string) string {
	route := RouteFor(sourcePath)
	return strings.TrimPrefix(route, "/") + "index.html"
}

// rewriteDestination makes a markdown link or image destination correct for
// the generated site: relative markdown targets become routes, relative asset
// targets become root-relative paths. Absolute URLs, fragment-only links and
// already root-relative destinations pass through untouched.
func rewriteDestination(dest, docPath, baseURL string) string {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return dest
	}
	if u, err := url.Parse(dest); err != nil || u.Scheme != "" || u.Host != "" {
		return dest
	}

	target := dest
	var suffix string
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		target, suffix = dest[:i], dest[i:]
	}
	if target == "" {
		return dest
	}

	abs := path.Join(path.Dir(docPath), target)
	if strings.HasPrefix(abs, "../") || abs == ".." {
		// Escapes the docs root; leave it for the output verifier to flag.
		return dest
	}

	if content.IsMarkdown(abs) {
		return baseURL + RouteFor(abs) + suffix
	}
	return baseURL + "/" + abs + suffix
}
