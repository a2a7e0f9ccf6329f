package content

import (
	"bytes"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Document is a single markdown source file treated as one content unit.
// Documents are immutable once loaded; the site is regenerated wholesale.
type Document struct {
	SourcePath string // slash-separated, relative to the docs root, unique
	Title      string
	Body       []byte         // markdown body with frontmatter stripped
	Meta       map[string]any // frontmatter, may be empty
}

// NewDocument builds a Document from raw file bytes. Title precedence:
// frontmatter `title:`, then the first heading in the body, then the
// title-cased filename stem.
func NewDocument(sourcePath string, raw []byte) *Document {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		// Malformed frontmatter is not fatal; treat the file as pure markdown.
		body = raw
		meta = map[string]any{}
	}

	doc := &Document{
		SourcePath: sourcePath,
		Body:       body,
		Meta:       meta,
	}
	doc.Title = deriveTitle(doc)
	return doc
}

func deriveTitle(doc *Document) string {
	if t, ok := doc.Meta["title"].(string); ok && t != "" {
		return t
	}
	if h := FirstHeading(doc.Body); h != "" {
		return h
	}
	return TitleFromFilename(doc.SourcePath)
}

// TitleFromFilename turns a document path into a human-readable title,
// e.g. "git/useful-commands/stash.md" -> "Stash".
func TitleFromFilename(sourcePath string) string {
	stem := strings.TrimSuffix(path.Base(sourcePath), path.Ext(sourcePath))
	stem = strings.ReplaceAll(strings.ReplaceAll(stem, "-", " "), "_", " ")
	// cases.Caser carries state, so build one per call.
	return cases.Title(language.English).String(stem)
}

// IsMarkdown reports whether the path names a markdown document.
func IsMarkdown(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
