package content

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Corpus is the loaded content tree: markdown documents keyed by source path
// plus the non-markdown files (images and other assets) found alongside them.
type Corpus struct {
	docs   map[string]*Document
	assets []string
}

// Load walks the docs filesystem, parsing every markdown file into a Document
// and recording every other regular file as an asset to copy verbatim.
// Dotfiles and dot-directories are skipped.
func Load(fsys fs.FS) (*Corpus, error) {
	c := &Corpus{docs: make(map[string]*Document)}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}
		if strings.HasPrefix(d.Name(), ".") && p != "." {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if !IsMarkdown(p) {
			c.assets = append(c.assets, p)
			return nil
		}

		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		c.docs[p] = NewDocument(p, raw)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(c.assets)
	return c, nil
}

// Has reports whether a document exists at the given source path.
func (c *Corpus) Has(path string) bool {
	_, ok := c.docs[path]
	return ok
}

// Get returns the document at the given source path, or nil.
func (c *Corpus) Get(path string) *Document {
	return c.docs[path]
}

// Paths returns all document source paths in sorted order.
func (c *Corpus) Paths() []string {
	paths := make([]string, 0, len(c.docs))
	for p := range c.docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Assets returns all non-markdown file paths in sorted order.
func (c *Corpus) Assets() []string {
	return c.assets
}

// Len returns the number of documents in the corpus.
func (c *Corpus) Len() int {
	return len(c.docs)
}
