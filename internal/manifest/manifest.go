package manifest

import (
	"fmt"
	"io"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node is one entry in the navigation manifest: either a leaf pointing at a
// document path, or a group holding an ordered list of child nodes.
type Node struct {
	Label    string
	Path     string  // set for leaves only, slash-separated, relative to the docs root
	Children []*Node // set for groups only
}

// IsGroup reports whether the node is a group rather than a document leaf.
func (n *Node) IsGroup() bool {
	return len(n.Children) > 0 || n.Path == ""
}

// Nav is the parsed navigation manifest: an ordered forest of nodes.
// Order and depth are preserved exactly as declared.
type Nav struct {
	Entries []*Node
}

// DocSet reports whether a document path exists in the content tree.
type DocSet interface {
	Has(path string) bool
}

// UnresolvedReferenceError is returned when a navigation leaf references a
// document path that does not exist in the content tree.
type UnresolvedReferenceError struct {
	Label string
	Path  string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("nav entry %q references missing document %q", e.Label, e.Path)
}

// Parse reads a YAML navigation manifest. The document must contain a `nav`
// key holding an ordered list of entries; each entry is either a plain
// document path, or a single-key mapping from a display label to a document
// path (leaf) or a nested entry list (group).
func Parse(r io.Reader) (*Nav, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(src, &root); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, fmt.Errorf("parse manifest: empty document")
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse manifest: top level must be a mapping, got %s (line %d)", kindName(doc.Kind), doc.Line)
	}

	var navSeq *yaml.Node
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value == "nav" {
			navSeq = doc.Content[i+1]
			break
		}
	}
	if navSeq == nil {
		return nil, fmt.Errorf("parse manifest: missing `nav` key")
	}
	if navSeq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("parse manifest: `nav` must be a list, got %s (line %d)", kindName(navSeq.Kind), navSeq.Line)
	}

	entries, err := parseEntries(navSeq)
	if err != nil {
		return nil, err
	}
	return &Nav{Entries: entries}, nil
}

func parseEntries(seq *yaml.Node) ([]*Node, error) {
	var nodes []*Node
	for _, item := range seq.Content {
		n, err := parseEntry(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parseEntry(item *yaml.Node) (*Node, error) {
	switch item.Kind {
	case yaml.ScalarNode:
		// Bare path entry; the display label comes from the document title.
		p, err := cleanDocPath(item.Value, item.Line)
		if err != nil {
			return nil, err
		}
		return &Node{Path: p}, nil

	case yaml.MappingNode:
		if len(item.Content) != 2 {
			return nil, fmt.Errorf("parse manifest: nav entry must have exactly one label (line %d)", item.Line)
		}
		key, val := item.Content[0], item.Content[1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, fmt.Errorf("parse manifest: nav entry label must be a non-empty string (line %d)", key.Line)
		}

		switch val.Kind {
		case yaml.ScalarNode:
			p, err := cleanDocPath(val.Value, val.Line)
			if err != nil {
				return nil, err
			}
			return &Node{Label: key.Value, Path: p}, nil
		case yaml.SequenceNode:
			children, err := parseEntries(val)
			if err != nil {
				return nil, err
			}
			if len(children) == 0 {
				return nil, fmt.Errorf("parse manifest: group %q has no entries (line %d)", key.Value, key.Line)
			}
			return &Node{Label: key.Value, Children: children}, nil
		default:
			return nil, fmt.Errorf("parse manifest: entry %q must map to a document path or a list, got %s (line %d)",
				key.Value, kindName(val.Kind), val.Line)
		}

	default:
		return nil, fmt.Errorf("parse manifest: nav entry must be a path or a single-key mapping, got %s (line %d)",
			kindName(item.Kind), item.Line)
	}
}

func cleanDocPath(raw string, line int) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", fmt.Errorf("parse manifest: empty document path (line %d)", line)
	}
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if path.IsAbs(p) || p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("parse manifest: document path %q escapes the docs root (line %d)", raw, line)
	}
	return p, nil
}

// Resolve verifies that every leaf references an existing document. The first
// missing reference aborts with an *UnresolvedReferenceError; there is no
// partial tolerance.
func (n *Nav) Resolve(docs DocSet) error {
	for _, leaf := range n.Leaves() {
		if !docs.Has(leaf.Path) {
			return &UnresolvedReferenceError{Label: leaf.Label, Path: leaf.Path}
		}
	}
	return nil
}

// Walk visits every node depth-first in declaration order. The depth of
// top-level entries is 0.
func (n *Nav) Walk(fn func(node *Node, depth int)) {
	var visit func(nodes []*Node, depth int)
	visit = func(nodes []*Node, depth int) {
		for _, node := range nodes {
			fn(node, depth)
			visit(node.Children, depth+1)
		}
	}
	visit(n.Entries, 0)
}

// Leaves returns all document-bearing nodes in declaration order.
func (n *Nav) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node *Node, _ int) {
		if node.Path != "" {
			leaves = append(leaves, node)
		}
	})
	return leaves
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
