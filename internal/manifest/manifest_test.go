package manifest

import (
	"errors"
	"strings"
	"testing"
)

type docSet map[string]bool

func (d docSet) Has(p string) bool { return d[p] }

func TestParse_OrderAndDepthPreserved(t *testing.T) {
	input := `nav:
  - Home: index.md
  - Git:
      - Useful commands:
          - Stash: git/useful-commands/stash.md
          - Rebase: git/useful-commands/rebase.md
      - Internals: git/internals.md
  - Interview: interview/techniques.md
`
	nav, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(nav.Entries) != 3 {
		t.Fatalf("expected 3 top-level entries, got %d", len(nav.Entries))
	}
	if nav.Entries[0].Label != "Home" || nav.Entries[0].Path != "index.md" {
		t.Errorf("entry 0: got %+v", nav.Entries[0])
	}

	git := nav.Entries[1]
	if git.Label != "Git" || !git.IsGroup() {
		t.Fatalf("expected Git group, got %+v", git)
	}
	if len(git.Children) != 2 {
		t.Fatalf("expected 2 children under Git, got %d", len(git.Children))
	}

	cmds := git.Children[0]
	if cmds.Label != "Useful commands" || len(cmds.Children) != 2 {
		t.Fatalf("expected nested group with 2 leaves, got %+v", cmds)
	}
	if cmds.Children[0].Label != "Stash" || cmds.Children[1].Label != "Rebase" {
		t.Errorf("nested ordering not preserved: %q, %q", cmds.Children[0].Label, cmds.Children[1].Label)
	}

	// Leaves come back in declaration order, depth-first.
	var got []string
	for _, leaf := range nav.Leaves() {
		got = append(got, leaf.Path)
	}
	want := []string{
		"index.md",
		"git/useful-commands/stash.md",
		"git/useful-commands/rebase.md",
		"git/internals.md",
		"interview/techniques.md",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d leaves, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("leaf[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParse_BarePathEntry(t *testing.T) {
	nav, err := Parse(strings.NewReader("nav:\n  - git/stash.md\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nav.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(nav.Entries))
	}
	if nav.Entries[0].Label != "" || nav.Entries[0].Path != "git/stash.md" {
		t.Errorf("expected unlabeled leaf, got %+v", nav.Entries[0])
	}
}

func TestParse_DuplicateEntriesKept(t *testing.T) {
	input := `nav:
  - First: a.md
  - Second: a.md
`
	nav, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nav.Entries) != 2 {
		t.Fatalf("expected duplicates to be kept, got %d entries", len(nav.Entries))
	}
}

func TestParse_ShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing nav key", "pages:\n  - a.md\n"},
		{"nav not a list", "nav: index.md\n"},
		{"entry with two keys", "nav:\n  - A: a.md\n    B: b.md\n"},
		{"entry value is a mapping", "nav:\n  - A:\n      path: a.md\n"},
		{"empty group", "nav:\n  - A: []\n"},
		{"empty path", "nav:\n  - A: \"\"\n"},
		{"path escapes root", "nav:\n  - A: ../secret.md\n"},
		{"absolute path", "nav:\n  - A: /etc/passwd\n"},
		{"empty document", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Errorf("expected parse error for %s", tt.name)
			}
		})
	}
}

func TestResolve_AllPresent(t *testing.T) {
	nav, err := Parse(strings.NewReader("nav:\n  - A: a.md\n  - Group:\n      - B: sub/b.md\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	docs := docSet{"a.md": true, "sub/b.md": true}
	if err := nav.Resolve(docs); err != nil {
		t.Errorf("expected resolve to succeed, got %v", err)
	}
}

func TestResolve_MissingDocument(t *testing.T) {
	nav, err := Parse(strings.NewReader("nav:\n  - A: a.md\n  - Bar: foo/bar.md\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = nav.Resolve(docSet{"a.md": true})
	if err == nil {
		t.Fatal("expected resolve to fail")
	}
	var unresolved *UnresolvedReferenceError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected UnresolvedReferenceError, got %T: %v", err, err)
	}
	if unresolved.Path != "foo/bar.md" || unresolved.Label != "Bar" {
		t.Errorf("unexpected error details: %+v", unresolved)
	}
	if !strings.Contains(err.Error(), "foo/bar.md") {
		t.Errorf("error message should name the missing path, got %q", err.Error())
	}
}

func TestWalk_Depths(t *testing.T) {
	nav, err := Parse(strings.NewReader("nav:\n  - A: a.md\n  - G:\n      - B: b.md\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	type visit struct {
		label string
		depth int
	}
	var visits []visit
	nav.Walk(func(n *Node, depth int) {
		visits = append(visits, visit{n.Label, depth})
	})
	want := []visit{{"A", 0}, {"G", 0}, {"B", 1}}
	if len(visits) != len(want) {
		t.Fatalf("expected %d visits, got %d", len(want), len(visits))
	}
	for i := range want {
		if visits[i] != want[i] {
			t.Errorf("visit[%d]: expected %+v, got %+v", i, want[i], visits[i])
		}
	}
}
