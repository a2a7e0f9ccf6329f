package site

import (
	"strings"
	"testing"
)

func page(links string) []byte {
	return []byte("<!DOCTYPE html><html><body>" + links + "</body></html>")
}

func TestVerifyOutput_ResolvesPagesAndAssets(t *testing.T) {
	pages := map[string][]byte{
		"index.html":               page(`<a href="/git/stash/">stash</a><img src="/img/flow.png">`),
		"git/stash/index.html":     page(`<a href="../../">home</a>`),
		"git/internals/index.html": page(`<a href="/git/stash/#top">frag</a>`),
	}
	assets := []string{"img/flow.png"}

	warnings := verifyOutput(pages, assets, "")
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestVerifyOutput_FlagsBrokenReferences(t *testing.T) {
	pages := map[string][]byte{
		"index.html": page(`<a href="/missing/">dead</a><img src="nope.png">`),
	}

	warnings := verifyOutput(pages, nil, "")
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	joined := strings.Join(warnings, "\n")
	if !strings.Contains(joined, "/missing") {
		t.Errorf("expected missing page in warnings: %v", warnings)
	}
	if !strings.Contains(joined, "nope.png") {
		t.Errorf("expected missing image in warnings: %v", warnings)
	}
}

func TestVerifyOutput_IgnoresExternalAndFragments(t *testing.T) {
	pages := map[string][]byte{
		"index.html": page(`<a href="https://example.com/x">ext</a>` +
			`<a href="mailto:a@b.c">mail</a>` +
			`<a href="#section">frag</a>` +
			`<img src="//cdn.example.com/i.png">`),
	}

	warnings := verifyOutput(pages, nil, "")
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestVerifyOutput_RelativeResolution(t *testing.T) {
	pages := map[string][]byte{
		"git/useful-commands/stash/index.html":  page(`<a href="../rebase/">ok</a><a href="../gone/">bad</a>`),
		"git/useful-commands/rebase/index.html": page(""),
	}

	warnings := verifyOutput(pages, nil, "")
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "gone") {
		t.Errorf("unexpected warning %q", warnings[0])
	}
}

func TestVerifyOutput_BaseURLStripped(t *testing.T) {
	pages := map[string][]byte{
		"index.html":           page(`<a href="/notes/git/stash/">ok</a>`),
		"git/stash/index.html": page(""),
	}

	warnings := verifyOutput(pages, nil, "/notes")
	if len(warnings) != 0 {
		t.Errorf("expected base url prefix to be stripped, got %v", warnings)
	}
}
