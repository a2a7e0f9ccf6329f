package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"notesite/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the template context for one rendered document.
type Page struct {
	SiteTitle string
	Title     string
	BaseURL   string
	Sidebar   template.HTML
	Content   template.HTML
}

// Renderer converts markdown documents into complete HTML pages using a
// fixed embedded layout. Rendering is deterministic: identical input
// produces byte-identical output.
type Renderer struct {
	md        goldmark.Markdown
	tmpl      *template.Template
	siteTitle string
	baseURL   string
}

// New creates a Renderer for a site.
func New(siteTitle, baseURL string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout templates: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, mathjax.MathJax),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&linkRewriter{baseURL: baseURL}, 100),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)

	return &Renderer{
		md:        md,
		tmpl:      tmpl,
		siteTitle: siteTitle,
		baseURL:   baseURL,
	}, nil
}

// Body converts a document's markdown body to HTML.
func (r *Renderer) Body(doc *content.Document) (template.HTML, error) {
	pc := parser.NewContext()
	pc.Set(docPathKey, doc.SourcePath)

	var buf bytes.Buffer
	if err := r.md.Convert(doc.Body, &buf, parser.WithContext(pc)); err != nil {
		return "", fmt.Errorf("render %s: %w", doc.SourcePath, err)
	}
	return template.HTML(buf.String()), nil
}

// Page renders a complete HTML page for a document into w.
func (r *Renderer) Page(w io.Writer, doc *content.Document, sidebar template.HTML) error {
	body, err := r.Body(doc)
	if err != nil {
		return err
	}
	page := Page{
		SiteTitle: r.siteTitle,
		Title:     doc.Title,
		BaseURL:   r.baseURL,
		Sidebar:   sidebar,
		Content:   body,
	}
	if err := r.tmpl.ExecuteTemplate(w, "base.html", page); err != nil {
		return fmt.Errorf("execute layout for %s: %w", doc.SourcePath, err)
	}
	return nil
}

// Redirect renders a minimal page that forwards to another route. Used for
// the site root when the content tree has no index document.
func (r *Renderer) Redirect(w io.Writer, route string) error {
	page := struct {
		SiteTitle string
		Target    string
	}{r.siteTitle, r.baseURL + route}
	if err := r.tmpl.ExecuteTemplate(w, "redirect.html", page); err != nil {
		return fmt.Errorf("execute redirect layout: %w", err)
	}
	return nil
}

var docPathKey = parser.NewContextKey()

// linkRewriter fixes up relative link and image destinations so they resolve
// in the generated output tree instead of the source tree.
type linkRewriter struct {
	baseURL string
}

func (t *linkRewriter) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	docPath, _ := pc.Get(docPathKey).(string)
	if docPath == "" {
		return
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			node.Destination = []byte(rewriteDestination(string(node.Destination), docPath, t.baseURL))
		case *ast.Image:
			node.Destination = []byte(rewriteDestination(string(node.Destination), docPath, t.baseURL))
		}
		return ast.WalkContinue, nil
	})
}
