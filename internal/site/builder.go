package site

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"notesite/internal/config"
	"notesite/internal/content"
	"notesite/internal/manifest"
	"notesite/internal/render"
)

// Builder turns a docs tree plus a navigation manifest into a static site.
// A build is a single synchronous pass: every document is loaded, the
// manifest is resolved, and every page is rendered and verified in memory
// before anything is written. The output directory is replaced wholesale.
type Builder struct {
	cfg config.Config
	log *slog.Logger
}

// Result summarizes a completed build or check.
type Result struct {
	Pages    int
	Assets   int
	Warnings []string
}

type staged struct {
	files  map[string][]byte // output-relative path -> rendered bytes
	assets []string          // docs-relative asset paths, copied verbatim
	result *Result
}

func NewBuilder(cfg config.Config, log *slog.Logger) *Builder {
	return &Builder{cfg: cfg, log: log}
}

// Build runs the full pipeline and writes the site to the output directory.
// On any error the output directory is left untouched.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	st, err := b.stage(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.write(st); err != nil {
		return nil, err
	}
	b.log.Info("build complete",
		"pages", st.result.Pages,
		"assets", st.result.Assets,
		"warnings", len(st.result.Warnings),
		"output", b.cfg.OutputDir,
	)
	return st.result, nil
}

// Check runs the pipeline without writing any output: manifest resolution,
// rendering and link verification only.
func (b *Builder) Check(ctx context.Context) (*Result, error) {
	st, err := b.stage(ctx)
	if err != nil {
		return nil, err
	}
	return st.result, nil
}

func (b *Builder) stage(ctx context.Context) (*staged, error) {
	if _, err := os.Stat(b.cfg.DocsDir); err != nil {
		return nil, fmt.Errorf("docs directory %q: %w", b.cfg.DocsDir, err)
	}

	corpus, err := content.Load(os.DirFS(b.cfg.DocsDir))
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	b.log.Info("content loaded", "documents", corpus.Len(), "assets", len(corpus.Assets()))

	navFile, err := os.Open(b.cfg.NavFile)
	if err != nil {
		return nil, fmt.Errorf("open manifest %q: %w", b.cfg.NavFile, err)
	}
	defer navFile.Close()

	nav, err := manifest.Parse(navFile)
	if err != nil {
		return nil, err
	}
	if err := nav.Resolve(corpus); err != nil {
		return nil, err
	}

	renderer, err := render.New(b.cfg.SiteTitle, b.cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	labelFor := func(p string) string {
		if doc := corpus.Get(p); doc != nil {
			return doc.Title
		}
		return content.TitleFromFilename(p)
	}

	files := make(map[string][]byte)
	sources := make(map[string]string) // output path -> source document
	for _, srcPath := range corpus.Paths() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc := corpus.Get(srcPath)
		route := render.RouteFor(srcPath)
		sidebar := render.Sidebar(nav, route, b.cfg.BaseURL, labelFor)

		var buf bytes.Buffer
		if err := renderer.Page(&buf, doc, sidebar); err != nil {
			return nil, err
		}
		outPath := render.OutputPathFor(srcPath)
		if prev, ok := sources[outPath]; ok {
			return nil, fmt.Errorf("documents %q and %q both render to %s", prev, srcPath, outPath)
		}
		sources[outPath] = srcPath
		files[outPath] = buf.Bytes()
	}
	pages := len(files)

	// A site without a root index gets a redirect stub to the first nav leaf.
	if _, ok := files["index.html"]; !ok {
		if leaves := nav.Leaves(); len(leaves) > 0 {
			var buf bytes.Buffer
			if err := renderer.Redirect(&buf, render.RouteFor(leaves[0].Path)); err != nil {
				return nil, err
			}
			files["index.html"] = buf.Bytes()
		}
	}

	warnings := verifyOutput(files, corpus.Assets(), b.cfg.BaseURL)
	for _, w := range warnings {
		b.log.Warn("broken reference in rendered output", "detail", w)
	}
	if b.cfg.Strict && len(warnings) > 0 {
		return nil, fmt.Errorf("strict mode: %d broken reference(s) in rendered output", len(warnings))
	}

	return &staged{
		files:  files,
		assets: corpus.Assets(),
		result: &Result{Pages: pages, Assets: len(corpus.Assets()), Warnings: warnings},
	}, nil
}

func (b *Builder) write(st *staged) error {
	if err := os.RemoveAll(b.cfg.OutputDir); err != nil {
		return fmt.Errorf("clean output directory %q: %w", b.cfg.OutputDir, err)
	}
	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", b.cfg.OutputDir, err)
	}

	paths := make([]string, 0, len(st.files))
	for p := range st.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		dst := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", p, err)
		}
		if err := os.WriteFile(dst, st.files[p], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", p, err)
		}
	}

	for _, asset := range st.assets {
		src := filepath.Join(b.cfg.DocsDir, filepath.FromSlash(asset))
		dst := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(asset))
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("copy asset %s: %w", asset, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
