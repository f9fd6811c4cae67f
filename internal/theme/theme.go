// Package theme holds the data structures that describe one visual theme.
// A Theme combines:
//
//   - Name         – the theme directory name (for example, “wprig”).
//   - Root         – path to that directory on disk.
//   - Renderer     – parsed templates ready for execution.
//   - AssetFunc    – helper injected into templates so they can resolve
//     `{{ asset "css/global.css" }}` to a URL.
//   - Hooks        – the body_class, wprig_front_page_sections,
//     script_loader_tag, and wp_head chains.
//   - Registry     – styles and scripts seeded by RegisterAssets.  Templates
//     load a stylesheet with `{{ .Style "comments" }}`.
package theme

import (
	"bytes"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/rig/internal/assets"
	"github.com/yanizio/rig/internal/head"
	"github.com/yanizio/rig/internal/options"
	"github.com/yanizio/rig/internal/page"
)

// LayoutTemplate is the template executed by Render.
const LayoutTemplate = "index.html"

// Theme is returned by the Manager once all templates are parsed.
type Theme struct {
	Name      string
	Root      string
	Renderer  *template.Template
	AssetFunc func(string) string
	Hooks     *Hooks
	Registry  *assets.Registry
}

// New constructs a Theme with an AssetFunc that points to the assets folder
// and an empty hook set.
func New(name, root string, tpl *template.Template) *Theme {
	assetPrefix := filepath.ToSlash("/themes/" + name + "/assets/")
	return &Theme{
		Name:     name,
		Root:     root,
		Renderer: tpl,
		AssetFunc: func(p string) string {
			return assetPrefix + strings.TrimPrefix(p, "/")
		},
		Hooks: NewHooks(),
	}
}

// ResolveSrc maps a configured asset source to a URL.  Absolute paths and
// full URLs pass through; anything else is relative to the theme assets.
func (t *Theme) ResolveSrc(src string) string {
	if strings.HasPrefix(src, "/") || strings.Contains(src, "://") {
		return src
	}
	return t.AssetFunc(src)
}

// RegisterAssets adds configured styles and scripts to reg with sources
// resolved against the theme.
func (t *Theme) RegisterAssets(reg *assets.Registry, styles []assets.Style, scripts []assets.Script) {
	t.Registry = reg
	for _, s := range styles {
		s.Src = t.ResolveSrc(s.Src)
		reg.RegisterStyle(s)
	}
	for _, s := range scripts {
		s.Src = t.ResolveSrc(s.Src)
		reg.RegisterScript(s)
	}
}

// Request bundles the per-request inputs every hook sees.
type Request struct {
	Page    *page.Context
	Options options.Options
	Head    *head.Builder

	panels *int // memoised by Hooks.PanelCount
}

// NewRequest returns a Request with a fresh head builder.
func NewRequest(pc *page.Context, o options.Options) *Request {
	return &Request{Page: pc, Options: o, Head: head.New()}
}

// View is the data handed to the layout template.
type View struct {
	Head       *head.Builder
	BodyClass  []string
	PanelCount int
	Page       *page.Context
	Data       any

	styles *assets.Registry
}

// Style returns the stylesheet link for the logical style name ("singular",
// "comments", and so on), or "" when it was already printed for this
// request or is not registered.
func (v View) Style(name string) template.HTML {
	if v.styles == nil || v.Head == nil {
		return ""
	}
	tag, err := head.Stylesheet(v.Head, v.styles, head.StyleHandle(name))
	if err != nil {
		zap.S().Debugw("template style skipped", "name", name, "err", err)
		return ""
	}
	return template.HTML(tag)
}

// Render runs the wp_head chain, computes body classes, and executes the
// layout into w.  Hook errors are logged and do not abort the render.
func (t *Theme) Render(w io.Writer, r *Request, data any) error {
	if err := t.Hooks.Head.Do(r); err != nil {
		zap.S().Warnw("head hooks reported errors", "theme", t.Name, "err", err)
	}

	v := View{
		Head:       r.Head,
		BodyClass:  t.Hooks.BodyClasses(r),
		PanelCount: t.Hooks.PanelCount(r),
		Page:       r.Page,
		Data:       data,
		styles:     t.Registry,
	}

	// Buffer so a template error never leaves half a page on the wire.
	var buf bytes.Buffer
	if err := t.Renderer.ExecuteTemplate(&buf, LayoutTemplate, v); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
