// internal/head/preload.go
//
// Stylesheet preload and print links.
//
// Context
// -------
// The theme splits its CSS into per-feature stylesheets that are loaded in
// the body, where they are needed.  To avoid a late fetch, the head gets a
// `<link rel="preload" as="style">` hint for each stylesheet the current
// view will use.  The set is decided from the page snapshot:
//
//   - singular   – single content view, not the front page.
//   - widgets    – primary sidebar active, not the front page.
//   - comments   – single view, not the front page, no password wall, and
//     comments open or at least one existing comment.
//   - front-page – front page with at least one panel, or any customizer
//     preview.
//
// AMP inlines styles itself, so no preload hint is emitted in AMP mode.
// The print stylesheet link is emitted regardless of AMP.
//
// Stylesheet renders the matching `rel="stylesheet"` links.  It marks each
// handle on the Builder, so a style is printed once per request whether the
// head or a template partial asks first.
//
// Notes
// -----
//   - An unregistered handle skips that one link.  It is logged once per
//     handle per Emitter and counted in metrics, and the error (wrapping
//     assets.ErrMissingStyleRegistration) is returned to the caller.
//   - Oxford commas, two spaces after periods.
package head

import (
	"errors"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/yanizio/rig/internal/assets"
	"github.com/yanizio/rig/internal/metrics"
	"github.com/yanizio/rig/internal/page"
)

// Logical preload handles, in emission order.
const (
	PreloadSingular  = "singular"
	PreloadWidgets   = "widgets"
	PreloadComments  = "comments"
	PreloadFrontPage = "front-page"
)

// PrintStyleHandle is the registry handle of the print stylesheet.
const PrintStyleHandle = "wprig-print-styles"

// GlobalStyleHandle is the stylesheet every page loads from wp_head.
const GlobalStyleHandle = "wprig-global"

var preloadOrder = []string{PreloadSingular, PreloadWidgets, PreloadComments, PreloadFrontPage}

// StyleHandle maps a logical preload name to its registry handle.
func StyleHandle(name string) string { return "wprig-" + name }

// PreloadEntry is one stylesheet to preload.
type PreloadEntry struct {
	Handle string // registry handle, e.g. "wprig-comments"
	Href   string // cache-busted URI, not yet escaped
}

// wants reports whether the logical preload applies to pc.
func wants(name string, pc *page.Context, panels int) bool {
	switch name {
	case PreloadSingular:
		return pc.IsSingular() && !pc.IsFrontPage()
	case PreloadWidgets:
		return pc.IsSidebarActive(page.PrimarySidebar) && !pc.IsFrontPage()
	case PreloadComments:
		return !pc.IsFrontPage() && pc.IsSingular() && !pc.IsPasswordRequired() &&
			(pc.IsCommentsOpen() || pc.CommentCountValue() > 0)
	case PreloadFrontPage:
		return (pc.IsFrontPage() && panels != 0) || pc.IsCustomizerPreview()
	}
	return false
}

// PreloadSet returns the preload entries for pc in fixed order.  panels is
// the populated front-page panel count.  Missing registrations are skipped
// and reported through the joined error.
func PreloadSet(pc *page.Context, reg *assets.Registry, panels int) ([]PreloadEntry, error) {
	set, errs := preloadSet(pc, reg, panels)
	return set, errors.Join(errs...)
}

func preloadSet(pc *page.Context, reg *assets.Registry, panels int) ([]PreloadEntry, []error) {
	if pc.IsAmpActive() {
		return nil, nil
	}
	var (
		set  []PreloadEntry
		errs []error
	)
	for _, name := range preloadOrder {
		if !wants(name, pc, panels) {
			continue
		}
		st, err := reg.Style(StyleHandle(name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set = append(set, PreloadEntry{Handle: st.Handle, Href: st.URI()})
	}
	return set, errs
}

// Emitter writes preload and print links into a Builder.
type Emitter struct {
	Registry *assets.Registry
	Log      *zap.SugaredLogger

	warned sync.Map // handle → struct{}
}

// NewEmitter returns an Emitter.  A nil log falls back to zap.S().
func NewEmitter(reg *assets.Registry, log *zap.SugaredLogger) *Emitter {
	if log == nil {
		log = zap.S()
	}
	return &Emitter{Registry: reg, Log: log}
}

// Emit adds the preload links for pc and the print stylesheet link to b.
func (e *Emitter) Emit(b *Builder, pc *page.Context, panels int) error {
	set, errs := preloadSet(pc, e.Registry, panels)
	for _, p := range set {
		b.LinkAttrs(
			"rel", "preload",
			"id", p.Handle+"-preload",
			"href", EscURL(p.Href),
			"as", "style",
		)
		metrics.PreloadLinksTotal.WithLabelValues(p.Handle).Inc()
	}

	if st, err := e.Registry.Style(PrintStyleHandle); err != nil {
		errs = append(errs, err)
	} else if b.Once(styleKey(st.Handle)) {
		st.Media = "print"
		b.Link(StyleTag(st))
	}

	for _, err := range errs {
		e.warnOnce(err)
	}
	return errors.Join(errs...)
}

// StyleTag renders the stylesheet <link> for st.  An empty Media is "all".
func StyleTag(st assets.Style) string {
	media := st.Media
	if media == "" {
		media = "all"
	}
	return linkTag(
		"rel", "stylesheet",
		"id", st.Handle+"-css",
		"href", EscURL(st.URI()),
		"media", media,
	)
}

// Stylesheet returns the stylesheet link for handle the first time it is
// requested on b and "" on every later call, so a style printed in the
// head is not printed again in the body.
func Stylesheet(b *Builder, reg *assets.Registry, handle string) (string, error) {
	st, err := reg.Style(handle)
	if err != nil {
		return "", err
	}
	if !b.Once(styleKey(handle)) {
		return "", nil
	}
	return StyleTag(st), nil
}

func styleKey(handle string) string { return "style:" + handle }

// warnOnce logs a missing registration the first time it is seen.
func (e *Emitter) warnOnce(err error) {
	handle := "unknown"
	var le *assets.LookupError
	if errors.As(err, &le) {
		handle = le.Handle
	}
	metrics.MissingStyleTotal.WithLabelValues(handle).Inc()
	if _, loaded := e.warned.LoadOrStore(handle, struct{}{}); loaded {
		return
	}
	e.Log.Warnw("style handle not registered; link skipped", "handle", handle, "err", err)
}

// EscURL cleans a URL for use in an href.  Only relative, http, and https
// URLs pass; anything else, including unparsable input, becomes "".
func EscURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
	default:
		return ""
	}
	return u.String()
}
