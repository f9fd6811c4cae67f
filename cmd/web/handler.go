// cmd/web/handler.go
//
// Router and page handler.
//
// The router is built once at boot.  Request-info enrichment runs before
// every page so the resolver can read the device class; /metrics and the
// theme asset tree bypass the theme entirely.

package main

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/rig/internal/content"
	"github.com/yanizio/rig/internal/middleware"
	"github.com/yanizio/rig/internal/options"
	"github.com/yanizio/rig/internal/page"
	"github.com/yanizio/rig/internal/requestinfo"
	"github.com/yanizio/rig/internal/theme"
)

// KeySiteTitle is the theme option used for the default <title>.
const KeySiteTitle = "blogname"

// optionSource is the slice of options.Store the handler needs.
type optionSource interface {
	For(ctx context.Context, siteID uint64) (options.Options, error)
	Defaults() options.Options
}

// app renders theme pages for one site.
type app struct {
	siteID   uint64
	options  optionSource
	resolver *page.Resolver
	theme    *theme.Theme
	log      *zap.SugaredLogger
}

// routes mounts everything on a chi router.
func (a *app) routes(forceHTTPS bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.ForceHTTPS(forceHTTPS))
	r.Use(middleware.Security)

	r.Handle("/metrics", promhttp.Handler())

	assetDir := http.Dir(filepath.Join(a.theme.Root, "assets"))
	prefix := "/themes/" + a.theme.Name + "/assets/"
	r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(assetDir)))

	r.Group(func(r chi.Router) {
		r.Use(requestinfo.Enrich)
		r.Get("/*", a.servePage)
	})
	return r
}

// servePage resolves the request into a page context and renders the
// theme layout.
func (a *app) servePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	o, err := a.options.For(ctx, a.siteID)
	if err != nil {
		a.log.Warnw("theme options unavailable; using defaults", "site", a.siteID, "err", err)
		o = a.options.Defaults()
	}

	pc, err := a.resolver.Resolve(ctx, r, o)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		a.log.Errorw("page resolve failed", "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	req := theme.NewRequest(pc, o)
	req.Head.SetTitle(o.Get(KeySiteTitle, a.theme.Name))
	req.Head.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.theme.Render(w, req, nil); err != nil {
		a.log.Errorw("render failed", "path", r.URL.Path, "theme", a.theme.Name, "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
