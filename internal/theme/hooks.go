// internal/theme/hooks.go
//
// Theme extension points and their default subscriptions.
//
// Context
// -------
// Setup wires the theme's own behaviour into the chains:
//
//   - body_class                 → bodyclass.Compute
//   - script_loader_tag          → scripttag.Filter (async / defer)
//   - wp_head                    → global stylesheet, preload + print links,
//     then script tags
//   - wprig_front_page_sections  → no default; DefaultSections applies
//
// Callers may add further callbacks after Setup; they run after the
// defaults, in registration order.
package theme

import (
	"go.uber.org/zap"

	"github.com/yanizio/rig/internal/assets"
	"github.com/yanizio/rig/internal/bodyclass"
	"github.com/yanizio/rig/internal/head"
	"github.com/yanizio/rig/internal/hook"
	"github.com/yanizio/rig/internal/panel"
	"github.com/yanizio/rig/internal/scripttag"
)

// Hooks are the theme's extension points.
type Hooks struct {
	BodyClass         *hook.Filter[[]string, *Request]
	FrontPageSections *hook.Filter[int, *Request]
	ScriptLoaderTag   *hook.Filter[string, string] // arg is the script handle
	Head              *hook.Action[*Request]
}

// NewHooks returns empty chains.
func NewHooks() *Hooks {
	return &Hooks{
		BodyClass:         hook.NewFilter[[]string, *Request](hook.BodyClass),
		FrontPageSections: hook.NewFilter[int, *Request](hook.FrontPageSections),
		ScriptLoaderTag:   hook.NewFilter[string, string](hook.ScriptLoaderTag),
		Head:              hook.NewAction[*Request](hook.Head),
	}
}

// BodyClasses applies the body_class chain to extra.
func (h *Hooks) BodyClasses(r *Request, extra ...string) []string {
	return h.BodyClass.Apply(extra, r)
}

// PanelCount returns the number of populated front-page panels for r.  The
// sections filter runs once per request; later calls reuse the result.
func (h *Hooks) PanelCount(r *Request) int {
	if r.panels != nil {
		return *r.panels
	}
	n := panel.Count(panel.Sections(h.FrontPageSections, r), panel.FromOptions(r.Options))
	r.panels = &n
	return n
}

// Setup subscribes the default theme behaviour.  A nil log uses zap.S().
func Setup(h *Hooks, reg *assets.Registry, log *zap.SugaredLogger) {
	h.BodyClass.Add(func(classes []string, r *Request) []string {
		return bodyclass.Compute(classes, r.Page, r.Options)
	})

	h.ScriptLoaderTag.Add(scripttag.Filter(reg))

	h.Head.Add(func(r *Request) error {
		return enqueueStyles(reg, r.Head)
	})
	emitter := head.NewEmitter(reg, log)
	h.Head.Add(func(r *Request) error {
		return emitter.Emit(r.Head, r.Page, h.PanelCount(r))
	})
	h.Head.Add(func(r *Request) error {
		return enqueueScripts(h, reg, r.Head)
	})
}

// enqueueStyles prints the global stylesheet.  Feature stylesheets are
// printed by the templates that need them.
func enqueueStyles(reg *assets.Registry, b *head.Builder) error {
	tag, err := head.Stylesheet(b, reg, head.GlobalStyleHandle)
	if tag != "" {
		b.Link(tag)
	}
	return err
}

// enqueueScripts renders every registered script through script_loader_tag.
func enqueueScripts(h *Hooks, reg *assets.Registry, b *head.Builder) error {
	for _, handle := range reg.Scripts() {
		tag, err := reg.ScriptTag(handle)
		if err != nil {
			return err
		}
		b.Script(handle, h.ScriptLoaderTag.Apply(tag, handle))
	}
	return nil
}
