// internal/page/resolver.go
//
// Request → Context.
//
// Context
// -------
// Resolve classifies the request path into the view kinds the theme cares
// about, fetches the post row when the view is singular, and folds in the
// site's theme options and request info.
//
// Routing table
// -------------
//
//	/                          front page
//	/page/<slug>               singular page
//	/post/<slug>               singular post
//	/category/<x>, /tag/<x>,
//	/author/<x>, /<yyyy>/...   archive
//	anything else              index (no flags)
//
// A trailing `/amp` segment or an `amp` query parameter selects AMP mode.
// The `customize_changeset_uuid` query parameter marks a customizer preview.
//
// Notes
// -----
//   - Resolve never writes to the ResponseWriter; callers map ErrNotFound.
//   - Oxford commas, two spaces after periods.
package page

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/yanizio/rig/internal/content"
	"github.com/yanizio/rig/internal/options"
	"github.com/yanizio/rig/internal/requestinfo"
)

// Resolver builds Contexts for one site.
type Resolver struct {
	SiteID   uint64
	Content  content.Source
	Sidebars []string // sidebar ids that carry widgets
}

// Route is the parsed form of a request path.
type Route struct {
	Kind string // "front", "page", "post", "archive", "index"
	Slug string
	AMP  bool
}

// ParseRoute classifies path.
func ParseRoute(path string) Route {
	trimmed := strings.Trim(path, "/")
	var rt Route
	if trimmed == "amp" || strings.HasSuffix(trimmed, "/amp") {
		rt.AMP = true
		trimmed = strings.TrimSuffix(strings.TrimSuffix(trimmed, "amp"), "/")
	}

	parts := strings.Split(trimmed, "/")
	switch {
	case trimmed == "":
		rt.Kind = "front"
	case len(parts) == 2 && parts[0] == "page":
		rt.Kind, rt.Slug = "page", parts[1]
	case len(parts) == 2 && parts[0] == "post":
		rt.Kind, rt.Slug = "post", parts[1]
	case parts[0] == "category", parts[0] == "tag", parts[0] == "author", isYear(parts[0]):
		rt.Kind = "archive"
	default:
		rt.Kind = "index"
	}
	return rt
}

// Resolve builds the snapshot for r.
func (res *Resolver) Resolve(ctx context.Context, r *http.Request, o options.Options) (*Context, error) {
	rt := ParseRoute(r.URL.Path)
	q := r.URL.Query()

	pc := &Context{
		FrontPage:         rt.Kind == "front",
		Archive:           rt.Kind == "archive",
		AMP:               rt.AMP || q.Has("amp"),
		CustomizerPreview: q.Get("customize_changeset_uuid") != "",
		HeaderImage:       o.Get(options.KeyHeaderImage, "") != "",
		HeaderTextColor:   o.Get(options.KeyHeaderTextColor, ""),
		ShowOnFront:       o.Get(options.KeyShowOnFront, "posts"),
		ActiveSidebars:    make(map[string]bool, len(res.Sidebars)),
	}
	for _, id := range res.Sidebars {
		pc.ActiveSidebars[id] = true
	}
	if ri := requestinfo.FromContext(ctx); ri != nil {
		pc.Device = ri.UA.Device
	}

	if rt.Kind == "page" || rt.Kind == "post" {
		postType := content.TypePost
		if rt.Kind == "page" {
			postType = content.TypePage
		}
		p, err := res.Content.BySlug(ctx, res.SiteID, postType, rt.Slug)
		if err != nil {
			return nil, fmt.Errorf("resolve %s %q: %w", postType, rt.Slug, err)
		}
		pc.Singular = true
		pc.Page = postType == content.TypePage
		pc.CommentsOpen = p.CommentsOpen()
		pc.CommentCount = p.CommentCount
		pc.PasswordRequired = p.PasswordRequired()
	}

	n, err := res.Content.AuthorCount(ctx, res.SiteID)
	if err != nil {
		return nil, fmt.Errorf("author count: %w", err)
	}
	pc.MultiAuthor = n > 1

	return pc, nil
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
