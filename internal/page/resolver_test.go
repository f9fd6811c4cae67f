// internal/page/resolver_test.go
//
// Unit-tests for ParseRoute and Resolver.Resolve.
//
// fakeSource ── in-memory content.Source keyed by "<type>/<slug>".

package page

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yanizio/rig/internal/content"
	"github.com/yanizio/rig/internal/options"
	"github.com/yanizio/rig/internal/requestinfo"
)

type fakeSource struct {
	posts   map[string]*content.Post
	authors int
}

func (f *fakeSource) BySlug(_ context.Context, _ uint64, postType, slug string) (*content.Post, error) {
	if p, ok := f.posts[postType+"/"+slug]; ok {
		return p, nil
	}
	return nil, content.ErrNotFound
}

func (f *fakeSource) AuthorCount(context.Context, uint64) (int, error) { return f.authors, nil }

func TestParseRoute(t *testing.T) {
	cases := []struct {
		path string
		kind string
		slug string
		amp  bool
	}{
		{"/", "front", "", false},
		{"/amp", "front", "", true},
		{"/page/about", "page", "about", false},
		{"/post/hello/amp", "post", "hello", true},
		{"/post/champ", "post", "champ", false},
		{"/category/news", "archive", "", false},
		{"/2025/05", "archive", "", false},
		{"/search", "index", "", false},
	}
	for _, c := range cases {
		rt := ParseRoute(c.path)
		if rt.Kind != c.kind || rt.Slug != c.slug || rt.AMP != c.amp {
			t.Errorf("ParseRoute(%q) = %+v", c.path, rt)
		}
	}
}

func TestResolve_SingularPost(t *testing.T) {
	src := &fakeSource{
		posts: map[string]*content.Post{
			"post/hello": {Type: "post", CommentStatus: "open", CommentCount: 2, Password: "s3cret"},
		},
		authors: 3,
	}
	res := &Resolver{SiteID: 1, Content: src, Sidebars: []string{PrimarySidebar}}
	opts := options.New(map[string]string{
		options.KeyHeaderImage:     "/img/header.jpg",
		options.KeyHeaderTextColor: "blank",
		options.KeyShowOnFront:     "page",
	})

	req := httptest.NewRequest(http.MethodGet, "/post/hello?customize_changeset_uuid=abc", nil)
	ctx := requestinfo.WithInfo(req.Context(), &requestinfo.RequestInfo{UA: requestinfo.UA{Device: "tablet"}})

	pc, err := res.Resolve(ctx, req, opts)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !pc.IsSingular() || pc.IsPage() || pc.IsFrontPage() || pc.IsArchive() {
		t.Fatalf("view flags wrong: %+v", pc)
	}
	if !pc.IsCommentsOpen() || pc.CommentCountValue() != 2 || !pc.IsPasswordRequired() {
		t.Fatalf("comment flags wrong: %+v", pc)
	}
	if !pc.IsMultiAuthorSite() || !pc.IsCustomizerPreview() || !pc.HasCustomHeaderImage() {
		t.Fatalf("site flags wrong: %+v", pc)
	}
	if pc.HeaderTextColorValue() != "blank" || pc.ShowOnFrontOption() != "page" {
		t.Fatalf("option flags wrong: %+v", pc)
	}
	if !pc.IsSidebarActive(PrimarySidebar) || pc.IsSidebarActive("sidebar-2") {
		t.Fatalf("sidebar flags wrong: %+v", pc.ActiveSidebars)
	}
	if pc.Device != "tablet" {
		t.Fatalf("Device = %q", pc.Device)
	}
}

func TestResolve_AmpQueryAndDefaults(t *testing.T) {
	res := &Resolver{Content: &fakeSource{authors: 1}}
	req := httptest.NewRequest(http.MethodGet, "/?amp=1", nil)

	pc, err := res.Resolve(req.Context(), req, options.Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !pc.IsFrontPage() || !pc.IsAmpActive() || pc.IsMultiAuthorSite() {
		t.Fatalf("flags wrong: %+v", pc)
	}
	if pc.ShowOnFrontOption() != "posts" {
		t.Fatalf("ShowOnFront default = %q", pc.ShowOnFrontOption())
	}
}

func TestResolve_MissingPost(t *testing.T) {
	res := &Resolver{Content: &fakeSource{}}
	req := httptest.NewRequest(http.MethodGet, "/page/missing", nil)

	if _, err := res.Resolve(req.Context(), req, options.Options{}); !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
