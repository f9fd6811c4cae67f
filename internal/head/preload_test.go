// internal/head/preload_test.go
//
// Unit-tests for PreloadSet and Emitter.
//
// Run: go test ./internal/head -v

package head

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yanizio/rig/internal/assets"
	"github.com/yanizio/rig/internal/page"
)

func fullRegistry() *assets.Registry {
	reg := assets.NewRegistry()
	for _, name := range preloadOrder {
		reg.RegisterStyle(assets.Style{
			Handle:  StyleHandle(name),
			Src:     "/themes/wprig/assets/css/" + name + ".css",
			Version: "2.0",
		})
	}
	reg.RegisterStyle(assets.Style{Handle: PrintStyleHandle, Src: "/css/print.css", Version: "2.0", Media: "print"})
	return reg
}

func handles(set []PreloadEntry) string {
	var out []string
	for _, p := range set {
		out = append(out, p.Handle)
	}
	return strings.Join(out, ",")
}

func TestPreloadSet_SingularWithComments(t *testing.T) {
	pc := &page.Context{
		Singular:       true,
		CommentCount:   1,
		ActiveSidebars: map[string]bool{page.PrimarySidebar: true},
	}
	set, err := PreloadSet(pc, fullRegistry(), 0)
	if err != nil {
		t.Fatalf("PreloadSet error: %v", err)
	}
	if got := handles(set); got != "wprig-singular,wprig-widgets,wprig-comments" {
		t.Fatalf("handles = %s", got)
	}
	if set[0].Href != "/themes/wprig/assets/css/singular.css?ver=2.0" {
		t.Fatalf("href = %s", set[0].Href)
	}
}

func TestPreloadSet_CommentsGates(t *testing.T) {
	reg := fullRegistry()
	cases := []struct {
		name string
		pc   page.Context
		want bool
	}{
		{"open", page.Context{Singular: true, CommentsOpen: true}, true},
		{"closed with comments", page.Context{Singular: true, CommentCount: 4}, true},
		{"closed without comments", page.Context{Singular: true}, false},
		{"password", page.Context{Singular: true, CommentsOpen: true, PasswordRequired: true}, false},
		{"front page", page.Context{Singular: true, FrontPage: true, CommentsOpen: true}, false},
		{"archive", page.Context{Archive: true, CommentsOpen: true}, false},
	}
	for _, c := range cases {
		set, _ := PreloadSet(&c.pc, reg, 0)
		got := strings.Contains(handles(set), "wprig-comments")
		if got != c.want {
			t.Errorf("%s: comments preload = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestPreloadSet_FrontPagePanels(t *testing.T) {
	reg := fullRegistry()

	set, _ := PreloadSet(&page.Context{FrontPage: true}, reg, 0)
	if strings.Contains(handles(set), "wprig-front-page") {
		t.Fatalf("front-page preload with zero panels: %s", handles(set))
	}

	set, _ = PreloadSet(&page.Context{FrontPage: true}, reg, 2)
	if handles(set) != "wprig-front-page" {
		t.Fatalf("handles = %s", handles(set))
	}

	set, _ = PreloadSet(&page.Context{CustomizerPreview: true}, reg, 0)
	if !strings.Contains(handles(set), "wprig-front-page") {
		t.Fatalf("customizer preview must preload front-page: %s", handles(set))
	}
}

func TestPreloadSet_AMP(t *testing.T) {
	pc := &page.Context{
		AMP:               true,
		Singular:          true,
		CommentsOpen:      true,
		CustomizerPreview: true,
		ActiveSidebars:    map[string]bool{page.PrimarySidebar: true},
	}
	set, err := PreloadSet(pc, assets.NewRegistry(), 3)
	if err != nil || len(set) != 0 {
		t.Fatalf("AMP set = %v, err = %v", set, err)
	}
}

func TestPreloadSet_MissingRegistration(t *testing.T) {
	reg := assets.NewRegistry()
	reg.RegisterStyle(assets.Style{Handle: "wprig-singular", Src: "s.css", Version: "1"})

	pc := &page.Context{Singular: true, CommentsOpen: true}
	set, err := PreloadSet(pc, reg, 0)
	if !errors.Is(err, assets.ErrMissingStyleRegistration) {
		t.Fatalf("err = %v, want ErrMissingStyleRegistration", err)
	}
	if handles(set) != "wprig-singular" {
		t.Fatalf("handles = %s", handles(set))
	}
}

func TestEmitter_AMPStillEmitsPrint(t *testing.T) {
	b := New()
	e := NewEmitter(fullRegistry(), zap.NewNop().Sugar())

	pc := &page.Context{AMP: true, Singular: true, CommentsOpen: true}
	if err := e.Emit(b, pc, 4); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	links := b.LinkTags()
	if len(links) != 1 {
		t.Fatalf("links = %v", links)
	}
	want := `<link rel="stylesheet" id="wprig-print-styles-css" href="/css/print.css?ver=2.0" media="print">`
	if links[0] != want {
		t.Fatalf("print link = %s", links[0])
	}
}

func TestEmitter_PreloadMarkup(t *testing.T) {
	b := New()
	e := NewEmitter(fullRegistry(), zap.NewNop().Sugar())

	if err := e.Emit(b, &page.Context{Singular: true}, 0); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	links := b.LinkTags()
	want := `<link rel="preload" id="wprig-singular-preload" ` +
		`href="/themes/wprig/assets/css/singular.css?ver=2.0" as="style">`
	if len(links) != 2 || links[0] != want {
		t.Fatalf("links = %v", links)
	}
	if !strings.Contains(string(b.Links()), "media=\"print\"") {
		t.Fatalf("print link missing from rendered links")
	}
}

func TestEmitter_EscapesAttributes(t *testing.T) {
	reg := assets.NewRegistry()
	reg.RegisterStyle(assets.Style{Handle: "wprig-singular", Src: `/css/a.css?x="y"&z=1`, Version: "1"})
	reg.RegisterStyle(assets.Style{Handle: PrintStyleHandle, Src: "javascript:alert(1)", Version: "1"})

	b := New()
	_ = NewEmitter(reg, zap.NewNop().Sugar()).Emit(b, &page.Context{Singular: true}, 0)

	out := string(b.Links())
	if strings.Contains(out, `"y"`) || strings.Contains(out, "javascript:") {
		t.Fatalf("unescaped output: %s", out)
	}
	if !strings.Contains(out, "&amp;z=1") {
		t.Fatalf("ampersand not escaped: %s", out)
	}
}

func TestEmitter_WarnsOncePerHandle(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := NewEmitter(assets.NewRegistry(), zap.New(core).Sugar())

	pc := &page.Context{Singular: true}
	for i := 0; i < 3; i++ {
		err := e.Emit(New(), pc, 0)
		if !errors.Is(err, assets.ErrMissingStyleRegistration) {
			t.Fatalf("err = %v", err)
		}
	}
	// wprig-singular and wprig-print-styles, one line each.
	if n := logs.Len(); n != 2 {
		t.Fatalf("warn lines = %d, want 2", n)
	}
}

func TestEscURL(t *testing.T) {
	cases := map[string]string{
		"style.css?ver=1.2":             "style.css?ver=1.2",
		"https://cdn.example/a.css":     "https://cdn.example/a.css",
		" /a b.css ":                    "/a%20b.css",
		"javascript:alert(1)":           "",
		"data:text/css,body{color:red}": "",
	}
	for in, want := range cases {
		if got := EscURL(in); got != want {
			t.Errorf("EscURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStyleTag_MediaDefaultsToAll(t *testing.T) {
	got := StyleTag(assets.Style{Handle: "wprig-global", Src: "/css/global.css", Version: "2.0"})
	want := `<link rel="stylesheet" id="wprig-global-css" href="/css/global.css?ver=2.0" media="all">`
	if got != want {
		t.Fatalf("StyleTag = %s", got)
	}
	got = StyleTag(assets.Style{Handle: "wprig-x", Src: "/x.css", Version: "1", Media: "screen"})
	if !strings.HasSuffix(got, `media="screen">`) {
		t.Fatalf("StyleTag = %s", got)
	}
}

func TestStylesheet_OncePerBuilder(t *testing.T) {
	reg := fullRegistry()
	b := New()

	first, err := Stylesheet(b, reg, StyleHandle(PreloadComments))
	if err != nil || !strings.Contains(first, `id="wprig-comments-css"`) {
		t.Fatalf("first = %q, %v", first, err)
	}
	if again, err := Stylesheet(b, reg, StyleHandle(PreloadComments)); err != nil || again != "" {
		t.Fatalf("again = %q, %v", again, err)
	}
	if other, _ := Stylesheet(New(), reg, StyleHandle(PreloadComments)); other != first {
		t.Fatalf("fresh builder = %q", other)
	}
}

func TestStylesheet_Missing(t *testing.T) {
	_, err := Stylesheet(New(), assets.NewRegistry(), GlobalStyleHandle)
	if !errors.Is(err, assets.ErrMissingStyleRegistration) {
		t.Fatalf("err = %v", err)
	}
}
