// internal/scripttag/scripttag.go
//
// async / defer injection for rendered <script> tags.
//
// Context
// -------
// Scripts are registered with optional loading data (`async`, `defer`).
// When the head builder renders a script tag, the `script_loader_tag`
// filter hands us the markup plus the handle, and we add the requested
// attribute.
//
// Rules
// -----
//   - Only one attribute is ever added.  async is considered first; when it
//     is requested, defer is not looked at, even if async was already
//     present and nothing was inserted.
//   - The fragment is tokenized with golang.org/x/net/html.  The target is
//     the first <script> start tag that is immediately followed by its
//     </script> end tag (an external script with no inline body).
//   - When the target already carries the attribute, the markup is
//     returned unchanged.  Attribute names match case-insensitively, as
//     HTML defines them: `DEFER` counts as `defer`.  The tokenizer
//     lowercases names, so Tag.Has compares lowercase keys.
//   - Fragments without such a target, or that fail to tokenize, are
//     returned unchanged.
//   - Tokens other than the target start tag keep their raw bytes; the
//     attribute is spliced in right before the start tag's closing `>`.
package scripttag

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/yanizio/rig/internal/assets"
	"github.com/yanizio/rig/internal/metrics"
)

// Tag is the parsed form of one element tag.
type Tag struct {
	Name        string
	Attrs       []html.Attribute
	SelfClosing bool
}

// Has reports whether the tag carries attribute key.  Keys are compared
// lower-case, as the tokenizer normalises them.
func (t Tag) Has(key string) bool {
	key = strings.ToLower(key)
	for _, a := range t.Attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

type token struct {
	tt  html.TokenType
	raw string
	tag Tag
}

// Fragment is a tokenized markup fragment.
type Fragment struct {
	toks []token
}

// Parse tokenizes s.  ok is false when the tokenizer reports anything other
// than a clean end of input.
func Parse(s string) (f Fragment, ok bool) {
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return f, errors.Is(z.Err(), io.EOF)
		}
		t := token{tt: tt, raw: string(z.Raw())}
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			t.tag = Tag{Name: tok.Data, Attrs: tok.Attr, SelfClosing: tt == html.SelfClosingTagToken}
		}
		f.toks = append(f.toks, t)
	}
}

// String reassembles the fragment.
func (f Fragment) String() string {
	var b strings.Builder
	for _, t := range f.toks {
		b.WriteString(t.raw)
	}
	return b.String()
}

// target returns the index of the first empty <script> element's start tag,
// or -1.
func (f Fragment) target() int {
	for i := 0; i+1 < len(f.toks); i++ {
		start, end := f.toks[i], f.toks[i+1]
		if start.tt == html.StartTagToken && start.tag.Name == "script" &&
			end.tt == html.EndTagToken && end.tag.Name == "script" {
			return i
		}
	}
	return -1
}

// Script returns the parsed target script tag, if any.
func (f Fragment) Script() (Tag, bool) {
	i := f.target()
	if i < 0 {
		return Tag{}, false
	}
	return f.toks[i].tag, true
}

// addAttr splices a boolean attribute into the target start tag.  It
// reports whether the fragment changed.
func (f *Fragment) addAttr(name string) bool {
	i := f.target()
	if i < 0 || f.toks[i].tag.Has(name) {
		return false
	}
	t := &f.toks[i]
	raw := strings.TrimSuffix(t.raw, ">")
	t.raw = raw + " " + name + ">"
	t.tag.Attrs = append(t.tag.Attrs, html.Attribute{Key: name})
	return true
}

// Attr picks the attribute to add: "async", "defer", or "" for none.
func Attr(wantsAsync, wantsDefer bool) string {
	switch {
	case wantsAsync:
		return assets.DataAsync
	case wantsDefer:
		return assets.DataDefer
	}
	return ""
}

// Inject returns tag with at most one of async / defer added.
func Inject(tag string, wantsAsync, wantsDefer bool) string {
	out, _ := inject(tag, Attr(wantsAsync, wantsDefer))
	return out
}

func inject(tag, attr string) (string, bool) {
	if attr == "" {
		return tag, false
	}
	f, ok := Parse(tag)
	if !ok || !f.addAttr(attr) {
		return tag, false
	}
	return f.String(), true
}

// Filter returns a script_loader_tag callback that reads loading data for
// the handle from reg.
func Filter(reg *assets.Registry) func(tag, handle string) string {
	return func(tag, handle string) string {
		attr := Attr(reg.ScriptData(handle, assets.DataAsync), reg.ScriptData(handle, assets.DataDefer))
		out, changed := inject(tag, attr)
		if changed {
			metrics.ScriptTagsRewrittenTotal.WithLabelValues(attr).Inc()
		}
		return out
	}
}
