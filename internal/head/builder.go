// internal/head/builder.go
//
// The Builder collects everything that should appear inside a page’s
// <head> element.  It is scoped to a single request.  The theme’s wp_head
// hooks push tags into the builder, then the layout template emits each
// slice in call order.
//
// Features
// --------
//   - SetTitle     – single <title> tag (last call wins).
//   - Meta, Link   – arbitrary pre-escaped tags with deduplication.
//   - Script       – script tags, deduplicated by handle.
//   - Once         – shared dedupe keys for tags rendered outside the head.
//   - LinkAttrs    – builds an escaped <link> from attribute pairs.
//   - Render helpers – concat methods that return template.HTML.
package head

import (
	"html/template"
	"strings"
	"sync"
)

// Builder is safe for concurrent use, although typical use is one goroutine
// per request.
type Builder struct {
	mu sync.Mutex

	title string

	metas   []string
	links   []string
	scripts []string

	// seen tracks keys for deduplication.
	seen map[string]struct{}
}

func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) {
	b.mu.Lock()
	b.title = t
	b.mu.Unlock()
}

// Title returns a fully formed <title> tag or an empty string.
func (b *Builder) Title() template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.title == "" {
		return ""
	}
	return template.HTML("<title>" + template.HTMLEscapeString(b.title) + "</title>")
}

// ------------------------------------------------------------------
// Slice helpers with deduplication
// ------------------------------------------------------------------

func (b *Builder) Meta(tag string) { b.add("meta:"+tag, &b.metas, tag) }
func (b *Builder) Link(tag string) { b.add("link:"+tag, &b.links, tag) }

// Script adds a rendered script tag once per handle.
func (b *Builder) Script(handle, tag string) { b.add("script:"+handle, &b.scripts, tag) }

// Once reports whether key is new to b and marks it seen.  Callers that
// render outside the head slices use it to share deduplication with them.
func (b *Builder) Once(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.seen[key]; dup {
		return false
	}
	b.seen[key] = struct{}{}
	return true
}

func (b *Builder) add(key string, tgt *[]string, tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	*tgt = append(*tgt, tag)
}

// LinkAttrs renders <link> from ordered key/value pairs, escaping values,
// and adds it with Link.
//
//	b.LinkAttrs("rel", "preload", "href", uri, "as", "style")
func (b *Builder) LinkAttrs(kv ...string) {
	b.Link(linkTag(kv...))
}

func linkTag(kv ...string) string {
	var sb strings.Builder
	sb.WriteString("<link")
	for i := 0; i+1 < len(kv); i += 2 {
		sb.WriteByte(' ')
		sb.WriteString(kv[i])
		sb.WriteString(`="`)
		sb.WriteString(template.HTMLEscapeString(kv[i+1]))
		sb.WriteByte('"')
	}
	sb.WriteString(">")
	return sb.String()
}

// ------------------------------------------------------------------
// Rendering helpers called from theme templates
// ------------------------------------------------------------------

func (b *Builder) Metas() template.HTML   { return b.concat(&b.metas) }
func (b *Builder) Links() template.HTML   { return b.concat(&b.links) }
func (b *Builder) Scripts() template.HTML { return b.concat(&b.scripts) }

// LinkTags returns a copy of the collected <link> tags.
func (b *Builder) LinkTags() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.links))
	copy(out, b.links)
	return out
}

// concat joins pre-escaped tags with newlines.
func (b *Builder) concat(sl *[]string) template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	return template.HTML(strings.Join(*sl, "\n"))
}
