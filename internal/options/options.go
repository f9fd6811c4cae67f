// internal/options/options.go
//
// ThemeOptions snapshot.
//
// Context
// -------
// Theme options ("theme mods") are string key-value pairs such as
// `colorscheme`, `page_layout`, `header_textcolor`, and `panel_1` ...
// `panel_N`.  A snapshot is built once per site by Store and then read
// without locks by every request.
//
// Unknown or malformed values never surface as errors.  Each typed accessor
// falls back to a documented default instead.
//
// Notes
// -----
//   - Keys are case-sensitive.
//   - Oxford commas, two spaces after periods.
package options

import (
	"strconv"
	"strings"
)

// Option keys read by the theme.
const (
	KeyColorScheme     = "colorscheme"
	KeyPageLayout      = "page_layout"
	KeyHeaderTextColor = "header_textcolor"
	KeyHeaderImage     = "header_image"
	KeyShowOnFront     = "show_on_front"
)

// Defaults for the keys above.
const (
	DefaultColorScheme = "light"
	LayoutOneColumn    = "one-column"
	LayoutTwoColumn    = "two-column"
	HeaderTextHidden   = "blank"
)

// colorSchemes is the whitelist accepted by ColorScheme.
var colorSchemes = map[string]struct{}{
	"light":  {},
	"dark":   {},
	"custom": {},
}

// Options is an immutable snapshot.  The zero value is an empty set.
type Options struct {
	m map[string]string
}

// New copies m into a snapshot.
func New(m map[string]string) Options {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Options{m: cp}
}

// Get returns the raw value for key or def when absent.
func (o Options) Get(key, def string) string {
	if v, ok := o.m[key]; ok {
		return v
	}
	return def
}

// Int parses the value for key.  Absent or non-numeric values yield def.
func (o Options) Int(key string, def int) int {
	v, ok := o.m[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Bool reports whether key holds a truthy value: anything except "", "0",
// and "false".
func (o Options) Bool(key string) bool {
	switch strings.TrimSpace(o.m[key]) {
	case "", "0", "false":
		return false
	}
	return true
}

// Len reports the number of keys.
func (o Options) Len() int { return len(o.m) }

// ColorScheme returns the sanitized `colorscheme` option.  Anything outside
// the whitelist maps to "light".
func (o Options) ColorScheme() string {
	return SanitizeColorScheme(o.Get(KeyColorScheme, DefaultColorScheme))
}

// SanitizeColorScheme maps v onto the known scheme names.
func SanitizeColorScheme(v string) string {
	if _, ok := colorSchemes[v]; ok {
		return v
	}
	return DefaultColorScheme
}

// PageLayout returns "one-column" when configured so, else "two-column".
func (o Options) PageLayout() string {
	if o.Get(KeyPageLayout, LayoutTwoColumn) == LayoutOneColumn {
		return LayoutOneColumn
	}
	return LayoutTwoColumn
}
