// Package panel counts the configured front-page sections.
//
// A panel is populated when the theme option `panel_<i>` holds a page id
// (any value other than "", "0", or "false").  The number of candidate
// sections defaults to four and may be changed through the
// `wprig_front_page_sections` filter.
package panel

import (
	"strconv"

	"github.com/yanizio/rig/internal/hook"
	"github.com/yanizio/rig/internal/options"
)

// DefaultSections is the section count before filters run.
const DefaultSections = 4

// Count returns how many i in [1, total] satisfy has.  total <= 0 yields 0.
func Count(total int, has func(i int) bool) int {
	n := 0
	for i := 1; i <= total; i++ {
		if has(i) {
			n++
		}
	}
	return n
}

// FromOptions returns the hasPanel accessor backed by o.
func FromOptions(o options.Options) func(int) bool {
	return func(i int) bool {
		return o.Bool(Key(i))
	}
}

// Key is the option key for section i.
func Key(i int) string { return "panel_" + strconv.Itoa(i) }

// Sections applies the front-page-sections filter to DefaultSections.
func Sections[A any](f *hook.Filter[int, A], arg A) int {
	if f == nil {
		return DefaultSections
	}
	return f.Apply(DefaultSections, arg)
}
