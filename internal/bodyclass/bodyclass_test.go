package bodyclass

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/rig/internal/options"
	"github.com/yanizio/rig/internal/page"
)

func TestCompute_AllTokensInOrder(t *testing.T) {
	pc := &page.Context{
		FrontPage:         true,
		Archive:           true,
		MultiAuthor:       true,
		CustomizerPreview: true,
		HeaderImage:       true,
		HeaderTextColor:   "blank",
		ShowOnFront:       "page",
		ActiveSidebars:    map[string]bool{page.PrimarySidebar: true},
	}
	o := options.New(map[string]string{"page_layout": "one-column", "colorscheme": "dark"})

	got := Compute([]string{"home"}, pc, o)
	assert.Equal(t, []string{
		"home",
		"group-blog",
		"hfeed",
		"wprig-customizer",
		"wprig-front-page",
		"has-header-image",
		"has-sidebar",
		"page-one-column",
		"title-tagline-hidden",
		"colors-dark",
	}, got)
}

func TestCompute_SingularPage(t *testing.T) {
	pc := &page.Context{
		Singular:       true,
		Page:           true,
		ShowOnFront:    "posts",
		ActiveSidebars: map[string]bool{page.PrimarySidebar: true},
	}
	got := Compute(nil, pc, options.New(nil))
	assert.Equal(t, []string{"page-two-column", "colors-light"}, got)
}

func TestCompute_FrontPageShowingPosts(t *testing.T) {
	pc := &page.Context{FrontPage: true, ShowOnFront: "posts"}
	got := Compute(nil, pc, options.New(nil))
	assert.NotContains(t, got, FrontPage)
	assert.Contains(t, got, HFeed)
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	in := make([]string, 1, 8)
	in[0] = "keep"
	_ = Compute(in, &page.Context{}, options.New(nil))
	assert.Equal(t, []string{"keep"}, in[:1])
	assert.Equal(t, "", in[:2][1], "input backing array written")
}

// Every combination of view flags yields exactly one colors token and never
// both column tokens.
func TestCompute_TokenRulesHoldForAllFlags(t *testing.T) {
	schemes := []string{"light", "dark", "custom", "bogus", ""}
	for mask := 0; mask < 1<<8; mask++ {
		pc := &page.Context{
			FrontPage:         mask&1 != 0,
			Singular:          mask&2 != 0,
			Archive:           mask&4 != 0,
			Page:              mask&8 != 0,
			MultiAuthor:       mask&16 != 0,
			CustomizerPreview: mask&32 != 0,
			HeaderImage:       mask&64 != 0,
			ActiveSidebars:    map[string]bool{page.PrimarySidebar: mask&128 != 0},
		}
		scheme := schemes[mask%len(schemes)]
		got := Compute(nil, pc, options.New(map[string]string{"colorscheme": scheme}))

		var colors, one, two int
		for _, c := range got {
			switch {
			case strings.HasPrefix(c, ColorsPrefix):
				colors++
				require.Contains(t, []string{"colors-light", "colors-dark", "colors-custom"}, c)
			case c == PageOneColumn:
				one++
			case c == PageTwoColumn:
				two++
			}
		}
		require.Equal(t, 1, colors, "mask %08b: %v", mask, got)
		require.False(t, one > 0 && two > 0, "mask %08b: %v", mask, got)
	}
}

func TestDevice(t *testing.T) {
	assert.Equal(t, []string{"a", "device-phone"}, Device([]string{"a"}, &page.Context{Device: "phone"}))
	assert.Equal(t, []string{"a"}, Device([]string{"a"}, &page.Context{Device: "unknown"}))
	assert.Equal(t, []string{"a"}, Device([]string{"a"}, &page.Context{}))
}

func TestDevice_LeavesInputUntouched(t *testing.T) {
	in := make([]string, 1, 4)
	in[0] = "a"

	phone := Device(in, &page.Context{Device: "phone"})
	tablet := Device(in, &page.Context{Device: "tablet"})

	assert.Equal(t, []string{"a"}, in)
	assert.Equal(t, "", in[:2][1], "spare capacity of the input was written")
	assert.Equal(t, []string{"a", "device-phone"}, phone)
	assert.Equal(t, []string{"a", "device-tablet"}, tablet)
}
