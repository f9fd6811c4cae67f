// Package bodyclass computes the theme's <body> class tokens.
//
// Compute appends tokens in a fixed order so output is reproducible.  Each
// condition is independent of the others; none can fail.
package bodyclass

import (
	"github.com/yanizio/rig/internal/options"
	"github.com/yanizio/rig/internal/page"
)

// Class tokens.
const (
	GroupBlog          = "group-blog"
	HFeed              = "hfeed"
	Customizer         = "wprig-customizer"
	FrontPage          = "wprig-front-page"
	HasHeaderImage     = "has-header-image"
	HasSidebar         = "has-sidebar"
	PageOneColumn      = "page-one-column"
	PageTwoColumn      = "page-two-column"
	TitleTaglineHidden = "title-tagline-hidden"
	ColorsPrefix       = "colors-"
)

// Compute returns classes with the theme tokens appended.  The input slice
// is never written to.
func Compute(classes []string, pc *page.Context, o options.Options) []string {
	out := make([]string, len(classes), len(classes)+10)
	copy(out, classes)

	if pc.IsMultiAuthorSite() {
		out = append(out, GroupBlog)
	}
	if !pc.IsSingular() {
		out = append(out, HFeed)
	}
	if pc.IsCustomizerPreview() {
		out = append(out, Customizer)
	}
	if pc.IsFrontPage() && pc.ShowOnFrontOption() != "posts" {
		out = append(out, FrontPage)
	}
	if pc.HasCustomHeaderImage() {
		out = append(out, HasHeaderImage)
	}
	if pc.IsSidebarActive(page.PrimarySidebar) && !pc.IsPage() {
		out = append(out, HasSidebar)
	}
	if pc.IsPage() || pc.IsArchive() {
		if o.PageLayout() == options.LayoutOneColumn {
			out = append(out, PageOneColumn)
		} else {
			out = append(out, PageTwoColumn)
		}
	}
	if pc.HeaderTextColorValue() == options.HeaderTextHidden {
		out = append(out, TitleTaglineHidden)
	}
	return append(out, ColorsPrefix+o.ColorScheme())
}

// Device returns a body_class filter that adds `device-<class>` when the
// request info recognised the client.  The input slice is never written.
func Device(classes []string, pc *page.Context) []string {
	if pc.Device == "" || pc.Device == "unknown" {
		return classes
	}
	out := make([]string, len(classes), len(classes)+1)
	copy(out, classes)
	return append(out, "device-"+pc.Device)
}
