// internal/page/context.go
//
// Per-request page snapshot.
//
// Context
// -------
// Every render decision in the theme reads the same small set of flags:
// what kind of view is being rendered, which sidebars carry widgets, whether
// the customizer preview or AMP mode is active, and the comment state of
// the current post.  `Context` captures those flags once, when the request
// is resolved, and is then passed explicitly to body-class, preload, and
// panel helpers.  Nothing in the theme reaches for global state.
//
// Notes
// -----
//   - Context is immutable after Resolve returns.  Helpers take a pointer for
//     cheap passing only and must not write to it.
//   - Accessor names match the host queries the theme was designed against.
//   - Oxford commas, two spaces after periods.
package page

// PrimarySidebar is the sidebar id whose state drives `has-sidebar` and the
// widgets preload.
const PrimarySidebar = "sidebar-1"

// Context is the read-only snapshot of one request's page state.
type Context struct {
	FrontPage         bool
	Singular          bool
	Archive           bool
	Page              bool
	MultiAuthor       bool
	CustomizerPreview bool
	HeaderImage       bool
	AMP               bool
	CommentsOpen      bool
	PasswordRequired  bool
	CommentCount      int

	HeaderTextColor string // "blank" hides the site title and tagline
	ShowOnFront     string // "posts" or "page"
	Device          string // "desktop", "phone", ... (request info)

	ActiveSidebars map[string]bool
}

func (c *Context) IsFrontPage() bool            { return c.FrontPage }
func (c *Context) IsSingular() bool             { return c.Singular }
func (c *Context) IsPage() bool                 { return c.Page }
func (c *Context) IsArchive() bool              { return c.Archive }
func (c *Context) IsMultiAuthorSite() bool      { return c.MultiAuthor }
func (c *Context) IsCustomizerPreview() bool    { return c.CustomizerPreview }
func (c *Context) HasCustomHeaderImage() bool   { return c.HeaderImage }
func (c *Context) IsAmpActive() bool            { return c.AMP }
func (c *Context) IsCommentsOpen() bool         { return c.CommentsOpen }
func (c *Context) IsPasswordRequired() bool     { return c.PasswordRequired }
func (c *Context) CommentCountValue() int       { return c.CommentCount }
func (c *Context) HeaderTextColorValue() string { return c.HeaderTextColor }
func (c *Context) ShowOnFrontOption() string    { return c.ShowOnFront }

// IsSidebarActive reports whether the sidebar id has widgets assigned.
func (c *Context) IsSidebarActive(id string) bool {
	return c.ActiveSidebars[id]
}
