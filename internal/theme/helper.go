//
//  internal/theme/helper.go
//
//  Template functions available to every theme template:
//
//	{{ asset "css/global.css" }}      → /themes/wprig/assets/css/global.css
//	<body class="{{ classes .BodyClass }}">
//	{{ if hasClass .BodyClass "has-sidebar" }} … {{ end }}
//	{{ range seq .PanelCount }} … {{ end }}
//

package theme

import (
	"html/template"
	"strings"
)

// FuncMap returns the theme template function map.
func FuncMap(asset func(string) string) template.FuncMap {
	return template.FuncMap{
		"asset": asset,

		// classes joins body-class tokens with single spaces.  html/template
		// escapes the result in attribute context.
		"classes": func(c []string) string { return strings.Join(c, " ") },

		"hasClass": func(c []string, want string) bool {
			for _, v := range c {
				if v == want {
					return true
				}
			}
			return false
		},

		// seq yields 1..n for ranging over front-page panels.
		"seq": func(n int) []int {
			if n < 0 {
				n = 0
			}
			out := make([]int, 0, n)
			for i := 1; i <= n; i++ {
				out = append(out, i)
			}
			return out
		},
	}
}
