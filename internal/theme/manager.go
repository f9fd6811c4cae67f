package theme

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Manager discovers and loads themes.
type Manager struct {
	BaseDir string // e.g., "themes" (relative) or "/srv/rig/themes"
}

// Load parses every *.html under <BaseDir>/<name>/templates.  The layout
// must define LayoutTemplate.
func (m *Manager) Load(name string) (*Theme, error) {
	root := filepath.Join(m.BaseDir, name)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("theme %s not found at %s", name, root)
	}

	files, err := collectHTML(filepath.Join(root, "templates"))
	if err != nil {
		return nil, fmt.Errorf("scan theme %s: %w", name, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("theme %s has no templates", name)
	}

	th := New(name, root, nil)
	tpl, err := template.New("").Funcs(FuncMap(th.AssetFunc)).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", name, err)
	}
	if tpl.Lookup(LayoutTemplate) == nil {
		return nil, fmt.Errorf("theme %s: missing %s", name, LayoutTemplate)
	}
	th.Renderer = tpl
	return th, nil
}

// collectHTML walks rootDir recursively and returns every *.html path in
// slash form.
func collectHTML(rootDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, filepath.ToSlash(path))
		}
		return nil
	})
	return files, err
}
