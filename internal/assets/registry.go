// internal/assets/registry.go
//
// Stylesheet and script registry.
//
// Context
// -------
// The theme registers every stylesheet and script it may reference under a
// short handle (e.g. `wprig-comments`).  Head helpers then look entries up
// by handle to build cache-busted URLs, and the script-tag filter reads
// per-handle loading data (`async`, `defer`).
//
// A lookup for an unregistered handle is an error, never a zero value, so a
// typo in a handle cannot silently produce `href="?ver="`.
//
// Notes
// -----
//   - Registration normally happens once at boot from configuration; the
//     registry is nevertheless safe for concurrent use.
//   - Re-registering a handle replaces the earlier entry.
//   - Oxford commas, two spaces after periods.
package assets

import (
	"errors"
	"fmt"
	"html"
	"sync"
)

var (
	// ErrMissingStyleRegistration is returned for unknown style handles.
	ErrMissingStyleRegistration = errors.New("style not registered")
	// ErrMissingScriptRegistration is returned for unknown script handles.
	ErrMissingScriptRegistration = errors.New("script not registered")
)

// LookupError reports an unregistered handle.  It unwraps to
// ErrMissingStyleRegistration or ErrMissingScriptRegistration.
type LookupError struct {
	Handle string
	Kind   error
}

func (e *LookupError) Error() string { return e.Kind.Error() + ": " + e.Handle }
func (e *LookupError) Unwrap() error { return e.Kind }

// Script data keys understood by the script-tag filter.
const (
	DataAsync = "async"
	DataDefer = "defer"
)

// Style is one registered stylesheet.
type Style struct {
	Handle  string `koanf:"handle"  validate:"required"`
	Src     string `koanf:"src"     validate:"required"`
	Version string `koanf:"version"`
	Media   string `koanf:"media"`
}

// URI returns the cache-busted source: Src + "?ver=" + Version.
func (s Style) URI() string { return s.Src + "?ver=" + s.Version }

// Script is one registered script.
type Script struct {
	Handle  string `koanf:"handle"  validate:"required"`
	Src     string `koanf:"src"     validate:"required"`
	Version string `koanf:"version"`
	Async   bool   `koanf:"async"`
	Defer   bool   `koanf:"defer"`
}

// URI returns the cache-busted source.
func (s Script) URI() string { return s.Src + "?ver=" + s.Version }

// Registry maps handles to styles and scripts.
type Registry struct {
	mu      sync.RWMutex
	styles  map[string]Style
	scripts map[string]Script
	order   []string // script handles in registration order
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		styles:  make(map[string]Style),
		scripts: make(map[string]Script),
	}
}

// RegisterStyle adds or replaces a stylesheet.
func (r *Registry) RegisterStyle(s Style) {
	r.mu.Lock()
	r.styles[s.Handle] = s
	r.mu.Unlock()
}

// Style looks up a stylesheet.  Unknown handles yield an error wrapping
// ErrMissingStyleRegistration.
func (r *Registry) Style(handle string) (Style, error) {
	r.mu.RLock()
	s, ok := r.styles[handle]
	r.mu.RUnlock()
	if !ok {
		return Style{}, &LookupError{Handle: handle, Kind: ErrMissingStyleRegistration}
	}
	return s, nil
}

// RegisterScript adds or replaces a script.
func (r *Registry) RegisterScript(s Script) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scripts[s.Handle]; !ok {
		r.order = append(r.order, s.Handle)
	}
	r.scripts[s.Handle] = s
}

// Script looks up a script.
func (r *Registry) Script(handle string) (Script, error) {
	r.mu.RLock()
	s, ok := r.scripts[handle]
	r.mu.RUnlock()
	if !ok {
		return Script{}, &LookupError{Handle: handle, Kind: ErrMissingScriptRegistration}
	}
	return s, nil
}

// Scripts returns every script handle in registration order.
func (r *Registry) Scripts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// AddScriptData sets a loading flag (DataAsync or DataDefer) on a script.
func (r *Registry) AddScriptData(handle, key string, v bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scripts[handle]
	if !ok {
		return &LookupError{Handle: handle, Kind: ErrMissingScriptRegistration}
	}
	switch key {
	case DataAsync:
		s.Async = v
	case DataDefer:
		s.Defer = v
	default:
		return fmt.Errorf("unknown script data key %q", key)
	}
	r.scripts[handle] = s
	return nil
}

// ScriptData reports the loading flag for handle; unknown handles are false.
func (r *Registry) ScriptData(handle, key string) bool {
	r.mu.RLock()
	s, ok := r.scripts[handle]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	switch key {
	case DataAsync:
		return s.Async
	case DataDefer:
		return s.Defer
	}
	return false
}

// ScriptTag renders the plain tag for handle, before any filter runs:
//
//	<script src="/assets/js/app.js?ver=1" id="app-js"></script>
func (r *Registry) ScriptTag(handle string) (string, error) {
	s, err := r.Script(handle)
	if err != nil {
		return "", err
	}
	return `<script src="` + html.EscapeString(s.URI()) + `" id="` +
		html.EscapeString(s.Handle) + `-js"></script>`, nil
}
