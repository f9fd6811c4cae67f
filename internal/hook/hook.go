// internal/hook/hook.go
//
// Ordered filter and action chains.
//
// Context
// -------
// The theme exposes a handful of extension points at fixed render points.
// Each point is a chain of callbacks registered at boot (usually from
// theme.Setup or cmd/web) and invoked synchronously, in registration order,
// once per request.
//
//   - Filter[T, A] – every callback receives the running value plus a
//     read-only argument and returns the next value.
//   - Action[A]    – every callback receives the argument; errors are
//     collected and joined, later callbacks still run.
//
// Notes
// -----
//   - Registration is guarded by an RWMutex, mirroring the component and
//     widget registries.  Apply takes a snapshot so callbacks may register
//     further hooks without deadlocking.
//   - Oxford commas, two spaces after periods.
package hook

import (
	"errors"
	"sync"
)

//
// Filter
//

// FilterFunc transforms v.  arg is read-only context for the decision.
type FilterFunc[T, A any] func(v T, arg A) T

// Filter is an ordered chain of FilterFuncs.  The zero value is ready to use.
type Filter[T, A any] struct {
	name string
	mu   sync.RWMutex
	fns  []FilterFunc[T, A]
}

// NewFilter returns an empty chain labelled name.
func NewFilter[T, A any](name string) *Filter[T, A] {
	return &Filter[T, A]{name: name}
}

// Name reports the hook name, e.g. "body_class".
func (f *Filter[T, A]) Name() string { return f.name }

// Add appends fn to the chain.
func (f *Filter[T, A]) Add(fn FilterFunc[T, A]) {
	f.mu.Lock()
	f.fns = append(f.fns, fn)
	f.mu.Unlock()
}

// Len reports how many callbacks are registered.
func (f *Filter[T, A]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.fns)
}

// Apply runs every callback in registration order and returns the result.
// With no callbacks v is returned unchanged.
func (f *Filter[T, A]) Apply(v T, arg A) T {
	for _, fn := range f.snapshot() {
		v = fn(v, arg)
	}
	return v
}

func (f *Filter[T, A]) snapshot() []FilterFunc[T, A] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]FilterFunc[T, A], len(f.fns))
	copy(out, f.fns)
	return out
}

//
// Action
//

// ActionFunc performs a side effect, typically writing markup.
type ActionFunc[A any] func(arg A) error

// Action is an ordered chain of ActionFuncs.
type Action[A any] struct {
	name string
	mu   sync.RWMutex
	fns  []ActionFunc[A]
}

// NewAction returns an empty chain labelled name.
func NewAction[A any](name string) *Action[A] {
	return &Action[A]{name: name}
}

// Name reports the hook name, e.g. "wp_head".
func (a *Action[A]) Name() string { return a.name }

// Add appends fn to the chain.
func (a *Action[A]) Add(fn ActionFunc[A]) {
	a.mu.Lock()
	a.fns = append(a.fns, fn)
	a.mu.Unlock()
}

// Do runs every callback in registration order.  A failing callback does not
// stop the chain; all errors are joined into the return value.
func (a *Action[A]) Do(arg A) error {
	a.mu.RLock()
	fns := make([]ActionFunc[A], len(a.fns))
	copy(fns, a.fns)
	a.mu.RUnlock()

	var errs []error
	for _, fn := range fns {
		if err := fn(arg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

//
// Well-known hook names
//

const (
	BodyClass         = "body_class"
	FrontPageSections = "wprig_front_page_sections"
	ScriptLoaderTag   = "script_loader_tag"
	Head              = "wp_head"
)
