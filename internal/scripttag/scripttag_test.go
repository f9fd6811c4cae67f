package scripttag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/rig/internal/assets"
)

const plain = `<script src="a.js"></script>`

func TestInject_AsyncWinsOverDefer(t *testing.T) {
	got := Inject(plain, true, true)
	assert.Equal(t, `<script src="a.js" async></script>`, got)
	assert.NotContains(t, got, "defer")
}

func TestInject_Defer(t *testing.T) {
	assert.Equal(t, `<script src="a.js" defer></script>`, Inject(plain, false, true))
}

func TestInject_NoFlags(t *testing.T) {
	assert.Equal(t, plain, Inject(plain, false, false))
}

func TestInject_AlreadyPresent(t *testing.T) {
	tag := `<script defer src="a.js"></script>`
	assert.Equal(t, tag, Inject(tag, false, true))

	tag = `<script src="a.js" defer="defer"></script>`
	assert.Equal(t, tag, Inject(tag, false, true))
}

func TestInject_AttributeNamesIgnoreCase(t *testing.T) {
	tag := `<script src="a.js" DEFER></script>`
	assert.Equal(t, tag, Inject(tag, false, true))

	tag = `<script src="a.js" Async></script>`
	assert.Equal(t, tag, Inject(tag, true, false))
}

// async already present and requested: nothing is inserted and defer is
// not considered, even though it was also requested.
func TestInject_FirstRequestedShortCircuits(t *testing.T) {
	tag := `<script src="a.js" async></script>`
	assert.Equal(t, tag, Inject(tag, true, true))
}

func TestInject_AttributeNameInsideValueIsNotAMatch(t *testing.T) {
	tag := `<script src="defer.js" data-mode="async"></script>`
	assert.Equal(t, `<script src="defer.js" data-mode="async" defer></script>`, Inject(tag, false, true))
}

func TestInject_SkipsInlineScripts(t *testing.T) {
	tag := "<script id=\"app-js-extra\">var app = {\"async\":1};</script>\n" +
		`<script src="app.js" id="app-js"></script>`
	want := "<script id=\"app-js-extra\">var app = {\"async\":1};</script>\n" +
		`<script src="app.js" id="app-js" async></script>`
	assert.Equal(t, want, Inject(tag, true, false))
}

func TestInject_MalformedUnchanged(t *testing.T) {
	for _, tag := range []string{
		`<script src="a.js">`,
		`<script src="a.js"`,
		`<link rel="stylesheet" href="a.css">`,
		``,
		`not markup at all`,
	} {
		assert.Equal(t, tag, Inject(tag, true, true), "input %q", tag)
	}
}

func TestParse_Script(t *testing.T) {
	f, ok := Parse(`<script type="module" src="m.js"></script>`)
	require.True(t, ok)
	tag, ok := f.Script()
	require.True(t, ok)
	assert.Equal(t, "script", tag.Name)
	assert.True(t, tag.Has("TYPE"))
	assert.False(t, tag.Has("async"))
	assert.False(t, tag.SelfClosing)
}

func TestFilter_UsesRegistryData(t *testing.T) {
	reg := assets.NewRegistry()
	reg.RegisterScript(assets.Script{Handle: "nav", Src: "/nav.js", Version: "1", Defer: true})
	reg.RegisterScript(assets.Script{Handle: "plain", Src: "/plain.js", Version: "1"})

	f := Filter(reg)
	navTag, _ := reg.ScriptTag("nav")
	assert.Equal(t, `<script src="/nav.js?ver=1" id="nav-js" defer></script>`, f(navTag, "nav"))

	plainTag, _ := reg.ScriptTag("plain")
	assert.Equal(t, plainTag, f(plainTag, "plain"))
	assert.Equal(t, plain, f(plain, "unregistered"))
}
