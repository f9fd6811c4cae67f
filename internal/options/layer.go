package options

import (
	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
)

// keyDelim never occurs in option names, so dotted names stay flat.
const keyDelim = "\x1f"

// Layer merges option maps weakest first; each later map overrides the
// keys it sets, including with an empty value.
func Layer(layers ...map[string]string) (map[string]string, error) {
	k := koanf.New(keyDelim)
	for _, l := range layers {
		m := make(map[string]any, len(l))
		for key, v := range l {
			m[key] = v
		}
		if err := k.Load(confmap.Provider(m, ""), nil); err != nil {
			return nil, err
		}
	}

	keys := k.Keys()
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		out[key] = k.String(key)
	}
	return out, nil
}
