// internal/config/model.go
//
// Typed configuration model for rig.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   - optional `.env`                       – dotenv values,
//   - `conf/global.yaml`                    – primary static file,
//   - `RIG_`-prefixed environment overrides – highest precedence.
//
// A database password that begins with `vault:` is resolved through the
// Vault client after validation, so the rest of the app only ever sees a
// plain DSN.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   - The `Paths` block is filled at runtime; YAML must not try to set it.
//   - Theme styles and scripts reuse the assets types so the registry can
//     be seeded straight from config.
//   - Oxford commas, two spaces after periods.  No em-dash.

package config

import (
	"fmt"
	"strings"

	"github.com/yanizio/rig/internal/assets"
)

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database is optional.  With an empty DSN the server runs on theme
// defaults and an in-memory content source.
//
// DSN may contain one `%s` verb that receives Password, so the secret can
// live in Vault while host, port, and flags stay in YAML.
type Database struct {
	DSN      string `koanf:"dsn"`
	Password string `koanf:"password"`
	SiteID   uint64 `koanf:"site_id"`
}

// ConnString returns DSN with Password substituted for its `%s` verb.  A
// DSN without the verb is returned unchanged.
func (d Database) ConnString() string {
	if !strings.Contains(d.DSN, "%s") {
		return d.DSN
	}
	return fmt.Sprintf(d.DSN, d.Password)
}

//
// Theme section
//

// Theme selects the theme directory and seeds its registry.
type Theme struct {
	Name     string            `koanf:"name"     validate:"required"`
	BaseDir  string            `koanf:"base_dir" validate:"required"`
	Sidebars []string          `koanf:"sidebars"`
	Options  map[string]string `koanf:"options"`
	Styles   []assets.Style    `koanf:"styles"   validate:"dive"`
	Scripts  []assets.Script   `koanf:"scripts"  validate:"dive"`
}

//
// Log section
//

// Log controls the file logger.  Dir is relative to Paths.Root unless
// absolute.
type Log struct {
	Dir string `koanf:"dir"`
	Tee bool   `koanf:"tee"`
}

//
// Geo section
//

// Geo points at an optional MaxMind country database.
type Geo struct {
	DB string `koanf:"db"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // RIG_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Theme    Theme    `koanf:"theme"`
	Log      Log      `koanf:"log"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
