// internal/config/loader.go
//
// Configuration loader and hot-reloader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `RIG_`, where `__` maps to “.”
     (e.g., `RIG_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled into strongly-typed structs,
validated, enriched with the runtime root path, and cached in an
`atomic.Pointer` for lock-free reads.  `Reload()` simply calls `Load()`
again and swaps the pointer.

`ResolveSecrets()` runs after `Load()` once a secret resolver (normally the
Vault client) is available.  It replaces a `vault:` database password with
the fetched value.

Instrumentation
---------------
  - DEBUG spans: root discovery, YAML read.
  - ERROR spans: YAML parse, env overlay, unmarshal, validation failures.
  - INFO  span:  final “config loaded” with key highlights.
  - Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed.

Notes
-----
  - `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`;
    this lets `go run ./cmd/web` work from any sub-directory.
  - Oxford commas, two spaces after periods.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix marks environment overrides.
const EnvPrefix = "RIG_"

// VaultPrefix marks a secret reference of the form vault:<path>#<key>.
const VaultPrefix = "vault:"

var current atomic.Pointer[Config]

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves RIG_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to executable heuristic for production layout.
func rootDir() string {
	if r := os.Getenv(EnvPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads config from the discovered root and caches it.
func Load() (*Config, error) {
	return LoadFrom(rootDir())
}

// LoadFrom reads .env, YAML, env overrides, validates, and caches Config.
func LoadFrom(root string) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	// Env overrides: RIG_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	applyDefaults(&cfg)
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"theme", cfg.Theme.Name,
		"database", cfg.Database.DSN != "",
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// envKey maps RIG_THEME__OPTIONS__COLORSCHEME to theme.options.colorscheme.
func envKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", "."))
}

// applyDefaults fills values YAML may omit.
func applyDefaults(c *Config) {
	if c.Theme.BaseDir == "" {
		c.Theme.BaseDir = "themes"
	}
	if !filepath.IsAbs(c.Theme.BaseDir) {
		c.Theme.BaseDir = filepath.Join(c.Paths.Root, c.Theme.BaseDir)
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
	if !filepath.IsAbs(c.Log.Dir) {
		c.Log.Dir = filepath.Join(c.Paths.Root, c.Log.Dir)
	}
	if c.Geo.DB != "" && !filepath.IsAbs(c.Geo.DB) {
		c.Geo.DB = filepath.Join(c.Paths.Root, c.Geo.DB)
	}
}

/*──────────────────────────── secrets ─────────────────────────────────────*/

// SecretFunc fetches key from the secret at path.
type SecretFunc func(ctx context.Context, path, key string) (string, error)

// IsSecretRef reports whether v is a vault:<path>#<key> reference.
func IsSecretRef(v string) bool { return strings.HasPrefix(v, VaultPrefix) }

// ParseSecretRef splits vault:<path>#<key>.
func ParseSecretRef(v string) (path, key string, err error) {
	ref := strings.TrimPrefix(v, VaultPrefix)
	path, key, ok := strings.Cut(ref, "#")
	if !IsSecretRef(v) || !ok || path == "" || key == "" {
		return "", "", fmt.Errorf("config: malformed secret reference %q", v)
	}
	return path, key, nil
}

// ResolveSecrets replaces secret references in c using fetch.  It is a
// no-op when nothing refers to a secret.
func ResolveSecrets(ctx context.Context, c *Config, fetch SecretFunc) error {
	if !IsSecretRef(c.Database.Password) {
		return nil
	}
	path, key, err := ParseSecretRef(c.Database.Password)
	if err != nil {
		return err
	}
	pw, err := fetch(ctx, path, key)
	if err != nil {
		return fmt.Errorf("config: resolve database password: %w", err)
	}
	c.Database.Password = pw
	zap.S().Debugw("config secret resolved", "path", path, "key", key)
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// NeedsSecrets reports whether c carries unresolved secret references.
func (c *Config) NeedsSecrets() bool { return IsSecretRef(c.Database.Password) }

func Get() *Config  { return current.Load() }
func Reload() error { _, err := Load(); return err }
