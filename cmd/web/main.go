// cmd/web/main.go
//
// rig – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Bootstrap console logger, then load config (.env → YAML → RIG_ env).
//
//  2. Resolve a `vault:` database password when one is configured.
//
//  3. Start the daily rotating logger (tees to console on request or TTY).
//
//  4. Open the database when a DSN is set; otherwise serve theme defaults
//     and an empty in-memory content source.
//
//  5. Load the GeoLite2 database when configured.
//
//  6. Load the theme, seed the asset registry, and subscribe the default
//     hooks plus the device body class.
//
//  7. Serve until SIGINT or SIGTERM, then shut down gracefully.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/rig/internal/assets"
	"github.com/yanizio/rig/internal/bodyclass"
	"github.com/yanizio/rig/internal/config"
	"github.com/yanizio/rig/internal/content"
	"github.com/yanizio/rig/internal/database"
	"github.com/yanizio/rig/internal/logger"
	"github.com/yanizio/rig/internal/options"
	"github.com/yanizio/rig/internal/page"
	"github.com/yanizio/rig/internal/requestinfo"
	"github.com/yanizio/rig/internal/server"
	"github.com/yanizio/rig/internal/theme"
	"github.com/yanizio/rig/internal/vault"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("rig: %v", err)
	}
}

func run(ctx context.Context) error {
	logger.Bootstrap()

	//
	// ── 1.  Config and secrets ──────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.NeedsSecrets() {
		vc, err := vault.New(ctx, zap.S())
		if err != nil {
			return err
		}
		if err := config.ResolveSecrets(ctx, cfg, vc.Secret); err != nil {
			return err
		}
	}

	logOut, err := logger.New(cfg.Log.Dir, cfg.Log.Tee || logger.InTTY())
	if err != nil {
		return err
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 2.  Storage (optional) ──────────────────────────────────────────
	//
	var (
		db  *sqlx.DB
		src content.Source = content.NewMemory(1)
	)
	if cfg.Database.DSN != "" {
		db, err = database.Open(ctx, cfg.Database.ConnString())
		if err != nil {
			return err
		}
		defer db.Close()
		src = content.NewRepository(db)
		logOut.Infow("database online", "site", cfg.Database.SiteID)
	} else {
		logOut.Warnw("no database configured; serving theme defaults")
	}
	store := options.NewStore(db, cfg.Theme.Options)

	if cfg.Geo.DB != "" {
		if err := requestinfo.InitGeo(cfg.Geo.DB); err != nil {
			logOut.Warnw("geoip disabled", "db", cfg.Geo.DB, "err", err)
		}
	}

	//
	// ── 3.  Theme ───────────────────────────────────────────────────────
	//
	th, err := (&theme.Manager{BaseDir: cfg.Theme.BaseDir}).Load(cfg.Theme.Name)
	if err != nil {
		return err
	}
	reg := assets.NewRegistry()
	th.RegisterAssets(reg, cfg.Theme.Styles, cfg.Theme.Scripts)
	theme.Setup(th.Hooks, reg, logOut)
	th.Hooks.BodyClass.Add(func(c []string, r *theme.Request) []string {
		return bodyclass.Device(c, r.Page)
	})
	logOut.Infow("theme loaded", "theme", th.Name,
		"styles", len(cfg.Theme.Styles), "scripts", len(cfg.Theme.Scripts))

	//
	// ── 4.  HTTP ────────────────────────────────────────────────────────
	//
	resolver := &page.Resolver{
		SiteID:   cfg.Database.SiteID,
		Content:  src,
		Sidebars: cfg.Theme.Sidebars,
	}
	a := &app{
		siteID:   cfg.Database.SiteID,
		options:  store,
		resolver: resolver,
		theme:    th,
		log:      logOut,
	}

	srv := server.New(cfg.HTTP.ListenAddr, a.routes(cfg.HTTP.ForceHTTPS))
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	return server.Run(ctx, srv)
}
