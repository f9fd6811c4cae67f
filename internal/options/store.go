// internal/options/store.go
//
// Per-site option loader.
//
// Context
// -------
// Every site can override theme options in the `theme_mod` table.  When a
// site is first rendered we run a single query to pull all of its rows,
// layer them over the configured defaults, and cache the resulting
// snapshot.  Later requests hit the in-memory LRU only.
//
// Schema reference
//
//	CREATE TABLE theme_mod (
//	    site_id  INT UNSIGNED NOT NULL,
//	    name     VARCHAR(191) NOT NULL,
//	    value    TEXT         NOT NULL,
//	    PRIMARY KEY (site_id, name)
//	);
//
// Workflow
// --------
//  1. `For` checks the LRU.
//  2. On a miss, concurrent callers for the same site collapse through
//     singleflight so only one query runs.
//  3. Rows are folded into a map, layered over the defaults with koanf
//     (defaults first, rows second), and stored.
//
// Notes
// -----
//   - A Store with a nil DB serves the defaults for every site.  This is the
//     mode used by tests and single-site installs without MySQL.
//   - Oxford commas, two spaces after periods.
package options

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/rig/internal/cache"
	"github.com/yanizio/rig/internal/metrics"
)

// MaxCachedSites bounds the snapshot LRU.
const MaxCachedSites = 256

// Store loads and caches Options per site.
type Store struct {
	db       *sqlx.DB
	defaults map[string]string
	lru      *cache.LRU[uint64, Options]
	sfg      singleflight.Group
}

// NewStore builds a Store.  db may be nil.
func NewStore(db *sqlx.DB, defaults map[string]string) *Store {
	return &Store{
		db:       db,
		defaults: New(defaults).m,
		lru:      cache.New[uint64, Options](MaxCachedSites),
	}
}

// Defaults returns the configured defaults as a snapshot.
func (s *Store) Defaults() Options { return New(s.defaults) }

// For returns the option snapshot for siteID, loading it on demand.
func (s *Store) For(ctx context.Context, siteID uint64) (Options, error) {
	if s.db == nil {
		return s.Defaults(), nil
	}
	if o, ok := s.lru.Get(siteID); ok {
		return o, nil
	}

	v, err, _ := s.sfg.Do(strconv.FormatUint(siteID, 10), func() (any, error) {
		// Double-check after singleflight barrier.
		if o, ok := s.lru.Get(siteID); ok {
			return o, nil
		}
		rows, err := ModsBySite(ctx, s.db, siteID)
		if err != nil {
			metrics.OptionLoadErrorsTotal.Inc()
			zap.S().Errorw("theme_mod load failed", "site_id", siteID, "err", err)
			return nil, fmt.Errorf("load theme mods for site %d: %w", siteID, err)
		}
		m, err := Layer(s.defaults, rows)
		if err != nil {
			return nil, fmt.Errorf("layer theme mods for site %d: %w", siteID, err)
		}
		o := Options{m: m}
		s.lru.Add(siteID, o)
		metrics.OptionLoadTotal.Inc()
		zap.S().Debugw("theme mods loaded", "site_id", siteID, "keys", o.Len())
		return o, nil
	})
	if err != nil {
		return Options{}, err
	}
	return v.(Options), nil
}

// Invalidate drops the cached snapshot so the next For reloads it.
func (s *Store) Invalidate(siteID uint64) { s.lru.Remove(siteID) }

// ModsBySite returns the `theme_mod` rows for one site as map[name]value.
func ModsBySite(ctx context.Context, db *sqlx.DB, siteID uint64) (map[string]string, error) {
	const q = `
	    SELECT  name, value
	    FROM    theme_mod
	    WHERE   site_id = ?`

	rows := make([]struct {
		Name  string `db:"name"`
		Value string `db:"value"`
	}, 0, 16)

	if err := db.SelectContext(ctx, &rows, q, siteID); err != nil {
		return nil, err
	}

	mods := make(map[string]string, len(rows))
	for _, r := range rows {
		mods[r.Name] = r.Value
	}
	return mods, nil
}
