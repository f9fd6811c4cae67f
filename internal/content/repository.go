// internal/content/repository.go
//
// Read-only access to post rows.
//
// Context
// -------
// The page resolver needs only a sliver of post data to decide body classes
// and comment-stylesheet preloads: the post type, whether comments are
// open, how many approved comments exist, and whether a password protects
// the post.  `Repository` fetches exactly that, plus the distinct author
// count used for the `group-blog` class.
//
// Schema reference
//
//	CREATE TABLE post (
//	    id              INT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
//	    site_id         INT UNSIGNED NOT NULL,
//	    author_id       INT UNSIGNED NOT NULL,
//	    slug            VARCHAR(200) NOT NULL,
//	    type            VARCHAR(20)  NOT NULL DEFAULT 'post',
//	    status          VARCHAR(20)  NOT NULL DEFAULT 'publish',
//	    comment_status  VARCHAR(20)  NOT NULL DEFAULT 'open',
//	    comment_count   INT          NOT NULL DEFAULT 0,
//	    password        VARCHAR(255) NOT NULL DEFAULT ''
//	);
//
// Notes
// -----
//   - Errors are returned verbatim except sql.ErrNoRows, which becomes
//     ErrNotFound so handlers can answer 404 without importing database/sql.
//   - Oxford commas, two spaces after periods.
package content

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no published post matches.
var ErrNotFound = errors.New("content not found")

// Post types the resolver distinguishes.
const (
	TypePost = "post"
	TypePage = "page"
)

// Post is the subset of a post row the theme cares about.
type Post struct {
	ID            uint64 `db:"id"`
	Slug          string `db:"slug"`
	Type          string `db:"type"`
	CommentStatus string `db:"comment_status"`
	CommentCount  int    `db:"comment_count"`
	Password      string `db:"password"`
}

// CommentsOpen reports whether new comments are accepted.
func (p *Post) CommentsOpen() bool { return p.CommentStatus == "open" }

// PasswordRequired reports whether the post is password protected.
func (p *Post) PasswordRequired() bool { return p.Password != "" }

// Source is what the page resolver needs.  *Repository satisfies it; tests
// supply fakes.
type Source interface {
	BySlug(ctx context.Context, siteID uint64, postType, slug string) (*Post, error)
	AuthorCount(ctx context.Context, siteID uint64) (int, error)
}

// Repository queries the `post` table.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps db.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// BySlug fetches one published post of the given type.
func (r *Repository) BySlug(ctx context.Context, siteID uint64, postType, slug string) (*Post, error) {
	const q = `
	    SELECT  id, slug, type, comment_status, comment_count, password
	    FROM    post
	    WHERE   site_id = ?
	      AND   type    = ?
	      AND   slug    = ?
	      AND   status  = 'publish'
	    LIMIT   1`

	var p Post
	if err := r.db.GetContext(ctx, &p, q, siteID, postType, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// AuthorCount returns how many distinct authors have published posts.  Two
// is enough to know the site is multi-author, so the query stops there.
func (r *Repository) AuthorCount(ctx context.Context, siteID uint64) (int, error) {
	const q = `
	    SELECT  COUNT(*) FROM (
	        SELECT  DISTINCT author_id
	        FROM    post
	        WHERE   site_id = ?
	          AND   type    = 'post'
	          AND   status  = 'publish'
	        LIMIT   2
	    ) AS authors`

	var n int
	if err := r.db.GetContext(ctx, &n, q, siteID); err != nil {
		return 0, err
	}
	return n, nil
}
