package content

import (
	"context"
	"sync"
)

// Memory is an in-process Source used when no database is configured.
// It serves every site the same posts.
type Memory struct {
	mu      sync.RWMutex
	posts   map[string]Post // type + "/" + slug
	authors int
}

// NewMemory returns a Memory holding posts, attributed to authors distinct
// authors.
func NewMemory(authors int, posts ...Post) *Memory {
	m := &Memory{posts: make(map[string]Post, len(posts)), authors: authors}
	for _, p := range posts {
		m.Put(p)
	}
	return m
}

// Put adds or replaces a post.
func (m *Memory) Put(p Post) {
	m.mu.Lock()
	m.posts[p.Type+"/"+p.Slug] = p
	m.mu.Unlock()
}

// BySlug implements Source.
func (m *Memory) BySlug(_ context.Context, _ uint64, postType, slug string) (*Post, error) {
	m.mu.RLock()
	p, ok := m.posts[postType+"/"+slug]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// AuthorCount implements Source.
func (m *Memory) AuthorCount(context.Context, uint64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authors, nil
}
