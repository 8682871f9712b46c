package quill

import (
	"sort"
)

// PostSource supplies the posts a site renders. Implementations return
// posts newest first and must not mutate a returned slice afterwards.
type PostSource interface {
	ListPosts() ([]Post, error)
}

// MemorySource serves a fixed set of posts held in memory.
type MemorySource struct {
	posts []Post
}

// NewMemorySource copies posts and orders them newest first.
func NewMemorySource(posts []Post) *MemorySource {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return &MemorySource{posts: sorted}
}

// ListPosts returns all posts.
func (m *MemorySource) ListPosts() ([]Post, error) {
	return m.posts, nil
}
