package quill

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	mu    sync.Mutex
	posts []Post
	err   error
	calls int
}

func (s *countingSource) ListPosts() ([]Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.posts, s.err
}

func (s *countingSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestPostCacheReusesWithinTTL(t *testing.T) {
	src := &countingSource{posts: testPosts()}
	c := NewPostCache(src, time.Minute)

	for i := 0; i < 3; i++ {
		posts, err := c.ListPosts()
		require.NoError(t, err)
		assert.Len(t, posts, 4)
	}
	assert.Equal(t, 1, src.count())
}

func TestPostCacheReloadsAfterTTL(t *testing.T) {
	src := &countingSource{posts: testPosts()}
	c := NewPostCache(src, 20*time.Millisecond)

	_, err := c.ListPosts()
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	_, err = c.ListPosts()
	require.NoError(t, err)
	assert.Equal(t, 2, src.count())
}

func TestPostCacheInvalidate(t *testing.T) {
	src := &countingSource{posts: testPosts()}
	c := NewPostCache(src, time.Hour)

	_, err := c.ListTags()
	require.NoError(t, err)
	c.Invalidate()
	_, err = c.ListTags()
	require.NoError(t, err)
	assert.Equal(t, 2, src.count())
}

func TestPostCacheEmptySourceIsCached(t *testing.T) {
	src := &countingSource{}
	c := NewPostCache(src, time.Hour)

	posts, err := c.ListPosts()
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	_, err = c.ListPosts()
	require.NoError(t, err)
	assert.Equal(t, 1, src.count())
}

func TestPostCacheSourceError(t *testing.T) {
	boom := errors.New("boom")
	c := NewPostCache(&countingSource{err: boom}, time.Hour)

	_, err := c.ListPosts()
	assert.ErrorIs(t, err, boom)
	_, err = c.GetPost("1")
	assert.ErrorIs(t, err, boom)
}

func TestPostCacheGetPostAndFilter(t *testing.T) {
	c := NewPostCache(NewMemorySource(testPosts()), time.Hour)

	p, err := c.GetPost("2")
	require.NoError(t, err)
	assert.Equal(t, "Mastering Tailwind", p.Title)

	_, err = c.GetPost("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := c.Filter("", NewTagSet("React"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "3"}, ids(got))

	tags, err := c.ListTags()
	require.NoError(t, err)
	assert.Contains(t, tags, "Tailwind")
}

func TestPostCacheConcurrentReads(t *testing.T) {
	src := &countingSource{posts: testPosts()}
	c := NewPostCache(src, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Filter("css", NewTagSet())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, src.count())
}

func TestMemorySourceNewestFirst(t *testing.T) {
	posts := []Post{
		{ID: "old", CreatedAt: day("2023-01-01")},
		{ID: "new", CreatedAt: day("2024-01-01")},
		{ID: "mid", CreatedAt: day("2023-06-01")},
	}
	got, err := NewMemorySource(posts).ListPosts()
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(got))
	assert.Equal(t, "old", posts[0].ID, "input slice is not reordered")
}
