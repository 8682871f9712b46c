package quill

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "blog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		ID:          "hello",
		Title:       "Hello",
		Description: "First post",
		Tags:        []string{"Go", "Web Development"},
		CreatedAt:   day("2024-01-02"),
		ReadingTime: "3 min",
		ImageURL:    "/public/hello.jpg",
		Content:     "<p>Hi</p>",
		Author:      Author{Name: "Jane", Avatar: "/public/jane.jpg"},
		Comments: []Comment{
			{ID: "1", Author: Author{Name: "Bob"}, Content: "Nice", CreatedAt: day("2024-01-03")},
		},
	}
	require.NoError(t, s.SavePost(post))

	got, err := s.GetPost("hello")
	require.NoError(t, err)
	assert.Equal(t, post, got)
}

func TestSavePostUpdate(t *testing.T) {
	s := setupTestStore(t)

	post := Post{ID: "p", Title: "Old", CreatedAt: day("2024-01-01"), Tags: []string{"Go"},
		Comments: []Comment{{ID: "1", Author: Author{Name: "A"}, Content: "x", CreatedAt: day("2024-01-01")}}}
	require.NoError(t, s.SavePost(post))

	post.Title = "New"
	post.Tags = []string{"Rust"}
	post.Comments = nil
	require.NoError(t, s.SavePost(post))

	got, err := s.GetPost("p")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, []string{"Rust"}, got.Tags)
	assert.Empty(t, got.Comments)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSavePostRequiresID(t *testing.T) {
	s := setupTestStore(t)
	assert.Error(t, s.SavePost(Post{Title: "No id"}))
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.GetPost("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPostsNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	for _, p := range []Post{
		{ID: "a", Title: "A", CreatedAt: day("2023-01-01")},
		{ID: "b", Title: "B", CreatedAt: day("2023-03-01")},
		{ID: "c", Title: "C", CreatedAt: day("2023-02-01")},
	} {
		require.NoError(t, s.SavePost(p))
	}

	posts, err := s.ListPosts()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, ids(posts))
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	s := setupTestStore(t)

	seeded, err := s.Seed(SeedPosts())
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = s.Seed(SeedPosts())
	require.NoError(t, err)
	assert.False(t, seeded)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, len(SeedPosts()), n)

	post, err := s.GetPost("4")
	require.NoError(t, err)
	assert.Len(t, post.Comments, 2)
	assert.Equal(t, "Jane Smith", post.Comments[0].Author.Name)
}

func TestListTags(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SavePost(Post{ID: "1", CreatedAt: day("2024-02-01"), Tags: []string{"Go", "Web"}}))
	require.NoError(t, s.SavePost(Post{ID: "2", CreatedAt: day("2024-01-01"), Tags: []string{"Web", "CSS"}}))

	tags, err := s.ListTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Web", "CSS"}, tags)
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SavePost(Post{ID: "gone", CreatedAt: day("2024-01-01"),
		Comments: []Comment{{ID: "1", Content: "bye", CreatedAt: day("2024-01-01")}}}))
	require.NoError(t, s.DeletePost("gone"))

	_, err := s.GetPost("gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrune(t *testing.T) {
	s := setupTestStore(t)
	for _, p := range []Post{
		{ID: "a", CreatedAt: day("2024-01-01")},
		{ID: "b", CreatedAt: day("2024-02-01"), Comments: []Comment{{ID: "1", Content: "hi", CreatedAt: day("2024-02-02")}}},
		{ID: "c", CreatedAt: day("2024-03-01")},
	} {
		require.NoError(t, s.SavePost(p))
	}

	deleted, err := s.Prune([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, deleted)

	posts, err := s.ListPosts()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(posts))

	deleted, err = s.Prune([]string{"a"})
	require.NoError(t, err)
	assert.Empty(t, deleted)
}

func TestTagsWithCommasRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	tags := []string{"C, C++", "Go", "go"}
	require.NoError(t, s.SavePost(Post{ID: "langs", Title: "Languages", CreatedAt: day("2024-01-01"), Tags: tags}))

	got, err := s.GetPost("langs")
	require.NoError(t, err)
	assert.Equal(t, tags, got.Tags)

	posts, err := s.ListPosts()
	require.NoError(t, err)
	assert.Equal(t, []string{"langs"}, ids(FilterPosts(posts, "", NewTagSet("C, C++"))))
}

func TestFormatAndParseTags(t *testing.T) {
	tests := []struct {
		tags   []string
		stored string
		parsed []string
	}{
		{[]string{"Go", "Web Development"}, `["Go","Web Development"]`, []string{"Go", "Web Development"}},
		{[]string{" Go ", "", "CSS"}, `["Go","CSS"]`, []string{"Go", "CSS"}},
		{[]string{"C, C++"}, `["C, C++"]`, []string{"C, C++"}},
		{nil, `[]`, nil},
	}
	for _, tt := range tests {
		stored := FormatTags(tt.tags)
		assert.Equal(t, tt.stored, stored)
		assert.Equal(t, tt.parsed, ParseTags(stored))
	}
}

func TestParseLegacyCommaTags(t *testing.T) {
	assert.Equal(t, []string{"Go", "Web"}, ParseTags(",Go,Web,"))
	assert.Nil(t, ParseTags(","))
}
