package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlPost = `---
title: Hello, World!
description: A first post
tags: [Go, Web]
date: 2024-03-01
image: /public/hello.png
author:
  name: Jane Doe
  avatar: /public/jane.png
---
# Heading

Some *text* with a footnote.[^1]

[^1]: The note.
`

const tomlPost = `+++
id = "custom"
title = "TOML post"
tags = ["Rust"]
date = 2024-02-01
reading_time = "12 min"
+++
Body text.
`

func TestParseYAML(t *testing.T) {
	p, err := New().Parse([]byte(yamlPost))
	require.NoError(t, err)

	assert.Equal(t, "hello-world", p.ID)
	assert.Equal(t, "Hello, World!", p.Title)
	assert.Equal(t, "A first post", p.Description)
	assert.Equal(t, []string{"Go", "Web"}, p.Tags)
	assert.Equal(t, "2024-03-01", p.Date())
	assert.Equal(t, "/public/hello.png", p.ImageURL)
	assert.Equal(t, "Jane Doe", p.Author.Name)
	assert.Equal(t, "/public/jane.png", p.Author.Avatar)
	assert.Equal(t, "1 min", p.ReadingTime)

	assert.Contains(t, p.Content, `<h1 id="heading">Heading</h1>`)
	assert.Contains(t, p.Content, "<em>text</em>")
	assert.Contains(t, p.Content, "footnote")
	assert.NotContains(t, p.Content, "title:", "front matter is not rendered")
}

func TestParseTOML(t *testing.T) {
	p, err := New().Parse([]byte(tomlPost))
	require.NoError(t, err)

	assert.Equal(t, "custom", p.ID)
	assert.Equal(t, "TOML post", p.Title)
	assert.Equal(t, []string{"Rust"}, p.Tags)
	assert.Equal(t, "2024-02-01", p.CreatedAt.Format("2006-01-02"))
	assert.Equal(t, "12 min", p.ReadingTime, "explicit reading time wins")
	assert.Contains(t, p.Content, "<p>Body text.</p>")
}

func TestParseRequiresTitle(t *testing.T) {
	_, err := New().Parse([]byte("# Just markdown\n"))
	assert.ErrorIs(t, err, ErrNoTitle)

	_, err = New().Parse([]byte("---\ndescription: no title\n---\nbody\n"))
	assert.ErrorIs(t, err, ErrNoTitle)
}

func TestParseGFMTable(t *testing.T) {
	src := "---\ntitle: Table\n---\n| a | b |\n|---|---|\n| 1 | 2 |\n"
	p, err := New().Parse([]byte(src))
	require.NoError(t, err)
	assert.Contains(t, p.Content, "<table>")
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words  int
		expect string
	}{
		{0, "1 min"},
		{10, "1 min"},
		{200, "1 min"},
		{201, "2 min"},
		{450, "3 min"},
	}
	for _, tt := range tests {
		html := "<p>" + strings.TrimSpace(strings.Repeat("word ", tt.words)) + "</p>"
		assert.Equal(t, tt.expect, ReadingTime(html), "%d words", tt.words)
	}
}

func writePosts(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestLoadDir(t *testing.T) {
	dir := writePosts(t, map[string]string{
		"First Post.md":   yamlPost,
		"toml.md":         tomlPost,
		"notes.txt":       "ignored",
		"drafts/draft.md": yamlPost,
	})

	posts, err := New().LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	byID := make(map[string]string)
	for _, p := range posts {
		byID[p.ID] = p.Title
	}
	assert.Equal(t, map[string]string{
		"first-post": "Hello, World!",
		"custom":     "TOML post",
	}, byID)
}

func TestLoadDirDuplicateIDs(t *testing.T) {
	dir := writePosts(t, map[string]string{
		"a.md": tomlPost,
		"b.md": tomlPost,
	})
	_, err := New().LoadDir(dir)
	assert.ErrorContains(t, err, `share id "custom"`)
}

func TestLoadDirReportsBadFile(t *testing.T) {
	dir := writePosts(t, map[string]string{"broken.md": "no front matter\n"})
	_, err := New().LoadDir(dir)
	assert.ErrorIs(t, err, ErrNoTitle)
	assert.ErrorContains(t, err, "broken.md")
}

func TestSourceNewestFirst(t *testing.T) {
	dir := writePosts(t, map[string]string{
		"yaml.md": yamlPost,
		"toml.md": tomlPost,
	})
	posts, err := NewSource(dir).ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "yaml", posts[0].ID)
	assert.Equal(t, "custom", posts[1].ID)
}

func TestHasExplicitID(t *testing.T) {
	assert.True(t, hasExplicitID([]byte(tomlPost)))
	assert.False(t, hasExplicitID([]byte(yamlPost)))
	assert.False(t, hasExplicitID([]byte("id: not front matter\n")))
}
