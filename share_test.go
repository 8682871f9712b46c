package quill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildShareURL(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		id       string
		title    string
		base     string
		expect   string
	}{
		{
			name:     "x",
			platform: PlatformX,
			id:       "4",
			title:    "Hello World",
			base:     "https://example.com",
			expect:   "https://twitter.com/intent/tweet?text=Check%20out%20this%20article%3A%20Hello%20World&url=https%3A%2F%2Fexample.com%2Fblog%2F4",
		},
		{
			name:     "linkedin",
			platform: PlatformLinkedIn,
			id:       "4",
			title:    "Hello World",
			base:     "https://example.com",
			expect:   "https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Fexample.com%2Fblog%2F4",
		},
		{
			name:     "trailing slash on base",
			platform: PlatformLinkedIn,
			id:       "7",
			base:     "https://example.com/",
			expect:   "https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Fexample.com%2Fblog%2F7",
		},
		{
			name:     "reserved characters in title",
			platform: PlatformX,
			id:       "1",
			title:    "C++ & Go: 100% (fun)?",
			base:     "https://example.com",
			expect:   "https://twitter.com/intent/tweet?text=Check%20out%20this%20article%3A%20C%2B%2B%20%26%20Go%3A%20100%25%20(fun)%3F&url=https%3A%2F%2Fexample.com%2Fblog%2F1",
		},
		{
			name:     "empty id and title still build",
			platform: PlatformX,
			base:     "https://example.com",
			expect:   "https://twitter.com/intent/tweet?text=Check%20out%20this%20article%3A%20&url=https%3A%2F%2Fexample.com%2Fblog%2F",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, BuildShareURL(tt.platform, tt.id, tt.title, tt.base))
		})
	}
}

func TestBuildShareURLDeterministic(t *testing.T) {
	a := BuildShareURL(PlatformX, "2", "Tailwind", "https://example.com")
	b := BuildShareURL(PlatformX, "2", "Tailwind", "https://example.com")
	assert.Equal(t, a, b)
}

func TestPostURL(t *testing.T) {
	assert.Equal(t, "https://example.com/blog/3", PostURL("https://example.com", "3"))
	assert.Equal(t, "https://example.com/blog/3", PostURL("https://example.com//", "3"))
}

func TestShareLinks(t *testing.T) {
	links := ShareLinks(Post{ID: "5", Title: "Tools"}, "https://example.com")
	if assert.Len(t, links, 2) {
		assert.Equal(t, PlatformX, links[0].Platform)
		assert.Equal(t, "Share on X", links[0].Label)
		assert.Equal(t, PlatformLinkedIn, links[1].Platform)
		assert.Equal(t, "Share on LinkedIn", links[1].Label)
		assert.Contains(t, links[1].URL, "example.com%2Fblog%2F5")
	}
	assert.Equal(t, "x", PlatformX.String())
	assert.Equal(t, "linkedin", PlatformLinkedIn.String())
}
