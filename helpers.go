package quill

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RecentPosts returns up to n posts other than current, keeping the order
// of posts (newest first when they come from a PostSource).
func RecentPosts(current Post, posts []Post, n int) []Post {
	var recent []Post
	for _, p := range posts {
		if len(recent) == n {
			break
		}
		if p.ID == current.ID {
			continue
		}
		recent = append(recent, p)
	}
	return recent
}

// Initials returns the avatar fallback for a name, e.g. "JD" for "John Doe".
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}

// HomeURL returns the listing URL for a search query and tag selection.
// Tags are written in sorted order so equal selections share a URL.
func HomeURL(query string, active TagSet) string {
	v := url.Values{}
	v.Set("q", query)
	for _, t := range active.Sorted() {
		v.Add("tag", t)
	}
	return "/?" + v.Encode()
}

// TagButtons builds the tag bar for the listing: one button per tag, each
// linking to the selection with that tag toggled.
func TagButtons(tags []string, query string, active TagSet) []TagButton {
	buttons := make([]TagButton, 0, len(tags))
	for _, t := range tags {
		buttons = append(buttons, TagButton{
			Name:   t,
			Active: active.Has(t),
			URL:    HomeURL(query, ToggleTag(active, t)),
		})
	}
	return buttons
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Profile.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Profile.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post Post, cfg SiteConfig) string {
	postURL := PostURL(cfg.URL, post.ID)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Description,
		"datePublished": post.Date(),
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.ImageURL != "" {
		data["image"] = post.ImageURL
	}
	if post.Author.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  post.Author.Name,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
