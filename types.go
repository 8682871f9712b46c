package quill

import "time"

// DateLayout is the calendar-date format used for post and comment dates.
const DateLayout = "2006-01-02"

// Post is a single blog entry. Posts are immutable once loaded from a PostSource.
type Post struct {
	ID          string
	Title       string
	Description string
	Tags        []string
	CreatedAt   time.Time
	ReadingTime string
	ImageURL    string
	Content     string // HTML
	Author      Author
	Comments    []Comment
}

// Date returns the post's creation date formatted as YYYY-MM-DD.
func (p Post) Date() string {
	if p.CreatedAt.IsZero() {
		return ""
	}
	return p.CreatedAt.Format(DateLayout)
}

// Link returns the site-relative route of the post detail view.
func (p Post) Link() string {
	return "/blog/" + p.ID
}

// Author is the person credited on a post or comment.
type Author struct {
	Name   string `yaml:"name" toml:"name"`
	Avatar string `yaml:"avatar" toml:"avatar"`
}

// Comment is a read-only reader comment shown under a post.
type Comment struct {
	ID        string
	Author    Author
	Content   string
	CreatedAt time.Time
}

// Date returns the comment date formatted as YYYY-MM-DD.
func (c Comment) Date() string {
	return c.CreatedAt.Format(DateLayout)
}

// Profile is the site owner card shown beside the post list.
type Profile struct {
	Name        string       `yaml:"name" toml:"name"`
	Avatar      string       `yaml:"avatar" toml:"avatar"`
	JobTitle    string       `yaml:"job_title" toml:"job_title"`
	Description string       `yaml:"description" toml:"description"`
	Social      []SocialLink `yaml:"social" toml:"social"`
}

// SocialLink points at one of the owner's external profiles.
type SocialLink struct {
	Name string `yaml:"name" toml:"name"`
	URL  string `yaml:"url" toml:"url"`
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
	JSONLD      string
}

// TagButton is one entry of the home page tag bar. URL points at the
// listing with this tag toggled.
type TagButton struct {
	Name   string
	Active bool
	URL    string
}

// HomePage is the view model for the blog listing.
type HomePage struct {
	Site       SiteConfig
	Meta       PageMeta
	Query      string
	Tags       []TagButton
	ActiveTags []string
	Posts      []Post
	Total      int
	Profile    Profile
	Flashes    []string
	CSRFToken  string
}

// PostPage is the view model for a single post.
type PostPage struct {
	Site      SiteConfig
	Meta      PageMeta
	Post      Post
	Share     []ShareLink
	Recent    []Post
	Flashes   []string
	CSRFToken string
}
