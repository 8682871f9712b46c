// Package markdown loads posts from Markdown files with YAML (---) or TOML
// (+++) front matter.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/frontmatter"

	"github.com/eringen/quill"
)

// ErrNoTitle is returned for documents whose front matter has no title.
var ErrNoTitle = errors.New("markdown: missing title")

// Meta is the front matter of a post file.
type Meta struct {
	ID          string       `yaml:"id" toml:"id"`
	Title       string       `yaml:"title" toml:"title"`
	Description string       `yaml:"description" toml:"description"`
	Tags        []string     `yaml:"tags" toml:"tags"`
	Date        time.Time    `yaml:"date" toml:"date"`
	Image       string       `yaml:"image" toml:"image"`
	ReadingTime string       `yaml:"reading_time" toml:"reading_time"`
	Author      quill.Author `yaml:"author" toml:"author"`
}

// Parser converts Markdown documents into posts.
type Parser struct {
	md goldmark.Markdown
}

// New returns a Parser with GFM, typographer, footnotes and front matter
// enabled, and automatic heading IDs.
func New() *Parser {
	return &Parser{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			extension.Footnote,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
	)}
}

// Parse renders src and returns the post it describes. The ID comes from the
// front matter, or from the slugified title when absent.
func (p *Parser) Parse(src []byte) (quill.Post, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := p.md.Convert(src, &buf, parser.WithContext(ctx)); err != nil {
		return quill.Post{}, fmt.Errorf("markdown: convert: %w", err)
	}

	var meta Meta
	if data := frontmatter.Get(ctx); data != nil {
		if err := data.Decode(&meta); err != nil {
			return quill.Post{}, fmt.Errorf("markdown: decode front matter: %w", err)
		}
	}
	if strings.TrimSpace(meta.Title) == "" {
		return quill.Post{}, ErrNoTitle
	}

	html := buf.String()
	post := quill.Post{
		ID:          meta.ID,
		Title:       meta.Title,
		Description: meta.Description,
		Tags:        quill.FilterEmpty(meta.Tags),
		CreatedAt:   meta.Date,
		ReadingTime: meta.ReadingTime,
		ImageURL:    meta.Image,
		Content:     html,
		Author:      meta.Author,
	}
	if post.ID == "" {
		post.ID = slug.Make(meta.Title)
	}
	if post.ReadingTime == "" {
		post.ReadingTime = ReadingTime(html)
	}
	return post, nil
}

var reTag = regexp.MustCompile(`<[^>]*>`)

// ReadingTime estimates reading time of rendered HTML at 200 words per
// minute, rounded up, never below "1 min".
func ReadingTime(html string) string {
	const wordsPerMinute = 200
	words := len(strings.Fields(reTag.ReplaceAllString(html, " ")))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}

// LoadDir parses every .md file directly under dir. Files without an ID in
// their front matter are named after the file.
func (p *Parser) LoadDir(dir string) ([]quill.Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("markdown: read dir: %w", err)
	}

	var posts []quill.Post
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".md" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("markdown: read %s: %w", e.Name(), err)
		}
		post, err := p.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("markdown: %s: %w", e.Name(), err)
		}
		if !hasExplicitID(src) {
			post.ID = slug.Make(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		}
		if other, dup := seen[post.ID]; dup {
			return nil, fmt.Errorf("markdown: %s and %s share id %q", other, e.Name(), post.ID)
		}
		seen[post.ID] = e.Name()
		posts = append(posts, post)
	}
	return posts, nil
}

var reIDLine = regexp.MustCompile(`(?m)^id\s*[:=]`)

// hasExplicitID reports whether the front matter block of src sets an id.
func hasExplicitID(src []byte) bool {
	s := string(src)
	var fence string
	switch {
	case strings.HasPrefix(s, "---"):
		fence = "---"
	case strings.HasPrefix(s, "+++"):
		fence = "+++"
	default:
		return false
	}
	rest := s[len(fence):]
	end := strings.Index(rest, "\n"+fence)
	if end < 0 {
		return false
	}
	return reIDLine.MatchString(rest[:end])
}

// Source is a quill.PostSource that reads a directory of Markdown files on
// every call. Pair it with quill.PostCache to avoid reparsing per request.
type Source struct {
	dir    string
	parser *Parser
}

// NewSource returns a Source reading from dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir, parser: New()}
}

// ListPosts returns the directory's posts, newest first.
func (s *Source) ListPosts() ([]quill.Post, error) {
	posts, err := s.parser.LoadDir(s.dir)
	if err != nil {
		return nil, err
	}
	return quill.NewMemorySource(posts).ListPosts()
}
