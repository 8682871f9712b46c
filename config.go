package quill

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a quill site.
type SiteConfig struct {
	Name        string // Site name (default "My Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Logo        string // Header/footer logo URL

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")

	AnalyticsEnabled      bool   // Record read depth from the progress socket
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
	RecentPosts  int           // Recent posts under a post (default 4)

	Profile Profile // Owner card; defaults to DefaultProfile()
}

// WithDefaults returns a copy of c with every unset field filled in.
func (c SiteConfig) WithDefaults() SiteConfig {
	if c.Name == "" {
		c.Name = "My Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Description == "" {
		c.Description = "Exploring the world of technology, one post at a time. Join me on this journey of continuous learning and discovery."
	}
	if c.Logo == "" {
		c.Logo = seedImage
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.RecentPosts == 0 {
		c.RecentPosts = 4
	}
	if c.Profile.Name == "" {
		c.Profile = DefaultProfile()
	}
	return c
}

// LoadProfile reads an owner profile from a YAML (.yaml, .yml) or TOML
// (.toml) file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("quill: read profile: %w", err)
	}
	var p Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	case ".toml":
		err = toml.Unmarshal(data, &p)
	default:
		return Profile{}, fmt.Errorf("quill: unsupported profile format %q", filepath.Ext(path))
	}
	if err != nil {
		return Profile{}, fmt.Errorf("quill: decode profile %s: %w", path, err)
	}
	if p.Name == "" {
		return Profile{}, fmt.Errorf("quill: profile %s has no name", path)
	}
	return p, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithSource serves posts from src instead of the SQLite store.
func WithSource(src PostSource) Option {
	return func(a *App) {
		a.source = src
	}
}
