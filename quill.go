// Package quill is a small server-rendered blog built with Go, Echo, and templ.
// It serves a searchable, tag-filterable post listing and a post page with
// reading progress and share links.
//
// Users provide their templ components via the ViewFuncs struct; quill owns
// the handlers, middleware, post sources and filtering.
package quill

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	glog "github.com/labstack/gommon/log"

	"github.com/eringen/quill/analytics"
)

// ViewFuncs holds the templ components the app renders.
type ViewFuncs struct {
	Home        func(page HomePage) templ.Component
	BlogSection func(page HomePage) templ.Component
	Post        func(page PostPage) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central quill application. It wires together the post source,
// cache, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store // nil when WithSource supplies the posts
	Cache  *PostCache
	Views  ViewFuncs

	source         PostSource
	submitLimiter  *SubmitLimiter
	analyticsStore *analytics.Store
	stopCleanup    func()
	images         *imageCache
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg = cfg.WithDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		images:    newImageCache(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(glog.INFO)

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the post source and analytics, then registers middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.Config.SessionSecret == "" {
		return errors.New("quill: SessionSecret is required")
	}
	if a.Views.Home == nil || a.Views.BlogSection == nil || a.Views.Post == nil ||
		a.Views.NotFound == nil || a.Views.ServerError == nil {
		return errors.New("quill: every ViewFuncs component is required")
	}

	if a.source == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("quill: init store: %w", err)
		}
		if _, err := store.Seed(SeedPosts()); err != nil {
			store.Close()
			return fmt.Errorf("quill: seed store: %w", err)
		}
		a.Store = store
		a.source = store
	}

	a.Cache = NewPostCache(a.source, a.Config.PostCacheTTL)
	a.submitLimiter = NewSubmitLimiter(5, time.Minute)

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("quill: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		if err := analytics.InitSalt(analyticsStore); err != nil {
			return fmt.Errorf("quill: init analytics salt: %w", err)
		}
		a.stopCleanup = analyticsStore.StartCleanupScheduler(365, 24*time.Hour)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves HTTP until the server stops.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	return a.Serve()
}

// Serve listens on Config.Addr until the server stops. Init must have run.
func (a *App) Serve() error {
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Reload drops the cached posts so the next request reads the source again.
func (a *App) Reload() {
	if a.Cache != nil {
		a.Cache.Invalidate()
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework scripts are served from the embedded FS; everything else
	// under /public comes from the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/quill.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/:id", a.handlePost)
	e.POST("/blog/:id/comments", a.handleComment)
	e.POST("/newsletter", a.handleNewsletter)
	e.GET("/img/:id/:size", a.handleImage)
	e.GET("/ws/progress/:id", a.handleProgressSocket)

	if a.analyticsStore != nil {
		analytics.NewHandler(a.analyticsStore).RegisterRoutes(e)
	}
}

// Shutdown stops the HTTP server gracefully, then releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	return errors.Join(err, a.Close())
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.submitLimiter != nil {
		a.submitLimiter.Stop()
	}
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.analyticsStore != nil {
		errs = append(errs, a.analyticsStore.Close())
	}
	return errors.Join(errs...)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("quill: required environment variable %s is not set", key)
	}
	return v
}
