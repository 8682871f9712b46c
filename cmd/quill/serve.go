package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	glog "github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/eringen/quill"
	"github.com/eringen/quill/markdown"
	"github.com/eringen/quill/views"
)

type serveOptions struct {
	addr         string
	url          string
	name         string
	description  string
	db           string
	postsDir     string
	staticDir    string
	profile      string
	analytics    bool
	analyticsDB  string
	cookieSecure bool
	cacheTTL     time.Duration
	debug        bool
}

func serveCmd() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the blog HTTP server",
		Long: `Run the blog HTTP server.

QUILL_SESSION_SECRET must be set. Flags default to the matching QUILL_*
environment variables. Send SIGHUP to reload posts without restarting.

Examples:
  # Serve the SQLite database, seeding demo posts on first run
  quill serve

  # Serve a directory of Markdown posts
  quill serve --posts-dir content/posts --url https://blog.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", quill.EnvOr("QUILL_ADDR", ":3000"), "Listen address")
	f.StringVar(&opts.url, "url", quill.EnvOr("QUILL_URL", "http://localhost:3000"), "Canonical site URL")
	f.StringVar(&opts.name, "name", quill.EnvOr("QUILL_NAME", ""), "Site name")
	f.StringVar(&opts.description, "description", quill.EnvOr("QUILL_DESCRIPTION", ""), "Site description")
	f.StringVar(&opts.db, "db", quill.EnvOr("QUILL_DB", "data/blog.db"), "SQLite database path")
	f.StringVar(&opts.postsDir, "posts-dir", quill.EnvOr("QUILL_POSTS_DIR", ""), "Serve Markdown posts from this directory instead of the database")
	f.StringVar(&opts.staticDir, "static", quill.EnvOr("QUILL_STATIC_DIR", "public"), "Static assets directory")
	f.StringVar(&opts.profile, "profile", quill.EnvOr("QUILL_PROFILE", ""), "Owner profile file (.yaml, .yml or .toml)")
	f.BoolVar(&opts.analytics, "analytics", quill.EnvOr("QUILL_ANALYTICS", "") == "true", "Record read depth")
	f.StringVar(&opts.analyticsDB, "analytics-db", quill.EnvOr("QUILL_ANALYTICS_DB", "data/analytics.db"), "Analytics SQLite path")
	f.BoolVar(&opts.cookieSecure, "cookie-secure", quill.EnvOr("QUILL_COOKIE_SECURE", "") == "true", "Mark cookies Secure (HTTPS only)")
	f.DurationVar(&opts.cacheTTL, "cache-ttl", 5*time.Minute, "Post cache TTL")
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	return cmd
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg := quill.SiteConfig{
		Name:                  opts.name,
		URL:                   opts.url,
		Description:           opts.description,
		Addr:                  opts.addr,
		DatabasePath:          opts.db,
		AnalyticsEnabled:      opts.analytics,
		AnalyticsDatabasePath: opts.analyticsDB,
		SessionSecret:         quill.MustEnv("QUILL_SESSION_SECRET"),
		CookieSecure:          opts.cookieSecure,
		PostCacheTTL:          opts.cacheTTL,
	}
	if opts.profile != "" {
		p, err := quill.LoadProfile(opts.profile)
		if err != nil {
			return err
		}
		cfg.Profile = p
	}
	cfg = cfg.WithDefaults()

	appOpts := []quill.Option{quill.WithStaticDir(opts.staticDir)}
	if opts.postsDir != "" {
		appOpts = append(appOpts, quill.WithSource(markdown.NewSource(opts.postsDir)))
	}

	app := quill.New(cfg, views.New(cfg), appOpts...)
	if opts.debug {
		app.Echo.Logger.SetLevel(glog.DEBUG)
	}

	if err := app.Init(); err != nil {
		return errors.Join(err, app.Close())
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	errCh := make(chan error, 1)
	go func() { errCh <- app.Serve() }()

	log.Printf("quill listening on %s (%s)", cfg.Addr, cfg.URL)

wait:
	for {
		select {
		case err := <-errCh:
			return errors.Join(err, app.Close())
		case <-hup:
			// Picks up edited Markdown files or rows written by "quill import".
			app.Reload()
			log.Print("reloaded posts")
		case <-ctx.Done():
			break wait
		}
	}

	log.Print("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
