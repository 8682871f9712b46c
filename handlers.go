package quill

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	query, active := a.filterState(c)
	posts, err := a.Cache.Filter(query, active)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}

	page := HomePage{
		Site: a.Config,
		Meta: PageMeta{
			Title:       a.Config.Name,
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL),
			OGType:      "website",
			Image:       a.Config.Logo,
			JSONLD:      WebsiteJsonLD(a.Config),
		},
		Query:      query,
		Tags:       TagButtons(tags, query, active),
		ActiveTags: active.Sorted(),
		Posts:      posts,
		Total:      len(posts),
		Profile:    a.Config.Profile,
		Flashes:    popFlashes(c),
		CSRFToken:  CsrfToken(c),
	}

	if c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "blog" {
		return Render(c, a.Views.BlogSection(page))
	}
	return Render(c, a.Views.Home(page))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Param("id"))
	if err != nil {
		return err
	}
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}

	image := post.ImageURL
	if image == "" {
		image = a.Config.Logo
	}
	page := PostPage{
		Site: a.Config,
		Meta: PageMeta{
			Title:       post.Title + " | " + a.Config.Name,
			Description: post.Description,
			URL:         PostURL(a.Config.URL, post.ID),
			OGType:      "article",
			Image:       image,
			JSONLD:      BlogPostingJsonLD(post, a.Config),
		},
		Post:      post,
		Share:     ShareLinks(post, a.Config.URL),
		Recent:    RecentPosts(post, posts, a.Config.RecentPosts),
		Flashes:   popFlashes(c),
		CSRFToken: CsrfToken(c),
	}
	return Render(c, a.Views.Post(page))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

const defaultFavicon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect width="32" height="32" rx="6" fill="#111827"/><path d="M9 23 22 10l2 2-13 13H9z" fill="#f9fafb"/></svg>`

func (a *App) handleFavicon(c echo.Context) error {
	if path, ok := a.staticFile("favicon.svg"); ok {
		return c.File(path)
	}
	return c.Blob(http.StatusOK, "image/svg+xml", []byte(defaultFavicon))
}

func (a *App) handleRobots(c echo.Context) error {
	if path, ok := a.staticFile("robots.txt"); ok {
		return c.File(path)
	}
	body := "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: " + BuildURL(a.Config.URL, "sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}

func (a *App) staticFile(name string) (string, bool) {
	path := filepath.Join(a.staticDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, ErrNotFound) {
		err = echo.ErrNotFound
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error (request %s): %v", requestID(c), err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
