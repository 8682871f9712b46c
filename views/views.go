// Package views is the default quill theme. Pages are html/template files
// embedded in the binary and exposed as templ components.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/quill"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"home", "post", "notfound", "servererror"}

var funcs = template.FuncMap{
	"initials": quill.Initials,
	"cover": func(p quill.Post, size string) string {
		if size == quill.SizeHero.Name {
			return quill.CoverURL(p, quill.SizeHero)
		}
		return quill.CoverURL(p, quill.SizeCard)
	},
	// Post bodies and JSON-LD are produced by the site itself, not by visitors.
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	"jsonld":   func(s string) template.JS { return template.JS(s) },
}

// errorPage is the data for pages without content of their own.
type errorPage struct {
	Site      quill.SiteConfig
	Meta      quill.PageMeta
	Flashes   []string
	CSRFToken string
}

// Theme holds the parsed templates, one set per page.
type Theme struct {
	site  quill.SiteConfig
	pages map[string]*template.Template
}

// Load parses the embedded templates.
func Load(site quill.SiteConfig) (*Theme, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("views: parse layout: %w", err)
	}
	t := &Theme{site: site.WithDefaults(), pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		set, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := set.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		t.pages[name] = set
	}
	return t, nil
}

// New returns the default theme's ViewFuncs. It panics if the embedded
// templates fail to parse.
func New(site quill.SiteConfig) quill.ViewFuncs {
	t, err := Load(site)
	if err != nil {
		panic(err)
	}
	return t.ViewFuncs()
}

// ViewFuncs exposes the theme's pages as quill components.
func (t *Theme) ViewFuncs() quill.ViewFuncs {
	return quill.ViewFuncs{
		Home: func(page quill.HomePage) templ.Component {
			return t.component("home", "layout", page)
		},
		BlogSection: func(page quill.HomePage) templ.Component {
			return t.component("home", "blog-section", page)
		},
		Post: func(page quill.PostPage) templ.Component {
			return t.component("post", "layout", page)
		},
		NotFound: func() templ.Component {
			return t.component("notfound", "layout", t.errorPage("Page not found"))
		},
		ServerError: func() templ.Component {
			return t.component("servererror", "layout", t.errorPage("Something went wrong"))
		},
	}
}

func (t *Theme) errorPage(title string) errorPage {
	return errorPage{
		Site: t.site,
		Meta: quill.PageMeta{
			Title:       title + " | " + t.site.Name,
			Description: t.site.Description,
			OGType:      "website",
		},
	}
}

func (t *Theme) component(page, name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.pages[page].ExecuteTemplate(w, name, data)
	})
}
