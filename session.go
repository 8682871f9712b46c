package quill

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "quill_session"
	sessQuery   = "q"
	sessTags    = "tags"
)

// filterState returns the listing's search query and active tags. Explicit
// query parameters win and are remembered in the session; a bare "/" restores
// the last remembered selection.
func (a *App) filterState(c echo.Context) (string, TagSet) {
	params := c.QueryParams()
	_, hasQuery := params["q"]
	_, hasTags := params["tag"]

	if hasQuery || hasTags {
		query := params.Get("q")
		active := NewTagSet(FilterEmpty(params["tag"])...)
		if prevQuery, prevTags := loadFilterState(c); prevQuery == query && prevTags.Equal(active) {
			return query, active
		}
		if err := saveFilterState(c, query, active); err != nil {
			c.Logger().Warnf("save filter state: %v", err)
		}
		return query, active
	}
	return loadFilterState(c)
}

func saveFilterState(c echo.Context, query string, active TagSet) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values[sessQuery] = query
	sess.Values[sessTags] = active.Sorted()
	return sess.Save(c.Request(), c.Response())
}

func loadFilterState(c echo.Context) (string, TagSet) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return "", NewTagSet()
	}
	query, _ := sess.Values[sessQuery].(string)
	tags, _ := sess.Values[sessTags].([]string)
	return query, NewTagSet(tags...)
}

func addFlash(c echo.Context, msg string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		c.Logger().Warnf("flash: %v", err)
		return
	}
	sess.AddFlash(msg)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Warnf("flash: %v", err)
	}
}

// popFlashes returns and clears pending flash messages.
func popFlashes(c echo.Context) []string {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Warnf("flash: %v", err)
	}
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}
