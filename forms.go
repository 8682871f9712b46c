package quill

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
)

const maxCommentLength = 5000

var (
	errEmptyComment = errors.New("Comment cannot be empty.")
	errLongComment  = errors.New("Comment is too long.")
	errBadEmail     = errors.New("Please enter a valid email address.")
)

func validateComment(body string) (string, error) {
	body = strings.TrimSpace(body)
	switch {
	case body == "":
		return "", errEmptyComment
	case utf8.RuneCountInString(body) > maxCommentLength:
		return "", errLongComment
	}
	return body, nil
}

func validateEmail(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return "", errBadEmail
	}
	return addr, nil
}

// handleComment accepts a comment submission. Comments are acknowledged and
// logged but not stored.
func (a *App) handleComment(c echo.Context) error {
	id := c.Param("id")
	if _, err := a.Cache.GetPost(id); err != nil {
		return err
	}
	back := "/blog/" + id + "#comments"

	if !a.submitLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many submissions. Please try again later.")
	}

	body, err := validateComment(c.FormValue("comment"))
	if err != nil {
		addFlash(c, err.Error())
		return c.Redirect(http.StatusSeeOther, back)
	}

	c.Logger().Infof("comment received for post %s (%d chars) [%s]", id, utf8.RuneCountInString(body), requestID(c))
	addFlash(c, "Thanks! Your comment has been received.")
	return c.Redirect(http.StatusSeeOther, back)
}

// handleNewsletter accepts a newsletter signup. Like comments, signups are
// acknowledged and logged only.
func (a *App) handleNewsletter(c echo.Context) error {
	back := "/#newsletter"

	if !a.submitLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many submissions. Please try again later.")
	}

	if _, err := validateEmail(c.FormValue("email")); err != nil {
		addFlash(c, err.Error())
		return c.Redirect(http.StatusSeeOther, back)
	}

	c.Logger().Infof("newsletter signup received [%s]", requestID(c))
	addFlash(c, "Thanks for subscribing!")
	return c.Redirect(http.StatusSeeOther, back)
}
