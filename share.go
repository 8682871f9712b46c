package quill

import (
	"fmt"
	"net/url"
	"strings"
)

// Platform is an external site a post can be shared to.
type Platform int

const (
	PlatformX Platform = iota
	PlatformLinkedIn
)

const (
	xIntentURL       = "https://twitter.com/intent/tweet?text=%s&url=%s"
	linkedInShareURL = "https://www.linkedin.com/sharing/share-offsite/?url=%s"
	shareMessage     = "Check out this article: "
)

func (p Platform) String() string {
	switch p {
	case PlatformX:
		return "x"
	case PlatformLinkedIn:
		return "linkedin"
	default:
		return "unknown"
	}
}

// Label is the button text for the platform.
func (p Platform) Label() string {
	switch p {
	case PlatformX:
		return "Share on X"
	case PlatformLinkedIn:
		return "Share on LinkedIn"
	default:
		return "Share"
	}
}

// ShareLink is a ready-to-open outbound share URL.
type ShareLink struct {
	Platform Platform
	Label    string
	URL      string
}

// PostURL returns the canonical absolute URL of a post.
func PostURL(baseURL, postID string) string {
	return strings.TrimRight(baseURL, "/") + "/blog/" + postID
}

// BuildShareURL builds the intent URL that shares a post on platform. Nothing
// is validated: empty ids or titles still yield a URL.
func BuildShareURL(platform Platform, postID, title, baseURL string) string {
	postURL := encodeComponent(PostURL(baseURL, postID))
	switch platform {
	case PlatformX:
		return fmt.Sprintf(xIntentURL, encodeComponent(shareMessage+title), postURL)
	default:
		return fmt.Sprintf(linkedInShareURL, postURL)
	}
}

// ShareLinks returns the share buttons for p, X first.
func ShareLinks(p Post, baseURL string) []ShareLink {
	platforms := []Platform{PlatformX, PlatformLinkedIn}
	links := make([]ShareLink, 0, len(platforms))
	for _, pl := range platforms {
		links = append(links, ShareLink{
			Platform: pl,
			Label:    pl.Label(),
			URL:      BuildShareURL(pl, p.ID, p.Title, baseURL),
		})
	}
	return links
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes s like JavaScript's encodeURIComponent: spaces
// become %20 and the marks !'()* stay literal.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
