package quill

import (
	"sort"
	"strings"
)

// TagSet is the set of tags a reader has selected. Only membership matters.
type TagSet map[string]struct{}

// NewTagSet builds a TagSet from tags, ignoring blanks.
func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			continue
		}
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Len returns the number of tags in the set.
func (s TagSet) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same members.
func (s TagSet) Equal(other TagSet) bool {
	if len(s) != len(other) {
		return false
	}
	for t := range s {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// ToggleTag returns a copy of active with tag removed if it was present and
// added otherwise. active itself is left untouched.
func ToggleTag(active TagSet, tag string) TagSet {
	next := make(TagSet, len(active)+1)
	for t := range active {
		next[t] = struct{}{}
	}
	if next.Has(tag) {
		delete(next, tag)
	} else {
		next[tag] = struct{}{}
	}
	return next
}

// FilterPosts returns the posts matching both query and active, in their
// original order. An empty query and an empty tag set match everything.
//
// The query matches when it is a case-insensitive substring of the title or
// the description. The tag filter is conjunctive: a post must carry every
// active tag.
func FilterPosts(posts []Post, query string, active TagSet) []Post {
	q := strings.ToLower(query)
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if matchesQuery(p, q) && hasAllTags(p, active) {
			out = append(out, p)
		}
	}
	return out
}

// matchesQuery expects q to be lowercased already.
func matchesQuery(p Post, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

func hasAllTags(p Post, active TagSet) bool {
	if len(active) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(p.Tags))
	for _, t := range p.Tags {
		have[t] = struct{}{}
	}
	for t := range active {
		if _, ok := have[t]; !ok {
			return false
		}
	}
	return true
}

// AllTags returns every distinct tag across posts in first-seen order.
func AllTags(posts []Post) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}
