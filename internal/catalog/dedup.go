package catalog

import (
	"strings"

	"autoblog/internal/core"
	"autoblog/internal/fetch"
)

// seenSet tracks the two dedup keys of a link: its normalized URL and its
// normalized title. A link is a duplicate if either key was seen before.
type seenSet struct {
	urls   map[string]struct{}
	titles map[string]struct{}
}

func newSeenSet() *seenSet {
	return &seenSet{urls: map[string]struct{}{}, titles: map[string]struct{}{}}
}

// add records l and reports whether it was new.
func (s *seenSet) add(l core.Link) bool {
	u := fetch.NormalizeURL(l.URL)
	t := titleKey(l.Title)
	if _, ok := s.urls[u]; ok {
		return false
	}
	if _, ok := s.titles[t]; ok {
		return false
	}
	s.urls[u] = struct{}{}
	s.titles[t] = struct{}{}
	return true
}

func titleKey(title string) string {
	return strings.ToLower(fetch.CollapseSpace(title))
}

// Dedup drops links whose URL or title was already seen. The first
// occurrence wins and order is kept, so Dedup(Dedup(x)) == Dedup(x).
func Dedup(links []core.Link) []core.Link {
	seen := newSeenSet()
	out := make([]core.Link, 0, len(links))
	for _, l := range links {
		if seen.add(l) {
			out = append(out, l)
		}
	}
	return out
}

// without returns the links not matching any of taken by URL or title.
func without(links, taken []core.Link) []core.Link {
	seen := newSeenSet()
	for _, l := range taken {
		seen.add(l)
	}
	out := make([]core.Link, 0, len(links))
	for _, l := range links {
		if seen.add(l) {
			out = append(out, l)
		}
	}
	return out
}
