package services

import (
	"net/url"
	"strings"
)

// NormalizeURL strips any existing affiliate tag, utm_* tracking parameters
// and the fragment from a URL. Idempotent; a URL that cannot be parsed is
// returned unchanged.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	for name := range q {
		low := strings.ToLower(name)
		if low == "tag" || strings.HasPrefix(low, "utm_") {
			q.Del(name)
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	u.RawFragment = ""
	return strings.TrimRight(u.String(), "?&")
}

// TagRewriter rewrites Amazon URLs to carry a single configured affiliate tag.
type TagRewriter struct {
	Tag string
}

func NewTagRewriter(tag string) *TagRewriter {
	return &TagRewriter{Tag: tag}
}

// ApplyTag normalizes the URL and appends the configured affiliate tag. The
// result carries exactly one tag parameter and no tracking parameters.
func (r *TagRewriter) ApplyTag(rawURL string) string {
	clean := NormalizeURL(rawURL)
	sep := "?"
	if strings.Contains(clean, "?") {
		sep = "&"
	}
	return clean + sep + "tag=" + r.Tag
}
