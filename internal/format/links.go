package format

import (
	"net/url"
	"strings"
)

// DisplayURL shortens a URL for display: no scheme, no "www.", no trailing slash.
func DisplayURL(raw string) string {
	s := raw
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimSuffix(s, "/")
}

// Handle returns "/<last path segment>" of a profile URL, e.g. "/Amorizz" for a GitHub profile.
// It falls back to DisplayURL when the URL has no path.
func Handle(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return DisplayURL(raw)
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return DisplayURL(raw)
	}
	parts := strings.Split(path, "/")
	return "/" + parts[len(parts)-1]
}

// JoinTags joins technology tags with a middle dot, skipping blanks.
func JoinTags(tags []string) string {
	kept := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " · ")
}
