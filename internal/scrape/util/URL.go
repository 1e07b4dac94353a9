package util

import (
	"net/url"
	"strings"
)

// ParseBase parses an absolute base URL. Anything else yields nil.
func ParseBase(raw string) *url.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	return u
}

// ResolveURL turns href into an absolute URL against base, the way a browser
// computes anchor.href: an empty href is the base itself minus its fragment.
// With a nil base, href is returned only if it is already absolute.
func ResolveURL(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		if base == nil {
			return "", false
		}
		u := *base
		u.Fragment, u.RawFragment = "", ""
		return u.String(), true
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if base == nil {
		if ref.IsAbs() {
			return ref.String(), true
		}
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}
