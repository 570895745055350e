package domain

import (
	"net/url"
	"strings"
)

// URLState drives the three-state indicator next to the website field.
type URLState string

const (
	URLStateNeutral URLState = "neutral"
	URLStateValid   URLState = "valid"
	URLStateInvalid URLState = "invalid"
)

func (s URLState) String() string { return string(s) }

// ValidateWebsite classifies a raw website string. Values that do not start
// with "http" are checked as if "https://" were prepended.
func ValidateWebsite(raw string) URLState {
	if raw == "" {
		return URLStateNeutral
	}

	candidate := raw
	if !strings.HasPrefix(candidate, "http") {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return URLStateInvalid
	}
	return URLStateValid
}
