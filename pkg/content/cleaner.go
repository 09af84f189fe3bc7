package content

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every tag and drops script/style bodies, safe for concurrent use
var strictPolicy = newStrictPolicy()

func newStrictPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true) // keeps "<p>a</p><p>b</p>" from gluing into "ab"
	return p
}

// Clean converts an html fragment to plain visible text with collapsed whitespace.
// Malformed html is handled best-effort, empty input gives an empty result.
func Clean(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := html.UnescapeString(strictPolicy.Sanitize(raw))

	// decoded entities like &lt; can reintroduce angle brackets
	text = strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return ' '
		}
		return r
	}, text)

	return NormalizeSpace(text)
}

// NormalizeSpace collapses all whitespace runs to a single space and trims the result
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
