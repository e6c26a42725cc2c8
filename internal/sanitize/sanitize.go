package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Clients are browsers posting free text; anything that parses as markup
// is stripped before validation and storage.
var policy = bluemonday.StrictPolicy()

// Clean strips HTML markup from s and trims surrounding whitespace.
// The policy escapes residual entities, so the stripped text is
// unescaped back to plain characters before returning.
func Clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
