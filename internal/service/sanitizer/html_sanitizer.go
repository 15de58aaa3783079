package sanitizer

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// classPattern limits span classes to utility class names
var classPattern = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)

// HTMLSanitizer strips unsafe markup from admin-entered rich text.
// Safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewInlineHTMLSanitizer allows the inline markup headline copy uses:
// line breaks, emphasis and class-styled spans (e.g. the gold accent word).
func NewInlineHTMLSanitizer() *HTMLSanitizer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("br", "strong", "em", "b", "i", "span")
	policy.AllowAttrs("class").Matching(classPattern).OnElements("span")
	return &HTMLSanitizer{policy: policy}
}

// NewStrictHTMLSanitizer strips all HTML.
func NewStrictHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize removes disallowed elements and attributes, keeping their text.
func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
