// Package sanitize strips lightweight markdown markup from model output so
// answers render as plain text in the practice frontend.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	mdHeadingRE    = regexp.MustCompile(`(?m)^[ \t]{0,3}#{2,3}[ \t]*`)
	mdFenceRE      = regexp.MustCompile("(?s)```(.*?)```")
	mdInlineCodeRE = regexp.MustCompile("`([^`]+)`")
	mdTripleRE     = regexp.MustCompile(`\*{3}([^*]+?)\*{3}`)
	mdBoldRE       = regexp.MustCompile(`\*{2}([^*]+?)\*{2}`)
	mdUnderBoldRE  = regexp.MustCompile(`__([^_]+?)__`)
	// single asterisks not adjacent to another asterisk; RE2 has no
	// lookarounds, so the neighbouring characters are captured instead
	mdItalicRE = regexp.MustCompile(`(^|[^*])\*([^*\n]+?)\*($|[^*])`)
	mdBlankRE  = regexp.MustCompile(`\n{3,}`)
)

// Text removes emphasis, heading, inline-code and code-fence markup while
// preserving the underlying content. The rules run in a fixed order; later
// rules never re-introduce patterns consumed by earlier ones. Applying Text
// twice yields the same result as applying it once.
func Text(text string) string {
	if text == "" {
		return text
	}

	// heading markers at line starts
	text = mdHeadingRE.ReplaceAllString(text, "")

	// fenced code blocks: drop the delimiters, keep the inner content
	text = mdFenceRE.ReplaceAllStringFunc(text, func(m string) string {
		inner := strings.TrimSuffix(strings.TrimPrefix(m, "```"), "```")
		return strings.Trim(inner, "\n")
	})

	// inline code
	text = mdInlineCodeRE.ReplaceAllString(text, "$1")

	// ***text***, **text**, __text__, then *text*
	text = mdTripleRE.ReplaceAllString(text, "$1")
	text = mdBoldRE.ReplaceAllString(text, "$1")
	text = mdUnderBoldRE.ReplaceAllString(text, "$1")

	// the italic pattern consumes a neighbouring character, so adjacent
	// matches need another pass; loop until stable
	for {
		out := mdItalicRE.ReplaceAllString(text, "${1}${2}${3}")
		if out == text {
			break
		}
		text = out
	}

	text = mdBlankRE.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
