package content

import (
	"regexp"
	"strings"
)

type rewriteRule struct {
	pattern *regexp.Regexp
	replace string
}

// Rules run in order. The Callout and Step conversions must run before the
// generic component-tag removal, otherwise their tags are stripped bare and
// the annotation is lost.
var markupRules = []rewriteRule{
	// import statements
	{regexp.MustCompile(`(?m)^import\s+.*$`), ""},
	// titled callouts become block-quoted annotations
	{regexp.MustCompile(`(?s)<Callout[^>]*title="([^"]*)"[^>]*>(.*?)</Callout>`), "> **${1}**: ${2}"},
	{regexp.MustCompile(`(?s)<Callout[^>]*>(.*?)</Callout>`), "> ${1}"},
	// step sequences become labelled plain text
	{regexp.MustCompile(`</?Steps>`), ""},
	{regexp.MustCompile(`<Step\s+title="([^"]*)"[^>]*>`), "\n**Step: ${1}**\n"},
	{regexp.MustCompile(`</Step>`), "\n"},
	// any remaining component tags are dropped, keeping inner content
	{regexp.MustCompile(`<[A-Z][a-zA-Z]*\s*/>`), ""},
	{regexp.MustCompile(`</?[A-Z][a-zA-Z]*[^>]*>`), ""},
	// collapse blank-line runs left behind by removed tags
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// StripMarkup converts the known semantic authoring components to plain
// annotated text and discards all other component markup, leaving body
// text that reads standalone.
func StripMarkup(body string) string {
	out := body
	for _, rule := range markupRules {
		out = rule.pattern.ReplaceAllString(out, rule.replace)
	}
	return strings.TrimSpace(out)
}
