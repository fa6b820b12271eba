// Package markup reduces raw wikitext to plain text through a fixed order
// of heuristic cleanup passes. It is best effort: the goal is monotonically
// less markup noise, not a grammar-correct parse.
package markup

import "regexp"

// Pass is one named pure text transform. Passes are total and are applied
// in the order they appear in Passes.
type Pass struct {
	Name  string
	Apply func(string) string
}

var (
	reTemplate = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	reLink     = regexp.MustCompile(`\[\[(?:[^|\]]*\|)?([^\]]+)\]\]`)
	reRef      = regexp.MustCompile(`(?s)<ref[^>]*>.*?</ref>`)
	reTag      = regexp.MustCompile(`<[^>]+>`)
	reURL      = regexp.MustCompile(`https?://\S+`)
	reCategory = regexp.MustCompile(`(?i)\[\[(?:Category|Thể loại|File|Tập tin):[^\]]+\]\]`)
)

// Passes is the cleanup pipeline. Reference removal must run before the
// generic tag pass (otherwise open/close ref tags mismatch), and link
// resolution must run before tag stripping.
var Passes = []Pass{
	{Name: "templates", Apply: stripTemplates},
	{Name: "links", Apply: func(s string) string { return reLink.ReplaceAllString(s, "$1") }},
	{Name: "refs", Apply: func(s string) string { return reRef.ReplaceAllString(s, "") }},
	{Name: "tags", Apply: func(s string) string { return reTag.ReplaceAllString(s, "") }},
	{Name: "urls", Apply: func(s string) string { return reURL.ReplaceAllString(s, "") }},
	{Name: "categories", Apply: func(s string) string { return reCategory.ReplaceAllString(s, "") }},
}

// Strip applies every pass in order. It never fails.
func Strip(s string) string {
	for _, p := range Passes {
		s = p.Apply(s)
	}
	return s
}

// stripTemplates removes {{...}} blocks innermost first, so nested
// templates collapse completely.
func stripTemplates(s string) string {
	for {
		out := reTemplate.ReplaceAllString(s, "")
		if out == s {
			return out
		}
		s = out
	}
}
