package releases

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultEdition is the label used when a title carries no edition marker.
const DefaultEdition = "Standard"

// parenGroupPattern matches one complete parenthesized group. Titles
// conventionally end with the media format in parentheses ("... (DVD/BD)").
var parenGroupPattern = regexp.MustCompile(`\(([^)]*)\)`)

// ClassifyTitle derives structured classification fields from a free-text
// release title. It is pure and never fails; missing markers fall back to an
// empty format and the Standard edition.
//
// Tie-breaks: the format is the LAST parenthesized group, verbatim; the
// edition word is the LAST whitespace token before the FIRST occurrence of
// "edition" (case-insensitive).
func ClassifyTitle(raw string) (format, edition string) {
	return extractFormat(raw), extractEdition(raw)
}

func extractFormat(raw string) string {
	groups := parenGroupPattern.FindAllStringSubmatch(raw, -1)
	if len(groups) == 0 {
		return ""
	}
	return groups[len(groups)-1][1]
}

func extractEdition(raw string) string {
	lowered := strings.ToLower(raw)
	idx := strings.Index(lowered, "edition")
	if idx < 0 {
		return DefaultEdition
	}

	tokens := strings.Fields(lowered[:idx])
	if len(tokens) == 0 {
		return DefaultEdition
	}
	word := stripLeadingNonLetter(tokens[len(tokens)-1])
	if word == "" {
		return DefaultEdition
	}

	label := cases.Title(language.Und).String(word)
	// Known source inconsistency; no other spelling normalization is applied.
	if label == "Collectors" {
		label = "Collector's"
	}
	return label
}

// stripLeadingNonLetter drops a single leading non-letter rune, which handles
// stray punctuation glued to the edition word ("-limited"). Exactly one rune
// is stripped.
func stripLeadingNonLetter(word string) string {
	runes := []rune(word)
	if len(runes) > 0 && !unicode.IsLetter(runes[0]) {
		return string(runes[1:])
	}
	return word
}
