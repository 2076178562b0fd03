package highlights

import (
	"strings"
	"unicode/utf8"
)

const (
	minSentenceRunes = 5
	hookWords        = 10
)

// BuildHook derives a teaser from segment text: the first sentence when it is
// longer than five characters, otherwise the first ten words with an ellipsis,
// otherwise the text unchanged.
func BuildHook(text string) string {
	first := text
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		first = text[:i]
	}
	first = strings.TrimSpace(first)
	if utf8.RuneCountInString(first) > minSentenceRunes {
		return first
	}

	words := strings.Fields(text)
	if len(words) > hookWords {
		return strings.Join(words[:hookWords], " ") + "..."
	}
	return text
}
