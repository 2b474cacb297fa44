package scoring

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Normalize lowercases text and collapses whitespace runs to single spaces.
func Normalize(text string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(strings.ToLower(text), " "))
}

// Tokenize splits text into lowercase words. Letters, digits, '+', '#' and
// inner '.' are word characters so terms like c++, c# and node.js survive.
func Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		w := strings.Trim(word.String(), ".")
		word.Reset()
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// TokenSet returns the distinct tokens of text longer than minLen runes.
func TokenSet(text string, minLen int) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokenize(text) {
		if len([]rune(tok)) > minLen {
			set[tok] = true
		}
	}
	return set
}

// WordCount counts whitespace separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedUnique(items []string) []string {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = true
		}
	}
	return sortedKeys(set)
}
