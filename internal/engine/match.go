package engine

import (
	"strings"
	"unicode"
)

// Text matching is deliberately substring-based and case-insensitive on the
// already-lowercased combined text, so partial overlaps ("banking" matching
// "bank") are expected behavior, not a defect.

// normalizeText combines headline and body into the lowercased text every
// stage operates on
func normalizeText(headline, fullText string) string {
	return strings.ToLower(strings.TrimSpace(headline + " " + fullText))
}

// countOccurrences counts non-overlapping occurrences of needle in text
func countOccurrences(text, needle string) int {
	if needle == "" {
		return 0
	}
	return strings.Count(text, needle)
}

// containsKeyword reports whether needle appears in text. Space-padded
// needles (" ai " style word-boundary keywords) also match at the very
// start and end of the text, where the surrounding space is implicit.
func containsKeyword(text, needle string) bool {
	if strings.Contains(text, needle) {
		return true
	}
	if strings.TrimSpace(needle) != needle {
		return strings.Contains(" "+text+" ", needle)
	}
	return false
}

// containsAny reports whether any needle appears in text
func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && containsKeyword(text, n) {
			return true
		}
	}
	return false
}

// countPresent counts how many distinct needles appear at least once
func countPresent(text string, needles []string) int {
	count := 0
	for _, n := range needles {
		if n != "" && containsKeyword(text, n) {
			count++
		}
	}
	return count
}

// matchedKeywords returns the needles present in text, up to limit
func matchedKeywords(text string, needles []string, limit int) []string {
	var out []string
	for _, n := range needles {
		if n != "" && containsKeyword(text, n) {
			out = append(out, strings.TrimSpace(n))
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// tokenize splits text into lowercase alphanumeric tokens. A "$aapl"
// cashtag yields the same token as a bare "aapl" mention, which is exactly
// the equivalence the ticker-mention rules want.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// tickerMentions counts standalone occurrences of the lowercased ticker
// token (bare or $-prefixed)
func tickerMentions(text, lowerTicker string) int {
	count := 0
	for _, tok := range tokenize(text) {
		if tok == lowerTicker {
			count++
		}
	}
	return count
}

// nameWords extracts the distinct searchable words (>3 characters) from a
// company display name, lowercased
func nameWords(displayName string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range tokenize(strings.ToLower(displayName)) {
		if len(w) <= 3 {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
