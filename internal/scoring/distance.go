// Package scoring computes the similarity scores candidates are ranked by:
// the edit distance between candidate words, the relatedness test, and the
// raw and normalized similarity penalties.
package scoring

import (
	"strings"

	"kandivoc/internal/phonology"
	"kandivoc/internal/similarity"
)

type distResult struct {
	dist    int
	related bool
}

// Scorer computes distances between candidate words, caching the results.
// Distance computations repeat heavily across the candidates of a run, so
// the cache pays off quickly.
type Scorer struct {
	cache map[string]distResult
}

func NewScorer() *Scorer {
	return &Scorer{cache: make(map[string]distResult)}
}

// ClearCache drops the memoized distance results.
func (s *Scorer) ClearCache() {
	s.cache = make(map[string]distResult)
}

// Distance returns the edit distance between two candidate words, and
// whether the words are similar enough to be considered related.
//
// They are related if the distance divided by the length of the longer word
// is 0.5 or less, or if the longer word starts or ends with the shorter one,
// provided the shorter has at least 2 letters. Additionally, if both words
// include consonants, they must share at least one consonant. Just sharing
// vowels is not sufficient.
func (s *Scorer) Distance(word, other string) (int, bool) {
	// If both words start or end with the filler vowel, compare without it.
	// Otherwise e.g. "kubə" and "sabə" would be considered related, though
	// they share only one actual letter.
	for strings.HasPrefix(word, "ə") && strings.HasPrefix(other, "ə") {
		word, other = word[len("ə"):], other[len("ə"):]
	}
	for strings.HasSuffix(word, "ə") && strings.HasSuffix(other, "ə") {
		word, other = word[:len(word)-len("ə")], other[:len(other)-len("ə")]
	}

	// Distance is symmetric, so cache under the alphabetically ordered pair
	if word > other {
		word, other = other, word
	}
	key := word + "\x00" + other
	if r, ok := s.cache[key]; ok {
		return r.dist, r.related
	}

	dist := similarity.LevenshteinDistance(word, other)
	related := false
	if maxLen := maxInt(len([]rune(word)), len([]rune(other))); maxLen > 0 {
		related = float64(dist)/float64(maxLen) <= 0.5
	}

	if !related {
		shorter, longer := word, other
		if len(shorter) > len(longer) {
			shorter, longer = longer, shorter
		}
		related = len([]rune(shorter)) >= 2 &&
			(strings.HasPrefix(longer, shorter) || strings.HasSuffix(longer, shorter))
	}

	if related {
		// "N" (ng) and "n" are close enough to count as equivalent here
		wordCons := consonantSet(word)
		otherCons := consonantSet(other)
		if len(wordCons) > 0 && len(otherCons) > 0 {
			related = sharesRune(wordCons, otherCons)
		}
	}

	s.cache[key] = distResult{dist, related}
	return dist, related
}

func consonantSet(word string) map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range word {
		if r == 'N' {
			r = 'n'
		}
		if phonology.In(phonology.AllConsonants, r) {
			set[r] = true
		}
	}
	return set
}

func sharesRune(a, b map[rune]bool) bool {
	for r := range a {
		if b[r] {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
