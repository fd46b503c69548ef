package phonology

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// vowelSplitRE splits a word at its vowels, falling diphthongs included, so
// that the consonant clusters in between can be examined.
var vowelSplitRE = regexp.MustCompile(`(?:ay|aw|ew|oy|[` + InternalVowels + `])`)

// Validate checks that the candidate conforms to the phonology. It returns
// an error describing the first problem found, or nil.
func (c *Candidate) Validate() error {
	var unexpected []rune
	seen := make(map[rune]bool)
	for _, r := range c.Word {
		if !In(AllConsonants+InternalVowels+" ", r) && !seen[r] {
			seen[r] = true
			unexpected = append(unexpected, r)
		}
	}
	if len(unexpected) > 0 {
		sort.Slice(unexpected, func(i, j int) bool { return unexpected[i] < unexpected[j] })
		return fmt.Errorf("%s candidate contains unexpected characters: %s (%s)",
			c.Lang, c.Word, string(unexpected))
	}

	for _, word := range strings.Fields(c.Word) {
		parts := vowelSplitRE.Split(word, -1)
		lastIdx := len(parts) - 1
		for idx, part := range parts {
			if part == "" {
				continue
			}
			runes := []rune(part)
			if idx == lastIdx && (len(runes) > 1 || !In(WordFinalConsonants, runes[0])) {
				return fmt.Errorf("%q is not allowed at the end of words (%s)", part, word)
			}
			if idx > 0 && In(SyllableFinalConsonants, runes[0]) {
				// discard the consonant ending the preceding syllable
				runes = runes[1:]
			}
			if len(runes) == 0 {
				continue
			}
			if len(runes) > 2 || !In(InitialConsonants, runes[0]) ||
				(len(runes) == 2 && !In(SecondConsonants, runes[1])) {
				return fmt.Errorf("%q is not allowed at the start of syllables (%s)",
					string(runes), word)
			}
		}
	}
	return nil
}
