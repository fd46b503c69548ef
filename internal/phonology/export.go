package phonology

import (
	"regexp"
	"strings"
)

// exportRepl converts the internal representation to the external spelling
// used in the dictionary. The order matters: "Ng" must be handled before the
// bare "N", and "sh" before "S" produces one.
var exportRepl = [][2]string{
	{"sh", "s-h"}, // hyphen prevents misreading as S
	{"C", "ch"},
	{"Ng", "ng"},
	{"Nk", "nk"},
	{"N", "ng"},
	{"S", "sh"},
	{"ə", "e"},
}

// normRepl maps letters to their normalized equivalents, avoiding minimal
// pairs in the dictionary.
var normRepl = [][2]string{
	{"v", "u"},
	{"w", "u"},
	{"y", "i"},
	{"z", "s"},
	{"-", ""},
}

// Export results are memoized since the same words are converted over and
// over during scoring. The caches grow with the words seen in a run;
// ClearCaches resets them between batches.
var (
	exportCache = make(map[string]string)
	normCache   = make(map[string]string)
)

// ClearCaches drops the memoized export and normalization results.
func ClearCaches() {
	exportCache = make(map[string]string)
	normCache = make(map[string]string)
}

// semivowelToVowel rewrites the semivowel sv to the vowel v after a vowel,
// unless another vowel follows: "aw" is spelled "au", but "awa" keeps its w.
func semivowelToVowel(word string, sv, v rune) string {
	runes := []rune(word)
	out := make([]rune, len(runes))
	copy(out, runes)
	for i := 1; i < len(runes); i++ {
		if runes[i] == sv && In(InternalVowels, runes[i-1]) &&
			(i+1 >= len(runes) || !In(InternalVowels, runes[i+1])) {
			out[i] = v
			i++ // the preceding vowel was consumed with the match
		}
	}
	return string(out)
}

// ExportWord converts a word from the internal form to the external form
// used in the dictionary.
func ExportWord(word string) string {
	if cached, ok := exportCache[word]; ok {
		return cached
	}
	result := semivowelToVowel(word, 'w', 'u')
	result = semivowelToVowel(result, 'y', 'i')
	for _, repl := range exportRepl {
		result = strings.ReplaceAll(result, repl[0], repl[1])
	}
	exportCache[word] = result
	return result
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// NormalizeWord normalizes a word to avoid adding minimal pairs to the
// dictionary.
//
//   - Case is converted to lower case.
//   - Final "ng" is converted to just "n".
//   - "w" and "y" become their vowel equivalents, "v" likewise becomes "u".
//   - "z" becomes "s".
//   - Whitespace and hyphens (marking affixes and separating word parts)
//     are deleted.
func NormalizeWord(word string) string {
	if cached, ok := normCache[word]; ok {
		return cached
	}
	result := strings.ToLower(word)
	result = whitespaceRE.ReplaceAllString(result, "")
	if strings.HasSuffix(result, "ng") {
		result = result[:len(result)-1]
	}
	for _, repl := range normRepl {
		result = strings.ReplaceAll(result, repl[0], repl[1])
	}
	normCache[word] = result
	return result
}
