// Package lexicon holds the concept entries read from the word lists, the
// text-splitting helpers their fields need, and the record of already
// existing dictionary words.
package lexicon

import (
	"regexp"
	"strings"
)

// Normalize discards leading and trailing whitespace and replaces each
// internal whitespace sequence by a single space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SplitOnSep splits a string into parts separated by sep.
//
// The separator may include optional outer whitespace, which is ignored when
// splitting but restored when the separator occurs within parentheses.
// Separators within parentheses do not split. Whitespace at the edges of all
// parts is discarded. An empty text gives an empty list.
func SplitOnSep(text, sep string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	actualSep := strings.TrimSpace(sep)

	sepInParens := regexp.MustCompile(`\([^)]*` + regexp.QuoteMeta(actualSep) + `[^)]*\)`)
	needToHandleParens := sepInParens.MatchString(text)

	splitter := regexp.MustCompile(`\s*` + regexp.QuoteMeta(actualSep) + `\s*`)
	result := splitter.Split(text, -1)

	if needToHandleParens {
		// Remerge elements where the separator occurred within parentheses
		waitForEnd := false
		var merged []string
		for _, elem := range result {
			if waitForEnd {
				merged[len(merged)-1] += sep + elem
				if strings.Contains(elem, ")") && !strings.Contains(elem, "(") {
					waitForEnd = false
				}
			} else {
				if strings.Contains(elem, "(") && !strings.Contains(elem, ")") {
					waitForEnd = true
				}
				merged = append(merged, elem)
			}
		}
		return merged
	}
	return result
}

// SplitOnCommas splits a string into its comma-separated parts, ignoring
// commas in parentheses.
func SplitOnCommas(text string) []string {
	return SplitOnSep(text, ", ")
}

// SplitOnSemicolons splits a string into its semicolon-separated parts,
// ignoring semicolons in parentheses.
func SplitOnSemicolons(text string) []string {
	return SplitOnSep(text, "; ")
}

// SplitOnPipes splits a string into its pipe-separated parts, ignoring pipes
// in parentheses.
func SplitOnPipes(text string) []string {
	return SplitOnSep(text, " | ")
}

// SplitTextAndExplanation splits a text ending in a parenthesized
// explanation into its parts. "main text (explanation)" gives "main text"
// and "explanation"; without a trailing parenthesis the whole text is
// returned with an empty explanation.
func SplitTextAndExplanation(text string) (string, string) {
	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, ")") {
		if open := strings.LastIndex(text, "("); open >= 0 {
			return strings.TrimSpace(text[:open]),
				strings.TrimSpace(text[open+1 : len(text)-1])
		}
	}
	return text, ""
}

var (
	parensRE   = regexp.MustCompile(`\s*\([^)]*\)`)
	bracketsRE = regexp.MustCompile(`\s*\[.*?\]`)
)

// EliminateParens removes the parts of a text written in parentheses.
func EliminateParens(text string) string {
	return strings.TrimSpace(parensRE.ReplaceAllString(text, ""))
}

// DiscardTextInBrackets removes all text in square brackets, along with any
// whitespace preceding the brackets.
func DiscardTextInBrackets(text string) string {
	return bracketsRE.ReplaceAllString(text, "")
}

// ExtractTextInBrackets extracts the text between square brackets. The
// second return value reports whether brackets were found; without them the
// text is returned unchanged.
func ExtractTextInBrackets(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.Index(text, "]")
	if start != -1 && end > start {
		return text[start+1 : end], true
	}
	return text, false
}
