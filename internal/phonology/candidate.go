package phonology

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// AddedLang is the pseudo language code used for operator-added hybrid
// candidates.
const AddedLang = "added"

// State tracks whether a candidate has already passed through the repair
// engine. Repairing twice would overcount the distortion penalties, so the
// engine refuses to run on an already repaired candidate.
type State int

const (
	StateRaw State = iota
	StateRepaired
)

// Candidate is a word in (nearly) our phonology considered for selection.
type Candidate struct {
	Word    string // internal representation
	Penalty int    // distortion penalty incurred during conversion
	Lang    string // code of the source language
	// Original is the source word, romanization, or IPA (empty if not set).
	Original string
	// TrueOriginal is the actual source word when Original holds the
	// romanization or IPA.
	TrueOriginal string
	// Auxlangs lists the language codes treated as auxiliary rather than
	// natural languages.
	Auxlangs []string

	// RawPsim is the raw similarity penalty, the summed distance to the
	// candidates of the other languages. Negative until computed.
	RawPsim int
	// SimScore is the similarity score normalized from 0 (worst) to
	// 1 (best). Negative until computed.
	SimScore float64
	// Related maps language codes to the related candidates found there.
	Related map[string][]*Candidate

	state State
}

// New returns a raw candidate for the given source language.
func New(word string, penalty int, lang string) *Candidate {
	return &Candidate{
		Word:     word,
		Penalty:  penalty,
		Lang:     lang,
		RawPsim:  -1,
		SimScore: -1,
		Related:  make(map[string][]*Candidate),
	}
}

// State returns the repair state of the candidate.
func (c *Candidate) State() State { return c.state }

// AddRelated records cand as a related candidate in the given language.
func (c *Candidate) AddRelated(lang string, cand *Candidate) {
	if c.Related == nil {
		c.Related = make(map[string][]*Candidate)
	}
	c.Related[lang] = append(c.Related[lang], cand)
}

// DScore is the distortion score, from 1 (no distortion) to 0 (highly
// distorted). Each penalty point costs a fifth, bounded below at 0.
func (c *Candidate) DScore() float64 {
	d := 1 - float64(c.Penalty)/5.0
	if d < 0 {
		return 0
	}
	return d
}

// TotalScore is the similarity score times the distortion score.
func (c *Candidate) TotalScore() float64 {
	return c.SimScore * c.DScore()
}

// ExportWord returns the external form of the word used in the dictionary.
func (c *Candidate) ExportWord() string {
	return ExportWord(c.Word)
}

// Syllables returns the number of syllables in this candidate.
//
// If the candidate starts and ends with a vowel, the count is reduced by
// 0.5: "nana", "anan", and "nanan" all count as 2 syllables, but "ana"
// counts as 1.5.
func (c *Candidate) Syllables() float64 {
	count := float64(CountVowels(c.Word))
	runes := []rune(c.Word)
	if count > 0 && In(InternalVowels, runes[0]) && In(InternalVowels, runes[len(runes)-1]) {
		count -= 0.5
	}
	return count
}

func (c *Candidate) isAuxlang(lang string) bool {
	for _, aux := range c.Auxlangs {
		if lang == aux {
			return true
		}
	}
	return false
}

// CountRelatedNatlangCands returns the number of natural languages with
// related candidates. All languages not listed in Auxlangs count as natural.
func (c *Candidate) CountRelatedNatlangCands() int {
	n := 0
	for lang := range c.Related {
		if !c.isAuxlang(lang) {
			n++
		}
	}
	return n
}

// HasSuitableRelatedNatlangCands checks whether this candidate has natlang
// support making it suitable for election.
//
// Generally any related natlang candidate is enough. But for Glosa we
// additionally require a related candidate from a non-Romance language,
// since otherwise Glosa's Greek/Latin/Romance-based vocabulary could give
// the Romance source languages undue influence.
func (c *Candidate) HasSuitableRelatedNatlangCands() bool {
	dontCount := append([]string{}, c.Auxlangs...)
	if c.Lang == "glosa" {
		dontCount = append(dontCount, "es", "fr")
	}
	for lang := range c.Related {
		skip := false
		for _, d := range dontCount {
			if lang == d {
				skip = true
				break
			}
		}
		if !skip {
			return true
		}
	}
	return false
}

// LangsWithIdenticalCandidate finds the languages whose related candidates
// are identical to this one, comparing exported forms.
func (c *Candidate) LangsWithIdenticalCandidate() map[string]bool {
	result := make(map[string]bool)
	word := c.ExportWord()
	for lang, cands := range c.Related {
		for _, cand := range cands {
			if cand.ExportWord() == word {
				result[lang] = true
				break
			}
		}
	}
	return result
}

var slashSpaceRE = regexp.MustCompile(`\s*/\s*`)

// ShowOriginal formats the original word for display.
//
// If both TrueOriginal (usually in a non-Latin script) and Original (the
// romanization) are set, they are slash-separated. Original is omitted for
// English words, where it is usually the IPA, and likewise when TrueOriginal
// contains Latin letters, since Original then tends to give a more precise
// pronunciation rather than a romanization.
func (c *Candidate) ShowOriginal() string {
	if c.TrueOriginal != "" && (c.Lang == "en" || HasLatinLetter(c.TrueOriginal)) {
		return c.TrueOriginal
	}
	var originals []string
	for _, orig := range []string{c.TrueOriginal, c.Original} {
		if orig != "" {
			originals = append(originals, orig)
		}
	}
	result := strings.TrimSpace(strings.Join(originals, "/"))
	return slashSpaceRE.ReplaceAllString(result, "/")
}

// HasLatinLetter reports whether text contains at least one letter of the
// Latin script.
func HasLatinLetter(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) && unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

// String returns a compact representation, e.g. "fr:mer".
func (c *Candidate) String() string {
	return c.Lang + ":" + c.ExportWord()
}

// ShowInfo returns a detailed representation with scores and related
// candidates, used for the selection display and the audit log.
func (c *Candidate) ShowInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s (T:%.3f = C:%.3f x S:%.3f, ",
		c.Lang, c.ExportWord(), c.TotalScore(), c.DScore(), c.SimScore)

	identical := len(c.LangsWithIdenticalCandidate())
	if identical == 1 {
		b.WriteString("1 identical candidate, ")
	} else if identical > 1 {
		fmt.Fprintf(&b, "%d identical candidates, ", identical)
	}

	if len(c.Related) == 0 {
		b.WriteString("no related candidates)")
		return b.String()
	}

	natlangs := c.CountRelatedNatlangCands()
	fmt.Fprintf(&b, "%d related natlang candidate", natlangs)
	if natlangs != 1 {
		b.WriteByte('s')
	}

	languageStr := "languages"
	if len(c.Related) == 1 {
		languageStr = "language"
	}
	fmt.Fprintf(&b, ", related candidates in %d %s: ", len(c.Related), languageStr)

	langs := make([]string, 0, len(c.Related))
	for lang := range c.Related {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	var parts []string
	for _, lang := range langs {
		for _, cand := range c.Related[lang] {
			parts = append(parts, cand.String())
		}
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteByte(')')
	return b.String()
}
