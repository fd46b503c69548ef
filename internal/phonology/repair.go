package phonology

import (
	"regexp"
	"strings"
)

// Precompiled patterns used by the repair engine. Character classes use the
// alphabet constants so that a change there carries through.
var (
	punctuationRE = regexp.MustCompile(`[-,.…;:!?"/()]+`)

	xBeforeVowelRE     = regexp.MustCompile(`X([` + InternalVowels + `])`)
	xBeforeSemivowelRE = regexp.MustCompile(`X([` + Semivowels + `])`)

	nyBeforeConsonantRE = regexp.MustCompile(`ny([` + InitialConsonants + `])`)

	initialKsRE = regexp.MustCompile(`^ks`)
	initialDzRE = regexp.MustCompile(`^dz`)

	frSilentFinalRE = regexp.MustCompile(`(eil|illes?)($|[^\p{L}])`)

	finalNAfterConsonantRE = regexp.MustCompile(`([` + AllNonSemivowels + `])N$`)
	initialNgRE            = regexp.MustCompile(`(^|[` + SyllableFinalConsonants + `])(Ng?[` + SimpleVowels + `lr])`)
	scAfterVowelRE         = regexp.MustCompile(`([` + InternalVowels + `])SC`)
	finalZAfterVowelRE     = regexp.MustCompile(`[` + InternalVowels + `]z$`)

	illegalSkptTripleRE = regexp.MustCompile(`([` + SyllableFinalConsonants + `])(s[kpt].)`)
	deSvBeforeVowelRE   = regexp.MustCompile(`Sv([` + InternalVowels + `])`)
	illegalConsPairRE   = regexp.MustCompile(`([` + NotSyllableFinalNonSemivowel + `])([` + NotSecondConsonants + `])`)
	illegalRnTripleRE   = regexp.MustCompile(`([rs][mnt])([` + NotSecondConsonants + `])`)
	nasalMnRE           = regexp.MustCompile(`([np])mn`)
	initialSClusterRE   = regexp.MustCompile(`^(s[` + InitialNonSemivowels + `][` + SecondConsonants + `])`)
	initialConsTripleRE = regexp.MustCompile(`^([` + InitialConsonants + `])([` + SyllableFinalConsonants + `][` + InitialConsonants + `])`)
	illegalConsTripleRE = regexp.MustCompile(`([` + SyllableFinalConsonants + `][` + SyllableFinalConsonants + `])([` + NotSecondConsonants + `])`)
	// Two consonants that might start a syllable, followed by another one:
	// the first two stay together. Semivowels are excluded as second
	// consonant here since they may be converted to vowels instead.
	illegalConsTriple2RE = regexp.MustCompile(`([` + InitialNonSemivowels + `][lr])([` + AllNonSemivowels + `])`)

	initialWhRE = regexp.MustCompile(`^wh`)

	thirdSemivowelInitialRE = regexp.MustCompile(`(^|[` + SyllableFinalConsonants + `])([` + InitialNonSemivowels + `][lr])([wy])`)
	thirdSemivowelMedialRE  = regexp.MustCompile(`([` + InternalVowels + Semivowels + `][` + NotSyllableFinalNonSemivowel + `][lr])([wy])`)
	doubleSemivowelInitRE   = regexp.MustCompile(`(^|[` + SyllableFinalConsonants + `])([` + InitialNonSemivowels + `])(wy|yw)`)
	doubleSemivowelMedRE    = regexp.MustCompile(`([` + InternalVowels + Semivowels + `][` + NotSyllableFinalNonSemivowel + `])(wy|yw)`)

	nasalAssimilationRE = regexp.MustCompile(`([` + SyllableFinalConsonants + `])Nək`)
)

// replaceCount replaces all matches and additionally reports how many there
// were, for the rules that carry a penalty per replacement.
func replaceCount(re *regexp.Regexp, word, repl string) (string, int) {
	n := len(re.FindAllStringIndex(word, -1))
	if n == 0 {
		return word, 0
	}
	return re.ReplaceAllString(word, repl), n
}

// collapseDoubleConsonants reduces each pair of identical adjacent
// consonants to a single one. Pairs are consumed left to right, so "nnn"
// becomes "nn", not "n".
func collapseDoubleConsonants(word string) string {
	runes := []rune(word)
	var out []rune
	for i := 0; i < len(runes); i++ {
		out = append(out, runes[i])
		if i+1 < len(runes) && runes[i+1] == runes[i] && IsConsonant(runes[i]) {
			i++
		}
	}
	return string(out)
}

// semivowelBetweenConsonants converts the semivowel sv to the vowel v
// wherever it stands between two consonants.
func semivowelBetweenConsonants(word string, sv, v rune) string {
	runes := []rune(word)
	for i := 1; i < len(runes)-1; i++ {
		if runes[i] == sv && IsConsonant(runes[i-1]) && IsConsonant(runes[i+1]) {
			runes[i] = v
			i++ // the consumed consonant pair cannot overlap the next
		}
	}
	return string(runes)
}

// simplifyTsClusters reduces "ts" to "s" at the start of a word and after
// syllable-final consonants. Returns the number of simplifications, each of
// which loses a sound.
func simplifyTsClusters(word string) (string, int) {
	runes := []rune(word)
	var out []rune
	count := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] == 't' && i+1 < len(runes) && runes[i+1] == 's' &&
			(i == 0 || In(SyllableFinalConsonants, runes[i-1])) {
			out = append(out, 's')
			count++
			i++
			continue
		}
		out = append(out, runes[i])
	}
	return string(out), count
}

// fixIuFallingDiphthongs converts the falling diphthongs "iw" and "uy" to
// the vowel pairs "iu" and "ui" unless a plain vowel follows.
func fixIuFallingDiphthongs(word string) string {
	runes := []rune(word)
	var out []rune
	for i := 0; i < len(runes); i++ {
		if i+1 < len(runes) &&
			(runes[i] == 'i' && runes[i+1] == 'w' || runes[i] == 'u' && runes[i+1] == 'y') &&
			(i+2 >= len(runes) || !In(SimpleVowels, runes[i+2])) {
			if runes[i] == 'i' {
				out = append(out, 'i', 'u')
			} else {
				out = append(out, 'u', 'i')
			}
			i++
			continue
		}
		out = append(out, runes[i])
	}
	return string(out)
}

// dropIllegalFallingDiphthongs reduces the diphthongs "ey", "iy", "ow" and
// "uw" to their first vowel unless a plain vowel follows. Each reduction
// loses a sound and is counted.
func dropIllegalFallingDiphthongs(word string) (string, int) {
	runes := []rune(word)
	var out []rune
	count := 0
	for i := 0; i < len(runes); i++ {
		if i+1 < len(runes) && isIllegalFallingDiphthong(string(runes[i:i+2])) &&
			(i+2 >= len(runes) || !In(SimpleVowels, runes[i+2])) {
			out = append(out, runes[i])
			count++
			i++
			continue
		}
		out = append(out, runes[i])
	}
	return string(out), count
}

// dropHBeforeConsonant deletes "h" before a non-semivowel consonant,
// counting the deletions. Deletions consume the following consonant, so in
// "hhk" only the first h is dropped.
func dropHBeforeConsonant(word string) (string, int) {
	runes := []rune(word)
	var out []rune
	count := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] == 'h' && i+1 < len(runes) && In(AllNonSemivowels, runes[i+1]) {
			out = append(out, runes[i+1])
			count++
			i++
			continue
		}
		out = append(out, runes[i])
	}
	return string(out), count
}

func lastRunes(runes []rune, n int) string {
	if len(runes) < n {
		return ""
	}
	return string(runes[len(runes)-n:])
}

// Repair makes the candidate's phonology valid, inserting filler vowels
// where necessary and increasing the penalty accordingly. It also cleans up
// the phonology in other ways, simplifying "tx" to "C", collapsing double
// consonants, and so on.
//
// Repair runs only once per candidate. A second invocation does nothing,
// since rerunning would overcount the distortion penalties.
func (c *Candidate) Repair() {
	if c.state == StateRepaired {
		return
	}
	text := punctuationRE.ReplaceAllString(c.Word, " ")

	var newWords []string
	for _, word := range strings.Fields(text) {
		word = c.repairWord(word)
		c.Penalty += strings.Count(word, string(Filler))
		newWords = append(newWords, word)
	}
	c.Word = strings.Join(newWords, " ")
	c.state = StateRepaired
}

func (c *Candidate) repairWord(word string) string {
	// The mapping tables use "X" for IPA /x/. It becomes "h" before vowels,
	// where that sound is allowed, and "k" elsewhere, with a penalty.
	word = xBeforeVowelRE.ReplaceAllString(word, "h${1}")
	if c.Lang == "es" {
		// Spanish also allows "h" before semivowels
		word = xBeforeSemivowelRE.ReplaceAllString(word, "h${1}")
	}
	if n := strings.Count(word, "X"); n > 0 {
		word = strings.ReplaceAll(word, "X", "k")
		c.Penalty += n
	}

	// Simplify tx/tc to the affricate
	word = strings.ReplaceAll(word, "tx", "C")
	word = strings.ReplaceAll(word, "tc", "C")
	// Likewise "iy" to "i" and "uw" to "u"
	word = strings.ReplaceAll(word, "iy", "i")
	word = strings.ReplaceAll(word, "uw", "u")

	word = collapseDoubleConsonants(word)

	// "ny" before a consonant drops the "y" without a penalty, the
	// difference in pronunciation being small. Not in German, where it
	// tends to represent "ni".
	if c.Lang != "de" {
		word = nyBeforeConsonantRE.ReplaceAllString(word, "n${1}")
	}

	// Semivowels between consonants become the corresponding vowel
	word = semivowelBetweenConsonants(word, 'y', 'i')
	word = semivowelBetweenConsonants(word, 'w', 'u')

	// "ks" at the start of words simplifies to "s", likewise "dz" to "z",
	// with a penalty since a sound is lost
	var n int
	word, n = replaceCount(initialKsRE, word, "s")
	c.Penalty += n
	word, n = replaceCount(initialDzRE, word, "z")
	c.Penalty += n

	// "ts" at the start of words and after syllable-final consonants
	// simplifies to "s", again losing a sound
	word, n = simplifyTsClusters(word)
	c.Penalty += n

	// Final "iy" simplifies to "i" without penalty
	if strings.HasSuffix(word, "iy") {
		word = word[:len(word)-1]
	}

	// "iw" and "uy" as falling diphthongs become the vowel pairs "iu"
	// and "ui" without a penalty
	word = fixIuFallingDiphthongs(word)

	// Final "ey" in French words ending in -eil or -ille(s), such as
	// vieille or conseil, becomes the double vowel "ei" without penalty
	runes := []rune(word)
	if c.Lang == "fr" && len(runes) >= 2 && runes[len(runes)-1] == 'y' &&
		frSilentFinalRE.MatchString(c.Original) &&
		isIllegalFallingDiphthong(lastRunes(runes, 2)) {
		word = string(runes[:len(runes)-1]) + "i"
	}

	// Other illegal falling diphthongs reduce to just the first vowel,
	// with a penalty
	word, n = dropIllegalFallingDiphthongs(word)
	c.Penalty += n

	// Final "h" is dropped, with a penalty
	if strings.HasSuffix(word, "h") {
		word = word[:len(word)-1]
		c.Penalty++
	}

	// As is "h" before another consonant, semivowels excluded
	word, n = dropHBeforeConsonant(word)
	c.Penalty += n

	// Final N (ng) needs a vowel before it; penalties for the added
	// vowels are counted at the end of the pass
	word = finalNAfterConsonantRE.ReplaceAllString(word, "${1}əN")

	word = strings.ReplaceAll(word, "nN", "N")

	// Add a vowel before syllable-initial N or Ng
	word = initialNgRE.ReplaceAllString(word, "${1}ə${2}")

	// After a vowel, "SC" becomes "sC" to stay valid across the syllable
	// boundary, with a penalty (common in Russian words)
	word, n = replaceCount(scAfterVowelRE, word, "${1}sC")
	c.Penalty += n

	// Any remaining "SC" simplifies to just "C", with a penalty
	if n = strings.Count(word, "SC"); n > 0 {
		word = strings.ReplaceAll(word, "SC", "C")
		c.Penalty += n
	}

	// Final "z" after a vowel becomes "s", with a penalty
	if finalZAfterVowelRE.MatchString(word) {
		word = word[:len(word)-1] + "s"
		c.Penalty++
	}

	// Insert filler vowels between illegal consonant pairs and triples
	word = strings.ReplaceAll(word, "rld", "rəld")
	word = illegalSkptTripleRE.ReplaceAllString(word, "${1}ə${2}")

	// In German the frequent "Sv" (schw) before a vowel becomes "Sw" to
	// avoid a filler vowel, without a penalty
	if c.Lang == "de" {
		word = deSvBeforeVowelRE.ReplaceAllString(word, "Sw${1}")
	}

	// Run to a fixed point, since three or more matching consonants can
	// occur in a row
	for {
		var count int
		word, count = replaceCount(illegalConsPairRE, word, "${1}ə${2}")
		if count == 0 {
			break
		}
	}

	word = illegalRnTripleRE.ReplaceAllString(word, "${1}ə${2}")
	word = nasalMnRE.ReplaceAllString(word, "${1}mən")
	word = strings.ReplaceAll(word, "stl", "stəl")
	word = strings.ReplaceAll(word, "stv", "stəv")
	word = strings.ReplaceAll(word, "smr", "səmr")

	// Prepend a filler vowel before initial "s" followed by a consonant
	// pair that may start a syllable, as in "street"
	word = initialSClusterRE.ReplaceAllString(word, "ə${1}")

	word = initialConsTripleRE.ReplaceAllString(word, "${1}ə${2}")
	word = illegalConsTripleRE.ReplaceAllString(word, "${1}ə${2}")
	word = illegalConsTriple2RE.ReplaceAllString(word, "${1}ə${2}")

	// Initial "wh" simplifies to "w" without penalty; these are usually
	// English imports where the "h" is silent anyway
	word = initialWhRE.ReplaceAllString(word, "w")

	// An initial semivowel followed by a consonant not allowed in second
	// position becomes the corresponding vowel
	runes = []rune(word)
	if len(runes) >= 2 && In(Semivowels, runes[0]) && In(NotSecondConsonants, runes[1]) {
		if runes[0] == 'w' {
			runes[0] = 'u'
		} else {
			runes[0] = 'i'
		}
		word = string(runes)
	}

	// Semivowels occurring as third consonant in a syllable, as in "try"
	// or "plw", become the corresponding vowel without a penalty
	word = thirdSemivowelInitialRE.ReplaceAllStringFunc(word, replaceFinalSemivowel)
	word = thirdSemivowelMedialRE.ReplaceAllStringFunc(word, replaceFinalSemivowel)

	// But if two of them occur in a row, as in "gwy" or "hyw", the first
	// one becomes a vowel
	word = doubleSemivowelInitRE.ReplaceAllStringFunc(word, replaceDoubleSemivowel)
	word = doubleSemivowelMedRE.ReplaceAllStringFunc(word, replaceDoubleSemivowel)

	// "Nək" after a syllable-final consonant simplifies to "nək": the N
	// usually just resulted from assimilation between the two consonants
	word = nasalAssimilationRE.ReplaceAllString(word, "${1}nək")

	// A word of just two consonants gets a vowel between them if that
	// yields a legal word, e.g. "st" -> "sət"
	runes = []rune(word)
	if len(runes) == 2 && In(InitialNonSemivowels, runes[0]) &&
		In(WordFinalConsonants, runes[1]) && !In(SecondConsonants, runes[1]) {
		word = string(runes[0]) + "ə" + string(runes[1])
	}

	// Prepend a vowel if that legalizes a word starting with two
	// consonants
	runes = []rune(word)
	if len(runes) >= 2 && In(SyllableFinalConsonants, runes[0]) && In(NotSecondConsonants, runes[1]) {
		word = "ə" + word
	}

	// Most consonants are not allowed at the end of words, nor are
	// consonant pairs; final semivowels are only allowed in certain
	// falling diphthongs
	runes = []rune(word)
	last := len(runes) - 1
	if (len(runes) > 0 && In(NotWordFinalNonSemivowel, runes[last])) ||
		(len(runes) > 2 &&
			(In(InitialConsonants, runes[last-1]) && In(SecondConsonants, runes[last]) ||
				In(SyllableFinalConsonants, runes[last-1]) && In(InitialConsonants, runes[last]) ||
				In(Semivowels, runes[last]) && !IsFallingDiphthong(lastRunes(runes, 2)))) {
		word += "ə"
	}

	// Add a final vowel if the word has consonants but no vowels
	if HasConsonant(word) && !HasVowel(word) {
		word += "ə"
	}

	// Just "N" needs a vowel before rather than after it
	if word == "Nə" {
		word = "əN"
	}

	// A spurious filler may have been inserted between "Ng"
	word = strings.ReplaceAll(word, "Nəg", "Ng")

	// Collapse double consonants again, since the rules above may have
	// created new ones
	word = collapseDoubleConsonants(word)

	// Drop the double "ii" occurring in some Russian words
	if c.Lang == "ru" {
		word = strings.ReplaceAll(word, "ii", "i")
	}

	return word
}

func replaceFinalSemivowel(m string) string {
	if strings.HasSuffix(m, "w") {
		return m[:len(m)-1] + "u"
	}
	return m[:len(m)-1] + "i"
}

func replaceDoubleSemivowel(m string) string {
	if strings.HasSuffix(m, "wy") {
		return m[:len(m)-2] + "uy"
	}
	return m[:len(m)-2] + "iw"
}
