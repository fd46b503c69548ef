package mapper

import (
	"regexp"
	"strings"

	"kandivoc/internal/phonology"
)

type postprocessor func(word, original, class string) string

var postprocessors = map[string]postprocessor{
	"de":      postprocessGerman,
	"en":      postprocessEnglish,
	"es":      postprocessSpanish,
	"fr":      postprocessFrench,
	"id":      postprocessIndonesian,
	"lidepla": postprocessLidepla,
	"ru":      postprocessRussian,
}

// verbStrippers remove the typical infinitive or base-form markers from
// verbs, so that candidates reflect the stem rather than the citation form.
var verbStrippers = map[string]func(word, original string) string{
	"ar": stripArabicVerb,
	"bn": stripBengaliVerb,
	"de": stripGermanVerb,
	"es": stripIberianVerb,
	"fr": stripFrenchVerb,
	"hi": stripHindiVerb,
	"ja": stripJapaneseVerb,
	"ko": stripKoreanVerb,
	"fa": stripPersianVerb,
	"ru": stripRussianVerb,
	"sw": stripSwahiliVerb,
	"ta": stripDravidianVerb,
	"te": stripDravidianVerb,
	"tr": stripTurkishVerb,
}

// Postprocess performs language-specific cleanup on a converted candidate.
// original is the preprocessed input word, which some rules consult for
// spellings the conversion has already erased.
func Postprocess(candidate, original, tableName, class string) string {
	var newWords []string
	for _, word := range strings.Fields(candidate) {
		word = postprocessCommon(word, tableName)
		if proc, ok := postprocessors[tableName]; ok {
			word = proc(word, original, class)
		}
		if tableName == "es" || tableName == "fr" {
			// Double "oo" is reduced to one, e.g. in "alcohol/alcool"
			word = strings.ReplaceAll(word, "oo", "o")
		}
		if class == "verb" {
			if strip, ok := verbStrippers[tableName]; ok {
				word = strip(word, original)
			}
		}
		newWords = append(newWords, word)
	}
	return strings.Join(newWords, " ")
}

// postprocessCommon applies the nasal and affricate adjustments shared by
// all languages.
func postprocessCommon(word, tableName string) string {
	// /n/ before /g/ or /k/ is pronounced /N/ instead
	word = strings.ReplaceAll(word, "ng", "Ng")
	word = strings.ReplaceAll(word, "nk", "Nk")
	// /tS/ equals /C/, and /dj/ can be simplified to /j/
	word = strings.ReplaceAll(word, "tS", "C")
	word = strings.ReplaceAll(word, "dj", "j")

	// /N/ followed by a vowel (after optionally a second consonant)
	// becomes /Ng/, since that is how it is pronounced
	word = insertGAfterNasal(word)

	// Final /Ng/ becomes just /N/
	if strings.HasSuffix(word, "Ng") {
		word = word[:len(word)-1]
	}
	return word
}

func insertGAfterNasal(word string) string {
	runes := []rune(word)
	var out []rune
	for i, r := range runes {
		out = append(out, r)
		if r != 'N' {
			continue
		}
		rest := runes[i+1:]
		if len(rest) > 0 && phonology.In(phonology.SecondConsonants, rest[0]) {
			rest = rest[1:]
		}
		if len(rest) > 0 && phonology.In(phonology.InternalVowels, rest[0]) {
			out = append(out, 'g')
		}
	}
	return string(out)
}

var (
	deLongVowelH = regexp.MustCompile(
		`([` + phonology.SimpleVowels + `])h([` + phonology.AllConsonants + `])`)
	deFinalEr = regexp.MustCompile(`er($|[^\p{L}])`)
)

func postprocessGerman(word, original, _ string) string {
	// "h" between a vowel and another consonant tends to just lengthen
	// the vowel, so we remove it
	word = deLongVowelH.ReplaceAllString(word, "${1}${2}")

	// Word-final "er" (e.g. "Wasser") becomes "a", which better matches
	// the pronunciation
	if strings.HasSuffix(word, "er") && deFinalEr.MatchString(original) {
		word = word[:len(word)-2] + "a"
	}
	return word
}

// An R-colored schwa at the end of English words (in IPA).
var finalRColoredSchwaRE = regexp.MustCompile(`(ɚ|əɹ|\(ə\)ɹ)$`)

func postprocessEnglish(word, original, _ string) string {
	// Word-final R-colored schwa as in "water" or "user" becomes "a"
	// rather than "er", reflecting that it is unstressed (cf. Swahili
	// "picha" from "picture")
	original = strings.Trim(original, "/")
	if strings.HasSuffix(word, "er") && finalRColoredSchwaRE.MatchString(original) &&
		!strings.HasSuffix(original, "ɛəɹ") {
		return word[:len(word)-2] + "a"
	}
	// A final schwa becomes "a" if the original writes it like that, as
	// it nearly always is (e.g. "comma")
	if strings.HasSuffix(word, "e") && strings.HasSuffix(original, "ə") {
		return word[:len(word)-1] + "a"
	}
	return word
}

const esGlideTargets = "aeiouáéíóú"

// esGlides turns "i" before a vowel into "y" and "u" into "w", except
// where another semivowel is allowed after two consonants.
func esGlides(word string) string {
	runes := []rune(word)
	var out []rune
	for i := 0; i < len(runes); i++ {
		if (runes[i] == 'i' || runes[i] == 'u') && i+1 < len(runes) &&
			strings.ContainsRune(esGlideTargets, runes[i+1]) &&
			!(i >= 2 && phonology.In(phonology.InitialConsonants, runes[i-2]) &&
				phonology.In(phonology.SecondConsonants, runes[i-1])) {
			if runes[i] == 'i' {
				out = append(out, 'y')
			} else {
				out = append(out, 'w')
			}
			out = append(out, runes[i+1])
			i++
			continue
		}
		out = append(out, runes[i])
	}
	return string(out)
}

func postprocessSpanish(word, _, _ string) string {
	// Word-initial "x" is "s" rather than "ks"
	if strings.HasPrefix(word, "ks") {
		word = word[1:]
	}

	word = esGlides(word)

	// "H" marked silent letters; after the glide conversion it can go
	word = strings.ReplaceAll(word, "H", "")
	// Strip acute accents only now, since accented vowels never become
	// semivowels
	return acuteTrans.apply(word)
}

func postprocessFrench(word, original, _ string) string {
	// Final -tion is pronounced more like -syon than -tyon
	if strings.HasSuffix(word, "tyon") && strings.HasSuffix(original, "tYon") {
		word = word[:len(word)-4] + "syon"
	}
	return word
}

func postprocessIndonesian(word, _, _ string) string {
	// Final "k" usually represents the glottal stop, so we delete it
	// (but final "nk", e.g. in "bank", becomes "n" rather than "N")
	if strings.HasSuffix(word, "Nk") {
		return word[:len(word)-2] + "n"
	}
	if strings.HasSuffix(word, "k") {
		return word[:len(word)-1]
	}
	return word
}

// collapseDoubledVowels reduces doubled simple vowels to one, pairwise from
// the left.
func collapseDoubledVowels(word string) string {
	runes := []rune(word)
	var out []rune
	for i := 0; i < len(runes); i++ {
		out = append(out, runes[i])
		if i+1 < len(runes) && runes[i+1] == runes[i] &&
			phonology.In(phonology.SimpleVowels, runes[i]) {
			i++
		}
	}
	return string(out)
}

func postprocessLidepla(word, _, _ string) string {
	// With at least three vowel letters (excluding words like "zoo"),
	// doubled vowels represent a single stressed vowel sound
	if phonology.CountVowels(word) >= 3 {
		word = collapseDoubledVowels(word)
	}
	return word
}

func postprocessRussian(word, original, _ string) string {
	if strings.HasSuffix(word, "i") {
		// Final "e" is pronounced "e"
		if strings.HasSuffix(original, "e") {
			return word[:len(word)-1] + "e"
		}
		// Final "ja" is pronounced with a schwa; "a" fits better here
		// (cf. the spelling of the romanization)
		if strings.HasSuffix(original, "ja") {
			return word[:len(word)-1] + "a"
		}
	}
	return word
}

// Words ending in a certain vowel after a single final consonant or
// another vowel.
var (
	aAfterFinalConsonantRE = regexp.MustCompile(`[^` + phonology.AllConsonants + `][` +
		phonology.WordFinalConsonants + `]?a$`)
	eAfterFinalConsonantRE = regexp.MustCompile(`[^` + phonology.AllConsonants + `][` +
		phonology.WordFinalConsonants + `]?e$`)
	uAfterFinalConsonantRE = regexp.MustCompile(`[^` + phonology.AllConsonants + `][` +
		phonology.WordFinalConsonants + `]?u$`)
)

// stripArabicVerb strips the final -a from the dictionary form of Arabic
// verbs with three or more vowels if the result is allowed by the
// phonology (the -a is kept after a consonant not allowed to end a word).
func stripArabicVerb(word, _ string) string {
	return stripFinalVowelCitation(word, 'a', "iya", "uva")
}

// stripFinalVowelCitation drops the final citation vowel if the remainder
// would be a legal word, or if the word ends in one of the given suffixes
// ("iy" and "uv" are simplified only later, during repair).
func stripFinalVowelCitation(word string, vowel rune, suffixes ...string) string {
	runes := []rune(word)
	n := len(runes)
	strippable := phonology.CountVowels(word) >= 3 && n >= 2 && runes[n-1] == vowel &&
		(phonology.In(phonology.WordFinalConsonants, runes[n-2]) ||
			phonology.In(phonology.SimpleVowels, lowerRune(runes[n-2])))
	if !strippable && n >= 3 {
		last3 := strings.ToLower(string(runes[n-3:]))
		for _, suffix := range suffixes {
			if last3 == suffix {
				strippable = true
				break
			}
		}
	}
	if strippable {
		return string(runes[:n-1])
	}
	return word
}

func lowerRune(r rune) rune {
	return []rune(strings.ToLower(string(r)))[0]
}

// stripBengaliVerb strips the final -a from the dictionary form where
// possible.
func stripBengaliVerb(word, _ string) string {
	if aAfterFinalConsonantRE.MatchString(word) {
		return word[:len(word)-1]
	}
	return word
}

// stripGermanVerb strips the final -n of the infinitive.
func stripGermanVerb(word, _ string) string {
	if strings.HasSuffix(word, "en") {
		return word[:len(word)-1]
	}
	return word
}

func stripIberianVerb(word, _ string) string {
	if strings.HasSuffix(word, "r") {
		return word[:len(word)-1]
	}
	if strings.HasSuffix(word, "rse") {
		return word[:len(word)-3] + "se"
	}
	return word
}

func stripFrenchVerb(word, original string) string {
	if strings.HasSuffix(word, "var") &&
		(strings.HasSuffix(original, "avoir") || strings.HasSuffix(original, "ouvoir") ||
			strings.HasSuffix(original, "loir")) {
		// In a handful of French verbs (avoir, mouvoir, pouvoir; falloir,
		// prévaloir, vouloir), replace the final -oir with -e: that
		// sequence never appears in the conjugated forms, while -e shows
		// up in the related Spanish/Portuguese verbs
		return word[:len(word)-3] + "e"
	}
	if eAfterFinalConsonantRE.MatchString(word) {
		// The silent final "e" goes if a single word-final consonant
		// precedes it; the -r was already stripped in preprocessing, so
		// "arrêter" has become "arete" by now
		return word[:len(word)-1]
	}
	if strings.HasSuffix(word, "tr") {
		// In verbs ending in "tr(e)" such as "croître", both final
		// consonants are silent in the typical present-tense forms
		return word[:len(word)-2]
	}
	if strings.HasSuffix(word, "r") {
		return word[:len(word)-1]
	}
	return word
}

func stripHindiVerb(word, _ string) string {
	if strings.HasSuffix(word, "na") {
		return word[:len(word)-2]
	}
	return word
}

// stripJapaneseVerb strips the final -u from the dictionary form of verbs
// with three or more vowels if the result is allowed by the phonology.
func stripJapaneseVerb(word, _ string) string {
	return stripFinalVowelCitation(word, 'u', "iyu", "uvu")
}

func stripKoreanVerb(word, _ string) string {
	if strings.HasSuffix(word, "da") {
		return word[:len(word)-2]
	}
	return word
}

// stripPersianVerb strips the final -dan or -n of the infinitive.
func stripPersianVerb(word, _ string) string {
	if strings.HasSuffix(word, "dan") {
		return word[:len(word)-3]
	}
	if strings.HasSuffix(word, "n") {
		return word[:len(word)-1]
	}
	return word
}

func stripRussianVerb(word, _ string) string {
	if strings.HasSuffix(word, "t") {
		return word[:len(word)-1]
	}
	return word
}

// stripSwahiliVerb strips the initial ku- unless the verb has just two
// syllables, since short verbs tend to keep the ku- in many cases.
func stripSwahiliVerb(word, _ string) string {
	if strings.HasPrefix(word, "ku") && phonology.CountVowels(word) >= 3 {
		return word[2:]
	}
	return word
}

// stripDravidianVerb strips the final -u from the dictionary form of Tamil
// and Telugu verbs where possible.
func stripDravidianVerb(word, _ string) string {
	if uAfterFinalConsonantRE.MatchString(word) {
		return word[:len(word)-1]
	}
	return word
}

func stripTurkishVerb(word, _ string) string {
	if strings.HasSuffix(word, "mak") || strings.HasSuffix(word, "mek") {
		return word[:len(word)-3]
	}
	return word
}
