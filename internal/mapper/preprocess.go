package mapper

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"kandivoc/internal/phonology"
)

// transTable maps single runes to replacements or deletes them, like the
// translation tables of many transliteration tools.
type transTable struct {
	repl map[rune]rune
	del  map[rune]bool
}

func makeTrans(from, to, del string) transTable {
	fromRunes, toRunes := []rune(from), []rune(to)
	if len(fromRunes) != len(toRunes) {
		panic("makeTrans: from and to differ in length")
	}
	t := transTable{repl: make(map[rune]rune, len(fromRunes)), del: make(map[rune]bool)}
	for i, r := range fromRunes {
		t.repl[r] = toRunes[i]
	}
	for _, r := range del {
		t.del[r] = true
	}
	return t
}

func (t transTable) apply(s string) string {
	var b strings.Builder
	for _, r := range s {
		if t.del[r] {
			continue
		}
		if mapped, ok := t.repl[r]; ok {
			b.WriteRune(mapped)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Vowels with acute accents (y included), used for several languages.
const (
	acuteAccents   = "áéíóúý"
	vowelsWoAccent = "aeiouy"
)

var (
	// Accents marking tones, plus similar diacritics; used for Pinyin and
	// various other languages.
	toneTrans = makeTrans("āēīōūǖáéíóúǘǎěǐǒǔǚàèìòùǜăĕĭŏŭâêîôû",
		"aeiouüaeiouüaeiouüaeiouüaeiouaeiou", "")

	// For English IPA: a combining tilde marks nasalization, so it becomes
	// "n"; other combining marks common in IPA (inverted breve, undertie,
	// tie bar, voiceless, syllabic) are removed.
	ipaTrans = makeTrans("̃", "n", "̯‿̥̩͡")

	acuteTrans = makeTrans(acuteAccents, vowelsWoAccent, "")

	// Thai combining tone marks
	thaiToneTrans = makeTrans("", "", "̂̀́̌̄̒")

	vietnameseVowelTrans = makeTrans(
		"ắằẵẳấầẫẩãảạặậçếềễểëẽẻẹệĩỉịńốồỗổõỏọộqüũủứừữửựụýỳỹỷỵờớởỡợ",
		"aaaaaaaaaaaaaceeeeeeeeeiiinooooooooquuuuuuuuuyyyyyơơơơơ", "")
)

// Languages whose diacritics mark tones (or similar) and are stripped
// wholesale before conversion.
var toneStripLangs = map[string]bool{
	"cmn": true, "de": true, "fr": true, "ja": true, "ha": true, "th": true,
}

// preprocessor adjusts a lowercased word before table conversion. original
// is the word as written, before lowercasing.
type preprocessor func(word, original, class string) string

var preprocessors = map[string]preprocessor{
	"ar":  preprocessArabic,
	"cmn": preprocessMandarin,
	"en":  preprocessEnglish,
	"fr":  preprocessFrench,
	"ha":  preprocessHausa,
	"hi":  preprocessHindi,
	"id":  preprocessIndonesian,
	"ru":  preprocessRussian,
	"th":  preprocessThai,
	"tl":  preprocessTagalog,
	"tr":  preprocessTurkish,
	"vi":  preprocessVietnamese,
}

// Preprocess applies the language-specific preprocessing for the given
// conversion table to a candidate word.
func Preprocess(word, tableName, class string) string {
	// Compose combining sequences, so that the diacritic tables match
	// however the source file spells them
	word = norm.NFC.String(word)
	original := word
	word = strings.ToLower(word)
	if toneStripLangs[tableName] {
		word = toneTrans.apply(word)
	}
	if proc, ok := preprocessors[tableName]; ok {
		word = proc(word, original, class)
	}
	// Remove any zero-width non-joiners
	return strings.ReplaceAll(word, "‌", "")
}

// preprocessArabic strips the article al- unless it is the whole word.
func preprocessArabic(word, _, _ string) string {
	if strings.HasPrefix(word, "al-") && len(word) > 3 {
		return word[3:]
	}
	return word
}

// Matches "n" and "r" between Pinyin vowels; the sequence "nr" in this
// position is divided between the two groups.
var nrBetweenVowelsRE = regexp.MustCompile(`([aeiouü]n?)([nr][aeiouü])`)

// preprocessMandarin inserts a "+" sign (deleted during conversion) between
// vowels and "n" or "r", distinguishing initials such as "fù+nǚ" from
// finals such as "ānchún".
func preprocessMandarin(word, _, _ string) string {
	return nrBetweenVowelsRE.ReplaceAllString(word, "${1}+${2}")
}

func preprocessEnglish(word, _, _ string) string {
	return ipaTrans.apply(word)
}

var (
	frSoftC       = regexp.MustCompile(`s?c([eÉiy])`)
	frSoftG       = regexp.MustCompile(`g([eÉiy])`)
	frHardGu      = regexp.MustCompile(`gu([eÉiy])`)
	frDoubleC     = regexp.MustCompile(`[cx]c([eÉiy])`)
	frSoftGe      = regexp.MustCompile(`ge([aoOu])`)
	frQuI         = regexp.MustCompile(`(qu)i([aeiouÉO])`)
	frVowelSearch = regexp.MustCompile(`[` + phonology.SimpleVowels + `AEOÉÊYw]`)
	frKeepFinal   = regexp.MustCompile(`(ng|[ps]t|^.ix|^-.)$`)
)

const (
	frGlideBlockers = "aeiouAEÊ" // no glide after another vowel
	frGlideTargets  = "aeiouÉO"
)

// frIYGlide rewrites i and y before a vowel to the glide marker "Y",
// except after another vowel.
func frIYGlide(word string) string {
	runes := []rune(word)
	out := make([]rune, len(runes))
	copy(out, runes)
	for i, r := range runes {
		if (r == 'i' || r == 'y') &&
			(i == 0 || !strings.ContainsRune(frGlideBlockers, runes[i-1])) &&
			i+1 < len(runes) && strings.ContainsRune(frGlideTargets, runes[i+1]) {
			out[i] = 'Y'
		}
	}
	return string(out)
}

// frOuGlide rewrites "ou" before a vowel to "w", except after another
// vowel.
func frOuGlide(word string) string {
	runes := []rune(word)
	var out []rune
	for i := 0; i < len(runes); i++ {
		if runes[i] == 'o' && i+2 < len(runes) && runes[i+1] == 'u' &&
			strings.ContainsRune(frGlideTargets, runes[i+2]) &&
			(i == 0 || !strings.ContainsRune(frGlideBlockers, runes[i-1])) {
			out = append(out, 'w')
			i++
			continue
		}
		out = append(out, runes[i])
	}
	return string(out)
}

// preprocessFrench handles soft c and g, glides, and the usually silent
// final letters. Upper-case letters act as markers for the conversion
// table: "É"/"Ê" preserve diacritics that change the pronunciation, "Y" and
// "w" mark glides, "O" protects the vowel of "oê".
func preprocessFrench(word, original, _ string) string {
	word = strings.ReplaceAll(word, "éa", "ÉA")
	word = strings.ReplaceAll(word, "ée", "ÉE")
	word = strings.ReplaceAll(word, "oê", "OÊ")

	word = frSoftC.ReplaceAllString(word, "s${1}")
	word = frSoftG.ReplaceAllString(word, "j${1}")
	word = frHardGu.ReplaceAllString(word, "g${1}")
	word = frDoubleC.ReplaceAllString(word, "x${1}")
	word = frSoftGe.ReplaceAllString(word, "j${1}")

	// "ouill" ultimately becomes "uy"; prepare that here
	word = strings.ReplaceAll(word, "ouill", "ouY")

	// Simplify final -ie to -i
	if strings.HasSuffix(word, "ie") {
		word = word[:len(word)-1]
	}

	word = frIYGlide(word)
	word = frOuGlide(word)
	word = frQuI.ReplaceAllString(word, "${1}Y${2}")

	// Delete final letters that are usually silent
	runes := []rune(word)
	n := len(runes)
	switch {
	case n > 3 && (strings.HasSuffix(word, "er") || strings.HasSuffix(word, "il")) &&
		!strings.HasSuffix(word, "eil") && frVowelSearch.MatchString(string(runes[:n-2])):
		word = string(runes[:n-1])
	case strings.HasSuffix(word, "ngt"):
		word = string(runes[:n-1])
	case n > 2 && runes[n-1] == 's' && strings.ContainsRune("bdefgpt", runes[n-2]) &&
		!strings.HasSuffix(original, "ès"):
		word = string(runes[:n-2])
	case n > 1 && strings.ContainsRune("bdegpstxz", runes[n-1]) &&
		!(frKeepFinal.MatchString(word) || strings.HasSuffix(original, "é")):
		word = string(runes[:n-1])
	}
	return word
}

// preprocessHausa removes the combining grave accent.
func preprocessHausa(word, _, _ string) string {
	return strings.ReplaceAll(word, "̀", "")
}

// preprocessHindi removes the combining double tilde.
func preprocessHindi(word, _, _ string) string {
	return strings.ReplaceAll(word, "͠", "")
}

var (
	idMengPrefix = regexp.MustCompile(`^meng[ghkaeiou]`)
	idMemPrefix  = regexp.MustCompile(`^mem[bfp]`)
	idMenPrefix  = regexp.MustCompile(`^men[cdjstz]`)
	idMePrefix   = regexp.MustCompile(`^me[lmnrwy]`)
)

// preprocessIndonesian strips the meng- prefix (and its variants) from
// verbs; see https://en.wiktionary.org/wiki/meng-#Indonesian
func preprocessIndonesian(word, _, class string) string {
	if class != "verb" {
		return word
	}
	origVerb := word
	if strings.HasPrefix(word, "menge") {
		// menge -> ke, e.g. mengepung -> kepung
		word = "ke" + word[5:]
	} else if idMengPrefix.MatchString(word) {
		word = word[4:]
	}
	if word == origVerb && idMemPrefix.MatchString(word) {
		word = word[3:]
	}
	if word == origVerb && idMenPrefix.MatchString(word) {
		word = word[3:]
	}
	if word == origVerb && idMePrefix.MatchString(word) {
		word = word[2:]
	}
	if word == origVerb && strings.HasPrefix(word, "meny") {
		word = "s" + word[4:]
	}
	return word
}

var acuteAccentRE = regexp.MustCompile(`[` + acuteAccents + `]`)

// preprocessRussian simplifies "lj" to "l" (the /j/ is very reduced),
// devoices the always-/t/ final "d", and stresses the first vowel if none
// is stressed, since stressed vowels are often pronounced differently.
func preprocessRussian(word, _, _ string) string {
	word = strings.ReplaceAll(word, "lj", "l")
	if strings.HasSuffix(word, "d") {
		word = word[:len(word)-1] + "t"
	}
	if !acuteAccentRE.MatchString(word) {
		runes := []rune(word)
		for i, r := range runes {
			if idx := strings.IndexRune(vowelsWoAccent, r); idx >= 0 {
				runes[i] = []rune(acuteAccents)[idx]
				word = string(runes)
				break
			}
		}
	}
	return word
}

func preprocessThai(word, _, _ string) string {
	return thaiToneTrans.apply(word)
}

func preprocessTagalog(word, _, _ string) string {
	return acuteTrans.apply(word)
}

// preprocessTurkish strips acute accents and the combining dot above.
func preprocessTurkish(word, _, _ string) string {
	word = acuteTrans.apply(word)
	return strings.ReplaceAll(word, "̇", "")
}

func preprocessVietnamese(word, _, _ string) string {
	word = toneTrans.apply(word)
	return vietnameseVowelTrans.apply(word)
}
