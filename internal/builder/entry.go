package builder

import (
	"sort"
	"strings"

	"kandivoc/internal/lexicon"
	"kandivoc/internal/phonology"
)

// protectChSh upper-cases "ch" and "sh" before a spelling comparison, so
// that e.g. a "c" pronounced /k/ or /s/ doesn't seem similar to "ch" /tS/.
var protectChSh = strings.NewReplacer("ch", "CH", "sh", "SH").Replace

// CombineEntry combines a chosen candidate and its concept entry into a
// unified dictionary entry. The entry is modified in-place and also returned.
//
// The influence list names the donor language and any other languages that
// yield the same candidate first, then the other related languages, each
// followed by its original word(s) in parentheses. Languages written in the
// Latin alphabet are additionally checked by spelling, since e.g. "relasi"
// is clearly related to "relation" even though the English pronunciation is
// too different for the ranker to notice.
func (b *Builder) CombineEntry(cand *phonology.Candidate, entry *lexicon.Entry) *lexicon.Entry {
	firstSet := cand.LangsWithIdenticalCandidate()
	inflSet := make(map[string]bool)
	for lang := range cand.Related {
		inflSet[lang] = true
	}

	extraOriginals := map[string]string{cand.Lang: cand.ShowOriginal()}
	if cand.Lang != "" {
		// Empty (and skipped) when the word was specified by hand
		firstSet[cand.Lang] = true
		inflSet[cand.Lang] = true
	}

	secondSet := make(map[string]bool)
	for lang := range inflSet {
		if !firstSet[lang] {
			secondSet[lang] = true
		}
	}

	thisWord := protectChSh(strings.ToLower(cand.ExportWord()))
	langCodesToCheck := make(map[string]bool)
	for lang := range b.activeFallbacks {
		if b.opts.LatinFallbacks[lang] {
			langCodesToCheck[lang] = true
		}
	}
	for lang := range b.opts.LatinMains {
		langCodesToCheck[lang] = true
	}

	for langCode := range langCodesToCheck {
		if inflSet[langCode] {
			continue
		}
		for _, word := range lexicon.SplitOnSemicolons(entry.Get(langCode)) {
			word = lexicon.DiscardTextInBrackets(word)
			if _, related := b.scorer.Distance(thisWord, protectChSh(strings.ToLower(word))); related {
				secondSet[langCode] = true
				extraOriginals[langCode] = word
				break
			}
		}
	}

	inflList := append(sortedKeys(firstSet), sortedKeys(secondSet)...)
	var formatted []string

	for _, lang := range inflList {
		originals, ok := extraOriginals[lang]
		if !ok {
			var parts []string
			for _, related := range cand.Related[lang] {
				parts = append(parts, related.ShowOriginal())
			}
			originals = strings.Join(parts, ", ")
		}
		if originals != "" {
			formatted = append(formatted, lang+" ("+originals+")")
		} else {
			b.log.Warnf("No original found for %s.", lang)
			formatted = append(formatted, lang)
		}
	}

	entry.Add("infl", strings.Join(formatted, "; "), 0, true)
	entry.Add("word", cand.ExportWord(), 0, true)
	return entry
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ExportEntry prepares an entry for export into the dictionary, serializing
// the word first, then the fields that aren't translations (class, sense
// etc.) in alphabetic order, then the translations in alphabetic order.
// Bookkeeping keys like "transcount" are skipped. isAuxlang classifies the
// auxiliary language keys; extraTags, if any, are added to the "tags" field.
func ExportEntry(entry *lexicon.Entry, isAuxlang func(code string) bool,
	extraTags []string) *lexicon.Entry {

	for _, tag := range extraTags {
		AddOrAppendField("tags", tag, entry)
	}

	var otherKeys, transKeys []string
	transKeySet := make(map[string]bool)

	for _, key := range entry.Keys() {
		if key == "transcount" || key == "word" || strings.HasSuffix(key, "-ipa") {
			continue
		}
		if len(key) <= 3 || isAuxlang(key) || strings.Contains(key, "-") {
			transKeys = append(transKeys, key)
			transKeySet[key] = true
		} else {
			otherKeys = append(otherKeys, key)
		}
	}
	sort.Strings(otherKeys)
	sort.Strings(transKeys)

	word := entry.Get("word")
	switch class := entry.Get("class"); {
	case class == "name" && startsUpper(entry.Get("en")):
		// Names (proper nouns) are capitalized if the English version is
		word = capitalize(word)
	case class == "prefix" && !strings.HasSuffix(word, "-"):
		// Add a hyphen after prefixes and before suffixes, if not yet present
		word = word + "-"
	case class == "suffix" && !strings.HasPrefix(word, "-"):
		word = "-" + word
	}

	result := lexicon.NewEntry(entry.Filename)
	result.Add("word", word, 0, false)
	for _, key := range append(otherKeys, transKeys...) {
		value := entry.Get(key)
		if transKeySet[key] {
			value = cleanupTranslationValue(value)
		}
		if value != "" {
			result.Add(key, value, 0, false)
		}
	}
	return result
}

// AddOrAppendField adds a key/value pair to entry, appending comma-separated
// if the key already exists.
func AddOrAppendField(key, value string, entry *lexicon.Entry) {
	if entry.Has(key) {
		entry.AppendToVal(key, ", "+value)
	} else {
		entry.Add(key, value, 0, false)
	}
}

// cleanupTranslationValue cleans the translations of a concept in some
// language for export: bracketed IPA or romanizations are removed, repeated
// translations are kept only once, and translations that are just a
// parenthesized comment are dropped unless nothing else remains.
func cleanupTranslationValue(value string) string {
	value = lexicon.DiscardTextInBrackets(value)
	translations := lexicon.SplitOnSemicolons(value)
	var result []string
	seen := make(map[string]bool)

	for _, trans := range translations {
		if len(translations) > 1 && strings.HasPrefix(trans, "(") && strings.HasSuffix(trans, ")") {
			continue
		}
		if !seen[trans] {
			seen[trans] = true
			result = append(result, trans)
		}
	}
	return strings.Join(result, "; ")
}

func startsUpper(text string) bool {
	return text != "" && text[0] >= 'A' && text[0] <= 'Z'
}

// capitalize upper-cases the first character, leaving the rest unchanged.
func capitalize(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
