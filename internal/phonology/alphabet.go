// Package phonology implements the restricted sound system of the target
// language: the internal alphabet, candidate words, the syllable repair
// engine, and the validity checker.
//
// Candidate words use an internal representation that differs slightly from
// the spelling used in the dictionary:
//
//   - semivowels are always written "w" and "y"
//   - "C", "S" and "N" stand for "ch", "sh" and "ng" (one sound, one letter)
//   - vowels inserted to satisfy the phonology are written "ə" instead of
//     "e"; such filler vowels are ignored at word edges when comparing
//     candidates for similarity
package phonology

import "strings"

// Consonant and vowel classes of the internal alphabet.
const (
	// InitialNonSemivowels may start a syllable on their own.
	InitialNonSemivowels = "bCdfghjklmnprsStvz"
	// Semivowels may start a syllable or follow another consonant.
	Semivowels = "wy"
	// InitialConsonants is every consonant allowed to start a syllable.
	InitialConsonants = InitialNonSemivowels + Semivowels
	// AllConsonants adds the velar nasal, which never starts a syllable.
	AllConsonants    = InitialConsonants + "N"
	AllNonSemivowels = InitialNonSemivowels + "N"

	// WordFinalConsonants may end a word (semivowels are excluded here and
	// instead treated as part of falling diphthongs).
	WordFinalConsonants = "klmnNprst"
	// SyllableFinalConsonants may close a syllable inside a word.
	SyllableFinalConsonants = WordFinalConsonants + "bdg"
	// SecondConsonants may follow another consonant in a syllable onset.
	SecondConsonants = "lrwy"

	// Consonants not allowed at the end of a word or syllable (semivowels
	// excluded, they are handled via the diphthong rules).
	NotWordFinalNonSemivowel     = "CSbdfghjvz"
	NotSyllableFinalNonSemivowel = "CSfhjvz"
	// Consonants not allowed after another consonant.
	NotSecondConsonants = "bCdfghjkmnpsStvz"

	SimpleVowels = "aeiou"
	// InternalVowels includes the filler vowel.
	InternalVowels = SimpleVowels + "ə"
)

// Filler is the vowel inserted to satisfy syllable-structure constraints.
// Every occurrence left in a repaired word costs one penalty point.
const Filler = 'ə'

// FallingDiphthongs are the vowel+semivowel sequences that are legal
// anywhere, including at the end of a word.
var FallingDiphthongs = []string{"ay", "aw", "ew", "oy"}

// IllegalFallingDiphthongs are legal only when a plain vowel follows.
var IllegalFallingDiphthongs = []string{"ey", "iy", "ow", "uw"}

// IsFallingDiphthong reports whether s is one of the legal falling diphthongs.
func IsFallingDiphthong(s string) bool {
	for _, d := range FallingDiphthongs {
		if s == d {
			return true
		}
	}
	return false
}

func isIllegalFallingDiphthong(s string) bool {
	for _, d := range IllegalFallingDiphthongs {
		if s == d {
			return true
		}
	}
	return false
}

// In reports whether r belongs to the character class given as a string.
func In(class string, r rune) bool {
	return strings.ContainsRune(class, r)
}

// IsConsonant reports whether r is any consonant of the internal alphabet.
func IsConsonant(r rune) bool { return In(AllConsonants, r) }

// IsVowel reports whether r is a vowel of the internal alphabet, the filler
// vowel included.
func IsVowel(r rune) bool { return In(InternalVowels, r) }

// CountVowels counts the vowels in the internal representation of a word.
// This does not work on the exported spelling, where some vowel letters
// stand for semivowels.
func CountVowels(word string) int {
	n := 0
	for _, r := range strings.ToLower(word) {
		if IsVowel(r) {
			n++
		}
	}
	return n
}

// HasConsonant reports whether word contains at least one consonant.
func HasConsonant(word string) bool {
	for _, r := range word {
		if IsConsonant(r) {
			return true
		}
	}
	return false
}

// HasVowel reports whether word contains at least one internal vowel.
func HasVowel(word string) bool {
	for _, r := range word {
		if IsVowel(r) {
			return true
		}
	}
	return false
}
