package lexicon

import (
	"sort"
	"strings"

	"kandivoc/internal/phonology"
)

// Dictionary holds the already existing entries and the word forms derived
// from them, which make identical candidates ineligible in later selections.
type Dictionary struct {
	Entries []*Entry

	// lower-cased words mapped to the classes they are used as
	existingWords map[string]map[string]bool
	// normalized word forms, the dedup key for new selections
	existingNorm map[string]bool
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		existingWords: make(map[string]map[string]bool),
		existingNorm:  make(map[string]bool),
	}
}

// LoadDictionary reads the dictionary entries from a word list file and
// remembers every word found in them.
func LoadDictionary(filename string, warn func(msg string)) (*Dictionary, error) {
	entries, err := ReadEntries(filename, warn)
	if err != nil {
		return nil, err
	}
	dict := NewDictionary()
	for _, entry := range entries {
		dict.Append(entry)
	}
	return dict, nil
}

// Append adds an entry, remembering its word.
func (d *Dictionary) Append(entry *Entry) {
	d.Entries = append(d.Entries, entry)
	if word := entry.Get("word"); word != "" {
		d.Remember(word, entry)
	}
}

// Remember adds a word to the sets of existing words, making it ineligible
// in further selections.
func (d *Dictionary) Remember(word string, entry *Entry) {
	lower := strings.ToLower(word)
	classes := d.existingWords[lower]
	if classes == nil {
		classes = make(map[string]bool)
		d.existingWords[lower] = classes
	}
	if entry != nil {
		for _, class := range SplitOnCommas(entry.Get("class")) {
			classes[class] = true
		}
	}
	d.existingNorm[phonology.NormalizeWord(word)] = true
}

// HasNormalized reports whether the normalized form of a word already exists
// in the dictionary.
func (d *Dictionary) HasNormalized(word string) bool {
	return d.existingNorm[phonology.NormalizeWord(word)]
}

// HasWord reports whether the exact word exists (case-insensitively).
func (d *Dictionary) HasWord(word string) bool {
	_, ok := d.existingWords[strings.ToLower(word)]
	return ok
}

// ClassesOf returns the classes a word is used as, or nil if unknown.
func (d *Dictionary) ClassesOf(word string) map[string]bool {
	return d.existingWords[strings.ToLower(word)]
}

// Words returns all known words in no particular order.
func (d *Dictionary) Words() []string {
	words := make([]string, 0, len(d.existingWords))
	for word := range d.existingWords {
		words = append(words, word)
	}
	return words
}

// Sort orders the entries by word, then class, then English translation.
// If two words differ only by case, the capitalized one comes first
// ("Jungvo" precedes "jungvo").
func (d *Dictionary) Sort() {
	sort.SliceStable(d.Entries, func(i, j int) bool {
		ei, ej := d.Entries[i], d.Entries[j]
		if wi, wj := strings.ToLower(ei.Get("word")), strings.ToLower(ej.Get("word")); wi != wj {
			return wi < wj
		}
		if wi, wj := ei.Get("word"), ej.Get("word"); wi != wj {
			return wi < wj
		}
		if ci, cj := strings.ToLower(ei.Get("class")), strings.ToLower(ej.Get("class")); ci != cj {
			return ci < cj
		}
		return strings.ToLower(ei.Get("en")) < strings.ToLower(ej.Get("en"))
	})
}

// Save writes the dictionary entries to a file, renaming any previous
// version to a .bak backup first.
func (d *Dictionary) Save(filename string) error {
	if err := RenameToBackup(filename); err != nil {
		return err
	}
	return WriteEntries(d.Entries, filename)
}
