package mapper

import (
	"strings"

	"kandivoc/internal/phonology"
)

// Logger receives warnings about conversion problems, such as characters
// missing from a table.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Mapper converts source-language words into candidate words, using the
// loaded conversion tables plus the pre- and post-processors.
type Mapper struct {
	tables   map[string]*Table
	auxlangs []string
	log      Logger

	// Results are cached per run, keyed "langcode:word". The class is
	// deliberately not part of the key: when words of different classes
	// merge (e.g. "verb" into "verb, noun"), reusing the first conversion
	// works best.
	cache map[string]*phonology.Candidate
}

// New creates a Mapper over the given conversion tables. auxlangs lists the
// language codes treated as auxiliary languages; they are attached to every
// produced candidate.
func New(tables map[string]*Table, auxlangs []string, log Logger) *Mapper {
	return &Mapper{
		tables:   tables,
		auxlangs: auxlangs,
		log:      log,
		cache:    make(map[string]*phonology.Candidate),
	}
}

// Auxlangs returns the language codes treated as auxiliary languages.
func (m *Mapper) Auxlangs() []string {
	return m.auxlangs
}

// HasTable reports whether a conversion table for the given name is loaded.
func (m *Mapper) HasTable(name string) bool {
	_, ok := m.tables[name]
	return ok
}

// ClearCache drops the per-run candidate cache.
func (m *Mapper) ClearCache() {
	m.cache = make(map[string]*phonology.Candidate)
}

// MkCandidate converts a word or its phonetic representation into a raw
// candidate.
//
// tableName names the conversion table to use, e.g. "en" or "cmn". A word
// may be followed by a comment in parentheses, which is stripped. If word
// is a romanization or IPA, trueOriginal should be the actual original
// word.
//
// Returns nil if the word is empty, completely enclosed in parentheses, or
// contains no Latin letters.
func (m *Mapper) MkCandidate(word, langcode, tableName, class, trueOriginal string) *phonology.Candidate {
	cacheKey := langcode + ":" + word
	if cand, ok := m.cache[cacheKey]; ok {
		return cand
	}

	if strings.HasSuffix(word, ")") {
		if start := strings.Index(word, "("); start >= 0 {
			word = strings.TrimSpace(word[:start])
		}
	}
	if word == "" || !phonology.HasLatinLetter(word) {
		m.cache[cacheKey] = nil
		return nil
	}

	original := word

	table, ok := m.tables[tableName]
	if !ok {
		// Languages considered on request may lack a conversion table;
		// their words are just lowercased
		cand := phonology.New(strings.ToLower(original), 0, langcode)
		cand.Original = original
		cand.TrueOriginal = trueOriginal
		cand.Auxlangs = m.auxlangs
		m.cache[cacheKey] = cand
		return cand
	}

	word = Preprocess(word, tableName, class)
	outWord, penalty := table.Convert(word, m.warnf)
	outWord = Postprocess(outWord, word, tableName, class)

	cand := phonology.New(outWord, penalty, langcode)
	cand.Original = original
	cand.TrueOriginal = trueOriginal
	cand.Auxlangs = m.auxlangs
	m.cache[cacheKey] = cand
	return cand
}

func (m *Mapper) warnf(format string, args ...any) {
	if m.log != nil {
		m.log.Warnf(format, args...)
	}
}
