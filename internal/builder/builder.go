// Package builder orchestrates a candidate run: building the per-language
// candidate words from a concept entry, scoring them against each other, and
// handing the unified list to the ranker.
package builder

import (
	"fmt"
	"strings"

	"kandivoc/internal/lexicon"
	"kandivoc/internal/mapper"
	"kandivoc/internal/phonology"
	"kandivoc/internal/ranker"
	"kandivoc/internal/scoring"
)

// Log receives progress and warning messages.
type Log interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Options configure a candidate run.
type Options struct {
	// SchwaStrip removes filler vowels from the edges of candidates.
	SchwaStrip bool
	// AllowDuplicates admits candidates identical to existing words.
	AllowDuplicates bool
	// AllowShortRationale, if non-empty, relaxes the minimum length
	// requirement of content words.
	AllowShortRationale string
	// Consider lists extra languages to build candidates from.
	Consider []string
	// Word is an operator-specified candidate added under an empty
	// language code.
	Word string
	// LatinMains and LatinFallbacks hold the source languages written in
	// the Latin script, used for the spelling-based influence check.
	LatinMains     map[string]bool
	LatinFallbacks map[string]bool
}

// Builder turns concept entries into scored candidate words.
type Builder struct {
	mapper *mapper.Mapper
	scorer *scoring.Scorer
	dict   *lexicon.Dictionary
	log    Log
	opts   Options

	// main source languages, in presentation order
	sourceLangs []string
	// fallback languages tried when a main language has no translation
	fallbacks map[string][]string
	// fallbacks that produced candidates during the last build
	activeFallbacks map[string]bool
}

// New creates a Builder. sourceLangs lists the main source languages in
// order; fallbacks maps main languages to their fallback languages.
func New(m *mapper.Mapper, dict *lexicon.Dictionary, sourceLangs []string,
	fallbacks map[string][]string, opts Options, log Log) *Builder {
	return &Builder{
		mapper:          m,
		scorer:          scoring.NewScorer(),
		dict:            dict,
		log:             log,
		opts:            opts,
		sourceLangs:     sourceLangs,
		fallbacks:       fallbacks,
		activeFallbacks: make(map[string]bool),
	}
}

// ActiveFallbacks reports which fallback languages produced candidates
// during the last BuildCandidates call.
func (b *Builder) ActiveFallbacks() map[string]bool {
	return b.activeFallbacks
}

// CandidatesForLang builds the candidate words for one language from the
// entry's translation field.
//
// The field is split on semicolons. If a translation carries text in square
// brackets (e.g. "water [ˈwɔtəɹ]"), just that part is converted and the text
// before the brackets is kept as the true original; for English, candidates
// without brackets are dropped entirely, since those are usually multi-word
// expressions lacking IPA. Comma-separated romanizations use only the first
// variant. Candidates failing validation are reported and dropped, as are
// duplicates within the language.
func (b *Builder) CandidatesForLang(langcode, tableName string, entry *lexicon.Entry) []*phonology.Candidate {
	rawCand := entry.Get(langcode)
	if rawCand == "" {
		return nil
	}
	class := entry.Get("class")

	var cands []*phonology.Candidate
	seen := make(map[string]bool)

	for _, candWord := range lexicon.SplitOnSemicolons(rawCand) {
		rawWord, found := lexicon.ExtractTextInBrackets(candWord)
		if langcode == "en" && !found {
			continue
		}

		trueOriginal := ""
		if found {
			// Sometimes the romanization is comma-separated, e.g.
			// "wui⁵, wui³" -- use just the first variant
			if parts := lexicon.SplitOnCommas(rawWord); len(parts) > 0 {
				rawWord = parts[0]
			}
			trueOriginal = strings.TrimSpace(candWord[:strings.Index(candWord, "[")])
		}

		cand := b.mapper.MkCandidate(rawWord, langcode, tableName, class, trueOriginal)
		if cand == nil {
			continue
		}

		cand.Repair()
		if err := cand.Validate(); err != nil {
			b.log.Warnf("%s candidate %q failed validation: %v", langcode, cand.Word, err)
			continue
		}

		if b.opts.SchwaStrip {
			schwaStrip(cand)
		}

		if !seen[cand.Word] {
			seen[cand.Word] = true
			cands = append(cands, cand)
		}
	}
	return cands
}

// schwaStrip removes a filler vowel from the start and end of a candidate.
func schwaStrip(cand *phonology.Candidate) {
	cand.Word = strings.TrimPrefix(cand.Word, "ə")
	cand.Word = strings.TrimSuffix(cand.Word, "ə")
}

// BuildCandidates builds the candidate words for every source language.
//
// When a main language yields no candidates, its fallback languages are
// tried in order until one does; a fallback with its own conversion table
// uses it, the others use the main language's table. The returned language
// list preserves the source-language order and includes any extra languages
// from the Consider option, plus the empty pseudo-language when a word was
// added explicitly.
func (b *Builder) BuildCandidates(entry *lexicon.Entry, constraints *ranker.Constraints) ([]string, map[string][]*phonology.Candidate, error) {
	b.activeFallbacks = make(map[string]bool)
	candidates := make(map[string][]*phonology.Candidate)
	var langs []string

	langCodes := append([]string(nil), b.sourceLangs...)
	if len(b.opts.Consider) > 0 {
		b.log.Infof("Also considering candidates from %s as requested.",
			strings.Join(b.opts.Consider, ", "))
		langCodes = append(langCodes, b.opts.Consider...)
	}

	for _, langcode := range langCodes {
		cands := b.CandidatesForLang(langcode, langcode, entry)
		if len(cands) > 0 {
			candidates[langcode] = cands
			langs = append(langs, langcode)
			continue
		}
		for _, fallback := range b.fallbacks[langcode] {
			// Some fallback languages have their own conversion table,
			// others use the main language's
			tableName := langcode
			if b.mapper.HasTable(fallback) {
				tableName = fallback
			}
			cands = b.CandidatesForLang(fallback, tableName, entry)
			if len(cands) > 0 {
				b.log.Infof("Using fallback candidate(s) from %s", fallback)
				candidates[fallback] = cands
				langs = append(langs, fallback)
				b.activeFallbacks[fallback] = true
				break
			}
		}
	}

	var err error
	if constraints != nil && constraints.Added != "" {
		langs, err = b.addSpecifiedWord(langs, candidates, constraints.Added, "Add: constraint")
	} else if b.opts.Word != "" {
		langs, err = b.addSpecifiedWord(langs, candidates, strings.TrimSpace(b.opts.Word),
			"--word argument")
	}
	if err != nil {
		return nil, nil, err
	}
	return langs, candidates, nil
}

// addSpecifiedWord adds the candidate specified by the --word option or an
// Add: constraint, under the empty language code. The word must be
// phonetically valid and not yet exist in the dictionary.
func (b *Builder) addSpecifiedWord(langs []string, candidates map[string][]*phonology.Candidate,
	word, source string) ([]string, error) {

	cand := phonology.New(word, 0, "")
	cand.Original = word
	cand.Auxlangs = b.mapper.Auxlangs()
	if err := cand.Validate(); err != nil {
		return nil, fmt.Errorf("%s is phonetically invalid: %w", source, err)
	}
	if b.dict != nil && b.dict.HasNormalized(cand.ExportWord()) && !b.opts.AllowDuplicates {
		return nil, fmt.Errorf("%s %q exists already in the dictionary", source, cand.ExportWord())
	}
	candidates[""] = []*phonology.Candidate{cand}
	return append(langs, ""), nil
}

// Score computes the similarity penalties for all candidates and returns
// the unified, normalized list. Candidates added via the --word option are
// hidden from the result.
func (b *Builder) Score(langs []string, candidates map[string][]*phonology.Candidate) []*phonology.Candidate {
	for _, lang := range langs {
		b.scorer.ComputePenalties(lang, langs, candidates)
	}
	hideAdded := b.opts.Word != ""
	result, minPsim, maxPsim := scoring.NormalizeScores(langs, candidates, hideAdded)
	b.log.Infof("Raw PS range: %d..%d.", minPsim, maxPsim)
	return result
}

// MinLength determines the minimal candidate length for an entry, honoring
// the AllowShort option and constraint.
func (b *Builder) MinLength(entry *lexicon.Entry, constraints *ranker.Constraints) int {
	allowShort := constraints != nil && constraints.AllowShort
	if b.opts.AllowShortRationale != "" {
		// The constraint is logged elsewhere if set, so only the option
		// needs mentioning here
		b.log.Infof("Allowing candidates that would otherwise be considered too short, "+
			"rationale: %s", b.opts.AllowShortRationale)
		allowShort = true
	}
	firstClass := ""
	if classes := lexicon.SplitOnCommas(entry.Get("class")); len(classes) > 0 {
		firstClass = classes[0]
	}
	return ranker.MinLength(firstClass, allowShort)
}

// Run builds, scores, and ranks the candidates of one entry, returning the
// eligible candidates in selection order.
func (b *Builder) Run(entry *lexicon.Entry, constraints *ranker.Constraints) ([]*phonology.Candidate, error) {
	if constraints != nil && constraints.TargetClass != "" {
		// The constraints may overwrite the target class
		entry.Add("class", constraints.TargetClass, entry.Lineno("class"), true)
	}

	langs, candidates, err := b.BuildCandidates(entry, constraints)
	if err != nil {
		return nil, err
	}
	scored := b.Score(langs, candidates)

	opts := ranker.Options{
		MinLength:       b.MinLength(entry, constraints),
		AllowDuplicates: b.opts.AllowDuplicates,
		Constraints:     constraints,
	}
	if b.dict != nil {
		opts.WordExists = b.dict.HasNormalized
	}
	if b.opts.AllowDuplicates {
		b.log.Infof("Allowing candidates that are duplicates of already existing words as requested.")
	}
	return ranker.Rank(scored, opts, b.log), nil
}
