// Package ranker orders scored candidates for selection and applies the
// constraints an entry may define for its candidates.
package ranker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"kandivoc/internal/lexicon"
	"kandivoc/internal/phonology"
)

// Constraints stores and validates the conditions a candidate must fulfill
// to be eligible for selection. They come from the "Constraint" value of an
// entry; multiple constraints are separated by semicolons, and they are
// case-sensitive.
type Constraints struct {
	// MaxSyllables limits the syllable count; negative means no limit.
	MaxSyllables float64
	// AllowedLangs restricts the accepted source languages. Candidates
	// without a language code always pass.
	AllowedLangs          map[string]bool
	AllowedLangsRationale string
	// Skip maps candidate words to be skipped to the reason for skipping.
	Skip map[string]string
	// Added is a hybrid candidate to add (and usually choose).
	Added           string
	AddingRationale string
	// AllowShort relaxes the minimum length requirement of content words.
	AllowShort bool
	// Compound requests this concept to be added as a compound of existing
	// words.
	Compound          string
	CompoundRationale string
	// Chosen picks the one candidate to accept, skipping all others.
	Chosen          string
	ChosenRationale string
	// TargetClass overrides the class of the generated entry.
	TargetClass string
	// MergeWith merges this concept into an existing word. With Premerge
	// set, the new translations go before the existing ones.
	MergeWith      string
	MergeRationale string
	Premerge       bool
}

// cutPrefix returns the trimmed remainder of a "Directive:value" constraint,
// or false if the directive doesn't match.
func cutPrefix(constraint, directive string) (string, bool) {
	value, found := strings.CutPrefix(constraint, directive)
	if !found {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// ParseConstraints parses the contents of a "Constraint" value. An unknown
// directive is an error.
func ParseConstraints(constraintStr string) (*Constraints, error) {
	c := &Constraints{
		MaxSyllables: -1,
		Skip:         make(map[string]string),
	}

	for _, constraint := range lexicon.SplitOnSemicolons(constraintStr) {
		// Maximum syllable count, e.g. "Syllables:1" or "Syllables:2.5"
		if value, ok := cutPrefix(constraint, "Syllables:"); ok {
			max, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid syllable count %q: %w", value, err)
			}
			c.MaxSyllables = max
			continue
		}

		// Only languages from the listed set are accepted, with the
		// rationale in parentheses, e.g.
		// "Allow langs: globasa glosa tl vi (We prefer a particle)"
		if value, ok := cutPrefix(constraint, "Allow langs:"); ok {
			langs, rationale := lexicon.SplitTextAndExplanation(value)
			c.AllowedLangs = make(map[string]bool)
			for _, lang := range strings.Fields(langs) {
				c.AllowedLangs[lang] = true
			}
			c.AllowedLangsRationale = rationale
			continue
		}

		// Relax the minimum length requirement of content words
		if constraint == "Allow short" {
			c.AllowShort = true
			continue
		}

		// Choose the specified candidate, skipping all others, e.g.
		// "Choose:ka (closely related to the first candidate, but shorter)"
		if value, ok := cutPrefix(constraint, "Choose:"); ok {
			c.Chosen, c.ChosenRationale = lexicon.SplitTextAndExplanation(value)
			continue
		}

		// Skip a candidate, e.g. "Skip:un (only used before vowels)".
		// Can be given repeatedly
		if value, ok := cutPrefix(constraint, "Skip:"); ok {
			word, rationale := lexicon.SplitTextAndExplanation(value)
			c.Skip[word] = rationale
			continue
		}

		// The remaining directives aren't actual constraints, but influence
		// the selection and the target entry

		// Add a hybrid candidate that should then also be chosen
		if value, ok := cutPrefix(constraint, "Add:"); ok {
			c.Added, c.AddingRationale = lexicon.SplitTextAndExplanation(value)
			continue
		}

		// Add this as a compound whose parts must already exist, e.g.
		// "Compound:li-su"
		if value, ok := cutPrefix(constraint, "Compound:"); ok {
			c.Compound, c.CompoundRationale = lexicon.SplitTextAndExplanation(value)
			continue
		}

		// Change the class (POS) of the generated entry
		if value, ok := cutPrefix(constraint, "Set class:"); ok {
			c.TargetClass = value
			continue
		}

		// Merge this concept with an existing word, e.g. "Merge:ku"
		if value, ok := cutPrefix(constraint, "Merge:"); ok {
			c.MergeWith, c.MergeRationale = lexicon.SplitTextAndExplanation(value)
			continue
		}

		// Premerge: like Merge, but put the new translations first
		if value, ok := cutPrefix(constraint, "Premerge:"); ok {
			c.MergeWith, c.MergeRationale = lexicon.SplitTextAndExplanation(value)
			c.Premerge = true
			continue
		}

		return nil, fmt.Errorf("unknown constraint: %s", constraint)
	}
	return c, nil
}

// Fails checks whether a candidate fails any of the defined constraints.
// If so, a descriptive reason is returned, otherwise an empty string.
func (c *Constraints) Fails(cand *phonology.Candidate) string {
	if c.MaxSyllables >= 0 && cand.Syllables() > c.MaxSyllables {
		return "too long"
	}

	// Besides the explicitly allowed languages we also accept candidates
	// without a language code (added via the Add: directive)
	if len(c.AllowedLangs) > 0 && cand.Lang != "" && !c.AllowedLangs[cand.Lang] {
		if c.AllowedLangsRationale != "" {
			return c.AllowedLangsRationale
		}
		return "language not allowed"
	}

	word := cand.ExportWord()
	if reason, skipped := c.Skip[word]; skipped {
		if reason != "" {
			return reason
		}
		return "skipped by constraint"
	}

	if c.Chosen != "" && word != c.Chosen {
		return "not the chosen candidate"
	}
	return ""
}

// String returns a readable summary of the active constraints.
func (c *Constraints) String() string {
	var parts []string
	if c.MaxSyllables >= 0 {
		parts = append(parts, fmt.Sprintf("up to %v syllables", c.MaxSyllables))
	}
	if c.AllowShort {
		parts = append(parts, "short candidates are allowed")
	}
	if len(c.AllowedLangs) > 0 {
		langs := make([]string, 0, len(c.AllowedLangs))
		for lang := range c.AllowedLangs {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		parts = append(parts, fmt.Sprintf("allowed languages: %s (rationale: %s)",
			strings.Join(langs, ", "), c.AllowedLangsRationale))
	}
	if len(c.Skip) > 0 {
		words := make([]string, 0, len(c.Skip))
		for word := range c.Skip {
			words = append(words, word)
		}
		sort.Strings(words)
		parts = append(parts, "skipped candidates: "+strings.Join(words, ", "))
	}
	if c.Added != "" {
		parts = append(parts, fmt.Sprintf("added candidate: %s (rationale: %s)",
			c.Added, c.AddingRationale))
	}
	if c.Chosen != "" {
		parts = append(parts, fmt.Sprintf("chosen candidate: %s (rationale: %s)",
			c.Chosen, c.ChosenRationale))
	}
	if c.Compound != "" {
		rationale := ""
		if c.CompoundRationale != "" {
			rationale = fmt.Sprintf(" (rationale: %s)", c.CompoundRationale)
		}
		parts = append(parts, "model as compound: "+c.Compound+rationale)
	}
	if c.TargetClass != "" {
		parts = append(parts, "target class: "+c.TargetClass)
	}
	if c.MergeWith != "" {
		mergeType := "merge"
		if c.Premerge {
			mergeType = "premerge"
		}
		parts = append(parts, mergeType+" with: "+c.MergeWith)
	}

	if len(parts) > 0 {
		return "Constraints: " + strings.Join(parts, "; ")
	}
	return "No Constraints"
}
