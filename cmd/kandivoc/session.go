package main

import (
	"fmt"
	"strings"
	"time"

	"kandivoc/internal/builder"
	"kandivoc/internal/config"
	"kandivoc/internal/lexicon"
	"kandivoc/internal/phonology"
	"kandivoc/internal/ranker"
	"kandivoc/internal/ui"
)

// session completes a candidate run: depending on the options and
// constraints, it either previews the entry that would result or writes the
// chosen entry to the dictionary.
type session struct {
	b        *builder.Builder
	dict     *lexicon.Dictionary
	log      *ui.RecordingLog
	auxlangs []string
	dictFile string
	// all built candidates by language; the --word candidate lives under
	// the empty code and is hidden from the presented list
	candidates map[string][]*phonology.Candidate

	selectNum       int
	selectRationale string
	word            string
	wordRationale   string
	commit          bool
	tags            []string
}

func (s *session) present(eligible []*phonology.Candidate, entry *lexicon.Entry,
	constraints *ranker.Constraints) error {

	switch {
	case s.selectNum != 0:
		return s.selectCandidate(eligible, entry)
	case s.word != "":
		return s.storeSpecifiedWord(entry)
	case constraints.Compound != "":
		return s.addAsCompound(entry, constraints)
	case constraints.MergeWith != "":
		return s.mergeWithExisting(entry, constraints)
	default:
		return s.autoChoose(eligible, entry, constraints)
	}
}

// selectCandidate adds the candidate picked with --select to the dictionary.
func (s *session) selectCandidate(eligible []*phonology.Candidate, entry *lexicon.Entry) error {
	if s.selectNum <= 0 || s.selectNum > len(eligible) {
		return fmt.Errorf("choose a candidate in the range from 1 to %d, not %d",
			len(eligible), s.selectNum)
	}
	if s.selectNum > 1 && s.selectRationale == "" {
		return fmt.Errorf("you must specify a rationale for your choice (--sr option)")
	}
	combined := s.b.CombineEntry(eligible[s.selectNum-1], entry)
	return s.addToDict(combined, s.selectNum)
}

// storeSpecifiedWord adds the word given with --word to the dictionary. The
// candidate was scored under the empty language code but hidden from the
// presented list, so it is taken from the candidates map rather than from
// the eligible list. The word is rejected if it isn't related to any
// candidate from the source languages.
func (s *session) storeSpecifiedWord(entry *lexicon.Entry) error {
	cands := s.candidates[""]
	if len(cands) == 0 {
		return fmt.Errorf("--word argument %q was not built as a candidate", s.word)
	}
	added := cands[0]
	combined := s.b.CombineEntry(added, entry)
	if combined.Get("infl") == "" {
		return fmt.Errorf("--word argument %q is not related to any word from our source languages",
			combined.Get("word"))
	}
	return s.addToDict(combined, -1)
}

// addAsCompound uses the compound requested by a Compound: constraint as the
// word for this concept.
func (s *session) addAsCompound(entry *lexicon.Entry, constraints *ranker.Constraints) error {
	compound := constraints.Compound
	for _, part := range strings.Split(strings.Trim(compound, "-"), "-") {
		if !s.dict.HasWord(part) {
			s.log.Warnf("Compound part %q doesn't exist in the dictionary.", part)
		}
	}
	entry.Add("word", compound, 0, true)

	if s.commit {
		s.log.Infof("Choosing compound %q.\n", compound)
		return s.addToDictPlain(entry)
	}
	s.log.Infof("++ The following entry will result if the specified compound is added:")
	s.preview(entry)
	return nil
}

// mergeWithExisting adds this concept as a further meaning of an existing
// word, following a Merge: or Premerge: constraint.
func (s *session) mergeWithExisting(entry *lexicon.Entry, constraints *ranker.Constraints) error {
	var existing *lexicon.Entry
	for _, e := range s.dict.Entries {
		if e.Get("word") == constraints.MergeWith {
			existing = e
			break
		}
	}
	if existing == nil {
		return fmt.Errorf("cannot merge: word %q doesn't exist in the dictionary",
			constraints.MergeWith)
	}

	builder.AddOrAppendField("en", entry.Get("en"), existing)
	if sense := entry.Get("sense"); sense != "" {
		builder.AddOrAppendField("sense", sense, existing)
	}

	rationale := constraints.MergeRationale
	if rationale == "" {
		rationale = "related meaning"
	}
	mergeType := "Merging"
	if constraints.Premerge {
		mergeType = "Premerging"
	}

	if s.commit {
		s.log.Infof("%s with %q as requested (%s).\n", mergeType, constraints.MergeWith, rationale)
		s.dict.Sort()
		return s.dict.Save(s.dictFile)
	}
	s.log.Infof("++ %s with %q as requested (%s) will result in the following entry:",
		mergeType, constraints.MergeWith, rationale)
	s.preview(existing)
	return nil
}

// autoChoose picks the candidate that would be (or is, with --commit)
// selected without an explicit choice: the candidate added per constraint if
// any, otherwise the best suitable auxlang or widely shared candidate,
// otherwise simply the first.
func (s *session) autoChoose(eligible []*phonology.Candidate, entry *lexicon.Entry,
	constraints *ranker.Constraints) error {

	if len(eligible) == 0 {
		s.log.Infof("++ Word has no eligible candidates!")
		return nil
	}

	var chosen *phonology.Candidate
	chosenPos := 0
	choiceInfo := ""

	if constraints.Added != "" {
		for pos, cand := range eligible {
			if cand.Lang == "" {
				// The added candidate has an empty language field
				chosen, chosenPos, choiceInfo = cand, pos, "added candidate"
				break
			}
		}
	} else if len(s.auxlangs) > 0 {
		// Prefer the best auxlang candidate with a decent total score, or a
		// candidate shared by 3 or more languages
		const minTotalScore = 0.5
		for pos, cand := range eligible {
			identical := len(cand.LangsWithIdenticalCandidate())
			if s.isAuxlang(cand.Lang) && cand.TotalScore() >= minTotalScore &&
				cand.HasSuitableRelatedNatlangCands() {
				chosen, chosenPos = cand, pos
				choiceInfo = "best eligible auxlang candidate"
				break
			} else if identical >= 3 && cand.TotalScore() >= minTotalScore {
				chosen, chosenPos = cand, pos
				choiceInfo = "first eligible candidate shared by 3+ languages"
				break
			}
		}
		if chosen == nil {
			s.log.Infof("No eligible auxlang candidate with a total score >= %v "+
				"and related candidates found - will use the best natlang candidate instead.",
				minTotalScore)
		}
	}

	if chosen == nil {
		chosen, chosenPos, choiceInfo = eligible[0], 0, "first eligible candidate"
	}

	combined := s.b.CombineEntry(chosen, entry)
	if s.commit {
		s.log.Infof("Choosing #%d: %s, the %s.\n", chosenPos+1, chosen.ExportWord(), choiceInfo)
		return s.addToDictPlain(combined)
	}
	s.log.Infof("++ The following entry will result if #%d, the %s, is selected:",
		chosenPos+1, choiceInfo)
	s.preview(combined)
	return nil
}

func (s *session) isAuxlang(lang string) bool {
	for _, aux := range s.auxlangs {
		if lang == aux {
			return true
		}
	}
	return false
}

// addToDict writes the combined entry to the dictionary and logs the
// selection. choice -1 signals that the --word option was used.
func (s *session) addToDict(combined *lexicon.Entry, choice int) error {
	if err := s.addToDictPlain(combined); err != nil {
		return err
	}
	now := time.Now().Format("2006-01-02 15:04:05")
	if choice == -1 {
		s.log.Infof("%s", formatMsg(fmt.Sprintf(
			"Specified word %q added to the dictionary on %s, rationale: %s",
			combined.Get("word"), now, strings.TrimSpace(s.wordRationale))))
	} else {
		s.log.Infof("Candidate #%d %q added to the dictionary on %s.",
			choice, combined.Get("word"), now)
		if s.selectRationale != "" {
			s.log.Infof("%s", formatMsg("Selection rationale: "+s.selectRationale))
		}
	}
	return nil
}

func (s *session) addToDictPlain(combined *lexicon.Entry) error {
	s.dict.Append(builder.ExportEntry(combined, config.IsAuxlang, s.tags))
	s.dict.Sort()
	return s.dict.Save(s.dictFile)
}

func (s *session) preview(entry *lexicon.Entry) {
	exported := builder.ExportEntry(entry, config.IsAuxlang, s.tags)
	s.log.Infof("%s", strings.TrimSpace(exported.String()))
}

// formatMsg adds final punctuation to a message, if missing.
func formatMsg(msg string) string {
	if msg == "" {
		return msg
	}
	if !strings.ContainsRune(".!?", rune(msg[len(msg)-1])) {
		msg += "."
	}
	return msg
}
