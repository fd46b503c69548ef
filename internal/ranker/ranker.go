package ranker

import (
	"fmt"
	"sort"
	"strings"

	"kandivoc/internal/phonology"
)

// Logger receives the formatted candidate lines.
type Logger interface {
	Infof(format string, args ...any)
}

// contentClasses are the word classes whose candidates should have at least
// 3 sounds.
var contentClasses = map[string]bool{
	"adj": true, "name": true, "noun": true, "verb": true,
}

// MinLength determines the minimum length (in sounds) candidates should
// fulfill: 3 for content classes, otherwise 1. allowShort drops the
// requirement. For entries with multiple classes ("verb, noun") the first
// one decides.
func MinLength(class string, allowShort bool) int {
	if allowShort {
		return 1
	}
	first := class
	if parts := strings.SplitN(class, ",", 2); len(parts) > 0 {
		first = strings.TrimSpace(parts[0])
	}
	if contentClasses[first] {
		return 3
	}
	return 1
}

// Options configure a ranking run.
type Options struct {
	// MinLength is the minimal candidate length in sounds.
	MinLength int
	// AllowDuplicates admits candidates whose normalized form already
	// exists in the dictionary.
	AllowDuplicates bool
	// Constraints may be nil.
	Constraints *Constraints
	// WordExists reports whether the normalized form of a word is already
	// taken. May be nil.
	WordExists func(word string) bool
}

// Rank returns the ordered list of eligible candidates.
//
// Candidates are sorted first by the number of related candidates in
// natural languages, then by the total score, with the exported word as
// alphabetic tiebreaker. Each eligible candidate is printed with its
// selection number; ineligible ones are printed with the reason they are
// skipped: an already existing word, fewer sounds than MinLength, a
// distortion score of 0.6 or less, or a constraint failure. The candidate
// with the best total score is marked with a star either way.
func Rank(cands []*phonology.Candidate, opts Options, log Logger) []*phonology.Candidate {
	if len(cands) == 0 {
		return nil
	}

	bestScore := cands[0].TotalScore()
	for _, cand := range cands {
		if score := cand.TotalScore(); score > bestScore {
			bestScore = score
		}
	}

	ordered := append([]*phonology.Candidate(nil), cands...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ci, cj := ordered[i], ordered[j]
		if ri, rj := ci.CountRelatedNatlangCands(), cj.CountRelatedNatlangCands(); ri != rj {
			return ri > rj
		}
		if si, sj := ci.TotalScore(), cj.TotalScore(); si != sj {
			return si > sj
		}
		return ci.ExportWord() < cj.ExportWord()
	})

	var result []*phonology.Candidate
	num := 1
	for _, cand := range ordered {
		star := " "
		if cand.TotalScore() == bestScore {
			star = "*"
		}

		failure := ""
		if opts.Constraints != nil {
			failure = opts.Constraints.Fails(cand)
		}

		var prefix string
		switch {
		case !opts.AllowDuplicates && opts.WordExists != nil && opts.WordExists(cand.ExportWord()):
			prefix = fmt.Sprintf("[SKIPPED (word exists already)]%s  ", star)
		case len([]rune(cand.Word)) < opts.MinLength:
			// Length in sounds, not letters
			prefix = fmt.Sprintf("[SKIPPED (too short)]%s ", star)
		case cand.DScore() <= 0.6:
			prefix = fmt.Sprintf("[SKIPPED (too distorted)]%s ", star)
		case failure != "":
			prefix = fmt.Sprintf("[SKIPPED (%s)]%s ", failure, star)
		default:
			prefix = fmt.Sprintf("[%d]%s ", num, star)
			num++
			result = append(result, cand)
		}

		if log != nil {
			log.Infof("%s%s", prefix, cand.ShowInfo())
		}
	}
	return result
}
