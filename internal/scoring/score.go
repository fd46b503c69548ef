package scoring

import "kandivoc/internal/phonology"

// ComputePenalties calculates the raw similarity penalties for the
// candidates of one language: for each candidate, the sum over all other
// languages of the lowest distance to that language's candidates. The lower
// the penalty, the more similar a candidate is to the candidate words of the
// other languages.
//
// The penalty is stored in the candidate itself, together with any related
// candidates found along the way. Pseudo-candidates under the empty language
// code never count as related.
func (s *Scorer) ComputePenalties(lang string, langs []string, candidates map[string][]*phonology.Candidate) {
	for _, cand := range candidates[lang] {
		pen := 0
		for _, otherLang := range langs {
			if otherLang == lang || otherLang == "" || len(candidates[otherLang]) == 0 {
				continue
			}
			minDist := 1000
			for _, otherCand := range candidates[otherLang] {
				dist, related := s.Distance(cand.Word, otherCand.Word)
				if dist < minDist {
					minDist = dist
				}
				if related {
					cand.AddRelated(otherLang, otherCand)
				}
			}
			pen += minDist
		}
		cand.RawPsim = pen
	}
}

// NormalizeScores stores the normalized similarity score in each candidate:
// the raw penalty inverted and scaled so that the lowest (best) raw penalty
// maps to 1.0 and the highest (worst) to 0.0. If all candidates have the
// same raw penalty, they all score 1.
//
// The candidates are modified in place; a unified list in language order is
// returned for convenience, along with the raw penalty range. When
// hideAdded is set, pseudo-candidates under the empty language code are
// omitted from the list and from the normalization.
func NormalizeScores(langs []string, candidates map[string][]*phonology.Candidate,
	hideAdded bool) (result []*phonology.Candidate, minPsim, maxPsim int) {

	for _, lang := range langs {
		cands := candidates[lang]
		if len(cands) > 0 && (cands[0].Lang != "" || !hideAdded) {
			result = append(result, cands...)
		}
	}

	if len(result) > 0 {
		minPsim, maxPsim = result[0].RawPsim, result[0].RawPsim
		for _, cand := range result {
			if cand.RawPsim < minPsim {
				minPsim = cand.RawPsim
			}
			if cand.RawPsim > maxPsim {
				maxPsim = cand.RawPsim
			}
		}
	}

	diff := maxPsim - minPsim
	for _, cand := range result {
		if diff != 0 {
			cand.SimScore = float64(minPsim-cand.RawPsim)/float64(diff) + 1
		} else {
			cand.SimScore = 1
		}
	}
	return result, minPsim, maxPsim
}
