package builder

import (
	"context"
	"sort"
	"sync"

	"kandivoc/internal/phonology"
	"kandivoc/internal/scoring"
)

// ScanConfig configures the parallel dictionary scan.
type ScanConfig struct {
	Workers int // Number of parallel workers comparing word pairs
}

// DefaultScanConfig returns sensible defaults.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Workers: 4,
	}
}

// Conflict pairs two dictionary words whose forms are so similar that they
// risk being confused.
type Conflict struct {
	Word     string
	Other    string
	Distance int
}

// ScanConflicts compares every pair of dictionary words and reports the
// related ones. Accepts a context for cancellation support.
func ScanConflicts(ctx context.Context, words []string, config ScanConfig) []Conflict {
	normalized := make([]string, len(words))
	for i, word := range words {
		normalized[i] = phonology.NormalizeWord(word)
	}

	if config.Workers <= 1 {
		scorer := scoring.NewScorer()
		var conflicts []Conflict
		for i := range normalized {
			select {
			case <-ctx.Done():
				return sortConflicts(conflicts)
			default:
			}
			conflicts = append(conflicts, scanRow(scorer, words, normalized, i)...)
		}
		return sortConflicts(conflicts)
	}

	// Each worker compares one word against all later ones, so a row is
	// the unit of work
	rows := make(chan int, len(normalized))
	var mu sync.Mutex
	var conflicts []Conflict
	var wg sync.WaitGroup

	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// A scorer per worker keeps the distance cache unshared
			scorer := scoring.NewScorer()
			for i := range rows {
				select {
				case <-ctx.Done():
					return
				default:
					found := scanRow(scorer, words, normalized, i)
					if len(found) > 0 {
						mu.Lock()
						conflicts = append(conflicts, found...)
						mu.Unlock()
					}
				}
			}
		}()
	}

	for i := range normalized {
		select {
		case <-ctx.Done():
			close(rows)
			wg.Wait()
			return sortConflicts(conflicts)
		case rows <- i:
		}
	}
	close(rows)
	wg.Wait()

	return sortConflicts(conflicts)
}

// scanRow compares word i against all words after it.
func scanRow(scorer *scoring.Scorer, words, normalized []string, i int) []Conflict {
	var found []Conflict
	for j := i + 1; j < len(normalized); j++ {
		if normalized[i] == normalized[j] {
			continue
		}
		if dist, related := scorer.Distance(normalized[i], normalized[j]); related {
			found = append(found, Conflict{Word: words[i], Other: words[j], Distance: dist})
		}
	}
	return found
}

func sortConflicts(conflicts []Conflict) []Conflict {
	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Word != conflicts[j].Word {
			return conflicts[i].Word < conflicts[j].Word
		}
		return conflicts[i].Other < conflicts[j].Other
	})
	return conflicts
}
