// kandivoc-fuzzy - fuzzy search over the words in the dictionary.
//
// By default the query is matched by edit distance using a BK-tree, which
// is the right tool for catching near-identical words before selecting a
// new candidate. With --subsequence the query instead matches words that
// contain its letters in order ("ksa" finds "kasa"), useful when only a
// fragment of a word is remembered.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/pflag"

	"kandivoc/internal/config"
	"kandivoc/internal/lexicon"
	"kandivoc/internal/similarity"
)

func main() {
	dictFile := pflag.StringP("dict", "d", "", "Dictionary file (default: the configured one)")
	maxDistance := pflag.IntP("distance", "n", 2, "Maximum edit distance")
	limit := pflag.IntP("limit", "l", 10, "Maximum results to show")
	subsequence := pflag.BoolP("subsequence", "S", false, "Match words containing the query letters in order")
	jsonOutput := pflag.BoolP("json", "j", false, "Output as JSON")

	pflag.Parse()

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: kandivoc-fuzzy [options] <query>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		pflag.PrintDefaults()
		os.Exit(1)
	}
	query := strings.ToLower(pflag.Arg(0))

	if *dictFile == "" {
		*dictFile = config.Load().Paths.DictFile
	}
	words, err := loadWords(*dictFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(words) == 0 {
		fmt.Fprintf(os.Stderr, "No words found in %s\n", *dictFile)
		os.Exit(1)
	}

	var results []similarity.SearchResult
	if *subsequence {
		results = subsequenceMatches(query, words, *limit)
	} else {
		results = distanceMatches(query, words, *maxDistance, *limit)
	}

	if *jsonOutput {
		printJSON(query, *maxDistance, results)
		return
	}
	printResults(query, *maxDistance, *subsequence, results)
}

// loadWords returns the sorted distinct words of the dictionary.
func loadWords(filename string) ([]string, error) {
	dict, err := lexicon.LoadDictionary(filename, nil)
	if err != nil {
		return nil, err
	}
	words := dict.Words()
	sort.Strings(words)
	return words, nil
}

func distanceMatches(query string, words []string, maxDistance, limit int) []similarity.SearchResult {
	tree := similarity.NewBKTree()
	tree.InsertAll(words)

	results := tree.Search(query, maxDistance)
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Word < results[j].Word
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// subsequenceMatches ranks words containing the query letters in order,
// ignoring case and diacritics. The reported distance is the rank assigned
// by the matcher, lower is closer.
func subsequenceMatches(query string, words []string, limit int) []similarity.SearchResult {
	ranks := fuzzy.RankFindNormalizedFold(query, words)
	sort.Sort(ranks)

	results := make([]similarity.SearchResult, 0, len(ranks))
	for _, rank := range ranks {
		results = append(results, similarity.SearchResult{
			Word:     rank.Target,
			Distance: rank.Distance,
		})
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func printJSON(query string, maxDistance int, results []similarity.SearchResult) {
	output := struct {
		Query   string                    `json:"query"`
		MaxDist int                       `json:"max_distance"`
		Count   int                       `json:"count"`
		Results []similarity.SearchResult `json:"results"`
	}{
		Query:   query,
		MaxDist: maxDistance,
		Count:   len(results),
		Results: results,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

func printResults(query string, maxDistance int, subsequence bool, results []similarity.SearchResult) {
	if len(results) == 0 {
		if subsequence {
			fmt.Printf("No words contain %q as a subsequence\n", query)
		} else {
			fmt.Printf("No matches found for %q within distance %d\n", query, maxDistance)
		}
		return
	}

	if subsequence {
		fmt.Printf("Words containing %q:\n\n", query)
	} else {
		fmt.Printf("Fuzzy matches for %q (max distance: %d):\n\n", query, maxDistance)
	}
	for _, r := range results {
		fmt.Printf("  %s (distance: %d)\n", r.Word, r.Distance)
	}
	fmt.Printf("\n%d result(s) found\n", len(results))
}
