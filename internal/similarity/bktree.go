// Package similarity provides edit-distance lookup over dictionary words.
// It backs the fuzzy word search and the confusability checks that keep
// near-identical words out of the dictionary.
package similarity

import "sort"

// BKTree indexes words by Levenshtein distance. Lookups only descend into
// subtrees whose distance band can still contain a match, so a search
// touches a small fraction of the tree.
type BKTree struct {
	root *bkNode
	size int
}

type bkNode struct {
	word     string
	children map[int]*bkNode
}

func NewBKTree() *BKTree {
	return &BKTree{}
}

// Insert adds a word to the tree. Empty words and duplicates are ignored.
func (t *BKTree) Insert(word string) {
	if word == "" {
		return
	}
	if t.root == nil {
		t.root = &bkNode{word: word, children: make(map[int]*bkNode)}
		t.size++
		return
	}

	current := t.root
	for {
		dist := LevenshteinDistance(word, current.word)
		if dist == 0 {
			return
		}
		child, ok := current.children[dist]
		if !ok {
			current.children[dist] = &bkNode{word: word, children: make(map[int]*bkNode)}
			t.size++
			return
		}
		current = child
	}
}

// InsertAll adds all the given words.
func (t *BKTree) InsertAll(words []string) {
	for _, word := range words {
		t.Insert(word)
	}
}

// SearchResult is a matched word and its edit distance from the query.
type SearchResult struct {
	Word     string `json:"word"`
	Distance int    `json:"distance"`
}

// Search returns all words within maxDistance of the query, in no
// particular order.
func (t *BKTree) Search(query string, maxDistance int) []SearchResult {
	if t.root == nil || query == "" {
		return nil
	}
	var results []SearchResult
	t.root.search(query, maxDistance, &results)
	return results
}

// Closest returns up to limit words ordered by distance from the query,
// nearest first and alphabetically within the same distance. The search
// radius is widened until enough matches are found or the whole tree has
// been covered.
func (t *BKTree) Closest(query string, limit int) []SearchResult {
	if t.root == nil || query == "" || limit <= 0 {
		return nil
	}
	var results []SearchResult
	for radius := 1; ; radius *= 2 {
		results = t.Search(query, radius)
		if len(results) >= limit || len(results) == t.size {
			break
		}
	}
	sortResults(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func sortResults(results []SearchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Word < results[j].Word
	})
}

func (n *bkNode) search(query string, maxDistance int, results *[]SearchResult) {
	dist := LevenshteinDistance(query, n.word)
	if dist <= maxDistance {
		*results = append(*results, SearchResult{Word: n.word, Distance: dist})
	}
	// By the triangle inequality, only children in this band can match.
	for childDist, child := range n.children {
		if childDist >= dist-maxDistance && childDist <= dist+maxDistance {
			child.search(query, maxDistance, results)
		}
	}
}

// Size returns the number of distinct words in the tree.
func (t *BKTree) Size() int {
	return t.size
}

// Contains reports whether the exact word is in the tree.
func (t *BKTree) Contains(word string) bool {
	for _, r := range t.Search(word, 0) {
		if r.Distance == 0 {
			return true
		}
	}
	return false
}

// LevenshteinDistance returns the edit distance between two strings,
// counted in runes. It keeps just two rows of the distance matrix.
func LevenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) > len(r2) {
		r1, r2 = r2, r1
	}
	if len(r1) == 0 {
		return len(r2)
	}

	prev := make([]int, len(r1)+1)
	curr := make([]int, len(r1)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(r2); j++ {
		curr[0] = j
		for i := 1; i <= len(r1); i++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(r1)]
}
