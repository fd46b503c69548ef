// Package mapper converts source-language words and phonetic transcriptions
// into candidate words in our phonology. The conversion is table-driven:
// per-language CSV files list input patterns (orthography, romanization, or
// IPA), their output in the internal alphabet, and whether the conversion
// distorts the sound enough to deserve a penalty. Language-specific quirks
// that a plain table cannot express live in the pre- and post-processors.
package mapper

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Conversion is the result of a phonetic conversion rule.
type Conversion struct {
	Output  string
	Penalty bool // whether applying the rule costs a penalty point
}

// Table holds the phonetic conversion rules of one language.
type Table struct {
	rules     map[string]Conversion
	maxKeyLen int // length in runes of the longest input pattern
}

// NewTable builds a table from a rule map, adding default mappings for
// whitespace and standard punctuation unless the map lists them already
// ("." in IPA should be deleted rather than become a space, for example).
func NewTable(rules map[string]Conversion) *Table {
	for _, key := range []string{" ", "-", "."} {
		if _, ok := rules[key]; !ok {
			rules[key] = Conversion{Output: " "}
		}
	}
	maxLen := 0
	for key := range rules {
		if n := len([]rune(key)); n > maxLen {
			maxLen = n
		}
	}
	return &Table{rules: rules, maxKeyLen: maxLen}
}

// MaxKeyLen returns the rune length of the longest input pattern.
func (t *Table) MaxKeyLen() int { return t.maxKeyLen }

// Lookup returns the conversion for the given input pattern.
func (t *Table) Lookup(pattern string) (Conversion, bool) {
	conv, ok := t.rules[pattern]
	return conv, ok
}

// Convert transliterates word using longest-prefix matching: at each
// position the longest matching input pattern wins. Characters no pattern
// covers are copied unchanged and reported to warn, since they usually
// point to a gap in the table.
func (t *Table) Convert(word string, warn func(format string, args ...any)) (string, int) {
	var out strings.Builder
	penalty := 0
	rest := []rune(word)

	for len(rest) > 0 {
		matched := false
		max := t.maxKeyLen
		if len(rest) < max {
			max = len(rest)
		}
		for n := max; n > 0; n-- {
			if conv, ok := t.rules[string(rest[:n])]; ok {
				out.WriteString(conv.Output)
				if conv.Penalty {
					penalty++
				}
				rest = rest[n:]
				matched = true
				break
			}
		}
		if !matched {
			out.WriteRune(rest[0])
			if warn != nil {
				warn("Unexpected character %q encountered while converting %q.", string(rest[0]), word)
			}
			rest = rest[1:]
		}
	}
	return out.String(), penalty
}

// ReadTable reads a conversion table from a CSV file with three columns:
// input pattern, output, and a penalty flag ("1" or "0"). The first line is
// treated as a header and skipped.
func ReadTable(filename string, warn func(format string, args ...any)) (*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rules := make(map[string]Conversion)
	first := true

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filename, err)
		}
		if first {
			first = false
			continue
		}
		if len(row) != 3 && warn != nil {
			warn("Error parsing %s: Row %q has %d fields instead of 3.",
				filename, strings.Join(row, ","), len(row))
		}
		pattern := elem(row, 0)
		output := elem(row, 1)
		rawPenalty := elemDefault(row, 2, "1")
		penalty := rawPenalty != "0"
		if penalty && rawPenalty != "1" && warn != nil {
			warn("Unexpected penalty in %s: %q instead of \"0\" or \"1\".", filename, rawPenalty)
		}
		if _, dup := rules[pattern]; dup && warn != nil {
			warn("Error parsing %s: Key %s occurs more than once.", filename, pattern)
		}
		rules[pattern] = Conversion{Output: output, Penalty: penalty}
	}
	return NewTable(rules), nil
}

// DiscoverTables loads all phon_<lang>.csv files in dir, keyed by language
// code.
func DiscoverTables(dir string, warn func(format string, args ...any)) (map[string]*Table, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "phon_*.csv"))
	if err != nil {
		return nil, err
	}
	tables := make(map[string]*Table)
	for _, file := range matches {
		base := filepath.Base(file)
		lang := strings.TrimSuffix(strings.TrimPrefix(base, "phon_"), ".csv")
		table, err := ReadTable(file, warn)
		if err != nil {
			return nil, err
		}
		tables[lang] = table
	}
	return tables, nil
}

func elem(row []string, idx int) string {
	return elemDefault(row, idx, "")
}

func elemDefault(row []string, idx int, def string) string {
	if idx < len(row) {
		return row[idx]
	}
	return def
}
