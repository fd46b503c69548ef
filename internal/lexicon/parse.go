package lexicon

import (
	"fmt"
	"os"
	"strings"
)

// ParseEntry parses a multi-line string into an entry.
//
// Each line holds a "key: value" pair; whitespace around the separator and
// at the line end is ignored. Lines starting with "#" are comments.
// Continuation lines start with two spaces and continue the preceding value,
// preserving the line break. Malformed lines (no colon, empty key, leading
// whitespace, duplicates) are reported through warn and otherwise skipped.
//
// firstline is the line number of the first line, used in messages.
func ParseEntry(text string, firstline int, filename string, warn func(msg string)) *Entry {
	if warn == nil {
		warn = func(string) {}
	}
	result := NewEntry(filename)
	lineno := firstline - 1
	// lastKey is the key a continuation line would extend; cleared by
	// comments and empty lines
	lastKey := ""
	started := false

	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		// A trailing newline is not an empty line
		lines = lines[:n-1]
	}
	for _, line := range lines {
		lineno++
		line = strings.TrimRight(line, " \t\r\n")

		if strings.HasPrefix(line, "  ") {
			if lastKey != "" {
				result.AppendToVal(lastKey, "\n"+line[2:])
			} else {
				errCond := "at the start of an entry"
				if started {
					errCond = "after a comment or empty line"
				}
				warn(fmt.Sprintf("%sUnexpected continuation line %s: %q",
					result.ErrPrefix(lineno), errCond, strings.TrimSpace(line)))
			}
			continue
		}

		if line == "" || strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
			if line == "" {
				warn(result.ErrPrefix(lineno) + "Line is empty")
			}
			lastKey = ""
			started = true
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			warn(fmt.Sprintf("%sInvalid leading whitespace: %q",
				result.ErrPrefix(lineno), line))
			line = strings.TrimLeft(line, " \t")
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			warn(fmt.Sprintf("%sNo valid key/value pair found: %q",
				result.ErrPrefix(lineno), line))
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		lastKey = key
		started = true

		if key == "" {
			warn(fmt.Sprintf("%sIgnoring invalid empty key: %q",
				result.ErrPrefix(lineno), line))
			continue
		}

		if dup := result.Add(key, value, lineno, false); dup != "" {
			warn(dup)
		}
	}
	return result
}

// ReadEntries reads entries from a text file, in order. Entries are
// separated by one or more empty lines.
func ReadEntries(filename string, warn func(msg string)) ([]*Entry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var result []*Entry
	lineno := 1
	for _, entryStr := range strings.Split(string(data), "\n\n") {
		entry := ParseEntry(entryStr, lineno, filename, warn)
		if entry.Len() > 0 {
			result = append(result, entry)
		}
		lineno += strings.Count(entryStr, "\n") + 2
	}
	return result, nil
}

// ReadSingleEntry reads one entry from a text file.
func ReadSingleEntry(filename string, warn func(msg string)) (*Entry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseEntry(string(data), 1, filename, warn), nil
}

// WriteEntries serializes entries into a file, separated by empty lines.
func WriteEntries(entries []*Entry, filename string) error {
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(entry.String())
	}
	return os.WriteFile(filename, []byte(b.String()), 0o644)
}
