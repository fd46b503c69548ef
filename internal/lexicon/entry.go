package lexicon

import (
	"fmt"
	"strings"
)

// Entry is an ordered key/value record read from a word list file. Line
// numbers are kept per key so that messages can point at the offending line.
type Entry struct {
	Filename string

	keys      []string
	values    map[string]string
	lines     map[string]int
	firstLine int
}

// NewEntry creates an empty entry. filename is used in error messages and
// may be empty.
func NewEntry(filename string) *Entry {
	return &Entry{
		Filename:  filename,
		values:    make(map[string]string),
		lines:     make(map[string]int),
		firstLine: -1,
	}
}

// ErrPrefix returns the prefix to use for messages about this entry,
// including the filename and line number where known. Pass a negative lineno
// to leave it out.
func (e *Entry) ErrPrefix(lineno int) string {
	if e.Filename != "" {
		if lineno >= 0 {
			return fmt.Sprintf("Error parsing %s, line %d: ", e.Filename, lineno)
		}
		return fmt.Sprintf("Error parsing %s: ", e.Filename)
	}
	if lineno >= 0 {
		return fmt.Sprintf("Error on line %d: ", lineno)
	}
	return "Error: "
}

// Add stores a key/value pair. An existing key is replaced; unless
// allowReplace is set, the returned warning describes the duplicate
// (otherwise it is empty).
func (e *Entry) Add(key, value string, lineno int, allowReplace bool) string {
	warning := ""
	if _, exists := e.values[key]; exists {
		if !allowReplace {
			warning = fmt.Sprintf("%sDuplicate key %q", e.ErrPrefix(lineno), key)
		}
	} else {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
	e.lines[key] = lineno
	if e.firstLine < 0 {
		e.firstLine = lineno
	}
	return warning
}

// Get returns the value for a key, or an empty string if absent.
func (e *Entry) Get(key string) string {
	return e.values[key]
}

// Has reports whether the entry contains the key.
func (e *Entry) Has(key string) bool {
	_, ok := e.values[key]
	return ok
}

// AppendToVal appends text to the value stored for an existing key.
func (e *Entry) AppendToVal(key, text string) {
	if _, ok := e.values[key]; ok {
		e.values[key] += text
	}
}

// Keys returns the keys in insertion order.
func (e *Entry) Keys() []string {
	return append([]string(nil), e.keys...)
}

// Len returns the number of key/value pairs.
func (e *Entry) Len() int {
	return len(e.keys)
}

// Lineno returns the line number associated with a key, or -1 if unknown.
func (e *Entry) Lineno(key string) int {
	if n, ok := e.lines[key]; ok {
		return n
	}
	return -1
}

// FirstLineno returns the line number of the first key added, or -1 for an
// empty entry.
func (e *Entry) FirstLineno() int {
	return e.firstLine
}

// String serializes the entry as "key: value" lines in insertion order,
// with all whitespace normalized.
func (e *Entry) String() string {
	var b strings.Builder
	for _, key := range e.keys {
		fmt.Fprintf(&b, "%s: %s\n", Normalize(key), Normalize(e.values[key]))
	}
	return b.String()
}
