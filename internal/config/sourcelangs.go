package config

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// SourceLanguages describes the source languages candidates are built from,
// as read from the sourcelangs CSV file.
type SourceLanguages struct {
	// List holds the main language codes, most widely spoken first.
	List []string
	// Fallbacks maps main languages to their fallback languages, tried
	// in order when the main language has no translation.
	Fallbacks map[string][]string
	// FallbackToMain is the reverse mapping.
	FallbackToMain map[string]string
	// Names maps codes to language names, e.g. "en" to "English".
	Names map[string]string
	// LatinMains and LatinFallbacks hold the languages written in the
	// Latin script; their translations need no romanization brackets.
	LatinMains     map[string]bool
	LatinFallbacks map[string]bool
}

// ReadSourceLanguages reads the sourcelangs CSV file. Each row names a
// language, its ISO code (or a main/fallback combination such as "hi/ur"),
// and in the sixth column its script. extraFallbacks adds further fallback
// languages per main language, slash-separated when there are several.
func ReadSourceLanguages(path string, extraFallbacks map[string]string) (*SourceLanguages, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	langs := &SourceLanguages{
		Fallbacks:      make(map[string][]string),
		FallbackToMain: make(map[string]string),
		Names:          make(map[string]string),
		LatinMains:     make(map[string]bool),
		LatinFallbacks: make(map[string]bool),
	}

	for i, row := range rows {
		if i == 0 {
			// Header line
			continue
		}
		if len(row) < 6 {
			return nil, fmt.Errorf("%s: row too short: %d columns instead of 6 (%s)",
				path, len(row), strings.Join(row, ", "))
		}
		name, code, script := row[0], row[1], row[5]

		if main, fallback, found := strings.Cut(code, "/"); found {
			langs.List = append(langs.List, main)
			langs.Fallbacks[main] = []string{fallback}
			langs.FallbackToMain[fallback] = main
			langs.Names[main] = name
			langs.Names[fallback] = name
			if script == "Latin" {
				langs.LatinMains[main] = true
				langs.LatinFallbacks[fallback] = true
			}
		} else {
			langs.List = append(langs.List, code)
			langs.Names[code] = name
			if script == "Latin" {
				langs.LatinMains[code] = true
			}
		}
	}

	for main, fallbacks := range extraFallbacks {
		// Extra fallbacks replace whatever the file declared for that
		// main language; they may themselves be slash-separated
		split := strings.Split(fallbacks, "/")
		langs.Fallbacks[main] = split
		for _, fallback := range split {
			langs.FallbackToMain[fallback] = main
			if langs.LatinMains[main] {
				langs.LatinFallbacks[fallback] = true
			}
		}
	}
	return langs, nil
}

// AllCodes returns the full set of codes candidates may come from: main
// languages, fallback languages, and the given auxlangs.
func (s *SourceLanguages) AllCodes(auxlangs []string) map[string]bool {
	all := make(map[string]bool)
	for _, code := range s.List {
		all[code] = true
	}
	for fallback := range s.FallbackToMain {
		all[fallback] = true
	}
	for _, code := range auxlangs {
		all[code] = true
	}
	return all
}
