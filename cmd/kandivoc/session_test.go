package main

import (
	"path/filepath"
	"testing"

	"kandivoc/internal/builder"
	"kandivoc/internal/lexicon"
	"kandivoc/internal/mapper"
	"kandivoc/internal/ranker"
	"kandivoc/internal/ui"
)

// identityTable maps each lower-case letter of the internal alphabet to
// itself, standing in for a real conversion table.
func identityTable() *mapper.Table {
	rules := make(map[string]mapper.Conversion)
	for _, r := range "abdefghijklmnoprstuvwyz" {
		rules[string(r)] = mapper.Conversion{Output: string(r)}
	}
	return mapper.NewTable(rules)
}

func wordSession(t *testing.T, word string) (*session, *lexicon.Entry) {
	t.Helper()
	log := ui.NewRecordingLog()
	m := mapper.New(map[string]*mapper.Table{"es": identityTable()}, nil, log)
	dict := lexicon.NewDictionary()
	b := builder.New(m, dict, []string{"es"}, nil, builder.Options{Word: word}, log)

	entry := lexicon.NewEntry("")
	entry.Add("en", "house", 1, false)
	entry.Add("class", "noun", 2, false)
	entry.Add("es", "kasa", 3, false)

	constraints, err := ranker.ParseConstraints("")
	if err != nil {
		t.Fatal(err)
	}

	langs, candidates, err := b.BuildCandidates(entry, constraints)
	if err != nil {
		t.Fatal(err)
	}
	scored := b.Score(langs, candidates)
	for _, cand := range scored {
		if cand.Lang == "" {
			t.Fatal("the --word candidate should be hidden from the scored list")
		}
	}
	eligible := ranker.Rank(scored, ranker.Options{MinLength: 3}, log)

	s := &session{
		b:          b,
		dict:       dict,
		log:        log,
		dictFile:   filepath.Join(t.TempDir(), "dict.txt"),
		word:       word,
		candidates: candidates,
	}
	if err := s.present(eligible, entry, constraints); err != nil {
		t.Fatalf("present failed: %v", err)
	}
	return s, entry
}

// The candidate added with --word is scored under the empty language code
// but hidden from the presented list; the session must still find and store
// it.
func TestStoreSpecifiedWord(t *testing.T) {
	s, entry := wordSession(t, "sasa")

	if !s.dict.HasWord("sasa") {
		t.Error("specified word not added to the dictionary")
	}
	if entry.Get("word") != "sasa" {
		t.Errorf("entry word = %q, want sasa", entry.Get("word"))
	}
	if infl := entry.Get("infl"); infl != "es (kasa)" {
		t.Errorf("infl = %q, want \"es (kasa)\"", infl)
	}
}

// A specified word unrelated to every source-language candidate is rejected.
func TestStoreSpecifiedWordUnrelated(t *testing.T) {
	log := ui.NewRecordingLog()
	m := mapper.New(map[string]*mapper.Table{"es": identityTable()}, nil, log)
	dict := lexicon.NewDictionary()
	b := builder.New(m, dict, []string{"es"}, nil, builder.Options{Word: "timu"}, log)

	entry := lexicon.NewEntry("")
	entry.Add("en", "house", 1, false)
	entry.Add("class", "noun", 2, false)
	entry.Add("es", "kasa", 3, false)

	langs, candidates, err := b.BuildCandidates(entry, nil)
	if err != nil {
		t.Fatal(err)
	}
	b.Score(langs, candidates)

	s := &session{
		b:          b,
		dict:       dict,
		log:        log,
		dictFile:   filepath.Join(t.TempDir(), "dict.txt"),
		word:       "timu",
		candidates: candidates,
	}
	if err := s.storeSpecifiedWord(entry); err == nil {
		t.Fatal("unrelated word accepted")
	}
	if s.dict.HasWord("timu") {
		t.Error("unrelated word written to the dictionary")
	}
}
