package builder

import (
	"fmt"
	"strings"
	"testing"

	"kandivoc/internal/lexicon"
	"kandivoc/internal/mapper"
	"kandivoc/internal/phonology"
	"kandivoc/internal/ranker"
)

type testLog struct {
	infos []string
	warns []string
}

func (l *testLog) Infof(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *testLog) Warnf(format string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

// identityTable maps each lower-case letter of the internal alphabet to
// itself, standing in for a real conversion table.
func identityTable() *mapper.Table {
	rules := make(map[string]mapper.Conversion)
	for _, r := range "abdefghijklmnoprstuvwyz" {
		rules[string(r)] = mapper.Conversion{Output: string(r)}
	}
	return mapper.NewTable(rules)
}

func testBuilder(tables map[string]*mapper.Table, sourceLangs []string,
	fallbacks map[string][]string, opts Options) (*Builder, *testLog) {
	log := &testLog{}
	m := mapper.New(tables, nil, log)
	return New(m, lexicon.NewDictionary(), sourceLangs, fallbacks, opts, log), log
}

func entryWith(fields ...string) *lexicon.Entry {
	entry := lexicon.NewEntry("")
	for i := 0; i+1 < len(fields); i += 2 {
		entry.Add(fields[i], fields[i+1], i/2+1, false)
	}
	return entry
}

func TestCandidatesForLang(t *testing.T) {
	b, _ := testBuilder(map[string]*mapper.Table{"xx": identityTable()},
		[]string{"xx"}, nil, Options{})
	entry := entryWith("en", "house", "xx", "kasa; domo; kasa")

	cands := b.CandidatesForLang("xx", "xx", entry)
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2 (duplicate dropped)", len(cands))
	}
	if cands[0].Word != "kasa" || cands[1].Word != "domo" {
		t.Errorf("candidates = %v, %v", cands[0], cands[1])
	}
	if cands[0].Lang != "xx" {
		t.Errorf("Lang = %q, want xx", cands[0].Lang)
	}
}

func TestCandidatesForLangBrackets(t *testing.T) {
	b, _ := testBuilder(map[string]*mapper.Table{"en": identityTable()},
		[]string{"en"}, nil, Options{})
	entry := entryWith("en", "dog house; cat [kat]")

	cands := b.CandidatesForLang("en", "en", entry)
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1 (English needs brackets)", len(cands))
	}
	if cands[0].Word != "kat" {
		t.Errorf("Word = %q, want kat", cands[0].Word)
	}
	if cands[0].TrueOriginal != "cat" {
		t.Errorf("TrueOriginal = %q, want cat", cands[0].TrueOriginal)
	}
}

func TestCandidatesForLangRomanizationVariants(t *testing.T) {
	b, _ := testBuilder(map[string]*mapper.Table{"yue": identityTable()},
		[]string{"yue"}, nil, Options{})
	entry := entryWith("yue", "位 [wai, wui]")

	cands := b.CandidatesForLang("yue", "yue", entry)
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	if cands[0].Word != "way" {
		t.Errorf("Word = %q, want way (first romanization, repaired)", cands[0].Word)
	}
	if cands[0].TrueOriginal != "位" {
		t.Errorf("TrueOriginal = %q", cands[0].TrueOriginal)
	}
}

func TestBuildCandidatesFallback(t *testing.T) {
	tables := map[string]*mapper.Table{"hi": identityTable()}
	b, log := testBuilder(tables, []string{"hi"}, map[string][]string{"hi": {"ur"}}, Options{})
	entry := entryWith("ur", "kala")

	langs, candidates, err := b.BuildCandidates(entry, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(langs) != 1 || langs[0] != "ur" {
		t.Fatalf("langs = %v, want [ur]", langs)
	}
	if len(candidates["ur"]) != 1 || candidates["ur"][0].Word != "kala" {
		t.Errorf("candidates[ur] = %v", candidates["ur"])
	}
	if !b.ActiveFallbacks()["ur"] {
		t.Error("ur not recorded as active fallback")
	}
	found := false
	for _, msg := range log.infos {
		if strings.Contains(msg, "fallback candidate(s) from ur") {
			found = true
		}
	}
	if !found {
		t.Errorf("fallback use not logged: %v", log.infos)
	}
}

func TestBuildCandidatesMainWins(t *testing.T) {
	tables := map[string]*mapper.Table{"hi": identityTable()}
	b, _ := testBuilder(tables, []string{"hi"}, map[string][]string{"hi": {"ur"}}, Options{})
	entry := entryWith("hi", "kala", "ur", "siva")

	langs, candidates, err := b.BuildCandidates(entry, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(langs) != 1 || langs[0] != "hi" {
		t.Fatalf("langs = %v, want [hi] only", langs)
	}
	if candidates["ur"] != nil {
		t.Error("fallback used although the main language has candidates")
	}
}

func TestBuildCandidatesAddedWord(t *testing.T) {
	b, _ := testBuilder(map[string]*mapper.Table{"xx": identityTable()},
		[]string{"xx"}, nil, Options{Word: "suma"})
	entry := entryWith("xx", "kasa")

	langs, candidates, err := b.BuildCandidates(entry, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(langs) != 2 || langs[1] != "" {
		t.Fatalf("langs = %v, want [xx \"\"]", langs)
	}
	added := candidates[""]
	if len(added) != 1 || added[0].Word != "suma" || added[0].Lang != "" {
		t.Errorf("added candidate = %v", added)
	}
}

func TestAddedWordCarriesAuxlangs(t *testing.T) {
	log := &testLog{}
	m := mapper.New(map[string]*mapper.Table{"xx": identityTable()}, []string{"glosa"}, log)
	b := New(m, lexicon.NewDictionary(), []string{"xx"}, nil, Options{}, log)
	entry := entryWith("xx", "kasa")
	constraints, err := ranker.ParseConstraints("Add:suma (hybrid of both)")
	if err != nil {
		t.Fatal(err)
	}

	_, candidates, err := b.BuildCandidates(entry, constraints)
	if err != nil {
		t.Fatal(err)
	}
	added := candidates[""]
	if len(added) != 1 {
		t.Fatalf("added candidates = %v, want one", added)
	}
	if len(added[0].Auxlangs) != 1 || added[0].Auxlangs[0] != "glosa" {
		t.Fatalf("Auxlangs = %v, want [glosa]", added[0].Auxlangs)
	}
	// so a relation to an auxlang doesn't count as natlang support
	added[0].AddRelated("glosa", phonology.New("suma", 0, "glosa"))
	if added[0].CountRelatedNatlangCands() != 0 {
		t.Error("auxlang relation counted as a natural language")
	}
}

func TestBuildCandidatesInvalidWord(t *testing.T) {
	b, _ := testBuilder(map[string]*mapper.Table{"xx": identityTable()},
		[]string{"xx"}, nil, Options{Word: "qx"})
	entry := entryWith("xx", "kasa")

	if _, _, err := b.BuildCandidates(entry, nil); err == nil {
		t.Error("phonetically invalid word accepted")
	}
}

func TestBuildCandidatesDuplicateWord(t *testing.T) {
	log := &testLog{}
	m := mapper.New(map[string]*mapper.Table{"xx": identityTable()}, nil, log)
	dict := lexicon.NewDictionary()
	dict.Remember("suma", nil)
	b := New(m, dict, []string{"xx"}, nil, Options{Word: "suma"}, log)
	entry := entryWith("xx", "kasa")

	if _, _, err := b.BuildCandidates(entry, nil); err == nil {
		t.Error("duplicate word accepted")
	}
}

func TestRunEndToEnd(t *testing.T) {
	tables := map[string]*mapper.Table{
		"aa": identityTable(),
		"bb": identityTable(),
		"cc": identityTable(),
	}
	b, log := testBuilder(tables, []string{"aa", "bb", "cc"}, nil, Options{})
	entry := entryWith("class", "noun", "aa", "kasa", "bb", "kasa", "cc", "domo")

	result, err := b.Run(entry, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 3 {
		t.Fatalf("got %d eligible candidates, want 3", len(result))
	}
	// kasa is shared by two languages, so both its candidates lead
	if result[0].Word != "kasa" || result[1].Word != "kasa" {
		t.Errorf("best candidates = %v, %v, want kasa twice", result[0], result[1])
	}
	if result[2].Word != "domo" {
		t.Errorf("last candidate = %v, want domo", result[2])
	}
	if len(log.infos) == 0 {
		t.Error("nothing logged")
	}
}

func TestRunTargetClass(t *testing.T) {
	b, _ := testBuilder(map[string]*mapper.Table{"xx": identityTable()},
		[]string{"xx"}, nil, Options{})
	entry := entryWith("class", "noun", "xx", "ta")
	constraints, err := ranker.ParseConstraints("Set class:particle")
	if err != nil {
		t.Fatal(err)
	}

	result, err := b.Run(entry, constraints)
	if err != nil {
		t.Fatal(err)
	}
	// as a particle, the two-sound candidate is no longer too short
	if len(result) != 1 {
		t.Fatalf("got %d eligible candidates, want 1", len(result))
	}
	if entry.Get("class") != "particle" {
		t.Errorf("class = %q, want particle", entry.Get("class"))
	}
}

func TestSchwaStrip(t *testing.T) {
	cand := phonology.New("əkasə", 0, "xx")
	schwaStrip(cand)
	if cand.Word != "kas" {
		t.Errorf("schwaStrip = %q, want kas", cand.Word)
	}
}
