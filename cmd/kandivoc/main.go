// kandivoc CLI - propose and select vocabulary candidates for a worldlang.
//
// Each run builds the candidates for one concept entry, scores them against
// each other, and presents them in order of preference. A suitable option
// (--select, --word, or a constraint) must be given to actually extend the
// dictionary.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"kandivoc/internal/builder"
	"kandivoc/internal/config"
	"kandivoc/internal/lexicon"
	"kandivoc/internal/mapper"
	"kandivoc/internal/metrics"
	"kandivoc/internal/ranker"
	"kandivoc/internal/ui"
)

func main() {
	selectNum := pflag.IntP("select", "s", 0, "Select the numbered candidate (1-based)")
	selectRationale := pflag.String("sr", "", "The selection rationale, required whenever any other candidate than the first is chosen")
	word := pflag.StringP("word", "w", "", "Add this word instead of a generated candidate")
	wordRationale := pflag.String("wr", "", "Rationale for the word given with --word")
	consider := pflag.String("consider", "", "Comma-separated extra languages to build candidates from")
	allowShort := pflag.String("allowshort", "", "Allow candidates that would otherwise be too short, giving a rationale")
	allowDuplicates := pflag.Bool("allowduplicates", false, "Allow candidates identical to already existing words")
	schwaStrip := pflag.Bool("schwastrip", false, "Strip filler vowels from the edges of candidates")
	commit := pflag.Bool("commit", false, "Write the resulting entry to the dictionary")
	constraintStr := pflag.StringP("constraints", "c", "", "Constraint directives (default: the entry's constraint field)")
	entriesFile := pflag.StringP("entries", "e", "entries.txt", "Concept entries file")
	tags := pflag.String("tags", "", "Comma-separated extra tags for the exported entry")
	conflicts := pflag.Bool("conflicts", false, "Scan the dictionary for confusable word pairs and exit")
	workers := pflag.Int("workers", builder.DefaultScanConfig().Workers, "Parallel workers for the conflict scan")
	quiet := pflag.BoolP("quiet", "q", false, "Suppress decorative output")
	verbose := pflag.BoolP("verbose", "v", false, "Verbose logging")
	writeMetrics := pflag.Bool("metrics", true, "Write run metrics next to the dictionary")

	pflag.Parse()

	term := ui.New(*quiet, *verbose)
	cfg := config.Load()
	log := ui.NewRecordingLog()

	dict := loadDictionary(term, cfg.Paths.DictFile, log)

	if *conflicts {
		scanConflicts(term, dict, *workers)
		return
	}

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: kandivoc [options] <meaning>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		pflag.PrintDefaults()
		os.Exit(1)
	}
	meaning := pflag.Arg(0)

	if !*quiet {
		term.Banner()
	}

	langsInfo, err := config.ReadSourceLanguages(cfg.Paths.SourcelangsFile, cfg.Languages.ExtraFallbacks)
	if err != nil {
		fatal(term, err)
	}
	tables, err := mapper.DiscoverTables(cfg.Paths.DataDir, log.Warnf)
	if err != nil {
		fatal(term, err)
	}
	m := mapper.New(tables, cfg.Languages.Auxlangs, log)

	if !*quiet {
		term.Config(langsInfo.List, cfg.Paths.DictFile, cfg.Paths.DataDir)
	}

	entries, err := lexicon.ReadEntries(*entriesFile, warnFunc(log))
	if err != nil {
		fatal(term, err)
	}
	entry := findEntry(entries, meaning)
	if entry == nil {
		fatal(term, fmt.Errorf("no concept entry found for %q in %s", meaning, *entriesFile))
	}
	if entry.Get("word") != "" {
		log.Warnf("Entry %q already has the word %q.", meaning, entry.Get("word"))
	}
	if !*quiet {
		term.Concept(entry.Get("en"), entry.Get("class"))
	}

	constraintSource := *constraintStr
	if constraintSource == "" {
		constraintSource = entry.Get("constraint")
	}
	constraints, err := ranker.ParseConstraints(constraintSource)
	if err != nil {
		fatal(term, err)
	}
	if constraintSource != "" {
		log.Infof("%s", constraints.String())
	}

	collector := metrics.NewCollector()
	collector.SetConfig("meaning", meaning)
	collector.SetConfig("languages", langsInfo.List)
	collector.SetConfig("schwastrip", *schwaStrip)

	sourceLangs := append(append([]string(nil), langsInfo.List...), cfg.Languages.Auxlangs...)
	opts := builder.Options{
		SchwaStrip:          *schwaStrip,
		AllowDuplicates:     *allowDuplicates,
		AllowShortRationale: *allowShort,
		Consider:            splitList(*consider),
		Word:                *word,
		LatinMains:          langsInfo.LatinMains,
		LatinFallbacks:      langsInfo.LatinFallbacks,
	}
	b := builder.New(m, dict, sourceLangs, langsInfo.Fallbacks, opts, log)

	if constraints.TargetClass != "" {
		entry.Add("class", constraints.TargetClass, entry.Lineno("class"), true)
	}

	collector.StartStage("generate")
	langs, candidates, err := b.BuildCandidates(entry, constraints)
	if err != nil {
		fatal(term, err)
	}
	total := 0
	for _, cands := range candidates {
		total += len(cands)
	}
	collector.SetCounter("languages", int64(len(langs)))
	collector.SetCounter("candidates", int64(total))
	collector.EndStage("generate")

	collector.StartStage("score")
	scored := b.Score(langs, candidates)
	collector.EndStage("score")

	collector.StartStage("rank")
	if *allowDuplicates {
		log.Infof("Allowing candidates that are duplicates of already existing words as requested.")
	}
	eligible := ranker.Rank(scored, ranker.Options{
		MinLength:       b.MinLength(entry, constraints),
		AllowDuplicates: *allowDuplicates,
		Constraints:     constraints,
		WordExists:      dict.HasNormalized,
	}, log)
	collector.SetCounter("eligible", int64(len(eligible)))
	collector.EndStage("rank")

	s := &session{
		b:               b,
		dict:            dict,
		log:             log,
		auxlangs:        cfg.Languages.Auxlangs,
		dictFile:        cfg.Paths.DictFile,
		candidates:      candidates,
		selectNum:       *selectNum,
		selectRationale: *selectRationale,
		word:            strings.TrimSpace(*word),
		wordRationale:   *wordRationale,
		commit:          *commit,
		tags:            splitList(*tags),
	}
	if err := s.present(eligible, entry, constraints); err != nil {
		fatal(term, err)
	}

	if *writeMetrics {
		reporter := metrics.NewReporter(".")
		if err := reporter.Write(collector.Finalize(int64(total), len(eligible))); err != nil {
			term.Warning(err.Error())
		}
	}
	if err := log.AppendAllMessages(cfg.Paths.SelectionLog); err != nil {
		term.Warning(err.Error())
	}
	if !*quiet {
		term.Done()
	}
}

func fatal(term *ui.UI, err error) {
	term.Error(err.Error())
	os.Exit(1)
}

func warnFunc(log *ui.RecordingLog) func(msg string) {
	return func(msg string) { log.Warnf("%s", msg) }
}

// loadDictionary reads the existing dictionary; a missing file just means an
// empty dictionary.
func loadDictionary(term *ui.UI, filename string, log *ui.RecordingLog) *lexicon.Dictionary {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return lexicon.NewDictionary()
	}
	dict, err := lexicon.LoadDictionary(filename, warnFunc(log))
	if err != nil {
		fatal(term, err)
	}
	return dict
}

func scanConflicts(term *ui.UI, dict *lexicon.Dictionary, workers int) {
	if workers > config.MaxScanWorkers {
		workers = config.MaxScanWorkers
	}
	spinner := term.Spinner("Comparing dictionary words")
	found := builder.ScanConflicts(context.Background(), dict.Words(),
		builder.ScanConfig{Workers: workers})
	spinner.Stop()
	term.Conflicts(found)
}

// findEntry returns the concept entry whose English translation matches the
// requested meaning, comparing each semicolon-separated alternative with
// brackets and parentheses removed.
func findEntry(entries []*lexicon.Entry, meaning string) *lexicon.Entry {
	for _, entry := range entries {
		for _, alt := range lexicon.SplitOnSemicolons(entry.Get("en")) {
			alt = lexicon.EliminateParens(lexicon.DiscardTextInBrackets(alt))
			if strings.EqualFold(alt, meaning) {
				return entry
			}
		}
	}
	return nil
}

func splitList(text string) []string {
	var result []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
