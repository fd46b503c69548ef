package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	if c.GetRunID() == "" {
		t.Error("Expected non-empty run ID")
	}

	c.SetConfig("languages", []string{"en", "hi", "ar"})
	c.SetConfig("schwastrip", true)

	c.StartStage("generate")
	time.Sleep(10 * time.Millisecond)
	c.IncrementCounter("candidates", 7)
	c.IncrementCounter("candidates", 2)
	c.SetGauge("fallbacks_used", 1)
	c.EndStage("generate")

	c.StartStage("rank")
	c.SetCounter("eligible", 6)
	c.EndStage("rank")

	metrics := c.Finalize(9, 6)

	if metrics.RunID == "" {
		t.Error("Expected non-empty run ID in metrics")
	}
	if metrics.Totals.CandidatesBuilt != 9 {
		t.Errorf("Expected 9 candidates, got %d", metrics.Totals.CandidatesBuilt)
	}
	if metrics.Totals.Eligible != 6 {
		t.Errorf("Expected 6 eligible, got %d", metrics.Totals.Eligible)
	}

	generate, ok := metrics.Stages["generate"]
	if !ok {
		t.Fatal("Expected generate stage in metrics")
	}
	if generate.Counters["candidates"] != 9 {
		t.Errorf("Expected candidates counter = 9, got %d", generate.Counters["candidates"])
	}
	if c.GetStageDuration("generate") <= 0 {
		t.Error("Expected positive generate duration")
	}

	rank, ok := metrics.Stages["rank"]
	if !ok {
		t.Fatal("Expected rank stage in metrics")
	}
	if rank.Counters["eligible"] != 6 {
		t.Errorf("Expected eligible = 6, got %d", rank.Counters["eligible"])
	}
}

func TestReporter(t *testing.T) {
	tmpDir := t.TempDir()
	reporter := NewReporter(tmpDir)

	c := NewCollector()
	c.SetConfig("languages", []string{"en"})
	c.StartStage("score")
	c.SetCounter("pairs", 100)
	c.EndStage("score")
	metrics := c.Finalize(12, 8)

	if err := reporter.Write(metrics); err != nil {
		t.Fatalf("Failed to write metrics: %v", err)
	}

	latestPath := filepath.Join(tmpDir, "metrics", "latest.json")
	if _, err := os.Stat(latestPath); os.IsNotExist(err) {
		t.Error("Expected latest.json to exist")
	}

	historyPath := filepath.Join(tmpDir, "metrics", "history.jsonl")
	if _, err := os.Stat(historyPath); os.IsNotExist(err) {
		t.Error("Expected history.jsonl to exist")
	}

	runs, err := reporter.ReadHistory(10)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run in history, got %d", len(runs))
	}

	lastRun, err := reporter.GetLastRun()
	if err != nil {
		t.Fatalf("Failed to get last run: %v", err)
	}
	if lastRun.RunID != metrics.RunID {
		t.Errorf("Expected run ID %s, got %s", metrics.RunID, lastRun.RunID)
	}
	if lastRun.Totals.CandidatesBuilt != 12 {
		t.Errorf("Expected 12 candidates in history, got %d", lastRun.Totals.CandidatesBuilt)
	}
}

func TestReporterHistoryLimit(t *testing.T) {
	tmpDir := t.TempDir()
	reporter := NewReporter(tmpDir)

	for i := 0; i < 3; i++ {
		c := NewCollector()
		if err := reporter.Write(c.Finalize(int64(i), i)); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := reporter.ReadHistory(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[1].Totals.CandidatesBuilt != 2 {
		t.Errorf("Expected the newest run last, got %d", runs[1].Totals.CandidatesBuilt)
	}
}
