package ranker

import (
	"fmt"
	"strings"
	"testing"

	"kandivoc/internal/phonology"
)

type recordingLog struct {
	lines []string
}

func (l *recordingLog) Infof(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestMinLength(t *testing.T) {
	tests := []struct {
		class      string
		allowShort bool
		expected   int
	}{
		{"noun", false, 3},
		{"verb, noun", false, 3},
		{"adj", false, 3},
		{"particle", false, 1},
		{"", false, 1},
		{"noun", true, 1},
	}

	for _, tt := range tests {
		if got := MinLength(tt.class, tt.allowShort); got != tt.expected {
			t.Errorf("MinLength(%q, %v) = %d, want %d",
				tt.class, tt.allowShort, got, tt.expected)
		}
	}
}

func scoredCand(word, lang string, simScore float64, penalty int) *phonology.Candidate {
	cand := phonology.New(word, penalty, lang)
	cand.SimScore = simScore
	return cand
}

func TestRankOrderAndSkips(t *testing.T) {
	best := scoredCand("kasa", "es", 1.0, 0)
	best.AddRelated("en", scoredCand("haus", "en", 0, 0))
	second := scoredCand("haus", "de", 0.8, 0)
	distorted := scoredCand("dom", "ru", 0.9, 5)

	log := &recordingLog{}
	result := Rank([]*phonology.Candidate{distorted, second, best},
		Options{MinLength: 1}, log)

	if len(result) != 2 || result[0] != best || result[1] != second {
		t.Fatalf("Rank returned %v, want [kasa haus]", result)
	}
	if len(log.lines) != 3 {
		t.Fatalf("logged %d lines, want 3", len(log.lines))
	}
	if !strings.HasPrefix(log.lines[0], "[1]* ") {
		t.Errorf("best line = %q, want star and number 1", log.lines[0])
	}
	if !strings.HasPrefix(log.lines[1], "[2]  ") {
		t.Errorf("second line = %q, want number 2", log.lines[1])
	}
	if !strings.HasPrefix(log.lines[2], "[SKIPPED (too distorted)]  ") {
		t.Errorf("distorted line = %q, want skip reason", log.lines[2])
	}
}

func TestRankRelatedNatlangsBeatScore(t *testing.T) {
	// a candidate with natlang support outranks a higher-scoring loner
	connected := scoredCand("suma", "de", 0.7, 0)
	connected.AddRelated("en", scoredCand("sum", "en", 0, 0))
	loner := scoredCand("kasa", "es", 1.0, 0)

	result := Rank([]*phonology.Candidate{loner, connected}, Options{MinLength: 1}, nil)
	if len(result) != 2 || result[0] != connected || result[1] != loner {
		t.Fatalf("Rank returned %v, want [suma kasa]", result)
	}
}

func TestRankAlphabeticTieBreak(t *testing.T) {
	zeta := scoredCand("zuma", "de", 0.8, 0)
	alpha := scoredCand("asta", "es", 0.8, 0)

	result := Rank([]*phonology.Candidate{zeta, alpha}, Options{MinLength: 1}, nil)
	if len(result) != 2 || result[0] != alpha || result[1] != zeta {
		t.Fatalf("Rank returned %v, want alphabetic [asta zuma]", result)
	}
}

func TestRankSkipsShortAndExisting(t *testing.T) {
	short := scoredCand("ta", "en", 1.0, 0)
	existing := scoredCand("kasa", "es", 0.9, 0)
	fresh := scoredCand("suma", "de", 0.8, 0)

	opts := Options{
		MinLength:  3,
		WordExists: func(word string) bool { return word == "kasa" },
	}
	result := Rank([]*phonology.Candidate{short, existing, fresh}, opts, nil)

	if len(result) != 1 || result[0] != fresh {
		t.Fatalf("Rank returned %v, want only suma", result)
	}
}

func TestRankAllowDuplicates(t *testing.T) {
	existing := scoredCand("kasa", "es", 0.9, 0)
	opts := Options{
		MinLength:       1,
		AllowDuplicates: true,
		WordExists:      func(string) bool { return true },
	}
	result := Rank([]*phonology.Candidate{existing}, opts, nil)
	if len(result) != 1 {
		t.Error("duplicate not admitted with AllowDuplicates")
	}
}

func TestRankConstraintSkip(t *testing.T) {
	chosen := scoredCand("ka", "en", 0.5, 0)
	other := scoredCand("suma", "de", 1.0, 0)

	constraints, err := ParseConstraints("Choose:ka (short wins)")
	if err != nil {
		t.Fatal(err)
	}
	log := &recordingLog{}
	result := Rank([]*phonology.Candidate{chosen, other},
		Options{MinLength: 1, Constraints: constraints}, log)

	if len(result) != 1 || result[0] != chosen {
		t.Fatalf("Rank returned %v, want only the chosen ka", result)
	}
	// suma has the better total score, so it keeps the star even when skipped
	found := false
	for _, line := range log.lines {
		if strings.HasPrefix(line, "[SKIPPED (not the chosen candidate)]* ") {
			found = true
		}
	}
	if !found {
		t.Errorf("skipped best candidate not starred: %v", log.lines)
	}
}

func TestRankEmpty(t *testing.T) {
	if result := Rank(nil, Options{}, nil); result != nil {
		t.Errorf("Rank(nil) = %v, want nil", result)
	}
}
