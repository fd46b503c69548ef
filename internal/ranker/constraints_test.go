package ranker

import (
	"strings"
	"testing"

	"kandivoc/internal/phonology"
)

func TestParseConstraints(t *testing.T) {
	c, err := ParseConstraints(
		"Syllables:2.5; Allow langs: en fr (prefer a western form); " +
			"Skip:un (only used before vowels); Allow short")
	if err != nil {
		t.Fatalf("ParseConstraints: %v", err)
	}
	if c.MaxSyllables != 2.5 {
		t.Errorf("MaxSyllables = %v, want 2.5", c.MaxSyllables)
	}
	if !c.AllowedLangs["en"] || !c.AllowedLangs["fr"] || len(c.AllowedLangs) != 2 {
		t.Errorf("AllowedLangs = %v, want en and fr", c.AllowedLangs)
	}
	if c.AllowedLangsRationale != "prefer a western form" {
		t.Errorf("AllowedLangsRationale = %q", c.AllowedLangsRationale)
	}
	if got := c.Skip["un"]; got != "only used before vowels" {
		t.Errorf("Skip[un] = %q", got)
	}
	if !c.AllowShort {
		t.Error("AllowShort = false")
	}
}

func TestParseConstraintsDirectives(t *testing.T) {
	c, err := ParseConstraints("Choose:ka (short and distinct); Add:me (blend); " +
		"Set class:particle; Premerge:ku")
	if err != nil {
		t.Fatalf("ParseConstraints: %v", err)
	}
	if c.Chosen != "ka" || c.ChosenRationale != "short and distinct" {
		t.Errorf("Chosen = %q (%q)", c.Chosen, c.ChosenRationale)
	}
	if c.Added != "me" || c.AddingRationale != "blend" {
		t.Errorf("Added = %q (%q)", c.Added, c.AddingRationale)
	}
	if c.TargetClass != "particle" {
		t.Errorf("TargetClass = %q", c.TargetClass)
	}
	if c.MergeWith != "ku" || !c.Premerge {
		t.Errorf("MergeWith = %q, Premerge = %v", c.MergeWith, c.Premerge)
	}
}

func TestParseConstraintsCompound(t *testing.T) {
	c, err := ParseConstraints("Compound:li-su (the logical way to express this)")
	if err != nil {
		t.Fatalf("ParseConstraints: %v", err)
	}
	if c.Compound != "li-su" || c.CompoundRationale != "the logical way to express this" {
		t.Errorf("Compound = %q (%q)", c.Compound, c.CompoundRationale)
	}
}

func TestParseConstraintsUnknown(t *testing.T) {
	if _, err := ParseConstraints("Frobnicate:yes"); err == nil {
		t.Error("unknown constraint accepted")
	}
}

func TestConstraintsFails(t *testing.T) {
	kasa := phonology.New("kasa", 0, "de")
	kasa.SimScore = 1

	tests := []struct {
		name          string
		constraintStr string
		expected      string
	}{
		{"passes without constraints", "", ""},
		{"too long", "Syllables:1", "too long"},
		{"within syllable limit", "Syllables:2", ""},
		{"language not allowed", "Allow langs: en fr (prefer western)", "prefer western"},
		{"language allowed", "Allow langs: de en", ""},
		{"skipped", "Skip:kasa (sounds wrong)", "sounds wrong"},
		{"skip other word", "Skip:suma (sounds wrong)", ""},
		{"not chosen", "Choose:suma (nicer)", "not the chosen candidate"},
		{"chosen", "Choose:kasa (nicer)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseConstraints(tt.constraintStr)
			if err != nil {
				t.Fatalf("ParseConstraints: %v", err)
			}
			if got := c.Fails(kasa); got != tt.expected {
				t.Errorf("Fails = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConstraintsFailsAddedCandidatePasses(t *testing.T) {
	added := phonology.New("me", 0, "")
	c, err := ParseConstraints("Allow langs: en fr (prefer western)")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Fails(added); got != "" {
		t.Errorf("Fails = %q, language-less candidates must pass", got)
	}
}

func TestConstraintsString(t *testing.T) {
	c, err := ParseConstraints("Syllables:2; Choose:ka (short)")
	if err != nil {
		t.Fatal(err)
	}
	s := c.String()
	if !strings.HasPrefix(s, "Constraints: ") || !strings.Contains(s, "chosen candidate: ka") {
		t.Errorf("String() = %q", s)
	}

	empty, err := ParseConstraints("")
	if err != nil {
		t.Fatal(err)
	}
	if got := empty.String(); got != "No Constraints" {
		t.Errorf("String() = %q, want No Constraints", got)
	}
}
