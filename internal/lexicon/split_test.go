package lexicon

import (
	"reflect"
	"testing"
)

func TestSplitOnCommas(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple", "a, b, c", []string{"a", "b", "c"}},
		{"no separator", "abc", []string{"abc"}},
		{"comma in parens kept", "a (x, y), b", []string{"a (x, y)", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplitOnCommas(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("SplitOnCommas(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSplitOnSemicolons(t *testing.T) {
	result := SplitOnSemicolons("dom; haus;  izba")
	expected := []string{"dom", "haus", "izba"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("SplitOnSemicolons = %v, want %v", result, expected)
	}
}

func TestSplitOnPipes(t *testing.T) {
	result := SplitOnPipes("a | b (c | d) | e")
	expected := []string{"a", "b (c | d)", "e"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("SplitOnPipes = %v, want %v", result, expected)
	}
}

func TestSplitTextAndExplanation(t *testing.T) {
	tests := []struct {
		input       string
		text        string
		explanation string
	}{
		{"ka (shorter than -ika)", "ka", "shorter than -ika"},
		{"ka", "ka", ""},
		{"a (b) c", "a (b) c", ""},
		{"(only a note)", "", "only a note"},
	}

	for _, tt := range tests {
		text, explanation := SplitTextAndExplanation(tt.input)
		if text != tt.text || explanation != tt.explanation {
			t.Errorf("SplitTextAndExplanation(%q) = %q/%q, want %q/%q",
				tt.input, text, explanation, tt.text, tt.explanation)
		}
	}
}

func TestParensAndBrackets(t *testing.T) {
	if got := EliminateParens("word (a comment)"); got != "word" {
		t.Errorf("EliminateParens = %q, want word", got)
	}
	if got := DiscardTextInBrackets("kot [kɔt]"); got != "kot" {
		t.Errorf("DiscardTextInBrackets = %q, want kot", got)
	}
	inner, found := ExtractTextInBrackets("kot [kɔt]")
	if inner != "kɔt" || !found {
		t.Errorf("ExtractTextInBrackets = %q/%v, want kɔt/true", inner, found)
	}
	inner, found = ExtractTextInBrackets("kot")
	if inner != "kot" || found {
		t.Errorf("ExtractTextInBrackets = %q/%v, want kot/false", inner, found)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  a \t  b "); got != "a b" {
		t.Errorf("Normalize = %q, want \"a b\"", got)
	}
}
