package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const testSourcelangs = `Language,Code,Family,Branch,Speakers,Script
English,en,Indo-European,Germanic,1500,Latin
Hindi/Urdu,hi/ur,Indo-European,Indic,600,Devanagari
Arabic,ar,Afro-Asiatic,Semitic,400,Arabic
Indonesian/Malay,id/ms,Austronesian,Malayic,300,Latin
`

func writeTestSourcelangs(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sourcelangs.csv")
	if err := os.WriteFile(path, []byte(testSourcelangs), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSourceLanguages(t *testing.T) {
	langs, err := ReadSourceLanguages(writeTestSourcelangs(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"en", "hi", "ar", "id"}
	if !reflect.DeepEqual(langs.List, expected) {
		t.Errorf("List = %v, want %v", langs.List, expected)
	}
	if !reflect.DeepEqual(langs.Fallbacks["hi"], []string{"ur"}) {
		t.Errorf("Fallbacks[hi] = %v, want [ur]", langs.Fallbacks["hi"])
	}
	if langs.FallbackToMain["ms"] != "id" {
		t.Errorf("FallbackToMain[ms] = %q, want id", langs.FallbackToMain["ms"])
	}
	if langs.Names["ur"] != "Hindi/Urdu" {
		t.Errorf("Names[ur] = %q", langs.Names["ur"])
	}
	if !langs.LatinMains["en"] || langs.LatinMains["hi"] {
		t.Errorf("LatinMains = %v", langs.LatinMains)
	}
	if !langs.LatinFallbacks["ms"] || langs.LatinFallbacks["ur"] {
		t.Errorf("LatinFallbacks = %v", langs.LatinFallbacks)
	}
}

func TestReadSourceLanguagesExtraFallbacks(t *testing.T) {
	extra := map[string]string{"ar": "arz", "en": "sco/ang"}
	langs, err := ReadSourceLanguages(writeTestSourcelangs(t), extra)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(langs.Fallbacks["ar"], []string{"arz"}) {
		t.Errorf("Fallbacks[ar] = %v, want [arz]", langs.Fallbacks["ar"])
	}
	if !reflect.DeepEqual(langs.Fallbacks["en"], []string{"sco", "ang"}) {
		t.Errorf("Fallbacks[en] = %v", langs.Fallbacks["en"])
	}
	if langs.FallbackToMain["arz"] != "ar" {
		t.Errorf("FallbackToMain[arz] = %q", langs.FallbackToMain["arz"])
	}
	// en is Latin-script, so its extra fallbacks are too; ar is not
	if !langs.LatinFallbacks["sco"] || langs.LatinFallbacks["arz"] {
		t.Errorf("LatinFallbacks = %v", langs.LatinFallbacks)
	}
}

func TestReadSourceLanguagesShortRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sourcelangs.csv")
	if err := os.WriteFile(path, []byte("Language,Code\nEnglish,en\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSourceLanguages(path, nil); err == nil {
		t.Error("short row accepted")
	}
}

func TestAllCodes(t *testing.T) {
	langs, err := ReadSourceLanguages(writeTestSourcelangs(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	all := langs.AllCodes([]string{"glosa"})
	for _, code := range []string{"en", "hi", "ur", "ms", "glosa"} {
		if !all[code] {
			t.Errorf("AllCodes missing %q", code)
		}
	}
	if all["fr"] {
		t.Error("AllCodes contains fr")
	}
}

func TestIsAuxlang(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"globasa", true},
		{"eo", true},
		{"en", false},
		{"tpi", false},
	}
	for _, tt := range tests {
		if got := IsAuxlang(tt.code); got != tt.expected {
			t.Errorf("IsAuxlang(%q) = %v, want %v", tt.code, got, tt.expected)
		}
	}
}
