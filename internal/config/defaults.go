// Package config provides centralized configuration defaults for kandivoc.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFile represents the structure of config.toml
type ConfigFile struct {
	Paths     Paths     `toml:"paths"`
	Languages Languages `toml:"languages"`
}

// Paths holds the file and directory locations the tool works with.
type Paths struct {
	DataDir         string `toml:"data_dir"`
	DictFile        string `toml:"dict_file"`
	SourcelangsFile string `toml:"sourcelangs_file"`
	SelectionLog    string `toml:"selection_log"`
}

// Languages holds the language-related settings.
type Languages struct {
	// Auxlangs are the auxiliary languages whose candidates are shown
	// but never counted as related natural languages.
	Auxlangs []string `toml:"auxlangs"`
	// CommonAuxlangs are well-known auxlang codes that may appear as
	// extra keys in concept entries.
	CommonAuxlangs []string `toml:"common_auxlangs"`
	// ExtraFallbacks maps main languages to additional fallback
	// languages, slash-separated when there are several (e.g. "sg/tpi").
	ExtraFallbacks map[string]string `toml:"extra_fallbacks"`
}

// Hardcoded fallback defaults (used if config.toml not found)
var fallbackDefaults = ConfigFile{
	Paths: Paths{
		DataDir:         "data",
		DictFile:        "dict.txt",
		SourcelangsFile: "sourcelangs.csv",
		SelectionLog:    "selectionlog.txt",
	},
	Languages: Languages{
		Auxlangs:       []string{"globasa", "glosa", "lidepla"},
		CommonAuxlangs: []string{"eo", "ia", "io"},
		ExtraFallbacks: map[string]string{"ar": "arz", "pcm": "tpi"},
	},
}

// loaded holds the parsed config (nil if not loaded yet)
var loaded *ConfigFile

// Load reads config.toml from the project root
func Load() *ConfigFile {
	if loaded != nil {
		return loaded
	}

	// Try to find config.toml by walking up from executable or cwd
	paths := []string{
		"config.toml",
		"../config.toml",
		"../../config.toml",
	}

	// Also try from executable location
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(dir, "config.toml"),
			filepath.Join(dir, "..", "config.toml"),
			filepath.Join(dir, "..", "..", "config.toml"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			cfg := fallbackDefaults
			if _, err := toml.DecodeFile(path, &cfg); err == nil {
				loaded = &cfg
				return loaded
			}
		}
	}

	// Return fallback if config.toml not found
	cfg := fallbackDefaults
	loaded = &cfg
	return loaded
}

// Convenience accessors that load config on first access
var (
	DataDir         = func() string { return Load().Paths.DataDir }
	DictFile        = func() string { return Load().Paths.DictFile }
	SourcelangsFile = func() string { return Load().Paths.SourcelangsFile }
	SelectionLog    = func() string { return Load().Paths.SelectionLog }
	Auxlangs        = func() []string { return Load().Languages.Auxlangs }
)

// MaxScanWorkers is the cap for parallel workers
const MaxScanWorkers = 8

// IsAuxlang reports whether code names an auxiliary language. Concept
// entries identify auxlangs either by a code longer than 3 letters or by
// one of the well-known short codes.
func IsAuxlang(code string) bool {
	if len(code) > 3 {
		return true
	}
	for _, known := range Load().Languages.CommonAuxlangs {
		if code == known {
			return true
		}
	}
	return false
}

// AuxlangsStr returns the configured auxlangs as comma-separated string.
func AuxlangsStr() string {
	return strings.Join(Load().Languages.Auxlangs, ", ")
}
