package rules

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`rules:
  - pattern: master
    level: failure
  - pattern: tribal
    suggestions: [team-specific, internal]
  - pattern: crazy
    level: notice
    mode: substring
    message: "Consider {suggestions} instead of {match}."
ignorePaths:
  - vendor/**
  - docs/**
`)

	cfg, err := parseConfig(data)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(cfg.IgnorePaths, []string{"vendor/**", "docs/**"}) {
		t.Errorf("IgnorePaths = %v", cfg.IgnorePaths)
	}
	if len(cfg.Rules) != 3 {
		t.Fatalf("got %d rules", len(cfg.Rules))
	}
	if cfg.Rules[0].Level != Failure {
		t.Errorf("rule 0 level = %v, want failure", cfg.Rules[0].Level)
	}
	// Missing level defaults to warning, not off
	if cfg.Rules[1].Level != Warning {
		t.Errorf("rule 1 level = %v, want warning", cfg.Rules[1].Level)
	}
	if cfg.Rules[1].Mode != ModeWord {
		t.Errorf("rule 1 mode = %v, want word", cfg.Rules[1].Mode)
	}
	if cfg.Rules[2].Mode != ModeSubstring {
		t.Errorf("rule 2 mode = %v, want substring", cfg.Rules[2].Mode)
	}
	if cfg.Rules[2].Message == "" {
		t.Error("rule 2 message lost")
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing pattern", "rules:\n  - level: warning\n"},
		{"bad level", "rules:\n  - pattern: x\n    level: severe\n"},
		{"bad mode", "rules:\n  - pattern: x\n    mode: fuzzy\n"},
		{"bad yaml", "rules: [\n"},
	}

	for _, tt := range tests {
		if _, err := parseConfig([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inclint.yml")
	content := "rules:\n  - pattern: ninja\n    level: notice\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Pattern != "ninja" {
		t.Errorf("rules = %+v", cfg.Rules)
	}
}

func TestLoadFileEmptyPath(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Rules) != 0 || len(cfg.IgnorePaths) != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/inclint.yml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildSetDisablesDefault(t *testing.T) {
	cfg := Config{Rules: []Rule{{Pattern: "master", Level: Off}}}
	set, err := BuildSet(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := set.Match("master branch"); len(got) != 0 {
		t.Errorf("master should be disabled, got %v", got)
	}
	// Other defaults still apply
	if got := set.Match("the slave node"); len(got) != 1 {
		t.Errorf("slave should still match, got %d", len(got))
	}
}
