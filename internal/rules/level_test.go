package rules

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLevelOrdering(t *testing.T) {
	if !(Off < Notice && Notice < Warning && Warning < Failure) {
		t.Fatal("level ordering must be off < notice < warning < failure")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    Level
		wantErr bool
	}{
		{"off", Off, false},
		{"notice", Notice, false},
		{"warning", Warning, false},
		{"failure", Failure, false},
		{"", Off, true},
		{"Warning", Off, true},
		{"error", Off, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if Warning.String() != "warning" {
		t.Errorf("Warning.String() = %q", Warning.String())
	}
	if Level(99).String() != "level(99)" {
		t.Errorf("unknown level String() = %q", Level(99).String())
	}
}

func TestMaxLevel(t *testing.T) {
	tests := []struct {
		a, b, want Level
	}{
		{Off, Off, Off},
		{Off, Notice, Notice},
		{Notice, Warning, Warning},
		{Failure, Warning, Failure},
		{Warning, Warning, Warning},
	}

	for _, tt := range tests {
		if got := MaxLevel(tt.a, tt.b); got != tt.want {
			t.Errorf("MaxLevel(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		// Max is symmetric
		if got := MaxLevel(tt.b, tt.a); got != tt.want {
			t.Errorf("MaxLevel(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestLevelJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Failure)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"failure"` {
		t.Errorf("marshaled = %s", data)
	}

	var l Level
	if err := json.Unmarshal([]byte(`"notice"`), &l); err != nil {
		t.Fatal(err)
	}
	if l != Notice {
		t.Errorf("unmarshaled = %v, want Notice", l)
	}

	if err := json.Unmarshal([]byte(`"bogus"`), &l); err == nil {
		t.Error("expected error for unknown level name")
	}
}

func TestLevelYAML(t *testing.T) {
	var l Level
	if err := yaml.Unmarshal([]byte("warning"), &l); err != nil {
		t.Fatal(err)
	}
	if l != Warning {
		t.Errorf("unmarshaled = %v, want Warning", l)
	}

	if err := yaml.Unmarshal([]byte("severe"), &l); err == nil {
		t.Error("expected error for unknown level name")
	}
}
