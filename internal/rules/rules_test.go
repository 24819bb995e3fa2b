package rules

import (
	"reflect"
	"testing"
)

func TestNewSetSkipsOff(t *testing.T) {
	set, err := NewSet([]Rule{
		{Pattern: "master", Level: Off},
		{Pattern: "slave", Level: Warning, Mode: ModeWord},
	})
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
	if got := set.Match("master"); len(got) != 0 {
		t.Errorf("disabled rule matched: %v", got)
	}
}

func TestNewSetRejectsEmptyPattern(t *testing.T) {
	if _, err := NewSet([]Rule{{Pattern: "", Level: Warning}}); err == nil {
		t.Error("expected error for empty pattern")
	}
}

func TestNewSetRejectsBadPattern(t *testing.T) {
	if _, err := NewSet([]Rule{{Pattern: "[unterminated", Level: Warning}}); err == nil {
		t.Error("expected error for invalid regexp")
	}
}

func TestNewSetRejectsBadMode(t *testing.T) {
	if _, err := NewSet([]Rule{{Pattern: "x", Level: Warning, Mode: "fuzzy"}}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestMatchWordBoundary(t *testing.T) {
	set, err := NewSet([]Rule{{Pattern: "master", Level: Warning, Mode: ModeWord}})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		line string
		want int
	}{
		{"master branch", 1},
		{"the MASTER node", 1},
		{"mastermind", 0},
		{"webmaster", 0},
		{"master-slave", 1},
		{"git_master", 0},
		{"no match here", 0},
	}

	for _, tt := range tests {
		got := set.Match(tt.line)
		if len(got) != tt.want {
			t.Errorf("Match(%q) = %d matches, want %d", tt.line, len(got), tt.want)
		}
	}
}

func TestMatchSubstring(t *testing.T) {
	set, err := NewSet([]Rule{{Pattern: `sanity[ _-]check`, Level: Notice, Mode: ModeSubstring}})
	if err != nil {
		t.Fatal(err)
	}

	for _, line := range []string{"run a sanity check", "sanity_check()", "Sanity-Check step"} {
		if got := set.Match(line); len(got) != 1 {
			t.Errorf("Match(%q) = %d matches, want 1", line, len(got))
		}
	}
}

func TestMatchOffsets(t *testing.T) {
	set, err := NewSet([]Rule{{Pattern: "slave", Level: Warning, Mode: ModeWord}})
	if err != nil {
		t.Fatal(err)
	}

	got := set.Match("the slave node")
	if len(got) != 1 {
		t.Fatalf("got %d matches", len(got))
	}
	if got[0].Start != 4 || got[0].End != 9 {
		t.Errorf("span = [%d,%d), want [4,9)", got[0].Start, got[0].End)
	}
}

func TestMatchMultipleRulesAndOccurrences(t *testing.T) {
	set, err := NewSet([]Rule{
		{Pattern: "master", Level: Warning, Mode: ModeWord},
		{Pattern: "slave", Level: Warning, Mode: ModeWord},
	})
	if err != nil {
		t.Fatal(err)
	}

	got := set.Match("master talks to slave, slave replies to master")
	if len(got) != 4 {
		t.Fatalf("got %d matches, want 4", len(got))
	}
	// Rule order first, then offset order within a rule
	if got[0].Rule.Pattern != "master" || got[1].Rule.Pattern != "master" {
		t.Error("master matches should come first")
	}
	if got[0].Start > got[1].Start {
		t.Error("matches of one rule should be in offset order")
	}
}

func TestMerge(t *testing.T) {
	base := []Rule{
		{Pattern: "master", Level: Warning},
		{Pattern: "slave", Level: Warning},
	}
	overrides := []Rule{
		{Pattern: "master", Level: Failure},
		{Pattern: "tribal", Level: Notice},
	}

	merged := Merge(base, overrides)

	wantPatterns := []string{"master", "slave", "tribal"}
	var gotPatterns []string
	for _, r := range merged {
		gotPatterns = append(gotPatterns, r.Pattern)
	}
	if !reflect.DeepEqual(gotPatterns, wantPatterns) {
		t.Errorf("patterns = %v, want %v", gotPatterns, wantPatterns)
	}
	if merged[0].Level != Failure {
		t.Errorf("override should replace base rule in place, level = %v", merged[0].Level)
	}
}

func TestMergeDoesNotMutateBase(t *testing.T) {
	base := []Rule{{Pattern: "master", Level: Warning}}
	Merge(base, []Rule{{Pattern: "master", Level: Off}})
	if base[0].Level != Warning {
		t.Error("base slice was mutated")
	}
}

func TestDefaultRulesCompile(t *testing.T) {
	set, err := NewSet(DefaultRules())
	if err != nil {
		t.Fatalf("default rules must compile: %v", err)
	}
	if set.Len() == 0 {
		t.Fatal("no default rules")
	}
	for _, r := range set.Active() {
		if len(r.Suggestions) == 0 {
			t.Errorf("default rule %q has no suggestions", r.Pattern)
		}
	}
}
