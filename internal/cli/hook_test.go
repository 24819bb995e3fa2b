package cli

import (
	"strings"
	"testing"
)

func TestGenerateHookScript(t *testing.T) {
	script := generateHookScript("warning", "text")

	if !strings.Contains(script, hookMarkerStart) {
		t.Error("script missing start marker")
	}
	if !strings.Contains(script, hookMarkerEnd) {
		t.Error("script missing end marker")
	}
	if !strings.Contains(script, "inclint check staged --fail-on warning --format text") {
		t.Errorf("script missing check command:\n%s", script)
	}
	if !strings.Contains(script, "exit 1") {
		t.Error("script should block the commit on findings")
	}
}

func TestReplaceHookSectionAppend(t *testing.T) {
	existing := "#!/bin/sh\necho custom-hook\n"
	section := generateHookScript("failure", "text")

	result := replaceHookSection(existing, section)

	if !strings.Contains(result, "echo custom-hook") {
		t.Error("existing hook content should be preserved")
	}
	if !strings.Contains(result, hookMarkerStart) {
		t.Error("section should be appended")
	}
}

func TestReplaceHookSectionReplace(t *testing.T) {
	old := generateHookScript("notice", "text")
	existing := "#!/bin/sh\necho before\n" + old + "echo after\n"

	section := generateHookScript("failure", "json")
	result := replaceHookSection(existing, section)

	if strings.Contains(result, "--fail-on notice") {
		t.Error("old section should be replaced")
	}
	if !strings.Contains(result, "--fail-on failure --format json") {
		t.Error("new section should be present")
	}
	if !strings.Contains(result, "echo before") || !strings.Contains(result, "echo after") {
		t.Error("surrounding content should be preserved")
	}
	if strings.Count(result, hookMarkerStart) != 1 {
		t.Error("exactly one section expected after replace")
	}
}

func TestRemoveHookSection(t *testing.T) {
	section := generateHookScript("warning", "text")
	existing := "#!/bin/sh\necho keep\n" + section

	result := removeHookSection(existing)

	if strings.Contains(result, hookMarkerStart) {
		t.Error("section should be removed")
	}
	if !strings.Contains(result, "echo keep") {
		t.Error("other content should survive removal")
	}
}

func TestRemoveHookSectionNoSection(t *testing.T) {
	existing := "#!/bin/sh\necho unrelated\n"
	if got := removeHookSection(existing); got != existing {
		t.Errorf("content without a section should be unchanged, got:\n%s", got)
	}
}
