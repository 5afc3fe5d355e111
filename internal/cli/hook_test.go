package cli

import (
	"strings"
	"testing"
)

func TestGenerateHookScript(t *testing.T) {
	script := generateHookScript("python-azure-ai-agent")

	if !strings.Contains(script, hookMarkerStart) {
		t.Error("Script missing start marker")
	}
	if !strings.Contains(script, hookMarkerEnd) {
		t.Error("Script missing end marker")
	}
	if !strings.Contains(script, "reviewpack review --staged --pack python-azure-ai-agent") {
		t.Error("Script missing review command with correct flags")
	}
	if !strings.Contains(script, "REVIEWPACK_EXIT=$?") {
		t.Error("Script missing exit code capture")
	}
	if !strings.Contains(script, "allowing commit") {
		t.Error("Script missing warning for failed reviews")
	}
	if !strings.Contains(script, "REVIEWPACK_SKIP_HOOK") {
		t.Error("Script missing skip switch")
	}
	if strings.Contains(script, "exit 1") {
		t.Error("Hook must never block a commit")
	}
}

func TestReplaceHookSection_NoExisting(t *testing.T) {
	existing := "#!/bin/sh\nsome-other-hook\n"
	result := replaceHookSection(existing, generateHookScript("p"))

	if !strings.HasPrefix(result, existing) {
		t.Error("Existing content should be preserved")
	}
	if !strings.Contains(result, hookMarkerStart) {
		t.Error("New section should be appended")
	}
}

func TestReplaceHookSection_ExistingSection(t *testing.T) {
	existing := "#!/bin/sh\nbefore\n" + generateHookScript("old-pack") + "after\n"
	result := replaceHookSection(existing, generateHookScript("new-pack"))

	if !strings.Contains(result, "before") || !strings.Contains(result, "after") {
		t.Error("Content around the section should be preserved")
	}
	if !strings.Contains(result, "--pack new-pack") {
		t.Error("New section should have updated pack")
	}
	if strings.Contains(result, "old-pack") {
		t.Error("Old section should be replaced")
	}
	if strings.Count(result, hookMarkerStart) != 1 {
		t.Error("Expected exactly one section")
	}
}

func TestReplaceHookSection_NoTrailingNewline(t *testing.T) {
	result := replaceHookSection("#!/bin/sh\nsome-hook", generateHookScript("p"))

	if !strings.Contains(result, "some-hook\n"+hookMarkerStart) {
		t.Errorf("Section should start on its own line, got %q", result)
	}
}

func TestRemoveHookSection(t *testing.T) {
	existing := "#!/bin/sh\nbefore\n" + generateHookScript("p") + "after\n"
	result := removeHookSection(existing)

	if result != "#!/bin/sh\nbefore\nafter\n" {
		t.Errorf("result = %q", result)
	}
}

func TestRemoveHookSection_NoSection(t *testing.T) {
	existing := "#!/bin/sh\nsome-hook\n"
	if result := removeHookSection(existing); result != existing {
		t.Error("Content without a reviewpack section should be unchanged")
	}
}
