package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveConfigEditPath(t *testing.T) {
	t.Parallel()

	got, err := resolveConfigEditPath("/tmp/custom.yaml", "/home/user/.jirafill.yaml")
	if err != nil {
		t.Fatalf("resolveConfigEditPath returned error: %v", err)
	}
	if got != "/tmp/custom.yaml" {
		t.Fatalf("flag should win, got %q", got)
	}

	got, err = resolveConfigEditPath("", "/home/user/.jirafill.yaml")
	if err != nil {
		t.Fatalf("resolveConfigEditPath returned error: %v", err)
	}
	if got != "/home/user/.jirafill.yaml" {
		t.Fatalf("loaded config file should win over home default, got %q", got)
	}

	got, err = resolveConfigEditPath("", "")
	if err != nil {
		t.Fatalf("resolveConfigEditPath returned error: %v", err)
	}
	if filepath.Base(got) != ".jirafill.yaml" {
		t.Fatalf("expected home default .jirafill.yaml, got %q", got)
	}
}

func TestEnsureConfigFileWithTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", ".jirafill.yaml")

	created, err := ensureConfigFileWithTemplate(path)
	if err != nil {
		t.Fatalf("ensureConfigFileWithTemplate returned error: %v", err)
	}
	if !created {
		t.Fatal("expected file to be created")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading created config failed: %v", err)
	}
	if !strings.Contains(string(content), "daily_hours") {
		t.Fatalf("template content missing fill defaults:\n%s", content)
	}

	created, err = ensureConfigFileWithTemplate(path)
	if err != nil {
		t.Fatalf("second call returned error: %v", err)
	}
	if created {
		t.Fatal("existing file must not be recreated")
	}
}

func TestResolveEditorValue(t *testing.T) {
	t.Parallel()

	if got := resolveEditorValue("code --wait", "nano"); got != "code --wait" {
		t.Fatalf("VISUAL should win, got %q", got)
	}
	if got := resolveEditorValue("", "nano"); got != "nano" {
		t.Fatalf("EDITOR should be used, got %q", got)
	}
	if got := resolveEditorValue("  ", ""); got != "vi" {
		t.Fatalf("expected vi fallback, got %q", got)
	}
}

func TestBuildEditorCommand(t *testing.T) {
	t.Parallel()

	cmd, err := buildEditorCommand("code --wait", "/tmp/.jirafill.yaml")
	if err != nil {
		t.Fatalf("buildEditorCommand returned error: %v", err)
	}
	if got := strings.Join(cmd.Args, " "); !strings.HasSuffix(got, "code --wait /tmp/.jirafill.yaml") {
		t.Fatalf("unexpected editor args: %q", got)
	}

	if _, err := buildEditorCommand("   ", "/tmp/.jirafill.yaml"); err == nil {
		t.Fatal("empty editor value must error")
	}
}
