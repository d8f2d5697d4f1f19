package cmd

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"jirafill/planner"
)

func promptReader(input string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(input))
}

func TestAskDate_DefaultOnEmpty(t *testing.T) {
	t.Parallel()

	def := time.Date(2026, time.August, 3, 0, 0, 0, 0, planner.Zone)
	var out bytes.Buffer

	got, err := askDate(promptReader("\n"), &out, "Start date", def)
	if err != nil {
		t.Fatalf("askDate returned error: %v", err)
	}
	if !got.Equal(def) {
		t.Fatalf("expected default %v, got %v", def, got)
	}
	if !strings.Contains(out.String(), "[03.08.2026]") {
		t.Fatalf("prompt should show default in dd.mm.yyyy, got %q", out.String())
	}
}

func TestAskDate_RepromptsOnInvalidInput(t *testing.T) {
	t.Parallel()

	def := time.Date(2026, time.August, 3, 0, 0, 0, 0, planner.Zone)
	var out bytes.Buffer

	got, err := askDate(promptReader("2026-08-10\n10.08.2026\n"), &out, "Start date", def)
	if err != nil {
		t.Fatalf("askDate returned error: %v", err)
	}
	want := time.Date(2026, time.August, 10, 0, 0, 0, 0, planner.Zone)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !strings.Contains(out.String(), "Invalid date") {
		t.Fatalf("expected re-prompt message, got %q", out.String())
	}
}

func TestAskHours_RejectsBelowMinimum(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	got, err := askHours(promptReader("0\nabc\n6\n"), &out, "Hours to fill per day", 4, 1)
	if err != nil {
		t.Fatalf("askHours returned error: %v", err)
	}
	if got != 6 {
		t.Fatalf("expected 6, got %g", got)
	}
	if strings.Count(out.String(), "Invalid value") != 2 {
		t.Fatalf("expected two re-prompts, got %q", out.String())
	}
}

func TestAskWeight_Bounds(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	got, err := askWeight(promptReader("6\n-1\n0\n"), &out, "PROJ-1")
	if err != nil {
		t.Fatalf("askWeight returned error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected weight 0, got %d", got)
	}
	if strings.Count(out.String(), "Invalid weight") != 2 {
		t.Fatalf("expected two re-prompts, got %q", out.String())
	}
}

func TestAskWeight_DefaultsToOne(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	got, err := askWeight(promptReader("\n"), &out, "PROJ-1")
	if err != nil {
		t.Fatalf("askWeight returned error: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected default weight 1, got %d", got)
	}
}

func TestAskYesNo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{name: "empty picks default yes", input: "\n", defaultYes: true, want: true},
		{name: "empty picks default no", input: "\n", defaultYes: false, want: false},
		{name: "explicit yes", input: "y\n", defaultYes: false, want: true},
		{name: "explicit no", input: "n\n", defaultYes: true, want: false},
		{name: "garbage then yes", input: "maybe\nyes\n", defaultYes: false, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			got, err := askYesNo(promptReader(tt.input), &out, "Continue?", tt.defaultYes)
			if err != nil {
				t.Fatalf("askYesNo returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %t, got %t", tt.want, got)
			}
		})
	}
}

func TestMaskToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  string
	}{
		{token: "", want: "(not set)"},
		{token: "abc", want: "***"},
		{token: "12345678", want: "********"},
		{token: "abcd1234efgh", want: "abcd****efgh"},
	}

	for _, tt := range tests {
		if got := maskToken(tt.token); got != tt.want {
			t.Fatalf("maskToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}
