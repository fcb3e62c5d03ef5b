package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/plustag/pkg/alias"
	"tableflip.dev/plustag/pkg/history"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a+1700000000000@example.com", 10, "a+1700000…"},
		{"first\nsecond", 0, "first…"},
		{"first\nsecond", 20, "first…"},
		{"one", 0, "one"},
	}
	for _, tc := range cases {
		if got := Clamp(tc.in, tc.width); got != tc.want {
			t.Errorf("Clamp(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestHistoryExpandsOnlySelected(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}

	long := "someone+" + strings.Repeat("x", 40) + "@example.com"
	pp.History(1, 12,
		history.Entry{ID: "1", Value: long},
		history.Entry{ID: "2", Value: long},
	)

	out := buf.String()
	if !strings.Contains(out, "Copy History - 2 entries") {
		t.Fatalf("missing title:\n%s", out)
	}
	if strings.Count(out, long) != 1 {
		t.Fatalf("expected exactly one full value, got:\n%s", out)
	}
	if !strings.Contains(out, "▸ someone+xxx…") {
		t.Fatalf("expected clamped collapsed entry, got:\n%s", out)
	}
}

func TestAliasesMarksSelected(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}

	pp.Aliases("MyPromo",
		alias.Alias{Label: "news", Value: "news"},
		alias.Alias{Label: "My Promo!", Value: "MyPromo"},
	)
	out := buf.String()
	if !strings.Contains(out, "Aliases - 2 aliases") {
		t.Fatalf("missing title:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "MyPromo") && !strings.HasPrefix(strings.TrimSpace(line), "*") {
			t.Fatalf("selected alias not marked: %q", line)
		}
	}
	if !strings.Contains(out, "My Promo!") {
		t.Fatalf("label missing:\n%s", out)
	}
}

func TestEmptyLists(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Aliases("")
	pp.History(-1, 0)
	if strings.Count(buf.String(), "none") != 2 {
		t.Fatalf("expected two empty markers:\n%s", buf.String())
	}
}
